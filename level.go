package logjack

import "strings"

// Level is the severity an intercepted call is forwarded at. The five
// values mirror the severity methods a Registry logger exposes.
type Level int8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// baselineLevel is used when neither a parsed debug namespace nor the
// intercepted method names a severity.
const baselineLevel = LevelDebug

// levelNames is ordered by rank and doubles as the set of recognized
// trailing segments for extractLevel.
var levelNames = [...]string{"trace", "debug", "info", "warn", "error"}

func (l Level) String() string {
	if l < LevelTrace || l > LevelError {
		return "unknown"
	}
	return levelNames[l]
}

// valid reports whether l is one of the five severities.
func (l Level) valid() bool {
	return l >= LevelTrace && l <= LevelError
}

// extractLevel inspects the trailing dot-segment of a debug namespace
// (the whole name when it has no dot) and returns the severity it names,
// or the baseline when it names none.
func extractLevel(name string) Level {
	seg := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		seg = name[i+1:]
	}
	for i, n := range levelNames {
		if seg == n {
			return Level(i)
		}
	}
	return baselineLevel
}

// stripLevel removes one trailing ".<level>" segment when the trailing
// segment names a severity. A name without a dot is returned unchanged,
// so a logger name can never be stripped to nothing.
func stripLevel(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name
	}
	seg := name[i+1:]
	for _, n := range levelNames {
		if seg == n {
			return name[:i]
		}
	}
	return name
}
