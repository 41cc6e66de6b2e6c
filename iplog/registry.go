// Package iplog is an ipfs/go-log backed logger registry, for programs
// whose subsystems already route through that stack. Level control goes
// through go-log's global level machinery, so captured console output
// obeys the same GOLOG configuration as native subsystem loggers.
package iplog

import (
	"fmt"
	"strings"
	"sync"

	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/zap"

	"github.com/logjack/logjack"
)

// Registry memoizes one subsystem logger per dotted name.
type Registry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

func NewRegistry() *Registry {
	return &Registry{loggers: make(map[string]*Logger)}
}

func (r *Registry) GetLogger(name string) logjack.Logger {
	r.mu.RLock()
	l := r.loggers[name]
	r.mu.RUnlock()
	if l != nil {
		return l
	}

	sl := logging.Logger(name).SugaredLogger.Desugar().WithOptions(zap.AddCallerSkip(1)).Sugar()

	r.mu.Lock()
	defer r.mu.Unlock()
	if prior := r.loggers[name]; prior != nil {
		return prior
	}
	l = &Logger{name: name, sl: sl}
	r.loggers[name] = l
	return l
}

// SetLevel sets every go-log subsystem, captured consoles included, to
// emit at and above level. go-log has no trace level, so trace folds to
// debug.
func SetLevel(level logjack.Level) {
	logging.SetAllLoggers(goLogLevel(level))
}

func goLogLevel(level logjack.Level) logging.LogLevel {
	switch level {
	case logjack.LevelInfo:
		return logging.LevelInfo
	case logjack.LevelWarn:
		return logging.LevelWarn
	case logjack.LevelError:
		return logging.LevelError
	default:
		return logging.LevelDebug
	}
}

// Logger writes console-style argument lists through one go-log
// subsystem logger.
type Logger struct {
	name string
	sl   *zap.SugaredLogger
}

func (l *Logger) Name() string { return l.name }

func (l *Logger) Trace(args ...any) { l.sl.Debug(sprint(args)) }
func (l *Logger) Debug(args ...any) { l.sl.Debug(sprint(args)) }
func (l *Logger) Info(args ...any)  { l.sl.Info(sprint(args)) }
func (l *Logger) Warn(args ...any)  { l.sl.Warn(sprint(args)) }
func (l *Logger) Error(args ...any) { l.sl.Error(sprint(args)) }

func sprint(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}

var (
	_ logjack.Registry = (*Registry)(nil)
	_ logjack.Logger   = (*Logger)(nil)
)
