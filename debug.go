package logjack

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"go.uber.org/atomic"
)

// The external debug convention embeds its namespace in the first
// argument. Two line shapes exist and both are bit-exact wire contracts:
// a colored one used on TTYs and a timestamped one used everywhere else.
var (
	// two literal spaces, a bright foreground color (codes 90-99), the
	// namespace, the dim escape, then the message through end of line.
	reColored = regexp.MustCompile(`^ {2}\x1b\[9[0-9]m(.*?)\x1b\[90m(.*)$`)

	// the convention's UTC stamp, e.g. "Thu, 29 Nov 2012 01:02:03 GMT".
	reStamp = regexp.MustCompile(`[A-Za-z]{3}, \d{1,2} [A-Za-z]{3} \d{4} \d{2}:\d{2}:\d{2} GMT ?`)
)

// debugLine is a successfully recognized debug-convention message. name
// is dotted and may still carry a trailing level segment.
type debugLine struct {
	name    string
	message string
}

// tryParse recognizes the two debug-convention shapes, colored first. A
// miss means the argument is an ordinary log line and must be left
// untouched; the zero debugLine and false are returned.
func tryParse(s string) (debugLine, bool) {
	if m := reColored.FindStringSubmatch(s); m != nil {
		name := dottedNamespace(ansi.Strip(m[1]))
		if name == emptyString {
			return debugLine{}, false
		}
		return debugLine{
			name:    name,
			message: strings.TrimSpace(ansi.Strip(m[2])),
		}, true
	}

	if loc := reStamp.FindStringIndex(s); loc != nil {
		rest := strings.TrimSpace(s[:loc[0]] + s[loc[1]:])
		ns, msg := rest, emptyString
		if i := strings.IndexAny(rest, " \t"); i >= 0 {
			ns, msg = rest[:i], strings.TrimSpace(rest[i+1:])
		}
		if ns == emptyString {
			return debugLine{}, false
		}
		return debugLine{name: dottedNamespace(ns), message: msg}, true
	}

	return debugLine{}, false
}

// dottedNamespace converts the convention's colon separators to dots.
func dottedNamespace(ns string) string {
	return strings.ReplaceAll(strings.TrimSpace(ns), ":", ".")
}

// matchPattern reports whether namespace is enabled under pattern, using
// the convention's enable grammar: comma or space separated entries, a
// trailing '*' as wildcard, a leading '-' as exclusion. Exclusions win.
func matchPattern(pattern, namespace string) bool {
	match := false
	for _, entry := range strings.FieldsFunc(pattern, isPatternSep) {
		negate := strings.HasPrefix(entry, "-")
		if negate {
			entry = entry[1:]
		}
		if entry == emptyString || !matchEntry(entry, namespace) {
			continue
		}
		if negate {
			return false
		}
		match = true
	}
	return match
}

func isPatternSep(r rune) bool { return r == ',' || r == ' ' }

func matchEntry(entry, namespace string) bool {
	if entry == "*" {
		return true
	}
	if strings.HasSuffix(entry, "*") {
		return strings.HasPrefix(namespace, entry[:len(entry)-1])
	}
	return namespace == entry
}

// debugHook is the hook point the debug convention's internal emitter is
// redirected to. It is process-wide by contract: the emitter knows
// nothing about sessions.
var debugHook atomic.Pointer[Hijacker]

// EmitDebug is the entry point for an external debug-convention emitter,
// carrying the namespace and level already split out of the line. While
// a session with debug capture is installed the call funnels through its
// dispatch, and namespaces the session's enable pattern rejects are
// dropped, as the convention itself would drop them. With no session
// installed the line degrades to the default console's debug method.
func EmitDebug(namespace string, level Level, args ...any) {
	if h := debugHook.Load(); h != nil {
		h.emitDebug(namespace, level, args)
		return
	}
	std.Debug(append([]any{namespace}, args...)...)
}
