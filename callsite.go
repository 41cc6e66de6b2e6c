package logjack

import (
	"runtime"
	"strings"
)

// CallSite is one captured stack frame. File is empty for frames without
// source information (native or synthetic frames).
type CallSite struct {
	File     string
	Function string
}

// stackDepth bounds a capture. Attribution only needs the first frame
// that is not instrumentation, so a fixed window is plenty.
const stackDepth = 64

// captureStack returns the current goroutine's frames newest first,
// dropping skip frames below the caller of captureStack itself. It is
// synchronous and has no side effects.
func captureStack(skip int) []CallSite {
	pc := make([]uintptr, stackDepth)
	// +2 skips runtime.Callers and captureStack
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	sites := make([]CallSite, 0, n)
	for {
		frame, more := frames.Next()
		sites = append(sites, CallSite{File: frame.File, Function: frame.Function})
		if !more {
			break
		}
	}
	return sites
}

// formatStack renders frames in the "at function (file)" shape the
// console's trace method appends to its output.
func formatStack(frames []CallSite) string {
	var b strings.Builder
	for _, f := range frames {
		b.WriteString("\n    at ")
		if f.Function == emptyString {
			b.WriteString("(unknown)")
		} else {
			b.WriteString(f.Function)
		}
		if f.File != emptyString {
			b.WriteString(" (")
			b.WriteString(f.File)
			b.WriteString(")")
		}
	}
	return b.String()
}
