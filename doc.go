// Package logjack captures a process-wide console-style logging surface
// and re-routes every call to a structured, hierarchically named logger,
// inferring each logger's name from the call site instead of requiring
// configuration at every call.
//
// Key features
//   - Call-site attribution: a stack walk skips instrumentation frames
//     and derives a dotted name from the first application frame,
//     relative to a configured project root (lib segments elided)
//   - Debug-convention capture: recognizes the colored and timestamped
//     line shapes of the external debug convention and lifts the
//     embedded namespace, level and message into structured routing
//   - Explicit install/restore lifecycle: originals are snapshotted once
//     per session and restored verbatim, so capture is fully reversible
//   - Ignore prefixes: names matching a configured prefix fall through
//     to the untouched original methods
//   - Registry-agnostic: any backend implementing Registry and Logger
//     receives the routed output (zeroreg and iplog ship with this
//     module)
//
// Typical usage
//
//	reg, err := zeroreg.New(zeroreg.Config{ConsoleLogging: true})
//	if err != nil { panic(err) }
//
//	h, err := logjack.New(logjack.Std(), reg)
//	if err != nil { panic(err) }
//	if err := h.Install(logjack.Options{Ignore: []string{"vendor."}}); err != nil { panic(err) }
//	defer h.Restore()
//
//	logjack.Std().Info("listening on port 3000")
package logjack
