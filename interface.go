package logjack

// Registry owns level semantics and output formatting for structured
// loggers addressed by dotted hierarchical names. GetLogger resolves or
// creates the logger registered under name; calling it twice with the
// same name returns the same handle.
type Registry interface {
	GetLogger(name string) Logger
}

// Logger is the handle a Registry hands back. Name reports the name the
// logger was actually registered under, which may differ from the
// requested one when the registry normalizes it (case folding and the
// like); the hijacker adopts that name as canonical.
type Logger interface {
	Name() string
	Trace(args ...any)
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

// Sink is the console-style surface whose entry points the hijacker
// swaps. Swap installs fn as the implementation of m and returns the
// previously installed one, making capture-and-restore an explicit
// operation.
type Sink interface {
	Swap(m Method, fn Func) Func
}
