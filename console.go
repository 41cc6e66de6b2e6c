package logjack

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Method identifies one entry of a console's dispatch table.
type Method int8

const (
	MethodLog Method = iota
	MethodTrace
	MethodDebug
	MethodInfo
	MethodWarn
	MethodError
	MethodDir

	methodCount
)

var methodNames = [methodCount]string{"log", "trace", "debug", "info", "warn", "error", "dir"}

func (m Method) String() string {
	if m < 0 || m >= methodCount {
		return "unknown"
	}
	return methodNames[m]
}

// severity maps a console method to the level its output carries. Plain
// log and dir calls carry the baseline level.
func (m Method) severity() Level {
	switch m {
	case MethodTrace:
		return LevelTrace
	case MethodInfo:
		return LevelInfo
	case MethodWarn:
		return LevelWarn
	case MethodError:
		return LevelError
	default:
		return baselineLevel
	}
}

// Func is a single console method implementation.
type Func func(args ...any)

// Console is a process-wide logging surface with a swappable dispatch
// table, the shape a hijacker needs to capture and restore methods one
// at a time. The zero value is not usable; construct with NewConsole.
type Console struct {
	mu     sync.RWMutex
	out    io.Writer
	errOut io.Writer
	table  [methodCount]Func
}

// NewConsole returns a console whose plain, debug and info methods write
// to out and whose warn, error and trace methods write to errOut, one
// line per call with space-separated operands.
func NewConsole(out, errOut io.Writer) *Console {
	c := &Console{out: out, errOut: errOut}
	c.table[MethodLog] = c.writeTo(out)
	c.table[MethodTrace] = c.defaultTrace
	c.table[MethodDebug] = c.writeTo(out)
	c.table[MethodInfo] = c.writeTo(out)
	c.table[MethodWarn] = c.writeTo(errOut)
	c.table[MethodError] = c.writeTo(errOut)
	c.table[MethodDir] = c.defaultDir
	return c
}

var std = NewConsole(os.Stdout, os.Stderr)

// Std returns the process-wide default console.
func Std() *Console { return std }

func (c *Console) Log(args ...any)   { c.call(MethodLog, args) }
func (c *Console) Trace(args ...any) { c.call(MethodTrace, args) }
func (c *Console) Debug(args ...any) { c.call(MethodDebug, args) }
func (c *Console) Info(args ...any)  { c.call(MethodInfo, args) }
func (c *Console) Warn(args ...any)  { c.call(MethodWarn, args) }
func (c *Console) Error(args ...any) { c.call(MethodError, args) }

// Dir renders its first argument with full structural detail. Further
// arguments are ignored, matching the surface this console mirrors.
func (c *Console) Dir(args ...any) { c.call(MethodDir, args) }

// Swap replaces one dispatch table entry and returns the previous one.
func (c *Console) Swap(m Method, fn Func) Func {
	if m < 0 || m >= methodCount {
		return nil
	}
	c.mu.Lock()
	old := c.table[m]
	c.table[m] = fn
	c.mu.Unlock()
	return old
}

func (c *Console) call(m Method, args []any) {
	if m < 0 || m >= methodCount {
		return
	}
	c.mu.RLock()
	fn := c.table[m]
	c.mu.RUnlock()
	if fn != nil {
		fn(args...)
	}
}

func (c *Console) writeTo(w io.Writer) Func {
	return func(args ...any) {
		fmt.Fprintln(w, args...)
	}
}

var consoleDir = func() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}()

func (c *Console) defaultTrace(args ...any) {
	frames := captureStack(1)
	for len(frames) > 0 && (frames[0].File == "<autogenerated>" || filepath.Dir(frames[0].File) == consoleDir) {
		frames = frames[1:]
	}
	msg := strings.TrimSuffix(fmt.Sprintln(append([]any{"Trace:"}, args...)...), "\n")
	fmt.Fprintln(c.errOut, msg+formatStack(frames))
}

func (c *Console) defaultDir(args ...any) {
	if len(args) == 0 {
		fmt.Fprintln(c.out)
		return
	}
	fmt.Fprintln(c.out, inspect(args[0]))
}
