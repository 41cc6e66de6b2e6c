package logjack

import (
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Hijacker owns one capture session over a console-style sink. While
// installed it replaces every sink method with a dispatcher that
// attributes the call to a source file, derives a dotted logger name
// from it and forwards the arguments to the registry logger of that
// name. Output whose name matches an ignore prefix falls through to the
// captured original method untouched.
type Hijacker struct {
	sink     Sink
	registry Registry

	mu         sync.RWMutex
	res        *resolver
	ignore     []string
	pattern    string
	originals  *[methodCount]Func
	debugCache map[string]*cacheEntry

	installed atomic.Bool
	debugging atomic.Bool

	// capture is swappable so name resolution can be driven with
	// synthetic frames.
	capture func(skip int) []CallSite
}

// cacheEntry memoizes the outcome of resolving one debug-convention
// namespace. A nil logger records that the resolved name was ignored, so
// repeated lines from that namespace bypass both the stack walk and the
// registry.
type cacheEntry struct {
	name   string
	logger Logger
}

// New returns an uninstalled session over sink, routing captured output
// to loggers obtained from registry.
func New(sink Sink, registry Registry) (*Hijacker, error) {
	if sink == nil {
		return nil, errors.New(errMsgNilSink)
	}
	if registry == nil {
		return nil, errors.New(errMsgNilRegistry)
	}
	return &Hijacker{
		sink:       sink,
		registry:   registry,
		debugCache: make(map[string]*cacheEntry),
		capture:    captureStack,
	}, nil
}

// Install swaps a dispatcher into every sink method. The first install
// of a session snapshots the current methods; installing again replaces
// the configuration (root, ignore list, debug pattern) without touching
// the snapshot, so one Restore always recovers the true originals. When
// opts.Root is empty the caller's directory is used.
func (h *Hijacker) Install(opts Options) error {
	if err := validateOptions(&opts); err != nil {
		return err
	}

	root := opts.Root
	if root == emptyString {
		_, file, _, ok := runtime.Caller(1)
		if !ok || file == emptyString {
			return errors.New(errMsgNoRoot)
		}
		root = filepath.Dir(file)
	}
	root = filepath.Clean(root)

	h.mu.Lock()
	h.res = newResolver(root)
	h.ignore = append([]string(nil), opts.Ignore...)
	h.pattern = opts.Debug
	snapshot := h.originals == nil
	if snapshot {
		h.originals = new([methodCount]Func)
	}
	for m := Method(0); m < methodCount; m++ {
		method := m
		prev := h.sink.Swap(method, func(args ...any) { h.dispatch(method, args) })
		if snapshot {
			h.originals[method] = prev
		}
	}
	h.mu.Unlock()

	h.debugging.Store(opts.Debug != emptyString)
	h.installed.Store(true)

	if opts.Debug != emptyString {
		debugHook.Store(h)
	} else {
		debugHook.CompareAndSwap(h, nil)
	}
	return nil
}

// Restore puts every snapshotted method back and ends the session. It is
// a no-op when nothing is installed.
func (h *Hijacker) Restore() {
	h.mu.Lock()
	table := h.originals
	h.originals = nil
	h.mu.Unlock()

	if table != nil {
		for m := Method(0); m < methodCount; m++ {
			h.sink.Swap(m, table[m])
		}
	}

	h.installed.Store(false)
	h.debugging.Store(false)
	debugHook.CompareAndSwap(h, nil)
}

// Installed reports whether the session currently holds the sink.
func (h *Hijacker) Installed() bool {
	return h.installed.Load()
}

// dispatch is the replacement body for every captured method.
func (h *Hijacker) dispatch(m Method, args []any) {
	if h.debugging.Load() && len(args) > 0 {
		if s, ok := args[0].(string); ok {
			if line, ok := tryParse(s); ok {
				h.routeDebug(m, line, args)
				return
			}
		}
	}

	h.mu.RLock()
	res := h.res
	h.mu.RUnlock()
	if res == nil {
		h.forwardOriginal(m, args)
		return
	}

	name := res.resolve(h.capture(1), emptyString)
	if h.ignoredBy(name) {
		h.forwardOriginal(m, args)
		return
	}

	logger := h.registry.GetLogger(name)
	if m == MethodDir && len(args) > 0 {
		args = []any{inspect(args[0])}
	}
	forward(logger, m.severity(), args)
}

// routeDebug handles a call whose first argument parsed as a
// debug-convention line. Namespaces outside the enable pattern and names
// on the ignore list keep their original rendering through the
// snapshotted method.
func (h *Hijacker) routeDebug(m Method, line debugLine, args []any) {
	if !h.matchDebug(stripLevel(line.name)) {
		h.forwardOriginal(m, args)
		return
	}
	entry := h.debugEntry(line.name)
	if entry.logger == nil {
		h.forwardOriginal(m, args)
		return
	}
	forward(entry.logger, extractLevel(line.name), append([]any{line.message}, args[1:]...))
}

// emitDebug receives calls redirected from the debug convention's own
// emitter. Namespaces the enable pattern rejects are dropped, as the
// convention itself would have dropped them before emitting.
func (h *Hijacker) emitDebug(namespace string, level Level, args []any) {
	name := dottedNamespace(namespace)
	if name == emptyString || !h.debugging.Load() || !h.matchDebug(stripLevel(name)) {
		return
	}
	entry := h.debugEntry(name)
	if entry.logger == nil {
		h.forwardOriginal(MethodDebug, append([]any{namespace}, args...))
		return
	}
	if !level.valid() {
		level = extractLevel(name)
	}
	forward(entry.logger, level, args)
}

// debugEntry returns the memoized routing decision for one namespace,
// resolving and caching it on first sight. The first stored entry wins
// when two goroutines race on the same namespace.
func (h *Hijacker) debugEntry(raw string) *cacheEntry {
	h.mu.RLock()
	entry := h.debugCache[raw]
	res := h.res
	h.mu.RUnlock()
	if entry != nil {
		return entry
	}

	var name string
	if res != nil {
		name = res.resolve(h.capture(1), stripLevel(raw))
	} else {
		name = stripLevel(raw)
	}

	entry = &cacheEntry{name: name}
	if !h.ignoredBy(name) {
		logger := h.registry.GetLogger(name)
		if canonical := logger.Name(); canonical != emptyString {
			entry.name = canonical
		}
		entry.logger = logger
	}

	h.mu.Lock()
	if prior, ok := h.debugCache[raw]; ok {
		h.mu.Unlock()
		return prior
	}
	h.debugCache[raw] = entry
	h.mu.Unlock()
	return entry
}

// ignoredBy applies the raw prefix test: any configured prefix the name
// starts with routes it to the original sink. The match is not
// segment-aware, so prefix "app.se" catches "app.server".
func (h *Hijacker) ignoredBy(name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, prefix := range h.ignore {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (h *Hijacker) matchDebug(namespace string) bool {
	h.mu.RLock()
	pattern := h.pattern
	h.mu.RUnlock()
	return matchPattern(pattern, namespace)
}

func (h *Hijacker) forwardOriginal(m Method, args []any) {
	h.mu.RLock()
	var fn Func
	if h.originals != nil {
		fn = h.originals[m]
	}
	h.mu.RUnlock()
	if fn != nil {
		fn(args...)
	}
}

func forward(logger Logger, level Level, args []any) {
	switch level {
	case LevelTrace:
		logger.Trace(args...)
	case LevelInfo:
		logger.Info(args...)
	case LevelWarn:
		logger.Warn(args...)
	case LevelError:
		logger.Error(args...)
	default:
		logger.Debug(args...)
	}
}
