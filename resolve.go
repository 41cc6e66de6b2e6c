package logjack

import (
	"path/filepath"
	"runtime"
	"strings"
)

// resolver derives dotted logger names from captured frames, relative to
// a project root fixed at install time.
type resolver struct {
	root       string
	rootParent string
	rootBase   string
	selfDir    string
}

func newResolver(root string) *resolver {
	r := &resolver{
		root:       root,
		rootParent: filepath.Dir(root),
		rootBase:   trimExt(filepath.Base(root)),
	}
	if _, file, _, ok := runtime.Caller(0); ok {
		r.selfDir = filepath.Dir(file)
	}
	return r
}

// resolve walks frames newest first and attributes the call to the first
// frame that is not instrumentation. debugName, when non-empty, is the
// level-stripped namespace of a recognized debug line; it becomes the
// final segment unless the derived name already ends with it.
func (r *resolver) resolve(frames []CallSite, debugName string) string {
	hasDebug := debugName != emptyString

	var file string
	for _, f := range frames {
		if r.skip(f.File, hasDebug) {
			continue
		}
		file = f.File
		break
	}

	name := r.dotted(file)
	if hasDebug && name != debugName && !strings.HasSuffix(name, "."+debugName) {
		name += "." + debugName
	}
	return name
}

// skip reports whether a frame belongs to instrumentation rather than to
// the caller being attributed: this package itself (a re-entrant call
// such as the console's own trace lands here), the stdlib log shim, and,
// only while a debug namespace is in hand, the debug convention's
// internal files.
func (r *resolver) skip(file string, hasDebugName bool) bool {
	if file == emptyString {
		return true
	}
	if r.selfDir != emptyString && filepath.Dir(file) == r.selfDir {
		return true
	}
	if strings.HasSuffix(file, stdlogShim) {
		return true
	}
	if hasDebugName {
		for _, p := range debugInternalPaths {
			if strings.Contains(file, p) {
				return true
			}
		}
	}
	return false
}

// dotted turns a file path into the dotted name rooted at the project
// directory's basename: the path is taken relative to the root's parent,
// the extension dropped, separators replaced with dots and every lib
// segment elided. Attribution failures degrade to the root basename; the
// result is never empty.
func (r *resolver) dotted(file string) string {
	if file == emptyString {
		return r.rootBase
	}

	rel, err := filepath.Rel(r.rootParent, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return r.rootBase + "." + trimExt(filepath.Base(file))
	}

	name := strings.ReplaceAll(trimExt(rel), string(filepath.Separator), ".")
	for strings.Contains(name, libSegment) {
		name = strings.ReplaceAll(name, libSegment, ".")
	}
	return name
}

func trimExt(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p))
}
