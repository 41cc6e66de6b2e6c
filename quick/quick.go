// Package quick captures the default console with a zerolog-backed
// registry in one call, for programs that want call-site-named logging
// without owning the session plumbing.
package quick

import (
	"path/filepath"
	"runtime"
	"sync"

	"github.com/logjack/logjack"
	"github.com/logjack/logjack/zeroreg"
)

var (
	mu sync.Mutex
	h  *logjack.Hijacker
)

// Install routes the default console to console-formatted zerolog
// output, attributing calls relative to root. An empty root means the
// caller's directory. Repeated calls reconfigure the same session, so a
// single Restore still recovers the pristine console.
func Install(root string, ignore ...string) error {
	if root == "" {
		if _, file, _, ok := runtime.Caller(1); ok && file != "" {
			root = filepath.Dir(file)
		}
	}

	mu.Lock()
	defer mu.Unlock()

	if h == nil {
		reg, err := zeroreg.New(zeroreg.Config{ConsoleLogging: true})
		if err != nil {
			return err
		}
		session, err := logjack.New(logjack.Std(), reg)
		if err != nil {
			return err
		}
		h = session
	}

	return h.Install(logjack.Options{Root: root, Ignore: ignore})
}

// Restore puts the console back. Safe to call without a prior Install.
func Restore() {
	mu.Lock()
	defer mu.Unlock()
	if h != nil {
		h.Restore()
	}
}
