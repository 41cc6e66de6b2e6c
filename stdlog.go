package logjack

import (
	"io"
	"log"
	"strings"
)

// stdlogWriter adapts a console into an io.Writer the standard library
// logger can be pointed at. Each write is one log line; a textual level
// prefix on the line picks the console method.
type stdlogWriter struct {
	c *Console
}

func (w stdlogWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSuffix(string(p), "\n")
	switch detectLevel(msg) {
	case LevelError:
		w.c.Error(msg)
	case LevelWarn:
		w.c.Warn(msg)
	default:
		w.c.Info(msg)
	}
	return len(p), nil
}

func detectLevel(msg string) Level {
	up := strings.ToUpper(strings.TrimSpace(msg))
	switch {
	case strings.HasPrefix(up, "ERROR"):
		return LevelError
	case strings.HasPrefix(up, "WARN"):
		return LevelWarn
	default:
		return LevelInfo
	}
}

// BridgeStdlog points the standard library's default logger at c, so
// that code logging through package log flows into whatever session
// holds the console. Flags and prefix are cleared while bridged. The
// returned func undoes the redirect.
func BridgeStdlog(c *Console) func() {
	flags := log.Flags()
	prefix := log.Prefix()
	out := log.Writer()

	log.SetFlags(0)
	log.SetPrefix(emptyString)
	log.SetOutput(stdlogWriter{c: c})

	return func() {
		log.SetFlags(flags)
		log.SetPrefix(prefix)
		log.SetOutput(out)
	}
}

var _ io.Writer = stdlogWriter{}
