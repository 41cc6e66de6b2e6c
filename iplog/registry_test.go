package iplog

import (
	"testing"

	logging "github.com/ipfs/go-log/v2"
	"github.com/stretchr/testify/require"

	"github.com/logjack/logjack"
)

func TestGetLoggerMemoizes(t *testing.T) {
	reg := NewRegistry()

	a := reg.GetLogger("app.server")
	b := reg.GetLogger("app.server")
	require.Same(t, a, b)
	require.Equal(t, "app.server", a.Name())

	// Different names get different handles
	c := reg.GetLogger("db.pool")
	require.NotSame(t, a, c)
}

func TestLevelMapping(t *testing.T) {
	require.Equal(t, logging.LevelDebug, goLogLevel(logjack.LevelTrace))
	require.Equal(t, logging.LevelDebug, goLogLevel(logjack.LevelDebug))
	require.Equal(t, logging.LevelInfo, goLogLevel(logjack.LevelInfo))
	require.Equal(t, logging.LevelWarn, goLogLevel(logjack.LevelWarn))
	require.Equal(t, logging.LevelError, goLogLevel(logjack.LevelError))
}

func TestLoggerEmits(t *testing.T) {
	reg := NewRegistry()
	SetLevel(logjack.LevelDebug)

	// All five methods complete without touching the process console
	l := reg.GetLogger("app.smoke")
	l.Trace("t")
	l.Debug("d", 1)
	l.Info("i", "joined", 2)
	l.Warn("w")
	l.Error("e")
}
