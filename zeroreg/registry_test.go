package zeroreg

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// newBufferRegistry returns a registry whose console channel writes raw
// JSON lines into the returned buffer.
func newBufferRegistry(t testing.TB, level string) (*Registry, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	reg, err := New(Config{Level: level, ConsoleLogging: true, Writer: buf})
	require.NoError(t, err)
	return reg, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestNewErrors(t *testing.T) {
	// No channels enabled
	{
		_, err := New(Config{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "no logging channels enabled")
	}

	// File logging without a directory
	{
		_, err := New(Config{FileLogging: true})
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid registry config")
	}

	// Unknown level
	{
		_, err := New(Config{ConsoleLogging: true, Level: "notalevel"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "setting logging level")
	}
}

func TestFileLogging(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	reg, err := New(Config{FileLogging: true, LogFileDir: dir, LogFileName: "test.log"})
	require.NoError(t, err)

	reg.GetLogger("App.Server").Info("listening on port", 3000)

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &m))
	require.Equal(t, "info", m["level"])
	require.Equal(t, "app.server", m["logger"])
	require.Equal(t, "listening on port 3000", m["message"])
}

func TestFileLoggingDefaultName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	reg, err := New(Config{FileLogging: true, LogFileDir: dir})
	require.NoError(t, err)

	reg.GetLogger("app").Error("boom")

	_, err = os.Stat(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
}

func TestLevels(t *testing.T) {
	reg, buf := newBufferRegistry(t, "")
	l := reg.GetLogger("app")

	l.Trace("t")
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 5)
	require.Equal(t, "trace", lines[0]["level"])
	require.Equal(t, "debug", lines[1]["level"])
	require.Equal(t, "info", lines[2]["level"])
	require.Equal(t, "warn", lines[3]["level"])
	require.Equal(t, "error", lines[4]["level"])
}

func TestLevelFiltering(t *testing.T) {
	reg, buf := newBufferRegistry(t, "warn")
	l := reg.GetLogger("app")

	l.Trace("hidden")
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("kept")
	l.Error("kept")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	require.Equal(t, "warn", lines[0]["level"])
	require.Equal(t, "error", lines[1]["level"])
}

func TestCaseFolding(t *testing.T) {
	reg, _ := newBufferRegistry(t, "")

	a := reg.GetLogger("App.Server")
	b := reg.GetLogger("app.SERVER")
	require.Same(t, a, b)
	require.Equal(t, "app.server", a.Name())
}

func TestTimestamp(t *testing.T) {
	buf := &bytes.Buffer{}
	reg, err := New(Config{ConsoleLogging: true, Writer: buf, WithTimestamp: true})
	require.NoError(t, err)

	reg.GetLogger("app").Info("stamped")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "time")
}

func TestConcurrentAccess(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	reg, err := New(Config{FileLogging: true, LogFileDir: dir, LogFileName: "conc.log"})
	require.NoError(t, err)

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(n int) {
			defer wg.Done()
			l := reg.GetLogger("app.worker")
			l.Info("iteration", n)
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(filepath.Join(dir, "conc.log"))
	require.NoError(t, err)
	require.Len(t, decodeLines(t, bytes.NewBuffer(data)), goroutines)
}
