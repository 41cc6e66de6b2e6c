// Package zeroreg is a zerolog-backed logger registry. Loggers are
// memoized per dotted name, with names folded to lower case, and share
// one output pipeline with optional console formatting and rotating
// file channels.
package zeroreg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/logjack/logjack"
)

const (
	emptyString        = ""
	defaultLogFileName = "app.log"

	errMsgConfigInvalid = "invalid registry config"
	errMsgNoChannels    = "no logging channels enabled"
	errMsgBadLevel      = "setting logging level"
)

// Config controls the shared output pipeline.
type Config struct {
	// Level is the minimum level emitted. Empty means everything.
	Level string

	WithTimestamp  bool
	ConsoleLogging bool
	FileLogging    bool

	LogFileDir        string `validate:"required_if=FileLogging true"`
	LogFileName       string
	LogFileMaxBackups int `validate:"gte=0"`
	LogFileMaxAgeDays int `validate:"gte=0"`
	LogFileMaxSizeMB  int `validate:"gte=0"`

	// Writer overrides the console channel's destination and formatting.
	Writer io.Writer
}

// Registry hands out named loggers over one base pipeline.
type Registry struct {
	base    zerolog.Logger
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// sprintPool reduces allocations when folding argument lists into a
// single message string.
var sprintPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// New builds the output pipeline and returns a registry over it. At
// least one channel must be enabled.
func New(cfg Config) (*Registry, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	var writers []io.Writer

	if cfg.FileLogging {
		if err := os.MkdirAll(cfg.LogFileDir, os.ModePerm); err != nil {
			return nil, errors.Wrap(err, "failed to create logs directory")
		}
		name := cfg.LogFileName
		if name == emptyString {
			name = defaultLogFileName
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogFileDir, name),
			MaxBackups: cfg.LogFileMaxBackups,
			MaxAge:     cfg.LogFileMaxAgeDays,
			MaxSize:    cfg.LogFileMaxSizeMB,
		})
	}
	if cfg.ConsoleLogging {
		out := io.Writer(zerolog.ConsoleWriter{Out: os.Stderr})
		if cfg.Writer != nil {
			out = cfg.Writer
		}
		writers = append(writers, out)
	}
	if len(writers) == 0 {
		return nil, errors.New(errMsgNoChannels)
	}

	base := zerolog.New(io.MultiWriter(writers...))

	level := zerolog.TraceLevel
	if cfg.Level != emptyString {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return nil, errors.Wrap(err, errMsgBadLevel)
		}
		level = parsed
	}
	base = base.Level(level)

	if cfg.WithTimestamp {
		base = base.With().Timestamp().Logger()
	}

	return &Registry{
		base:    base,
		loggers: make(map[string]*Logger),
	}, nil
}

// GetLogger returns the logger registered under name, creating it on
// first use. Names are folded to lower case, so mixed-case requests for
// the same dotted path share one logger.
func (r *Registry) GetLogger(name string) logjack.Logger {
	folded := strings.ToLower(name)

	r.mu.RLock()
	l := r.loggers[folded]
	r.mu.RUnlock()
	if l != nil {
		return l
	}

	zl := r.base.With().Str("logger", folded).Logger()

	r.mu.Lock()
	defer r.mu.Unlock()
	if prior := r.loggers[folded]; prior != nil {
		return prior
	}
	l = &Logger{name: folded, zl: zl}
	r.loggers[folded] = l
	return l
}

// Logger writes console-style argument lists as zerolog events.
type Logger struct {
	name string
	zl   zerolog.Logger
}

// Name returns the name the logger was registered under.
func (l *Logger) Name() string { return l.name }

func (l *Logger) Trace(args ...any) { l.write(l.zl.Trace(), args) }
func (l *Logger) Debug(args ...any) { l.write(l.zl.Debug(), args) }
func (l *Logger) Info(args ...any)  { l.write(l.zl.Info(), args) }
func (l *Logger) Warn(args ...any)  { l.write(l.zl.Warn(), args) }
func (l *Logger) Error(args ...any) { l.write(l.zl.Error(), args) }

func (l *Logger) write(e *zerolog.Event, args []any) {
	if e == nil {
		return
	}

	buf := sprintPool.Get().(*strings.Builder)
	buf.Reset()
	defer sprintPool.Put(buf)

	fmt.Fprintln(buf, args...)
	e.Msg(strings.TrimSuffix(buf.String(), "\n"))
}

var (
	_ logjack.Registry = (*Registry)(nil)
	_ logjack.Logger   = (*Logger)(nil)
)
