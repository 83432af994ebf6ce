// Package logger builds the zap logger shared by the demos. Entries go to stderr,
// are appended to a log file on disk, and the most recent lines are kept in
// memory so an overlay can show them.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFilePath is the log file, relative to the working directory.
const LogFilePath = "logs/demo.log"

// DefaultHistory is how many recent lines are kept in memory.
const DefaultHistory = 64

// Config selects level and console format. An empty File disables file output.
type Config struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
	History     int    `yaml:"history"`
}

// DefaultConfig logs info and above to stderr and LogFilePath.
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		File:    LogFilePath,
		History: DefaultHistory,
	}
}

// Logger is a zap logger plus its in-memory history.
type Logger struct {
	*zap.Logger
	history *ring
	file    *os.File
}

// New builds a Logger from cfg. The log directory is created if needed.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var encCfg zapcore.EncoderConfig
	if cfg.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	console := zapcore.NewConsoleEncoder(encCfg)

	history := newRing(cfg.History)
	cores := []zapcore.Core{
		zapcore.NewCore(console, zapcore.Lock(os.Stderr), level),
		zapcore.NewCore(console, zapcore.AddSync(history), level),
	}

	l := &Logger{history: history}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(f), level))
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}
	l.Logger = zap.New(zapcore.NewTee(cores...), opts...)
	return l, nil
}

// Lines returns a copy of the most recent lines, oldest first.
func (l *Logger) Lines() []string {
	return l.history.lines()
}

// Close flushes and releases the log file.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// ring is a fixed-size line buffer usable as a zap WriteSyncer.
type ring struct {
	mu    sync.Mutex
	buf   []string
	next  int
	count int
}

func newRing(size int) *ring {
	if size <= 0 {
		size = DefaultHistory
	}
	return &ring{buf: make([]string, size)}
}

func (r *ring) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range strings.Split(text, "\n") {
		r.buf[r.next] = line
		r.next = (r.next + 1) % len(r.buf)
		if r.count < len(r.buf) {
			r.count++
		}
	}
	return len(p), nil
}

func (r *ring) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, r.count)
	start := (r.next - r.count + len(r.buf)) % len(r.buf)
	for i := 0; i < r.count; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}
