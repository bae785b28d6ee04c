package logger

import (
	"EnvSet/internal/console"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Helper to resolve message from any type to string
func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		var parts []string
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

// logAt formats msg, renders console tags and emits one record per line.
func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	msgStr := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil
	}
	msgStr = console.Parse(msgStr)

	reset := ""
	if console.ColorsEnabled() {
		reset = console.CodeReset
	}

	for i, line := range strings.Split(msgStr, "\n") {
		// Reset every line so colors never bleed into the next timestamp
		r := slog.NewRecord(t, level, line+reset, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

// Custom log levels
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
)

// LevelVar allows dynamic changing of the log level
var LevelVar = new(slog.LevelVar)
var FileLevelVar = new(slog.LevelVar)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

// SetLevel changes the console level. The file level follows it down but
// never rises above Info.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

var levelNames = map[slog.Level]string{
	LevelTrace:  "[TRACE ]",
	LevelDebug:  "[DEBUG ]",
	LevelInfo:   "[INFO  ]",
	LevelNotice: "[NOTICE]",
	LevelWarn:   "[WARN  ]",
	LevelError:  "[ERROR ]",
}

var levelColors = map[slog.Level]string{
	LevelTrace:  console.CodeBlue,
	LevelDebug:  console.CodeBlue,
	LevelInfo:   console.CodeBlue,
	LevelNotice: console.CodeGreen,
	LevelWarn:   console.CodeYellow,
	LevelError:  console.CodeRed,
}

// levelReplacer renders the level attribute using the custom level names.
func levelReplacer(color bool) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key != slog.LevelKey {
			return a
		}
		level := a.Value.Any().(slog.Level)
		name, ok := levelNames[level]
		if !ok {
			name = "[" + level.String() + "]"
		}
		if color {
			name = levelColors[level] + name + console.CodeReset
		}
		a.Value = slog.StringValue(name + "  ")
		return a
	}
}

// Options configures NewLogger.
type Options struct {
	// Console receives colored output. Defaults to os.Stderr.
	Console io.Writer
	// Color enables ANSI colors on the console handler.
	Color bool
	// File, when set, receives a plain-text copy of the log.
	File io.Writer
}

// NewLogger builds the application logger: a console handler and an
// optional file handler behind a FanoutHandler.
func NewLogger(opts Options) *slog.Logger {
	if opts.Console == nil {
		opts.Console = os.Stderr
	}

	consoleHandler := tint.NewHandler(opts.Console, &tint.Options{
		Level:       LevelVar,
		TimeFormat:  "2006-01-02 15:04:05",
		NoColor:     !opts.Color,
		ReplaceAttr: levelReplacer(opts.Color),
	})
	handlers := []slog.Handler{consoleHandler}

	if opts.File != nil {
		fileHandler := tint.NewHandler(opts.File, &tint.Options{
			Level:       FileLevelVar,
			TimeFormat:  "2006-01-02 15:04:05",
			NoColor:     true, // Important
			ReplaceAttr: levelReplacer(false),
		})
		handlers = append(handlers, fileHandler)
	}

	return slog.New(&FanoutHandler{handlers: handlers})
}

// NewDefaultLogger builds a stderr logger with colors when stderr is a
// terminal.
func NewDefaultLogger() *slog.Logger {
	return NewLogger(Options{
		Console: os.Stderr,
		Color:   console.IsTerminal(os.Stderr) && console.ColorsEnabled(),
	})
}

// OpenLogFile opens path for appending log output.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// Global helpers for custom levels that don't satisfy standard slog methods
func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}
