package clog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// loggerImpl 是 Logger 接口的具体实现
type loggerImpl struct {
	slogger   *slog.Logger
	config    *Config
	namespace string
}

// newLogger 创建 Logger 实例（内部使用）
func newLogger(config *Config, opts *options) (Logger, error) {
	w, err := resolveWriter(config, opts)
	if err != nil {
		return nil, err
	}

	level, _ := ParseLevel(config.Level)
	handlerOpts := &slog.HandlerOptions{
		Level:     level.slogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	logger := &loggerImpl{
		slogger:   slog.New(handler),
		config:    config,
		namespace: strings.Join(opts.namespaceParts, "."),
	}

	return logger, nil
}

// resolveWriter 根据配置选择输出目标
func resolveWriter(config *Config, opts *options) (io.Writer, error) {
	if opts.writer != nil {
		return opts.writer, nil
	}
	switch config.Output {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		f, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return f, nil
	}
}

func (l *loggerImpl) Debug(msg string, fields ...Field) { l.log(slog.LevelDebug, msg, fields) }
func (l *loggerImpl) Info(msg string, fields ...Field)  { l.log(slog.LevelInfo, msg, fields) }
func (l *loggerImpl) Warn(msg string, fields ...Field)  { l.log(slog.LevelWarn, msg, fields) }
func (l *loggerImpl) Error(msg string, fields ...Field) { l.log(slog.LevelError, msg, fields) }

func (l *loggerImpl) log(level slog.Level, msg string, fields []Field) {
	attrs := fields
	if l.namespace != "" {
		attrs = make([]Field, 0, len(fields)+1)
		attrs = append(attrs, slog.String("namespace", l.namespace))
		attrs = append(attrs, fields...)
	}
	l.slogger.LogAttrs(context.Background(), level, msg, attrs...)
}

func (l *loggerImpl) With(fields ...Field) Logger {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, f)
	}
	return &loggerImpl{
		slogger:   l.slogger.With(args...),
		config:    l.config,
		namespace: l.namespace,
	}
}

func (l *loggerImpl) WithNamespace(parts ...string) Logger {
	ns := l.namespace
	joined := strings.Join(parts, ".")
	if ns == "" {
		ns = joined
	} else if joined != "" {
		ns = ns + "." + joined
	}
	return &loggerImpl{
		slogger:   l.slogger,
		config:    l.config,
		namespace: ns,
	}
}
