package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"paradigm-agent/internal/application/port/output"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

const DefaultDir = "log"

type Config struct {
	Dir   string
	Level string
	RunID string
}

// LoggerAdapter writes JSON lines through a zap sugared logger. Loggers
// derived with WithField, WithFields or Named share the parent's file.
type LoggerAdapter struct {
	sugar  *zap.SugaredLogger
	closer io.Closer
}

// NewLoggerAdapter opens {Dir}/{timestamp}_{task}.log for one run.
func NewLoggerAdapter(taskName string, cfg Config) (*LoggerAdapter, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.Create(filepath.Join(dir, Filename(taskName, time.Now())))
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	l := New(file, level)
	l.closer = file
	if cfg.RunID != "" {
		l.sugar = l.sugar.With("run_id", cfg.RunID)
	}
	return l, nil
}

func New(w io.Writer, level zapcore.Level) *LoggerAdapter {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), level)
	return &LoggerAdapter{sugar: zap.New(core).Sugar()}
}

func NewNopLogger() *LoggerAdapter {
	return &LoggerAdapter{sugar: zap.NewNop().Sugar()}
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return &LoggerAdapter{sugar: l.sugar.With(key, value), closer: l.closer}
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return &LoggerAdapter{sugar: l.sugar.With(args...), closer: l.closer}
}

func (l *LoggerAdapter) Named(component string) output.LoggerPort {
	return &LoggerAdapter{sugar: l.sugar.Named(component), closer: l.closer}
}

func (l *LoggerAdapter) Close() error {
	_ = l.sugar.Sync()
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Filename builds the run log file name from the start time and task.
func Filename(taskName string, at time.Time) string {
	return fmt.Sprintf("%s_%s.log", at.Format("2006-01-02_15-04-05"), sanitize(taskName))
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

func sanitize(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	s = string(result)
	if s == "" {
		return "run"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
