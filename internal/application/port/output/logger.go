package output

// LoggerPort is the structured run log. Args are alternating key/value pairs.
type LoggerPort interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	WithField(key string, value any) LoggerPort
	WithFields(fields map[string]any) LoggerPort
	Named(component string) LoggerPort

	Close() error
}
