package core

// Logger is implemented by services/logger. Extra args may carry wrapped
// errors, maps of context data or a profile of the acting admin.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
