package core

// Logger is implemented by the logging services (console, rollbar).
// args may carry errors, diagnostic maps or the current session user.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
