package core

// Logger is the application-wide logging contract.
// Implementations may interpret extra args as structured context;
// a user.User arg identifies the acting account where supported.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
