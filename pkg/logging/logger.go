package logging

// Logger is the logging capability handed to components that must not depend
// on process-wide logging state.
type Logger interface {
	Debug(messageFmt string, args ...interface{})
	Info(messageFmt string, args ...interface{})
	Warn(messageFmt string, args ...interface{})
	Error(err error, messageFmt string, args ...interface{})
}

// For returns a Logger that tags every entry with the given subsystem and
// writes through the logger configured by Init.
func For(subsystem string) Logger {
	return subsystemLogger(subsystem)
}

type subsystemLogger string

func (s subsystemLogger) Debug(messageFmt string, args ...interface{}) {
	Debug(string(s), messageFmt, args...)
}

func (s subsystemLogger) Info(messageFmt string, args ...interface{}) {
	Info(string(s), messageFmt, args...)
}

func (s subsystemLogger) Warn(messageFmt string, args ...interface{}) {
	Warn(string(s), messageFmt, args...)
}

func (s subsystemLogger) Error(err error, messageFmt string, args ...interface{}) {
	Error(string(s), err, messageFmt, args...)
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return discard{}
}

type discard struct{}

func (discard) Debug(string, ...interface{})        {}
func (discard) Info(string, ...interface{})         {}
func (discard) Warn(string, ...interface{})         {}
func (discard) Error(error, string, ...interface{}) {}
