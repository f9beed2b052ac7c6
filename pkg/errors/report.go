package errors

import "errors"

// Logger is the subset of *log.Logger used by Report.
type Logger interface {
	Error(msg any, keyvals ...any)
	Debug(msg any, keyvals ...any)
}

// Report logs err as one block: a headline with code, status and key,
// followed by the error's log lines and, at debug level, its cause.
// Errors that are not *Error are logged with their full text.
func Report(l Logger, err error) {
	if l == nil || err == nil {
		return
	}
	var e *Error
	if !errors.As(err, &e) {
		l.Error("unexpected error", "err", err)
		return
	}
	kv := []any{"code", e.Code, "status", e.Status}
	if e.Key != "" {
		kv = append(kv, "key", e.Key)
	}
	l.Error(string(e.Code)+" occurred", kv...)
	for _, line := range e.LogLines {
		l.Error("\t" + line)
	}
	if e.Cause != nil {
		l.Debug("error details", "cause", e.Cause)
	}
}
