package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type recordingLogger struct {
	errors []string
	debugs []string
}

func (r *recordingLogger) Error(msg any, keyvals ...any) {
	r.errors = append(r.errors, fmt.Sprint(append([]any{msg}, keyvals...)...))
}

func (r *recordingLogger) Debug(msg any, keyvals ...any) {
	r.debugs = append(r.debugs, fmt.Sprint(append([]any{msg}, keyvals...)...))
}

func TestReport(t *testing.T) {
	l := &recordingLogger{}
	err := Internal(errors.New("root cause"), "store unreadable")

	Report(l, err)

	if len(l.errors) != 2 {
		t.Fatalf("got %d error lines, want 2: %v", len(l.errors), l.errors)
	}
	if !strings.Contains(l.errors[0], err.Key) {
		t.Errorf("headline %q should contain key", l.errors[0])
	}
	if !strings.Contains(l.errors[1], "store unreadable") {
		t.Errorf("log line %q should contain detail", l.errors[1])
	}
	if len(l.debugs) != 1 || !strings.Contains(l.debugs[0], "root cause") {
		t.Errorf("debug lines = %v, want cause", l.debugs)
	}
}

func TestReportPlainError(t *testing.T) {
	l := &recordingLogger{}
	Report(l, errors.New("plain"))
	if len(l.errors) != 1 || !strings.Contains(l.errors[0], "plain") {
		t.Errorf("errors = %v", l.errors)
	}
}

func TestReportNil(t *testing.T) {
	l := &recordingLogger{}
	Report(l, nil)
	Report(nil, errors.New("ignored"))
	if len(l.errors) != 0 {
		t.Errorf("errors = %v, want none", l.errors)
	}
}
