package app

import (
	"errors"
	"strings"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{"op only", &OperationError{Op: "open"}, "open"},
		{"with target", NewOperationError("open", "http://php.net/x", nil), "open http://php.net/x"},
		{"with err", NewOperationError("run", "pydoc os", base), "run pydoc os: boom"},
		{"with context", NewOperationError("run", "pydoc", base).WithContext("start"), "run pydoc (start): boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Nil(t *testing.T) {
	var e *OperationError
	if e.WithContext("x") != nil {
		t.Error("WithContext on nil should return nil")
	}
	if e.Error() != "" || e.Unwrap() != nil {
		t.Error("nil OperationError should be empty")
	}
}

func TestOperationError_Is(t *testing.T) {
	err := NewOperationError("lookup", "", ErrEmptyToken)
	if !errors.Is(err, ErrEmptyToken) {
		t.Error("errors.Is should see the wrapped error")
	}
	var op *OperationError
	if !errors.As(err, &op) || op.Op != "lookup" {
		t.Error("errors.As failed")
	}
}

func TestInitError(t *testing.T) {
	base := errors.New("no tty")
	err := &InitError{Component: "panel", Err: base}
	if err.Error() != "init panel: no tty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("InitError should unwrap")
	}
}

func TestRecoveredPanicError_Error(t *testing.T) {
	err := NewRecoveredPanicError("bad", "")
	if err.Error() != "panic: bad" {
		t.Errorf("Error() = %q", err.Error())
	}

	err = NewRecoveredPanicError(42, "goroutine 1")
	if !strings.Contains(err.Error(), "panic: 42\ngoroutine 1") {
		t.Errorf("Error() = %q", err.Error())
	}

	var nilErr *RecoveredPanicError
	if nilErr.Error() != "" {
		t.Error("nil should be empty")
	}
}
