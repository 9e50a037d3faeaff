package process

import (
	"errors"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestNewProcess(t *testing.T) {
	proc, err := NewProcess("test-id", []string{"echo", "hello"}, "")
	if err != nil {
		t.Fatalf("NewProcess: %v", err)
	}

	if proc.ID != "test-id" {
		t.Errorf("expected ID 'test-id', got %q", proc.ID)
	}
	if proc.Name() != "echo" {
		t.Errorf("expected Name 'echo', got %q", proc.Name())
	}
	if proc.CommandLine() != "echo hello" {
		t.Errorf("CommandLine = %q", proc.CommandLine())
	}
	if proc.State() != StateCreated {
		t.Errorf("expected state StateCreated, got %v", proc.State())
	}
	if proc.ExitCode() != -1 {
		t.Errorf("expected exit code -1, got %d", proc.ExitCode())
	}
	if proc.PID() != -1 {
		t.Errorf("expected PID -1 before start, got %d", proc.PID())
	}
	if proc.IsRunning() || proc.HasExited() {
		t.Error("expected fresh process to be neither running nor exited")
	}
}

func TestNewProcess_Empty(t *testing.T) {
	for _, argv := range [][]string{nil, {}, {""}} {
		if _, err := NewProcess("x", argv, ""); !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("NewProcess(%q) error = %v, want ErrEmptyCommand", argv, err)
		}
	}
}

func TestProcess_CombinedOutput(t *testing.T) {
	proc, _ := NewProcess("id", []string{"sh", "-c", "echo out; echo err 1>&2"}, "")
	if err := proc.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	<-proc.Done()

	got := string(proc.Output())
	if !strings.Contains(got, "out\n") || !strings.Contains(got, "err\n") {
		t.Errorf("Output = %q, want both streams", got)
	}
	if proc.State() != StateExited {
		t.Errorf("expected state StateExited, got %v", proc.State())
	}
	if proc.Runtime() <= 0 {
		t.Error("expected positive runtime")
	}
}

func TestProcess_Dir(t *testing.T) {
	dir := t.TempDir()
	proc, _ := NewProcess("id", []string{"pwd"}, dir)
	if err := proc.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	<-proc.Done()

	if got := strings.TrimSpace(string(proc.Output())); !strings.HasSuffix(got, dir) {
		t.Errorf("pwd = %q, want %q", got, dir)
	}
}

func TestProcess_StartTwice(t *testing.T) {
	proc, _ := NewProcess("test-id", []string{"echo", "hello"}, "")

	if err := proc.start(); err != nil {
		t.Fatalf("failed to start process: %v", err)
	}
	if err := proc.start(); err != ErrProcessAlreadyStarted {
		t.Errorf("expected ErrProcessAlreadyStarted, got %v", err)
	}
	<-proc.Done()
}

func TestProcess_StartMissingBinary(t *testing.T) {
	proc, _ := NewProcess("id", []string{"gotodoc-no-such-binary-xyz"}, "")

	if err := proc.start(); err == nil {
		t.Fatal("expected start error")
	}
	select {
	case <-proc.Done():
	default:
		t.Fatal("expected Done to be closed after failed start")
	}
	if proc.ExitCode() != -1 {
		t.Errorf("ExitCode = %d, want -1", proc.ExitCode())
	}
	if proc.ExitError() == nil {
		t.Error("expected ExitError to be set")
	}
}

func TestProcess_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantCode int
	}{
		{"success", []string{"true"}, 0},
		{"failure", []string{"false"}, 1},
		{"exit 42", []string{"sh", "-c", "exit 42"}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc, _ := NewProcess("test-id", tt.argv, "")
			if err := proc.start(); err != nil {
				t.Fatalf("failed to start process: %v", err)
			}
			<-proc.Done()

			if proc.ExitCode() != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, proc.ExitCode())
			}
		})
	}
}

func TestProcess_Signal(t *testing.T) {
	proc, _ := NewProcess("test-id", []string{"sleep", "10"}, "")
	if err := proc.start(); err != nil {
		t.Fatalf("failed to start process: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("failed to signal process: %v", err)
	}

	select {
	case <-proc.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("process did not exit after SIGTERM")
	}

	if proc.State() != StateKilled {
		t.Errorf("expected state StateKilled, got %v", proc.State())
	}
}

func TestProcess_SignalNotStarted(t *testing.T) {
	proc, _ := NewProcess("id", []string{"true"}, "")
	if err := proc.Kill(); !errors.Is(err, ErrProcessNotStarted) {
		t.Errorf("Kill() = %v, want ErrProcessNotStarted", err)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateCreated, "created"},
		{StateRunning, "running"},
		{StateExited, "exited"},
		{StateKilled, "killed"},
		{State(99), "unknown(99)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
