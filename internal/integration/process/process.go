package process

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// State represents the state of a process.
type State int

const (
	// StateCreated indicates the process has been created but not started.
	StateCreated State = iota
	// StateRunning indicates the process is currently running.
	StateRunning
	// StateExited indicates the process has exited normally or with an error.
	StateExited
	// StateKilled indicates the process was killed by a signal.
	StateKilled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

const waitDelay = time.Second

// Process is one documentation command. Its stdout and stderr are
// captured into a single buffer in the order the command writes them.
type Process struct {
	// ID is the unique identifier for this process.
	ID string

	// Argv is the command line, program first.
	Argv []string

	// Cmd is the underlying exec.Cmd.
	Cmd *exec.Cmd

	// Started is the time the process was started.
	Started time.Time

	output   lockedBuffer
	done     chan struct{}
	state    atomic.Int32
	exitCode atomic.Int32
	runtime  atomic.Int64

	mu      sync.RWMutex
	exitErr error

	waitOnce sync.Once
}

// NewProcess creates a Process for argv run in dir. An empty dir runs
// the command in the current working directory.
func NewProcess(id string, argv []string, dir string) (*Process, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	// Grandchildren holding the output pipe must not stall Wait.
	cmd.WaitDelay = waitDelay

	p := &Process{
		ID:   id,
		Argv: append([]string(nil), argv...),
		Cmd:  cmd,
		done: make(chan struct{}),
	}
	cmd.Stdout = &p.output
	cmd.Stderr = &p.output

	p.state.Store(int32(StateCreated))
	p.exitCode.Store(-1)
	return p, nil
}

// Name returns the program name.
func (p *Process) Name() string {
	return p.Argv[0]
}

// CommandLine returns argv joined with spaces.
func (p *Process) CommandLine() string {
	return strings.Join(p.Argv, " ")
}

// State returns the current process state.
func (p *Process) State() State {
	return State(p.state.Load())
}

// ExitCode returns the process exit code, or -1 if it has not exited
// or could not report one.
func (p *Process) ExitCode() int {
	return int(p.exitCode.Load())
}

// ExitError returns the error from starting or waiting on the process.
func (p *Process) ExitError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitErr
}

// Output returns a copy of the bytes written so far.
func (p *Process) Output() []byte {
	return p.output.Bytes()
}

// Done returns a channel that is closed when the process exits.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// IsRunning returns true if the process is currently running.
func (p *Process) IsRunning() bool {
	return p.State() == StateRunning
}

// HasExited returns true if the process has exited (normally or killed).
func (p *Process) HasExited() bool {
	state := p.State()
	return state == StateExited || state == StateKilled
}

// PID returns the process ID, or -1 if not started.
func (p *Process) PID() int {
	if p.Cmd.Process == nil {
		return -1
	}
	return p.Cmd.Process.Pid
}

// Signal sends a signal to the process.
func (p *Process) Signal(sig os.Signal) error {
	if !p.IsRunning() || p.Cmd.Process == nil {
		return fmt.Errorf("signal %s: %w", p.Name(), ErrProcessNotStarted)
	}
	return p.Cmd.Process.Signal(sig)
}

// Kill sends SIGKILL to the process.
func (p *Process) Kill() error {
	return p.Signal(syscall.SIGKILL)
}

// Terminate sends SIGTERM to the process.
func (p *Process) Terminate() error {
	return p.Signal(syscall.SIGTERM)
}

// Runtime returns how long the process ran, or has been running.
func (p *Process) Runtime() time.Duration {
	if d := p.runtime.Load(); d > 0 {
		return time.Duration(d)
	}
	if p.Started.IsZero() {
		return 0
	}
	return time.Since(p.Started)
}

func (p *Process) start() error {
	if !p.state.CompareAndSwap(int32(StateCreated), int32(StateRunning)) {
		return ErrProcessAlreadyStarted
	}

	if err := p.Cmd.Start(); err != nil {
		p.finish(err, -1, StateExited)
		return fmt.Errorf("start %s: %w", p.Name(), err)
	}

	p.Started = time.Now()
	go p.waitLoop()
	return nil
}

func (p *Process) waitLoop() {
	p.waitOnce.Do(func() {
		err := p.Cmd.Wait()

		exitCode := 0
		state := StateExited

		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
				if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
					state = StateKilled
				}
			} else {
				exitCode = -1
			}
		}

		p.runtime.Store(int64(time.Since(p.Started)))
		p.finish(err, exitCode, state)
	})
}

func (p *Process) finish(err error, exitCode int, state State) {
	p.mu.Lock()
	p.exitErr = err
	p.mu.Unlock()

	p.exitCode.Store(int32(exitCode))
	p.state.Store(int32(state))
	close(p.done)
}

// lockedBuffer serializes writes from the stdout and stderr copiers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

// Sentinel errors for process package.
var (
	// ErrEmptyCommand is returned for an empty argv.
	ErrEmptyCommand = errors.New("empty command")

	// ErrProcessNotStarted is returned when operations require a started process.
	ErrProcessNotStarted = errors.New("process not started")

	// ErrProcessAlreadyStarted is returned when trying to start an already running process.
	ErrProcessAlreadyStarted = errors.New("process already started")
)
