package process

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Supervisor tracks running documentation commands so they can be
// listed and killed when the host shuts down.
//
// Supervisor is safe for concurrent use.
type Supervisor struct {
	mu        sync.RWMutex
	processes map[string]*Process

	shutdown chan struct{}
	closed   atomic.Bool

	// maxProcesses limits the number of concurrent processes (0 = unlimited)
	maxProcesses int

	onProcessExit func(p *Process)
}

// SupervisorOption configures a Supervisor instance.
type SupervisorOption func(*Supervisor)

// WithMaxProcesses sets the maximum number of concurrent processes.
// A value of 0 (default) means unlimited.
func WithMaxProcesses(max int) SupervisorOption {
	return func(s *Supervisor) {
		s.maxProcesses = max
	}
}

// WithProcessExitCallback sets a callback for when processes exit.
// It runs on the supervisor's monitor goroutine.
func WithProcessExitCallback(fn func(p *Process)) SupervisorOption {
	return func(s *Supervisor) {
		s.onProcessExit = fn
	}
}

// NewSupervisor creates a new process supervisor.
func NewSupervisor(opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		processes: make(map[string]*Process),
		shutdown:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs argv in dir under a fresh ID.
func (s *Supervisor) Start(argv []string, dir string) (*Process, error) {
	return s.StartWithID(uuid.New().String(), argv, dir)
}

// StartWithID runs argv in dir under the given ID.
func (s *Supervisor) StartWithID(id string, argv []string, dir string) (*Process, error) {
	proc, err := NewProcess(id, argv, dir)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil, ErrSupervisorShutdown
	}
	if s.maxProcesses > 0 && len(s.processes) >= s.maxProcesses {
		return nil, fmt.Errorf("%w: %d", ErrProcessLimit, s.maxProcesses)
	}
	if _, exists := s.processes[id]; exists {
		return nil, fmt.Errorf("process ID already exists: %s", id)
	}

	if err := proc.start(); err != nil {
		return nil, err
	}

	s.processes[id] = proc
	go s.monitorProcess(proc)

	return proc, nil
}

func (s *Supervisor) monitorProcess(proc *Process) {
	<-proc.Done()

	if s.onProcessExit != nil {
		func() {
			defer func() {
				_ = recover()
			}()
			s.onProcessExit(proc)
		}()
	}

	s.mu.Lock()
	delete(s.processes, proc.ID)
	s.mu.Unlock()
}

// Get returns a process by ID, or nil.
func (s *Supervisor) Get(id string) *Process {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processes[id]
}

// List returns all running processes.
func (s *Supervisor) List() []*Process {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Process, 0, len(s.processes))
	for _, p := range s.processes {
		result = append(result, p)
	}
	return result
}

// Count returns the number of running processes.
func (s *Supervisor) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes)
}

// Kill kills a process by ID.
func (s *Supervisor) Kill(id string) error {
	proc := s.Get(id)
	if proc == nil {
		return ErrProcessNotFound
	}
	if !proc.IsRunning() {
		return nil
	}
	return proc.Kill()
}

// KillAll kills all running processes immediately.
func (s *Supervisor) KillAll() {
	for _, p := range s.List() {
		if p.IsRunning() {
			_ = p.Kill()
		}
	}
}

// Shutdown terminates every process, waits up to timeout, then kills
// whatever is left. Later Start calls fail with ErrSupervisorShutdown.
func (s *Supervisor) Shutdown(timeout time.Duration) {
	if s.closed.Swap(true) {
		return
	}
	close(s.shutdown)

	procs := s.List()
	if len(procs) == 0 {
		return
	}

	for _, p := range procs {
		if p.IsRunning() {
			_ = p.Terminate()
		}
	}

	done := make(chan struct{})
	go func() {
		for _, p := range procs {
			<-p.Done()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		for _, p := range procs {
			if p.IsRunning() {
				_ = p.Kill()
			}
		}
		<-done
	}

	s.waitForCleanup()
}

func (s *Supervisor) waitForCleanup() {
	for s.Count() > 0 {
		time.Sleep(time.Millisecond)
	}
}

// IsShuttingDown returns true if the supervisor is shutting down.
func (s *Supervisor) IsShuttingDown() bool {
	return s.closed.Load()
}

// ShutdownChan returns a channel that is closed when shutdown begins.
func (s *Supervisor) ShutdownChan() <-chan struct{} {
	return s.shutdown
}

// Sentinel errors.
var (
	// ErrProcessNotFound is returned when a process ID is not found.
	ErrProcessNotFound = errors.New("process not found")

	// ErrProcessLimit is returned when WithMaxProcesses is exceeded.
	ErrProcessLimit = errors.New("process limit reached")

	// ErrSupervisorShutdown is returned when the supervisor is shutting down.
	ErrSupervisorShutdown = errors.New("supervisor is shutting down")
)
