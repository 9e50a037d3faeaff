package process

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSupervisor_Start(t *testing.T) {
	s := NewSupervisor()
	defer s.Shutdown(time.Second)

	proc, err := s.Start([]string{"sleep", "1"}, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if proc.ID == "" {
		t.Error("expected generated ID")
	}
	if s.Get(proc.ID) != proc {
		t.Error("expected Get to return started process")
	}
	if s.Count() != 1 || len(s.List()) != 1 {
		t.Errorf("Count = %d, List = %d", s.Count(), len(s.List()))
	}
}

func TestSupervisor_StartWithID_Duplicate(t *testing.T) {
	s := NewSupervisor()
	defer s.Shutdown(time.Second)

	if _, err := s.StartWithID("dup", []string{"sleep", "1"}, ""); err != nil {
		t.Fatalf("StartWithID: %v", err)
	}
	if _, err := s.StartWithID("dup", []string{"sleep", "1"}, ""); err == nil {
		t.Error("expected duplicate ID error")
	}
}

func TestSupervisor_StartFailureNotTracked(t *testing.T) {
	s := NewSupervisor()

	if _, err := s.Start([]string{"gotodoc-no-such-binary-xyz"}, ""); err == nil {
		t.Fatal("expected start error")
	}
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0", s.Count())
	}
}

func TestSupervisor_WithMaxProcesses(t *testing.T) {
	s := NewSupervisor(WithMaxProcesses(1))
	defer s.Shutdown(time.Second)

	if _, err := s.Start([]string{"sleep", "1"}, ""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := s.Start([]string{"sleep", "1"}, ""); !errors.Is(err, ErrProcessLimit) {
		t.Errorf("second Start error = %v, want ErrProcessLimit", err)
	}
}

func TestSupervisor_WithProcessExitCallback(t *testing.T) {
	var called atomic.Int32
	done := make(chan struct{})
	s := NewSupervisor(WithProcessExitCallback(func(p *Process) {
		called.Add(1)
		close(done)
	}))

	if _, err := s.Start([]string{"true"}, ""); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("exit callback not called")
	}
	if called.Load() != 1 {
		t.Errorf("callback called %d times", called.Load())
	}
}

func TestSupervisor_ExitRemovesProcess(t *testing.T) {
	s := NewSupervisor()
	proc, err := s.Start([]string{"true"}, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	<-proc.Done()

	deadline := time.Now().Add(2 * time.Second)
	for s.Get(proc.ID) != nil {
		if time.Now().After(deadline) {
			t.Fatal("process not removed after exit")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSupervisor_Kill(t *testing.T) {
	s := NewSupervisor()
	proc, _ := s.Start([]string{"sleep", "10"}, "")

	if err := s.Kill(proc.ID); err != nil {
		t.Fatalf("Kill: %v", err)
	}
	select {
	case <-proc.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("process not killed")
	}

	if err := s.Kill("missing"); !errors.Is(err, ErrProcessNotFound) {
		t.Errorf("Kill(missing) = %v, want ErrProcessNotFound", err)
	}
}

func TestSupervisor_KillAll(t *testing.T) {
	s := NewSupervisor()
	var procs []*Process
	for i := 0; i < 3; i++ {
		p, err := s.Start([]string{"sleep", "10"}, "")
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		procs = append(procs, p)
	}

	s.KillAll()
	for _, p := range procs {
		select {
		case <-p.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("process survived KillAll")
		}
	}
}

func TestSupervisor_Shutdown(t *testing.T) {
	s := NewSupervisor()
	for i := 0; i < 2; i++ {
		if _, err := s.Start([]string{"sleep", "10"}, ""); err != nil {
			t.Fatalf("Start: %v", err)
		}
	}

	s.Shutdown(time.Second)

	if s.Count() != 0 {
		t.Errorf("Count after Shutdown = %d", s.Count())
	}
	if !s.IsShuttingDown() {
		t.Error("expected IsShuttingDown")
	}
	select {
	case <-s.ShutdownChan():
	default:
		t.Error("expected ShutdownChan closed")
	}

	s.Shutdown(time.Second)

	if _, err := s.Start([]string{"true"}, ""); !errors.Is(err, ErrSupervisorShutdown) {
		t.Errorf("Start after Shutdown = %v, want ErrSupervisorShutdown", err)
	}
}

func TestSupervisor_Shutdown_Timeout(t *testing.T) {
	s := NewSupervisor()
	if _, err := s.Start([]string{"sh", "-c", "trap '' TERM; exec sleep 10"}, ""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	start := time.Now()
	s.Shutdown(100 * time.Millisecond)

	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Shutdown took %v", elapsed)
	}
	if s.Count() != 0 {
		t.Errorf("Count after Shutdown = %d", s.Count())
	}
}

func TestSupervisor_Concurrent(t *testing.T) {
	s := NewSupervisor()
	defer s.Shutdown(time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.Start([]string{"echo", "x"}, "")
			if err != nil {
				t.Errorf("Start: %v", err)
				return
			}
			<-p.Done()
		}()
	}
	wg.Wait()
}
