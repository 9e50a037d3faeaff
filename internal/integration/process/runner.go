package process

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Output is the result of one documentation command.
type Output struct {
	// Argv is the command that ran.
	Argv []string

	// Text is the decoded stdout and stderr, combined.
	Text string

	// ExitCode is the exit status, or -1 if the command did not start
	// or was killed without one.
	ExitCode int

	// Err is set when the command failed to start, exited abnormally
	// or its output could not be decoded.
	Err error

	// Duration is how long the command ran.
	Duration time.Duration
}

// Failed reports whether the command did not complete successfully.
func (o Output) Failed() bool {
	return o.ExitCode != 0 || o.Err != nil
}

// Display returns the text shown in the output panel. Failures are
// prefixed with the exit status so they render inline.
func (o Output) Display() string {
	if !o.Failed() {
		return o.Text
	}

	var b strings.Builder
	cmd := strings.Join(o.Argv, " ")
	if o.ExitCode <= 0 && o.Err != nil {
		fmt.Fprintf(&b, "[%s: %v]\n", cmd, o.Err)
	} else {
		fmt.Fprintf(&b, "[%s: exit status %d]\n", cmd, o.ExitCode)
	}
	b.WriteString(o.Text)
	return b.String()
}

// Runner starts documentation commands and delivers their output.
type Runner struct {
	sup      *Supervisor
	dir      string
	fallback string
	deliver  func(func())
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDir sets the working directory for every command.
func WithDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithFallbackEncoding sets the encoding tried when output is not UTF-8.
func WithFallbackEncoding(name string) RunnerOption {
	return func(r *Runner) {
		if name != "" {
			r.fallback = name
		}
	}
}

// WithDeliver sets how completion callbacks are scheduled. The default
// calls them directly from the goroutine that waited on the command.
func WithDeliver(post func(func())) RunnerOption {
	return func(r *Runner) {
		if post != nil {
			r.deliver = post
		}
	}
}

// NewRunner creates a Runner backed by sup. A nil sup gets a private
// Supervisor.
func NewRunner(sup *Supervisor, opts ...RunnerOption) *Runner {
	if sup == nil {
		sup = NewSupervisor()
	}
	r := &Runner{
		sup:      sup,
		fallback: DefaultFallbackEncoding,
		deliver:  func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Supervisor returns the supervisor that owns the runner's processes.
func (r *Runner) Supervisor() *Supervisor {
	return r.sup
}

// Run starts argv and returns once it is running. onDone receives the
// Output when the command exits, through the deliver function. A
// command that cannot be started is still reported to onDone, and the
// start error is returned as well.
//
// ctx is only checked before starting; a running command is not tied
// to it.
func (r *Runner) Run(ctx context.Context, argv []string, onDone func(Output)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	proc, err := r.sup.Start(argv, r.dir)
	if err != nil {
		out := Output{Argv: append([]string(nil), argv...), ExitCode: -1, Err: err}
		if onDone != nil {
			r.deliver(func() { onDone(out) })
		}
		return err
	}

	go func() {
		<-proc.Done()
		out := r.collect(proc)
		if onDone != nil {
			r.deliver(func() { onDone(out) })
		}
	}()
	return nil
}

// RunSync runs argv and waits for it, returning its Output. It is used
// by one-shot CLI lookups that have no UI loop.
func (r *Runner) RunSync(ctx context.Context, argv []string) Output {
	if err := ctx.Err(); err != nil {
		return Output{Argv: argv, ExitCode: -1, Err: err}
	}

	proc, err := r.sup.Start(argv, r.dir)
	if err != nil {
		return Output{Argv: append([]string(nil), argv...), ExitCode: -1, Err: err}
	}

	select {
	case <-proc.Done():
	case <-ctx.Done():
		_ = proc.Kill()
		<-proc.Done()
	}
	return r.collect(proc)
}

func (r *Runner) collect(proc *Process) Output {
	out := Output{
		Argv:     proc.Argv,
		ExitCode: proc.ExitCode(),
		Duration: proc.Runtime(),
	}

	text, decErr := Decode(proc.Output(), r.fallback)
	out.Text = text

	if err := proc.ExitError(); err != nil {
		out.Err = err
	} else if decErr != nil {
		out.Err = decErr
	}
	return out
}
