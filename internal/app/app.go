// Package app wires the lookup pipeline together: it builds the handler
// registry from configuration and scripts, dispatches tokens, and carries
// out the resulting actions through the browser, the process runner, the
// output panel and the status line.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/gotodoc/internal/config"
	"github.com/dshills/gotodoc/internal/dispatcher"
	"github.com/dshills/gotodoc/internal/dispatcher/handler"
	"github.com/dshills/gotodoc/internal/dispatcher/handlers/docs"
	"github.com/dshills/gotodoc/internal/integration/browser"
	"github.com/dshills/gotodoc/internal/integration/process"
	"github.com/dshills/gotodoc/internal/jslib"
	"github.com/dshills/gotodoc/internal/plugin/lua"
	"github.com/dshills/gotodoc/internal/renderer/panel"
	"github.com/dshills/gotodoc/internal/syntax"
)

// shutdownTimeout bounds how long Close waits for running commands.
const shutdownTimeout = 2 * time.Second

// Options configures the application. Zero fields get defaults built
// from Config.
type Options struct {
	Config config.Config
	Logger *Logger
	Loop   *Loop
	Opener browser.Opener
	Runner *process.Runner
	Status StatusReporter

	// NewPanel creates the output panel on first use.
	NewPanel func() (panel.Panel, error)

	// Plugins are extra scripts applied after those listed in
	// Config.Plugins.Scripts. The application does not close them.
	Plugins []*lua.Plugin
}

// Application is the central coordinator of a lookup session.
type Application struct {
	mu      sync.Mutex // guards cfg and scripts
	cfg     config.Config
	scripts []*lua.Plugin
	extra   []*lua.Plugin

	dispatcher atomic.Pointer[dispatcher.Dispatcher]
	classifier *syntax.Classifier

	opener   browser.Opener
	runner   *process.Runner
	status   StatusReporter
	loop     *Loop
	logger   *Logger
	newPanel func() (panel.Panel, error)

	// panel is only touched from the loop goroutine.
	panel panel.Panel

	pending sync.WaitGroup
	closed  atomic.Bool
}

// New creates an application. Scripts that fail to load and invalid
// handler entries are logged and skipped.
func New(opts Options) (*Application, error) {
	a := &Application{
		extra:      opts.Plugins,
		classifier: syntax.NewClassifier(),
		opener:     opts.Opener,
		runner:     opts.Runner,
		status:     opts.Status,
		loop:       opts.Loop,
		logger:     opts.Logger,
		newPanel:   opts.NewPanel,
	}
	if a.logger == nil {
		a.logger = NullLogger
	}
	if a.loop == nil {
		a.loop = NewLoop(0, a.logger)
	}
	if a.status == nil {
		a.status = LogStatus{Logger: a.logger}
	}
	if a.opener == nil {
		a.opener = browser.NewSystemOpener(browser.WithCommand(opts.Config.Browser.Command...))
	}
	if a.runner == nil {
		a.runner = process.NewRunner(nil,
			process.WithDir(opts.Config.Lookup.WorkDir),
			process.WithFallbackEncoding(opts.Config.Lookup.FallbackEncoding),
		)
	}
	if a.newPanel == nil {
		mode, err := panel.ParseMode(opts.Config.Panel.Mode)
		if err != nil {
			return nil, &InitError{Component: "panel", Err: err}
		}
		a.newPanel = func() (panel.Panel, error) {
			return panel.New(panel.Options{
				Name:       panel.DefaultName,
				Mode:       mode,
				TitleColor: opts.Config.Panel.TitleColor,
			})
		}
	}

	if err := a.Reload(opts.Config); err != nil {
		a.logger.WithComponent("app").Warn("%v", err)
	}
	return a, nil
}

// Reload rebuilds the handler registry from cfg and swaps it in. The
// previous registry is left untouched for lookups already running.
// The returned error lists entries that were skipped.
func (a *Application) Reload(cfg config.Config) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if level, ok := ParseLogLevel(cfg.Logging.Level); ok && a.logger != NullLogger {
		a.logger.SetLevel(level)
	}

	scripts, loadErr := loadScripts(cfg.Plugins.Scripts)
	reg, buildErr := BuildRegistry(cfg, append(append([]*lua.Plugin(nil), scripts...), a.extra...))

	d := dispatcher.New(reg, dispatcher.DefaultConfig().
		WithLookback(cfg.Lookup.Lookback).
		WithMetrics())
	a.dispatcher.Store(d)

	old := a.scripts
	a.scripts = scripts
	a.cfg = cfg
	for _, p := range old {
		_ = p.Close()
	}

	a.logger.WithComponent("app").Debug("registry loaded with %d keys", reg.Count())
	return errors.Join(loadErr, buildErr)
}

// BuildRegistry creates the handler table: built-ins first, then
// configured URL templates, configured aliases, and finally script
// handlers in order. Later entries replace earlier ones. Invalid entries
// are skipped and reported in the returned error.
func BuildRegistry(cfg config.Config, plugins []*lua.Plugin) (*dispatcher.Registry, error) {
	reg := dispatcher.NewRegistry()
	docs.RegisterBuiltins(reg, docs.Options{Pydoc: cfg.Lookup.Pydoc})

	var errs []error
	for _, key := range cfg.HandlerKeys() {
		t := docs.Template(cfg.Handlers[key])
		if err := t.Validate(); err != nil {
			errs = append(errs, NewOperationError("handler", key, err))
			continue
		}
		if err := reg.Register(key, docs.URLHandler(t)); err != nil {
			errs = append(errs, err)
		}
	}
	for _, key := range cfg.AliasKeys() {
		if err := reg.Alias(key, cfg.Aliases[key]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range plugins {
		if err := p.Apply(reg); err != nil {
			errs = append(errs, err)
		}
	}
	return reg, errors.Join(errs...)
}

func loadScripts(paths []string) ([]*lua.Plugin, error) {
	var (
		scripts []*lua.Plugin
		errs    []error
	)
	for _, path := range paths {
		p, err := lua.Load(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scripts = append(scripts, p)
	}
	return scripts, errors.Join(errs...)
}

// Lookup resolves a token to a DocAction without performing it.
func (a *Application) Lookup(token, label string, preceding jslib.TextSource) handler.DocAction {
	action := a.Dispatcher().DispatchToken(token, label, preceding)
	a.logger.WithComponent("dispatcher").Debug("%q in %q: %s", token, label, action)
	return action
}

// Invoke looks up token in the context label and performs the action.
// preceding gives the text before the token and may be nil. Failures of
// the documentation command itself are shown in the output panel, not
// returned.
func (a *Application) Invoke(ctx context.Context, token, label string, preceding jslib.TextSource) (handler.DocAction, error) {
	if a.closed.Load() {
		return handler.DocAction{}, ErrClosed
	}
	if token == "" {
		return handler.DocAction{}, ErrEmptyToken
	}
	action := a.Lookup(token, label, preceding)
	return action, a.Perform(ctx, action)
}

// Perform carries out an action. Command output arrives later on the
// loop; use Wait to block until it has been shown.
func (a *Application) Perform(ctx context.Context, action handler.DocAction) error {
	switch action.Kind {
	case handler.KindOpenURL:
		if err := a.opener.Open(ctx, action.URL); err != nil {
			err = NewOperationError("open", action.URL, err)
			a.logger.WithComponent("browser").Warn("%v", err)
			return err
		}
		return nil

	case handler.KindRunCommand:
		if err := ctx.Err(); err != nil {
			return err
		}
		a.pending.Add(1)
		if err := a.runner.Run(ctx, action.Command, a.deliver); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				a.pending.Done()
				return err
			}
			a.logger.WithComponent("process").Warn("%v", NewOperationError("run", action.Target(), err))
		}
		return nil

	default:
		a.status.Report(action.Message)
		return nil
	}
}

// deliver is called from the runner's goroutine and hands the output to
// the loop.
func (a *Application) deliver(out process.Output) {
	posted := a.loop.Post(func() {
		defer a.pending.Done()
		a.showOutput(out)
	})
	if !posted {
		a.logger.WithComponent("process").Warn("loop stopped, dropping output of %s", strings.Join(out.Argv, " "))
		a.pending.Done()
	}
}

func (a *Application) showOutput(out process.Output) {
	if out.Failed() {
		a.logger.WithComponent("process").Info("%s failed: exit %d: %v", strings.Join(out.Argv, " "), out.ExitCode, out.Err)
	}
	p, err := a.outputPanel()
	if err != nil {
		a.logger.WithComponent("panel").Error("%v", err)
		return
	}
	if err := p.Show(out.Display()); err != nil {
		a.logger.WithComponent("panel").Error("show: %v", err)
	}
}

// outputPanel returns the output panel, creating it on first use.
// Loop goroutine only.
func (a *Application) outputPanel() (panel.Panel, error) {
	if a.panel != nil {
		return a.panel, nil
	}
	p, err := a.newPanel()
	if err != nil {
		return nil, &InitError{Component: "panel", Err: err}
	}
	a.panel = p
	return p, nil
}

// Wait blocks until the output of every started command has been shown.
func (a *Application) Wait() {
	a.pending.Wait()
}

// Close kills running commands and releases scripts and the panel.
// The loop is stopped; callers that own it should stop Run first.
func (a *Application) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	a.runner.Supervisor().Shutdown(shutdownTimeout)
	a.loop.Stop()
	if a.panel != nil && !a.loop.IsRunning() {
		errs = append(errs, a.panel.Close())
	}

	a.mu.Lock()
	for _, p := range a.scripts {
		errs = append(errs, p.Close())
	}
	a.scripts = nil
	a.mu.Unlock()

	return errors.Join(errs...)
}

// Dispatcher returns the current dispatcher.
func (a *Application) Dispatcher() *dispatcher.Dispatcher {
	return a.dispatcher.Load()
}

// Config returns the configuration in effect.
func (a *Application) Config() config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Loop returns the loop that shows command output.
func (a *Application) Loop() *Loop {
	return a.loop
}

// Runner returns the process runner.
func (a *Application) Runner() *process.Runner {
	return a.runner
}

// Logger returns the application's logger.
func (a *Application) Logger() *Logger {
	return a.logger
}

// Classifier returns the syntax classifier used for file lookups.
func (a *Application) Classifier() *syntax.Classifier {
	return a.classifier
}
