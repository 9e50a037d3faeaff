// Package browser opens documentation URLs in the user's web browser.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// URLPlaceholder marks where the URL goes in a configured command. A
// command without it gets the URL appended.
const URLPlaceholder = "{url}"

// ErrEmptyURL is returned when Open is called without a URL.
var ErrEmptyURL = errors.New("empty url")

// Opener opens a URL.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, url string) error {
	return f(ctx, url)
}

// SystemOpener launches the platform's URL handler, or a configured
// command, and does not wait for it.
type SystemOpener struct {
	command []string
	goos    string
	start   func(argv []string) error
}

// Option configures a SystemOpener.
type Option func(*SystemOpener)

// WithCommand overrides the launcher, e.g. {"firefox", "--new-tab"}.
func WithCommand(argv ...string) Option {
	return func(o *SystemOpener) {
		if len(argv) > 0 {
			o.command = append([]string(nil), argv...)
		}
	}
}

// WithGOOS picks the platform default for goos instead of runtime.GOOS.
func WithGOOS(goos string) Option {
	return func(o *SystemOpener) {
		o.goos = goos
	}
}

// WithStarter replaces how the launcher process is started.
func WithStarter(start func(argv []string) error) Option {
	return func(o *SystemOpener) {
		if start != nil {
			o.start = start
		}
	}
}

// NewSystemOpener creates a SystemOpener.
func NewSystemOpener(opts ...Option) *SystemOpener {
	o := &SystemOpener{
		goos:  runtime.GOOS,
		start: startDetached,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open launches the browser for url.
func (o *SystemOpener) Open(ctx context.Context, url string) error {
	if url == "" {
		return ErrEmptyURL
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	argv := o.Argv(url)
	if err := o.start(argv); err != nil {
		return fmt.Errorf("open %s with %s: %w", url, argv[0], err)
	}
	return nil
}

// Argv returns the command line used to open url.
func (o *SystemOpener) Argv(url string) []string {
	if len(o.command) > 0 {
		return expand(o.command, url)
	}
	switch o.goos {
	case "darwin":
		return []string{"open", url}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}
	default:
		return []string{"xdg-open", url}
	}
}

func expand(command []string, url string) []string {
	argv := make([]string, 0, len(command)+1)
	replaced := false
	for _, arg := range command {
		if strings.Contains(arg, URLPlaceholder) {
			arg = strings.ReplaceAll(arg, URLPlaceholder, url)
			replaced = true
		}
		argv = append(argv, arg)
	}
	if !replaced {
		argv = append(argv, url)
	}
	return argv
}

func startDetached(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
