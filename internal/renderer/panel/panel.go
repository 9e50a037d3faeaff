package panel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// DefaultName is the name output panels are created under.
const DefaultName = "gotodocumentation"

// Mode selects the panel implementation.
type Mode string

const (
	// ModeAuto picks Terminal when stdout is a TTY, Writer otherwise.
	ModeAuto Mode = "auto"
	// ModeTerminal always uses the tcell pager.
	ModeTerminal Mode = "terminal"
	// ModePlain always writes to stdout.
	ModePlain Mode = "plain"
)

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("unknown panel mode")

// ParseMode parses a panel mode name. Empty means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeTerminal, ModePlain:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Panel shows text to the user.
type Panel interface {
	// Name returns the panel name.
	Name() string

	// Show replaces the panel contents with text and displays it.
	Show(text string) error

	// Contents returns the text last shown.
	Contents() string

	// Close releases the panel.
	Close() error
}

// Options configures New.
type Options struct {
	Name       string
	Mode       Mode
	TitleColor string
	Out        *os.File
}

// New creates a panel for opts.Mode. Auto mode checks whether opts.Out
// (stdout by default) is a terminal.
func New(opts Options) (Panel, error) {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	mode := opts.Mode
	if mode == "" || mode == ModeAuto {
		mode = ModePlain
		if term.IsTerminal(int(opts.Out.Fd())) {
			mode = ModeTerminal
		}
	}

	switch mode {
	case ModeTerminal:
		return NewTerminal(opts.Name, WithTitleColor(opts.TitleColor))
	case ModePlain:
		return NewWriter(opts.Name, opts.Out), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Writer is a Panel that prints to an io.Writer.
type Writer struct {
	name     string
	out      io.Writer
	contents string
}

// NewWriter creates a Writer panel.
func NewWriter(name string, out io.Writer) *Writer {
	if name == "" {
		name = DefaultName
	}
	return &Writer{name: name, out: out}
}

// Name returns the panel name.
func (w *Writer) Name() string { return w.name }

// Contents returns the text last shown.
func (w *Writer) Contents() string { return w.contents }

// Show writes text, terminated by a newline.
func (w *Writer) Show(text string) error {
	w.contents = text
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w.out, text)
	return err
}

// Close is a no-op.
func (w *Writer) Close() error { return nil }
