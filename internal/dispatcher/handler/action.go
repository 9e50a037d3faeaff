package handler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedScope is reported when a dispatch key has no handler.
var ErrUnsupportedScope = errors.New("scope is not supported")

// ActionKind identifies what a DocAction asks the host to do.
type ActionKind uint8

const (
	// KindUnsupported means no documentation source is known for the key.
	KindUnsupported ActionKind = iota
	// KindOpenURL asks the host to open URL in a browser.
	KindOpenURL
	// KindRunCommand asks the host to run Command and show its output.
	KindRunCommand
)

// String returns a string representation of the kind.
func (k ActionKind) String() string {
	switch k {
	case KindUnsupported:
		return "unsupported"
	case KindOpenURL:
		return "open_url"
	case KindRunCommand:
		return "run_command"
	default:
		return "unknown"
	}
}

// DocAction is the outcome of a documentation lookup.
type DocAction struct {
	// Kind selects which of the fields below are meaningful.
	Kind ActionKind

	// Key is the dispatch key that selected the handler.
	Key string

	// URL is the page to open for KindOpenURL.
	URL string

	// Command is the argv to run for KindRunCommand.
	Command []string

	// Message is a status line for the user.
	Message string
}

// OpenURL creates an action that opens url.
func OpenURL(url string) DocAction {
	return DocAction{Kind: KindOpenURL, URL: url}
}

// RunCommand creates an action that runs argv.
func RunCommand(argv ...string) DocAction {
	cmd := make([]string, len(argv))
	copy(cmd, argv)
	return DocAction{Kind: KindRunCommand, Command: cmd}
}

// Unsupported creates the action reported for a key without a handler.
func Unsupported(key string) DocAction {
	return DocAction{
		Kind:    KindUnsupported,
		Key:     key,
		Message: fmt.Sprintf("This scope is not supported: %s", key),
	}
}

// WithKey returns a copy of the action with Key set.
func (a DocAction) WithKey(key string) DocAction {
	a.Key = key
	return a
}

// WithMessage returns a copy of the action with Message set.
func (a DocAction) WithMessage(msg string) DocAction {
	a.Message = msg
	return a
}

// IsUnsupported reports whether no documentation source was found.
func (a DocAction) IsUnsupported() bool {
	return a.Kind == KindUnsupported
}

// Err returns an error wrapping ErrUnsupportedScope for unsupported
// actions, nil otherwise.
func (a DocAction) Err() error {
	if a.Kind == KindUnsupported {
		return fmt.Errorf("%w: %s", ErrUnsupportedScope, a.Key)
	}
	return nil
}

// Target returns the URL or the joined command line, whichever applies.
func (a DocAction) Target() string {
	switch a.Kind {
	case KindOpenURL:
		return a.URL
	case KindRunCommand:
		return strings.Join(a.Command, " ")
	default:
		return ""
	}
}

// String returns a one-line description of the action.
func (a DocAction) String() string {
	if a.Kind == KindUnsupported {
		return fmt.Sprintf("%s [%s]", a.Kind, a.Key)
	}
	return fmt.Sprintf("%s [%s] %s", a.Kind, a.Key, a.Target())
}
