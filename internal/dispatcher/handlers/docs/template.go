package docs

import (
	"errors"
	"strings"

	"github.com/dshills/gotodoc/internal/dispatcher/execctx"
	"github.com/dshills/gotodoc/internal/dispatcher/handler"
)

// Placeholder is replaced by the token in URL templates.
const Placeholder = "{token}"

// ErrNoPlaceholder is returned for templates without a {token}.
var ErrNoPlaceholder = errors.New("url template has no " + Placeholder + " placeholder")

// Template is a URL with {token} placeholders.
type Template string

// Expand substitutes token for every placeholder.
func (t Template) Expand(token string) string {
	return strings.ReplaceAll(string(t), Placeholder, token)
}

// Validate checks that the template contains a placeholder.
func (t Template) Validate() error {
	if !strings.Contains(string(t), Placeholder) {
		return ErrNoPlaceholder
	}
	return nil
}

// URLHandler returns a handler that opens the expanded template.
func URLHandler(t Template) handler.Handler {
	return handler.NewHandlerFunc(string(t), func(req *execctx.Request) handler.DocAction {
		return handler.OpenURL(t.Expand(req.Token))
	})
}

// LibraryHandler returns a URL handler for a library key. Library
// handlers only look at the token.
func LibraryHandler(t Template) handler.Handler {
	return handler.TokenFunc(string(t), func(token string) handler.DocAction {
		return handler.OpenURL(t.Expand(token))
	})
}
