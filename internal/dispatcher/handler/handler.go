// Package handler provides the handler interface and the DocAction type
// produced by documentation lookups.
package handler

import (
	"github.com/dshills/gotodoc/internal/dispatcher/execctx"
)

// Handler turns a lookup request into a documentation action.
type Handler interface {
	// Handle returns the action for the request. It must not block.
	Handle(req *execctx.Request) DocAction

	// Describe returns a short summary of what the handler opens,
	// used when listing handlers.
	Describe() string
}

// HandlerFunc is a function adapter for the Handler interface.
type HandlerFunc struct {
	fn   func(req *execctx.Request) DocAction
	desc string
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(desc string, fn func(req *execctx.Request) DocAction) *HandlerFunc {
	return &HandlerFunc{fn: fn, desc: desc}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(req *execctx.Request) DocAction {
	if f.fn == nil {
		return Unsupported(req.Key).WithMessage("handler function is nil")
	}
	return f.fn(req)
}

// Describe implements Handler.Describe.
func (f *HandlerFunc) Describe() string {
	return f.desc
}

// TokenFunc adapts a function that only needs the token, as library
// handlers do.
func TokenFunc(desc string, fn func(token string) DocAction) *HandlerFunc {
	return NewHandlerFunc(desc, func(req *execctx.Request) DocAction {
		return fn(req.Token)
	})
}

type unsupportedHandler struct{}

// UnsupportedHandler returns the fallback used for unregistered keys.
func UnsupportedHandler() Handler {
	return unsupportedHandler{}
}

func (unsupportedHandler) Handle(req *execctx.Request) DocAction {
	return Unsupported(req.Key)
}

func (unsupportedHandler) Describe() string {
	return "unsupported scope"
}
