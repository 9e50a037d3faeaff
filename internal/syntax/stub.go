//go:build !cgo

package syntax

import "context"

// Parsed reports whether Classify parses files or only reads extensions.
const Parsed = false

func (c *Classifier) classify(_ context.Context, l Language, _ []byte, _ int, outer []string, _ int) (string, error) {
	return l.Label("", outer...), nil
}
