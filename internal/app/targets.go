package app

import (
	"context"
	"fmt"

	"github.com/dshills/gotodoc/internal/engine/buffer"
)

// Target is a word found in a file together with its context label.
type Target struct {
	Word  buffer.Word
	Label string
}

// Targets finds the words touching each offset in src and labels them.
// Offsets that do not touch a word are skipped, and offsets inside the
// same word yield one target.
func (a *Application) Targets(ctx context.Context, path string, src []byte, offsets ...int) ([]Target, error) {
	buf := buffer.NewBufferFromString(string(src))

	positions := make([]buffer.ByteOffset, len(offsets))
	for i, off := range offsets {
		if off < 0 || off > len(src) {
			return nil, fmt.Errorf("offset %d: outside %s (%d bytes)", off, path, len(src))
		}
		positions[i] = buffer.ByteOffset(off)
	}

	words := buf.WordsAt(positions...)
	targets := make([]Target, 0, len(words))
	for _, w := range words {
		label, err := a.classifier.Classify(ctx, path, src, int(w.Range.Start))
		if err != nil {
			return nil, NewOperationError("classify", path, err)
		}
		targets = append(targets, Target{Word: w, Label: label})
	}
	return targets, nil
}

// InvokeTargets performs a lookup for every target, in order. It stops at
// the first error.
func (a *Application) InvokeTargets(ctx context.Context, targets []Target) error {
	for _, t := range targets {
		if _, err := a.Invoke(ctx, t.Word.Text, t.Label, t.Word); err != nil {
			return err
		}
	}
	return nil
}
