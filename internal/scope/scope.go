// Package scope turns editor context labels into dispatch keys.
//
// A context label is the scope string an editor tokenizer assigns to the
// text under the cursor, for example
//
//	text.html.basic source.php.embedded.block.html keyword.other.new.php
//
// The dispatch key is the segment after the last dot ("php" above).
package scope

import "strings"

// AmbiguousKey is the key whose handler can be refined by library
// detection before lookup.
const AmbiguousKey = "js"

// Resolve returns the dispatch key for a context label: the rightmost
// dot-separated segment, verbatim. A label with no dot is its own key.
func Resolve(label string) string {
	if i := strings.LastIndexByte(label, '.'); i >= 0 {
		return label[i+1:]
	}
	return label
}

// IsAmbiguous reports whether key needs library detection.
func IsAmbiguous(key string) bool {
	return key == AmbiguousKey
}

// Join builds a context label from nested scopes, outermost first.
// Empty scopes are skipped.
func Join(scopes ...string) string {
	parts := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
