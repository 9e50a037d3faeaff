// Package jslib guesses which JavaScript library a token belongs to by
// looking at the characters written just before it.
//
// Detection works on raw text, not on a parse tree, so it can misfire on
// code that merely looks like a library call. That is accepted.
package jslib

// Library keys returned by Detect. They double as dispatch keys.
const (
	JQuery = "jquery"
	Dojo   = "dojo"
)

// DefaultLookback is the number of characters examined before a token.
const DefaultLookback = 32

// TextSource gives access to the text preceding the token being looked up.
type TextSource interface {
	// Preceding returns up to n bytes ending immediately before the token.
	Preceding(n int) string
}

// Detector applies the library rules within a bounded lookback window.
type Detector struct {
	lookback int
}

// NewDetector creates a detector. A non-positive lookback selects
// DefaultLookback.
func NewDetector(lookback int) *Detector {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Detector{lookback: lookback}
}

// Lookback returns the size of the window in characters.
func (d *Detector) Lookback() int {
	return d.lookback
}

// DetectIn reads the lookback window from src and runs Detect on it.
func (d *Detector) DetectIn(src TextSource) string {
	if src == nil {
		return ""
	}
	return d.Detect(src.Preceding(d.lookback))
}

// Detect returns the library key for a token preceded by the given text,
// or "" when no rule matches. Only the last Lookback characters of
// preceding are considered.
//
// Rules, first match wins, applied to the character before the token
// (a single member-access dot is stepped over first):
//
//	$       jquery        $foo, $.ajax
//	o       dojo          dojo.query
//	)       jquery        $("#id").hide, if the matching ( follows a $
func (d *Detector) Detect(preceding string) string {
	if len(preceding) > d.lookback {
		preceding = preceding[len(preceding)-d.lookback:]
	}

	i := len(preceding) - 1
	if i > 0 && preceding[i] == '.' {
		i--
	}
	if i < 0 {
		return ""
	}

	switch preceding[i] {
	case '$':
		return JQuery
	case 'o':
		if i >= 3 && preceding[i-3:i+1] == "dojo" {
			return Dojo
		}
	case ')':
		open := matchingParen(preceding, i)
		if open > 0 && preceding[open-1] == '$' {
			return JQuery
		}
	}
	return ""
}

// matchingParen scans backward from the ')' at close and returns the index
// of the '(' that opens it, or -1 if the window runs out first.
func matchingParen(s string, close int) int {
	depth := 0
	for j := close; j >= 0; j-- {
		switch s[j] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}
