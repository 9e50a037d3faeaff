// Package syntax computes context labels for a byte offset in a source
// file. Labels are space-separated scopes, outermost first, whose last
// dot-separated segment is the dispatch key:
//
//	text.html.basic source.js.embedded.html identifier.js
//
// With cgo the file is parsed with tree-sitter so embedded languages
// (script blocks in HTML, inline HTML in PHP) are recognised. Without cgo
// only the file extension is consulted.
package syntax

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dshills/gotodoc/internal/scope"
)

var (
	// ErrUnknownLanguage is returned for files whose extension is not mapped.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrOffsetOutOfRange is returned when the offset lies outside the source.
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// Language describes one recognised file type.
type Language struct {
	// Name identifies the language internally.
	Name string

	// Scope is the base scope of a file in this language.
	Scope string

	// Key is the dispatch key for tokens in this language.
	Key string

	// Extensions lists file extensions, with the leading dot.
	Extensions []string
}

// Label builds the context label for a node of the given type, nested
// inside the outer scopes.
func (l Language) Label(nodeType string, outer ...string) string {
	scopes := append(append([]string{}, outer...), l.Scope, leaf(nodeType, l.Key))
	return scope.Join(scopes...)
}

// Embedded returns the scope this language gets when nested in host.
func (l Language) Embedded(host Language) string {
	return l.Scope + ".embedded." + host.Key
}

// Languages known to the classifier.
var (
	HTML    = Language{Name: "html", Scope: "text.html.basic", Key: "html", Extensions: []string{".html", ".htm", ".xhtml"}}
	PHP     = Language{Name: "php", Scope: "source.php", Key: "php", Extensions: []string{".php", ".phtml", ".inc"}}
	JS      = Language{Name: "javascript", Scope: "source.js", Key: "js", Extensions: []string{".js", ".mjs", ".cjs", ".jsx"}}
	Coffee  = Language{Name: "coffee", Scope: "source.coffee", Key: "coffee", Extensions: []string{".coffee"}}
	Python  = Language{Name: "python", Scope: "source.python", Key: "python", Extensions: []string{".py", ".pyw"}}
	Ruby    = Language{Name: "ruby", Scope: "source.ruby", Key: "ruby", Extensions: []string{".rb", ".rake", ".erb"}}
	Clojure = Language{Name: "clojure", Scope: "source.clojure", Key: "clojure", Extensions: []string{".clj", ".cljs", ".cljc", ".edn"}}
	Go      = Language{Name: "go", Scope: "source.go", Key: "go", Extensions: []string{".go"}}
	Smarty  = Language{Name: "smarty", Scope: "text.smarty", Key: "smarty", Extensions: []string{".tpl"}}
)

// All returns every known language.
func All() []Language {
	return []Language{HTML, PHP, JS, Coffee, Python, Ruby, Clojure, Go, Smarty}
}

// ForPath returns the language for a file path by extension. Ruby files
// under a Rails app directory get the rails scopes.
func ForPath(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, l := range All() {
		for _, e := range l.Extensions {
			if e == ext {
				if l.Name == Ruby.Name {
					return railsFlavor(path), true
				}
				return l, true
			}
		}
	}
	return Language{}, false
}

func railsFlavor(path string) Language {
	p := filepath.ToSlash(path)
	switch {
	case strings.Contains(p, "app/controllers/"):
		l := Ruby
		l.Scope, l.Key = "source.ruby.rails.controller", "controller"
		return l
	case strings.HasPrefix(p, "app/") || strings.Contains(p, "/app/"):
		l := Ruby
		l.Scope, l.Key = "source.ruby.rails", "rails"
		return l
	}
	return Ruby
}

// leaf turns a node type into the innermost scope, ending in key.
func leaf(nodeType, key string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, nodeType)
	name = strings.Trim(name, "_")
	if name == "" {
		name = "meta"
	}
	return name + "." + key
}

// ClassifyPath labels a file from its extension alone.
func ClassifyPath(path string) (string, error) {
	l, ok := ForPath(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, filepath.Base(path))
	}
	return l.Label(""), nil
}

// css has no extension mapping; it is only reached through HTML style blocks.
var css = Language{Name: "css", Scope: "source.css", Key: "css"}

// Classifier labels offsets in source files. It holds no parser state
// between calls and is safe for concurrent use.
type Classifier struct {
	maxEmbed int
}

// NewClassifier creates a classifier.
func NewClassifier() *Classifier {
	return &Classifier{maxEmbed: 3}
}

// Classify returns the context label at offset in src, a file at path.
func (c *Classifier) Classify(ctx context.Context, path string, src []byte, offset int) (string, error) {
	if offset < 0 || offset > len(src) {
		return "", fmt.Errorf("%w: %d not in [0,%d]", ErrOffsetOutOfRange, offset, len(src))
	}
	l, ok := ForPath(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, filepath.Base(path))
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.classify(ctx, l, src, touching(src, offset), nil, 0)
}

// touching moves an offset sitting just after a word onto its last byte.
func touching(src []byte, offset int) int {
	if offset > 0 && (offset == len(src) || !isWordByte(src[offset])) && isWordByte(src[offset-1]) {
		return offset - 1
	}
	return offset
}

func isWordByte(b byte) bool {
	return b == '_' || b == '$' || b >= 0x80 ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
