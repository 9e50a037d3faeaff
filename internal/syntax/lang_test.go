package syntax

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/gotodoc/internal/scope"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		path  string
		scope string
		key   string
	}{
		{"index.php", "source.php", "php"},
		{"site/page.HTML", "text.html.basic", "html"},
		{"lib/app.js", "source.js", "js"},
		{"lib/app.coffee", "source.coffee", "coffee"},
		{"tool.py", "source.python", "python"},
		{"core.cljs", "source.clojure", "clojure"},
		{"main.go", "source.go", "go"},
		{"views/list.tpl", "text.smarty", "smarty"},
		{"lib/tasks.rb", "source.ruby", "ruby"},
		{"app/models/user.rb", "source.ruby.rails", "rails"},
		{"/srv/shop/app/helpers/cart.rb", "source.ruby.rails", "rails"},
		{"/srv/shop/app/controllers/cart_controller.rb", "source.ruby.rails.controller", "controller"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l, ok := ForPath(tt.path)
			if !ok {
				t.Fatalf("ForPath(%q) not found", tt.path)
			}
			if l.Scope != tt.scope || l.Key != tt.key {
				t.Errorf("ForPath(%q) = %s/%s, want %s/%s", tt.path, l.Scope, l.Key, tt.scope, tt.key)
			}
		})
	}

	if _, ok := ForPath("README"); ok {
		t.Error("ForPath(README) should not match")
	}
}

func TestLabelEndsWithKey(t *testing.T) {
	for _, l := range All() {
		label := l.Label("call_expression")
		if got := scope.Resolve(label); got != l.Key {
			t.Errorf("%s: Resolve(%q) = %q, want %q", l.Name, label, got, l.Key)
		}
	}
}

func TestLabelNesting(t *testing.T) {
	inner := JS
	inner.Scope = JS.Embedded(HTML)

	got := inner.Label("property_identifier", HTML.Scope)
	want := "text.html.basic source.js.embedded.html property_identifier.js"
	if got != want {
		t.Errorf("Label = %q, want %q", got, want)
	}
}

func TestLeaf(t *testing.T) {
	tests := []struct {
		nodeType string
		want     string
	}{
		{"identifier", "identifier.go"},
		{"(", "meta.go"},
		{"", "meta.go"},
		{"call.expr", "call_expr.go"},
	}
	for _, tt := range tests {
		if got := leaf(tt.nodeType, "go"); got != tt.want {
			t.Errorf("leaf(%q) = %q, want %q", tt.nodeType, got, tt.want)
		}
	}
}

func TestClassifyPath(t *testing.T) {
	label, err := ClassifyPath("a.coffee")
	if err != nil {
		t.Fatal(err)
	}
	if label != "source.coffee meta.coffee" {
		t.Errorf("ClassifyPath = %q", label)
	}

	if _, err := ClassifyPath("a.unknown"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("err = %v, want ErrUnknownLanguage", err)
	}
}

func TestClassifyErrors(t *testing.T) {
	c := NewClassifier()
	ctx := context.Background()

	if _, err := c.Classify(ctx, "a.go", []byte("package a"), 20); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("out of range err = %v", err)
	}
	if _, err := c.Classify(ctx, "a.go", []byte("package a"), -1); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("negative err = %v", err)
	}
	if _, err := c.Classify(ctx, "notes.txt", []byte("x"), 0); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("unknown err = %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := c.Classify(canceled, "a.go", []byte("package a"), 0); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled err = %v", err)
	}
}

func TestClassifyWithoutGrammar(t *testing.T) {
	label, err := NewClassifier().Classify(context.Background(), "x.clj", []byte("(map inc xs)"), 2)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(label, "source.clojure ") || scope.Resolve(label) != "clojure" {
		t.Errorf("label = %q", label)
	}
}

func TestTouching(t *testing.T) {
	src := []byte("foo(bar) baz")
	tests := []struct {
		off  int
		want int
	}{
		{0, 0},
		{3, 2},
		{4, 4},
		{8, 8},
		{7, 6},
		{9, 9},
		{12, 11},
	}
	for _, tt := range tests {
		if got := touching(src, tt.off); got != tt.want {
			t.Errorf("touching(%d) = %d, want %d", tt.off, got, tt.want)
		}
	}
}
