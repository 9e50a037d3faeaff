//go:build cgo

package syntax

import (
	"context"
	"strings"
	"testing"

	"github.com/dshills/gotodoc/internal/scope"
)

func TestClassifyParsed(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		src      string
		at       string
		key      string
		contains string
	}{
		{
			name: "go call",
			path: "main.go",
			src:  "package main\n\nfunc main() { fmt.Println(\"x\") }\n",
			at:   "Println",
			key:  "go",
		},
		{
			name: "python",
			path: "tool.py",
			src:  "import os\nos.path.join('a', 'b')\n",
			at:   "join",
			key:  "python",
		},
		{
			name:     "script in html",
			path:     "index.html",
			src:      "<html><body><script>$.ajax({url: '/x'})</script></body></html>",
			at:       "ajax",
			key:      "js",
			contains: "text.html.basic source.js.embedded.html",
		},
		{
			name: "html text",
			path: "index.html",
			src:  "<html><body><p>hello</p></body></html>",
			at:   "hello",
			key:  "html",
		},
		{
			name:     "style in html",
			path:     "index.html",
			src:      "<style>body { color: red }</style>",
			at:       "color",
			key:      "css",
			contains: "source.css.embedded.html",
		},
		{
			name: "php code",
			path: "index.php",
			src:  "<p>hi</p>\n<?php echo strlen(\"abc\"); ?>\n",
			at:   "strlen",
			key:  "php",
		},
		{
			name:     "html in php",
			path:     "index.php",
			src:      "<p>hi</p>\n<?php echo strlen(\"abc\"); ?>\n",
			at:       "hi",
			key:      "html",
			contains: "source.php text.html.basic.embedded.php",
		},
		{
			name:     "rails controller",
			path:     "app/controllers/users_controller.rb",
			src:      "class UsersController < ApplicationController\n  before_action :load\nend\n",
			at:       "before_action",
			key:      "controller",
			contains: "source.ruby.rails.controller",
		},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := strings.Index(tt.src, tt.at)
			if off < 0 {
				t.Fatalf("%q not in source", tt.at)
			}
			off++ // inside the word

			label, err := c.Classify(context.Background(), tt.path, []byte(tt.src), off)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got := scope.Resolve(label); got != tt.key {
				t.Errorf("key = %q, want %q (label %q)", got, tt.key, label)
			}
			if tt.contains != "" && !strings.Contains(label, tt.contains) {
				t.Errorf("label %q does not contain %q", label, tt.contains)
			}
		})
	}
}

func TestClassifyCursorAfterWord(t *testing.T) {
	src := "package main\n\nvar x = len\n"
	off := strings.Index(src, "len") + len("len")

	label, err := NewClassifier().Classify(context.Background(), "a.go", []byte(src), off)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(label, "identifier.go") {
		t.Errorf("label = %q, want identifier leaf", label)
	}
}
