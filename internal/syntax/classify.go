//go:build cgo

package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
)

// Parsed reports whether Classify parses files or only reads extensions.
const Parsed = true

func grammar(l Language) *sitter.Language {
	switch l.Name {
	case HTML.Name:
		return html.GetLanguage()
	case PHP.Name:
		return php.GetLanguage()
	case JS.Name:
		return javascript.GetLanguage()
	case Python.Name:
		return python.GetLanguage()
	case Ruby.Name:
		return ruby.GetLanguage()
	case Go.Name:
		return golang.GetLanguage()
	}
	return nil
}

func (c *Classifier) classify(ctx context.Context, l Language, src []byte, offset int, outer []string, depth int) (string, error) {
	lang := grammar(l)
	if lang == nil {
		return l.Label("", outer...), nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", l.Name, err)
	}
	defer tree.Close()

	path := pathTo(tree.RootNode(), uint32(offset))
	if depth < c.maxEmbed {
		if inner, n, ok := embedded(l, path); ok {
			start, end := int(n.StartByte()), int(n.EndByte())
			host := l
			inner.Scope = inner.Embedded(host)
			return c.classify(ctx, inner, src[start:end], offset-start, append(outer, host.Scope), depth+1)
		}
	}

	nodeType := ""
	if len(path) > 1 {
		nodeType = path[len(path)-1].Type()
	}
	return l.Label(nodeType, outer...), nil
}

// pathTo returns the nodes from root down to the smallest node holding off.
func pathTo(root *sitter.Node, off uint32) []*sitter.Node {
	path := []*sitter.Node{root}
	n := root
	for {
		var next *sitter.Node
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child == nil {
				continue
			}
			if child.StartByte() <= off && off < child.EndByte() {
				next = child
				break
			}
		}
		if next == nil {
			return path
		}
		path = append(path, next)
		n = next
	}
}

// embedded finds a region of another language on path.
func embedded(l Language, path []*sitter.Node) (Language, *sitter.Node, bool) {
	for i, n := range path {
		switch l.Name {
		case HTML.Name:
			if n.Type() != "raw_text" || i == 0 {
				continue
			}
			switch path[i-1].Type() {
			case "script_element":
				return JS, n, true
			case "style_element":
				return css, n, true
			}
		case PHP.Name:
			if n.Type() == "text" {
				return HTML, n, true
			}
		}
	}
	return Language{}, nil, false
}
