package docs

import (
	"strings"
	"unicode"

	"github.com/dshills/gotodoc/internal/dispatcher"
	"github.com/dshills/gotodoc/internal/dispatcher/execctx"
	"github.com/dshills/gotodoc/internal/dispatcher/handler"
)

// Built-in URL templates.
const (
	PHPURL     Template = "http://php.net/{token}"
	RailsURL   Template = "http://api.rubyonrails.org/?q={token}"
	MDNURL     Template = "https://developer.mozilla.org/en-US/search?q={token}"
	PythonURL  Template = "http://docs.python.org/search.html?q={token}"
	ClojureURL Template = "http://clojuredocs.org/search?x=0&y=0&q={token}"
	GoURL      Template = "http://golang.org/search?q={token}"
	SmartyURL  Template = "http://www.smarty.net/{token}"
	JQueryURL  Template = "http://api.jquery.com/{token}"
	DojoURL    Template = "http://dojotoolkit.org/api/dojo.{token}"
)

// Options configures the built-in handlers.
type Options struct {
	// Pydoc is the argv prefix run for Python tokens; the token is
	// appended as the last argument.
	Pydoc []string
}

// DefaultOptions returns the default handler options.
func DefaultOptions() Options {
	return Options{Pydoc: []string{"pydoc"}}
}

// RegisterBuiltins adds the built-in handlers to reg. Keys sharing
// documentation are registered with the same handler value.
func RegisterBuiltins(reg *dispatcher.Registry, opts Options) {
	if len(opts.Pydoc) == 0 {
		opts.Pydoc = DefaultOptions().Pydoc
	}

	rails := URLHandler(RailsURL)
	mdn := URLHandler(MDNURL)

	reg.MustRegister("php", URLHandler(PHPURL))
	reg.MustRegister("rails", rails)
	reg.MustRegister("controller", rails)
	reg.MustRegister("ruby", rails)
	reg.MustRegister("js", mdn)
	reg.MustRegister("coffee", mdn)
	reg.MustRegister("python", PythonHandler(opts.Pydoc...))
	reg.MustRegister("clojure", URLHandler(ClojureURL))
	reg.MustRegister("go", URLHandler(GoURL))
	reg.MustRegister("smarty", URLHandler(SmartyURL))
	reg.MustRegister("jquery", LibraryHandler(JQueryURL))
	reg.MustRegister("dojo", LibraryHandler(DojoURL))
}

// PythonHandler runs pydoc for single-word tokens and falls back to the
// docs.python.org search for anything containing whitespace.
func PythonHandler(pydoc ...string) handler.Handler {
	if len(pydoc) == 0 {
		pydoc = DefaultOptions().Pydoc
	}
	desc := strings.Join(pydoc, " ") + " " + Placeholder + " | " + string(PythonURL)
	return handler.NewHandlerFunc(desc, func(req *execctx.Request) handler.DocAction {
		if strings.IndexFunc(req.Token, unicode.IsSpace) < 0 {
			argv := append(append([]string(nil), pydoc...), req.Token)
			return handler.RunCommand(argv...)
		}
		return handler.OpenURL(PythonURL.Expand(req.Token))
	})
}
