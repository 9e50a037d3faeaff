// Package docs provides the built-in documentation handlers.
//
// Each built-in key maps to a URL template or, for Python, a local pydoc
// invocation:
//
//	php                      http://php.net/{token}
//	rails, controller, ruby  http://api.rubyonrails.org/?q={token}
//	js, coffee               https://developer.mozilla.org/en-US/search?q={token}
//	python                   pydoc {token}, or docs.python.org search
//	clojure                  http://clojuredocs.org/search?x=0&y=0&q={token}
//	go                       http://golang.org/search?q={token}
//	smarty                   http://www.smarty.net/{token}
//	jquery                   http://api.jquery.com/{token}
//	dojo                     http://dojotoolkit.org/api/dojo.{token}
//
// Tokens are substituted verbatim; escaping is left to the URL opener.
package docs
