// Package lua lets users add documentation handlers in Lua.
//
// Each script runs in its own sandboxed State: only the base, table,
// string and math libraries are open, and dofile, loadfile, load and
// loadstring are removed. A script registers handlers through the
// global gotodoc module:
//
//	-- URL template, {token} is replaced verbatim
//	gotodoc.register("rust", "https://doc.rust-lang.org/std/?search={token}")
//
//	-- function returning a URL, a table, or nil for "not supported"
//	gotodoc.register("perl", function(token, label, key)
//	    if token:match("^%u") then
//	        return { command = { "perldoc", token } }
//	    end
//	    return "https://perldoc.perl.org/search?q=" .. gotodoc.escape(token)
//	end)
//
//	gotodoc.alias("pl", "perl")
//
// Handlers returned by Load are applied to a dispatcher.Registry with
// Plugin.Apply. Calls into a State are serialized and bounded by the
// execution timeout.
package lua
