// Package dispatcher maps context labels to documentation handlers.
//
// # Dispatch
//
// A lookup flows through the dispatcher as follows:
//
//  1. The dispatch key is the last dot-separated segment of the label
//     (scope.Resolve).
//  2. For the ambiguous "js" key the jslib.Detector inspects the text
//     before the token. A detected library with a registered handler
//     replaces the key ("jquery", "dojo").
//  3. The Registry returns the handler for the key, or the Unsupported
//     fallback when none is registered.
//  4. The handler runs (with optional panic recovery) and its DocAction
//     is returned with Key filled in.
//  5. Metrics are recorded (if enabled).
//
// # Registry
//
// The Registry is built once at startup and treated as read-only after
// it is handed to a Dispatcher. Keys that share documentation (ruby,
// rails, controller) are separate entries pointing at the same handler
// value:
//
//	reg := dispatcher.NewRegistry()
//	docs.RegisterBuiltins(reg, docs.DefaultOptions())
//	_ = reg.Alias("jsx", "js")
//
//	d := dispatcher.New(reg, dispatcher.DefaultConfig())
//	action := d.Dispatch(execctx.New("foo", "source.php"))
//	// action.URL == "http://php.net/foo"
//
// Configuration reloads build a new Registry and Dispatcher rather than
// mutating one in use.
package dispatcher
