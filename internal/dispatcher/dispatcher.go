package dispatcher

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dshills/gotodoc/internal/dispatcher/execctx"
	"github.com/dshills/gotodoc/internal/dispatcher/handler"
	"github.com/dshills/gotodoc/internal/jslib"
	"github.com/dshills/gotodoc/internal/scope"
)

// Dispatcher resolves context labels to handlers and runs them.
// Dispatch does not block and holds no mutable state besides metrics, so
// a Dispatcher may be shared between goroutines.
type Dispatcher struct {
	registry *Registry
	detector *jslib.Detector
	fallback handler.Handler
	config   Config
	metrics  *Metrics
}

// New creates a dispatcher reading from registry.
// The registry must not be modified afterwards.
func New(registry *Registry, config Config) *Dispatcher {
	if registry == nil {
		registry = NewRegistry()
	}
	d := &Dispatcher{
		registry: registry,
		detector: jslib.NewDetector(config.Lookback),
		fallback: handler.UnsupportedHandler(),
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// Resolve returns the dispatch key for a label, refined by library
// detection when the label is ambiguous. library is the detected library
// key, or "" when detection did not change the key.
func (d *Dispatcher) Resolve(label string, src jslib.TextSource) (key, library string) {
	key = scope.Resolve(label)
	if !scope.IsAmbiguous(key) {
		return key, ""
	}
	if lib := d.detector.DetectIn(src); lib != "" && d.registry.Has(lib) {
		return lib, lib
	}
	return key, ""
}

// Dispatch looks up and runs the handler for a request.
// Unregistered keys produce an Unsupported action, never an error.
func (d *Dispatcher) Dispatch(req *execctx.Request) handler.DocAction {
	startTime := time.Now()

	req.Key, req.Library = d.Resolve(req.Label, req.Source)

	h := d.registry.Get(req.Key)
	if h == nil {
		h = d.fallback
	}

	var action handler.DocAction
	if d.config.RecoverFromPanic {
		action = d.executeWithRecovery(h, req)
	} else {
		action = h.Handle(req)
	}
	action = action.WithKey(req.Key)

	if d.metrics != nil {
		d.metrics.RecordDispatch(req.Key, time.Since(startTime), action.Kind)
	}

	return action
}

// DispatchToken is a convenience wrapper building the request.
func (d *Dispatcher) DispatchToken(token, label string, src jslib.TextSource) handler.DocAction {
	return d.Dispatch(execctx.New(token, label).WithSource(src))
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, req *execctx.Request) (action handler.DocAction) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			err := fmt.Errorf("%w for %s: %v", ErrPanic, req.Key, r)
			action = handler.Unsupported(req.Key).WithMessage(fmt.Sprintf("%v\n%s", err, stack[:n]))

			if d.metrics != nil {
				d.metrics.RecordPanic(req.Key)
			}
		}
	}()

	return h.Handle(req)
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Detector returns the library detector.
func (d *Dispatcher) Detector() *jslib.Detector {
	return d.detector
}

// Metrics returns the metrics collector, nil if disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Describe returns the handler description for a key, or the fallback's.
func (d *Dispatcher) Describe(key string) string {
	if h := d.registry.Get(key); h != nil {
		return h.Describe()
	}
	return d.fallback.Describe()
}
