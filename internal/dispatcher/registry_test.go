package dispatcher_test

import (
	"errors"
	"testing"

	"github.com/dshills/gotodoc/internal/dispatcher"
	"github.com/dshills/gotodoc/internal/dispatcher/execctx"
	"github.com/dshills/gotodoc/internal/dispatcher/handler"
)

func urlHandler(url string) handler.Handler {
	return handler.NewHandlerFunc(url, func(req *execctx.Request) handler.DocAction {
		return handler.OpenURL(url + req.Token)
	})
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := dispatcher.NewRegistry()

	if err := registry.Register("php", urlHandler("http://php.net/")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if registry.Get("php") == nil {
		t.Fatal("expected non-nil handler")
	}
	if registry.Get("missing") != nil {
		t.Error("expected nil for missing key")
	}
	if !registry.Has("php") || registry.Has("missing") {
		t.Error("Has returned wrong answer")
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	registry := dispatcher.NewRegistry()

	if err := registry.Register("", urlHandler("x")); !errors.Is(err, dispatcher.ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
	if err := registry.Register("k", nil); !errors.Is(err, dispatcher.ErrNilHandler) {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	dispatcher.NewRegistry().MustRegister("", urlHandler("x"))
}

func TestRegistryAliasSharesHandler(t *testing.T) {
	registry := dispatcher.NewRegistry()
	h := urlHandler("http://mdn/")
	registry.MustRegister("js", h)

	if err := registry.Alias("jsx", "js"); err != nil {
		t.Fatalf("Alias: %v", err)
	}
	if registry.Get("jsx") != h {
		t.Error("alias should point at the same handler value")
	}

	err := registry.Alias("tsx", "typescript")
	if !errors.Is(err, dispatcher.ErrUnknownAliasTarget) {
		t.Errorf("expected ErrUnknownAliasTarget, got %v", err)
	}
}

func TestRegistryListCountUnregister(t *testing.T) {
	registry := dispatcher.NewRegistry()
	registry.MustRegister("go", urlHandler("g"))
	registry.MustRegister("clojure", urlHandler("c"))
	registry.MustRegister("php", urlHandler("p"))

	list := registry.List()
	want := []string{"clojure", "go", "php"}
	if len(list) != len(want) {
		t.Fatalf("List() = %v, want %v", list, want)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, list[i], want[i])
		}
	}

	registry.Unregister("go")
	if registry.Count() != 2 || registry.Has("go") {
		t.Errorf("Unregister failed, keys = %v", registry.List())
	}
}

func TestRegistryClone(t *testing.T) {
	registry := dispatcher.NewRegistry()
	registry.MustRegister("go", urlHandler("g"))

	clone := registry.Clone()
	clone.MustRegister("php", urlHandler("p"))

	if registry.Has("php") {
		t.Error("clone should not modify original")
	}
	if clone.Get("go") != registry.Get("go") {
		t.Error("clone should share handler values")
	}
}
