package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDecode_Defaults(t *testing.T) {
	cfg, err := Decode(defaultMap())
	if err != nil {
		t.Fatalf("Decode(defaults): %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Decode(defaults) = %+v\nwant %+v", cfg, Default())
	}
}

func TestDecode_Values(t *testing.T) {
	m := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"lookup": map[string]any{
			"lookback":         int64(64),
			"pydoc":            "python3 -m pydoc",
			"fallbackEncoding": "latin1",
		},
		"browser":  map[string]any{"command": []any{"firefox", "--new-tab"}},
		"panel":    map[string]any{"mode": "plain"},
		"handlers": map[string]any{"rust": "https://docs.rs/{token}"},
		"aliases":  map[string]any{"jsx": "js"},
		"plugins":  map[string]any{"scripts": []any{"/etc/gotodoc/perl.lua"}},
	}

	cfg, err := Decode(m)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Lookup.Lookback != 64 {
		t.Errorf("Lookback = %d", cfg.Lookup.Lookback)
	}
	if !reflect.DeepEqual(cfg.Lookup.Pydoc, []string{"python3", "-m", "pydoc"}) {
		t.Errorf("Pydoc = %q", cfg.Lookup.Pydoc)
	}
	if cfg.Lookup.FallbackEncoding != "latin1" {
		t.Errorf("FallbackEncoding = %q", cfg.Lookup.FallbackEncoding)
	}
	if !reflect.DeepEqual(cfg.Browser.Command, []string{"firefox", "--new-tab"}) {
		t.Errorf("Browser.Command = %q", cfg.Browser.Command)
	}
	if cfg.Panel.Mode != "plain" || cfg.Panel.TitleColor != Default().Panel.TitleColor {
		t.Errorf("Panel = %+v", cfg.Panel)
	}
	if cfg.Handlers["rust"] != "https://docs.rs/{token}" || cfg.Aliases["jsx"] != "js" {
		t.Errorf("Handlers = %v, Aliases = %v", cfg.Handlers, cfg.Aliases)
	}
	if !reflect.DeepEqual(cfg.Plugins.Scripts, []string{"/etc/gotodoc/perl.lua"}) {
		t.Errorf("Scripts = %q", cfg.Plugins.Scripts)
	}
}

func TestDecode_BadValuesKeepDefaults(t *testing.T) {
	m := map[string]any{
		"lookup":   map[string]any{"lookback": "many", "pydoc": int64(3)},
		"panel":    map[string]any{"mode": true},
		"handlers": map[string]any{"php": int64(1), "go": "https://pkg.go.dev/search?q={token}"},
		"aliases":  "jsx=js",
	}

	cfg, err := Decode(m)
	if err == nil {
		t.Fatal("expected warnings")
	}
	var te *TypeError
	if !errors.As(err, &te) {
		t.Errorf("error %v does not contain a *TypeError", err)
	}

	def := Default()
	if cfg.Lookup.Lookback != def.Lookup.Lookback {
		t.Errorf("Lookback = %d", cfg.Lookup.Lookback)
	}
	if !reflect.DeepEqual(cfg.Lookup.Pydoc, def.Lookup.Pydoc) {
		t.Errorf("Pydoc = %q", cfg.Lookup.Pydoc)
	}
	if cfg.Panel.Mode != def.Panel.Mode {
		t.Errorf("Panel.Mode = %q", cfg.Panel.Mode)
	}
	if _, ok := cfg.Handlers["php"]; ok {
		t.Error("non-string handler kept")
	}
	if cfg.Handlers["go"] == "" {
		t.Error("valid handler dropped next to a bad one")
	}
	if len(cfg.Aliases) != 0 {
		t.Errorf("Aliases = %v", cfg.Aliases)
	}
}

func TestDecode_NonPositiveLookback(t *testing.T) {
	cfg, err := Decode(map[string]any{"lookup": map[string]any{"lookback": int64(0)}})
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
	if cfg.Lookup.Lookback != 32 {
		t.Errorf("Lookback = %d", cfg.Lookup.Lookback)
	}
}

func TestConfig_Keys(t *testing.T) {
	cfg := Default()
	cfg.Handlers = map[string]string{"b": "x", "a": "y"}
	cfg.Aliases = map[string]string{"z": "a", "m": "b"}

	if got := cfg.HandlerKeys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("HandlerKeys = %v", got)
	}
	if got := cfg.AliasKeys(); !reflect.DeepEqual(got, []string{"m", "z"}) {
		t.Errorf("AliasKeys = %v", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/x.lua"); got != filepath.Join(home, "x.lua") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/abs/x.lua"); got != "/abs/x.lua" {
		t.Errorf("expandHome(abs) = %q", got)
	}
	if got := expandHome("~user/x"); got != "~user/x" {
		t.Errorf("expandHome(~user) = %q", got)
	}
}
