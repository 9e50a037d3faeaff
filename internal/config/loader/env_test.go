package loader

import (
	"reflect"
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("GOTODOC_LOG_LEVEL", "debug")
	t.Setenv("GOTODOC_LOOKBACK", "64")
	t.Setenv("GOTODOC_BROWSER", `["firefox", "--new-tab"]`)
	t.Setenv("GOTODOC_LOOKUP_FALLBACK_ENCODING", "latin1")
	t.Setenv("GOTODOC_HANDLERS_OBJ_C", "https://developer.apple.com/search/?q={token}")
	t.Setenv("GOTODOC_CONFIG", "/tmp/ignored.toml")
	t.Setenv("GOTODOC_BOGUS", "x")

	got, err := NewEnvLoader("").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"lookup.lookback", int64(64)},
		{"browser.command", []any{"firefox", "--new-tab"}},
		{"lookup.fallbackEncoding", "latin1"},
		{"handlers.obj_c", "https://developer.apple.com/search/?q={token}"},
	}
	for _, tt := range tests {
		v, ok := GetByPath(got, tt.path)
		if !ok || !reflect.DeepEqual(v, tt.want) {
			t.Errorf("%s = %#v, want %#v", tt.path, v, tt.want)
		}
	}

	if _, ok := got["config"]; ok {
		t.Error("GOTODOC_CONFIG leaked into config")
	}
	if _, ok := got["bogus"]; ok {
		t.Error("single-segment variable produced a section")
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	t.Setenv("DOCS_PANEL", "plain")

	l := NewEnvLoader("DOCS_")
	l.AddMapping("DOCS_PANEL", "panel.mode")
	got, _ := l.Load()

	if v, _ := GetByPath(got, "panel.mode"); v != "plain" {
		t.Errorf("panel.mode = %#v", v)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Off", false},
		{"42", int64(42)},
		{"-1", int64(-1)},
		{"1.5", "1.5"},
		{`["a"]`, []any{"a"}},
		{`{"k":"v"}`, map[string]any{"k": "v"}},
		{"[not json", "[not json"},
		{"windows-1252", "windows-1252"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
