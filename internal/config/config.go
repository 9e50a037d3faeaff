package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/gotodoc/internal/config/loader"
)

// Config is the decoded gotodoc configuration.
type Config struct {
	Logging LoggingConfig
	Lookup  LookupConfig
	Browser BrowserConfig
	Panel   PanelConfig

	// Handlers maps a dispatch key to a URL template containing {token}.
	// Entries add keys or replace built-in handlers.
	Handlers map[string]string

	// Aliases maps a new key to an existing one.
	Aliases map[string]string

	Plugins PluginsConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string
}

// LookupConfig holds dispatch and command settings.
type LookupConfig struct {
	// Lookback is how many characters before a word the library
	// detector may inspect.
	Lookback int

	// Pydoc is the argv prefix for Python lookups.
	Pydoc []string

	// FallbackEncoding decodes command output that is not UTF-8.
	FallbackEncoding string

	// WorkDir is the working directory for doc commands.
	WorkDir string
}

// BrowserConfig holds URL opener settings.
type BrowserConfig struct {
	// Command overrides the platform opener. Empty means default.
	Command []string
}

// PanelConfig holds output panel settings.
type PanelConfig struct {
	Mode       string
	TitleColor string
}

// PluginsConfig lists Lua scripts that register handlers.
type PluginsConfig struct {
	Scripts []string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Lookup: LookupConfig{
			Lookback:         32,
			Pydoc:            []string{"pydoc"},
			FallbackEncoding: "windows-1252",
		},
		Panel: PanelConfig{
			Mode:       "auto",
			TitleColor: "#5f87af",
		},
		Handlers: map[string]string{},
		Aliases:  map[string]string{},
	}
}

// defaultMap is Default as a layer.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"logging": map[string]any{"level": d.Logging.Level},
		"lookup": map[string]any{
			"lookback":         int64(d.Lookup.Lookback),
			"pydoc":            strings.Join(d.Lookup.Pydoc, " "),
			"fallbackEncoding": d.Lookup.FallbackEncoding,
		},
		"panel": map[string]any{
			"mode":       d.Panel.Mode,
			"titleColor": d.Panel.TitleColor,
		},
	}
}

// Decode builds a Config from a merged map. Bad values keep their
// defaults and are returned joined in the error; the Config is always
// usable.
func Decode(m map[string]any) (Config, error) {
	d := &decoder{data: m}
	def := Default()

	cfg := Config{
		Logging: LoggingConfig{
			Level: d.stringOr("logging.level", def.Logging.Level),
		},
		Lookup: LookupConfig{
			Lookback:         d.intOr("lookup.lookback", def.Lookup.Lookback),
			Pydoc:            d.argvOr("lookup.pydoc", def.Lookup.Pydoc),
			FallbackEncoding: d.stringOr("lookup.fallbackEncoding", def.Lookup.FallbackEncoding),
			WorkDir:          expandHome(d.stringOr("lookup.workDir", "")),
		},
		Browser: BrowserConfig{
			Command: d.argvOr("browser.command", nil),
		},
		Panel: PanelConfig{
			Mode:       d.stringOr("panel.mode", def.Panel.Mode),
			TitleColor: d.stringOr("panel.titleColor", def.Panel.TitleColor),
		},
		Handlers: d.stringMap("handlers"),
		Aliases:  d.stringMap("aliases"),
		Plugins: PluginsConfig{
			Scripts: d.stringSliceOr("plugins.scripts", nil),
		},
	}

	if cfg.Lookup.Lookback <= 0 {
		d.fail(fmt.Errorf("config lookup.lookback: %w: must be positive, got %d", ErrInvalidValue, cfg.Lookup.Lookback))
		cfg.Lookup.Lookback = def.Lookup.Lookback
	}
	for i, s := range cfg.Plugins.Scripts {
		cfg.Plugins.Scripts[i] = expandHome(s)
	}

	return cfg, errors.Join(d.errs...)
}

// HandlerKeys returns the configured handler keys, sorted.
func (c Config) HandlerKeys() []string {
	keys := make([]string, 0, len(c.Handlers))
	for k := range c.Handlers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AliasKeys returns the configured alias keys, sorted.
func (c Config) AliasKeys() []string {
	keys := make([]string, 0, len(c.Aliases))
	for k := range c.Aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type decoder struct {
	data map[string]any
	errs []error
}

func (d *decoder) fail(err error) {
	d.errs = append(d.errs, err)
}

func (d *decoder) get(path string) (any, bool) {
	return loader.GetByPath(d.data, path)
}

func (d *decoder) stringOr(path, def string) string {
	v, ok := d.get(path)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		d.fail(&TypeError{Path: path, Expected: "string", Actual: typeName(v)})
		return def
	}
	return s
}

func (d *decoder) intOr(path string, def int) int {
	v, ok := d.get(path)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	}
	d.fail(&TypeError{Path: path, Expected: "int", Actual: typeName(v)})
	return def
}

func (d *decoder) stringSliceOr(path string, def []string) []string {
	v, ok := d.get(path)
	if !ok {
		return append([]string(nil), def...)
	}
	out, ok := toStrings(v)
	if !ok {
		d.fail(&TypeError{Path: path, Expected: "array of strings", Actual: typeName(v)})
		return append([]string(nil), def...)
	}
	return out
}

// argvOr accepts either an array or a space-separated string.
func (d *decoder) argvOr(path string, def []string) []string {
	v, ok := d.get(path)
	if !ok {
		return append([]string(nil), def...)
	}
	if s, ok := v.(string); ok {
		if fields := strings.Fields(s); len(fields) > 0 {
			return fields
		}
		return append([]string(nil), def...)
	}
	return d.stringSliceOr(path, def)
}

func (d *decoder) stringMap(path string) map[string]string {
	out := map[string]string{}
	v, ok := d.get(path)
	if !ok {
		return out
	}
	m, ok := v.(map[string]any)
	if !ok {
		d.fail(&TypeError{Path: path, Expected: "table", Actual: typeName(v)})
		return out
	}
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			d.fail(&TypeError{Path: path + "." + k, Expected: "string", Actual: typeName(item)})
			continue
		}
		out[k] = s
	}
	return out
}

func toStrings(v any) ([]string, bool) {
	switch v := v.(type) {
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
