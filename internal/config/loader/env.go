package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix prefixes every gotodoc environment variable.
const DefaultEnvPrefix = "GOTODOC_"

// EnvLoader loads configuration from environment variables.
//
// Mapped variables go to their configured path. Any other prefixed
// variable is converted by name: GOTODOC_LOOKUP_FALLBACK_ENCODING sets
// lookup.fallbackEncoding and GOTODOC_HANDLERS_PHP sets handlers.php.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	skip    map[string]bool
}

// NewEnvLoader creates an environment loader for prefix, which should
// include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		skip:    map[string]bool{prefix + "CONFIG": true},
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL": "logging.level",
		prefix + "LOOKBACK":  "lookup.lookback",
		prefix + "PYDOC":     "lookup.pydoc",
		prefix + "WORKDIR":   "lookup.workDir",
		prefix + "BROWSER":   "browser.command",
		prefix + "PANEL":     "panel.mode",
		prefix + "SCRIPTS":   "plugins.scripts",
	}
}

// AddMapping maps an environment variable to a config path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads the environment. Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			SetByPath(config, path, parseValue(val))
		}
	}

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if _, mapped := l.mapping[name]; mapped || l.skip[name] {
			continue
		}
		if path := l.envToPath(name); path != "" {
			SetByPath(config, path, parseValue(value))
		}
	}

	return config, nil
}

// envToPath converts GOTODOC_LOOKUP_FALLBACK_ENCODING to
// lookup.fallbackEncoding. Handler and alias keys stay lowercase
// without camel-casing so GOTODOC_HANDLERS_OBJC maps to handlers.objc.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}

	section := strings.ToLower(parts[0])
	rest := parts[1:]
	if section == "handlers" || section == "aliases" {
		return section + "." + strings.ToLower(strings.Join(rest, "_"))
	}

	name := strings.ToLower(rest[0])
	for _, part := range rest[1:] {
		if part != "" {
			name += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + name
}

// parseValue converts booleans, integers and JSON arrays or objects;
// anything else stays a string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	trimmed := strings.TrimSpace(s)
	if (strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{")) && gjson.Valid(trimmed) {
		return gjson.Parse(trimmed).Value()
	}

	return s
}
