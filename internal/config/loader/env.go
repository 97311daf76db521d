package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix of variables read by the environment
// loader.
const DefaultEnvPrefix = "BLOCKMARK_"

// EnvLoader loads configuration from environment variables.
//
// Mapped variables set the path they are mapped to. Other prefixed
// variables are converted by taking the first word as the section and the
// rest, lowercased and joined with underscores, as the key:
// BLOCKMARK_HISTORY_MAX_ENTRIES sets history.max_entries.
type EnvLoader struct {
	prefix  string
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "BLOCKMARK_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// defaultEnvMapping covers the nested plugin settings the generic
// conversion cannot express.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "FILE":               "plugins.file.path",
		prefix + "FILE_HTML":          "plugins.file.html",
		prefix + "FILE_WATCH":         "plugins.file.watch",
		prefix + "HTTP_GET_URL":       "plugins.http.get_url",
		prefix + "HTTP_POST_URL":      "plugins.http.post_url",
		prefix + "HTTP_TIMEOUT":       "plugins.http.timeout",
		prefix + "TEMPLATE":           "plugins.template.path",
		prefix + "TEMPLATE_SELECTOR":  "plugins.template.selector",
		prefix + "TEMPLATE_OUTPUT":    "plugins.template.output",
		prefix + "LUA_PATHS":          "plugins.lua.paths",
		prefix + "LUA_SCRIPTS":        "plugins.lua.scripts",
		prefix + "CONTENT_GUARD":      "plugins.content_guard",
		prefix + "LOG_FILE":           "log.file",
		prefix + "LOG_LEVEL":          "log.level",
		prefix + "RENDERER":           "renderer.name",
		prefix + "RENDERER_UNSAFE":    "renderer.unsafe_html",
		prefix + "HISTORY":            "history.backend",
		prefix + "HISTORY_PATH":       "history.path",
		prefix + "HISTORY_KEY":        "history.key",
		prefix + "HISTORY_MAX":        "history.max_entries",
		prefix + "THEME_BACKGROUND":   "theme.background",
		prefix + "THEME_FOREGROUND":   "theme.foreground",
		prefix + "THEME_ACCENT":       "theme.accent",
		prefix + "THEME_MUTED":        "theme.muted",
		prefix + "THEME_ACTIVE_BLOCK": "theme.active_block",
	}
}

// Load reads environment variables and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, l.parseValue(value))
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts BLOCKMARK_HISTORY_MAX_ENTRIES to history.max_entries.
// Variables without a key part are ignored.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// parseValue attempts to parse the string value into an appropriate type.
func (l *EnvLoader) parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// JSON arrays carry lists such as plugin paths.
	if strings.HasPrefix(s, "[") {
		var v []any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
