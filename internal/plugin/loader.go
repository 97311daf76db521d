package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Script describes a discovered Lua plugin.
type Script struct {
	Name string
	Path string
}

// Entry points checked, in order, inside a plugin directory.
var entryPoints = []string{"init.lua", "plugin.lua"}

// DefaultPluginPaths returns the default script search paths.
func DefaultPluginPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "blockmark", "plugins"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".blockmark", "plugins"))
	}
	return paths
}

// Discover finds Lua plugins in paths: single name.lua files, and
// directories holding init.lua or plugin.lua. When two paths provide the
// same name the first wins. Missing paths are skipped. Results are sorted
// by name.
func Discover(paths ...string) ([]Script, error) {
	found := make(map[string]Script)

	for _, base := range paths {
		entries, err := os.ReadDir(base)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("discover plugins in %s: %w", base, err)
		}

		for _, entry := range entries {
			name, path, ok := inspect(base, entry)
			if !ok {
				continue
			}
			if _, exists := found[name]; !exists {
				found[name] = Script{Name: name, Path: path}
			}
		}
	}

	scripts := make([]Script, 0, len(found))
	for _, s := range found {
		scripts = append(scripts, s)
	}
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Name < scripts[j].Name
	})
	return scripts, nil
}

func inspect(base string, entry os.DirEntry) (name, path string, ok bool) {
	if !entry.IsDir() {
		if filepath.Ext(entry.Name()) != ".lua" {
			return "", "", false
		}
		return strings.TrimSuffix(entry.Name(), ".lua"), filepath.Join(base, entry.Name()), true
	}

	dir := filepath.Join(base, entry.Name())
	for _, main := range entryPoints {
		p := filepath.Join(dir, main)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return entry.Name(), p, true
		}
	}
	return "", "", false
}

// Find returns the script named name from paths.
func Find(name string, paths ...string) (Script, error) {
	scripts, err := Discover(paths...)
	if err != nil {
		return Script{}, err
	}
	for _, s := range scripts {
		if s.Name == name {
			return s, nil
		}
	}
	return Script{}, fmt.Errorf("%w: %s", ErrPluginNotFound, name)
}
