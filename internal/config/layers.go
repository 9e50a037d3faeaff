package config

import (
	"sort"

	"github.com/dshills/gotodoc/internal/config/loader"
)

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceDefaults is the built-in defaults.
	SourceDefaults Source = iota
	// SourceFile is the user config file and its includes.
	SourceFile
	// SourceEnv is GOTODOC_* environment variables.
	SourceEnv
	// SourceFlags is command-line overrides.
	SourceFlags
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceDefaults:
		return "defaults"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "env"
	case SourceFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Layer is one configuration source. Later sources override earlier
// ones.
type Layer struct {
	Source Source
	Path   string
	Data   map[string]any
}

// Merge combines layers in Source order into a new map.
func Merge(layers ...Layer) map[string]any {
	sorted := append([]Layer(nil), layers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Source < sorted[j].Source
	})

	merged := make(map[string]any)
	for _, l := range sorted {
		merged = loader.DeepMerge(merged, loader.Clone(l.Data))
	}
	return merged
}

// WhichLayer returns the source that supplied path, the highest layer
// that sets it.
func WhichLayer(path string, layers ...Layer) (Source, bool) {
	var found bool
	var src Source
	for _, l := range layers {
		if _, ok := loader.GetByPath(l.Data, path); ok && (!found || l.Source >= src) {
			src, found = l.Source, true
		}
	}
	return src, found
}
