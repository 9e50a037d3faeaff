package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/gotodoc/internal/config/loader"
)

// FileNames are the config file names searched in the config directory,
// in order.
var FileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Options configures Load.
type Options struct {
	// Path is an explicit config file. It must exist.
	Path string

	// Dir is searched for FileNames when Path is empty. Defaults to
	// UserConfigDir.
	Dir string

	// EnvPrefix defaults to GOTODOC_.
	EnvPrefix string

	// Overrides is the command-line layer, keyed by dotted path.
	Overrides map[string]any

	// FS defaults to the OS file system.
	FS loader.FileSystem
}

// Result is a loaded configuration.
type Result struct {
	Config Config

	// Path is the config file that was read, or "" if none was found.
	Path string

	// Layers are the sources that were merged.
	Layers []Layer

	// Warnings holds values that were rejected and replaced by defaults.
	Warnings error
}

// UserConfigDir returns $XDG_CONFIG_HOME/gotodoc, falling back to
// ~/.config/gotodoc.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gotodoc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gotodoc")
}

// Load reads every layer and decodes the merged result. It fails only
// when a file exists but cannot be read or parsed, or an explicit Path
// is missing.
func Load(opts Options) (*Result, error) {
	if opts.FS == nil {
		opts.FS = loader.DefaultFS()
	}

	res := &Result{}
	res.Layers = append(res.Layers, Layer{Source: SourceDefaults, Data: defaultMap()})

	path, err := findFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		fl, err := loader.NewFileLoaderWithFS(opts.FS, path)
		if err != nil {
			return nil, err
		}
		data, err := fl.Load()
		if err != nil {
			return nil, err
		}
		res.Path = path
		res.Layers = append(res.Layers, Layer{Source: SourceFile, Path: path, Data: data})
	}

	env, err := loader.NewEnvLoader(opts.EnvPrefix).Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	if len(env) > 0 {
		res.Layers = append(res.Layers, Layer{Source: SourceEnv, Data: env})
	}

	if len(opts.Overrides) > 0 {
		flags := make(map[string]any)
		for k, v := range opts.Overrides {
			loader.SetByPath(flags, k, v)
		}
		res.Layers = append(res.Layers, Layer{Source: SourceFlags, Data: flags})
	}

	res.Config, res.Warnings = Decode(Merge(res.Layers...))
	return res, nil
}

// Candidates returns the files Load would consider, in order. Watchers
// use it to pick up a config file created after startup.
func Candidates(opts Options) []string {
	if opts.Path != "" {
		return []string{opts.Path}
	}
	dir := opts.Dir
	if dir == "" {
		dir = UserConfigDir()
	}
	out := make([]string, 0, len(FileNames))
	for _, name := range FileNames {
		out = append(out, filepath.Join(dir, name))
	}
	return out
}

func findFile(opts Options) (string, error) {
	if opts.Path != "" {
		if _, err := opts.FS.Stat(opts.Path); err != nil {
			return "", fmt.Errorf("config file %s: %w", opts.Path, err)
		}
		return opts.Path, nil
	}

	for _, p := range Candidates(opts) {
		_, err := opts.FS.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config file %s: %w", p, err)
		}
	}
	return "", nil
}
