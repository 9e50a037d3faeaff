package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
)

// IncludeKey is the top-level key listing files to merge beneath a file.
const IncludeKey = "@include"

// DefaultIncludeDepth bounds nested includes.
const DefaultIncludeDepth = 8

// ErrIncludeDepth is returned when includes nest deeper than allowed,
// which also catches include cycles.
var ErrIncludeDepth = errors.New("include depth exceeded")

// ErrUnknownFormat is returned for files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown config format")

// decodeFunc parses one document into a map.
type decodeFunc func(source string, data []byte) (map[string]any, error)

// FileLoader loads one configuration file.
type FileLoader struct {
	fs     FileSystem
	path   string
	decode decodeFunc
	depth  int
}

// NewFileLoader picks a decoder from the extension of path: .toml,
// .yaml or .yml.
func NewFileLoader(path string) (*FileLoader, error) {
	return NewFileLoaderWithFS(DefaultFS(), path)
}

// NewFileLoaderWithFS is NewFileLoader with a custom file system.
func NewFileLoaderWithFS(fsys FileSystem, path string) (*FileLoader, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}
	return &FileLoader{fs: fsys, path: path, decode: decode, depth: DefaultIncludeDepth}, nil
}

func decoderFor(path string) (decodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return decodeTOML, nil
	case ".yaml", ".yml":
		return decodeYAML, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Path returns the file the loader reads.
func (l *FileLoader) Path() string {
	return l.path
}

// Load reads the file and resolves includes. A missing file yields
// nil, nil.
func (l *FileLoader) Load() (map[string]any, error) {
	return l.loadWithIncludes(l.path, l.decode, l.depth)
}

// LoadFromReader parses r without include processing.
func (l *FileLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.decode("<reader>", data)
}

func (l *FileLoader) read(path string, decode decodeFunc) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return decode(path, data)
}

func (l *FileLoader) loadWithIncludes(path string, decode decodeFunc, depth int) (map[string]any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepth, path)
	}

	config, err := l.read(path, decode)
	if err != nil || config == nil {
		return config, err
	}

	includes, ok := config[IncludeKey]
	if !ok {
		return config, nil
	}
	delete(config, IncludeKey)

	list, err := includeList(includes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := make(map[string]any)
	for _, inc := range list {
		incPath := inc
		if !filepath.IsAbs(inc) {
			incPath = filepath.Join(filepath.Dir(path), inc)
		}

		incDecode, err := decoderFor(incPath)
		if err != nil {
			return nil, err
		}
		incConfig, err := l.loadWithIncludes(incPath, incDecode, depth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", incPath, err)
		}
		base = DeepMerge(base, incConfig)
	}

	return DeepMerge(base, config), nil
}

func includeList(v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s must be string or array of strings", IncludeKey)
			}
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%s must be string or array of strings, got %T", IncludeKey, v)
	}
}
