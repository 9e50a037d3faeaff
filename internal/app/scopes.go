package app

import (
	"slices"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/gotodoc/internal/plugin/lua"
)

// Handler sources, as listed by Scopes.
const (
	SourceBuiltin = "builtin"
	SourceConfig  = "config"
	SourceAlias   = "alias"
	SourceScript  = "script"
)

// ScopeInfo describes one registered dispatch key.
type ScopeInfo struct {
	Key         string
	Description string
	Source      string

	// Origin names the script or alias target that supplied the key.
	Origin string
}

// Scopes lists every registered key with its handler, sorted by key.
func (a *Application) Scopes() []ScopeInfo {
	a.mu.Lock()
	cfg := a.cfg
	plugins := append(append([]*lua.Plugin(nil), a.scripts...), a.extra...)
	a.mu.Unlock()

	d := a.Dispatcher()
	keys := d.Registry().List()
	infos := make([]ScopeInfo, 0, len(keys))
	for _, key := range keys {
		info := ScopeInfo{Key: key, Description: d.Describe(key), Source: SourceBuiltin}
		if _, ok := cfg.Handlers[key]; ok {
			info.Source = SourceConfig
		}
		if target, ok := cfg.Aliases[key]; ok {
			info.Source, info.Origin = SourceAlias, target
		}
		for _, p := range plugins {
			if slices.Contains(p.Keys(), key) {
				info.Source, info.Origin = SourceScript, p.Name()
			} else if target, ok := p.Aliases()[key]; ok {
				info.Source, info.Origin = SourceAlias, p.Name()+": "+target
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// ScopesJSON encodes infos as a JSON array of objects.
func ScopesJSON(infos []ScopeInfo) string {
	out := `{"scopes":[]}`
	for _, info := range infos {
		obj := `{}`
		obj, _ = sjson.Set(obj, "key", info.Key)
		obj, _ = sjson.Set(obj, "description", info.Description)
		obj, _ = sjson.Set(obj, "source", info.Source)
		if info.Origin != "" {
			obj, _ = sjson.Set(obj, "origin", info.Origin)
		}
		out, _ = sjson.SetRaw(out, "scopes.-1", obj)
	}
	return gjson.Get(out, "scopes").Raw
}
