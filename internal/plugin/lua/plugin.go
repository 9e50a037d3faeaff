package lua

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gotodoc/internal/dispatcher"
	"github.com/dshills/gotodoc/internal/dispatcher/execctx"
	"github.com/dshills/gotodoc/internal/dispatcher/handler"
	"github.com/dshills/gotodoc/internal/dispatcher/handlers/docs"
)

// ModuleName is the global table scripts register through.
const ModuleName = "gotodoc"

// Plugin is one loaded script and the handlers it registered.
type Plugin struct {
	// Path is the script file, or "<string>" for LoadString.
	Path string

	state    *State
	handlers map[string]handler.Handler
	aliases  map[string]string
	order    []string
}

// Load runs the script at path in a fresh State.
func Load(path string, opts ...StateOption) (*Plugin, error) {
	p := newPlugin(path, opts...)
	if err := p.state.DoFile(path); err != nil {
		p.state.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}

// LoadString runs code in a fresh State.
func LoadString(code string, opts ...StateOption) (*Plugin, error) {
	p := newPlugin("<string>", opts...)
	if err := p.state.DoString(code); err != nil {
		p.state.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return p, nil
}

// LoadAll loads every script; the first failure stops loading and
// closes the plugins already loaded.
func LoadAll(paths []string, opts ...StateOption) ([]*Plugin, error) {
	plugins := make([]*Plugin, 0, len(paths))
	for _, path := range paths {
		p, err := Load(path, opts...)
		if err != nil {
			for _, loaded := range plugins {
				loaded.Close()
			}
			return nil, err
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

func newPlugin(path string, opts ...StateOption) *Plugin {
	p := &Plugin{
		Path:     path,
		state:    NewState(opts...),
		handlers: make(map[string]handler.Handler),
		aliases:  make(map[string]string),
	}
	p.installModule()
	return p
}

// Name returns the script's base name.
func (p *Plugin) Name() string {
	return filepath.Base(p.Path)
}

// Keys returns the keys the script registered, in registration order.
func (p *Plugin) Keys() []string {
	return append([]string(nil), p.order...)
}

// Aliases returns the aliases the script declared, alias to target.
func (p *Plugin) Aliases() map[string]string {
	out := make(map[string]string, len(p.aliases))
	for k, v := range p.aliases {
		out[k] = v
	}
	return out
}

// Handler returns the handler registered for key, or nil.
func (p *Plugin) Handler(key string) handler.Handler {
	return p.handlers[key]
}

// Apply registers the script's handlers, then its aliases, into reg.
// Script handlers replace existing ones for the same key.
func (p *Plugin) Apply(reg *dispatcher.Registry) error {
	for _, key := range p.order {
		if err := reg.Register(key, p.handlers[key]); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
	}

	aliases := make([]string, 0, len(p.aliases))
	for alias := range p.aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		if err := reg.Alias(alias, p.aliases[alias]); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
	}
	return nil
}

// Close releases the script's interpreter. Handlers from a closed
// plugin return Unsupported.
func (p *Plugin) Close() error {
	return p.state.Close()
}

func (p *Plugin) installModule() {
	L := p.state.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"register": p.luaRegister,
		"alias":    p.luaAlias,
		"escape":   luaEscape,
	})
	L.SetField(mod, "placeholder", lua.LString(docs.Placeholder))
	L.SetGlobal(ModuleName, mod)
}

// gotodoc.register(key, template | function)
func (p *Plugin) luaRegister(L *lua.LState) int {
	key := L.CheckString(1)
	if key == "" {
		L.ArgError(1, "key must not be empty")
	}

	var h handler.Handler
	switch v := L.Get(2).(type) {
	case lua.LString:
		t := docs.Template(v)
		if err := t.Validate(); err != nil {
			L.ArgError(2, err.Error())
		}
		h = docs.URLHandler(t)
	case *lua.LFunction:
		h = &funcHandler{state: p.state, fn: v, desc: fmt.Sprintf("lua %s:%s", p.Name(), key)}
	default:
		L.ArgError(2, fmt.Sprintf("%v: expected string or function, got %s", ErrBadRegistration, v.Type()))
	}

	if _, exists := p.handlers[key]; !exists {
		p.order = append(p.order, key)
	}
	p.handlers[key] = h
	return 0
}

// gotodoc.alias(alias, target)
func (p *Plugin) luaAlias(L *lua.LState) int {
	alias := L.CheckString(1)
	target := L.CheckString(2)
	if alias == "" || target == "" {
		L.ArgError(1, "alias and target must not be empty")
	}
	p.aliases[alias] = target
	return 0
}

// gotodoc.escape(s) query-escapes s.
func luaEscape(L *lua.LState) int {
	L.Push(lua.LString(url.QueryEscape(L.CheckString(1))))
	return 1
}

// funcHandler calls a Lua function for each lookup.
type funcHandler struct {
	state *State
	fn    *lua.LFunction
	desc  string
}

func (h *funcHandler) Describe() string {
	return h.desc
}

func (h *funcHandler) Handle(req *execctx.Request) handler.DocAction {
	ret, err := h.state.Call(h.fn,
		lua.LString(req.Token), lua.LString(req.Label), lua.LString(req.Key))
	if err != nil {
		return handler.Unsupported(req.Key).WithMessage(fmt.Sprintf("%s: %v", h.desc, err))
	}

	action, err := toAction(ret, req.Token)
	if err != nil {
		return handler.Unsupported(req.Key).WithMessage(fmt.Sprintf("%s: %v", h.desc, err))
	}
	if action.IsUnsupported() {
		return handler.Unsupported(req.Key)
	}
	return action
}

// toAction converts a handler result:
//
//	nil / false           -> Unsupported
//	"url"                 -> OpenURL, {token} expanded
//	{ url = "..." }       -> OpenURL
//	{ command = {...} }   -> RunCommand
func toAction(v lua.LValue, token string) (handler.DocAction, error) {
	switch v := v.(type) {
	case *lua.LNilType:
		return handler.Unsupported(""), nil
	case lua.LBool:
		if !bool(v) {
			return handler.Unsupported(""), nil
		}
	case lua.LString:
		return handler.OpenURL(docs.Template(v).Expand(token)), nil
	case *lua.LTable:
		if u, ok := v.RawGetString("url").(lua.LString); ok {
			return handler.OpenURL(docs.Template(u).Expand(token)), nil
		}
		if cmd, ok := v.RawGetString("command").(*lua.LTable); ok {
			argv, err := tableStrings(cmd)
			if err != nil {
				return handler.DocAction{}, err
			}
			if len(argv) == 0 {
				return handler.DocAction{}, fmt.Errorf("%w: empty command", ErrBadResult)
			}
			return handler.RunCommand(argv...), nil
		}
		return handler.DocAction{}, fmt.Errorf("%w: table needs url or command", ErrBadResult)
	}
	return handler.DocAction{}, fmt.Errorf("%w: %s", ErrBadResult, v.Type())
}

func tableStrings(t *lua.LTable) ([]string, error) {
	n := t.Len()
	argv := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		switch item := t.RawGetInt(i).(type) {
		case lua.LString:
			argv = append(argv, string(item))
		case lua.LNumber:
			argv = append(argv, item.String())
		default:
			return nil, fmt.Errorf("%w: command[%d] is %s", ErrBadResult, i, item.Type())
		}
	}
	return argv, nil
}

// Describe summarizes the plugin for listings.
func (p *Plugin) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:", p.Name())
	for _, key := range p.order {
		fmt.Fprintf(&b, " %s", key)
	}
	return b.String()
}
