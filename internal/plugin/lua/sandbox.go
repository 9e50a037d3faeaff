package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// removedGlobals can load code from disk or strings.
var removedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

// openSafeLibraries opens only the libraries handler scripts need.
// io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// installSandbox strips globals that could escape the sandbox.
func installSandbox(L *lua.LState) {
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}
