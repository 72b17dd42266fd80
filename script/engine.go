// Package script runs entity behaviour written in Lua. A single System
// calls, for every member entity, the Lua functions named by the entity's
// Script components. Scripts reach the world through the global "ecs" table.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/plus3/kiln/ecs"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Script names a global Lua function called for its owner every frame.
// An entity runs its scripts in component order.
type Script struct {
	Function string
}

// ScriptState holds the numeric variables scripts keep per entity.
type ScriptState struct {
	Vars map[string]float64
}

// Engine wraps a single gopher-lua VM.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger

	world *ecs.World
	frame *ecs.UpdateFrame

	// system joined by entities spawned from Lua
	spawnSystem string
	missing     map[string]bool
}

// NewEngine creates a Lua VM with the standard libraries and the ecs API.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{vm: lua.NewState(), log: log, missing: make(map[string]bool)}
	e.openAPI()
	return e
}

// LoadDir loads all .lua files in a directory. A missing directory is not
// an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source, typically function definitions.
func (e *Engine) LoadString(name, src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	e.log.Debug("loaded lua chunk", zap.String("name", name))
	return nil
}

// HasFunction reports whether a global Lua function is defined.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

func (e *Engine) Close() {
	e.vm.Close()
}

// bind sets the world scripts operate on.
func (e *Engine) bind(w *ecs.World, spawnSystem string) {
	e.world = w
	e.spawnSystem = spawnSystem
}

// CallEntity calls the global function fn with a table describing the
// entity and the frame: {id, type, unique_id, dt, frame, edit}. Errors are
// logged; a missing function is logged once.
func (e *Engine) CallEntity(fn string, frame *ecs.UpdateFrame, entity *ecs.Entity) bool {
	f := e.vm.GetGlobal(fn)
	if f == lua.LNil {
		if !e.missing[fn] {
			e.missing[fn] = true
			e.log.Error("lua function not found", zap.String("function", fn))
		}
		return false
	}

	t := e.vm.NewTable()
	t.RawSetString("id", lua.LNumber(entity.Id))
	t.RawSetString("type", lua.LString(entity.DataType))
	t.RawSetString("unique_id", lua.LString(entity.UniqueId()))
	t.RawSetString("dt", lua.LNumber(frame.DeltaTime))
	t.RawSetString("frame", lua.LNumber(frame.Frame))
	t.RawSetString("edit", lua.LBool(frame.EditMode))

	e.frame = frame
	defer func() { e.frame = nil }()

	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    0,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua script error",
			zap.String("function", fn),
			zap.String("entity", entity.UniqueId()),
			zap.Error(err))
		return false
	}
	return true
}

// openAPI installs the global "ecs" table:
//
//	ecs.get(id, key)         -> number or nil
//	ecs.set(id, key, value)
//	ecs.has(id, key)         -> bool
//	ecs.alive(id)            -> bool
//	ecs.destroy(id)
//	ecs.spawn(type, fn)      spawns an entity running fn, next frame
//	ecs.join(id, system)
//	ecs.log(message)
func (e *Engine) openAPI() {
	api := e.vm.NewTable()
	e.vm.SetField(api, "get", e.vm.NewFunction(e.luaGet))
	e.vm.SetField(api, "set", e.vm.NewFunction(e.luaSet))
	e.vm.SetField(api, "has", e.vm.NewFunction(e.luaHas))
	e.vm.SetField(api, "alive", e.vm.NewFunction(e.luaAlive))
	e.vm.SetField(api, "destroy", e.vm.NewFunction(e.luaDestroy))
	e.vm.SetField(api, "spawn", e.vm.NewFunction(e.luaSpawn))
	e.vm.SetField(api, "join", e.vm.NewFunction(e.luaJoin))
	e.vm.SetField(api, "log", e.vm.NewFunction(e.luaLog))
	e.vm.SetGlobal("ecs", api)
}

func (e *Engine) checkWorld(L *lua.LState) {
	if e.world == nil {
		L.RaiseError("ecs api used outside of a bound world")
	}
}

func (e *Engine) state(id ecs.EntityId) *ScriptState {
	return ecs.Component[ScriptState](e.world, id, 0)
}

func (e *Engine) luaGet(L *lua.LState) int {
	e.checkWorld(L)
	id := ecs.EntityId(L.CheckInt(1))
	key := L.CheckString(2)
	if v, ok := e.stateVar(id, key); ok {
		L.Push(lua.LNumber(v))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func (e *Engine) luaSet(L *lua.LState) int {
	e.checkWorld(L)
	id := ecs.EntityId(L.CheckInt(1))
	key := L.CheckString(2)
	value := float64(L.CheckNumber(3))
	if !e.world.Entities.IsAlive(id) {
		L.RaiseError("entity %d is not alive", id)
	}
	st := e.state(id)
	if st == nil {
		st = ecs.Attach(e.world, id, ScriptState{})
	}
	if st.Vars == nil {
		st.Vars = make(map[string]float64)
	}
	st.Vars[key] = value
	return 0
}

func (e *Engine) luaHas(L *lua.LState) int {
	e.checkWorld(L)
	id := ecs.EntityId(L.CheckInt(1))
	key := L.CheckString(2)
	_, ok := e.stateVar(id, key)
	L.Push(lua.LBool(ok))
	return 1
}

func (e *Engine) stateVar(id ecs.EntityId, key string) (float64, bool) {
	if st := e.state(id); st != nil {
		v, ok := st.Vars[key]
		return v, ok
	}
	return 0, false
}

func (e *Engine) luaAlive(L *lua.LState) int {
	e.checkWorld(L)
	id := ecs.EntityId(L.CheckInt(1))
	ent := e.world.Get(id)
	L.Push(lua.LBool(ent != nil && ent.IsAlive() && !ent.IsPendingDestroy()))
	return 1
}

func (e *Engine) luaDestroy(L *lua.LState) int {
	e.checkWorld(L)
	id := ecs.EntityId(L.CheckInt(1))
	if e.frame != nil {
		e.frame.Commands.Destroy(id)
	} else {
		e.world.Destroy(id)
	}
	return 0
}

func (e *Engine) luaSpawn(L *lua.LState) int {
	e.checkWorld(L)
	dataType := L.CheckString(1)
	fn := L.OptString(2, "")
	var components []any
	if fn != "" {
		components = append(components, Script{Function: fn})
	}
	if e.frame != nil {
		e.frame.Commands.SpawnInto([]string{e.spawnSystem}, dataType, components...)
		return 0
	}
	id := e.world.Spawn(dataType, components...)
	e.world.JoinSystem(id, e.spawnSystem)
	return 0
}

func (e *Engine) luaJoin(L *lua.LState) int {
	e.checkWorld(L)
	id := ecs.EntityId(L.CheckInt(1))
	system := L.CheckString(2)
	if e.frame != nil {
		e.frame.Commands.JoinSystem(id, system)
	} else {
		e.world.JoinSystem(id, system)
	}
	return 0
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("message", L.CheckString(1)))
	return 0
}
