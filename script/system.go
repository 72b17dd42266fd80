package script

import (
	"github.com/plus3/kiln/ecs"
)

// System runs the Script components of its member entities.
type System struct {
	ecs.SystemBase
	engine *Engine
}

// NewSystem creates a script system in the given category. The system owns
// the engine and closes it on Finalize.
func NewSystem(engine *Engine, category ecs.Category, priority int) *System {
	return &System{
		SystemBase: ecs.NewSystemBase(category, priority),
		engine:     engine,
	}
}

// Init registers the script components and binds the engine to the world.
// Entities spawned from Lua join this system.
func (s *System) Init(w *ecs.World) {
	ecs.Register[Script](w)
	ecs.Register[ScriptState](w)
	s.engine.bind(w, s.Name())
}

func (s *System) Finalize() {
	s.engine.Close()
}

func (s *System) Engine() *Engine {
	return s.engine
}

func (s *System) UpdateEntity(frame *ecs.UpdateFrame, entity *ecs.Entity) {
	for _, sc := range ecs.Components[Script](frame.World, entity.Id) {
		s.engine.CallEntity(sc.Function, frame, entity)
	}
}
