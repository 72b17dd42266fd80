package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/editor"
)

type Position struct {
	X, Y float32
}

type Stats struct {
	Level  int
	Armor  uint8
	Label  string
	Alive  bool
	Offset Position
	Parent *Position
}

type moveSystem struct{ ecs.SystemBase }
type steerSystem struct{ ecs.SystemBase }
type dragSystem struct{ ecs.SystemBase }
type drawSystem struct{ ecs.SystemBase }

func (*moveSystem) UpdateEntity(*ecs.UpdateFrame, *ecs.Entity)  {}
func (*steerSystem) UpdateEntity(*ecs.UpdateFrame, *ecs.Entity) {}
func (*dragSystem) UpdateEntity(*ecs.UpdateFrame, *ecs.Entity)  {}
func (*drawSystem) UpdateEntity(*ecs.UpdateFrame, *ecs.Entity)  {}

func newEditorWorld() *ecs.World {
	w := ecs.NewWorld(ecs.WorldConfig{EntityCapacity: 8}, nil)
	ecs.Register[Position](w)
	ecs.Register[Stats](w)
	w.Systems.Register(&moveSystem{ecs.NewSystemBase(ecs.CategoryMovement, 10)})
	w.Systems.Register(&steerSystem{ecs.NewSystemBase(ecs.CategoryMovement, 20)})
	w.Systems.Register(&dragSystem{ecs.NewSystemBase(ecs.CategoryMovement, 20)})
	w.Systems.Register(&drawSystem{ecs.NewSystemBase(ecs.CategoryRender, 0)})
	return w
}

func run(h *editor.History, c editor.Command) {
	h.Push(c)
	h.Flush()
}

func TestChangeSystemPriority(t *testing.T) {
	w := newEditorWorld()
	h := editor.NewHistory(0)
	move := w.Systems.Get("moveSystem")

	run(h, &editor.ChangeSystemPriority{System: move, Priority: 30})
	assert.Equal(t, 30, move.Base().Priority())
	assert.Equal(t, []string{"steerSystem", "dragSystem", "moveSystem"}, runOrder(w, ecs.CategoryMovement))

	h.Undo()
	assert.Equal(t, 10, move.Base().Priority())
	assert.Equal(t, []string{"moveSystem", "steerSystem", "dragSystem"}, runOrder(w, ecs.CategoryMovement))
}

func TestMoveSystem(t *testing.T) {
	t.Run("swaps distinct priorities", func(t *testing.T) {
		w := newEditorWorld()
		h := editor.NewHistory(0)

		run(h, &editor.MoveSystem{Registry: w.Systems, System: w.Systems.Get("steerSystem"), Offset: -1})
		assert.Equal(t, []string{"steerSystem", "moveSystem", "dragSystem"}, runOrder(w, ecs.CategoryMovement))
		assert.Equal(t, 10, w.Systems.Get("steerSystem").Base().Priority())
		assert.Equal(t, 20, w.Systems.Get("moveSystem").Base().Priority())

		h.Undo()
		assert.Equal(t, []string{"moveSystem", "steerSystem", "dragSystem"}, runOrder(w, ecs.CategoryMovement))
	})

	t.Run("breaks ties", func(t *testing.T) {
		w := newEditorWorld()
		h := editor.NewHistory(0)

		run(h, &editor.MoveSystem{Registry: w.Systems, System: w.Systems.Get("dragSystem"), Offset: -1})
		assert.Equal(t, []string{"moveSystem", "dragSystem", "steerSystem"}, runOrder(w, ecs.CategoryMovement))
		assert.Equal(t, 19, w.Systems.Get("dragSystem").Base().Priority())

		h.Undo()
		assert.Equal(t, []string{"moveSystem", "steerSystem", "dragSystem"}, runOrder(w, ecs.CategoryMovement))
	})

	t.Run("edges are no-ops", func(t *testing.T) {
		w := newEditorWorld()
		h := editor.NewHistory(0)

		run(h, &editor.MoveSystem{Registry: w.Systems, System: w.Systems.Get("moveSystem"), Offset: -1})
		run(h, &editor.MoveSystem{Registry: w.Systems, System: w.Systems.Get("dragSystem"), Offset: 1})
		assert.Equal(t, []string{"moveSystem", "steerSystem", "dragSystem"}, runOrder(w, ecs.CategoryMovement))
		h.Undo()
		h.Undo()
		assert.Equal(t, 10, w.Systems.Get("moveSystem").Base().Priority())
	})
}

func TestActivityCommands(t *testing.T) {
	w := newEditorWorld()
	h := editor.NewHistory(0)
	draw := w.Systems.Get("drawSystem")

	run(h, &editor.ChangeSystemActivity{System: draw, Active: false})
	assert.False(t, draw.Base().Active())
	run(h, &editor.ChangeCategoryActivity{Registry: w.Systems, Category: ecs.CategoryMovement, Active: false})
	assert.False(t, w.Systems.CategoryActive(ecs.CategoryMovement))

	h.Undo()
	assert.True(t, w.Systems.CategoryActive(ecs.CategoryMovement))
	h.Undo()
	assert.True(t, draw.Base().Active())
}

func TestJoinAndLeaveSystems(t *testing.T) {
	w := newEditorWorld()
	h := editor.NewHistory(0)
	a := w.Spawn("Enemy")
	b := w.Spawn("Ally")
	w.JoinSystem(a, "drawSystem")

	join := &editor.JoinSystems{World: w, Entities: []ecs.EntityId{a, b}, Systems: []string{"drawSystem", "moveSystem"}}
	run(h, join)
	assert.ElementsMatch(t, []string{"moveSystem", "drawSystem"}, w.Systems.SystemsOf(a))
	assert.ElementsMatch(t, []string{"moveSystem", "drawSystem"}, w.Systems.SystemsOf(b))

	h.Undo()
	assert.Equal(t, []string{"drawSystem"}, w.Systems.SystemsOf(a), "pre-existing membership survives undo")
	assert.Empty(t, w.Systems.SystemsOf(b))

	run(h, &editor.LeaveSystem{World: w, Entity: a, System: "drawSystem"})
	assert.Empty(t, w.Systems.SystemsOf(a))
	h.Undo()
	assert.Equal(t, []string{"drawSystem"}, w.Systems.SystemsOf(a))
}

func TestComponentCommands(t *testing.T) {
	w := newEditorWorld()
	h := editor.NewHistory(0)
	a := w.Spawn("Enemy", Position{X: 1})
	b := w.Spawn("Enemy")

	run(h, &editor.AddComponent{World: w, Entities: []ecs.EntityId{a, b}, TypeName: "editor_test.Position"})
	assert.Equal(t, []Position{{X: 1}, {}}, ecs.Components[Position](w, a))
	assert.Equal(t, []Position{{}}, ecs.Components[Position](w, b))

	h.Undo()
	assert.Equal(t, []Position{{X: 1}}, ecs.Components[Position](w, a))
	assert.Empty(t, ecs.Components[Position](w, b))

	run(h, &editor.AddComponent{World: w, Entities: []ecs.EntityId{a}, TypeName: "editor_test.Missing"})
	assert.Equal(t, 1, ecs.GetArray[Position](w.Components).Len(a))

	ecs.Attach(w, a, Position{X: 2})
	run(h, &editor.RemoveComponent{World: w, Entity: a, TypeName: "editor_test.Position", Index: 0})
	assert.Equal(t, []Position{{X: 2}}, ecs.Components[Position](w, a))
	h.Undo()
	assert.Equal(t, []Position{{X: 2}, {X: 1}}, ecs.Components[Position](w, a), "undo appends the removed value")
}

func TestEntityCommands(t *testing.T) {
	w := newEditorWorld()
	h := editor.NewHistory(0)

	create := &editor.CreateEntity{World: w, DataType: "Camera", Unique: true}
	run(h, create)
	require.True(t, create.Created.Valid())
	id, ok := w.Entities.Unique("Camera")
	require.True(t, ok)
	assert.Equal(t, create.Created, id)

	again := &editor.CreateEntity{World: w, DataType: "Camera", Unique: true}
	run(h, again)
	assert.False(t, again.Created.Valid())

	h.Undo()
	h.Undo()
	assert.True(t, w.Get(id).IsPendingDestroy())
	w.Entities.Reclaim()
	assert.False(t, w.Entities.IsAlive(id))

	x := w.Spawn("Rock")
	run(h, &editor.DestroyEntities{World: w, Entities: []ecs.EntityId{x}})
	assert.True(t, w.Get(x).IsPendingDestroy())
}

func TestSetField(t *testing.T) {
	w := newEditorWorld()
	h := editor.NewHistory(0)
	id := w.Spawn("Hero", Stats{Level: 1, Label: "hero", Parent: &Position{X: 5}})

	set := func(path []int, value any) {
		run(h, &editor.SetField{World: w, Entity: id, TypeName: "editor_test.Stats", Index: 0, Path: path, Value: value})
	}
	stats := func() *Stats { return ecs.Component[Stats](w, id, 0) }

	set([]int{0}, int64(7))
	set([]int{1}, uint64(3))
	set([]int{2}, "villain")
	set([]int{3}, true)
	set([]int{4, 1}, float64(2.5))
	set([]int{5, 0}, float64(9))

	assert.Equal(t, 7, stats().Level)
	assert.Equal(t, uint8(3), stats().Armor)
	assert.Equal(t, "villain", stats().Label)
	assert.True(t, stats().Alive)
	assert.Equal(t, float32(2.5), stats().Offset.Y)
	assert.Equal(t, float32(9), stats().Parent.X)

	h.Undo()
	assert.Equal(t, float32(5), stats().Parent.X)
	h.Undo()
	assert.Equal(t, float32(0), stats().Offset.Y)

	set([]int{2}, 42)
	assert.Equal(t, "villain", stats().Label, "mismatched kinds are rejected")
	set([]int{99}, 1)
	h.Undo()
	assert.Equal(t, "villain", stats().Label)
}

func TestReusedIds(t *testing.T) {
	recycle := func(w *ecs.World, id ecs.EntityId) ecs.EntityId {
		w.Destroy(id)
		w.Entities.Reclaim()
		reused := w.Spawn("Hero", Stats{Level: 99}, Position{X: 3})
		require.Equal(t, id, reused)
		return reused
	}

	t.Run("set field", func(t *testing.T) {
		w := newEditorWorld()
		h := editor.NewHistory(0)
		id := w.Spawn("Hero", Stats{Level: 1})
		run(h, &editor.SetField{World: w, Entity: id, TypeName: "editor_test.Stats", Index: 0, Path: []int{0}, Value: int64(5)})

		recycle(w, id)
		h.Undo()
		assert.Equal(t, 99, ecs.Component[Stats](w, id, 0).Level)
		h.Redo()
		assert.Equal(t, 99, ecs.Component[Stats](w, id, 0).Level)
	})

	t.Run("create entity", func(t *testing.T) {
		w := newEditorWorld()
		h := editor.NewHistory(0)
		create := &editor.CreateEntity{World: w, DataType: "Hero"}
		run(h, create)

		id := recycle(w, create.Created)
		h.Undo()
		assert.False(t, w.Get(id).IsPendingDestroy())
	})

	t.Run("membership and components", func(t *testing.T) {
		w := newEditorWorld()
		h := editor.NewHistory(0)
		id := w.Spawn("Hero", Position{X: 1})
		w.JoinSystem(id, "drawSystem")
		run(h, &editor.JoinSystems{World: w, Entities: []ecs.EntityId{id}, Systems: []string{"moveSystem"}})
		run(h, &editor.LeaveSystem{World: w, Entity: id, System: "drawSystem"})
		run(h, &editor.AddComponent{World: w, Entities: []ecs.EntityId{id}, TypeName: "editor_test.Position"})
		run(h, &editor.RemoveComponent{World: w, Entity: id, TypeName: "editor_test.Position", Index: 0})

		recycle(w, id)
		w.JoinSystem(id, "moveSystem")
		for h.Undo() {
		}
		assert.Equal(t, []string{"moveSystem"}, w.Systems.SystemsOf(id))
		assert.Equal(t, []Position{{X: 3}}, ecs.Components[Position](w, id))

		for h.Redo() {
		}
		assert.Equal(t, []string{"moveSystem"}, w.Systems.SystemsOf(id))
		assert.Equal(t, []Position{{X: 3}}, ecs.Components[Position](w, id))
	})

	t.Run("destroy on redo", func(t *testing.T) {
		w := newEditorWorld()
		h := editor.NewHistory(0)
		id := w.Spawn("Rock")
		run(h, &editor.DestroyEntities{World: w, Entities: []ecs.EntityId{id}})
		h.Undo()

		w.Entities.Reclaim()
		w.Spawn("Hero")
		h.Redo()
		assert.False(t, w.Get(id).IsPendingDestroy())
	})
}

func runOrder(w *ecs.World, c ecs.Category) []string {
	var names []string
	for _, sys := range w.Systems.PriorityOrder(c) {
		names = append(names, sys.Base().Name())
	}
	return names
}
