package editor_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/editor"
)

func TestEditorInstall(t *testing.T) {
	w := newEditorWorld()
	s := ecs.NewScheduler(w)
	e := editor.NewEditor(w, s)
	e.Install()

	assert.NotNil(t, ecs.GetSystem[*editor.ImguiSystem](w.Systems))
	assert.Equal(t, ecs.CategoryPostRender, ecs.GetSystem[*editor.ImguiSystem](w.Systems).Category())

	_, ok := w.Entities.Unique(editor.InputStateType)
	assert.True(t, ok)
	assert.Equal(t, editor.ImguiInputState{}, editor.InputState(w))

	id, ok := w.Entities.Unique("Editor")
	require.True(t, ok)
	assert.Equal(t, 1, ecs.GetArray[editor.ImguiItem](w.Components).Len(id))
}

func TestEditorSelection(t *testing.T) {
	w := newEditorWorld()
	e := editor.NewEditor(w, ecs.NewScheduler(w))
	a := w.Spawn("Enemy")
	b := w.Spawn("Enemy")

	assert.Equal(t, ecs.InvalidEntity, e.Selected())

	e.Select(a)
	e.ToggleSelection(b)
	assert.Equal(t, a, e.Selected())
	assert.Equal(t, []ecs.EntityId{a, b}, e.SelectionSlice())
	assert.True(t, e.IsSelected(b))

	e.ToggleSelection(a)
	assert.Equal(t, b, e.Selected())

	e.Select(a)
	assert.Equal(t, []ecs.EntityId{a}, e.SelectionSlice())

	e.ClearSelection()
	assert.Empty(t, e.SelectionSlice())
}

func TestEditorUpdate(t *testing.T) {
	w := newEditorWorld()
	s := ecs.NewScheduler(w)
	e := editor.NewEditor(w, s)
	s.SetEditorUpdate(e.Update)
	s.SetEditMode(true)

	a := w.Spawn("Enemy")
	e.Select(a)
	e.Push(&editor.AddComponent{World: w, Entities: e.SelectionSlice(), TypeName: "editor_test.Position"})
	e.Push(&editor.DestroyEntities{World: w, Entities: e.SelectionSlice()})

	move := w.Systems.Get("moveSystem").(*moveSystem)
	w.JoinSystem(a, "moveSystem")

	s.Once(0.016)
	assert.Equal(t, 1, ecs.GetArray[Position](w.Components).Len(a), "queued commands applied by the edit-mode hook")
	assert.True(t, e.History().CanUndo())
	assert.Equal(t, int64(0), move.Stats().ExecutionCount, "gameplay categories do not run in edit mode")

	s.Once(0.016)
	assert.False(t, w.Entities.IsAlive(a))
	assert.Equal(t, ecs.InvalidEntity, e.Selected(), "dead entities leave the selection")
}

func TestPerformanceStats(t *testing.T) {
	ps := editor.NewPerformanceStats(3)
	assert.Zero(t, ps.AverageFrameTime())
	assert.Empty(t, ps.Samples())

	ps.Sample(0.010)
	ps.Sample(0.020)
	assert.InDelta(t, 15.0, ps.AverageFrameTime(), 0.001)
	assert.InDeltaSlice(t, []float32{10, 20}, ps.Samples(), 0.001)

	ps.Sample(0.030)
	ps.Sample(0.040)
	assert.InDeltaSlice(t, []float32{20, 30, 40}, ps.Samples(), 0.001)
	assert.InDelta(t, 30.0, ps.AverageFrameTime(), 0.001)
}

func TestReflectionCache(t *testing.T) {
	type inner struct{ A int }
	type sample struct {
		Name   string
		hidden int
		Ptr    *inner
		Nested inner
		List   []int
		Lookup map[string]int
	}

	rc := editor.NewReflectionCache()
	fields := rc.Fields(reflect.TypeFor[sample]())
	require.Len(t, fields, 5)

	assert.Equal(t, "Name", fields[0].Name)
	assert.Equal(t, 0, fields[0].Index)
	assert.Equal(t, "Ptr", fields[1].Name)
	assert.Equal(t, 2, fields[1].Index)
	assert.True(t, fields[1].IsPointer)
	assert.True(t, fields[1].IsStruct)
	assert.True(t, fields[2].IsStruct)
	assert.True(t, fields[3].IsSlice)
	assert.True(t, fields[4].IsMap)

	assert.Equal(t, fields, rc.Fields(reflect.TypeFor[sample]()))
	assert.Empty(t, rc.Fields(reflect.TypeFor[int]()))
}
