// Package editor provides the Dear ImGui editor for a World: entity
// hierarchy, entity inspector, system inspector and performance stats.
// ImGui rendering and input state live in the world as components and a
// PostRender system; every edit is an undoable Command.
package editor

import (
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kiln/ecs"
	"go.uber.org/zap"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state. It is owned by
// the unique entity of data type InputStateType.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// InputStateType is the data type of the entity owning ImguiInputState.
const InputStateType = "ImguiInput"

// ImguiSystem defers the render function of every ImguiItem to the end of
// the frame, after PostRender, and refreshes ImguiInputState.
type ImguiSystem struct {
	ecs.SystemBase
}

func NewImguiSystem() *ImguiSystem {
	return &ImguiSystem{SystemBase: ecs.NewSystemBase(ecs.CategoryPostRender, 1000)}
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if id, ok := frame.World.Entities.Unique(InputStateType); ok {
		if state := ecs.Component[ImguiInputState](frame.World, id, 0); state != nil {
			state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
			state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
		}
	}

	for _, items := range ecs.GetArray[ImguiItem](frame.World.Components).All() {
		for _, item := range items {
			if item.Render != nil {
				frame.Commands.Defer(item.Render)
			}
		}
	}
}

// InputState returns the current ImGui capture state, or the zero value
// before Install.
func InputState(w *ecs.World) ImguiInputState {
	if id, ok := w.Entities.Unique(InputStateType); ok {
		if state := ecs.Component[ImguiInputState](w, id, 0); state != nil {
			return *state
		}
	}
	return ImguiInputState{}
}

// Editor owns the editor windows, the selection and the command history.
type Editor struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	history   *History
	selection []ecs.EntityId
	timer     *FrameTimer
	log       *zap.Logger

	hierarchy *Hierarchy
	inspector *EntityInspector
	systems   *SystemInspector
	perf      *PerformanceStats
}

func NewEditor(world *ecs.World, scheduler *ecs.Scheduler) *Editor {
	return &Editor{
		world:     world,
		scheduler: scheduler,
		history:   NewHistory(256),
		timer:     NewFrameTimer(),
		log:       world.Log().Named("editor"),
		hierarchy: NewHierarchy(100),
		inspector: NewEntityInspector(),
		systems:   NewSystemInspector(),
		perf:      NewPerformanceStats(240),
	}
}

// Install registers the editor components and ImguiSystem, spawns the
// input state and editor entities and hooks the editor update into the
// scheduler's edit mode.
func (e *Editor) Install() {
	ecs.Register[ImguiItem](e.world)
	ecs.Register[ImguiInputState](e.world)
	e.world.Systems.Register(NewImguiSystem())

	e.world.SpawnUnique(InputStateType, ImguiInputState{})
	e.world.SpawnUnique("Editor", ImguiItem{Render: e.Draw})

	e.scheduler.SetEditorUpdate(e.Update)
	e.log.Debug("editor installed")
}

// History returns the editor's command history.
func (e *Editor) History() *History {
	return e.history
}

// Push queues an editor command for the next flush.
func (e *Editor) Push(c Command) {
	e.history.Push(c)
}

// Update is the scheduler's edit-mode hook.
func (e *Editor) Update(frame *ecs.UpdateFrame) {
	e.apply()
}

// apply executes queued commands and drops dead entities from the selection.
func (e *Editor) apply() {
	if n := e.history.Flush(); n > 0 {
		e.log.Debug("editor commands applied", zap.Int("count", n))
	}
	e.selection = slices.DeleteFunc(e.selection, func(id ecs.EntityId) bool {
		return !e.world.Entities.IsAlive(id)
	})
}

// Draw renders every editor window. It runs deferred from ImguiSystem, so
// commands queued while drawing are applied on the next frame.
func (e *Editor) Draw() {
	if !e.scheduler.EditMode() {
		e.apply()
	}
	e.perf.Sample(e.timer.DeltaTime())

	e.hierarchy.Render(e)
	e.inspector.Render(e)
	e.systems.Render(e)
	e.perf.Render(e.world, e.scheduler)
}

// Selected returns the primary selection, or InvalidEntity.
func (e *Editor) Selected() ecs.EntityId {
	if len(e.selection) == 0 {
		return ecs.InvalidEntity
	}
	return e.selection[0]
}

// SelectionSlice returns the selected entities, primary first.
func (e *Editor) SelectionSlice() []ecs.EntityId {
	return slices.Clone(e.selection)
}

func (e *Editor) IsSelected(id ecs.EntityId) bool {
	return slices.Contains(e.selection, id)
}

// Select replaces the selection with id.
func (e *Editor) Select(id ecs.EntityId) {
	e.selection = append(e.selection[:0], id)
}

// ToggleSelection adds id to the selection, or removes it when present.
func (e *Editor) ToggleSelection(id ecs.EntityId) {
	if i := slices.Index(e.selection, id); i >= 0 {
		e.selection = slices.Delete(e.selection, i, i+1)
		return
	}
	e.selection = append(e.selection, id)
}

func (e *Editor) ClearSelection() {
	e.selection = e.selection[:0]
}

func matchesFilter(s, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(s), strings.ToLower(filter))
}
