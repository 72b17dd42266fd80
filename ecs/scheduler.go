package ecs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SceneView brackets the Render category. PreDraw binds the output target,
// PostDraw closes it before PostRender systems composite the frame.
type SceneView interface {
	PreDraw()
	PostDraw()
}

// NopSceneView is a SceneView that does nothing.
type NopSceneView struct{}

func (NopSceneView) PreDraw()  {}
func (NopSceneView) PostDraw() {}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	Frames          int64
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// Scheduler runs the systems of a world one frame at a time.
type Scheduler struct {
	world    *World
	view     SceneView
	commands *Commands
	frame    int64
	started  bool

	editMode     bool
	editorUpdate func(frame *UpdateFrame)

	log *zap.Logger
}

// NewScheduler creates a scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:    world,
		view:     NopSceneView{},
		commands: newCommands(),
		log:      world.Log(),
	}
}

// SetSceneView sets the view bracketing the Render category. nil restores
// NopSceneView.
func (s *Scheduler) SetSceneView(view SceneView) {
	if view == nil {
		view = NopSceneView{}
	}
	s.view = view
}

// SetEditMode switches between running the gameplay categories and running
// the editor update in their place.
func (s *Scheduler) SetEditMode(edit bool) {
	if s.editMode != edit {
		s.log.Info("scheduler mode changed", zap.Bool("edit", edit))
	}
	s.editMode = edit
}

// EditMode reports whether the editor update replaces the gameplay categories.
func (s *Scheduler) EditMode() bool {
	return s.editMode
}

// SetEditorUpdate sets the function run in edit mode in place of the
// Input through Collision categories.
func (s *Scheduler) SetEditorUpdate(fn func(frame *UpdateFrame)) {
	s.editorUpdate = fn
}

// Commands returns the buffer flushed at the end of every frame.
func (s *Scheduler) Commands() *Commands {
	return s.commands
}

// Frame returns the number of frames run so far.
func (s *Scheduler) Frame() int64 {
	return s.frame
}

// Start runs the Initialize category. It runs once; later calls do nothing.
// Once calls Start itself if it has not run yet.
func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.started = true

	frame := newUpdateFrame(0, s.frame, s.world, s.commands)
	frame.EditMode = s.editMode
	s.runCategory(frame, CategoryInitialize)
	s.commands.Flush(s.world)
}

// Once runs one frame: reclaim destroyed entities, the gameplay categories
// (or the editor update in edit mode), Effect, Render bracketed by the scene
// view, PostRender, then flush the frame's commands.
func (s *Scheduler) Once(dt float64) {
	s.Start()

	frame := newUpdateFrame(dt, s.frame, s.world, s.commands)
	frame.EditMode = s.editMode

	s.world.Entities.Reclaim()

	if s.editMode {
		if s.editorUpdate != nil {
			s.editorUpdate(frame)
		}
	} else {
		for c := CategoryInput; c <= CategoryCollision; c++ {
			s.runCategory(frame, c)
		}
	}
	s.runCategory(frame, CategoryEffect)

	s.view.PreDraw()
	s.runCategory(frame, CategoryRender)
	s.view.PostDraw()

	s.runCategory(frame, CategoryPostRender)

	s.commands.Flush(s.world)
	s.frame++
}

// runCategory runs the active systems of c in the run order captured when
// the category starts.
func (s *Scheduler) runCategory(frame *UpdateFrame, c Category) {
	reg := s.world.Systems
	if !reg.CategoryActive(c) {
		return
	}
	for _, sys := range reg.PriorityOrder(c) {
		b := sys.Base()
		if !b.Active() {
			continue
		}
		start := time.Now()
		runSystem(frame, sys)
		b.stats.record(time.Since(start))
	}
}

// Run executes frames at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns statistics about system execution, in category and
// priority order.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		Frames:      s.frame,
		SystemCount: s.world.Systems.Len(),
		Systems:     make([]SystemStats, 0, s.world.Systems.Len()),
	}
	for sys := range s.world.Systems.All() {
		st := sys.Base().Stats()
		stats.Systems = append(stats.Systems, st)
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
