package main

import (
	"slices"
	"strconv"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/editor"
	"github.com/plus3/kiln/scene"
)

// sceneOptions leaves the editor's own entities and callbacks out of saved
// scenes.
var sceneOptions = scene.Options{
	SkipDataTypes:  []string{"Editor", editor.InputStateType, "SandboxControls"},
	SkipComponents: []string{"editor.ImguiItem"},
}

// Controls is the sandbox window: entity counts and scene file actions.
type Controls struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	path      string
	status    string
	log       *zap.Logger
}

func NewControls(world *ecs.World, scheduler *ecs.Scheduler, path string) *Controls {
	return &Controls{
		world:     world,
		scheduler: scheduler,
		path:      path,
		log:       world.Log(),
	}
}

// Save writes the scene file.
func (c *Controls) Save() error {
	if err := scene.WriteFile(c.path, c.world, sceneOptions); err != nil {
		return err
	}
	c.log.Info("scene saved", zap.String("path", c.path))
	return nil
}

// Reload destroys every saved entity and reads the scene file again once
// the current frame ends.
func (c *Controls) Reload() {
	for e := range c.world.Entities.All() {
		if !isEditorEntity(e) {
			c.scheduler.Commands().Destroy(e.Id)
		}
	}
	c.scheduler.Commands().Defer(func() {
		if _, err := scene.ReadFile(c.path, c.world); err != nil {
			c.status = err.Error()
			c.log.Error("scene reload failed", zap.Error(err))
			return
		}
		c.status = "reloaded " + c.path
	})
}

func isEditorEntity(e *ecs.Entity) bool {
	return slices.Contains(sceneOptions.SkipDataTypes, e.DataType)
}

func (c *Controls) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 460), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 150), imgui.CondOnce)
	if !imgui.BeginV("Sandbox", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	mode := "play"
	if c.scheduler.EditMode() {
		mode = "edit"
	}
	imgui.Text("Mode: " + mode + " (F1 toggles)")
	imgui.Text("Entities: " + strconv.Itoa(c.world.Entities.Count()) + " (" + strconv.Itoa(c.world.Entities.PendingCount()) + " pending)")
	imgui.Text("Scene: " + c.path)
	imgui.Separator()

	if imgui.Button("Save Scene") {
		if err := c.Save(); err != nil {
			c.status = err.Error()
			c.log.Error("scene save failed", zap.Error(err))
		} else {
			c.status = "saved " + c.path
		}
	}
	imgui.SameLine()
	if imgui.Button("Reload Scene") {
		c.Reload()
	}
	if c.status != "" {
		imgui.Text(c.status)
	}
	imgui.End()
}
