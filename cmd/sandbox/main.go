// Command sandbox runs a small particle scene with the editor attached.
//
// Emitters spawn particles that move, bounce off the window edges and fade
// out. Lua scripts from the configured directory drive scripted entities.
// F1 toggles edit mode; Q or Escape quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/kiln/config"
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/editor"
	editor_ebiten "github.com/plus3/kiln/ecs/editor/ebiten"
	"github.com/plus3/kiln/scene"
	"github.com/plus3/kiln/script"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("sandbox", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	backend := editor_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(time.Second / cfg.Engine.TickRate))

	world := ecs.NewWorld(ecs.WorldConfig{EntityCapacity: cfg.Engine.EntityCapacity}, log)
	ecs.Register[Position](world)
	ecs.Register[Velocity](world)
	ecs.Register[Sprite](world)
	ecs.Register[Lifetime](world)
	ecs.Register[Emitter](world)

	scheduler := ecs.NewScheduler(world)
	view := editor_ebiten.NewSceneView(cfg.Window.Width, cfg.Window.Height, color.RGBA{24, 24, 32, 255})

	engine := script.NewEngine(log)
	if err := engine.LoadDir(cfg.Scripts.Dir); err != nil {
		return err
	}

	world.Systems.Register(script.NewSystem(engine, ecs.CategoryStateTransition, 0))
	world.Systems.Register(&EmitterSystem{ecs.NewSystemBase(ecs.CategoryStateTransition, 10)})
	world.Systems.Register(&MovementSystem{ecs.NewSystemBase(ecs.CategoryMovement, 0)})
	world.Systems.Register(&BounceSystem{ecs.NewSystemBase(ecs.CategoryCollision, 0), view})
	world.Systems.Register(&LifetimeSystem{ecs.NewSystemBase(ecs.CategoryEffect, 0)})
	world.Systems.Register(&RenderSystem{ecs.NewSystemBase(ecs.CategoryRender, 0), view})

	for _, name := range cfg.Engine.InactiveCategories {
		c, ok := ecs.ParseCategory(name)
		if !ok {
			log.Warn("unknown category in config", zap.String("category", name))
			continue
		}
		world.Systems.SetCategoryActive(c, false)
	}

	editor.NewEditor(world, scheduler).Install()
	scheduler.SetEditMode(cfg.Engine.EditMode)

	controls := NewControls(world, scheduler, cfg.Scene.Path)
	world.SpawnUnique("SandboxControls", editor.ImguiItem{Render: controls.Render})

	if _, err := scene.ReadFile(cfg.Scene.Path, world); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		log.Info("no scene file, using the default scene", zap.String("path", cfg.Scene.Path))
		populate(world, cfg.Window.Width, cfg.Window.Height)
	}

	game := editor_ebiten.NewGame(world, scheduler, backend, view)
	if err := ebiten.RunGame(game); err != nil {
		return err
	}

	if cfg.Scene.Autosave {
		return controls.Save()
	}
	return nil
}

// populate builds the default scene: one emitter per quadrant and a
// scripted wanderer.
func populate(w *ecs.World, width, height int) {
	fw, fh := float32(width), float32(height)
	for _, p := range []Position{{fw / 4, fh / 4}, {3 * fw / 4, fh / 4}, {fw / 4, 3 * fh / 4}, {3 * fw / 4, 3 * fh / 4}} {
		id := w.Spawn("Emitter", p, Emitter{Interval: 0.2, Speed: 80, Life: 4})
		w.JoinSystem(id, "EmitterSystem")
	}

	id := w.Spawn("Wanderer",
		Position{fw / 2, fh / 2},
		Velocity{X: 60, Y: 40},
		Sprite{Radius: 8, Color: [3]uint8{255, 255, 255}},
		script.Script{Function: "wander"},
	)
	for _, name := range []string{"System", "MovementSystem", "BounceSystem", "RenderSystem"} {
		w.JoinSystem(id, name)
	}
}
