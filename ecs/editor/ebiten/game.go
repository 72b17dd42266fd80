package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/editor"
)

// Game implements ebiten.Game. Each Update runs one scheduler frame inside
// an ImGui frame; Draw shows the scene view with ImGui on top.
type Game struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Backend   *ImguiBackend
	View      *SceneView

	// EditKey toggles the scheduler's edit mode.
	EditKey ebiten.Key
}

func NewGame(world *ecs.World, scheduler *ecs.Scheduler, backend *ImguiBackend, view *SceneView) *Game {
	scheduler.SetSceneView(view)
	return &Game{
		World:     world,
		Scheduler: scheduler,
		Backend:   backend,
		View:      view,
		EditKey:   ebiten.KeyF1,
	}
}

func (g *Game) Update() error {
	if !editor.InputState(g.World).WantCaptureKeyboard {
		if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(g.EditKey) {
			g.Scheduler.SetEditMode(!g.Scheduler.EditMode())
		}
	}

	// Begin ImGui frame before executing systems
	g.Backend.BeginFrame()

	// Execute all ECS systems (including ImguiSystem)
	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))

	// End ImGui frame after systems complete
	g.Backend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.View.Draw(screen)
	g.Backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	g.View.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
