package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneView is an ecs.SceneView backed by an offscreen image. Render
// systems draw into Target between PreDraw and PostDraw; the game then
// blits it to the screen below the editor.
type SceneView struct {
	target     *ebiten.Image
	background color.Color
	drawing    bool
	frames     int64
}

func NewSceneView(width, height int, background color.Color) *SceneView {
	return &SceneView{
		target:     ebiten.NewImage(width, height),
		background: background,
	}
}

// PreDraw clears the target for the Render category.
func (v *SceneView) PreDraw() {
	v.target.Fill(v.background)
	v.drawing = true
}

// PostDraw closes the target. PostRender systems see the finished scene.
func (v *SceneView) PostDraw() {
	v.drawing = false
	v.frames++
}

// Target returns the image render systems draw into.
func (v *SceneView) Target() *ebiten.Image {
	return v.target
}

// Drawing reports whether the Render category is in progress.
func (v *SceneView) Drawing() bool {
	return v.drawing
}

// Frames returns how many scenes were completed.
func (v *SceneView) Frames() int64 {
	return v.frames
}

func (v *SceneView) Size() (int, int) {
	b := v.target.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the target when the size changes. It must not be called
// between PreDraw and PostDraw.
func (v *SceneView) Resize(width, height int) {
	if width <= 0 || height <= 0 || v.drawing {
		return
	}
	if w, h := v.Size(); w == width && h == height {
		return
	}
	v.target.Deallocate()
	v.target = ebiten.NewImage(width, height)
}

// Draw copies the last completed scene to screen, scaled to fit.
func (v *SceneView) Draw(screen *ebiten.Image) {
	w, h := v.Size()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(sw)/float64(w), float64(sh)/float64(h))
	screen.DrawImage(v.target, opts)
}
