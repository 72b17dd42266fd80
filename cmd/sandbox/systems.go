package main

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/kiln/ecs"
	editor_ebiten "github.com/plus3/kiln/ecs/editor/ebiten"
	"github.com/plus3/kiln/script"
)

// particleSystems are joined by every emitted particle.
var particleSystems = []string{"MovementSystem", "BounceSystem", "LifetimeSystem", "RenderSystem"}

// EmitterSystem spawns particles from each member's position.
type EmitterSystem struct{ ecs.SystemBase }

func (s *EmitterSystem) UpdateEntity(frame *ecs.UpdateFrame, e *ecs.Entity) {
	pos := ecs.Component[Position](frame.World, e.Id, 0)
	if pos == nil {
		return
	}
	for i := range ecs.Components[Emitter](frame.World, e.Id) {
		em := ecs.Component[Emitter](frame.World, e.Id, i)
		em.Elapsed += frame.DeltaTime
		for em.Interval > 0 && em.Elapsed >= em.Interval {
			em.Elapsed -= em.Interval
			angle := rand.Float64() * 2 * math.Pi
			frame.Commands.SpawnInto(particleSystems, "Particle",
				*pos,
				Velocity{X: em.Speed * float32(math.Cos(angle)), Y: em.Speed * float32(math.Sin(angle))},
				Sprite{Radius: 3, Color: pastelColors[rand.IntN(len(pastelColors))]},
				Lifetime{Remaining: em.Life},
			)
		}
	}
}

// MovementSystem integrates velocity. A "speed" script variable scales it.
type MovementSystem struct{ ecs.SystemBase }

func (s *MovementSystem) UpdateEntity(frame *ecs.UpdateFrame, e *ecs.Entity) {
	vel := ecs.Component[Velocity](frame.World, e.Id, 0)
	if vel == nil {
		return
	}
	scale := float32(frame.DeltaTime)
	if st := ecs.Component[script.ScriptState](frame.World, e.Id, 0); st != nil {
		if speed, ok := st.Vars["speed"]; ok {
			scale *= float32(speed)
		}
	}
	for i := range ecs.Components[Position](frame.World, e.Id) {
		p := ecs.Component[Position](frame.World, e.Id, i)
		p.X += vel.X * scale
		p.Y += vel.Y * scale
	}
}

// BounceSystem keeps members inside the scene view.
type BounceSystem struct {
	ecs.SystemBase
	View *editor_ebiten.SceneView
}

func (s *BounceSystem) UpdateEntity(frame *ecs.UpdateFrame, e *ecs.Entity) {
	pos := ecs.Component[Position](frame.World, e.Id, 0)
	vel := ecs.Component[Velocity](frame.World, e.Id, 0)
	if pos == nil || vel == nil {
		return
	}
	w, h := s.View.Size()
	bounce(&pos.X, &vel.X, float32(w))
	bounce(&pos.Y, &vel.Y, float32(h))
}

func bounce(p, v *float32, limit float32) {
	switch {
	case *p < 0:
		*p, *v = -*p, -*v
	case *p > limit:
		*p, *v = 2*limit-*p, -*v
	}
}

// LifetimeSystem destroys members whose lifetime ran out.
type LifetimeSystem struct{ ecs.SystemBase }

func (s *LifetimeSystem) UpdateEntity(frame *ecs.UpdateFrame, e *ecs.Entity) {
	life := ecs.Component[Lifetime](frame.World, e.Id, 0)
	if life == nil {
		return
	}
	life.Remaining -= frame.DeltaTime
	if life.Remaining <= 0 {
		frame.Commands.Destroy(e.Id)
	}
}

// RenderSystem draws every sprite of its members into the scene view.
type RenderSystem struct {
	ecs.SystemBase
	View *editor_ebiten.SceneView
}

func (s *RenderSystem) UpdateEntity(frame *ecs.UpdateFrame, e *ecs.Entity) {
	pos := ecs.Component[Position](frame.World, e.Id, 0)
	if pos == nil {
		return
	}
	for _, sp := range ecs.Components[Sprite](frame.World, e.Id) {
		vector.DrawFilledCircle(s.View.Target(), pos.X, pos.Y, sp.Radius, sp.RGBA(), true)
	}
}
