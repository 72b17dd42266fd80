package ecs_test

import "github.com/plus3/kiln/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Transform struct {
	X, Y, Rotation float32
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

// Owned records the entity it was attached to.
type Owned struct {
	Owner ecs.EntityId
	Kind  string
}

func (o *Owned) InitComponent(owner *ecs.Entity) {
	o.Owner = owner.Id
	o.Kind = owner.DataType
}

func newTestWorld(capacity int) *ecs.World {
	w := ecs.NewWorld(ecs.WorldConfig{EntityCapacity: capacity}, nil)
	ecs.Register[Position](w)
	ecs.Register[Velocity](w)
	ecs.Register[Name](w)
	ecs.Register[Health](w)
	ecs.Register[Transform](w)
	ecs.Register[Score](w)
	ecs.Register[Tag](w)
	ecs.Register[Owned](w)
	return w
}

// recordingSystem appends its name to a shared log for every member it
// updates, or once per frame when it has no members.
type recordingSystem struct {
	ecs.SystemBase
	label string
	log   *[]string
}

func (s *recordingSystem) Execute(frame *ecs.UpdateFrame) {
	*s.log = append(*s.log, s.label)
}
