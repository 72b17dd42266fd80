package ecs

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// ComponentInitializer is implemented by components that need their owning
// entity when they are attached through the World.
type ComponentInitializer interface {
	InitComponent(owner *Entity)
}

// WorldConfig sizes a World.
type WorldConfig struct {
	// EntityCapacity is the initial number of entity slots.
	EntityCapacity int
}

// World bundles the entity table, the component store and the system
// registry. Everything that touches entities is handed a *World; there is
// no process-wide instance.
type World struct {
	Entities   *EntityTable
	Components *ComponentStore
	Systems    *SystemRegistry

	log *zap.Logger
}

// NewWorld creates an empty world. A nil logger discards all output.
func NewWorld(cfg WorldConfig, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.EntityCapacity < 1 {
		cfg.EntityCapacity = DefaultEntityCapacity
	}

	w := &World{log: log}
	w.Entities = NewEntityTable(cfg.EntityCapacity, log)
	w.Components = NewComponentStore(NewComponentRegistry(), w.Entities.Capacity())
	w.Systems = NewSystemRegistry(w, log)

	w.Entities.OnGrow(w.Components.Resize)
	w.Entities.OnReclaim(func(id EntityId) {
		w.Components.ClearEntity(id)
		w.Systems.RemoveEntityFromAll(id)
	})
	return w
}

// Log returns the world's logger.
func (w *World) Log() *zap.Logger {
	return w.log
}

// Registry returns the component registry of the world.
func (w *World) Registry() *ComponentRegistry {
	return w.Components.Registry()
}

// Get returns the entity slot for id, or nil.
func (w *World) Get(id EntityId) *Entity {
	return w.Entities.Get(id)
}

// Spawn registers an entity of dataType and attaches components in order.
// Every component type must have been registered; Spawn panics otherwise.
func (w *World) Spawn(dataType string, components ...any) EntityId {
	id := w.Entities.Register(dataType)
	w.attachAll(id, components)
	return id
}

// SpawnUnique is Spawn for an entity that is the only live one of its data
// type. When one already exists its id is returned with false and
// components are not attached.
func (w *World) SpawnUnique(dataType string, components ...any) (EntityId, bool) {
	id, created := w.Entities.RegisterUnique(dataType)
	if created {
		w.attachAll(id, components)
	}
	return id, created
}

func (w *World) attachAll(id EntityId, components []any) {
	for _, c := range components {
		if _, err := w.AddAny(id, c); err != nil {
			panic("ecs: spawn " + w.Entities.Get(id).DataType + ": " + err.Error())
		}
	}
}

// AddAny appends a component value, or the value a pointer refers to, to
// the entity and returns its index within the entity's sequence.
func (w *World) AddAny(id EntityId, component any) (int, error) {
	if component == nil {
		return -1, fmt.Errorf("add nil component: %w", ErrComponentType)
	}
	a := w.Components.ArrayOf(reflect.TypeOf(component))
	if a == nil {
		return -1, fmt.Errorf("component type %T is not registered", component)
	}
	if !w.Entities.IsAlive(id) {
		return -1, fmt.Errorf("entity %d is not alive", id)
	}
	index, err := a.AppendAny(id, component)
	if err != nil {
		return -1, err
	}
	w.initComponent(id, a.GetAny(id, index))
	return index, nil
}

// AddComponentByName appends the zero value of a registered component type
// and returns a pointer to it.
func (w *World) AddComponentByName(id EntityId, name string) (any, error) {
	if !w.Entities.IsAlive(id) {
		return nil, fmt.Errorf("entity %d is not alive", id)
	}
	c, err := w.Components.AddComponentByName(id, name)
	if err != nil {
		return nil, err
	}
	w.initComponent(id, c)
	return c, nil
}

func (w *World) initComponent(id EntityId, c any) {
	if init, ok := c.(ComponentInitializer); ok {
		init.InitComponent(w.Entities.Get(id))
	}
}

// Destroy queues the entity for reclamation at the start of the next frame.
func (w *World) Destroy(id EntityId) bool {
	return w.Entities.Destroy(id)
}

// JoinSystem makes a live entity a member of the named system.
func (w *World) JoinSystem(id EntityId, system string) bool {
	sys := w.Systems.Get(system)
	if sys == nil || !w.Entities.IsAlive(id) {
		return false
	}
	return sys.Base().AddEntity(id)
}

// Reset drops every entity, every component and every system membership.
// Registered component types and systems are kept.
func (w *World) Reset() {
	w.Entities.Reset()
	w.Components.Reset(w.Entities.Capacity())
	for sys := range w.Systems.All() {
		sys.Base().ClearEntities()
	}
}

// Register is a shorthand for RegisterComponent on the world's registry.
func Register[T any](w *World) ComponentType {
	return RegisterComponent[T](w.Components.Registry())
}

// Components returns every T the entity owns.
func Components[T any](w *World, id EntityId) []T {
	return GetComponents[T](w.Components, id)
}

// Component returns the index-th T the entity owns, or nil.
func Component[T any](w *World, id EntityId, index int) *T {
	return GetComponent[T](w.Components, id, index)
}

// Attach appends value to the entity and runs its InitComponent hook.
func Attach[T any](w *World, id EntityId, value T) *T {
	index := AddComponent(w.Components, id, value)
	c := GetComponent[T](w.Components, id, index)
	w.initComponent(id, c)
	return c
}
