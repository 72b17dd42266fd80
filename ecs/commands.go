package ecs

import (
	"reflect"

	"go.uber.org/zap"
)

// Commands buffers structural changes requested while systems run. The
// scheduler flushes the buffer at the end of the frame, after PostRender.
type Commands struct {
	spawns   []spawnCommand
	destroys []EntityId
	adds     []addComponentCommand
	removes  []removeComponentCommand
	joins    []joinCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	dataType   string
	components []any
	systems    []string
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
	index    int
}

type joinCommand struct {
	entity EntityId
	system string
}

// Defer queues fn to run after every other command of the frame.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues the registration of an entity of dataType with components.
func (c *Commands) Spawn(dataType string, components ...any) {
	c.spawns = append(c.spawns, spawnCommand{dataType: dataType, components: components})
}

// SpawnInto is Spawn followed by joining the new entity to the named systems.
func (c *Commands) SpawnInto(systems []string, dataType string, components ...any) {
	c.spawns = append(c.spawns, spawnCommand{dataType: dataType, components: components, systems: systems})
}

// Destroy queues the destruction of an entity. The entity stays alive until
// the reclaim at the start of the next frame.
func (c *Commands) Destroy(entity EntityId) {
	c.destroys = append(c.destroys, entity)
}

// AddComponent queues appending component to the entity.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues removing the index-th component of compType.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type, index int) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
		index:    index,
	})
}

// JoinSystem queues adding the entity to the named system's members.
func (c *Commands) JoinSystem(entity EntityId, system string) {
	c.joins = append(c.joins, joinCommand{entity: entity, system: system})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.destroys) + len(c.adds) + len(c.removes) + len(c.joins) + len(c.defers)
}

// Flush applies all queued commands to the world and resets the buffer.
// Component changes and joins targeting an entity destroyed in the same
// flush are dropped. Commands queued while flushing, typically from deferred
// functions, are kept for the next flush.
func (c *Commands) Flush(w *World) {
	queued := *c
	*c = Commands{}
	queued.apply(w)
}

func (c *Commands) apply(w *World) {
	destroyed := make(map[EntityId]bool, len(c.destroys))
	for _, id := range c.destroys {
		w.Destroy(id)
		destroyed[id] = true
	}

	for _, cmd := range c.removes {
		if destroyed[cmd.entity] {
			continue
		}
		if a := w.Components.ArrayOf(cmd.compType); a != nil {
			a.RemoveAt(cmd.entity, cmd.index)
		}
	}

	for _, cmd := range c.adds {
		if destroyed[cmd.entity] {
			continue
		}
		if _, err := w.AddAny(cmd.entity, cmd.component); err != nil {
			w.log.Warn("dropping queued component", zap.Int32("entity", int32(cmd.entity)), zap.Error(err))
		}
	}

	for _, cmd := range c.joins {
		if destroyed[cmd.entity] {
			continue
		}
		w.JoinSystem(cmd.entity, cmd.system)
	}

	for _, cmd := range c.spawns {
		id := w.Spawn(cmd.dataType, cmd.components...)
		for _, name := range cmd.systems {
			w.JoinSystem(id, name)
		}
	}

	for _, fn := range c.defers {
		fn()
	}
}
