package ecs

import (
	"iter"
	"math"

	"go.uber.org/zap"
)

// DefaultEntityCapacity is the initial number of entity slots of a World.
const DefaultEntityCapacity = 100

// EntityTable owns the dense entity array, the stack of free ids and the
// queue of entities waiting to be reclaimed.
//
// Ids handed out by Register are reused LIFO: the most recently reclaimed id
// is the next one returned.
type EntityTable struct {
	entities        []Entity
	freeIndex       []EntityId
	deleteQueue     []EntityId
	uniques         map[string]EntityId
	initialCapacity int
	count           int

	onGrow    []func(capacity int)
	onReclaim []func(id EntityId)

	log *zap.Logger
}

// NewEntityTable creates a table with the given initial capacity.
func NewEntityTable(capacity int, log *zap.Logger) *EntityTable {
	if capacity < 1 {
		capacity = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	t := &EntityTable{
		uniques:         make(map[string]EntityId),
		initialCapacity: capacity,
		log:             log,
	}
	t.resize(capacity)
	return t
}

// OnGrow registers a callback fired after the capacity doubles.
func (t *EntityTable) OnGrow(fn func(capacity int)) {
	t.onGrow = append(t.onGrow, fn)
}

// OnReclaim registers a callback fired for every reclaimed entity, before
// the entity is marked dead.
func (t *EntityTable) OnReclaim(fn func(id EntityId)) {
	t.onReclaim = append(t.onReclaim, fn)
}

// resize grows the entity array to capacity and pushes the new slots onto
// the free stack so that the lowest new index is popped first.
func (t *EntityTable) resize(capacity int) {
	oldCapacity := len(t.entities)
	if capacity <= oldCapacity {
		return
	}
	t.entities = append(t.entities, make([]Entity, capacity-oldCapacity)...)
	for i := capacity - 1; i >= oldCapacity; i-- {
		t.entities[i].Id = InvalidEntity
		t.freeIndex = append(t.freeIndex, EntityId(i))
	}
}

func (t *EntityTable) grow() {
	oldCapacity := len(t.entities)
	newCapacity := oldCapacity * 2
	if newCapacity > math.MaxInt32 {
		panic("ecs: entity capacity exhausted")
	}
	t.resize(newCapacity)
	t.log.Debug("entity capacity grown",
		zap.Int("from", oldCapacity),
		zap.Int("to", newCapacity))

	for _, fn := range t.onGrow {
		fn(newCapacity)
	}
}

// Register creates a live entity of the given data type and returns its id.
// The capacity doubles when no free id is left.
func (t *EntityTable) Register(dataType string) EntityId {
	if len(t.freeIndex) == 0 {
		t.grow()
	}
	last := len(t.freeIndex) - 1
	id := t.freeIndex[last]
	t.freeIndex = t.freeIndex[:last]

	t.entities[id] = Entity{
		Id:         id,
		DataType:   dataType,
		generation: t.entities[id].generation + 1,
		alive:      true,
	}
	t.count++
	return id
}

// RegisterUnique creates an entity that is the only live one of its data
// type. If such an entity already exists its id is returned with false.
// An entity pending destruction no longer holds its data type.
func (t *EntityTable) RegisterUnique(dataType string) (EntityId, bool) {
	if id, ok := t.Unique(dataType); ok {
		return id, false
	}
	id := t.Register(dataType)
	t.entities[id].unique = true
	t.uniques[dataType] = id
	return id, true
}

// Unique returns the unique entity registered for dataType, unless it is
// pending destruction.
func (t *EntityTable) Unique(dataType string) (EntityId, bool) {
	id, ok := t.uniques[dataType]
	if !ok || t.entities[id].pendingDestroy {
		return InvalidEntity, false
	}
	return id, true
}

// Get returns the entity slot for id, or nil when id is out of bounds.
// The returned pointer is invalidated by the next capacity growth.
func (t *EntityTable) Get(id EntityId) *Entity {
	if id < 0 || int(id) >= len(t.entities) {
		return nil
	}
	return &t.entities[id]
}

// IsAlive reports whether id refers to a live entity.
func (t *EntityTable) IsAlive(id EntityId) bool {
	e := t.Get(id)
	return e != nil && e.alive
}

// Destroy queues the entity for reclamation at the start of the next frame.
// The entity and its components stay readable until then. Destroying an
// entity that is already queued or dead is ignored and reported as false.
func (t *EntityTable) Destroy(id EntityId) bool {
	e := t.Get(id)
	if e == nil || !e.alive || e.pendingDestroy {
		t.log.Warn("ignoring destroy of entity that is not alive or already queued",
			zap.Int32("entity", int32(id)))
		return false
	}
	e.pendingDestroy = true
	t.deleteQueue = append(t.deleteQueue, id)
	return true
}

// Reclaim drains the deletion queue in FIFO order: the reclaim callbacks run,
// the entity is marked dead and its id returns to the free stack.
// It returns the number of reclaimed entities.
func (t *EntityTable) Reclaim() int {
	reclaimed := len(t.deleteQueue)
	for _, id := range t.deleteQueue {
		for _, fn := range t.onReclaim {
			fn(id)
		}

		e := &t.entities[id]
		if e.unique && t.uniques[e.DataType] == id {
			delete(t.uniques, e.DataType)
		}
		*e = Entity{Id: InvalidEntity, generation: e.generation}

		t.freeIndex = append(t.freeIndex, id)
		t.count--
	}
	t.deleteQueue = t.deleteQueue[:0]
	return reclaimed
}

// Capacity returns the number of entity slots.
func (t *EntityTable) Capacity() int {
	return len(t.entities)
}

// Count returns the number of live entities, including pending ones.
func (t *EntityTable) Count() int {
	return t.count
}

// PendingCount returns the number of entities waiting for Reclaim.
func (t *EntityTable) PendingCount() int {
	return len(t.deleteQueue)
}

// All iterates over live entities in id order.
func (t *EntityTable) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for i := range t.entities {
			if !t.entities[i].alive {
				continue
			}
			if !yield(&t.entities[i]) {
				return
			}
		}
	}
}

// Reset drops every entity and restores the initial capacity. Grow callbacks
// are not fired; owners of per-entity storage reset themselves.
func (t *EntityTable) Reset() {
	t.entities = nil
	t.freeIndex = nil
	t.deleteQueue = nil
	t.count = 0
	clear(t.uniques)
	t.resize(t.initialCapacity)
}
