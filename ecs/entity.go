package ecs

import "strconv"

// EntityId is an index into the dense entity array of an EntityTable.
type EntityId int32

// InvalidEntity marks a slot that does not hold a live entity.
const InvalidEntity EntityId = -1

// Valid reports whether the id is not the InvalidEntity marker.
func (id EntityId) Valid() bool {
	return id >= 0
}

// Entity is a reusable identity plus the minimal metadata the editor and the
// scene serializer need. It owns no component data.
type Entity struct {
	Id       EntityId
	DataType string

	generation     uint32
	alive          bool
	pendingDestroy bool
	unique         bool
}

// UniqueId combines the data type with the id, e.g. "Enemy12".
func (e *Entity) UniqueId() string {
	return e.DataType + strconv.Itoa(int(e.Id))
}

// Generation counts how many times the entity's id has been registered.
// Two entities that share an id never share a generation.
func (e *Entity) Generation() uint32 {
	return e.generation
}

// IsAlive reports whether the entity has not been reclaimed yet.
// Entities queued for destruction stay alive until the next Reclaim.
func (e *Entity) IsAlive() bool {
	return e.alive
}

// IsPendingDestroy reports whether Destroy was called and Reclaim has not run.
func (e *Entity) IsPendingDestroy() bool {
	return e.pendingDestroy
}

// IsUnique reports whether the entity was registered with RegisterUnique.
func (e *Entity) IsUnique() bool {
	return e.unique
}
