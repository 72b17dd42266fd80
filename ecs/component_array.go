package ecs

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
)

// ErrComponentType is returned when a value does not match an array's type.
var ErrComponentType = errors.New("component type mismatch")

// AnyComponentArray is the type-erased view of a ComponentArray, used by
// code that walks every registered type without knowing it statically
// (reclamation, the editor and the scene serializer).
type AnyComponentArray interface {
	Type() ComponentType
	TypeName() string
	GoType() reflect.Type

	Len(id EntityId) int
	GetAny(id EntityId, index int) any
	AppendAny(id EntityId, value any) (int, error)
	AppendZero(id EntityId) int
	RemoveAt(id EntityId, index int) bool
	ClearEntity(id EntityId)
	Clear()

	Resize(capacity int)
	Reset(capacity int)
	Capacity() int
	EntityCount() int
}

// ComponentArray stores the components of type T. Every entity slot holds an
// ordered sequence of T, so an entity may own several components of the
// same type. Sequence order is insertion order and is never rearranged.
type ComponentArray[T any] struct {
	typ        ComponentType
	name       string
	components [][]T
}

func newComponentArray[T any](typ ComponentType, name string, capacity int) *ComponentArray[T] {
	return &ComponentArray[T]{
		typ:        typ,
		name:       name,
		components: make([][]T, capacity),
	}
}

// Type returns the interned component type.
func (a *ComponentArray[T]) Type() ComponentType { return a.typ }

// TypeName returns the registered name of T.
func (a *ComponentArray[T]) TypeName() string { return a.name }

// GoType returns the reflect.Type of T.
func (a *ComponentArray[T]) GoType() reflect.Type { return reflect.TypeFor[T]() }

// Capacity returns the number of entity slots, equal to the entity capacity.
func (a *ComponentArray[T]) Capacity() int { return len(a.components) }

// Resize grows the array to capacity. Existing sequences are kept as-is, so
// pointers into them stay valid.
func (a *ComponentArray[T]) Resize(capacity int) {
	if capacity <= len(a.components) {
		return
	}
	a.components = append(a.components, make([][]T, capacity-len(a.components))...)
}

func (a *ComponentArray[T]) inRange(id EntityId) bool {
	return id >= 0 && int(id) < len(a.components)
}

// Add appends value to the entity's sequence and returns its index.
func (a *ComponentArray[T]) Add(id EntityId, value T) int {
	if !a.inRange(id) {
		panic(fmt.Sprintf("ecs: entity %d out of range for %s array (capacity %d)", id, a.name, len(a.components)))
	}
	a.components[id] = append(a.components[id], value)
	return len(a.components[id]) - 1
}

// Get returns the index-th component of the entity, or nil when there is no
// such component.
func (a *ComponentArray[T]) Get(id EntityId, index int) *T {
	if !a.inRange(id) || index < 0 || index >= len(a.components[id]) {
		return nil
	}
	return &a.components[id][index]
}

// Components returns the entity's ordered sequence. The slice aliases the
// array's storage; it is valid until the next Add, Remove or Clear for the
// entity.
func (a *ComponentArray[T]) Components(id EntityId) []T {
	if !a.inRange(id) {
		return nil
	}
	return a.components[id]
}

// Len returns how many components of type T the entity owns.
func (a *ComponentArray[T]) Len(id EntityId) int {
	if !a.inRange(id) {
		return 0
	}
	return len(a.components[id])
}

// RemoveAt removes the index-th component, shifting later ones down.
func (a *ComponentArray[T]) RemoveAt(id EntityId, index int) bool {
	if !a.inRange(id) || index < 0 || index >= len(a.components[id]) {
		return false
	}
	seq := a.components[id]
	copy(seq[index:], seq[index+1:])
	var zero T
	seq[len(seq)-1] = zero
	a.components[id] = seq[:len(seq)-1]
	return true
}

// ClearEntity drops every component the entity owns.
func (a *ComponentArray[T]) ClearEntity(id EntityId) {
	if !a.inRange(id) {
		return
	}
	a.components[id] = nil
}

// Reset drops every component and sets the capacity, shrinking if needed.
func (a *ComponentArray[T]) Reset(capacity int) {
	a.components = make([][]T, capacity)
}

// Clear drops every component while keeping the capacity.
func (a *ComponentArray[T]) Clear() {
	for i := range a.components {
		a.components[i] = nil
	}
}

// EntityCount returns the number of entities owning at least one component.
func (a *ComponentArray[T]) EntityCount() int {
	n := 0
	for _, seq := range a.components {
		if len(seq) > 0 {
			n++
		}
	}
	return n
}

// All iterates over entities that own at least one component of type T.
func (a *ComponentArray[T]) All() iter.Seq2[EntityId, []T] {
	return func(yield func(EntityId, []T) bool) {
		for i, seq := range a.components {
			if len(seq) == 0 {
				continue
			}
			if !yield(EntityId(i), seq) {
				return
			}
		}
	}
}

// GetAny returns a *T for the index-th component, or nil.
func (a *ComponentArray[T]) GetAny(id EntityId, index int) any {
	if c := a.Get(id, index); c != nil {
		return c
	}
	return nil
}

// AppendAny appends a T or *T value.
func (a *ComponentArray[T]) AppendAny(id EntityId, value any) (int, error) {
	switch v := value.(type) {
	case T:
		return a.Add(id, v), nil
	case *T:
		if v == nil {
			return -1, fmt.Errorf("append nil %s: %w", a.name, ErrComponentType)
		}
		return a.Add(id, *v), nil
	default:
		return -1, fmt.Errorf("append %T to %s array: %w", value, a.name, ErrComponentType)
	}
}

// AppendZero appends the zero value of T.
func (a *ComponentArray[T]) AppendZero(id EntityId) int {
	var zero T
	return a.Add(id, zero)
}
