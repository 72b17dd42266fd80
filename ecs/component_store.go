package ecs

import (
	"fmt"
	"iter"
	"reflect"
)

// ComponentStore holds one ComponentArray per registered component type,
// indexed by ComponentType. All arrays share the entity capacity.
type ComponentStore struct {
	registry *ComponentRegistry
	arrays   []AnyComponentArray
	capacity int
}

// NewComponentStore creates a store whose arrays start at capacity.
func NewComponentStore(registry *ComponentRegistry, capacity int) *ComponentStore {
	return &ComponentStore{
		registry: registry,
		capacity: capacity,
	}
}

// Registry returns the registry the store interns its types with.
func (s *ComponentStore) Registry() *ComponentRegistry {
	return s.registry
}

// Capacity returns the entity capacity every array is sized to.
func (s *ComponentStore) Capacity() int {
	return s.capacity
}

// array returns the array for ct, creating it (and any array for a type
// registered before it) on first use.
func (s *ComponentStore) array(ct ComponentType) AnyComponentArray {
	for len(s.arrays) <= int(ct) {
		next := ComponentType(len(s.arrays))
		s.arrays = append(s.arrays, s.registry.newArray(next, s.capacity))
	}
	return s.arrays[ct]
}

// GetArray returns the array for T. Types never seen before are registered
// transparently, so probing for an optional component is always safe.
func GetArray[T any](s *ComponentStore) *ComponentArray[T] {
	ct := RegisterComponent[T](s.registry)
	return s.array(ct).(*ComponentArray[T])
}

// AddComponent appends value to the entity's T sequence and returns its index.
func AddComponent[T any](s *ComponentStore, id EntityId, value T) int {
	return GetArray[T](s).Add(id, value)
}

// GetComponent returns the index-th T of the entity, or nil.
func GetComponent[T any](s *ComponentStore, id EntityId, index int) *T {
	return GetArray[T](s).Get(id, index)
}

// GetComponents returns every T of the entity in insertion order.
func GetComponents[T any](s *ComponentStore, id EntityId) []T {
	return GetArray[T](s).Components(id)
}

// ComponentCount returns how many T the entity owns.
func ComponentCount[T any](s *ComponentStore, id EntityId) int {
	return GetArray[T](s).Len(id)
}

// HasComponent reports whether the entity owns at least one T.
func HasComponent[T any](s *ComponentStore, id EntityId) bool {
	return ComponentCount[T](s, id) > 0
}

// RemoveComponent removes the index-th T of the entity.
func RemoveComponent[T any](s *ComponentStore, id EntityId, index int) bool {
	return GetArray[T](s).RemoveAt(id, index)
}

// ClearComponent removes every T the entity owns.
func ClearComponent[T any](s *ComponentStore, id EntityId) {
	GetArray[T](s).ClearEntity(id)
}

// ClearEntity removes every component of every registered type the entity owns.
func (s *ComponentStore) ClearEntity(id EntityId) {
	for _, a := range s.arrays {
		a.ClearEntity(id)
	}
}

// Clear empties every array, keeping the registered types.
func (s *ComponentStore) Clear() {
	for _, a := range s.arrays {
		a.Clear()
	}
}

// Reset drops every component and sets every array to capacity, which may
// be smaller than the current one. Used when the entity table resets.
func (s *ComponentStore) Reset(capacity int) {
	s.capacity = capacity
	for _, a := range s.arrays {
		a.Reset(capacity)
	}
}

// Resize grows every array to capacity. Called when the entity table grows.
func (s *ComponentStore) Resize(capacity int) {
	if capacity <= s.capacity {
		return
	}
	s.capacity = capacity
	for _, a := range s.arrays {
		a.Resize(capacity)
	}
}

// Arrays iterates over the arrays created so far in registration order.
func (s *ComponentStore) Arrays() iter.Seq[AnyComponentArray] {
	return func(yield func(AnyComponentArray) bool) {
		for _, a := range s.arrays {
			if !yield(a) {
				return
			}
		}
	}
}

// ArrayByName returns the array of a registered type name, or nil.
func (s *ComponentStore) ArrayByName(name string) AnyComponentArray {
	ct, ok := s.registry.LookupName(name)
	if !ok {
		return nil
	}
	return s.array(ct)
}

// ArrayOf returns the array of a registered Go type, or nil.
func (s *ComponentStore) ArrayOf(t reflect.Type) AnyComponentArray {
	ct, ok := s.registry.Lookup(t)
	if !ok {
		return nil
	}
	return s.array(ct)
}

// AddComponentByName appends the zero value of the named type and returns a
// pointer to the new component.
func (s *ComponentStore) AddComponentByName(id EntityId, name string) (any, error) {
	a := s.ArrayByName(name)
	if a == nil {
		return nil, fmt.Errorf("component %q is not registered", name)
	}
	index := a.AppendZero(id)
	return a.GetAny(id, index), nil
}

// CountFor returns the total number of components the entity owns across
// all types.
func (s *ComponentStore) CountFor(id EntityId) int {
	n := 0
	for _, a := range s.arrays {
		n += a.Len(id)
	}
	return n
}
