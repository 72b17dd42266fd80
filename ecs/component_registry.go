package ecs

import (
	"fmt"
	"reflect"
)

// ComponentType is the interned index of a component Go type within one
// ComponentRegistry. Indices are assigned in registration order.
type ComponentType int

type componentInfo struct {
	goType  reflect.Type
	name    string
	factory func(capacity int) AnyComponentArray
}

// ComponentRegistry interns component types. Each World has its own
// registry, allowing independent worlds to coexist in one process.
// New component types need no central list: RegisterComponent is called
// by whoever introduces the type, or lazily on first use.
type ComponentRegistry struct {
	types  map[reflect.Type]ComponentType
	byName map[string]ComponentType
	infos  []componentInfo
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		types:  make(map[reflect.Type]ComponentType),
		byName: make(map[string]ComponentType),
	}
}

// RegisterComponent interns T and returns its ComponentType. Registering the
// same type again returns the existing index.
func RegisterComponent[T any](r *ComponentRegistry) ComponentType {
	t := reflect.TypeFor[T]()
	if ct, ok := r.types[t]; ok {
		return ct
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("ecs: components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}

	name := t.String()
	if other, ok := r.byName[name]; ok {
		panic(fmt.Sprintf("ecs: component name %q already used by %s", name, r.infos[other].goType))
	}

	ct := ComponentType(len(r.infos))
	r.infos = append(r.infos, componentInfo{
		goType: t,
		name:   name,
		factory: func(capacity int) AnyComponentArray {
			return newComponentArray[T](ct, name, capacity)
		},
	})
	r.types[t] = ct
	r.byName[name] = ct
	return ct
}

// ComponentTypeOf returns the ComponentType of T, registering it if needed.
func ComponentTypeOf[T any](r *ComponentRegistry) ComponentType {
	return RegisterComponent[T](r)
}

// Lookup returns the ComponentType of a Go type that was already registered.
func (r *ComponentRegistry) Lookup(t reflect.Type) (ComponentType, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	ct, ok := r.types[t]
	return ct, ok
}

// LookupName returns the ComponentType registered under name.
func (r *ComponentRegistry) LookupName(name string) (ComponentType, bool) {
	ct, ok := r.byName[name]
	return ct, ok
}

// Name returns the display and serialization name of a component type.
func (r *ComponentRegistry) Name(ct ComponentType) string {
	if int(ct) < 0 || int(ct) >= len(r.infos) {
		return ""
	}
	return r.infos[ct].name
}

// Names returns the names of all registered types in registration order.
func (r *ComponentRegistry) Names() []string {
	names := make([]string, len(r.infos))
	for i, info := range r.infos {
		names[i] = info.name
	}
	return names
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.infos)
}

func (r *ComponentRegistry) newArray(ct ComponentType, capacity int) AnyComponentArray {
	return r.infos[ct].factory(capacity)
}
