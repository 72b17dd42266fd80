package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
	"strconv"

	"go.uber.org/zap"
)

// categorySystems holds the systems of one category, both in registration
// order and in the priority-sorted run order.
type categorySystems struct {
	category Category
	systems  []System
	order    []System
	inactive bool
}

// sort rebuilds the run list from registration order. Ties keep
// registration order. A fresh slice is built so a run list captured by the
// scheduler is never reordered under it.
func (c *categorySystems) sort() {
	order := slices.Clone(c.systems)
	slices.SortStableFunc(order, func(a, b System) int {
		return cmp.Compare(a.Base().priority, b.Base().priority)
	})
	c.order = order
}

// SystemRegistry holds at most one system per concrete type, grouped by
// category. Systems are named by their type name; a type whose name is
// already taken by a type from another package is named by its
// package-qualified name instead.
type SystemRegistry struct {
	world      *World
	categories [CategoryCount]categorySystems
	byType     map[reflect.Type]System
	byName     map[string]System
	log        *zap.Logger
}

// NewSystemRegistry creates an empty registry. world is handed to the
// systems' Init hook and may be nil.
func NewSystemRegistry(world *World, log *zap.Logger) *SystemRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	r := &SystemRegistry{
		world:  world,
		byType: make(map[reflect.Type]System),
		byName: make(map[string]System),
		log:    log,
	}
	for i := range r.categories {
		r.categories[i].category = Category(i)
	}
	return r
}

func (r *SystemRegistry) category(c Category) *categorySystems {
	if !c.Valid() {
		panic("ecs: invalid system category " + c.String())
	}
	return &r.categories[c]
}

// Register adds sys under the name of its concrete type, calls its Init hook
// and inserts it into its category's run list. Registering a concrete type
// that is already present is a no-op and returns false.
func (r *SystemRegistry) Register(sys System) bool {
	t := systemType(sys)
	if _, ok := r.byType[t]; ok {
		return false
	}
	name := r.freeName(t)

	b := sys.Base()
	if b.owner != nil {
		panic("ecs: system " + name + " is already registered with another registry")
	}
	cat := r.category(b.category)

	b.name = name
	if init, ok := sys.(SystemInitializer); ok {
		init.Init(r.world)
	}

	r.byType[t] = sys
	r.byName[name] = sys
	cat.systems = append(cat.systems, sys)
	b.owner = cat
	cat.sort()

	r.log.Debug("system registered",
		zap.String("system", name),
		zap.Stringer("category", b.category),
		zap.Int("priority", b.priority))
	return true
}

// freeName picks the first unused name among the short type name, the
// package-qualified name and numbered variants of the latter.
func (r *SystemRegistry) freeName(t reflect.Type) string {
	if _, taken := r.byName[t.Name()]; !taken {
		return t.Name()
	}
	qualified := t.PkgPath() + "." + t.Name()
	name := qualified
	for n := 2; ; n++ {
		if _, taken := r.byName[name]; !taken {
			return name
		}
		name = qualified + "#" + strconv.Itoa(n)
	}
}

// Get returns the system registered under name, or nil.
func (r *SystemRegistry) Get(name string) System {
	return r.byName[name]
}

// GetSystem returns the registered system of type S, or the zero S.
func GetSystem[S System](r *SystemRegistry) S {
	t := reflect.TypeFor[S]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	sys, _ := r.byType[t].(S)
	return sys
}

// SystemsByCategory returns the systems of c in registration order.
// The slice must not be modified.
func (r *SystemRegistry) SystemsByCategory(c Category) []System {
	return r.category(c).systems
}

// PriorityOrder returns the run list of c: its systems sorted by ascending
// priority. The slice must not be modified.
func (r *SystemRegistry) PriorityOrder(c Category) []System {
	return r.category(c).order
}

// SortPriorityOrder rebuilds the run list of c. Priority changes made
// through SystemBase.SetPriority already do this.
func (r *SystemRegistry) SortPriorityOrder(c Category) {
	r.category(c).sort()
}

// SortAll rebuilds the run list of every category.
func (r *SystemRegistry) SortAll() {
	for i := range r.categories {
		r.categories[i].sort()
	}
}

// Unregister removes the named system and calls its Finalize hook.
func (r *SystemRegistry) Unregister(name string) bool {
	sys, ok := r.byName[name]
	if !ok {
		return false
	}
	delete(r.byName, name)
	delete(r.byType, systemType(sys))

	b := sys.Base()
	cat := b.owner
	cat.systems = slices.DeleteFunc(cat.systems, func(s System) bool { return s == sys })
	b.owner = nil
	cat.sort()

	if fin, ok := sys.(SystemFinalizer); ok {
		fin.Finalize()
	}
	r.log.Debug("system unregistered", zap.String("system", name))
	return true
}

// Clear finalizes and drops every system. Category activity is kept.
func (r *SystemRegistry) Clear() {
	for i := range r.categories {
		cat := &r.categories[i]
		for _, sys := range cat.systems {
			sys.Base().owner = nil
			if fin, ok := sys.(SystemFinalizer); ok {
				fin.Finalize()
			}
		}
		cat.systems = nil
		cat.order = nil
	}
	clear(r.byName)
	clear(r.byType)
}

// SetCategoryActive enables or disables a whole category.
func (r *SystemRegistry) SetCategoryActive(c Category, active bool) {
	r.category(c).inactive = !active
}

// CategoryActive reports whether the scheduler runs category c.
func (r *SystemRegistry) CategoryActive(c Category) bool {
	return !r.category(c).inactive
}

// RemoveEntityFromAll drops id from the members of every system.
func (r *SystemRegistry) RemoveEntityFromAll(id EntityId) {
	for i := range r.categories {
		for _, sys := range r.categories[i].systems {
			sys.Base().RemoveEntity(id)
		}
	}
}

// SystemsOf returns the names of the systems id is a member of, in
// category and priority order.
func (r *SystemRegistry) SystemsOf(id EntityId) []string {
	var names []string
	for sys := range r.All() {
		if sys.Base().HasEntity(id) {
			names = append(names, sys.Base().name)
		}
	}
	return names
}

// All iterates over every system in category order, then priority order.
func (r *SystemRegistry) All() iter.Seq[System] {
	return func(yield func(System) bool) {
		for i := range r.categories {
			for _, sys := range r.categories[i].order {
				if !yield(sys) {
					return
				}
			}
		}
	}
}

// Len returns the number of registered systems.
func (r *SystemRegistry) Len() int {
	return len(r.byType)
}
