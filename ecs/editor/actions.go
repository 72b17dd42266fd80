package editor

import (
	"reflect"

	"github.com/plus3/kiln/ecs"
	"go.uber.org/zap"
)

// ChangeSystemPriority sets a system's priority. The owning category is
// resorted immediately.
type ChangeSystemPriority struct {
	System   ecs.System
	Priority int

	previous int
}

func (c *ChangeSystemPriority) Execute() {
	b := c.System.Base()
	c.previous = b.Priority()
	b.SetPriority(c.Priority)
}

func (c *ChangeSystemPriority) Undo() {
	c.System.Base().SetPriority(c.previous)
}

// MoveSystem swaps the priority of a system with its neighbour in the run
// order. Offset -1 moves it one step earlier, +1 one step later. When both
// share a priority the moved system takes the neighbour's priority minus or
// plus one.
type MoveSystem struct {
	Registry *ecs.SystemRegistry
	System   ecs.System
	Offset   int

	neighbour ecs.System
	previous  [2]int
}

func (c *MoveSystem) Execute() {
	c.neighbour = nil
	b := c.System.Base()
	order := c.Registry.PriorityOrder(b.Category())
	at := -1
	for i, sys := range order {
		if sys == c.System {
			at = i
			break
		}
	}
	target := at + c.Offset
	if at < 0 || target < 0 || target >= len(order) || c.Offset == 0 {
		return
	}

	c.neighbour = order[target]
	nb := c.neighbour.Base()
	c.previous = [2]int{b.Priority(), nb.Priority()}

	if b.Priority() == nb.Priority() {
		if c.Offset < 0 {
			b.SetPriority(nb.Priority() - 1)
		} else {
			b.SetPriority(nb.Priority() + 1)
		}
		return
	}
	mine, theirs := b.Priority(), nb.Priority()
	b.SetPriority(theirs)
	nb.SetPriority(mine)
}

func (c *MoveSystem) Undo() {
	if c.neighbour == nil {
		return
	}
	c.System.Base().SetPriority(c.previous[0])
	c.neighbour.Base().SetPriority(c.previous[1])
}

// ChangeSystemActivity enables or disables a single system.
type ChangeSystemActivity struct {
	System ecs.System
	Active bool

	previous bool
}

func (c *ChangeSystemActivity) Execute() {
	b := c.System.Base()
	c.previous = b.Active()
	b.SetActive(c.Active)
}

func (c *ChangeSystemActivity) Undo() {
	c.System.Base().SetActive(c.previous)
}

// ChangeCategoryActivity enables or disables a whole category.
type ChangeCategoryActivity struct {
	Registry *ecs.SystemRegistry
	Category ecs.Category
	Active   bool

	previous bool
}

func (c *ChangeCategoryActivity) Execute() {
	c.previous = c.Registry.CategoryActive(c.Category)
	c.Registry.SetCategoryActive(c.Category, c.Active)
}

func (c *ChangeCategoryActivity) Undo() {
	c.Registry.SetCategoryActive(c.Category, c.previous)
}

// entityRef pins an entity id to the generation it had when a command first
// ran. Once the id is reclaimed and handed to another entity the ref no
// longer matches and the command leaves the new entity alone.
type entityRef struct {
	id         ecs.EntityId
	generation uint32
}

func pin(w *ecs.World, id ecs.EntityId) entityRef {
	ref := entityRef{id: id}
	if e := w.Get(id); e != nil {
		ref.generation = e.Generation()
	}
	return ref
}

func (r entityRef) live(w *ecs.World) bool {
	e := w.Get(r.id)
	return e != nil && e.IsAlive() && e.Generation() == r.generation
}

// pinAll pins ids on the first run and reuses the earlier refs on redo.
func pinAll(w *ecs.World, refs []entityRef, ids []ecs.EntityId) []entityRef {
	if refs != nil {
		return refs
	}
	refs = make([]entityRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, pin(w, id))
	}
	return refs
}

// JoinSystems makes every target entity a member of every named system.
// Undo removes only the memberships this command created.
type JoinSystems struct {
	World    *ecs.World
	Entities []ecs.EntityId
	Systems  []string

	targets []entityRef
	joined  []membership
}

type membership struct {
	entity entityRef
	system string
}

func (c *JoinSystems) Execute() {
	c.targets = pinAll(c.World, c.targets, c.Entities)
	c.joined = c.joined[:0]
	for _, name := range c.Systems {
		for _, ref := range c.targets {
			if ref.live(c.World) && c.World.JoinSystem(ref.id, name) {
				c.joined = append(c.joined, membership{entity: ref, system: name})
			}
		}
	}
}

func (c *JoinSystems) Undo() {
	for _, m := range c.joined {
		if !m.entity.live(c.World) {
			continue
		}
		if sys := c.World.Systems.Get(m.system); sys != nil {
			sys.Base().RemoveEntity(m.entity.id)
		}
	}
}

// LeaveSystem removes an entity from a system's members.
type LeaveSystem struct {
	World  *ecs.World
	Entity ecs.EntityId
	System string

	target  *entityRef
	removed bool
}

func (c *LeaveSystem) Execute() {
	c.removed = false
	if c.target == nil {
		ref := pin(c.World, c.Entity)
		c.target = &ref
	} else if !c.target.live(c.World) {
		return
	}
	if sys := c.World.Systems.Get(c.System); sys != nil {
		c.removed = sys.Base().RemoveEntity(c.Entity)
	}
}

func (c *LeaveSystem) Undo() {
	if c.removed && c.target.live(c.World) {
		c.World.JoinSystem(c.Entity, c.System)
	}
}

// AddComponent appends the zero value of a registered component type, by
// name, to every target entity.
type AddComponent struct {
	World    *ecs.World
	Entities []ecs.EntityId
	TypeName string

	targets []entityRef
	added   []entityRef
}

func (c *AddComponent) Execute() {
	c.targets = pinAll(c.World, c.targets, c.Entities)
	c.added = c.added[:0]
	for _, ref := range c.targets {
		if !ref.live(c.World) {
			continue
		}
		id := ref.id
		if _, err := c.World.AddComponentByName(id, c.TypeName); err != nil {
			c.World.Log().Warn("editor: add component failed",
				zap.String("component", c.TypeName),
				zap.Int32("entity", int32(id)),
				zap.Error(err))
			continue
		}
		c.added = append(c.added, ref)
	}
}

func (c *AddComponent) Undo() {
	a := c.World.Components.ArrayByName(c.TypeName)
	if a == nil {
		return
	}
	for _, ref := range c.added {
		if ref.live(c.World) {
			a.RemoveAt(ref.id, a.Len(ref.id)-1)
		}
	}
}

// RemoveComponent removes the Index-th component of a type from an entity.
// Undo appends the removed value back at the end of the sequence.
type RemoveComponent struct {
	World    *ecs.World
	Entity   ecs.EntityId
	TypeName string
	Index    int

	target  *entityRef
	removed any
}

func (c *RemoveComponent) Execute() {
	c.removed = nil
	if c.target == nil {
		ref := pin(c.World, c.Entity)
		c.target = &ref
	} else if !c.target.live(c.World) {
		return
	}
	a := c.World.Components.ArrayByName(c.TypeName)
	if a == nil {
		return
	}
	ptr := a.GetAny(c.Entity, c.Index)
	if ptr == nil {
		return
	}
	c.removed = reflect.ValueOf(ptr).Elem().Interface()
	a.RemoveAt(c.Entity, c.Index)
}

func (c *RemoveComponent) Undo() {
	if c.removed == nil || !c.target.live(c.World) {
		return
	}
	if a := c.World.Components.ArrayByName(c.TypeName); a != nil {
		a.AppendAny(c.Entity, c.removed)
	}
}

// CreateEntity registers a new entity of DataType. Undo destroys it.
type CreateEntity struct {
	World    *ecs.World
	DataType string
	Unique   bool

	Created ecs.EntityId

	created entityRef
}

func (c *CreateEntity) Execute() {
	c.Created = ecs.InvalidEntity
	if c.Unique {
		id, ok := c.World.Entities.RegisterUnique(c.DataType)
		if !ok {
			return
		}
		c.Created = id
	} else {
		c.Created = c.World.Entities.Register(c.DataType)
	}
	c.created = pin(c.World, c.Created)
}

func (c *CreateEntity) Undo() {
	if c.Created.Valid() && c.created.live(c.World) {
		c.World.Destroy(c.Created)
	}
}

// DestroyEntities queues entities for destruction. Reclaimed entities
// cannot be restored, so Undo does nothing.
type DestroyEntities struct {
	World    *ecs.World
	Entities []ecs.EntityId

	targets []entityRef
}

func (c *DestroyEntities) Execute() {
	c.targets = pinAll(c.World, c.targets, c.Entities)
	for _, ref := range c.targets {
		if ref.live(c.World) {
			c.World.Destroy(ref.id)
		}
	}
}

func (c *DestroyEntities) Undo() {}

// SetField writes one field of a component. The component is looked up
// again on every Execute and Undo since pointers into a sequence do not
// survive appends to it.
type SetField struct {
	World    *ecs.World
	Entity   ecs.EntityId
	TypeName string
	Index    int
	Path     []int
	Value    any

	target   *entityRef
	previous any
	applied  bool
}

func (c *SetField) field() reflect.Value {
	if !c.target.live(c.World) {
		return reflect.Value{}
	}
	a := c.World.Components.ArrayByName(c.TypeName)
	if a == nil {
		return reflect.Value{}
	}
	ptr := a.GetAny(c.Entity, c.Index)
	if ptr == nil {
		return reflect.Value{}
	}
	return fieldByPath(reflect.ValueOf(ptr).Elem(), c.Path)
}

func (c *SetField) Execute() {
	c.applied = false
	if c.target == nil {
		ref := pin(c.World, c.Entity)
		c.target = &ref
	}
	f := c.field()
	if !f.IsValid() {
		return
	}
	previous := f.Interface()
	if err := setValue(f, c.Value); err != nil {
		c.World.Log().Warn("editor: set field failed",
			zap.String("component", c.TypeName),
			zap.Int32("entity", int32(c.Entity)),
			zap.Error(err))
		return
	}
	c.previous = previous
	c.applied = true
}

func (c *SetField) Undo() {
	if !c.applied {
		return
	}
	if f := c.field(); f.IsValid() {
		setValue(f, c.previous)
	}
}
