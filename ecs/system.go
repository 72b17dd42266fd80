package ecs

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/kamstrup/intmap"
)

// Category is a fixed pipeline phase. Categories run in declaration order,
// except Initialize which runs once from Scheduler.Start.
type Category int

const (
	CategoryInitialize Category = iota
	CategoryInput
	CategoryStateTransition
	CategoryMovement
	CategoryPhysics
	CategoryCollision
	CategoryEffect
	CategoryRender
	CategoryPostRender

	CategoryCount
)

var categoryNames = [CategoryCount]string{
	"Initialize",
	"Input",
	"StateTransition",
	"Movement",
	"Physics",
	"Collision",
	"Effect",
	"Render",
	"PostRender",
}

func (c Category) String() string {
	if !c.Valid() {
		return "Category(" + strconv.Itoa(int(c)) + ")"
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= 0 && c < CategoryCount
}

// ParseCategory is the inverse of Category.String, ignoring case.
func ParseCategory(s string) (Category, bool) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), true
		}
	}
	return 0, false
}

// System is implemented by every system. Concrete systems embed SystemBase,
// which provides Base, and add one of Execute or UpdateEntity.
type System interface {
	Base() *SystemBase
}

// SystemInitializer is called once when the system is registered.
type SystemInitializer interface {
	Init(world *World)
}

// SystemFinalizer is called when the system is unregistered or the registry
// is cleared.
type SystemFinalizer interface {
	Finalize()
}

// Executor takes full control of a system's frame. Systems that implement it
// are responsible for their own member iteration.
type Executor interface {
	Execute(frame *UpdateFrame)
}

// EntityUpdater is called once per member entity per frame, after members
// whose entity is no longer alive have been dropped.
type EntityUpdater interface {
	UpdateEntity(frame *UpdateFrame, entity *Entity)
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Category       Category
	Priority       int
	EntityCount    int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(d time.Duration) {
	if s.executionCount == 0 || d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
}

// SystemBase carries the state every system shares: its category, its
// priority within the category and the explicit list of member entities.
// Membership is not derived from components; entities join a system.
type SystemBase struct {
	category Category
	priority int
	inactive bool
	name     string

	members []EntityId
	index   *intmap.Map[EntityId, int]
	scratch []EntityId

	owner *categorySystems
	stats systemStatsInternal
}

// NewSystemBase returns a base for a system of the given category.
func NewSystemBase(category Category, priority int) SystemBase {
	if !category.Valid() {
		panic("ecs: invalid system category " + category.String())
	}
	return SystemBase{
		category: category,
		priority: priority,
	}
}

// Base returns b itself; embedding SystemBase makes a type a System.
func (b *SystemBase) Base() *SystemBase { return b }

// Name returns the registry key, set on registration.
func (b *SystemBase) Name() string { return b.name }

// Category returns the category fixed at construction.
func (b *SystemBase) Category() Category { return b.category }

// Priority returns the order key within the category. Lower runs first.
func (b *SystemBase) Priority() int { return b.priority }

// SetPriority changes the order key. A registered system's category run
// list is re-sorted immediately.
func (b *SystemBase) SetPriority(priority int) {
	if b.priority == priority {
		return
	}
	b.priority = priority
	if b.owner != nil {
		b.owner.sort()
	}
}

// Active reports whether the scheduler runs this system.
func (b *SystemBase) Active() bool { return !b.inactive }

// SetActive enables or disables the system without unregistering it.
func (b *SystemBase) SetActive(active bool) { b.inactive = !active }

// Stats returns the execution statistics gathered by the scheduler.
func (b *SystemBase) Stats() SystemStats {
	var avg time.Duration
	if b.stats.executionCount > 0 {
		avg = b.stats.totalDuration / time.Duration(b.stats.executionCount)
	}
	return SystemStats{
		Name:           b.name,
		Category:       b.category,
		Priority:       b.priority,
		EntityCount:    len(b.members),
		ExecutionCount: b.stats.executionCount,
		MinDuration:    b.stats.minDuration,
		MaxDuration:    b.stats.maxDuration,
		AvgDuration:    avg,
		LastDuration:   b.stats.lastDuration,
		TotalDuration:  b.stats.totalDuration,
	}
}

func (b *SystemBase) ensureIndex() {
	if b.index == nil {
		b.index = intmap.New[EntityId, int](64)
	}
}

// AddEntity makes id a member. Adding a member twice is a no-op.
func (b *SystemBase) AddEntity(id EntityId) bool {
	b.ensureIndex()
	if _, ok := b.index.Get(id); ok {
		return false
	}
	b.index.Put(id, len(b.members))
	b.members = append(b.members, id)
	return true
}

// HasEntity reports whether id is a member.
func (b *SystemBase) HasEntity(id EntityId) bool {
	if b.index == nil {
		return false
	}
	_, ok := b.index.Get(id)
	return ok
}

// RemoveEntity drops id from the members, keeping the order of the rest.
func (b *SystemBase) RemoveEntity(id EntityId) bool {
	if b.index == nil {
		return false
	}
	pos, ok := b.index.Get(id)
	if !ok {
		return false
	}
	b.index.Del(id)
	copy(b.members[pos:], b.members[pos+1:])
	b.members = b.members[:len(b.members)-1]
	for i := pos; i < len(b.members); i++ {
		b.index.Put(b.members[i], i)
	}
	return true
}

// ClearEntities drops every member.
func (b *SystemBase) ClearEntities() {
	b.members = b.members[:0]
	if b.index != nil {
		b.index.Clear()
	}
}

// Entities returns the members in join order. The slice must not be modified.
func (b *SystemBase) Entities() []EntityId { return b.members }

// EntityCount returns the number of members.
func (b *SystemBase) EntityCount() int { return len(b.members) }

// EraseDeadEntities drops members whose entity is no longer alive and
// returns how many were dropped.
func (b *SystemBase) EraseDeadEntities(table *EntityTable) int {
	kept := b.members[:0]
	for _, id := range b.members {
		if table.IsAlive(id) {
			kept = append(kept, id)
			continue
		}
		b.index.Del(id)
	}
	erased := len(b.members) - len(kept)
	b.members = kept
	if erased > 0 {
		for i, id := range b.members {
			b.index.Put(id, i)
		}
	}
	return erased
}

// runSystem executes one system for one frame.
func runSystem(frame *UpdateFrame, sys System) {
	if ex, ok := sys.(Executor); ok {
		ex.Execute(frame)
		return
	}

	b := sys.Base()
	if len(b.members) == 0 {
		return
	}
	b.EraseDeadEntities(frame.World.Entities)

	updater, ok := sys.(EntityUpdater)
	if !ok {
		return
	}

	// Members may join or leave during the loop; iterate a snapshot.
	b.scratch = append(b.scratch[:0], b.members...)
	for _, id := range b.scratch {
		updater.UpdateEntity(frame, frame.World.Entities.Get(id))
	}
}

// systemType is the concrete type sys is registered under.
func systemType(sys System) reflect.Type {
	t := reflect.TypeOf(sys)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
