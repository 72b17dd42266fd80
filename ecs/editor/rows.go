package editor

import (
	"slices"
	"strconv"
	"strings"

	"github.com/plus3/kiln/ecs"
)

// EntityRow is one line of the hierarchy window.
type EntityRow struct {
	Id             ecs.EntityId
	DataType       string
	UniqueId       string
	Unique         bool
	PendingDestroy bool
	ComponentTypes []string
	ComponentCount int
	Systems        []string
}

// EntityRows lists the live entities of the world in id order. A non-empty
// filter keeps rows whose id, data type, component or system names contain
// it, case-insensitively.
func EntityRows(w *ecs.World, filter string) []EntityRow {
	filter = strings.ToLower(filter)
	rows := make([]EntityRow, 0, w.Entities.Count())

	for e := range w.Entities.All() {
		row := EntityRow{
			Id:             e.Id,
			DataType:       e.DataType,
			UniqueId:       e.UniqueId(),
			Unique:         e.IsUnique(),
			PendingDestroy: e.IsPendingDestroy(),
			Systems:        w.Systems.SystemsOf(e.Id),
		}
		for a := range w.Components.Arrays() {
			if n := a.Len(e.Id); n > 0 {
				row.ComponentTypes = append(row.ComponentTypes, a.TypeName())
				row.ComponentCount += n
			}
		}
		if filter != "" && !row.matches(filter) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *EntityRow) matches(filter string) bool {
	if strings.Contains(strconv.Itoa(int(r.Id)), filter) ||
		strings.Contains(strings.ToLower(r.UniqueId), filter) {
		return true
	}
	for _, name := range r.ComponentTypes {
		if strings.Contains(strings.ToLower(name), filter) {
			return true
		}
	}
	for _, name := range r.Systems {
		if strings.Contains(strings.ToLower(name), filter) {
			return true
		}
	}
	return false
}

// Sort columns of the hierarchy table.
const (
	ColumnId = iota
	ColumnDataType
	ColumnComponents
	ColumnCount
)

// SortEntityRows sorts rows by a hierarchy column. Ties are broken by id.
func SortEntityRows(rows []EntityRow, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b EntityRow) int {
		var c int
		switch column {
		case ColumnDataType:
			c = strings.Compare(a.DataType, b.DataType)
		case ColumnComponents:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case ColumnCount:
			c = a.ComponentCount - b.ComponentCount
		}
		if c == 0 {
			c = int(a.Id) - int(b.Id)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

// SystemRow is one line of the system inspector.
type SystemRow struct {
	System      ecs.System
	Name        string
	Category    ecs.Category
	Priority    int
	Active      bool
	EntityCount int
	Stats       ecs.SystemStats
}

// SystemRows lists the systems of a category in run order. A non-empty
// search keeps systems whose name contains it, case-insensitively.
func SystemRows(reg *ecs.SystemRegistry, c ecs.Category, search string) []SystemRow {
	search = strings.ToLower(search)
	order := reg.PriorityOrder(c)
	rows := make([]SystemRow, 0, len(order))
	for _, sys := range order {
		b := sys.Base()
		if search != "" && !strings.Contains(strings.ToLower(b.Name()), search) {
			continue
		}
		rows = append(rows, SystemRow{
			System:      sys,
			Name:        b.Name(),
			Category:    b.Category(),
			Priority:    b.Priority(),
			Active:      b.Active(),
			EntityCount: b.EntityCount(),
			Stats:       b.Stats(),
		})
	}
	return rows
}
