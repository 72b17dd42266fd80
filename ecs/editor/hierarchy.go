package editor

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
)

// Hierarchy lists entities with paging, filtering and sorting, and owns the
// editor selection.
type Hierarchy struct {
	rows               []EntityRow
	filterText         string
	newDataType        string
	newUnique          bool
	maxEntitiesPerPage int
	currentPage        int
	sortColumn         int
	sortAscending      bool
}

func NewHierarchy(maxEntitiesPerPage int) *Hierarchy {
	return &Hierarchy{
		maxEntitiesPerPage: maxEntitiesPerPage,
		sortAscending:      true,
		newDataType:        "Entity",
	}
}

func (h *Hierarchy) Render(e *Editor) {
	imgui.SetNextWindowPosV(imgui.NewVec2(20, 20), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 360), imgui.CondOnce)
	if !imgui.BeginV("Hierarchy", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.SetNextItemWidth(160)
	imgui.InputTextWithHint("##datatype", "Data type", &h.newDataType, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	imgui.Checkbox("Unique", &h.newUnique)
	imgui.SameLine()
	if imgui.Button("Create") && strings.TrimSpace(h.newDataType) != "" {
		e.Push(&CreateEntity{World: e.world, DataType: strings.TrimSpace(h.newDataType), Unique: h.newUnique})
	}
	if e.Selected().Valid() {
		imgui.SameLine()
		if imgui.Button("Delete") {
			e.Push(&DestroyEntities{World: e.world, Entities: e.SelectionSlice()})
		}
	}

	imgui.InputTextWithHint("##search", "Search...", &h.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		h.filterText = ""
		h.currentPage = 0
	}

	h.rows = EntityRows(e.world, h.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, -30), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Data Type")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			h.sortColumn = int(spec.ColumnIndex())
			h.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		SortEntityRows(h.rows, h.sortColumn, h.sortAscending)

		startIdx, endIdx := h.pageBounds(len(h.rows))
		for i := startIdx; i < endIdx; i++ {
			row := h.rows[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := row.UniqueId
			if row.PendingDestroy {
				label += " (destroyed)"
			}
			if imgui.SelectableBoolV(label, e.IsSelected(row.Id), imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				if imgui.CurrentIO().KeyCtrl() {
					e.ToggleSelection(row.Id)
				} else {
					e.Select(row.Id)
				}
			}

			imgui.TableNextColumn()
			if row.Unique {
				imgui.Text(row.DataType + " *")
			} else {
				imgui.Text(row.DataType)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.ComponentCount))
		}

		imgui.EndTable()
	}

	if len(h.rows) > h.maxEntitiesPerPage {
		totalPages := (len(h.rows) + h.maxEntitiesPerPage - 1) / h.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", h.currentPage+1, totalPages, len(h.rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && h.currentPage > 0 {
			h.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && h.currentPage < totalPages-1 {
			h.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(h.rows)))
	}

	imgui.End()
}

func (h *Hierarchy) pageBounds(n int) (int, int) {
	if h.maxEntitiesPerPage < 1 {
		return 0, n
	}
	startIdx := h.currentPage * h.maxEntitiesPerPage
	if startIdx >= n {
		h.currentPage = 0
		startIdx = 0
	}
	endIdx := min(startIdx+h.maxEntitiesPerPage, n)
	return startIdx, endIdx
}
