package editor

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kiln/ecs"
)

// SystemInspector shows every category with its systems in run order.
// Categories and systems can be switched off, priorities edited and
// systems moved within their category.
type SystemInspector struct {
	search string
}

func NewSystemInspector() *SystemInspector {
	return &SystemInspector{}
}

func (si *SystemInspector) Render(e *Editor) {
	imgui.SetNextWindowPosV(imgui.NewVec2(460, 20), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(400, 520), imgui.CondOnce)
	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	reg := e.world.Systems

	mode := "Play"
	if e.scheduler.EditMode() {
		mode = "Edit"
	}
	imgui.Text(fmt.Sprintf("Mode: %s", mode))
	imgui.SameLine()
	if imgui.Button("Toggle Mode") {
		e.scheduler.SetEditMode(!e.scheduler.EditMode())
	}
	imgui.SameLine()
	if imgui.Button("Undo") {
		e.history.Undo()
	}
	imgui.SameLine()
	if imgui.Button("Redo") {
		e.history.Redo()
	}

	imgui.Text("Categories:")
	for c := ecs.CategoryInitialize; c < ecs.CategoryCount; c++ {
		active := reg.CategoryActive(c)
		if imgui.Checkbox(c.String(), &active) {
			e.Push(&ChangeCategoryActivity{Registry: reg, Category: c, Active: active})
		}
		if c%3 != 2 && c != ecs.CategoryCount-1 {
			imgui.SameLine()
		}
	}

	imgui.Separator()
	imgui.InputTextWithHint("##systemsearch", "Search...", &si.search, imgui.InputTextFlagsNone, nil)
	joinTargets := e.SelectionSlice()

	for c := ecs.CategoryInitialize; c < ecs.CategoryCount; c++ {
		rows := SystemRows(reg, c, si.search)
		if len(rows) == 0 {
			continue
		}
		if !imgui.TreeNodeStr(fmt.Sprintf("%s (%d)###%s", c, len(rows), c)) {
			continue
		}
		for _, row := range rows {
			si.renderRow(e, row, joinTargets)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (si *SystemInspector) renderRow(e *Editor, row SystemRow, joinTargets []ecs.EntityId) {
	active := row.Active
	if imgui.Checkbox("##active"+row.Name, &active) {
		e.Push(&ChangeSystemActivity{System: row.System, Active: active})
	}

	imgui.SameLine()
	priority := int32(row.Priority)
	imgui.SetNextItemWidth(90)
	if imgui.InputInt("##priority"+row.Name, &priority) {
		e.Push(&ChangeSystemPriority{System: row.System, Priority: int(priority)})
	}

	imgui.SameLine()
	if imgui.Button("^##" + row.Name) {
		e.Push(&MoveSystem{Registry: e.world.Systems, System: row.System, Offset: -1})
	}
	imgui.SameLine()
	if imgui.Button("v##" + row.Name) {
		e.Push(&MoveSystem{Registry: e.world.Systems, System: row.System, Offset: 1})
	}

	imgui.SameLine()
	if !row.Active {
		imgui.TextColored(imgui.NewVec4(0.6, 0.6, 0.6, 1.0), row.Name)
	} else {
		imgui.Text(row.Name)
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("[%d] %.3f ms", row.EntityCount, ms(row.Stats.AvgDuration)))

	if len(joinTargets) > 0 {
		imgui.SameLine()
		if imgui.Button("Join##" + row.Name) {
			e.Push(&JoinSystems{World: e.world, Entities: joinTargets, Systems: []string{row.Name}})
		}
	}
}
