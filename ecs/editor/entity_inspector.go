package editor

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kiln/ecs"
)

// EntityInspector edits the components and system memberships of the
// selected entity. Edits go through the editor history.
type EntityInspector struct {
	componentFilter string
}

func NewEntityInspector() *EntityInspector {
	return &EntityInspector{}
}

// fieldTarget identifies one component of one entity.
type fieldTarget struct {
	entity   ecs.EntityId
	typeName string
	index    int
}

func (ei *EntityInspector) Render(e *Editor) {
	imgui.SetNextWindowPosV(imgui.NewVec2(20, 400), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 300), imgui.CondOnce)
	if !imgui.BeginV("Entity Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	id := e.Selected()
	entity := e.world.Get(id)
	if !id.Valid() || entity == nil || !entity.IsAlive() {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", entity.UniqueId()))
	imgui.Text(fmt.Sprintf("Data Type: %s", entity.DataType))
	if entity.IsUnique() {
		imgui.Text("Unique")
	}
	if entity.IsPendingDestroy() {
		imgui.TextColored(imgui.NewVec4(1.0, 0.4, 0.4, 1.0), "Pending destroy")
	}
	if n := len(e.SelectionSlice()); n > 1 {
		imgui.Text(fmt.Sprintf("%d entities selected", n))
	}
	imgui.Separator()

	ei.renderSystems(e, id)
	imgui.Separator()
	ei.renderComponents(e, id)

	imgui.End()
}

func (ei *EntityInspector) renderSystems(e *Editor, id ecs.EntityId) {
	joined := e.world.Systems.SystemsOf(id)
	if imgui.TreeNodeStr(fmt.Sprintf("Systems (%d)###systems", len(joined))) {
		for _, name := range joined {
			imgui.BulletText(name)
			imgui.SameLine()
			if imgui.Button("Leave##" + name) {
				e.Push(&LeaveSystem{World: e.world, Entity: id, System: name})
			}
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Join System") {
		for sys := range e.world.Systems.All() {
			name := sys.Base().Name()
			if slices.Contains(joined, name) {
				continue
			}
			if imgui.SelectableBoolV(fmt.Sprintf("%s (%s)", name, sys.Base().Category()), false, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				e.Push(&JoinSystems{World: e.world, Entities: e.SelectionSlice(), Systems: []string{name}})
			}
		}
		imgui.TreePop()
	}
}

func (ei *EntityInspector) renderComponents(e *Editor, id ecs.EntityId) {
	if imgui.TreeNodeStr("Add Component") {
		imgui.InputTextWithHint("##componentfilter", "Filter...", &ei.componentFilter, imgui.InputTextFlagsNone, nil)
		for _, name := range e.world.Registry().Names() {
			if !matchesFilter(name, ei.componentFilter) {
				continue
			}
			if imgui.SelectableBoolV(name, false, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				e.Push(&AddComponent{World: e.world, Entities: e.SelectionSlice(), TypeName: name})
			}
		}
		imgui.TreePop()
	}

	for a := range e.world.Components.Arrays() {
		n := a.Len(id)
		for i := 0; i < n; i++ {
			target := fieldTarget{entity: id, typeName: a.TypeName(), index: i}
			label := a.TypeName()
			if n > 1 {
				label = fmt.Sprintf("%s[%d]", a.TypeName(), i)
			}
			if imgui.TreeNodeStr(label) {
				if imgui.Button(fmt.Sprintf("Remove##%s%d", a.TypeName(), i)) {
					e.Push(&RemoveComponent{World: e.world, Entity: id, TypeName: a.TypeName(), Index: i})
				}
				ei.renderComponent(e, target, a.GetAny(id, i))
				imgui.TreePop()
			}
		}
	}
}

func (ei *EntityInspector) renderComponent(e *Editor, target fieldTarget, component any) {
	if component == nil {
		return
	}
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		ei.renderField(e, target, "Value", val, nil)
		return
	}

	for _, field := range globalReflectionCache.Fields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ei.renderField(e, target, field.Name, fieldVal, []int{field.Index})
	}
}

func (ei *EntityInspector) renderField(e *Editor, target fieldTarget, name string, val reflect.Value, path []int) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	set := func(value any) {
		e.Push(&SetField{
			World:    e.world,
			Entity:   target.entity,
			TypeName: target.typeName,
			Index:    target.index,
			Path:     slices.Clone(path),
			Value:    value,
		})
	}
	widgetId := fmt.Sprintf("##%s%d%v", target.typeName, target.index, path)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(widgetId, &v) {
			set(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(widgetId, &v) && v >= 0 {
			set(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(widgetId, &v) {
			set(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+widgetId, &v) {
			set(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(widgetId, "", &v, imgui.InputTextFlagsNone, nil) {
			set(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name + widgetId) {
			for _, nf := range globalReflectionCache.Fields(val.Type()) {
				nestedVal := val.Field(nf.Index)
				if nf.IsPointer {
					if nestedVal.IsNil() {
						imgui.Text(fmt.Sprintf("%s: nil", nf.Name))
						continue
					}
					nestedVal = nestedVal.Elem()
				}
				ei.renderField(e, target, nf.Name, nestedVal, append(slices.Clip(path), nf.Index))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		}
	}
}
