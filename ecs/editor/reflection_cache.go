package editor

import (
	"fmt"
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component struct. Type is
// the pointed-to type for pointer fields.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
	IsSlice   bool
	IsMap     bool
}

// ReflectionCache memoizes FieldInfo lists per type.
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

// Fields returns the exported fields of a struct type. Other kinds have no
// fields.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}
	cached, _ := rc.fields.LoadOrStore(t, exportedFields(t))
	return cached.([]FieldInfo)
}

func exportedFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var out []FieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		info := FieldInfo{Name: sf.Name, Type: sf.Type, Index: i}
		if sf.Type.Kind() == reflect.Pointer {
			info.IsPointer = true
			info.Type = sf.Type.Elem()
		}
		switch info.Type.Kind() {
		case reflect.Struct:
			info.IsStruct = true
		case reflect.Slice:
			info.IsSlice = true
		case reflect.Map:
			info.IsMap = true
		}
		out = append(out, info)
	}
	return out
}

var globalReflectionCache = NewReflectionCache()

// fieldByPath walks nested struct fields by index, following non-nil
// pointers. It returns the zero Value when the path does not resolve.
func fieldByPath(v reflect.Value, path []int) reflect.Value {
	for _, i := range path {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct || i < 0 || i >= v.NumField() {
			return reflect.Value{}
		}
		v = v.Field(i)
	}
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// setValue assigns value to dst, converting between numeric kinds the way
// the inspector widgets need (int32 and float32 editors).
func setValue(dst reflect.Value, value any) error {
	if !dst.IsValid() || !dst.CanSet() {
		return fmt.Errorf("field is not settable")
	}
	src := reflect.ValueOf(value)
	if !src.IsValid() {
		dst.SetZero()
		return nil
	}
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return nil
	}
	if src.Type().ConvertibleTo(dst.Type()) && sameFamily(src.Kind(), dst.Kind()) {
		dst.Set(src.Convert(dst.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %s to field of type %s", src.Type(), dst.Type())
}

func sameFamily(a, b reflect.Kind) bool {
	return kindFamily(a) == kindFamily(b) && kindFamily(a) != 0
}

func kindFamily(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 1
	case reflect.Float32, reflect.Float64:
		return 2
	case reflect.String:
		return 3
	case reflect.Bool:
		return 4
	}
	return 0
}
