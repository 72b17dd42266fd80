// Package scene saves and loads the entities of a World as YAML.
//
// A scene lists every live entity with its data type, its components
// grouped by registered type name, and the systems it is a member of.
// Component order within a type is preserved exactly.
package scene

import (
	"fmt"
	"os"
	"reflect"
	"slices"

	"github.com/plus3/kiln/ecs"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Document struct {
	Entities []Entity `yaml:"entities"`
}

type Entity struct {
	Id         ecs.EntityId           `yaml:"id"`
	Type       string                 `yaml:"type"`
	Unique     bool                   `yaml:"unique,omitempty"`
	Components map[string][]yaml.Node `yaml:"components,omitempty"`
	Systems    []string               `yaml:"systems,omitempty"`
}

// Options filters what Save writes.
type Options struct {
	// SkipDataTypes lists data types whose entities are not saved, such as
	// editor entities.
	SkipDataTypes []string
	// SkipComponents lists component type names that are not saved.
	SkipComponents []string
}

// Save captures the live entities of w. Entities pending destruction are
// left out.
func Save(w *ecs.World, opts Options) (*Document, error) {
	doc := &Document{}
	for e := range w.Entities.All() {
		if e.IsPendingDestroy() || slices.Contains(opts.SkipDataTypes, e.DataType) {
			continue
		}
		entity := Entity{
			Id:      e.Id,
			Type:    e.DataType,
			Unique:  e.IsUnique(),
			Systems: w.Systems.SystemsOf(e.Id),
		}
		for a := range w.Components.Arrays() {
			n := a.Len(e.Id)
			if n == 0 || slices.Contains(opts.SkipComponents, a.TypeName()) {
				continue
			}
			nodes := make([]yaml.Node, n)
			for i := range n {
				if err := encodeNode(&nodes[i], a.GetAny(e.Id, i)); err != nil {
					return nil, fmt.Errorf("encode %s of %s: %w", a.TypeName(), e.UniqueId(), err)
				}
			}
			if entity.Components == nil {
				entity.Components = make(map[string][]yaml.Node)
			}
			entity.Components[a.TypeName()] = nodes
		}
		doc.Entities = append(doc.Entities, entity)
	}
	return doc, nil
}

// Load registers the entities of doc in w, in document order, and returns
// the id each saved id was given. Component values that refer to entity ids
// are not rewritten.
//
// Unknown component types and duplicate unique entities are errors; the
// entities registered before the failure are destroyed again. A unique
// entity pending destruction does not count as a duplicate. Unknown systems
// are logged and skipped.
func Load(w *ecs.World, doc *Document) (map[ecs.EntityId]ecs.EntityId, error) {
	ids, err := load(w, doc)
	if err != nil {
		for _, id := range ids {
			w.Destroy(id)
		}
		return nil, err
	}
	return ids, nil
}

func load(w *ecs.World, doc *Document) (map[ecs.EntityId]ecs.EntityId, error) {
	ids := make(map[ecs.EntityId]ecs.EntityId, len(doc.Entities))
	for _, entity := range doc.Entities {
		var id ecs.EntityId
		if entity.Unique {
			var created bool
			id, created = w.Entities.RegisterUnique(entity.Type)
			if !created {
				return ids, fmt.Errorf("unique entity %s already exists", entity.Type)
			}
		} else {
			id = w.Entities.Register(entity.Type)
		}
		ids[entity.Id] = id

		// map iteration order is random; types are independent so only
		// the order within each type matters
		for _, name := range sortedKeys(entity.Components) {
			a := w.Components.ArrayByName(name)
			if a == nil {
				return ids, fmt.Errorf("entity %d: component %q is not registered", entity.Id, name)
			}
			for i := range entity.Components[name] {
				value := reflect.New(a.GoType())
				if err := entity.Components[name][i].Decode(value.Interface()); err != nil {
					return ids, fmt.Errorf("entity %d: decode %s[%d]: %w", entity.Id, name, i, err)
				}
				if _, err := w.AddAny(id, value.Interface()); err != nil {
					return ids, fmt.Errorf("entity %d: %w", entity.Id, err)
				}
			}
		}

		for _, name := range entity.Systems {
			if !w.JoinSystem(id, name) {
				w.Log().Warn("scene: skipping unknown system",
					zap.String("system", name),
					zap.String("entity", w.Get(id).UniqueId()))
			}
		}
	}
	return ids, nil
}

// encodeNode reports unsupported kinds such as func fields as errors;
// the yaml encoder panics on them.
func encodeNode(n *yaml.Node, v any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return n.Encode(v)
}

func sortedKeys(m map[string][]yaml.Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Marshal encodes the live entities of w as YAML.
func Marshal(w *ecs.World, opts Options) ([]byte, error) {
	doc, err := Save(w, opts)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// Unmarshal decodes a YAML scene and loads it into w.
func Unmarshal(w *ecs.World, data []byte) (map[ecs.EntityId]ecs.EntityId, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return Load(w, &doc)
}

// WriteFile saves the live entities of w to path.
func WriteFile(path string, w *ecs.World, opts Options) error {
	data, err := Marshal(w, opts)
	if err != nil {
		return fmt.Errorf("save scene %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene %s: %w", path, err)
	}
	return nil
}

// ReadFile loads the scene at path into w.
func ReadFile(path string, w *ecs.World) (map[ecs.EntityId]ecs.EntityId, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	ids, err := Unmarshal(w, data)
	if err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return ids, nil
}
