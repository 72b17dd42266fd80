package scene_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/scene"
)

type Position struct {
	X, Y float32
}

type Waypoint struct {
	Name  string
	Order int
}

type Hook struct {
	Fn func()
}

type PatrolSystem struct{ ecs.SystemBase }

func (*PatrolSystem) UpdateEntity(*ecs.UpdateFrame, *ecs.Entity) {}

func newSceneWorld() *ecs.World {
	w := ecs.NewWorld(ecs.WorldConfig{EntityCapacity: 4}, nil)
	ecs.Register[Position](w)
	ecs.Register[Waypoint](w)
	ecs.Register[Hook](w)
	w.Systems.Register(&PatrolSystem{ecs.NewSystemBase(ecs.CategoryMovement, 0)})
	return w
}

func populate(w *ecs.World) (guard, camera ecs.EntityId) {
	guard = w.Spawn("Guard",
		Position{X: 1, Y: 2},
		Waypoint{Name: "gate", Order: 2},
		Waypoint{Name: "tower", Order: 1},
		Waypoint{Name: "wall", Order: 3},
	)
	w.JoinSystem(guard, "PatrolSystem")
	camera, _ = w.SpawnUnique("Camera", Position{X: 50})
	return guard, camera
}

func TestRoundTrip(t *testing.T) {
	src := newSceneWorld()
	guard, camera := populate(src)

	data, err := scene.Marshal(src, scene.Options{})
	require.NoError(t, err)

	dst := newSceneWorld()
	ids, err := scene.Unmarshal(dst, data)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	g := ids[guard]
	assert.Equal(t, "Guard", dst.Get(g).DataType)
	assert.Equal(t, []Position{{X: 1, Y: 2}}, ecs.Components[Position](dst, g))
	assert.Equal(t, []Waypoint{{"gate", 2}, {"tower", 1}, {"wall", 3}}, ecs.Components[Waypoint](dst, g))
	assert.Equal(t, []string{"PatrolSystem"}, dst.Systems.SystemsOf(g))

	c, ok := dst.Entities.Unique("Camera")
	require.True(t, ok)
	assert.Equal(t, ids[camera], c)
	assert.Equal(t, []Position{{X: 50}}, ecs.Components[Position](dst, c))

	again, err := scene.Marshal(dst, scene.Options{})
	require.NoError(t, err)
	assert.YAMLEq(t, string(data), string(again))
}

func TestSave(t *testing.T) {
	t.Run("skips pending destroys and filtered entries", func(t *testing.T) {
		w := newSceneWorld()
		guard, _ := populate(w)
		gone := w.Spawn("Rock", Position{})
		w.Destroy(gone)

		doc, err := scene.Save(w, scene.Options{
			SkipDataTypes:  []string{"Camera"},
			SkipComponents: []string{"scene_test.Position"},
		})
		require.NoError(t, err)
		require.Len(t, doc.Entities, 1)
		assert.Equal(t, guard, doc.Entities[0].Id)
		assert.Len(t, doc.Entities[0].Components, 1)
		assert.Len(t, doc.Entities[0].Components["scene_test.Waypoint"], 3)
	})

	t.Run("unencodable components fail", func(t *testing.T) {
		w := newSceneWorld()
		w.Spawn("Trigger", Hook{Fn: func() {}})

		_, err := scene.Save(w, scene.Options{})
		assert.ErrorContains(t, err, "scene_test.Hook")

		_, err = scene.Save(w, scene.Options{SkipComponents: []string{"scene_test.Hook"}})
		assert.NoError(t, err)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("unknown component", func(t *testing.T) {
		w := newSceneWorld()
		_, err := scene.Unmarshal(w, []byte(`
entities:
  - id: 3
    type: Ghost
    components:
      scene_test.Missing:
        - {}
`))
		assert.ErrorContains(t, err, `"scene_test.Missing" is not registered`)
	})

	t.Run("duplicate unique", func(t *testing.T) {
		w := newSceneWorld()
		w.SpawnUnique("Camera")
		_, err := scene.Unmarshal(w, []byte(`
entities:
  - id: 0
    type: Camera
    unique: true
`))
		assert.ErrorContains(t, err, "unique entity Camera already exists")
	})

	t.Run("failed loads are rolled back", func(t *testing.T) {
		w := newSceneWorld()
		camera, _ := w.SpawnUnique("Camera")
		ids, err := scene.Unmarshal(w, []byte(`
entities:
  - id: 0
    type: Guard
  - id: 1
    type: Camera
    unique: true
`))
		require.Error(t, err)
		assert.Nil(t, ids)

		var live []string
		for e := range w.Entities.All() {
			if !e.IsPendingDestroy() {
				live = append(live, e.DataType)
			}
		}
		assert.Equal(t, []string{"Camera"}, live)
		got, ok := w.Entities.Unique("Camera")
		require.True(t, ok)
		assert.Equal(t, camera, got)
	})

	t.Run("unknown systems are skipped", func(t *testing.T) {
		w := newSceneWorld()
		ids, err := scene.Unmarshal(w, []byte(`
entities:
  - id: 7
    type: Guard
    systems: [PatrolSystem, FlySystem]
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"PatrolSystem"}, w.Systems.SystemsOf(ids[7]))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := scene.Unmarshal(newSceneWorld(), []byte("entities: ["))
		assert.Error(t, err)
	})
}

func TestReload(t *testing.T) {
	w := newSceneWorld()
	populate(w)
	data, err := scene.Marshal(w, scene.Options{})
	require.NoError(t, err)

	s := ecs.NewScheduler(w)
	cmds := s.Commands()
	for e := range w.Entities.All() {
		cmds.Destroy(e.Id)
	}
	var reloadErr error
	cmds.Defer(func() {
		_, reloadErr = scene.Unmarshal(w, data)
	})
	s.Once(0)
	require.NoError(t, reloadErr)

	s.Once(0)
	assert.Equal(t, 2, w.Entities.Count())
	c, ok := w.Entities.Unique("Camera")
	require.True(t, ok)
	assert.Equal(t, []Position{{X: 50}}, ecs.Components[Position](w, c))

	patrol := w.Systems.Get("PatrolSystem").Base().Entities()
	require.Len(t, patrol, 1)
	assert.Len(t, ecs.Components[Waypoint](w, patrol[0]), 3)
}

func TestFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	src := newSceneWorld()
	guard, _ := populate(src)
	require.NoError(t, scene.WriteFile(path, src, scene.Options{}))

	dst := newSceneWorld()
	ids, err := scene.ReadFile(path, dst)
	require.NoError(t, err)
	assert.Len(t, ecs.Components[Waypoint](dst, ids[guard]), 3)

	_, err = scene.ReadFile(filepath.Join(t.TempDir(), "missing.yaml"), dst)
	assert.ErrorContains(t, err, "read scene")
}
