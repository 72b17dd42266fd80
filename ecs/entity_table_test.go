package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kiln/ecs"
)

func TestEntityTable(t *testing.T) {
	t.Run("register hands out ids from zero", func(t *testing.T) {
		table := ecs.NewEntityTable(4, nil)

		for want := ecs.EntityId(0); want < 4; want++ {
			assert.Equal(t, want, table.Register("Enemy"))
		}
		assert.Equal(t, 4, table.Count())
		assert.Equal(t, 4, table.Capacity())

		e := table.Get(2)
		require.NotNil(t, e)
		assert.True(t, e.IsAlive())
		assert.Equal(t, "Enemy", e.DataType)
		assert.Equal(t, "Enemy2", e.UniqueId())
	})

	t.Run("capacity below one is clamped", func(t *testing.T) {
		table := ecs.NewEntityTable(0, nil)
		assert.Equal(t, 1, table.Capacity())
	})

	t.Run("get out of range", func(t *testing.T) {
		table := ecs.NewEntityTable(2, nil)
		assert.Nil(t, table.Get(-1))
		assert.Nil(t, table.Get(2))
		assert.False(t, table.IsAlive(ecs.InvalidEntity))
	})

	t.Run("growth doubles and notifies", func(t *testing.T) {
		table := ecs.NewEntityTable(2, nil)
		var grown []int
		table.OnGrow(func(capacity int) { grown = append(grown, capacity) })

		for range 5 {
			table.Register("Bullet")
		}

		assert.Equal(t, []int{4, 8}, grown)
		assert.Equal(t, 8, table.Capacity())
		assert.Equal(t, ecs.EntityId(5), table.Register("Bullet"))
	})

	t.Run("destroy is deferred until reclaim", func(t *testing.T) {
		table := ecs.NewEntityTable(4, nil)
		id := table.Register("Enemy")

		require.True(t, table.Destroy(id))
		assert.True(t, table.IsAlive(id))
		assert.True(t, table.Get(id).IsPendingDestroy())
		assert.Equal(t, 1, table.PendingCount())

		assert.Equal(t, 1, table.Reclaim())
		assert.False(t, table.IsAlive(id))
		assert.Equal(t, 0, table.PendingCount())
		assert.Equal(t, 0, table.Count())
		assert.Equal(t, ecs.InvalidEntity, table.Get(id).Id)
	})

	t.Run("double destroy is ignored", func(t *testing.T) {
		table := ecs.NewEntityTable(4, nil)
		id := table.Register("Enemy")

		assert.True(t, table.Destroy(id))
		assert.False(t, table.Destroy(id))
		assert.Equal(t, 1, table.PendingCount())

		table.Reclaim()
		assert.False(t, table.Destroy(id))

		// The freed id must be handed out exactly once.
		a := table.Register("A")
		b := table.Register("B")
		assert.NotEqual(t, a, b)
	})

	t.Run("reclaimed ids are reused last in first out", func(t *testing.T) {
		table := ecs.NewEntityTable(8, nil)
		ids := make([]ecs.EntityId, 4)
		for i := range ids {
			ids[i] = table.Register("Enemy")
		}

		table.Destroy(ids[1])
		table.Destroy(ids[3])
		var order []ecs.EntityId
		table.OnReclaim(func(id ecs.EntityId) { order = append(order, id) })
		table.Reclaim()

		assert.Equal(t, []ecs.EntityId{1, 3}, order)
		assert.Equal(t, ids[3], table.Register("Ally"))
		assert.Equal(t, ids[1], table.Register("Ally"))
	})

	t.Run("live ids stay unique under churn", func(t *testing.T) {
		table := ecs.NewEntityTable(2, nil)
		live := map[ecs.EntityId]bool{}

		for round := range 20 {
			for range 3 {
				id := table.Register("Churn")
				require.False(t, live[id], "id %d handed out twice", id)
				live[id] = true
			}
			n := 0
			for id := range live {
				if n == 2 || (round%2 == 0 && n == 1) {
					break
				}
				table.Destroy(id)
				n++
			}
			table.Reclaim()
			for id := range live {
				if !table.IsAlive(id) {
					delete(live, id)
				}
			}
		}
		assert.Equal(t, len(live), table.Count())
	})

	t.Run("unique entities", func(t *testing.T) {
		table := ecs.NewEntityTable(4, nil)

		cam, created := table.RegisterUnique("Camera")
		require.True(t, created)
		assert.True(t, table.Get(cam).IsUnique())

		again, created := table.RegisterUnique("Camera")
		assert.False(t, created)
		assert.Equal(t, cam, again)

		got, ok := table.Unique("Camera")
		assert.True(t, ok)
		assert.Equal(t, cam, got)

		table.Destroy(cam)
		table.Reclaim()
		_, ok = table.Unique("Camera")
		assert.False(t, ok)

		_, created = table.RegisterUnique("Camera")
		assert.True(t, created)
	})

	t.Run("pending unique frees its data type", func(t *testing.T) {
		table := ecs.NewEntityTable(4, nil)
		old, _ := table.RegisterUnique("Camera")
		table.Destroy(old)

		_, ok := table.Unique("Camera")
		assert.False(t, ok)

		cam, created := table.RegisterUnique("Camera")
		require.True(t, created)
		assert.NotEqual(t, old, cam)

		table.Reclaim()
		got, ok := table.Unique("Camera")
		require.True(t, ok)
		assert.Equal(t, cam, got)
	})

	t.Run("reused ids get a new generation", func(t *testing.T) {
		table := ecs.NewEntityTable(4, nil)
		first := table.Register("Enemy")
		gen := table.Get(first).Generation()

		table.Destroy(first)
		table.Reclaim()
		assert.Equal(t, gen, table.Get(first).Generation())

		reused := table.Register("Enemy")
		require.Equal(t, first, reused)
		assert.Equal(t, "Enemy0", table.Get(reused).UniqueId(), "same unique id as before")
		assert.Greater(t, table.Get(reused).Generation(), gen)
	})

	t.Run("all yields live entities", func(t *testing.T) {
		table := ecs.NewEntityTable(4, nil)
		table.Register("A")
		b := table.Register("B")
		table.Register("C")
		table.Destroy(b)
		table.Reclaim()

		var types []string
		for e := range table.All() {
			types = append(types, e.DataType)
		}
		assert.Equal(t, []string{"A", "C"}, types)
	})

	t.Run("reset restores initial capacity", func(t *testing.T) {
		table := ecs.NewEntityTable(2, nil)
		for range 5 {
			table.Register("A")
		}
		table.RegisterUnique("Camera")
		table.Reset()

		assert.Equal(t, 2, table.Capacity())
		assert.Equal(t, 0, table.Count())
		_, ok := table.Unique("Camera")
		assert.False(t, ok)
		assert.Equal(t, ecs.EntityId(0), table.Register("A"))
	})
}
