package editor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/editor"
)

func TestEntityRows(t *testing.T) {
	w := newEditorWorld()
	enemy := w.Spawn("Enemy", Position{X: 1}, Position{X: 2}, Stats{})
	ally := w.Spawn("Ally", Position{})
	camera, _ := w.SpawnUnique("Camera")
	w.JoinSystem(enemy, "moveSystem")
	w.Destroy(ally)

	rows := editor.EntityRows(w, "")
	require.Len(t, rows, 3)

	assert.Equal(t, editor.EntityRow{
		Id:             enemy,
		DataType:       "Enemy",
		UniqueId:       "Enemy0",
		ComponentTypes: []string{"editor_test.Position", "editor_test.Stats"},
		ComponentCount: 3,
		Systems:        []string{"moveSystem"},
	}, rows[0])
	assert.True(t, rows[1].PendingDestroy)
	assert.True(t, rows[2].Unique)
	assert.Equal(t, camera, rows[2].Id)

	t.Run("filter", func(t *testing.T) {
		ids := func(rows []editor.EntityRow) []ecs.EntityId {
			var out []ecs.EntityId
			for _, r := range rows {
				out = append(out, r.Id)
			}
			return out
		}
		assert.Equal(t, []ecs.EntityId{enemy}, ids(editor.EntityRows(w, "stats")))
		assert.Equal(t, []ecs.EntityId{enemy}, ids(editor.EntityRows(w, "MOVE")))
		assert.Equal(t, []ecs.EntityId{camera}, ids(editor.EntityRows(w, "camera")))
		assert.Empty(t, editor.EntityRows(w, "nothing"))
	})

	t.Run("sort", func(t *testing.T) {
		rows := editor.EntityRows(w, "")
		editor.SortEntityRows(rows, editor.ColumnCount, false)
		assert.Equal(t, enemy, rows[0].Id)
		assert.Equal(t, camera, rows[2].Id)

		editor.SortEntityRows(rows, editor.ColumnDataType, true)
		assert.Equal(t, []string{"Ally", "Camera", "Enemy"}, []string{rows[0].DataType, rows[1].DataType, rows[2].DataType})

		editor.SortEntityRows(rows, editor.ColumnId, true)
		assert.Equal(t, enemy, rows[0].Id)
	})
}

func TestSystemRows(t *testing.T) {
	w := newEditorWorld()
	w.Systems.Get("steerSystem").Base().SetActive(false)

	rows := editor.SystemRows(w.Systems, ecs.CategoryMovement, "")
	require.Len(t, rows, 3)
	assert.Equal(t, "moveSystem", rows[0].Name)
	assert.Equal(t, 10, rows[0].Priority)
	assert.Equal(t, ecs.CategoryMovement, rows[0].Category)
	assert.False(t, rows[1].Active)
	assert.Same(t, w.Systems.Get("dragSystem"), rows[2].System)

	rows = editor.SystemRows(w.Systems, ecs.CategoryMovement, "DRAG")
	require.Len(t, rows, 1)
	assert.Equal(t, "dragSystem", rows[0].Name)

	assert.Empty(t, editor.SystemRows(w.Systems, ecs.CategoryInput, ""))
}

func TestSortSystemStats(t *testing.T) {
	stats := []ecs.SystemStats{
		{Name: "b", Priority: 2, AvgDuration: time.Millisecond},
		{Name: "a", Priority: 3, AvgDuration: 3 * time.Millisecond},
		{Name: "c", Priority: 1, AvgDuration: 2 * time.Millisecond},
	}
	names := func() []string {
		return []string{stats[0].Name, stats[1].Name, stats[2].Name}
	}

	editor.SortSystemStats(stats, 0, true)
	assert.Equal(t, []string{"a", "b", "c"}, names())
	editor.SortSystemStats(stats, 2, true)
	assert.Equal(t, []string{"c", "b", "a"}, names())
	editor.SortSystemStats(stats, 6, false)
	assert.Equal(t, []string{"a", "c", "b"}, names())
}
