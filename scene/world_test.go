package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"

	"github.com/milk9111/levelkit/bind"
)

func TestSpawnSetsComponents(t *testing.T) {
	w := NewWorld()
	tr := bind.Identity().Translated(mgl64.Vec3{1, 2, 3})

	e := w.Spawn(
		With(LevelObject, LevelObjectTag{}),
		With(Transform, tr),
		With(ColliderComponent, BoxCollider(1, 2, 3)),
	)
	require.True(t, w.Valid(e))

	entry := w.Entry(e)
	assert.Equal(t, tr, *Transform.Get(entry))
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, ColliderComponent.Get(entry).Size)
	assert.True(t, entry.HasComponent(LevelObject))
	assert.False(t, entry.HasComponent(Sensor))
}

func TestDespawnLevel(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 3; i++ {
		w.Spawn(With(LevelObject, LevelObjectTag{}), With(Transform, bind.Identity()))
	}
	keep := w.Spawn(With(Transform, bind.Identity()))

	assert.Equal(t, 3, Count(w, LevelObject))
	assert.Equal(t, 3, DespawnLevel(w))
	assert.Equal(t, 0, Count(w, LevelObject))
	assert.True(t, w.Valid(keep))
	assert.Equal(t, 1, Census(w)["transform"])
}

func TestDespawnLevelKeeping(t *testing.T) {
	w := NewWorld()
	w.Spawn(With(LevelObject, LevelObjectTag{}), With(Transform, bind.Identity()))
	prop := w.Spawn(With(LevelObject, LevelObjectTag{}), With(ButtonPresser, ButtonPresserTag{}))

	assert.Equal(t, 1, DespawnLevelKeeping(w, ButtonPresser))
	assert.True(t, w.Valid(prop))
	assert.Equal(t, 1, DespawnLevel(w))
	assert.False(t, w.Valid(prop))
}

func TestLevelSpawnedEvent(t *testing.T) {
	w := NewWorld()
	var got []LevelSpawnedEvent
	LevelSpawned.Subscribe(w.World, func(_ donburi.World, ev LevelSpawnedEvent) {
		got = append(got, ev)
	})

	w.NotifySpawned(LevelSpawnedEvent{Level: "intro", Entities: 4})
	assert.Empty(t, got)
	w.ProcessEvents()
	require.Len(t, got, 1)
	assert.Equal(t, "intro", got[0].Level)
}

func TestTextAlignNames(t *testing.T) {
	names := make([]string, len(TextAligns))
	for i, a := range TextAligns {
		names[i] = a.String()
	}
	assert.Equal(t, []string{"left", "center", "right"}, names)
}
