// Package scene holds the live level scene: a donburi world plus the
// components level objects are spawned with.
package scene

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Part is one component value to attach to a new entity.
type Part struct {
	typ donburi.IComponentType
	set func(*donburi.Entry)
}

func With[T any](ct *donburi.ComponentType[T], v T) Part {
	return Part{typ: ct, set: func(e *donburi.Entry) { ct.Set(e, &v) }}
}

// Commands creates entities. The level spawn routine only needs this.
type Commands interface {
	Spawn(parts ...Part) donburi.Entity
}

type LevelSpawnedEvent struct {
	Level    string
	Entities int
}

var LevelSpawned = events.NewEventType[LevelSpawnedEvent]()

type World struct {
	donburi.World
}

func NewWorld() *World {
	return &World{World: donburi.NewWorld()}
}

func (w *World) Spawn(parts ...Part) donburi.Entity {
	types := make([]donburi.IComponentType, 0, len(parts))
	for _, p := range parts {
		types = append(types, p.typ)
	}
	e := w.World.Create(types...)
	entry := w.World.Entry(e)
	for _, p := range parts {
		if p.set != nil {
			p.set(entry)
		}
	}
	return e
}

// NotifySpawned queues a LevelSpawned event. Subscribers run on ProcessEvents.
func (w *World) NotifySpawned(ev LevelSpawnedEvent) {
	LevelSpawned.Publish(w.World, ev)
}

func (w *World) ProcessEvents() {
	events.ProcessAllEvents(w.World)
}

// DespawnLevel removes every entity tagged as a level object and returns
// how many were removed.
func DespawnLevel(w donburi.World) int {
	return DespawnLevelKeeping(w)
}

// DespawnLevelKeeping removes level objects that carry none of keep.
func DespawnLevelKeeping(w donburi.World, keep ...donburi.IComponentType) int {
	var doomed []donburi.Entity
	donburi.NewQuery(filter.Contains(LevelObject)).Each(w, func(e *donburi.Entry) {
		for _, ct := range keep {
			if e.HasComponent(ct) {
				return
			}
		}
		doomed = append(doomed, e.Entity())
	})
	for _, e := range doomed {
		w.Remove(e)
	}
	return len(doomed)
}

func Count(w donburi.World, ct donburi.IComponentType) int {
	return donburi.NewQuery(filter.Contains(ct)).Count(w)
}

// Each visits every entity carrying ct.
func Each(w donburi.World, ct donburi.IComponentType, fn func(*donburi.Entry)) {
	donburi.NewQuery(filter.Contains(ct)).Each(w, fn)
}

// Census counts the entities carrying each named component.
func Census(w donburi.World) map[string]int {
	out := make(map[string]int, len(Named))
	for _, n := range Named {
		out[n.Name] = Count(w, n.Type)
	}
	return out
}
