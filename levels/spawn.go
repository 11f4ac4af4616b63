package levels

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/bind"
	"github.com/milk9111/levelkit/scene"
)

// LevelEndPreload names the scene shown when the finish point is reached.
const LevelEndPreload = "level-end"

// DefaultFontFamily is used when neither a text's font nor the builtin
// text font has a registered family.
const DefaultFontFamily = "Go"

const planeThickness = 0.2

type SpawnArgs struct {
	Commands     scene.Commands
	Preloads     *assets.Preloads
	Fonts        *assets.FontNames
	SpawnDynamic bool
	Logger       *slog.Logger
}

// SpawnNotifier is implemented by command sinks that want to hear about a
// completed spawn, such as *scene.World.
type SpawnNotifier interface {
	NotifySpawned(scene.LevelSpawnedEvent)
}

type spawner struct {
	SpawnArgs
	count int
}

func (s *spawner) spawn(parts ...scene.Part) donburi.Entity {
	s.count++
	parts = append(parts, scene.With(scene.LevelObject, scene.LevelObjectTag{}))
	return s.Commands.Spawn(parts...)
}

// Spawn creates the entities for every object in the level and returns how
// many were created. Dynamic objects are only spawned when SpawnDynamic is
// set, since a checkpoint restart keeps the ones already in the world.
func (l *Level) Spawn(args SpawnArgs) int {
	if args.Logger == nil {
		args.Logger = slog.Default()
	}
	s := &spawner{SpawnArgs: args}

	s.spawn(
		scene.With(scene.Transform, l.SpawnPoint),
		scene.With(scene.PlayerSpawn, scene.PlayerSpawnTag{}),
	)
	s.spawnFinish(l.Finish)

	if l.DefaultMusic != nil {
		s.spawn(scene.With(scene.Music, scene.BackgroundMusic{Audio: l.DefaultMusic.Audio, Loop: true}))
	}
	for _, m := range l.TriggeredMusic {
		s.spawnTriggeredMusic(m)
	}
	for _, p := range l.Planes {
		s.spawnPlane(p)
	}
	for _, c := range l.Cuboids {
		s.spawnCuboid(c)
	}
	for _, t := range l.Texts {
		s.spawnText(t)
	}

	buttons := make(map[string]donburi.Entity, len(l.Buttons))
	for _, b := range l.Buttons {
		buttons[b.Name] = s.spawn(
			scene.With(scene.Transform, b.Transform),
			scene.With(scene.ButtonComponent, scene.Button{Name: b.Name}),
		)
	}
	for _, d := range l.ButtonDoors {
		s.spawnButtonDoor(d, buttons)
	}

	if args.SpawnDynamic {
		for _, d := range l.DynamicObjects {
			s.spawnDynamic(d)
		}
	}

	if n, ok := args.Commands.(SpawnNotifier); ok {
		n.NotifySpawned(scene.LevelSpawnedEvent{Level: l.Name, Entities: s.count})
	}
	args.Logger.Debug("spawned level", "level", l.Name, "entities", s.count)
	return s.count
}

func (s *spawner) spawnFinish(tr bind.Transform) {
	var end assets.Handle
	if s.Preloads != nil {
		if h, ok := s.Preloads.TryHandle(assets.KindScene, LevelEndPreload); ok {
			end = h
		} else {
			s.Logger.Warn("level end scene is not loaded", "preload", LevelEndPreload)
		}
	}
	s.spawn(
		scene.With(scene.Transform, tr),
		scene.With(scene.FinishPoint, scene.Finish{Scene: end}),
	)
}

func (s *spawner) spawnTriggeredMusic(m TriggeredMusic) {
	s.spawn(
		scene.With(scene.Transform, m.Transform),
		scene.With(scene.MusicZone, scene.MusicTrigger{Audio: m.Audio}),
		scene.With(scene.Sensor, scene.SensorTag{}),
		scene.With(scene.ColliderComponent, scene.BoxCollider(m.Size.Elem())),
	)
}

func (s *spawner) spawnPlane(p Plane) {
	box := scene.BoxCollider(p.Width, planeThickness, p.Length)
	switch p.Type {
	case PlaneDeath:
		s.spawn(
			scene.With(scene.Transform, p.Transform.Translated(mgl64.Vec3{0, -planeThickness / 2, 0})),
			scene.With(scene.Body, scene.RigidBody{Kind: scene.BodyStatic}),
			scene.With(scene.Sensor, scene.SensorTag{}),
			scene.With(scene.ColliderComponent, box),
			scene.With(scene.DeathTrigger, scene.DeathTriggerTag{}),
		)
	default:
		plane := s.spawn(
			scene.With(scene.Transform, p.Transform),
			scene.With(scene.MeshComponent, scene.Mesh{Shape: scene.MeshPlane, Size: mgl64.Vec3{p.Width / 2, 0, p.Length / 2}}),
			scene.With(scene.Material, p.Material),
		)
		collider := bind.Identity()
		collider.Translation = mgl64.Vec3{0, -planeThickness / 2, 0}
		s.spawn(
			scene.With(scene.Transform, collider),
			scene.With(scene.ParentComponent, scene.Parent{Entity: plane}),
			scene.With(scene.Body, scene.RigidBody{Kind: scene.BodyStatic}),
			scene.With(scene.ColliderComponent, box),
		)
	}
}

func (s *spawner) spawnCuboid(c Cuboid) {
	s.spawn(
		scene.With(scene.Transform, c.Transform),
		scene.With(scene.MeshComponent, scene.Mesh{Shape: scene.MeshCuboid, Size: c.Size}),
		scene.With(scene.Material, c.Material),
		scene.With(scene.Body, scene.RigidBody{Kind: scene.BodyStatic}),
		scene.With(scene.ColliderComponent, scene.BoxCollider(c.Size.Elem())),
	)
}

func (s *spawner) spawnText(t Text) {
	s.spawn(
		scene.With(scene.Transform, t.Transform),
		scene.With(scene.Text, scene.Text3D{
			Text:       t.Text,
			Font:       s.fontFamily(t.Font),
			Size:       t.Pt,
			WorldScale: t.Pt / 256,
			Align:      t.Align,
		}),
		scene.With(scene.Material, t.Material),
	)
}

func (s *spawner) fontFamily(h assets.Handle) string {
	if s.Fonts != nil {
		if name, ok := s.Fonts.Name(h); ok {
			return name
		}
		s.Logger.Warn("font has not loaded yet, using default", "font", h.String())
		if name, ok := s.Fonts.Name(defaultTextFont()); ok {
			return name
		}
	}
	return DefaultFontFamily
}

func (s *spawner) spawnButtonDoor(d ButtonDoor, buttons map[string]donburi.Entity) {
	parts := []scene.Part{
		scene.With(scene.Transform, d.Default),
		scene.With(scene.Door, scene.ButtonDoor{Default: d.Default, Open: d.Open}),
		scene.With(scene.MeshComponent, scene.Mesh{Shape: scene.MeshCuboid, Size: d.Size}),
		scene.With(scene.Material, d.Material),
		scene.With(scene.Body, scene.RigidBody{Kind: scene.BodyKinematic}),
		scene.With(scene.ColliderComponent, scene.BoxCollider(d.Size.Elem())),
	}
	if button, ok := buttons[d.Name]; ok {
		parts = append(parts, scene.With(scene.Controlled, scene.ControlledBy{Button: button}))
	} else {
		s.Logger.Warn("door has no matching button", "door", d.Name)
	}
	s.spawn(parts...)
}

func (s *spawner) spawnDynamic(d DynamicObject) {
	s.spawn(
		scene.With(scene.Transform, d.Transform),
		scene.With(scene.MeshComponent, d.Type.Mesh(d.Size)),
		scene.With(scene.Material, d.Material),
		scene.With(scene.Body, scene.RigidBody{Kind: scene.BodyDynamic}),
		scene.With(scene.ColliderComponent, d.Type.Collider(d.Size)),
		scene.With(scene.ButtonPresser, scene.ButtonPresserTag{}),
	)
}
