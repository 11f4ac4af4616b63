package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/bind"
)

type (
	LevelObjectTag   struct{}
	PlayerSpawnTag   struct{}
	DeathTriggerTag  struct{}
	SensorTag        struct{}
	ButtonPresserTag struct{}
)

type MeshShape int

const (
	MeshPlane MeshShape = iota
	MeshCuboid
	MeshSphere
)

func (s MeshShape) String() string {
	switch s {
	case MeshCuboid:
		return "cuboid"
	case MeshSphere:
		return "sphere"
	default:
		return "plane"
	}
}

// Mesh is a procedural mesh. Planes store their half size in X and Z,
// cuboids their full dimensions and spheres their radius in X.
type Mesh struct {
	Shape MeshShape
	Size  mgl64.Vec3
}

type ColliderShape int

const (
	ColliderBox ColliderShape = iota
	ColliderSphere
)

// Collider is a physics shape. Boxes store their full dimensions.
type Collider struct {
	Shape  ColliderShape
	Size   mgl64.Vec3
	Radius float64
}

func BoxCollider(x, y, z float64) Collider {
	return Collider{Shape: ColliderBox, Size: mgl64.Vec3{x, y, z}}
}

func SphereCollider(r float64) Collider {
	return Collider{Shape: ColliderSphere, Radius: r}
}

type BodyKind int

const (
	BodyStatic BodyKind = iota
	BodyKinematic
	BodyDynamic
)

type RigidBody struct {
	Kind BodyKind
}

type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

var TextAligns = []TextAlign{AlignLeft, AlignCenter, AlignRight}

func (a TextAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

type Text3D struct {
	Text       string
	Font       string
	Size       float64
	WorldScale float64
	Align      TextAlign
}

type Button struct {
	Name string
}

type ButtonDoor struct {
	Default  bind.Transform
	Open     bind.Transform
	Openness float64
}

type ControlledBy struct {
	Button donburi.Entity
}

type BackgroundMusic struct {
	Audio assets.Handle
	Loop  bool
}

type MusicTrigger struct {
	Audio assets.Handle
}

type Finish struct {
	Scene assets.Handle
}

type Parent struct {
	Entity donburi.Entity
}

var (
	Transform         = donburi.NewComponentType[bind.Transform]()
	LevelObject       = donburi.NewComponentType[LevelObjectTag]()
	PlayerSpawn       = donburi.NewComponentType[PlayerSpawnTag]()
	FinishPoint       = donburi.NewComponentType[Finish]()
	MeshComponent     = donburi.NewComponentType[Mesh]()
	Material          = donburi.NewComponentType[assets.Handle]()
	ColliderComponent = donburi.NewComponentType[Collider]()
	Body              = donburi.NewComponentType[RigidBody]()
	Sensor            = donburi.NewComponentType[SensorTag]()
	DeathTrigger      = donburi.NewComponentType[DeathTriggerTag]()
	Text              = donburi.NewComponentType[Text3D]()
	ButtonComponent   = donburi.NewComponentType[Button]()
	Door              = donburi.NewComponentType[ButtonDoor]()
	Controlled        = donburi.NewComponentType[ControlledBy]()
	Music             = donburi.NewComponentType[BackgroundMusic]()
	MusicZone         = donburi.NewComponentType[MusicTrigger]()
	ButtonPresser     = donburi.NewComponentType[ButtonPresserTag]()
	ParentComponent   = donburi.NewComponentType[Parent]()
)

// Named lists the components reported by census tools.
var Named = []struct {
	Name string
	Type donburi.IComponentType
}{
	{"transform", Transform},
	{"level-object", LevelObject},
	{"player-spawn", PlayerSpawn},
	{"finish-point", FinishPoint},
	{"mesh", MeshComponent},
	{"material", Material},
	{"collider", ColliderComponent},
	{"rigid-body", Body},
	{"sensor", Sensor},
	{"death-trigger", DeathTrigger},
	{"text", Text},
	{"button", ButtonComponent},
	{"button-door", Door},
	{"controlled-by", Controlled},
	{"background-music", Music},
	{"music-trigger", MusicZone},
	{"button-presser", ButtonPresser},
	{"parent", ParentComponent},
}
