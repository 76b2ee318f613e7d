package physics

// Object layers of the game setup. The high byte selects the kind of
// object; for sensors, targets and hits the low byte carries flags.
const (
	LayerStatic        ObjectLayer = 0x0100
	LayerDynamic       ObjectLayer = 0x0200
	LayerBodyPlayer    ObjectLayer = 0x0300
	LayerBodyAlly      ObjectLayer = 0x0400
	LayerBodyEnemy     ObjectLayer = 0x0500
	LayerSensorStatic  ObjectLayer = 0x0600
	LayerSensorDynamic ObjectLayer = 0x0700
	LayerTarget        ObjectLayer = 0x0800
	LayerHit           ObjectLayer = 0x0900
)

// Sensor flags.
const (
	SensorPlayer ObjectLayer = 0x1
	SensorAlly   ObjectLayer = 0x2
	SensorEnemy  ObjectLayer = 0x4
	SensorAll    ObjectLayer = 0x7
)

// Target and hit flags. A target collides with a hit that shares a flag.
const (
	TargetPlayer ObjectLayer = 0x1
	TargetAlly   ObjectLayer = 0x1
	TargetEnemy  ObjectLayer = 0x2

	HitPlayer ObjectLayer = 0x1
	HitAlly   ObjectLayer = 0x1
	HitEnemy  ObjectLayer = 0x2
)

// Broad phase layers of the game setup.
const (
	BroadPhaseStatic BroadPhaseLayer = iota
	BroadPhaseMove
	BroadPhaseHit

	NumBroadPhaseLayers = 3
)

func bit(l ObjectLayer) uint32 { return 1 << (l >> 8) }

var (
	staticMask  = bit(LayerDynamic) | bit(LayerBodyPlayer) | bit(LayerBodyAlly) | bit(LayerBodyEnemy)
	dynamicMask = bit(LayerStatic) | bit(LayerBodyPlayer) | bit(LayerBodyAlly) | bit(LayerBodyEnemy)
	playerMask  = bit(LayerStatic) | bit(LayerDynamic) | bit(LayerBodyEnemy)
	allyMask    = bit(LayerStatic) | bit(LayerDynamic) | bit(LayerBodyEnemy)
	enemyMask   = bit(LayerStatic) | bit(LayerDynamic) | bit(LayerBodyPlayer) | bit(LayerBodyAlly)

	moveMask = bit(LayerStatic) | bit(LayerDynamic) | bit(LayerBodyPlayer) | bit(LayerBodyAlly) |
		bit(LayerBodyEnemy) | bit(LayerSensorStatic) | bit(LayerSensorDynamic)
	hitMask = bit(LayerTarget) | bit(LayerHit)
)

// Kind strips the flags from a layer.
func (l ObjectLayer) Kind() ObjectLayer { return l & 0xFF00 }

// Flags returns the low byte of a layer.
func (l ObjectLayer) Flags() ObjectLayer { return l & 0x00FF }

// LayersCollide is the object layer pair filter of the game setup. It is
// symmetric.
func LayersCollide(a, b ObjectLayer) bool {
	if a > b {
		a, b = b, a
	}
	switch a.Kind() {
	case LayerStatic:
		return staticMask&bit(b.Kind()) != 0
	case LayerDynamic:
		return dynamicMask&bit(b.Kind()) != 0
	case LayerBodyPlayer:
		return playerMask&bit(b.Kind()) != 0
	case LayerBodyAlly:
		return allyMask&bit(b.Kind()) != 0
	case LayerBodyEnemy:
		return enemyMask&bit(b.Kind()) != 0
	case LayerSensorStatic, LayerSensorDynamic:
		return true
	case LayerTarget:
		return b.Kind() == LayerHit && a.Flags()&b.Flags() != 0
	case LayerHit:
		return b.Kind() == LayerTarget && a.Flags()&b.Flags() != 0
	default:
		return false
	}
}

// BroadPhaseOf maps an object layer to its broad phase layer. Unknown
// layers land in BroadPhaseStatic.
func BroadPhaseOf(l ObjectLayer) BroadPhaseLayer {
	switch l.Kind() {
	case LayerDynamic, LayerBodyPlayer, LayerBodyAlly, LayerBodyEnemy, LayerSensorDynamic:
		return BroadPhaseMove
	case LayerTarget, LayerHit:
		return BroadPhaseHit
	default:
		return BroadPhaseStatic
	}
}

// LayerMeetsBroadPhase is the object versus broad phase filter of the game
// setup.
func LayerMeetsBroadPhase(l ObjectLayer, bp BroadPhaseLayer) bool {
	switch bp {
	case BroadPhaseStatic, BroadPhaseMove:
		return moveMask&bit(l) != 0
	case BroadPhaseHit:
		return hitMask&bit(l) != 0
	default:
		return false
	}
}

func (bp BroadPhaseLayer) String() string {
	switch bp {
	case BroadPhaseStatic:
		return "Static"
	case BroadPhaseMove:
		return "Move"
	case BroadPhaseHit:
		return "Hit"
	default:
		return "Unknown"
	}
}

// GameBroadPhase serves both broad phase interfaces of the game setup.
//
//vtable:impl BroadPhaseLayerInterfaceVTable
//vtable:impl ObjectVsBroadPhaseLayerFilterVTable
type GameBroadPhase struct{}

func (GameBroadPhase) GetNumBroadPhaseLayers() uint32 { return NumBroadPhaseLayers }

func (GameBroadPhase) GetBroadPhaseLayer(layer ObjectLayer) BroadPhaseLayer {
	return BroadPhaseOf(layer)
}

func (GameBroadPhase) ShouldCollide(layer1 ObjectLayer, layer2 BroadPhaseLayer) bool {
	return LayerMeetsBroadPhase(layer1, layer2)
}

// GameLayerPairs is the object layer pair filter of the game setup.
//
//vtable:impl ObjectLayerPairFilterVTable
type GameLayerPairs struct{}

func (GameLayerPairs) ShouldCollide(layer1 ObjectLayer, layer2 ObjectLayer) bool {
	return LayersCollide(layer1, layer2)
}
