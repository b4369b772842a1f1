package model

import "github.com/paulmach/orb"

// TickState is everything the simulator tells us about one tick. It is
// decoded fresh for every tick and never shared between ticks.
type TickState struct {
	Tick  int    `json:"tick"`
	Self  Wizard `json:"self"`
	World World  `json:"world"`
	Game  Game   `json:"game"`
}

// Faction is a unit's allegiance. Neutral units are never combat targets.
type Faction string

const (
	FactionAcademy   Faction = "academy"
	FactionRenegades Faction = "renegades"
	FactionNeutral   Faction = "neutral"
	FactionOther     Faction = "other"
)

// Hostile reports whether a unit of faction f is an enemy of faction to.
func (f Faction) Hostile(to Faction) bool {
	return f != FactionNeutral && f != to
}

// UnitKind discriminates the lists a unit can arrive in. It only drives the
// class weight used when scoring targets.
type UnitKind int

const (
	KindStructure UnitKind = iota
	KindWizard
	KindMinion
)

func (k UnitKind) String() string {
	switch k {
	case KindStructure:
		return "structure"
	case KindWizard:
		return "wizard"
	case KindMinion:
		return "minion"
	default:
		return "unknown"
	}
}

// Structure types.
const (
	GuardianTower = "guardian_tower"
	FactionBase   = "faction_base"
)

// Unit is any living, positioned thing on the map.
type Unit struct {
	ID            int64    `json:"id"`
	Kind          UnitKind `json:"-"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	SpeedX        float64  `json:"speedX"`
	SpeedY        float64  `json:"speedY"`
	Angle         float64  `json:"angle"`
	Radius        float64  `json:"radius"`
	Faction       Faction  `json:"faction"`
	Life          int      `json:"life"`
	MaxLife       int      `json:"maxLife"`
	StructureType string   `json:"structureType,omitempty"` // structures only
}

func (u Unit) Pos() orb.Point { return orb.Point{u.X, u.Y} }

// Alive is false for units the simulator still lists at zero life.
func (u Unit) Alive() bool { return u.Life > 0 }

// Wizard is the unit under our control.
type Wizard struct {
	Unit
	CastRange   float64 `json:"castRange"`
	VisionRange float64 `json:"visionRange"`
}

// World is the visible roster for one tick.
type World struct {
	Structures []Unit `json:"buildings"`
	Wizards    []Unit `json:"wizards"`
	Minions    []Unit `json:"minions"`
}

// Units returns every unit in the world with Kind set from the list it came
// from. The order is structures, wizards, minions.
func (w World) Units() []Unit {
	out := make([]Unit, 0, len(w.Structures)+len(w.Wizards)+len(w.Minions))
	out = appendKind(out, w.Structures, KindStructure)
	out = appendKind(out, w.Wizards, KindWizard)
	out = appendKind(out, w.Minions, KindMinion)
	return out
}

func appendKind(dst, src []Unit, kind UnitKind) []Unit {
	for _, u := range src {
		u.Kind = kind
		dst = append(dst, u)
	}
	return dst
}

// Game holds the match constants. They are resent every tick but never change.
type Game struct {
	MapSize             float64 `json:"mapSize"`
	TickCount           int     `json:"tickCount"`
	RandomSeed          int64   `json:"randomSeed"`
	WizardForwardSpeed  float64 `json:"wizardForwardSpeed"`
	WizardBackwardSpeed float64 `json:"wizardBackwardSpeed"`
	WizardStrafeSpeed   float64 `json:"wizardStrafeSpeed"`
	WizardMaxTurnAngle  float64 `json:"wizardMaxTurnAngle"`
	StaffSector         float64 `json:"staffSector"`
	MagicMissileRadius  float64 `json:"magicMissileRadius"`
}
