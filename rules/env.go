package rules

import (
	"math"
	"math/rand"

	"github.com/paulmach/orb"

	"github.com/osized/strategies/geom"
	"github.com/osized/strategies/model"
	"github.com/osized/strategies/nav"
)

// RuleEnv is one tick's view of the world plus the agent's long-lived state.
// Its methods are callable from rule conditions.
type RuleEnv struct {
	Tick   int
	Self   model.Wizard
	World  model.World
	Game   model.Game
	Tuning Tuning
	Route  nav.Route
	Rand   *rand.Rand // the agent's seeded stream; nil disables strafing

	memo *tickMemo
}

// tickMemo holds answers that must not change within one tick.
type tickMemo struct {
	target    *model.Unit
	targetSet bool
	next      orb.Point
	nextSet   bool
}

// NewRuleEnv builds the env for one tick. Target and next waypoint are
// computed at most once per env built here.
func NewRuleEnv(ts model.TickState, t Tuning, route nav.Route, rng *rand.Rand) RuleEnv {
	return RuleEnv{
		Tick:   ts.Tick,
		Self:   ts.Self,
		World:  ts.World,
		Game:   ts.Game,
		Tuning: t,
		Route:  route,
		Rand:   rng,
		memo:   &tickMemo{},
	}
}

func (e RuleEnv) Health() float64    { return float64(e.Self.Life) }
func (e RuleEnv) MaxHealth() float64 { return float64(e.Self.MaxLife) }
func (e RuleEnv) CastRange() float64 { return e.Self.CastRange }

// FactionFilter decides whether a unit of faction other counts, from the
// point of view of faction self.
type FactionFilter func(self, other model.Faction) bool

// Hostile selects enemies. Neutrals never qualify.
func Hostile(self, other model.Faction) bool { return other.Hostile(self) }

// Allied selects our own side.
func Allied(self, other model.Faction) bool { return other == self && other != model.FactionNeutral }

// UnitsInRange returns every structure, wizard and minion the filter accepts
// whose distance to us is strictly less than r. We are never in our own result.
func (e RuleEnv) UnitsInRange(r float64, keep FactionFilter) []model.Unit {
	var out []model.Unit
	pos := e.Self.Pos()
	for _, u := range e.World.Units() {
		if u.ID == e.Self.ID && u.Kind == model.KindWizard {
			continue
		}
		if !keep(e.Self.Faction, u.Faction) {
			continue
		}
		if geom.Distance(pos, u.Pos()) < r {
			out = append(out, u)
		}
	}
	return out
}

func (e RuleEnv) EnemiesInRange(r float64) []model.Unit {
	return e.UnitsInRange(r, Hostile)
}

func (e RuleEnv) AlliesInRange(r float64) []model.Unit {
	return e.UnitsInRange(r, Allied)
}

// LocalForce is how many of our side stand within r, counting ourselves.
func (e RuleEnv) LocalForce(r float64) int {
	return len(e.AlliesInRange(r)) + 1
}

// FriendlyTower returns our nearest guardian tower, or nil if none is left.
func (e RuleEnv) FriendlyTower() *model.Unit {
	var nearest *model.Unit
	best := math.MaxFloat64
	pos := e.Self.Pos()
	for _, b := range e.World.Structures {
		if b.Faction != e.Self.Faction || b.StructureType != model.GuardianTower {
			continue
		}
		if d := geom.Distance(pos, b.Pos()); d < best {
			best = d
			b.Kind = model.KindStructure
			nearest = &b
		}
	}
	return nearest
}

// NearestAllyWizard returns the closest wizard on our side other than us.
func (e RuleEnv) NearestAllyWizard() *model.Unit {
	var nearest *model.Unit
	best := math.MaxFloat64
	pos := e.Self.Pos()
	for _, w := range e.World.Wizards {
		if w.ID == e.Self.ID || w.Faction != e.Self.Faction {
			continue
		}
		if d := geom.Distance(pos, w.Pos()); d < best {
			best = d
			w.Kind = model.KindWizard
			nearest = &w
		}
	}
	return nearest
}

// NextWaypoint is where we advance to along the lane.
func (e RuleEnv) NextWaypoint() orb.Point {
	if e.memo == nil {
		return e.Route.Next(e.Self.Pos(), e.Tuning.WaypointRadius)
	}
	if !e.memo.nextSet {
		e.memo.next = e.Route.Next(e.Self.Pos(), e.Tuning.WaypointRadius)
		e.memo.nextSet = true
	}
	return e.memo.next
}

// PreviousWaypoint is where we fall back to along the lane.
func (e RuleEnv) PreviousWaypoint() orb.Point {
	return e.Route.Previous(e.Self.Pos(), e.Tuning.WaypointRadius)
}
