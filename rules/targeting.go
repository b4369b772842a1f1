package rules

import (
	"github.com/osized/strategies/geom"
	"github.com/osized/strategies/model"
)

// ClassWeight scales target priority by unit kind. Wizards dominate.
func (t Tuning) ClassWeight(k model.UnitKind) float64 {
	switch k {
	case model.KindStructure:
		return t.StructureWeight
	case model.KindWizard:
		return t.WizardWeight
	case model.KindMinion:
		return t.MinionWeight
	default:
		return 0
	}
}

// targetPriority grows as the unit's life runs out: maxLife/life times the
// class weight. Callers must skip dead units.
func (t Tuning) targetPriority(u model.Unit) float64 {
	return float64(u.MaxLife) / float64(u.Life) * t.ClassWeight(u.Kind)
}

// AcquireTarget picks the hostile unit with the best score, or nil when
// nothing hostile is reachable. A unit is reachable when a missile fired
// from our edge can reach its edge: distance <= castRange - selfRadius - targetRadius.
// Score is (castRange - distance) + priority; the first unit seen wins ties.
// An env from NewRuleEnv answers the same unit for the rest of its tick.
func (e RuleEnv) AcquireTarget() *model.Unit {
	if e.memo == nil {
		return e.acquireTarget()
	}
	if !e.memo.targetSet {
		e.memo.target = e.acquireTarget()
		e.memo.targetSet = true
	}
	return e.memo.target
}

func (e RuleEnv) acquireTarget() *model.Unit {
	var best *model.Unit
	bestScore := 0.0
	pos := e.Self.Pos()

	for _, u := range e.World.Units() {
		if !u.Faction.Hostile(e.Self.Faction) || !u.Alive() {
			continue
		}
		dist := geom.Distance(pos, u.Pos())
		if dist > e.Self.CastRange-e.Self.Radius-u.Radius {
			continue
		}
		score := (e.Self.CastRange - dist) + e.Tuning.targetPriority(u)
		if best == nil || score > bestScore {
			bestScore = score
			best = &u
		}
	}
	return best
}
