package rules

import (
	"fmt"
	"strconv"
)

// Rule categories.
const (
	CategoryEvasion  = "evasion"
	CategoryMovement = "movement"
)

// CompileTuning generates the tactical rule set from a tuning.
// Numbers are interpolated into the conditions so a rule's source shows the
// exact thresholds it runs with.
func CompileTuning(t Tuning) []*Rule {
	t.Validate()
	var rules []*Rule

	// Overlay: strafing never blocks the movement decision.
	rules = append(rules, &Rule{
		Name:         "evasive-strafe",
		Priority:     2000,
		Category:     CategoryEvasion,
		Exclusive:    false,
		ConditionSrc: fmt.Sprintf(`Tick < %d`, t.StrafeTicks),
		Action:       ActionStrafe,
	})

	// --- Retreat (checked before any attack logic) ---

	rules = append(rules, &Rule{
		Name:         "critical-retreat",
		Priority:     1000,
		Category:     CategoryMovement,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Health() < MaxHealth() * %s / 2`, num(t.LowHPFactor)),
		Action:       ActionRetreat,
	})

	rules = append(rules, &Rule{
		Name:      "outnumbered-retreat",
		Priority:  900,
		Category:  CategoryMovement,
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(`len(EnemiesInRange(CastRange())) > LocalForce(CastRange() / 2) * %s && Health() < MaxHealth() * %s * %s`,
			num(t.OutnumberRatio), num(t.LowHPFactor), num(t.HealthyRetreatMultiplier)),
		Action: ActionRetreat,
	})

	// --- Optional positioning when there is nothing to shoot ---

	if t.HoldAtTower {
		rules = append(rules, &Rule{
			Name:         "hold-at-tower",
			Priority:     500,
			Category:     CategoryMovement,
			Exclusive:    true,
			ConditionSrc: `AcquireTarget() == nil && FriendlyTower() != nil && len(AlliesInRange(CastRange() / 5)) < 1`,
			Action:       ActionHoldAtTower,
		})
	}

	if t.EscortAlly {
		rules = append(rules, &Rule{
			Name:         "escort-ally",
			Priority:     400,
			Category:     CategoryMovement,
			Exclusive:    true,
			ConditionSrc: `AcquireTarget() == nil && NearestAllyWizard() != nil`,
			Action:       ActionEscortAlly,
		})
	}

	rules = append(rules, &Rule{
		Name:         "attack-or-advance",
		Priority:     100,
		Category:     CategoryMovement,
		Exclusive:    true,
		ConditionSrc: `true`,
		Action:       ActionAttackOrAdvance,
	})

	return rules
}

// num formats f as an expr literal without exponent notation.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
