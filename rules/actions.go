package rules

import (
	"log/slog"
	"math"

	"github.com/paulmach/orb"

	"github.com/osized/strategies/geom"
	"github.com/osized/strategies/ipc"
	"github.com/osized/strategies/model"
)

// GoTo turns toward p and walks forward only once p is inside a quarter of
// the staff sector, so we don't drift sideways while still turning.
func GoTo(env RuleEnv, move *ipc.MoveCommand, p orb.Point) {
	angle := geom.AngleTo(env.Self.Pos(), env.Self.Angle, p)
	move.Turn = angle
	if math.Abs(angle) < env.Game.StaffSector/4 {
		move.Speed = env.Game.WizardForwardSpeed
	}
}

// Attack turns toward target and casts once it is inside half the staff
// sector. The minimum cast distance lets the missile fly until it touches
// the target's edge, counting its own radius.
func Attack(env RuleEnv, move *ipc.MoveCommand, target model.Unit, distance float64) {
	angle := geom.AngleTo(env.Self.Pos(), env.Self.Angle, target.Pos())
	move.Turn = angle
	if math.Abs(angle) < env.Game.StaffSector/2 {
		move.Action = ipc.ActionMagicMissile
		move.CastAngle = angle
		move.MinCastDistance = distance - target.Radius + env.Game.MagicMissileRadius
	}
}

// ActionStrafe sidesteps in a random direction every tick so ranged
// attackers have a harder time leading their shots.
func ActionStrafe(env RuleEnv, move *ipc.MoveCommand) error {
	if env.Rand == nil {
		return nil
	}
	if env.Rand.Intn(2) == 0 {
		move.StrafeSpeed = env.Game.WizardStrafeSpeed
	} else {
		move.StrafeSpeed = -env.Game.WizardStrafeSpeed
	}
	return nil
}

// ActionRetreat falls back along the lane.
func ActionRetreat(env RuleEnv, move *ipc.MoveCommand) error {
	wp := env.PreviousWaypoint()
	slog.Debug("retreating", "tick", env.Tick, "life", env.Self.Life, "to", wp)
	GoTo(env, move, wp)
	return nil
}

// ActionAttackOrAdvance shoots the best target in cast range, or pushes on
// to the next waypoint when there is none.
func ActionAttackOrAdvance(env RuleEnv, move *ipc.MoveCommand) error {
	if target := env.AcquireTarget(); target != nil {
		distance := geom.Distance(env.Self.Pos(), target.Pos())
		if distance <= env.Self.CastRange {
			Attack(env, move, *target, distance)
			return nil
		}
	}
	GoTo(env, move, env.NextWaypoint())
	return nil
}

// ActionHoldAtTower walks back to our nearest guardian tower.
func ActionHoldAtTower(env RuleEnv, move *ipc.MoveCommand) error {
	tower := env.FriendlyTower()
	if tower == nil {
		return nil
	}
	GoTo(env, move, tower.Pos())
	return nil
}

// ActionEscortAlly follows the nearest allied wizard, aiming one radius
// ahead of it along its current velocity.
func ActionEscortAlly(env RuleEnv, move *ipc.MoveCommand) error {
	ally := env.NearestAllyWizard()
	if ally == nil {
		return nil
	}
	x := ally.X + ally.Radius
	if ally.SpeedX < 0 {
		x = ally.X - ally.Radius
	}
	y := ally.Y + ally.Radius
	if ally.SpeedY < 0 {
		y = ally.Y - ally.Radius
	}
	GoTo(env, move, geom.Pt(x, y))
	return nil
}
