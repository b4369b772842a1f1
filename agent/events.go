package agent

import (
	"fmt"
	"slices"

	"github.com/paulmach/orb"

	"github.com/osized/strategies/model"
	"github.com/osized/strategies/rules"
)

// EventKind identifies a change in behaviour worth logging.
type EventKind string

const (
	EventRetreatStarted  EventKind = "retreat_started"
	EventRetreatEnded    EventKind = "retreat_ended"
	EventTargetAcquired  EventKind = "target_acquired"
	EventTargetLost      EventKind = "target_lost"
	EventWaypointChanged EventKind = "waypoint_changed"
	EventHeavyDamage     EventKind = "heavy_damage"
)

// Event is detected by diffing consecutive ticks.
type Event struct {
	Kind   EventKind
	Tick   int
	Detail string // human-readable description
}

// retreatRules are the rules that walk us back down the lane.
var retreatRules = []string{"critical-retreat", "outnumbered-retreat"}

// snapshot captures the diffable parts of one tick's decision.
type snapshot struct {
	tick       int
	retreating bool
	targetID   int64 // 0 when nothing is targetable
	targetKind model.UnitKind
	waypoint   orb.Point
	life       int
	maxLife    int
}

func takeSnapshot(env rules.RuleEnv, fired []string) snapshot {
	s := snapshot{
		tick:     env.Tick,
		waypoint: env.NextWaypoint(),
		life:     env.Self.Life,
		maxLife:  env.Self.MaxLife,
	}
	for _, name := range fired {
		if slices.Contains(retreatRules, name) {
			s.retreating = true
			break
		}
	}
	if t := env.AcquireTarget(); t != nil {
		s.targetID = t.ID
		s.targetKind = t.Kind
	}
	return s
}

// detectEvents compares cur against the previous tick. The first tick has
// nothing to compare against and yields no events.
func detectEvents(cur snapshot, prev *snapshot) []Event {
	if prev == nil {
		return nil
	}
	var events []Event
	add := func(kind EventKind, format string, args ...any) {
		events = append(events, Event{Kind: kind, Tick: cur.tick, Detail: fmt.Sprintf(format, args...)})
	}

	switch {
	case cur.retreating && !prev.retreating:
		add(EventRetreatStarted, "falling back at %d/%d life", cur.life, cur.maxLife)
	case !cur.retreating && prev.retreating:
		add(EventRetreatEnded, "pushing again at %d/%d life", cur.life, cur.maxLife)
	}

	switch {
	case cur.targetID != 0 && cur.targetID != prev.targetID:
		add(EventTargetAcquired, "%s#%d", cur.targetKind, cur.targetID)
	case cur.targetID == 0 && prev.targetID != 0:
		add(EventTargetLost, "%s#%d", prev.targetKind, prev.targetID)
	}

	if cur.waypoint != prev.waypoint {
		add(EventWaypointChanged, "next waypoint (%.0f, %.0f)", cur.waypoint.X(), cur.waypoint.Y())
	}

	if drop := prev.life - cur.life; drop > 0 && drop >= cur.maxLife/4 {
		add(EventHeavyDamage, "lost %d life in one tick", drop)
	}

	return events
}
