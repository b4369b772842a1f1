// Package nav resolves where a wizard should walk next along its lane.
//
// A Route is ordered by strictly decreasing distance to its last point. Next
// and Previous rely on that ordering and never check it; Validate exists for
// whoever authors routes.
package nav

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/osized/strategies/geom"
)

var (
	ErrRouteTooShort     = errors.New("route needs at least two points")
	ErrRouteNotMonotonic = errors.New("route does not approach its terminus")
)

// Route is an ordered list of waypoints for one lane.
type Route []orb.Point

// Terminus is the last point of the route.
func (r Route) Terminus() orb.Point {
	return r[len(r)-1]
}

// Next returns the waypoint to walk toward from pos: the first waypoint that
// is closer to the terminus than pos is, or the one after any waypoint pos
// is within arrival of. Position alone decides, so being knocked off the path
// costs nothing. An empty route keeps the wizard where it is.
func (r Route) Next(pos orb.Point, arrival float64) orb.Point {
	if len(r) == 0 {
		return pos
	}
	last := len(r) - 1
	terminus := r[last]

	for i := 0; i < last; i++ {
		wp := r[i]
		if geom.Distance(wp, pos) <= arrival {
			return r[i+1]
		}
		if geom.Distance(terminus, wp) < geom.Distance(terminus, pos) {
			return wp
		}
	}
	return terminus
}

// Previous is Next over the reversed route: it walks back toward the first
// waypoint.
func (r Route) Previous(pos orb.Point, arrival float64) orb.Point {
	if len(r) == 0 {
		return pos
	}
	first := r[0]

	for i := len(r) - 1; i > 0; i-- {
		wp := r[i]
		if geom.Distance(wp, pos) <= arrival {
			return r[i-1]
		}
		if geom.Distance(first, wp) < geom.Distance(first, pos) {
			return wp
		}
	}
	return first
}

// Reverse returns a copy of the route in the opposite order.
func (r Route) Reverse() Route {
	out := make(Route, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Validate checks the ordering invariant.
func (r Route) Validate() error {
	if len(r) < 2 {
		return ErrRouteTooShort
	}
	terminus := r.Terminus()
	for i := 1; i < len(r); i++ {
		prev := geom.Distance(r[i-1], terminus)
		cur := geom.Distance(r[i], terminus)
		if cur >= prev {
			return fmt.Errorf("%w: point %d at %.1f, point %d at %.1f", ErrRouteNotMonotonic, i-1, prev, i, cur)
		}
	}
	return nil
}
