// Package geom holds the 2D math shared by the navigator and the tactical
// rules. Points are orb.Point values in world coordinates.
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Pt is shorthand for building an orb.Point.
func Pt(x, y float64) orb.Point {
	return orb.Point{x, y}
}

// Distance is the euclidean distance between two points.
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// AngleTo returns the turn needed for something at from, facing heading,
// to face to. The result is in (-π, π].
func AngleTo(from orb.Point, heading float64, to orb.Point) float64 {
	absolute := math.Atan2(to.Y()-from.Y(), to.X()-from.X())
	return NormalizeAngle(absolute - heading)
}

// NormalizeAngle wraps a into (-π, π]. Non-finite input yields 0 so a bad
// heading never turns into a runaway turn command.
func NormalizeAngle(a float64) float64 {
	if !isFinite(a) {
		return 0
	}
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Finite reports whether both coordinates are real numbers.
func Finite(p orb.Point) bool {
	return isFinite(p.X()) && isFinite(p.Y())
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
