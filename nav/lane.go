package nav

import (
	"math/rand"

	"github.com/osized/strategies/geom"
)

// Lane identifies one of the predefined routes across the map.
type Lane string

const (
	Top    Lane = "top"
	Middle Lane = "middle"
	Bottom Lane = "bottom"
)

// LaneFor maps a wizard id to its lane. The mapping is fixed so the same
// wizard always walks the same lane; unknown ids go middle.
func LaneFor(id int64) Lane {
	switch id {
	case 1, 2, 6, 7:
		return Top
	case 3, 8:
		return Middle
	case 4, 5, 9, 10:
		return Bottom
	default:
		return Middle
	}
}

// Routes builds every lane's route for a square map of the given size, from
// our base corner (bottom-left) to the enemy's. The middle lane detours
// around the base either along its top or its right edge; rng picks which,
// so it must be the agent's seeded stream for runs to be reproducible.
func Routes(mapSize float64, rng *rand.Rand) map[Lane]Route {
	s := mapSize

	midDetour := geom.Pt(200, s-600)
	if rng.Intn(2) == 0 {
		midDetour = geom.Pt(600, s-200)
	}

	return map[Lane]Route{
		Middle: {
			geom.Pt(100, s-100),
			midDetour,
			geom.Pt(800, s-800),
			geom.Pt(s-600, 600),
		},
		Top: {
			geom.Pt(100, s-100),
			geom.Pt(100, s-400),
			geom.Pt(200, s-800),
			geom.Pt(200, s*0.75),
			geom.Pt(200, s*0.5),
			geom.Pt(200, s*0.25),
			geom.Pt(200, 200),
			geom.Pt(s*0.25, 200),
			geom.Pt(s*0.5, 200),
			geom.Pt(s*0.75, 200),
			geom.Pt(s-200, 200),
		},
		Bottom: {
			geom.Pt(100, s-100),
			geom.Pt(400, s-100),
			geom.Pt(800, s-200),
			geom.Pt(s*0.25, s-200),
			geom.Pt(s*0.5, s-200),
			geom.Pt(s*0.75, s-200),
			geom.Pt(s-200, s-200),
			geom.Pt(s-200, s*0.75),
			geom.Pt(s-200, s*0.5),
			geom.Pt(s-200, s*0.25),
			geom.Pt(s-200, 200),
		},
	}
}
