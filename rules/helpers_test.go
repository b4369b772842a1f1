package rules

import (
	"math"
	"math/rand"

	"github.com/osized/strategies/geom"
	"github.com/osized/strategies/model"
	"github.com/osized/strategies/nav"
)

const eps = 1e-9

func testGame() model.Game {
	return model.Game{
		MapSize:            4000,
		RandomSeed:         42,
		WizardForwardSpeed: 4,
		WizardStrafeSpeed:  3,
		WizardMaxTurnAngle: math.Pi / 30,
		StaffSector:        math.Pi / 6,
		MagicMissileRadius: 10,
	}
}

func testSelf() model.Wizard {
	return model.Wizard{
		Unit: model.Unit{
			ID: 1, X: 1000, Y: 1000, Radius: 35,
			Faction: model.FactionAcademy, Life: 100, MaxLife: 100,
		},
		CastRange: 500,
	}
}

// lineRoute runs along y=1000 toward x=3000.
func lineRoute() nav.Route {
	return nav.Route{geom.Pt(0, 1000), geom.Pt(1000, 1000), geom.Pt(2000, 1000), geom.Pt(3000, 1000)}
}

// testEnv is past the strafing window so only the movement decision shows.
func testEnv(world model.World) RuleEnv {
	return RuleEnv{
		Tick:   5000,
		Self:   testSelf(),
		World:  world,
		Game:   testGame(),
		Tuning: DefaultTuning(),
		Route:  lineRoute(),
		Rand:   rand.New(rand.NewSource(1)),
	}
}

func enemy(id int64, x, y float64) model.Unit {
	return model.Unit{ID: id, X: x, Y: y, Radius: 35, Faction: model.FactionRenegades, Life: 100, MaxLife: 100}
}

func ally(id int64, x, y float64) model.Unit {
	return model.Unit{ID: id, X: x, Y: y, Radius: 35, Faction: model.FactionAcademy, Life: 100, MaxLife: 100}
}

func neutral(id int64, x, y float64) model.Unit {
	return model.Unit{ID: id, X: x, Y: y, Radius: 35, Faction: model.FactionNeutral, Life: 100, MaxLife: 100}
}
