package agent

import (
	"log/slog"
	"math/rand"

	"github.com/osized/strategies/model"
	"github.com/osized/strategies/nav"
)

// State lives for the whole match. It is filled in on the first tick and
// only read afterwards.
type State struct {
	initialized bool
	Lane        nav.Lane
	Route       nav.Route
	Rand        *rand.Rand
}

// Init seeds the random stream from the game constants and picks the lane
// for wizardID. Only the first call does anything; it reports whether it did.
func (s *State) Init(wizardID int64, game model.Game) bool {
	if s.initialized {
		return false
	}
	s.initialized = true

	s.Rand = rand.New(rand.NewSource(game.RandomSeed))
	s.Lane = nav.LaneFor(wizardID)
	s.Route = nav.Routes(game.MapSize, s.Rand)[s.Lane]

	// Authoring check only; a bad route is still walked.
	if err := s.Route.Validate(); err != nil {
		slog.Warn("lane route is not ordered toward its terminus", "lane", s.Lane, "mapSize", game.MapSize, "error", err)
	}

	slog.Info("agent state initialized",
		"wizard", wizardID,
		"lane", s.Lane,
		"seed", game.RandomSeed,
		"waypoints", len(s.Route),
	)
	return true
}

// Initialized reports whether Init has run.
func (s *State) Initialized() bool { return s.initialized }
