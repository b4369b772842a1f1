package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/osized/strategies/geom"
	"github.com/osized/strategies/ipc"
	"github.com/osized/strategies/model"
	"github.com/osized/strategies/rules"
)

// Agent owns the decision-making for a single wizard.
type Agent struct {
	Player   string
	WizardID int64 // from hello; 0 until the handshake
	Faction  model.Faction
	Engine   *rules.Engine
	Tuning   rules.Tuning

	state State
	prev  *snapshot
}

func New(engine *rules.Engine, tuning rules.Tuning) *Agent {
	return &Agent{Engine: engine, Tuning: tuning}
}

// HandleHello completes the handshake so the runner knows we're ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.Player = hello.Player
	a.WizardID = hello.WizardID
	a.Faction = hello.Faction
	slog.Info("wizard identified", "player", a.Player, "wizard", a.WizardID, "faction", a.Faction)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleTick answers every tick with exactly one move. A tick that can't be
// decoded gets a move that does nothing.
func (a *Agent) HandleTick(env ipc.Envelope) (*ipc.Envelope, error) {
	move := ipc.NewMoveCommand()

	var ts model.TickState
	if err := json.Unmarshal(env.Data, &ts); err != nil {
		slog.Error("unmarshal tick, sending no-op move", "player", a.Player, "error", err)
	} else {
		move = a.Decide(ts)
	}

	resp, err := ipc.NewEnvelope(ipc.TypeMove, move)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Decide runs the tactical rules for one tick. A tick whose own position or
// heading is not a real number gets the no-op move.
func (a *Agent) Decide(ts model.TickState) ipc.MoveCommand {
	if !geom.Finite(ts.Self.Pos()) || math.IsNaN(ts.Self.Angle) || math.IsInf(ts.Self.Angle, 0) {
		slog.Warn("non-finite self state, holding still", "player", a.Player, "tick", ts.Tick)
		return ipc.NewMoveCommand()
	}
	if !a.state.Initialized() {
		a.state.Init(a.laneKey(ts.Self), ts.Game)
	}

	env := rules.NewRuleEnv(ts, a.Tuning, a.state.Route, a.state.Rand)
	move := ipc.NewMoveCommand()
	fired := a.Engine.Evaluate(env, &move)

	snap := takeSnapshot(env, fired)
	for _, ev := range detectEvents(snap, a.prev) {
		slog.Info("tactical event", "player", a.Player, "kind", ev.Kind, "tick", ev.Tick, "detail", ev.Detail)
	}
	a.prev = &snap

	return move
}

// laneKey picks the id our lane is assigned by. The hello id wins because
// it is what the runner configured the wizard as; a tick that disagrees is
// logged.
func (a *Agent) laneKey(self model.Wizard) int64 {
	if a.WizardID == 0 {
		return self.ID
	}
	if a.WizardID != self.ID {
		slog.Warn("tick wizard id differs from hello, keeping hello id", "player", a.Player, "hello", a.WizardID, "tick", self.ID)
	}
	if a.Faction != "" && a.Faction != self.Faction {
		slog.Warn("tick faction differs from hello", "player", a.Player, "hello", a.Faction, "tick", self.Faction)
	}
	return a.WizardID
}

// State exposes the match-long state, mostly for diagnostics.
func (a *Agent) State() *State { return &a.state }
