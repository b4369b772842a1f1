package agent

import (
	"encoding/json"
	"math"
	"net"
	"testing"

	"github.com/osized/strategies/geom"
	"github.com/osized/strategies/ipc"
	"github.com/osized/strategies/model"
	"github.com/osized/strategies/nav"
	"github.com/osized/strategies/rules"
)

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	tuning := rules.DefaultTuning()
	engine, err := rules.NewEngine(rules.CompileTuning(tuning))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return New(engine, tuning)
}

// spawnTick puts wizard id at the shared spawn corner of a 4000 map.
func spawnTick(tick int, id, seed int64) model.TickState {
	return model.TickState{
		Tick: tick,
		Self: model.Wizard{
			Unit: model.Unit{
				ID: id, X: 100, Y: 3900, Radius: 35,
				Faction: model.FactionAcademy, Life: 100, MaxLife: 100,
			},
			CastRange: 500,
		},
		Game: model.Game{
			MapSize:            4000,
			RandomSeed:         seed,
			WizardForwardSpeed: 4,
			WizardStrafeSpeed:  3,
			WizardMaxTurnAngle: math.Pi / 30,
			StaffSector:        math.Pi / 6,
			MagicMissileRadius: 10,
		},
	}
}

func TestDecideInitializesOnce(t *testing.T) {
	a := newTestAgent(t)
	if a.State().Initialized() {
		t.Fatal("state initialized before the first tick")
	}

	a.Decide(spawnTick(2000, 4, 7))
	st := a.State()
	if !st.Initialized() || st.Lane != nav.Bottom {
		t.Fatalf("lane = %q, initialized = %v", st.Lane, st.Initialized())
	}
	if len(st.Route) != 11 || st.Route[0] != geom.Pt(100, 3900) {
		t.Fatalf("unexpected bottom route %v", st.Route)
	}
	rng, route := st.Rand, st.Route

	// Later ticks carrying different ids and constants change nothing.
	later := spawnTick(2001, 1, 99)
	later.Game.MapSize = 1000
	a.Decide(later)
	if st.Lane != nav.Bottom || st.Rand != rng || &st.Route[0] != &route[0] {
		t.Error("state was rebuilt after the first tick")
	}
	if st.Init(later.Self.ID, later.Game) {
		t.Error("Init reported work on a second call")
	}
}

func TestDecideAdvancesFromSpawn(t *testing.T) {
	a := newTestAgent(t)
	move := a.Decide(spawnTick(2000, 4, 7))

	// Bottom lane's second point is due east of the spawn.
	if math.Abs(move.Turn) > 1e-9 || move.Speed != 4 || move.StrafeSpeed != 0 {
		t.Errorf("got %+v, want a straight walk east", move)
	}
	if move.Action != ipc.ActionNone {
		t.Errorf("Action = %s with nothing in range", move.Action)
	}
}

func TestDecideIsDeterministicPerSeed(t *testing.T) {
	run := func(seed int64) []ipc.MoveCommand {
		a := newTestAgent(t)
		var moves []ipc.MoveCommand
		for tick := 0; tick < 64; tick++ {
			moves = append(moves, a.Decide(spawnTick(tick, 3, seed)))
		}
		return moves
	}

	first, second := run(11), run(11)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("tick %d: %+v != %+v", i, first[i], second[i])
		}
	}

	other := run(12)
	same := true
	for i := range first {
		if first[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical strafing")
	}
}

func TestHandleTickBadPayload(t *testing.T) {
	a := newTestAgent(t)
	resp, err := a.HandleTick(ipc.Envelope{Type: ipc.TypeTick, Data: json.RawMessage(`{"tick": "soon"}`)})
	if err != nil {
		t.Fatalf("HandleTick: %v", err)
	}
	if resp == nil || resp.Type != ipc.TypeMove {
		t.Fatalf("got %+v, want a move reply", resp)
	}
	var move ipc.MoveCommand
	if err := json.Unmarshal(resp.Data, &move); err != nil {
		t.Fatal(err)
	}
	if move != ipc.NewMoveCommand() {
		t.Errorf("got %+v, want the no-op move", move)
	}
	if a.State().Initialized() {
		t.Error("an undecodable tick must not initialize state")
	}
}

func TestHandleHelloBadPayload(t *testing.T) {
	a := newTestAgent(t)
	if _, err := a.HandleHello(ipc.Envelope{Type: ipc.TypeHello, Data: json.RawMessage(`[1]`)}); err == nil {
		t.Error("expected error")
	}
}

func TestAgentOverConnection(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	a := newTestAgent(t)
	c := ipc.NewConnection(server, map[string]ipc.Handler{
		ipc.TypeHello: a.HandleHello,
		ipc.TypeTick:  a.HandleTick,
	})
	done := make(chan struct{})
	go func() {
		c.ReadLoop()
		close(done)
	}()

	hello, _ := ipc.NewEnvelope(ipc.TypeHello, ipc.HelloMessage{Player: "p1", WizardID: 4, Faction: "academy"})
	if err := ipc.WriteEnvelope(client, hello); err != nil {
		t.Fatalf("write hello: %v", err)
	}
	ack, err := ipc.ReadEnvelope(client)
	if err != nil || ack.Type != ipc.TypeAck {
		t.Fatalf("ack = %+v, err = %v", ack, err)
	}

	for tick := 0; tick < 3; tick++ {
		env, _ := ipc.NewEnvelope(ipc.TypeTick, spawnTick(tick, 4, 7))
		if err := ipc.WriteEnvelope(client, env); err != nil {
			t.Fatalf("write tick %d: %v", tick, err)
		}
		resp, err := ipc.ReadEnvelope(client)
		if err != nil {
			t.Fatalf("read move %d: %v", tick, err)
		}
		if resp.Type != ipc.TypeMove {
			t.Fatalf("tick %d: reply type %q", tick, resp.Type)
		}
		var move ipc.MoveCommand
		if err := json.Unmarshal(resp.Data, &move); err != nil {
			t.Fatal(err)
		}
		if math.Abs(move.StrafeSpeed) != 3 {
			t.Errorf("tick %d: StrafeSpeed = %v, want +-3 in the opening", tick, move.StrafeSpeed)
		}
	}

	client.Close()
	<-done

	if a.Player != "p1" || a.WizardID != 4 {
		t.Errorf("hello not recorded: %q %d", a.Player, a.WizardID)
	}
}

func TestDecideNonFiniteSelf(t *testing.T) {
	tests := []struct {
		name  string
		patch func(*model.TickState)
	}{
		{"nan x", func(ts *model.TickState) { ts.Self.X = math.NaN() }},
		{"inf y", func(ts *model.TickState) { ts.Self.Y = math.Inf(1) }},
		{"nan heading", func(ts *model.TickState) { ts.Self.Angle = math.NaN() }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAgent(t)
			ts := spawnTick(5, 4, 7)
			tc.patch(&ts)
			if move := a.Decide(ts); move != ipc.NewMoveCommand() {
				t.Errorf("got %+v, want the no-op move", move)
			}
			if a.State().Initialized() {
				t.Error("state initialized from a bad tick")
			}
		})
	}
}

func TestHelloIDPicksLane(t *testing.T) {
	tests := []struct {
		name    string
		helloID int64
		tickID  int64
		want    nav.Lane
	}{
		{"no hello uses tick id", 0, 4, nav.Bottom},
		{"matching ids", 4, 4, nav.Bottom},
		{"hello id wins", 1, 4, nav.Top},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAgent(t)
			if tc.helloID != 0 {
				env, _ := ipc.NewEnvelope(ipc.TypeHello, ipc.HelloMessage{Player: "p", WizardID: tc.helloID, Faction: model.FactionAcademy})
				if _, err := a.HandleHello(env); err != nil {
					t.Fatal(err)
				}
			}
			a.Decide(spawnTick(2000, tc.tickID, 7))
			if got := a.State().Lane; got != tc.want {
				t.Errorf("lane = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSnapshotTargetMatchesShot(t *testing.T) {
	a := newTestAgent(t)
	ts := spawnTick(2000, 4, 7)
	// Two identical minions tie; the one listed first is shot and recorded.
	ts.World.Minions = []model.Unit{
		{ID: 41, X: 400, Y: 3900, Radius: 25, Faction: model.FactionRenegades, Life: 50, MaxLife: 100},
		{ID: 42, X: 400, Y: 3900, Radius: 25, Faction: model.FactionRenegades, Life: 50, MaxLife: 100},
	}

	move := a.Decide(ts)
	if move.Action != ipc.ActionMagicMissile {
		t.Fatalf("got %+v, want a cast", move)
	}
	if a.prev == nil || a.prev.targetID != 41 {
		t.Errorf("snapshot target = %+v, want minion 41", a.prev)
	}
}
