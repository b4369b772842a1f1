package ipc

import "github.com/osized/strategies/model"

// These constants must stay in sync with the simulator-side runner.
const (
	TypeHello = "hello"
	TypeAck   = "ack"
	TypeTick  = "tick"
	TypeMove  = "move"
)

// HelloMessage identifies the wizard a connection will control.
type HelloMessage struct {
	Player   string        `json:"player"`
	WizardID int64         `json:"wizardId"`
	Faction  model.Faction `json:"faction"`
}

type AckMessage struct {
	Status string `json:"status"`
}
