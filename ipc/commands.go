package ipc

// ActionType is the attack a move asks for.
type ActionType string

const (
	ActionNone         ActionType = "none"
	ActionMagicMissile ActionType = "magic_missile"
)

// MoveCommand is the single reply to a tick. Fields the decision leaves
// alone keep their no-op values: no turn, no movement, no attack.
type MoveCommand struct {
	Turn            float64    `json:"turn"`
	Speed           float64    `json:"speed"`
	StrafeSpeed     float64    `json:"strafeSpeed"`
	Action          ActionType `json:"action"`
	CastAngle       float64    `json:"castAngle"`
	MinCastDistance float64    `json:"minCastDistance"`
}

// NewMoveCommand returns a move that does nothing.
func NewMoveCommand() MoveCommand {
	return MoveCommand{Action: ActionNone}
}
