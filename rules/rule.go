package rules

import (
	"github.com/expr-lang/expr/vm"

	"github.com/osized/strategies/ipc"
)

// ActionFunc fills in the tick's move when a rule's condition is true.
type ActionFunc func(env RuleEnv, move *ipc.MoveCommand) error

// Rule is a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive
// to keep two rules from steering the wizard in the same tick.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
