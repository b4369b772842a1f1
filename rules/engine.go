package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/osized/strategies/geom"
	"github.com/osized/strategies/ipc"
)

// Engine runs compiled rules against one tick at a time.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category, so exactly one movement decision is made per tick.
// An Engine belongs to a single agent and is not safe for concurrent use.
type Engine struct {
	rules        []*Rule
	lastDiagTick int
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled, lastDiagTick: -diagInterval}, nil
}

// Rules returns the compiled rules in evaluation order.
func (e *Engine) Rules() []*Rule { return e.rules }

// Evaluate runs all rules against env, writing into move, and returns the
// names of the rules that fired. Condition and action failures are logged
// and skipped; move keeps whatever the remaining rules set.
func (e *Engine) Evaluate(env RuleEnv, move *ipc.MoveCommand) []string {
	e.logDiagnostics(env)

	fired := make(map[string]bool) // category → exclusive rule already fired
	var names []string

	for _, r := range e.rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category, "tick", env.Tick)
		names = append(names, r.Name)

		if err := r.Action(env, move); err != nil {
			slog.Error("rule action error", "rule", r.Name, "error", err)
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}

	return names
}

const diagInterval = 100

// logDiagnostics answers "why is it doing that?" with a periodic summary of
// the local fight.
func (e *Engine) logDiagnostics(env RuleEnv) {
	if env.Tick-e.lastDiagTick < diagInterval {
		return
	}
	e.lastDiagTick = env.Tick

	target := "none"
	if t := env.AcquireTarget(); t != nil {
		target = fmt.Sprintf("%s#%d", t.Kind, t.ID)
	}
	next := env.NextWaypoint()

	slog.Info("tactical diagnostics",
		"tick", env.Tick,
		"life", fmt.Sprintf("%d/%d", env.Self.Life, env.Self.MaxLife),
		"enemiesInCastRange", len(env.EnemiesInRange(env.CastRange())),
		"forceInHalfRange", env.LocalForce(env.CastRange()/2),
		"target", target,
		"nextWaypoint", next,
		"distanceToWaypoint", int(geom.Distance(env.Self.Pos(), next)),
	)
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
