package swrl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adalundhe/owlreasoner/core/ontology"
)

var (
	// ErrEmptyRuleName is returned when a rule has a blank name.
	ErrEmptyRuleName = errors.New("rule name is required")
	// ErrEmptyAntecedent is returned when a rule has no queryable antecedent atom.
	ErrEmptyAntecedent = errors.New("rule antecedent has no atoms")
	// ErrUnboundVariable is returned when a builtin or consequent atom uses a
	// variable that no antecedent atom introduces.
	ErrUnboundVariable = errors.New("variable is not bound by the antecedent")
	// ErrBuiltInInConsequent is returned when a builtin appears in a consequent.
	ErrBuiltInInConsequent = errors.New("builtin atoms are only allowed in the antecedent")
)

// =============================================================================
// Rule states
// =============================================================================

// RuleState is a step of rule evaluation.
type RuleState uint8

const (
	StateInit RuleState = iota
	StateAntecedentEvaluation
	StateJoin
	StateBuiltInFiltering
	StateConsequentEvaluation
	StateDone
)

var ruleStateNames = [...]string{
	StateInit:                 "init",
	StateAntecedentEvaluation: "antecedent_evaluation",
	StateJoin:                 "join",
	StateBuiltInFiltering:     "builtin_filtering",
	StateConsequentEvaluation: "consequent_evaluation",
	StateDone:                 "done",
}

// String returns the state name.
func (s RuleState) String() string {
	if int(s) < len(ruleStateNames) {
		return ruleStateNames[s]
	}
	return fmt.Sprintf("RuleState(%d)", uint8(s))
}

// Event reports the progress of one rule evaluation.
type Event struct {
	Rule    string
	State   RuleState
	Rows    int
	Elapsed time.Duration
}

// Observer receives evaluation events. It may be called from several
// goroutines at once when rules run in parallel.
type Observer func(Event)

// =============================================================================
// Rule
// =============================================================================

// Rule is an immutable SWRL rule: a conjunction of antecedent atoms,
// builtin filters over their bindings, and consequent atoms materialized
// for every surviving row.
type Rule struct {
	name       string
	antecedent []Atom
	builtins   []Atom
	consequent []Atom
}

// NewRule validates and returns a rule. Builtin atoms in the antecedent
// become filters applied in the order given.
func NewRule(name string, antecedent, consequent []Atom) (*Rule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRuleName
	}
	r := &Rule{name: name}
	for _, a := range antecedent {
		if a.kind == AtomBuiltIn {
			r.builtins = append(r.builtins, a)
		} else {
			r.antecedent = append(r.antecedent, a)
		}
	}
	if len(r.antecedent) == 0 {
		return nil, fmt.Errorf("rule %s: %w", name, ErrEmptyAntecedent)
	}

	bound := make(map[Variable]bool)
	for _, a := range r.antecedent {
		for _, v := range a.Variables() {
			bound[v] = true
		}
	}
	for _, a := range r.builtins {
		if err := checkBound(name, a, bound); err != nil {
			return nil, err
		}
	}
	for _, a := range consequent {
		if a.kind == AtomBuiltIn {
			return nil, fmt.Errorf("rule %s: %s: %w", name, a, ErrBuiltInInConsequent)
		}
		if err := checkBound(name, a, bound); err != nil {
			return nil, err
		}
	}
	r.consequent = append([]Atom(nil), consequent...)
	return r, nil
}

func checkBound(rule string, a Atom, bound map[Variable]bool) error {
	for _, v := range a.Variables() {
		if !bound[v] {
			return fmt.Errorf("rule %s: %s in %s: %w", rule, v, a, ErrUnboundVariable)
		}
	}
	return nil
}

// Name returns the rule name.
func (r *Rule) Name() string { return r.name }

// Antecedent returns the queryable antecedent atoms followed by the builtins.
func (r *Rule) Antecedent() []Atom {
	out := make([]Atom, 0, len(r.antecedent)+len(r.builtins))
	out = append(out, r.antecedent...)
	return append(out, r.builtins...)
}

// Consequent returns the consequent atoms.
func (r *Rule) Consequent() []Atom {
	return append([]Atom(nil), r.consequent...)
}

// String returns the rule in SWRL syntax.
func (r *Rule) String() string {
	return joinAtoms(r.Antecedent()) + " -> " + joinAtoms(r.consequent)
}

func joinAtoms(atoms []Atom) string {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ^ ")
}

// Evaluate runs the rule against the ontology and returns the candidate
// inferences, each attributed to the rule. A rule whose antecedent matches
// nothing returns no inferences and no error; the only error is the
// cancellation of ctx.
func (r *Rule) Evaluate(ctx context.Context, ectx *EvaluationContext, ont ontology.Ontology) ([]Inference, error) {
	ectx = ectx.ForRule(r.name)
	table, err := r.evaluateAntecedent(ctx, ectx, ont)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var out []Inference
	for _, a := range r.consequent {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, a.EvaluateOnConsequent(ectx, table, ont)...)
	}
	ectx.notify(Event{Rule: r.name, State: StateConsequentEvaluation, Rows: len(out), Elapsed: time.Since(start)})
	ectx.notify(Event{Rule: r.name, State: StateDone, Rows: len(out)})
	return out, nil
}

// EvaluateAntecedent returns the joined and filtered binding table of the
// rule antecedent.
func (r *Rule) EvaluateAntecedent(ctx context.Context, ectx *EvaluationContext, ont ontology.Ontology) (*Table, error) {
	return r.evaluateAntecedent(ctx, ectx.ForRule(r.name), ont)
}

func (r *Rule) evaluateAntecedent(ctx context.Context, ectx *EvaluationContext, ont ontology.Ontology) (*Table, error) {
	ectx.notify(Event{Rule: r.name, State: StateInit})

	start := time.Now()
	tables := make([]*Table, len(r.antecedent))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range r.antecedent {
		i, a := i, a
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tables[i] = a.EvaluateOnAntecedent(ectx, ont)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ectx.notify(Event{Rule: r.name, State: StateAntecedentEvaluation, Rows: totalRows(tables), Elapsed: time.Since(start)})

	start = time.Now()
	joined := tables[0]
	for _, t := range tables[1:] {
		joined = Join(joined, t)
	}
	ectx.notify(Event{Rule: r.name, State: StateJoin, Rows: joined.Len(), Elapsed: time.Since(start)})

	start = time.Now()
	for _, b := range r.builtins {
		joined = joined.Filter(b.evaluateBuiltIn)
	}
	ectx.notify(Event{Rule: r.name, State: StateBuiltInFiltering, Rows: joined.Len(), Elapsed: time.Since(start)})
	return joined, nil
}

func totalRows(tables []*Table) int {
	n := 0
	for _, t := range tables {
		n += t.Len()
	}
	return n
}
