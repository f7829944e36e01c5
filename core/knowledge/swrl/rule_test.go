package swrl

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/owlreasoner/core/ontology"
	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

func adultRule(t *testing.T) *Rule {
	t.Helper()
	r, err := NewRule("adult",
		[]Atom{
			must(NewClassAtom(class("Person"), "p")),
			must(NewDataPropertyAtom(iri("age"), "p", Var("a"))),
			must(NewBuiltInAtom(vocabulary.SwrlbGreaterThan, Var("a"), Const(ontology.NewLiteral("18", vocabulary.XsdInteger)))),
		},
		[]Atom{must(NewClassAtom(class("Adult"), "p"))},
	)
	require.NoError(t, err)
	return r
}

func TestNewRule_Validation(t *testing.T) {
	person := must(NewClassAtom(class("Person"), "p"))
	filter := must(NewBuiltInAtom(vocabulary.SwrlbNotEqual, Var("p"), Var("q")))

	_, err := NewRule("  ", []Atom{person}, nil)
	assert.ErrorIs(t, err, ErrEmptyRuleName)

	_, err = NewRule("r", []Atom{filter}, nil)
	assert.ErrorIs(t, err, ErrEmptyAntecedent)

	_, err = NewRule("r", []Atom{person, filter}, nil)
	assert.ErrorIs(t, err, ErrUnboundVariable)

	_, err = NewRule("r", []Atom{person}, []Atom{must(NewClassAtom(class("Adult"), "q"))})
	assert.ErrorIs(t, err, ErrUnboundVariable)

	_, err = NewRule("r", []Atom{person}, []Atom{must(NewBuiltInAtom(vocabulary.SwrlbEqual, Var("p"), Var("p")))})
	assert.ErrorIs(t, err, ErrBuiltInInConsequent)

	r, err := NewRule(" r ", []Atom{person}, nil)
	require.NoError(t, err)
	assert.Equal(t, "r", r.Name())
	assert.Empty(t, r.Consequent())
}

func TestRule_Evaluate(t *testing.T) {
	ont := familyOntology()
	r := adultRule(t)

	got, err := r.Evaluate(context.Background(), NewEvaluationContext(), ont)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "adult", got[0].RuleName)
	assert.Equal(t, ontology.ClassAssertion{Class: class("Adult"), Individual: iri("ann")}, got[0].Axiom)
	assert.Contains(t, r.String(), " -> ")
	assert.Len(t, r.Antecedent(), 3)
}

func TestRule_EvaluateNoMatch(t *testing.T) {
	r := adultRule(t)
	got, err := r.Evaluate(context.Background(), nil, ontology.NewMemoryOntology(ex))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRule_EvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := adultRule(t).Evaluate(ctx, NewEvaluationContext(), familyOntology())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRule_ObserverSeesEveryState(t *testing.T) {
	var mu sync.Mutex
	var states []RuleState
	ectx := NewEvaluationContext(WithObserver(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "adult", e.Rule)
		states = append(states, e.State)
	}))

	_, err := adultRule(t).Evaluate(context.Background(), ectx, familyOntology())
	require.NoError(t, err)
	assert.Equal(t, []RuleState{
		StateInit,
		StateAntecedentEvaluation,
		StateJoin,
		StateBuiltInFiltering,
		StateConsequentEvaluation,
		StateDone,
	}, states)
	assert.Equal(t, "builtin_filtering", StateBuiltInFiltering.String())
}

func TestRule_NotEqualIgnoresSerialization(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.ObjectPropertyAssertion{Property: prop("hasParent"), Source: iri("bob"), Target: iri("ann")},
		ontology.ObjectPropertyAssertion{Property: prop("hasParent"), Source: ontology.NewIRI(ex + "bob/"), Target: iri("ann")},
		ontology.ObjectPropertyAssertion{Property: prop("hasParent"), Source: iri("cid"), Target: iri("ann")},
	)
	r, err := NewRule("siblings",
		[]Atom{
			must(NewObjectPropertyAtom(prop("hasParent"), "x", Var("p"))),
			must(NewObjectPropertyAtom(prop("hasParent"), "y", Var("p"))),
			must(NewBuiltInAtom(vocabulary.SwrlbNotEqual, Var("x"), Var("y"))),
		},
		[]Atom{must(NewObjectPropertyAtom(prop("hasSibling"), "x", Var("y")))},
	)
	require.NoError(t, err)

	table, err := r.EvaluateAntecedent(context.Background(), NewEvaluationContext(), ont)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len(), "bob and bob/ are one individual")

	got, err := r.Evaluate(context.Background(), NewEvaluationContext(), ont)
	require.NoError(t, err)
	keys := make([]string, len(got))
	for i, inf := range got {
		keys[i] = inf.Key()
	}
	assert.ElementsMatch(t, []string{
		ontology.ObjectPropertyAssertion{Property: prop("hasSibling"), Source: iri("bob"), Target: iri("cid")}.String(),
		ontology.ObjectPropertyAssertion{Property: prop("hasSibling"), Source: iri("cid"), Target: iri("bob")}.String(),
	}, keys)
}

func TestEvaluationContext_SharesExtensions(t *testing.T) {
	provider := &countingProvider{}
	ectx := NewEvaluationContext(WithExtensionProvider(provider))
	ont := familyOntology()

	a := must(NewClassAtom(class("Person"), "p"))
	a.EvaluateOnAntecedent(ectx.ForRule("one"), ont)
	a.EvaluateOnAntecedent(ectx.ForRule("two"), ont)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "two", ectx.ForRule("two").RuleName())
	assert.Equal(t, "", ectx.RuleName())
	assert.True(t, ectx.Reasoning())
}

type countingProvider struct {
	mu    sync.Mutex
	calls int
}

func (p *countingProvider) IndividualsOf(ont ontology.Ontology, class ontology.ClassExpression, reasoning bool) []ontology.Term {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return ont.IndividualsOf(class, reasoning)
}
