package inference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
)

func TestDedupPolicies_CoverEveryAxiomKind(t *testing.T) {
	for _, kind := range ontology.AllAxiomKinds() {
		_, ok := dedupPolicies[kind]
		assert.True(t, ok, "no deduplication policy for %s", kind)
	}
	assert.Len(t, dedupPolicies, len(ontology.AllAxiomKinds()))
}

func buildIndex(ont ontology.Ontology) *dedupIndex {
	index := &dedupIndex{sets: make(map[ontology.AxiomKind]map[string]struct{})}
	for _, kind := range dedupKinds() {
		index.sets[kind] = indexKind(ont, kind)
	}
	return index
}

func TestDedupIndex_Exact(t *testing.T) {
	asserted := ontology.ClassAssertion{Class: class("Cat"), Individual: iri("felix")}
	index := buildIndex(ontology.NewMemoryOntology(ex).MustAdd(asserted))

	assert.True(t, index.contains(swrl.NewInference("r", asserted)))
	assert.False(t, index.contains(swrl.NewInference("r", ontology.ClassAssertion{Class: class("Dog"), Individual: iri("felix")})))
}

func TestDedupIndex_PairwiseIgnoresOperandOrder(t *testing.T) {
	index := buildIndex(ontology.NewMemoryOntology(ex).MustAdd(
		ontology.EquivalentClasses{Classes: []ontology.ClassExpression{class("C"), class("A"), class("B")}},
	))

	restated := []ontology.Axiom{
		ontology.EquivalentClasses{Classes: []ontology.ClassExpression{class("A"), class("B")}},
		ontology.EquivalentClasses{Classes: []ontology.ClassExpression{class("C"), class("B")}},
	}
	for _, a := range restated {
		assert.True(t, index.contains(swrl.NewInference("r", a)), a.String())
	}

	fresh := ontology.EquivalentClasses{Classes: []ontology.ClassExpression{class("A"), class("D")}}
	assert.False(t, index.contains(swrl.NewInference("r", fresh)))
}

func TestDedupIndex_IndividualPairsAreDirectional(t *testing.T) {
	same := ontology.SameIndividual{Individuals: []ontology.Term{iri("y"), iri("x")}}
	different := ontology.DifferentIndividuals{Individuals: []ontology.Term{iri("a"), iri("b")}}
	index := buildIndex(ontology.NewMemoryOntology(ex).MustAdd(same, different))

	assert.True(t, index.contains(swrl.NewInference("r", same)))
	assert.True(t, index.contains(swrl.NewInference("r", different)))
	assert.False(t, index.contains(swrl.NewInference("r",
		ontology.SameIndividual{Individuals: []ontology.Term{iri("x"), iri("y")}})))
	assert.False(t, index.contains(swrl.NewInference("r",
		ontology.DifferentIndividuals{Individuals: []ontology.Term{iri("b"), iri("a")}})))
}

func TestReasoner_KeepsReversedSameAs(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.ClassAssertion{Class: class("P"), Individual: iri("a")},
		ontology.ClassAssertion{Class: class("Q"), Individual: iri("b")},
		ontology.SameIndividual{Individuals: []ontology.Term{iri("a"), iri("b")}},
	)
	r := NewReasoner(WithLogger(quietLogger()))
	r.AddSWRLRule(swrl.MustParse("pq", `ex:P(?x) ^ ex:Q(?y) -> sameAs(?x, ?y)`, exPrefixes))

	report, err := r.ApplyToOntology(context.Background(), ont, false)
	require.NoError(t, err)
	assert.Equal(t, keysOf(ontology.SameIndividual{Individuals: []ontology.Term{iri("b"), iri("a")}}),
		inferenceKeys(report.Inferences()))
}

func TestDedupIndex_KeepsUnindexedKinds(t *testing.T) {
	decl := ontology.Declaration{Entity: ontology.EntityClass, IRI: iri("Cat")}
	index := buildIndex(ontology.NewMemoryOntology(ex).MustAdd(decl))
	assert.False(t, index.contains(swrl.NewInference("r", decl)))
}

func TestDistinct_KeepsFirstProvenance(t *testing.T) {
	fact := ontology.ClassAssertion{Class: class("Cat"), Individual: iri("felix")}
	got := distinct([]swrl.Inference{
		swrl.NewInference("first", fact),
		swrl.NewInference("second", fact),
	})
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].RuleName)
}

func TestReasoner_SecondRunRestatesNothing(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.ClassAssertion{Class: class("Cat"), Individual: iri("felix")},
		ontology.SubClassOf{Sub: class("Cat"), Super: class("Feline")},
		ontology.SubClassOf{Sub: class("Feline"), Super: class("Animal")},
		ontology.EquivalentClasses{Classes: []ontology.ClassExpression{class("Animal"), class("Creature")}},
		characteristicOf(ontology.KindTransitiveObjectProperty, "ancestorOf"),
		characteristicOf(ontology.KindSymmetricObjectProperty, "knows"),
		opa("ancestorOf", "a", "b"),
		opa("ancestorOf", "b", "c"),
		opa("knows", "a", "felix"),
	)
	r := NewReasoner()
	for _, rule := range []StandardRule{
		ClassAssertionEntailment, SubClassOfEntailment, EquivalentClassesEntailment,
		TransitiveObjectPropertyEntailment, SymmetricObjectPropertyEntailment,
	} {
		r.AddRule(rule)
	}

	first, err := r.ApplyToOntology(context.Background(), ont, true)
	require.NoError(t, err)
	require.Positive(t, first.Count())
	assert.Equal(t, first.Count(), first.Merged)

	firstKeys := make(map[string]bool)
	for _, inf := range first.Inferences() {
		firstKeys[inf.Key()] = true
	}

	second, err := r.ApplyToOntology(context.Background(), ont, true)
	require.NoError(t, err)
	for _, inf := range second.Inferences() {
		assert.False(t, firstKeys[inf.Key()], "restated %s", inf.Key())
	}
	assert.Zero(t, second.Count())
}
