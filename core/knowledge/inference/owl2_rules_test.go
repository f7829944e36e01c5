package inference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

const ex = "http://example.org/"

func iri(local string) ontology.Term { return ontology.NewIRI(ex + local) }

func class(local string) ontology.Class { return ontology.NamedClass(ex + local) }

func prop(local string) ontology.ObjectPropertyExpression { return ontology.ObjectProperty(ex + local) }

func opa(p, s, t string) ontology.ObjectPropertyAssertion {
	return ontology.ObjectPropertyAssertion{Property: prop(p), Source: iri(s), Target: iri(t)}
}

func characteristicOf(kind ontology.AxiomKind, p string) ontology.ObjectPropertyCharacteristic {
	return ontology.ObjectPropertyCharacteristic{Characteristic: kind, Property: prop(p)}
}

// run evaluates a single standard rule directly, without deduplication.
func run(t *testing.T, rule StandardRule, ont ontology.Ontology) []string {
	t.Helper()
	fn := dispatch(rule)
	require.NotNil(t, fn, rule.String())
	got, err := fn(context.Background(), swrl.NewEvaluationContext(), ont)
	require.NoError(t, err)
	keys := make([]string, len(got))
	for i, inf := range got {
		assert.Equal(t, rule.String(), inf.RuleName)
		keys[i] = inf.Key()
	}
	return keys
}

func keysOf(axioms ...ontology.Axiom) []string {
	out := make([]string, len(axioms))
	for i, a := range axioms {
		out[i] = a.String()
	}
	return out
}

func TestOWL2Rules_EveryRuleDispatches(t *testing.T) {
	for r := OWL2Rule(0); r < owl2RuleCount; r++ {
		assert.NotNil(t, dispatch(r), r.String())
	}
	assert.Nil(t, dispatch(OWL2Rule(200)))
}

func TestClassAssertionEntailment_CatFelineAnimal(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.ClassAssertion{Class: class("Cat"), Individual: iri("felix")},
		ontology.SubClassOf{Sub: class("Cat"), Super: class("Feline")},
		ontology.SubClassOf{Sub: class("Feline"), Super: class("Animal")},
	)

	got := run(t, ClassAssertionEntailment, ont)
	assert.ElementsMatch(t, keysOf(
		ontology.ClassAssertion{Class: class("Feline"), Individual: iri("felix")},
		ontology.ClassAssertion{Class: class("Animal"), Individual: iri("felix")},
	), got)
}

func TestClassAssertionEntailment_DisjointnessGuard(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.ClassAssertion{Class: class("Cat"), Individual: iri("felix")},
		ontology.ClassAssertion{Class: class("Plant"), Individual: iri("felix")},
		ontology.SubClassOf{Sub: class("Cat"), Super: class("Animal")},
		ontology.DisjointClasses{Classes: []ontology.ClassExpression{class("Animal"), class("Plant")}},
	)
	assert.Empty(t, run(t, ClassAssertionEntailment, ont))
}

func TestClassAssertionEntailment_DefinedClass(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.ObjectPropertyAssertion{Property: prop("hasChild"), Source: iri("ann"), Target: iri("bob")},
		ontology.EquivalentClasses{Classes: []ontology.ClassExpression{
			class("Parent"),
			ontology.ObjectSomeValuesFrom{Property: prop("hasChild"), Filler: ontology.Thing()},
		}},
	)
	assert.Equal(t, keysOf(ontology.ClassAssertion{Class: class("Parent"), Individual: iri("ann")}),
		run(t, ClassAssertionEntailment, ont))
}

func TestClassTaxonomyRules(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.SubClassOf{Sub: class("Cat"), Super: class("Feline")},
		ontology.SubClassOf{Sub: class("Feline"), Super: class("Animal")},
		ontology.EquivalentClasses{Classes: []ontology.ClassExpression{class("Animal"), class("Creature")}},
		ontology.DisjointClasses{Classes: []ontology.ClassExpression{class("Animal"), class("Plant")}},
	)

	assert.Contains(t, run(t, SubClassOfEntailment, ont),
		ontology.SubClassOf{Sub: class("Cat"), Super: class("Animal")}.String())
	assert.Contains(t, run(t, SubClassOfEntailment, ont),
		ontology.SubClassOf{Sub: class("Cat"), Super: class("Creature")}.String())
	assert.NotContains(t, run(t, SubClassOfEntailment, ont),
		ontology.SubClassOf{Sub: class("Animal"), Super: class("Creature")}.String(), "equivalents are not restated as subclasses")

	assert.Equal(t, keysOf(ontology.EquivalentClasses{Classes: []ontology.ClassExpression{class("Animal"), class("Creature")}}),
		run(t, EquivalentClassesEntailment, ont))

	assert.Contains(t, run(t, DisjointClassesEntailment, ont),
		ontology.DisjointClasses{Classes: []ontology.ClassExpression{class("Cat"), class("Plant")}}.String())
}

func TestObjectPropertyHierarchyRules(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		opa("hasMother", "bob", "ann"),
		ontology.SubObjectPropertyOf{Chain: []ontology.ObjectPropertyExpression{prop("hasMother")}, Super: prop("hasParent")},
		ontology.EquivalentObjectProperties{Properties: []ontology.ObjectPropertyExpression{prop("hasParent"), prop("hasProgenitor")}},
		ontology.InverseObjectProperties{Left: prop("hasParent"), Right: prop("hasChild")},
		opa("hasParent", "cid", "ann"),
	)

	sub := run(t, SubObjectPropertyOfEntailment, ont)
	assert.Contains(t, sub, opa("hasParent", "bob", "ann").String())
	assert.Contains(t, sub, opa("hasProgenitor", "bob", "ann").String())

	eq := run(t, EquivalentObjectPropertiesEntailment, ont)
	assert.Contains(t, eq, opa("hasProgenitor", "cid", "ann").String())

	inv := run(t, InverseObjectPropertiesEntailment, ont)
	assert.Contains(t, inv, opa("hasChild", "ann", "cid").String())
}

func TestObjectPropertyCharacteristicRules(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		characteristicOf(ontology.KindSymmetricObjectProperty, "knows"),
		characteristicOf(ontology.KindTransitiveObjectProperty, "ancestorOf"),
		characteristicOf(ontology.KindReflexiveObjectProperty, "sameAgeAs"),
		opa("knows", "ann", "bob"),
		opa("ancestorOf", "a", "b"),
		opa("ancestorOf", "b", "c"),
		opa("ancestorOf", "c", "d"),
	)

	assert.Equal(t, keysOf(opa("knows", "bob", "ann")), run(t, SymmetricObjectPropertyEntailment, ont))

	assert.ElementsMatch(t, keysOf(
		opa("ancestorOf", "a", "b"), opa("ancestorOf", "a", "c"), opa("ancestorOf", "a", "d"),
		opa("ancestorOf", "b", "c"), opa("ancestorOf", "b", "d"),
		opa("ancestorOf", "c", "d"),
	), run(t, TransitiveObjectPropertyEntailment, ont))

	reflexive := run(t, ReflexiveObjectPropertyEntailment, ont)
	assert.Len(t, reflexive, len(ont.Individuals()))
	assert.Contains(t, reflexive, opa("sameAgeAs", "ann", "ann").String())
}

func TestIrreflexiveGuardSuppressesTransitiveLoop(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		characteristicOf(ontology.KindTransitiveObjectProperty, "before"),
		characteristicOf(ontology.KindIrreflexiveObjectProperty, "before"),
		opa("before", "a", "b"),
		opa("before", "b", "a"),
	)
	got := run(t, TransitiveObjectPropertyEntailment, ont)
	assert.NotContains(t, got, opa("before", "a", "a").String())
	assert.Contains(t, got, opa("before", "a", "b").String())
}

func TestDomainAndRangeRules(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		opa("teaches", "ann", "math"),
		ontology.ObjectPropertyDomain{Property: prop("teaches"), Domain: class("Teacher")},
		ontology.ObjectPropertyRange{Property: prop("teaches"), Range: class("Subject")},
		ontology.DataPropertyAssertion{Property: iri("salary"), Source: iri("bob"), Value: ontology.NewLiteral("10", vocabulary.XsdInteger)},
		ontology.DataPropertyDomain{Property: iri("salary"), Domain: class("Employee")},
	)

	assert.Equal(t, keysOf(ontology.ClassAssertion{Class: class("Teacher"), Individual: iri("ann")}),
		run(t, ObjectPropertyDomainEntailment, ont))
	assert.Equal(t, keysOf(ontology.ClassAssertion{Class: class("Subject"), Individual: iri("math")}),
		run(t, ObjectPropertyRangeEntailment, ont))
	assert.Equal(t, keysOf(ontology.ClassAssertion{Class: class("Employee"), Individual: iri("bob")}),
		run(t, DataPropertyDomainEntailment, ont))
}

func TestObjectPropertyChainEntailment(t *testing.T) {
	chain, err := ontology.NewSubObjectPropertyOf(prop("hasUncle"), prop("hasParent"), prop("hasBrother"))
	require.NoError(t, err)
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		chain,
		opa("hasParent", "bob", "ann"),
		opa("hasBrother", "ann", "carl"),
		opa("hasBrother", "zoe", "yan"),
	)
	assert.Equal(t, keysOf(opa("hasUncle", "bob", "carl")), run(t, ObjectPropertyChainEntailment, ont))
}

func TestFunctionalRules(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		characteristicOf(ontology.KindFunctionalObjectProperty, "hasMother"),
		characteristicOf(ontology.KindInverseFunctionalObjectProperty, "hasPassport"),
		opa("hasMother", "bob", "ann"),
		opa("hasMother", "bob", "annie"),
		opa("hasMother", "cid", "eve"),
		opa("hasMother", "cid", "mia"),
		ontology.DifferentIndividuals{Individuals: []ontology.Term{iri("eve"), iri("mia")}},
		opa("hasPassport", "joe", "p1"),
		opa("hasPassport", "joseph", "p1"),
	)

	assert.Equal(t, keysOf(ontology.SameIndividual{Individuals: []ontology.Term{iri("ann"), iri("annie")}}),
		run(t, FunctionalObjectPropertyEntailment, ont))
	assert.Equal(t, keysOf(ontology.SameIndividual{Individuals: []ontology.Term{iri("joe"), iri("joseph")}}),
		run(t, InverseFunctionalObjectPropertyEntailment, ont))
}

func TestDataPropertyRules(t *testing.T) {
	v := ontology.NewLiteral("42", vocabulary.XsdInteger)
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.DataPropertyAssertion{Property: iri("ageInYears"), Source: iri("ann"), Value: v},
		ontology.SubDataPropertyOf{Sub: iri("ageInYears"), Super: iri("age")},
		ontology.EquivalentDataProperties{Properties: []ontology.Term{iri("age"), iri("years")}},
		ontology.DataPropertyAssertion{Property: iri("age"), Source: iri("bob"), Value: v},
	)

	sub := run(t, SubDataPropertyOfEntailment, ont)
	assert.Contains(t, sub, ontology.DataPropertyAssertion{Property: iri("age"), Source: iri("ann"), Value: v}.String())
	assert.Contains(t, sub, ontology.SubDataPropertyOf{Sub: iri("ageInYears"), Super: iri("age")}.String())

	eq := run(t, EquivalentDataPropertiesEntailment, ont)
	assert.Contains(t, eq, ontology.DataPropertyAssertion{Property: iri("years"), Source: iri("bob"), Value: v}.String())
}

func TestSameIndividualEntailment(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.SameIndividual{Individuals: []ontology.Term{iri("a"), iri("b")}},
		ontology.SameIndividual{Individuals: []ontology.Term{iri("b"), iri("c")}},
		ontology.ClassAssertion{Class: class("Person"), Individual: iri("a")},
		opa("knows", "c", "z"),
	)

	got := run(t, SameIndividualEntailment, ont)
	assert.Contains(t, got, ontology.SameIndividual{Individuals: []ontology.Term{iri("a"), iri("c")}}.String())
	assert.Contains(t, got, ontology.ClassAssertion{Class: class("Person"), Individual: iri("c")}.String())
	assert.Contains(t, got, opa("knows", "a", "z").String())
}

func TestDifferentIndividualsEntailment(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.DifferentIndividuals{Individuals: []ontology.Term{iri("a"), iri("b")}},
		ontology.SameIndividual{Individuals: []ontology.Term{iri("b"), iri("c")}},
	)
	got := run(t, DifferentIndividualsEntailment, ont)
	assert.Contains(t, got, ontology.DifferentIndividuals{Individuals: []ontology.Term{iri("a"), iri("c")}}.String())
}

func TestRestrictionRules(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.ClassAssertion{Class: class("Dane"), Individual: iri("ole")},
		ontology.SubClassOf{Sub: class("Dane"), Super: ontology.ObjectHasValue{Property: prop("citizenOf"), Individual: iri("denmark")}},
		ontology.SubClassOf{Sub: class("Dane"), Super: ontology.DataHasValue{Property: iri("language"), Literal: ontology.NewLiteral("da", "")}},
		ontology.ClassAssertion{Class: class("Narcissist"), Individual: iri("nico")},
		ontology.EquivalentClasses{Classes: []ontology.ClassExpression{class("Narcissist"), ontology.ObjectHasSelf{Property: prop("loves")}}},
	)

	assert.ElementsMatch(t, keysOf(
		opa("citizenOf", "ole", "denmark"),
		ontology.DataPropertyAssertion{Property: iri("language"), Source: iri("ole"), Value: ontology.NewLiteral("da", "")},
	), run(t, HasValueEntailment, ont))
	assert.Equal(t, keysOf(opa("loves", "nico", "nico")), run(t, HasSelfEntailment, ont))
}

func TestHasKeyEntailment(t *testing.T) {
	ssn := ontology.NewLiteral("123", vocabulary.XsdString)
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.HasKey{Class: class("Person"), DataProperties: []ontology.Term{iri("ssn")}},
		ontology.ClassAssertion{Class: class("Person"), Individual: iri("jon")},
		ontology.ClassAssertion{Class: class("Person"), Individual: iri("jonathan")},
		ontology.ClassAssertion{Class: class("Person"), Individual: iri("kim")},
		ontology.DataPropertyAssertion{Property: iri("ssn"), Source: iri("jon"), Value: ssn},
		ontology.DataPropertyAssertion{Property: iri("ssn"), Source: iri("jonathan"), Value: ssn},
		ontology.DataPropertyAssertion{Property: iri("ssn"), Source: iri("kim"), Value: ontology.NewLiteral("999", vocabulary.XsdString)},
	)
	assert.Equal(t, keysOf(ontology.SameIndividual{Individuals: []ontology.Term{iri("jon"), iri("jonathan")}}),
		run(t, HasKeyEntailment, ont))
}

func TestOWL2Rules_Cancelled(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		characteristicOf(ontology.KindTransitiveObjectProperty, "p"),
		opa("p", "a", "b"),
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := transitiveObjectPropertyEntailment(ctx, nil, ont)
	assert.ErrorIs(t, err, context.Canceled)
}
