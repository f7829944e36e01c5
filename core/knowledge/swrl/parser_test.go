package swrl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/owlreasoner/core/ontology"
	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

var exPrefixes = map[string]string{"ex": ex, "": ex}

func TestParse_AdultRule(t *testing.T) {
	r, err := Parse("adult", `ex:Person(?p) ^ ex:age(?p, ?a) ^ swrlb:greaterThan(?a, 18) -> ex:Adult(?p)`,
		exPrefixes, WithSchema(familyOntology()))
	require.NoError(t, err)

	ante := r.Antecedent()
	require.Len(t, ante, 3)
	assert.Equal(t, AtomClass, ante[0].Kind())
	assert.Equal(t, class("Person"), ante[0].Class())
	assert.Equal(t, AtomDataProperty, ante[1].Kind())
	assert.Equal(t, AtomBuiltIn, ante[2].Kind())
	assert.Equal(t, ontology.NewLiteral("18", vocabulary.XsdInteger), ante[2].Arguments()[1].Term())

	got, err := r.Evaluate(context.Background(), NewEvaluationContext(), familyOntology())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, iri("ann"), got[0].Axiom.(ontology.ClassAssertion).Individual)
}

func TestParse_AtomKinds(t *testing.T) {
	r, err := Parse("kinds", `
		Person(?x) ^ <http://example.org/hasParent>(?x, ?y) ^ not hasParent(?y, ?x)
		^ ObjectInverseOf(ex:hasChild)(?x, ?z) ^ sameAs(?y, ex:anne) ^ owl:differentFrom(?x, ?z)
		^ ex:name(?x, "Ann"@en) ^ ex:born(?x, "2001-02-03"^^xsd:date) ^ rdfs:label(?x, ?l)
		-> Parent(?y)`, exPrefixes)
	require.NoError(t, err)

	kinds := make([]AtomKind, 0)
	for _, a := range r.Antecedent() {
		kinds = append(kinds, a.Kind())
	}
	assert.Equal(t, []AtomKind{
		AtomClass,
		AtomObjectProperty,
		AtomNegativeObjectProperty,
		AtomObjectProperty,
		AtomSameAs,
		AtomDifferentFrom,
		AtomDataProperty,
		AtomDataProperty,
		AtomAnnotationProperty,
	}, kinds)

	ante := r.Antecedent()
	assert.True(t, ante[3].ObjectProperty().Inverse)
	assert.Equal(t, iri("anne"), ante[4].Right().Term())
	assert.Equal(t, ontology.NewLangLiteral("Ann", "en"), ante[6].Right().Term())
	assert.Equal(t, ontology.NewLiteral("2001-02-03", vocabulary.XsdDate), ante[7].Right().Term())
}

func TestParse_SchemaDecidesVariableRight(t *testing.T) {
	text := `Person(?p) ^ age(?p, ?a) -> Adult(?p)`

	untyped, err := Parse("r", text, exPrefixes)
	require.NoError(t, err)
	assert.Equal(t, AtomObjectProperty, untyped.Antecedent()[1].Kind())

	typed, err := Parse("r", text, exPrefixes, WithSchema(familyOntology()))
	require.NoError(t, err)
	assert.Equal(t, AtomDataProperty, typed.Antecedent()[1].Kind())
}

func TestParse_EmptyConsequentAndBooleans(t *testing.T) {
	r, err := Parse("check", `Person(?p) ^ ex:active(?p, true) ->`, exPrefixes)
	require.NoError(t, err)
	assert.Empty(t, r.Consequent())
	assert.Equal(t, ontology.NewLiteral("true", vocabulary.XsdBoolean), r.Antecedent()[1].Right().Term())
}

func TestParse_Decimal(t *testing.T) {
	r, err := Parse("r", `Person(?p) ^ ex:height(?p, ?h) ^ swrlb:lessThan(?h, 1.5) -> Short(?p)`, exPrefixes)
	require.NoError(t, err)
	assert.Equal(t, ontology.NewLiteral("1.5", vocabulary.XsdDecimal), r.Antecedent()[2].Arguments()[1].Term())
}

func TestParse_NotIsAPrefixOnlyWithWhitespace(t *testing.T) {
	r, err := Parse("r", `notable(?x) -> Famous(?x)`, exPrefixes)
	require.NoError(t, err)
	assert.Equal(t, class("notable"), r.Antecedent()[0].Class())
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("r", "Person(?p) ^\n  hasAge(?p ?a) -> Adult(?p)", exPrefixes)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, 2, perr.Line)
	assert.Greater(t, perr.Column, 1)
}

func TestParse_TrailingInput(t *testing.T) {
	_, err := Parse("r", `Person(?p) -> Adult(?p) garbage`, exPrefixes)
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Contains(t, perr.Details, "garbage")
}

func TestParse_SemanticErrors(t *testing.T) {
	_, err := Parse("r", `foo:Person(?p) -> Adult(?p)`, exPrefixes)
	assert.ErrorIs(t, err, ErrUnknownPrefix)

	_, err = Parse("r", `Person(?p) -> Adult(?p)`, nil)
	assert.ErrorIs(t, err, ErrUnknownPrefix, "bare names need a default namespace")

	_, err = Parse("r", `Person(ex:ann) -> Adult(?p)`, exPrefixes)
	assert.ErrorIs(t, err, ErrMalformedAtom)

	_, err = Parse("r", `not Person(?p) -> Adult(?p)`, exPrefixes)
	assert.ErrorIs(t, err, ErrMalformedAtom)

	_, err = Parse("r", `Person(?p) -> Adult(?q)`, exPrefixes)
	assert.ErrorIs(t, err, ErrUnboundVariable)

	_, err = Parse("r", `Person(?p) ^ swrlb:equal(?p) -> Adult(?p)`, exPrefixes)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParse_RoundTripsRuleString(t *testing.T) {
	r, err := Parse("r", `Person(?x) ^ hasParent(?x, ?y) ^ swrlb:notEqual(?x, ?y) -> ex:knows(?x, ?y)`, exPrefixes)
	require.NoError(t, err)

	again, err := Parse("r", r.String(), nil)
	require.NoError(t, err)
	assert.Equal(t, r.String(), again.String())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("r", "not a rule", exPrefixes) })
}
