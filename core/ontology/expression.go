package ontology

import (
	"strings"

	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

// =============================================================================
// Object Property Expressions
// =============================================================================

// ObjectPropertyExpression is a named object property, optionally inverted.
type ObjectPropertyExpression struct {
	Property Term
	Inverse  bool
}

// ObjectProperty returns the expression for a named object property.
func ObjectProperty(iri string) ObjectPropertyExpression {
	return ObjectPropertyExpression{Property: NewIRI(iri)}
}

// InverseOf returns the inverse of the named object property.
func InverseOf(iri string) ObjectPropertyExpression {
	return ObjectPropertyExpression{Property: NewIRI(iri), Inverse: true}
}

// Invert returns the expression with the opposite direction.
func (p ObjectPropertyExpression) Invert() ObjectPropertyExpression {
	return ObjectPropertyExpression{Property: p.Property, Inverse: !p.Inverse}
}

// IsNull reports whether the expression names no property.
func (p ObjectPropertyExpression) IsNull() bool { return p.Property.IsNull() }

// String returns the functional-syntax form of the expression.
func (p ObjectPropertyExpression) String() string {
	if p.Inverse {
		return "ObjectInverseOf(" + p.Property.String() + ")"
	}
	return p.Property.String()
}

// =============================================================================
// Class Expressions
// =============================================================================

// ClassExpression is the closed set of class expressions understood by the
// reasoner. String returns the canonical functional-syntax form, which also
// serves as the expression's identity key.
type ClassExpression interface {
	String() string
	classExpression()
}

// Class is a named class.
type Class struct {
	IRI Term
}

// NamedClass returns the named class with the given IRI.
func NamedClass(iri string) Class {
	return Class{IRI: NewIRI(iri)}
}

// Thing returns owl:Thing.
func Thing() Class { return NamedClass(vocabulary.OwlThing) }

// Nothing returns owl:Nothing.
func Nothing() Class { return NamedClass(vocabulary.OwlNothing) }

func (c Class) String() string { return c.IRI.String() }
func (Class) classExpression() {}

// IsThing reports whether the class is owl:Thing.
func (c Class) IsThing() bool { return c.IRI.Value() == vocabulary.OwlThing }

// IsNothing reports whether the class is owl:Nothing.
func (c Class) IsNothing() bool { return c.IRI.Value() == vocabulary.OwlNothing }

// ObjectIntersectionOf is the conjunction of its operands.
type ObjectIntersectionOf struct {
	Operands []ClassExpression
}

func (e ObjectIntersectionOf) String() string {
	return "ObjectIntersectionOf(" + joinExpressions(e.Operands) + ")"
}
func (ObjectIntersectionOf) classExpression() {}

// ObjectUnionOf is the disjunction of its operands.
type ObjectUnionOf struct {
	Operands []ClassExpression
}

func (e ObjectUnionOf) String() string {
	return "ObjectUnionOf(" + joinExpressions(e.Operands) + ")"
}
func (ObjectUnionOf) classExpression() {}

// ObjectComplementOf is the negation of its operand.
type ObjectComplementOf struct {
	Operand ClassExpression
}

func (e ObjectComplementOf) String() string {
	return "ObjectComplementOf(" + e.Operand.String() + ")"
}
func (ObjectComplementOf) classExpression() {}

// ObjectOneOf is the enumeration of its individuals.
type ObjectOneOf struct {
	Individuals []Term
}

func (e ObjectOneOf) String() string {
	return "ObjectOneOf(" + joinTerms(e.Individuals) + ")"
}
func (ObjectOneOf) classExpression() {}

// ObjectSomeValuesFrom holds for individuals related through Property to
// at least one member of Filler.
type ObjectSomeValuesFrom struct {
	Property ObjectPropertyExpression
	Filler   ClassExpression
}

func (e ObjectSomeValuesFrom) String() string {
	return "ObjectSomeValuesFrom(" + e.Property.String() + " " + e.Filler.String() + ")"
}
func (ObjectSomeValuesFrom) classExpression() {}

// ObjectHasValue holds for individuals related through Property to Individual.
type ObjectHasValue struct {
	Property   ObjectPropertyExpression
	Individual Term
}

func (e ObjectHasValue) String() string {
	return "ObjectHasValue(" + e.Property.String() + " " + e.Individual.String() + ")"
}
func (ObjectHasValue) classExpression() {}

// ObjectHasSelf holds for individuals related to themselves through Property.
type ObjectHasSelf struct {
	Property ObjectPropertyExpression
}

func (e ObjectHasSelf) String() string {
	return "ObjectHasSelf(" + e.Property.String() + ")"
}
func (ObjectHasSelf) classExpression() {}

// DataHasValue holds for individuals carrying Literal through Property.
type DataHasValue struct {
	Property Term
	Literal  Term
}

func (e DataHasValue) String() string {
	return "DataHasValue(" + e.Property.String() + " " + e.Literal.String() + ")"
}
func (DataHasValue) classExpression() {}

// AsNamedClass returns the class IRI if the expression is a named class.
func AsNamedClass(expr ClassExpression) (Term, bool) {
	if c, ok := expr.(Class); ok {
		return c.IRI, true
	}
	return Term{}, false
}

func joinExpressions(exprs []ClassExpression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

func joinTerms(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
