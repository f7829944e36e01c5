package swrl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/adalundhe/owlreasoner/core/ontology"
)

// ErrInvalidEncoding is returned when a rule document cannot be decoded.
var ErrInvalidEncoding = errors.New("invalid rule encoding")

// ruleDocument is the JSON form of a rule. Terms use their N-Triples form
// and variables are written "?name".
type ruleDocument struct {
	Name       string         `json:"name"`
	Text       string         `json:"text,omitempty"`
	Antecedent []atomDocument `json:"antecedent"`
	Consequent []atomDocument `json:"consequent"`
}

type atomDocument struct {
	Kind      string              `json:"kind"`
	Class     *expressionDocument `json:"class,omitempty"`
	Property  string              `json:"property,omitempty"`
	Inverse   bool                `json:"inverse,omitempty"`
	Arguments []string            `json:"arguments"`
}

type expressionDocument struct {
	Type        string               `json:"type"`
	IRI         string               `json:"iri,omitempty"`
	Property    string               `json:"property,omitempty"`
	Inverse     bool                 `json:"inverse,omitempty"`
	Operands    []expressionDocument `json:"operands,omitempty"`
	Individuals []string             `json:"individuals,omitempty"`
	Value       string               `json:"value,omitempty"`
}

// MarshalRule encodes a rule as JSON.
func MarshalRule(r *Rule) ([]byte, error) {
	doc := ruleDocument{
		Name:       r.name,
		Text:       r.String(),
		Antecedent: make([]atomDocument, 0, len(r.antecedent)+len(r.builtins)),
		Consequent: make([]atomDocument, 0, len(r.consequent)),
	}
	for _, a := range r.Antecedent() {
		doc.Antecedent = append(doc.Antecedent, encodeAtom(a))
	}
	for _, a := range r.consequent {
		doc.Consequent = append(doc.Consequent, encodeAtom(a))
	}
	return json.Marshal(doc)
}

// UnmarshalRule decodes a rule encoded by MarshalRule and validates it.
func UnmarshalRule(data []byte) (*Rule, error) {
	var doc ruleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	antecedent, err := decodeAtoms(doc.Antecedent)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", doc.Name, err)
	}
	consequent, err := decodeAtoms(doc.Consequent)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", doc.Name, err)
	}
	return NewRule(doc.Name, antecedent, consequent)
}

func encodeAtom(a Atom) atomDocument {
	doc := atomDocument{Kind: a.kind.String()}
	switch a.kind {
	case AtomClass:
		cls := encodeExpression(a.class)
		doc.Class = &cls
	case AtomObjectProperty, AtomNegativeObjectProperty:
		doc.Property = a.objectProperty.Property.String()
		doc.Inverse = a.objectProperty.Inverse
	case AtomSameAs, AtomDifferentFrom:
	default:
		doc.Property = a.property.String()
	}
	for _, arg := range a.Arguments() {
		doc.Arguments = append(doc.Arguments, arg.String())
	}
	return doc
}

func decodeAtoms(docs []atomDocument) ([]Atom, error) {
	out := make([]Atom, 0, len(docs))
	for _, d := range docs {
		a, err := decodeAtom(d)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func decodeAtom(d atomDocument) (Atom, error) {
	args := make([]Argument, len(d.Arguments))
	for i, s := range d.Arguments {
		arg, err := decodeArgument(s)
		if err != nil {
			return Atom{}, err
		}
		args[i] = arg
	}

	if d.Kind == AtomBuiltIn.String() {
		property, err := decodeTerm(d.Property)
		if err != nil {
			return Atom{}, err
		}
		return NewBuiltInAtom(property.Value(), args...)
	}

	if len(args) == 0 || !args[0].IsVariable() {
		return Atom{}, fmt.Errorf("%w: %s atom needs a left variable", ErrInvalidEncoding, d.Kind)
	}
	left := args[0].Variable()
	if d.Kind == AtomClass.String() {
		if d.Class == nil || len(args) != 1 {
			return Atom{}, fmt.Errorf("%w: class atom needs a class and one argument", ErrInvalidEncoding)
		}
		class, err := decodeExpression(*d.Class)
		if err != nil {
			return Atom{}, err
		}
		return NewClassAtom(class, left)
	}

	if len(args) != 2 {
		return Atom{}, fmt.Errorf("%w: %s atom needs two arguments, got %d", ErrInvalidEncoding, d.Kind, len(args))
	}
	right := args[1]
	switch d.Kind {
	case AtomSameAs.String():
		return NewSameAsAtom(left, right)
	case AtomDifferentFrom.String():
		return NewDifferentFromAtom(left, right)
	}

	property, err := decodeTerm(d.Property)
	if err != nil {
		return Atom{}, err
	}
	expr := ontology.ObjectPropertyExpression{Property: property, Inverse: d.Inverse}
	switch d.Kind {
	case AtomObjectProperty.String():
		return NewObjectPropertyAtom(expr, left, right)
	case AtomNegativeObjectProperty.String():
		return NewNegativeObjectPropertyAtom(expr, left, right)
	case AtomDataProperty.String():
		return NewDataPropertyAtom(property, left, right)
	case AtomNegativeDataProperty.String():
		return NewNegativeDataPropertyAtom(property, left, right)
	case AtomAnnotationProperty.String():
		return NewAnnotationPropertyAtom(property, left, right)
	default:
		return Atom{}, fmt.Errorf("%w: unknown atom kind %q", ErrInvalidEncoding, d.Kind)
	}
}

func decodeArgument(s string) (Argument, error) {
	if strings.HasPrefix(s, "?") {
		if len(s) == 1 {
			return Argument{}, fmt.Errorf("%w: empty variable", ErrInvalidEncoding)
		}
		return Var(s), nil
	}
	t, err := decodeTerm(s)
	if err != nil {
		return Argument{}, err
	}
	return Const(t), nil
}

func decodeTerm(s string) (ontology.Term, error) {
	t, err := ontology.ParseTerm(s)
	if err != nil {
		return ontology.Term{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return t, nil
}

// =============================================================================
// Class expressions
// =============================================================================

func encodeExpression(expr ontology.ClassExpression) expressionDocument {
	switch e := expr.(type) {
	case ontology.Class:
		return expressionDocument{Type: "Class", IRI: e.IRI.String()}
	case ontology.ObjectIntersectionOf:
		return expressionDocument{Type: "ObjectIntersectionOf", Operands: encodeExpressions(e.Operands)}
	case ontology.ObjectUnionOf:
		return expressionDocument{Type: "ObjectUnionOf", Operands: encodeExpressions(e.Operands)}
	case ontology.ObjectComplementOf:
		return expressionDocument{Type: "ObjectComplementOf", Operands: encodeExpressions([]ontology.ClassExpression{e.Operand})}
	case ontology.ObjectOneOf:
		doc := expressionDocument{Type: "ObjectOneOf"}
		for _, ind := range e.Individuals {
			doc.Individuals = append(doc.Individuals, ind.String())
		}
		return doc
	case ontology.ObjectSomeValuesFrom:
		return expressionDocument{
			Type:     "ObjectSomeValuesFrom",
			Property: e.Property.Property.String(),
			Inverse:  e.Property.Inverse,
			Operands: encodeExpressions([]ontology.ClassExpression{e.Filler}),
		}
	case ontology.ObjectHasValue:
		return expressionDocument{
			Type:     "ObjectHasValue",
			Property: e.Property.Property.String(),
			Inverse:  e.Property.Inverse,
			Value:    e.Individual.String(),
		}
	case ontology.ObjectHasSelf:
		return expressionDocument{Type: "ObjectHasSelf", Property: e.Property.Property.String(), Inverse: e.Property.Inverse}
	case ontology.DataHasValue:
		return expressionDocument{Type: "DataHasValue", Property: e.Property.String(), Value: e.Literal.String()}
	default:
		return expressionDocument{Type: fmt.Sprintf("%T", expr)}
	}
}

func encodeExpressions(exprs []ontology.ClassExpression) []expressionDocument {
	out := make([]expressionDocument, len(exprs))
	for i, e := range exprs {
		out[i] = encodeExpression(e)
	}
	return out
}

func decodeExpression(d expressionDocument) (ontology.ClassExpression, error) {
	switch d.Type {
	case "Class":
		iri, err := decodeTerm(d.IRI)
		if err != nil {
			return nil, err
		}
		return ontology.Class{IRI: iri}, nil
	case "ObjectIntersectionOf", "ObjectUnionOf":
		operands, err := decodeExpressions(d.Operands)
		if err != nil {
			return nil, err
		}
		if d.Type == "ObjectUnionOf" {
			return ontology.ObjectUnionOf{Operands: operands}, nil
		}
		return ontology.ObjectIntersectionOf{Operands: operands}, nil
	case "ObjectComplementOf":
		operands, err := decodeExpressions(d.Operands)
		if err != nil {
			return nil, err
		}
		if len(operands) != 1 {
			return nil, fmt.Errorf("%w: complement needs one operand", ErrInvalidEncoding)
		}
		return ontology.ObjectComplementOf{Operand: operands[0]}, nil
	case "ObjectOneOf":
		var oneOf ontology.ObjectOneOf
		for _, s := range d.Individuals {
			t, err := decodeTerm(s)
			if err != nil {
				return nil, err
			}
			oneOf.Individuals = append(oneOf.Individuals, t)
		}
		return oneOf, nil
	case "ObjectSomeValuesFrom", "ObjectHasValue", "ObjectHasSelf":
		property, err := decodeTerm(d.Property)
		if err != nil {
			return nil, err
		}
		expr := ontology.ObjectPropertyExpression{Property: property, Inverse: d.Inverse}
		switch d.Type {
		case "ObjectHasSelf":
			return ontology.ObjectHasSelf{Property: expr}, nil
		case "ObjectHasValue":
			value, err := decodeTerm(d.Value)
			if err != nil {
				return nil, err
			}
			return ontology.ObjectHasValue{Property: expr, Individual: value}, nil
		}
		fillers, err := decodeExpressions(d.Operands)
		if err != nil {
			return nil, err
		}
		if len(fillers) != 1 {
			return nil, fmt.Errorf("%w: some-values-from needs one filler", ErrInvalidEncoding)
		}
		return ontology.ObjectSomeValuesFrom{Property: expr, Filler: fillers[0]}, nil
	case "DataHasValue":
		property, err := decodeTerm(d.Property)
		if err != nil {
			return nil, err
		}
		value, err := decodeTerm(d.Value)
		if err != nil {
			return nil, err
		}
		return ontology.DataHasValue{Property: property, Literal: value}, nil
	default:
		return nil, fmt.Errorf("%w: unknown class expression %q", ErrInvalidEncoding, d.Type)
	}
}

func decodeExpressions(docs []expressionDocument) ([]ontology.ClassExpression, error) {
	out := make([]ontology.ClassExpression, 0, len(docs))
	for _, d := range docs {
		e, err := decodeExpression(d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
