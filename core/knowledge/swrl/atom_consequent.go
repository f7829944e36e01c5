package swrl

import (
	"strings"

	"github.com/adalundhe/owlreasoner/core/ontology"
)

// Inference is an axiom produced by a rule together with the name of the
// rule that produced it. Two inferences are the same fact when their axioms
// have the same functional-syntax form; the rule name is provenance only.
type Inference struct {
	RuleName string
	Axiom    ontology.Axiom
}

// NewInference returns an inference attributed to rule.
func NewInference(rule string, axiom ontology.Axiom) Inference {
	return Inference{RuleName: strings.TrimSpace(rule), Axiom: axiom}
}

// Key returns the identity of the inferred fact.
func (i Inference) Key() string { return i.Axiom.String() }

// String returns the inference with its provenance.
func (i Inference) String() string { return i.Axiom.String() + " [" + i.RuleName + "]" }

// EvaluateOnConsequent materializes the atom for every row of table. Rows
// with a null or ill-typed cell in a required column are skipped, a table
// missing a required column yields nothing, and axioms contradicting the
// ontology are suppressed.
func (a Atom) EvaluateOnConsequent(ectx *EvaluationContext, table *Table, ont ontology.Ontology) []Inference {
	if a.kind == AtomBuiltIn || table == nil || !table.HasColumn(string(a.left)) {
		return nil
	}
	if a.right.IsVariable() && !table.HasColumn(string(a.right.Variable())) {
		return nil
	}
	provenance := ectx.RuleName()
	if provenance == "" {
		provenance = a.String()
	}

	var out []Inference
	emit := func(axiom ontology.Axiom) {
		out = append(out, NewInference(provenance, axiom))
	}
	for i := 0; i < table.Len(); i++ {
		row := table.Binding(i)
		left := anonymous(row[string(a.left)])
		right := anonymous(a.right.resolve(row))
		if !left.IsResource() {
			continue
		}
		if a.kind != AtomClass && right.IsNull() {
			continue
		}
		a.materialize(ectx, ont, left, right, emit)
	}
	return out
}

func (a Atom) materialize(ectx *EvaluationContext, ont ontology.Ontology, left, right ontology.Term, emit func(ontology.Axiom)) {
	switch a.kind {
	case AtomClass:
		if ont.CheckClassAssertionCompatibility(a.class, left) {
			emit(ontology.ClassAssertion{Class: a.class, Individual: left})
		}
	case AtomObjectProperty:
		if right.IsResource() && ont.CheckObjectAssertionCompatibility(a.objectProperty, left, right) {
			emit(ontology.ObjectPropertyAssertion{Property: a.objectProperty, Source: left, Target: right})
		}
	case AtomDataProperty:
		if right.IsLiteral() && ont.CheckDataAssertionCompatibility(a.property, left, right) {
			emit(ontology.DataPropertyAssertion{Property: a.property, Source: left, Value: right})
		}
	case AtomSameAs:
		if !right.IsResource() || left == right {
			return
		}
		// each direction is checked on its own, so a row yields 0, 1 or 2 facts
		if !ectx.assertedSameAs(ont, left, right) {
			emit(ontology.SameIndividual{Individuals: []ontology.Term{left, right}})
		}
		if !ectx.assertedSameAs(ont, right, left) {
			emit(ontology.SameIndividual{Individuals: []ontology.Term{right, left}})
		}
	case AtomDifferentFrom:
		if right.IsResource() && left != right {
			emit(ontology.DifferentIndividuals{Individuals: []ontology.Term{left, right}})
		}
	case AtomNegativeObjectProperty:
		if right.IsResource() {
			emit(ontology.NegativeObjectPropertyAssertion{Property: a.objectProperty, Source: left, Target: right})
		}
	case AtomNegativeDataProperty:
		if right.IsLiteral() {
			emit(ontology.NegativeDataPropertyAssertion{Property: a.property, Source: left, Value: right})
		}
	case AtomAnnotationProperty:
		emit(ontology.AnnotationAssertion{Property: a.property, Subject: left, Value: right})
	}
}

// anonymous rebuilds an individual whose IRI carries the blank node prefix
// as an anonymous individual.
func anonymous(t ontology.Term) ontology.Term {
	if t.IsIRI() && strings.HasPrefix(t.Value(), ontology.BlankNodePrefix) {
		return ontology.NewBlank(t.Value()[len(ontology.BlankNodePrefix):])
	}
	return t
}
