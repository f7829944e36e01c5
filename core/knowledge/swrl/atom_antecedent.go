package swrl

import (
	"github.com/adalundhe/owlreasoner/core/ontology"
)

// EvaluateOnAntecedent queries the ontology for the bindings satisfying the
// atom. The table has a column for the left variable and, when the right
// argument is a different variable, one for the right variable. Builtin
// atoms are filters and return an empty table without columns.
func (a Atom) EvaluateOnAntecedent(ectx *EvaluationContext, ont ontology.Ontology) *Table {
	switch a.kind {
	case AtomClass:
		return a.classBindings(ectx, ont)
	case AtomObjectProperty:
		return a.pairBindings(objectPairs(ont.ObjectAssertionsOf(a.objectProperty.Property), a.objectProperty.Inverse))
	case AtomDataProperty:
		var pairs [][2]ontology.Term
		for _, dpa := range ont.DataAssertionsOf(a.property) {
			pairs = append(pairs, [2]ontology.Term{dpa.Source, dpa.Value})
		}
		return a.pairBindings(pairs)
	case AtomSameAs:
		return a.closureBindings(ont, ont.SameIndividuals)
	case AtomDifferentFrom:
		return a.closureBindings(ont, ont.DifferentIndividuals)
	case AtomNegativeObjectProperty:
		var pairs [][2]ontology.Term
		for _, n := range ont.NegativeObjectAssertionsOf(a.objectProperty.Property) {
			pairs = append(pairs, [2]ontology.Term{n.Source, n.Target})
		}
		if a.objectProperty.Inverse {
			pairs = swapPairs(pairs)
		}
		return a.pairBindings(distinctPairs(pairs))
	case AtomNegativeDataProperty:
		var pairs [][2]ontology.Term
		for _, n := range ont.NegativeDataAssertionsOf(a.property) {
			pairs = append(pairs, [2]ontology.Term{n.Source, n.Value})
		}
		return a.pairBindings(pairs)
	case AtomAnnotationProperty:
		var pairs [][2]ontology.Term
		for _, aa := range ont.AnnotationAssertionsOf(a.property) {
			pairs = append(pairs, [2]ontology.Term{aa.Subject, aa.Value})
		}
		return a.pairBindings(pairs)
	default:
		return NewTable()
	}
}

func (a Atom) classBindings(ectx *EvaluationContext, ont ontology.Ontology) *Table {
	left := string(a.left)
	table := NewTable(left)
	for _, ind := range ectx.IndividualsOf(ont, a.class) {
		table.appendRow([]ontology.Term{ind})
	}
	return table
}

// pairBindings turns (source, target) pairs into a table shaped by the
// atom arguments. A constant right argument selects pairs by target; a
// right variable equal to the left one selects reflexive pairs.
func (a Atom) pairBindings(pairs [][2]ontology.Term) *Table {
	left := string(a.left)
	switch {
	case !a.right.IsVariable():
		table := NewTable(left)
		for _, p := range pairs {
			if p[1] == a.right.Term() {
				table.appendRow([]ontology.Term{p[0]})
			}
		}
		return table
	case a.right.Variable() == a.left:
		table := NewTable(left)
		for _, p := range pairs {
			if p[0] == p[1] {
				table.appendRow([]ontology.Term{p[0]})
			}
		}
		return table
	default:
		table := NewTable(left, string(a.right.Variable()))
		for _, p := range pairs {
			table.appendRow([]ontology.Term{p[0], p[1]})
		}
		return table
	}
}

// closureBindings enumerates an individual closure. With a constant right
// argument only its closure is read; otherwise every individual is visited.
func (a Atom) closureBindings(ont ontology.Ontology, closure func(ontology.Term) []ontology.Term) *Table {
	if !a.right.IsVariable() {
		table := NewTable(string(a.left))
		for _, ind := range closure(a.right.Term()) {
			table.appendRow([]ontology.Term{ind})
		}
		return table
	}
	var pairs [][2]ontology.Term
	for _, ind := range ont.Individuals() {
		for _, other := range closure(ind) {
			pairs = append(pairs, [2]ontology.Term{ind, other})
		}
	}
	return a.pairBindings(pairs)
}

func objectPairs(assertions []ontology.ObjectPropertyAssertion, inverse bool) [][2]ontology.Term {
	pairs := make([][2]ontology.Term, 0, len(assertions))
	for _, opa := range assertions {
		pairs = append(pairs, [2]ontology.Term{opa.Source, opa.Target})
	}
	if inverse {
		return swapPairs(pairs)
	}
	return pairs
}

func swapPairs(pairs [][2]ontology.Term) [][2]ontology.Term {
	for i, p := range pairs {
		pairs[i] = [2]ontology.Term{p[1], p[0]}
	}
	return pairs
}

func distinctPairs(pairs [][2]ontology.Term) [][2]ontology.Term {
	seen := make(map[[2]ontology.Term]bool, len(pairs))
	out := pairs[:0]
	for _, p := range pairs {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
