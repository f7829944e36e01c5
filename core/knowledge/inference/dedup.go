package inference

import (
	"sort"
	"strings"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
)

// =============================================================================
// Deduplication Against Existing Knowledge
// =============================================================================

// dedupPolicy says how candidate inferences of one axiom kind are compared
// with the axioms the ontology already holds.
type dedupPolicy uint8

const (
	// dedupKeep keeps every candidate of the kind.
	dedupKeep dedupPolicy = iota
	// dedupExact drops candidates whose functional-syntax form is asserted.
	dedupExact
	// dedupPairwise also drops binary candidates restating a pair of an
	// asserted n-ary axiom, whatever its operand order. Only class and
	// property kinds use it; SameIndividual and DifferentIndividuals are
	// directional and a reversed pair is a new fact.
	dedupPairwise
)

// dedupPolicies lists every axiom kind. A kind missing here is kept, but the
// package tests require the table to be exhaustive.
var dedupPolicies = map[ontology.AxiomKind]dedupPolicy{
	ontology.KindDeclaration: dedupKeep,

	ontology.KindClassAssertion:                  dedupExact,
	ontology.KindObjectPropertyAssertion:         dedupExact,
	ontology.KindDataPropertyAssertion:           dedupExact,
	ontology.KindNegativeObjectPropertyAssertion: dedupExact,
	ontology.KindNegativeDataPropertyAssertion:   dedupExact,
	ontology.KindSameIndividual:                  dedupExact,
	ontology.KindDifferentIndividuals:            dedupExact,

	ontology.KindSubClassOf:        dedupExact,
	ontology.KindEquivalentClasses: dedupPairwise,
	ontology.KindDisjointClasses:   dedupPairwise,
	ontology.KindDisjointUnion:     dedupKeep,
	ontology.KindHasKey:            dedupKeep,

	ontology.KindSubObjectPropertyOf:             dedupExact,
	ontology.KindEquivalentObjectProperties:      dedupPairwise,
	ontology.KindDisjointObjectProperties:        dedupPairwise,
	ontology.KindInverseObjectProperties:         dedupExact,
	ontology.KindObjectPropertyDomain:            dedupExact,
	ontology.KindObjectPropertyRange:             dedupExact,
	ontology.KindFunctionalObjectProperty:        dedupExact,
	ontology.KindInverseFunctionalObjectProperty: dedupExact,
	ontology.KindReflexiveObjectProperty:         dedupExact,
	ontology.KindIrreflexiveObjectProperty:       dedupExact,
	ontology.KindSymmetricObjectProperty:         dedupExact,
	ontology.KindAsymmetricObjectProperty:        dedupExact,
	ontology.KindTransitiveObjectProperty:        dedupExact,

	ontology.KindSubDataPropertyOf:        dedupExact,
	ontology.KindEquivalentDataProperties: dedupPairwise,
	ontology.KindDisjointDataProperties:   dedupPairwise,
	ontology.KindDataPropertyDomain:       dedupExact,
	ontology.KindDataPropertyRange:        dedupExact,
	ontology.KindFunctionalDataProperty:   dedupExact,

	ontology.KindAnnotationAssertion: dedupKeep,
}

// dedupIndex holds, per axiom kind, the serialized forms of the axioms an
// ontology already states. Each slot is written by one builder only.
type dedupIndex struct {
	sets map[ontology.AxiomKind]map[string]struct{}
}

// dedupKinds returns the kinds the index has to cover.
func dedupKinds() []ontology.AxiomKind {
	var out []ontology.AxiomKind
	for _, kind := range ontology.AllAxiomKinds() {
		if dedupPolicies[kind] != dedupKeep {
			out = append(out, kind)
		}
	}
	return out
}

// indexKind builds the hash set of one axiom kind.
func indexKind(ont ontology.Ontology, kind ontology.AxiomKind) map[string]struct{} {
	axioms := ont.Axioms(kind)
	set := make(map[string]struct{}, len(axioms))
	for _, a := range axioms {
		set[a.String()] = struct{}{}
		if dedupPolicies[kind] == dedupPairwise {
			for _, key := range pairKeys(a) {
				set[key] = struct{}{}
			}
		}
	}
	return set
}

// contains reports whether inf restates an existing axiom.
func (d *dedupIndex) contains(inf swrl.Inference) bool {
	kind := inf.Axiom.Kind()
	policy, ok := dedupPolicies[kind]
	if !ok || policy == dedupKeep {
		return false
	}
	set := d.sets[kind]
	if _, found := set[inf.Key()]; found {
		return true
	}
	if policy == dedupPairwise {
		keys := pairKeys(inf.Axiom)
		if len(keys) == 1 {
			_, found := set[keys[0]]
			return found
		}
	}
	return false
}

// filter returns the inferences not already stated by the ontology.
func (d *dedupIndex) filter(inferences []swrl.Inference) []swrl.Inference {
	out := inferences[:0:0]
	for _, inf := range inferences {
		if !d.contains(inf) {
			out = append(out, inf)
		}
	}
	return out
}

// pairKeys returns an order-independent key for every pair of operands of
// an n-ary axiom.
func pairKeys(a ontology.Axiom) []string {
	var operands []string
	switch x := a.(type) {
	case ontology.SameIndividual:
		operands = termStrings(x.Individuals)
	case ontology.DifferentIndividuals:
		operands = termStrings(x.Individuals)
	case ontology.EquivalentClasses:
		operands = expressionStrings(x.Classes)
	case ontology.DisjointClasses:
		operands = expressionStrings(x.Classes)
	case ontology.EquivalentObjectProperties:
		operands = propertyStrings(x.Properties)
	case ontology.DisjointObjectProperties:
		operands = propertyStrings(x.Properties)
	case ontology.EquivalentDataProperties:
		operands = termStrings(x.Properties)
	case ontology.DisjointDataProperties:
		operands = termStrings(x.Properties)
	default:
		return nil
	}
	prefix := a.Kind().String()
	var out []string
	for i := range operands {
		for j := i + 1; j < len(operands); j++ {
			pair := []string{operands[i], operands[j]}
			sort.Strings(pair)
			out = append(out, prefix+"{"+strings.Join(pair, "|")+"}")
		}
	}
	return out
}

// distinct keeps the first inference of every fact.
func distinct(inferences []swrl.Inference) []swrl.Inference {
	seen := make(map[string]bool, len(inferences))
	out := make([]swrl.Inference, 0, len(inferences))
	for _, inf := range inferences {
		key := inf.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, inf)
	}
	return out
}

func termStrings(terms []ontology.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.String()
	}
	return out
}

func expressionStrings(exprs []ontology.ClassExpression) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = e.String()
	}
	return out
}

func propertyStrings(properties []ontology.ObjectPropertyExpression) []string {
	out := make([]string, len(properties))
	for i, p := range properties {
		out[i] = p.String()
	}
	return out
}
