package ontology

// =============================================================================
// Compatibility Checks
// =============================================================================
//
// The checks are side-effect free. They answer whether adding an assertion
// would clash with what the ontology already states.

// CheckClassAssertionCompatibility reports false when the individual is
// already a member of a class disjoint with class, or class is owl:Nothing.
func (o *MemoryOntology) CheckClassAssertionCompatibility(class ClassExpression, individual Term) bool {
	if c, ok := class.(Class); ok && c.IsNothing() {
		return false
	}
	idx := o.snapshot()
	disjoint := idx.disjointClassesOf(class)
	if len(disjoint) == 0 {
		return true
	}
	ev := newExtension(idx, true)
	for _, d := range disjoint {
		if ev.members(d).has(individual) {
			return false
		}
	}
	return true
}

// CheckObjectAssertionCompatibility reports false when the assertion is
// explicitly negated, breaks irreflexivity or asymmetry, overlaps a disjoint
// property, or gives a functional property two values known to differ.
func (o *MemoryOntology) CheckObjectAssertionCompatibility(property ObjectPropertyExpression, source, target Term) bool {
	candidate := ObjectPropertyAssertion{Property: property, Source: source, Target: target}.Calibrate()
	p, s, t := candidate.Property.Property, candidate.Source, candidate.Target
	idx := o.snapshot()

	if _, negated := idx.negativeObjectSet[assertionKey{p, s, t}]; negated {
		return false
	}
	if idx.characteristics[KindIrreflexiveObjectProperty][p] && (s == t || containsTerm(idx.sameAs[s], t)) {
		return false
	}
	if idx.characteristics[KindAsymmetricObjectProperty][p] {
		if _, reverse := idx.objectSet[assertionKey{p, t, s}]; reverse {
			return false
		}
	}
	for _, q := range o.DisjointObjectPropertiesOf(ObjectPropertyExpression{Property: p}) {
		qs, qt := s, t
		if q.Inverse {
			qs, qt = t, s
		}
		if _, clash := idx.objectSet[assertionKey{q.Property, qs, qt}]; clash {
			return false
		}
	}
	if idx.characteristics[KindFunctionalObjectProperty][p] {
		differ := idx.differentFrom(t)
		for _, existing := range idx.objectBySource[s] {
			if existing.Property.Property == p && existing.Target != t && containsTerm(differ, existing.Target) {
				return false
			}
		}
	}
	if idx.characteristics[KindInverseFunctionalObjectProperty][p] {
		differ := idx.differentFrom(s)
		for _, existing := range idx.objectAssertions[p] {
			if existing.Target == t && existing.Source != s && containsTerm(differ, existing.Source) {
				return false
			}
		}
	}
	return true
}

// CheckDataAssertionCompatibility reports false when the assertion is
// explicitly negated, overlaps a disjoint data property, or gives a
// functional data property a second value.
func (o *MemoryOntology) CheckDataAssertionCompatibility(property, source, value Term) bool {
	idx := o.snapshot()
	if _, negated := idx.negativeDataSet[assertionKey{property, source, value}]; negated {
		return false
	}
	for _, q := range o.DisjointDataPropertiesOf(property) {
		if _, clash := idx.dataSet[assertionKey{q, source, value}]; clash {
			return false
		}
	}
	if idx.functionalData[property] {
		for _, existing := range idx.dataAssertions[property] {
			if existing.Source == source && existing.Value != value {
				return false
			}
		}
	}
	return true
}

func containsTerm(terms []Term, t Term) bool {
	for _, x := range terms {
		if x == t {
			return true
		}
	}
	return false
}
