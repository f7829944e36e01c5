package ontology

import (
	"sort"

	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

// assertionKey identifies a (property, source, target) triple.
type assertionKey struct {
	property Term
	source   Term
	target   Term
}

// index is an immutable lookup structure built from one version of the
// ontology axioms. It is shared by concurrent readers.
type index struct {
	individuals []Term

	classMembers map[string][]Term
	classExprs   map[string]ClassExpression

	objectAssertions     map[Term][]ObjectPropertyAssertion
	objectSet            map[assertionKey]struct{}
	objectBySource       map[Term][]ObjectPropertyAssertion
	dataAssertions       map[Term][]DataPropertyAssertion
	dataSet              map[assertionKey]struct{}
	annotationAssertions map[Term][]AnnotationAssertion
	negativeObject       map[Term][]NegativeObjectPropertyAssertion
	negativeObjectSet    map[assertionKey]struct{}
	negativeData         map[Term][]NegativeDataPropertyAssertion
	negativeDataSet      map[assertionKey]struct{}

	sameAs    map[Term][]Term
	different map[Term][]Term

	classes          *hierarchy[ClassExpression]
	objectProperties *hierarchy[ObjectPropertyExpression]
	dataProperties   *hierarchy[Term]

	disjointClassSets  [][]ClassExpression
	disjointObjectSets [][]ObjectPropertyExpression
	disjointDataSets   [][]Term
	inverses           map[Term][]Term

	characteristics map[AxiomKind]map[Term]bool
	functionalData  map[Term]bool

	annotationProperties map[Term]bool
}

func buildIndex(axioms *[axiomKindCount][]Axiom) *index {
	idx := &index{
		classMembers:         make(map[string][]Term),
		classExprs:           make(map[string]ClassExpression),
		objectAssertions:     make(map[Term][]ObjectPropertyAssertion),
		objectSet:            make(map[assertionKey]struct{}),
		objectBySource:       make(map[Term][]ObjectPropertyAssertion),
		dataAssertions:       make(map[Term][]DataPropertyAssertion),
		dataSet:              make(map[assertionKey]struct{}),
		annotationAssertions: make(map[Term][]AnnotationAssertion),
		negativeObject:       make(map[Term][]NegativeObjectPropertyAssertion),
		negativeObjectSet:    make(map[assertionKey]struct{}),
		negativeData:         make(map[Term][]NegativeDataPropertyAssertion),
		negativeDataSet:      make(map[assertionKey]struct{}),
		different:            make(map[Term][]Term),
		classes:              newHierarchy[ClassExpression](),
		objectProperties:     newHierarchy[ObjectPropertyExpression](),
		dataProperties:       newHierarchy[Term](),
		inverses:             make(map[Term][]Term),
		characteristics:      make(map[AxiomKind]map[Term]bool),
		functionalData:       make(map[Term]bool),
		annotationProperties: make(map[Term]bool),
	}
	individuals := newTermSet()

	for _, a := range axioms[KindDeclaration] {
		d := a.(Declaration)
		switch d.Entity {
		case EntityNamedIndividual:
			individuals.add(d.IRI)
		case EntityAnnotationProperty:
			idx.annotationProperties[d.IRI] = true
		}
	}
	idx.indexAssertions(axioms, individuals)
	idx.indexClasses(axioms)
	idx.indexObjectProperties(axioms)
	idx.indexDataProperties(axioms)
	idx.individuals = individuals.items
	return idx
}

func (idx *index) indexAssertions(axioms *[axiomKindCount][]Axiom, individuals *termSet) {
	for _, a := range axioms[KindClassAssertion] {
		ca := a.(ClassAssertion)
		key := ca.Class.String()
		idx.classExprs[key] = ca.Class
		idx.classMembers[key] = append(idx.classMembers[key], ca.Individual)
		individuals.add(ca.Individual)
	}
	for _, a := range axioms[KindObjectPropertyAssertion] {
		opa := a.(ObjectPropertyAssertion).Calibrate()
		key := assertionKey{opa.Property.Property, opa.Source, opa.Target}
		if _, dup := idx.objectSet[key]; dup {
			continue
		}
		idx.objectSet[key] = struct{}{}
		idx.objectAssertions[key.property] = append(idx.objectAssertions[key.property], opa)
		idx.objectBySource[opa.Source] = append(idx.objectBySource[opa.Source], opa)
		individuals.add(opa.Source)
		individuals.add(opa.Target)
	}
	for _, a := range axioms[KindDataPropertyAssertion] {
		dpa := a.(DataPropertyAssertion)
		idx.dataSet[assertionKey{dpa.Property, dpa.Source, dpa.Value}] = struct{}{}
		idx.dataAssertions[dpa.Property] = append(idx.dataAssertions[dpa.Property], dpa)
		individuals.add(dpa.Source)
	}
	for _, a := range axioms[KindAnnotationAssertion] {
		aa := a.(AnnotationAssertion)
		idx.annotationAssertions[aa.Property] = append(idx.annotationAssertions[aa.Property], aa)
	}
	for _, a := range axioms[KindNegativeObjectPropertyAssertion] {
		nopa := a.(NegativeObjectPropertyAssertion).Calibrate()
		key := assertionKey{nopa.Property.Property, nopa.Source, nopa.Target}
		if _, dup := idx.negativeObjectSet[key]; dup {
			continue
		}
		idx.negativeObjectSet[key] = struct{}{}
		idx.negativeObject[key.property] = append(idx.negativeObject[key.property], nopa)
		individuals.add(nopa.Source)
		individuals.add(nopa.Target)
	}
	for _, a := range axioms[KindNegativeDataPropertyAssertion] {
		ndpa := a.(NegativeDataPropertyAssertion)
		idx.negativeDataSet[assertionKey{ndpa.Property, ndpa.Source, ndpa.Value}] = struct{}{}
		idx.negativeData[ndpa.Property] = append(idx.negativeData[ndpa.Property], ndpa)
		individuals.add(ndpa.Source)
	}

	clusters := newUnionFind()
	for _, a := range axioms[KindSameIndividual] {
		same := a.(SameIndividual)
		for _, ind := range same.Individuals {
			individuals.add(ind)
		}
		for _, ind := range same.Individuals[1:] {
			clusters.union(same.Individuals[0], ind)
		}
	}
	idx.sameAs = clusters.groups()

	differentSeen := make(map[[2]Term]bool)
	for _, a := range axioms[KindDifferentIndividuals] {
		diff := a.(DifferentIndividuals)
		for i, x := range diff.Individuals {
			individuals.add(x)
			for j, y := range diff.Individuals {
				if i == j || x == y || differentSeen[[2]Term{x, y}] {
					continue
				}
				differentSeen[[2]Term{x, y}] = true
				idx.different[x] = append(idx.different[x], y)
			}
		}
	}
}

func (idx *index) indexClasses(axioms *[axiomKindCount][]Axiom) {
	h := idx.classes
	for _, a := range axioms[KindDeclaration] {
		d := a.(Declaration)
		if d.Entity == EntityClass {
			c := Class{IRI: d.IRI}
			h.node(c.String(), c)
		}
	}
	for _, a := range axioms[KindSubClassOf] {
		sc := a.(SubClassOf)
		h.addSub(sc.Sub.String(), sc.Sub, sc.Super.String(), sc.Super)
	}
	for _, a := range axioms[KindEquivalentClasses] {
		eq := a.(EquivalentClasses)
		first := eq.Classes[0]
		for _, other := range eq.Classes[1:] {
			h.addEquivalent(first.String(), first, other.String(), other)
		}
	}
	for _, a := range axioms[KindDisjointClasses] {
		idx.disjointClassSets = append(idx.disjointClassSets, a.(DisjointClasses).Classes)
	}
	for _, a := range axioms[KindDisjointUnion] {
		du := a.(DisjointUnion)
		whole := Class{IRI: du.Class}
		for _, operand := range du.Operands {
			h.addSub(operand.String(), operand, whole.String(), whole)
		}
		idx.disjointClassSets = append(idx.disjointClassSets, du.Operands)
	}
}

func (idx *index) indexObjectProperties(axioms *[axiomKindCount][]Axiom) {
	h := idx.objectProperties
	for _, a := range axioms[KindDeclaration] {
		d := a.(Declaration)
		if d.Entity == EntityObjectProperty {
			p := ObjectPropertyExpression{Property: d.IRI}
			h.node(p.String(), p)
		}
	}
	for _, a := range axioms[KindSubObjectPropertyOf] {
		sp := a.(SubObjectPropertyOf)
		if sp.IsChain() {
			continue
		}
		sub := sp.Chain[0]
		h.addSub(sub.String(), sub, sp.Super.String(), sp.Super)
		// the inverse directions are subsumed as well
		h.addSub(sub.Invert().String(), sub.Invert(), sp.Super.Invert().String(), sp.Super.Invert())
	}
	for _, a := range axioms[KindEquivalentObjectProperties] {
		eq := a.(EquivalentObjectProperties)
		first := eq.Properties[0]
		for _, other := range eq.Properties[1:] {
			h.addEquivalent(first.String(), first, other.String(), other)
			h.addEquivalent(first.Invert().String(), first.Invert(), other.Invert().String(), other.Invert())
		}
	}
	for _, a := range axioms[KindDisjointObjectProperties] {
		idx.disjointObjectSets = append(idx.disjointObjectSets, a.(DisjointObjectProperties).Properties)
	}
	for _, a := range axioms[KindInverseObjectProperties] {
		inv := a.(InverseObjectProperties)
		left, right := inv.Left, inv.Right
		if left.Inverse {
			left, right = left.Invert(), right.Invert()
		}
		if right.Inverse {
			// InverseObjectProperties(p, inv(q)) makes p equivalent to q
			h.addEquivalent(left.String(), left, right.Invert().String(), right.Invert())
			continue
		}
		idx.inverses[left.Property] = appendUnique(idx.inverses[left.Property], right.Property)
		idx.inverses[right.Property] = appendUnique(idx.inverses[right.Property], left.Property)
	}
	for kind := KindFunctionalObjectProperty; kind <= KindTransitiveObjectProperty; kind++ {
		for _, a := range axioms[kind] {
			c := a.(ObjectPropertyCharacteristic)
			effective := c.Characteristic
			if c.Property.Inverse {
				switch effective {
				case KindFunctionalObjectProperty:
					effective = KindInverseFunctionalObjectProperty
				case KindInverseFunctionalObjectProperty:
					effective = KindFunctionalObjectProperty
				}
			}
			if idx.characteristics[effective] == nil {
				idx.characteristics[effective] = make(map[Term]bool)
			}
			idx.characteristics[effective][c.Property.Property] = true
		}
	}
}

func (idx *index) indexDataProperties(axioms *[axiomKindCount][]Axiom) {
	h := idx.dataProperties
	for _, a := range axioms[KindDeclaration] {
		d := a.(Declaration)
		if d.Entity == EntityDataProperty {
			h.node(d.IRI.String(), d.IRI)
		}
	}
	for _, a := range axioms[KindSubDataPropertyOf] {
		sp := a.(SubDataPropertyOf)
		h.addSub(sp.Sub.String(), sp.Sub, sp.Super.String(), sp.Super)
	}
	for _, a := range axioms[KindEquivalentDataProperties] {
		eq := a.(EquivalentDataProperties)
		first := eq.Properties[0]
		for _, other := range eq.Properties[1:] {
			h.addEquivalent(first.String(), first, other.String(), other)
		}
	}
	for _, a := range axioms[KindDisjointDataProperties] {
		idx.disjointDataSets = append(idx.disjointDataSets, a.(DisjointDataProperties).Properties)
	}
	for _, a := range axioms[KindFunctionalDataProperty] {
		idx.functionalData[a.(FunctionalDataProperty).Property] = true
	}
}

// isThing reports whether the expression is owl:Thing.
func isThing(expr ClassExpression) bool {
	c, ok := expr.(Class)
	return ok && c.IRI.Value() == vocabulary.OwlThing
}

// =============================================================================
// Small collections
// =============================================================================

// termSet is an insertion-ordered set of terms.
type termSet struct {
	seen  map[Term]struct{}
	items []Term
}

func newTermSet() *termSet {
	return &termSet{seen: make(map[Term]struct{})}
}

func (s *termSet) add(t Term) bool {
	if t.IsNull() {
		return false
	}
	if _, ok := s.seen[t]; ok {
		return false
	}
	s.seen[t] = struct{}{}
	s.items = append(s.items, t)
	return true
}

func (s *termSet) has(t Term) bool {
	_, ok := s.seen[t]
	return ok
}

func appendUnique(terms []Term, t Term) []Term {
	for _, existing := range terms {
		if existing == t {
			return terms
		}
	}
	return append(terms, t)
}

func sortTerms(terms []Term) {
	sort.Slice(terms, func(i, j int) bool { return terms[i].String() < terms[j].String() })
}

// unionFind groups individuals into same-as clusters.
type unionFind struct {
	parent map[Term]Term
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[Term]Term)}
}

func (u *unionFind) find(t Term) Term {
	p, ok := u.parent[t]
	if !ok {
		u.parent[t] = t
		return t
	}
	if p == t {
		return t
	}
	root := u.find(p)
	u.parent[t] = root
	return root
}

func (u *unionFind) union(a, b Term) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}

// groups maps every member to the other members of its cluster, sorted.
func (u *unionFind) groups() map[Term][]Term {
	members := make(map[Term][]Term)
	for t := range u.parent {
		root := u.find(t)
		members[root] = append(members[root], t)
	}
	out := make(map[Term][]Term, len(u.parent))
	for _, group := range members {
		sortTerms(group)
		for _, t := range group {
			others := make([]Term, 0, len(group)-1)
			for _, o := range group {
				if o != t {
					others = append(others, o)
				}
			}
			out[t] = others
		}
	}
	return out
}
