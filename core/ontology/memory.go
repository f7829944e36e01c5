package ontology

import (
	"fmt"
	"sync"
)

// =============================================================================
// MemoryOntology
// =============================================================================

// MemoryOntology is an in-memory Ontology. Axioms are kept per kind in
// insertion order; duplicates (by functional-syntax form) are ignored.
//
// Lookups go through an index rebuilt lazily after each change. Readers share
// the index under a read lock, and a rebuild takes the write lock with a
// double check so that only one goroutine pays for it.
type MemoryOntology struct {
	iri Term

	mu      sync.RWMutex
	axioms  [axiomKindCount][]Axiom
	seen    map[string]struct{}
	version uint64

	idx        *index
	idxVersion uint64
}

// NewMemoryOntology creates an empty ontology identified by iri.
func NewMemoryOntology(iri string) *MemoryOntology {
	return &MemoryOntology{
		iri:  NewIRI(iri),
		seen: make(map[string]struct{}),
	}
}

// IRI returns the ontology identifier.
func (o *MemoryOntology) IRI() Term { return o.iri }

// Version returns a counter incremented on every accepted axiom.
func (o *MemoryOntology) Version() uint64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.version
}

// Len returns the number of axioms in the ontology.
func (o *MemoryOntology) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.seen)
}

// Contains reports whether an axiom with the same functional-syntax form exists.
func (o *MemoryOntology) Contains(axiom Axiom) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.seen[axiom.String()]
	return ok
}

// Add inserts axioms of any category, including declarations.
func (o *MemoryOntology) Add(axioms ...Axiom) error {
	for _, a := range axioms {
		if err := o.declare(a.Kind().Category(), a); err != nil {
			return err
		}
	}
	return nil
}

// MustAdd is like Add but panics on error. It is meant for fixtures.
func (o *MemoryOntology) MustAdd(axioms ...Axiom) *MemoryOntology {
	if err := o.Add(axioms...); err != nil {
		panic(err)
	}
	return o
}

// DeclareAssertionAxiom adds an assertion axiom.
func (o *MemoryOntology) DeclareAssertionAxiom(axiom Axiom) error {
	return o.declare(CategoryAssertion, axiom)
}

// DeclareClassAxiom adds a class axiom.
func (o *MemoryOntology) DeclareClassAxiom(axiom Axiom) error {
	return o.declare(CategoryClass, axiom)
}

// DeclareObjectPropertyAxiom adds an object property axiom.
func (o *MemoryOntology) DeclareObjectPropertyAxiom(axiom Axiom) error {
	return o.declare(CategoryObjectProperty, axiom)
}

// DeclareDataPropertyAxiom adds a data property axiom.
func (o *MemoryOntology) DeclareDataPropertyAxiom(axiom Axiom) error {
	return o.declare(CategoryDataProperty, axiom)
}

// DeclareAnnotationAxiom adds an annotation axiom.
func (o *MemoryOntology) DeclareAnnotationAxiom(axiom Axiom) error {
	return o.declare(CategoryAnnotation, axiom)
}

func (o *MemoryOntology) declare(category AxiomCategory, axiom Axiom) error {
	if axiom == nil {
		return fmt.Errorf("declare: %w", ErrNilArgument)
	}
	kind := axiom.Kind()
	if kind < 0 || kind >= axiomKindCount || kind.Category() != category {
		return fmt.Errorf("declare %s as %s axiom: %w", kind, category, ErrCategoryMismatch)
	}
	key := axiom.String()

	o.mu.Lock()
	defer o.mu.Unlock()
	if _, dup := o.seen[key]; dup {
		return nil
	}
	o.seen[key] = struct{}{}
	o.axioms[kind] = append(o.axioms[kind], axiom)
	o.version++
	return nil
}

// Axioms returns a copy of the axioms of the given kind.
func (o *MemoryOntology) Axioms(kind AxiomKind) []Axiom {
	if kind < 0 || kind >= axiomKindCount {
		return nil
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Axiom, len(o.axioms[kind]))
	copy(out, o.axioms[kind])
	return out
}

// snapshot returns the index for the current version, rebuilding it if needed.
func (o *MemoryOntology) snapshot() *index {
	o.mu.RLock()
	if o.idx != nil && o.idxVersion == o.version {
		idx := o.idx
		o.mu.RUnlock()
		return idx
	}
	o.mu.RUnlock()

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.idx != nil && o.idxVersion == o.version {
		return o.idx
	}
	o.idx = buildIndex(&o.axioms)
	o.idxVersion = o.version
	return o.idx
}

// =============================================================================
// Assertion Lookups
// =============================================================================

// Individuals returns every known individual in first-seen order.
func (o *MemoryOntology) Individuals() []Term {
	return cloneTerms(o.snapshot().individuals)
}

// SameIndividuals returns the other members of the individual's same-as cluster.
func (o *MemoryOntology) SameIndividuals(individual Term) []Term {
	return cloneTerms(o.snapshot().sameAs[individual])
}

// DifferentIndividuals returns the individuals declared different from the
// individual or from any member of its same-as cluster, together with the
// same-as clusters of those individuals.
func (o *MemoryOntology) DifferentIndividuals(individual Term) []Term {
	idx := o.snapshot()
	return idx.differentFrom(individual)
}

func (idx *index) differentFrom(individual Term) []Term {
	out := newTermSet()
	sources := append([]Term{individual}, idx.sameAs[individual]...)
	for _, src := range sources {
		for _, d := range idx.different[src] {
			out.add(d)
			for _, same := range idx.sameAs[d] {
				out.add(same)
			}
		}
	}
	result := make([]Term, 0, len(out.items))
	for _, t := range out.items {
		if t != individual {
			result = append(result, t)
		}
	}
	sortTerms(result)
	return result
}

// ObjectAssertionsOf returns the calibrated assertions of the named property.
func (o *MemoryOntology) ObjectAssertionsOf(property Term) []ObjectPropertyAssertion {
	src := o.snapshot().objectAssertions[property]
	out := make([]ObjectPropertyAssertion, len(src))
	copy(out, src)
	return out
}

// DataAssertionsOf returns the assertions of the data property.
func (o *MemoryOntology) DataAssertionsOf(property Term) []DataPropertyAssertion {
	src := o.snapshot().dataAssertions[property]
	out := make([]DataPropertyAssertion, len(src))
	copy(out, src)
	return out
}

// AnnotationAssertionsOf returns the assertions of the annotation property.
func (o *MemoryOntology) AnnotationAssertionsOf(property Term) []AnnotationAssertion {
	src := o.snapshot().annotationAssertions[property]
	out := make([]AnnotationAssertion, len(src))
	copy(out, src)
	return out
}

// NegativeObjectAssertionsOf returns the calibrated negative assertions of
// the named property.
func (o *MemoryOntology) NegativeObjectAssertionsOf(property Term) []NegativeObjectPropertyAssertion {
	src := o.snapshot().negativeObject[property]
	out := make([]NegativeObjectPropertyAssertion, len(src))
	copy(out, src)
	return out
}

// NegativeDataAssertionsOf returns the negative assertions of the data property.
func (o *MemoryOntology) NegativeDataAssertionsOf(property Term) []NegativeDataPropertyAssertion {
	src := o.snapshot().negativeData[property]
	out := make([]NegativeDataPropertyAssertion, len(src))
	copy(out, src)
	return out
}

// IsDataProperty reports whether property is declared, axiomatized or
// asserted as a data property.
func (o *MemoryOntology) IsDataProperty(property Term) bool {
	idx := o.snapshot()
	if _, ok := idx.dataProperties.item(property.String()); ok {
		return true
	}
	return len(idx.dataAssertions[property]) > 0 || len(idx.negativeData[property]) > 0 || idx.functionalData[property]
}

// IsAnnotationProperty reports whether property is declared or asserted as
// an annotation property.
func (o *MemoryOntology) IsAnnotationProperty(property Term) bool {
	idx := o.snapshot()
	return idx.annotationProperties[property] || len(idx.annotationAssertions[property]) > 0
}

func cloneTerms(terms []Term) []Term {
	out := make([]Term, len(terms))
	copy(out, terms)
	return out
}

var _ MutableOntology = (*MemoryOntology)(nil)
