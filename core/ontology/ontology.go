package ontology

import "errors"

// ErrCategoryMismatch is returned when an axiom is declared into a
// collection that does not hold its kind.
var ErrCategoryMismatch = errors.New("axiom category mismatch")

// =============================================================================
// Ontology Interfaces
// =============================================================================

// Taxonomy answers hierarchy questions over classes and properties. Every
// result is transitively closed and excludes the queried entity itself.
type Taxonomy interface {
	SuperClassesOf(class ClassExpression) []ClassExpression
	SubClassesOf(class ClassExpression) []ClassExpression
	EquivalentClassesOf(class ClassExpression) []ClassExpression
	DisjointClassesOf(class ClassExpression) []ClassExpression

	SuperObjectPropertiesOf(property ObjectPropertyExpression) []ObjectPropertyExpression
	SubObjectPropertiesOf(property ObjectPropertyExpression) []ObjectPropertyExpression
	EquivalentObjectPropertiesOf(property ObjectPropertyExpression) []ObjectPropertyExpression
	InverseObjectPropertiesOf(property ObjectPropertyExpression) []ObjectPropertyExpression
	DisjointObjectPropertiesOf(property ObjectPropertyExpression) []ObjectPropertyExpression

	SuperDataPropertiesOf(property Term) []Term
	SubDataPropertiesOf(property Term) []Term
	EquivalentDataPropertiesOf(property Term) []Term
	DisjointDataPropertiesOf(property Term) []Term

	// HasCharacteristic reports whether the named object property carries
	// the given characteristic kind.
	HasCharacteristic(kind AxiomKind, property Term) bool
	// IsFunctionalDataProperty reports whether the data property is functional.
	IsFunctionalDataProperty(property Term) bool
}

// Ontology is the read-only fact store consumed by rules and analyses.
// Implementations must be safe for concurrent readers.
type Ontology interface {
	Taxonomy

	// Version changes whenever the ontology content changes.
	Version() uint64

	// Axioms returns the asserted axioms of the given kind.
	Axioms(kind AxiomKind) []Axiom
	// Individuals returns every individual declared or used in an assertion.
	Individuals() []Term
	// IndividualsOf returns the individuals satisfying the class expression.
	// With reasoning the class hierarchy and same-as closure are considered.
	IndividualsOf(expr ClassExpression, reasoning bool) []Term
	// SameIndividuals returns the same-as closure of an individual.
	SameIndividuals(individual Term) []Term
	// DifferentIndividuals returns the individuals known to differ from an
	// individual, extended through the same-as closure.
	DifferentIndividuals(individual Term) []Term

	// ObjectAssertionsOf returns the assertions of a named object property,
	// calibrated so that inverse-property assertions appear direct.
	ObjectAssertionsOf(property Term) []ObjectPropertyAssertion
	// DataAssertionsOf returns the assertions of a data property.
	DataAssertionsOf(property Term) []DataPropertyAssertion
	// AnnotationAssertionsOf returns the assertions of an annotation property.
	AnnotationAssertionsOf(property Term) []AnnotationAssertion
	// NegativeObjectAssertionsOf returns the calibrated negative assertions
	// of a named object property.
	NegativeObjectAssertionsOf(property Term) []NegativeObjectPropertyAssertion
	// NegativeDataAssertionsOf returns the negative assertions of a data property.
	NegativeDataAssertionsOf(property Term) []NegativeDataPropertyAssertion

	// CheckClassAssertionCompatibility reports whether asserting the
	// individual into the class leaves the ontology free of disjointness clashes.
	CheckClassAssertionCompatibility(class ClassExpression, individual Term) bool
	// CheckObjectAssertionCompatibility reports whether the assertion would
	// not contradict an existing constraint.
	CheckObjectAssertionCompatibility(property ObjectPropertyExpression, source, target Term) bool
	// CheckDataAssertionCompatibility reports whether the assertion would
	// not contradict an existing constraint.
	CheckDataAssertionCompatibility(property, source, value Term) bool
}

// Declarer accepts axioms into the ontology collection matching their category.
type Declarer interface {
	DeclareAssertionAxiom(axiom Axiom) error
	DeclareClassAxiom(axiom Axiom) error
	DeclareObjectPropertyAxiom(axiom Axiom) error
	DeclareDataPropertyAxiom(axiom Axiom) error
	DeclareAnnotationAxiom(axiom Axiom) error
}

// MutableOntology is an Ontology that accepts merged inferences.
type MutableOntology interface {
	Ontology
	Declarer
}

// AxiomsOf returns the asserted axioms of the given kind with their
// concrete type.
func AxiomsOf[T Axiom](ont Ontology, kind AxiomKind) []T {
	axioms := ont.Axioms(kind)
	out := make([]T, 0, len(axioms))
	for _, a := range axioms {
		if typed, ok := a.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// Declare routes an axiom to the Declarer collection matching its category.
func Declare(d Declarer, axiom Axiom) error {
	switch axiom.Kind().Category() {
	case CategoryAssertion:
		return d.DeclareAssertionAxiom(axiom)
	case CategoryClass:
		return d.DeclareClassAxiom(axiom)
	case CategoryObjectProperty:
		return d.DeclareObjectPropertyAxiom(axiom)
	case CategoryDataProperty:
		return d.DeclareDataPropertyAxiom(axiom)
	case CategoryAnnotation:
		return d.DeclareAnnotationAxiom(axiom)
	default:
		return ErrCategoryMismatch
	}
}
