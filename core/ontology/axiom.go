package ontology

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNilArgument is returned when a required axiom argument is missing.
	ErrNilArgument = errors.New("required argument is nil")
	// ErrCardinality is returned when an n-ary axiom gets too few elements.
	ErrCardinality = errors.New("too few elements")
	// ErrInvalidCharacteristic is returned for a kind that is not an object
	// property characteristic.
	ErrInvalidCharacteristic = errors.New("not an object property characteristic")
)

// =============================================================================
// AxiomKind and AxiomCategory
// =============================================================================

// AxiomKind enumerates every axiom type known to the ontology.
type AxiomKind int

const (
	KindDeclaration AxiomKind = iota

	KindClassAssertion
	KindObjectPropertyAssertion
	KindDataPropertyAssertion
	KindNegativeObjectPropertyAssertion
	KindNegativeDataPropertyAssertion
	KindSameIndividual
	KindDifferentIndividuals

	KindSubClassOf
	KindEquivalentClasses
	KindDisjointClasses
	KindDisjointUnion
	KindHasKey

	KindSubObjectPropertyOf
	KindEquivalentObjectProperties
	KindDisjointObjectProperties
	KindInverseObjectProperties
	KindObjectPropertyDomain
	KindObjectPropertyRange
	KindFunctionalObjectProperty
	KindInverseFunctionalObjectProperty
	KindReflexiveObjectProperty
	KindIrreflexiveObjectProperty
	KindSymmetricObjectProperty
	KindAsymmetricObjectProperty
	KindTransitiveObjectProperty

	KindSubDataPropertyOf
	KindEquivalentDataProperties
	KindDisjointDataProperties
	KindDataPropertyDomain
	KindDataPropertyRange
	KindFunctionalDataProperty

	KindAnnotationAssertion

	axiomKindCount
)

var axiomKindNames = [axiomKindCount]string{
	KindDeclaration:                     "Declaration",
	KindClassAssertion:                  "ClassAssertion",
	KindObjectPropertyAssertion:         "ObjectPropertyAssertion",
	KindDataPropertyAssertion:           "DataPropertyAssertion",
	KindNegativeObjectPropertyAssertion: "NegativeObjectPropertyAssertion",
	KindNegativeDataPropertyAssertion:   "NegativeDataPropertyAssertion",
	KindSameIndividual:                  "SameIndividual",
	KindDifferentIndividuals:            "DifferentIndividuals",
	KindSubClassOf:                      "SubClassOf",
	KindEquivalentClasses:               "EquivalentClasses",
	KindDisjointClasses:                 "DisjointClasses",
	KindDisjointUnion:                   "DisjointUnion",
	KindHasKey:                          "HasKey",
	KindSubObjectPropertyOf:             "SubObjectPropertyOf",
	KindEquivalentObjectProperties:      "EquivalentObjectProperties",
	KindDisjointObjectProperties:        "DisjointObjectProperties",
	KindInverseObjectProperties:         "InverseObjectProperties",
	KindObjectPropertyDomain:            "ObjectPropertyDomain",
	KindObjectPropertyRange:             "ObjectPropertyRange",
	KindFunctionalObjectProperty:        "FunctionalObjectProperty",
	KindInverseFunctionalObjectProperty: "InverseFunctionalObjectProperty",
	KindReflexiveObjectProperty:         "ReflexiveObjectProperty",
	KindIrreflexiveObjectProperty:       "IrreflexiveObjectProperty",
	KindSymmetricObjectProperty:         "SymmetricObjectProperty",
	KindAsymmetricObjectProperty:        "AsymmetricObjectProperty",
	KindTransitiveObjectProperty:        "TransitiveObjectProperty",
	KindSubDataPropertyOf:               "SubDataPropertyOf",
	KindEquivalentDataProperties:        "EquivalentDataProperties",
	KindDisjointDataProperties:          "DisjointDataProperties",
	KindDataPropertyDomain:              "DataPropertyDomain",
	KindDataPropertyRange:               "DataPropertyRange",
	KindFunctionalDataProperty:          "FunctionalDataProperty",
	KindAnnotationAssertion:             "AnnotationAssertion",
}

// AllAxiomKinds returns every axiom kind in declaration order.
func AllAxiomKinds() []AxiomKind {
	kinds := make([]AxiomKind, axiomKindCount)
	for i := range kinds {
		kinds[i] = AxiomKind(i)
	}
	return kinds
}

// String returns the functional-syntax name of the kind.
func (k AxiomKind) String() string {
	if k < 0 || k >= axiomKindCount {
		return fmt.Sprintf("AxiomKind(%d)", int(k))
	}
	return axiomKindNames[k]
}

// AxiomCategory groups axiom kinds by the ontology collection they belong to.
type AxiomCategory int

const (
	CategoryDeclaration AxiomCategory = iota
	CategoryAssertion
	CategoryClass
	CategoryObjectProperty
	CategoryDataProperty
	CategoryAnnotation
)

// String returns the category name.
func (c AxiomCategory) String() string {
	switch c {
	case CategoryDeclaration:
		return "declaration"
	case CategoryAssertion:
		return "assertion"
	case CategoryClass:
		return "class"
	case CategoryObjectProperty:
		return "object-property"
	case CategoryDataProperty:
		return "data-property"
	case CategoryAnnotation:
		return "annotation"
	default:
		return fmt.Sprintf("AxiomCategory(%d)", int(c))
	}
}

// Category returns the collection an axiom of this kind is declared into.
func (k AxiomKind) Category() AxiomCategory {
	switch {
	case k == KindDeclaration:
		return CategoryDeclaration
	case k >= KindClassAssertion && k <= KindDifferentIndividuals:
		return CategoryAssertion
	case k >= KindSubClassOf && k <= KindHasKey:
		return CategoryClass
	case k >= KindSubObjectPropertyOf && k <= KindTransitiveObjectProperty:
		return CategoryObjectProperty
	case k >= KindSubDataPropertyOf && k <= KindFunctionalDataProperty:
		return CategoryDataProperty
	default:
		return CategoryAnnotation
	}
}

// =============================================================================
// Axiom
// =============================================================================

// Axiom is a single statement of the ontology. String returns the canonical
// functional-syntax form used for equality and deduplication.
type Axiom interface {
	Kind() AxiomKind
	String() string
}

// EntityType is the type of entity introduced by a Declaration.
type EntityType string

const (
	EntityClass              EntityType = "Class"
	EntityNamedIndividual    EntityType = "NamedIndividual"
	EntityObjectProperty     EntityType = "ObjectProperty"
	EntityDataProperty       EntityType = "DataProperty"
	EntityAnnotationProperty EntityType = "AnnotationProperty"
	EntityDatatype           EntityType = "Datatype"
)

// Declaration introduces an entity.
type Declaration struct {
	Entity EntityType
	IRI    Term
}

func (Declaration) Kind() AxiomKind { return KindDeclaration }
func (a Declaration) String() string {
	return "Declaration(" + string(a.Entity) + "(" + a.IRI.String() + "))"
}

// -----------------------------------------------------------------------------
// Assertion axioms
// -----------------------------------------------------------------------------

// ClassAssertion states that Individual is a member of Class.
type ClassAssertion struct {
	Class      ClassExpression
	Individual Term
}

// NewClassAssertion validates and returns a class assertion.
func NewClassAssertion(class ClassExpression, individual Term) (ClassAssertion, error) {
	if class == nil || !individual.IsResource() {
		return ClassAssertion{}, fmt.Errorf("class assertion: %w", ErrNilArgument)
	}
	return ClassAssertion{Class: class, Individual: individual}, nil
}

func (ClassAssertion) Kind() AxiomKind { return KindClassAssertion }
func (a ClassAssertion) String() string {
	return "ClassAssertion(" + a.Class.String() + " " + a.Individual.String() + ")"
}

// ObjectPropertyAssertion relates Source to Target through Property.
type ObjectPropertyAssertion struct {
	Property ObjectPropertyExpression
	Source   Term
	Target   Term
}

// NewObjectPropertyAssertion validates and returns an object property assertion.
func NewObjectPropertyAssertion(property ObjectPropertyExpression, source, target Term) (ObjectPropertyAssertion, error) {
	if property.IsNull() || !source.IsResource() || !target.IsResource() {
		return ObjectPropertyAssertion{}, fmt.Errorf("object property assertion: %w", ErrNilArgument)
	}
	return ObjectPropertyAssertion{Property: property, Source: source, Target: target}, nil
}

func (ObjectPropertyAssertion) Kind() AxiomKind { return KindObjectPropertyAssertion }
func (a ObjectPropertyAssertion) String() string {
	return "ObjectPropertyAssertion(" + a.Property.String() + " " + a.Source.String() + " " + a.Target.String() + ")"
}

// Calibrate rewrites an assertion made through an inverse property into the
// equivalent assertion on the named property with source and target swapped.
func (a ObjectPropertyAssertion) Calibrate() ObjectPropertyAssertion {
	if !a.Property.Inverse {
		return a
	}
	return ObjectPropertyAssertion{Property: a.Property.Invert(), Source: a.Target, Target: a.Source}
}

// DataPropertyAssertion relates Source to the literal Value through Property.
type DataPropertyAssertion struct {
	Property Term
	Source   Term
	Value    Term
}

// NewDataPropertyAssertion validates and returns a data property assertion.
func NewDataPropertyAssertion(property, source, value Term) (DataPropertyAssertion, error) {
	if !property.IsIRI() || !source.IsResource() || !value.IsLiteral() {
		return DataPropertyAssertion{}, fmt.Errorf("data property assertion: %w", ErrNilArgument)
	}
	return DataPropertyAssertion{Property: property, Source: source, Value: value}, nil
}

func (DataPropertyAssertion) Kind() AxiomKind { return KindDataPropertyAssertion }
func (a DataPropertyAssertion) String() string {
	return "DataPropertyAssertion(" + a.Property.String() + " " + a.Source.String() + " " + a.Value.String() + ")"
}

// NegativeObjectPropertyAssertion states that Source is not related to Target.
type NegativeObjectPropertyAssertion struct {
	Property ObjectPropertyExpression
	Source   Term
	Target   Term
}

// NewNegativeObjectPropertyAssertion validates and returns a negative object property assertion.
func NewNegativeObjectPropertyAssertion(property ObjectPropertyExpression, source, target Term) (NegativeObjectPropertyAssertion, error) {
	if property.IsNull() || !source.IsResource() || !target.IsResource() {
		return NegativeObjectPropertyAssertion{}, fmt.Errorf("negative object property assertion: %w", ErrNilArgument)
	}
	return NegativeObjectPropertyAssertion{Property: property, Source: source, Target: target}, nil
}

func (NegativeObjectPropertyAssertion) Kind() AxiomKind { return KindNegativeObjectPropertyAssertion }
func (a NegativeObjectPropertyAssertion) String() string {
	return "NegativeObjectPropertyAssertion(" + a.Property.String() + " " + a.Source.String() + " " + a.Target.String() + ")"
}

// Calibrate rewrites an inverse-property negative assertion onto the named
// property with source and target swapped.
func (a NegativeObjectPropertyAssertion) Calibrate() NegativeObjectPropertyAssertion {
	if !a.Property.Inverse {
		return a
	}
	return NegativeObjectPropertyAssertion{Property: a.Property.Invert(), Source: a.Target, Target: a.Source}
}

// NegativeDataPropertyAssertion states that Source does not carry Value.
type NegativeDataPropertyAssertion struct {
	Property Term
	Source   Term
	Value    Term
}

// NewNegativeDataPropertyAssertion validates and returns a negative data property assertion.
func NewNegativeDataPropertyAssertion(property, source, value Term) (NegativeDataPropertyAssertion, error) {
	if !property.IsIRI() || !source.IsResource() || !value.IsLiteral() {
		return NegativeDataPropertyAssertion{}, fmt.Errorf("negative data property assertion: %w", ErrNilArgument)
	}
	return NegativeDataPropertyAssertion{Property: property, Source: source, Value: value}, nil
}

func (NegativeDataPropertyAssertion) Kind() AxiomKind { return KindNegativeDataPropertyAssertion }
func (a NegativeDataPropertyAssertion) String() string {
	return "NegativeDataPropertyAssertion(" + a.Property.String() + " " + a.Source.String() + " " + a.Value.String() + ")"
}

// SameIndividual states that all individuals denote the same thing.
type SameIndividual struct {
	Individuals []Term
}

// NewSameIndividual validates and returns a same-individual axiom.
func NewSameIndividual(individuals ...Term) (SameIndividual, error) {
	if err := checkResources("same individual", individuals); err != nil {
		return SameIndividual{}, err
	}
	return SameIndividual{Individuals: individuals}, nil
}

func (SameIndividual) Kind() AxiomKind { return KindSameIndividual }
func (a SameIndividual) String() string {
	return "SameIndividual(" + joinTerms(a.Individuals) + ")"
}

// DifferentIndividuals states that all individuals are pairwise distinct.
type DifferentIndividuals struct {
	Individuals []Term
}

// NewDifferentIndividuals validates and returns a different-individuals axiom.
func NewDifferentIndividuals(individuals ...Term) (DifferentIndividuals, error) {
	if err := checkResources("different individuals", individuals); err != nil {
		return DifferentIndividuals{}, err
	}
	return DifferentIndividuals{Individuals: individuals}, nil
}

func (DifferentIndividuals) Kind() AxiomKind { return KindDifferentIndividuals }
func (a DifferentIndividuals) String() string {
	return "DifferentIndividuals(" + joinTerms(a.Individuals) + ")"
}

// -----------------------------------------------------------------------------
// Class axioms
// -----------------------------------------------------------------------------

// SubClassOf states that every member of Sub is a member of Super.
type SubClassOf struct {
	Sub   ClassExpression
	Super ClassExpression
}

// NewSubClassOf validates and returns a subclass axiom.
func NewSubClassOf(sub, super ClassExpression) (SubClassOf, error) {
	if sub == nil || super == nil {
		return SubClassOf{}, fmt.Errorf("subclass of: %w", ErrNilArgument)
	}
	return SubClassOf{Sub: sub, Super: super}, nil
}

func (SubClassOf) Kind() AxiomKind { return KindSubClassOf }
func (a SubClassOf) String() string {
	return "SubClassOf(" + a.Sub.String() + " " + a.Super.String() + ")"
}

// EquivalentClasses states that all classes have the same members.
type EquivalentClasses struct {
	Classes []ClassExpression
}

// NewEquivalentClasses validates and returns an equivalent-classes axiom.
func NewEquivalentClasses(classes ...ClassExpression) (EquivalentClasses, error) {
	if err := checkExpressions("equivalent classes", classes); err != nil {
		return EquivalentClasses{}, err
	}
	return EquivalentClasses{Classes: classes}, nil
}

func (EquivalentClasses) Kind() AxiomKind { return KindEquivalentClasses }
func (a EquivalentClasses) String() string {
	return "EquivalentClasses(" + joinExpressions(a.Classes) + ")"
}

// DisjointClasses states that the classes share no members.
type DisjointClasses struct {
	Classes []ClassExpression
}

// NewDisjointClasses validates and returns a disjoint-classes axiom.
func NewDisjointClasses(classes ...ClassExpression) (DisjointClasses, error) {
	if err := checkExpressions("disjoint classes", classes); err != nil {
		return DisjointClasses{}, err
	}
	return DisjointClasses{Classes: classes}, nil
}

func (DisjointClasses) Kind() AxiomKind { return KindDisjointClasses }
func (a DisjointClasses) String() string {
	return "DisjointClasses(" + joinExpressions(a.Classes) + ")"
}

// DisjointUnion states that Class is the union of pairwise disjoint operands.
type DisjointUnion struct {
	Class    Term
	Operands []ClassExpression
}

// NewDisjointUnion validates and returns a disjoint-union axiom.
func NewDisjointUnion(class Term, operands ...ClassExpression) (DisjointUnion, error) {
	if !class.IsIRI() {
		return DisjointUnion{}, fmt.Errorf("disjoint union: %w", ErrNilArgument)
	}
	if err := checkExpressions("disjoint union", operands); err != nil {
		return DisjointUnion{}, err
	}
	return DisjointUnion{Class: class, Operands: operands}, nil
}

func (DisjointUnion) Kind() AxiomKind { return KindDisjointUnion }
func (a DisjointUnion) String() string {
	return "DisjointUnion(" + a.Class.String() + " " + joinExpressions(a.Operands) + ")"
}

// HasKey states that members of Class are identified by the key properties.
type HasKey struct {
	Class            ClassExpression
	ObjectProperties []ObjectPropertyExpression
	DataProperties   []Term
}

// NewHasKey validates and returns a key axiom.
func NewHasKey(class ClassExpression, objectProperties []ObjectPropertyExpression, dataProperties []Term) (HasKey, error) {
	if class == nil {
		return HasKey{}, fmt.Errorf("has key: %w", ErrNilArgument)
	}
	if len(objectProperties)+len(dataProperties) == 0 {
		return HasKey{}, fmt.Errorf("has key needs at least 1 property: %w", ErrCardinality)
	}
	return HasKey{Class: class, ObjectProperties: objectProperties, DataProperties: dataProperties}, nil
}

func (HasKey) Kind() AxiomKind { return KindHasKey }
func (a HasKey) String() string {
	objects := make([]string, len(a.ObjectProperties))
	for i, p := range a.ObjectProperties {
		objects[i] = p.String()
	}
	return "HasKey(" + a.Class.String() + " (" + strings.Join(objects, " ") + ") (" + joinTerms(a.DataProperties) + "))"
}

// -----------------------------------------------------------------------------
// Object property axioms
// -----------------------------------------------------------------------------

// SubObjectPropertyOf states that Chain implies Super. A chain of length one
// is a plain subproperty axiom.
type SubObjectPropertyOf struct {
	Chain []ObjectPropertyExpression
	Super ObjectPropertyExpression
}

// NewSubObjectPropertyOf validates and returns a subproperty axiom.
func NewSubObjectPropertyOf(super ObjectPropertyExpression, chain ...ObjectPropertyExpression) (SubObjectPropertyOf, error) {
	if super.IsNull() || len(chain) == 0 {
		return SubObjectPropertyOf{}, fmt.Errorf("sub object property of: %w", ErrNilArgument)
	}
	for _, p := range chain {
		if p.IsNull() {
			return SubObjectPropertyOf{}, fmt.Errorf("sub object property of: %w", ErrNilArgument)
		}
	}
	return SubObjectPropertyOf{Chain: chain, Super: super}, nil
}

// IsChain reports whether the axiom is a property chain inclusion.
func (a SubObjectPropertyOf) IsChain() bool { return len(a.Chain) > 1 }

func (SubObjectPropertyOf) Kind() AxiomKind { return KindSubObjectPropertyOf }
func (a SubObjectPropertyOf) String() string {
	if !a.IsChain() {
		return "SubObjectPropertyOf(" + a.Chain[0].String() + " " + a.Super.String() + ")"
	}
	return "SubObjectPropertyOf(ObjectPropertyChain(" + joinProperties(a.Chain) + ") " + a.Super.String() + ")"
}

// EquivalentObjectProperties states that the properties have the same extension.
type EquivalentObjectProperties struct {
	Properties []ObjectPropertyExpression
}

// NewEquivalentObjectProperties validates and returns an equivalent-properties axiom.
func NewEquivalentObjectProperties(properties ...ObjectPropertyExpression) (EquivalentObjectProperties, error) {
	if err := checkProperties("equivalent object properties", properties); err != nil {
		return EquivalentObjectProperties{}, err
	}
	return EquivalentObjectProperties{Properties: properties}, nil
}

func (EquivalentObjectProperties) Kind() AxiomKind { return KindEquivalentObjectProperties }
func (a EquivalentObjectProperties) String() string {
	return "EquivalentObjectProperties(" + joinProperties(a.Properties) + ")"
}

// DisjointObjectProperties states that no pair is related by two of the properties.
type DisjointObjectProperties struct {
	Properties []ObjectPropertyExpression
}

// NewDisjointObjectProperties validates and returns a disjoint-properties axiom.
func NewDisjointObjectProperties(properties ...ObjectPropertyExpression) (DisjointObjectProperties, error) {
	if err := checkProperties("disjoint object properties", properties); err != nil {
		return DisjointObjectProperties{}, err
	}
	return DisjointObjectProperties{Properties: properties}, nil
}

func (DisjointObjectProperties) Kind() AxiomKind { return KindDisjointObjectProperties }
func (a DisjointObjectProperties) String() string {
	return "DisjointObjectProperties(" + joinProperties(a.Properties) + ")"
}

// InverseObjectProperties states that Left is the inverse of Right.
type InverseObjectProperties struct {
	Left  ObjectPropertyExpression
	Right ObjectPropertyExpression
}

func (InverseObjectProperties) Kind() AxiomKind { return KindInverseObjectProperties }
func (a InverseObjectProperties) String() string {
	return "InverseObjectProperties(" + a.Left.String() + " " + a.Right.String() + ")"
}

// ObjectPropertyDomain states that sources of Property are members of Domain.
type ObjectPropertyDomain struct {
	Property ObjectPropertyExpression
	Domain   ClassExpression
}

func (ObjectPropertyDomain) Kind() AxiomKind { return KindObjectPropertyDomain }
func (a ObjectPropertyDomain) String() string {
	return "ObjectPropertyDomain(" + a.Property.String() + " " + a.Domain.String() + ")"
}

// ObjectPropertyRange states that targets of Property are members of Range.
type ObjectPropertyRange struct {
	Property ObjectPropertyExpression
	Range    ClassExpression
}

func (ObjectPropertyRange) Kind() AxiomKind { return KindObjectPropertyRange }
func (a ObjectPropertyRange) String() string {
	return "ObjectPropertyRange(" + a.Property.String() + " " + a.Range.String() + ")"
}

// ObjectPropertyCharacteristic declares one of the seven object property
// characteristics; Characteristic holds the matching axiom kind.
type ObjectPropertyCharacteristic struct {
	Characteristic AxiomKind
	Property       ObjectPropertyExpression
}

// NewObjectPropertyCharacteristic validates and returns a characteristic axiom.
func NewObjectPropertyCharacteristic(kind AxiomKind, property ObjectPropertyExpression) (ObjectPropertyCharacteristic, error) {
	if kind < KindFunctionalObjectProperty || kind > KindTransitiveObjectProperty {
		return ObjectPropertyCharacteristic{}, fmt.Errorf("%s: %w", kind, ErrInvalidCharacteristic)
	}
	if property.IsNull() {
		return ObjectPropertyCharacteristic{}, fmt.Errorf("%s: %w", kind, ErrNilArgument)
	}
	return ObjectPropertyCharacteristic{Characteristic: kind, Property: property}, nil
}

func (a ObjectPropertyCharacteristic) Kind() AxiomKind { return a.Characteristic }
func (a ObjectPropertyCharacteristic) String() string {
	return a.Characteristic.String() + "(" + a.Property.String() + ")"
}

// -----------------------------------------------------------------------------
// Data property axioms
// -----------------------------------------------------------------------------

// SubDataPropertyOf states that Sub implies Super.
type SubDataPropertyOf struct {
	Sub   Term
	Super Term
}

func (SubDataPropertyOf) Kind() AxiomKind { return KindSubDataPropertyOf }
func (a SubDataPropertyOf) String() string {
	return "SubDataPropertyOf(" + a.Sub.String() + " " + a.Super.String() + ")"
}

// EquivalentDataProperties states that the properties have the same extension.
type EquivalentDataProperties struct {
	Properties []Term
}

// NewEquivalentDataProperties validates and returns an equivalent-properties axiom.
func NewEquivalentDataProperties(properties ...Term) (EquivalentDataProperties, error) {
	if err := checkIRIs("equivalent data properties", properties); err != nil {
		return EquivalentDataProperties{}, err
	}
	return EquivalentDataProperties{Properties: properties}, nil
}

func (EquivalentDataProperties) Kind() AxiomKind { return KindEquivalentDataProperties }
func (a EquivalentDataProperties) String() string {
	return "EquivalentDataProperties(" + joinTerms(a.Properties) + ")"
}

// DisjointDataProperties states that no individual carries the same value
// through two of the properties.
type DisjointDataProperties struct {
	Properties []Term
}

// NewDisjointDataProperties validates and returns a disjoint-properties axiom.
func NewDisjointDataProperties(properties ...Term) (DisjointDataProperties, error) {
	if err := checkIRIs("disjoint data properties", properties); err != nil {
		return DisjointDataProperties{}, err
	}
	return DisjointDataProperties{Properties: properties}, nil
}

func (DisjointDataProperties) Kind() AxiomKind { return KindDisjointDataProperties }
func (a DisjointDataProperties) String() string {
	return "DisjointDataProperties(" + joinTerms(a.Properties) + ")"
}

// DataPropertyDomain states that sources of Property are members of Domain.
type DataPropertyDomain struct {
	Property Term
	Domain   ClassExpression
}

func (DataPropertyDomain) Kind() AxiomKind { return KindDataPropertyDomain }
func (a DataPropertyDomain) String() string {
	return "DataPropertyDomain(" + a.Property.String() + " " + a.Domain.String() + ")"
}

// DataPropertyRange states that values of Property belong to the Range datatype.
type DataPropertyRange struct {
	Property Term
	Range    Term
}

func (DataPropertyRange) Kind() AxiomKind { return KindDataPropertyRange }
func (a DataPropertyRange) String() string {
	return "DataPropertyRange(" + a.Property.String() + " " + a.Range.String() + ")"
}

// FunctionalDataProperty states that each individual carries at most one value.
type FunctionalDataProperty struct {
	Property Term
}

func (FunctionalDataProperty) Kind() AxiomKind { return KindFunctionalDataProperty }
func (a FunctionalDataProperty) String() string {
	return "FunctionalDataProperty(" + a.Property.String() + ")"
}

// -----------------------------------------------------------------------------
// Annotation axioms
// -----------------------------------------------------------------------------

// AnnotationAssertion attaches Value to Subject through Property.
type AnnotationAssertion struct {
	Property Term
	Subject  Term
	Value    Term
}

// NewAnnotationAssertion validates and returns an annotation assertion.
func NewAnnotationAssertion(property, subject, value Term) (AnnotationAssertion, error) {
	if !property.IsIRI() || subject.IsNull() || value.IsNull() {
		return AnnotationAssertion{}, fmt.Errorf("annotation assertion: %w", ErrNilArgument)
	}
	return AnnotationAssertion{Property: property, Subject: subject, Value: value}, nil
}

func (AnnotationAssertion) Kind() AxiomKind { return KindAnnotationAssertion }
func (a AnnotationAssertion) String() string {
	return "AnnotationAssertion(" + a.Property.String() + " " + a.Subject.String() + " " + a.Value.String() + ")"
}

// =============================================================================
// Validation helpers
// =============================================================================

func checkResources(what string, terms []Term) error {
	if len(terms) < 2 {
		return fmt.Errorf("%s needs at least 2 individuals, got %d: %w", what, len(terms), ErrCardinality)
	}
	for _, t := range terms {
		if !t.IsResource() {
			return fmt.Errorf("%s: %w", what, ErrNilArgument)
		}
	}
	return nil
}

func checkIRIs(what string, terms []Term) error {
	if len(terms) < 2 {
		return fmt.Errorf("%s needs at least 2 properties, got %d: %w", what, len(terms), ErrCardinality)
	}
	for _, t := range terms {
		if !t.IsIRI() {
			return fmt.Errorf("%s: %w", what, ErrNilArgument)
		}
	}
	return nil
}

func checkExpressions(what string, exprs []ClassExpression) error {
	if len(exprs) < 2 {
		return fmt.Errorf("%s needs at least 2 classes, got %d: %w", what, len(exprs), ErrCardinality)
	}
	for _, e := range exprs {
		if e == nil {
			return fmt.Errorf("%s: %w", what, ErrNilArgument)
		}
	}
	return nil
}

func checkProperties(what string, properties []ObjectPropertyExpression) error {
	if len(properties) < 2 {
		return fmt.Errorf("%s needs at least 2 properties, got %d: %w", what, len(properties), ErrCardinality)
	}
	for _, p := range properties {
		if p.IsNull() {
			return fmt.Errorf("%s: %w", what, ErrNilArgument)
		}
	}
	return nil
}

func joinProperties(properties []ObjectPropertyExpression) string {
	parts := make([]string, len(properties))
	for i, p := range properties {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
