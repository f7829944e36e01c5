package ontology

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"

	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

// =============================================================================
// Term <-> quad.Value
// =============================================================================

// ToQuad converts a term into its cayley quad value.
func ToQuad(t Term) quad.Value {
	switch t.Kind() {
	case TermIRI:
		return quad.IRI(t.Value())
	case TermBlank:
		return quad.BNode(t.Value())
	case TermLiteral:
		if t.Lang() != "" {
			return quad.LangString{Value: quad.String(t.Value()), Lang: t.Lang()}
		}
		if t.Datatype() == vocabulary.XsdString {
			return quad.String(t.Value())
		}
		return quad.TypedString{Value: quad.String(t.Value()), Type: quad.IRI(t.Datatype())}
	default:
		return nil
	}
}

// TermFromQuad converts a cayley quad value into a term.
func TermFromQuad(v quad.Value) Term {
	switch x := v.(type) {
	case nil:
		return Term{}
	case quad.IRI:
		return iriOrBlank(string(x))
	case quad.BNode:
		return NewBlank(string(x))
	case quad.String:
		return NewLiteral(string(x), "")
	case quad.TypedString:
		return NewLiteral(string(x.Value), string(x.Type))
	case quad.LangString:
		return NewLangLiteral(string(x.Value), x.Lang)
	default:
		return NewLiteral(fmt.Sprint(v.Native()), "")
	}
}

// =============================================================================
// Loader
// =============================================================================

// LoadNTriplesFile reads an N-Triples or N-Quads file into a new ontology.
func LoadNTriplesFile(path string) (*MemoryOntology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ontology: %w", err)
	}
	defer f.Close()
	return LoadNTriples(f, "file://"+path)
}

// LoadNTriples reads N-Triples from r and maps the OWL 2 RDF vocabulary onto
// axioms. Triples using predicates without OWL meaning become property or
// annotation assertions.
func LoadNTriples(r io.Reader, iri string) (*MemoryOntology, error) {
	g := &rdfGraph{
		out:   make(map[Term][]triple),
		types: make(map[Term][]Term),
	}
	reader := nquads.NewReader(r, true)
	for {
		q, err := reader.ReadQuad()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read triple %d: %w", len(g.triples)+1, err)
		}
		g.add(triple{
			subject:   TermFromQuad(q.Subject),
			predicate: TermFromQuad(q.Predicate),
			object:    TermFromQuad(q.Object),
		})
	}

	ont := NewMemoryOntology(iri)
	axioms, err := g.axioms()
	if err != nil {
		return nil, err
	}
	if err := ont.Add(axioms...); err != nil {
		return nil, err
	}
	return ont, nil
}

type triple struct {
	subject   Term
	predicate Term
	object    Term
}

// rdfGraph holds the parsed triples and the lookups needed to resolve
// blank-node structures such as restrictions and lists.
type rdfGraph struct {
	triples []triple
	out     map[Term][]triple
	types   map[Term][]Term

	dataProperties       map[Term]bool
	annotationProperties map[Term]bool
}

func (g *rdfGraph) add(t triple) {
	g.triples = append(g.triples, t)
	g.out[t.subject] = append(g.out[t.subject], t)
	if t.predicate.Value() == vocabulary.RdfType {
		g.types[t.subject] = append(g.types[t.subject], t.object)
	}
}

func (g *rdfGraph) object(subject Term, predicate string) (Term, bool) {
	for _, t := range g.out[subject] {
		if t.predicate.Value() == predicate {
			return t.object, true
		}
	}
	return Term{}, false
}

func (g *rdfGraph) hasType(subject Term, class string) bool {
	for _, t := range g.types[subject] {
		if t.Value() == class {
			return true
		}
	}
	return false
}

// structural reports whether a blank node only exists to encode a class
// expression, a list or a negative assertion.
func (g *rdfGraph) structural(subject Term) bool {
	if !subject.IsBlank() {
		return false
	}
	if g.hasType(subject, vocabulary.OwlRestriction) || g.hasType(subject, vocabulary.OwlNegativePropertyAssertion) {
		return true
	}
	for _, t := range g.out[subject] {
		switch t.predicate.Value() {
		case vocabulary.RdfFirst, vocabulary.RdfRest, vocabulary.OwlIntersectionOf,
			vocabulary.OwlUnionOf, vocabulary.OwlOneOf, vocabulary.OwlComplementOf:
			return true
		}
	}
	return false
}

func (g *rdfGraph) list(head Term) []Term {
	var items []Term
	seen := make(map[Term]bool)
	for head.IsBlank() && !seen[head] {
		seen[head] = true
		first, ok := g.object(head, vocabulary.RdfFirst)
		if !ok {
			break
		}
		items = append(items, first)
		head, _ = g.object(head, vocabulary.RdfRest)
	}
	return items
}

func (g *rdfGraph) property(t Term) ObjectPropertyExpression {
	if t.IsBlank() {
		if inv, ok := g.object(t, vocabulary.OwlInverseOf); ok {
			return ObjectPropertyExpression{Property: inv, Inverse: true}
		}
	}
	return ObjectPropertyExpression{Property: t}
}

// classExpression resolves a term into a class expression.
func (g *rdfGraph) classExpression(t Term) (ClassExpression, bool) {
	if t.IsIRI() {
		return Class{IRI: t}, true
	}
	if !t.IsBlank() {
		return nil, false
	}
	if p, ok := g.object(t, vocabulary.OwlOnProperty); ok {
		if v, ok := g.object(t, vocabulary.OwlHasValue); ok {
			if v.IsLiteral() {
				return DataHasValue{Property: p, Literal: v}, true
			}
			return ObjectHasValue{Property: g.property(p), Individual: v}, true
		}
		if _, ok := g.object(t, vocabulary.OwlHasSelf); ok {
			return ObjectHasSelf{Property: g.property(p)}, true
		}
		if f, ok := g.object(t, vocabulary.OwlSomeValuesFrom); ok {
			if filler, ok := g.classExpression(f); ok {
				return ObjectSomeValuesFrom{Property: g.property(p), Filler: filler}, true
			}
		}
		return nil, false
	}
	if head, ok := g.object(t, vocabulary.OwlIntersectionOf); ok {
		operands, ok := g.classExpressions(g.list(head))
		return ObjectIntersectionOf{Operands: operands}, ok
	}
	if head, ok := g.object(t, vocabulary.OwlUnionOf); ok {
		operands, ok := g.classExpressions(g.list(head))
		return ObjectUnionOf{Operands: operands}, ok
	}
	if head, ok := g.object(t, vocabulary.OwlOneOf); ok {
		return ObjectOneOf{Individuals: g.list(head)}, true
	}
	if c, ok := g.object(t, vocabulary.OwlComplementOf); ok {
		if operand, ok := g.classExpression(c); ok {
			return ObjectComplementOf{Operand: operand}, true
		}
	}
	return nil, false
}

func (g *rdfGraph) classExpressions(terms []Term) ([]ClassExpression, bool) {
	out := make([]ClassExpression, 0, len(terms))
	for _, t := range terms {
		c, ok := g.classExpression(t)
		if !ok {
			return nil, false
		}
		out = append(out, c)
	}
	return out, len(out) > 0
}

var characteristicTypes = map[string]AxiomKind{
	vocabulary.OwlFunctionalProperty:        KindFunctionalObjectProperty,
	vocabulary.OwlInverseFunctionalProperty: KindInverseFunctionalObjectProperty,
	vocabulary.OwlSymmetricProperty:         KindSymmetricObjectProperty,
	vocabulary.OwlAsymmetricProperty:        KindAsymmetricObjectProperty,
	vocabulary.OwlTransitiveProperty:        KindTransitiveObjectProperty,
	vocabulary.OwlReflexiveProperty:         KindReflexiveObjectProperty,
	vocabulary.OwlIrreflexiveProperty:       KindIrreflexiveObjectProperty,
}

var declarationTypes = map[string]EntityType{
	vocabulary.OwlClass:              EntityClass,
	vocabulary.OwlNamedIndividual:    EntityNamedIndividual,
	vocabulary.OwlObjectProperty:     EntityObjectProperty,
	vocabulary.OwlDatatypeProperty:   EntityDataProperty,
	vocabulary.OwlAnnotationProperty: EntityAnnotationProperty,
}

var builtinAnnotationProperties = map[string]bool{
	vocabulary.RdfsLabel:       true,
	vocabulary.RdfsComment:     true,
	vocabulary.RdfsSeeAlso:     true,
	vocabulary.OwlDeprecated:   true,
	vocabulary.SkosPrefLabel:   true,
	vocabulary.SkosAltLabel:    true,
	vocabulary.SkosHiddenLabel: true,
	vocabulary.SkosNotation:    true,
}

// axioms maps the graph onto axioms.
func (g *rdfGraph) axioms() ([]Axiom, error) {
	g.dataProperties = make(map[Term]bool)
	g.annotationProperties = make(map[Term]bool)
	for subject, types := range g.types {
		for _, t := range types {
			switch t.Value() {
			case vocabulary.OwlDatatypeProperty:
				g.dataProperties[subject] = true
			case vocabulary.OwlAnnotationProperty:
				g.annotationProperties[subject] = true
			}
		}
	}

	var out []Axiom
	for _, t := range g.triples {
		if g.structural(t.subject) {
			if g.hasType(t.subject, vocabulary.OwlNegativePropertyAssertion) && t.predicate.Value() == vocabulary.RdfType {
				if a, ok := g.negativeAssertion(t.subject); ok {
					out = append(out, a)
				}
			}
			continue
		}
		axioms, err := g.mapTriple(t)
		if err != nil {
			return nil, fmt.Errorf("map %s %s %s: %w", t.subject, t.predicate, t.object, err)
		}
		out = append(out, axioms...)
	}
	return out, nil
}

func (g *rdfGraph) negativeAssertion(node Term) (Axiom, bool) {
	source, ok1 := g.object(node, vocabulary.OwlSourceIndividual)
	property, ok2 := g.object(node, vocabulary.OwlAssertionProperty)
	if !ok1 || !ok2 {
		return nil, false
	}
	if target, ok := g.object(node, vocabulary.OwlTargetIndividual); ok {
		return NegativeObjectPropertyAssertion{Property: g.property(property), Source: source, Target: target}, true
	}
	if value, ok := g.object(node, vocabulary.OwlTargetValue); ok {
		return NegativeDataPropertyAssertion{Property: property, Source: source, Value: value}, true
	}
	return nil, false
}

func (g *rdfGraph) mapTriple(t triple) ([]Axiom, error) {
	s, p, o := t.subject, t.predicate.Value(), t.object
	switch p {
	case vocabulary.RdfType:
		return g.mapType(s, o)
	case vocabulary.RdfsSubClassOf:
		return g.classPair(s, o, func(a, b ClassExpression) (Axiom, error) { return NewSubClassOf(a, b) })
	case vocabulary.OwlEquivalentClass:
		return g.classPair(s, o, func(a, b ClassExpression) (Axiom, error) { return NewEquivalentClasses(a, b) })
	case vocabulary.OwlDisjointWith:
		return g.classPair(s, o, func(a, b ClassExpression) (Axiom, error) { return NewDisjointClasses(a, b) })
	case vocabulary.RdfsSubPropertyOf:
		if g.dataProperties[s] {
			return []Axiom{SubDataPropertyOf{Sub: s, Super: o}}, nil
		}
		if g.annotationProperties[s] {
			return nil, nil
		}
		a, err := NewSubObjectPropertyOf(g.property(o), g.property(s))
		return []Axiom{a}, err
	case vocabulary.OwlEquivalentProperty:
		if g.dataProperties[s] {
			a, err := NewEquivalentDataProperties(s, o)
			return []Axiom{a}, err
		}
		a, err := NewEquivalentObjectProperties(g.property(s), g.property(o))
		return []Axiom{a}, err
	case vocabulary.OwlPropertyDisjointWith:
		if g.dataProperties[s] {
			a, err := NewDisjointDataProperties(s, o)
			return []Axiom{a}, err
		}
		a, err := NewDisjointObjectProperties(g.property(s), g.property(o))
		return []Axiom{a}, err
	case vocabulary.OwlInverseOf:
		if s.IsBlank() {
			return nil, nil
		}
		return []Axiom{InverseObjectProperties{Left: g.property(s), Right: g.property(o)}}, nil
	case vocabulary.RdfsDomain:
		return g.mapDomain(s, o)
	case vocabulary.RdfsRange:
		return g.mapRange(s, o)
	case vocabulary.OwlPropertyChainAxiom:
		var chain []ObjectPropertyExpression
		for _, link := range g.list(o) {
			chain = append(chain, g.property(link))
		}
		a, err := NewSubObjectPropertyOf(g.property(s), chain...)
		return []Axiom{a}, err
	case vocabulary.OwlHasKey:
		return g.mapHasKey(s, o)
	case vocabulary.OwlSameAs:
		a, err := NewSameIndividual(s, o)
		return []Axiom{a}, err
	case vocabulary.OwlDifferentFrom:
		a, err := NewDifferentIndividuals(s, o)
		return []Axiom{a}, err
	}

	property := t.predicate
	switch {
	case g.annotationProperties[property] || builtinAnnotationProperties[p] && !g.dataProperties[property]:
		return []Axiom{AnnotationAssertion{Property: property, Subject: s, Value: o}}, nil
	case o.IsLiteral():
		a, err := NewDataPropertyAssertion(property, s, o)
		return []Axiom{a}, err
	default:
		a, err := NewObjectPropertyAssertion(ObjectPropertyExpression{Property: property}, s, o)
		return []Axiom{a}, err
	}
}

func (g *rdfGraph) mapType(s, o Term) ([]Axiom, error) {
	if entity, ok := declarationTypes[o.Value()]; ok {
		return []Axiom{Declaration{Entity: entity, IRI: s}}, nil
	}
	if kind, ok := characteristicTypes[o.Value()]; ok {
		if kind == KindFunctionalObjectProperty && g.dataProperties[s] {
			return []Axiom{FunctionalDataProperty{Property: s}}, nil
		}
		a, err := NewObjectPropertyCharacteristic(kind, g.property(s))
		return []Axiom{a}, err
	}
	switch o.Value() {
	case vocabulary.OwlDeprecatedClass, vocabulary.OwlDeprecatedProperty:
		return []Axiom{AnnotationAssertion{
			Property: NewIRI(vocabulary.OwlDeprecated),
			Subject:  s,
			Value:    NewLiteral("true", vocabulary.XsdBoolean),
		}}, nil
	}
	class, ok := g.classExpression(o)
	if !ok {
		return nil, nil
	}
	a, err := NewClassAssertion(class, s)
	return []Axiom{a}, err
}

func (g *rdfGraph) classPair(s, o Term, build func(a, b ClassExpression) (Axiom, error)) ([]Axiom, error) {
	a, ok1 := g.classExpression(s)
	b, ok2 := g.classExpression(o)
	if !ok1 || !ok2 {
		return nil, nil
	}
	axiom, err := build(a, b)
	if err != nil {
		return nil, err
	}
	return []Axiom{axiom}, nil
}

func (g *rdfGraph) mapDomain(s, o Term) ([]Axiom, error) {
	if g.annotationProperties[s] {
		return nil, nil
	}
	domain, ok := g.classExpression(o)
	if !ok {
		return nil, nil
	}
	if g.dataProperties[s] {
		return []Axiom{DataPropertyDomain{Property: s, Domain: domain}}, nil
	}
	return []Axiom{ObjectPropertyDomain{Property: g.property(s), Domain: domain}}, nil
}

func (g *rdfGraph) mapRange(s, o Term) ([]Axiom, error) {
	if g.annotationProperties[s] {
		return nil, nil
	}
	if g.dataProperties[s] {
		return []Axiom{DataPropertyRange{Property: s, Range: o}}, nil
	}
	rng, ok := g.classExpression(o)
	if !ok {
		return nil, nil
	}
	return []Axiom{ObjectPropertyRange{Property: g.property(s), Range: rng}}, nil
}

func (g *rdfGraph) mapHasKey(s, o Term) ([]Axiom, error) {
	class, ok := g.classExpression(s)
	if !ok {
		return nil, nil
	}
	var objects []ObjectPropertyExpression
	var data []Term
	for _, p := range g.list(o) {
		if g.dataProperties[p] {
			data = append(data, p)
		} else {
			objects = append(objects, g.property(p))
		}
	}
	a, err := NewHasKey(class, objects, data)
	return []Axiom{a}, err
}
