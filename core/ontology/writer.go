package ontology

import (
	"fmt"
	"io"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"

	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

// WriteNTriples serializes the axioms that have a single-triple RDF mapping.
// Axioms over complex class expressions are skipped; the returned count is
// the number of triples written.
func WriteNTriples(w io.Writer, ont Ontology) (int, error) {
	writer := nquads.NewWriter(w)
	written := 0
	emit := func(s, p, o Term) error {
		if s.IsNull() || p.IsNull() || o.IsNull() {
			return nil
		}
		q := quad.Quad{Subject: ToQuad(s), Predicate: ToQuad(p), Object: ToQuad(o)}
		if err := writer.WriteQuad(q); err != nil {
			return fmt.Errorf("write triple: %w", err)
		}
		written++
		return nil
	}
	for _, kind := range AllAxiomKinds() {
		for _, axiom := range ont.Axioms(kind) {
			for _, t := range triplesOf(axiom) {
				if err := emit(t.subject, t.predicate, t.object); err != nil {
					return written, err
				}
			}
		}
	}
	if err := writer.Close(); err != nil {
		return written, fmt.Errorf("close writer: %w", err)
	}
	return written, nil
}

var declarationClasses = map[EntityType]string{
	EntityClass:              vocabulary.OwlClass,
	EntityNamedIndividual:    vocabulary.OwlNamedIndividual,
	EntityObjectProperty:     vocabulary.OwlObjectProperty,
	EntityDataProperty:       vocabulary.OwlDatatypeProperty,
	EntityAnnotationProperty: vocabulary.OwlAnnotationProperty,
}

var characteristicClasses = map[AxiomKind]string{
	KindFunctionalObjectProperty:        vocabulary.OwlFunctionalProperty,
	KindInverseFunctionalObjectProperty: vocabulary.OwlInverseFunctionalProperty,
	KindSymmetricObjectProperty:         vocabulary.OwlSymmetricProperty,
	KindAsymmetricObjectProperty:        vocabulary.OwlAsymmetricProperty,
	KindTransitiveObjectProperty:        vocabulary.OwlTransitiveProperty,
	KindReflexiveObjectProperty:         vocabulary.OwlReflexiveProperty,
	KindIrreflexiveObjectProperty:       vocabulary.OwlIrreflexiveProperty,
}

func iri(s string) Term { return NewIRI(s) }

// triplesOf returns the RDF triples of an axiom with a direct mapping.
func triplesOf(axiom Axiom) []triple {
	rdfType := iri(vocabulary.RdfType)
	switch a := axiom.(type) {
	case Declaration:
		if class, ok := declarationClasses[a.Entity]; ok {
			return []triple{{a.IRI, rdfType, iri(class)}}
		}
	case ClassAssertion:
		if c, ok := AsNamedClass(a.Class); ok {
			return []triple{{a.Individual, rdfType, c}}
		}
	case ObjectPropertyAssertion:
		c := a.Calibrate()
		return []triple{{c.Source, c.Property.Property, c.Target}}
	case DataPropertyAssertion:
		return []triple{{a.Source, a.Property, a.Value}}
	case AnnotationAssertion:
		return []triple{{a.Subject, a.Property, a.Value}}
	case SameIndividual:
		return chainPairs(a.Individuals, iri(vocabulary.OwlSameAs))
	case DifferentIndividuals:
		var out []triple
		for i := range a.Individuals {
			for j := i + 1; j < len(a.Individuals); j++ {
				out = append(out, triple{a.Individuals[i], iri(vocabulary.OwlDifferentFrom), a.Individuals[j]})
			}
		}
		return out
	case SubClassOf:
		return namedClassPair(a.Sub, a.Super, vocabulary.RdfsSubClassOf)
	case EquivalentClasses:
		return namedClassChain(a.Classes, vocabulary.OwlEquivalentClass)
	case DisjointClasses:
		return namedClassChain(a.Classes, vocabulary.OwlDisjointWith)
	case SubObjectPropertyOf:
		if !a.IsChain() && !a.Chain[0].Inverse && !a.Super.Inverse {
			return []triple{{a.Chain[0].Property, iri(vocabulary.RdfsSubPropertyOf), a.Super.Property}}
		}
	case InverseObjectProperties:
		if !a.Left.Inverse && !a.Right.Inverse {
			return []triple{{a.Left.Property, iri(vocabulary.OwlInverseOf), a.Right.Property}}
		}
	case ObjectPropertyCharacteristic:
		if !a.Property.Inverse {
			return []triple{{a.Property.Property, rdfType, iri(characteristicClasses[a.Characteristic])}}
		}
	case ObjectPropertyDomain:
		if c, ok := AsNamedClass(a.Domain); ok && !a.Property.Inverse {
			return []triple{{a.Property.Property, iri(vocabulary.RdfsDomain), c}}
		}
	case ObjectPropertyRange:
		if c, ok := AsNamedClass(a.Range); ok && !a.Property.Inverse {
			return []triple{{a.Property.Property, iri(vocabulary.RdfsRange), c}}
		}
	case SubDataPropertyOf:
		return []triple{{a.Sub, iri(vocabulary.RdfsSubPropertyOf), a.Super}}
	case DataPropertyDomain:
		if c, ok := AsNamedClass(a.Domain); ok {
			return []triple{{a.Property, iri(vocabulary.RdfsDomain), c}}
		}
	case DataPropertyRange:
		return []triple{{a.Property, iri(vocabulary.RdfsRange), a.Range}}
	case FunctionalDataProperty:
		return []triple{{a.Property, rdfType, iri(vocabulary.OwlFunctionalProperty)}}
	}
	return nil
}

func chainPairs(terms []Term, predicate Term) []triple {
	var out []triple
	for i := 1; i < len(terms); i++ {
		out = append(out, triple{terms[0], predicate, terms[i]})
	}
	return out
}

func namedClassPair(a, b ClassExpression, predicate string) []triple {
	ca, ok1 := AsNamedClass(a)
	cb, ok2 := AsNamedClass(b)
	if !ok1 || !ok2 {
		return nil
	}
	return []triple{{ca, iri(predicate), cb}}
}

func namedClassChain(classes []ClassExpression, predicate string) []triple {
	var out []triple
	for i := 1; i < len(classes); i++ {
		out = append(out, namedClassPair(classes[0], classes[i], predicate)...)
	}
	return out
}
