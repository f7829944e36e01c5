package vocabulary

// Standard Vocabulary IRIs
//
// These constants provide the W3C vocabulary IRIs recognized by the loader,
// the standard entailment rules and the validation analyses.
//
// References:
// - RDF/RDFS: https://www.w3.org/TR/rdf11-schema/
// - OWL: https://www.w3.org/TR/owl2-overview/
// - SWRL: https://www.w3.org/Submission/SWRL/
// - SKOS: https://www.w3.org/TR/skos-reference/
// - TIME: https://www.w3.org/TR/owl-time/
// - GeoSPARQL: https://www.ogc.org/standard/geosparql/

// Namespaces
const (
	RDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS  = "http://www.w3.org/2000/01/rdf-schema#"
	OWL   = "http://www.w3.org/2002/07/owl#"
	XSD   = "http://www.w3.org/2001/XMLSchema#"
	SWRLB = "http://www.w3.org/2003/11/swrlb#"
	SKOS  = "http://www.w3.org/2004/02/skos/core#"
	TIME  = "http://www.w3.org/2006/time#"
	GEO   = "http://www.opengis.net/ont/geosparql#"
)

// RDF and RDFS IRIs
const (
	RdfType       = RDF + "type"
	RdfFirst      = RDF + "first"
	RdfRest       = RDF + "rest"
	RdfNil        = RDF + "nil"
	RdfLangString = RDF + "langString"

	RdfsSubClassOf    = RDFS + "subClassOf"
	RdfsSubPropertyOf = RDFS + "subPropertyOf"
	RdfsDomain        = RDFS + "domain"
	RdfsRange         = RDFS + "range"
	RdfsLabel         = RDFS + "label"
	RdfsComment       = RDFS + "comment"
	RdfsSeeAlso       = RDFS + "seeAlso"
	RdfsLiteral       = RDFS + "Literal"
)

// OWL IRIs
const (
	OwlThing                     = OWL + "Thing"
	OwlNothing                   = OWL + "Nothing"
	OwlClass                     = OWL + "Class"
	OwlNamedIndividual           = OWL + "NamedIndividual"
	OwlObjectProperty            = OWL + "ObjectProperty"
	OwlDatatypeProperty          = OWL + "DatatypeProperty"
	OwlAnnotationProperty        = OWL + "AnnotationProperty"
	OwlRestriction               = OWL + "Restriction"
	OwlFunctionalProperty        = OWL + "FunctionalProperty"
	OwlInverseFunctionalProperty = OWL + "InverseFunctionalProperty"
	OwlSymmetricProperty         = OWL + "SymmetricProperty"
	OwlAsymmetricProperty        = OWL + "AsymmetricProperty"
	OwlTransitiveProperty        = OWL + "TransitiveProperty"
	OwlReflexiveProperty         = OWL + "ReflexiveProperty"
	OwlIrreflexiveProperty       = OWL + "IrreflexiveProperty"
	OwlNegativePropertyAssertion = OWL + "NegativePropertyAssertion"
	OwlSameAs                    = OWL + "sameAs"
	OwlDifferentFrom             = OWL + "differentFrom"
	OwlEquivalentClass           = OWL + "equivalentClass"
	OwlEquivalentProperty        = OWL + "equivalentProperty"
	OwlDisjointWith              = OWL + "disjointWith"
	OwlPropertyDisjointWith      = OWL + "propertyDisjointWith"
	OwlInverseOf                 = OWL + "inverseOf"
	OwlOnProperty                = OWL + "onProperty"
	OwlHasValue                  = OWL + "hasValue"
	OwlHasSelf                   = OWL + "hasSelf"
	OwlSomeValuesFrom            = OWL + "someValuesFrom"
	OwlIntersectionOf            = OWL + "intersectionOf"
	OwlUnionOf                   = OWL + "unionOf"
	OwlComplementOf              = OWL + "complementOf"
	OwlOneOf                     = OWL + "oneOf"
	OwlPropertyChainAxiom        = OWL + "propertyChainAxiom"
	OwlHasKey                    = OWL + "hasKey"
	OwlSourceIndividual          = OWL + "sourceIndividual"
	OwlAssertionProperty         = OWL + "assertionProperty"
	OwlTargetIndividual          = OWL + "targetIndividual"
	OwlTargetValue               = OWL + "targetValue"
	OwlDeprecated                = OWL + "deprecated"
	OwlDeprecatedClass           = OWL + "DeprecatedClass"
	OwlDeprecatedProperty        = OWL + "DeprecatedProperty"
	OwlTopObjectProperty         = OWL + "topObjectProperty"
	OwlBottomObjectProperty      = OWL + "bottomObjectProperty"
	OwlTopDataProperty           = OWL + "topDataProperty"
	OwlBottomDataProperty        = OWL + "bottomDataProperty"
)

// XSD datatype IRIs
const (
	XsdString             = XSD + "string"
	XsdBoolean            = XSD + "boolean"
	XsdDecimal            = XSD + "decimal"
	XsdInteger            = XSD + "integer"
	XsdInt                = XSD + "int"
	XsdLong               = XSD + "long"
	XsdShort              = XSD + "short"
	XsdByte               = XSD + "byte"
	XsdNonNegativeInteger = XSD + "nonNegativeInteger"
	XsdPositiveInteger    = XSD + "positiveInteger"
	XsdNegativeInteger    = XSD + "negativeInteger"
	XsdNonPositiveInteger = XSD + "nonPositiveInteger"
	XsdUnsignedInt        = XSD + "unsignedInt"
	XsdUnsignedLong       = XSD + "unsignedLong"
	XsdFloat              = XSD + "float"
	XsdDouble             = XSD + "double"
	XsdDateTime           = XSD + "dateTime"
	XsdDate               = XSD + "date"
	XsdAnyURI             = XSD + "anyURI"
)

// SWRL builtin IRIs
const (
	SwrlbEqual                 = SWRLB + "equal"
	SwrlbNotEqual              = SWRLB + "notEqual"
	SwrlbLessThan              = SWRLB + "lessThan"
	SwrlbLessThanOrEqual       = SWRLB + "lessThanOrEqual"
	SwrlbGreaterThan           = SWRLB + "greaterThan"
	SwrlbGreaterThanOrEqual    = SWRLB + "greaterThanOrEqual"
	SwrlbStringEqualIgnoreCase = SWRLB + "stringEqualIgnoreCase"
	SwrlbContains              = SWRLB + "contains"
	SwrlbContainsIgnoreCase    = SWRLB + "containsIgnoreCase"
	SwrlbStartsWith            = SWRLB + "startsWith"
	SwrlbEndsWith              = SWRLB + "endsWith"
	SwrlbMatches               = SWRLB + "matches"
	SwrlbLangMatches           = SWRLB + "langMatches"
)

// SKOS (Simple Knowledge Organization System) IRIs
const (
	SkosConcept            = SKOS + "Concept"
	SkosConceptScheme      = SKOS + "ConceptScheme"
	SkosInScheme           = SKOS + "inScheme"
	SkosBroader            = SKOS + "broader"
	SkosNarrower           = SKOS + "narrower"
	SkosBroaderTransitive  = SKOS + "broaderTransitive"
	SkosNarrowerTransitive = SKOS + "narrowerTransitive"
	SkosRelated            = SKOS + "related"
	SkosExactMatch         = SKOS + "exactMatch"
	SkosCloseMatch         = SKOS + "closeMatch"
	SkosBroadMatch         = SKOS + "broadMatch"
	SkosNarrowMatch        = SKOS + "narrowMatch"
	SkosRelatedMatch       = SKOS + "relatedMatch"
	SkosPrefLabel          = SKOS + "prefLabel"
	SkosAltLabel           = SKOS + "altLabel"
	SkosHiddenLabel        = SKOS + "hiddenLabel"
	SkosNotation           = SKOS + "notation"
)

// TIME (OWL-Time) IRIs
const (
	TimeInterval             = TIME + "Interval"
	TimeInstant              = TIME + "Instant"
	TimeIntervalBefore       = TIME + "intervalBefore"
	TimeIntervalAfter        = TIME + "intervalAfter"
	TimeIntervalMeets        = TIME + "intervalMeets"
	TimeIntervalMetBy        = TIME + "intervalMetBy"
	TimeIntervalOverlaps     = TIME + "intervalOverlaps"
	TimeIntervalOverlappedBy = TIME + "intervalOverlappedBy"
	TimeIntervalStarts       = TIME + "intervalStarts"
	TimeIntervalStartedBy    = TIME + "intervalStartedBy"
	TimeIntervalDuring       = TIME + "intervalDuring"
	TimeIntervalContains     = TIME + "intervalContains"
	TimeIntervalFinishes     = TIME + "intervalFinishes"
	TimeIntervalFinishedBy   = TIME + "intervalFinishedBy"
	TimeIntervalEquals       = TIME + "intervalEquals"
	TimeIntervalIn           = TIME + "intervalIn"
	TimeIntervalDisjoint     = TIME + "intervalDisjoint"
	TimeBefore               = TIME + "before"
	TimeAfter                = TIME + "after"
)

// GeoSPARQL simple-features topology IRIs
const (
	GeoFeature      = GEO + "Feature"
	GeoGeometry     = GEO + "Geometry"
	GeoHasGeometry  = GEO + "hasGeometry"
	GeoSfEquals     = GEO + "sfEquals"
	GeoSfDisjoint   = GEO + "sfDisjoint"
	GeoSfIntersects = GEO + "sfIntersects"
	GeoSfTouches    = GEO + "sfTouches"
	GeoSfWithin     = GEO + "sfWithin"
	GeoSfContains   = GEO + "sfContains"
	GeoSfOverlaps   = GEO + "sfOverlaps"
	GeoSfCrosses    = GEO + "sfCrosses"
)

// Prefixes maps the conventional prefix of each standard namespace to its IRI.
var Prefixes = map[string]string{
	"rdf":   RDF,
	"rdfs":  RDFS,
	"owl":   OWL,
	"xsd":   XSD,
	"swrlb": SWRLB,
	"skos":  SKOS,
	"time":  TIME,
	"geo":   GEO,
}
