package inference

import (
	"fmt"
	"strings"
)

// =============================================================================
// Standard Rule Identifiers
// =============================================================================

// Namespace groups standard rules by the vocabulary they reason over.
type Namespace uint8

const (
	NamespaceOWL2 Namespace = iota
	NamespaceSKOS
	NamespaceTIME
	NamespaceGEO
)

var namespaceNames = [...]string{
	NamespaceOWL2: "owl2",
	NamespaceSKOS: "skos",
	NamespaceTIME: "time",
	NamespaceGEO:  "geo",
}

func (n Namespace) String() string {
	if int(n) < len(namespaceNames) {
		return namespaceNames[n]
	}
	return fmt.Sprintf("Namespace(%d)", int(n))
}

// StandardRule identifies a built-in entailment rule. It is implemented by
// OWL2Rule, SKOSRule, TIMERule and GEORule.
type StandardRule interface {
	Namespace() Namespace
	// String returns the rule name, which is also the provenance of its
	// inferences.
	String() string
	ordinal() int
}

// QualifiedName returns "<namespace>:<name>", the form matched by
// AddRulesMatching and accepted by ParseStandardRule.
func QualifiedName(r StandardRule) string {
	return r.Namespace().String() + ":" + r.String()
}

// OWL2Rule enumerates the OWL2 entailment rules.
type OWL2Rule uint8

const (
	ClassAssertionEntailment OWL2Rule = iota
	SubClassOfEntailment
	EquivalentClassesEntailment
	DisjointClassesEntailment
	SubObjectPropertyOfEntailment
	EquivalentObjectPropertiesEntailment
	InverseObjectPropertiesEntailment
	SymmetricObjectPropertyEntailment
	TransitiveObjectPropertyEntailment
	ReflexiveObjectPropertyEntailment
	ObjectPropertyDomainEntailment
	ObjectPropertyRangeEntailment
	ObjectPropertyChainEntailment
	FunctionalObjectPropertyEntailment
	InverseFunctionalObjectPropertyEntailment
	SubDataPropertyOfEntailment
	EquivalentDataPropertiesEntailment
	DataPropertyDomainEntailment
	SameIndividualEntailment
	DifferentIndividualsEntailment
	HasValueEntailment
	HasSelfEntailment
	HasKeyEntailment

	owl2RuleCount
)

var owl2RuleNames = [owl2RuleCount]string{
	ClassAssertionEntailment:                  "ClassAssertionEntailment",
	SubClassOfEntailment:                      "SubClassOfEntailment",
	EquivalentClassesEntailment:               "EquivalentClassesEntailment",
	DisjointClassesEntailment:                 "DisjointClassesEntailment",
	SubObjectPropertyOfEntailment:             "SubObjectPropertyOfEntailment",
	EquivalentObjectPropertiesEntailment:      "EquivalentObjectPropertiesEntailment",
	InverseObjectPropertiesEntailment:         "InverseObjectPropertiesEntailment",
	SymmetricObjectPropertyEntailment:         "SymmetricObjectPropertyEntailment",
	TransitiveObjectPropertyEntailment:        "TransitiveObjectPropertyEntailment",
	ReflexiveObjectPropertyEntailment:         "ReflexiveObjectPropertyEntailment",
	ObjectPropertyDomainEntailment:            "ObjectPropertyDomainEntailment",
	ObjectPropertyRangeEntailment:             "ObjectPropertyRangeEntailment",
	ObjectPropertyChainEntailment:             "ObjectPropertyChainEntailment",
	FunctionalObjectPropertyEntailment:        "FunctionalObjectPropertyEntailment",
	InverseFunctionalObjectPropertyEntailment: "InverseFunctionalObjectPropertyEntailment",
	SubDataPropertyOfEntailment:               "SubDataPropertyOfEntailment",
	EquivalentDataPropertiesEntailment:        "EquivalentDataPropertiesEntailment",
	DataPropertyDomainEntailment:              "DataPropertyDomainEntailment",
	SameIndividualEntailment:                  "SameIndividualEntailment",
	DifferentIndividualsEntailment:            "DifferentIndividualsEntailment",
	HasValueEntailment:                        "HasValueEntailment",
	HasSelfEntailment:                         "HasSelfEntailment",
	HasKeyEntailment:                          "HasKeyEntailment",
}

func (OWL2Rule) Namespace() Namespace { return NamespaceOWL2 }
func (r OWL2Rule) ordinal() int       { return int(r) }
func (r OWL2Rule) String() string {
	if r < owl2RuleCount {
		return owl2RuleNames[r]
	}
	return fmt.Sprintf("OWL2Rule(%d)", int(r))
}

// SKOSRule enumerates the SKOS entailment rules.
type SKOSRule uint8

const (
	BroaderEntailment SKOSRule = iota
	NarrowerEntailment
	RelatedEntailment
	ExactMatchEntailment
	CloseMatchEntailment
	BroadMatchEntailment
	NarrowMatchEntailment

	skosRuleCount
)

var skosRuleNames = [skosRuleCount]string{
	BroaderEntailment:     "BroaderEntailment",
	NarrowerEntailment:    "NarrowerEntailment",
	RelatedEntailment:     "RelatedEntailment",
	ExactMatchEntailment:  "ExactMatchEntailment",
	CloseMatchEntailment:  "CloseMatchEntailment",
	BroadMatchEntailment:  "BroadMatchEntailment",
	NarrowMatchEntailment: "NarrowMatchEntailment",
}

func (SKOSRule) Namespace() Namespace { return NamespaceSKOS }
func (r SKOSRule) ordinal() int       { return int(r) }
func (r SKOSRule) String() string {
	if r < skosRuleCount {
		return skosRuleNames[r]
	}
	return fmt.Sprintf("SKOSRule(%d)", int(r))
}

// TIMERule enumerates the OWL-Time interval entailment rules.
type TIMERule uint8

const (
	BeforeEntailment TIMERule = iota
	AfterEntailment
	MeetsEntailment
	MetByEntailment
	EqualsEntailment
	ContainsEntailment
	DuringEntailment

	timeRuleCount
)

var timeRuleNames = [timeRuleCount]string{
	BeforeEntailment:   "BeforeEntailment",
	AfterEntailment:    "AfterEntailment",
	MeetsEntailment:    "MeetsEntailment",
	MetByEntailment:    "MetByEntailment",
	EqualsEntailment:   "EqualsEntailment",
	ContainsEntailment: "ContainsEntailment",
	DuringEntailment:   "DuringEntailment",
}

func (TIMERule) Namespace() Namespace { return NamespaceTIME }
func (r TIMERule) ordinal() int       { return int(r) }
func (r TIMERule) String() string {
	if r < timeRuleCount {
		return timeRuleNames[r]
	}
	return fmt.Sprintf("TIMERule(%d)", int(r))
}

// GEORule enumerates the GeoSPARQL simple-features entailment rules.
type GEORule uint8

const (
	SfEqualsEntailment GEORule = iota
	SfWithinEntailment
	SfContainsEntailment
	SfDisjointEntailment
	SfTouchesEntailment
	SfIntersectsEntailment

	geoRuleCount
)

var geoRuleNames = [geoRuleCount]string{
	SfEqualsEntailment:     "SfEqualsEntailment",
	SfWithinEntailment:     "SfWithinEntailment",
	SfContainsEntailment:   "SfContainsEntailment",
	SfDisjointEntailment:   "SfDisjointEntailment",
	SfTouchesEntailment:    "SfTouchesEntailment",
	SfIntersectsEntailment: "SfIntersectsEntailment",
}

func (GEORule) Namespace() Namespace { return NamespaceGEO }
func (r GEORule) ordinal() int       { return int(r) }
func (r GEORule) String() string {
	if r < geoRuleCount {
		return geoRuleNames[r]
	}
	return fmt.Sprintf("GEORule(%d)", int(r))
}

// StandardRules returns every standard rule, namespace by namespace.
func StandardRules() []StandardRule {
	out := make([]StandardRule, 0, int(owl2RuleCount)+int(skosRuleCount)+int(timeRuleCount)+int(geoRuleCount))
	for r := OWL2Rule(0); r < owl2RuleCount; r++ {
		out = append(out, r)
	}
	for r := SKOSRule(0); r < skosRuleCount; r++ {
		out = append(out, r)
	}
	for r := TIMERule(0); r < timeRuleCount; r++ {
		out = append(out, r)
	}
	for r := GEORule(0); r < geoRuleCount; r++ {
		out = append(out, r)
	}
	return out
}

// ParseStandardRule resolves a rule by its qualified name ("skos:BroaderEntailment")
// or, when unambiguous, by its bare name. Matching ignores case.
func ParseStandardRule(name string) (StandardRule, error) {
	name = strings.TrimSpace(name)
	var found []StandardRule
	for _, r := range StandardRules() {
		if strings.EqualFold(QualifiedName(r), name) {
			return r, nil
		}
		if strings.EqualFold(r.String(), name) {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("standard rule %q: %w", name, ErrUnknownRule)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("standard rule %q is ambiguous: %w", name, ErrUnknownRule)
	}
}

// ruleSet keeps standard rules in insertion order, discarding duplicates
// within each namespace.
type ruleSet struct {
	seen  map[Namespace]map[int]bool
	rules []StandardRule
}

func (s *ruleSet) add(r StandardRule) bool {
	if s.seen == nil {
		s.seen = make(map[Namespace]map[int]bool)
	}
	ns := s.seen[r.Namespace()]
	if ns == nil {
		ns = make(map[int]bool)
		s.seen[r.Namespace()] = ns
	}
	if ns[r.ordinal()] {
		return false
	}
	ns[r.ordinal()] = true
	s.rules = append(s.rules, r)
	return true
}

func (s *ruleSet) list() []StandardRule {
	out := make([]StandardRule, len(s.rules))
	copy(out, s.rules)
	return out
}
