package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adalundhe/owlreasoner/core/knowledge/inference"
)

// ErrUnknownAnalysis is returned when a standard analysis name matches nothing.
var ErrUnknownAnalysis = errors.New("unknown standard analysis")

// =============================================================================
// Standard Analysis Identifiers
// =============================================================================

// StandardRule identifies a built-in analysis. It is implemented by
// OWL2Rule, SKOSRule, TIMERule and GEORule.
type StandardRule interface {
	Namespace() inference.Namespace
	// String returns the analysis name, which is also the RuleName of its
	// issues.
	String() string
	ordinal() int
}

// QualifiedName returns "<namespace>:<name>".
func QualifiedName(r StandardRule) string {
	return r.Namespace().String() + ":" + r.String()
}

// OWL2Rule enumerates the OWL2 consistency analyses.
type OWL2Rule uint8

const (
	ClassAssertionAnalysis OWL2Rule = iota
	DifferentIndividualsAnalysis
	SubClassOfAnalysis
	FunctionalObjectPropertyAnalysis
	FunctionalDataPropertyAnalysis
	InverseFunctionalObjectPropertyAnalysis
	AsymmetricObjectPropertyAnalysis
	IrreflexiveObjectPropertyAnalysis
	NegativeObjectAssertionsAnalysis
	NegativeDataAssertionsAnalysis
	DisjointPropertiesAnalysis
	ObjectPropertyDomainAnalysis
	ObjectPropertyRangeAnalysis
	ThingNothingAnalysis
	TermsDeprecationAnalysis
	TermsDisjointnessAnalysis

	owl2RuleCount
)

var owl2RuleNames = [owl2RuleCount]string{
	ClassAssertionAnalysis:                  "ClassAssertionAnalysis",
	DifferentIndividualsAnalysis:            "DifferentIndividualsAnalysis",
	SubClassOfAnalysis:                      "SubClassOfAnalysis",
	FunctionalObjectPropertyAnalysis:        "FunctionalObjectPropertyAnalysis",
	FunctionalDataPropertyAnalysis:          "FunctionalDataPropertyAnalysis",
	InverseFunctionalObjectPropertyAnalysis: "InverseFunctionalObjectPropertyAnalysis",
	AsymmetricObjectPropertyAnalysis:        "AsymmetricObjectPropertyAnalysis",
	IrreflexiveObjectPropertyAnalysis:       "IrreflexiveObjectPropertyAnalysis",
	NegativeObjectAssertionsAnalysis:        "NegativeObjectAssertionsAnalysis",
	NegativeDataAssertionsAnalysis:          "NegativeDataAssertionsAnalysis",
	DisjointPropertiesAnalysis:              "DisjointPropertiesAnalysis",
	ObjectPropertyDomainAnalysis:            "ObjectPropertyDomainAnalysis",
	ObjectPropertyRangeAnalysis:             "ObjectPropertyRangeAnalysis",
	ThingNothingAnalysis:                    "ThingNothingAnalysis",
	TermsDeprecationAnalysis:                "TermsDeprecationAnalysis",
	TermsDisjointnessAnalysis:               "TermsDisjointnessAnalysis",
}

func (OWL2Rule) Namespace() inference.Namespace { return inference.NamespaceOWL2 }
func (r OWL2Rule) ordinal() int                 { return int(r) }
func (r OWL2Rule) String() string {
	if r < owl2RuleCount {
		return owl2RuleNames[r]
	}
	return fmt.Sprintf("OWL2Rule(%d)", int(r))
}

// SKOSRule enumerates the SKOS integrity analyses.
type SKOSRule uint8

const (
	BroaderConceptAnalysis SKOSRule = iota
	RelatedConceptAnalysis
	PrefLabelAnalysis
	NotationAnalysis

	skosRuleCount
)

var skosRuleNames = [skosRuleCount]string{
	BroaderConceptAnalysis: "BroaderConceptAnalysis",
	RelatedConceptAnalysis: "RelatedConceptAnalysis",
	PrefLabelAnalysis:      "PrefLabelAnalysis",
	NotationAnalysis:       "NotationAnalysis",
}

func (SKOSRule) Namespace() inference.Namespace { return inference.NamespaceSKOS }
func (r SKOSRule) ordinal() int                 { return int(r) }
func (r SKOSRule) String() string {
	if r < skosRuleCount {
		return skosRuleNames[r]
	}
	return fmt.Sprintf("SKOSRule(%d)", int(r))
}

// TIMERule enumerates the OWL-Time interval analyses.
type TIMERule uint8

const (
	IntervalBeforeAnalysis TIMERule = iota
	IntervalAfterAnalysis
	IntervalMeetsAnalysis
	IntervalEqualsAnalysis
	IntervalContainsAnalysis
	IntervalDuringAnalysis

	timeRuleCount
)

var timeRuleNames = [timeRuleCount]string{
	IntervalBeforeAnalysis:   "IntervalBeforeAnalysis",
	IntervalAfterAnalysis:    "IntervalAfterAnalysis",
	IntervalMeetsAnalysis:    "IntervalMeetsAnalysis",
	IntervalEqualsAnalysis:   "IntervalEqualsAnalysis",
	IntervalContainsAnalysis: "IntervalContainsAnalysis",
	IntervalDuringAnalysis:   "IntervalDuringAnalysis",
}

func (TIMERule) Namespace() inference.Namespace { return inference.NamespaceTIME }
func (r TIMERule) ordinal() int                 { return int(r) }
func (r TIMERule) String() string {
	if r < timeRuleCount {
		return timeRuleNames[r]
	}
	return fmt.Sprintf("TIMERule(%d)", int(r))
}

// GEORule enumerates the GeoSPARQL topology analyses.
type GEORule uint8

const (
	SfDisjointAnalysis GEORule = iota

	geoRuleCount
)

var geoRuleNames = [geoRuleCount]string{
	SfDisjointAnalysis: "SfDisjointAnalysis",
}

func (GEORule) Namespace() inference.Namespace { return inference.NamespaceGEO }
func (r GEORule) ordinal() int                 { return int(r) }
func (r GEORule) String() string {
	if r < geoRuleCount {
		return geoRuleNames[r]
	}
	return fmt.Sprintf("GEORule(%d)", int(r))
}

// StandardRules returns every standard analysis, namespace by namespace.
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

// ParseStandardRule resolves an analysis by qualified or bare name,
// ignoring case.
func ParseStandardRule(name string) (StandardRule, error) {
	name = strings.TrimSpace(name)
	for _, r := range StandardRules() {
		if strings.EqualFold(QualifiedName(r), name) || strings.EqualFold(r.String(), name) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("standard analysis %q: %w", name, ErrUnknownAnalysis)
}

type ruleKey struct {
	ns      inference.Namespace
	ordinal int
}

// ruleSet keeps analyses in insertion order without duplicates.
type ruleSet struct {
	seen  map[ruleKey]bool
	rules []StandardRule
}

func (s *ruleSet) add(r StandardRule) bool {
	if s.seen == nil {
		s.seen = make(map[ruleKey]bool)
	}
	key := ruleKey{r.Namespace(), r.ordinal()}
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.rules = append(s.rules, r)
	return true
}

func (s *ruleSet) list() []StandardRule {
	out := make([]StandardRule, len(s.rules))
	copy(out, s.rules)
	return out
}
