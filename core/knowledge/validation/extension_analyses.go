package validation

import (
	"context"
	"strings"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

// =============================================================================
// SKOS, TIME and GEO Analyses
// =============================================================================
//
// Extension analyses are clash rules: SWRL rules with an empty consequent
// whose antecedent matches a contradiction. Each row of the antecedent table
// becomes one issue, described by filling the row bindings into a template
// where {x} stands for the value of ?x.

// clash is one contradiction pattern of an analysis.
type clash struct {
	rule        *swrl.Rule
	severity    Severity
	description string
	suggestion  string
	// ordered, when set, keeps only rows where the first variable sorts
	// before the second, reporting symmetric matches once.
	ordered [2]string
	// sameLanguage, when set, keeps only rows where both variables are
	// literals with the same language tag.
	sameLanguage [2]string
}

// dataProperties types the listed IRIs as data properties while parsing.
type dataProperties map[string]bool

func (d dataProperties) IsDataProperty(p ontology.Term) bool     { return d[p.Value()] }
func (dataProperties) IsAnnotationProperty(ontology.Term) bool { return false }

var skosSchema = dataProperties{vocabulary.SkosNotation: true}

func clashOf(r StandardRule, severity Severity, text, description, suggestion string) clash {
	return clash{
		rule:        swrl.MustParse(r.String(), text, nil, swrl.WithSchema(skosSchema)),
		severity:    severity,
		description: description,
		suggestion:  suggestion,
	}
}

func once(c clash, first, second string) clash {
	c.ordered = [2]string{first, second}
	return c
}

func inSameLanguage(c clash, first, second string) clash {
	c.sameLanguage = [2]string{first, second}
	return c
}

const (
	reviseIntervals  = "Remove one of the temporal relations between the intervals"
	reviseHierarchy  = "Remove one of the hierarchical relations between the concepts"
	reviseGeometries = "Remove one of the topological relations between the geometries"
)

var skosClashes = [skosRuleCount][]clash{
	BroaderConceptAnalysis: {
		clashOf(BroaderConceptAnalysis, SeverityError,
			`skos:broader(?c1, ?c2) ^ skos:narrower(?c1, ?c2) ->`,
			"Concept {c2} is both broader and narrower than {c1}", reviseHierarchy),
		clashOf(BroaderConceptAnalysis, SeverityError,
			`skos:broader(?c1, ?c2) ^ skos:broader(?c2, ?c1) ->`,
			"Concepts {c1} and {c2} are broader than each other", reviseHierarchy),
		clashOf(BroaderConceptAnalysis, SeverityError,
			`skos:broaderTransitive(?c1, ?c2) ^ skos:broaderTransitive(?c2, ?c1) ^ swrlb:notEqual(?c1, ?c2) ->`,
			"Concepts {c1} and {c2} are transitively broader than each other", reviseHierarchy),
	},
	RelatedConceptAnalysis: {
		clashOf(RelatedConceptAnalysis, SeverityError,
			`skos:related(?c1, ?c2) ^ skos:broader(?c1, ?c2) ->`,
			"Concepts {c1} and {c2} are related and linked by skos:broader", reviseHierarchy),
		clashOf(RelatedConceptAnalysis, SeverityError,
			`skos:related(?c1, ?c2) ^ skos:narrower(?c1, ?c2) ->`,
			"Concepts {c1} and {c2} are related and linked by skos:narrower", reviseHierarchy),
		clashOf(RelatedConceptAnalysis, SeverityError,
			`skos:related(?c1, ?c2) ^ skos:broaderTransitive(?c1, ?c2) ->`,
			"Concepts {c1} and {c2} are related and linked by skos:broaderTransitive", reviseHierarchy),
		clashOf(RelatedConceptAnalysis, SeverityError,
			`skos:related(?c1, ?c2) ^ skos:narrowerTransitive(?c1, ?c2) ->`,
			"Concepts {c1} and {c2} are related and linked by skos:narrowerTransitive", reviseHierarchy),
	},
	PrefLabelAnalysis: {
		inSameLanguage(once(clashOf(PrefLabelAnalysis, SeverityError,
			`skos:prefLabel(?c, ?l1) ^ skos:prefLabel(?c, ?l2) ^ swrlb:notEqual(?l1, ?l2) ->`,
			"Concept {c} has the preferred labels {l1} and {l2} in the same language",
			"Keep one preferred label per language and turn the others into alternative labels"), "l1", "l2"), "l1", "l2"),
		clashOf(PrefLabelAnalysis, SeverityError,
			`skos:prefLabel(?c, ?l) ^ skos:altLabel(?c, ?l) ->`,
			"Concept {c} uses {l} as both preferred and alternative label", "Remove the alternative label"),
		clashOf(PrefLabelAnalysis, SeverityError,
			`skos:prefLabel(?c, ?l) ^ skos:hiddenLabel(?c, ?l) ->`,
			"Concept {c} uses {l} as both preferred and hidden label", "Remove the hidden label"),
	},
	NotationAnalysis: {
		once(clashOf(NotationAnalysis, SeverityWarning,
			`skos:inScheme(?c1, ?s) ^ skos:inScheme(?c2, ?s) ^ swrlb:notEqual(?c1, ?c2) ^ skos:notation(?c1, ?n) ^ skos:notation(?c2, ?n) ->`,
			"Concepts {c1} and {c2} share the notation {n} in scheme {s}",
			"Give each concept of the scheme a distinct notation"), "c1", "c2"),
	},
}

var timeClashes = [timeRuleCount][]clash{
	IntervalBeforeAnalysis: {
		clashOf(IntervalBeforeAnalysis, SeverityError,
			`time:before(?i1, ?i2) ^ time:before(?i2, ?i1) ->`,
			"Intervals {i1} and {i2} are each before the other", reviseIntervals),
		clashOf(IntervalBeforeAnalysis, SeverityError,
			`time:before(?i1, ?i2) ^ time:after(?i1, ?i2) ->`,
			"Interval {i1} is both before and after {i2}", reviseIntervals),
		clashOf(IntervalBeforeAnalysis, SeverityError,
			`time:intervalBefore(?i1, ?i2) ^ time:intervalBefore(?i2, ?i1) ->`,
			"Intervals {i1} and {i2} are each intervalBefore the other", reviseIntervals),
	},
	IntervalAfterAnalysis: {
		clashOf(IntervalAfterAnalysis, SeverityError,
			`time:after(?i1, ?i2) ^ time:after(?i2, ?i1) ->`,
			"Intervals {i1} and {i2} are each after the other", reviseIntervals),
		clashOf(IntervalAfterAnalysis, SeverityError,
			`time:intervalAfter(?i1, ?i2) ^ time:intervalAfter(?i2, ?i1) ->`,
			"Intervals {i1} and {i2} are each intervalAfter the other", reviseIntervals),
	},
	IntervalMeetsAnalysis: {
		clashOf(IntervalMeetsAnalysis, SeverityError,
			`time:intervalMeets(?i1, ?i2) ^ time:intervalMeets(?i2, ?i1) ->`,
			"Intervals {i1} and {i2} meet each other", reviseIntervals),
		clashOf(IntervalMeetsAnalysis, SeverityError,
			`time:intervalMeets(?i1, ?i2) ^ time:intervalBefore(?i1, ?i2) ->`,
			"Interval {i1} both meets and is before {i2}", reviseIntervals),
	},
	IntervalEqualsAnalysis: {
		clashOf(IntervalEqualsAnalysis, SeverityError,
			`time:intervalEquals(?i1, ?i2) ^ time:intervalBefore(?i1, ?i2) ->`,
			"Interval {i1} both equals and is before {i2}", reviseIntervals),
		clashOf(IntervalEqualsAnalysis, SeverityError,
			`time:intervalEquals(?i1, ?i2) ^ time:intervalAfter(?i1, ?i2) ->`,
			"Interval {i1} both equals and is after {i2}", reviseIntervals),
		clashOf(IntervalEqualsAnalysis, SeverityError,
			`time:intervalEquals(?i1, ?i2) ^ time:intervalMeets(?i1, ?i2) ->`,
			"Interval {i1} both equals and meets {i2}", reviseIntervals),
	},
	IntervalContainsAnalysis: {
		clashOf(IntervalContainsAnalysis, SeverityError,
			`time:intervalContains(?i1, ?i2) ^ time:intervalContains(?i2, ?i1) ^ swrlb:notEqual(?i1, ?i2) ->`,
			"Intervals {i1} and {i2} contain each other", reviseIntervals),
		clashOf(IntervalContainsAnalysis, SeverityError,
			`time:intervalContains(?i1, ?i2) ^ time:intervalDisjoint(?i1, ?i2) ->`,
			"Interval {i1} both contains and is disjoint from {i2}", reviseIntervals),
	},
	IntervalDuringAnalysis: {
		clashOf(IntervalDuringAnalysis, SeverityError,
			`time:intervalDuring(?i1, ?i2) ^ time:intervalDuring(?i2, ?i1) ^ swrlb:notEqual(?i1, ?i2) ->`,
			"Intervals {i1} and {i2} are each during the other", reviseIntervals),
		clashOf(IntervalDuringAnalysis, SeverityError,
			`time:intervalDuring(?i1, ?i2) ^ time:intervalDisjoint(?i1, ?i2) ->`,
			"Interval {i1} is both during and disjoint from {i2}", reviseIntervals),
	},
}

var geoClashes = [geoRuleCount][]clash{
	SfDisjointAnalysis: {
		disjointGeometries(`geo:sfIntersects`, "intersects"),
		disjointGeometries(`geo:sfTouches`, "touches"),
		disjointGeometries(`geo:sfWithin`, "is within"),
		disjointGeometries(`geo:sfContains`, "contains"),
		disjointGeometries(`geo:sfEquals`, "equals"),
		disjointGeometries(`geo:sfOverlaps`, "overlaps"),
	},
}

func disjointGeometries(relation, verb string) clash {
	return clashOf(SfDisjointAnalysis, SeverityError,
		`geo:sfDisjoint(?g1, ?g2) ^ `+relation+`(?g1, ?g2) ->`,
		"Geometry {g1} is disjoint from {g2} but also "+verb+" it", reviseGeometries)
}

// clashes returns the clash rules of an extension analysis.
func clashes(r StandardRule) []clash {
	switch x := r.(type) {
	case SKOSRule:
		if x < skosRuleCount {
			return skosClashes[x]
		}
	case TIMERule:
		if x < timeRuleCount {
			return timeClashes[x]
		}
	case GEORule:
		if x < geoRuleCount {
			return geoClashes[x]
		}
	}
	return nil
}

// dispatch returns the implementation of a standard analysis.
func dispatch(r StandardRule) analysisFunc {
	if x, ok := r.(OWL2Rule); ok {
		if x < owl2RuleCount {
			return owl2Analyses[x]
		}
		return nil
	}
	cs := clashes(r)
	if cs == nil {
		return nil
	}
	return func(ctx context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
		c := newCollector(r)
		for _, cl := range cs {
			table, err := cl.rule.EvaluateAntecedent(ctx, ectx, ont)
			if err != nil {
				return nil, err
			}
			collectRows(c, cl, table)
		}
		return c.issues()
	}
}

func collectRows(c *collector, cl clash, table *swrl.Table) {
	for i := 0; i < table.Len(); i++ {
		b := table.Binding(i)
		if cl.ordered[0] != "" && label(b[cl.ordered[0]]) >= label(b[cl.ordered[1]]) {
			continue
		}
		if cl.sameLanguage[0] != "" && !sameLanguage(b[cl.sameLanguage[0]], b[cl.sameLanguage[1]]) {
			continue
		}
		c.add(cl.severity, fill(cl.description, b), cl.suggestion)
	}
}

// sameLanguage compares the language tags of two label values. Untagged
// literals carry no language and never match.
func sameLanguage(a, b ontology.Term) bool {
	return a.IsLiteral() && b.IsLiteral() && a.Lang() != "" && strings.EqualFold(a.Lang(), b.Lang())
}

// fill replaces every {name} of the template with the bound value of ?name.
func fill(template string, b swrl.Binding) string {
	pairs := make([]string, 0, 2*len(b))
	for name, value := range b {
		pairs = append(pairs, "{"+name+"}", label(value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
