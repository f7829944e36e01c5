package inference

import (
	"context"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
)

// =============================================================================
// SKOS, TIME and GEO Rules
// =============================================================================
//
// Extension namespaces are expressed as SWRL rules over the standard
// prefixes and evaluated through the rule state machine. Every rule of one
// standard rule carries its name, so inferences keep that provenance.

var skosRules = [skosRuleCount][]*swrl.Rule{
	BroaderEntailment: compose(BroaderEntailment,
		`skos:narrower(?x, ?y) -> skos:broader(?y, ?x)`,
		`skos:broader(?x, ?y) -> skos:broaderTransitive(?x, ?y)`,
		`skos:broaderTransitive(?x, ?y) ^ skos:broaderTransitive(?y, ?z) -> skos:broaderTransitive(?x, ?z)`,
	),
	NarrowerEntailment: compose(NarrowerEntailment,
		`skos:broader(?x, ?y) -> skos:narrower(?y, ?x)`,
		`skos:narrower(?x, ?y) -> skos:narrowerTransitive(?x, ?y)`,
		`skos:narrowerTransitive(?x, ?y) ^ skos:narrowerTransitive(?y, ?z) -> skos:narrowerTransitive(?x, ?z)`,
	),
	RelatedEntailment: compose(RelatedEntailment,
		`skos:related(?x, ?y) -> skos:related(?y, ?x)`,
		`skos:relatedMatch(?x, ?y) -> skos:relatedMatch(?y, ?x)`,
		`skos:relatedMatch(?x, ?y) -> skos:related(?x, ?y)`,
	),
	ExactMatchEntailment: compose(ExactMatchEntailment,
		`skos:exactMatch(?x, ?y) -> skos:exactMatch(?y, ?x)`,
		`skos:exactMatch(?x, ?y) ^ skos:exactMatch(?y, ?z) ^ swrlb:notEqual(?x, ?z) -> skos:exactMatch(?x, ?z)`,
		`skos:exactMatch(?x, ?y) -> skos:closeMatch(?x, ?y)`,
	),
	CloseMatchEntailment: compose(CloseMatchEntailment,
		`skos:closeMatch(?x, ?y) -> skos:closeMatch(?y, ?x)`,
	),
	BroadMatchEntailment: compose(BroadMatchEntailment,
		`skos:narrowMatch(?x, ?y) -> skos:broadMatch(?y, ?x)`,
		`skos:broadMatch(?x, ?y) -> skos:broader(?x, ?y)`,
	),
	NarrowMatchEntailment: compose(NarrowMatchEntailment,
		`skos:broadMatch(?x, ?y) -> skos:narrowMatch(?y, ?x)`,
		`skos:narrowMatch(?x, ?y) -> skos:narrower(?x, ?y)`,
	),
}

var timeRules = [timeRuleCount][]*swrl.Rule{
	BeforeEntailment: compose(BeforeEntailment,
		`time:after(?x, ?y) -> time:before(?y, ?x)`,
		`time:before(?x, ?y) ^ time:before(?y, ?z) -> time:before(?x, ?z)`,
		`time:intervalBefore(?x, ?y) -> time:before(?x, ?y)`,
	),
	AfterEntailment: compose(AfterEntailment,
		`time:before(?x, ?y) -> time:after(?y, ?x)`,
		`time:after(?x, ?y) ^ time:after(?y, ?z) -> time:after(?x, ?z)`,
		`time:intervalAfter(?x, ?y) -> time:after(?x, ?y)`,
	),
	MeetsEntailment: compose(MeetsEntailment,
		`time:intervalMetBy(?x, ?y) -> time:intervalMeets(?y, ?x)`,
	),
	MetByEntailment: compose(MetByEntailment,
		`time:intervalMeets(?x, ?y) -> time:intervalMetBy(?y, ?x)`,
	),
	EqualsEntailment: compose(EqualsEntailment,
		`time:intervalEquals(?x, ?y) -> time:intervalEquals(?y, ?x)`,
		`time:intervalEquals(?x, ?y) ^ time:intervalEquals(?y, ?z) ^ swrlb:notEqual(?x, ?z) -> time:intervalEquals(?x, ?z)`,
	),
	ContainsEntailment: compose(ContainsEntailment,
		`time:intervalDuring(?x, ?y) -> time:intervalContains(?y, ?x)`,
		`time:intervalContains(?x, ?y) ^ time:intervalContains(?y, ?z) -> time:intervalContains(?x, ?z)`,
	),
	DuringEntailment: compose(DuringEntailment,
		`time:intervalContains(?x, ?y) -> time:intervalDuring(?y, ?x)`,
		`time:intervalDuring(?x, ?y) ^ time:intervalDuring(?y, ?z) -> time:intervalDuring(?x, ?z)`,
	),
}

var geoRules = [geoRuleCount][]*swrl.Rule{
	SfEqualsEntailment: compose(SfEqualsEntailment,
		`geo:sfEquals(?x, ?y) -> geo:sfEquals(?y, ?x)`,
		`geo:sfEquals(?x, ?y) ^ geo:sfEquals(?y, ?z) ^ swrlb:notEqual(?x, ?z) -> geo:sfEquals(?x, ?z)`,
	),
	SfWithinEntailment: compose(SfWithinEntailment,
		`geo:sfContains(?x, ?y) -> geo:sfWithin(?y, ?x)`,
		`geo:sfWithin(?x, ?y) ^ geo:sfWithin(?y, ?z) -> geo:sfWithin(?x, ?z)`,
	),
	SfContainsEntailment: compose(SfContainsEntailment,
		`geo:sfWithin(?x, ?y) -> geo:sfContains(?y, ?x)`,
		`geo:sfContains(?x, ?y) ^ geo:sfContains(?y, ?z) -> geo:sfContains(?x, ?z)`,
	),
	SfDisjointEntailment: compose(SfDisjointEntailment,
		`geo:sfDisjoint(?x, ?y) -> geo:sfDisjoint(?y, ?x)`,
	),
	SfTouchesEntailment: compose(SfTouchesEntailment,
		`geo:sfTouches(?x, ?y) -> geo:sfTouches(?y, ?x)`,
		`geo:sfTouches(?x, ?y) -> geo:sfIntersects(?x, ?y)`,
	),
	SfIntersectsEntailment: compose(SfIntersectsEntailment,
		`geo:sfIntersects(?x, ?y) -> geo:sfIntersects(?y, ?x)`,
		`geo:sfWithin(?x, ?y) -> geo:sfIntersects(?x, ?y)`,
		`geo:sfOverlaps(?x, ?y) -> geo:sfIntersects(?x, ?y)`,
	),
}

func compose(rule StandardRule, texts ...string) []*swrl.Rule {
	out := make([]*swrl.Rule, len(texts))
	for i, text := range texts {
		out[i] = swrl.MustParse(rule.String(), text, nil)
	}
	return out
}

// composedRules returns the SWRL rules implementing an extension rule.
func composedRules(r StandardRule) []*swrl.Rule {
	switch x := r.(type) {
	case SKOSRule:
		if x < skosRuleCount {
			return skosRules[x]
		}
	case TIMERule:
		if x < timeRuleCount {
			return timeRules[x]
		}
	case GEORule:
		if x < geoRuleCount {
			return geoRules[x]
		}
	}
	return nil
}

// dispatch returns the implementation of a standard rule.
func dispatch(r StandardRule) ruleFunc {
	if x, ok := r.(OWL2Rule); ok {
		if x < owl2RuleCount {
			return owl2Rules[x]
		}
		return nil
	}
	rules := composedRules(r)
	if rules == nil {
		return nil
	}
	return func(ctx context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
		var out []swrl.Inference
		for _, rule := range rules {
			inferred, err := rule.Evaluate(ctx, ectx, ont)
			if err != nil {
				return nil, err
			}
			out = append(out, inferred...)
		}
		return out, nil
	}
}
