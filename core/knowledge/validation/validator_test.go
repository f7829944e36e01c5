package validation

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/owlreasoner/core/knowledge/inference"
	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

const ex = "http://example.org/"

var exPrefixes = map[string]string{"ex": ex}

func iri(local string) ontology.Term { return ontology.NewIRI(ex + local) }

func class(local string) ontology.Class { return ontology.NamedClass(ex + local) }

func prop(local string) ontology.ObjectPropertyExpression { return ontology.ObjectProperty(ex + local) }

func opa(p ontology.ObjectPropertyExpression, s, t ontology.Term) ontology.ObjectPropertyAssertion {
	return ontology.ObjectPropertyAssertion{Property: p, Source: s, Target: t}
}

func relation(propertyIRI string, s, t ontology.Term) ontology.ObjectPropertyAssertion {
	return opa(ontology.ObjectProperty(propertyIRI), s, t)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// validate runs the given analyses over ont.
func validate(t *testing.T, ont ontology.Ontology, rules ...StandardRule) *Report {
	t.Helper()
	v := NewValidator(WithLogger(quietLogger()))
	for _, r := range rules {
		v.AddRule(r)
	}
	report, err := v.ApplyToOntology(context.Background(), ont)
	require.NoError(t, err)
	return report
}

func TestValidator_MutualAfterIsTwoErrors(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		relation(vocabulary.TimeAfter, iri("i1"), iri("i2")),
		relation(vocabulary.TimeAfter, iri("i2"), iri("i1")),
	)

	report := validate(t, ont, IntervalAfterAnalysis)

	assert.Equal(t, 2, report.EvidencesCount())
	assert.Len(t, report.SelectErrors(), 2)
	assert.Empty(t, report.SelectWarnings())
	for _, issue := range report.Issues() {
		assert.Equal(t, "IntervalAfterAnalysis", issue.RuleName)
		assert.NotEmpty(t, issue.Suggestion)
	}
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, 2, report.Diagnostics[0].Issues)
}

func TestValidator_ConsistentOntologyIsClean(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.SubClassOf{Sub: class("Cat"), Super: class("Animal")},
		ontology.ClassAssertion{Class: class("Cat"), Individual: iri("felix")},
		opa(prop("likes"), iri("felix"), iri("tom")),
	)
	v := NewValidator(WithLogger(quietLogger()))
	n, err := v.AddRulesMatching("*")
	require.NoError(t, err)
	assert.Equal(t, len(StandardRules()), n)

	report, err := v.ApplyToOntology(context.Background(), ont)
	require.NoError(t, err)
	assert.Zero(t, report.EvidencesCount())
	assert.Len(t, report.Diagnostics, len(StandardRules()))
}

func TestValidator_AddRule(t *testing.T) {
	v := NewValidator()
	assert.True(t, v.AddRule(ClassAssertionAnalysis))
	assert.False(t, v.AddRule(ClassAssertionAnalysis))
	// same ordinal, different namespace
	assert.True(t, v.AddRule(BroaderConceptAnalysis))
	assert.False(t, v.AddRule(nil))
	assert.Equal(t, []StandardRule{ClassAssertionAnalysis, BroaderConceptAnalysis}, v.Rules())

	n, err := v.AddRulesMatching("time:Interval*")
	require.NoError(t, err)
	assert.Equal(t, int(timeRuleCount), n)

	_, err = v.AddRulesMatching("[")
	assert.Error(t, err)
}

func TestValidator_SWRLRuleSeverity(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.ClassAssertion{Class: class("Person"), Individual: iri("x")},
		ontology.ClassAssertion{Class: class("Robot"), Individual: iri("x")},
		ontology.ClassAssertion{Class: class("Person"), Individual: iri("y")},
	)
	v := NewValidator(WithLogger(quietLogger()))
	v.AddSWRLRule(swrl.MustParse("personRobot", `ex:Person(?p) ^ ex:Robot(?p) -> ex:Suspicious(?p)`, exPrefixes), SeverityWarning)
	v.AddSWRLRule(nil, SeverityError)
	require.Len(t, v.SWRLRules(), 1)

	report, err := v.ApplyToOntology(context.Background(), ont)
	require.NoError(t, err)

	require.Len(t, report.SelectWarnings(), 1)
	assert.Empty(t, report.SelectErrors())
	issue := report.SelectWarnings()[0]
	assert.Equal(t, "personRobot", issue.RuleName)
	assert.Contains(t, issue.Description, "?p=http://example.org/x")
}

func TestValidator_DuplicateIssuesAcrossRules(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.ClassAssertion{Class: class("A"), Individual: iri("x")},
	)
	v := NewValidator(WithLogger(quietLogger()), WithParallelism(2))
	for i := 0; i < 3; i++ {
		v.AddSWRLRule(swrl.MustParse("same", `ex:A(?x) ->`, exPrefixes), SeverityError)
	}
	report, err := v.ApplyToOntology(context.Background(), ont)
	require.NoError(t, err)
	assert.Equal(t, 1, report.EvidencesCount())
	assert.Len(t, report.Diagnostics, 3)
}

func TestValidator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v := NewValidator(WithLogger(quietLogger()))
	v.AddRule(ClassAssertionAnalysis)
	_, err := v.ApplyToOntology(ctx, ontology.NewMemoryOntology(ex))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidator_Observer(t *testing.T) {
	var mu sync.Mutex
	done := make(map[string]int)
	observer := func(e swrl.Event) {
		if e.State != swrl.StateDone {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done[e.Rule]++
	}
	v := NewValidator(WithLogger(quietLogger()), WithObserver(observer))
	v.AddRule(ThingNothingAnalysis)
	v.AddSWRLRule(swrl.MustParse("check", `ex:A(?x) ->`, exPrefixes), SeverityError)

	_, err := v.ApplyToOntology(context.Background(), ontology.NewMemoryOntology(ex))
	require.NoError(t, err)
	assert.Equal(t, 1, done["ThingNothingAnalysis"])
	assert.Equal(t, 1, done["check"])
}

func TestValidator_SharesExtensionCache(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.DisjointClasses{Classes: []ontology.ClassExpression{class("Cat"), class("Dog")}},
		ontology.ClassAssertion{Class: class("Cat"), Individual: iri("felix")},
	)
	cache := inference.NewExtensionCache(0)
	v := NewValidator(WithLogger(quietLogger()), WithExtensionCache(cache))
	v.AddRule(ClassAssertionAnalysis)

	_, err := v.ApplyToOntology(context.Background(), ont)
	require.NoError(t, err)
	_, firstMisses := cache.Stats()
	assert.NotZero(t, firstMisses)

	_, err = v.ApplyToOntology(context.Background(), ont)
	require.NoError(t, err)
	hits, misses := cache.Stats()
	assert.Equal(t, firstMisses, misses)
	assert.NotZero(t, hits)
}
