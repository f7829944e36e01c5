package inference

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
)

var exPrefixes = map[string]string{"ex": ex}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func felixOntology() *ontology.MemoryOntology {
	return ontology.NewMemoryOntology(ex).MustAdd(
		ontology.ClassAssertion{Class: class("Cat"), Individual: iri("felix")},
		ontology.SubClassOf{Sub: class("Cat"), Super: class("Feline")},
		ontology.SubClassOf{Sub: class("Feline"), Super: class("Animal")},
	)
}

// readOnly hides the Declarer methods of the wrapped ontology.
type readOnly struct {
	ontology.Ontology
}

func TestReasoner_ClassAssertionEntailment(t *testing.T) {
	r := NewReasoner(WithLogger(quietLogger()))
	r.AddRule(ClassAssertionEntailment)

	report, err := r.ApplyToOntology(context.Background(), felixOntology(), false)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Count())
	assert.ElementsMatch(t, keysOf(
		ontology.ClassAssertion{Class: class("Feline"), Individual: iri("felix")},
		ontology.ClassAssertion{Class: class("Animal"), Individual: iri("felix")},
	), inferenceKeys(report.Inferences()))
	assert.Len(t, report.ByRule(ClassAssertionEntailment.String()), 2)
	assert.NotEmpty(t, report.RunID)
	assert.Zero(t, report.Merged)

	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, ClassAssertionEntailment.String(), report.Diagnostics[0].Rule)
	assert.Equal(t, 2, report.Diagnostics[0].Candidates)
	assert.Equal(t, 2, report.Diagnostics[0].Kept)
}

func inferenceKeys(inferences []swrl.Inference) []string {
	out := make([]string, len(inferences))
	for i, inf := range inferences {
		out[i] = inf.Key()
	}
	return out
}

func TestReasoner_DropsAssertedFacts(t *testing.T) {
	ont := felixOntology().MustAdd(ontology.ClassAssertion{Class: class("Animal"), Individual: iri("felix")})
	r := NewReasoner(WithLogger(quietLogger()))
	r.AddRule(ClassAssertionEntailment)

	report, err := r.ApplyToOntology(context.Background(), ont, false)
	require.NoError(t, err)
	assert.Equal(t, keysOf(ontology.ClassAssertion{Class: class("Feline"), Individual: iri("felix")}),
		inferenceKeys(report.Inferences()))
	assert.Equal(t, 2, report.Diagnostics[0].Candidates)
	assert.Equal(t, 1, report.Diagnostics[0].Kept)
}

func TestReasoner_DropsRestatedEquivalences(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		ontology.EquivalentClasses{Classes: []ontology.ClassExpression{class("C"), class("B"), class("A")}},
	)
	r := NewReasoner(WithLogger(quietLogger()))
	r.AddRule(EquivalentClassesEntailment)

	report, err := r.ApplyToOntology(context.Background(), ont, false)
	require.NoError(t, err)
	assert.Zero(t, report.Count())
	assert.Equal(t, 3, report.Diagnostics[0].Candidates)
}

func TestReasoner_Merge(t *testing.T) {
	ont := felixOntology()
	before := ont.Version()
	r := NewReasoner(WithLogger(quietLogger()))
	r.AddRule(ClassAssertionEntailment)

	report, err := r.ApplyToOntology(context.Background(), ont, true)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Merged)
	assert.Greater(t, ont.Version(), before)
	assert.ElementsMatch(t, []ontology.Term{iri("felix")}, ont.IndividualsOf(class("Animal"), false))

	again, err := r.ApplyToOntology(context.Background(), ont, true)
	require.NoError(t, err)
	assert.Zero(t, again.Count())
	assert.Zero(t, again.Merged)
}

func TestReasoner_MergeRequiresDeclarer(t *testing.T) {
	r := NewReasoner(WithLogger(quietLogger()))
	r.AddRule(ClassAssertionEntailment)

	_, err := r.ApplyToOntology(context.Background(), readOnly{felixOntology()}, true)
	assert.ErrorIs(t, err, ErrReadOnlyOntology)

	report, err := r.ApplyToOntology(context.Background(), readOnly{felixOntology()}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count())
}

func TestReasoner_Cancelled(t *testing.T) {
	r := NewReasoner(WithLogger(quietLogger()))
	r.AddRule(ClassAssertionEntailment)
	r.AddSWRLRule(swrl.MustParse("cats", `ex:Cat(?x) -> ex:Pet(?x)`, exPrefixes))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.ApplyToOntology(ctx, felixOntology(), false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReasoner_SWRLRules(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		opa("hasParent", "bob", "ann"),
		opa("hasBrother", "ann", "carl"),
		opa("hasUncle", "dan", "eli"),
	)
	r := NewReasoner(WithLogger(quietLogger()), WithParallelism(1))
	r.AddSWRLRule(swrl.MustParse("uncle", `ex:hasParent(?x, ?y) ^ ex:hasBrother(?y, ?z) -> ex:hasUncle(?x, ?z)`, exPrefixes))
	r.AddSWRLRule(swrl.MustParse("restate", `ex:hasUncle(?x, ?y) -> ex:hasUncle(?x, ?y)`, exPrefixes))
	r.AddSWRLRule(nil)
	require.Len(t, r.SWRLRules(), 2)

	report, err := r.ApplyToOntology(context.Background(), ont, false)
	require.NoError(t, err)
	assert.Equal(t, keysOf(opa("hasUncle", "bob", "carl")), inferenceKeys(report.ByRule("uncle")))
	assert.Empty(t, report.ByRule("restate"))
	assert.Equal(t, 1, report.Count())
}

func TestReasoner_StandardRuleWinsProvenance(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		characteristicOf(ontology.KindSymmetricObjectProperty, "knows"),
		opa("knows", "ann", "bob"),
	)
	r := NewReasoner(WithLogger(quietLogger()))
	r.AddRule(SymmetricObjectPropertyEntailment)
	r.AddSWRLRule(swrl.MustParse("knows", `ex:knows(?x, ?y) -> ex:knows(?y, ?x)`, exPrefixes))

	report, err := r.ApplyToOntology(context.Background(), ont, false)
	require.NoError(t, err)
	require.Equal(t, 1, report.Count())
	assert.Equal(t, SymmetricObjectPropertyEntailment.String(), report.Inferences()[0].RuleName)
	require.Len(t, report.Diagnostics, 2)
	assert.Equal(t, 1, report.Diagnostics[1].Candidates)
	assert.Zero(t, report.Diagnostics[1].Kept)
}

func TestReasoner_Observer(t *testing.T) {
	var mu sync.Mutex
	states := make(map[string][]swrl.RuleState)
	observer := func(e swrl.Event) {
		mu.Lock()
		defer mu.Unlock()
		states[e.Rule] = append(states[e.Rule], e.State)
	}

	r := NewReasoner(WithLogger(quietLogger()), WithObserver(observer))
	r.AddRule(ClassAssertionEntailment)
	r.AddSWRLRule(swrl.MustParse("pets", `ex:Cat(?x) -> ex:Pet(?x)`, exPrefixes))

	_, err := r.ApplyToOntology(context.Background(), felixOntology(), false)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []swrl.RuleState{swrl.StateInit, swrl.StateDone}, states[ClassAssertionEntailment.String()])
	require.NotEmpty(t, states["pets"])
	assert.Equal(t, swrl.StateInit, states["pets"][0])
	assert.Equal(t, swrl.StateDone, states["pets"][len(states["pets"])-1])
}

func TestReasoner_ExtensionCacheSharedAcrossRuns(t *testing.T) {
	ont := ontology.NewMemoryOntology(ex).MustAdd(
		opa("teaches", "ann", "math"),
		ontology.ObjectPropertyDomain{Property: prop("teaches"), Domain: class("Teacher")},
	)
	cache := NewExtensionCache(16)
	r := NewReasoner(WithLogger(quietLogger()), WithExtensionCache(cache))
	r.AddRule(ObjectPropertyDomainEntailment)

	first, err := r.ApplyToOntology(context.Background(), ont, false)
	require.NoError(t, err)
	hits, misses := cache.Stats()
	assert.Zero(t, hits)
	assert.Equal(t, int64(1), misses)

	second, err := r.ApplyToOntology(context.Background(), ont, false)
	require.NoError(t, err)
	hits, _ = cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, inferenceKeys(first.Inferences()), inferenceKeys(second.Inferences()))
}

func TestReasoner_RecordsInferenceLog(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDB(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	log := NewInferenceLog(db, quietLogger())
	r := NewReasoner(WithLogger(quietLogger()), WithInferenceLog(log))
	r.AddRule(ClassAssertionEntailment)

	report, err := r.ApplyToOntology(ctx, felixOntology(), false)
	require.NoError(t, err)

	records, err := log.RunRecords(ctx, report.RunID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, ClassAssertionEntailment.String(), rec.RuleName)
		assert.Equal(t, "ClassAssertion", rec.AxiomKind)
	}
}

func TestReport_Merge(t *testing.T) {
	fact := ontology.ClassAssertion{Class: class("Cat"), Individual: iri("felix")}
	other := ontology.ClassAssertion{Class: class("Dog"), Individual: iri("rex")}

	a := &Report{RunID: "a", inferences: []swrl.Inference{swrl.NewInference("r1", fact)}, Merged: 1}
	b := &Report{RunID: "b", inferences: []swrl.Inference{
		swrl.NewInference("r2", fact),
		swrl.NewInference("r2", other),
	}, Diagnostics: []RuleDiagnostic{{Rule: "r2", Candidates: 2}}}

	a.Merge(b)
	a.Merge(nil)
	assert.Equal(t, 2, a.Count())
	assert.Equal(t, "r1", a.Inferences()[0].RuleName)
	assert.Len(t, a.ByRule("r2"), 1)
	assert.Len(t, a.Diagnostics, 1)
	assert.Equal(t, 1, a.Merged)
}
