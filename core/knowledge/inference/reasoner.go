package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
)

// ErrReadOnlyOntology is returned when merging is requested for an
// ontology that does not accept declarations.
var ErrReadOnlyOntology = errors.New("ontology does not accept merged inferences")

// =============================================================================
// Reasoner
// =============================================================================

// Reasoner applies standard entailment rules and SWRL rules to an ontology
// and returns the inferences that are not already stated by it.
type Reasoner struct {
	mu        sync.Mutex
	standard  ruleSet
	swrlRules []*swrl.Rule

	logger      *slog.Logger
	observer    swrl.Observer
	parallelism int
	cache       *ExtensionCache
	log         *InferenceLog
}

// Option configures a Reasoner.
type Option func(*Reasoner)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reasoner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver sets a callback notified as rules progress. It is called
// from several goroutines at once.
func WithObserver(o swrl.Observer) Option {
	return func(r *Reasoner) { r.observer = o }
}

// WithParallelism bounds the number of SWRL rules evaluated at once. The
// default is GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(r *Reasoner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// WithExtensionCache shares class extensions across runs.
func WithExtensionCache(c *ExtensionCache) Option {
	return func(r *Reasoner) { r.cache = c }
}

// WithInferenceLog records the inferences of every run.
func WithInferenceLog(l *InferenceLog) Option {
	return func(r *Reasoner) { r.log = l }
}

// NewReasoner creates a reasoner without rules.
func NewReasoner(opts ...Option) *Reasoner {
	r := &Reasoner{
		logger:      slog.Default(),
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddRule registers a standard rule. Duplicates are discarded; the result
// reports whether the rule was added.
func (r *Reasoner) AddRule(rule StandardRule) bool {
	if rule == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.standard.add(rule)
}

// AddRulesMatching registers every standard rule whose name or qualified
// name ("skos:BroaderEntailment") matches the glob pattern and returns how
// many were added.
func (r *Reasoner) AddRulesMatching(pattern string) (int, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	added := 0
	for _, rule := range StandardRules() {
		if g.Match(QualifiedName(rule)) || g.Match(rule.String()) {
			if r.AddRule(rule) {
				added++
			}
		}
	}
	return added, nil
}

// AddSWRLRule registers a user rule.
func (r *Reasoner) AddSWRLRule(rule *swrl.Rule) {
	if rule == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.swrlRules = append(r.swrlRules, rule)
}

// Rules returns the registered standard rules in registration order.
func (r *Reasoner) Rules() []StandardRule {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.standard.list()
}

// SWRLRules returns the registered user rules.
func (r *Reasoner) SWRLRules() []*swrl.Rule {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*swrl.Rule, len(r.swrlRules))
	copy(out, r.swrlRules)
	return out
}

// ruleResult is the slot one rule writes its outcome to.
type ruleResult struct {
	name       string
	inferences []swrl.Inference
	elapsed    time.Duration
}

// ApplyToOntology evaluates every registered rule against ont and returns
// the inferences that ont does not already state, each fact once. With
// merge, the inferences are then declared into ont, which must implement
// ontology.Declarer. ont must not change during the call.
func (r *Reasoner) ApplyToOntology(ctx context.Context, ont ontology.Ontology, merge bool) (*Report, error) {
	var declarer ontology.Declarer
	if merge {
		d, ok := ont.(ontology.Declarer)
		if !ok {
			return nil, ErrReadOnlyOntology
		}
		declarer = d
	}

	standard := r.Rules()
	userRules := r.SWRLRules()
	runID := NewRunID()
	start := time.Now()
	r.logger.Debug("reasoner run started", "run_id", runID, "standard_rules", len(standard), "swrl_rules", len(userRules))

	ectx := r.evaluationContext()
	standardSlots := make([]ruleResult, len(standard))
	swrlSlots := make([]ruleResult, len(userRules))
	kinds := dedupKinds()
	sets := make([]map[string]struct{}, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			sets[i] = indexKind(ont, kind)
			return nil
		})
	}
	for i, rule := range standard {
		i, rule := i, rule
		g.Go(func() error {
			res, err := r.runStandard(gctx, ectx, ont, rule)
			standardSlots[i] = res
			return err
		})
	}
	g.Go(func() error {
		sg, sctx := errgroup.WithContext(gctx)
		sg.SetLimit(r.parallelism)
		for i, rule := range userRules {
			i, rule := i, rule
			sg.Go(func() error {
				begin := time.Now()
				inferred, err := rule.Evaluate(sctx, ectx, ont)
				swrlSlots[i] = ruleResult{name: rule.Name(), inferences: inferred, elapsed: time.Since(begin)}
				return err
			})
		}
		return sg.Wait()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := &dedupIndex{sets: make(map[ontology.AxiomKind]map[string]struct{}, len(kinds))}
	for i, kind := range kinds {
		index.sets[kind] = sets[i]
	}

	slots := append(standardSlots, swrlSlots...)
	var candidates []swrl.Inference
	for _, slot := range slots {
		candidates = append(candidates, slot.inferences...)
	}
	survivors := distinct(index.filter(candidates))

	report := &Report{RunID: runID, inferences: survivors}
	report.Diagnostics = diagnostics(slots, survivors)

	if merge {
		report.Merged = r.merge(declarer, survivors)
	}
	if r.log != nil && len(survivors) > 0 {
		if err := r.log.Record(ctx, runID, ontologyName(ont), survivors); err != nil {
			return nil, fmt.Errorf("record inferences: %w", err)
		}
	}

	report.Elapsed = time.Since(start)
	r.logger.Info("reasoner run complete",
		"run_id", runID,
		"candidates", len(candidates),
		"inferences", len(survivors),
		"merged", report.Merged,
		"elapsed", report.Elapsed,
	)
	return report, nil
}

func (r *Reasoner) evaluationContext() *swrl.EvaluationContext {
	opts := []swrl.ContextOption{swrl.WithObserver(r.observer)}
	if r.cache != nil {
		opts = append(opts, swrl.WithExtensionProvider(r.cache))
	}
	return swrl.NewEvaluationContext(opts...)
}

// runStandard evaluates one standard rule. Only cancellation fails it.
func (r *Reasoner) runStandard(ctx context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology, rule StandardRule) (ruleResult, error) {
	res := ruleResult{name: rule.String()}
	fn := dispatch(rule)
	if fn == nil {
		r.logger.Warn("unknown standard rule skipped", "rule", QualifiedName(rule))
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	r.notify(swrl.Event{Rule: res.name, State: swrl.StateInit})

	begin := time.Now()
	inferred, err := fn(ctx, ectx.ForRule(res.name), ont)
	if err != nil {
		return res, err
	}
	res.inferences = inferred
	res.elapsed = time.Since(begin)

	r.notify(swrl.Event{Rule: res.name, State: swrl.StateDone, Rows: len(inferred), Elapsed: res.elapsed})
	r.logger.Debug("standard rule evaluated", "rule", QualifiedName(rule), "candidates", len(inferred), "elapsed", res.elapsed)
	return res, nil
}

func (r *Reasoner) notify(e swrl.Event) {
	if r.observer != nil {
		r.observer(e)
	}
}

// merge declares the inferences one by one and returns how many were accepted.
func (r *Reasoner) merge(d ontology.Declarer, inferences []swrl.Inference) int {
	merged := 0
	for _, inf := range inferences {
		if err := ontology.Declare(d, inf.Axiom); err != nil {
			r.logger.Warn("inference not merged", "rule", inf.RuleName, "axiom", inf.Key(), "error", err)
			continue
		}
		merged++
	}
	return merged
}

func diagnostics(slots []ruleResult, survivors []swrl.Inference) []RuleDiagnostic {
	kept := make(map[string]int)
	for _, inf := range survivors {
		kept[inf.RuleName]++
	}
	out := make([]RuleDiagnostic, 0, len(slots))
	seen := make(map[string]bool)
	for _, slot := range slots {
		d := RuleDiagnostic{Rule: slot.name, Candidates: len(slot.inferences), Elapsed: slot.elapsed}
		if !seen[slot.name] {
			seen[slot.name] = true
			d.Kept = kept[slot.name]
		}
		out = append(out, d)
	}
	return out
}

func ontologyName(ont ontology.Ontology) string {
	if named, ok := ont.(interface{ IRI() ontology.Term }); ok {
		return named.IRI().Value()
	}
	return ""
}
