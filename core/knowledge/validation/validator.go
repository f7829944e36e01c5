package validation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/adalundhe/owlreasoner/core/knowledge/inference"
	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
)

// =============================================================================
// Validator
// =============================================================================

// Validator applies standard analyses and SWRL clash rules to an ontology
// and reports the issues they detect. It never changes the ontology.
type Validator struct {
	mu        sync.Mutex
	standard  ruleSet
	swrlRules []severeRule

	logger      *slog.Logger
	observer    swrl.Observer
	parallelism int
	cache       *inference.ExtensionCache
}

// severeRule is a user clash rule with the severity of its issues.
type severeRule struct {
	rule     *swrl.Rule
	severity Severity
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithObserver sets a callback notified as analyses progress. It is called
// from several goroutines at once.
func WithObserver(o swrl.Observer) Option {
	return func(v *Validator) { v.observer = o }
}

// WithParallelism bounds the number of SWRL rules evaluated at once.
func WithParallelism(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.parallelism = n
		}
	}
}

// WithExtensionCache shares class extensions with other runs and with a
// reasoner.
func WithExtensionCache(c *inference.ExtensionCache) Option {
	return func(v *Validator) { v.cache = c }
}

// NewValidator creates a validator without analyses.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		logger:      slog.Default(),
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// AddRule registers a standard analysis. Duplicates are discarded; the
// result reports whether the analysis was added.
func (v *Validator) AddRule(rule StandardRule) bool {
	if rule == nil {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.standard.add(rule)
}

// AddRulesMatching registers every standard analysis whose name or
// qualified name matches the glob pattern and returns how many were added.
func (v *Validator) AddRulesMatching(pattern string) (int, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	added := 0
	for _, rule := range StandardRules() {
		if g.Match(QualifiedName(rule)) || g.Match(rule.String()) {
			if v.AddRule(rule) {
				added++
			}
		}
	}
	return added, nil
}

// AddSWRLRule registers a user clash rule. Every row matching its
// antecedent is reported with the given severity; the consequent is ignored.
func (v *Validator) AddSWRLRule(rule *swrl.Rule, severity Severity) {
	if rule == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.swrlRules = append(v.swrlRules, severeRule{rule: rule, severity: severity})
}

// Rules returns the registered standard analyses in registration order.
func (v *Validator) Rules() []StandardRule {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.standard.list()
}

// SWRLRules returns the registered user clash rules.
func (v *Validator) SWRLRules() []*swrl.Rule {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*swrl.Rule, len(v.swrlRules))
	for i, r := range v.swrlRules {
		out[i] = r.rule
	}
	return out
}

func (v *Validator) userRules() []severeRule {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]severeRule, len(v.swrlRules))
	copy(out, v.swrlRules)
	return out
}

// analysisResult is the slot one analysis writes its outcome to.
type analysisResult struct {
	name    string
	issues  []Issue
	elapsed time.Duration
}

// ApplyToOntology runs every registered analysis against ont and returns
// the issues found, each once. ont must not change during the call.
func (v *Validator) ApplyToOntology(ctx context.Context, ont ontology.Ontology) (*Report, error) {
	standard := v.Rules()
	userRules := v.userRules()
	start := time.Now()
	v.logger.Debug("validator run started", "standard_analyses", len(standard), "swrl_rules", len(userRules))

	ectx := v.evaluationContext()
	standardSlots := make([]analysisResult, len(standard))
	swrlSlots := make([]analysisResult, len(userRules))

	g, gctx := errgroup.WithContext(ctx)
	for i, rule := range standard {
		i, rule := i, rule
		g.Go(func() error {
			res, err := v.runStandard(gctx, ectx, ont, rule)
			standardSlots[i] = res
			return err
		})
	}
	g.Go(func() error {
		sg, sctx := errgroup.WithContext(gctx)
		sg.SetLimit(v.parallelism)
		for i, ur := range userRules {
			i, ur := i, ur
			sg.Go(func() error {
				res, err := v.runSWRL(sctx, ectx, ont, ur)
				swrlSlots[i] = res
				return err
			})
		}
		return sg.Wait()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slots := append(standardSlots, swrlSlots...)
	report := &Report{Diagnostics: make([]Diagnostic, 0, len(slots))}
	var all []Issue
	for _, slot := range slots {
		all = append(all, slot.issues...)
		report.Diagnostics = append(report.Diagnostics, Diagnostic{Rule: slot.name, Issues: len(slot.issues), Elapsed: slot.elapsed})
	}
	report.issues = distinct(all)
	report.Elapsed = time.Since(start)

	v.logger.Info("validator run complete",
		"issues", len(report.issues),
		"errors", len(report.SelectErrors()),
		"warnings", len(report.SelectWarnings()),
		"elapsed", report.Elapsed,
	)
	return report, nil
}

func (v *Validator) evaluationContext() *swrl.EvaluationContext {
	opts := []swrl.ContextOption{swrl.WithObserver(v.observer)}
	if v.cache != nil {
		opts = append(opts, swrl.WithExtensionProvider(v.cache))
	}
	return swrl.NewEvaluationContext(opts...)
}

// runStandard runs one standard analysis. Only cancellation fails it.
func (v *Validator) runStandard(ctx context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology, rule StandardRule) (analysisResult, error) {
	res := analysisResult{name: rule.String()}
	fn := dispatch(rule)
	if fn == nil {
		v.logger.Warn("unknown standard analysis skipped", "analysis", QualifiedName(rule))
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	v.notify(swrl.Event{Rule: res.name, State: swrl.StateInit})

	begin := time.Now()
	issues, err := fn(ctx, ectx.ForRule(res.name), ont)
	if err != nil {
		return res, err
	}
	res.issues = issues
	res.elapsed = time.Since(begin)

	v.notify(swrl.Event{Rule: res.name, State: swrl.StateDone, Rows: len(issues), Elapsed: res.elapsed})
	v.logger.Debug("standard analysis evaluated", "analysis", QualifiedName(rule), "issues", len(issues), "elapsed", res.elapsed)
	return res, nil
}

// runSWRL evaluates the antecedent of a user clash rule and reports one
// issue per matching row.
func (v *Validator) runSWRL(ctx context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology, ur severeRule) (analysisResult, error) {
	name := ur.rule.Name()
	res := analysisResult{name: name}
	begin := time.Now()
	table, err := ur.rule.EvaluateAntecedent(ctx, ectx.ForRule(name), ont)
	if err != nil {
		return res, err
	}
	c := &collector{rule: name, seen: make(map[string]bool)}
	for i := 0; i < table.Len(); i++ {
		c.add(ur.severity,
			fmt.Sprintf("Rule %s matched %s", name, describeBinding(table.Binding(i))),
			"Revise the facts matched by the rule")
	}
	res.issues = c.out
	res.elapsed = time.Since(begin)
	v.notify(swrl.Event{Rule: name, State: swrl.StateDone, Rows: len(c.out), Elapsed: res.elapsed})
	return res, nil
}

func (v *Validator) notify(e swrl.Event) {
	if v.observer != nil {
		v.observer(e)
	}
}

// describeBinding renders a row as "?a=x, ?b=y" in variable order.
func describeBinding(b swrl.Binding) string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = "?" + name + "=" + label(b[name])
	}
	return strings.Join(parts, ", ")
}
