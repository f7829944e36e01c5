package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/adalundhe/owlreasoner/core/config"
	"github.com/adalundhe/owlreasoner/core/knowledge/inference"
	"github.com/adalundhe/owlreasoner/core/ontology"
)

// =============================================================================
// Reason Command Flags
// =============================================================================

var (
	reasonRules       []string
	reasonSWRL        []string
	reasonMerge       bool
	reasonOutput      string
	reasonParallelism int
	reasonJSON        bool
	reasonLog         bool
)

var reasonCmd = &cobra.Command{
	Use:   "reason <ontology.nt>",
	Short: "Derive new axioms from an ontology",
	Long: `Run the configured standard rules and stored SWRL rules over an
N-Triples ontology and print the inferred axioms with the rule that
produced each one.

Examples:
  owlreasoner reason family.nt
  owlreasoner reason family.nt --rules 'owl2:*' --rules 'skos:Broader*'
  owlreasoner reason family.nt --swrl 'adult*' --merge -o closed.nt`,
	Args: cobra.ExactArgs(1),
	RunE: runReason,
}

func init() {
	rootCmd.AddCommand(reasonCmd)

	reasonCmd.Flags().StringSliceVarP(&reasonRules, "rules", "r", nil, "Standard rule patterns (default from config)")
	reasonCmd.Flags().StringSliceVarP(&reasonSWRL, "swrl", "s", nil, "Stored SWRL rule patterns (default from config)")
	reasonCmd.Flags().BoolVarP(&reasonMerge, "merge", "m", false, "Merge inferences into the ontology")
	reasonCmd.Flags().StringVarP(&reasonOutput, "output", "o", "", "Write the merged ontology as N-Triples")
	reasonCmd.Flags().IntVarP(&reasonParallelism, "parallelism", "p", 0, "Maximum concurrent SWRL rules")
	reasonCmd.Flags().BoolVar(&reasonJSON, "json", false, "Output as JSON")
	reasonCmd.Flags().BoolVar(&reasonLog, "log-inferences", false, "Record inferences in the per-project inference log")
}

// signalContext cancels on interrupt.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func reasonOverrides() *config.Config {
	o := &config.Config{
		Reasoner: config.ReasonerConfig{
			Rules:       reasonRules,
			SWRLRules:   reasonSWRL,
			Parallelism: reasonParallelism,
			Merge:       reasonMerge,
		},
	}
	if reasonLog {
		o.Store.InferenceLog = "default"
	}
	return o
}

func runReason(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	cfg := e.manager.Get().Overlay(reasonOverrides())
	if reasonOutput != "" {
		cfg.Reasoner.Merge = true
	}

	ont, err := ontology.LoadNTriplesFile(args[0])
	if err != nil {
		return err
	}
	e.logger.Info("ontology loaded", "path", args[0], "axioms", ont.Len())

	reasoner, closeAll, err := buildReasoner(ctx, e, cfg)
	if err != nil {
		return err
	}
	defer closeAll()

	report, err := reasoner.ApplyToOntology(ctx, ont, cfg.Reasoner.Merge)
	if err != nil {
		return fmt.Errorf("reasoning failed: %w", err)
	}

	if reasonOutput != "" {
		if err := writeOntology(reasonOutput, ont); err != nil {
			return err
		}
		e.logger.Info("ontology written", "path", reasonOutput, "axioms", ont.Len())
	}

	if reasonJSON {
		return outputJSONReasonReport(cmd.OutOrStdout(), report)
	}
	return outputRichReasonReport(cmd.OutOrStdout(), report)
}

// buildReasoner registers the configured standard rules and the matching
// stored SWRL rules. The returned func closes the databases it opened.
func buildReasoner(ctx context.Context, e *env, cfg *config.Config) (*inference.Reasoner, func(), error) {
	var closers []func() error
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	opts := []inference.Option{
		inference.WithLogger(e.logger),
		inference.WithParallelism(cfg.Reasoner.Parallelism),
	}
	if cfg.Reasoner.CacheSize > 0 {
		opts = append(opts, inference.WithExtensionCache(inference.NewExtensionCache(cfg.Reasoner.CacheSize)))
	}
	if path := e.inferenceLogPath(cfg); path != "" {
		db, err := inference.OpenDB(ctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("open inference log %s: %w", path, err)
		}
		closers = append(closers, db.Close)
		opts = append(opts, inference.WithInferenceLog(inference.NewInferenceLog(db, e.logger)))
	}

	reasoner := inference.NewReasoner(opts...)
	for _, pattern := range cfg.Reasoner.Rules {
		n, err := reasoner.AddRulesMatching(pattern)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		if n == 0 {
			e.logger.Warn("no standard rule matches", "pattern", pattern)
		}
	}

	if len(cfg.Reasoner.SWRLRules) > 0 && e.ruleStoreExists(cfg) {
		store, db, err := e.openRuleStore(ctx, cfg)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, db.Close)
		for _, pattern := range cfg.Reasoner.SWRLRules {
			rules, err := store.MatchingRules(ctx, inference.PurposeReasoning, pattern)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			for _, r := range rules {
				reasoner.AddSWRLRule(r.Rule)
			}
		}
	}

	e.logger.Debug("reasoner ready",
		"standard_rules", len(reasoner.Rules()),
		"swrl_rules", len(reasoner.SWRLRules()))
	return reasoner, closeAll, nil
}

func writeOntology(path string, ont ontology.Ontology) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if _, err := ontology.WriteNTriples(f, ont); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}

// =============================================================================
// Output
// =============================================================================

type reasonInferenceOutput struct {
	Rule  string `json:"rule"`
	Axiom string `json:"axiom"`
}

type reasonRuleOutput struct {
	Rule       string        `json:"rule"`
	Candidates int           `json:"candidates"`
	Kept       int           `json:"kept"`
	Elapsed    time.Duration `json:"elapsed"`
}

// reasonReportOutput is the JSON output for a reasoner run.
type reasonReportOutput struct {
	RunID      string                  `json:"run_id"`
	Count      int                     `json:"count"`
	Merged     int                     `json:"merged"`
	Elapsed    time.Duration           `json:"elapsed"`
	Inferences []reasonInferenceOutput `json:"inferences"`
	Rules      []reasonRuleOutput      `json:"rules,omitempty"`
}

func newReasonReportOutput(report *inference.Report) reasonReportOutput {
	out := reasonReportOutput{
		RunID:      report.RunID,
		Count:      report.Count(),
		Merged:     report.Merged,
		Elapsed:    report.Elapsed,
		Inferences: make([]reasonInferenceOutput, 0, report.Count()),
	}
	for _, inf := range report.Inferences() {
		out.Inferences = append(out.Inferences, reasonInferenceOutput{
			Rule:  inf.RuleName,
			Axiom: inf.Axiom.String(),
		})
	}
	for _, d := range report.Diagnostics {
		out.Rules = append(out.Rules, reasonRuleOutput(d))
	}
	return out
}

func outputJSONReasonReport(w io.Writer, report *inference.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newReasonReportOutput(report))
}

func outputRichReasonReport(w io.Writer, report *inference.Report) error {
	fmt.Fprintf(w, "%s%sInferences%s %s(%d in %s)%s\n",
		colorBold, colorCyan, colorReset, colorGray, report.Count(), formatDuration(report.Elapsed), colorReset)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, separator, colorReset)

	for _, inf := range report.Inferences() {
		fmt.Fprintf(w, "%s %s[%s]%s\n", inf.Axiom, colorGray, inf.RuleName, colorReset)
	}

	if report.Merged > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%sMerged:%s %s%d%s\n", colorGray, colorReset, colorGreen, report.Merged, colorReset)
	}
	return nil
}
