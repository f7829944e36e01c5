package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/adalundhe/owlreasoner/core/config"
	"github.com/adalundhe/owlreasoner/core/knowledge/inference"
	"github.com/adalundhe/owlreasoner/core/knowledge/validation"
	"github.com/adalundhe/owlreasoner/core/ontology"
)

// errValidationFailed makes the command exit non-zero when the ontology has
// errors. Warnings alone do not fail validation.
var errValidationFailed = errors.New("ontology is inconsistent")

// =============================================================================
// Validate Command Flags
// =============================================================================

var (
	validateRules  []string
	validateSWRL   []string
	validateJSON   bool
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <ontology.nt>",
	Short: "Check an ontology for inconsistencies",
	Long: `Run the configured standard analyses and stored SWRL clash rules over
an N-Triples ontology and report errors and warnings.

The command exits non-zero when at least one error is found.

Examples:
  owlreasoner validate family.nt
  owlreasoner validate timeline.nt --rules 'time:*' --json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringSliceVarP(&validateRules, "rules", "r", nil, "Standard analysis patterns (default from config)")
	validateCmd.Flags().StringSliceVarP(&validateSWRL, "swrl", "s", nil, "Stored SWRL clash rule patterns (default from config)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output as JSON")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat warnings as errors")
}

func validateOverrides() *config.Config {
	return &config.Config{
		Validator: config.ValidatorConfig{
			Rules:     validateRules,
			SWRLRules: validateSWRL,
		},
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	cfg := e.manager.Get().Overlay(validateOverrides())

	report, err := validateFile(ctx, e, cfg, args[0])
	if err != nil {
		return err
	}

	if validateJSON {
		err = outputJSONValidationReport(cmd.OutOrStdout(), report)
	} else {
		err = outputRichValidationReport(cmd.OutOrStdout(), report)
	}
	if err != nil {
		return err
	}
	return validationOutcome(report, validateStrict)
}

func validationOutcome(report *validation.Report, strict bool) error {
	failures := len(report.SelectErrors())
	if strict {
		failures += len(report.SelectWarnings())
	}
	if failures > 0 {
		return fmt.Errorf("%d issues: %w", failures, errValidationFailed)
	}
	return nil
}

// validateFile loads the ontology at path and runs a freshly built
// validator over it.
func validateFile(ctx context.Context, e *env, cfg *config.Config, path string) (*validation.Report, error) {
	ont, err := ontology.LoadNTriplesFile(path)
	if err != nil {
		return nil, err
	}
	e.logger.Info("ontology loaded", "path", path, "axioms", ont.Len())

	validator, closeAll, err := buildValidator(ctx, e, cfg)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	report, err := validator.ApplyToOntology(ctx, ont)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return report, nil
}

// buildValidator registers the configured analyses and the matching stored
// validation rules, each with its stored severity.
func buildValidator(ctx context.Context, e *env, cfg *config.Config) (*validation.Validator, func(), error) {
	closeAll := func() {}

	opts := []validation.Option{
		validation.WithLogger(e.logger),
		validation.WithParallelism(cfg.Reasoner.Parallelism),
	}
	if cfg.Reasoner.CacheSize > 0 {
		opts = append(opts, validation.WithExtensionCache(inference.NewExtensionCache(cfg.Reasoner.CacheSize)))
	}

	validator := validation.NewValidator(opts...)
	for _, pattern := range cfg.Validator.Rules {
		n, err := validator.AddRulesMatching(pattern)
		if err != nil {
			return nil, nil, err
		}
		if n == 0 {
			e.logger.Warn("no standard analysis matches", "pattern", pattern)
		}
	}

	if len(cfg.Validator.SWRLRules) > 0 && e.ruleStoreExists(cfg) {
		store, db, err := e.openRuleStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeAll = func() { db.Close() }
		for _, pattern := range cfg.Validator.SWRLRules {
			rules, err := store.MatchingRules(ctx, inference.PurposeValidation, pattern)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			for _, r := range rules {
				severity, err := validation.ParseSeverity(r.Severity)
				if err != nil {
					e.logger.Warn("stored rule has an unknown severity, using error",
						"rule", r.Name(), "severity", r.Severity)
				}
				validator.AddSWRLRule(r.Rule, severity)
			}
		}
	}

	return validator, closeAll, nil
}

// =============================================================================
// Output
// =============================================================================

type validationIssueOutput struct {
	Rule        string `json:"rule"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// validationReportOutput is the JSON output for a validator run.
type validationReportOutput struct {
	Consistent bool                    `json:"consistent"`
	Errors     int                     `json:"errors"`
	Warnings   int                     `json:"warnings"`
	Elapsed    time.Duration           `json:"elapsed"`
	Issues     []validationIssueOutput `json:"issues"`
}

func newValidationReportOutput(report *validation.Report) validationReportOutput {
	errs := len(report.SelectErrors())
	out := validationReportOutput{
		Consistent: errs == 0,
		Errors:     errs,
		Warnings:   len(report.SelectWarnings()),
		Elapsed:    report.Elapsed,
		Issues:     make([]validationIssueOutput, 0, report.EvidencesCount()),
	}
	for _, issue := range report.Issues() {
		out.Issues = append(out.Issues, validationIssueOutput{
			Rule:        issue.RuleName,
			Severity:    issue.Severity.String(),
			Description: issue.Description,
			Suggestion:  issue.Suggestion,
		})
	}
	return out
}

func outputJSONValidationReport(w io.Writer, report *validation.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newValidationReportOutput(report))
}

func outputRichValidationReport(w io.Writer, report *validation.Report) error {
	errs, warns := report.SelectErrors(), report.SelectWarnings()

	fmt.Fprintf(w, "%s%sValidation%s %s(%s)%s\n",
		colorBold, colorCyan, colorReset, colorGray, formatDuration(report.Elapsed), colorReset)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, separator, colorReset)

	for _, issue := range errs {
		writeIssue(w, issue, colorRed)
	}
	for _, issue := range warns {
		writeIssue(w, issue, colorYellow)
	}

	if len(errs)+len(warns) > 0 {
		fmt.Fprintln(w)
	}
	if len(errs) == 0 {
		fmt.Fprintf(w, "%sConsistent%s (%d warnings)\n", colorGreen, colorReset, len(warns))
	} else {
		fmt.Fprintf(w, "%sInconsistent%s (%d errors, %d warnings)\n", colorRed, colorReset, len(errs), len(warns))
	}
	return nil
}

func writeIssue(w io.Writer, issue validation.Issue, color string) {
	fmt.Fprintf(w, "%s%-7s%s %s %s[%s]%s\n",
		color, issue.Severity, colorReset, issue.Description, colorGray, issue.RuleName, colorReset)
	if issue.Suggestion != "" {
		fmt.Fprintf(w, "        %s%s%s\n", colorGray, issue.Suggestion, colorReset)
	}
}
