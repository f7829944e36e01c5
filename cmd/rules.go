package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/adalundhe/owlreasoner/core/knowledge/inference"
	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/knowledge/validation"
)

// =============================================================================
// Rules Command Flags
// =============================================================================

var (
	rulesAddPurpose  string
	rulesListPurpose string
	rulesSeverity    string
	rulesDisabled    bool
	rulesPrefixes    []string
	rulesJSON        bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage stored SWRL rules",
	Long: `Manage the SWRL rules kept in the project rule store.

Subcommands:
  add      - Parse and store a rule
  list     - List stored rules
  remove   - Delete a rule

Examples:
  owlreasoner rules add adult 'Person(?p) ^ hasAge(?p, ?a) ^ swrlb:greaterThan(?a, 17) -> Adult(?p)' \
      --prefix ':=http://example.org/'
  owlreasoner rules add minor-parent ':Minor(?p) ^ :hasChild(?p, ?c) ->' --purpose validation --severity warning
  owlreasoner rules list --purpose validation
  owlreasoner rules remove adult`,
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <name> <rule>",
	Short: "Parse and store a rule",
	Args:  cobra.ExactArgs(2),
	RunE:  runRulesAdd,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored rules",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesRemove,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesRemoveCmd)

	rulesAddCmd.Flags().StringVar(&rulesAddPurpose, "purpose", string(inference.PurposeReasoning), "Rule purpose: reasoning or validation")
	rulesAddCmd.Flags().StringVar(&rulesSeverity, "severity", "error", "Issue severity for validation rules")
	rulesAddCmd.Flags().BoolVar(&rulesDisabled, "disabled", false, "Store the rule disabled")
	rulesAddCmd.Flags().StringSliceVar(&rulesPrefixes, "prefix", nil, "Prefix mapping as name=iri (repeatable)")

	rulesListCmd.Flags().StringVar(&rulesListPurpose, "purpose", "", "Only list rules of this purpose")
	rulesListCmd.Flags().BoolVar(&rulesJSON, "json", false, "Output as JSON")
}

func parsePurpose(s string) (inference.Purpose, error) {
	switch p := inference.Purpose(strings.ToLower(strings.TrimSpace(s))); p {
	case inference.PurposeReasoning, inference.PurposeValidation:
		return p, nil
	default:
		return "", fmt.Errorf("unknown purpose %q: want reasoning or validation", s)
	}
}

// parsePrefixes reads name=iri pairs. A bare "=iri" maps the empty prefix.
func parsePrefixes(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	prefixes := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, iri, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(iri) == "" {
			return nil, fmt.Errorf("invalid prefix %q: want name=iri", pair)
		}
		prefixes[strings.TrimSuffix(strings.TrimSpace(name), ":")] = strings.TrimSpace(iri)
	}
	return prefixes, nil
}

// =============================================================================
// Rules Add
// =============================================================================

func runRulesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	purpose, err := parsePurpose(rulesAddPurpose)
	if err != nil {
		return err
	}
	severity, err := validation.ParseSeverity(rulesSeverity)
	if err != nil {
		return err
	}
	prefixes, err := parsePrefixes(rulesPrefixes)
	if err != nil {
		return err
	}

	rule, err := swrl.Parse(args[0], args[1], prefixes)
	if err != nil {
		return fmt.Errorf("parse rule: %w", err)
	}
	if purpose == inference.PurposeReasoning && len(rule.Consequent()) == 0 {
		return fmt.Errorf("reasoning rule %s has no consequent", rule.Name())
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	store, db, err := e.openRuleStore(ctx, e.manager.Get())
	if err != nil {
		return err
	}
	defer db.Close()

	stored := inference.StoredRule{
		Rule:     rule,
		Text:     args[1],
		Purpose:  purpose,
		Severity: strings.ToLower(severity.String()),
		Enabled:  !rulesDisabled,
	}
	if existing, err := store.GetRule(ctx, rule.Name()); err != nil {
		return err
	} else if existing != nil {
		stored.CreatedAt = existing.CreatedAt
	}
	if err := store.SaveRule(ctx, stored); err != nil {
		return err
	}

	e.logger.Info("rule stored", "name", rule.Name(), "purpose", purpose)
	fmt.Fprintf(cmd.OutOrStdout(), "%sStored%s %s: %s\n", colorGreen, colorReset, rule.Name(), rule)
	return nil
}

// =============================================================================
// Rules List
// =============================================================================

// ruleOutput is the JSON output for one stored rule.
type ruleOutput struct {
	Name      string    `json:"name"`
	Purpose   string    `json:"purpose"`
	Severity  string    `json:"severity,omitempty"`
	Enabled   bool      `json:"enabled"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newRuleOutput(r inference.StoredRule) ruleOutput {
	out := ruleOutput{
		Name:      r.Name(),
		Purpose:   string(r.Purpose),
		Enabled:   r.Enabled,
		Text:      r.Text,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Purpose == inference.PurposeValidation {
		out.Severity = r.Severity
	}
	return out
}

func runRulesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var purpose inference.Purpose
	if rulesListPurpose != "" {
		p, err := parsePurpose(rulesListPurpose)
		if err != nil {
			return err
		}
		purpose = p
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	var rules []inference.StoredRule
	if cfg := e.manager.Get(); e.ruleStoreExists(cfg) {
		store, db, err := e.openRuleStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		if rules, err = store.LoadRules(ctx); err != nil {
			return err
		}
	}

	out := make([]ruleOutput, 0, len(rules))
	for _, r := range rules {
		if purpose == "" || r.Purpose == purpose {
			out = append(out, newRuleOutput(r))
		}
	}

	if rulesJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}
	return outputRichRules(cmd.OutOrStdout(), out)
}

func outputRichRules(w io.Writer, rules []ruleOutput) error {
	if len(rules) == 0 {
		fmt.Fprintf(w, "%sNo stored rules.%s\n", colorYellow, colorReset)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPURPOSE\tSEVERITY\tENABLED\tRULE")
	for _, r := range rules {
		severity := r.Severity
		if severity == "" {
			severity = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", r.Name, r.Purpose, severity, r.Enabled, truncate(r.Text, 60))
	}
	return tw.Flush()
}

// =============================================================================
// Rules Remove
// =============================================================================

func runRulesRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	cfg := e.manager.Get()
	if !e.ruleStoreExists(cfg) {
		return fmt.Errorf("delete rule name=%s: %w", args[0], inference.ErrRuleNotFound)
	}
	store, db, err := e.openRuleStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.DeleteRule(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%sRemoved%s %s\n", colorGreen, colorReset, args[0])
	return nil
}
