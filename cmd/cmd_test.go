package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/owlreasoner/core/knowledge/inference"
	"github.com/adalundhe/owlreasoner/core/ontology"
	"github.com/adalundhe/owlreasoner/core/storage"
)

const ex = "http://example.org/"

// kittens is a small ontology: tom is a kitten, kittens are cats.
const kittens = `<http://example.org/Kitten> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/Cat> .
<http://example.org/tom> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Kitten> .
<http://example.org/rex> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Person> .
`

// catDog puts rex in two disjoint classes.
const catDog = `<http://example.org/Cat> <http://www.w3.org/2002/07/owl#disjointWith> <http://example.org/Dog> .
<http://example.org/rex> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Cat> .
<http://example.org/rex> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Dog> .
`

// =============================================================================
// Helpers
// =============================================================================

// cli runs commands against an isolated home and project directory.
type cli struct {
	home    string
	project string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	for _, key := range []string{
		"OWLREASONER_REASONER_RULES", "OWLREASONER_REASONER_SWRL_RULES",
		"OWLREASONER_VALIDATOR_RULES", "OWLREASONER_VALIDATOR_SWRL_RULES",
		"OWLREASONER_STORE_RULE_DB", "OWLREASONER_STORE_INFERENCE_LOG",
	} {
		t.Setenv(key, "")
	}
	return &cli{home: t.TempDir(), project: t.TempDir()}
}

func resetFlags() {
	rootProject, rootHome, rootLogLevel, rootLogFormat = ".", "", "", ""
	reasonRules, reasonSWRL, reasonMerge, reasonOutput = nil, nil, false, ""
	reasonParallelism, reasonJSON, reasonLog = 0, false, false
	validateRules, validateSWRL, validateJSON, validateStrict = nil, nil, false, false
	rulesAddPurpose, rulesListPurpose, rulesSeverity = string(inference.PurposeReasoning), "", "error"
	rulesDisabled, rulesPrefixes, rulesJSON = false, nil, false
	watchDebounce = WatchDefaultDebounce
}

func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--home", c.home, "--project", c.project, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeOntologyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ontology.nt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// =============================================================================
// Definition Tests
// =============================================================================

func TestRootCmd_Definition(t *testing.T) {
	t.Run("has subcommands", func(t *testing.T) {
		found := make(map[string]bool)
		for _, c := range rootCmd.Commands() {
			found[c.Name()] = true
		}
		for _, name := range []string{"reason", "validate", "rules", "watch"} {
			assert.True(t, found[name], "%s subcommand should exist", name)
		}
	})

	t.Run("rules has subcommands", func(t *testing.T) {
		var names []string
		for _, c := range rulesCmd.Commands() {
			names = append(names, c.Name())
		}
		assert.ElementsMatch(t, []string{"add", "list", "remove"}, names)
	})

	t.Run("has persistent flags", func(t *testing.T) {
		pflags := rootCmd.PersistentFlags()
		require.NotNil(t, pflags.Lookup("project"))
		require.NotNil(t, pflags.Lookup("home"))
		require.NotNil(t, pflags.Lookup("log-level"))
		assert.Equal(t, ".", pflags.Lookup("project").DefValue)
	})

	t.Run("watch debounce default", func(t *testing.T) {
		flag := watchCmd.Flags().Lookup("debounce")
		require.NotNil(t, flag)
		assert.Equal(t, WatchDefaultDebounce.String(), flag.DefValue)
	})
}

func TestParsePurpose(t *testing.T) {
	p, err := parsePurpose(" Validation ")
	require.NoError(t, err)
	assert.Equal(t, inference.PurposeValidation, p)

	_, err = parsePurpose("proving")
	assert.Error(t, err)
}

func TestParsePrefixes(t *testing.T) {
	prefixes, err := parsePrefixes([]string{"ex=" + ex, ":=http://default.org/"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ex": ex, "": "http://default.org/"}, prefixes)

	_, err = parsePrefixes([]string{"ex"})
	assert.Error(t, err)

	prefixes, err = parsePrefixes(nil)
	require.NoError(t, err)
	assert.Nil(t, prefixes)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500µs", formatDuration(500*time.Microsecond))
	assert.Equal(t, "42ms", formatDuration(42*time.Millisecond))
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
}

// =============================================================================
// Rules Command Tests
// =============================================================================

func TestRulesCmd_Lifecycle(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "rules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No stored rules.")

	out, err = c.run(t, "rules", "add", "agent", "ex:Person(?p) -> ex:Agent(?p)", "--prefix", "ex="+ex)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored")

	_, err = c.run(t, "rules", "add", "twoPets", "ex:Cat(?x) ^ ex:Dog(?x) ->",
		"--prefix", "ex="+ex, "--purpose", "validation", "--severity", "warning")
	require.NoError(t, err)

	out, err = c.run(t, "rules", "list", "--json")
	require.NoError(t, err)
	var listed []ruleOutput
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "agent", listed[0].Name)
	assert.Equal(t, "reasoning", listed[0].Purpose)
	assert.Empty(t, listed[0].Severity)
	assert.Equal(t, "twoPets", listed[1].Name)
	assert.Equal(t, "warning", listed[1].Severity)
	assert.True(t, listed[1].Enabled)

	out, err = c.run(t, "rules", "list", "--purpose", "validation")
	require.NoError(t, err)
	assert.Contains(t, out, "twoPets")
	assert.NotContains(t, out, "agent")

	_, err = c.run(t, "rules", "remove", "agent")
	require.NoError(t, err)

	_, err = c.run(t, "rules", "remove", "agent")
	assert.ErrorIs(t, err, inference.ErrRuleNotFound)
}

func TestRulesCmd_AddErrors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "rules", "add", "bad", "ex:Person(?p) -> ")
	assert.Error(t, err, "reasoning rules need a consequent")

	_, err = c.run(t, "rules", "add", "bad", "Person(?p ->")
	assert.Error(t, err)

	_, err = c.run(t, "rules", "add", "bad", "ex:Person(?p) -> ex:Agent(?p)", "--purpose", "proving")
	assert.Error(t, err)

	_, err = c.run(t, "rules", "add", "bad", "ex:Person(?p) -> ex:Agent(?p)", "--severity", "fatal")
	assert.Error(t, err)
}

// =============================================================================
// Reason Command Tests
// =============================================================================

func TestReasonCmd_StandardRules(t *testing.T) {
	c := newCLI(t)
	path := writeOntologyFile(t, kittens)

	out, err := c.run(t, "reason", path, "--rules", "owl2:ClassAssertionEntailment", "--json")
	require.NoError(t, err)

	var report reasonReportOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 0, report.Merged)
	require.Equal(t, 1, report.Count)
	assert.Equal(t, "ClassAssertion(<"+ex+"Cat> <"+ex+"tom>)", report.Inferences[0].Axiom)
	assert.Equal(t, "ClassAssertionEntailment", report.Inferences[0].Rule)
}

func TestReasonCmd_StoredSWRLRules(t *testing.T) {
	c := newCLI(t)
	path := writeOntologyFile(t, kittens)

	_, err := c.run(t, "rules", "add", "agent", "ex:Person(?p) -> ex:Agent(?p)", "--prefix", "ex="+ex)
	require.NoError(t, err)

	out, err := c.run(t, "reason", path, "--rules", "nothing-matches", "--swrl", "*")
	require.NoError(t, err)
	assert.Contains(t, out, "ClassAssertion(<"+ex+"Agent> <"+ex+"rex>)")
	assert.Contains(t, out, "[agent]")
}

func TestReasonCmd_MergeOutput(t *testing.T) {
	c := newCLI(t)
	path := writeOntologyFile(t, kittens)
	output := filepath.Join(t.TempDir(), "closed.nt")

	out, err := c.run(t, "reason", path, "--rules", "owl2:ClassAssertionEntailment", "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Merged:")

	merged, err := ontology.LoadNTriplesFile(output)
	require.NoError(t, err)
	tomIsCat, err := ontology.NewClassAssertion(ontology.Class{IRI: ontology.NewIRI(ex + "Cat")}, ontology.NewIRI(ex+"tom"))
	require.NoError(t, err)
	assert.True(t, merged.Contains(tomIsCat))
}

func TestReasonCmd_InferenceLog(t *testing.T) {
	c := newCLI(t)
	path := writeOntologyFile(t, kittens)

	out, err := c.run(t, "reason", path, "--rules", "owl2:ClassAssertionEntailment", "--log-inferences", "--json")
	require.NoError(t, err)
	var report reasonReportOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	dirs := &storage.Dirs{Data: filepath.Join(c.home, "data")}
	root, err := filepath.Abs(c.project)
	require.NoError(t, err)

	db, err := inference.OpenDB(context.Background(), dirs.InferenceLogPath(root))
	require.NoError(t, err)
	defer db.Close()

	records, err := inference.NewInferenceLog(db, nil).RunRecords(context.Background(), report.RunID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestReasonCmd_Errors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "reason", filepath.Join(t.TempDir(), "missing.nt"))
	assert.Error(t, err)

	_, err = c.run(t, "reason")
	assert.Error(t, err, "ontology argument is required")

	_, err = c.run(t, "reason", writeOntologyFile(t, kittens), "--rules", "[")
	assert.Error(t, err, "invalid glob")
}

// =============================================================================
// Validate Command Tests
// =============================================================================

func TestValidateCmd_Inconsistent(t *testing.T) {
	c := newCLI(t)
	path := writeOntologyFile(t, catDog)

	out, err := c.run(t, "validate", path, "--json")
	require.ErrorIs(t, err, errValidationFailed)

	var report validationReportOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Consistent)
	assert.Equal(t, 1, report.Errors)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "ClassAssertionAnalysis", report.Issues[0].Rule)
	assert.Equal(t, "Error", report.Issues[0].Severity)
}

func TestValidateCmd_Consistent(t *testing.T) {
	c := newCLI(t)
	path := writeOntologyFile(t, kittens)

	out, err := c.run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Consistent")
}

func TestValidateCmd_StoredClashRule(t *testing.T) {
	c := newCLI(t)
	path := writeOntologyFile(t, catDog)

	_, err := c.run(t, "rules", "add", "twoPets", "ex:Cat(?x) ^ ex:Dog(?x) ->",
		"--prefix", "ex="+ex, "--purpose", "validation", "--severity", "warning")
	require.NoError(t, err)

	out, err := c.run(t, "validate", path, "--rules", "none", "--swrl", "two*", "--json")
	require.NoError(t, err, "warnings alone do not fail validation")

	var report validationReportOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Consistent)
	assert.Equal(t, 1, report.Warnings)
	assert.Equal(t, "twoPets", report.Issues[0].Rule)

	_, err = c.run(t, "validate", path, "--rules", "none", "--swrl", "two*", "--strict")
	assert.ErrorIs(t, err, errValidationFailed)
}

// =============================================================================
// Watch Tests
// =============================================================================

func TestWatchFile(t *testing.T) {
	path := writeOntologyFile(t, kittens)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trigger := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() { done <- watchFile(ctx, path, 10*time.Millisecond, trigger) }()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.nt"), []byte(catDog), 0644))
	require.NoError(t, os.WriteFile(path, []byte(catDog), 0644))

	select {
	case <-trigger:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := watchFile(context.Background(), filepath.Join(t.TempDir(), "gone", "x.nt"), time.Millisecond, make(chan struct{}, 1))
	assert.Error(t, err)
}

func TestValidationOutcome(t *testing.T) {
	c := newCLI(t)
	path := writeOntologyFile(t, catDog)
	resetFlags()
	rootHome, rootProject = c.home, c.project

	e, err := newEnv(rootCmd)
	require.NoError(t, err)
	report, err := validateFile(context.Background(), e, e.manager.Get(), path)
	require.NoError(t, err)

	assert.True(t, errors.Is(validationOutcome(report, false), errValidationFailed))

	var buf bytes.Buffer
	require.NoError(t, outputRichValidationReport(&buf, report))
	assert.True(t, strings.Contains(buf.String(), "Inconsistent"))
}
