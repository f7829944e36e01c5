package inference

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
)

// =============================================================================
// Test Helpers
// =============================================================================

// setupTestDB creates an in-memory SQLite database with the owlreasoner schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

// createTestRule creates an enabled rule named name.
func createTestRule(t *testing.T, name string, purpose Purpose) StoredRule {
	t.Helper()
	rule, err := swrl.Parse(name, `ex:Person(?p) ^ ex:age(?p, ?a) ^ swrlb:greaterThan(?a, 17) -> ex:Adult(?p)`, exPrefixes)
	if err != nil {
		t.Fatalf("failed to parse rule: %v", err)
	}
	return StoredRule{Rule: rule, Purpose: purpose, Enabled: true}
}

// =============================================================================
// NewRuleStore Tests
// =============================================================================

func TestNewRuleStore(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewRuleStore(db)

	if store == nil {
		t.Fatal("NewRuleStore returned nil")
	}
	if store.db != db {
		t.Error("database not set correctly")
	}
	if store.cache == nil {
		t.Error("cache not initialized")
	}
}

// =============================================================================
// SaveRule / GetRule Tests
// =============================================================================

func TestRuleStore_SaveAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	store := NewRuleStore(db)
	rule := createTestRule(t, "adult", "")
	if err := store.SaveRule(ctx, rule); err != nil {
		t.Fatalf("SaveRule failed: %v", err)
	}

	// fresh store so the read goes to the database
	got, err := NewRuleStore(db).GetRule(ctx, "adult")
	if err != nil {
		t.Fatalf("GetRule failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetRule returned nil for saved rule")
	}
	if got.Purpose != PurposeReasoning {
		t.Errorf("expected default purpose %q, got %q", PurposeReasoning, got.Purpose)
	}
	if got.Text != rule.Rule.String() {
		t.Errorf("expected text %q, got %q", rule.Rule.String(), got.Text)
	}
	if got.Rule.String() != rule.Rule.String() {
		t.Errorf("decoded rule mismatch:\n got %s\nwant %s", got.Rule, rule.Rule)
	}
	if !got.Enabled {
		t.Error("expected rule to be enabled")
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestRuleStore_SaveReplaces(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	store := NewRuleStore(db)
	rule := createTestRule(t, "adult", PurposeValidation)
	rule.Severity = "warning"
	if err := store.SaveRule(ctx, rule); err != nil {
		t.Fatalf("SaveRule failed: %v", err)
	}
	rule.Severity = "error"
	rule.Enabled = false
	if err := store.SaveRule(ctx, rule); err != nil {
		t.Fatalf("second SaveRule failed: %v", err)
	}

	rules, err := store.LoadRules(ctx)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules[0].Severity != "error" || rules[0].Enabled {
		t.Errorf("rule not replaced: severity=%q enabled=%v", rules[0].Severity, rules[0].Enabled)
	}
}

func TestRuleStore_SaveNilRule(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := NewRuleStore(db).SaveRule(context.Background(), StoredRule{})
	if !errors.Is(err, swrl.ErrEmptyRuleName) {
		t.Errorf("expected ErrEmptyRuleName, got %v", err)
	}
}

func TestRuleStore_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	got, err := NewRuleStore(db).GetRule(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetRule failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing rule, got %+v", got)
	}
}

// =============================================================================
// Query Tests
// =============================================================================

func TestRuleStore_EnabledRules(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	store := NewRuleStore(db)

	disabled := createTestRule(t, "b-disabled", PurposeReasoning)
	disabled.Enabled = false
	for _, r := range []StoredRule{
		createTestRule(t, "c-reason", PurposeReasoning),
		createTestRule(t, "a-reason", PurposeReasoning),
		createTestRule(t, "d-validate", PurposeValidation),
		disabled,
	} {
		if err := store.SaveRule(ctx, r); err != nil {
			t.Fatalf("SaveRule failed: %v", err)
		}
	}

	rules, err := store.EnabledRules(ctx, PurposeReasoning)
	if err != nil {
		t.Fatalf("EnabledRules failed: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Name() != "a-reason" || rules[1].Name() != "c-reason" {
		t.Errorf("unexpected order: %s, %s", rules[0].Name(), rules[1].Name())
	}

	matching, err := store.MatchingRules(ctx, PurposeValidation, "d-*")
	if err != nil {
		t.Fatalf("MatchingRules failed: %v", err)
	}
	if len(matching) != 1 || matching[0].Name() != "d-validate" {
		t.Errorf("unexpected matches: %v", matching)
	}
}

// =============================================================================
// DeleteRule Tests
// =============================================================================

func TestRuleStore_DeleteRule(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	store := NewRuleStore(db)

	if err := store.SaveRule(ctx, createTestRule(t, "adult", PurposeReasoning)); err != nil {
		t.Fatalf("SaveRule failed: %v", err)
	}
	if err := store.DeleteRule(ctx, "adult"); err != nil {
		t.Fatalf("DeleteRule failed: %v", err)
	}

	got, err := store.GetRule(ctx, "adult")
	if err != nil {
		t.Fatalf("GetRule failed: %v", err)
	}
	if got != nil {
		t.Error("rule still cached after delete")
	}

	err = store.DeleteRule(ctx, "adult")
	if !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("expected ErrRuleNotFound, got %v", err)
	}
}
