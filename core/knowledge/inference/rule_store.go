package inference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
)

var (
	// ErrRuleNotFound is returned when a rule cannot be found by name.
	ErrRuleNotFound = errors.New("swrl rule not found")
	// ErrUnknownRule is returned when a standard rule name matches nothing.
	ErrUnknownRule = errors.New("unknown standard rule")
)

// Purpose tells which orchestrator a stored rule belongs to.
type Purpose string

const (
	PurposeReasoning  Purpose = "reasoning"
	PurposeValidation Purpose = "validation"
)

// StoredRule is a named SWRL rule kept by the RuleStore. Text is the human
// syntax it was written in; the JSON encoding of Rule is what gets loaded.
type StoredRule struct {
	Rule      *swrl.Rule
	Text      string
	Purpose   Purpose
	Severity  string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name returns the rule name, which is the store key.
func (r StoredRule) Name() string {
	if r.Rule == nil {
		return ""
	}
	return r.Rule.Name()
}

// =============================================================================
// RuleStore
// =============================================================================

// RuleStore provides persistent storage for SWRL rules using SQLite.
// Loaded rules are cached in memory by name.
type RuleStore struct {
	db    *sql.DB
	mu    sync.RWMutex
	cache map[string]*StoredRule
}

// NewRuleStore creates a new RuleStore with the given database connection.
// The schema must exist; see OpenDB and EnsureSchema.
func NewRuleStore(db *sql.DB) *RuleStore {
	return &RuleStore{
		db:    db,
		cache: make(map[string]*StoredRule),
	}
}

const selectRules = `
	SELECT name, purpose, severity, rule_text, rule_json, enabled, created_at, updated_at
	FROM swrl_rules
`

// LoadRules retrieves all rules ordered by name. Results are cached for
// subsequent reads.
func (s *RuleStore) LoadRules(ctx context.Context) ([]StoredRule, error) {
	rows, err := s.db.QueryContext(ctx, selectRules+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	rules, err := scanRules(rows)
	if err != nil {
		return nil, err
	}
	s.updateCache(rules)
	return rules, nil
}

// EnabledRules returns the enabled rules of the given purpose.
func (s *RuleStore) EnabledRules(ctx context.Context, purpose Purpose) ([]StoredRule, error) {
	rows, err := s.db.QueryContext(ctx, selectRules+` WHERE enabled = 1 AND purpose = ? ORDER BY name`, string(purpose))
	if err != nil {
		return nil, fmt.Errorf("query enabled rules: %w", err)
	}
	defer rows.Close()
	return scanRules(rows)
}

// MatchingRules returns the enabled rules of the given purpose whose name
// matches the glob pattern.
func (s *RuleStore) MatchingRules(ctx context.Context, purpose Purpose, pattern string) ([]StoredRule, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	rules, err := s.EnabledRules(ctx, purpose)
	if err != nil {
		return nil, err
	}
	out := rules[:0]
	for _, r := range rules {
		if g.Match(r.Name()) {
			out = append(out, r)
		}
	}
	return out, nil
}

func scanRules(rows *sql.Rows) ([]StoredRule, error) {
	var rules []StoredRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}
	return rules, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (StoredRule, error) {
	var rule StoredRule
	var name, purpose, ruleJSON, createdAt, updatedAt string
	var enabled int
	if err := row.Scan(&name, &purpose, &rule.Severity, &rule.Text, &ruleJSON, &enabled, &createdAt, &updatedAt); err != nil {
		return StoredRule{}, err
	}

	decoded, err := swrl.UnmarshalRule([]byte(ruleJSON))
	if err != nil {
		return StoredRule{}, fmt.Errorf("decode rule %s: %w", name, err)
	}
	rule.Rule = decoded
	rule.Purpose = Purpose(purpose)
	rule.Enabled = enabled == 1
	rule.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rule.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return rule, nil
}

// updateCache replaces the cache with the given rules.
func (s *RuleStore) updateCache(rules []StoredRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*StoredRule, len(rules))
	for i := range rules {
		ruleCopy := rules[i]
		s.cache[ruleCopy.Name()] = &ruleCopy
	}
}

// SaveRule inserts or replaces a rule, keyed by its name. An empty purpose
// means PurposeReasoning and an empty Text is filled from the rule.
func (s *RuleStore) SaveRule(ctx context.Context, rule StoredRule) error {
	if rule.Rule == nil {
		return fmt.Errorf("save rule: %w", swrl.ErrEmptyRuleName)
	}
	data, err := swrl.MarshalRule(rule.Rule)
	if err != nil {
		return fmt.Errorf("marshal rule: %w", err)
	}
	if rule.Purpose == "" {
		rule.Purpose = PurposeReasoning
	}
	if strings.TrimSpace(rule.Text) == "" {
		rule.Text = rule.Rule.String()
	}
	now := time.Now().UTC().Truncate(time.Second)
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO swrl_rules
		    (name, purpose, severity, rule_text, rule_json, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
		    purpose = excluded.purpose,
		    severity = excluded.severity,
		    rule_text = excluded.rule_text,
		    rule_json = excluded.rule_json,
		    enabled = excluded.enabled,
		    updated_at = excluded.updated_at
	`,
		rule.Name(), string(rule.Purpose), rule.Severity, rule.Text, string(data),
		boolToInt(rule.Enabled), rule.CreatedAt.Format(time.RFC3339), rule.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save rule: %w", err)
	}

	s.cacheRule(&rule)
	return nil
}

func (s *RuleStore) cacheRule(rule *StoredRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ruleCopy := *rule
	s.cache[rule.Name()] = &ruleCopy
}

// DeleteRule removes a rule by name.
func (s *RuleStore) DeleteRule(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM swrl_rules WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("delete rule name=%s: %w", name, ErrRuleNotFound)
	}

	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
	return nil
}

// GetRule retrieves a single rule by name. Returns nil if the rule is not
// found.
func (s *RuleStore) GetRule(ctx context.Context, name string) (*StoredRule, error) {
	if rule := s.getFromCache(name); rule != nil {
		return rule, nil
	}

	row := s.db.QueryRowContext(ctx, selectRules+` WHERE name = ?`, name)
	rule, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rule: %w", err)
	}

	s.cacheRule(&rule)
	return &rule, nil
}

func (s *RuleStore) getFromCache(name string) *StoredRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rule, ok := s.cache[name]; ok {
		ruleCopy := *rule
		return &ruleCopy
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
