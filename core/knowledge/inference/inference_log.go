package inference

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
)

// =============================================================================
// Retry Configuration
// =============================================================================

// RetryConfig holds settings for log write retries.
type RetryConfig struct {
	MaxRetries      int           // Maximum number of retry attempts (default 3)
	InitialBackoff  time.Duration // Initial backoff duration (default 100ms)
	MaxBackoff      time.Duration // Maximum backoff duration (default 5s)
	BackoffMultiple float64       // Multiplier for exponential backoff (default 2.0)
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialBackoff:  100 * time.Millisecond,
		MaxBackoff:      5 * time.Second,
		BackoffMultiple: 2.0,
	}
}

// =============================================================================
// InferenceLog
// =============================================================================

// LogRecord is one inference persisted by the InferenceLog.
type LogRecord struct {
	ID        int64
	RunID     string
	RuleName  string
	AxiomKind string
	Axiom     string
	DerivedAt time.Time
}

// InferenceLog persists the surviving inferences of every reasoner run with
// their rule provenance. Records are prepared outside the write lock; the
// lock only serializes transactions.
type InferenceLog struct {
	db          *sql.DB
	logger      *slog.Logger
	writeMu     sync.Mutex
	retryConfig RetryConfig
}

// NewInferenceLog creates an InferenceLog over db. The schema must exist.
func NewInferenceLog(db *sql.DB, logger *slog.Logger) *InferenceLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &InferenceLog{
		db:          db,
		logger:      logger,
		retryConfig: DefaultRetryConfig(),
	}
}

// SetRetryConfig sets the retry configuration for writes.
func (l *InferenceLog) SetRetryConfig(config RetryConfig) {
	l.retryConfig = config
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

type preparedRecord struct {
	ruleName  string
	axiomKind string
	axiom     string
	derivedAt string
}

// Record stores the inferences of one run. Facts already recorded for the
// run are skipped.
func (l *InferenceLog) Record(ctx context.Context, runID, ontologyIRI string, inferences []swrl.Inference) error {
	derivedAt := time.Now().UTC().Format(time.RFC3339Nano)
	prepared := make([]preparedRecord, len(inferences))
	for i, inf := range inferences {
		prepared[i] = preparedRecord{
			ruleName:  inf.RuleName,
			axiomKind: inf.Axiom.Kind().String(),
			axiom:     inf.Key(),
			derivedAt: derivedAt,
		}
	}

	var lastErr error
	backoff := l.retryConfig.InitialBackoff
	for attempt := 0; attempt <= l.retryConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := waitBackoff(ctx, backoff); err != nil {
				return err
			}
			backoff = l.nextBackoff(backoff)
		}
		lastErr = l.tryRecord(ctx, runID, ontologyIRI, derivedAt, prepared)
		if lastErr == nil {
			l.logger.Debug("inference log recorded", "run_id", runID, "inferences", len(prepared))
			return nil
		}
	}
	l.logger.Warn("inference log write failed", "run_id", runID, "attempts", l.retryConfig.MaxRetries+1, "error", lastErr)
	return lastErr
}

func (l *InferenceLog) tryRecord(ctx context.Context, runID, ontologyIRI, startedAt string, prepared []preparedRecord) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO inference_runs (run_id, ontology, started_at, inferences)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET inferences = inference_runs.inferences + excluded.inferences
	`, runID, ontologyIRI, startedAt, len(prepared))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, pr := range prepared {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO inference_log (run_id, rule_name, axiom_kind, axiom, derived_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(run_id, axiom) DO NOTHING
		`, runID, pr.ruleName, pr.axiomKind, pr.axiom, pr.derivedAt)
		if err != nil {
			return fmt.Errorf("insert inference: %w", err)
		}
	}
	return tx.Commit()
}

func (l *InferenceLog) nextBackoff(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * l.retryConfig.BackoffMultiple)
	if next > l.retryConfig.MaxBackoff {
		return l.retryConfig.MaxBackoff
	}
	return next
}

func waitBackoff(ctx context.Context, backoff time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(backoff):
		return nil
	}
}

// RunRecords returns the records of one run in insertion order.
func (l *InferenceLog) RunRecords(ctx context.Context, runID string) ([]LogRecord, error) {
	return l.query(ctx, `
		SELECT id, run_id, rule_name, axiom_kind, axiom, derived_at
		FROM inference_log WHERE run_id = ? ORDER BY id
	`, runID)
}

// Provenance returns every recorded derivation of the axiom, oldest first.
func (l *InferenceLog) Provenance(ctx context.Context, axiom string) ([]LogRecord, error) {
	return l.query(ctx, `
		SELECT id, run_id, rule_name, axiom_kind, axiom, derived_at
		FROM inference_log WHERE axiom = ? ORDER BY id
	`, axiom)
}

func (l *InferenceLog) query(ctx context.Context, query string, args ...any) ([]LogRecord, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inference log: %w", err)
	}
	defer rows.Close()

	var out []LogRecord
	for rows.Next() {
		var rec LogRecord
		var derivedAt string
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.RuleName, &rec.AxiomKind, &rec.Axiom, &derivedAt); err != nil {
			return nil, fmt.Errorf("scan inference log: %w", err)
		}
		rec.DerivedAt, _ = time.Parse(time.RFC3339Nano, derivedAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inference log: %w", err)
	}
	return out, nil
}
