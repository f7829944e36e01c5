package validation

import (
	"fmt"
	"strings"
	"time"
)

// Severity grades an issue.
type Severity uint8

const (
	// SeverityError marks an inconsistency of the ontology.
	SeverityError Severity = iota
	// SeverityWarning marks a modelling smell that does not make the
	// ontology inconsistent.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// ParseSeverity reads "error" or "warning", ignoring case. The empty string
// is an error severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	default:
		return SeverityError, fmt.Errorf("unknown severity %q", s)
	}
}

// Issue is a problem detected by an analysis.
type Issue struct {
	RuleName    string
	Severity    Severity
	Description string
	Suggestion  string
}

// Key identifies the issue by content.
func (i Issue) Key() string {
	return i.RuleName + "\x00" + i.Severity.String() + "\x00" + i.Description + "\x00" + i.Suggestion
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.RuleName, i.Description)
}

// Diagnostic summarizes one analysis of a validator run.
type Diagnostic struct {
	Rule    string
	Issues  int
	Elapsed time.Duration
}

// Report is the outcome of a validator run.
type Report struct {
	Diagnostics []Diagnostic
	Elapsed     time.Duration

	issues []Issue
}

// Issues returns every issue in analysis order.
func (r *Report) Issues() []Issue {
	out := make([]Issue, len(r.issues))
	copy(out, r.issues)
	return out
}

// EvidencesCount returns the number of issues.
func (r *Report) EvidencesCount() int {
	return len(r.issues)
}

// SelectErrors returns the issues of error severity.
func (r *Report) SelectErrors() []Issue {
	return r.selectSeverity(SeverityError)
}

// SelectWarnings returns the issues of warning severity.
func (r *Report) SelectWarnings() []Issue {
	return r.selectSeverity(SeverityWarning)
}

func (r *Report) selectSeverity(s Severity) []Issue {
	var out []Issue
	for _, i := range r.issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// ByRule returns the issues raised by the named analysis.
func (r *Report) ByRule(name string) []Issue {
	var out []Issue
	for _, i := range r.issues {
		if i.RuleName == name {
			out = append(out, i)
		}
	}
	return out
}

// Merge adds the issues of other that r does not hold yet.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.issues = distinct(append(r.issues, other.issues...))
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
	r.Elapsed += other.Elapsed
}

func distinct(issues []Issue) []Issue {
	seen := make(map[string]bool, len(issues))
	out := make([]Issue, 0, len(issues))
	for _, i := range issues {
		key := i.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, i)
	}
	return out
}
