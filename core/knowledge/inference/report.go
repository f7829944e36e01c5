package inference

import (
	"time"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
)

// RuleDiagnostic summarizes one rule of a reasoner run.
type RuleDiagnostic struct {
	Rule string
	// Candidates is the number of inferences the rule produced.
	Candidates int
	// Kept is the number of those that survived deduplication.
	Kept    int
	Elapsed time.Duration
}

// Report is the outcome of a reasoner run: the deduplicated inferences with
// their provenance and per-rule diagnostics.
type Report struct {
	RunID       string
	Diagnostics []RuleDiagnostic
	// Merged is the number of inferences written back into the ontology.
	Merged  int
	Elapsed time.Duration

	inferences []swrl.Inference
}

// Inferences returns the inferences in rule order.
func (r *Report) Inferences() []swrl.Inference {
	out := make([]swrl.Inference, len(r.inferences))
	copy(out, r.inferences)
	return out
}

// Count returns the number of inferences.
func (r *Report) Count() int {
	return len(r.inferences)
}

// ByRule returns the inferences attributed to the named rule.
func (r *Report) ByRule(name string) []swrl.Inference {
	var out []swrl.Inference
	for _, inf := range r.inferences {
		if inf.RuleName == name {
			out = append(out, inf)
		}
	}
	return out
}

// Merge adds the inferences and diagnostics of other. Facts already in r
// keep their original provenance.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.inferences = distinct(append(r.inferences, other.inferences...))
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
	r.Merged += other.Merged
	r.Elapsed += other.Elapsed
}
