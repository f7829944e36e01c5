package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardRules_Names(t *testing.T) {
	rules := StandardRules()
	require.Len(t, rules, int(owl2RuleCount)+int(skosRuleCount)+int(timeRuleCount)+int(geoRuleCount))

	seen := make(map[string]bool)
	for _, r := range rules {
		name := QualifiedName(r)
		assert.False(t, seen[name], "duplicate %s", name)
		seen[name] = true
	}
	assert.Equal(t, "owl2:ClassAssertionEntailment", QualifiedName(ClassAssertionEntailment))
	assert.Equal(t, "time:BeforeEntailment", QualifiedName(BeforeEntailment))
	assert.Equal(t, "OWL2Rule(99)", OWL2Rule(99).String())
}

func TestParseStandardRule(t *testing.T) {
	tests := []struct {
		input string
		want  StandardRule
	}{
		{"skos:BroaderEntailment", BroaderEntailment},
		{"SKOS:broaderentailment", BroaderEntailment},
		{"  geo:SfWithinEntailment ", SfWithinEntailment},
		{"HasKeyEntailment", HasKeyEntailment},
		{"duringentailment", DuringEntailment},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStandardRule(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStandardRule("owl2:NoSuchEntailment")
	assert.ErrorIs(t, err, ErrUnknownRule)
}

func TestReasoner_AddRuleDiscardsDuplicates(t *testing.T) {
	r := NewReasoner()
	assert.True(t, r.AddRule(ClassAssertionEntailment))
	assert.False(t, r.AddRule(ClassAssertionEntailment))
	// same ordinal, different namespace
	assert.True(t, r.AddRule(BroaderEntailment))
	assert.False(t, r.AddRule(nil))

	assert.Equal(t, []StandardRule{ClassAssertionEntailment, BroaderEntailment}, r.Rules())
}

func TestReasoner_AddRulesMatching(t *testing.T) {
	r := NewReasoner()

	n, err := r.AddRulesMatching("skos:*")
	require.NoError(t, err)
	assert.Equal(t, int(skosRuleCount), n)

	n, err = r.AddRulesMatching("skos:*")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.AddRulesMatching("Sf*Entailment")
	require.NoError(t, err)
	assert.Equal(t, int(geoRuleCount), n)

	n, err = r.AddRulesMatching("owl2:*Property*")
	require.NoError(t, err)
	assert.Positive(t, n)
	for _, rule := range r.Rules()[int(skosRuleCount)+int(geoRuleCount):] {
		assert.Equal(t, NamespaceOWL2, rule.Namespace())
		assert.Contains(t, rule.String(), "Property")
	}
}
