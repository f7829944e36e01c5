package swrl

import (
	"sync"

	"github.com/adalundhe/owlreasoner/core/ontology"
)

// ExtensionProvider supplies class extensions computed outside one
// evaluation, typically a cache shared across reasoner runs.
type ExtensionProvider interface {
	IndividualsOf(ont ontology.Ontology, class ontology.ClassExpression, reasoning bool) []ontology.Term
}

// EvaluationContext carries the read-only lookups shared by the atoms of
// one evaluation against a single ontology snapshot. Class extensions are
// computed on first use and reused by every atom and rule holding the
// context. A nil *EvaluationContext behaves like NewEvaluationContext().
type EvaluationContext struct {
	ruleName  string
	reasoning bool
	provider  ExtensionProvider
	observer  Observer
	shared    *sharedLookups
}

type sharedLookups struct {
	mu         sync.Mutex
	extensions map[string][]ontology.Term
	sameAs     map[string]struct{}
}

// ContextOption configures an EvaluationContext.
type ContextOption func(*EvaluationContext)

// WithReasoning toggles taxonomy-aware class extensions. It is on by default.
func WithReasoning(enabled bool) ContextOption {
	return func(c *EvaluationContext) { c.reasoning = enabled }
}

// WithExtensionProvider sets an external source of class extensions.
func WithExtensionProvider(p ExtensionProvider) ContextOption {
	return func(c *EvaluationContext) { c.provider = p }
}

// WithObserver sets the callback notified of rule state changes.
func WithObserver(o Observer) ContextOption {
	return func(c *EvaluationContext) { c.observer = o }
}

// NewEvaluationContext returns a context with empty lookups.
func NewEvaluationContext(opts ...ContextOption) *EvaluationContext {
	c := &EvaluationContext{reasoning: true, shared: &sharedLookups{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ForRule returns a context sharing the lookups of c whose inferences are
// attributed to the named rule.
func (c *EvaluationContext) ForRule(name string) *EvaluationContext {
	base := c.orDefault()
	child := *base
	child.ruleName = name
	return &child
}

// RuleName returns the rule inferences are attributed to, or "".
func (c *EvaluationContext) RuleName() string {
	if c == nil {
		return ""
	}
	return c.ruleName
}

// Reasoning reports whether class extensions use the taxonomy.
func (c *EvaluationContext) Reasoning() bool {
	return c.orDefault().reasoning
}

func (c *EvaluationContext) notify(e Event) {
	if c != nil && c.observer != nil {
		c.observer(e)
	}
}

func (c *EvaluationContext) orDefault() *EvaluationContext {
	if c == nil {
		return NewEvaluationContext()
	}
	return c
}

// IndividualsOf returns the extension of class, computing it once.
func (c *EvaluationContext) IndividualsOf(ont ontology.Ontology, class ontology.ClassExpression) []ontology.Term {
	c = c.orDefault()
	key := class.String()

	c.shared.mu.Lock()
	if members, ok := c.shared.extensions[key]; ok {
		c.shared.mu.Unlock()
		return members
	}
	c.shared.mu.Unlock()

	var members []ontology.Term
	if c.provider != nil {
		members = c.provider.IndividualsOf(ont, class, c.reasoning)
	} else {
		members = ont.IndividualsOf(class, c.reasoning)
	}

	c.shared.mu.Lock()
	defer c.shared.mu.Unlock()
	if c.shared.extensions == nil {
		c.shared.extensions = make(map[string][]ontology.Term)
	}
	c.shared.extensions[key] = members
	return members
}

// assertedSameAs reports whether SameIndividual(a b) is asserted as written.
func (c *EvaluationContext) assertedSameAs(ont ontology.Ontology, a, b ontology.Term) bool {
	c = c.orDefault()
	c.shared.mu.Lock()
	defer c.shared.mu.Unlock()
	if c.shared.sameAs == nil {
		c.shared.sameAs = make(map[string]struct{})
		for _, axiom := range ont.Axioms(ontology.KindSameIndividual) {
			c.shared.sameAs[axiom.String()] = struct{}{}
		}
	}
	_, ok := c.shared.sameAs[ontology.SameIndividual{Individuals: []ontology.Term{a, b}}.String()]
	return ok
}
