package inference

import (
	"context"
	"fmt"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
)

// ruleFunc is the direct-dispatch implementation of a standard rule. It
// reads the ontology snapshot and returns candidate inferences; it never
// mutates ont.
type ruleFunc func(ctx context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error)

var owl2Rules = [owl2RuleCount]ruleFunc{
	ClassAssertionEntailment:                  classAssertionEntailment,
	SubClassOfEntailment:                      subClassOfEntailment,
	EquivalentClassesEntailment:               equivalentClassesEntailment,
	DisjointClassesEntailment:                 disjointClassesEntailment,
	SubObjectPropertyOfEntailment:             subObjectPropertyOfEntailment,
	EquivalentObjectPropertiesEntailment:      equivalentObjectPropertiesEntailment,
	InverseObjectPropertiesEntailment:         inverseObjectPropertiesEntailment,
	SymmetricObjectPropertyEntailment:         symmetricObjectPropertyEntailment,
	TransitiveObjectPropertyEntailment:        transitiveObjectPropertyEntailment,
	ReflexiveObjectPropertyEntailment:         reflexiveObjectPropertyEntailment,
	ObjectPropertyDomainEntailment:            objectPropertyDomainEntailment,
	ObjectPropertyRangeEntailment:             objectPropertyRangeEntailment,
	ObjectPropertyChainEntailment:             objectPropertyChainEntailment,
	FunctionalObjectPropertyEntailment:        functionalObjectPropertyEntailment,
	InverseFunctionalObjectPropertyEntailment: inverseFunctionalObjectPropertyEntailment,
	SubDataPropertyOfEntailment:               subDataPropertyOfEntailment,
	EquivalentDataPropertiesEntailment:        equivalentDataPropertiesEntailment,
	DataPropertyDomainEntailment:              dataPropertyDomainEntailment,
	SameIndividualEntailment:                  sameIndividualEntailment,
	DifferentIndividualsEntailment:            differentIndividualsEntailment,
	HasValueEntailment:                        hasValueEntailment,
	HasSelfEntailment:                         hasSelfEntailment,
	HasKeyEntailment:                          hasKeyEntailment,
}

// =============================================================================
// Emitter
// =============================================================================

// emitter collects the inferences of one rule, dropping repeats.
type emitter struct {
	ont  ontology.Ontology
	rule string
	seen map[string]bool
	out  []swrl.Inference
}

func newEmitter(ont ontology.Ontology, rule StandardRule) *emitter {
	return &emitter{ont: ont, rule: rule.String(), seen: make(map[string]bool)}
}

func (e *emitter) emit(axiom ontology.Axiom) {
	key := axiom.String()
	if e.seen[key] {
		return
	}
	e.seen[key] = true
	e.out = append(e.out, swrl.NewInference(e.rule, axiom))
}

// class emits ClassAssertion(class, individual) unless class is owl:Thing
// or the assertion would clash with a disjointness.
func (e *emitter) class(class ontology.ClassExpression, individual ontology.Term) {
	if c, ok := class.(ontology.Class); ok && c.IsThing() {
		return
	}
	if !individual.IsResource() || !e.ont.CheckClassAssertionCompatibility(class, individual) {
		return
	}
	e.emit(ontology.ClassAssertion{Class: class, Individual: individual})
}

// object emits the calibrated form of property(source, target) when it is
// compatible with the ontology.
func (e *emitter) object(property ontology.ObjectPropertyExpression, source, target ontology.Term) {
	if !source.IsResource() || !target.IsResource() {
		return
	}
	if !e.ont.CheckObjectAssertionCompatibility(property, source, target) {
		return
	}
	e.emit(ontology.ObjectPropertyAssertion{Property: property, Source: source, Target: target}.Calibrate())
}

func (e *emitter) data(property, source, value ontology.Term) {
	if !source.IsResource() || !value.IsLiteral() {
		return
	}
	if !e.ont.CheckDataAssertionCompatibility(property, source, value) {
		return
	}
	e.emit(ontology.DataPropertyAssertion{Property: property, Source: source, Value: value})
}

func (e *emitter) same(a, b ontology.Term) {
	if a == b {
		return
	}
	a, b = orderedPair(a, b)
	e.emit(ontology.SameIndividual{Individuals: []ontology.Term{a, b}})
}

func (e *emitter) inferences() ([]swrl.Inference, error) {
	return e.out, nil
}

// =============================================================================
// Class Rules
// =============================================================================

// classAssertionEntailment propagates asserted memberships to named
// superclasses and classifies individuals into classes defined by
// equivalence with a complex expression.
func classAssertionEntailment(_ context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, ClassAssertionEntailment)
	for _, ca := range ontology.AxiomsOf[ontology.ClassAssertion](ont, ontology.KindClassAssertion) {
		for _, super := range ont.SuperClassesOf(ca.Class) {
			if c, ok := super.(ontology.Class); ok {
				e.class(c, ca.Individual)
			}
		}
	}
	for _, c := range definedClasses(ont) {
		for _, ind := range ectx.IndividualsOf(ont, c) {
			e.class(c, ind)
		}
	}
	return e.inferences()
}

func subClassOfEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, SubClassOfEntailment)
	for _, c := range namedClasses(ont) {
		equivalent := expressionKeys(ont.EquivalentClassesOf(c))
		for _, super := range ont.SuperClassesOf(c) {
			s, ok := super.(ontology.Class)
			if !ok || s.IsThing() || s == c || equivalent[s.String()] {
				continue
			}
			e.emit(ontology.SubClassOf{Sub: c, Super: s})
		}
	}
	return e.inferences()
}

func equivalentClassesEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, EquivalentClassesEntailment)
	for _, c := range namedClasses(ont) {
		for _, eq := range ont.EquivalentClassesOf(c) {
			other, ok := eq.(ontology.Class)
			if !ok || c.String() >= other.String() {
				continue
			}
			e.emit(ontology.EquivalentClasses{Classes: []ontology.ClassExpression{c, other}})
		}
	}
	return e.inferences()
}

func disjointClassesEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, DisjointClassesEntailment)
	for _, c := range namedClasses(ont) {
		for _, d := range ont.DisjointClassesOf(c) {
			other, ok := d.(ontology.Class)
			if !ok || c.String() >= other.String() {
				continue
			}
			e.emit(ontology.DisjointClasses{Classes: []ontology.ClassExpression{c, other}})
		}
	}
	return e.inferences()
}

// =============================================================================
// Object Property Rules
// =============================================================================

func subObjectPropertyOfEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, SubObjectPropertyOfEntailment)
	for _, p := range objectProperties(ont) {
		equivalent := propertyKeys(ont.EquivalentObjectPropertiesOf(p))
		pairs := pairsOf(ont, p)
		for _, super := range ont.SuperObjectPropertiesOf(p) {
			if super == p {
				continue
			}
			if !equivalent[super.String()] {
				e.emit(ontology.SubObjectPropertyOf{Chain: []ontology.ObjectPropertyExpression{p}, Super: super})
			}
			for _, pair := range pairs {
				e.object(super, pair[0], pair[1])
			}
		}
	}
	return e.inferences()
}

func equivalentObjectPropertiesEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, EquivalentObjectPropertiesEntailment)
	for _, p := range objectProperties(ont) {
		pairs := pairsOf(ont, p)
		for _, eq := range ont.EquivalentObjectPropertiesOf(p) {
			if p.String() < eq.String() {
				e.emit(ontology.EquivalentObjectProperties{Properties: []ontology.ObjectPropertyExpression{p, eq}})
			}
			for _, pair := range pairs {
				e.object(eq, pair[0], pair[1])
			}
		}
	}
	return e.inferences()
}

func inverseObjectPropertiesEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, InverseObjectPropertiesEntailment)
	for _, ax := range ontology.AxiomsOf[ontology.InverseObjectProperties](ont, ontology.KindInverseObjectProperties) {
		for _, pair := range pairsOf(ont, ax.Left) {
			e.object(ax.Right, pair[1], pair[0])
		}
		for _, pair := range pairsOf(ont, ax.Right) {
			e.object(ax.Left, pair[1], pair[0])
		}
	}
	return e.inferences()
}

func symmetricObjectPropertyEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, SymmetricObjectPropertyEntailment)
	for _, p := range characteristic(ont, ontology.KindSymmetricObjectProperty) {
		for _, pair := range pairsOf(ont, p) {
			e.object(p, pair[1], pair[0])
		}
	}
	return e.inferences()
}

// transitiveObjectPropertyEntailment emits the full transitive closure of
// every transitive property.
func transitiveObjectPropertyEntailment(ctx context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, TransitiveObjectPropertyEntailment)
	for _, p := range characteristic(ont, ontology.KindTransitiveObjectProperty) {
		next := make(map[ontology.Term][]ontology.Term)
		var sources []ontology.Term
		for _, pair := range pairsOf(ont, p) {
			if _, ok := next[pair[0]]; !ok {
				sources = append(sources, pair[0])
			}
			next[pair[0]] = append(next[pair[0]], pair[1])
		}
		for _, s := range sources {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			visited := make(map[ontology.Term]bool)
			queue := append([]ontology.Term(nil), next[s]...)
			for len(queue) > 0 {
				t := queue[0]
				queue = queue[1:]
				if visited[t] {
					continue
				}
				visited[t] = true
				e.object(p, s, t)
				queue = append(queue, next[t]...)
			}
		}
	}
	return e.inferences()
}

func reflexiveObjectPropertyEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, ReflexiveObjectPropertyEntailment)
	properties := characteristic(ont, ontology.KindReflexiveObjectProperty)
	if len(properties) == 0 {
		return nil, nil
	}
	for _, ind := range ont.Individuals() {
		for _, p := range properties {
			e.object(p, ind, ind)
		}
	}
	return e.inferences()
}

func objectPropertyDomainEntailment(_ context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, ObjectPropertyDomainEntailment)
	for _, ax := range ontology.AxiomsOf[ontology.ObjectPropertyDomain](ont, ontology.KindObjectPropertyDomain) {
		subjects := ectx.IndividualsOf(ont, ontology.ObjectSomeValuesFrom{Property: ax.Property, Filler: ontology.Thing()})
		for _, s := range subjects {
			e.class(ax.Domain, s)
		}
	}
	return e.inferences()
}

func objectPropertyRangeEntailment(_ context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, ObjectPropertyRangeEntailment)
	for _, ax := range ontology.AxiomsOf[ontology.ObjectPropertyRange](ont, ontology.KindObjectPropertyRange) {
		objects := ectx.IndividualsOf(ont, ontology.ObjectSomeValuesFrom{Property: ax.Property.Invert(), Filler: ontology.Thing()})
		for _, o := range objects {
			e.class(ax.Range, o)
		}
	}
	return e.inferences()
}

// objectPropertyChainEntailment composes one SWRL rule per property chain:
// p1(?x0, ?x1) ^ ... ^ pn(?xn-1, ?xn) -> super(?x0, ?xn).
func objectPropertyChainEntailment(ctx context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, ObjectPropertyChainEntailment)
	for _, ax := range ontology.AxiomsOf[ontology.SubObjectPropertyOf](ont, ontology.KindSubObjectPropertyOf) {
		if !ax.IsChain() {
			continue
		}
		rule, err := chainRule(ax)
		if err != nil {
			continue
		}
		inferred, err := rule.Evaluate(ctx, ectx, ont)
		if err != nil {
			return nil, err
		}
		for _, inf := range inferred {
			e.emit(inf.Axiom)
		}
	}
	return e.inferences()
}

func chainRule(ax ontology.SubObjectPropertyOf) (*swrl.Rule, error) {
	variable := func(i int) swrl.Variable { return swrl.Variable(fmt.Sprintf("x%d", i)) }
	antecedent := make([]swrl.Atom, 0, len(ax.Chain))
	for i, p := range ax.Chain {
		atom, err := swrl.NewObjectPropertyAtom(p, variable(i), swrl.Var(string(variable(i+1))))
		if err != nil {
			return nil, err
		}
		antecedent = append(antecedent, atom)
	}
	head, err := swrl.NewObjectPropertyAtom(ax.Super, variable(0), swrl.Var(string(variable(len(ax.Chain)))))
	if err != nil {
		return nil, err
	}
	return swrl.NewRule(ObjectPropertyChainEntailment.String(), antecedent, []swrl.Atom{head})
}

func functionalObjectPropertyEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, FunctionalObjectPropertyEntailment)
	for _, p := range characteristic(ont, ontology.KindFunctionalObjectProperty) {
		mergeGroups(ont, e, groupPairs(pairsOf(ont, p), 0))
	}
	return e.inferences()
}

func inverseFunctionalObjectPropertyEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, InverseFunctionalObjectPropertyEntailment)
	for _, p := range characteristic(ont, ontology.KindInverseFunctionalObjectProperty) {
		mergeGroups(ont, e, groupPairs(pairsOf(ont, p), 1))
	}
	return e.inferences()
}

// groupPairs groups the opposite end of each pair by the end at position by.
func groupPairs(pairs [][2]ontology.Term, by int) [][]ontology.Term {
	index := make(map[ontology.Term]int)
	var groups [][]ontology.Term
	for _, pair := range pairs {
		key, value := pair[by], pair[1-by]
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = appendTerm(groups[i], value)
	}
	return groups
}

// mergeGroups infers sameness between the members of each group unless
// they are known to be different.
func mergeGroups(ont ontology.Ontology, e *emitter, groups [][]ontology.Term) {
	for _, group := range groups {
		for i, a := range group {
			different := termKeys(ont.DifferentIndividuals(a))
			for _, b := range group[i+1:] {
				if !different[b] {
					e.same(a, b)
				}
			}
		}
	}
}

// =============================================================================
// Data Property Rules
// =============================================================================

func subDataPropertyOfEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, SubDataPropertyOfEntailment)
	for _, p := range dataProperties(ont) {
		equivalent := termKeys(ont.EquivalentDataPropertiesOf(p))
		assertions := ont.DataAssertionsOf(p)
		for _, super := range ont.SuperDataPropertiesOf(p) {
			if super == p {
				continue
			}
			if !equivalent[super] {
				e.emit(ontology.SubDataPropertyOf{Sub: p, Super: super})
			}
			for _, dpa := range assertions {
				e.data(super, dpa.Source, dpa.Value)
			}
		}
	}
	return e.inferences()
}

func equivalentDataPropertiesEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, EquivalentDataPropertiesEntailment)
	for _, p := range dataProperties(ont) {
		assertions := ont.DataAssertionsOf(p)
		for _, eq := range ont.EquivalentDataPropertiesOf(p) {
			if p.String() < eq.String() {
				e.emit(ontology.EquivalentDataProperties{Properties: []ontology.Term{p, eq}})
			}
			for _, dpa := range assertions {
				e.data(eq, dpa.Source, dpa.Value)
			}
		}
	}
	return e.inferences()
}

func dataPropertyDomainEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, DataPropertyDomainEntailment)
	for _, ax := range ontology.AxiomsOf[ontology.DataPropertyDomain](ont, ontology.KindDataPropertyDomain) {
		properties := append([]ontology.Term{ax.Property}, ont.SubDataPropertiesOf(ax.Property)...)
		for _, p := range properties {
			for _, dpa := range ont.DataAssertionsOf(p) {
				e.class(ax.Domain, dpa.Source)
			}
		}
	}
	return e.inferences()
}

// =============================================================================
// Individual Rules
// =============================================================================

// sameIndividualEntailment closes the asserted SameIndividual axioms and
// copies class, object and data assertions across each same-as cluster.
func sameIndividualEntailment(ctx context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, SameIndividualEntailment)
	clusters := sameAsClusters(ont)
	if len(clusters) == 0 {
		return nil, nil
	}
	cluster := make(map[ontology.Term][]ontology.Term)
	for _, members := range clusters {
		for i, a := range members {
			cluster[a] = members
			for _, b := range members[i+1:] {
				e.same(a, b)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, ca := range ontology.AxiomsOf[ontology.ClassAssertion](ont, ontology.KindClassAssertion) {
		for _, other := range cluster[ca.Individual] {
			e.class(ca.Class, other)
		}
	}
	for _, opa := range ontology.AxiomsOf[ontology.ObjectPropertyAssertion](ont, ontology.KindObjectPropertyAssertion) {
		opa = opa.Calibrate()
		sources := withSelf(opa.Source, cluster[opa.Source])
		targets := withSelf(opa.Target, cluster[opa.Target])
		for _, s := range sources {
			for _, t := range targets {
				e.object(opa.Property, s, t)
			}
		}
	}
	for _, dpa := range ontology.AxiomsOf[ontology.DataPropertyAssertion](ont, ontology.KindDataPropertyAssertion) {
		for _, other := range cluster[dpa.Source] {
			e.data(dpa.Property, other, dpa.Value)
		}
	}
	return e.inferences()
}

// sameAsClusters groups the individuals of asserted SameIndividual axioms
// into connected clusters of two or more members.
func sameAsClusters(ont ontology.Ontology) [][]ontology.Term {
	parent := make(map[ontology.Term]ontology.Term)
	var order []ontology.Term
	var find func(ontology.Term) ontology.Term
	find = func(t ontology.Term) ontology.Term {
		p, ok := parent[t]
		if !ok {
			parent[t] = t
			order = append(order, t)
			return t
		}
		if p == t {
			return t
		}
		root := find(p)
		parent[t] = root
		return root
	}
	for _, ax := range ontology.AxiomsOf[ontology.SameIndividual](ont, ontology.KindSameIndividual) {
		if len(ax.Individuals) == 0 {
			continue
		}
		root := find(ax.Individuals[0])
		for _, ind := range ax.Individuals[1:] {
			if r := find(ind); r != root {
				parent[r] = root
			}
		}
	}

	index := make(map[ontology.Term]int)
	var clusters [][]ontology.Term
	for _, t := range order {
		root := find(t)
		i, ok := index[root]
		if !ok {
			i = len(clusters)
			index[root] = i
			clusters = append(clusters, nil)
		}
		clusters[i] = append(clusters[i], t)
	}
	out := clusters[:0]
	for _, c := range clusters {
		if len(c) > 1 {
			out = append(out, c)
		}
	}
	return out
}

func differentIndividualsEntailment(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, DifferentIndividualsEntailment)
	for _, ind := range ont.Individuals() {
		for _, other := range ont.DifferentIndividuals(ind) {
			if ind.String() < other.String() {
				e.emit(ontology.DifferentIndividuals{Individuals: []ontology.Term{ind, other}})
			}
		}
	}
	return e.inferences()
}

// =============================================================================
// Restriction Rules
// =============================================================================

func hasValueEntailment(_ context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, HasValueEntailment)
	forEachRestriction(ectx, ont, func(restriction ontology.ClassExpression, members []ontology.Term) {
		switch r := restriction.(type) {
		case ontology.ObjectHasValue:
			for _, m := range members {
				e.object(r.Property, m, r.Individual)
			}
		case ontology.DataHasValue:
			for _, m := range members {
				e.data(r.Property, m, r.Literal)
			}
		}
	})
	return e.inferences()
}

func hasSelfEntailment(_ context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, HasSelfEntailment)
	forEachRestriction(ectx, ont, func(restriction ontology.ClassExpression, members []ontology.Term) {
		if r, ok := restriction.(ontology.ObjectHasSelf); ok {
			for _, m := range members {
				e.object(r.Property, m, m)
			}
		}
	})
	return e.inferences()
}

// forEachRestriction visits every class expression that some class is
// asserted to be subsumed by or equivalent to, with the members of that
// class.
func forEachRestriction(ectx *swrl.EvaluationContext, ont ontology.Ontology, visit func(ontology.ClassExpression, []ontology.Term)) {
	for _, ax := range ontology.AxiomsOf[ontology.SubClassOf](ont, ontology.KindSubClassOf) {
		visit(ax.Super, ectx.IndividualsOf(ont, ax.Sub))
	}
	for _, ax := range ontology.AxiomsOf[ontology.EquivalentClasses](ont, ontology.KindEquivalentClasses) {
		for i, restriction := range ax.Classes {
			for j, other := range ax.Classes {
				if i != j {
					visit(restriction, ectx.IndividualsOf(ont, other))
				}
			}
		}
	}
}

// hasKeyEntailment infers that two named members of a keyed class sharing
// a value for every key property are the same individual.
func hasKeyEntailment(ctx context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]swrl.Inference, error) {
	e := newEmitter(ont, HasKeyEntailment)
	for _, ax := range ontology.AxiomsOf[ontology.HasKey](ont, ontology.KindHasKey) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var keyed []ontology.Term
		var values [][]map[ontology.Term]bool
		for _, m := range ectx.IndividualsOf(ont, ax.Class) {
			if !m.IsIRI() {
				continue
			}
			if v, ok := keyValues(ont, ax, m); ok {
				keyed = append(keyed, m)
				values = append(values, v)
			}
		}
		for i := range keyed {
			different := termKeys(ont.DifferentIndividuals(keyed[i]))
			for j := i + 1; j < len(keyed); j++ {
				if !different[keyed[j]] && sharesEveryKey(values[i], values[j]) {
					e.same(keyed[i], keyed[j])
				}
			}
		}
	}
	return e.inferences()
}

// keyValues returns, per key property, the values of individual. It
// reports false when some key property has no value.
func keyValues(ont ontology.Ontology, ax ontology.HasKey, individual ontology.Term) ([]map[ontology.Term]bool, bool) {
	out := make([]map[ontology.Term]bool, 0, len(ax.ObjectProperties)+len(ax.DataProperties))
	for _, p := range ax.ObjectProperties {
		set := make(map[ontology.Term]bool)
		for _, pair := range pairsOf(ont, p) {
			if pair[0] == individual {
				set[pair[1]] = true
			}
		}
		if len(set) == 0 {
			return nil, false
		}
		out = append(out, set)
	}
	for _, p := range ax.DataProperties {
		set := make(map[ontology.Term]bool)
		for _, dpa := range ont.DataAssertionsOf(p) {
			if dpa.Source == individual {
				set[dpa.Value] = true
			}
		}
		if len(set) == 0 {
			return nil, false
		}
		out = append(out, set)
	}
	return out, true
}

func sharesEveryKey(a, b []map[ontology.Term]bool) bool {
	for i := range a {
		shared := false
		for v := range a[i] {
			if b[i][v] {
				shared = true
				break
			}
		}
		if !shared {
			return false
		}
	}
	return true
}

// =============================================================================
// Signature Helpers
// =============================================================================

// namedClasses returns the named classes mentioned by the class axioms and
// class assertions of ont, owl:Thing excluded.
func namedClasses(ont ontology.Ontology) []ontology.Class {
	seen := make(map[ontology.Class]bool)
	var out []ontology.Class
	add := func(expr ontology.ClassExpression) {
		c, ok := expr.(ontology.Class)
		if !ok || c.IsThing() || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
	}
	for _, d := range ontology.AxiomsOf[ontology.Declaration](ont, ontology.KindDeclaration) {
		if d.Entity == ontology.EntityClass {
			add(ontology.Class{IRI: d.IRI})
		}
	}
	for _, ca := range ontology.AxiomsOf[ontology.ClassAssertion](ont, ontology.KindClassAssertion) {
		add(ca.Class)
	}
	for _, ax := range ontology.AxiomsOf[ontology.SubClassOf](ont, ontology.KindSubClassOf) {
		add(ax.Sub)
		add(ax.Super)
	}
	for _, ax := range ontology.AxiomsOf[ontology.EquivalentClasses](ont, ontology.KindEquivalentClasses) {
		for _, c := range ax.Classes {
			add(c)
		}
	}
	for _, ax := range ontology.AxiomsOf[ontology.DisjointClasses](ont, ontology.KindDisjointClasses) {
		for _, c := range ax.Classes {
			add(c)
		}
	}
	return out
}

// definedClasses returns the named classes declared equivalent to a
// complex class expression.
func definedClasses(ont ontology.Ontology) []ontology.Class {
	seen := make(map[ontology.Class]bool)
	var out []ontology.Class
	for _, ax := range ontology.AxiomsOf[ontology.EquivalentClasses](ont, ontology.KindEquivalentClasses) {
		hasComplex := false
		for _, c := range ax.Classes {
			if _, ok := c.(ontology.Class); !ok {
				hasComplex = true
			}
		}
		if !hasComplex {
			continue
		}
		for _, c := range ax.Classes {
			if named, ok := c.(ontology.Class); ok && !named.IsThing() && !seen[named] {
				seen[named] = true
				out = append(out, named)
			}
		}
	}
	return out
}

// objectProperties returns the named object properties used by ont.
func objectProperties(ont ontology.Ontology) []ontology.ObjectPropertyExpression {
	seen := make(map[ontology.Term]bool)
	var out []ontology.ObjectPropertyExpression
	add := func(p ontology.ObjectPropertyExpression) {
		if p.IsNull() || seen[p.Property] {
			return
		}
		seen[p.Property] = true
		out = append(out, ontology.ObjectPropertyExpression{Property: p.Property})
	}
	for _, d := range ontology.AxiomsOf[ontology.Declaration](ont, ontology.KindDeclaration) {
		if d.Entity == ontology.EntityObjectProperty {
			add(ontology.ObjectPropertyExpression{Property: d.IRI})
		}
	}
	for _, opa := range ontology.AxiomsOf[ontology.ObjectPropertyAssertion](ont, ontology.KindObjectPropertyAssertion) {
		add(opa.Property)
	}
	for _, ax := range ontology.AxiomsOf[ontology.SubObjectPropertyOf](ont, ontology.KindSubObjectPropertyOf) {
		for _, p := range ax.Chain {
			add(p)
		}
		add(ax.Super)
	}
	for _, ax := range ontology.AxiomsOf[ontology.EquivalentObjectProperties](ont, ontology.KindEquivalentObjectProperties) {
		for _, p := range ax.Properties {
			add(p)
		}
	}
	for _, ax := range ontology.AxiomsOf[ontology.InverseObjectProperties](ont, ontology.KindInverseObjectProperties) {
		add(ax.Left)
		add(ax.Right)
	}
	return out
}

// dataProperties returns the data properties used by ont.
func dataProperties(ont ontology.Ontology) []ontology.Term {
	seen := make(map[ontology.Term]bool)
	var out []ontology.Term
	add := func(p ontology.Term) {
		if p.IsNull() || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}
	for _, d := range ontology.AxiomsOf[ontology.Declaration](ont, ontology.KindDeclaration) {
		if d.Entity == ontology.EntityDataProperty {
			add(d.IRI)
		}
	}
	for _, dpa := range ontology.AxiomsOf[ontology.DataPropertyAssertion](ont, ontology.KindDataPropertyAssertion) {
		add(dpa.Property)
	}
	for _, ax := range ontology.AxiomsOf[ontology.SubDataPropertyOf](ont, ontology.KindSubDataPropertyOf) {
		add(ax.Sub)
		add(ax.Super)
	}
	for _, ax := range ontology.AxiomsOf[ontology.EquivalentDataProperties](ont, ontology.KindEquivalentDataProperties) {
		for _, p := range ax.Properties {
			add(p)
		}
	}
	return out
}

// characteristic returns the properties carrying the characteristic kind.
func characteristic(ont ontology.Ontology, kind ontology.AxiomKind) []ontology.ObjectPropertyExpression {
	var out []ontology.ObjectPropertyExpression
	for _, ax := range ontology.AxiomsOf[ontology.ObjectPropertyCharacteristic](ont, kind) {
		out = append(out, ax.Property)
	}
	return out
}

// pairsOf returns the (source, target) pairs asserted for the property
// expression, oriented by the expression.
func pairsOf(ont ontology.Ontology, p ontology.ObjectPropertyExpression) [][2]ontology.Term {
	assertions := ont.ObjectAssertionsOf(p.Property)
	out := make([][2]ontology.Term, 0, len(assertions))
	for _, opa := range assertions {
		if p.Inverse {
			out = append(out, [2]ontology.Term{opa.Target, opa.Source})
		} else {
			out = append(out, [2]ontology.Term{opa.Source, opa.Target})
		}
	}
	return out
}

func orderedPair(a, b ontology.Term) (ontology.Term, ontology.Term) {
	if b.String() < a.String() {
		return b, a
	}
	return a, b
}

func withSelf(t ontology.Term, cluster []ontology.Term) []ontology.Term {
	if len(cluster) == 0 {
		return []ontology.Term{t}
	}
	return cluster
}

func appendTerm(terms []ontology.Term, t ontology.Term) []ontology.Term {
	for _, x := range terms {
		if x == t {
			return terms
		}
	}
	return append(terms, t)
}

func termKeys(terms []ontology.Term) map[ontology.Term]bool {
	out := make(map[ontology.Term]bool, len(terms))
	for _, t := range terms {
		out[t] = true
	}
	return out
}

func expressionKeys(exprs []ontology.ClassExpression) map[string]bool {
	out := make(map[string]bool, len(exprs))
	for _, e := range exprs {
		out[e.String()] = true
	}
	return out
}

func propertyKeys(properties []ontology.ObjectPropertyExpression) map[string]bool {
	out := make(map[string]bool, len(properties))
	for _, p := range properties {
		out[p.String()] = true
	}
	return out
}
