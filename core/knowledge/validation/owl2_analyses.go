package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

// analysisFunc is the direct-dispatch implementation of a standard
// analysis. It reads the ontology snapshot and never mutates it.
type analysisFunc func(ctx context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error)

var owl2Analyses = [owl2RuleCount]analysisFunc{
	ClassAssertionAnalysis:                  classAssertionAnalysis,
	DifferentIndividualsAnalysis:            differentIndividualsAnalysis,
	SubClassOfAnalysis:                      subClassOfAnalysis,
	FunctionalObjectPropertyAnalysis:        functionalObjectPropertyAnalysis,
	FunctionalDataPropertyAnalysis:          functionalDataPropertyAnalysis,
	InverseFunctionalObjectPropertyAnalysis: inverseFunctionalObjectPropertyAnalysis,
	AsymmetricObjectPropertyAnalysis:        asymmetricObjectPropertyAnalysis,
	IrreflexiveObjectPropertyAnalysis:       irreflexiveObjectPropertyAnalysis,
	NegativeObjectAssertionsAnalysis:        negativeObjectAssertionsAnalysis,
	NegativeDataAssertionsAnalysis:          negativeDataAssertionsAnalysis,
	DisjointPropertiesAnalysis:              disjointPropertiesAnalysis,
	ObjectPropertyDomainAnalysis:            objectPropertyDomainAnalysis,
	ObjectPropertyRangeAnalysis:             objectPropertyRangeAnalysis,
	ThingNothingAnalysis:                    thingNothingAnalysis,
	TermsDeprecationAnalysis:                termsDeprecationAnalysis,
	TermsDisjointnessAnalysis:               termsDisjointnessAnalysis,
}

// =============================================================================
// Collector
// =============================================================================

// collector gathers the issues of one analysis, dropping repeats.
type collector struct {
	rule string
	seen map[string]bool
	out  []Issue
}

func newCollector(rule StandardRule) *collector {
	return &collector{rule: rule.String(), seen: make(map[string]bool)}
}

func (c *collector) add(severity Severity, description, suggestion string) {
	issue := Issue{RuleName: c.rule, Severity: severity, Description: description, Suggestion: suggestion}
	key := issue.Key()
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.out = append(c.out, issue)
}

func (c *collector) issues() ([]Issue, error) {
	return c.out, nil
}

// =============================================================================
// Individual Analyses
// =============================================================================

// classAssertionAnalysis finds individuals that are members of two
// disjoint classes. Each individual is reported once, naming the first
// clashing pair in lexical order.
func classAssertionAnalysis(_ context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(ClassAssertionAnalysis)
	clashes := make(map[ontology.Term]string)
	var order []ontology.Term
	for _, ca := range ontology.AxiomsOf[ontology.ClassAssertion](ont, ontology.KindClassAssertion) {
		for _, d := range ont.DisjointClassesOf(ca.Class) {
			if !isMember(ectx, ont, d, ca.Individual) {
				continue
			}
			a, b := sortedPair(classLabel(ca.Class), classLabel(d))
			pair := a + " and " + b
			current, seen := clashes[ca.Individual]
			if !seen {
				order = append(order, ca.Individual)
			}
			if !seen || pair < current {
				clashes[ca.Individual] = pair
			}
		}
	}
	for _, ind := range order {
		c.add(SeverityError,
			fmt.Sprintf("Individual %s is a member of the disjoint classes %s", label(ind), clashes[ind]),
			"Remove one of the class assertions or the disjointness between the classes")
	}
	return c.issues()
}

// differentIndividualsAnalysis finds individuals that are declared both
// the same and different.
func differentIndividualsAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(DifferentIndividualsAnalysis)
	for _, ax := range ontology.AxiomsOf[ontology.DifferentIndividuals](ont, ontology.KindDifferentIndividuals) {
		seen := make(map[ontology.Term]bool)
		for _, ind := range ax.Individuals {
			if seen[ind] {
				c.add(SeverityError,
					fmt.Sprintf("Individual %s is declared different from itself", label(ind)),
					"Remove the repeated individual from the DifferentIndividuals axiom")
			}
			seen[ind] = true
		}
	}
	for _, ind := range ont.Individuals() {
		same := termSet(ont.SameIndividuals(ind))
		for _, other := range ont.DifferentIndividuals(ind) {
			if !same[other] {
				continue
			}
			a, b := sortedPair(label(ind), label(other))
			c.add(SeverityError,
				fmt.Sprintf("Individuals %s and %s are declared both the same and different", a, b),
				"Remove either the SameIndividual or the DifferentIndividuals axiom")
		}
	}
	return c.issues()
}

// =============================================================================
// Class Analyses
// =============================================================================

// subClassOfAnalysis finds subclass cycles among named classes, classes
// subsumed by two disjoint classes, and members of such classes.
func subClassOfAnalysis(ctx context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(SubClassOfAnalysis)
	disjoint := disjointClassSets(ont)

	for _, cycle := range subClassCycles(ont) {
		members := make(map[string]bool, len(cycle))
		for _, m := range cycle {
			members[m] = true
		}
		names := strings.Join(cycle, ", ")
		if _, _, clash := disjointPair(disjoint, members); clash {
			c.add(SeverityError,
				fmt.Sprintf("Classes %s form a subclass cycle through disjoint classes", names),
				"Break the cycle or remove the disjointness")
			continue
		}
		c.add(SeverityWarning,
			fmt.Sprintf("Classes %s form a subclass cycle and are therefore equivalent", names),
			"Declare the classes equivalent or remove one of the SubClassOf axioms")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, cls := range namedClasses(ont) {
		self := map[string]bool{classLabel(cls): true}
		for _, sup := range ont.SuperClassesOf(cls) {
			self[classLabel(sup)] = true
		}
		a, b, clash := disjointPair(disjoint, self)
		if !clash {
			continue
		}
		if members := ectx.IndividualsOf(ont, cls); len(members) > 0 {
			c.add(SeverityError,
				fmt.Sprintf("Class %s has members but is subsumed by the disjoint classes %s and %s", classLabel(cls), a, b),
				"Remove the class assertions or revise the class hierarchy")
			continue
		}
		c.add(SeverityWarning,
			fmt.Sprintf("Class %s is unsatisfiable: it is subsumed by the disjoint classes %s and %s", classLabel(cls), a, b),
			"Revise the class hierarchy or the disjointness axioms")
	}
	return c.issues()
}

// subClassCycles returns the strongly connected groups of the asserted
// named subclass graph, each sorted by label.
func subClassCycles(ont ontology.Ontology) [][]string {
	g := simple.NewDirectedGraph()
	ids := make(map[string]int64)
	var labels []string
	node := func(name string) int64 {
		if id, ok := ids[name]; ok {
			return id
		}
		id := int64(len(labels))
		ids[name] = id
		labels = append(labels, name)
		g.AddNode(simple.Node(id))
		return id
	}
	for _, ax := range ontology.AxiomsOf[ontology.SubClassOf](ont, ontology.KindSubClassOf) {
		sub, ok1 := ax.Sub.(ontology.Class)
		super, ok2 := ax.Super.(ontology.Class)
		if !ok1 || !ok2 || sub == super {
			continue
		}
		from, to := node(classLabel(sub)), node(classLabel(super))
		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	var cycles [][]string
	for _, component := range topo.TarjanSCC(g) {
		if len(component) < 2 {
			continue
		}
		names := make([]string, len(component))
		for i, n := range component {
			names[i] = labels[n.ID()]
		}
		sort.Strings(names)
		cycles = append(cycles, names)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// disjointClassSets returns the named members of every DisjointClasses axiom.
func disjointClassSets(ont ontology.Ontology) [][]string {
	var out [][]string
	for _, ax := range ontology.AxiomsOf[ontology.DisjointClasses](ont, ontology.KindDisjointClasses) {
		var set []string
		for _, c := range ax.Classes {
			if named, ok := c.(ontology.Class); ok {
				set = append(set, classLabel(named))
			}
		}
		out = append(out, set)
	}
	return out
}

// disjointPair returns the first two classes of within declared disjoint
// by the same axiom.
func disjointPair(sets [][]string, within map[string]bool) (string, string, bool) {
	for _, set := range sets {
		var found []string
		for _, c := range set {
			if within[c] {
				found = append(found, c)
			}
		}
		if len(found) >= 2 {
			a, b := sortedPair(found[0], found[1])
			return a, b, true
		}
	}
	return "", "", false
}

// thingNothingAnalysis finds members of owl:Nothing and axioms that
// collapse or narrow owl:Thing.
func thingNothingAnalysis(_ context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(ThingNothingAnalysis)
	for _, ind := range ectx.IndividualsOf(ont, ontology.Nothing()) {
		c.add(SeverityError,
			fmt.Sprintf("Individual %s is a member of owl:Nothing", label(ind)),
			"Remove the class assertions that make the individual a member of owl:Nothing")
	}
	for _, sup := range ont.SuperClassesOf(ontology.Thing()) {
		named, ok := sup.(ontology.Class)
		switch {
		case ok && named.IsNothing():
			c.add(SeverityError, "owl:Thing is subsumed by owl:Nothing", "Remove the axiom equating owl:Thing with owl:Nothing")
		case ok && !named.IsThing():
			c.add(SeverityWarning,
				fmt.Sprintf("owl:Thing is subsumed by %s, so every individual is a member of it", classLabel(named)),
				"Remove the SubClassOf axiom whose subclass is owl:Thing")
		}
	}
	return c.issues()
}

// =============================================================================
// Object Property Analyses
// =============================================================================

// functionalObjectPropertyAnalysis finds functional properties relating
// one individual to two individuals known to differ.
func functionalObjectPropertyAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(FunctionalObjectPropertyAnalysis)
	for _, p := range characteristic(ont, ontology.KindFunctionalObjectProperty) {
		for source, targets := range groupPairs(pairsOf(ont, p), 0) {
			for _, pair := range differentPairs(ont, targets) {
				c.add(SeverityError,
					fmt.Sprintf("Functional property %s relates %s to the different individuals %s and %s",
						propertyLabel(p), label(source), label(pair[0]), label(pair[1])),
					"Remove one of the assertions or the DifferentIndividuals axiom")
			}
		}
	}
	return c.issues()
}

// inverseFunctionalObjectPropertyAnalysis finds inverse functional
// properties relating two individuals known to differ to one individual.
func inverseFunctionalObjectPropertyAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(InverseFunctionalObjectPropertyAnalysis)
	for _, p := range characteristic(ont, ontology.KindInverseFunctionalObjectProperty) {
		for target, sources := range groupPairs(pairsOf(ont, p), 1) {
			for _, pair := range differentPairs(ont, sources) {
				c.add(SeverityError,
					fmt.Sprintf("Inverse functional property %s relates the different individuals %s and %s to %s",
						propertyLabel(p), label(pair[0]), label(pair[1]), label(target)),
					"Remove one of the assertions or the DifferentIndividuals axiom")
			}
		}
	}
	return c.issues()
}

// asymmetricObjectPropertyAnalysis finds asymmetric properties asserted in
// both directions or reflexively. Each direction is reported.
func asymmetricObjectPropertyAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(AsymmetricObjectPropertyAnalysis)
	for _, p := range characteristic(ont, ontology.KindAsymmetricObjectProperty) {
		pairs := pairsOf(ont, p)
		set := make(map[[2]ontology.Term]bool, len(pairs))
		for _, pair := range pairs {
			set[pair] = true
		}
		for _, pair := range pairs {
			switch {
			case pair[0] == pair[1]:
				c.add(SeverityError,
					fmt.Sprintf("Asymmetric property %s relates %s to itself", propertyLabel(p), label(pair[0])),
					"Remove the reflexive assertion")
			case set[[2]ontology.Term{pair[1], pair[0]}]:
				c.add(SeverityError,
					fmt.Sprintf("Asymmetric property %s relates %s to %s and back", propertyLabel(p), label(pair[0]), label(pair[1])),
					"Remove one of the two assertions")
			}
		}
	}
	return c.issues()
}

// irreflexiveObjectPropertyAnalysis finds irreflexive properties relating
// an individual to itself or to a same-as individual.
func irreflexiveObjectPropertyAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(IrreflexiveObjectPropertyAnalysis)
	for _, p := range characteristic(ont, ontology.KindIrreflexiveObjectProperty) {
		for _, pair := range pairsOf(ont, p) {
			if pair[0] == pair[1] || termSet(ont.SameIndividuals(pair[0]))[pair[1]] {
				c.add(SeverityError,
					fmt.Sprintf("Irreflexive property %s relates %s to itself", propertyLabel(p), label(pair[0])),
					"Remove the assertion or the SameIndividual axiom")
			}
		}
	}
	return c.issues()
}

// negativeObjectAssertionsAnalysis finds negative object property
// assertions contradicted by an assertion of the property or of one of its
// subproperties.
func negativeObjectAssertionsAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(NegativeObjectAssertionsAnalysis)
	for _, ax := range ontology.AxiomsOf[ontology.NegativeObjectPropertyAssertion](ont, ontology.KindNegativeObjectPropertyAssertion) {
		neg := ax.Calibrate()
		properties := append([]ontology.ObjectPropertyExpression{neg.Property}, ont.SubObjectPropertiesOf(neg.Property)...)
		for _, q := range properties {
			for _, pair := range pairsOf(ont, q) {
				if pair[0] == neg.Source && pair[1] == neg.Target {
					c.add(SeverityError,
						fmt.Sprintf("Individuals %s and %s are related by %s although a negative assertion of %s denies it",
							label(neg.Source), label(neg.Target), propertyLabel(q), propertyLabel(neg.Property)),
						"Remove the assertion or the negative assertion")
				}
			}
		}
	}
	return c.issues()
}

// disjointPropertiesAnalysis finds pairs related by two disjoint object
// properties or two disjoint data properties.
func disjointPropertiesAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(DisjointPropertiesAnalysis)
	for _, ax := range ontology.AxiomsOf[ontology.DisjointObjectProperties](ont, ontology.KindDisjointObjectProperties) {
		for i, p := range ax.Properties {
			pairs := make(map[[2]ontology.Term]bool)
			for _, pair := range pairsOf(ont, p) {
				pairs[pair] = true
			}
			for _, q := range ax.Properties[i+1:] {
				for _, pair := range pairsOf(ont, q) {
					if pairs[pair] {
						c.add(SeverityError,
							fmt.Sprintf("Individuals %s and %s are related by the disjoint properties %s and %s",
								label(pair[0]), label(pair[1]), propertyLabel(p), propertyLabel(q)),
							"Remove one of the assertions or the disjointness between the properties")
					}
				}
			}
		}
	}
	for _, ax := range ontology.AxiomsOf[ontology.DisjointDataProperties](ont, ontology.KindDisjointDataProperties) {
		for i, p := range ax.Properties {
			values := make(map[[2]ontology.Term]bool)
			for _, dpa := range ont.DataAssertionsOf(p) {
				values[[2]ontology.Term{dpa.Source, dpa.Value}] = true
			}
			for _, q := range ax.Properties[i+1:] {
				for _, dpa := range ont.DataAssertionsOf(q) {
					if values[[2]ontology.Term{dpa.Source, dpa.Value}] {
						c.add(SeverityError,
							fmt.Sprintf("Individual %s has the value %s for the disjoint data properties %s and %s",
								label(dpa.Source), dpa.Value, label(p), label(q)),
							"Remove one of the assertions or the disjointness between the properties")
					}
				}
			}
		}
	}
	return c.issues()
}

// objectPropertyDomainAnalysis finds subjects of a property that belong to
// a class disjoint with its domain.
func objectPropertyDomainAnalysis(_ context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(ObjectPropertyDomainAnalysis)
	for _, ax := range ontology.AxiomsOf[ontology.ObjectPropertyDomain](ont, ontology.KindObjectPropertyDomain) {
		subjects := ectx.IndividualsOf(ont, ontology.ObjectSomeValuesFrom{Property: ax.Property, Filler: ontology.Thing()})
		checkDisjointMembers(c, ectx, ont, subjects, ax.Domain, func(ind ontology.Term, d ontology.ClassExpression) string {
			return fmt.Sprintf("Individual %s is the subject of %s but belongs to %s, disjoint with the domain %s",
				label(ind), propertyLabel(ax.Property), classLabel(d), classLabel(ax.Domain))
		})
	}
	return c.issues()
}

// objectPropertyRangeAnalysis finds objects of a property that belong to
// a class disjoint with its range.
func objectPropertyRangeAnalysis(_ context.Context, ectx *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(ObjectPropertyRangeAnalysis)
	for _, ax := range ontology.AxiomsOf[ontology.ObjectPropertyRange](ont, ontology.KindObjectPropertyRange) {
		objects := ectx.IndividualsOf(ont, ontology.ObjectSomeValuesFrom{Property: ax.Property.Invert(), Filler: ontology.Thing()})
		checkDisjointMembers(c, ectx, ont, objects, ax.Range, func(ind ontology.Term, d ontology.ClassExpression) string {
			return fmt.Sprintf("Individual %s is the object of %s but belongs to %s, disjoint with the range %s",
				label(ind), propertyLabel(ax.Property), classLabel(d), classLabel(ax.Range))
		})
	}
	return c.issues()
}

func checkDisjointMembers(c *collector, ectx *swrl.EvaluationContext, ont ontology.Ontology, individuals []ontology.Term, class ontology.ClassExpression, describe func(ontology.Term, ontology.ClassExpression) string) {
	disjoint := ont.DisjointClassesOf(class)
	for _, ind := range individuals {
		for _, d := range disjoint {
			if isMember(ectx, ont, d, ind) {
				c.add(SeverityError, describe(ind, d), "Remove the assertion or revise the class membership of the individual")
			}
		}
	}
}

// =============================================================================
// Data Property Analyses
// =============================================================================

// functionalDataPropertyAnalysis finds functional data properties with two
// different values for one individual.
func functionalDataPropertyAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(FunctionalDataPropertyAnalysis)
	for _, ax := range ontology.AxiomsOf[ontology.FunctionalDataProperty](ont, ontology.KindFunctionalDataProperty) {
		values := make(map[ontology.Term][]ontology.Term)
		var sources []ontology.Term
		for _, dpa := range ont.DataAssertionsOf(ax.Property) {
			if _, ok := values[dpa.Source]; !ok {
				sources = append(sources, dpa.Source)
			}
			values[dpa.Source] = append(values[dpa.Source], dpa.Value)
		}
		for _, s := range sources {
			vs := values[s]
			for i := range vs {
				for j := i + 1; j < len(vs); j++ {
					if sameValue(vs[i], vs[j]) {
						continue
					}
					a, b := sortedPair(vs[i].String(), vs[j].String())
					c.add(SeverityError,
						fmt.Sprintf("Functional data property %s gives %s the different values %s and %s", label(ax.Property), label(s), a, b),
						"Keep a single value for the property")
				}
			}
		}
	}
	return c.issues()
}

// negativeDataAssertionsAnalysis finds negative data property assertions
// contradicted by an assertion of the property or of one of its
// subproperties.
func negativeDataAssertionsAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(NegativeDataAssertionsAnalysis)
	for _, neg := range ontology.AxiomsOf[ontology.NegativeDataPropertyAssertion](ont, ontology.KindNegativeDataPropertyAssertion) {
		properties := append([]ontology.Term{neg.Property}, ont.SubDataPropertiesOf(neg.Property)...)
		for _, q := range properties {
			for _, dpa := range ont.DataAssertionsOf(q) {
				if dpa.Source == neg.Source && sameValue(dpa.Value, neg.Value) {
					c.add(SeverityError,
						fmt.Sprintf("Individual %s has the value %s for %s although a negative assertion of %s denies it",
							label(neg.Source), neg.Value, label(q), label(neg.Property)),
						"Remove the assertion or the negative assertion")
				}
			}
		}
	}
	return c.issues()
}

// =============================================================================
// Term Analyses
// =============================================================================

// termsDeprecationAnalysis finds terms annotated owl:deprecated that are
// still used by logical axioms.
func termsDeprecationAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(TermsDeprecationAnalysis)
	var deprecated []ontology.Term
	for _, aa := range ont.AnnotationAssertionsOf(ontology.NewIRI(vocabulary.OwlDeprecated)) {
		if v := strings.ToLower(aa.Value.Value()); v == "true" || v == "1" {
			deprecated = append(deprecated, aa.Subject)
		}
	}
	if len(deprecated) == 0 {
		return nil, nil
	}

	usage := make(map[ontology.Term]int, len(deprecated))
	for _, kind := range ontology.AllAxiomKinds() {
		if kind == ontology.KindDeclaration || kind == ontology.KindAnnotationAssertion {
			continue
		}
		for _, ax := range ont.Axioms(kind) {
			text := ax.String()
			for _, term := range deprecated {
				if strings.Contains(text, term.String()) {
					usage[term]++
				}
			}
		}
	}
	for _, term := range deprecated {
		if n := usage[term]; n > 0 {
			c.add(SeverityWarning,
				fmt.Sprintf("Deprecated term %s is used by %d axioms", label(term), n),
				"Replace the term with its successor")
		}
	}
	return c.issues()
}

// termsDisjointnessAnalysis finds IRIs used as more than one kind of
// property, or as both a class and a datatype.
func termsDisjointnessAnalysis(_ context.Context, _ *swrl.EvaluationContext, ont ontology.Ontology) ([]Issue, error) {
	c := newCollector(TermsDisjointnessAnalysis)
	uses := make(map[ontology.Term]map[ontology.EntityType]bool)
	var terms []ontology.Term
	use := func(t ontology.Term, entity ontology.EntityType) {
		if t.IsNull() {
			return
		}
		set, ok := uses[t]
		if !ok {
			set = make(map[ontology.EntityType]bool)
			uses[t] = set
			terms = append(terms, t)
		}
		set[entity] = true
	}
	for _, d := range ontology.AxiomsOf[ontology.Declaration](ont, ontology.KindDeclaration) {
		use(d.IRI, d.Entity)
	}
	for _, opa := range ontology.AxiomsOf[ontology.ObjectPropertyAssertion](ont, ontology.KindObjectPropertyAssertion) {
		use(opa.Property.Property, ontology.EntityObjectProperty)
	}
	for _, dpa := range ontology.AxiomsOf[ontology.DataPropertyAssertion](ont, ontology.KindDataPropertyAssertion) {
		use(dpa.Property, ontology.EntityDataProperty)
	}
	for _, aa := range ontology.AxiomsOf[ontology.AnnotationAssertion](ont, ontology.KindAnnotationAssertion) {
		use(aa.Property, ontology.EntityAnnotationProperty)
	}

	exclusive := [][]ontology.EntityType{
		{ontology.EntityObjectProperty, ontology.EntityDataProperty, ontology.EntityAnnotationProperty},
		{ontology.EntityClass, ontology.EntityDatatype},
	}
	for _, t := range terms {
		for _, group := range exclusive {
			var found []string
			for _, entity := range group {
				if uses[t][entity] {
					found = append(found, string(entity))
				}
			}
			if len(found) > 1 {
				c.add(SeverityError,
					fmt.Sprintf("Term %s is used as %s", label(t), strings.Join(found, " and ")),
					"Use distinct IRIs for entities of different kinds")
			}
		}
	}
	return c.issues()
}

// =============================================================================
// Helpers
// =============================================================================

// namedClasses returns the named classes mentioned by class axioms and
// class assertions, owl:Thing excluded.
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
	return out
}

func characteristic(ont ontology.Ontology, kind ontology.AxiomKind) []ontology.ObjectPropertyExpression {
	var out []ontology.ObjectPropertyExpression
	for _, ax := range ontology.AxiomsOf[ontology.ObjectPropertyCharacteristic](ont, kind) {
		out = append(out, ax.Property)
	}
	return out
}

// pairsOf returns the asserted (source, target) pairs of the property
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

// groupPairs maps the end at position by to the distinct opposite ends.
func groupPairs(pairs [][2]ontology.Term, by int) map[ontology.Term][]ontology.Term {
	out := make(map[ontology.Term][]ontology.Term)
	for _, pair := range pairs {
		key, value := pair[by], pair[1-by]
		if !containsTerm(out[key], value) {
			out[key] = append(out[key], value)
		}
	}
	return out
}

// differentPairs returns the pairs of terms known to be different.
func differentPairs(ont ontology.Ontology, terms []ontology.Term) [][2]ontology.Term {
	var out [][2]ontology.Term
	for i, a := range terms {
		different := termSet(ont.DifferentIndividuals(a))
		for _, b := range terms[i+1:] {
			if different[b] {
				if b.String() < a.String() {
					out = append(out, [2]ontology.Term{b, a})
				} else {
					out = append(out, [2]ontology.Term{a, b})
				}
			}
		}
	}
	return out
}

func isMember(ectx *swrl.EvaluationContext, ont ontology.Ontology, class ontology.ClassExpression, individual ontology.Term) bool {
	return containsTerm(ectx.IndividualsOf(ont, class), individual)
}

// sameValue reports whether two literals denote the same value.
func sameValue(a, b ontology.Term) bool {
	if a == b {
		return true
	}
	_, an := a.Numeric()
	_, bn := b.Numeric()
	return an && bn && a.Compare(b) == 0
}

func containsTerm(terms []ontology.Term, t ontology.Term) bool {
	for _, x := range terms {
		if x == t {
			return true
		}
	}
	return false
}

func termSet(terms []ontology.Term) map[ontology.Term]bool {
	out := make(map[ontology.Term]bool, len(terms))
	for _, t := range terms {
		out[t] = true
	}
	return out
}

func sortedPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// label renders a term for issue text: IRIs bare, everything else in
// functional syntax.
func label(t ontology.Term) string {
	if t.IsIRI() {
		return t.Value()
	}
	return t.String()
}

func classLabel(c ontology.ClassExpression) string {
	if named, ok := c.(ontology.Class); ok {
		return label(named.IRI)
	}
	return c.String()
}

func propertyLabel(p ontology.ObjectPropertyExpression) string {
	if p.Inverse {
		return "inverse of " + label(p.Property)
	}
	return label(p.Property)
}
