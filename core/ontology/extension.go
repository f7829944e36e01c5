package ontology

// IndividualsOf returns the individuals satisfying the class expression.
//
// Without reasoning only explicit class assertions and the structural meaning
// of the expression over asserted property values are used. With reasoning
// the members of subsumed classes, subproperty and inverse assertions and the
// same-as closure are taken into account as well.
func (o *MemoryOntology) IndividualsOf(expr ClassExpression, reasoning bool) []Term {
	if expr == nil {
		return nil
	}
	ev := newExtension(o.snapshot(), reasoning)
	return ev.members(expr).items
}

// extension evaluates class expressions against one index. visiting guards
// against cyclic definitions such as C ≡ ∃p.C.
type extension struct {
	idx       *index
	reasoning bool
	visiting  map[string]bool
	memo      map[string]*termSet
}

func newExtension(idx *index, reasoning bool) *extension {
	return &extension{
		idx:       idx,
		reasoning: reasoning,
		visiting:  make(map[string]bool),
		memo:      make(map[string]*termSet),
	}
}

func (e *extension) members(expr ClassExpression) *termSet {
	key := expr.String()
	if cached, ok := e.memo[key]; ok {
		return cached
	}
	out := newTermSet()
	if e.visiting[key] {
		return out
	}
	e.visiting[key] = true
	defer delete(e.visiting, key)

	for _, ind := range e.idx.classMembers[key] {
		out.add(ind)
	}
	e.structural(expr, out)
	if e.reasoning {
		if isThing(expr) {
			for _, ind := range e.idx.individuals {
				out.add(ind)
			}
		}
		for _, sub := range e.idx.classes.descendants(key) {
			for _, ind := range e.members(sub).items {
				out.add(ind)
			}
		}
		for _, ind := range out.items {
			for _, same := range e.idx.sameAs[ind] {
				out.add(same)
			}
		}
	}
	e.memo[key] = out
	return out
}

func (e *extension) structural(expr ClassExpression, out *termSet) {
	switch x := expr.(type) {
	case ObjectIntersectionOf:
		e.intersection(x.Operands, out)
	case ObjectUnionOf:
		for _, operand := range x.Operands {
			for _, ind := range e.members(operand).items {
				out.add(ind)
			}
		}
	case ObjectComplementOf:
		if !e.reasoning {
			return
		}
		for _, disjoint := range e.idx.disjointClassesOf(x.Operand) {
			for _, ind := range e.members(disjoint).items {
				out.add(ind)
			}
		}
	case ObjectOneOf:
		for _, ind := range x.Individuals {
			out.add(ind)
		}
	case ObjectHasValue:
		targets := map[Term]bool{x.Individual: true}
		if e.reasoning {
			for _, same := range e.idx.sameAs[x.Individual] {
				targets[same] = true
			}
		}
		for _, pair := range e.pairs(x.Property) {
			if targets[pair[1]] {
				out.add(pair[0])
			}
		}
	case ObjectSomeValuesFrom:
		fillers := e.members(x.Filler)
		for _, pair := range e.pairs(x.Property) {
			if isThing(x.Filler) || fillers.has(pair[1]) {
				out.add(pair[0])
			}
		}
	case ObjectHasSelf:
		for _, pair := range e.pairs(x.Property) {
			if pair[0] == pair[1] {
				out.add(pair[0])
			}
		}
	case DataHasValue:
		properties := []Term{x.Property}
		if e.reasoning {
			properties = append(properties, e.idx.dataProperties.descendants(x.Property.String())...)
		}
		for _, p := range properties {
			for _, dpa := range e.idx.dataAssertions[p] {
				if dpa.Value == x.Literal {
					out.add(dpa.Source)
				}
			}
		}
	}
}

func (e *extension) intersection(operands []ClassExpression, out *termSet) {
	if len(operands) == 0 {
		return
	}
	sets := make([]*termSet, len(operands))
	for i, operand := range operands {
		sets[i] = e.members(operand)
	}
	for _, ind := range sets[0].items {
		inAll := true
		for _, s := range sets[1:] {
			if !s.has(ind) {
				inAll = false
				break
			}
		}
		if inAll {
			out.add(ind)
		}
	}
}

// pairs returns the (source, target) pairs related by the property
// expression. With reasoning, subproperties and declared inverses contribute.
func (e *extension) pairs(property ObjectPropertyExpression) [][2]Term {
	expressions := []ObjectPropertyExpression{property}
	if e.reasoning {
		expressions = append(expressions, e.idx.objectProperties.descendants(property.String())...)
		for _, inv := range e.idx.inverses[property.Property] {
			expressions = append(expressions, ObjectPropertyExpression{Property: inv, Inverse: !property.Inverse})
		}
	}
	seen := make(map[[2]Term]bool)
	var out [][2]Term
	for _, expr := range expressions {
		for _, opa := range e.idx.objectAssertions[expr.Property] {
			pair := [2]Term{opa.Source, opa.Target}
			if expr.Inverse {
				pair = [2]Term{opa.Target, opa.Source}
			}
			if !seen[pair] {
				seen[pair] = true
				out = append(out, pair)
			}
		}
	}
	return out
}
