package ontology

// =============================================================================
// Class Taxonomy
// =============================================================================

// SuperClassesOf returns every class subsuming the expression, equivalents included.
func (o *MemoryOntology) SuperClassesOf(class ClassExpression) []ClassExpression {
	return o.snapshot().classes.ancestors(class.String())
}

// SubClassesOf returns every class subsumed by the expression, equivalents included.
func (o *MemoryOntology) SubClassesOf(class ClassExpression) []ClassExpression {
	return o.snapshot().classes.descendants(class.String())
}

// EquivalentClassesOf returns the classes equivalent to the expression.
func (o *MemoryOntology) EquivalentClassesOf(class ClassExpression) []ClassExpression {
	return o.snapshot().classes.equivalents(class.String())
}

// DisjointClassesOf returns the classes disjoint with the expression: the
// classes declared disjoint with it or with one of its superclasses, plus
// their subclasses.
func (o *MemoryOntology) DisjointClassesOf(class ClassExpression) []ClassExpression {
	return o.snapshot().disjointClassesOf(class)
}

func (idx *index) disjointClassesOf(class ClassExpression) []ClassExpression {
	self := map[string]bool{class.String(): true}
	for _, sup := range idx.classes.ancestors(class.String()) {
		self[sup.String()] = true
	}

	seen := make(map[string]bool)
	var out []ClassExpression
	add := func(c ClassExpression) {
		key := c.String()
		if seen[key] || key == class.String() {
			return
		}
		seen[key] = true
		out = append(out, c)
	}
	for _, set := range idx.disjointClassSets {
		if !containsExpression(set, self) {
			continue
		}
		for _, member := range set {
			if self[member.String()] {
				continue
			}
			add(member)
			for _, sub := range idx.classes.descendants(member.String()) {
				add(sub)
			}
		}
	}
	return out
}

func containsExpression(set []ClassExpression, keys map[string]bool) bool {
	for _, c := range set {
		if keys[c.String()] {
			return true
		}
	}
	return false
}

// ClassCycles returns the groups of classes that subsume each other.
func (o *MemoryOntology) ClassCycles() [][]ClassExpression {
	return o.snapshot().classes.cycles()
}

// =============================================================================
// Object Property Taxonomy
// =============================================================================

// SuperObjectPropertiesOf returns every property subsuming the expression.
func (o *MemoryOntology) SuperObjectPropertiesOf(property ObjectPropertyExpression) []ObjectPropertyExpression {
	return o.snapshot().objectProperties.ancestors(property.String())
}

// SubObjectPropertiesOf returns every property subsumed by the expression.
func (o *MemoryOntology) SubObjectPropertiesOf(property ObjectPropertyExpression) []ObjectPropertyExpression {
	return o.snapshot().objectProperties.descendants(property.String())
}

// EquivalentObjectPropertiesOf returns the properties equivalent to the expression.
func (o *MemoryOntology) EquivalentObjectPropertiesOf(property ObjectPropertyExpression) []ObjectPropertyExpression {
	return o.snapshot().objectProperties.equivalents(property.String())
}

// InverseObjectPropertiesOf returns the named properties declared inverse
// of the expression.
func (o *MemoryOntology) InverseObjectPropertiesOf(property ObjectPropertyExpression) []ObjectPropertyExpression {
	idx := o.snapshot()
	var out []ObjectPropertyExpression
	for _, inv := range idx.inverses[property.Property] {
		out = append(out, ObjectPropertyExpression{Property: inv, Inverse: property.Inverse})
	}
	return out
}

// DisjointObjectPropertiesOf returns the properties declared disjoint with
// the expression or with one of its superproperties.
func (o *MemoryOntology) DisjointObjectPropertiesOf(property ObjectPropertyExpression) []ObjectPropertyExpression {
	idx := o.snapshot()
	self := map[string]bool{property.String(): true}
	for _, sup := range idx.objectProperties.ancestors(property.String()) {
		self[sup.String()] = true
	}
	seen := make(map[string]bool)
	var out []ObjectPropertyExpression
	for _, set := range idx.disjointObjectSets {
		member := false
		for _, p := range set {
			if self[p.String()] {
				member = true
				break
			}
		}
		if !member {
			continue
		}
		for _, p := range set {
			if self[p.String()] || seen[p.String()] {
				continue
			}
			seen[p.String()] = true
			out = append(out, p)
		}
	}
	return out
}

// HasCharacteristic reports whether the named property carries the characteristic.
func (o *MemoryOntology) HasCharacteristic(kind AxiomKind, property Term) bool {
	return o.snapshot().characteristics[kind][property]
}

// =============================================================================
// Data Property Taxonomy
// =============================================================================

// SuperDataPropertiesOf returns every data property subsuming the property.
func (o *MemoryOntology) SuperDataPropertiesOf(property Term) []Term {
	return o.snapshot().dataProperties.ancestors(property.String())
}

// SubDataPropertiesOf returns every data property subsumed by the property.
func (o *MemoryOntology) SubDataPropertiesOf(property Term) []Term {
	return o.snapshot().dataProperties.descendants(property.String())
}

// EquivalentDataPropertiesOf returns the data properties equivalent to the property.
func (o *MemoryOntology) EquivalentDataPropertiesOf(property Term) []Term {
	return o.snapshot().dataProperties.equivalents(property.String())
}

// DisjointDataPropertiesOf returns the data properties declared disjoint
// with the property or with one of its superproperties.
func (o *MemoryOntology) DisjointDataPropertiesOf(property Term) []Term {
	idx := o.snapshot()
	self := map[Term]bool{property: true}
	for _, sup := range idx.dataProperties.ancestors(property.String()) {
		self[sup] = true
	}
	out := newTermSet()
	for _, set := range idx.disjointDataSets {
		member := false
		for _, p := range set {
			if self[p] {
				member = true
				break
			}
		}
		if !member {
			continue
		}
		for _, p := range set {
			if !self[p] {
				out.add(p)
			}
		}
	}
	return out.items
}

// IsFunctionalDataProperty reports whether the data property is functional.
func (o *MemoryOntology) IsFunctionalDataProperty(property Term) bool {
	return o.snapshot().functionalData[property]
}
