package swrl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adalundhe/owlreasoner/core/ontology"
	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

var (
	// ErrNilPredicate is returned when an atom is built without a predicate.
	ErrNilPredicate = errors.New("atom predicate is required")
	// ErrNilArgument is returned when a mandatory atom argument is missing.
	ErrNilArgument = errors.New("atom argument is required")
	// ErrInvalidArgument is returned when an argument has the wrong term kind
	// for the atom, such as a literal in an object property atom.
	ErrInvalidArgument = errors.New("invalid atom argument")
)

// =============================================================================
// Arguments
// =============================================================================

// Variable names a column of a binding table. It is written "?name" in
// rule text and stored without the question mark.
type Variable string

// String returns the variable in rule syntax.
func (v Variable) String() string { return "?" + string(v) }

// Argument is either a variable or a constant term. The zero Argument is
// absent.
type Argument struct {
	variable Variable
	term     ontology.Term
}

// Var returns a variable argument. A leading "?" is dropped.
func Var(name string) Argument {
	return Argument{variable: Variable(strings.TrimPrefix(name, "?"))}
}

// Const returns a constant argument.
func Const(term ontology.Term) Argument {
	return Argument{term: term}
}

// IsVariable reports whether the argument is a variable.
func (a Argument) IsVariable() bool { return a.variable != "" }

// IsAbsent reports whether the argument is neither a variable nor a term.
func (a Argument) IsAbsent() bool { return a.variable == "" && a.term.IsNull() }

// Variable returns the variable name, or "" for constants.
func (a Argument) Variable() Variable { return a.variable }

// Term returns the constant term, or the null term for variables.
func (a Argument) Term() ontology.Term { return a.term }

// String returns the argument in rule syntax.
func (a Argument) String() string {
	if a.IsVariable() {
		return a.variable.String()
	}
	return a.term.String()
}

// resolve returns the value of the argument in a binding.
func (a Argument) resolve(b Binding) ontology.Term {
	if a.IsVariable() {
		return b[string(a.variable)]
	}
	return a.term
}

// =============================================================================
// Atom
// =============================================================================

// AtomKind tags the variants of Atom.
type AtomKind uint8

const (
	AtomClass AtomKind = iota
	AtomObjectProperty
	AtomDataProperty
	AtomSameAs
	AtomDifferentFrom
	AtomNegativeObjectProperty
	AtomNegativeDataProperty
	AtomBuiltIn
	AtomAnnotationProperty
)

var atomKindNames = [...]string{
	AtomClass:                  "Class",
	AtomObjectProperty:         "ObjectProperty",
	AtomDataProperty:           "DataProperty",
	AtomSameAs:                 "SameAs",
	AtomDifferentFrom:          "DifferentFrom",
	AtomNegativeObjectProperty: "NegativeObjectProperty",
	AtomNegativeDataProperty:   "NegativeDataProperty",
	AtomBuiltIn:                "BuiltIn",
	AtomAnnotationProperty:     "AnnotationProperty",
}

// String returns the kind name.
func (k AtomKind) String() string {
	if int(k) < len(atomKindNames) {
		return atomKindNames[k]
	}
	return fmt.Sprintf("AtomKind(%d)", uint8(k))
}

// Atom is an immutable rule atom. Which predicate field is meaningful
// depends on the kind: class for class atoms, objectProperty for object
// property atoms, property for data, annotation and builtin atoms. Builtin
// atoms keep all their arguments in args; the other kinds use left and right.
type Atom struct {
	kind           AtomKind
	class          ontology.ClassExpression
	objectProperty ontology.ObjectPropertyExpression
	property       ontology.Term
	left           Variable
	right          Argument
	args           []Argument
}

// NewClassAtom returns class(?left).
func NewClassAtom(class ontology.ClassExpression, left Variable) (Atom, error) {
	if class == nil {
		return Atom{}, fmt.Errorf("class atom: %w", ErrNilPredicate)
	}
	if left == "" {
		return Atom{}, fmt.Errorf("class atom %s: %w", class, ErrNilArgument)
	}
	return Atom{kind: AtomClass, class: class, left: left}, nil
}

// NewObjectPropertyAtom returns property(?left, right). A constant right
// argument must be a resource.
func NewObjectPropertyAtom(property ontology.ObjectPropertyExpression, left Variable, right Argument) (Atom, error) {
	if property.IsNull() {
		return Atom{}, fmt.Errorf("object property atom: %w", ErrNilPredicate)
	}
	if err := checkBinary("object property atom", left, right, resourceArgument); err != nil {
		return Atom{}, err
	}
	return Atom{kind: AtomObjectProperty, objectProperty: property, left: left, right: right}, nil
}

// NewDataPropertyAtom returns property(?left, right). A constant right
// argument must be a literal.
func NewDataPropertyAtom(property ontology.Term, left Variable, right Argument) (Atom, error) {
	if property.IsNull() {
		return Atom{}, fmt.Errorf("data property atom: %w", ErrNilPredicate)
	}
	if err := checkBinary("data property atom", left, right, literalArgument); err != nil {
		return Atom{}, err
	}
	return Atom{kind: AtomDataProperty, property: property, left: left, right: right}, nil
}

// NewSameAsAtom returns sameAs(?left, right).
func NewSameAsAtom(left Variable, right Argument) (Atom, error) {
	if err := checkBinary("same-as atom", left, right, resourceArgument); err != nil {
		return Atom{}, err
	}
	return Atom{kind: AtomSameAs, left: left, right: right}, nil
}

// NewDifferentFromAtom returns differentFrom(?left, right).
func NewDifferentFromAtom(left Variable, right Argument) (Atom, error) {
	if err := checkBinary("different-from atom", left, right, resourceArgument); err != nil {
		return Atom{}, err
	}
	return Atom{kind: AtomDifferentFrom, left: left, right: right}, nil
}

// NewNegativeObjectPropertyAtom returns not property(?left, right).
func NewNegativeObjectPropertyAtom(property ontology.ObjectPropertyExpression, left Variable, right Argument) (Atom, error) {
	a, err := NewObjectPropertyAtom(property, left, right)
	if err != nil {
		return Atom{}, fmt.Errorf("negative %w", err)
	}
	a.kind = AtomNegativeObjectProperty
	return a, nil
}

// NewNegativeDataPropertyAtom returns not property(?left, right).
func NewNegativeDataPropertyAtom(property ontology.Term, left Variable, right Argument) (Atom, error) {
	a, err := NewDataPropertyAtom(property, left, right)
	if err != nil {
		return Atom{}, fmt.Errorf("negative %w", err)
	}
	a.kind = AtomNegativeDataProperty
	return a, nil
}

// NewAnnotationPropertyAtom returns property(?left, right). The right
// argument may be any term.
func NewAnnotationPropertyAtom(property ontology.Term, left Variable, right Argument) (Atom, error) {
	if property.IsNull() {
		return Atom{}, fmt.Errorf("annotation property atom: %w", ErrNilPredicate)
	}
	if err := checkBinary("annotation property atom", left, right, nil); err != nil {
		return Atom{}, err
	}
	return Atom{kind: AtomAnnotationProperty, property: property, left: left, right: right}, nil
}

// NewBuiltInAtom returns a builtin filter over args. The builtin must be
// registered and receive the number of arguments it expects.
func NewBuiltInAtom(builtin string, args ...Argument) (Atom, error) {
	def, ok := lookupBuiltIn(builtin)
	if !ok {
		return Atom{}, fmt.Errorf("builtin %q: %w", builtin, ErrUnknownBuiltIn)
	}
	if len(args) != def.arity {
		return Atom{}, fmt.Errorf("builtin %s expects %d arguments, got %d: %w",
			def.name, def.arity, len(args), ErrInvalidArgument)
	}
	for _, a := range args {
		if a.IsAbsent() {
			return Atom{}, fmt.Errorf("builtin %s: %w", def.name, ErrNilArgument)
		}
	}
	return Atom{
		kind:     AtomBuiltIn,
		property: ontology.NewIRI(vocabulary.SWRLB + def.name),
		args:     append([]Argument(nil), args...),
	}, nil
}

func resourceArgument(t ontology.Term) bool { return t.IsResource() }
func literalArgument(t ontology.Term) bool  { return t.IsLiteral() }

func checkBinary(what string, left Variable, right Argument, accepts func(ontology.Term) bool) error {
	if left == "" || right.IsAbsent() {
		return fmt.Errorf("%s: %w", what, ErrNilArgument)
	}
	if !right.IsVariable() && accepts != nil && !accepts(right.Term()) {
		return fmt.Errorf("%s: right argument %s: %w", what, right.Term(), ErrInvalidArgument)
	}
	return nil
}

// Kind returns the atom variant.
func (a Atom) Kind() AtomKind { return a.kind }

// Class returns the class expression of a class atom.
func (a Atom) Class() ontology.ClassExpression { return a.class }

// ObjectProperty returns the property expression of an object property atom.
func (a Atom) ObjectProperty() ontology.ObjectPropertyExpression { return a.objectProperty }

// Property returns the property or builtin IRI of data, annotation and
// builtin atoms.
func (a Atom) Property() ontology.Term { return a.property }

// Left returns the left variable. Builtins have none.
func (a Atom) Left() Variable { return a.left }

// Right returns the right argument, absent for class atoms and builtins.
func (a Atom) Right() Argument { return a.right }

// Arguments returns the arguments of the atom in order.
func (a Atom) Arguments() []Argument {
	switch {
	case a.kind == AtomBuiltIn:
		return append([]Argument(nil), a.args...)
	case a.right.IsAbsent():
		return []Argument{{variable: a.left}}
	default:
		return []Argument{{variable: a.left}, a.right}
	}
}

// Variables returns the distinct variables of the atom in argument order.
func (a Atom) Variables() []Variable {
	var out []Variable
	seen := make(map[Variable]bool)
	for _, arg := range a.Arguments() {
		if arg.IsVariable() && !seen[arg.variable] {
			seen[arg.variable] = true
			out = append(out, arg.variable)
		}
	}
	return out
}

// String returns the atom in rule syntax.
func (a Atom) String() string {
	args := a.Arguments()
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	joined := "(" + strings.Join(parts, ",") + ")"
	switch a.kind {
	case AtomClass:
		return a.class.String() + joined
	case AtomObjectProperty:
		return a.objectProperty.String() + joined
	case AtomNegativeObjectProperty:
		return "not " + a.objectProperty.String() + joined
	case AtomNegativeDataProperty:
		return "not " + a.property.String() + joined
	case AtomSameAs:
		return "<" + vocabulary.OwlSameAs + ">" + joined
	case AtomDifferentFrom:
		return "<" + vocabulary.OwlDifferentFrom + ">" + joined
	default:
		return a.property.String() + joined
	}
}
