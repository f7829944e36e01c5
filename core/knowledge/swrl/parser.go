package swrl

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vektah/goparsify"

	"github.com/adalundhe/owlreasoner/core/ontology"
	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

var (
	// ErrUnknownPrefix is returned when a prefixed name uses an unmapped prefix.
	ErrUnknownPrefix = errors.New("unknown prefix")
	// ErrMalformedAtom is returned when an atom's shape fits no atom kind.
	ErrMalformedAtom = errors.New("malformed atom")
)

// PropertySchema tells the parser how a binary predicate is typed when the
// arguments alone cannot. *ontology.MemoryOntology implements it.
type PropertySchema interface {
	IsDataProperty(property ontology.Term) bool
	IsAnnotationProperty(property ontology.Term) bool
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	schema PropertySchema
}

// WithSchema resolves binary predicates against schema.
func WithSchema(schema PropertySchema) ParseOption {
	return func(c *parseConfig) { c.schema = schema }
}

// ParseError reports where rule text stopped parsing.
type ParseError struct {
	// Input is the text given to the parser.
	Input string
	// Offset is the byte offset of the error.
	Offset int
	// Line and Column locate the error; Column counts runes.
	Line   int
	Column int
	// Details is the parser's description of what it expected.
	Details string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse rule: line %d column %d: %s", e.Line, e.Column, e.Details)
}

// =============================================================================
// Parse
// =============================================================================

// Parse reads a rule written in human SWRL syntax. Prefixed names are
// expanded through prefixes layered over the standard prefixes; the empty
// prefix, if mapped, also applies to bare names. Without a schema, a binary
// atom is a data property atom when its right argument is a literal, an
// annotation atom when its predicate is a standard annotation property, and
// an object property atom otherwise.
func Parse(name, text string, prefixes map[string]string, opts ...ParseOption) (*Rule, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	raw, err := parseRuleText(text)
	if err != nil {
		return nil, err
	}
	b := &builder{prefixes: mergePrefixes(prefixes), schema: cfg.schema}
	antecedent, err := b.atoms(raw.antecedent)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", name, err)
	}
	consequent, err := b.atoms(raw.consequent)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", name, err)
	}
	return NewRule(name, antecedent, consequent)
}

// MustParse is like Parse but panics on error.
func MustParse(name, text string, prefixes map[string]string, opts ...ParseOption) *Rule {
	r, err := Parse(name, text, prefixes, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func parseRuleText(in string) (rawRule, error) {
	state := goparsify.NewState(in)
	state.WS = goparsify.UnicodeWhitespace
	result := &goparsify.Result{}
	ruleText(state, result)
	if state.Errored() {
		line, col := coordinates(in, state.Error.Pos())
		return rawRule{}, &ParseError{
			Input:   in,
			Offset:  state.Error.Pos(),
			Line:    line,
			Column:  col,
			Details: expected(state.Error.Error()),
		}
	}
	state.WS(state)
	if unparsed := state.Get(); unparsed != "" {
		line, col := coordinates(in, state.Pos)
		return rawRule{}, &ParseError{
			Input:   in,
			Offset:  state.Pos,
			Line:    line,
			Column:  col,
			Details: fmt.Sprintf("unexpected %q", firstToken(unparsed)),
		}
	}
	raw, ok := result.Result.(rawRule)
	if !ok {
		return rawRule{}, fmt.Errorf("invalid parse result type: %T", result.Result)
	}
	return raw, nil
}

// coordinates returns the 1-based line and rune column of offset in input.
func coordinates(input string, offset int) (line, col int) {
	if offset > len(input) {
		offset = len(input)
	}
	before := input[:offset]
	line = strings.Count(before, "\n") + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return line, utf8.RuneCountInString(before) + 1
}

func expected(msg string) string {
	if i := strings.Index(msg, "expected"); i >= 0 {
		return msg[i:]
	}
	return msg
}

func firstToken(s string) string {
	if i := strings.IndexFunc(s, unicode.IsSpace); i > 0 {
		return s[:i]
	}
	return s
}

func mergePrefixes(prefixes map[string]string) map[string]string {
	out := make(map[string]string, len(vocabulary.Prefixes)+len(prefixes))
	for k, v := range vocabulary.Prefixes {
		out[k] = v
	}
	for k, v := range prefixes {
		out[k] = v
	}
	return out
}

// =============================================================================
// Atom construction
// =============================================================================

var standardAnnotationProperties = map[string]bool{
	vocabulary.RdfsLabel:       true,
	vocabulary.RdfsComment:     true,
	vocabulary.RdfsSeeAlso:     true,
	vocabulary.SkosPrefLabel:   true,
	vocabulary.SkosAltLabel:    true,
	vocabulary.SkosHiddenLabel: true,
}

type builder struct {
	prefixes map[string]string
	schema   PropertySchema
}

func (b *builder) atoms(raw []rawAtom) ([]Atom, error) {
	out := make([]Atom, 0, len(raw))
	for _, r := range raw {
		a, err := b.atom(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (b *builder) atom(r rawAtom) (Atom, error) {
	if build, ok := b.equality(r); ok {
		return build()
	}
	iri, err := b.expand(r.predicate.name)
	if err != nil {
		return Atom{}, err
	}
	if _, ok := lookupBuiltIn(iri); ok {
		if r.negated || r.predicate.inverse {
			return Atom{}, fmt.Errorf("builtin %s: %w", iri, ErrMalformedAtom)
		}
		args := make([]Argument, len(r.args))
		for i, arg := range r.args {
			if args[i], err = b.argument(arg); err != nil {
				return Atom{}, err
			}
		}
		return NewBuiltInAtom(iri, args...)
	}

	if len(r.args) == 0 || r.args[0].variable == "" {
		return Atom{}, fmt.Errorf("%s: left argument must be a variable: %w", iri, ErrMalformedAtom)
	}
	left := Variable(r.args[0].variable)
	switch len(r.args) {
	case 1:
		if r.negated || r.predicate.inverse {
			return Atom{}, fmt.Errorf("class atom %s: %w", iri, ErrMalformedAtom)
		}
		return NewClassAtom(ontology.NamedClass(iri), left)
	case 2:
	default:
		return Atom{}, fmt.Errorf("%s takes at most two arguments, got %d: %w", iri, len(r.args), ErrMalformedAtom)
	}

	right, err := b.argument(r.args[1])
	if err != nil {
		return Atom{}, err
	}
	property := ontology.NewIRI(iri)
	switch b.propertyKind(property, right) {
	case AtomAnnotationProperty:
		if r.negated || r.predicate.inverse {
			return Atom{}, fmt.Errorf("annotation atom %s: %w", iri, ErrMalformedAtom)
		}
		return NewAnnotationPropertyAtom(property, left, right)
	case AtomDataProperty:
		if r.predicate.inverse {
			return Atom{}, fmt.Errorf("data property atom %s cannot be inverted: %w", iri, ErrMalformedAtom)
		}
		if r.negated {
			return NewNegativeDataPropertyAtom(property, left, right)
		}
		return NewDataPropertyAtom(property, left, right)
	default:
		expr := ontology.ObjectPropertyExpression{Property: property, Inverse: r.predicate.inverse}
		if r.negated {
			return NewNegativeObjectPropertyAtom(expr, left, right)
		}
		return NewObjectPropertyAtom(expr, left, right)
	}
}

// equality recognizes sameAs and differentFrom, written bare or as owl terms.
func (b *builder) equality(r rawAtom) (func() (Atom, error), bool) {
	n := r.predicate.name
	var iri string
	if n.bare {
		switch n.local {
		case "sameAs":
			iri = vocabulary.OwlSameAs
		case "differentFrom":
			iri = vocabulary.OwlDifferentFrom
		}
	}
	if iri == "" {
		expanded, err := b.expand(n)
		if err != nil {
			return nil, false
		}
		iri = expanded
	}
	var ctor func(Variable, Argument) (Atom, error)
	switch iri {
	case vocabulary.OwlSameAs:
		ctor = NewSameAsAtom
	case vocabulary.OwlDifferentFrom:
		ctor = NewDifferentFromAtom
	default:
		return nil, false
	}
	return func() (Atom, error) {
		if r.negated || r.predicate.inverse || len(r.args) != 2 || r.args[0].variable == "" {
			return Atom{}, fmt.Errorf("%s expects (?variable, argument): %w", iri, ErrMalformedAtom)
		}
		right, err := b.argument(r.args[1])
		if err != nil {
			return Atom{}, err
		}
		return ctor(Variable(r.args[0].variable), right)
	}, true
}

func (b *builder) propertyKind(property ontology.Term, right Argument) AtomKind {
	if b.schema != nil {
		switch {
		case b.schema.IsAnnotationProperty(property):
			return AtomAnnotationProperty
		case b.schema.IsDataProperty(property):
			return AtomDataProperty
		}
	}
	if standardAnnotationProperties[property.Value()] {
		return AtomAnnotationProperty
	}
	if !right.IsVariable() && right.Term().IsLiteral() {
		return AtomDataProperty
	}
	return AtomObjectProperty
}

func (b *builder) argument(r rawArg) (Argument, error) {
	switch {
	case r.variable != "":
		return Var(r.variable), nil
	case r.literal != nil:
		t, err := b.literal(r.literal)
		if err != nil {
			return Argument{}, err
		}
		return Const(t), nil
	default:
		if r.name.bare && (r.name.local == "true" || r.name.local == "false") {
			return Const(ontology.NewLiteral(r.name.local, vocabulary.XsdBoolean)), nil
		}
		iri, err := b.expand(*r.name)
		if err != nil {
			return Argument{}, err
		}
		return Const(iriOrBlank(iri)), nil
	}
}

func (b *builder) literal(r *rawLiteral) (ontology.Term, error) {
	switch {
	case r.number != "":
		return ontology.NewLiteral(r.lexical, r.number), nil
	case r.lang != "":
		return ontology.NewLangLiteral(r.lexical, r.lang), nil
	case r.datatype != nil:
		dt, err := b.expand(*r.datatype)
		if err != nil {
			return ontology.Term{}, err
		}
		return ontology.NewLiteral(r.lexical, dt), nil
	default:
		return ontology.NewLiteral(r.lexical, ""), nil
	}
}

// expand resolves a name to a full IRI.
func (b *builder) expand(n rawName) (string, error) {
	if n.full {
		return n.iri, nil
	}
	if n.prefix == "_" {
		return "_:" + n.local, nil
	}
	ns, ok := b.prefixes[n.prefix]
	if !ok {
		if n.bare {
			return "", fmt.Errorf("%s has no prefix and no default namespace is mapped: %w", n.local, ErrUnknownPrefix)
		}
		return "", fmt.Errorf("%s:%s: %w", n.prefix, n.local, ErrUnknownPrefix)
	}
	return ns + n.local, nil
}

func iriOrBlank(iri string) ontology.Term {
	if strings.HasPrefix(iri, "_:") {
		return ontology.NewBlank(iri[2:])
	}
	return ontology.NewIRI(iri)
}
