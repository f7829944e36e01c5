package ontology

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

// ErrInvalidTerm is returned when a string cannot be parsed into a Term.
var ErrInvalidTerm = errors.New("invalid term")

// BlankNodePrefix is the conventional prefix marking an IRI-shaped string as
// a blank node. The local id follows the prefix.
const BlankNodePrefix = "bnode:"

// =============================================================================
// TermKind
// =============================================================================

// TermKind discriminates the variants of Term.
type TermKind uint8

const (
	// TermNull is the zero kind; a null Term is an unbound binding cell.
	TermNull TermKind = iota
	// TermIRI is a named resource.
	TermIRI
	// TermBlank is a blank node identified by a local id.
	TermBlank
	// TermLiteral is a literal with a datatype or a language tag.
	TermLiteral
)

// String returns the kind name.
func (k TermKind) String() string {
	switch k {
	case TermIRI:
		return "iri"
	case TermBlank:
		return "blank"
	case TermLiteral:
		return "literal"
	default:
		return "null"
	}
}

// =============================================================================
// Term
// =============================================================================

// Term is an RDF term: a named resource, a blank node or a literal.
// Terms are immutable values; two terms are equal iff they are == equal.
// The zero Term is null.
type Term struct {
	kind     TermKind
	value    string
	datatype string
	lang     string
}

// NewIRI returns a named resource term. A single trailing slash is removed so
// that "http://x.org/a/" and "http://x.org/a" denote the same resource.
func NewIRI(iri string) Term {
	return Term{kind: TermIRI, value: normalizeIRI(iri)}
}

// NewBlank returns a blank node term with the given local id.
func NewBlank(id string) Term {
	return Term{kind: TermBlank, value: id}
}

// NewLiteral returns a typed literal. An empty datatype means xsd:string.
func NewLiteral(value, datatype string) Term {
	if datatype == "" {
		datatype = vocabulary.XsdString
	}
	return Term{kind: TermLiteral, value: value, datatype: normalizeIRI(datatype)}
}

// NewLangLiteral returns a language-tagged literal. Tags are compared
// case-insensitively, so they are stored lower-cased.
func NewLangLiteral(value, lang string) Term {
	return Term{
		kind:     TermLiteral,
		value:    value,
		datatype: vocabulary.RdfLangString,
		lang:     strings.ToLower(lang),
	}
}

func normalizeIRI(iri string) string {
	iri = strings.TrimSpace(iri)
	if len(iri) > 1 && strings.HasSuffix(iri, "/") && !strings.HasSuffix(iri, "//") {
		return iri[:len(iri)-1]
	}
	return iri
}

// ParseTerm parses the N-Triples form of a term as produced by Term.String.
// Bare strings are read as IRIs, and IRIs carrying the blank node prefix
// are read as blank nodes.
func ParseTerm(s string) (Term, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Term{}, fmt.Errorf("parse %q: %w", s, ErrInvalidTerm)
	case strings.HasPrefix(s, "_:"):
		return NewBlank(s[2:]), nil
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		return iriOrBlank(s[1 : len(s)-1]), nil
	case strings.HasPrefix(s, `"`):
		return parseLiteral(s)
	default:
		return iriOrBlank(s), nil
	}
}

func iriOrBlank(iri string) Term {
	if strings.HasPrefix(iri, BlankNodePrefix) {
		return NewBlank(iri[len(BlankNodePrefix):])
	}
	return NewIRI(iri)
}

func parseLiteral(s string) (Term, error) {
	end := closingQuote(s)
	if end < 0 {
		return Term{}, fmt.Errorf("parse %q: unterminated literal: %w", s, ErrInvalidTerm)
	}
	value, err := strconv.Unquote(s[:end+1])
	if err != nil {
		return Term{}, fmt.Errorf("parse %q: %v: %w", s, err, ErrInvalidTerm)
	}
	rest := s[end+1:]
	switch {
	case rest == "":
		return NewLiteral(value, ""), nil
	case strings.HasPrefix(rest, "@"):
		return NewLangLiteral(value, rest[1:]), nil
	case strings.HasPrefix(rest, "^^<") && strings.HasSuffix(rest, ">"):
		return NewLiteral(value, rest[3:len(rest)-1]), nil
	default:
		return Term{}, fmt.Errorf("parse %q: unexpected suffix %q: %w", s, rest, ErrInvalidTerm)
	}
}

// closingQuote returns the index of the quote ending the literal that opens s.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// Kind returns the variant of the term.
func (t Term) Kind() TermKind { return t.kind }

// IsNull reports whether the term is the unbound zero value.
func (t Term) IsNull() bool { return t.kind == TermNull }

// IsIRI reports whether the term is a named resource.
func (t Term) IsIRI() bool { return t.kind == TermIRI }

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool { return t.kind == TermBlank }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.kind == TermLiteral }

// IsResource reports whether the term denotes an individual (IRI or blank node).
func (t Term) IsResource() bool { return t.kind == TermIRI || t.kind == TermBlank }

// Value returns the IRI, the blank node id or the lexical form of a literal.
func (t Term) Value() string { return t.value }

// Datatype returns the datatype IRI of a literal.
func (t Term) Datatype() string { return t.datatype }

// Lang returns the language tag of a literal, or "".
func (t Term) Lang() string { return t.lang }

// String returns the N-Triples form of the term.
func (t Term) String() string {
	switch t.kind {
	case TermIRI:
		return "<" + t.value + ">"
	case TermBlank:
		return "_:" + t.value
	case TermLiteral:
		quoted := strconv.Quote(t.value)
		if t.lang != "" {
			return quoted + "@" + t.lang
		}
		if t.datatype == vocabulary.XsdString {
			return quoted
		}
		return quoted + "^^<" + t.datatype + ">"
	default:
		return ""
	}
}

var numericDatatypes = map[string]bool{
	vocabulary.XsdDecimal:            true,
	vocabulary.XsdInteger:            true,
	vocabulary.XsdInt:                true,
	vocabulary.XsdLong:               true,
	vocabulary.XsdShort:              true,
	vocabulary.XsdByte:               true,
	vocabulary.XsdNonNegativeInteger: true,
	vocabulary.XsdPositiveInteger:    true,
	vocabulary.XsdNegativeInteger:    true,
	vocabulary.XsdNonPositiveInteger: true,
	vocabulary.XsdUnsignedInt:        true,
	vocabulary.XsdUnsignedLong:       true,
	vocabulary.XsdFloat:              true,
	vocabulary.XsdDouble:             true,
}

// Numeric returns the value of a literal with a numeric XSD datatype.
func (t Term) Numeric() (float64, bool) {
	if t.kind != TermLiteral || !numericDatatypes[t.datatype] {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(t.value), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Compare orders two terms: numerically when both are numeric literals,
// otherwise by their lexical value.
func (t Term) Compare(other Term) int {
	if a, ok := t.Numeric(); ok {
		if b, ok := other.Numeric(); ok {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(t.value, other.value)
}
