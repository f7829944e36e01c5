package swrl

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	p "github.com/vektah/goparsify"

	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

// =============================================================================
// Grammar
// =============================================================================

// ruleText is the root parser. A rule is a conjunction of antecedent atoms,
// an arrow, and a possibly empty conjunction of consequent atoms:
//
//	Person(?p) ^ hasAge(?p, ?a) ^ swrlb:greaterThan(?a, 18) -> Adult(?p)
//
// Predicates and constants are <iri>, prefix:local or bare local names. A
// leading "not" marks a negative property atom.
var ruleText p.Parser

type rawName struct {
	iri    string
	prefix string
	local  string
	full   bool
	bare   bool
}

type rawLiteral struct {
	lexical  string
	lang     string
	datatype *rawName
	number   string
}

type rawArg struct {
	variable string
	name     *rawName
	literal  *rawLiteral
}

type rawPredicate struct {
	name    rawName
	inverse bool
}

type rawAtom struct {
	negated   bool
	predicate rawPredicate
	args      []rawArg
}

type rawRule struct {
	antecedent []rawAtom
	consequent []rawAtom
}

func init() {
	id := p.Chars("A-Za-z0-9_", 1)
	localChars := p.Chars("A-Za-z0-9_\\-.%", 1)
	langTag := p.Chars("A-Za-z0-9\\-", 1)

	iri := p.Seq("<", p.Cut(), p.Until(">"), ">").Map(func(n *p.Result) { // <http://example.org/Person>
		n.Result = rawName{iri: n.Child[2].Token, full: true}
	})
	qname := p.Seq(id, ":", localChars).Map(func(n *p.Result) { // ex:Person
		n.Result = rawName{prefix: n.Child[0].Token, local: n.Child[2].Token}
	})
	emptyPrefix := p.Seq(":", localChars).Map(func(n *p.Result) { // :Person
		n.Result = rawName{local: n.Child[1].Token}
	})
	bare := id.Map(func(n *p.Result) { // Person
		n.Result = rawName{local: n.Token, bare: true}
	})
	name := p.Any(iri, qname, emptyPrefix, bare)

	variable := p.Seq("?", id).Map(func(n *p.Result) { // ?p
		n.Result = rawArg{variable: n.Child[1].Token}
	})
	lang := p.Seq("@", langTag).Map(func(n *p.Result) { // @en
		n.Result = n.Child[1].Token
	})
	datatype := p.Seq("^^", p.Cut(), p.Any(iri, qname)).Map(func(n *p.Result) { // ^^xsd:date
		n.Result = n.Child[2].Result
	})
	literalString := p.Seq(p.StringLit(`"`), p.Maybe(p.Any(lang, datatype))).Map(func(n *p.Result) {
		lit := &rawLiteral{lexical: n.Child[0].Token}
		switch v := n.Child[1].Result.(type) {
		case string:
			lit.lang = v
		case rawName:
			lit.datatype = &v
		}
		n.Result = rawArg{literal: lit}
	})
	literalNumber := p.NumberLit().Map(func(n *p.Result) { // 18 || 3.5
		switch v := n.Result.(type) {
		case int64:
			n.Result = rawArg{literal: &rawLiteral{lexical: strconv.FormatInt(v, 10), number: vocabulary.XsdInteger}}
		case float64:
			n.Result = rawArg{literal: &rawLiteral{lexical: strconv.FormatFloat(v, 'f', -1, 64), number: vocabulary.XsdDecimal}}
		}
	})
	constant := name.Map(func(n *p.Result) {
		v := n.Result.(rawName)
		n.Result = rawArg{name: &v}
	})
	argument := p.Any(variable, literalString, literalNumber, constant)

	inverse := p.Seq("ObjectInverseOf", "(", p.Cut(), name, ")").Map(func(n *p.Result) {
		n.Result = rawPredicate{name: n.Child[3].Result.(rawName), inverse: true}
	})
	named := name.Map(func(n *p.Result) {
		n.Result = rawPredicate{name: n.Result.(rawName)}
	})
	predicate := p.Any(inverse, named)

	atom := p.Seq(p.Maybe(negation()), predicate, "(", p.Cut(), p.Many(argument, ","), ")").Map(func(n *p.Result) {
		a := rawAtom{negated: n.Child[0].Result != nil, predicate: n.Child[1].Result.(rawPredicate)}
		for _, child := range n.Child[4].Child {
			a.args = append(a.args, child.Result.(rawArg))
		}
		n.Result = a
	})
	conjunction := p.Any("^", "∧")
	atoms := p.Many(atom, conjunction).Map(func(n *p.Result) {
		out := make([]rawAtom, 0, len(n.Child))
		for _, child := range n.Child {
			out = append(out, child.Result.(rawAtom))
		}
		n.Result = out
	})
	arrow := p.Any("->", "→")
	ruleText = p.Seq(atoms, arrow, p.Maybe(atoms)).Map(func(n *p.Result) {
		r := rawRule{antecedent: n.Child[0].Result.([]rawAtom)}
		if consequent, ok := n.Child[2].Result.([]rawAtom); ok {
			r.consequent = consequent
		}
		n.Result = r
	})
}

// negation matches the keyword "not" followed by whitespace, so that
// predicates such as "notable" still parse as names.
func negation() p.Parser {
	return p.NewParser("not", func(ps *p.State, node *p.Result) {
		ps.WS(ps)
		rest := ps.Input[ps.Pos:]
		if !strings.HasPrefix(rest, "not") || len(rest) == 3 {
			ps.ErrorHere("not")
			return
		}
		next, _ := utf8.DecodeRuneInString(rest[3:])
		if !unicode.IsSpace(next) {
			ps.ErrorHere("not")
			return
		}
		ps.Pos += 3
		node.Result = true
	})
}
