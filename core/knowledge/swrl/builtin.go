package swrl

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/adalundhe/owlreasoner/core/ontology"
	"github.com/adalundhe/owlreasoner/core/vocabulary"
)

// ErrUnknownBuiltIn is returned when a builtin IRI is not registered.
var ErrUnknownBuiltIn = errors.New("unknown builtin")

// =============================================================================
// Builtin registry
// =============================================================================

type builtinDef struct {
	name  string
	arity int
	eval  func(args []ontology.Term) bool
}

var builtins = map[string]builtinDef{
	vocabulary.SwrlbEqual:                 {"equal", 2, func(a []ontology.Term) bool { return a[0] == a[1] }},
	vocabulary.SwrlbNotEqual:              {"notEqual", 2, func(a []ontology.Term) bool { return a[0] != a[1] }},
	vocabulary.SwrlbLessThan:              {"lessThan", 2, compareWith(func(c int) bool { return c < 0 })},
	vocabulary.SwrlbLessThanOrEqual:       {"lessThanOrEqual", 2, compareWith(func(c int) bool { return c <= 0 })},
	vocabulary.SwrlbGreaterThan:           {"greaterThan", 2, compareWith(func(c int) bool { return c > 0 })},
	vocabulary.SwrlbGreaterThanOrEqual:    {"greaterThanOrEqual", 2, compareWith(func(c int) bool { return c >= 0 })},
	vocabulary.SwrlbStringEqualIgnoreCase: {"stringEqualIgnoreCase", 2, strings2(strings.EqualFold)},
	vocabulary.SwrlbContains:              {"contains", 2, strings2(strings.Contains)},
	vocabulary.SwrlbContainsIgnoreCase:    {"containsIgnoreCase", 2, strings2(containsFold)},
	vocabulary.SwrlbStartsWith:            {"startsWith", 2, strings2(strings.HasPrefix)},
	vocabulary.SwrlbEndsWith:              {"endsWith", 2, strings2(strings.HasSuffix)},
	vocabulary.SwrlbMatches:               {"matches", 2, strings2(matches)},
	vocabulary.SwrlbLangMatches:           {"langMatches", 2, langMatches},
}

// lookupBuiltIn accepts a full builtin IRI or a swrlb: prefixed name.
func lookupBuiltIn(name string) (builtinDef, bool) {
	if strings.HasPrefix(name, "swrlb:") {
		name = vocabulary.SWRLB + strings.TrimPrefix(name, "swrlb:")
	}
	def, ok := builtins[name]
	return def, ok
}

// BuiltIns returns the IRIs of the registered builtins, sorted.
func BuiltIns() []string {
	out := make([]string, 0, len(builtins))
	for iri := range builtins {
		out = append(out, iri)
	}
	sort.Strings(out)
	return out
}

// evaluateBuiltIn reports whether the binding passes the builtin filter. A
// row with an unbound argument fails.
func (a Atom) evaluateBuiltIn(b Binding) bool {
	def, ok := lookupBuiltIn(a.property.Value())
	if !ok {
		return false
	}
	values := make([]ontology.Term, len(a.args))
	for i, arg := range a.args {
		values[i] = arg.resolve(b)
		if values[i].IsNull() {
			return false
		}
	}
	return def.eval(values)
}

func compareWith(accept func(int) bool) func([]ontology.Term) bool {
	return func(a []ontology.Term) bool { return accept(a[0].Compare(a[1])) }
}

// strings2 lifts a string predicate over the lexical values of two terms.
// Resources compare by their IRI.
func strings2(f func(s, t string) bool) func([]ontology.Term) bool {
	return func(a []ontology.Term) bool { return f(a[0].Value(), a[1].Value()) }
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

var patterns sync.Map

func matches(s, pattern string) bool {
	if cached, ok := patterns.Load(pattern); ok {
		re, _ := cached.(*regexp.Regexp)
		return re != nil && re.MatchString(s)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		patterns.Store(pattern, (*regexp.Regexp)(nil))
		return false
	}
	patterns.Store(pattern, re)
	return re.MatchString(s)
}

// langMatches checks the language tag of the first argument against the
// range given by the second: a plain literal holding a range, "*", or
// another tagged literal whose tag is used as the range.
func langMatches(a []ontology.Term) bool {
	tag := a[0].Lang()
	rng := languageOf(a[1])
	switch {
	case tag == "":
		return false
	case rng == "*":
		return true
	default:
		return tag == rng || strings.HasPrefix(tag, rng+"-")
	}
}

func languageOf(t ontology.Term) string {
	if t.Lang() != "" {
		return t.Lang()
	}
	if t.IsLiteral() {
		return strings.ToLower(t.Value())
	}
	return ""
}
