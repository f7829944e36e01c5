package swrl

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/owlreasoner/core/ontology"
)

const ex = "http://example.org/"

func iri(local string) ontology.Term { return ontology.NewIRI(ex + local) }

func class(local string) ontology.Class { return ontology.NamedClass(ex + local) }

func prop(local string) ontology.ObjectPropertyExpression { return ontology.ObjectProperty(ex + local) }

func must(a Atom, err error) Atom {
	if err != nil {
		panic(err)
	}
	return a
}

func table(t *testing.T, columns []string, rows ...[]ontology.Term) *Table {
	t.Helper()
	tbl := NewTable(columns...)
	for _, row := range rows {
		b := Binding{}
		for i, c := range columns {
			b[c] = row[i]
		}
		require.NoError(t, tbl.AddRow(b))
	}
	return tbl
}

// rowSet renders rows keyed by column so tables with different column
// orders can be compared.
func rowSet(tbl *Table) []string {
	var out []string
	for i := 0; i < tbl.Len(); i++ {
		b := tbl.Binding(i)
		keys := make([]string, 0, len(b))
		for k := range b {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		s := ""
		for _, k := range keys {
			s += k + "=" + b[k].String() + ";"
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func TestTable_Columns(t *testing.T) {
	tbl := NewTable("x", "y", "x")
	assert.Equal(t, []string{"x", "y"}, tbl.Columns())
	assert.ErrorIs(t, tbl.AddColumn("y"), ErrDuplicateColumn)

	require.NoError(t, tbl.AddRow(Binding{"x": iri("a")}))
	require.NoError(t, tbl.AddColumn("z"))
	v, ok := tbl.Value(0, "z")
	assert.True(t, ok)
	assert.True(t, v.IsNull(), "rows get a null cell for a new column")

	v, ok = tbl.Value(0, "y")
	assert.True(t, ok)
	assert.True(t, v.IsNull())

	_, ok = tbl.Value(0, "missing")
	assert.False(t, ok)
	_, ok = tbl.Value(5, "x")
	assert.False(t, ok)
}

func TestTable_AddRowUnknownColumn(t *testing.T) {
	tbl := NewTable("x")
	err := tbl.AddRow(Binding{"y": iri("a")})
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.Equal(t, 0, tbl.Len())
}

func TestJoin_SharedColumn(t *testing.T) {
	people := table(t, []string{"p"},
		[]ontology.Term{iri("ann")},
		[]ontology.Term{iri("bob")},
		[]ontology.Term{iri("cid")},
	)
	parents := table(t, []string{"p", "c"},
		[]ontology.Term{iri("bob"), iri("dan")},
		[]ontology.Term{iri("ann"), iri("eve")},
		[]ontology.Term{iri("ann"), iri("fay")},
	)

	joined := Join(people, parents)
	assert.Equal(t, []string{"p", "c"}, joined.Columns())
	require.Equal(t, 3, joined.Len())

	// left order first, then right order within a left row
	assert.Equal(t, [][]ontology.Term{
		{iri("ann"), iri("eve")},
		{iri("ann"), iri("fay")},
		{iri("bob"), iri("dan")},
	}, joined.Rows())
}

func TestJoin_Commutative(t *testing.T) {
	a := table(t, []string{"x", "y"},
		[]ontology.Term{iri("1"), iri("2")},
		[]ontology.Term{iri("3"), iri("4")},
		[]ontology.Term{iri("1"), iri("5")},
	)
	b := table(t, []string{"y", "z"},
		[]ontology.Term{iri("2"), iri("6")},
		[]ontology.Term{iri("5"), iri("7")},
		[]ontology.Term{iri("9"), iri("8")},
	)
	ab := Join(a, b)
	ba := Join(b, a)
	assert.Equal(t, 2, ab.Len())
	assert.Equal(t, rowSet(ab), rowSet(ba))
}

func TestJoin_CartesianWithoutSharedColumns(t *testing.T) {
	a := table(t, []string{"x"}, []ontology.Term{iri("1")}, []ontology.Term{iri("2")})
	b := table(t, []string{"y"}, []ontology.Term{iri("3")}, []ontology.Term{iri("4")}, []ontology.Term{iri("5")})

	joined := Join(a, b)
	assert.Equal(t, []string{"x", "y"}, joined.Columns())
	assert.Equal(t, 6, joined.Len())
	assert.Equal(t, [][]ontology.Term{
		{iri("1"), iri("3")}, {iri("1"), iri("4")}, {iri("1"), iri("5")},
		{iri("2"), iri("3")}, {iri("2"), iri("4")}, {iri("2"), iri("5")},
	}, joined.Rows())
}

func TestJoin_NullNeverMatches(t *testing.T) {
	a := NewTable("x", "y")
	require.NoError(t, a.AddRow(Binding{"x": iri("1")}))
	b := NewTable("y", "z")
	require.NoError(t, b.AddRow(Binding{"z": iri("2")}))

	assert.Equal(t, 0, Join(a, b).Len())
}

func TestJoin_TermEquality(t *testing.T) {
	a := table(t, []string{"x"}, []ontology.Term{ontology.NewIRI(ex + "a/")})
	b := table(t, []string{"x", "y"}, []ontology.Term{ontology.NewIRI(ex + "a"), iri("b")})
	assert.Equal(t, 1, Join(a, b).Len(), "trailing slash denotes the same resource")

	c := table(t, []string{"x"}, []ontology.Term{ontology.NewLiteral("1", "")})
	d := table(t, []string{"x"}, []ontology.Term{ontology.NewLiteral("1", ex + "int")})
	assert.Equal(t, 0, Join(c, d).Len(), "literals with different datatypes differ")
}

func TestTable_FilterProjectDistinct(t *testing.T) {
	tbl := table(t, []string{"x", "y"},
		[]ontology.Term{iri("a"), iri("1")},
		[]ontology.Term{iri("a"), iri("2")},
		[]ontology.Term{iri("b"), iri("1")},
	)

	filtered := tbl.Filter(func(b Binding) bool { return b["y"] == iri("1") })
	assert.Equal(t, [][]ontology.Term{{iri("a"), iri("1")}, {iri("b"), iri("1")}}, filtered.Rows())

	projected, err := tbl.Project("x")
	require.NoError(t, err)
	assert.Equal(t, 3, projected.Len())
	assert.Equal(t, [][]ontology.Term{{iri("a")}, {iri("b")}}, projected.Distinct().Rows())

	_, err = tbl.Project("nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestTable_DistinctKeepsNullRowsApart(t *testing.T) {
	tbl := NewTable("x", "y")
	require.NoError(t, tbl.AddRow(Binding{"x": iri("a")}))
	require.NoError(t, tbl.AddRow(Binding{"x": iri("b")}))
	require.NoError(t, tbl.AddRow(Binding{"x": iri("a")}))

	assert.Equal(t, 2, tbl.Distinct().Len())
}

func TestTable_NilLen(t *testing.T) {
	var tbl *Table
	assert.Equal(t, 0, tbl.Len())
}
