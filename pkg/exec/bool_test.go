package exec_test

import (
	"testing"

	"github.com/sandrolain/gojsonpath/pkg/types"
)

// predicate paths evaluated in item position yield true/false for the two
// definite truth values and null for Unknown.

func TestComparisonLiterals(t *testing.T) {
	tests := []struct {
		name string
		op   types.NodeType
		l, r *types.Node
		want string
	}{
		{"eq-true", types.NodeEqual, types.NewInt(1), types.NewInt(1), "true"},
		{"eq-false", types.NodeEqual, types.NewInt(1), types.NewInt(2), "false"},
		{"neq", types.NodeNotEqual, types.NewInt(1), types.NewInt(2), "true"},
		{"lt", types.NodeLess, types.NewNumber("1.5"), types.NewInt(2), "true"},
		{"le", types.NodeLessOrEqual, types.NewInt(2), types.NewInt(2), "true"},
		{"gt", types.NodeGreater, types.NewString("b"), types.NewString("a"), "true"},
		{"ge-false", types.NodeGreaterOrEqual, types.NewInt(1), types.NewInt(2), "false"},
		{"null-eq-null", types.NodeEqual, types.NewNull(), types.NewNull(), "true"},
		{"null-ne-value", types.NodeNotEqual, types.NewNull(), types.NewInt(1), "true"},
		{"null-eq-value", types.NodeEqual, types.NewNull(), types.NewInt(1), "false"},
		{"null-lt-value", types.NodeLess, types.NewNull(), types.NewInt(1), "false"},
		{"mixed-types", types.NodeEqual, types.NewInt(1), types.NewString("1"), "null"},
		{"bool-order", types.NodeLess, types.NewBool(false), types.NewBool(true), "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := types.LaxPath(types.NewBinary(tt.op, tt.l, tt.r))
			wantResults(t, runQuery(t, path, `null`), []string{tt.want})
		})
	}
}

func TestComparisonUnknownOnError(t *testing.T) {
	// A structural error inside a strict-mode predicate is Unknown, not a
	// query failure.
	path := types.StrictPath(types.NewBinary(types.NodeEqual,
		types.Chain(types.NewRoot(), types.NewKey("missing")),
		types.NewInt(1),
	))
	wantResults(t, runQuery(t, path, `{}`), []string{"null"})
}

func TestComparisonEmptyOperandLax(t *testing.T) {
	// In lax mode a missing member is an empty sequence: no pair matches
	// and no error occurred, so the comparison is False.
	path := types.LaxPath(types.NewBinary(types.NodeEqual,
		types.Chain(types.NewRoot(), types.NewKey("missing")),
		types.NewInt(1),
	))
	wantResults(t, runQuery(t, path, `{}`), []string{"false"})
}

func TestAndOr(t *testing.T) {
	tr := func() *types.Node {
		return types.NewBinary(types.NodeEqual, types.NewInt(1), types.NewInt(1))
	}
	fa := func() *types.Node {
		return types.NewBinary(types.NodeEqual, types.NewInt(1), types.NewInt(2))
	}
	unk := func() *types.Node {
		return types.NewBinary(types.NodeEqual,
			types.Chain(types.NewRoot(), types.NewKey("missing")), types.NewInt(1))
	}

	tests := []struct {
		name string
		pred *types.Node
		want string
	}{
		{"t-and-t", types.NewBinary(types.NodeAnd, tr(), tr()), "true"},
		{"t-and-f", types.NewBinary(types.NodeAnd, tr(), fa()), "false"},
		{"f-and-u", types.NewBinary(types.NodeAnd, fa(), unk()), "false"},
		{"u-and-t", types.NewBinary(types.NodeAnd, unk(), tr()), "null"},
		{"u-and-f", types.NewBinary(types.NodeAnd, unk(), fa()), "false"},
		{"t-or-f", types.NewBinary(types.NodeOr, tr(), fa()), "true"},
		{"f-or-f", types.NewBinary(types.NodeOr, fa(), fa()), "false"},
		{"u-or-t", types.NewBinary(types.NodeOr, unk(), tr()), "true"},
		{"u-or-f", types.NewBinary(types.NodeOr, unk(), fa()), "null"},
		{"not-u", types.NewUnary(types.NodeNot, unk()), "null"},
		{"not-f", types.NewUnary(types.NodeNot, fa()), "true"},
		{"is-unknown", types.NewUnary(types.NodeIsUnknown, unk()), "true"},
		{"is-unknown-false", types.NewUnary(types.NodeIsUnknown, tr()), "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Strict mode keeps the missing-member operand Unknown.
			path := types.StrictPath(tt.pred)
			wantResults(t, runQuery(t, path, `{}`), []string{tt.want})
		})
	}
}

func TestPredicateCrossProduct(t *testing.T) {
	// lax: any pair matching makes the predicate true.
	src := `{"a": [1, 2, 3], "b": [5, 3]}`
	path := types.LaxPath(types.Chain(
		types.NewRoot(),
		types.NewFilter(types.NewBinary(types.NodeEqual,
			types.Chain(types.NewCurrent(), types.NewKey("a")),
			types.Chain(types.NewCurrent(), types.NewKey("b")),
		)),
		types.NewKey("a"),
	))
	wantResults(t, runQuery(t, path, src), []string{"[1, 2, 3]"})
}

func TestStartsWith(t *testing.T) {
	src := `["apple", "apricot", "banana", 42]`
	path := types.LaxPath(types.Chain(
		types.NewRoot(),
		types.NewAnyArray(),
		types.NewFilter(types.NewStartsWith(
			types.NewCurrent(), types.NewString("ap"),
		)),
	))
	wantResults(t, runQuery(t, path, src), []string{`"apple"`, `"apricot"`})
}

func TestLikeRegex(t *testing.T) {
	src := `["alpha", "ALPHA", "beta"]`

	cs := types.LaxPath(types.Chain(
		types.NewRoot(), types.NewAnyArray(),
		types.NewFilter(types.NewLikeRegex(types.NewCurrent(), "^al", 0)),
	))
	wantResults(t, runQuery(t, cs, src), []string{`"alpha"`})

	ci := types.LaxPath(types.Chain(
		types.NewRoot(), types.NewAnyArray(),
		types.NewFilter(types.NewLikeRegex(types.NewCurrent(), "^al", types.RegexICase)),
	))
	wantResults(t, runQuery(t, ci, src), []string{`"alpha"`, `"ALPHA"`})
}

func TestLikeRegexQuoteFlag(t *testing.T) {
	src := `["a.c", "abc"]`
	path := types.LaxPath(types.Chain(
		types.NewRoot(), types.NewAnyArray(),
		types.NewFilter(types.NewLikeRegex(types.NewCurrent(), "a.c", types.RegexQuote)),
	))
	wantResults(t, runQuery(t, path, src), []string{`"a.c"`})
}

func TestExistsPredicate(t *testing.T) {
	src := `[{"a": 1}, {"b": 2}]`
	path := types.LaxPath(types.Chain(
		types.NewRoot(), types.NewAnyArray(),
		types.NewFilter(types.NewExists(
			types.Chain(types.NewCurrent(), types.NewKey("a")),
		)),
	))
	wantResults(t, runQuery(t, path, src), []string{`{"a": 1}`})
}

func TestFilterUnknownExcludes(t *testing.T) {
	// Items where the predicate is Unknown are filtered out, same as
	// false.
	src := `[{"v": 1}, {"v": "x"}, {"v": 3}]`
	path := types.LaxPath(types.Chain(
		types.NewRoot(), types.NewAnyArray(),
		types.NewFilter(types.NewBinary(types.NodeGreater,
			types.Chain(types.NewCurrent(), types.NewKey("v")),
			types.NewInt(0),
		)),
		types.NewKey("v"),
	))
	wantResults(t, runQuery(t, path, src), []string{"1", "3"})
}
