package exec_test

import (
	"testing"

	"github.com/sandrolain/gojsonpath/pkg/exec"
	"github.com/sandrolain/gojsonpath/pkg/types"
)

func TestBinaryArithmetic(t *testing.T) {
	tests := []struct {
		name string
		expr *types.Node
		want string
	}{
		{"add", types.NewBinary(types.NodeAdd, types.NewInt(1), types.NewInt(2)), "3"},
		{"sub", types.NewBinary(types.NodeSub, types.NewInt(1), types.NewInt(2)), "-1"},
		{"mul", types.NewBinary(types.NodeMul, types.NewInt(4), types.NewInt(5)), "20"},
		{"div", types.NewBinary(types.NodeDiv, types.NewInt(7), types.NewInt(2)), "3.5"},
		{"mod", types.NewBinary(types.NodeMod, types.NewInt(7), types.NewInt(3)), "1"},
		{"decimal-exact", types.NewBinary(types.NodeAdd,
			types.NewNumber("0.1"), types.NewNumber("0.2")), "0.3"},
		{"nested", types.NewBinary(types.NodeMul,
			types.NewBinary(types.NodeAdd, types.NewInt(1), types.NewInt(2)),
			types.NewInt(3)), "9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := types.LaxPath(tt.expr)
			wantResults(t, runQuery(t, path, `null`), []string{tt.want})
		})
	}
}

func TestArithmeticOnPathOperands(t *testing.T) {
	src := `{"x": 10, "y": 4}`
	path := types.LaxPath(types.NewBinary(types.NodeSub,
		types.Chain(types.NewRoot(), types.NewKey("x")),
		types.Chain(types.NewRoot(), types.NewKey("y")),
	))
	wantResults(t, runQuery(t, path, src), []string{"6"})
}

func TestDivisionByZero(t *testing.T) {
	path := types.LaxPath(types.NewBinary(types.NodeDiv,
		types.NewInt(1), types.NewInt(0)))
	wantCode(t, runQueryErr(t, path, `null`), types.ErrDivisionByZero)

	// Suppressed in silent mode like any recoverable error.
	wantResults(t, runQuery(t, path, `null`, exec.WithSilent()), nil)
}

func TestBinarySingletonRequired(t *testing.T) {
	// A multi-item operand sequence is an error even in lax mode.
	src := `[1, 2]`
	path := types.LaxPath(types.NewBinary(types.NodeAdd,
		types.Chain(types.NewRoot(), types.NewAnyArray()),
		types.NewInt(1),
	))
	wantCode(t, runQueryErr(t, path, src), types.ErrSingletonRequired)
}

func TestBinaryNonNumericOperand(t *testing.T) {
	path := types.LaxPath(types.NewBinary(types.NodeAdd,
		types.NewString("a"), types.NewInt(1)))
	wantCode(t, runQueryErr(t, path, `null`), types.ErrSingletonRequired)
}

func TestBinaryUnwrapsSingleElementArray(t *testing.T) {
	// Lax result unwrapping turns a one-element array operand into its
	// element.
	src := `{"a": [5]}`
	path := types.LaxPath(types.NewBinary(types.NodeAdd,
		types.Chain(types.NewRoot(), types.NewKey("a")),
		types.NewInt(1),
	))
	wantResults(t, runQuery(t, path, src), []string{"6"})
}

func TestUnaryMinus(t *testing.T) {
	src := `{"x": 5}`
	path := types.LaxPath(types.NewUnary(types.NodeMinus,
		types.Chain(types.NewRoot(), types.NewKey("x"))))
	wantResults(t, runQuery(t, path, src), []string{"-5"})
}

func TestUnarySpreadsOverSequence(t *testing.T) {
	src := `[1, 2, 3]`
	path := types.LaxPath(types.NewUnary(types.NodeMinus,
		types.Chain(types.NewRoot(), types.NewAnyArray())))
	wantResults(t, runQuery(t, path, src), []string{"-1", "-2", "-3"})
}

func TestUnaryPlusPassesThrough(t *testing.T) {
	path := types.LaxPath(types.NewUnary(types.NodePlus, types.NewNumber("-2.5")))
	wantResults(t, runQuery(t, path, `null`), []string{"-2.5"})
}

func TestUnaryNonNumericErrorsEvenLax(t *testing.T) {
	// Unlike structural errors, a non-numeric unary operand is an error
	// in lax mode too.
	src := `[1, "a"]`
	path := types.LaxPath(types.NewUnary(types.NodeMinus,
		types.Chain(types.NewRoot(), types.NewAnyArray())))
	wantCode(t, runQueryErr(t, path, src), types.ErrNumberNotFound)
}
