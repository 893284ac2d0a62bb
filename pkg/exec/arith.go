package exec

import (
	"errors"

	"github.com/cockroachdb/apd/v3"

	"github.com/sandrolain/gojsonpath/pkg/numeric"
	"github.com/sandrolain/gojsonpath/pkg/types"
)

// executeBinaryArithmExpr evaluates a binary arithmetic operator. Both
// operand paths are evaluated with result unwrapping and must each yield
// exactly one numeric item.
func (cxt *execContext) executeBinaryArithmExpr(node *types.Node, jb *Item, found *ValueList) (resultStatus, error) {
	var lseq, rseq ValueList

	st, err := cxt.executeItemOptUnwrapResult(node.Left, jb, true, &lseq)
	if st.failed() {
		return st, err
	}
	st, err = cxt.executeItemOptUnwrapResult(node.Right, jb, true, &rseq)
	if st.failed() {
		return st, err
	}

	if lseq.Len() != 1 || lseq.Head().getScalar(ItemNumeric) == nil {
		return cxt.raise(types.Errorf(types.ErrSingletonRequired,
			"left operand of jsonpath operator %s is not a single numeric value",
			node.Type))
	}
	if rseq.Len() != 1 || rseq.Head().getScalar(ItemNumeric) == nil {
		return cxt.raise(types.Errorf(types.ErrSingletonRequired,
			"right operand of jsonpath operator %s is not a single numeric value",
			node.Type))
	}

	var op func(a, b *apd.Decimal) (*apd.Decimal, error)
	switch node.Type {
	case types.NodeAdd:
		op = numeric.Add
	case types.NodeSub:
		op = numeric.Sub
	case types.NodeMul:
		op = numeric.Mul
	case types.NodeDiv:
		op = numeric.Div
	default:
		op = numeric.Mod
	}

	res, opErr := op(lseq.Head().num, rseq.Head().num)
	if opErr != nil {
		return cxt.raise(numericOpError(node.Type, opErr))
	}

	if !node.HasNext() && found == nil {
		return resOK, nil
	}
	return cxt.executeNextItem(node, numericItem(res), found)
}

// executeUnaryArithmExpr evaluates unary plus or minus over every item of
// the operand sequence. Unlike member access, a non-numeric operand item is
// an error in lax mode too; it is only skipped when the caller probes
// existence without consuming values.
func (cxt *execContext) executeUnaryArithmExpr(node *types.Node, jb *Item, found *ValueList) (resultStatus, error) {
	var seq ValueList

	st, err := cxt.executeItemOptUnwrapResult(node.Arg, jb, true, &seq)
	if st.failed() {
		return st, err
	}

	existenceOnly := found == nil && !node.HasNext()
	res := resNotFound
	for _, val := range seq.Items() {
		if val.getScalar(ItemNumeric) != nil {
			if existenceOnly {
				return resOK, nil
			}
		} else {
			if existenceOnly {
				continue
			}
			return cxt.raise(types.Errorf(types.ErrNumberNotFound,
				"operand of unary jsonpath operator %s is not a numeric value",
				node.Type))
		}

		out := val
		if node.Type == types.NodeMinus {
			out = numericItem(numeric.Neg(val.num))
		}
		st, err := cxt.executeNextItem(node, out, found)
		if st.failed() {
			return st, err
		}
		if st == resOK {
			res = resOK
			if found == nil {
				return res, nil
			}
		}
	}
	return res, nil
}

// numericOpError maps an arithmetic failure to its SQL/JSON condition.
func numericOpError(op types.NodeType, err error) *types.Error {
	if errors.Is(err, numeric.ErrDivision) {
		return types.NewError(types.ErrDivisionByZero, "division by zero")
	}
	return types.Errorf(types.ErrNumericOutOfRange,
		"result of jsonpath operator %s is out of range", op).WithCause(err)
}

// numericInt converts a subscript value to a bounded integer index.
func numericInt(d *apd.Decimal) (int, error) {
	i, err := numeric.Int32(d)
	if err != nil {
		return 0, err
	}
	return int(i), nil
}

// Adapters matching the numeric item method shape.
func numericAbs(a *apd.Decimal) (*apd.Decimal, error)   { return numeric.Abs(a), nil }
func numericFloor(a *apd.Decimal) (*apd.Decimal, error) { return numeric.Floor(a), nil }
func numericCeil(a *apd.Decimal) (*apd.Decimal, error)  { return numeric.Ceil(a), nil }
