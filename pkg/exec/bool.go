package exec

import (
	"strings"

	"github.com/sandrolain/gojsonpath/pkg/types"
)

// boolResult is the three-valued outcome of a predicate.
type boolResult int

const (
	boolFalse boolResult = iota
	boolTrue
	boolUnknown
)

// predicateCallback tests one pair of operand items. A non-nil error is
// always a hard abort; recoverable conditions surface as boolUnknown.
type predicateCallback func(node *types.Node, left, right *Item) (boolResult, error)

// executeBoolItem evaluates a predicate node in three-valued logic.
// Only predicates in item position may have a successor in the chain.
func (cxt *execContext) executeBoolItem(node *types.Node, jb *Item, canHaveNext bool) (boolResult, error) {
	if !canHaveNext && node.HasNext() {
		return boolUnknown, &hardError{types.Errorf(types.ErrInternal,
			"boolean jsonpath item cannot have next item")}
	}

	switch node.Type {
	case types.NodeAnd:
		left, err := cxt.executeBoolItem(node.Left, jb, false)
		if err != nil {
			return boolUnknown, err
		}
		if left == boolFalse {
			return boolFalse, nil
		}
		// False && Unknown is False, so the right side still runs when the
		// left is Unknown.
		right, err := cxt.executeBoolItem(node.Right, jb, false)
		if err != nil {
			return boolUnknown, err
		}
		if right == boolTrue {
			return left, nil
		}
		return right, nil

	case types.NodeOr:
		left, err := cxt.executeBoolItem(node.Left, jb, false)
		if err != nil {
			return boolUnknown, err
		}
		if left == boolTrue {
			return boolTrue, nil
		}
		right, err := cxt.executeBoolItem(node.Right, jb, false)
		if err != nil {
			return boolUnknown, err
		}
		if right == boolFalse {
			return left, nil
		}
		return right, nil

	case types.NodeNot:
		arg, err := cxt.executeBoolItem(node.Arg, jb, false)
		if err != nil {
			return boolUnknown, err
		}
		switch arg {
		case boolUnknown:
			return boolUnknown, nil
		case boolTrue:
			return boolFalse, nil
		default:
			return boolTrue, nil
		}

	case types.NodeIsUnknown:
		arg, err := cxt.executeBoolItem(node.Arg, jb, false)
		if err != nil {
			return boolUnknown, err
		}
		if arg == boolUnknown {
			return boolTrue, nil
		}
		return boolFalse, nil

	case types.NodeEqual, types.NodeNotEqual,
		types.NodeLess, types.NodeGreater,
		types.NodeLessOrEqual, types.NodeGreaterOrEqual:
		return cxt.executePredicate(node, node.Left, node.Right, jb, true,
			cxt.executeComparison)

	case types.NodeStartsWith:
		// The initial operand is not unwrapped: an array of prefixes is
		// not a prefix.
		return cxt.executePredicate(node, node.Left, node.Right, jb, false,
			executeStartsWith)

	case types.NodeLikeRegex:
		return cxt.executePredicate(node, node.Left, nil, jb, false,
			cxt.executeLikeRegex)

	case types.NodeExists:
		return cxt.executeExists(node, jb)
	}

	return boolUnknown, &hardError{types.Errorf(types.ErrInternal,
		"invalid boolean jsonpath item type: %d", int(node.Type))}
}

// executeNestedBoolItem evaluates a filter predicate with jb bound as the
// current item for @ references.
func (cxt *execContext) executeNestedBoolItem(node *types.Node, jb *Item) (boolResult, error) {
	pop := cxt.pushCurrent(jb)
	defer pop()
	return cxt.executeBoolItem(node, jb, false)
}

// executePredicate applies cb to the cross product of the operand
// sequences. Lax mode short-circuits on the first True and reports a
// trailing Unknown only if no pair matched; strict mode must examine every
// pair and reports Unknown on the first error even after a match.
func (cxt *execContext) executePredicate(pred, larg, rarg *types.Node, jb *Item, unwrapRight bool, cb predicateCallback) (boolResult, error) {
	var lseq, rseq ValueList

	st, err := cxt.executeItemOptUnwrapResultSilent(larg, jb, true, &lseq)
	if st.failed() {
		if isHard(err) {
			return boolUnknown, err
		}
		return boolUnknown, nil
	}
	if rarg != nil {
		st, err = cxt.executeItemOptUnwrapResultSilent(rarg, jb, unwrapRight, &rseq)
		if st.failed() {
			if isHard(err) {
				return boolUnknown, err
			}
			return boolUnknown, nil
		}
	}

	rvals := rseq.Items()
	if rarg == nil {
		rvals = []*Item{nil}
	}

	hadError := false
	found := false
	for _, lval := range lseq.Items() {
		for _, rval := range rvals {
			res, err := cb(pred, lval, rval)
			if err != nil {
				return boolUnknown, err
			}
			switch res {
			case boolUnknown:
				if cxt.strictAbsenceOfErrors() {
					return boolUnknown, nil
				}
				hadError = true
			case boolTrue:
				if !cxt.strictAbsenceOfErrors() {
					return boolTrue, nil
				}
				found = true
			}
		}
	}

	if found {
		return boolTrue, nil
	}
	if hadError {
		return boolUnknown, nil
	}
	return boolFalse, nil
}

// executeExists tests whether the nested path yields any item. Strict mode
// materializes the whole result so that errors after the first item still
// count; lax mode stops at the first item found.
func (cxt *execContext) executeExists(node *types.Node, jb *Item) (boolResult, error) {
	if cxt.strictAbsenceOfErrors() {
		var vals ValueList
		st, err := cxt.executeItemOptUnwrapResultSilent(node.Arg, jb, false, &vals)
		if st.failed() {
			if isHard(err) {
				return boolUnknown, err
			}
			return boolUnknown, nil
		}
		if vals.IsEmpty() {
			return boolFalse, nil
		}
		return boolTrue, nil
	}

	st, err := cxt.executeItemOptUnwrapResultSilent(node.Arg, jb, false, nil)
	if st.failed() {
		if isHard(err) {
			return boolUnknown, err
		}
		return boolUnknown, nil
	}
	if st == resOK {
		return boolTrue, nil
	}
	return boolFalse, nil
}

// executeComparison orders one operand pair under the configured string
// collation.
func (cxt *execContext) executeComparison(node *types.Node, left, right *Item) (boolResult, error) {
	return compareItems(node.Type, left, right, cxt.collator), nil
}

// executeStartsWith tests a string prefix; non-string operands make the
// outcome Unknown rather than False.
func executeStartsWith(_ *types.Node, whole, initial *Item) (boolResult, error) {
	if whole.getScalar(ItemString) == nil || initial.getScalar(ItemString) == nil {
		return boolUnknown, nil
	}
	if strings.HasPrefix(whole.str, initial.str) {
		return boolTrue, nil
	}
	return boolFalse, nil
}

// executeLikeRegex matches a string operand against the compiled pattern
// of the predicate. Non-string operands and unsupported patterns yield
// Unknown.
func (cxt *execContext) executeLikeRegex(node *types.Node, str, _ *Item) (boolResult, error) {
	if str.getScalar(ItemString) == nil {
		return boolUnknown, nil
	}
	re, err := cxt.regex(node.Pattern, node.Flags)
	if err != nil {
		return boolUnknown, nil
	}
	if re.MatchString(str.str) {
		return boolTrue, nil
	}
	return boolFalse, nil
}
