// Package exec implements the SQL/JSON path execution engine: it walks a
// compiled path chain over a JSON document and produces the matching item
// sequence.
//
// Evaluation follows the two-axis error model of the SQL standard. The
// lax/strict mode of the path controls structural error sensitivity
// (missing members, non-arrays, out-of-bounds subscripts), while the
// silent flag of the call controls whether the remaining errors surface to
// the caller or collapse the query to an empty result. Predicates are
// evaluated in three-valued logic; errors inside a predicate become the
// Unknown truth value rather than failing the query.
package exec

import (
	"github.com/sandrolain/gojsonpath/pkg/document"
	"github.com/sandrolain/gojsonpath/pkg/types"
)

// execute runs a complete path over the root item. A nil found means the
// caller only needs existence; in strict mode existence still requires the
// full result list to be materialized so that errors anywhere in it
// surface.
func (cxt *execContext) execute(path *types.Path, found *ValueList) (resultStatus, error) {
	if found == nil && cxt.strictAbsenceOfErrors() {
		var vals ValueList
		st, err := cxt.executeItem(path.Expr, cxt.root, &vals)
		if st.failed() {
			return st, err
		}
		if vals.IsEmpty() {
			return resNotFound, nil
		}
		return resOK, nil
	}
	return cxt.executeItem(path.Expr, cxt.root, found)
}

// executeItem evaluates one path node over jb with mode-default unwrapping.
func (cxt *execContext) executeItem(node *types.Node, jb *Item, found *ValueList) (resultStatus, error) {
	return cxt.executeItemOptUnwrapTarget(node, jb, found, cxt.autoUnwrap())
}

// executeNextItem continues with the successor of node, or emits v if node
// is the end of its chain.
func (cxt *execContext) executeNextItem(node *types.Node, v *Item, found *ValueList) (resultStatus, error) {
	if node.HasNext() {
		return cxt.executeItem(node.Next, v, found)
	}
	if found != nil {
		found.Append(v)
	}
	return resOK, nil
}

// executeItemOptUnwrapTarget is the central dispatch of the engine: one
// case per node type, with the unwrap flag controlling whether array
// targets spread into their elements before the accessor applies.
//
// The switch is exhaustive over the node type set; an unhandled type is an
// engine bug and aborts evaluation.
func (cxt *execContext) executeItemOptUnwrapTarget(node *types.Node, jb *Item, found *ValueList, unwrap bool) (resultStatus, error) {
	release, err := cxt.enter()
	if err != nil {
		return resFailed, err
	}
	defer release()

	switch node.Type {
	case types.NodeKey:
		if jb.isObject() {
			v, ok := jb.bin.Member(node.Str)
			if ok {
				return cxt.executeNextItem(node, fromDocument(v), found)
			}
			if !cxt.ignoreStructuralErrors {
				return cxt.raise(types.Errorf(types.ErrMemberNotFound,
					"JSON object does not contain key %q", node.Str))
			}
			return resNotFound, nil
		}
		if unwrap && jb.isArray() {
			return cxt.executeItemUnwrapTargetArray(node, jb, found, false)
		}
		if !cxt.ignoreStructuralErrors {
			return cxt.raise(types.Errorf(types.ErrMemberNotFound,
				"jsonpath member accessor can only be applied to an object"))
		}
		return resNotFound, nil

	case types.NodeRoot:
		prev := cxt.setBaseObject(cxt.root, 0)
		st, err := cxt.executeNextItem(node, cxt.root, found)
		cxt.baseObject = prev
		return st, err

	case types.NodeCurrent:
		return cxt.executeNextItem(node, cxt.current(), found)

	case types.NodeAnyArray:
		if jb.isArray() {
			return cxt.executeAnyItem(node.Next, jb.bin, found, 1, 1, 1,
				false, cxt.autoUnwrap())
		}
		if cxt.autoWrap() {
			return cxt.executeNextItem(node, jb, found)
		}
		if !cxt.ignoreStructuralErrors {
			return cxt.raise(types.Errorf(types.ErrArrayNotFound,
				"jsonpath wildcard array accessor can only be applied to an array"))
		}
		return resNotFound, nil

	case types.NodeIndexArray:
		return cxt.executeIndexArray(node, jb, found)

	case types.NodeLast:
		if cxt.innermostArraySize < 0 {
			return cxt.fatal(types.Errorf(types.ErrInternal,
				"evaluating jsonpath LAST outside of array subscript"))
		}
		return cxt.executeNextItem(node, intItem(int64(cxt.innermostArraySize-1)), found)

	case types.NodeAnyKey:
		if jb.isObject() {
			return cxt.executeAnyItem(node.Next, jb.bin, found, 1, 1, 1,
				false, cxt.autoUnwrap())
		}
		if unwrap && jb.isArray() {
			return cxt.executeItemUnwrapTargetArray(node, jb, found, false)
		}
		if !cxt.ignoreStructuralErrors {
			return cxt.raise(types.Errorf(types.ErrObjectNotFound,
				"jsonpath wildcard member accessor can only be applied to an object"))
		}
		return resNotFound, nil

	case types.NodeAny:
		return cxt.executeAny(node, jb, found)

	case types.NodeFilter:
		if unwrap && jb.isArray() {
			return cxt.executeItemUnwrapTargetArray(node, jb, found, false)
		}
		st, err := cxt.executeNestedBoolItem(node.Arg, jb)
		if err != nil {
			return resFailed, err
		}
		if st != boolTrue {
			return resNotFound, nil
		}
		return cxt.executeNextItem(node, jb, found)

	case types.NodeNull, types.NodeBool, types.NodeNumeric, types.NodeString:
		if !node.HasNext() && found == nil {
			// The scalar cannot influence existence, skip materializing it.
			return resOK, nil
		}
		return cxt.executeNextItem(node, literalItem(node), found)

	case types.NodeVariable:
		// Never skipped: an undefined variable must be reported even when
		// the caller only probes existence.
		var v *Item
		var baseID int
		var ok bool
		if cxt.vars != nil {
			v, baseID, ok = cxt.vars.Lookup(node.Str)
		}
		if !ok {
			return cxt.fatal(types.Errorf(types.ErrUndefinedVariable,
				"could not find jsonpath variable %q", node.Str))
		}
		prev := cxt.setBaseObject(v, baseID)
		st, err := cxt.executeNextItem(node, v, found)
		cxt.baseObject = prev
		return st, err

	case types.NodeAdd, types.NodeSub, types.NodeMul, types.NodeDiv, types.NodeMod:
		return cxt.executeBinaryArithmExpr(node, jb, found)

	case types.NodePlus, types.NodeMinus:
		return cxt.executeUnaryArithmExpr(node, jb, found)

	case types.NodeAnd, types.NodeOr, types.NodeNot, types.NodeIsUnknown,
		types.NodeEqual, types.NodeNotEqual,
		types.NodeLess, types.NodeGreater,
		types.NodeLessOrEqual, types.NodeGreaterOrEqual,
		types.NodeExists, types.NodeStartsWith, types.NodeLikeRegex:
		st, err := cxt.executeBoolItem(node, jb, true)
		if err != nil {
			return resFailed, err
		}
		return cxt.appendBoolResult(node, found, st)

	case types.NodeType_:
		return cxt.executeNextItem(node, stringItem(jb.TypeName()), found)

	case types.NodeSize:
		size := jb.arraySize()
		if size < 0 {
			if !cxt.autoWrap() {
				if !cxt.ignoreStructuralErrors {
					return cxt.raise(types.Errorf(types.ErrArrayNotFound,
						"jsonpath item method .size() can only be applied to an array"))
				}
				return resNotFound, nil
			}
			size = 1
		}
		return cxt.executeNextItem(node, intItem(int64(size)), found)

	case types.NodeAbs:
		return cxt.executeNumericItemMethod(node, jb, unwrap, numericAbs, found)

	case types.NodeFloor:
		return cxt.executeNumericItemMethod(node, jb, unwrap, numericFloor, found)

	case types.NodeCeiling:
		return cxt.executeNumericItemMethod(node, jb, unwrap, numericCeil, found)

	case types.NodeDouble:
		return cxt.executeDoubleMethod(node, jb, unwrap, found)

	case types.NodeDatetime:
		return cxt.executeDatetimeMethod(node, jb, unwrap, found)

	case types.NodeKeyValue:
		if unwrap && jb.isArray() {
			return cxt.executeItemUnwrapTargetArray(node, jb, found, false)
		}
		return cxt.executeKeyValueMethod(node, jb, found)
	}

	return cxt.fatal(types.Errorf(types.ErrInternal,
		"unrecognized jsonpath item type: %d", int(node.Type)))
}

// literalItem materializes a literal node as an item.
func literalItem(node *types.Node) *Item {
	switch node.Type {
	case types.NodeNull:
		return nullItem()
	case types.NodeBool:
		return boolItem(node.Bool)
	case types.NodeNumeric:
		return numericItem(node.Num)
	default:
		return stringItem(node.Str)
	}
}

// executeItemUnwrapTargetArray applies node to each element of an array
// target in order.
func (cxt *execContext) executeItemUnwrapTargetArray(node *types.Node, jb *Item, found *ValueList, unwrapElements bool) (resultStatus, error) {
	if jb.kind != ItemBinary {
		return cxt.fatal(types.Errorf(types.ErrInternal,
			"invalid item type %s while unwrapping an array", jb.TypeName()))
	}
	return cxt.executeAnyItem(node, jb.bin, found, 1, 1, 1, false, unwrapElements)
}

// executeIndexArray evaluates an index-array accessor: each subscript is a
// nested path that must produce a single numeric index, ranges run
// inclusively, and LAST binds to the size of this array while subscripts
// evaluate.
func (cxt *execContext) executeIndexArray(node *types.Node, jb *Item, found *ValueList) (resultStatus, error) {
	if !jb.isArray() && !cxt.autoWrap() {
		if !cxt.ignoreStructuralErrors {
			return cxt.raise(types.Errorf(types.ErrArrayNotFound,
				"jsonpath array accessor can only be applied to an array"))
		}
		return resNotFound, nil
	}

	size := jb.arraySize()
	singleton := size < 0 // scalar auto-wrapped as a one-element array
	if singleton {
		size = 1
	}

	savedSize := cxt.innermostArraySize
	cxt.innermostArraySize = size
	defer func() { cxt.innermostArraySize = savedSize }()

	res := resNotFound
	for _, sub := range node.Subscripts {
		from, err := cxt.getArrayIndex(sub.From, jb)
		if err != nil {
			return resFailed, err
		}
		to := from
		if sub.To != nil {
			if to, err = cxt.getArrayIndex(sub.To, jb); err != nil {
				return resFailed, err
			}
		}

		if !cxt.ignoreStructuralErrors &&
			(from < 0 || from > to || to >= size) {
			return cxt.raise(types.Errorf(types.ErrInvalidSubscript,
				"jsonpath array subscript is out of bounds"))
		}
		if from < 0 {
			from = 0
		}
		if to > size-1 {
			to = size - 1
		}

		for i := from; i <= to; i++ {
			v := jb
			if !singleton {
				elem, ok := jb.bin.Element(i)
				if !ok {
					continue
				}
				v = fromDocument(elem)
			}
			st, err := cxt.executeNextItem(node, v, found)
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
	}
	return res, nil
}

// getArrayIndex evaluates a subscript expression to a bounded integer
// index, truncating fractional values toward zero.
func (cxt *execContext) getArrayIndex(node *types.Node, jb *Item) (int, error) {
	var vals ValueList
	st, err := cxt.executeItem(node, jb, &vals)
	if st.failed() {
		return 0, err
	}
	if vals.Len() != 1 || vals.Head().getScalar(ItemNumeric) == nil {
		_, err := cxt.raise(types.Errorf(types.ErrInvalidSubscript,
			"jsonpath array subscript is not a single numeric value"))
		return 0, err
	}
	i, convErr := numericInt(vals.Head().num)
	if convErr != nil {
		_, err := cxt.raise(types.Errorf(types.ErrInvalidSubscript,
			"jsonpath array subscript is out of range for integer"))
		return 0, err
	}
	return i, nil
}

// executeAny evaluates the ** accessor. A zero lower bound applies the
// rest of the path to the target itself first, with structural errors
// ignored so that a probe of the wrong shape stays silent; levels below
// then come from the recursive descent.
func (cxt *execContext) executeAny(node *types.Node, jb *Item, found *ValueList) (resultStatus, error) {
	if node.First == 0 {
		saved := cxt.ignoreStructuralErrors
		cxt.ignoreStructuralErrors = true
		st, err := cxt.executeNextItem(node, jb, found)
		cxt.ignoreStructuralErrors = saved
		if st.failed() && isHard(err) {
			return st, err
		}
		if st == resOK && found == nil {
			return st, nil
		}
	}
	if jb.kind == ItemBinary {
		return cxt.executeAnyItem(node.Next, jb.bin, found,
			1, node.First, node.Last, true, cxt.autoUnwrap())
	}
	return resNotFound, nil
}

// appendBoolResult emits the outcome of a predicate evaluated in item
// position: Unknown becomes JSON null.
func (cxt *execContext) appendBoolResult(node *types.Node, found *ValueList, st boolResult) (resultStatus, error) {
	if !node.HasNext() && found == nil {
		return resOK, nil
	}
	var v *Item
	if st == boolUnknown {
		v = nullItem()
	} else {
		v = boolItem(st == boolTrue)
	}
	return cxt.executeNextItem(node, v, found)
}

// executeItemOptUnwrapResult evaluates node and, in lax mode with unwrap
// requested, spreads array results into their elements.
func (cxt *execContext) executeItemOptUnwrapResult(node *types.Node, jb *Item, unwrap bool, found *ValueList) (resultStatus, error) {
	if unwrap && cxt.autoUnwrap() {
		var seq ValueList
		st, err := cxt.executeItem(node, jb, &seq)
		if st.failed() {
			return st, err
		}
		for _, item := range seq.Items() {
			if item.isArray() {
				item.bin.Each(func(_ string, elem document.Value) bool {
					found.Append(fromDocument(elem))
					return true
				})
			} else {
				found.Append(item)
			}
		}
		return st, nil
	}
	return cxt.executeItem(node, jb, found)
}

// executeItemOptUnwrapResultSilent is executeItemOptUnwrapResult with
// error throwing suppressed, used where failures feed three-valued logic
// instead of aborting.
func (cxt *execContext) executeItemOptUnwrapResultSilent(node *types.Node, jb *Item, unwrap bool, found *ValueList) (resultStatus, error) {
	saved := cxt.throwErrors
	cxt.throwErrors = false
	st, err := cxt.executeItemOptUnwrapResult(node, jb, unwrap, found)
	cxt.throwErrors = saved
	return st, err
}
