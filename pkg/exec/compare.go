package exec

import (
	"strings"

	"golang.org/x/text/collate"

	"github.com/sandrolain/gojsonpath/pkg/datetime"
	"github.com/sandrolain/gojsonpath/pkg/document"
	"github.com/sandrolain/gojsonpath/pkg/numeric"
	"github.com/sandrolain/gojsonpath/pkg/types"
)

// compareFamily is the comparison type of an item: scalar kinds plus a
// split of composites into objects and arrays, which never compare equal
// to each other.
type compareFamily int

const (
	cmpNull compareFamily = iota
	cmpBool
	cmpNumber
	cmpString
	cmpDatetime
	cmpArray
	cmpObject
)

func familyOf(it *Item) compareFamily {
	switch it.kind {
	case ItemNull:
		return cmpNull
	case ItemBool:
		return cmpBool
	case ItemNumeric:
		return cmpNumber
	case ItemString:
		return cmpString
	case ItemDatetime:
		return cmpDatetime
	default:
		if it.bin.Kind() == document.KindArray {
			return cmpArray
		}
		return cmpObject
	}
}

// compareItems orders one operand pair under three-valued logic. Nulls
// equal only nulls: any null against a non-null is False for every
// operator except !=, which is True. Operands of different non-null types
// are not comparable, as are composites, and yield Unknown.
func compareItems(op types.NodeType, left, right *Item, col *collate.Collator) boolResult {
	lf, rf := familyOf(left), familyOf(right)

	if lf != rf {
		if lf == cmpNull || rf == cmpNull {
			if op == types.NodeNotEqual {
				return boolTrue
			}
			return boolFalse
		}
		return boolUnknown
	}

	var cmp int
	switch lf {
	case cmpNull:
		cmp = 0
	case cmpBool:
		cmp = compareBool(left.b, right.b)
	case cmpNumber:
		cmp = numeric.Compare(left.num, right.num)
	case cmpString:
		if col != nil {
			cmp = col.CompareString(left.str, right.str)
		} else {
			cmp = strings.Compare(left.str, right.str)
		}
	case cmpDatetime:
		c, err := datetime.Compare(left.dt, right.dt)
		if err != nil {
			return boolUnknown
		}
		cmp = c
	default:
		return boolUnknown
	}

	return applyCompare(op, cmp)
}

// compareBool orders false before true.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}

func applyCompare(op types.NodeType, cmp int) boolResult {
	var res bool
	switch op {
	case types.NodeEqual:
		res = cmp == 0
	case types.NodeNotEqual:
		res = cmp != 0
	case types.NodeLess:
		res = cmp < 0
	case types.NodeGreater:
		res = cmp > 0
	case types.NodeLessOrEqual:
		res = cmp <= 0
	case types.NodeGreaterOrEqual:
		res = cmp >= 0
	default:
		return boolUnknown
	}
	if res {
		return boolTrue
	}
	return boolFalse
}
