package exec

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/sandrolain/gojsonpath/pkg/datetime"
	"github.com/sandrolain/gojsonpath/pkg/document"
	"github.com/sandrolain/gojsonpath/pkg/numeric"
	"github.com/sandrolain/gojsonpath/pkg/types"
)

// generatedIDMultiplier spreads base object ids into disjoint ranges so a
// (base id, offset) pair folds into one collision-free object id.
const generatedIDMultiplier = int64(10000000000)

// executeNumericItemMethod applies a numeric transformation method (.abs(),
// .floor(), .ceiling()) to a numeric target.
func (cxt *execContext) executeNumericItemMethod(node *types.Node, jb *Item, unwrap bool, fn func(*apd.Decimal) (*apd.Decimal, error), found *ValueList) (resultStatus, error) {
	if unwrap && jb.isArray() {
		return cxt.executeItemUnwrapTargetArray(node, jb, found, false)
	}
	if jb.getScalar(ItemNumeric) == nil {
		return cxt.raise(types.Errorf(types.ErrNonNumericItem,
			"jsonpath item method .%s() can only be applied to a numeric value",
			node.Type))
	}
	d, err := fn(jb.num)
	if err != nil {
		return cxt.raise(numericOpError(node.Type, err))
	}
	return cxt.executeNextItem(node, numericItem(d), found)
}

// executeDoubleMethod applies .double(): numeric targets are range-checked
// against double precision, string targets are parsed as doubles.
func (cxt *execContext) executeDoubleMethod(node *types.Node, jb *Item, unwrap bool, found *ValueList) (resultStatus, error) {
	if unwrap && jb.isArray() {
		return cxt.executeItemUnwrapTargetArray(node, jb, found, false)
	}

	var out *Item
	switch {
	case jb.getScalar(ItemNumeric) != nil:
		if _, err := numeric.Float64(jb.num); err != nil {
			return cxt.raise(types.Errorf(types.ErrNonNumericItem,
				"numeric argument of jsonpath item method .double() is out of range for type double precision"))
		}
		out = jb

	case jb.getScalar(ItemString) != nil:
		f, err := strconv.ParseFloat(jb.str, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return cxt.raise(types.Errorf(types.ErrNonNumericItem,
				"string argument of jsonpath item method .double() is not a valid representation of a double precision number"))
		}
		d, convErr := numeric.FromFloat(f)
		if convErr != nil {
			return cxt.raise(numericOpError(node.Type, convErr))
		}
		out = numericItem(d)

	default:
		return cxt.raise(types.Errorf(types.ErrNonNumericItem,
			"jsonpath item method .double() can only be applied to a string or numeric value"))
	}

	return cxt.executeNextItem(node, out, found)
}

// executeDatetimeMethod applies .datetime(): the string target is parsed
// either with an explicit format template or against the fixed list of
// recognized formats. An optional timezone argument supplies the default
// offset for values that carry none, as a zone name or seconds east of UTC.
func (cxt *execContext) executeDatetimeMethod(node *types.Node, jb *Item, unwrap bool, found *ValueList) (resultStatus, error) {
	if unwrap && jb.isArray() {
		return cxt.executeItemUnwrapTargetArray(node, jb, found, false)
	}
	if jb.getScalar(ItemString) == nil {
		return cxt.raise(types.Errorf(types.ErrInvalidDatetime,
			"jsonpath item method .datetime() can only be applied to a string"))
	}

	tz := datetime.NoZone
	if node.Right != nil {
		off, st, err := cxt.resolveTimezoneArg(node.Right, jb)
		if err != nil {
			return st, err
		}
		tz = off
	}

	var v datetime.Value
	if node.Left != nil {
		tmpl, st, err := cxt.resolveTemplateArg(node.Left, jb)
		if err != nil {
			return st, err
		}
		parsed, parseErr := datetime.Parse(jb.str, tmpl, tz)
		if parseErr != nil {
			return cxt.raise(types.Errorf(types.ErrInvalidDatetime,
				"datetime %q does not match format %q", jb.str, tmpl).
				WithCause(parseErr))
		}
		v = parsed
	} else {
		parsed, parseErr := datetime.ParseDefault(jb.str, tz)
		if parseErr != nil {
			return cxt.raise(types.Errorf(types.ErrInvalidDatetime,
				"datetime format is not recognized: %q", jb.str))
		}
		v = parsed
	}

	return cxt.executeNextItem(node, datetimeItem(v), found)
}

func (cxt *execContext) resolveTemplateArg(arg *types.Node, jb *Item) (string, resultStatus, error) {
	var vals ValueList
	st, err := cxt.executeItem(arg, jb, &vals)
	if st.failed() {
		return "", st, err
	}
	if vals.Len() != 1 || vals.Head().getScalar(ItemString) == nil {
		st, err := cxt.raise(types.Errorf(types.ErrInvalidDatetime,
			"template argument of jsonpath item method .datetime() is not a single string"))
		return "", st, err
	}
	return vals.Head().str, resOK, nil
}

func (cxt *execContext) resolveTimezoneArg(arg *types.Node, jb *Item) (int, resultStatus, error) {
	var vals ValueList
	st, err := cxt.executeItem(arg, jb, &vals)
	if st.failed() {
		return 0, st, err
	}
	if vals.Len() != 1 {
		st, err := cxt.raise(types.Errorf(types.ErrInvalidDatetime,
			"timezone argument of jsonpath item method .datetime() is not a single value"))
		return 0, st, err
	}

	head := vals.Head()
	switch {
	case head.getScalar(ItemNumeric) != nil:
		off, convErr := numeric.Int32(head.num)
		if convErr != nil {
			st, err := cxt.raise(types.Errorf(types.ErrInvalidDatetime,
				"timezone offset of jsonpath item method .datetime() is out of range"))
			return 0, st, err
		}
		return int(off), resOK, nil
	case head.getScalar(ItemString) != nil:
		off, zoneErr := datetime.ZoneOffset(head.str, time.Now())
		if zoneErr != nil {
			st, err := cxt.raise(types.Errorf(types.ErrInvalidDatetime,
				"unrecognized timezone name %q", head.str).WithCause(zoneErr))
			return 0, st, err
		}
		return off, resOK, nil
	default:
		st, err := cxt.raise(types.Errorf(types.ErrInvalidDatetime,
			"timezone argument of jsonpath item method .datetime() must be a string or number"))
		return 0, st, err
	}
}

// executeKeyValueMethod applies .keyvalue() to an object target, emitting
// one {"key", "value", "id"} object per member in document order. All
// objects of one invocation share the same id, derived from the target's
// position inside the current base object; each emitted object becomes a
// fresh base for nested .keyvalue() calls.
func (cxt *execContext) executeKeyValueMethod(node *types.Node, jb *Item, found *ValueList) (resultStatus, error) {
	if !jb.isObject() {
		return cxt.raise(types.Errorf(types.ErrObjectNotFound,
			"jsonpath item method .keyvalue() can only be applied to an object"))
	}
	if jb.bin.Size() == 0 {
		return resNotFound, nil
	}

	offset := jb.bin.Offset()
	if cxt.baseObject.valid {
		offset -= cxt.baseObject.container.Offset()
	}
	id := int64(cxt.baseObject.id)*generatedIDMultiplier + int64(offset)
	idRaw := strconv.FormatInt(id, 10)

	res := resNotFound
	var outErr error
	jb.bin.Each(func(key string, val document.Value) bool {
		keyRaw, _ := json.Marshal(key)
		obj := binaryItem(document.Synthesize(document.BuildObject([]document.Field{
			{Key: "key", Raw: string(keyRaw)},
			{Key: "value", Raw: val.Raw()},
			{Key: "id", Raw: idRaw},
		})))

		prev := cxt.setBaseObject(obj, cxt.lastGeneratedID)
		cxt.lastGeneratedID++
		st, err := cxt.executeNextItem(node, obj, found)
		cxt.baseObject = prev

		if st.failed() {
			res, outErr = st, err
			return false
		}
		if st == resOK {
			res = resOK
			if found == nil {
				return false
			}
		}
		return true
	})
	return res, outErr
}
