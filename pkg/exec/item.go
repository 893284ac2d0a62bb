package exec

import (
	"encoding/json"

	"github.com/cockroachdb/apd/v3"

	"github.com/sandrolain/gojsonpath/pkg/datetime"
	"github.com/sandrolain/gojsonpath/pkg/document"
	"github.com/sandrolain/gojsonpath/pkg/numeric"
)

// ItemKind tags the value model of the engine.
type ItemKind int

const (
	ItemNull ItemKind = iota
	ItemBool
	ItemNumeric
	ItemString
	ItemBinary   // composite value backed by a document container
	ItemDatetime // virtual: synthesized during evaluation only
)

// Item is a tagged SQL/JSON value flowing through path evaluation. Items
// are immutable after construction; a scalar never carries the ItemBinary
// tag because container-encoded scalars are unwrapped eagerly by
// fromDocument.
type Item struct {
	kind ItemKind
	b    bool
	num  *apd.Decimal
	str  string
	bin  document.Value
	dt   datetime.Value
}

func nullItem() *Item           { return &Item{kind: ItemNull} }
func boolItem(b bool) *Item     { return &Item{kind: ItemBool, b: b} }
func stringItem(s string) *Item { return &Item{kind: ItemString, str: s} }
func numericItem(d *apd.Decimal) *Item {
	return &Item{kind: ItemNumeric, num: d}
}
func intItem(i int64) *Item { return numericItem(numeric.FromInt(i)) }
func binaryItem(v document.Value) *Item {
	return &Item{kind: ItemBinary, bin: v}
}
func datetimeItem(v datetime.Value) *Item {
	return &Item{kind: ItemDatetime, dt: v}
}

// fromDocument converts a document value to an item, collapsing scalars to
// their concrete tag.
func fromDocument(v document.Value) *Item {
	switch v.Kind() {
	case document.KindNull:
		return nullItem()
	case document.KindBool:
		return boolItem(v.Bool())
	case document.KindNumber:
		d, err := numeric.Parse(v.NumberLiteral())
		if err != nil {
			// The document layer only yields valid numeric literals.
			d = numeric.FromInt(0)
		}
		return numericItem(d)
	case document.KindString:
		return stringItem(v.Str())
	default:
		return binaryItem(v)
	}
}

// Kind returns the tag of the item.
func (it *Item) Kind() ItemKind { return it.kind }

// isObject reports whether the item is a composite object.
func (it *Item) isObject() bool {
	return it.kind == ItemBinary && it.bin.Kind() == document.KindObject
}

// isArray reports whether the item is a composite array.
func (it *Item) isArray() bool {
	return it.kind == ItemBinary && it.bin.Kind() == document.KindArray
}

// arraySize returns the element count of an array item, or -1 otherwise.
func (it *Item) arraySize() int {
	if it.kind != ItemBinary {
		return -1
	}
	return it.bin.ArrayLen()
}

// getScalar returns the item if it carries the wanted scalar tag, nil
// otherwise.
func (it *Item) getScalar(kind ItemKind) *Item {
	if it.kind == kind {
		return it
	}
	return nil
}

// TypeName returns the SQL/JSON type name reported by .type(). Datetime
// items report their logical subtype name.
func (it *Item) TypeName() string {
	switch it.kind {
	case ItemNull:
		return "null"
	case ItemBool:
		return "boolean"
	case ItemNumeric:
		return "number"
	case ItemString:
		return "string"
	case ItemDatetime:
		return it.dt.Type.TypeName()
	default:
		return it.bin.Kind().String()
	}
}

// Bool returns the boolean payload.
func (it *Item) Bool() bool { return it.b }

// Numeric returns the numeric payload.
func (it *Item) Numeric() *apd.Decimal { return it.num }

// Str returns the string payload.
func (it *Item) Str() string { return it.str }

// Container returns the backing document container of a composite item.
func (it *Item) Container() document.Value { return it.bin }

// Datetime returns the datetime payload.
func (it *Item) Datetime() datetime.Value { return it.dt }

// JSON serializes the item to JSON text. Datetime items serialize as
// formatted strings, the only representation they have outside evaluation.
func (it *Item) JSON() string {
	switch it.kind {
	case ItemNull:
		return "null"
	case ItemBool:
		if it.b {
			return "true"
		}
		return "false"
	case ItemNumeric:
		return numeric.Text(it.num)
	case ItemString:
		enc, _ := json.Marshal(it.str)
		return string(enc)
	case ItemDatetime:
		enc, _ := json.Marshal(datetime.Format(it.dt))
		return string(enc)
	default:
		return it.bin.Raw()
	}
}

// Unquote renders the item as text, stripping quotes from scalar strings:
// the text-mode output convention of host query layers.
func (it *Item) Unquote() string {
	switch it.kind {
	case ItemString:
		return it.str
	case ItemDatetime:
		return datetime.Format(it.dt)
	default:
		return it.JSON()
	}
}
