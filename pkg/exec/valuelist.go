package exec

import "github.com/sandrolain/gojsonpath/pkg/document"

// ValueList is the ordered, duplicate-preserving result sequence of a path
// evaluation, with a singleton fast path that avoids slice allocation for
// the common one-result case. The optimization is not observable through
// the API.
type ValueList struct {
	singleton *Item
	list      []*Item
}

// Append adds an item to the end of the sequence.
func (l *ValueList) Append(it *Item) {
	switch {
	case l.singleton != nil:
		l.list = append(make([]*Item, 0, 2), l.singleton, it)
		l.singleton = nil
	case l.list == nil:
		l.singleton = it
	default:
		l.list = append(l.list, it)
	}
}

// Len returns the number of items in the sequence.
func (l *ValueList) Len() int {
	if l.singleton != nil {
		return 1
	}
	return len(l.list)
}

// IsEmpty reports whether the sequence holds no items.
func (l *ValueList) IsEmpty() bool { return l.Len() == 0 }

// Head returns the first item, or nil if the sequence is empty.
func (l *ValueList) Head() *Item {
	if l.singleton != nil {
		return l.singleton
	}
	if len(l.list) > 0 {
		return l.list[0]
	}
	return nil
}

// Items returns the sequence as a slice in appension order.
func (l *ValueList) Items() []*Item {
	if l.singleton != nil {
		return []*Item{l.singleton}
	}
	return l.list
}

// Iterator starts a single-pass iteration over the current snapshot of the
// sequence. Restart by calling Iterator again.
func (l *ValueList) Iterator() ValueListIterator {
	return ValueListIterator{items: l.Items()}
}

// ValueListIterator walks a sequence snapshot front to back.
type ValueListIterator struct {
	items []*Item
	pos   int
}

// Next returns the next item, or nil when the iteration is exhausted.
func (it *ValueListIterator) Next() *Item {
	if it.pos >= len(it.items) {
		return nil
	}
	v := it.items[it.pos]
	it.pos++
	return v
}

// WrapInArray serializes the whole sequence as a single JSON array, the
// array-mode output convention of host query layers.
func (l *ValueList) WrapInArray() string {
	out := "[]"
	for _, it := range l.Items() {
		out = document.AppendArray(out, it.JSON())
	}
	return out
}
