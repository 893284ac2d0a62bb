package exec

import (
	"github.com/sandrolain/gojsonpath/pkg/document"
	"github.com/sandrolain/gojsonpath/pkg/types"
)

// Variables resolves $name references during path evaluation.
//
// Lookup returns the variable's value and the id of the base object the
// value belongs to. Base object ids partition the id space of generated
// objects: ids 1..BaseObjectCount() are reserved for variable providers,
// id 0 is the root document.
type Variables interface {
	// BaseObjectCount returns how many base object ids the provider
	// reserves.
	BaseObjectCount() int

	// Lookup resolves a variable by name. ok is false when the variable
	// is not defined; the engine reports that as an error regardless of
	// error-suppression mode.
	Lookup(name string) (value *Item, baseID int, ok bool)
}

// JSONVariables provides variables from the members of a single JSON
// object, the common host-binding shape.
type JSONVariables struct {
	doc document.Value
}

// NewJSONVariables parses a JSON object whose members become the variable
// bindings.
func NewJSONVariables(src string) (*JSONVariables, error) {
	doc, err := document.Parse(src)
	if err != nil {
		return nil, err
	}
	if doc.Kind() != document.KindObject {
		return nil, types.NewError(types.ErrInvalidVariables,
			"variables must be encoded as a JSON object")
	}
	return &JSONVariables{doc: doc}, nil
}

// BaseObjectCount returns 1: all bindings live in the single backing
// object.
func (v *JSONVariables) BaseObjectCount() int { return 1 }

// Lookup resolves a variable to the member of the backing object with the
// same name.
func (v *JSONVariables) Lookup(name string) (*Item, int, bool) {
	member, ok := v.doc.Member(name)
	if !ok {
		return nil, 0, false
	}
	return fromDocument(member), 1, true
}
