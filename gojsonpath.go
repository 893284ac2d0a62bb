// Package gojsonpath evaluates SQL/JSON path expressions over JSON
// documents.
//
// A path is a compiled chain of accessor, filter and method steps built
// with the constructors of pkg/types. Evaluation follows the SQL standard
// semantics: lax paths adapt to the document's structure by unwrapping
// arrays and ignoring missing members, strict paths report every
// structural mismatch, and filter predicates use three-valued logic where
// errors become the Unknown truth value.
//
// # Example
//
//	// lax $.items[*] ? (@.price > 10).name
//	path := types.LaxPath(types.Chain(
//		types.NewRoot(),
//		types.NewKey("items"),
//		types.NewAnyArray(),
//		types.NewFilter(types.NewBinary(types.NodeGreater,
//			types.Chain(types.NewCurrent(), types.NewKey("price")),
//			types.NewInt(10),
//		)),
//		types.NewKey("name"),
//	))
//
//	names, err := gojsonpath.Query(path, doc)
//
// The package-level functions cover the common one-shot calls; build an
// [exec.Executor] directly to share configuration between queries.
package gojsonpath

import (
	"github.com/sandrolain/gojsonpath/pkg/document"
	"github.com/sandrolain/gojsonpath/pkg/exec"
	"github.com/sandrolain/gojsonpath/pkg/types"
)

// Option configures a query call. The available options live in pkg/exec.
type Option = exec.Option

// Re-exported options for one-shot calls.
var (
	WithVars     = exec.WithVars
	WithVarsJSON = exec.WithVarsJSON
	WithSilent   = exec.WithSilent
	WithMaxDepth = exec.WithMaxDepth
	WithLogger   = exec.WithLogger
	WithDebug    = exec.WithDebug
)

// Query evaluates path over the JSON document src and returns the JSON
// text of every matching item in document order.
func Query(path *types.Path, src string, opts ...Option) ([]string, error) {
	list, err := query(path, src, opts)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, list.Len())
	for _, item := range list.Items() {
		out = append(out, item.JSON())
	}
	return out, nil
}

// QueryArray evaluates path over src and returns the whole result
// sequence as a single JSON array.
func QueryArray(path *types.Path, src string, opts ...Option) (string, error) {
	list, err := query(path, src, opts)
	if err != nil {
		return "", err
	}
	return list.WrapInArray(), nil
}

// QueryFirst evaluates path over src and returns the JSON text of the
// first matching item; ok is false when nothing matched.
func QueryFirst(path *types.Path, src string, opts ...Option) (res string, ok bool, err error) {
	list, err := query(path, src, opts)
	if err != nil {
		return "", false, err
	}
	if list.IsEmpty() {
		return "", false, nil
	}
	return list.Head().JSON(), true, nil
}

// QueryFirstText is QueryFirst with string results unquoted, for callers
// consuming text rather than JSON.
func QueryFirstText(path *types.Path, src string, opts ...Option) (res string, ok bool, err error) {
	list, err := query(path, src, opts)
	if err != nil {
		return "", false, err
	}
	if list.IsEmpty() {
		return "", false, nil
	}
	return list.Head().Unquote(), true, nil
}

// Exists reports whether path matches anything in src.
func Exists(path *types.Path, src string, opts ...Option) (bool, error) {
	doc, err := document.Parse(src)
	if err != nil {
		return false, err
	}
	return exec.New().Exists(path, doc, opts...)
}

// Match evaluates a predicate path over src; the path must produce a
// single boolean result.
func Match(path *types.Path, src string, opts ...Option) (bool, error) {
	doc, err := document.Parse(src)
	if err != nil {
		return false, err
	}
	return exec.New().Match(path, doc, opts...)
}

func query(path *types.Path, src string, opts []Option) (*exec.ValueList, error) {
	doc, err := document.Parse(src)
	if err != nil {
		return nil, err
	}
	return exec.New().Query(path, doc, opts...)
}
