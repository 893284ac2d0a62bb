// Package types defines the compiled form of SQL/JSON path expressions and
// the structured errors raised while executing them.
//
// A compiled path is an immutable chain of [Node] values. The engine never
// validates or normalizes the chain: it is assumed well-formed by
// construction (the textual parser producing it lives outside this module).
// Nodes are read-only after construction and safe to share between
// concurrent evaluations.
package types

import (
	"math"

	"github.com/cockroachdb/apd/v3"
)

// NodeType identifies the type of a compiled path node.
type NodeType int

// The closed set of path node types.
const (
	// Literals
	NodeNull NodeType = iota
	NodeString
	NodeNumeric
	NodeBool

	// Boolean connectives and predicates
	NodeAnd
	NodeOr
	NodeNot
	NodeIsUnknown
	NodeEqual
	NodeNotEqual
	NodeLess
	NodeGreater
	NodeLessOrEqual
	NodeGreaterOrEqual
	NodeExists
	NodeStartsWith
	NodeLikeRegex

	// Arithmetic
	NodeAdd
	NodeSub
	NodeMul
	NodeDiv
	NodeMod
	NodePlus
	NodeMinus

	// Accessors
	NodeKey        // .key
	NodeRoot       // $
	NodeCurrent    // @
	NodeAnyArray   // [*]
	NodeIndexArray // [subscript, ...]
	NodeAnyKey     // .*
	NodeAny        // .** with optional level bounds
	NodeLast       // LAST array subscript
	NodeVariable   // $name
	NodeFilter     // ? (predicate)

	// Item methods
	NodeType_ // .type()
	NodeSize  // .size()
	NodeAbs
	NodeFloor
	NodeCeiling
	NodeDouble
	NodeDatetime
	NodeKeyValue
)

var nodeNames = map[NodeType]string{
	NodeNull:           "null",
	NodeString:         "string",
	NodeNumeric:        "number",
	NodeBool:           "boolean",
	NodeAnd:            "&&",
	NodeOr:             "||",
	NodeNot:            "!",
	NodeIsUnknown:      "is unknown",
	NodeEqual:          "==",
	NodeNotEqual:       "!=",
	NodeLess:           "<",
	NodeGreater:        ">",
	NodeLessOrEqual:    "<=",
	NodeGreaterOrEqual: ">=",
	NodeExists:         "exists",
	NodeStartsWith:     "starts with",
	NodeLikeRegex:      "like_regex",
	NodeAdd:            "+",
	NodeSub:            "-",
	NodeMul:            "*",
	NodeDiv:            "/",
	NodeMod:            "%",
	NodePlus:           "+",
	NodeMinus:          "-",
	NodeKey:            "key",
	NodeRoot:           "$",
	NodeCurrent:        "@",
	NodeAnyArray:       "[*]",
	NodeIndexArray:     "[]",
	NodeAnyKey:         "*",
	NodeAny:            "**",
	NodeLast:           "last",
	NodeVariable:       "variable",
	NodeFilter:         "filter",
	NodeType_:          "type",
	NodeSize:           "size",
	NodeAbs:            "abs",
	NodeFloor:          "floor",
	NodeCeiling:        "ceiling",
	NodeDouble:         "double",
	NodeDatetime:       "datetime",
	NodeKeyValue:       "keyvalue",
}

// String returns the operation name used in error details.
func (t NodeType) String() string {
	return nodeNames[t]
}

// RegexFlags holds like_regex mode flags converted from the textual flag
// string at compile time.
type RegexFlags uint32

const (
	RegexICase RegexFlags = 1 << iota // i: case insensitive
	RegexSLine                        // s: single-line mode, dot matches newline
	RegexMLine                        // m: multi-line mode
	RegexWSpace                       // x: expanded syntax, ignore whitespace
	RegexQuote                        // q: no special characters
)

// AnyUnbounded marks an absent level bound on a ** accessor.
const AnyUnbounded = uint32(math.MaxUint32)

// Subscript is a single element of an index-array accessor: either one
// index expression or an inclusive "from TO to" range (To == nil for a
// single index).
type Subscript struct {
	From *Node
	To   *Node
}

// Node is one step of a compiled path chain. Unlike most expression
// representations the head of a chain is not an operation but the leftmost
// accessor; Next points to the following step, nil if the step is terminal.
// Binary and unary operator nodes carry child sub-trees instead.
type Node struct {
	Type NodeType
	Next *Node

	// Operator children
	Left  *Node // binary operators; datetime() template argument
	Right *Node // binary operators; datetime() timezone argument
	Arg   *Node // unary operators, filter and exists predicates

	// Index-array subscripts
	Subscripts []Subscript

	// ** level bounds, inclusive
	First uint32
	Last  uint32

	// Scalar payloads
	Str     string       // key name, string literal, variable name
	Bool    bool         // boolean literal
	Num     *apd.Decimal // numeric literal
	Pattern string       // like_regex pattern
	Flags   RegexFlags   // like_regex flags
}

// Path is a complete compiled path expression with its mode flag.
type Path struct {
	Expr *Node
	Lax  bool
}

// LaxPath wraps expr as a lax-mode path.
func LaxPath(expr *Node) *Path { return &Path{Expr: expr, Lax: true} }

// StrictPath wraps expr as a strict-mode path.
func StrictPath(expr *Node) *Path { return &Path{Expr: expr, Lax: false} }

// Chain links nodes into a path chain via Next and returns the head.
// Already-linked tails are preserved: the last node of each argument's
// chain is linked to the following argument.
func Chain(nodes ...*Node) *Node {
	if len(nodes) == 0 {
		return nil
	}
	for i := 0; i < len(nodes)-1; i++ {
		tail := nodes[i]
		for tail.Next != nil {
			tail = tail.Next
		}
		tail.Next = nodes[i+1]
	}
	return nodes[0]
}

// Constructors for path nodes. These are the programmatic equivalent of the
// textual syntax; the parser producing them is outside this module.

func NewRoot() *Node    { return &Node{Type: NodeRoot} }
func NewCurrent() *Node { return &Node{Type: NodeCurrent} }

func NewKey(name string) *Node      { return &Node{Type: NodeKey, Str: name} }
func NewVariable(name string) *Node { return &Node{Type: NodeVariable, Str: name} }

func NewNull() *Node           { return &Node{Type: NodeNull} }
func NewBool(b bool) *Node     { return &Node{Type: NodeBool, Bool: b} }
func NewString(s string) *Node { return &Node{Type: NodeString, Str: s} }

// NewNumeric wraps an arbitrary-precision literal.
func NewNumeric(d *apd.Decimal) *Node { return &Node{Type: NodeNumeric, Num: d} }

// NewInt wraps an integer literal.
func NewInt(i int64) *Node { return &Node{Type: NodeNumeric, Num: apd.New(i, 0)} }

// NewNumber parses a decimal literal; it panics on malformed input, which
// can only be a programming error since literals come from a validated
// compilation step.
func NewNumber(s string) *Node {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic("gojsonpath: malformed numeric literal " + s)
	}
	return NewNumeric(d)
}

func NewAnyArray() *Node { return &Node{Type: NodeAnyArray} }
func NewAnyKey() *Node   { return &Node{Type: NodeAnyKey} }
func NewLast() *Node     { return &Node{Type: NodeLast} }

// NewIndexArray builds an index-array accessor from one or more subscripts.
func NewIndexArray(subs ...Subscript) *Node {
	return &Node{Type: NodeIndexArray, Subscripts: subs}
}

// Index is shorthand for a single-index subscript.
func Index(from *Node) Subscript { return Subscript{From: from} }

// Range is shorthand for a "from TO to" subscript.
func Range(from, to *Node) Subscript { return Subscript{From: from, To: to} }

// NewAny builds a ** accessor with inclusive level bounds; use
// [AnyUnbounded] for an absent upper bound. NewAny(0, AnyUnbounded) is the
// plain .** accessor.
func NewAny(first, last uint32) *Node {
	return &Node{Type: NodeAny, First: first, Last: last}
}

// NewFilter builds a ? (predicate) step.
func NewFilter(pred *Node) *Node { return &Node{Type: NodeFilter, Arg: pred} }

// NewExists builds an exists(expr) predicate.
func NewExists(expr *Node) *Node { return &Node{Type: NodeExists, Arg: expr} }

// NewBinary builds a binary operator node (logical, comparison or
// arithmetic).
func NewBinary(op NodeType, left, right *Node) *Node {
	return &Node{Type: op, Left: left, Right: right}
}

// NewUnary builds a unary operator node (!, + or -, is unknown).
func NewUnary(op NodeType, arg *Node) *Node {
	return &Node{Type: op, Arg: arg}
}

// NewStartsWith builds a "whole STARTS WITH initial" predicate.
func NewStartsWith(whole, initial *Node) *Node {
	return &Node{Type: NodeStartsWith, Left: whole, Right: initial}
}

// NewLikeRegex builds an "expr LIKE_REGEX pattern FLAGS" predicate.
func NewLikeRegex(expr *Node, pattern string, flags RegexFlags) *Node {
	return &Node{Type: NodeLikeRegex, Left: expr, Pattern: pattern, Flags: flags}
}

// NewMethod builds an argument-less item method step such as .type() or
// .keyvalue().
func NewMethod(t NodeType) *Node { return &Node{Type: t} }

// NewDatetime builds a .datetime() step. template may be nil for the
// default-format variant; tz is the optional timezone expression.
func NewDatetime(template *Node, tz *Node) *Node {
	return &Node{Type: NodeDatetime, Left: template, Right: tz}
}

// HasNext reports whether the node has a successor in its path chain.
func (n *Node) HasNext() bool { return n.Next != nil }
