package exec

import (
	"log/slog"

	"golang.org/x/text/collate"

	"github.com/sandrolain/gojsonpath/pkg/cache"
	"github.com/sandrolain/gojsonpath/pkg/document"
	"github.com/sandrolain/gojsonpath/pkg/types"
)

// resultStatus is the outcome of evaluating one path item.
type resultStatus int

const (
	resOK       resultStatus = iota // at least one result produced
	resNotFound                     // empty result
	resFailed                       // error occurred; inspect the error value
)

func (r resultStatus) failed() bool { return r == resFailed }

// hardError wraps an error that must abort the whole evaluation and may not
// be absorbed into an Unknown predicate outcome. Internal invariant
// violations and stack exhaustion are always hard; suppressible conditions
// become hard when the context is in throwing mode.
type hardError struct{ inner *types.Error }

func (e *hardError) Error() string { return e.inner.Error() }
func (e *hardError) Unwrap() error { return e.inner }

func isHard(err error) bool {
	_, ok := err.(*hardError)
	return ok
}

// unwrapQueryError strips the hard wrapper for callers that report the
// underlying condition.
func unwrapQueryError(err error) error {
	if he, ok := err.(*hardError); ok {
		return he.inner
	}
	return err
}

// baseObjectInfo identifies the most recent "named" object, used only by
// .keyvalue() to derive stable ids for generated objects.
type baseObjectInfo struct {
	container document.Value
	valid     bool
	id        int
}

// execContext is the state of one path evaluation call tree. It is owned
// exclusively by a single query execution; concurrent queries each get an
// independent context and share only the read-only compiled path and input
// document.
type execContext struct {
	vars Variables
	root *Item

	// stack holds the current-item bindings for @, innermost last.
	stack []*Item

	baseObject         baseObjectInfo
	lastGeneratedID    int
	innermostArraySize int // -1 when outside any array subscript

	laxMode                bool
	ignoreStructuralErrors bool
	throwErrors            bool

	depth    int
	maxDepth int

	logger     *slog.Logger
	debug      bool
	regexCache *cache.Cache
	collator   *collate.Collator
}

// The lax/strict flag decomposes into unwrap/wrap/error sensitivities.
func (cxt *execContext) autoUnwrap() bool { return cxt.laxMode }
func (cxt *execContext) autoWrap() bool { return cxt.laxMode }
func (cxt *execContext) strictAbsenceOfErrors() bool { return !cxt.laxMode }

// raise converts a suppressible error into the context's propagation form:
// a hard abort in throwing mode, a soft failure otherwise.
func (cxt *execContext) raise(err *types.Error) (resultStatus, error) {
	if cxt.throwErrors {
		return resFailed, &hardError{err}
	}
	return resFailed, err
}

// fatal raises a non-suppressible error; it aborts regardless of mode.
func (cxt *execContext) fatal(err *types.Error) (resultStatus, error) {
	return resFailed, &hardError{err}
}

// enter guards one level of evaluation recursion. The returned release
// function must run on every exit path.
func (cxt *execContext) enter() (func(), error) {
	cxt.depth++
	if cxt.maxDepth > 0 && cxt.depth > cxt.maxDepth {
		cxt.depth--
		return nil, &hardError{types.NewError(types.ErrStackTooDeep,
			"path evaluation recursion limit exceeded")}
	}
	return func() { cxt.depth-- }, nil
}

// pushCurrent binds it as the current item for @ and returns the balancing
// pop, to be deferred so the binding unwinds on every exit path.
func (cxt *execContext) pushCurrent(it *Item) func() {
	cxt.stack = append(cxt.stack, it)
	return func() { cxt.stack = cxt.stack[:len(cxt.stack)-1] }
}

// current returns the innermost @ binding.
func (cxt *execContext) current() *Item {
	return cxt.stack[len(cxt.stack)-1]
}

// setBaseObject installs it as the base object with the given id and
// returns the previous value for restoration.
func (cxt *execContext) setBaseObject(it *Item, id int) baseObjectInfo {
	prev := cxt.baseObject
	cxt.baseObject = baseObjectInfo{id: id}
	if it.kind == ItemBinary {
		cxt.baseObject.container = it.bin
		cxt.baseObject.valid = true
	}
	return prev
}
