package exec

import (
	"github.com/sandrolain/gojsonpath/pkg/document"
	"github.com/sandrolain/gojsonpath/pkg/types"
)

// executeAnyItem walks the children of a container in document order,
// applying node to every value whose nesting level falls inside the
// inclusive [first, last] window. Object members contribute their values;
// array elements contribute themselves. A nil node emits the matching
// values directly.
//
// Structural errors are optionally ignored while node executes, which lets
// the recursive-descent accessor probe values of any shape without strict
// mode failing the walk.
func (cxt *execContext) executeAnyItem(node *types.Node, container document.Value, found *ValueList, level, first, last uint32, ignoreStructural, unwrapNext bool) (resultStatus, error) {
	release, err := cxt.enter()
	if err != nil {
		return resFailed, err
	}
	defer release()

	if level > last {
		return resNotFound, nil
	}

	res := resNotFound
	var outErr error
	container.Each(func(_ string, elem document.Value) bool {
		v := fromDocument(elem)

		if level >= first {
			switch {
			case node != nil:
				var st resultStatus
				var err error
				if ignoreStructural {
					saved := cxt.ignoreStructuralErrors
					cxt.ignoreStructuralErrors = true
					st, err = cxt.executeItemOptUnwrapTarget(node, v, found, unwrapNext)
					cxt.ignoreStructuralErrors = saved
				} else {
					st, err = cxt.executeItemOptUnwrapTarget(node, v, found, unwrapNext)
				}
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
			case found != nil:
				found.Append(v)
				res = resOK
			default:
				res = resOK
				return false
			}
		}

		if level < last && elem.IsComposite() {
			st, err := cxt.executeAnyItem(node, elem, found, level+1, first, last,
				ignoreStructural, unwrapNext)
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
		}
		return true
	})
	return res, outErr
}
