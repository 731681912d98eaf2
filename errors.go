package storable

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrCycleDetected is wrapped by the panic raised when a cell configured
// with WithMaxDepth exceeds its notification depth. This almost always
// means two or more cells are setting each other in a loop with values
// that never converge.
//
// Recover at a boundary and match with errors.Is if the process should
// survive a runaway update chain.
var ErrCycleDetected = errors.New("storable: notification cycle detected")

// ErrNestedSet is wrapped by the panic raised when a cell configured with
// NestedReject receives a Set while a notification pass is already running
// on it.
var ErrNestedSet = errors.New("storable: set during notification pass")

// ErrMissingMapper is returned by TwoWayBind when one of the two required
// mapping functions is nil. A binding cannot propagate in a direction it
// has no mapper for, so this is reported at setup time rather than at the
// first change.
var ErrMissingMapper = errors.New("storable: binding requires mappers for both directions")

// TypeMismatchError is returned by SetAny when the dynamic type of the
// supplied value does not match the cell's value type. It carries both
// types so callers restoring erased values (for example from a snapshot)
// can report exactly what went wrong.
type TypeMismatchError struct {
	Want reflect.Type // the cell's value type
	Got  reflect.Type // the dynamic type of the rejected value, nil for untyped nil
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("storable: cannot assign value of type %v to cell of type %v", e.Got, e.Want)
}
