// Package recovery converts panics in user-provided callbacks into errors.
// Ensures caller-supplied transform functions don't crash the process.
package recovery

import (
	"fmt"
	"runtime/debug"
)

// RecoverToError wraps a function call with panic recovery. If the
// function panics, the panic becomes an error carrying the operation name
// and the captured stack trace.
//
// Example:
//
//	err := recovery.RecoverToError("Transform", func() error {
//	    return userFn()
//	})
func RecoverToError(operation string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Operation: operation, Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// PanicError is a recovered panic from a user callback.
type PanicError struct {
	Operation string
	Value     any
	Stack     []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Operation, e.Value)
}
