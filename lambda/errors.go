package lambda

import (
	"errors"
	"fmt"
)

var (
	ErrFunctionNotFound = errors.New("function does not exist")
	ErrMissingParameter = errors.New("missing required parameter")
	ErrDeletionFailed   = errors.New("deletion failed")
	ErrTransport        = errors.New("remote call failed")
	ErrRoleNotFound     = errors.New("execution role not found")
	ErrInvalidTimestamp = errors.New("invalid last-modified timestamp")
)

// OperationError describes a failed step of a run. It matches its Kind with
// errors.Is and unwraps to the underlying cause.
type OperationError struct {
	Op           string
	FunctionName string
	Qualifier    string
	Kind         error
	Err          error
}

func (e *OperationError) Error() string {
	target := e.FunctionName
	if e.Qualifier != "" {
		target += ":" + e.Qualifier
	}
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, target, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, target, e.Kind, e.Err)
}

func (e *OperationError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
