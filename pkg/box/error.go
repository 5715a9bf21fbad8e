package box

import (
	"errors"
	"fmt"
)

var (
	ErrSizeTooSmall          = errors.New("box size smaller than its header")
	ErrInvalidText           = errors.New("box text is not valid utf-8")
	ErrChildLargerThanParent = errors.New("child box larger than its parent")
	ErrMissingRequiredChild  = errors.New("required child box not found")
)

// MissingChildError reports a container that was fully scanned without
// finding a mandatory child.
type MissingChildError struct {
	Parent BoxType
	Child  BoxType
}

func (e *MissingChildError) Error() string {
	return fmt.Sprintf("%s: %s box not found", e.Parent, e.Child)
}

func (e *MissingChildError) Unwrap() error {
	return ErrMissingRequiredChild
}
