package envfile

import (
	"errors"
	"fmt"
)

// Reasons carried by InvalidArgumentError.
const (
	ReasonContainsEquals = "contains '='"
	ReasonInvalidChars   = "invalid characters"
	ReasonNoValue        = "no value supplied"
)

// ErrInvalidArgument matches any *InvalidArgumentError with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a key or value argument that cannot be used.
type InvalidArgumentError struct {
	Arg    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid environment key '%s': %s", e.Arg, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidArgument) succeed.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
