package field

import "fmt"

// ErrNotNumeric indicates a field that should hold a decimal number does not.
type ErrNotNumeric struct {
	Value string
}

func (e *ErrNotNumeric) Error() string {
	return fmt.Sprintf("not a number: %q", e.Value)
}
