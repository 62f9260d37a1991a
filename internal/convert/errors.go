package convert

import "fmt"

// ErrLineShape indicates an input line whose field layout does not match
// the source format. The line is skipped.
type ErrLineShape struct {
	Line   int
	Reason string
}

func (e *ErrLineShape) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ErrMissingHeader indicates a source file without its mandatory header
// token. Nothing is converted.
type ErrMissingHeader struct {
	Format string
	Token  string
}

func (e *ErrMissingHeader) Error() string {
	return fmt.Sprintf("%s: missing header %s", e.Format, e.Token)
}

// ErrUnknownConverter is returned for a converter name that is not
// registered.
type ErrUnknownConverter struct {
	Name string
}

func (e *ErrUnknownConverter) Error() string {
	return fmt.Sprintf("unknown converter %q", e.Name)
}
