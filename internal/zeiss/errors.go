package zeiss

import (
	"fmt"
)

// ErrUnknownTypeIdentifier indicates a block mark outside the type table.
// The whole line is rejected.
type ErrUnknownTypeIdentifier struct {
	Code string
}

func (e *ErrUnknownTypeIdentifier) Error() string {
	return fmt.Sprintf("unknown Zeiss type identifier: %q", e.Code)
}

// ErrUndecodedLine indicates a line that belongs to no dialect.
type ErrUndecodedLine struct {
	Line   string
	Reason string
}

func (e *ErrUndecodedLine) Error() string {
	return fmt.Sprintf("not a Zeiss REC line (%s): %q", e.Reason, e.Line)
}

// ErrUnknownDialect indicates a dialect name that cannot be parsed.
type ErrUnknownDialect struct {
	Name string
}

func (e *ErrUnknownDialect) Error() string {
	return fmt.Sprintf("unknown Zeiss dialect %q (want R4, R5, REC500 or M5)", e.Name)
}
