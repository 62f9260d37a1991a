package gsi

import (
	"fmt"
)

// ErrMalformedBlock indicates a raw block substring that cannot be split
// into word index, information, sign and data.
type ErrMalformedBlock struct {
	Raw    string
	Reason string
}

func (e *ErrMalformedBlock) Error() string {
	return fmt.Sprintf("malformed GSI block %q: %s", e.Raw, e.Reason)
}

// ErrUnsupportedWordIndex indicates a word index outside the word-index table.
type ErrUnsupportedWordIndex struct {
	WordIndex int
}

func (e *ErrUnsupportedWordIndex) Error() string {
	return fmt.Sprintf("unsupported GSI word index: %02d", e.WordIndex)
}

// ErrEncode indicates a value that could not be encoded for its word index.
// The block is still produced with the input text as data.
type ErrEncode struct {
	WordIndex int
	Value     string
	Err       error
}

func (e *ErrEncode) Error() string {
	return fmt.Sprintf("encode word index %02d value %q: %v", e.WordIndex, e.Value, e.Err)
}

func (e *ErrEncode) Unwrap() error {
	return e.Err
}
