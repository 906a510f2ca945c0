package parser

import "fmt"

// ParseError is returned by every parser.ObjectParser and parser.XRefReader
// operation that fails. It always carries the byte offset at which the
// failure was detected (spec §6, §7), so a caller inspecting a rejected
// file can find the exact location of the problem.
type ParseError struct {
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pdf parse error at offset %d: %s", e.Offset, e.Message)
}

func newError(offset int, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Offset: offset}
}
