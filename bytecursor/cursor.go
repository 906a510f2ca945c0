// Package bytecursor implements a random-access, position-tracking view over
// a seekable PDF byte stream. It is the leaf of the decoder: the tokenizer
// pulls bytes from it and never touches the underlying io.ReadSeeker itself.
package bytecursor

import (
	"errors"
	"fmt"
	"io"
)

// ErrEOF is returned by ReadExact when fewer than the requested bytes remain.
var ErrEOF = errors.New("bytecursor: unexpected end of input")

const startxrefKeyword = "startxref"

const scanWindow = 1024

// Cursor is a random-access reader over a seekable PDF byte stream, tracking
// the current byte offset. It treats \r, \n and \r\n as a single logical
// line terminator wherever callers ask it to (FindStartXRefOffset, and the
// fixed-width xref entry reads performed by the tokenizer).
type Cursor struct {
	data []byte // the whole input, held in memory; PDF files are small enough in this core's scope
	pos  int
}

// New wraps data (already read into memory) in a Cursor positioned at 0.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// FromReader drains src into memory and wraps it in a Cursor. Use New
// directly when the caller already has the bytes.
func FromReader(src io.Reader) (*Cursor, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("bytecursor: reading input: %w", err)
	}
	return New(data), nil
}

// Len returns the total number of bytes in the input.
func (c *Cursor) Len() int { return len(c.data) }

// Position returns the current byte offset.
func (c *Cursor) Position() int { return c.pos }

// Seek repositions the cursor. Offsets outside [0, Len()] are clamped to the
// nearest bound rather than rejected, matching the tolerant random-access
// contract the parser relies on when probing offsets taken from an XRef
// table that might itself be slightly stale.
func (c *Cursor) Seek(offset int) {
	switch {
	case offset < 0:
		offset = 0
	case offset > len(c.data):
		offset = len(c.data)
	}
	c.pos = offset
}

// ReadByte returns the byte at the current position and advances by one, or
// reports EOF.
func (c *Cursor) ReadByte() (byte, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	b := c.data[c.pos]
	c.pos++
	return b, true
}

// PeekByte returns the byte at the current position without advancing.
func (c *Cursor) PeekByte() (byte, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	return c.data[c.pos], true
}

// ReadExact reads exactly n bytes, advancing the position. It returns
// ErrEOF, leaving the position unchanged, if fewer than n bytes remain: used
// for stream payloads and 20-byte xref entries, both of which have no valid
// partial read.
func (c *Cursor) ReadExact(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.data) {
		return nil, ErrEOF
	}
	out := c.data[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// Slice returns the raw bytes in [start, end) without moving the cursor,
// clamping the bounds to the input and returning nil for an empty range.
func (c *Cursor) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(c.data) {
		end = len(c.data)
	}
	if start >= end {
		return nil
	}
	return c.data[start:end]
}

// FindStartXRefOffset scans backward from the end of the input for the
// literal "startxref", then forward-parses a non-negative integer followed
// by "%%EOF". It does not move the cursor's read position used by the
// tokenizer; callers seek explicitly afterward.
//
// The backward scan works over a trailing window rather than the whole
// file, the same heuristic used by document readers in this corpus
// (e.g. a backward scan anchored at file end rather than a full-file
// string search) to avoid scanning multi-megabyte payload sections that
// precede the trailer.
func (c *Cursor) FindStartXRefOffset() (int, error) {
	total := len(c.data)
	window := scanWindow
	if window > total {
		window = total
	}

	var start int
	idx := -1
	for start = total - window; ; start -= scanWindow {
		if start < 0 {
			start = 0
		}
		idx = lastIndex(c.data[start:total], startxrefKeyword)
		if idx >= 0 || start == 0 {
			break
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("bytecursor: %q not found", startxrefKeyword)
	}
	afterKeyword := start + idx + len(startxrefKeyword)

	p := afterKeyword
	for p < total && isXRefSpace(c.data[p]) {
		p++
	}
	digitsStart := p
	for p < total && c.data[p] >= '0' && c.data[p] <= '9' {
		p++
	}
	if p == digitsStart {
		return 0, fmt.Errorf("bytecursor: no integer offset after %q", startxrefKeyword)
	}
	offset := 0
	for _, d := range c.data[digitsStart:p] {
		offset = offset*10 + int(d-'0')
	}

	for p < total && isXRefSpace(c.data[p]) {
		p++
	}
	if p+5 > total || string(c.data[p:p+5]) != "%%EOF" {
		return 0, fmt.Errorf("bytecursor: %q not terminated by %%%%EOF", startxrefKeyword)
	}
	if offset >= total {
		return 0, fmt.Errorf("bytecursor: startxref offset %d beyond input length %d", offset, total)
	}
	return offset, nil
}

func isXRefSpace(b byte) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t'
}

func lastIndex(haystack []byte, needle string) int {
	n := len(needle)
	for i := len(haystack) - n; i >= 0; i-- {
		if string(haystack[i:i+n]) == needle {
			return i
		}
	}
	return -1
}
