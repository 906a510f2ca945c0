package parser

import "github.com/go-pdfstruct/pdfcore/pdfobj"

// ReferenceResolver is the external hook an ObjectParser holds to satisfy a
// forward reference it cannot answer on its own: given (objectID,
// generation), it yields the referenced object. The parser calls it exactly
// once per stream body, when that stream's dictionary carries its Length as
// a Reference rather than a literal Integer (spec §4.3, §4.5).
//
// A ReferenceResolver implementation is free to re-enter the parser via
// ObjectParser.ParseIndirectObjectAt using an offset from its own XRef
// index; ParseIndirectObjectAt guarantees it saves and restores the
// tokenizer position and clears the pushback stack across that nested seek
// (spec §5), so resolvers do not need to worry about corrupting the
// in-progress outer parse.
//
// Resolve returns ok=false when the object does not exist; this is not
// itself an error; it is the caller's parse operation (only the stream
// Length path, per spec §4.5) that turns a missing or non-Integer result
// into a failure.
type ReferenceResolver interface {
	Resolve(objectID, generation int64) (pdfobj.Object, bool)
}

// ResolverFunc adapts a plain function to the ReferenceResolver interface,
// the same "capability as a value" shape the teacher corpus uses for other
// single-method collaborators rather than a listener registry (spec §9).
type ResolverFunc func(objectID, generation int64) (pdfobj.Object, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(objectID, generation int64) (pdfobj.Object, bool) {
	return f(objectID, generation)
}

// NoResolver never resolves anything. Useful for parsing chunks of PDF
// syntax (a single indirect object already split out, or test fixtures)
// that are known not to carry an indirect stream Length.
var NoResolver ReferenceResolver = ResolverFunc(func(int64, int64) (pdfobj.Object, bool) {
	return nil, false
})
