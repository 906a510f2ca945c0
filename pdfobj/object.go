// Package pdfobj defines the PDF object algebra produced by parser.ObjectParser:
// a closed set of concrete types implementing the Object marker interface,
// switched over with type switches rather than runtime-type tests on a class
// hierarchy (spec §9 design note).
package pdfobj

import (
	"fmt"
	"sort"
	"strings"
)

// Object is satisfied by every PDF object variant (spec §3).
type Object interface {
	fmt.Stringer
	isObject()
}

// Null represents the PDF null object.
type Null struct{}

func (Null) isObject()    {}
func (Null) String() string { return "null" }

// Boolean represents a PDF boolean object.
type Boolean bool

func (Boolean) isObject() {}
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// NumericKind distinguishes the two lexical forms a PDF numeric literal can
// take; both are carried as a Numeric object.
type NumericKind uint8

const (
	IntegerKind NumericKind = iota
	RealKind
)

// Numeric represents a PDF number object: a signed 64-bit integer or a
// 64-bit float, tagged by the lexical form it was parsed from.
type Numeric struct {
	Kind    NumericKind
	Integer int64
	Real    float64
}

func (Numeric) isObject() {}

func (n Numeric) String() string {
	if n.Kind == IntegerKind {
		return fmt.Sprintf("%d", n.Integer)
	}
	return fmt.Sprintf("%v", n.Real)
}

// AsFloat returns the numeric value regardless of its lexical kind.
func (n Numeric) AsFloat() float64 {
	if n.Kind == IntegerKind {
		return float64(n.Integer)
	}
	return n.Real
}

// Name represents a PDF name object, with #hh escapes already decoded.
type Name string

func (Name) isObject() {}
func (n Name) String() string { return "/" + string(n) }

// StringEncoding records whether a String object's bytes came from a
// parenthesized literal or a hex-encoded <...> form; the raw bytes are
// identical in meaning either way, but the hint is useful for diagnostics
// and for any caller that round-trips the source syntax.
type StringEncoding uint8

const (
	LiteralEncoding StringEncoding = iota
	HexEncoding
)

// String represents a PDF string object.
type String struct {
	Bytes    []byte
	Encoding StringEncoding
}

func (String) isObject() {}
func (s String) String() string {
	if s.Encoding == HexEncoding {
		return fmt.Sprintf("<%x>", s.Bytes)
	}
	return fmt.Sprintf("(%s)", s.Bytes)
}

// Array represents a PDF array object: an ordered sequence of objects.
type Array []Object

func (Array) isObject() {}
func (a Array) String() string {
	parts := make([]string, len(a))
	for i, o := range a {
		parts[i] = o.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Dictionary represents a PDF dictionary object: a mapping from Name to
// Object. Later duplicate keys encountered while parsing overwrite earlier
// ones (spec §3); insertion order carries no meaning.
type Dictionary map[Name]Object

func (Dictionary) isObject() {}
func (d Dictionary) String() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("/%s %s", k, d[Name(k)].String())
	}
	return "<<" + strings.Join(parts, " ") + ">>"
}

// Stream represents a dictionary immediately followed by raw bytes of
// declared Length. A Stream is always the body of an IndirectObject (spec
// §3); the core never interprets the bytes (filters are out of scope).
type Stream struct {
	Dict Dictionary
	Data []byte
}

func (Stream) isObject() {}
func (s Stream) String() string {
	return fmt.Sprintf("%s stream(%d bytes)", s.Dict, len(s.Data))
}

// Reference represents a textual pointer "id gen R" to an indirect object.
// Resolution against an XRef index is the ReferenceResolver's
// responsibility, not the parser's (spec §3 invariant).
type Reference struct {
	ObjectID   int64
	Generation int64
}

func (Reference) isObject() {}
func (r Reference) String() string { return fmt.Sprintf("%d %d R", r.ObjectID, r.Generation) }

// IndirectObject is a top-level numbered, versioned object bracketed by
// obj/endobj. Its Body is any Object variant except another IndirectObject,
// and is never nil (spec §3 invariant: empty body is an error).
type IndirectObject struct {
	ObjectID   int64
	Generation int64
	Body       Object
}

func (IndirectObject) isObject() {}
func (o IndirectObject) String() string {
	return fmt.Sprintf("%d %d obj %s endobj", o.ObjectID, o.Generation, o.Body)
}
