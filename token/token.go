package token

import "fmt"

// Kind tags the variant carried by a Token.
type Kind uint8

const (
	_ Kind = iota
	Empty
	Comment
	Integer
	Real
	Name
	LiteralString
	HexString
	ArrayOpen
	ArrayClose
	DictionaryOpen
	DictionaryClose
	KeywordTok
	XRefEntryTok
	ErrorTok
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Comment:
		return "Comment"
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case Name:
		return "Name"
	case LiteralString:
		return "LiteralString"
	case HexString:
		return "HexString"
	case ArrayOpen:
		return "ArrayOpen"
	case ArrayClose:
		return "ArrayClose"
	case DictionaryOpen:
		return "DictionaryOpen"
	case DictionaryClose:
		return "DictionaryClose"
	case KeywordTok:
		return "Keyword"
	case XRefEntryTok:
		return "XRefEntry"
	case ErrorTok:
		return "Error"
	default:
		return "<invalid token kind>"
	}
}

// Keyword is the closed set of bareword tokens PDF 1.x syntax recognizes.
// Any alphabetic run outside this set is a lexical error (spec §4.2).
type Keyword uint8

const (
	_ Keyword = iota
	KwObj
	KwEndobj
	KwStream
	KwEndstream
	KwR
	KwTrue
	KwFalse
	KwNull
	KwXref
	KwTrailer
	KwStartxref
	KwN
	KwF
)

var keywordText = map[string]Keyword{
	"obj":       KwObj,
	"endobj":    KwEndobj,
	"stream":    KwStream,
	"endstream": KwEndstream,
	"R":         KwR,
	"true":      KwTrue,
	"false":     KwFalse,
	"null":      KwNull,
	"xref":      KwXref,
	"trailer":   KwTrailer,
	"startxref": KwStartxref,
	"n":         KwN,
	"f":         KwF,
}

func (k Keyword) String() string {
	for text, kw := range keywordText {
		if kw == k {
			return text
		}
	}
	return "<invalid keyword>"
}

// LookupKeyword classifies a bareword run, reporting ok=false if it falls
// outside the closed keyword set.
func LookupKeyword(word []byte) (Keyword, bool) {
	kw, ok := keywordText[string(word)]
	return kw, ok
}

// XRefRecord is the decoded form of a 20-byte classic xref table line.
type XRefRecord struct {
	Offset     int64
	Generation int
	InUse      bool
	ObjectID   int // assigned by the caller from the subsection header, not present on the wire
}

// Token is a single lexical unit produced by the Tokenizer. Every token
// carries the byte offset at which it started, per spec §3.
type Token struct {
	Kind    Kind
	Offset  int
	Text    []byte     // Comment, Name, LiteralString, HexString payload
	Int     int64      // Integer value
	Real    float64    // Real value
	Keyword Keyword    // valid when Kind == KeywordTok
	XRef    XRefRecord // valid when Kind == XRefEntryTok
	ErrMsg  string     // valid when Kind == ErrorTok
}

func (t Token) String() string {
	switch t.Kind {
	case Integer:
		return fmt.Sprintf("Integer(%d)@%d", t.Int, t.Offset)
	case Real:
		return fmt.Sprintf("Real(%v)@%d", t.Real, t.Offset)
	case Name:
		return fmt.Sprintf("Name(/%s)@%d", t.Text, t.Offset)
	case KeywordTok:
		return fmt.Sprintf("Keyword(%s)@%d", t.Keyword, t.Offset)
	case ErrorTok:
		return fmt.Sprintf("Error(%s)@%d", t.ErrMsg, t.Offset)
	case Empty:
		return fmt.Sprintf("Empty@%d", t.Offset)
	default:
		return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Text, t.Offset)
	}
}

// IsKeyword reports whether t is a Keyword token equal to kw.
func (t Token) IsKeyword(kw Keyword) bool {
	return t.Kind == KeywordTok && t.Keyword == kw
}
