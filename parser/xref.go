package parser

import "github.com/go-pdfstruct/pdfcore/token"

// XRefEntry is one row of a classic cross-reference table: an object
// number, its generation, the byte offset of its "N G obj" header (when
// in use), and whether the slot is in use or free (spec §3).
type XRefEntry struct {
	ObjectID   int
	Generation int
	ByteOffset int64
	InUse      bool
}

// XRefReader parses classic cross-reference tables and trailer dictionaries
// (spec §4.4). It is a thin adapter over the same Tokenizer the
// ObjectParser already owns: given a tokenizer positioned just before the
// "xref" keyword, it produces every entry up to (but not including) the
// "trailer" keyword, which it leaves for the caller via PushBack.
type XRefReader struct {
	tokens *token.Tokenizer
}

// NewXRefReader wraps tokens. The ObjectParser that owns tokens constructs
// one of these on demand; XRefReader carries no state of its own beyond the
// tokenizer reference, so nothing is lost by not caching the instance.
func NewXRefReader(tokens *token.Tokenizer) *XRefReader {
	return &XRefReader{tokens: tokens}
}

// ReadSections requires the Keyword "xref", then reads one or more
// subsections until the next token is the Keyword "trailer" (left
// unconsumed, via PushBack, for ParseTrailer to pick up). Each subsection
// begins with two Integer tokens (first object id, count); exactly count
// xref entries follow, read via Tokenizer.ReadXRefEntry and assigned
// sequential object ids starting at the subsection's first id (spec §4.3,
// §8 property 7).
func (x *XRefReader) ReadSections() ([]XRefEntry, error) {
	start := x.tokens.Next()
	if !start.IsKeyword(token.KwXref) {
		return nil, newError(start.Offset, "expected 'xref' keyword, got %s", start)
	}

	var entries []XRefEntry
	for {
		section, err := x.readSubsection()
		if err != nil {
			return nil, err
		}
		entries = append(entries, section...)

		next := x.tokens.Next()
		x.tokens.PushBack(next)
		if next.IsKeyword(token.KwTrailer) {
			break
		}
		if next.Kind != token.Integer {
			return nil, newError(next.Offset, "expected subsection header or 'trailer', got %s", next)
		}
	}
	return entries, nil
}

func (x *XRefReader) readSubsection() ([]XRefEntry, error) {
	firstID := x.tokens.Next()
	if firstID.Kind != token.Integer {
		return nil, newError(firstID.Offset, "expected subsection's first object id, got %s", firstID)
	}
	count := x.tokens.Next()
	if count.Kind != token.Integer {
		return nil, newError(count.Offset, "expected subsection entry count, got %s", count)
	}
	if count.Int < 0 {
		return nil, newError(count.Offset, "negative xref subsection count %d", count.Int)
	}

	// The header's two Integer tokens are read through the normal tokenizer,
	// which stops right after the last digit; ReadXRefEntry reads its fixed
	// 20-byte record straight off the cursor with no whitespace skip of its
	// own, so the single separator before the first entry must be consumed
	// here. Entries themselves are exactly 20 bytes and sit back to back.
	x.tokens.SkipWhitespace()

	entries := make([]XRefEntry, 0, count.Int)
	for i := int64(0); i < count.Int; i++ {
		objectID := int(firstID.Int + i)
		tok := x.tokens.ReadXRefEntry(objectID)
		if tok.Kind == token.ErrorTok {
			return nil, newError(tok.Offset, "%s", tok.ErrMsg)
		}
		entries = append(entries, XRefEntry{
			ObjectID:   tok.XRef.ObjectID,
			Generation: tok.XRef.Generation,
			ByteOffset: tok.XRef.Offset,
			InUse:      tok.XRef.InUse,
		})
	}
	return entries, nil
}

// ReadTrailer requires the Keyword "trailer", then parses one PDF object,
// which must be a Dictionary.
func (x *XRefReader) ReadTrailer(objects *ObjectParser) (Dictionary, error) {
	kw := x.tokens.Next()
	if !kw.IsKeyword(token.KwTrailer) {
		return nil, newError(kw.Offset, "expected 'trailer' keyword, got %s", kw)
	}
	obj, err := objects.ParseObject()
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, newError(x.tokens.Position(), "trailer: expected a dictionary, found nothing")
	}
	dict, ok := obj.(Dictionary)
	if !ok {
		return nil, newError(x.tokens.Position(), "trailer: expected a dictionary, got %T", obj)
	}
	return dict, nil
}
