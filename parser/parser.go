// Package parser implements the syntactic layer of the PDF core decoder:
// ObjectParser turns a token.Tokenizer's output into pdfobj.Object values,
// including indirect objects, streams, arrays, dictionaries and
// references, and XRefReader turns the same tokenizer's output into a
// classic cross-reference table and trailer dictionary (spec §4.3, §4.4).
package parser

import (
	"strconv"
	"strings"

	"github.com/go-pdfstruct/pdfcore/bytecursor"
	"github.com/go-pdfstruct/pdfcore/pdflog"
	"github.com/go-pdfstruct/pdfcore/pdfobj"
	"github.com/go-pdfstruct/pdfcore/token"
)

// Type aliases keep call sites in this package (and its tests) free of the
// pdfobj. prefix, the same convenience the teacher corpus's reader/parser
// package gives its callers over its model package.
type (
	Object     = pdfobj.Object
	Dictionary = pdfobj.Dictionary
	Array      = pdfobj.Array
)

// ObjectParser consumes tokens from a single Tokenizer/Cursor pair and
// emits PDF object values (spec §4.3). It is single-threaded and
// synchronous: every public method runs to completion or returns an error
// (spec §5).
type ObjectParser struct {
	cursor   *bytecursor.Cursor
	tokens   *token.Tokenizer
	resolver ReferenceResolver
}

// New builds an ObjectParser over data, using resolver to satisfy stream
// Length references. Pass parser.NoResolver when the input is known not to
// carry any indirect stream lengths.
func New(data []byte, resolver ReferenceResolver) *ObjectParser {
	cursor := bytecursor.New(data)
	return &ObjectParser{
		cursor:   cursor,
		tokens:   token.New(cursor),
		resolver: resolver,
	}
}

// Tokens exposes the underlying Tokenizer, for callers (such as
// XRefReader, or a ReferenceResolver re-entering the parser) that need to
// drive it directly.
func (p *ObjectParser) Tokens() *token.Tokenizer { return p.tokens }

// Seek repositions the parser's tokenizer, clearing its pushback stack.
func (p *ObjectParser) Seek(offset int) { p.tokens.Seek(offset) }

// Position returns the parser's current byte offset.
func (p *ObjectParser) Position() int { return p.tokens.Position() }

// ParseHeader reads the "%PDF-M.N" comment that must open every PDF file.
// It enables comment emission for the duration of the call (comments are
// otherwise skipped silently) and restores the prior setting on return,
// even on error.
func (p *ObjectParser) ParseHeader() (major, minor int, err error) {
	prev := p.tokens.IgnoreComments
	p.tokens.IgnoreComments = false
	defer func() { p.tokens.IgnoreComments = prev }()

	tok := p.tokens.Next()
	if tok.Kind != token.Comment {
		return 0, 0, newError(tok.Offset, "expected '%%PDF-' header comment, got %s", tok)
	}
	text := string(tok.Text)
	const prefix = "PDF-"
	if !strings.HasPrefix(text, prefix) {
		return 0, 0, newError(tok.Offset, "malformed header comment %q", text)
	}
	version := text[len(prefix):]
	parts := strings.SplitN(version, ".", 2)
	if len(parts) != 2 {
		return 0, 0, newError(tok.Offset, "malformed header version %q", version)
	}
	major, errMaj := strconv.Atoi(parts[0])
	minor, errMin := strconv.Atoi(parts[1])
	if errMaj != nil || errMin != nil || major < 0 || minor < 0 {
		return 0, 0, newError(tok.Offset, "malformed header version %q", version)
	}
	return major, minor, nil
}

// ParseXRefOffset delegates to bytecursor.Cursor.FindStartXRefOffset.
func (p *ObjectParser) ParseXRefOffset() (int, error) {
	offset, err := p.cursor.FindStartXRefOffset()
	if err != nil {
		return 0, newError(p.cursor.Position(), "%s", err)
	}
	return offset, nil
}

// ParseXRefAt seeks to at (when non-nil) and parses one classic
// cross-reference section, returning its entries. The trailer keyword that
// terminates the section is left for a following ParseTrailer call.
func (p *ObjectParser) ParseXRefAt(at *int) ([]XRefEntry, error) {
	if at != nil {
		p.Seek(*at)
	}
	return NewXRefReader(p.tokens).ReadSections()
}

// ParseTrailer requires the "trailer" keyword, then parses one PDF object,
// which must be a Dictionary.
func (p *ObjectParser) ParseTrailer() (Dictionary, error) {
	return NewXRefReader(p.tokens).ReadTrailer(p)
}

// ParseIndirectObject parses "<id> <gen> obj <body> endobj" (or a stream
// variant) at the current position.
func (p *ObjectParser) ParseIndirectObject() (*pdfobj.IndirectObject, error) {
	return p.ParseIndirectObjectAt(nil)
}

// ParseIndirectObjectAt optionally seeks to at first, saving and restoring
// the prior position around the call so a ReferenceResolver can re-enter
// the parser mid-stream-Length-resolution without disturbing the
// interrupted outer parse (spec §4.3, §5).
//
// If the "<Integer> <Integer> obj" header is not present at the current
// position, every consumed token is pushed back and (nil, nil) is
// returned: this is a probe miss, not an error (spec §4.3, §7).
func (p *ObjectParser) ParseIndirectObjectAt(at *int) (*pdfobj.IndirectObject, error) {
	if at != nil {
		restore := p.tokens.Position()
		p.Seek(*at)
		defer p.Seek(restore)
	}

	idTok := p.tokens.Next()
	if idTok.Kind != token.Integer {
		p.tokens.PushBack(idTok)
		pdflog.Logger().Debug("indirect object probe miss", "offset", idTok.Offset, "got", idTok.Kind.String())
		return nil, nil
	}
	genTok := p.tokens.Next()
	if genTok.Kind != token.Integer {
		p.tokens.PushBack(genTok)
		p.tokens.PushBack(idTok)
		pdflog.Logger().Debug("indirect object probe miss", "offset", idTok.Offset, "reason", "no generation number")
		return nil, nil
	}
	objKw := p.tokens.Next()
	if !objKw.IsKeyword(token.KwObj) {
		p.tokens.PushBack(objKw)
		p.tokens.PushBack(genTok)
		p.tokens.PushBack(idTok)
		pdflog.Logger().Debug("indirect object probe miss", "offset", idTok.Offset, "reason", "no 'obj' keyword")
		return nil, nil
	}

	body, err := p.ParseObject()
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, newError(p.tokens.Position(), "indirect object %d %d: empty body", idTok.Int, genTok.Int)
	}

	next := p.tokens.Next()
	switch {
	case next.IsKeyword(token.KwEndobj):
		return &pdfobj.IndirectObject{ObjectID: idTok.Int, Generation: genTok.Int, Body: body}, nil

	case next.IsKeyword(token.KwStream):
		dict, ok := body.(Dictionary)
		if !ok {
			return nil, newError(next.Offset, "stream keyword following non-dictionary object %T", body)
		}
		data, err := p.readStreamBody(dict)
		if err != nil {
			return nil, err
		}
		return &pdfobj.IndirectObject{
			ObjectID:   idTok.Int,
			Generation: genTok.Int,
			Body:       pdfobj.Stream{Dict: dict, Data: data},
		}, nil

	default:
		return nil, newError(next.Offset, "expected 'endobj' or 'stream', got %s", next)
	}
}

// readStreamBody implements the stream-length resolution steps of spec
// §4.3 step 4: the dictionary must carry a Length entry; if it is a
// Reference, the ReferenceResolver is consulted; the resolved value must be
// a non-negative Integer. Exactly that many raw bytes are read, followed by
// "endstream" and "endobj".
func (p *ObjectParser) readStreamBody(dict Dictionary) ([]byte, error) {
	if err := p.tokens.SkipStreamEOL(); err != nil {
		return nil, newError(p.tokens.Position(), "%s", err)
	}

	lengthObj, ok := dict[pdfobj.Name("Length")]
	if !ok {
		return nil, newError(p.tokens.Position(), "stream dictionary missing required /Length entry")
	}

	length, err := p.resolveStreamLength(lengthObj)
	if err != nil {
		return nil, err
	}

	data, err := p.tokens.ReadRawBytes(length)
	if err != nil {
		return nil, newError(p.tokens.Position(), "stream: could not read %d declared bytes: %s", length, err)
	}

	p.tokens.SkipWhitespace()
	endstream := p.tokens.Next()
	if !endstream.IsKeyword(token.KwEndstream) {
		return nil, newError(endstream.Offset, "expected 'endstream', got %s", endstream)
	}
	endobj := p.tokens.Next()
	if !endobj.IsKeyword(token.KwEndobj) {
		return nil, newError(endobj.Offset, "expected 'endobj', got %s", endobj)
	}
	return data, nil
}

func (p *ObjectParser) resolveStreamLength(lengthObj Object) (int, error) {
	switch v := lengthObj.(type) {
	case pdfobj.Numeric:
		if v.Kind != pdfobj.IntegerKind {
			return 0, newError(p.tokens.Position(), "stream /Length must be an Integer, got a Real")
		}
		if v.Integer < 0 {
			return 0, newError(p.tokens.Position(), "stream /Length must not be negative, got %d", v.Integer)
		}
		return int(v.Integer), nil

	case pdfobj.Reference:
		resolved, ok := p.resolver.Resolve(v.ObjectID, v.Generation)
		if !ok {
			pdflog.Logger().Debug("stream length resolver miss", "objectID", v.ObjectID, "generation", v.Generation)
			return 0, newError(p.tokens.Position(), "stream /Length reference %d %d R did not resolve", v.ObjectID, v.Generation)
		}
		num, ok := resolved.(pdfobj.Numeric)
		if !ok || num.Kind != pdfobj.IntegerKind {
			return 0, newError(p.tokens.Position(), "stream /Length reference resolved to non-Integer %T", resolved)
		}
		if num.Integer < 0 {
			return 0, newError(p.tokens.Position(), "stream /Length resolved to negative value %d", num.Integer)
		}
		return int(num.Integer), nil

	default:
		return 0, newError(p.tokens.Position(), "stream /Length has unexpected type %T", lengthObj)
	}
}

// ParseObject reads one token and dispatches on it, producing exactly one
// PDF Object (spec §4.3). A nil, nil result is a probe miss: the leading
// token was an array/dictionary closer or anything else that does not
// begin an object, and it has been pushed back for the caller to inspect
// via the next Tokenizer.Next() call (spec §7, §8 property 2).
func (p *ObjectParser) ParseObject() (Object, error) {
	tok := p.tokens.Next()

	switch tok.Kind {
	case token.Name:
		return pdfobj.Name(tok.Text), nil

	case token.LiteralString:
		return pdfobj.String{Bytes: tok.Text, Encoding: pdfobj.LiteralEncoding}, nil

	case token.HexString:
		return pdfobj.String{Bytes: tok.Text, Encoding: pdfobj.HexEncoding}, nil

	case token.Real:
		return pdfobj.Numeric{Kind: pdfobj.RealKind, Real: tok.Real}, nil

	case token.Integer:
		return p.parseNumericOrReference(tok)

	case token.ArrayOpen:
		return p.parseArray()

	case token.DictionaryOpen:
		return p.parseDictionary()

	case token.KeywordTok:
		switch tok.Keyword {
		case token.KwTrue:
			return pdfobj.Boolean(true), nil
		case token.KwFalse:
			return pdfobj.Boolean(false), nil
		case token.KwNull:
			return pdfobj.Null{}, nil
		}
		p.tokens.PushBack(tok)
		return nil, nil

	case token.ErrorTok:
		return nil, newError(tok.Offset, "%s", tok.ErrMsg)

	default:
		// ArrayClose, DictionaryClose, Empty, Comment (only reachable with
		// IgnoreComments disabled): none of these begin an object. Push
		// back and signal "no object here" rather than erroring, so
		// array/dictionary callers and ParseIndirectObjectAt's probe can
		// tell a structural terminator from a real failure.
		p.tokens.PushBack(tok)
		return nil, nil
	}
}

// parseNumericOrReference implements the "123 0 R" lookahead: an Integer
// token is speculatively followed by two more token reads; if they form
// <Integer> <Keyword R>, a Reference is emitted and both extra tokens are
// consumed. Otherwise every speculative token is pushed back, in order, and
// a plain Numeric is returned (spec §4.3 tie-break, §8 property 4).
func (p *ObjectParser) parseNumericOrReference(first token.Token) (Object, error) {
	second := p.tokens.Next()
	if second.Kind != token.Integer {
		p.tokens.PushBack(second)
		return pdfobj.Numeric{Kind: pdfobj.IntegerKind, Integer: first.Int}, nil
	}

	third := p.tokens.Next()
	if !third.IsKeyword(token.KwR) {
		p.tokens.PushBack(third)
		p.tokens.PushBack(second)
		return pdfobj.Numeric{Kind: pdfobj.IntegerKind, Integer: first.Int}, nil
	}

	return pdfobj.Reference{ObjectID: first.Int, Generation: second.Int}, nil
}

// parseArray collects ParseObject results until it returns nil (a probe
// miss), which per the REDESIGN note in spec §9 must be checked on the
// just-read child result, not on the ArrayOpen token that started this
// array: the original source's check against the opening token is a latent
// bug this implementation does not reproduce.
func (p *ObjectParser) parseArray() (Array, error) {
	arr := Array{}
	for {
		elem, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		if elem == nil {
			break
		}
		arr = append(arr, elem)
	}
	closer := p.tokens.Next()
	if closer.Kind != token.ArrayClose {
		return nil, newError(closer.Offset, "expected ']', got %s", closer)
	}
	return arr, nil
}

// parseDictionary collects key/value pairs until ParseObject returns nil
// for a key position (a probe miss, checked against the just-read
// attempted key, per the same REDESIGN note as parseArray). Keys must be
// Names; a missing value is an error; later duplicate keys overwrite
// earlier ones (spec §3, §8 property 6).
func (p *ObjectParser) parseDictionary() (Dictionary, error) {
	dict := Dictionary{}
	for {
		keyObj, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		if keyObj == nil {
			break
		}
		key, ok := keyObj.(pdfobj.Name)
		if !ok {
			return nil, newError(p.tokens.Position(), "dictionary key must be a Name, got %T", keyObj)
		}
		value, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, newError(p.tokens.Position(), "dictionary entry /%s is missing a value", key)
		}
		dict[key] = value
	}
	closer := p.tokens.Next()
	if closer.Kind != token.DictionaryClose {
		return nil, newError(closer.Offset, "expected '>>', got %s", closer)
	}
	return dict, nil
}
