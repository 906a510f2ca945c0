package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-pdfstruct/pdfcore/bytecursor"
)

func newTokenizer(s string) *Tokenizer {
	return New(bytecursor.New([]byte(s)))
}

func TestBasicDelimiters(t *testing.T) {
	tz := newTokenizer("[ ] << >>")
	assert.Equal(t, ArrayOpen, tz.Next().Kind)
	assert.Equal(t, ArrayClose, tz.Next().Kind)
	assert.Equal(t, DictionaryOpen, tz.Next().Kind)
	assert.Equal(t, DictionaryClose, tz.Next().Kind)
	assert.Equal(t, Empty, tz.Next().Kind)
}

func TestIntegerAndReal(t *testing.T) {
	tz := newTokenizer("12 -7 3.5 -0.25 4. .5")
	cases := []struct {
		kind Kind
		i    int64
		f    float64
	}{
		{Integer, 12, 0},
		{Integer, -7, 0},
		{Real, 0, 3.5},
		{Real, 0, -0.25},
		{Real, 0, 4},
		{Real, 0, 0.5},
	}
	for _, c := range cases {
		tok := tz.Next()
		require.Equal(t, c.kind, tok.Kind)
		if c.kind == Integer {
			assert.Equal(t, c.i, tok.Int)
		} else {
			assert.InDelta(t, c.f, tok.Real, 1e-9)
		}
	}
}

func TestNameWithHexEscape(t *testing.T) {
	tz := newTokenizer("/Name1 /A#42C")
	tok := tz.Next()
	require.Equal(t, Name, tok.Kind)
	assert.Equal(t, "Name1", string(tok.Text))

	tok = tz.Next()
	require.Equal(t, Name, tok.Kind)
	assert.Equal(t, "ABC", string(tok.Text))
}

func TestLiteralStringEscapesAndNesting(t *testing.T) {
	tz := newTokenizer(`(Hello (World) \n \051 end)`)
	tok := tz.Next()
	require.Equal(t, LiteralString, tok.Kind)
	assert.Equal(t, "Hello (World) \n ) end", string(tok.Text))
}

func TestHexStringOddLengthPadded(t *testing.T) {
	tz := newTokenizer("<48656C6C6F2>")
	tok := tz.Next()
	require.Equal(t, HexString, tok.Kind)
	assert.Equal(t, "Hello\x20", string(tok.Text))
}

func TestComment(t *testing.T) {
	tz := newTokenizer("%PDF-1.4\n1")
	tz.IgnoreComments = false
	tok := tz.Next()
	require.Equal(t, Comment, tok.Kind)
	assert.Equal(t, "PDF-1.4", string(tok.Text))

	tok = tz.Next()
	assert.Equal(t, Integer, tok.Kind)
}

func TestCommentsIgnoredByDefault(t *testing.T) {
	tz := newTokenizer("%a comment\n42")
	tok := tz.Next()
	require.Equal(t, Integer, tok.Kind)
	assert.EqualValues(t, 42, tok.Int)
}

func TestKeywords(t *testing.T) {
	tz := newTokenizer("true false null obj endobj stream endstream R xref trailer startxref n f")
	want := []Keyword{KwTrue, KwFalse, KwNull, KwObj, KwEndobj, KwStream, KwEndstream, KwR, KwXref, KwTrailer, KwStartxref, KwN, KwF}
	for _, kw := range want {
		tok := tz.Next()
		require.Equal(t, KeywordTok, tok.Kind)
		assert.Equal(t, kw, tok.Keyword)
	}
}

func TestUnknownKeywordIsError(t *testing.T) {
	tz := newTokenizer("bogus")
	tok := tz.Next()
	assert.Equal(t, ErrorTok, tok.Kind)
}

func TestPushBackIsStrictLIFO(t *testing.T) {
	tz := newTokenizer("1 2 3")
	a := tz.Next()
	b := tz.Next()
	c := tz.Next()
	tz.PushBack(c)
	tz.PushBack(b)
	tz.PushBack(a)
	assert.Equal(t, a.Int, tz.Next().Int)
	assert.Equal(t, b.Int, tz.Next().Int)
	assert.Equal(t, c.Int, tz.Next().Int)
}

func TestSeekClearsPushBack(t *testing.T) {
	tz := newTokenizer("1 2 3")
	a := tz.Next()
	tz.PushBack(a)
	tz.Seek(0)
	tok := tz.Next()
	assert.EqualValues(t, 1, tok.Int)
}

func TestReadXRefEntry(t *testing.T) {
	tz := newTokenizer("0000000009 00000 n \n0000000000 65535 f \n")
	tok := tz.ReadXRefEntry(1)
	require.Equal(t, XRefEntryTok, tok.Kind)
	assert.EqualValues(t, 9, tok.XRef.Offset)
	assert.Equal(t, 0, tok.XRef.Generation)
	assert.True(t, tok.XRef.InUse)
	assert.Equal(t, 1, tok.XRef.ObjectID)

	tok = tz.ReadXRefEntry(2)
	require.Equal(t, XRefEntryTok, tok.Kind)
	assert.EqualValues(t, 0, tok.XRef.Offset)
	assert.Equal(t, 65535, tok.XRef.Generation)
	assert.False(t, tok.XRef.InUse)
}

func TestReadXRefEntryMalformedMarker(t *testing.T) {
	tz := newTokenizer("0000000009 00000 x \n")
	tok := tz.ReadXRefEntry(1)
	assert.Equal(t, ErrorTok, tok.Kind)
}

func TestReadXRefEntryShortRead(t *testing.T) {
	tz := newTokenizer("short")
	tok := tz.ReadXRefEntry(1)
	assert.Equal(t, ErrorTok, tok.Kind)
}

func TestReadRawBytesAndStreamEOL(t *testing.T) {
	tz := newTokenizer("\r\nHELLOWORLD")
	require.NoError(t, tz.SkipStreamEOL())
	data, err := tz.ReadRawBytes(5)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", string(data))
}

func TestTokenOffsetsAreMonotonic(t *testing.T) {
	tz := newTokenizer("1 2 3 /Name (str) <AA>")
	last := -1
	for {
		tok := tz.Next()
		if tok.Kind == Empty {
			break
		}
		assert.GreaterOrEqual(t, tok.Offset, last)
		last = tok.Offset
	}
}
