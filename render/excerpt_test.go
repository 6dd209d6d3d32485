package render

import (
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/htmltok/parser"
)

type excerptTestcase struct {
	in        string
	limit     int
	expected  string
	truncated bool
}

var excerptTests = []excerptTestcase{
	{"<p>Hi</p>", 10, "<p>Hi</p>", false},
	{"<p>Hello <b>brave</b> new world</p>", 9, "<p>Hello <b>bra…</b></p>", true},
	{"Fish &amp; Chips", 6, "Fish &amp;…", true},
	{"<p>a<br>b<img src=x>cdef</p>", 3, "<p>a<br>b<img src=x>c…</p>", true},
	{"<div><p>text", 100, "<div><p>text</p></div>", false},
	{"<p>Hello</p>\n<p>World</p>", 5, "<p>Hello</p>\n<p>…</p>", true},
	{"<P>Exactly</P>", 7, "<P>Exactly</P>", false},
	{"<ul><li>one<li>two</ul>", 4, "<ul><li>one<li>t…</li></li></ul>", true},
	{"<p>x</p>", 0, "<p>…</p>", true},
	{"<!-- skipped --><i>café</i>", 3, "<i>caf…</i>", true},
}

func TestExcerpt(t *testing.T) {
	for _, tt := range excerptTests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			e := NewExcerpt(tt.limit, DefaultOptions())
			require.NoError(t, parser.Drive(strings.NewReader(tt.in), parser.Config{}, e))
			assert.Equal(t, tt.expected, e.String())
			assert.Equal(t, tt.truncated, e.Truncated())
		})
	}
}

func TestExcerptOfStopsReading(t *testing.T) {
	errBoom := errors.New("read past the excerpt")
	in := io.MultiReader(
		strings.NewReader("<p>abcdefghij</p><p>more</p>"),
		&failingReader{err: errBoom},
	)
	got, err := ExcerptOf(in, 3, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "<p>abc…</p>", got)
}

func TestExcerptOfSourceError(t *testing.T) {
	errBoom := errors.New("read failed")
	in := io.MultiReader(strings.NewReader("<p>ab"), &failingReader{err: errBoom})
	_, err := ExcerptOf(in, 100, DefaultOptions())
	assert.Equal(t, errBoom, err)
}

func TestExcerptCustomEllipsis(t *testing.T) {
	opts := DefaultOptions()
	opts.Ellipsis = " [...]"
	got, err := ExcerptOf(strings.NewReader("<em>truncate me</em>"), 8, opts)
	require.NoError(t, err)
	assert.Equal(t, "<em>truncate [...]</em>", got)
}

func TestExcerptFinishOnce(t *testing.T) {
	e := NewExcerpt(2, DefaultOptions())
	require.NoError(t, parser.Drive(strings.NewReader("<b>bold</b>"), parser.Config{}, e))
	e.Finish()
	assert.Equal(t, "<b>bo…</b>", e.String())
}

func TestExcerptSelfClosingMode(t *testing.T) {
	tests := []struct {
		mode     parser.SelfClosingMode
		expected string
	}{
		{parser.KeepSelfClosing, "<p>a<br/>b<x/>c</p>"},
		{parser.DropSelfClosing, "<p>a<br>b<x>c</p>"},
		{parser.NormalizeSelfClosing, "<p>a<br />b<x />c</p>"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.mode.String(), func(t *testing.T) {
			t.Parallel()
			opts := DefaultOptions()
			opts.Tokenizer.SelfClosing = tt.mode
			got, err := ExcerptOf(strings.NewReader("<p>a<br/>b<x/>c"), 10, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExcerptZeroOptions(t *testing.T) {
	got, err := ExcerptOf(strings.NewReader("a<br>b<img src=x>c"), 10, Options{})
	require.NoError(t, err)
	assert.Equal(t, "a<br>b<img src=x>c", got)
}
