package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies which construct a Token was built from.
type TokenType uint

const (
	TextToken TokenType = iota
	TagToken
	EntityToken
	CommentToken
	EndOfFileToken
)

func (t TokenType) String() string {
	switch t {
	case TextToken:
		return "Text"
	case TagToken:
		return "Tag"
	case EntityToken:
		return "Entity"
	case CommentToken:
		return "Comment"
	case EndOfFileToken:
		return "EndOfFile"
	default:
		return "Unknown"
	}
}

// Token is a concrete token that is ready to be emitted.
//
// Full always holds the source text the token was built from, so writing the
// Full field of every token in order reproduces the input. Name is the
// lower-cased tag name for tags and the raw name between '&' and the
// terminator for entities. Text and comment tokens have no Name.
type Token struct {
	Type        TokenType
	Name        string
	Full        string
	Closing     bool
	SelfClosing bool
}

// SelfClosingMode controls how the "/>" marker of a self-closing tag is
// written into the Full field of a tag token.
type SelfClosingMode uint

const (
	// KeepSelfClosing leaves the tag text exactly as it was read.
	KeepSelfClosing SelfClosingMode = iota
	// DropSelfClosing removes the slash, so "<br/>" becomes "<br>".
	DropSelfClosing
	// NormalizeSelfClosing rewrites the marker as " />", so "<br/>" becomes
	// "<br />".
	NormalizeSelfClosing
)

func (m SelfClosingMode) String() string {
	switch m {
	case KeepSelfClosing:
		return "keep"
	case DropSelfClosing:
		return "drop"
	case NormalizeSelfClosing:
		return "normalize"
	default:
		return "unknown"
	}
}

// TokenBuilder builds up the token currently being tokenized. Only one
// construct is ever in flight, so text, tags, entities and comments share
// the same buffers.
type TokenBuilder struct {
	name        strings.Builder
	full        strings.Builder
	closing     bool
	selfClosing bool
	// trailingSlash is set while the last rune written to a tag was '/'.
	trailingSlash bool
	// invalid is the source byte of the current rune when that rune is a
	// utf8.RuneError standing for invalid input, -1 otherwise.
	invalid int
}

// MakeTokenBuilder returns an empty builder.
func MakeTokenBuilder() *TokenBuilder {
	return &TokenBuilder{invalid: -1}
}

// Reset clears all the builders and flags.
func (t *TokenBuilder) Reset() {
	t.name.Reset()
	t.full.Reset()
	t.closing = false
	t.selfClosing = false
	t.trailingSlash = false
}

// Pending reports whether any source text has been collected.
func (t *TokenBuilder) Pending() bool {
	return t.full.Len() > 0
}

// WriteFull appends a rune to the verbatim source text. A rune read from
// invalid UTF-8 is written back as the original byte.
func (t *TokenBuilder) WriteFull(r rune) {
	if r == utf8.RuneError && t.invalid >= 0 {
		t.full.WriteByte(byte(t.invalid))
		return
	}
	t.full.WriteRune(r)
}

// WriteFullString appends a string to the verbatim source text.
func (t *TokenBuilder) WriteFullString(s string) {
	t.full.WriteString(s)
}

// WriteName appends a rune to the current name unchanged.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// WriteTagName appends a lower-cased rune to the current tag name.
func (t *TokenBuilder) WriteTagName(r rune) {
	t.name.WriteRune(unicode.ToLower(r))
}

// EnableClosing marks the current tag as an end tag.
func (t *TokenBuilder) EnableClosing() {
	t.closing = true
}

// MarkSlash records whether the last rune written to a tag was a slash.
func (t *TokenBuilder) MarkSlash(slash bool) {
	t.trailingSlash = slash
}

// HasSuffix reports whether the verbatim text collected so far ends in s.
func (t *TokenBuilder) HasSuffix(s string) bool {
	return strings.HasSuffix(t.full.String(), s)
}

// Len returns the number of bytes of verbatim text collected so far.
func (t *TokenBuilder) Len() int {
	return t.full.Len()
}

// TextToken creates a text token from the builder contents.
func (t *TokenBuilder) TextToken() Token {
	return Token{
		Type: TextToken,
		Full: t.full.String(),
	}
}

// TagToken creates a tag token from the builder contents. It must only be
// called once the closing '>' was written.
func (t *TokenBuilder) TagToken(mode SelfClosingMode) Token {
	t.selfClosing = t.trailingSlash
	full := t.full.String()
	if t.selfClosing && mode != KeepSelfClosing {
		full = rewriteSelfClosing(full, mode)
	}
	return Token{
		Type:        TagToken,
		Name:        t.name.String(),
		Full:        full,
		Closing:     t.closing,
		SelfClosing: t.selfClosing,
	}
}

// EntityToken creates an entity token from the builder contents.
func (t *TokenBuilder) EntityToken() Token {
	return Token{
		Type: EntityToken,
		Name: t.name.String(),
		Full: t.full.String(),
	}
}

// CommentToken creates a comment token from the builder contents.
func (t *TokenBuilder) CommentToken() Token {
	return Token{
		Type: CommentToken,
		Full: t.full.String(),
	}
}

// EndOfFileToken creates an end of file token.
func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{
		Type: EndOfFileToken,
	}
}

// rewriteSelfClosing expects full to end in "/>".
func rewriteSelfClosing(full string, mode SelfClosingMode) string {
	body := strings.TrimSuffix(full, "/>")
	body = strings.TrimRightFunc(body, isASCIIWhitespaceRune)
	switch mode {
	case DropSelfClosing:
		return body + ">"
	case NormalizeSelfClosing:
		return body + " />"
	default:
		return full
	}
}
