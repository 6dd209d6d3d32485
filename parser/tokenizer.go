package parser

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/heathj/htmltok/logging"
	"github.com/heathj/htmltok/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "parser")

// Config holds the tokenizer settings.
type Config struct {
	SelfClosing SelfClosingMode
	// Logger replaces the package logger when set.
	Logger *logrus.Entry
}

// Tokenizer holds state for the various states of the tokenizer. A
// Tokenizer reads its source once and is not safe for concurrent use.
type Tokenizer struct {
	done          bool
	err           error
	currentState  tokenizerState
	inputStream   *bufio.Reader
	emittedTokens []Token
	tokenBuilder  *TokenBuilder
	selfClosing   SelfClosingMode
	log           *logrus.Entry
}

// NewTokenizer creates a tokenizer reading from r. The caller keeps
// ownership of r.
func NewTokenizer(r io.Reader, cfg Config) *Tokenizer {
	l := cfg.Logger
	if l == nil {
		l = log
	}
	return &Tokenizer{
		currentState:  textState,
		emittedTokens: []Token{},
		inputStream:   bufio.NewReader(r),
		tokenBuilder:  MakeTokenBuilder(),
		selfClosing:   cfg.SelfClosing,
		log:           l,
	}
}

func (p *Tokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case textState:
		return p.textStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case tagAttributesState:
		return p.tagAttributesStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentState:
		return p.commentStateParser
	case processingInstructionState:
		return p.processingInstructionStateParser
	case entityState:
		return p.entityStateParser
	}

	return nil
}

func isASCIIWhitespace(code int) bool {
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

func isASCIIWhitespaceRune(r rune) bool {
	return isASCIIWhitespace(int(r))
}

func (p *Tokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		if p.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
			p.log.WithFields(logrus.Fields{
				logfields.TokenType: token.Type,
				logfields.TokenName: token.Name,
				logfields.State:     p.currentState,
			}).Trace("Emitting token")
		}
		p.emittedTokens = append(p.emittedTokens, token)
	}
}

func (p *Tokenizer) flushText() {
	if p.tokenBuilder.Pending() {
		p.emit(p.tokenBuilder.TextToken())
	}
	p.tokenBuilder.Reset()
}

// dropPending discards an unterminated tag, comment or processing
// instruction at the end of the stream.
func (p *Tokenizer) dropPending(construct string) {
	if p.tokenBuilder.Pending() {
		p.log.WithFields(logrus.Fields{
			logfields.Construct: construct,
			logfields.Bytes:     p.tokenBuilder.Len(),
		}).Debug("Dropping unterminated construct at end of input")
	}
	p.tokenBuilder.Reset()
	p.emit(p.tokenBuilder.EndOfFileToken())
}

func (p *Tokenizer) textStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.flushText()
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, textState
	}
	switch r {
	case '<':
		p.flushText()
		p.tokenBuilder.WriteFull(r)
		return false, tagOpenState
	case '&':
		p.flushText()
		p.tokenBuilder.WriteFull(r)
		return false, entityState
	default:
		p.tokenBuilder.WriteFull(r)
		return false, textState
	}
}

func (p *Tokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.dropPending("tag")
		return false, textState
	}
	switch r {
	case '?':
		p.tokenBuilder.WriteFull(r)
		return false, processingInstructionState
	case '!':
		p.tokenBuilder.WriteFull(r)
		return false, markupDeclarationOpenState
	case '/':
		p.tokenBuilder.WriteFull(r)
		p.tokenBuilder.EnableClosing()
		return false, tagNameState
	default:
		return true, tagNameState
	}
}

func (p *Tokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.dropPending("tag")
		return false, textState
	}
	p.tokenBuilder.WriteFull(r)
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u000D', ' ': // tab, line feed, form feed, carriage return, space
		return false, tagAttributesState
	case '/':
		p.tokenBuilder.MarkSlash(true)
		return false, tagAttributesState
	case '>':
		return false, p.emitCurrentTag()
	default:
		p.tokenBuilder.WriteTagName(r)
		return false, tagNameState
	}
}

// tagAttributesStateParser keeps the rest of the tag verbatim up to the
// first '>'. Quotes are not tracked.
func (p *Tokenizer) tagAttributesStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.dropPending("tag")
		return false, textState
	}
	p.tokenBuilder.WriteFull(r)
	if r == '>' {
		return false, p.emitCurrentTag()
	}
	p.tokenBuilder.MarkSlash(r == '/')
	return false, tagAttributesState
}

func (p *Tokenizer) emitCurrentTag() tokenizerState {
	p.emit(p.tokenBuilder.TagToken(p.selfClosing))
	p.tokenBuilder.Reset()
	return textState
}

// markupDeclarationOpenStateParser runs on the rune after "<!". Only "<!--"
// opens a comment; anything else is an ordinary tag whose name starts with
// '!'.
func (p *Tokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.dropPending("tag")
		return false, textState
	}
	if r == '-' {
		peeked, err := p.inputStream.Peek(1)
		if err != nil && err != io.EOF {
			// Peek clears the reader's error, so hold on to it for Token.
			p.err = err
			return false, markupDeclarationOpenState
		}
		if len(peeked) == 1 && peeked[0] == '-' {
			p.inputStream.Discard(1)
			p.tokenBuilder.WriteFullString("--")
			return false, commentState
		}
	}
	p.tokenBuilder.WriteName('!')
	return true, tagNameState
}

// shortest complete comment is "<!---->"
var commentEnd = "-->"
var minCommentLen = len("<!--") + len(commentEnd)

func (p *Tokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.dropPending("comment")
		return false, textState
	}
	p.tokenBuilder.WriteFull(r)
	if r == '>' && p.tokenBuilder.Len() >= minCommentLen && p.tokenBuilder.HasSuffix(commentEnd) {
		p.emit(p.tokenBuilder.CommentToken())
		p.tokenBuilder.Reset()
		return false, textState
	}
	return false, commentState
}

func (p *Tokenizer) processingInstructionStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.dropPending("processing instruction")
		return false, textState
	}
	p.tokenBuilder.WriteFull(r)
	if r == '>' {
		p.emit(p.tokenBuilder.CommentToken())
		p.tokenBuilder.Reset()
		return false, textState
	}
	return false, processingInstructionState
}

func (p *Tokenizer) entityStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitCurrentEntity()
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, textState
	}
	switch r {
	case ';', '\u0009', '\u000A', '\u000C', '\u000D', ' ':
		p.tokenBuilder.WriteFull(r)
		p.emitCurrentEntity()
		return false, textState
	case '<', '&':
		// the delimiter opens the next construct
		p.emitCurrentEntity()
		return true, textState
	default:
		p.tokenBuilder.WriteName(r)
		p.tokenBuilder.WriteFull(r)
		return false, entityState
	}
}

func (p *Tokenizer) emitCurrentEntity() {
	p.emit(p.tokenBuilder.EntityToken())
	p.tokenBuilder.Reset()
}

// a parserStateHandler is a func that takes in a rune and a bool representing
// the end of file and returns whether the rune must be reconsumed along with
// the next state to transition to.
type parserStateHandler func(in rune, eof bool) (bool, tokenizerState)

type tokenizerState uint

const (
	textState tokenizerState = iota
	tagOpenState
	tagNameState
	tagAttributesState
	markupDeclarationOpenState
	commentState
	processingInstructionState
	entityState
)

func (s tokenizerState) String() string {
	switch s {
	case textState:
		return "text"
	case tagOpenState:
		return "tagOpen"
	case tagNameState:
		return "tagName"
	case tagAttributesState:
		return "tagAttributes"
	case markupDeclarationOpenState:
		return "markupDeclarationOpen"
	case commentState:
		return "comment"
	case processingInstructionState:
		return "processingInstruction"
	case entityState:
		return "entity"
	default:
		return "unknown"
	}
}

func (p *Tokenizer) takeLastEmittedToken() *Token {
	if len(p.emittedTokens) > 0 {
		ret := p.emittedTokens[0]
		p.emittedTokens = p.emittedTokens[1:]
		if ret.Type == EndOfFileToken {
			p.done = true
		}
		return &ret
	}
	return nil
}

// Next reports whether there are tokens left to take.
func (p *Tokenizer) Next() bool {
	return !p.done
}

// Token returns the next token. The last token of a stream is always an
// EndOfFileToken. An error from the source is returned as is and ends the
// stream; tokens handed out before it stay valid. Once the stream has
// ended, Token returns io.EOF. Bytes that are not valid UTF-8 are copied
// into Full unchanged.
func (p *Tokenizer) Token() (*Token, error) {
	// some states emit more than 1 token at a time and sometimes no tokens.
	// loop until at least 1 token is emitted and then take them.
	for {
		token := p.takeLastEmittedToken()
		if token != nil {
			return token, nil
		}
		if p.done {
			return nil, io.EOF
		}
		if p.err != nil {
			p.done = true
			return nil, p.err
		}

		r, size, err := p.inputStream.ReadRune()
		if err != nil && err != io.EOF {
			p.done = true
			return nil, err
		}
		p.tokenBuilder.invalid = -1
		if r == utf8.RuneError && size == 1 {
			p.tokenBuilder.invalid = p.invalidByte()
		}

		p.processRune(r, err == io.EOF)
	}
}

// invalidByte returns the source byte behind the utf8.RuneError that
// ReadRune just returned.
func (p *Tokenizer) invalidByte() int {
	if err := p.inputStream.UnreadRune(); err != nil {
		return -1
	}
	b, err := p.inputStream.ReadByte()
	if err != nil {
		return -1
	}
	return int(b)
}

func (p *Tokenizer) processRune(r rune, eof bool) {
	reconsume := true
	for reconsume {
		reconsume, p.currentState = p.stateToParser(p.currentState)(r, eof)
	}
}
