package parser

import (
	"io"

	"github.com/pkg/errors"
)

// ErrStop can be returned from a Tokenize callback to stop reading the
// source without reporting an error.
var ErrStop = errors.New("stop tokenizing")

// Tokenize runs a tokenizer over r and hands every token except the final
// EndOfFileToken to fn, in source order. If fn returns ErrStop, Tokenize
// stops and returns nil. Any other error from fn or from r is returned.
func Tokenize(r io.Reader, cfg Config, fn func(Token) error) error {
	p := NewTokenizer(r, cfg)
	for p.Next() {
		t, err := p.Token()
		if err != nil {
			return err
		}
		if t.Type == EndOfFileToken {
			break
		}
		if err := fn(*t); err != nil {
			if errors.Cause(err) == ErrStop {
				return nil
			}
			return err
		}
	}
	return nil
}

// Listener receives the events of a document in source order: Start, any
// mix of Tag, Text and Entity, then Finish. Comments and processing
// instructions are not reported.
type Listener interface {
	Start()
	Finish()
	Tag(name, full string, closing bool)
	Text(text string)
	Entity(name, full string)
	// NeedsMore is polled by Drive before every event. Returning false
	// stops reading the source.
	NeedsMore() bool
}

// SelfClosingTagger is implemented by listeners that need to tell a
// self-closing start tag apart from a start tag that opens an element. Drive
// calls SelfClosingTag instead of Tag for those tags, whatever the
// configured SelfClosingMode did to their text.
type SelfClosingTagger interface {
	SelfClosingTag(name, full string)
}

// NopListener implements every Listener method as a no-op and always
// asks for more input. Embed it to implement only the callbacks you need.
type NopListener struct{}

func (NopListener) Start() {}
func (NopListener) Finish() {}
func (NopListener) Tag(string, string, bool) {}
func (NopListener) Text(string) {}
func (NopListener) Entity(string, string) {}
func (NopListener) NeedsMore() bool { return true }

// Drive tokenizes r and reports the tokens to l. Finish is called once the
// source is exhausted or l stopped asking for more. If r fails, the error is
// returned and Finish is not called.
func Drive(r io.Reader, cfg Config, l Listener) error {
	l.Start()
	err := Tokenize(r, cfg, func(t Token) error {
		if !l.NeedsMore() {
			return ErrStop
		}
		switch t.Type {
		case TextToken:
			l.Text(t.Full)
		case TagToken:
			if sc, ok := l.(SelfClosingTagger); ok && t.SelfClosing && !t.Closing {
				sc.SelfClosingTag(t.Name, t.Full)
			} else {
				l.Tag(t.Name, t.Full, t.Closing)
			}
		case EntityToken:
			l.Entity(t.Name, t.Full)
		}
		return nil
	})
	if err != nil {
		return err
	}
	l.Finish()
	return nil
}
