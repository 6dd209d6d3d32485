package render

import (
	"html"
	"io"
	"strings"
	"unicode"

	"github.com/heathj/htmltok/parser"
)

// PlainText renders the HTML read from r as plain text. Tags are removed,
// entities decoded and whitespace runs collapsed to one space. A br tag
// breaks the line and a block tag starts a new paragraph. The content of
// ignored tags is dropped.
func PlainText(r io.Reader, opts Options) (string, error) {
	var (
		w       textWriter
		ignored int
	)
	err := parser.Tokenize(r, opts.Tokenizer, func(t parser.Token) error {
		switch t.Type {
		case parser.TagToken:
			switch {
			case opts.IgnoredTags.Has(t.Name):
				if t.Closing {
					if ignored > 0 {
						ignored--
					}
				} else if !t.SelfClosing {
					ignored++
				}
			case ignored > 0:
			case t.Name == "br":
				w.lineBreak()
			case opts.BlockTags.Has(t.Name):
				w.paragraphBreak()
			}
		case parser.TextToken:
			if ignored == 0 {
				w.writeText(t.Full)
			}
		case parser.EntityToken:
			if ignored == 0 {
				w.writeText(html.UnescapeString(t.Full))
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return w.String(), nil
}

// textWriter collapses whitespace and defers pending breaks until the next
// visible rune, so the output never starts or ends with whitespace.
type textWriter struct {
	b        strings.Builder
	space    bool
	newlines int
}

func (w *textWriter) writeText(s string) {
	for _, r := range s {
		if unicode.IsSpace(r) {
			w.space = true
			continue
		}
		w.flush()
		w.b.WriteRune(r)
	}
}

func (w *textWriter) flush() {
	if w.b.Len() > 0 {
		if w.newlines > 0 {
			w.b.WriteString(strings.Repeat("\n", w.newlines))
		} else if w.space {
			w.b.WriteByte(' ')
		}
	}
	w.space = false
	w.newlines = 0
}

func (w *textWriter) lineBreak() {
	w.newlines++
}

func (w *textWriter) paragraphBreak() {
	if w.newlines < 2 {
		w.newlines = 2
	}
}

func (w *textWriter) String() string {
	return w.b.String()
}
