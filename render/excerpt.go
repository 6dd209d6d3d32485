package render

import (
	"io"
	"strings"

	"github.com/heathj/htmltok/logging/logfields"
	"github.com/heathj/htmltok/parser"
)

var (
	_ parser.Listener          = (*Excerpt)(nil)
	_ parser.SelfClosingTagger = (*Excerpt)(nil)
)

// Excerpt copies the start of a document up to a budget of visible
// characters. Text and entities count against the budget, tags do not. The
// copy keeps the original markup and closes every tag still open at the cut.
type Excerpt struct {
	limit     int
	opts      Options
	b         strings.Builder
	written   int
	open      []string
	truncated bool
	finished  bool
}

// NewExcerpt returns an excerpt builder for at most limit visible
// characters. An empty opts.VoidTags falls back to DefaultVoidTags.
func NewExcerpt(limit int, opts Options) *Excerpt {
	if limit < 0 {
		limit = 0
	}
	if opts.VoidTags.Len() == 0 {
		opts.VoidTags = DefaultVoidTags()
	}
	return &Excerpt{
		limit: limit,
		opts:  opts,
	}
}

// ExcerptOf builds the excerpt of the HTML read from r. Reading stops as soon
// as the budget is spent.
func ExcerptOf(r io.Reader, limit int, opts Options) (string, error) {
	e := NewExcerpt(limit, opts)
	if err := parser.Drive(r, opts.Tokenizer, e); err != nil {
		return "", err
	}
	return e.String(), nil
}

func (e *Excerpt) Start() {
	e.b.Reset()
	e.written = 0
	e.open = e.open[:0]
	e.truncated = false
	e.finished = false
}

// SelfClosingTag copies a tag like "<br/>" without opening an element.
func (e *Excerpt) SelfClosingTag(_, full string) {
	if e.truncated {
		return
	}
	e.b.WriteString(full)
}

func (e *Excerpt) Tag(name, full string, closing bool) {
	if e.truncated {
		return
	}
	e.b.WriteString(full)
	switch {
	case closing:
		e.closeTag(name)
	case name == "", strings.HasPrefix(name, "!"), strings.HasSuffix(full, "/>"), e.opts.VoidTags.Has(name):
	default:
		e.open = append(e.open, name)
	}
}

// closeTag pops name and anything opened after it. Stray end tags are
// ignored.
func (e *Excerpt) closeTag(name string) {
	for i := len(e.open) - 1; i >= 0; i-- {
		if e.open[i] == name {
			e.open = e.open[:i]
			return
		}
	}
}

func (e *Excerpt) Text(text string) {
	if e.truncated {
		return
	}
	remaining := e.limit - e.written
	n := 0
	for i := range text {
		if n == remaining {
			if strings.TrimSpace(text[i:]) == "" {
				// trailing whitespace does not need a cut
				break
			}
			e.b.WriteString(text[:i])
			e.written += n
			e.truncate()
			return
		}
		n++
	}
	e.b.WriteString(text)
	e.written += n
}

func (e *Excerpt) Entity(_, full string) {
	if e.truncated {
		return
	}
	if e.written >= e.limit {
		e.truncate()
		return
	}
	e.b.WriteString(full)
	e.written++
}

func (e *Excerpt) truncate() {
	e.truncated = true
	log.WithField(logfields.Limit, e.limit).Debug("Truncated excerpt")
}

// NeedsMore reports false once the budget is spent.
func (e *Excerpt) NeedsMore() bool {
	return !e.truncated
}

// Finish appends the ellipsis when the document was cut and closes the
// open tags.
func (e *Excerpt) Finish() {
	if e.finished {
		return
	}
	e.finished = true
	if e.truncated {
		e.b.WriteString(e.opts.Ellipsis)
	}
	for i := len(e.open) - 1; i >= 0; i-- {
		e.b.WriteString("</" + e.open[i] + ">")
	}
	e.open = e.open[:0]
}

// Truncated reports whether the document was longer than the budget.
func (e *Excerpt) Truncated() bool {
	return e.truncated
}

// String returns the excerpt built so far.
func (e *Excerpt) String() string {
	return e.b.String()
}
