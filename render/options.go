// Package render turns the token stream of an article body into the forms a
// feed reader shows: plain text and short excerpts.
package render

import (
	"sort"

	"github.com/heathj/htmltok/logging"
	"github.com/heathj/htmltok/logging/logfields"
	"github.com/heathj/htmltok/parser"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "render")

// TagSet is an immutable set of lower-case tag names.
type TagSet struct {
	names map[string]struct{}
}

// NewTagSet builds a set holding names.
func NewTagSet(names ...string) TagSet {
	s := TagSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set. The zero TagSet is empty.
func (s TagSet) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of names in the set.
func (s TagSet) Len() int {
	return len(s.names)
}

// Names returns the sorted members of the set.
func (s TagSet) Names() []string {
	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultBlockTags returns the tags that start a new paragraph in plain text.
func DefaultBlockTags() TagSet {
	return NewTagSet(
		"address", "article", "aside", "blockquote", "dd", "div", "dl", "dt",
		"figcaption", "figure", "footer", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hr", "li", "main", "nav", "ol", "p", "pre", "section",
		"table", "tr", "ul",
	)
}

// DefaultIgnoredTags returns the tags whose content never shows up as text.
func DefaultIgnoredTags() TagSet {
	return NewTagSet("script", "style", "noscript", "template")
}

// DefaultVoidTags returns the elements that never have a closing tag.
func DefaultVoidTags() TagSet {
	return NewTagSet(
		"area", "base", "br", "col", "embed", "hr", "img", "input", "link",
		"meta", "param", "source", "track", "wbr",
	)
}

// Options configures the renderers. The zero value renders plain text
// without any line breaks or ignored tags; excerpts always know the default
// void tags.
type Options struct {
	Tokenizer   parser.Config
	BlockTags   TagSet
	IgnoredTags TagSet
	VoidTags    TagSet
	// Ellipsis is appended to a truncated excerpt.
	Ellipsis string
}

// DefaultOptions returns Options filled with the default tag sets.
func DefaultOptions() Options {
	return Options{
		BlockTags:   DefaultBlockTags(),
		IgnoredTags: DefaultIgnoredTags(),
		VoidTags:    DefaultVoidTags(),
		Ellipsis:    "…",
	}
}
