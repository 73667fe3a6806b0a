// Package asker holds the last-resort fallbacks the resolver consults
// when no lexicon, rule or guess produced a tag.
package asker

import (
	"fmt"

	"github.com/orsinium-labs/stopwords"

	"github.com/kittclouds/postag/pkg/lexicon"
	"github.com/kittclouds/postag/pkg/normalize"
)

// Asker resolves a word the resolver gave up on. An empty Tag means the
// word stays unresolved.
type Asker interface {
	Ask(word string) lexicon.Tag
}

// Nop never answers. It is the headless default.
type Nop struct{}

// Ask implements Asker.
func (Nop) Ask(string) lexicon.Tag { return lexicon.Tag{} }

// Func adapts a plain function to Asker.
type Func func(word string) lexicon.Tag

// Ask implements Asker.
func (f Func) Ask(word string) lexicon.Tag {
	if f == nil {
		return lexicon.Tag{}
	}
	return f(word)
}

// Chain consults each Asker in turn and returns the first non-empty Tag.
type Chain []Asker

// Ask implements Asker.
func (c Chain) Ask(word string) lexicon.Tag {
	for _, a := range c {
		if a == nil {
			continue
		}
		if tag := a.Ask(word); !tag.IsEmpty() {
			return tag
		}
	}
	return lexicon.Tag{}
}

// Stopwords tags the closed-class words of one language with a fixed type.
type Stopwords struct {
	list *stopwords.Stopwords
	typ  string
}

// NewStopwords returns a Stopwords asker for lang (an ISO 639-1 code such
// as "en" or "de") answering with typ.
func NewStopwords(lang, typ string) (*Stopwords, error) {
	list := stopwords.Get(lang)
	if list == nil {
		return nil, fmt.Errorf("unknown stopwords language %q", lang)
	}
	return &Stopwords{
		list: list,
		typ:  normalize.CanonicalType(typ),
	}, nil
}

// Ask implements Asker. Matching ignores ASCII case.
func (s *Stopwords) Ask(word string) lexicon.Tag {
	if s == nil || s.list == nil || s.typ == "" {
		return lexicon.Tag{}
	}
	if s.list.Contains(normalize.Lowercase(word)) {
		return lexicon.Tag{Type: s.typ}
	}
	return lexicon.Tag{}
}
