// Package resolver implements the part-of-speech fallback chain.
//
// A word is tried against the exact lexicon (as given, capitalized, lower
// case), the inline {{{type}}} syntax, the ordered regex rules, the
// upper-case heuristic, the affix guesser and finally the Asker. The
// first stage yielding a non-empty Tag wins.
package resolver

import (
	"regexp"

	"github.com/kittclouds/postag/pkg/asker"
	"github.com/kittclouds/postag/pkg/config"
	"github.com/kittclouds/postag/pkg/guesser"
	"github.com/kittclouds/postag/pkg/lexicon"
	"github.com/kittclouds/postag/pkg/normalize"
	"github.com/kittclouds/postag/pkg/trace"
)

// predefined captures an inline type annotation such as "{{{v}}}".
var predefined = regexp.MustCompile(`(?i)\{{3}(.*?)\}{3}`)

// Resolver owns immutable lexicon snapshots and resolves words against
// them. It is safe for concurrent use.
type Resolver struct {
	lex     *lexicon.Lexicon
	learned *Learned
	rx      *lexicon.RegexLexicon
	guesser *guesser.Guesser
	cfg     config.Store
	asker   asker.Asker
	tr      *trace.Tracer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConfig sets the configuration consulted by the guesser.
func WithConfig(cfg config.Store) Option {
	return func(r *Resolver) { r.cfg = cfg }
}

// WithAsker sets the last-resort fallback.
func WithAsker(a asker.Asker) Option {
	return func(r *Resolver) { r.asker = a }
}

// WithTracer sets the trace output.
func WithTracer(tr *trace.Tracer) Option {
	return func(r *Resolver) { r.tr = tr }
}

// WithLearned sets the overlay consulted ahead of the exact lexicon.
func WithLearned(l *Learned) Option {
	return func(r *Resolver) { r.learned = l }
}

// New creates a Resolver. Either lexicon may be nil.
func New(lex *lexicon.Lexicon, rx *lexicon.RegexLexicon, opts ...Option) *Resolver {
	r := &Resolver{
		lex:   lex,
		rx:    rx,
		asker: asker.Nop{},
		tr:    trace.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.asker == nil {
		r.asker = asker.Nop{}
	}
	r.guesser = guesser.New(lex, r.cfg, r.tr)
	return r
}

// Lexicon returns the exact lexicon snapshot.
func (r *Resolver) Lexicon() *lexicon.Lexicon { return r.lex }

// RegexLexicon returns the rule snapshot.
func (r *Resolver) RegexLexicon() *lexicon.RegexLexicon { return r.rx }

// GetPos resolves raw to a Tag. Bytes outside ASCII are dropped first; a
// word left empty resolves to the empty Tag without tracing.
func (r *Resolver) GetPos(raw string) lexicon.Tag {
	word := normalize.ToASCII(raw)
	if word == "" {
		return lexicon.Tag{}
	}
	r.tr.Printf("get part of speech: %s", word)

	tag := r.lookup(word)
	if tag.IsEmpty() {
		tag = r.lookup(normalize.UppercaseFirst(word))
	}
	if tag.IsEmpty() {
		tag = r.lookup(normalize.Lowercase(word))
	}
	if tag.IsEmpty() {
		if m := predefined.FindStringSubmatch(word); m != nil {
			tag.Type = m[1]
			r.tr.Printf("  predefined: %s", tag)
		}
	}
	if tag.IsEmpty() {
		tag = r.regexLookup(word)
	}
	if tag.IsEmpty() && normalize.HasUpper(word) {
		tag.Type = lexicon.TypeNoun
		r.tr.Printf("  found: %s", tag)
		r.tr.Printf("  (upper case)")
	}
	if tag.IsEmpty() {
		tag = r.guesser.Guess(word)
	}
	if tag.IsEmpty() {
		tag = r.asker.Ask(word)
	}
	if tag.IsEmpty() {
		r.tr.Printf("  not found.")
	}
	return tag
}

func (r *Resolver) lookup(word string) lexicon.Tag {
	tag, ok := r.learnedLookup(word)
	if !ok {
		tag, ok = r.lex.Lookup(word)
	}
	if !ok {
		return lexicon.Tag{}
	}
	r.tr.Printf("  found: %s", tag)
	return tag
}

// learnedLookup mirrors Lexicon.Lookup: the genus is kept only for nouns
// and falls back to the lexicon's genus entry.
func (r *Resolver) learnedLookup(word string) (lexicon.Tag, bool) {
	tag, ok := r.learned.Get(word)
	if !ok {
		return lexicon.Tag{}, false
	}
	if tag.Type != lexicon.TypeNoun {
		tag.Genus = ""
	} else if tag.Genus == "" {
		tag.Genus, _ = r.lex.Genus(word)
	}
	return tag, true
}

func (r *Resolver) regexLookup(word string) lexicon.Tag {
	tag, pattern, ok := r.rx.Lookup(word)
	if !ok {
		return lexicon.Tag{}
	}
	r.tr.Printf("  found: %s", tag)
	r.tr.Printf("  by regex: '%s'", pattern)
	return tag
}
