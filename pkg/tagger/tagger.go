// Package tagger is the public entry point: it owns the lexicon
// builders, rebuilds the resolver after every load and answers lookups.
package tagger

import (
	"io"
	"sync"

	"github.com/kittclouds/postag/pkg/asker"
	"github.com/kittclouds/postag/pkg/config"
	"github.com/kittclouds/postag/pkg/lexicon"
	"github.com/kittclouds/postag/pkg/resolver"
	"github.com/kittclouds/postag/pkg/trace"
)

// Options configures a Tagger. The zero value is usable: guessing is on,
// tracing goes to stdout and unresolved words stay unresolved.
type Options struct {
	Config config.Store
	Asker  asker.Asker
	Trace  io.Writer
}

// Source is persisted lexicon data that can be replayed into builders.
type Source interface {
	LoadLexicon(b *lexicon.Builder) error
	LoadRegexLexicon(b *lexicon.RegexBuilder) error
}

// Stats summarizes the loaded data.
type Stats struct {
	Words        int      `json:"words"`
	Genus        int      `json:"genus"`
	Rules        int      `json:"rules"`
	Learned      int      `json:"learned,omitempty"`
	InvalidRules []string `json:"invalid_rules,omitempty"`
}

// Tagger resolves words against everything loaded so far.
// Safe for concurrent use.
type Tagger struct {
	mu    sync.RWMutex
	cfg   config.Store
	asker asker.Asker
	tr    *trace.Tracer

	lex     *lexicon.Builder
	rx      *lexicon.RegexBuilder
	learned *resolver.Learned
	res     *resolver.Resolver

	reported int // invalid patterns already traced
}

// New creates an empty Tagger. Tracing starts enabled unless the
// "verbose" section of the configuration says otherwise.
func New(opts Options) *Tagger {
	t := &Tagger{
		cfg:     opts.Config,
		asker:   opts.Asker,
		tr:      trace.New(opts.Trace),
		lex:     lexicon.NewBuilder(),
		rx:      lexicon.NewRegexBuilder(),
		learned: resolver.NewLearned(),
	}
	t.tr.SetEnabled(config.Enabled(opts.Config, config.SectionVerbose, "1"))
	t.rebuild()
	return t
}

// SetVerbose toggles the resolution trace.
func (t *Tagger) SetVerbose(v bool) {
	t.tr.SetEnabled(v)
}

// LoadLexicon adds the entries of a lexicon file. On error the entries
// read before the failure are kept and the Tagger stays usable.
func (t *Tagger) LoadLexicon(path string) error {
	return t.load(func() error { return lexicon.LoadFile(path, t.lex, t.tr) })
}

// LoadRegexLexicon appends the rules of a regex lexicon file.
func (t *Tagger) LoadRegexLexicon(path string) error {
	return t.load(func() error { return lexicon.LoadRegexFile(path, t.rx, t.tr) })
}

// ReadLexicon adds lexicon entries from r.
func (t *Tagger) ReadLexicon(r io.Reader) error {
	return t.load(func() error { return lexicon.Read(r, t.lex, t.tr) })
}

// ReadRegexLexicon appends regex rules from r.
func (t *Tagger) ReadRegexLexicon(r io.Reader) error {
	return t.load(func() error { return lexicon.ReadRegex(r, t.rx, t.tr) })
}

// LoadSource replays persisted data into the Tagger.
func (t *Tagger) LoadSource(src Source) error {
	return t.load(func() error {
		if err := src.LoadLexicon(t.lex); err != nil {
			return err
		}
		return src.LoadRegexLexicon(t.rx)
	})
}

// Learn records a tag for word, as if it had been read from a lexicon.
// The tag lands in an overlay of the current resolver; the next load folds
// it into the lexicon.
func (t *Tagger) Learn(word string, tag lexicon.Tag) {
	if word == "" || tag.Type == "" {
		return
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.learned.Set(word, tag)
}

// GetPos resolves a single word.
func (t *Tagger) GetPos(word string) lexicon.Tag {
	return t.resolver().GetPos(word)
}

// GetPosAll resolves each word independently; the result is aligned
// with words.
func (t *Tagger) GetPosAll(words []string) []lexicon.Tag {
	res := t.resolver()
	out := make([]lexicon.Tag, len(words))
	for i, w := range words {
		out[i] = res.GetPos(w)
	}
	return out
}

// Snapshot returns the current immutable lexicons. Words learned since
// the last load are not part of it.
func (t *Tagger) Snapshot() (*lexicon.Lexicon, *lexicon.RegexLexicon) {
	res := t.resolver()
	return res.Lexicon(), res.RegexLexicon()
}

// Stats reports what is loaded. Learned counts the words recorded since
// the last load.
func (t *Tagger) Stats() Stats {
	t.mu.RLock()
	res, learned := t.res, t.learned
	t.mu.RUnlock()
	lex, rx := res.Lexicon(), res.RegexLexicon()
	return Stats{
		Words:        lex.Len(),
		Genus:        lex.GenusLen(),
		Rules:        rx.Len(),
		Learned:      learned.Len(),
		InvalidRules: rx.Invalid(),
	}
}

// resolver returns the current snapshot. Resolution runs outside the
// lock so an Asker may call Learn.
func (t *Tagger) resolver() *resolver.Resolver {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.res
}

// load folds the learned overlay into the lexicon, runs fn and rebuilds
// even when fn fails. Folding first lets fn overwrite learned words.
func (t *Tagger) load(fn func() error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.learned.Teach(t.lex)
	t.learned = resolver.NewLearned()
	err := fn()
	t.rebuild()
	return err
}

// rebuild must be called with mu held.
func (t *Tagger) rebuild() {
	rx := t.rx.Build()
	invalid := rx.Invalid()
	for _, p := range invalid[min(t.reported, len(invalid)):] {
		t.tr.Printf("  invalid regex: '%s'", p)
	}
	t.reported = len(invalid)
	t.res = resolver.New(t.lex.Build(), rx,
		resolver.WithConfig(t.cfg),
		resolver.WithAsker(t.asker),
		resolver.WithTracer(t.tr),
		resolver.WithLearned(t.learned),
	)
}
