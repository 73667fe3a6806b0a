// Package guesser classifies unknown words by their shape: weighted
// suffix and prefix overlap with the typed words of a lexicon.
package guesser

import (
	"github.com/coregx/ahocorasick"

	"github.com/kittclouds/postag/pkg/config"
	"github.com/kittclouds/postag/pkg/lexicon"
	"github.com/kittclouds/postag/pkg/normalize"
	"github.com/kittclouds/postag/pkg/pool"
	"github.com/kittclouds/postag/pkg/trace"
)

// Weights by affix length; index 0 is unused.
var (
	suffixWeights = []int{0, 2, 6, 12, 8, 10, 12}
	prefixWeights = []int{0, 1, 2, 3}
)

// candidateTypes are the only types the guesser can produce, in the
// order scores are compared. On equal scores the earlier type wins.
var candidateTypes = []string{"adj", "n", "v"}

// Score is the tally of one candidate type for a word.
type Score struct {
	Type   string
	Rating int // sum of matched affix weights
	Count  int // number of affix matches
	Score  int // 100 * Rating^2 / Count
}

type entry struct {
	word string
	typ  string
}

// Guesser scores words against a fixed lexicon snapshot.
type Guesser struct {
	cfg config.Store
	tr  *trace.Tracer

	// entries with a candidate type, split by case class:
	// [0] words with an upper-case letter, [1] all-lower words
	entries [2][]entry
}

// New prepares a Guesser over lex. cfg gates Guess through the "tagger"
// section; tr may be nil.
func New(lex *lexicon.Lexicon, cfg config.Store, tr *trace.Tracer) *Guesser {
	g := &Guesser{cfg: cfg, tr: tr}
	lex.Range(func(word, typ string) bool {
		if !isCandidate(typ) {
			return true
		}
		class := caseClass(normalize.IsLower(word))
		g.entries[class] = append(g.entries[class], entry{word: word, typ: typ})
		return true
	})
	return g
}

// Guess runs ImplGuess unless guessing is switched off in the
// configuration, in which case the empty Tag is returned.
func (g *Guesser) Guess(word string) lexicon.Tag {
	if !config.Enabled(g.cfg, config.SectionTagger, "1") {
		g.tr.Printf("  (can't guess, deactivated in config)")
		return lexicon.Tag{}
	}
	return g.ImplGuess(word)
}

// ImplGuess returns the best scoring candidate type for word. The Tag
// never carries a genus. Words of one byte get no affix keys and stay
// unresolved.
func (g *Guesser) ImplGuess(word string) lexicon.Tag {
	g.tr.Printf("  guess: %s", word)

	var tag lexicon.Tag
	best := 0
	for _, s := range g.Scores(word) {
		if s.Score > best {
			best = s.Score
			tag.Type = s.Type
		}
		g.tr.Printf("  -> part of speech: '%s', rating: %d", s.Type, s.Score)
	}

	g.tr.Printf("  guessed: %s", tag)
	return tag
}

// Scores returns the tally of every candidate type that matched at least
// one affix, in comparison order.
func (g *Guesser) Scores(word string) []Score {
	suffixes := newAffixTable(word, suffixWeights, true)
	prefixes := newAffixTable(word, prefixWeights, false)
	if suffixes.empty() && prefixes.empty() {
		return nil
	}

	rating := pool.GetCounter()
	count := pool.GetCounter()
	defer pool.PutCounter(rating)
	defer pool.PutCounter(count)

	for _, e := range g.entries[caseClass(normalize.IsLower(word))] {
		r, c := suffixes.match(e.word)
		pr, pc := prefixes.match(e.word)
		if c+pc == 0 {
			continue
		}
		rating[e.typ] += r + pr
		count[e.typ] += c + pc
	}

	out := make([]Score, 0, len(candidateTypes))
	for _, typ := range candidateTypes {
		n := count[typ]
		if n == 0 {
			continue
		}
		r := rating[typ]
		out = append(out, Score{
			Type:   typ,
			Rating: r,
			Count:  n,
			Score:  100 * r * r / n,
		})
	}
	return out
}

// affixTable holds the suffix or prefix keys of one word together with an
// Aho-Corasick automaton over them. Keys are distinct since each length
// contributes exactly one key.
type affixTable struct {
	suffix  bool
	keys    []string
	weights []int
	ac      *ahocorasick.Automaton
}

func newAffixTable(word string, weights []int, suffix bool) *affixTable {
	t := &affixTable{suffix: suffix}
	keys := pool.GetStrings()
	defer pool.PutStrings(keys)

	for n := 1; n < len(weights); n++ {
		if len(word) <= n {
			break
		}
		if suffix {
			keys = append(keys, word[len(word)-n:])
		} else {
			keys = append(keys, word[:n])
		}
		t.weights = append(t.weights, weights[n])
	}
	if len(keys) == 0 {
		return t
	}
	t.keys = append([]string(nil), keys...)

	ac, err := ahocorasick.NewBuilder().
		AddStrings(t.keys).
		Build()
	if err != nil {
		t.keys = nil
		t.weights = nil
		return t
	}
	t.ac = ac
	return t
}

func (t *affixTable) empty() bool {
	return t.ac == nil
}

// match returns the summed weight and number of keys that s ends with
// (suffix table) or starts with (prefix table).
func (t *affixTable) match(s string) (rating, count int) {
	if t.ac == nil || s == "" {
		return 0, 0
	}
	for _, m := range t.ac.FindAllOverlapping([]byte(s)) {
		if t.suffix && m.End != len(s) {
			continue
		}
		if !t.suffix && m.Start != 0 {
			continue
		}
		rating += t.weights[m.PatternID]
		count++
	}
	return rating, count
}

// Keys returns the suffix and prefix keys generated for word, shortest
// first.
func Keys(word string) (suffixes, prefixes []string) {
	return newAffixTable(word, suffixWeights, true).keys,
		newAffixTable(word, prefixWeights, false).keys
}

func isCandidate(typ string) bool {
	for _, c := range candidateTypes {
		if typ == c {
			return true
		}
	}
	return false
}

func caseClass(lower bool) int {
	if lower {
		return 1
	}
	return 0
}
