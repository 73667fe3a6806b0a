// Package lexicon holds the word and pattern data consulted during tag
// resolution.
//
// Loaders and stores fill a Builder or RegexBuilder; Build snapshots the
// data into an immutable Lexicon or RegexLexicon that any number of
// goroutines may read concurrently.
package lexicon

import "regexp"

// TypeNoun is the canonical noun type, the only type that carries a genus.
const TypeNoun = "n"

// Lexicon maps exact words to a canonical type and, for nouns, a genus.
// A nil *Lexicon behaves as an empty one.
type Lexicon struct {
	types map[string]string
	genus map[string]string
}

// Lookup returns the tag stored for word. The genus is attached only
// when the type is "n". ok is false when word has no type entry.
func (l *Lexicon) Lookup(word string) (tag Tag, ok bool) {
	if l == nil {
		return Tag{}, false
	}
	typ, ok := l.types[word]
	if !ok {
		return Tag{}, false
	}
	tag.Type = typ
	if typ == TypeNoun {
		tag.Genus = l.genus[word]
	}
	return tag, true
}

// Type returns the raw type entry for word.
func (l *Lexicon) Type(word string) (string, bool) {
	if l == nil {
		return "", false
	}
	typ, ok := l.types[word]
	return typ, ok
}

// Genus returns the genus entry for word, regardless of its type.
func (l *Lexicon) Genus(word string) (string, bool) {
	if l == nil {
		return "", false
	}
	g, ok := l.genus[word]
	return g, ok
}

// Len returns the number of typed words.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.types)
}

// GenusLen returns the number of genus entries.
func (l *Lexicon) GenusLen() int {
	if l == nil {
		return 0
	}
	return len(l.genus)
}

// Range calls fn for every (word, type) entry until fn returns false.
// Iteration order is unspecified.
func (l *Lexicon) Range(fn func(word, typ string) bool) {
	if l == nil {
		return
	}
	for w, t := range l.types {
		if !fn(w, t) {
			return
		}
	}
}

// RangeGenus calls fn for every (word, genus) entry until fn returns false.
func (l *Lexicon) RangeGenus(fn func(word, genus string) bool) {
	if l == nil {
		return
	}
	for w, g := range l.genus {
		if !fn(w, g) {
			return
		}
	}
}

// Builder accumulates lexicon entries. Not safe for concurrent use.
type Builder struct {
	types map[string]string
	genus map[string]string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		types: make(map[string]string),
		genus: make(map[string]string),
	}
}

// SetType records the type of word. A later call for the same word wins.
func (b *Builder) SetType(word, typ string) {
	b.types[word] = typ
}

// SetGenus records the genus of word. A later call for the same word wins.
func (b *Builder) SetGenus(word, genus string) {
	b.genus[word] = genus
}

// Merge copies every entry of l into the builder.
func (b *Builder) Merge(l *Lexicon) {
	l.Range(func(w, t string) bool {
		b.types[w] = t
		return true
	})
	l.RangeGenus(func(w, g string) bool {
		b.genus[w] = g
		return true
	})
}

// Len returns the number of typed words collected so far.
func (b *Builder) Len() int {
	return len(b.types)
}

// Build snapshots the collected entries. The builder stays usable.
func (b *Builder) Build() *Lexicon {
	l := &Lexicon{
		types: make(map[string]string, len(b.types)),
		genus: make(map[string]string, len(b.genus)),
	}
	for w, t := range b.types {
		l.types[w] = t
	}
	for w, g := range b.genus {
		l.genus[w] = g
	}
	return l
}

// Rule is one ordered (pattern, type) association of a RegexLexicon.
type Rule struct {
	Pattern string
	Type    string
	re      *regexp.Regexp
}

// Valid reports whether the pattern compiled.
func (r Rule) Valid() bool {
	return r.re != nil
}

// MatchString reports whether the pattern occurs anywhere in s,
// ignoring case. Invalid rules never match.
func (r Rule) MatchString(s string) bool {
	return r.re != nil && r.re.MatchString(s)
}

// RegexLexicon is an ordered list of pattern rules; the first rule whose
// pattern matches wins. A nil *RegexLexicon behaves as an empty one.
type RegexLexicon struct {
	rules   []Rule
	genus   map[string]string
	invalid []string
}

// Match returns the first rule, in load order, whose pattern matches word.
func (x *RegexLexicon) Match(word string) (Rule, bool) {
	if x == nil {
		return Rule{}, false
	}
	for _, r := range x.rules {
		if r.MatchString(word) {
			return r, true
		}
	}
	return Rule{}, false
}

// Lookup resolves word against the rules. The genus of the matching
// pattern is attached only when the rule type is "n".
func (x *RegexLexicon) Lookup(word string) (tag Tag, pattern string, ok bool) {
	r, ok := x.Match(word)
	if !ok {
		return Tag{}, "", false
	}
	tag.Type = r.Type
	if r.Type == TypeNoun {
		tag.Genus = x.genus[r.Pattern]
	}
	return tag, r.Pattern, true
}

// Genus returns the genus associated with pattern.
func (x *RegexLexicon) Genus(pattern string) (string, bool) {
	if x == nil {
		return "", false
	}
	g, ok := x.genus[pattern]
	return g, ok
}

// Rules returns a copy of the rules in load order.
func (x *RegexLexicon) Rules() []Rule {
	if x == nil {
		return nil
	}
	out := make([]Rule, len(x.rules))
	copy(out, x.rules)
	return out
}

// RangeGenus calls fn for every (pattern, genus) entry until fn returns false.
func (x *RegexLexicon) RangeGenus(fn func(pattern, genus string) bool) {
	if x == nil {
		return
	}
	for p, g := range x.genus {
		if !fn(p, g) {
			return
		}
	}
}

// Len returns the number of rules.
func (x *RegexLexicon) Len() int {
	if x == nil {
		return 0
	}
	return len(x.rules)
}

// Invalid returns the patterns that failed to compile, in load order.
func (x *RegexLexicon) Invalid() []string {
	if x == nil {
		return nil
	}
	return append([]string(nil), x.invalid...)
}

type ruleEntry struct {
	pattern string
	typ     string
}

// RegexBuilder accumulates regex rules in load order.
type RegexBuilder struct {
	rules []ruleEntry
	genus map[string]string
}

// NewRegexBuilder creates an empty RegexBuilder.
func NewRegexBuilder() *RegexBuilder {
	return &RegexBuilder{genus: make(map[string]string)}
}

// AddRule appends a rule. Earlier rules are never reordered.
func (b *RegexBuilder) AddRule(pattern, typ string) {
	b.rules = append(b.rules, ruleEntry{pattern: pattern, typ: typ})
}

// SetGenus records the genus of pattern.
func (b *RegexBuilder) SetGenus(pattern, genus string) {
	b.genus[pattern] = genus
}

// Merge appends the rules of x after the ones already collected.
func (b *RegexBuilder) Merge(x *RegexLexicon) {
	for _, r := range x.Rules() {
		b.AddRule(r.Pattern, r.Type)
	}
	x.RangeGenus(func(p, g string) bool {
		b.genus[p] = g
		return true
	})
}

// Len returns the number of rules collected so far.
func (b *RegexBuilder) Len() int {
	return len(b.rules)
}

// Build compiles every pattern case-insensitively and snapshots the rules.
// Patterns the regexp engine rejects stay in place but never match.
func (b *RegexBuilder) Build() *RegexLexicon {
	x := &RegexLexicon{
		rules: make([]Rule, 0, len(b.rules)),
		genus: make(map[string]string, len(b.genus)),
	}
	compiled := make(map[string]*regexp.Regexp)
	failed := make(map[string]bool)
	for _, e := range b.rules {
		re, seen := compiled[e.pattern]
		if !seen && !failed[e.pattern] {
			var err error
			re, err = regexp.Compile("(?i)" + e.pattern)
			if err != nil {
				failed[e.pattern] = true
				x.invalid = append(x.invalid, e.pattern)
				re = nil
			} else {
				compiled[e.pattern] = re
			}
		}
		x.rules = append(x.rules, Rule{Pattern: e.pattern, Type: e.typ, re: re})
	}
	for p, g := range b.genus {
		x.genus[p] = g
	}
	return x
}
