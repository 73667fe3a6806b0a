// Package store provides SQLite-backed persistence for lexicons.
package store

import "github.com/kittclouds/postag/pkg/lexicon"

// Entry is one headword of the exact lexicon. Either field may be empty:
// a genus can be recorded for a word without a type.
type Entry struct {
	Word  string `json:"word"`
	Type  string `json:"type,omitempty"`
	Genus string `json:"genus,omitempty"`
}

// RuleRow is one ordered regex rule. Seq fixes the evaluation order.
type RuleRow struct {
	Seq     int64  `json:"seq"`
	Pattern string `json:"pattern"`
	Type    string `json:"type"`
}

// PatternGenus is the genus attached to a regex pattern.
type PatternGenus struct {
	Pattern string `json:"pattern"`
	Genus   string `json:"genus"`
}

// Counts summarizes the stored rows.
type Counts struct {
	Words int `json:"words"`
	Genus int `json:"genus"`
	Rules int `json:"rules"`
}

// ExportData is the portable JSON form of the whole store.
type ExportData struct {
	Entries    []Entry        `json:"entries"`
	Rules      []RuleRow      `json:"rules"`
	RegexGenus []PatternGenus `json:"regexGenus"`
}

// Storer is the persistence contract used by the tagger and the CLI.
type Storer interface {
	// Exact lexicon
	SaveLexicon(lex *lexicon.Lexicon) error
	LoadLexicon(b *lexicon.Builder) error

	// Regex lexicon
	SaveRegexLexicon(x *lexicon.RegexLexicon) error
	LoadRegexLexicon(b *lexicon.RegexBuilder) error

	Counts() (Counts, error)
	Clear() error
	Replace(lex *lexicon.Lexicon, x *lexicon.RegexLexicon) error

	// Export/Import (JSON snapshot)
	Export() ([]byte, error)
	Import(data []byte) error

	// Lifecycle
	Close() error
}
