package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kittclouds/postag/pkg/normalize"
	"github.com/kittclouds/postag/pkg/trace"
)

// progressEvery is the line interval between progress trace updates.
const progressEvery = 10000

// Kind identifies which store a LoadError belongs to.
type Kind int

const (
	KindLexicon Kind = iota
	KindRegexLexicon
)

func (k Kind) String() string {
	if k == KindRegexLexicon {
		return "regex part of speech file"
	}
	return "part of speech file"
}

// LoadError reports a lexicon file that could not be opened or read.
// It is recoverable: resolution proceeds with whatever was loaded.
type LoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not read %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFile reads a lexicon file into b.
//
// The format is one block per headword:
//
//	Apfel:
//	 type: n
//	 genus: m
//
// Types are canonicalized, genus values are stored verbatim.
// Load is not transactional: on a read error the lines already parsed
// stay in b.
func LoadFile(path string, b *Builder, tr *trace.Tracer) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Kind: KindLexicon, Path: path, Err: err}
	}
	defer f.Close()

	tr.Printf("read part of speech file: %s", path)
	if err := Read(f, b, tr); err != nil {
		return &LoadError{Kind: KindLexicon, Path: path, Err: err}
	}
	return nil
}

// LoadRegexFile reads a regex lexicon file into b, preserving rule order.
func LoadRegexFile(path string, b *RegexBuilder, tr *trace.Tracer) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Kind: KindRegexLexicon, Path: path, Err: err}
	}
	defer f.Close()

	tr.Printf("read regex part of speech file: %s", path)
	if err := ReadRegex(f, b, tr); err != nil {
		return &LoadError{Kind: KindRegexLexicon, Path: path, Err: err}
	}
	return nil
}

// Read parses lexicon blocks from r into b.
func Read(r io.Reader, b *Builder, tr *trace.Tracer) error {
	return parse(r, tr, func(word, field, value string) {
		switch field {
		case "type":
			b.SetType(word, normalize.CanonicalType(value))
		case "genus":
			b.SetGenus(word, value)
		}
	})
}

// ReadRegex parses regex lexicon blocks from r into b. Headwords are
// patterns; each type line appends a rule.
func ReadRegex(r io.Reader, b *RegexBuilder, tr *trace.Tracer) error {
	return parse(r, tr, func(pattern, field, value string) {
		switch field {
		case "type":
			b.AddRule(pattern, normalize.CanonicalType(value))
		case "genus":
			b.SetGenus(pattern, value)
		}
	})
}

// parse drives the line-oriented block format and calls emit for every
// recognised rule line. Rule lines before the first headword and lines
// matching neither form are skipped.
func parse(r io.Reader, tr *trace.Tracer, emit func(head, field, value string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		head    string
		hasHead bool
		n       int
	)
	for sc.Scan() {
		line := strings.TrimRightFunc(sc.Text(), isSpace)

		if strings.HasSuffix(line, ":") {
			head = strings.TrimFunc(line, isColonOrSpace)
			hasHead = true
		}
		if strings.HasPrefix(line, " ") && hasHead {
			rule := strings.TrimFunc(line, isRuleTrim)
			switch {
			case strings.HasPrefix(rule, "type"):
				emit(head, "type", strings.TrimLeftFunc(rule[len("type"):], isColonOrSpace))
			case strings.HasPrefix(rule, "genus"):
				emit(head, "genus", strings.TrimLeftFunc(rule[len("genus"):], isColonOrSpace))
			}
		}

		n++
		if n%progressEvery == 0 {
			tr.Progress(n, false)
		}
	}
	tr.Progress(n, true)
	return sc.Err()
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isColonOrSpace(r rune) bool {
	return r == ':' || isSpace(r)
}

func isRuleTrim(r rune) bool {
	return r == ':' || r == ',' || r == ';' || isSpace(r)
}
