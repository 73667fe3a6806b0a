package asker

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kittclouds/postag/pkg/lexicon"
	"github.com/kittclouds/postag/pkg/normalize"
)

// Prompt asks a human on a line-oriented terminal. Answers are remembered
// for the lifetime of the Prompt so a word is asked at most once.
type Prompt struct {
	mu      sync.Mutex
	in      *bufio.Reader
	out     io.Writer
	learned map[string]lexicon.Tag
}

// NewPrompt reads answers from in and writes questions to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{
		in:      bufio.NewReader(in),
		out:     out,
		learned: make(map[string]lexicon.Tag),
	}
}

// Ask implements Asker. An empty answer, or end of input, leaves the word
// unresolved and is not remembered.
func (p *Prompt) Ask(word string) lexicon.Tag {
	p.mu.Lock()
	defer p.mu.Unlock()

	if tag, ok := p.learned[word]; ok {
		return tag
	}

	typ := normalize.CanonicalType(p.question(fmt.Sprintf("part of speech of '%s'? ", word)))
	if typ == "" {
		return lexicon.Tag{}
	}
	tag := lexicon.Tag{Type: typ}
	if typ == lexicon.TypeNoun {
		tag.Genus = p.question(fmt.Sprintf("genus of '%s' (m/f/n)? ", word))
	}
	p.learned[word] = tag
	return tag
}

func (p *Prompt) question(q string) string {
	fmt.Fprint(p.out, q)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
