package resolver

import (
	"sync"

	"github.com/kittclouds/postag/pkg/lexicon"
)

// Learned holds tags recorded after the lexicon snapshot was built. A
// Resolver consults it ahead of the exact lexicon. A nil *Learned is
// empty. Safe for concurrent use.
type Learned struct {
	mu   sync.RWMutex
	tags map[string]lexicon.Tag
}

// NewLearned creates an empty overlay.
func NewLearned() *Learned {
	return &Learned{tags: make(map[string]lexicon.Tag)}
}

// Set records tag for word. A later call for the same word wins.
func (l *Learned) Set(word string, tag lexicon.Tag) {
	l.mu.Lock()
	l.tags[word] = tag
	l.mu.Unlock()
}

// Get returns the tag recorded for word.
func (l *Learned) Get(word string) (lexicon.Tag, bool) {
	if l == nil {
		return lexicon.Tag{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	tag, ok := l.tags[word]
	return tag, ok
}

// Len returns the number of recorded words.
func (l *Learned) Len() int {
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tags)
}

// Teach writes every recorded tag into b.
func (l *Learned) Teach(b *lexicon.Builder) {
	if l == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	for w, tag := range l.tags {
		b.SetType(w, tag.Type)
		if tag.Genus != "" {
			b.SetGenus(w, tag.Genus)
		}
	}
}
