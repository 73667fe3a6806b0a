package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/postag/pkg/lexicon"
)

func TestLearnedAheadOfLexicon(t *testing.T) {
	l := NewLearned()
	r := setupResolver(t, WithLearned(l))

	// recorded after the resolver was built
	l.Set("Apfel", lexicon.Tag{Type: "v"})
	l.Set("gehen", lexicon.Tag{Type: "v"})

	assert.Equal(t, lexicon.Tag{Type: "v"}, r.GetPos("Apfel"))
	assert.Equal(t, lexicon.Tag{Type: "v"}, r.GetPos("Gehen"))
	assert.Equal(t, lexicon.Tag{Type: "adj"}, r.GetPos("schnell"))
}

func TestLearnedGenus(t *testing.T) {
	l := NewLearned()
	r := setupResolver(t, WithLearned(l))

	l.Set("Haus", lexicon.Tag{Type: "n"})
	l.Set("oh", lexicon.Tag{Type: "interj", Genus: "m"})
	l.Set("Birne", lexicon.Tag{Type: "n", Genus: "f"})

	assert.Equal(t, lexicon.Tag{Type: "n", Genus: "n"}, r.GetPos("Haus"))
	assert.Equal(t, lexicon.Tag{Type: "interj"}, r.GetPos("oh"))
	assert.Equal(t, lexicon.Tag{Type: "n", Genus: "f"}, r.GetPos("Birne"))
}

func TestLearnedTeach(t *testing.T) {
	var nilLearned *Learned
	_, ok := nilLearned.Get("x")
	assert.False(t, ok)
	assert.Zero(t, nilLearned.Len())

	l := NewLearned()
	l.Set("Birne", lexicon.Tag{Type: "n", Genus: "f"})
	l.Set("oh", lexicon.Tag{Type: "interj"})
	l.Set("oh", lexicon.Tag{Type: "adv"})
	assert.Equal(t, 2, l.Len())

	b := lexicon.NewBuilder()
	l.Teach(b)
	lex := b.Build()
	tag, ok := lex.Lookup("Birne")
	require.True(t, ok)
	assert.Equal(t, lexicon.Tag{Type: "n", Genus: "f"}, tag)
	typ, _ := lex.Type("oh")
	assert.Equal(t, "adv", typ)
	assert.Equal(t, 1, lex.GenusLen())
}
