package tagger

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/postag/pkg/asker"
	"github.com/kittclouds/postag/pkg/config"
	"github.com/kittclouds/postag/pkg/lexicon"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func quiet() Options {
	return Options{Trace: io.Discard}
}

func TestLoadAndResolve(t *testing.T) {
	tg := New(quiet())
	require.NoError(t, tg.LoadLexicon(writeFile(t, "words.pos", "Apfel:\n type: n\n genus: m\n")))
	require.NoError(t, tg.LoadRegexLexicon(writeFile(t, "rules.pos", "^apf:\n type: v\nheit$:\n type: n\n genus: f\n")))

	assert.Equal(t, lexicon.Tag{Type: "n", Genus: "m"}, tg.GetPos("Apfel"))
	assert.Equal(t, lexicon.Tag{Type: "v"}, tg.GetPos("apfeln"))
	assert.Equal(t, lexicon.Tag{Type: "n", Genus: "f"}, tg.GetPos("freiheit"))

	st := tg.Stats()
	assert.Equal(t, 1, st.Words)
	assert.Equal(t, 1, st.Genus)
	assert.Equal(t, 2, st.Rules)
	assert.Empty(t, st.InvalidRules)
}

func TestLoadMissingFileKeepsTaggerUsable(t *testing.T) {
	tg := New(quiet())
	err := tg.LoadLexicon(filepath.Join(t.TempDir(), "missing.pos"))

	var le *lexicon.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, lexicon.KindLexicon, le.Kind)

	err = tg.LoadRegexLexicon(filepath.Join(t.TempDir(), "missing.pos"))
	require.True(t, errors.As(err, &le))
	assert.Equal(t, lexicon.KindRegexLexicon, le.Kind)

	assert.Equal(t, lexicon.Tag{Type: "n"}, tg.GetPos("Berlin"))
}

func TestConfigGatesGuessing(t *testing.T) {
	const words = "laufen:\n type: v\n"

	on := New(quiet())
	require.NoError(t, on.ReadLexicon(strings.NewReader(words)))
	assert.Equal(t, "v", on.GetPos("kaufen").Type)

	off := New(Options{Trace: io.Discard, Config: config.Map{config.SectionTagger: "0"}})
	require.NoError(t, off.ReadLexicon(strings.NewReader(words)))
	assert.True(t, off.GetPos("kaufen").IsEmpty())
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	tg := New(Options{Trace: &buf})
	tg.GetPos("Haus")
	assert.Contains(t, buf.String(), "get part of speech: Haus\n")

	buf.Reset()
	tg.SetVerbose(false)
	tg.GetPos("Haus")
	assert.Empty(t, buf.String())

	buf.Reset()
	cfgQuiet := New(Options{Trace: &buf, Config: config.Map{config.SectionVerbose: "0"}})
	cfgQuiet.GetPos("Haus")
	assert.Empty(t, buf.String())
}

func TestInvalidRulesTracedOnce(t *testing.T) {
	var buf bytes.Buffer
	tg := New(Options{Trace: &buf})
	require.NoError(t, tg.ReadRegexLexicon(strings.NewReader("(?<=a)b:\n type: n\n")))
	require.NoError(t, tg.ReadLexicon(strings.NewReader("Haus:\n type: n\n")))

	assert.Equal(t, 1, strings.Count(buf.String(), "invalid regex: '(?<=a)b'"))
	assert.Equal(t, []string{"(?<=a)b"}, tg.Stats().InvalidRules)
}

func TestGetPosAll(t *testing.T) {
	tg := New(Options{Trace: io.Discard, Config: config.Map{config.SectionTagger: "0"}})
	require.NoError(t, tg.ReadLexicon(strings.NewReader("der:\n type: art\n")))

	got := tg.GetPosAll([]string{"der", "Hund", "", "bellt"})
	assert.Equal(t, []lexicon.Tag{{Type: "art"}, {Type: "n"}, {}, {}}, got)
}

func TestAskerMayLearn(t *testing.T) {
	var tg *Tagger
	asked := 0
	a := asker.Func(func(w string) lexicon.Tag {
		asked++
		tag := lexicon.Tag{Type: "interj"}
		tg.Learn(w, tag)
		return tag
	})
	tg = New(Options{Trace: io.Discard, Asker: a, Config: config.Map{config.SectionTagger: "0"}})

	assert.Equal(t, "interj", tg.GetPos("oh").Type)
	assert.Equal(t, "interj", tg.GetPos("oh").Type)
	assert.Equal(t, 1, asked)
}

type fakeSource struct {
	err error
}

func (f fakeSource) LoadLexicon(b *lexicon.Builder) error {
	b.SetType("Hund", "n")
	b.SetGenus("Hund", "m")
	return f.err
}

func (f fakeSource) LoadRegexLexicon(b *lexicon.RegexBuilder) error {
	b.AddRule("^un", "adj")
	return nil
}

func TestLearnKeepsSnapshot(t *testing.T) {
	tg := New(quiet())
	require.NoError(t, tg.ReadLexicon(strings.NewReader("Apfel:\n type: n\n genus: m\n")))
	before, beforeRx := tg.Snapshot()

	tg.Learn("der", lexicon.Tag{Type: "art"})
	tg.Learn("Birne", lexicon.Tag{Type: "n", Genus: "f"})

	after, afterRx := tg.Snapshot()
	assert.Same(t, before, after)
	assert.Same(t, beforeRx, afterRx)
	assert.Equal(t, lexicon.Tag{Type: "art"}, tg.GetPos("der"))
	assert.Equal(t, lexicon.Tag{Type: "n", Genus: "f"}, tg.GetPos("Birne"))
	assert.Equal(t, Stats{Words: 1, Genus: 1, Learned: 2}, tg.Stats())
}

func TestLoadFoldsLearnedWords(t *testing.T) {
	tg := New(quiet())
	tg.Learn("Bank", lexicon.Tag{Type: "n", Genus: "f"})
	tg.Learn("oh", lexicon.Tag{Type: "interj"})

	// a later load still overwrites a learned word
	require.NoError(t, tg.ReadLexicon(strings.NewReader("Bank:\n type: vt\n")))

	assert.Equal(t, Stats{Words: 2, Genus: 1}, tg.Stats())
	assert.Equal(t, lexicon.Tag{Type: "v"}, tg.GetPos("Bank"))
	assert.Equal(t, lexicon.Tag{Type: "interj"}, tg.GetPos("oh"))
}

func TestLearnIgnoresEmpty(t *testing.T) {
	tg := New(quiet())
	tg.Learn("", lexicon.Tag{Type: "n"})
	tg.Learn("x", lexicon.Tag{})
	assert.Zero(t, tg.Stats().Learned)
}

func TestLoadSource(t *testing.T) {
	tg := New(quiet())
	require.NoError(t, tg.LoadSource(fakeSource{}))
	assert.Equal(t, lexicon.Tag{Type: "n", Genus: "m"}, tg.GetPos("Hund"))
	assert.Equal(t, lexicon.Tag{Type: "adj"}, tg.GetPos("unklar"))

	boom := errors.New("boom")
	tg = New(quiet())
	assert.ErrorIs(t, tg.LoadSource(fakeSource{err: boom}), boom)
	// what was read before the failure is kept
	assert.Equal(t, "n", tg.GetPos("Hund").Type)
}

func TestConcurrentLoadAndLookup(t *testing.T) {
	tg := New(quiet())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = tg.ReadLexicon(strings.NewReader("Hund:\n type: n\n"))
		}()
		go func() {
			defer wg.Done()
			_ = tg.GetPos("Hund")
		}()
	}
	wg.Wait()
	assert.Equal(t, "n", tg.GetPos("Hund").Type)
}
