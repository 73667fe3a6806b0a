package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/kittclouds/postag/pkg/asker"
	"github.com/kittclouds/postag/pkg/config"
	"github.com/kittclouds/postag/pkg/tagger"
)

func TestTagLines(t *testing.T) {
	tg := tagger.New(tagger.Options{Trace: io.Discard, Config: config.Map{config.SectionTagger: "0"}})
	if err := tg.ReadLexicon(strings.NewReader("Apfel:\n type: n\n genus: m\n")); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := tagLines(strings.NewReader("Apfel\n\n  Haus \nxyz\n"), &out, tg); err != nil {
		t.Fatal(err)
	}
	want := "Apfel\tn\tm\nHaus\tn\t\nxyz\t\t\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestFallback(t *testing.T) {
	if _, ok := fallback(config.Map{}, false).(asker.Nop); !ok {
		t.Error("expected Nop without stopwords or prompt")
	}

	a := fallback(config.Map{config.SectionStopwords: "en"}, false)
	if got := a.Ask("the"); got.Type != "func" {
		t.Errorf("expected default stopword type func, got %q", got.Type)
	}
	a = fallback(config.Map{config.SectionStopwords: "en", config.SectionStopwordType: "art"}, false)
	if got := a.Ask("the"); got.Type != "art" {
		t.Errorf("expected configured stopword type art, got %q", got.Type)
	}
}

func TestFallbackUnknownStopwordsLanguage(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("fallback panicked on an unknown stopwords language: %v", r)
		}
	}()

	a := fallback(config.Map{config.SectionStopwords: "xx"}, false)
	if _, ok := a.(asker.Nop); !ok {
		t.Errorf("expected Nop when the only asker is skipped, got %T", a)
	}
	chain, ok := fallback(config.Map{config.SectionStopwords: "xx"}, true).(asker.Chain)
	if !ok || len(chain) != 1 {
		t.Errorf("expected only the prompt in the chain, got %#v", chain)
	}
}
