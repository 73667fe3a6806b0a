package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/kittclouds/postag/pkg/lexicon"
)

const words = `Apfel:
 type: n
 genus: m
laufen:
 type: vi
Hund:
 genus: m
`

const rules = `^apf:
 type: v
ung$:
 type: n
 genus: f
heit$:
 type: n
`

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *SQLiteStore) {
	t.Helper()
	b := lexicon.NewBuilder()
	if err := lexicon.Read(strings.NewReader(words), b, nil); err != nil {
		t.Fatalf("read lexicon: %v", err)
	}
	rb := lexicon.NewRegexBuilder()
	if err := lexicon.ReadRegex(strings.NewReader(rules), rb, nil); err != nil {
		t.Fatalf("read regex lexicon: %v", err)
	}
	if err := s.SaveLexicon(b.Build()); err != nil {
		t.Fatalf("SaveLexicon failed: %v", err)
	}
	if err := s.SaveRegexLexicon(rb.Build()); err != nil {
		t.Fatalf("SaveRegexLexicon failed: %v", err)
	}
}

func TestSaveAndLoadLexicon(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	b := lexicon.NewBuilder()
	if err := s.LoadLexicon(b); err != nil {
		t.Fatalf("LoadLexicon failed: %v", err)
	}
	lex := b.Build()

	tag, ok := lex.Lookup("Apfel")
	if !ok || tag != (lexicon.Tag{Type: "n", Genus: "m"}) {
		t.Errorf("Apfel: got %v (%v)", tag, ok)
	}
	if typ, _ := lex.Type("laufen"); typ != "v" {
		t.Errorf("laufen: expected canonical type v, got %q", typ)
	}
	if _, ok := lex.Type("Hund"); ok {
		t.Error("Hund has no type and should not be typed after reload")
	}
	if g, _ := lex.Genus("Hund"); g != "m" {
		t.Errorf("Hund: expected genus m, got %q", g)
	}
}

func TestRegexOrderSurvivesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	// a second save ranks below the first
	rb := lexicon.NewRegexBuilder()
	rb.AddRule("ung$", "adj")
	if err := s.SaveRegexLexicon(rb.Build()); err != nil {
		t.Fatalf("SaveRegexLexicon failed: %v", err)
	}

	got, err := s.ListRules()
	if err != nil {
		t.Fatalf("ListRules failed: %v", err)
	}
	want := []string{"^apf", "ung$", "heit$", "ung$"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d rules, got %d", len(want), len(got))
	}
	for i, r := range got {
		if r.Pattern != want[i] {
			t.Errorf("rule %d: expected %s, got %s", i, want[i], r.Pattern)
		}
		if r.Seq != int64(i+1) {
			t.Errorf("rule %d: expected seq %d, got %d", i, i+1, r.Seq)
		}
	}

	b := lexicon.NewRegexBuilder()
	if err := s.LoadRegexLexicon(b); err != nil {
		t.Fatalf("LoadRegexLexicon failed: %v", err)
	}
	x := b.Build()
	tag, pattern, ok := x.Lookup("Wohnung")
	if !ok || pattern != "ung$" || tag != (lexicon.Tag{Type: "n", Genus: "f"}) {
		t.Errorf("Wohnung: got %v via %q (%v)", tag, pattern, ok)
	}
}

func TestGetEntry(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	e, err := s.GetEntry("Apfel")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if e == nil || e.Type != "n" || e.Genus != "m" {
		t.Errorf("Apfel: got %+v", e)
	}

	e, err = s.GetEntry("Birne")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if e != nil {
		t.Errorf("Birne: expected nil, got %+v", e)
	}
}

func TestCountsAndClear(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	c, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if c != (Counts{Words: 2, Genus: 2, Rules: 3}) {
		t.Errorf("unexpected counts %+v", c)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	c, _ = s.Counts()
	if c != (Counts{}) {
		t.Errorf("expected empty store, got %+v", c)
	}
}

func TestExportImport(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Exported data is empty")
	}

	// Create a NEW store to simulate a fresh start/reload
	s2 := newTestStore(t)
	rb := lexicon.NewRegexBuilder()
	rb.AddRule("stale", "x")
	if err := s2.SaveRegexLexicon(rb.Build()); err != nil {
		t.Fatalf("SaveRegexLexicon failed: %v", err)
	}

	if err := s2.Import(data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	c, err := s2.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if c != (Counts{Words: 2, Genus: 2, Rules: 3}) {
		t.Errorf("unexpected counts after import %+v", c)
	}

	e, _ := s2.GetEntry("Hund")
	if e == nil || e.Type != "" || e.Genus != "m" {
		t.Errorf("Hund: got %+v", e)
	}

	got, _ := s2.ListRules()
	if len(got) == 0 || got[0].Pattern != "^apf" {
		t.Errorf("expected imported rules in order, got %+v", got)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	s := newTestStore(t)
	if err := s.Import([]byte("{not json")); err == nil {
		t.Error("expected an error for malformed JSON")
	}
	if err := s.Import(nil); err != nil {
		t.Errorf("empty import should be a no-op, got %v", err)
	}
}

func TestFileDSNPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.db")

	s, err := NewSQLiteStoreWithDSN(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	seed(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := NewSQLiteStoreWithDSN(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s2.Close()

	c, err := s2.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if c.Words != 2 || c.Rules != 3 {
		t.Errorf("unexpected counts after reopen %+v", c)
	}
}

func TestReplace(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	b := lexicon.NewBuilder()
	b.SetType("Birne", "n")
	b.SetGenus("Birne", "f")
	rb := lexicon.NewRegexBuilder()
	rb.AddRule("keit$", "n")
	rb.AddRule("lich$", "adj")

	if err := s.Replace(b.Build(), rb.Build()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	c, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if c != (Counts{Words: 1, Genus: 1, Rules: 2}) {
		t.Errorf("unexpected counts after replace %+v", c)
	}
	if e, _ := s.GetEntry("Apfel"); e != nil {
		t.Errorf("Apfel should be gone, got %+v", e)
	}
	if e, _ := s.GetEntry("Birne"); e == nil || e.Type != "n" || e.Genus != "f" {
		t.Errorf("Birne: got %+v", e)
	}

	got, err := s.ListRules()
	if err != nil {
		t.Fatalf("ListRules failed: %v", err)
	}
	want := []string{"keit$", "lich$"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d rules, got %d", len(want), len(got))
	}
	for i, r := range got {
		if r.Pattern != want[i] || r.Seq != int64(i+1) {
			t.Errorf("rule %d: expected %s at seq %d, got %+v", i, want[i], i+1, r)
		}
	}
}

func TestReplaceFailureKeepsContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.db")
	s, err := NewSQLiteStoreWithDSN(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	seed(t, s)
	s.Close()

	if err := s.Replace(nil, nil); err == nil {
		t.Fatal("expected Replace on a closed store to fail")
	}

	s2, err := NewSQLiteStoreWithDSN(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s2.Close()
	c, _ := s2.Counts()
	if c != (Counts{Words: 2, Genus: 2, Rules: 3}) {
		t.Errorf("failed Replace must leave contents intact, got %+v", c)
	}
}
