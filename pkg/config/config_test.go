package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabledRule(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"10", true},
		{"on1", true},
		{"0", false},
		{"", false},
		{"true", false},
	}
	for _, tt := range tests {
		got := Enabled(Map{SectionTagger: tt.value}, SectionTagger, "1")
		if got != tt.want {
			t.Errorf("Enabled(tagger=%q) = %v, want %v", tt.value, got, tt.want)
		}
	}

	if !Enabled(Map{}, SectionTagger, "1") {
		t.Error("unset section should fall back to default \"1\"")
	}
	if !Enabled(nil, SectionTagger, "1") {
		t.Error("nil store should fall back to default \"1\"")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postag.yaml")
	data := []byte("tagger: 0\nverbose: \"1\"\nlexicon: /data/words.pos\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	v, ok := cfg.Get(SectionTagger)
	assert.True(t, ok)
	assert.Equal(t, "0", v)
	assert.False(t, Enabled(cfg, SectionTagger, "1"))
	assert.True(t, Enabled(cfg, SectionVerbose, "0"))
	assert.Equal(t, "/data/words.pos", Value(cfg, SectionLexicon, ""))
	assert.Equal(t, "en", Value(cfg, SectionStopwords, "en"))
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	_, ok := cfg.Get(SectionTagger)
	assert.False(t, ok)
}

func TestParseRejectsNested(t *testing.T) {
	_, err := Parse([]byte("tagger:\n  enabled: 1\n"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	cfg, err := Parse([]byte("tagger: 1\n"))
	require.NoError(t, err)

	t.Setenv("POSTAG_TAGGER", "0")
	assert.False(t, Enabled(cfg, SectionTagger, "1"))

	cfg.Set(SectionAddr, ":9090")
	assert.Equal(t, ":9090", Value(cfg, SectionAddr, ":8080"))
}
