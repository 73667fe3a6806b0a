package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonuts/commander"

	"github.com/kittclouds/postag/internal/store"
	"github.com/kittclouds/postag/pkg/asker"
	"github.com/kittclouds/postag/pkg/config"
	"github.com/kittclouds/postag/pkg/tagger"
)

func init() {
	log.SetPrefix("[postag] ")
}

// addCommonFlags registers the flags shared by every subcommand that
// builds a Tagger. Empty flags fall back to the configuration file.
func addCommonFlags(fs *flag.FlagSet) {
	fs.String("config", "postag.yaml", "configuration file")
	fs.String("lexicon", "", "lexicon file")
	fs.String("regex", "", "regex lexicon file")
	fs.String("store", "", "SQLite lexicon store")
}

func flagString(cmd *commander.Command, name string) string {
	f := cmd.Flag.Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

func flagBool(cmd *commander.Command, name string) bool {
	return flagString(cmd, name) == "true"
}

// setting returns the flag value, or the config section when the flag
// is empty.
func setting(cmd *commander.Command, cfg config.Store, flagName, section string) string {
	if v := flagString(cmd, flagName); v != "" {
		return v
	}
	return config.Value(cfg, section, "")
}

func loadConfig(cmd *commander.Command) (*config.File, error) {
	return config.Load(flagString(cmd, "config"))
}

func openStore(path string) (*store.SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("no store configured")
	}
	return store.NewSQLiteStoreWithDSN(path)
}

// buildTagger loads the store, then the lexicon files, into a new Tagger.
// Load errors are logged and skipped so the Tagger stays usable.
func buildTagger(cmd *commander.Command, cfg config.Store, a asker.Asker, trace io.Writer) *tagger.Tagger {
	t := tagger.New(tagger.Options{Config: cfg, Asker: a, Trace: trace})

	if path := setting(cmd, cfg, "store", config.SectionStore); path != "" {
		s, err := openStore(path)
		if err != nil {
			log.Printf("open store %s: %v", path, err)
		} else {
			if err := t.LoadSource(s); err != nil {
				log.Printf("load store %s: %v", path, err)
			}
			s.Close()
		}
	}
	if path := setting(cmd, cfg, "lexicon", config.SectionLexicon); path != "" {
		if err := t.LoadLexicon(path); err != nil {
			log.Print(err)
		}
	}
	if path := setting(cmd, cfg, "regex", config.SectionRegexLexicon); path != "" {
		if err := t.LoadRegexLexicon(path); err != nil {
			log.Print(err)
		}
	}
	return t
}

// fallback assembles the Asker chain from the configuration: stopwords
// first, then the terminal prompt when interactive.
func fallback(cfg config.Store, interactive bool) asker.Asker {
	var chain asker.Chain
	if lang := config.Value(cfg, config.SectionStopwords, ""); lang != "" {
		sw, err := asker.NewStopwords(lang, config.Value(cfg, config.SectionStopwordType, "func"))
		if err != nil {
			log.Printf("stopwords disabled: %v", err)
		} else {
			chain = append(chain, sw)
		}
	}
	if interactive {
		chain = append(chain, asker.NewPrompt(os.Stdin, os.Stderr))
	}
	if len(chain) == 0 {
		return asker.Nop{}
	}
	return chain
}
