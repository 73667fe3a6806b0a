package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonuts/commander"

	"github.com/kittclouds/postag/pkg/config"
	"github.com/kittclouds/postag/pkg/lexicon"
	"github.com/kittclouds/postag/pkg/trace"
)

func cmdImport() *commander.Command {
	c := &commander.Command{
		Run:       runImport,
		UsageLine: "import [options] [snapshot.json]",
		Short:     "import lexicon files or a JSON snapshot into the store",
		Long: `
import reads the -lexicon and -regex files into the SQLite store. Regex
rules are appended after the ones already stored. Given a JSON snapshot
written by export, the store is replaced by its content instead.

ex:
 $ postag import -store lexicon.db -lexicon words.pos -regex rules.pos
 $ postag import -store lexicon.db backup.json
`,
		Flag: *flag.NewFlagSet("postag-import", flag.ExitOnError),
	}
	addCommonFlags(&c.Flag)
	return c
}

func runImport(cmd *commander.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(setting(cmd, cfg, "store", config.SectionStore))
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}
		if err := s.Import(data); err != nil {
			return err
		}
	}

	tr := trace.New(os.Stderr)
	if path := setting(cmd, cfg, "lexicon", config.SectionLexicon); path != "" {
		b := lexicon.NewBuilder()
		if err := lexicon.LoadFile(path, b, tr); err != nil {
			return err
		}
		if err := s.SaveLexicon(b.Build()); err != nil {
			return err
		}
	}
	if path := setting(cmd, cfg, "regex", config.SectionRegexLexicon); path != "" {
		b := lexicon.NewRegexBuilder()
		if err := lexicon.LoadRegexFile(path, b, tr); err != nil {
			return err
		}
		x := b.Build()
		for _, p := range x.Invalid() {
			log.Printf("invalid regex kept but never matches: '%s'", p)
		}
		if err := s.SaveRegexLexicon(x); err != nil {
			return err
		}
	}

	c, err := s.Counts()
	if err != nil {
		return err
	}
	log.Printf("store holds %d words, %d genus entries, %d regex rules", c.Words, c.Genus, c.Rules)
	return nil
}

func cmdExport() *commander.Command {
	c := &commander.Command{
		Run:       runExport,
		UsageLine: "export [options]",
		Short:     "write the store as a JSON snapshot to stdout",
		Flag:      *flag.NewFlagSet("postag-export", flag.ExitOnError),
	}
	addCommonFlags(&c.Flag)
	return c
}

func runExport(cmd *commander.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(setting(cmd, cfg, "store", config.SectionStore))
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.Export()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
