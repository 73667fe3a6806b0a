package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gonuts/commander"

	"github.com/kittclouds/postag/pkg/asker"
	"github.com/kittclouds/postag/pkg/config"
	"github.com/kittclouds/postag/pkg/lexicon"
	"github.com/kittclouds/postag/pkg/tagger"
)

func cmdTag() *commander.Command {
	c := &commander.Command{
		Run:       runTag,
		UsageLine: "tag [options] [word ...]",
		Short:     "print the part of speech of each word",
		Long: `
tag resolves every word given as argument, or every line of standard input
when no word is given, and prints "word<TAB>type<TAB>genus".

ex:
 $ postag tag -lexicon words.pos Apfel laufen
`,
		Flag: *flag.NewFlagSet("postag-tag", flag.ExitOnError),
	}
	addCommonFlags(&c.Flag)
	c.Flag.Bool("v", false, "print the resolution trace to stderr")
	c.Flag.Bool("ask", false, "ask on the terminal for words that stay unresolved")
	return c
}

func runTag(cmd *commander.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	interactive := flagBool(cmd, "ask")
	if interactive && len(args) == 0 {
		return fmt.Errorf("-ask needs the words as arguments")
	}

	// answers from the terminal are learned for the rest of the run
	var t *tagger.Tagger
	ask := fallback(cfg, interactive)
	learning := asker.Func(func(word string) lexicon.Tag {
		tag := ask.Ask(word)
		t.Learn(word, tag)
		return tag
	})

	t = buildTagger(cmd, cfg, learning, os.Stderr)
	t.SetVerbose(flagBool(cmd, "v") || config.Enabled(cfg, config.SectionVerbose, "0"))

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if len(args) > 0 {
		for _, w := range args {
			writeTag(out, w, t.GetPos(w))
		}
		return nil
	}
	return tagLines(os.Stdin, out, t)
}

func tagLines(r io.Reader, out io.Writer, t *tagger.Tagger) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		writeTag(out, w, t.GetPos(w))
	}
	return sc.Err()
}

func writeTag(out io.Writer, word string, tag lexicon.Tag) {
	fmt.Fprintf(out, "%s\t%s\t%s\n", word, tag.Type, tag.Genus)
}
