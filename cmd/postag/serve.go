package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gonuts/commander"

	"github.com/kittclouds/postag/pkg/api"
	"github.com/kittclouds/postag/pkg/config"
)

func cmdServe() *commander.Command {
	c := &commander.Command{
		Run:       runServe,
		UsageLine: "serve [options]",
		Short:     "serve the tagger as a JSON REST API",
		Long: `
serve loads the configured lexicons and answers

	GET  /api/pos?word=<word>
	POST /api/pos     body: {"words":[...]}
	GET  /api/stats

ex:
 $ postag serve -addr :8080 -store lexicon.db
`,
		Flag: *flag.NewFlagSet("postag-serve", flag.ExitOnError),
	}
	addCommonFlags(&c.Flag)
	c.Flag.String("addr", "", "listen address (default :8080)")
	return c
}

func runServe(cmd *commander.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	addr := setting(cmd, cfg, "addr", config.SectionAddr)
	if addr == "" {
		addr = ":8080"
	}

	t := buildTagger(cmd, cfg, fallback(cfg, false), os.Stderr)
	t.SetVerbose(config.Enabled(cfg, config.SectionVerbose, "0"))
	st := t.Stats()
	log.Printf("loaded %d words, %d regex rules", st.Words, st.Rules)

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(t),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
