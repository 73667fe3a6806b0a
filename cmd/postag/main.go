// Command postag resolves part-of-speech tags from the command line or as
// an HTTP service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gonuts/commander"
)

var cmd = &commander.Command{
	UsageLine: os.Args[0] + " tag|serve|import|export",
	Short:     "part-of-speech tagging with lexicons, regex rules and affix guessing",
	Subcommands: []*commander.Command{
		cmdTag(),
		cmdServe(),
		cmdImport(),
		cmdExport(),
	},
}

func exit(err error) {
	fmt.Printf("**error**: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := cmd.Dispatch(context.Background(), os.Args[1:]); err != nil {
		exit(err)
	}
}
