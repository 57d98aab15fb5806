// btabls lists the tables of binary table streams without converting them.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/btab"
	"github.com/danmuck/btab/internal/logging"
)

func main() {
	logging.Init("btabls")

	flagColumns := flag.Bool("columns", false, "list declared columns per table")
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: btabls [flags] input.btab...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	exit := 0
	for i, input := range inputs {
		sum := newSummary()
		if err := btab.Decode(input, sum.handlers(), nil); err != nil {
			log.Error().Err(err).Str("input", input).Msg("inspection failed")
			exit = 1
			continue
		}
		if i > 0 {
			fmt.Println()
		}
		printSummary(os.Stdout, input, sum, *flagColumns)
	}
	os.Exit(exit)
}
