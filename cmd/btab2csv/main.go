// btab2csv converts binary table streams to CSV, one output per input.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/danmuck/btab"
	"github.com/danmuck/btab/internal/logging"
)

type job struct {
	input  string
	output string // "-" means standard output
}

func main() {
	logging.Init("btab2csv")

	var (
		flagConfig = flag.String("config", "", "TOML config file")
		flagOut    = flag.String("o", "", "output directory (default: alongside each input)")
		flagStdout = flag.Bool("stdout", false, "write to standard output (single input, no gzip)")
		flagTables = flag.String("tables", "", "comma-separated table names to keep")
		flagGzip   = flag.Bool("gzip", false, "gzip-compress outputs (.csv.gz)")
		flagJobs   = flag.Int("jobs", 1, "concurrent conversions")
	)
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: btab2csv [flags] input.btab...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	opts := defaultOptions()
	if *flagConfig != "" {
		loaded, err := loadOptions(*flagConfig)
		if err != nil {
			log.Fatal().Err(err).Str("path", *flagConfig).Msg("bad config")
		}
		opts = loaded
	}
	// Flags the user actually set win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			opts.OutputDir = *flagOut
		case "tables":
			opts.Tables = splitTables(*flagTables)
		case "gzip":
			opts.Gzip = *flagGzip
		case "jobs":
			opts.Jobs = *flagJobs
		}
	})
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}

	if *flagStdout {
		if len(inputs) > 1 {
			log.Fatal().Msg("-stdout takes a single input")
		}
		if opts.Gzip {
			log.Fatal().Msg("-stdout and -gzip are mutually exclusive")
		}
	}

	jobs, err := planJobs(inputs, opts, *flagStdout)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot plan outputs")
	}

	var g errgroup.Group
	g.SetLimit(opts.Jobs)
	for _, jb := range jobs {
		jb := jb
		g.Go(func() error {
			if err := convert(jb, opts); err != nil {
				log.Error().Err(err).Str("input", jb.input).Msg("conversion failed")
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		os.Exit(1)
	}
}

// planJobs maps inputs to output paths up front so name collisions fail the
// whole run instead of racing inside the pool.
func planJobs(inputs []string, opts options, toStdout bool) ([]job, error) {
	jobs := make([]job, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		out := "-"
		if !toStdout {
			out = outputPath(input, opts.OutputDir, opts.Gzip)
			if prev, ok := seen[out]; ok {
				return nil, fmt.Errorf("%s and %s both map to %s", prev, input, out)
			}
			seen[out] = input
		}
		jobs = append(jobs, job{input: input, output: out})
	}
	return jobs, nil
}

func outputPath(input, dir string, gzipped bool) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
	if gzipped {
		base += ".gz"
	}
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

func convert(jb job, opts options) (err error) {
	raw, done, err := openOutput(jb.output, opts.Gzip)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := done(); err == nil {
			err = cerr
		}
	}()

	em := newCSVEmitter(raw, opts.delimiterRune(), opts.tableFilter())
	if err := btab.Decode(jb.input, em.handlers(), nil); err != nil {
		return err
	}
	if err := em.close(); err != nil {
		return fmt.Errorf("write %s: %w", jb.output, err)
	}
	log.Info().
		Str("input", jb.input).
		Str("output", jb.output).
		Int("tables", em.tables).
		Int("rows", em.rows).
		Msg("converted")
	return nil
}

func openOutput(path string, gzipped bool) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	if !gzipped {
		return f, f.Close, nil
	}
	zw := gzip.NewWriter(f)
	done := func() error {
		zerr := zw.Close()
		ferr := f.Close()
		if zerr != nil {
			return fmt.Errorf("close %s: %w", path, zerr)
		}
		if ferr != nil {
			return fmt.Errorf("close %s: %w", path, ferr)
		}
		return nil
	}
	return zw, done, nil
}
