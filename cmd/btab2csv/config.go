package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

type options struct {
	Delimiter string
	Gzip      bool
	Tables    []string
	OutputDir string
	Jobs      int
}

func defaultOptions() options {
	return options{Delimiter: ",", Jobs: 1}
}

type fileConfig struct {
	Delimiter string   `toml:"delimiter"`
	Gzip      bool     `toml:"gzip"`
	Tables    []string `toml:"tables"`
	OutputDir string   `toml:"output_dir"`
	Jobs      int      `toml:"jobs"`
}

// loadOptions reads a TOML config, applying only the keys the file actually
// defines over the defaults. Command-line flags are merged on top by main.
func loadOptions(path string) (options, error) {
	opts := defaultOptions()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return options{}, fmt.Errorf("load converter config: %w", err)
	}

	if meta.IsDefined("delimiter") {
		if utf8.RuneCountInString(raw.Delimiter) != 1 {
			return options{}, fmt.Errorf("delimiter %q must be a single character", raw.Delimiter)
		}
		opts.Delimiter = raw.Delimiter
	}

	if meta.IsDefined("gzip") {
		opts.Gzip = raw.Gzip
	}

	if meta.IsDefined("tables") {
		opts.Tables = normalizeTables(raw.Tables)
	}

	if meta.IsDefined("output_dir") {
		opts.OutputDir = strings.TrimSpace(raw.OutputDir)
	}

	if meta.IsDefined("jobs") {
		if raw.Jobs < 1 {
			return options{}, fmt.Errorf("jobs must be at least 1, got %d", raw.Jobs)
		}
		opts.Jobs = raw.Jobs
	}

	return opts, nil
}

func (o options) delimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(o.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// tableFilter returns the include set, or nil when every table passes.
func (o options) tableFilter() map[string]bool {
	if len(o.Tables) == 0 {
		return nil
	}
	set := make(map[string]bool, len(o.Tables))
	for _, name := range o.Tables {
		set[name] = true
	}
	return set
}

func normalizeTables(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, name := range in {
		v := strings.TrimSpace(name)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func splitTables(s string) []string {
	return normalizeTables(strings.Split(s, ","))
}
