package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := loadOptions(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load empty config: %v", err)
	}
	if opts.Delimiter != "," || opts.Gzip || opts.OutputDir != "" || opts.Jobs != 1 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if len(opts.Tables) != 0 {
		t.Fatalf("unexpected tables: %+v", opts.Tables)
	}
	if opts.tableFilter() != nil {
		t.Fatalf("empty table list must not filter")
	}
}

func TestLoadOptionsOverrides(t *testing.T) {
	opts, err := loadOptions(writeConfig(t, `
delimiter = ";"
gzip = true
tables = ["Tally", " Cfg ", ""]
output_dir = "out"
jobs = 4
`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if opts.Delimiter != ";" || !opts.Gzip || opts.OutputDir != "out" || opts.Jobs != 4 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if !reflect.DeepEqual(opts.Tables, []string{"Tally", "Cfg"}) {
		t.Fatalf("unexpected tables: %+v", opts.Tables)
	}
	if opts.delimiterRune() != ';' {
		t.Fatalf("unexpected delimiter rune: %q", opts.delimiterRune())
	}
	filter := opts.tableFilter()
	if !filter["Tally"] || !filter["Cfg"] || filter["Other"] {
		t.Fatalf("unexpected filter: %+v", filter)
	}
}

func TestLoadOptionsRejectsMulticharDelimiter(t *testing.T) {
	if _, err := loadOptions(writeConfig(t, `delimiter = "ab"`)); err == nil {
		t.Fatalf("expected delimiter error")
	}
}

func TestLoadOptionsRejectsBadJobs(t *testing.T) {
	if _, err := loadOptions(writeConfig(t, `jobs = 0`)); err == nil {
		t.Fatalf("expected jobs error")
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	if _, err := loadOptions(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestSplitTables(t *testing.T) {
	got := splitTables(" Tally, ,Cfg,")
	if !reflect.DeepEqual(got, []string{"Tally", "Cfg"}) {
		t.Fatalf("splitTables = %+v", got)
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		input   string
		dir     string
		gzipped bool
		want    string
	}{
		{"data/run.btab", "", false, "data/run.csv"},
		{"data/run.btab", "out", false, "out/run.csv"},
		{"run.btab", "", true, "run.csv.gz"},
		{"noext", "", false, "noext.csv"},
	}
	for _, tc := range cases {
		got := outputPath(tc.input, tc.dir, tc.gzipped)
		if got != filepath.FromSlash(tc.want) {
			t.Fatalf("outputPath(%q, %q, %t) = %q, want %q",
				tc.input, tc.dir, tc.gzipped, got, tc.want)
		}
	}
}

func TestPlanJobsRejectsCollisions(t *testing.T) {
	opts := defaultOptions()
	opts.OutputDir = "out"
	if _, err := planJobs([]string{"a/run.btab", "b/run.btab"}, opts, false); err == nil {
		t.Fatalf("expected collision error")
	}
	jobs, err := planJobs([]string{"a/run.btab", "b/other.btab"}, opts, false)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(jobs) != 2 || jobs[0].output == jobs[1].output {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}
