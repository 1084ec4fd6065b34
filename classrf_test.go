// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"golang.org/x/tools/txtar"

	"rsc.io/classrf/logger"
	"rsc.io/classrf/refactor"
)

// Each testdata/*.txt archive holds a script as its comment and snapshot
// files. Top-level .json files are loaded as the workspace; files under
// parsed/ are offered to validate as parse results; classrf.toml, if
// present, is the configuration. The stdout and stderr files hold the
// expected output.
func TestRun(t *testing.T) {
	color.NoColor = true

	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			dir := t.TempDir()
			var (
				wantStdout, wantStderr txtar.File
				snaps, parsed          []string
				configFile             string
			)
			for _, file := range ar.Files {
				switch {
				case file.Name == "stdout":
					wantStdout = file
					continue
				case file.Name == "stderr":
					wantStderr = file
					continue
				case file.Name == "classrf.toml":
					configFile = filepath.Join(dir, file.Name)
				case strings.HasPrefix(file.Name, "parsed/"):
					parsed = append(parsed, file.Name)
				case strings.HasSuffix(file.Name, ".json"):
					snaps = append(snaps, file.Name)
				}
				targ := filepath.Join(dir, file.Name)
				if err := os.MkdirAll(filepath.Dir(targ), 0777); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(targ, file.Data, 0666); err != nil {
					t.Fatal(err)
				}
			}

			var stdout, stderr bytes.Buffer
			w, err := newWorkspace(context.Background(), dir, snaps, parsed)
			if err != nil {
				t.Fatal(err)
			}
			if configFile != "" {
				if w.cfg, err = refactor.LoadConfig(configFile); err != nil {
					t.Fatal(err)
				}
			}
			w.Stdout = &stdout
			w.Stderr = &stderr
			w.ShowDiff = true
			if err := run(w, string(ar.Comment)); err != nil {
				fmt.Fprintf(w.Stderr, "ERROR: %v\n", err)
			}

			cmp := func(name string, have, want []byte) {
				have = trimSpace(have)
				want = trimSpace(want)
				if !bytes.Equal(have, want) {
					t.Errorf("%s:\n%s", name, have)
					t.Errorf("want:\n%s", want)
				}
			}
			cmp("stderr", stderr.Bytes(), wantStderr.Data)
			cmp("stdout", stdout.Bytes(), wantStdout.Data)
		})
	}
}

func TestUnmatchedParsed(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"name": "Z.cls", "text": "class Z {\n}\n"}`)
	if err := os.WriteFile(filepath.Join(dir, "Z.json"), data, 0666); err != nil {
		t.Fatal(err)
	}
	var log bytes.Buffer
	logger.SetOutput(&log)
	defer logger.SetOutput(os.Stderr)
	if _, err := newWorkspace(context.Background(), dir, nil, []string{"Z.json"}); err != nil {
		t.Fatal(err)
	}
	want := "classrf: Z.json: parsed snapshot Z.cls matches no loaded snapshot\n"
	if log.String() != want {
		t.Errorf("log = %q, want %q", log.String(), want)
	}
}

func trimSpace(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " ")
	}
	return bytes.TrimSpace(bytes.Join(lines, []byte("\n")))
}

func TestTrimComments(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"links B.y # the field", "links B.y"},
		{"# only a comment", ""},
		{`links V.cls:/a#b/`, `links V.cls:/a#b/`},
		{`links V.cls:#12,#13`, `links V.cls:#12,#13`},
		{`names "x # y" # z`, `names "x # y"`},
		{`links V.cls:/a\/#/ # c`, `links V.cls:/a\/#/`},
	}
	for _, tt := range tests {
		if out := trimComments(tt.in); out != tt.out {
			t.Errorf("trimComments(%q) = %q, want %q", tt.in, out, tt.out)
		}
	}
}

func TestColorize(t *testing.T) {
	defer func(old bool) { color.NoColor = old }(color.NoColor)
	color.NoColor = false
	line := "V.cls:2:25: error: b cannot be resolved"
	got := colorize(line)
	want := "V.cls:2:25: " + color.New(color.FgRed).Sprint("error") + ": b cannot be resolved"
	if got != want {
		t.Errorf("colorize(%q) = %q, want %q", line, got, want)
	}
	if got := colorize("ok"); got != "ok" {
		t.Errorf("colorize(ok) = %q", got)
	}
}
