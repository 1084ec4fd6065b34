// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rsc.io/classrf/logger"
	"rsc.io/classrf/refactor"
)

var rootCmd = &cobra.Command{
	Use:           "classrf [flags] script snapshot...",
	Short:         "Analyze refactorings of class-based programs",
	Long:          "Classrf runs a script of analysis commands against parse snapshots.",
	Args:          cobra.MinimumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	flags := rootCmd.Flags()
	flags.Bool("diff", false, "show diff instead of writing files")
	flags.BoolP("verbose", "v", false, "log query traces")
	flags.String("config", "", "read settings from the TOML `file`")
	flags.StringSlice("parsed", nil, "additional snapshots the parse service may return")
	flags.String("color", "auto", "colorize output (auto|on|off)")
}

func main() {
	log.SetPrefix("classrf: ")
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Fatalf("%v", err)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	showDiff, _ := flags.GetBool("diff")
	verbose, _ := flags.GetBool("verbose")
	configFile, _ := flags.GetString("config")
	parsed, _ := flags.GetStringSlice("parsed")
	mode, _ := flags.GetString("color")

	logger.SetVerbose(verbose)
	switch mode {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return newErrUsage("-color must be auto, on, or off")
	}

	cfg := refactor.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = refactor.LoadConfig(configFile); err != nil {
			return err
		}
	}

	script, files := args[0], args[1:]
	w, err := newWorkspace(cmd.Context(), ".", files, parsed)
	if err != nil {
		return err
	}
	w.cfg = cfg
	w.ShowDiff = showDiff
	w.Stdout = cmd.OutOrStdout()
	w.Stderr = cmd.ErrOrStderr()
	return run(w, script)
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

var cmds = map[string]func(*workspace, string) error{
	"links":    cmdLinks,
	"matching": cmdMatching,
	"names":    cmdNames,
	"pullup":   cmdPullUp,
	"rename":   cmdRename,
	"required": cmdRequired,
	"targets":  cmdTargets,
	"validate": cmdValidate,
}

func run(w *workspace, script string) error {
	text := script
	for text != "" {
		var line string
		line, text, _ = cut(text, "\n")
		line = trimComments(line)
		for strings.HasSuffix(line, `\`) && text != "" {
			var l string
			l, text, _ = cut(text, "\n")
			line = line[:len(line)-1] + "\n" + l
			line = trimComments(line)
		}
		line = strings.TrimLeft(line, " \t\n")
		if line == "" {
			continue
		}
		cmd, args, _ := cutAny(line, " \t")

		fn := cmds[cmd]
		if fn == nil {
			return newErrUsage("unknown command %s", cmd)
		}
		logger.Debugf("%s %s", cmd, args)
		if err := fn(w, strings.TrimSpace(args)); err != nil {
			return err
		}
		if err := w.ctx.Err(); err != nil {
			return err
		}
	}
	return w.finish()
}

func trimComments(line string) string {
	// Cut line at # comment, being careful not to cut inside quoted text
	// or a regular expression address. A # that does not follow a space
	// is a character address, as in V.cls:#12.
	var q byte
	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case q:
			q = 0
		case '\'', '"', '`', '/':
			if q == 0 {
				q = c
			}
		case '\\':
			if q != 0 && q != '`' {
				i++
			}
		case '#':
			if q == 0 && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t' || line[i-1] == '\n') {
				line = line[:i]
			}
		}
	}
	return strings.TrimSpace(line)
}

// printStatus prints st, one entry per line, stopping after the
// configured maximum number of entries.
func (w *workspace) printStatus(prefix string, st *refactor.Status) {
	lines := strings.Split(st.String(), "\n")
	more := 0
	if limit := w.cfg.MaxDiagnostics; limit > 0 && len(lines) > limit {
		more = len(lines) - limit
		lines = lines[:limit]
	}
	for _, line := range lines {
		fmt.Fprintf(w.Stdout, "%s%s\n", prefix, colorize(line))
	}
	if more > 0 {
		fmt.Fprintf(w.Stdout, "%s... and %d more\n", prefix, more)
	}
}

var severityColors = []struct {
	sev refactor.Severity
	c   *color.Color
}{
	{refactor.Fatal, color.New(color.FgRed, color.Bold)},
	{refactor.Error, color.New(color.FgRed)},
	{refactor.Warning, color.New(color.FgYellow)},
	{refactor.Info, color.New(color.FgCyan)},
}

// colorize highlights the severity of a status line.
func colorize(line string) string {
	for _, sc := range severityColors {
		name := sc.sev.String()
		i := strings.Index(line, ": "+name+": ")
		switch {
		case i >= 0:
			i += 2
		case strings.HasPrefix(line, name+": "):
			i = 0
		default:
			continue
		}
		return line[:i] + sc.c.Sprint(name) + line[i+len(name):]
	}
	return line
}

func cut(s, sep string) (before, after string, ok bool) {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

func cutAny(s, any string) (before, after string, ok bool) {
	if i := strings.IndexAny(s, any); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		return s[:i], s[i+size:], true
	}
	return s, "", false
}
