// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command diagtree type-checks a folder and reports diagnostics as an
// annotated file tree.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/petar-djukic/diagtree/pkg/diagtree"
)

const version = "0.1.0"

func main() {
	v := viper.New()

	// Env vars: DIAGTREE_CHECKER, DIAGTREE_SCOPE, etc.
	v.SetEnvPrefix("DIAGTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Config file.
	v.SetConfigName(".diagtree")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error; config file is optional.

	rootCmd := newRootCmd(v, os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flags are bound to v.
func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "diagtree <folder>",
		Short: "Report type-checker diagnostics as a file tree",
		Long: "diagtree walks a folder, runs a type checker over the files it finds, and " +
			"writes the result as an indented outline and as a JSON {fileTree, errorTree} report.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), v, args[0], stdout, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	f := rootCmd.Flags()
	f.String("checker", diagtree.CheckerTSC, "Checker to run: "+strings.Join(diagtree.Checkers, ", "))
	f.String("scope", "", "Path prefix for errorTree, relative to the target folder (default: the whole target)")
	f.String("text-out", "tree.txt", "Outline file (empty to skip)")
	f.String("json-out", "output.json", "JSON report file (empty to skip)")
	f.StringSlice("exclude", []string{"node_modules"}, "Directory names never checked")
	f.Bool("exclude-everywhere", false, "Also drop excluded directories from the tree")
	f.Bool("gitignore", false, "Skip files matched by the target's .gitignore")
	f.IntSlice("ignore-codes", nil, "Diagnostic codes to drop (default: the checker's list)")
	f.String("source-root", "src", "Directory name drawn with the source-root connector")
	f.String("format", formatJSON, "Stdout format: json, text, or none")
	f.String("tsc", "tsc", "Command line that runs the TypeScript compiler")
	f.BoolP("verbose", "v", false, "Log debug details to stderr")

	// Bind flags to viper.
	f.VisitAll(func(fl *pflag.Flag) {
		_ = v.BindPFlag(fl.Name, fl)
	})

	rootCmd.AddCommand(newVersionCmd(stdout))
	return rootCmd
}

// newLogger returns a text logger on w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newVersionCmd creates the "version" command.
func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print diagtree version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "diagtree %s\n", version)
		},
	}
}
