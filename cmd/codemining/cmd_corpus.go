package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/codemining/binding"
	"github.com/dhamidi/codemining/corpus"
	"github.com/dhamidi/codemining/java"
	"github.com/dhamidi/codemining/tokenize"
)

func newCorpusCmd(a *app) *cobra.Command {
	var (
		workers   int
		strategy  string
		tokenizer string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "corpus <dir>",
		Short: "Tokenize and bind every matching file below a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}
			if !cmd.Flags().Changed("strategy") {
				strategy = a.cfg.Strategy
			}
			if !cmd.Flags().Changed("tokenizer") {
				tokenizer = a.cfg.Tokenizer
			}
			kind, err := binding.ParseKind(a.cfg.Kind)
			if err != nil {
				return err
			}

			r := &corpus.Runner{
				Fs: a.fs,
				NewTokenizer: func() (tokenize.Tokenizer, error) {
					return a.registry.New(tokenizer, "")
				},
				Strategy: binding.Strategy(strategy),
				Kind:     kind,
				Workers:  workers,
			}
			tok, err := r.NewTokenizer()
			if err != nil {
				return err
			}
			if tok.FileFilter() == java.FileFilter {
				r.Language = java.Language{}
				r.Hierarchy = java.TypeHierarchy
			}

			summary, runErr := r.Run(cmd.Context(), args[0])
			if summary == nil {
				return runErr
			}
			if asJSON {
				data, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, string(data))
			} else {
				fmt.Fprintf(a.out, "run\t%s\n", summary.RunID)
				fmt.Fprintf(a.out, "files\t%d\n", summary.Files)
				fmt.Fprintf(a.out, "tokens\t%d\n", summary.Tokens)
				fmt.Fprintf(a.out, "bindings\t%d\n", summary.TotalBindings())
				fmt.Fprintf(a.out, "edges\t%d\n", len(summary.Edges))
				fmt.Fprintf(a.out, "failed\t%d\n", len(summary.Failed))
			}
			return runErr
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "number of files processed in parallel")
	cmd.Flags().StringVar(&strategy, "strategy", "approximate", "resolution strategy (approximate, exact)")
	cmd.Flags().StringVar(&tokenizer, "tokenizer", "java", "tokenizer to run")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}
