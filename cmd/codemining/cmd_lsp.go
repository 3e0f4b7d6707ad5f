package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/codemining/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server highlighting the binding under the cursor",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.newExtractor(a.cfg.Tokenizer, a.cfg.Strategy, a.cfg.Kind)
			if err != nil {
				return err
			}
			e.Features = true
			return lsp.NewServer(version, e).RunStdio()
		},
	}
}
