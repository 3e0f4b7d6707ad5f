package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/format"
	"github.com/dhamidi/codemining/java"
)

func newParseCmd(a *app) *cobra.Command {
	var snippet bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Dump the syntax tree of a Java file with name namespaces and symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := afero.ReadFile(a.fs, args[0])
			if err != nil {
				return errors.Errorf("reading %s: %w", args[0], err)
			}
			parse := java.FromSource
			if snippet {
				parse = java.FromSnippet
			}
			return format.NewTreeJSONEncoder(a.out).Encode(parse(src))
		},
	}

	cmd.Flags().BoolVar(&snippet, "snippet", false, "treat the file as a fragment of code")
	return cmd
}
