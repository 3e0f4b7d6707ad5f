package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/java"
)

func newHierarchyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hierarchy <path>",
		Short: "Print the parent and child of every supertype relation in Java sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := sourceFiles(a.fs, args[0], java.NewTokenizer())
			if err != nil {
				return err
			}
			seen := map[java.Edge]bool{}
			for _, path := range paths {
				src, err := afero.ReadFile(a.fs, path)
				if err != nil {
					return errors.Errorf("reading %s: %w", path, err)
				}
				for _, e := range java.TypeHierarchy(java.FromSource(src)) {
					if !seen[e] {
						seen[e] = true
						fmt.Fprintf(a.out, "%s\t%s\n", e.Parent, e.Child)
					}
				}
			}
			return nil
		},
	}
}
