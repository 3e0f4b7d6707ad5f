package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/tokenize"
)

func newTokensCmd(a *app) *cobra.Command {
	var columns bool

	cmd := &cobra.Command{
		Use:   "tokens <path> <tokenizer> [tokenizer-arg]",
		Short: "Print the tokens of a file, or of every matching file below a directory",
		Long: `Print one token per line. A directory is searched recursively for files
accepted by the tokenizer's file filter, with a blank line between files.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 3 {
				arg = args[2]
			}
			tok, err := a.registry.New(args[1], arg)
			if err != nil {
				return err
			}
			paths, err := sourceFiles(a.fs, args[0], tok)
			if err != nil {
				return err
			}
			for i, path := range paths {
				if i > 0 {
					fmt.Fprintln(a.out)
				}
				if err := a.printTokens(tok, path, columns); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&columns, "columns", false, "prefix each token with its line and column")
	return cmd
}

func (a *app) printTokens(tok tokenize.Tokenizer, path string, columns bool) error {
	src, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}
	stream := tok.TokenizeWithPositions(src)
	if !columns {
		for _, text := range stream.Texts() {
			fmt.Fprintln(a.out, text)
		}
		return nil
	}
	for _, at := range a.cfg.ColumnsFor(a.fs, path).Annotate(src, stream) {
		fmt.Fprintf(a.out, "%d:%d\t%s\n", at.Line, at.Column, at.Token.Text)
	}
	return nil
}

// sourceFiles returns path itself when it is a file, and otherwise every
// file below it that tok accepts.
func sourceFiles(fsys afero.Fs, path string, tok tokenize.Tokenizer) ([]string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var paths []string
	err = afero.Walk(fsys, path, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		if tokenize.Match(tok, filepath.ToSlash(rel)) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", path, err)
	}
	return paths, nil
}
