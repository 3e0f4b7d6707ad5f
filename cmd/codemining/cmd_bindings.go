package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/binding"
	"github.com/dhamidi/codemining/format"
	"github.com/dhamidi/codemining/java"
)

type bindingOptions struct {
	strategy    string
	tokenizer   string
	kind        string
	features    bool
	snippet     bool
	noOverrides bool
	format      string
}

func newBindingsCmd(a *app) *cobra.Command {
	var opts bindingOptions

	cmd := &cobra.Command{
		Use:   "bindings <file>",
		Short: "Print the name bindings of a Java file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strategy") {
				opts.strategy = a.cfg.Strategy
			}
			if !cmd.Flags().Changed("tokenizer") {
				opts.tokenizer = a.cfg.Tokenizer
			}
			if !cmd.Flags().Changed("kind") {
				opts.kind = a.cfg.Kind
			}
			return a.printBindings(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.strategy, "strategy", "approximate", "resolution strategy (approximate, exact)")
	cmd.Flags().StringVar(&opts.tokenizer, "tokenizer", "java", "tokenizer producing the token indices")
	cmd.Flags().StringVar(&opts.kind, "kind", "variables", "binding kind (variables, methods, method-declarations, method-invocations, types, type-declarations)")
	cmd.Flags().BoolVar(&opts.features, "features", false, "attach declaration features")
	cmd.Flags().BoolVar(&opts.snippet, "snippet", false, "treat the file as a fragment of code")
	cmd.Flags().BoolVar(&opts.noOverrides, "no-overrides", false, "skip methods annotated with @Override")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "line", "output format (line, json)")
	return cmd
}

func (a *app) newExtractor(tokenizer, strategy, kind string) (*binding.Extractor, error) {
	tok, err := a.registry.New(tokenizer, "")
	if err != nil {
		return nil, err
	}
	resolver, err := binding.NewResolver(binding.Strategy(strategy))
	if err != nil {
		return nil, err
	}
	k, err := binding.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	e := binding.NewExtractor(tok, java.Language{}, resolver)
	e.Kind = k
	return e, nil
}

func (a *app) printBindings(path string, opts bindingOptions) error {
	e, err := a.newExtractor(opts.tokenizer, opts.strategy, opts.kind)
	if err != nil {
		return err
	}
	e.Features = opts.features
	e.IncludeOverrides = !opts.noOverrides

	enc, err := format.New(opts.format, a.out)
	if err != nil {
		return err
	}
	src, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}

	extract := e.FromSource
	if opts.snippet {
		extract = e.FromSnippet
	}
	bindings, err := extract(src)
	if err != nil {
		return errors.WithDetails(err, "path", path)
	}
	return enc.Encode(format.Result{Path: path, Kind: e.Kind, Bindings: bindings})
}
