package main

import (
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/codemining/config"
	"github.com/dhamidi/codemining/tokenize"
	"github.com/dhamidi/codemining/tokenizers"
)

const version = "0.1.0"

// app carries what every command needs. Tests replace the filesystem and
// the output.
type app struct {
	fs         afero.Fs
	out        io.Writer
	registry   *tokenize.Registry
	configPath string
	verbose    int
	cfg        config.Config
}

func newApp() *app {
	return &app{
		fs:       afero.NewOsFs(),
		out:      os.Stdout,
		registry: tokenizers.Default(),
		cfg:      config.Default(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codemining",
		Short:         "Tokenize source code and extract name bindings",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(a.verbose, nil)
			cfg, err := config.Load(a.fs, a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	rootCmd.SetOut(a.out)
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "HCL configuration file")

	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newBindingsCmd(a))
	rootCmd.AddCommand(newCorpusCmd(a))
	rootCmd.AddCommand(newHierarchyCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	return rootCmd
}

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
