// Package config holds the settings shared by the command line tools.
//
// Settings come from defaults, an optional HCL file and, for tab width,
// the .editorconfig files governing each source file:
//
//	tab_width = 8
//	tokenizer = "java"
//	strategy  = "exact"
//	workers   = 4
//	kind      = "variables"
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/token"
)

var log = commonlog.GetLogger("codemining.config")

type Config struct {
	// TabWidth is the column width of a tab. It only affects column
	// computation, never tokens or whitespace symbols.
	TabWidth  int
	Tokenizer string
	Strategy  string
	Kind      string
	// Workers bounds the number of files processed concurrently.
	Workers int
}

func Default() Config {
	return Config{
		TabWidth:  token.DefaultTabWidth,
		Tokenizer: "java",
		Strategy:  "approximate",
		Kind:      "variables",
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// fileConfig is the HCL schema. Absent attributes keep their defaults.
type fileConfig struct {
	TabWidth  *int    `hcl:"tab_width,optional"`
	Tokenizer *string `hcl:"tokenizer,optional"`
	Strategy  *string `hcl:"strategy,optional"`
	Kind      *string `hcl:"kind,optional"`
	Workers   *int    `hcl:"workers,optional"`
}

// Load reads an HCL configuration file on top of the defaults. An empty
// path yields the defaults.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, errors.Errorf("reading config file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes HCL configuration text on top of the defaults. filename
// is only used in diagnostics.
func Parse(data []byte, filename string) (Config, error) {
	cfg := Default()
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return cfg, errors.Errorf("parsing HCL: %s", diags.Error())
	}
	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return cfg, errors.Errorf("decoding HCL: %s", diags.Error())
	}
	if fc.TabWidth != nil {
		cfg.TabWidth = *fc.TabWidth
	}
	if fc.Tokenizer != nil {
		cfg.Tokenizer = *fc.Tokenizer
	}
	if fc.Strategy != nil {
		cfg.Strategy = *fc.Strategy
	}
	if fc.Kind != nil {
		cfg.Kind = *fc.Kind
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.TabWidth <= 0 {
		return errors.WithDetails(errors.New("tab width must be positive"), "tab_width", c.TabWidth)
	}
	if c.Workers <= 0 {
		return errors.WithDetails(errors.New("workers must be positive"), "workers", c.Workers)
	}
	return nil
}

// ColumnsFor returns the column configuration for a source file of fs.
// A tab_width set by the .editorconfig files governing path wins over
// the configured one. Nearer files override farther ones, and the search
// stops at a file declaring root = true.
func (c Config) ColumnsFor(fs afero.Fs, path string) token.ColumnConfig {
	cols := token.ColumnConfig{TabWidth: c.TabWidth}
	path = filepath.Clean(path)
	var widths []int
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		ec, err := readEditorconfig(fs, filepath.Join(dir, editorconfigName))
		if err != nil {
			log.Debugf("editorconfig for %s: %s", path, err)
		}
		if ec != nil {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				rel = filepath.Base(path)
			}
			def, err := ec.GetDefinitionForFilename("/" + filepath.ToSlash(rel))
			if err != nil {
				log.Debugf("editorconfig for %s: %s", path, err)
			} else if def.TabWidth > 0 {
				widths = append(widths, def.TabWidth)
			}
			if ec.Root {
				break
			}
		}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}
	if len(widths) > 0 {
		cols.TabWidth = widths[0]
	}
	return cols
}

const editorconfigName = ".editorconfig"

// readEditorconfig parses the file at name, returning nil and no error
// when it does not exist.
func readEditorconfig(fs afero.Fs, name string) (*editorconfig.Editorconfig, error) {
	f, err := fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	ec, err := editorconfig.Parse(f)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", name, err)
	}
	return ec, nil
}
