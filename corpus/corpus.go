// Package corpus runs tokenizers and binding extractors over a directory
// tree in parallel and merges the per-file results.
package corpus

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/codemining/binding"
	"github.com/dhamidi/codemining/java"
	"github.com/dhamidi/codemining/syntax"
	"github.com/dhamidi/codemining/tokenize"
)

var log = commonlog.GetLogger("codemining.corpus")

// Runner processes every file under a root that the tokenizer accepts.
// Each file gets its own tokenizer and extractor; nothing is shared
// between workers except the summary, which is merged under a lock.
type Runner struct {
	Fs afero.Fs
	// NewTokenizer creates the tokenizer for one file.
	NewTokenizer func() (tokenize.Tokenizer, error)
	// Language enables binding extraction. Without it files are only
	// tokenized.
	Language binding.Language
	Strategy binding.Strategy
	Kind     binding.Kind
	// Hierarchy extracts type hierarchy edges from each parsed file.
	Hierarchy func(*syntax.Tree) []java.Edge
	// Workers bounds the number of files in flight. Zero means no bound.
	Workers int
}

// Run processes the files below root. Files that fail are logged and
// skipped; their errors are combined into the returned error, which
// accompanies the partial summary.
func (r *Runner) Run(ctx context.Context, root string) (*Summary, error) {
	runID := uuid.New()
	log.Infof("run %s: scanning %s", runID, root)

	paths, err := r.collect(root)
	if err != nil {
		return nil, err
	}

	total := newSummary(runID)
	var (
		mu   sync.Mutex
		errs error
	)
	g, ctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := r.processFile(runID, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Errorf("run %s: %s: %+v", runID, path, err)
				errs = multierr.Append(errs, err)
				s = newSummary(runID)
				s.Failed = []string{path}
			}
			total.Merge(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = multierr.Append(errs, err)
	}
	log.Infof("run %s: %d files, %d failed", runID, total.Files, len(total.Failed))
	return total, errs
}

// collect lists the files under root accepted by the tokenizer filter,
// in walk order.
func (r *Runner) collect(root string) ([]string, error) {
	tok, err := r.NewTokenizer()
	if err != nil {
		return nil, err
	}
	var paths []string
	err = afero.Walk(r.Fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if tokenize.Match(tok, filepath.ToSlash(rel)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

func (r *Runner) processFile(runID uuid.UUID, path string) (s *Summary, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.WithDetails(errors.Errorf("panic: %v", p), "path", path)
		}
	}()

	src, err := afero.ReadFile(r.Fs, path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	tok, err := r.NewTokenizer()
	if err != nil {
		return nil, err
	}
	stream := tok.TokenizeWithPositions(src)

	s = newSummary(runID)
	s.Files = 1
	// The sentinels are not counted.
	s.Tokens = stream.Len() - 2
	if r.Language == nil {
		return s, nil
	}

	resolver, err := binding.NewResolver(r.Strategy)
	if err != nil {
		return nil, err
	}
	tree := r.Language.Parse(src)
	e := binding.NewExtractor(tok, r.Language, resolver)
	if r.Kind != "" {
		e.Kind = r.Kind
	}
	bindings, err := e.FromTree(tree, stream)
	switch {
	case errors.Is(err, binding.ErrUnsupported):
		log.Warningf("run %s: %s: %s", runID, path, err)
	case err != nil:
		return nil, errors.WithDetails(err, "path", path)
	}
	s.Bindings[path] = len(bindings)
	if r.Hierarchy != nil {
		s.Edges = r.Hierarchy(tree)
	}
	return s, nil
}
