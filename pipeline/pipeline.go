// Package pipeline is the orchestration layer around the translation core:
// it discovers parsed modules, translates them concurrently, and aggregates
// the results into one combined declaration file.
//
// Each module's pass is independent, so the batch is embarrassingly
// parallel. One module's fatal error fails that module only; all failures
// are collected and reported together.
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/typebridge/typebridge/ast"
	"github.com/typebridge/typebridge/config"
	"github.com/typebridge/typebridge/decl"
	"github.com/typebridge/typebridge/errors"
	"github.com/typebridge/typebridge/printer"
	"github.com/typebridge/typebridge/translate"
)

// moduleExt is the extension of parser interchange documents.
const moduleExt = ".ast.json"

// Runner executes translation batches according to one configuration.
type Runner struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, log *zap.SugaredLogger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Discover walks root for parser interchange files, dropping any whose path
// contains a configured exclude substring. Results are sorted so batch
// output order is stable.
func (r *Runner) Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, moduleExt) {
			return nil
		}
		for _, excl := range r.cfg.Pipeline.Exclude {
			if strings.Contains(path, excl) {
				r.log.Debugw("input excluded", "path", path, "pattern", excl)
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to discover modules under %s", root)
	}
	sort.Strings(files)
	return files, nil
}

// ModuleResult is the outcome of translating one module.
type ModuleResult struct {
	Path  string
	Decls *decl.Module
	Err   error
}

// Failed reports whether the module's translation failed.
func (mr *ModuleResult) Failed() bool { return mr.Err != nil }

// Run translates the given modules concurrently and returns their results
// in input order. Translation errors are recorded per module, never
// returned: only infrastructure failures (context cancellation) surface.
func (r *Runner) Run(ctx context.Context, files []string) ([]ModuleResult, error) {
	results := make([]ModuleResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, path := range files {
		i, path := i, path
		results[i].Path = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].Decls, results[i].Err = r.translateFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) translateFile(path string) (*decl.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	mod, err := ast.DecodeModule(f)
	if err != nil {
		return nil, err
	}
	if mod.Path == "" {
		mod.Path = path
	}

	r.log.Debugw("translating module", "path", mod.Path, "statements", len(mod.Stmts))
	return translate.Translate(mod, translate.Options{
		Roots:  r.cfg.Translate.Roots,
		Deny:   r.cfg.Translate.Deny,
		Logger: r.log,
	})
}

// Aggregate combines successful results into one declaration file body,
// one banner-headed section per module in result order.
func Aggregate(results []ModuleResult) string {
	var sb strings.Builder
	sb.WriteString("// Code generated by typebridge from annotated sources. DO NOT EDIT.\n")
	for i := range results {
		if results[i].Failed() {
			continue
		}
		sb.WriteString("\n// ── " + results[i].Path + "\n")
		sb.WriteString(printer.PrintBody(results[i].Decls))
	}
	return sb.String()
}

// Build runs one full discover-translate-aggregate cycle and writes the
// combined declaration file. Failed modules are logged; Build returns an
// error summarizing them so callers can exit non-zero.
func (r *Runner) Build(ctx context.Context, root string) error {
	files, err := r.Discover(root)
	if err != nil {
		return err
	}
	r.log.Infow("translating modules", "count", len(files), "root", root)

	results, err := r.Run(ctx, files)
	if err != nil {
		return err
	}

	out := Aggregate(results)
	if err := os.WriteFile(r.cfg.Output.Path, []byte(out), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", r.cfg.Output.Path)
	}

	failed := 0
	for i := range results {
		if results[i].Failed() {
			failed++
			r.log.Errorw("module translation failed", "path", results[i].Path, "error", results[i].Err)
		}
	}
	r.log.Infow("declaration file written",
		"path", r.cfg.Output.Path,
		"modules", len(results)-failed,
		"failed", failed,
	)
	if failed > 0 {
		return &BatchError{Failed: failed, Total: len(results), Results: results}
	}
	return nil
}

// BatchError reports that some modules in a batch failed, keeping the
// per-module results so callers can render each failure with its statement
// context.
type BatchError struct {
	Failed  int
	Total   int
	Results []ModuleResult
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d modules failed", e.Failed, e.Total)
}

func (r *Runner) workers() int {
	if r.cfg.Pipeline.Workers > 0 {
		return r.cfg.Pipeline.Workers
	}
	return 1
}
