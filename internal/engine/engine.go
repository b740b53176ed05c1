// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package engine implements the run driver: discover, parse, one pass
// per policy through the coordinator, cross-file fixing, serialization,
// and the end-of-run planner commit (or wholesale discard in dry-run
// mode). The registry, planner, and declaration table are constructed
// here, once per run, and threaded into every policy invocation;
// nothing survives the run.
// Implements: prd005-run-driver R2, R3;
//
//	docs/ARCHITECTURE § Run Driver.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/petar-djukic/namefix/internal/discover"
	"github.com/petar-djukic/namefix/internal/fixer"
	"github.com/petar-djukic/namefix/internal/gitx"
	"github.com/petar-djukic/namefix/internal/planner"
	"github.com/petar-djukic/namefix/internal/policy"
	"github.com/petar-djukic/namefix/internal/rename"
	"github.com/petar-djukic/namefix/internal/source"
	"github.com/petar-djukic/namefix/internal/table"
	"github.com/petar-djukic/namefix/pkg/types"
)

// Config configures one run.
type Config struct {
	WorkDir    string        // Tree root (required)
	DryRun     bool          // Preview only: no writes, no moves
	AllowDirty bool          // Apply even on a dirty git worktree
	Policies   policy.Config // Policy selection and parameters
	Out        io.Writer     // Diff and plan output; nil = stdout
}

// Result holds the outcome of a run.
type Result struct {
	FilesParsed   int                  // Files successfully parsed
	FilesSkipped  int                  // Files that failed to parse
	DeclsRenamed  int                  // Declarations renamed
	RefsRewritten int                  // Reference sites rewritten (eager + fixer)
	Renames       []types.RenameRecord // One record per renamed declaration
	FilesChanged  []string             // Files with content changes
	MovesApplied  int                  // File moves performed at commit
	MovesSkipped  []planner.Collision  // Plan requests rejected by the collision guard
	DryRun        bool                 // True when no file-system effect occurred
}

// Runner executes runs over a fixed configuration.
type Runner struct {
	cfg      Config
	policies []policy.Policy
}

// New creates a runner with the catalog selected by cfg.
func New(cfg Config) *Runner {
	return &Runner{cfg: cfg, policies: policy.Catalog(cfg.Policies)}
}

// Policies returns the names of the policies the runner will apply, in
// pass order.
func (r *Runner) Policies() []string {
	names := make([]string, len(r.policies))
	for i, p := range r.policies {
		names[i] = p.Name()
	}
	return names
}

// Run executes the full pipeline. Parse failures skip the file; the
// run proceeds on the rest. File-system effects happen only at the
// end: content writes first, then the planner commit. In dry-run mode
// both are replaced by a diff and plan preview on cfg.Out.
//
// Implements: prd005-run-driver R2.1-R2.6.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	res := &Result{DryRun: r.cfg.DryRun}

	paths, err := discover.Files(r.cfg.WorkDir)
	if err != nil {
		return res, fmt.Errorf("discovering files: %w", err)
	}

	// Parse pass: build the model and the declaration table.
	tbl := table.New()
	var files []*types.SourceFile
	for _, p := range paths {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		f, err := source.ParseFile(ctx, r.cfg.WorkDir, p)
		if err != nil {
			res.FilesSkipped++
			continue
		}
		res.FilesParsed++
		files = append(files, f)
		for _, d := range f.Decls {
			tbl.Add(d)
		}
	}

	// Imports of files that do not follow the one-declaration-per-file
	// convention address the hosting module, not the directory the
	// table keys by. Retarget those onto the table's identity so the
	// fixer can reach them; the hosting file itself never moves.
	for _, f := range files {
		for _, ref := range f.Refs {
			if ref.TargetFQN == "" {
				continue
			}
			if _, ok := tbl.Lookup(ref.TargetFQN); ok {
				continue
			}
			mod, name := types.SplitFQN(ref.TargetFQN)
			if mod == "" {
				continue
			}
			dir := path.Dir(mod)
			if dir == "." {
				dir = ""
			}
			alt := types.JoinFQN(dir, name)
			if _, ok := tbl.Lookup(alt); ok {
				ref.TargetFQN = alt
			}
		}
	}

	// Rename passes: one full traversal per policy, fixed order.
	reg := rename.NewRegistry()
	pl := planner.New(r.cfg.WorkDir)
	coord := rename.NewCoordinator(reg, pl, tbl)
	for _, pol := range r.policies {
		for _, f := range files {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			for _, d := range f.Decls {
				if rec, ok := coord.Apply(pol, d, f); ok {
					res.Renames = append(res.Renames, rec)
				}
			}
		}
	}

	// Cross-file pass: the registry repairs everything the eager
	// rewriting could not see.
	fixed := fixer.Fix(files, reg)
	stats := coord.Stats()
	res.DeclsRenamed = stats.DeclsRenamed
	res.RefsRewritten = stats.RefsRewritten + fixed

	out := r.cfg.Out
	if out == nil {
		out = os.Stdout
	}

	if !r.cfg.DryRun && !r.cfg.AllowDirty {
		if err := gitx.EnsureClean(r.cfg.WorkDir); err != nil {
			return res, fmt.Errorf("refusing to apply: %w", err)
		}
	}

	// Serialize mutated files.
	for _, f := range files {
		if !f.Dirty() {
			continue
		}
		if r.cfg.DryRun {
			updated, err := source.Render(f)
			if err != nil {
				return res, err
			}
			printDiff(out, f.Path, string(f.Content), string(updated))
		} else {
			if err := source.WriteFile(r.cfg.WorkDir, f); err != nil {
				return res, err
			}
		}
		res.FilesChanged = append(res.FilesChanged, f.Path)
	}

	// The only destructive step, deferred to the very end.
	if r.cfg.DryRun {
		printPlan(out, pl.Planned())
		pl.Abort()
	} else {
		applied, err := pl.Commit()
		res.MovesApplied = applied
		if err != nil {
			return res, fmt.Errorf("committing file moves: %w", err)
		}
	}
	res.MovesSkipped = pl.Skipped()

	return res, nil
}
