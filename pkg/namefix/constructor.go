// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-public-interface R4;
//
//	docs/ARCHITECTURE § Public Interface.
package namefix

import (
	"context"
	"fmt"
	"os"

	"github.com/petar-djukic/namefix/internal/engine"
	"github.com/petar-djukic/namefix/internal/policy"
)

// New validates the config and returns a ready-to-use Renamer. It does
// not touch the tree; that happens in Run.
//
// Implements: prd006-public-interface R4.1-R4.2.
func New(cfg Config) (Renamer, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	runner := engine.New(engine.Config{
		WorkDir:    cfg.WorkDir,
		DryRun:     cfg.DryRun,
		AllowDirty: cfg.AllowDirty,
		Out:        cfg.Out,
		Policies: policy.Config{
			Enabled:                 cfg.Policies,
			ValueObjectPaths:        cfg.ValueObjectPaths,
			RepositoryPaths:         cfg.RepositoryPaths,
			RepositoryPrefixes:      cfg.RepositoryPrefixes,
			DefaultRepositoryPrefix: cfg.DefaultRepositoryPrefix,
			CommandPaths:            cfg.CommandPaths,
			ErrorPaths:              cfg.ErrorPaths,
		},
	})

	return &renamerAdapter{runner: runner}, nil
}

// renamerAdapter adapts internal/engine.Runner to the public Renamer
// interface.
type renamerAdapter struct {
	runner *engine.Runner
}

func (a *renamerAdapter) Run(ctx context.Context) (*Result, error) {
	ir, err := a.runner.Run(ctx)
	if ir == nil {
		return &Result{}, err
	}

	res := &Result{
		FilesParsed:   ir.FilesParsed,
		FilesSkipped:  ir.FilesSkipped,
		DeclsRenamed:  ir.DeclsRenamed,
		RefsRewritten: ir.RefsRewritten,
		Renames:       ir.Renames,
		FilesChanged:  ir.FilesChanged,
		MovesApplied:  ir.MovesApplied,
		DryRun:        ir.DryRun,
	}
	for _, c := range ir.MovesSkipped {
		res.MovesSkipped = append(res.MovesSkipped, c.Reason)
	}
	return res, err
}

func (a *renamerAdapter) Policies() []string {
	return a.runner.Policies()
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.WorkDir == "" {
		return fmt.Errorf("WorkDir is required")
	}
	if info, err := os.Stat(cfg.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("WorkDir %q does not exist or is not a directory", cfg.WorkDir)
	}
	return nil
}
