// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gitx guards destructive runs: file moves and rewrites are
// refused on a dirty worktree unless explicitly allowed, so a failed
// run can always be diffed and reverted against a clean baseline.
// Implements: prd005-run-driver R4;
//
//	docs/ARCHITECTURE § Git Guard.
package gitx

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// ErrDirtyWorkTree is returned when uncommitted changes exist and the
// caller has not opted in to applying on top of them.
var ErrDirtyWorkTree = errors.New("uncommitted changes exist")

// EnsureClean verifies that workDir, if it is inside a git repository,
// has a clean worktree. Directories outside any repository pass: there
// is no baseline to protect.
func EnsureClean(workDir string) error {
	repo, err := gogit.PlainOpenWithOptions(workDir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil
		}
		return fmt.Errorf("opening repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("reading worktree status: %w", err)
	}
	if !status.IsClean() {
		return ErrDirtyWorkTree
	}
	return nil
}
