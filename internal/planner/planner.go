// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package planner implements the file rename planner: it accumulates
// file moves during a run and commits them exactly once at the end, or
// discards them wholesale in dry-run mode. Every pair is independently
// idempotent, so a partially applied commit can be resumed by
// re-running the whole pipeline.
// Implements: prd004-file-planner R1, R2, R3;
//
//	docs/ARCHITECTURE § File Rename Planner.
package planner

import (
	"fmt"
	"os"
	"path/filepath"
)

// Collision records a rejected plan request: either the source already
// had a different destination, or the destination was already claimed
// by another source. First registration wins.
type Collision struct {
	OldPath string // Requested source
	NewPath string // Requested destination
	Reason  string // Human-readable rejection reason
}

// Move is one planned file rename. Paths are relative to the tree root.
type Move struct {
	OldPath string
	NewPath string
}

// Planner accumulates file moves for one run. It is created once per
// run and must not be shared across runs: Commit fires at most once.
//
// Implements: prd004-file-planner R1.1-R1.4.
type Planner struct {
	root      string // Absolute tree root for file-system operations
	planned   map[string]string
	targets   map[string]string
	order     []string // Source paths in plan order, for deterministic commits
	skipped   []Collision
	committed bool
}

// New creates a planner rooted at the given directory.
func New(root string) *Planner {
	return &Planner{
		root:    root,
		planned: make(map[string]string),
		targets: make(map[string]string),
	}
}

// Plan records a pending move from oldPath to newPath (both relative to
// the root). Equal paths are a no-op. A source already planned with a
// different destination, or a destination already claimed by a
// different source, rejects the new request: first registration wins,
// and the rejection is recorded for the run result rather than raised.
//
// Implements: prd004-file-planner R1.1-R1.3.
func (p *Planner) Plan(oldPath, newPath string) bool {
	if oldPath == newPath {
		return false
	}

	if existing, ok := p.planned[oldPath]; ok {
		if existing != newPath {
			p.skipped = append(p.skipped, Collision{
				OldPath: oldPath,
				NewPath: newPath,
				Reason:  fmt.Sprintf("%s already planned to move to %s", oldPath, existing),
			})
		}
		return false
	}
	if claimant, ok := p.targets[newPath]; ok {
		p.skipped = append(p.skipped, Collision{
			OldPath: oldPath,
			NewPath: newPath,
			Reason:  fmt.Sprintf("%s already claimed by %s", newPath, claimant),
		})
		return false
	}

	p.planned[oldPath] = newPath
	p.targets[newPath] = oldPath
	p.order = append(p.order, oldPath)
	return true
}

// Planned returns the pending moves in plan order.
func (p *Planner) Planned() []Move {
	moves := make([]Move, 0, len(p.order))
	for _, from := range p.order {
		moves = append(moves, Move{OldPath: from, NewPath: p.planned[from]})
	}
	return moves
}

// Skipped returns the plan requests rejected by the collision guard.
func (p *Planner) Skipped() []Collision {
	return p.skipped
}

// Len returns the number of pending moves.
func (p *Planner) Len() int {
	return len(p.planned)
}

// Commit applies all pending moves and clears the plan. It is guarded:
// a second call is a no-op. For each pair the destination's parent
// directory is created if missing; an already existing destination
// means the move was applied by an earlier, interrupted run and the
// pair is skipped. A missing source with a missing destination is also
// skipped. Any other file-system failure aborts the commit; the plan
// stays cleared because re-running the pipeline rebuilds it.
//
// Implements: prd004-file-planner R2.1-R2.5.
func (p *Planner) Commit() (int, error) {
	if p.committed {
		return 0, nil
	}
	p.committed = true

	applied := 0
	for _, from := range p.order {
		to := p.planned[from]
		src := filepath.Join(p.root, from)
		dst := filepath.Join(p.root, to)

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			p.clear()
			return applied, fmt.Errorf("creating directory for %s: %w", to, err)
		}

		if _, err := os.Stat(dst); err == nil {
			// Already applied by a previous run.
			continue
		}
		if _, err := os.Stat(src); err != nil {
			// Nothing to move; treat as applied.
			continue
		}

		if err := os.Rename(src, dst); err != nil {
			p.clear()
			return applied, fmt.Errorf("moving %s to %s: %w", from, to, err)
		}
		applied++
	}

	p.clear()
	return applied, nil
}

// Abort discards all pending moves without touching the file system.
// Used in dry-run mode. Like Commit, it arms the once-only guard.
//
// Implements: prd004-file-planner R3.1.
func (p *Planner) Abort() {
	p.committed = true
	p.clear()
}

func (p *Planner) clear() {
	p.planned = make(map[string]string)
	p.targets = make(map[string]string)
	p.order = nil
}
