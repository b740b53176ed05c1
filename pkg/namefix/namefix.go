// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package namefix defines the public interface for namefix, a
// naming-convention normalizer for source trees.
// Implements: prd006-public-interface R1, R2, R3;
//
//	docs/ARCHITECTURE § Public Interface.
package namefix

import (
	"context"
	"errors"
	"io"

	"github.com/petar-djukic/namefix/pkg/types"
)

// ErrInvalidConfig is returned by New for unusable configurations.
var ErrInvalidConfig = errors.New("invalid config")

// Config configures a Renamer instance.
//
// Implements: prd006-public-interface R1.1-R1.9.
type Config struct {
	WorkDir    string // Tree root (required)
	DryRun     bool   // Preview only: no writes, no moves
	AllowDirty bool   // Apply even on a dirty git worktree

	Policies []string // Policy names to run, in catalog order; empty = all

	ValueObjectPaths        []string // Scope segments for value-object-suffix
	RepositoryPaths         []string // Scope segments for repository-prefix
	RepositoryPrefixes      []string // Recognized technology prefixes
	DefaultRepositoryPrefix string   // Prefix applied when none is recognized
	CommandPaths            []string // Scope segments for command-verb
	ErrorPaths              []string // Scope segments for error-suffix

	Out io.Writer // Diff and plan preview output; nil = stdout
}

// Result holds the outcome of a Renamer.Run invocation.
//
// Implements: prd006-public-interface R3.1-R3.4.
type Result struct {
	FilesParsed   int                  // Files successfully parsed
	FilesSkipped  int                  // Files that failed to parse
	DeclsRenamed  int                  // Declarations renamed
	RefsRewritten int                  // Reference sites rewritten
	Renames       []types.RenameRecord // One record per renamed declaration
	FilesChanged  []string             // Files with content changes
	MovesApplied  int                  // File moves performed at commit
	MovesSkipped  []string             // Collision-guard rejections, human readable
	DryRun        bool                 // True when no file-system effect occurred
}

// Renamer executes a normalization run against a source tree.
//
// Implements: prd006-public-interface R2.1-R2.3.
type Renamer interface {
	// Run executes the full pipeline: discover and parse the tree, apply
	// every configured policy through the rename coordinator, repair
	// remaining references from the rename registry, write mutated
	// files, and commit the planned file moves (or preview everything in
	// dry-run mode).
	Run(ctx context.Context) (*Result, error)

	// Policies returns the policy names the runner will apply, in pass
	// order.
	Policies() []string
}
