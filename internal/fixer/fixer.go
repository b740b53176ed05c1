// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fixer rewrites the reference sites the eager pass could not
// reach. After every policy has run, the full rename registry is
// applied across the corpus: any reference still pointing at an old
// FQN is redirected to the new one, regardless of the order files were
// visited in.
// Implements: prd001-rename-core R2.4;
//
//	docs/ARCHITECTURE § Cross-file Fixer.
package fixer

import (
	"github.com/petar-djukic/namefix/internal/rename"
	"github.com/petar-djukic/namefix/pkg/types"
)

// Fix applies the registry to every reference site in every file.
// Returns the number of sites rewritten. Sites already repaired eagerly
// carry the new FQN and are untouched; unresolved sites are skipped.
func Fix(files []*types.SourceFile, reg *rename.Registry) int {
	fixed := 0
	for _, f := range files {
		for _, ref := range f.Refs {
			if ref.TargetFQN == "" {
				continue
			}
			newFQN, ok := reg.Lookup(ref.TargetFQN)
			if !ok {
				continue
			}
			_, newName := types.SplitFQN(newFQN)
			if ref.ViaAlias || ref.ReferencedName == newName {
				// Alias-based sites keep their local name; already
				// repaired sites just pick up the new identity.
				ref.TargetFQN = newFQN
				continue
			}
			f.AddEdit(ref.NameSpan, newName)
			if !ref.ModuleSpan.IsZero() {
				f.AddEdit(ref.ModuleSpan, newName)
			}
			ref.ReferencedName = newName
			ref.TargetFQN = newFQN
			fixed++
		}
	}
	return fixed
}
