// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-rename-core R3;
//
//	docs/ARCHITECTURE § Rename Coordinator.
package rename

import (
	"path"
	"strings"

	"github.com/petar-djukic/namefix/internal/planner"
	"github.com/petar-djukic/namefix/internal/policy"
	"github.com/petar-djukic/namefix/internal/table"
	"github.com/petar-djukic/namefix/pkg/types"
)

// Stats counts the work performed through a coordinator.
type Stats struct {
	DeclsRenamed   int
	RefsRewritten  int
	ArgsRecomposed int
}

// Coordinator applies a policy verdict to a declaration and keeps the
// three views of a name in sync: the declaration itself, reference
// sites in the file being edited, and the planned file move. It owns
// nothing; registry, planner, and table are created per run by the
// driver and threaded in by reference.
//
// Implements: prd001-rename-core R3.1-R3.6.
type Coordinator struct {
	registry *Registry
	planner  *planner.Planner
	table    *table.DeclTable
	renamed  map[*types.Declaration]bool
	stats    Stats
}

// NewCoordinator creates a coordinator over the run's registry, planner,
// and declaration table.
func NewCoordinator(reg *Registry, pl *planner.Planner, tbl *table.DeclTable) *Coordinator {
	return &Coordinator{
		registry: reg,
		planner:  pl,
		table:    tbl,
		renamed:  make(map[*types.Declaration]bool),
	}
}

// Stats returns the work counters accumulated so far.
func (c *Coordinator) Stats() Stats {
	return c.stats
}

// Apply asks the policy for a verdict on d and, if it fires, performs
// the full rename: mutate the declaration in place, register the FQN
// mapping, eagerly rewrite matching reference sites in the current
// file, and hand the file move to the planner. Returns ok=false when
// the policy declines, the name is already conforming, or the registry
// rejects the mapping.
//
// A declaration renamed once in a run is not renamed again: policy
// scopes are expected to be disjoint, and when they are not, catalog
// order decides deterministically.
func (c *Coordinator) Apply(p policy.Policy, d *types.Declaration, f *types.SourceFile) (types.RenameRecord, bool) {
	if c.renamed[d] {
		return types.RenameRecord{}, false
	}

	newName, ok := p.TryRename(d, policy.Context{ModulePath: d.ModulePath, Table: c.table})
	if !ok || newName == d.ShortName {
		return types.RenameRecord{}, false
	}

	oldName := d.ShortName
	oldFQN := d.FQN()
	newFQN := types.JoinFQN(d.ModulePath, newName)

	if !c.registry.Add(oldFQN, newFQN) {
		return types.RenameRecord{}, false
	}

	// Mutate the declaration in place; the edit makes it visible to the
	// re-serializer.
	d.ShortName = newName
	f.AddEdit(d.NameSpan, newName)
	c.table.Rekey(oldFQN, newFQN)
	c.renamed[d] = true
	c.stats.DeclsRenamed++

	c.rewriteLocalRefs(p, f, oldFQN, newFQN, newName)

	rec := types.RenameRecord{OldFQN: oldFQN, NewFQN: newFQN}

	// Derive the file move: same directory, base name follows the new
	// declaration name. Files not following the name-per-file convention
	// host no move.
	ext := path.Ext(d.FilePath)
	base := strings.TrimSuffix(path.Base(d.FilePath), ext)
	if base == oldName {
		newPath := path.Join(path.Dir(d.FilePath), newName+ext)
		if newPath != d.FilePath {
			rec.OldPath = d.FilePath
			rec.NewPath = newPath
			c.planner.Plan(d.FilePath, newPath)
		}
	}

	return rec, true
}

// rewriteLocalRefs eagerly repairs reference sites in the current file.
// Full-corpus propagation happens later through the registry; the file
// being edited right now must not be left inconsistent, so sites whose
// target was just renamed, sites whose target the policy will rename
// when its declaration is visited, and matching aliases are rewritten
// immediately.
//
// Implements: prd001-rename-core R3.5.
func (c *Coordinator) rewriteLocalRefs(p policy.Policy, f *types.SourceFile, oldFQN, newFQN, newName string) {
	for _, ref := range f.Refs {
		switch {
		case ref.TargetFQN == oldFQN:
			if ref.ViaAlias {
				// The site's text is the alias; it stays valid across
				// the target rename.
				ref.TargetFQN = newFQN
			} else {
				c.rewriteRef(f, ref, newFQN, newName)
			}
			if ref.Kind == types.RefCall {
				c.recomposeArgs(f, ref)
			}
		case ref.TargetFQN != "" && !ref.ViaAlias:
			// Different target: rewrite only when the target declaration
			// itself would receive the same rename, so the mapping the
			// registry records later matches this one. A name-only
			// pattern match cannot see declaration-level exemptions
			// (interfaces, aliases), and rewriting a reference to an
			// exempt declaration leaves a dangling import the fixer can
			// never repair.
			target, ok := c.table.Lookup(ref.TargetFQN)
			if !ok {
				break
			}
			rewritten, ok := p.TryRename(target, policy.Context{ModulePath: target.ModulePath, Table: c.table})
			if ok && rewritten != ref.ReferencedName {
				c.rewriteRef(f, ref, types.JoinFQN(target.ModulePath, rewritten), rewritten)
			}
		}

		// The alias is a name in its own right: when it separately
		// matches the pattern it is rewritten in the same step, along
		// with every site in the file that uses it. The activation
		// scope is the imported declaration's module, same as for the
		// name itself.
		if ref.Kind == types.RefImport && ref.HasAlias() && !ref.AliasSpan.IsZero() {
			aliasModule, _ := types.SplitFQN(ref.TargetFQN)
			if ref.TargetFQN == "" || !p.AppliesTo(aliasModule) {
				continue
			}
			if newAlias, ok := p.RewriteName(ref.Alias); ok && newAlias != ref.Alias {
				oldAlias := ref.Alias
				f.AddEdit(ref.AliasSpan, newAlias)
				ref.Alias = newAlias
				c.stats.RefsRewritten++
				for _, use := range f.Refs {
					if use.ViaAlias && use.ReferencedName == oldAlias {
						f.AddEdit(use.NameSpan, newAlias)
						use.ReferencedName = newAlias
					}
				}
			}
		}
	}
}

// rewriteRef updates one reference site's name (and, for imports, the
// import-path segment naming the hosting file) to the new name.
func (c *Coordinator) rewriteRef(f *types.SourceFile, ref *types.ReferenceSite, newFQN, newName string) {
	if ref.ReferencedName == newName {
		ref.TargetFQN = newFQN
		return
	}
	f.AddEdit(ref.NameSpan, newName)
	if !ref.ModuleSpan.IsZero() {
		f.AddEdit(ref.ModuleSpan, newName)
	}
	ref.ReferencedName = newName
	ref.TargetFQN = newFQN
	c.stats.RefsRewritten++
}

// recomposeArgs converts a constructor call's positional arguments to
// keyword arguments using the parameter names recorded for the target
// declaration. Missing information degrades to a no-op; the call keeps
// its positional arguments.
//
// Implements: prd001-rename-core R4.4, R4.5.
func (c *Coordinator) recomposeArgs(f *types.SourceFile, ref *types.ReferenceSite) {
	if len(ref.ArgSpans) == 0 || f.Lang != "python" {
		return
	}
	params, ok := c.table.Params(ref.TargetFQN)
	if !ok || len(params) < len(ref.ArgSpans) {
		return
	}
	for i, span := range ref.ArgSpans {
		f.AddEdit(types.Span{Start: span.Start, End: span.Start}, params[i]+"=")
	}
	c.stats.ArgsRecomposed += len(ref.ArgSpans)
	ref.ArgSpans = nil
}
