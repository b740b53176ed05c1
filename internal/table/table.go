// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package table implements the declaration table: a per-run index of
// declarations keyed by fully qualified name, plus the parameter-name
// enrichment table consulted when call sites are recomposed with
// keyword arguments.
// Implements: prd001-rename-core R4;
//
//	docs/ARCHITECTURE § Declaration Table.
package table

import (
	"github.com/petar-djukic/namefix/pkg/types"
)

// DeclTable indexes declarations by FQN and by module path. It is built
// incrementally during the parse pass and rekeyed by the coordinator as
// declarations are renamed, so lookups always reflect current names.
//
// Implements: prd001-rename-core R4.1-R4.3.
type DeclTable struct {
	byFQN    map[string]*types.Declaration
	byModule map[string][]*types.Declaration
	params   map[string][]string
}

// New creates an empty declaration table.
func New() *DeclTable {
	return &DeclTable{
		byFQN:    make(map[string]*types.Declaration),
		byModule: make(map[string][]*types.Declaration),
		params:   make(map[string][]string),
	}
}

// Add indexes a declaration under its current FQN. If the declaration
// carries constructor parameter names, they are recorded in the
// enrichment table. A duplicate FQN keeps the first declaration (the
// 1:1 declaration-to-file convention makes duplicates a tree defect,
// not ours to resolve).
func (t *DeclTable) Add(d *types.Declaration) {
	fqn := d.FQN()
	if _, exists := t.byFQN[fqn]; exists {
		return
	}
	t.byFQN[fqn] = d
	t.byModule[d.ModulePath] = append(t.byModule[d.ModulePath], d)
	if len(d.Params) > 0 {
		t.params[fqn] = d.Params
	}
}

// Lookup returns the declaration currently known under fqn.
func (t *DeclTable) Lookup(fqn string) (*types.Declaration, bool) {
	d, ok := t.byFQN[fqn]
	return d, ok
}

// Params returns the ordered constructor parameter names recorded for
// fqn. The second return is false when no declaration or no parameter
// information was seen; callers must degrade to a no-op.
//
// Implements: prd001-rename-core R4.4 (fail soft).
func (t *DeclTable) Params(fqn string) ([]string, bool) {
	p, ok := t.params[fqn]
	return p, ok
}

// Module returns the declarations indexed under a module path.
func (t *DeclTable) Module(modulePath string) []*types.Declaration {
	return t.byModule[modulePath]
}

// Rekey moves a declaration's index entries from oldFQN to newFQN after
// a rename. The byModule index needs no update: module paths never
// change across a rename.
func (t *DeclTable) Rekey(oldFQN, newFQN string) {
	d, ok := t.byFQN[oldFQN]
	if !ok {
		return
	}
	delete(t.byFQN, oldFQN)
	t.byFQN[newFQN] = d
	if p, ok := t.params[oldFQN]; ok {
		delete(t.params, oldFQN)
		t.params[newFQN] = p
	}
}

// Len returns the number of indexed declarations.
func (t *DeclTable) Len() int {
	return len(t.byFQN)
}
