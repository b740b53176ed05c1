// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package rename implements the rename registry and the symbol rename
// coordinator, the shared mechanism behind every naming policy: a
// rename must update the declaration, every reference to it (in any
// traversal order), and the hosting file, without leaving the tree
// inconsistent mid-pass.
// Implements: prd001-rename-core R2, R3;
//
//	docs/ARCHITECTURE § Rename Coordinator.
package rename

// Registry accumulates old FQN to new FQN mappings across a whole run.
// Reference sites visited before or after their declaration are both
// served: the cross-file fixer consults the full registry after all
// policies have run.
//
// Implements: prd001-rename-core R2.1-R2.3.
type Registry struct {
	renames map[string]string // old FQN -> new FQN
	targets map[string]string // new FQN -> old FQN, collision guard
}

// NewRegistry creates an empty registry. One registry exists per run,
// owned by the run driver.
func NewRegistry() *Registry {
	return &Registry{
		renames: make(map[string]string),
		targets: make(map[string]string),
	}
}

// Add records a rename. It rejects a second mapping for the same old
// FQN and any mapping that would give two distinct old FQNs the same
// new FQN; first registration wins.
func (r *Registry) Add(oldFQN, newFQN string) bool {
	if oldFQN == newFQN {
		return false
	}
	if _, ok := r.renames[oldFQN]; ok {
		return false
	}
	if _, ok := r.targets[newFQN]; ok {
		return false
	}
	r.renames[oldFQN] = newFQN
	r.targets[newFQN] = oldFQN
	return true
}

// Lookup returns the new FQN recorded for oldFQN.
func (r *Registry) Lookup(oldFQN string) (string, bool) {
	newFQN, ok := r.renames[oldFQN]
	return newFQN, ok
}

// Len returns the number of recorded renames.
func (r *Registry) Len() int {
	return len(r.renames)
}

// All returns a copy of the registry as a plain mapping, in the form
// the cross-file reference fixer consumes.
func (r *Registry) All() map[string]string {
	out := make(map[string]string, len(r.renames))
	for k, v := range r.renames {
		out[k] = v
	}
	return out
}
