// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package policy defines the naming policy contract and the catalog of
// built-in naming conventions. Policies are pure: given a declaration
// and its context they either propose a new short name or decline. All
// bookkeeping (registry, planner, reference rewriting) lives in the
// coordinator, never in a policy.
// Implements: prd003-policy-catalog R1;
//
//	docs/ARCHITECTURE § Naming Policies.
package policy

import (
	"strings"

	"github.com/petar-djukic/namefix/internal/table"
	"github.com/petar-djukic/namefix/pkg/types"
)

// Context carries the information a policy may consult beyond the
// declaration itself.
type Context struct {
	ModulePath string           // Module path of the declaration under consideration
	Table      *table.DeclTable // Sibling and parameter lookups; may be nil in tests
}

// Policy is a single naming convention. Implementations must be
// stateless and deterministic.
//
// TryRename returns the proposed new short name, or ok=false when the
// declaration is out of scope or already conforms (the fixed-point
// requirement that makes re-runs idempotent).
//
// RewriteName applies the policy's pure name transform to a bare name,
// without declaration context. The coordinator uses it to rename
// matching import aliases in the file being edited; reference sites
// themselves are rewritten only when the target declaration's own
// TryRename fires, because a bare name cannot carry declaration-level
// exemptions. Policies whose transform needs declaration context (for
// example abstractness) return ok=false here.
//
// Implements: prd003-policy-catalog R1.1-R1.4.
type Policy interface {
	Name() string
	AppliesTo(modulePath string) bool
	TryRename(d *types.Declaration, ctx Context) (string, bool)
	RewriteName(name string) (string, bool)
}

// scope is a module-path predicate: a set of path segments, any one of
// which activates the policy.
type scope []string

// matches reports whether modulePath contains one of the scope's
// segments as a whole path segment.
func (s scope) matches(modulePath string) bool {
	if len(s) == 0 {
		return false
	}
	segments := strings.Split(modulePath, "/")
	for _, seg := range segments {
		lower := strings.ToLower(seg)
		for _, want := range s {
			if lower == want {
				return true
			}
		}
	}
	return false
}

// hasAnyPrefix reports whether name starts with one of the given
// prefixes, followed by at least one more character.
func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if len(name) > len(p) && strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
