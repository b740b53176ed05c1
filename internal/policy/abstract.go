// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package policy

import (
	"strings"

	"github.com/petar-djukic/namefix/pkg/types"
)

// AbstractPrefix gives abstract declarations an "Abstract" prefix:
// abstract class Entity becomes AbstractEntity. An empty scope applies
// the policy to the whole tree.
//
// Implements: prd003-policy-catalog R3.3.
type AbstractPrefix struct {
	Scope []string // Empty = whole tree
}

func (p *AbstractPrefix) Name() string { return "abstract-prefix" }

func (p *AbstractPrefix) AppliesTo(modulePath string) bool {
	if len(p.Scope) == 0 {
		return true
	}
	return scope(p.Scope).matches(modulePath)
}

func (p *AbstractPrefix) TryRename(d *types.Declaration, ctx Context) (string, bool) {
	if !p.AppliesTo(d.ModulePath) {
		return "", false
	}
	if !d.IsAbstract || d.Kind == types.Interface {
		return "", false
	}
	if strings.HasPrefix(d.ShortName, "Abstract") {
		return "", false
	}
	return "Abstract" + d.ShortName, true
}

// RewriteName declines: whether a bare name refers to an abstract
// declaration cannot be decided from the name alone. Reference sites
// are repaired through the rename registry instead.
func (p *AbstractPrefix) RewriteName(name string) (string, bool) {
	return "", false
}
