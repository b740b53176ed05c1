// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package policy

import (
	"strings"

	"github.com/petar-djukic/namefix/pkg/types"
)

// RepositoryPrefix prepends the default technology prefix to repository
// implementations that carry no recognized prefix: OrderRepository
// becomes EloquentOrderRepository, while RedisOrderRepository is left
// alone.
//
// Implements: prd003-policy-catalog R3.2.
type RepositoryPrefix struct {
	Scope         []string
	Prefixes      []string // Recognized technology prefixes
	DefaultPrefix string   // Applied when no recognized prefix is present
}

func (p *RepositoryPrefix) Name() string { return "repository-prefix" }

func (p *RepositoryPrefix) AppliesTo(modulePath string) bool {
	return scope(p.Scope).matches(modulePath)
}

func (p *RepositoryPrefix) TryRename(d *types.Declaration, ctx Context) (string, bool) {
	if !p.AppliesTo(d.ModulePath) {
		return "", false
	}
	// Interfaces name the contract, not an implementation.
	if d.Kind == types.Interface {
		return "", false
	}
	return p.RewriteName(d.ShortName)
}

func (p *RepositoryPrefix) RewriteName(name string) (string, bool) {
	if !strings.HasSuffix(name, "Repository") || name == "Repository" {
		return "", false
	}
	if hasAnyPrefix(name, p.recognized()) {
		return "", false
	}
	return p.DefaultPrefix + name, true
}

// recognized returns the prefix set including the default prefix, so
// the transform is a fixed point on its own output.
func (p *RepositoryPrefix) recognized() []string {
	for _, pre := range p.Prefixes {
		if pre == p.DefaultPrefix {
			return p.Prefixes
		}
	}
	return append([]string{p.DefaultPrefix}, p.Prefixes...)
}
