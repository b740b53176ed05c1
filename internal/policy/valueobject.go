// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package policy

import (
	"strings"

	"github.com/petar-djukic/namefix/pkg/types"
)

// ValueObjectSuffix strips a redundant "Value" suffix from declarations
// under value-object module paths: MoneyValue becomes Money. Names
// ending in "Id" are exempt, as are names that are nothing but the
// suffix.
//
// Implements: prd003-policy-catalog R3.1.
type ValueObjectSuffix struct {
	Scope []string
}

func (p *ValueObjectSuffix) Name() string { return "value-object-suffix" }

func (p *ValueObjectSuffix) AppliesTo(modulePath string) bool {
	return scope(p.Scope).matches(modulePath)
}

func (p *ValueObjectSuffix) TryRename(d *types.Declaration, ctx Context) (string, bool) {
	if !p.AppliesTo(d.ModulePath) {
		return "", false
	}
	return p.RewriteName(d.ShortName)
}

func (p *ValueObjectSuffix) RewriteName(name string) (string, bool) {
	if strings.HasSuffix(name, "Id") {
		return "", false
	}
	if !strings.HasSuffix(name, "Value") || len(name) == len("Value") {
		return "", false
	}
	return strings.TrimSuffix(name, "Value"), true
}
