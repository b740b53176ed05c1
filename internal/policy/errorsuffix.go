// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package policy

import (
	"strings"

	"github.com/petar-djukic/namefix/pkg/types"
)

// ErrorSuffix gives declarations under error module paths an "Error"
// suffix: OrderNotFound becomes OrderNotFoundError.
//
// Implements: prd003-policy-catalog R3.5.
type ErrorSuffix struct {
	Scope []string
}

func (p *ErrorSuffix) Name() string { return "error-suffix" }

func (p *ErrorSuffix) AppliesTo(modulePath string) bool {
	return scope(p.Scope).matches(modulePath)
}

func (p *ErrorSuffix) TryRename(d *types.Declaration, ctx Context) (string, bool) {
	if !p.AppliesTo(d.ModulePath) {
		return "", false
	}
	if d.Kind != types.Class {
		return "", false
	}
	return p.RewriteName(d.ShortName)
}

func (p *ErrorSuffix) RewriteName(name string) (string, bool) {
	if strings.HasSuffix(name, "Error") || strings.HasSuffix(name, "Exception") {
		return "", false
	}
	return name + "Error", true
}
