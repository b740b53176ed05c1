// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package policy

import (
	"unicode"

	"github.com/petar-djukic/namefix/pkg/types"
)

// CommandVerb normalizes the leading verb of command and use-case
// names. A literal-override table is consulted before the general
// decomposition: the name is split into a leading verb and trailing
// noun, the verb is recomposed through the verb table
// (Get/Fetch/Retrieve become Find, and so on), and an unrecognized
// leading verb falls back to the Handle prefix. Names already starting
// with a canonical verb are fixed points.
//
// Implements: prd003-policy-catalog R3.4.
type CommandVerb struct {
	Scope     []string
	Overrides map[string]string // Literal old name -> new name, checked first
}

func (p *CommandVerb) Name() string { return "command-verb" }

func (p *CommandVerb) AppliesTo(modulePath string) bool {
	return scope(p.Scope).matches(modulePath)
}

func (p *CommandVerb) TryRename(d *types.Declaration, ctx Context) (string, bool) {
	if !p.AppliesTo(d.ModulePath) {
		return "", false
	}
	return p.RewriteName(d.ShortName)
}

func (p *CommandVerb) RewriteName(name string) (string, bool) {
	if newName, ok := p.Overrides[name]; ok {
		if newName == name {
			return "", false
		}
		return newName, true
	}

	verb, noun := splitLeadingVerb(name)
	if verb == "" || noun == "" {
		return "", false
	}

	for _, canonical := range canonicalVerbs {
		if verb == canonical {
			return "", false
		}
	}

	if canonical, ok := verbTable[verb]; ok {
		return canonical + noun, true
	}
	return "Handle" + name, true
}

// splitLeadingVerb splits a CamelCase name at the second uppercase
// rune: "GetUser" yields ("Get", "User"). Returns empty strings when
// the name has no second word, or when the leading word is a single
// rune: "ID" is an initialism, not a verb.
func splitLeadingVerb(name string) (verb, noun string) {
	runes := []rune(name)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return "", ""
	}
	for i := 1; i < len(runes); i++ {
		if unicode.IsUpper(runes[i]) {
			if i < 2 {
				return "", ""
			}
			return string(runes[:i]), string(runes[i:])
		}
	}
	return "", ""
}
