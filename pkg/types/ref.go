// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// RefKind identifies the category of a reference site.
type RefKind int

const (
	RefImport RefKind = iota // Import/use entry, possibly aliased
	RefUsage                 // Bare type-name usage
	RefCall                  // Constructor call expression
)

// String returns the human-readable name of the reference kind.
func (k RefKind) String() string {
	switch k {
	case RefImport:
		return "Import"
	case RefUsage:
		return "Usage"
	case RefCall:
		return "Call"
	default:
		return "Unknown"
	}
}

// ReferenceSite represents an occurrence referring to a declaration by
// name: an import entry (with optional alias) or a bare type usage.
// Reference sites are rewritten in place, either eagerly by the
// coordinator within the file being edited, or later by the cross-file
// fixer using the rename registry.
//
// Implements: prd001-rename-core R2.1-R2.4.
type ReferenceSite struct {
	ReferencedName string  // Current referenced short name
	Alias          string  // Local alias, "" if none
	FilePath       string  // Owning file, relative to the tree root
	Kind           RefKind // Import, usage, or call
	TargetFQN      string  // Resolved target declaration, "" if unresolved
	ViaAlias       bool    // True when the site uses a local alias; its text follows the alias, not the target name
	NameSpan       Span    // Byte span of the referenced name
	AliasSpan      Span    // Byte span of the alias, zero if none
	ModuleSpan     Span    // Byte span of the trailing import-path segment that names the hosting file, zero if none
	ArgSpans       []Span  // Positional argument spans for calls, nil otherwise
}

// HasAlias reports whether the reference carries a local alias.
func (r *ReferenceSite) HasAlias() bool {
	return r.Alias != ""
}
