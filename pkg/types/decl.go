// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across namefix packages.
// Implements: prd001-rename-core R5 (shared types).
package types

// DeclKind identifies the category of a top-level type declaration.
type DeclKind int

const (
	Class     DeclKind = iota // Concrete class (struct, class)
	Interface                 // Interface declaration
	Alias                     // Type alias or other type definition
)

// String returns the human-readable name of the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case Class:
		return "Class"
	case Interface:
		return "Interface"
	case Alias:
		return "Alias"
	default:
		return "Unknown"
	}
}

// Declaration represents a named top-level type declaration in a source
// file. The coordinator mutates ShortName in place when the declaration
// is renamed; ModulePath never changes.
//
// Implements: prd001-rename-core R1.1-R1.4.
type Declaration struct {
	ShortName  string   // Current short name
	ModulePath string   // Slash-separated directory path relative to the tree root ("" at root)
	Kind       DeclKind // Category (class, interface, alias)
	IsAbstract bool     // True for abstract classes and interfaces
	Parent     string   // Base type name, "" if none
	FilePath   string   // Hosting file, relative to the tree root
	NameSpan   Span     // Byte span of the declared name in the file
	Params     []string // Ordered constructor parameter names, nil if unknown
}

// FQN returns the declaration's fully qualified name: module path plus
// short name. The FQN is the stable identity used for cross-file
// reference repair.
func (d *Declaration) FQN() string {
	return JoinFQN(d.ModulePath, d.ShortName)
}

// JoinFQN composes a fully qualified name from a module path and a short
// name.
func JoinFQN(modulePath, shortName string) string {
	if modulePath == "" {
		return shortName
	}
	return modulePath + "/" + shortName
}

// SplitFQN decomposes a fully qualified name into its module path and
// short name.
func SplitFQN(fqn string) (modulePath, shortName string) {
	for i := len(fqn) - 1; i >= 0; i-- {
		if fqn[i] == '/' {
			return fqn[:i], fqn[i+1:]
		}
	}
	return "", fqn
}

// RenameRecord describes one successful declaration rename. It is
// produced once per rename and consumed by the rename registry (FQNs)
// and the file rename planner (paths).
//
// Implements: prd001-rename-core R1.5.
type RenameRecord struct {
	OldFQN  string // Fully qualified name before the rename
	NewFQN  string // Fully qualified name after the rename
	OldPath string // Hosting file before the move ("" if no move planned)
	NewPath string // Hosting file after the move ("" if no move planned)
}
