// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Span is a half-open byte range [Start, End) within a file's content.
type Span struct {
	Start int
	End   int
}

// IsZero reports whether the span is unset.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Edit replaces the bytes covered by Span with Text. An insertion is an
// edit with Start == End.
type Edit struct {
	Span Span
	Text string
}

// SourceFile holds the parsed model of one source file: its original
// content, the declarations and reference sites found in it, and the
// span edits accumulated against the original content. Spans always
// address the original Content; edits never overlap.
//
// Implements: prd002-source-model R1.1-R1.5.
type SourceFile struct {
	Path    string // Relative to the tree root
	Lang    string // Language name ("python", "go", ...)
	Content []byte // Original file content
	Decls   []*Declaration
	Refs    []*ReferenceSite
	Edits   []Edit
}

// AddEdit records a span edit against the original content.
func (f *SourceFile) AddEdit(span Span, text string) {
	f.Edits = append(f.Edits, Edit{Span: span, Text: text})
}

// Dirty reports whether the file has pending edits.
func (f *SourceFile) Dirty() bool {
	return len(f.Edits) > 0
}
