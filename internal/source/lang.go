// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package source is the parser/printer boundary: it builds the
// in-memory model (declarations and reference sites with byte spans)
// from source files via tree-sitter, and serializes accumulated span
// edits back to disk.
// Implements: prd002-source-model R1, R2, R3;
//
//	docs/ARCHITECTURE § Source Model.
package source

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/petar-djukic/namefix/pkg/types"
)

// Spec binds a tree-sitter grammar to the extraction routine that
// builds the model for that language.
type Spec struct {
	Name     string
	Exts     []string
	Language *sitter.Language
	Extract  func(root *sitter.Node, src []byte, relPath string) ([]*types.Declaration, []*types.ReferenceSite)
}

// specs is the supported language set. TypeScript shares the
// JavaScript extraction routine; the grammars differ.
var specs = []*Spec{
	{
		Name:     "python",
		Exts:     []string{".py"},
		Language: python.GetLanguage(),
		Extract:  extractPython,
	},
	{
		Name:     "go",
		Exts:     []string{".go"},
		Language: golang.GetLanguage(),
		Extract:  extractGo,
	},
	{
		Name:     "javascript",
		Exts:     []string{".js", ".mjs"},
		Language: javascript.GetLanguage(),
		Extract:  extractJS,
	},
	{
		Name:     "typescript",
		Exts:     []string{".ts"},
		Language: typescript.GetLanguage(),
		Extract:  extractJS,
	},
}

// SpecForExt returns the language spec for a file extension, or nil
// when the extension is unsupported.
func SpecForExt(ext string) *Spec {
	for _, s := range specs {
		for _, e := range s.Exts {
			if e == ext {
				return s
			}
		}
	}
	return nil
}

// nodeSpan converts a tree-sitter node's byte range to a model span.
func nodeSpan(n *sitter.Node) types.Span {
	return types.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

// nodeText returns the node's source text.
func nodeText(n *sitter.Node, src []byte) string {
	return n.Content(src)
}
