// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/namefix/pkg/types"
)

// ErrUnsupported is returned for files no language spec covers.
var ErrUnsupported = errors.New("unsupported file type")

// ParseFile reads and parses one file into the source model. relPath is
// slash-separated and relative to root.
//
// Implements: prd002-source-model R1.1, R1.2.
func ParseFile(ctx context.Context, root, relPath string) (*types.SourceFile, error) {
	spec := SpecForExt(path.Ext(relPath))
	if spec == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, relPath)
	}

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", relPath, err)
	}

	return Parse(ctx, spec, content, relPath)
}

// Parse builds the source model from already-loaded content.
func Parse(ctx context.Context, spec *Spec, content []byte, relPath string) (*types.SourceFile, error) {
	node, err := sitter.ParseCtx(ctx, content, spec.Language)
	if err != nil || node == nil {
		return nil, fmt.Errorf("parsing %s: %w", relPath, err)
	}

	decls, refs := spec.Extract(node, content, relPath)
	return &types.SourceFile{
		Path:    relPath,
		Lang:    spec.Name,
		Content: content,
		Decls:   decls,
		Refs:    refs,
	}, nil
}
