// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-source-model R3.
package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/petar-djukic/namefix/pkg/types"
)

// Render applies the file's accumulated span edits to its original
// content. Edits address the original content and must not overlap;
// overlap indicates a coordination bug and is reported, never silently
// resolved.
//
// Implements: prd002-source-model R3.1, R3.2.
func Render(f *types.SourceFile) ([]byte, error) {
	if !f.Dirty() {
		return f.Content, nil
	}

	edits := make([]types.Edit, len(f.Edits))
	copy(edits, f.Edits)
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Span.Start != edits[j].Span.Start {
			return edits[i].Span.Start < edits[j].Span.Start
		}
		return edits[i].Span.End < edits[j].Span.End
	})

	var buf bytes.Buffer
	cursor := 0
	for _, e := range edits {
		if e.Span.Start < cursor {
			return nil, fmt.Errorf("overlapping edits in %s at byte %d", f.Path, e.Span.Start)
		}
		if e.Span.End > len(f.Content) {
			return nil, fmt.Errorf("edit past end of %s at byte %d", f.Path, e.Span.End)
		}
		buf.Write(f.Content[cursor:e.Span.Start])
		buf.WriteString(e.Text)
		cursor = e.Span.End
	}
	buf.Write(f.Content[cursor:])

	return buf.Bytes(), nil
}

// WriteFile renders the file and writes it back to its current path
// under root, atomically: temp file in the same directory, then rename.
// The original file's permissions are preserved.
//
// Implements: prd002-source-model R3.3, R3.4.
func WriteFile(root string, f *types.SourceFile) error {
	data, err := Render(f)
	if err != nil {
		return err
	}
	return atomicWrite(filepath.Join(root, filepath.FromSlash(f.Path)), data)
}

// atomicWrite writes data to a temp file in the target's directory,
// then renames it over the target. This prevents partial writes from
// corrupting files.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".namefix-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	return nil
}
