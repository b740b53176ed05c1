// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-run-driver R3 (dry-run preview).
package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/namefix/internal/planner"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	removeColor = color.New(color.FgRed)
	insertColor = color.New(color.FgGreen)
	moveColor   = color.New(color.FgYellow)
)

// printDiff writes a line-oriented diff of one file's pending changes.
func printDiff(w io.Writer, path, before, after string) {
	if before == after {
		return
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	headerColor.Fprintf(w, "--- %s\n", path)
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		prefix, c := "+", insertColor
		if d.Type == diffmatchpatch.DiffDelete {
			prefix, c = "-", removeColor
		}
		for _, line := range splitLines(d.Text) {
			c.Fprintf(w, "%s %s\n", prefix, line)
		}
	}
}

// printPlan writes the pending file moves.
func printPlan(w io.Writer, moves []planner.Move) {
	if len(moves) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, m := range moves {
		moveColor.Fprintf(w, "move %s -> %s\n", m.OldPath, m.NewPath)
	}
}

// splitLines splits text into lines, dropping a trailing empty line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
