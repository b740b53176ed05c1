// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package source

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/namefix/pkg/types"
)

// importSubtrees are statement node types handled by the per-language
// import extraction; the usage walk does not descend into them.
var importSubtrees = map[string]bool{
	"import_statement":        true,
	"import_from_statement":   true,
	"future_import_statement": true,
}

// collectUsages walks the tree and records a usage or call reference
// site for every identifier that resolves through the file's local
// names (imports, aliases, same-file declarations). The filter hook
// lets a language reject identifier positions that are not usage sites
// (attribute members, keyword argument names).
func collectUsages(root *sitter.Node, src []byte, relPath string, local map[string]localTarget, declNames map[types.Span]bool, filter func(*sitter.Node, []byte) bool) []*types.ReferenceSite {
	var refs []*types.ReferenceSite

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if importSubtrees[n.Type()] {
			return
		}
		if n.Type() == "identifier" || n.Type() == "type_identifier" {
			if ref := usageRef(n, src, relPath, local, declNames, filter); ref != nil {
				refs = append(refs, ref)
			}
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)

	return refs
}

// usageRef builds a reference site for one identifier node, or nil when
// the identifier is a declaration name, unresolvable, or filtered out.
func usageRef(n *sitter.Node, src []byte, relPath string, local map[string]localTarget, declNames map[types.Span]bool, filter func(*sitter.Node, []byte) bool) *types.ReferenceSite {
	span := nodeSpan(n)
	if declNames[span] {
		return nil
	}

	name := nodeText(n, src)
	target, ok := local[name]
	if !ok {
		return nil
	}
	if filter != nil && !filter(n, src) {
		return nil
	}

	ref := &types.ReferenceSite{
		ReferencedName: name,
		FilePath:       relPath,
		Kind:           types.RefUsage,
		TargetFQN:      target.fqn,
		ViaAlias:       target.viaAlias,
		NameSpan:       span,
	}

	if parent := n.Parent(); parent != nil && isCallee(parent, span) {
		ref.Kind = types.RefCall
		if args := parent.ChildByFieldName("arguments"); args != nil {
			ref.ArgSpans = positionalArgs(args)
		}
	}

	return ref
}

// isCallee reports whether the node at span is the called expression of
// its parent (a call or constructor invocation).
func isCallee(parent *sitter.Node, span types.Span) bool {
	switch parent.Type() {
	case "call", "call_expression":
		if fn := parent.ChildByFieldName("function"); fn != nil {
			return nodeSpan(fn) == span
		}
	case "new_expression":
		if ctor := parent.ChildByFieldName("constructor"); ctor != nil {
			return nodeSpan(ctor) == span
		}
	}
	return false
}

// positionalArgs returns the spans of an argument list's positional
// arguments, in order. Keyword arguments are already named and skipped.
func positionalArgs(args *sitter.Node) []types.Span {
	var spans []types.Span
	for i := 0; i < int(args.NamedChildCount()); i++ {
		a := args.NamedChild(i)
		switch a.Type() {
		case "keyword_argument", "comment":
			continue
		}
		spans = append(spans, nodeSpan(a))
	}
	return spans
}
