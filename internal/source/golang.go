// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-source-model R2.7 (Go).
package source

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/namefix/pkg/types"
)

// extractGo builds the model for one Go file: top-level type
// declarations and bare type-identifier usages. Package files share a
// namespace, so usages resolve speculatively to the file's own
// directory; the registry decides later whether a usage actually
// targets a renamed declaration. Qualified (cross-package) types are
// out of scope.
func extractGo(root *sitter.Node, src []byte, relPath string) ([]*types.Declaration, []*types.ReferenceSite) {
	modulePath := moduleOf(relPath)

	var decls []*types.Declaration
	declNames := make(map[types.Span]bool)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		if n.Type() != "type_declaration" {
			continue
		}
		for j := 0; j < int(n.NamedChildCount()); j++ {
			spec := n.NamedChild(j)
			if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
				continue
			}
			nameNode := spec.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			d := &types.Declaration{
				ShortName:  nodeText(nameNode, src),
				ModulePath: modulePath,
				Kind:       goKind(spec),
				FilePath:   relPath,
				NameSpan:   nodeSpan(nameNode),
			}
			d.IsAbstract = d.Kind == types.Interface
			decls = append(decls, d)
			declNames[d.NameSpan] = true
		}
	}

	var refs []*types.ReferenceSite
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "type_identifier" {
			span := nodeSpan(n)
			if declNames[span] {
				return
			}
			if parent := n.Parent(); parent != nil && parent.Type() == "qualified_type" {
				return
			}
			name := nodeText(n, src)
			refs = append(refs, &types.ReferenceSite{
				ReferencedName: name,
				FilePath:       relPath,
				Kind:           types.RefUsage,
				TargetFQN:      types.JoinFQN(modulePath, name),
				NameSpan:       span,
			})
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)

	return decls, refs
}

// goKind maps a type spec to a declaration kind.
func goKind(spec *sitter.Node) types.DeclKind {
	t := spec.ChildByFieldName("type")
	if t == nil {
		return types.Alias
	}
	switch t.Type() {
	case "struct_type":
		return types.Class
	case "interface_type":
		return types.Interface
	default:
		return types.Alias
	}
}
