// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-source-model R2.8 (JavaScript/TypeScript).
package source

import (
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/namefix/pkg/types"
)

// jsExts are the extensions stripped from import specifiers when
// resolving them to module paths.
var jsExts = map[string]bool{".js": true, ".mjs": true, ".ts": true}

// extractJS builds the model for one JavaScript or TypeScript file:
// top-level class and interface declarations (exported or not), import
// entries with aliases, and usage sites resolved through them.
func extractJS(root *sitter.Node, src []byte, relPath string) ([]*types.Declaration, []*types.ReferenceSite) {
	modulePath := moduleOf(relPath)

	var decls []*types.Declaration
	var refs []*types.ReferenceSite
	local := make(map[string]localTarget)
	declNames := make(map[types.Span]bool)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() == "export_statement" {
			if decl := stmt.ChildByFieldName("declaration"); decl != nil {
				stmt = decl
			}
		}
		switch stmt.Type() {
		case "class_declaration", "abstract_class_declaration":
			d := jsClass(stmt, src, relPath, modulePath)
			if d == nil {
				continue
			}
			decls = append(decls, d)
			local[d.ShortName] = localTarget{fqn: d.FQN()}
			declNames[d.NameSpan] = true
		case "interface_declaration":
			nameNode := stmt.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			d := &types.Declaration{
				ShortName:  nodeText(nameNode, src),
				ModulePath: modulePath,
				Kind:       types.Interface,
				FilePath:   relPath,
				NameSpan:   nodeSpan(nameNode),
			}
			decls = append(decls, d)
			local[d.ShortName] = localTarget{fqn: d.FQN()}
			declNames[d.NameSpan] = true
		case "import_statement":
			for _, ref := range jsImports(stmt, src, relPath) {
				refs = append(refs, ref)
				name := ref.ReferencedName
				via := false
				if ref.HasAlias() {
					name = ref.Alias
					via = true
				}
				local[name] = localTarget{fqn: ref.TargetFQN, viaAlias: via}
			}
		}
	}

	refs = append(refs, collectUsages(root, src, relPath, local, declNames, nil)...)
	return decls, refs
}

// jsClass extracts one class declaration, detecting abstractness and
// the extended base class.
func jsClass(node *sitter.Node, src []byte, relPath, modulePath string) *types.Declaration {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	d := &types.Declaration{
		ShortName:  nodeText(nameNode, src),
		ModulePath: modulePath,
		Kind:       types.Class,
		FilePath:   relPath,
		NameSpan:   nodeSpan(nameNode),
	}
	if node.Type() == "abstract_class_declaration" {
		d.IsAbstract = true
	} else {
		for i := 0; i < int(node.ChildCount()); i++ {
			if nodeText(node.Child(i), src) == "abstract" {
				d.IsAbstract = true
				break
			}
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() == "class_heritage" {
			d.Parent = firstIdentifierText(c, src)
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			m := body.NamedChild(i)
			if m.Type() != "method_definition" {
				continue
			}
			if mn := m.ChildByFieldName("name"); mn != nil && nodeText(mn, src) == "constructor" {
				d.Params = jsParams(m, src)
			}
		}
	}

	return d
}

// jsParams returns ordered constructor parameter names. Rest parameters
// defeat recomposition and yield nil.
func jsParams(method *sitter.Node, src []byte) []string {
	paramsNode := method.ChildByFieldName("parameters")
	if paramsNode == nil {
		return nil
	}

	var params []string
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		p := paramsNode.NamedChild(i)
		if p.Type() == "rest_pattern" || strings.Contains(nodeText(p, src), "...") {
			return nil
		}
		id := p
		if p.Type() != "identifier" {
			id = firstIdentifier(p)
			if id == nil {
				continue
			}
		}
		params = append(params, nodeText(id, src))
	}
	return params
}

// jsImports extracts the reference sites of one import statement:
// default imports and named imports with optional aliases.
func jsImports(stmt *sitter.Node, src []byte, relPath string) []*types.ReferenceSite {
	sourceNode := stmt.ChildByFieldName("source")
	if sourceNode == nil {
		return nil
	}
	frag := stringFragment(sourceNode)
	if frag == nil {
		return nil
	}
	raw := nodeText(frag, src)
	modPath, baseName, moduleSpan := jsModulePath(raw, nodeSpan(frag), relPath)

	build := func(nameNode, aliasNode *sitter.Node) *types.ReferenceSite {
		name := nodeText(nameNode, src)
		ref := &types.ReferenceSite{
			ReferencedName: name,
			FilePath:       relPath,
			Kind:           types.RefImport,
			NameSpan:       nodeSpan(nameNode),
		}
		if baseName == name {
			ref.TargetFQN = modPath
			ref.ModuleSpan = moduleSpan
		} else {
			ref.TargetFQN = types.JoinFQN(modPath, name)
		}
		if aliasNode != nil {
			ref.Alias = nodeText(aliasNode, src)
			ref.AliasSpan = nodeSpan(aliasNode)
		}
		return ref
	}

	var refs []*types.ReferenceSite
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		clause := stmt.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			c := clause.NamedChild(j)
			switch c.Type() {
			case "identifier":
				// Default import.
				refs = append(refs, build(c, nil))
			case "named_imports":
				for k := 0; k < int(c.NamedChildCount()); k++ {
					spec := c.NamedChild(k)
					if spec.Type() != "import_specifier" {
						continue
					}
					nameNode := spec.ChildByFieldName("name")
					if nameNode == nil {
						continue
					}
					refs = append(refs, build(nameNode, spec.ChildByFieldName("alias")))
				}
			}
		}
	}
	return refs
}

// jsModulePath resolves an import specifier to a slash path from the
// tree root, its final segment (extension stripped), and the byte span
// of that segment inside the string literal.
func jsModulePath(raw string, fragSpan types.Span, relPath string) (string, string, types.Span) {
	idx := strings.LastIndex(raw, "/")
	lastRaw := raw[idx+1:]
	ext := path.Ext(lastRaw)
	if !jsExts[ext] {
		ext = ""
	}
	base := strings.TrimSuffix(lastRaw, ext)

	var resolved string
	if strings.HasPrefix(raw, ".") {
		resolved = path.Clean(path.Join(moduleOf(relPath), strings.TrimSuffix(raw, ext)))
	} else {
		resolved = path.Clean(strings.TrimSuffix(raw, ext))
	}

	span := types.Span{
		Start: fragSpan.Start + idx + 1,
		End:   fragSpan.Start + idx + 1 + len(base),
	}
	return resolved, base, span
}

// stringFragment returns the string_fragment child of a string literal.
func stringFragment(str *sitter.Node) *sitter.Node {
	for i := 0; i < int(str.NamedChildCount()); i++ {
		if c := str.NamedChild(i); c.Type() == "string_fragment" {
			return c
		}
	}
	return nil
}

// firstIdentifier returns the first identifier descendant of n.
func firstIdentifier(n *sitter.Node) *sitter.Node {
	if n.Type() == "identifier" || n.Type() == "type_identifier" {
		return n
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if found := firstIdentifier(n.NamedChild(i)); found != nil {
			return found
		}
	}
	return nil
}

// firstIdentifierText returns the text of the first identifier
// descendant of n, "" if none.
func firstIdentifierText(n *sitter.Node, src []byte) string {
	if id := firstIdentifier(n); id != nil {
		return nodeText(id, src)
	}
	return ""
}
