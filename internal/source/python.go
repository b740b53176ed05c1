// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-source-model R2.1-R2.6 (Python).
package source

import (
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/namefix/pkg/types"
)

// localTarget records what a local name in a file resolves to.
type localTarget struct {
	fqn      string
	viaAlias bool
}

// extractPython builds the model for one Python file: top-level class
// definitions (with abstractness and constructor parameters), from-import
// entries, and name usage sites resolved through those imports or
// same-file classes.
func extractPython(root *sitter.Node, src []byte, relPath string) ([]*types.Declaration, []*types.ReferenceSite) {
	modulePath := moduleOf(relPath)

	var decls []*types.Declaration
	var refs []*types.ReferenceSite
	local := make(map[string]localTarget)
	declNames := make(map[types.Span]bool)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() == "decorated_definition" {
			if def := stmt.ChildByFieldName("definition"); def != nil {
				stmt = def
			}
		}
		switch stmt.Type() {
		case "class_definition":
			d := pythonClass(stmt, src, relPath, modulePath)
			if d == nil {
				continue
			}
			decls = append(decls, d)
			local[d.ShortName] = localTarget{fqn: d.FQN()}
			declNames[d.NameSpan] = true
		case "import_from_statement":
			imports := pythonImports(stmt, src, relPath)
			for _, ref := range imports {
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

	refs = append(refs, collectUsages(root, src, relPath, local, declNames, pythonUsageFilter)...)
	return decls, refs
}

// pythonClass extracts one class definition.
func pythonClass(node *sitter.Node, src []byte, relPath, modulePath string) *types.Declaration {
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

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			base := supers.NamedChild(i)
			text := nodeText(base, src)
			switch base.Type() {
			case "identifier":
				if text == "ABC" {
					d.IsAbstract = true
				} else if d.Parent == "" {
					d.Parent = text
				}
			case "attribute":
				if strings.HasSuffix(text, ".ABC") {
					d.IsAbstract = true
				} else if d.Parent == "" {
					if idx := strings.LastIndex(text, "."); idx >= 0 {
						d.Parent = text[idx+1:]
					}
				}
			case "keyword_argument":
				if strings.Contains(text, "ABCMeta") {
					d.IsAbstract = true
				}
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			decorated := member.Type() == "decorated_definition"
			if decorated {
				if strings.Contains(nodeText(member, src), "abstractmethod") {
					d.IsAbstract = true
				}
				if def := member.ChildByFieldName("definition"); def != nil {
					member = def
				}
			}
			if member.Type() != "function_definition" {
				continue
			}
			if fnName := member.ChildByFieldName("name"); fnName != nil && nodeText(fnName, src) == "__init__" {
				d.Params = pythonParams(member, src)
			}
		}
	}

	return d
}

// pythonParams returns the ordered __init__ parameter names, skipping
// self. Splat parameters defeat positional-to-keyword recomposition, so
// their presence yields nil (no information, fail soft).
func pythonParams(fn *sitter.Node, src []byte) []string {
	paramsNode := fn.ChildByFieldName("parameters")
	if paramsNode == nil {
		return nil
	}

	var params []string
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		p := paramsNode.NamedChild(i)
		var id *sitter.Node
		switch p.Type() {
		case "identifier":
			id = p
		case "typed_parameter":
			for j := 0; j < int(p.NamedChildCount()); j++ {
				if c := p.NamedChild(j); c.Type() == "identifier" {
					id = c
					break
				}
			}
		case "default_parameter", "typed_default_parameter":
			id = p.ChildByFieldName("name")
		case "list_splat_pattern", "dictionary_splat_pattern":
			return nil
		default:
			continue
		}
		if id == nil {
			continue
		}
		if name := nodeText(id, src); name != "self" {
			params = append(params, name)
		}
	}
	return params
}

// pythonImports extracts the reference sites of one from-import
// statement: one per imported name, with alias and the span of the
// import-path segment naming the hosting file (when the one-type-per-
// file convention makes them coincide).
func pythonImports(stmt *sitter.Node, src []byte, relPath string) []*types.ReferenceSite {
	moduleNode := stmt.ChildByFieldName("module_name")
	if moduleNode == nil {
		return nil
	}
	modPath, lastSeg, lastSegSpan := pythonModulePath(moduleNode, src, relPath)

	var refs []*types.ReferenceSite
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		child := stmt.NamedChild(i)
		if nodeSpan(child) == nodeSpan(moduleNode) {
			continue
		}

		var nameNode, aliasNode *sitter.Node
		switch child.Type() {
		case "dotted_name":
			nameNode = lastIdentifier(child)
		case "aliased_import":
			if n := child.ChildByFieldName("name"); n != nil {
				nameNode = lastIdentifier(n)
			}
			aliasNode = child.ChildByFieldName("alias")
		default:
			continue
		}
		if nameNode == nil {
			continue
		}

		name := nodeText(nameNode, src)
		ref := &types.ReferenceSite{
			ReferencedName: name,
			FilePath:       relPath,
			Kind:           types.RefImport,
			NameSpan:       nodeSpan(nameNode),
		}
		if lastSeg == name {
			// The final module segment names the hosting file; a rename
			// of the declaration renames it too.
			ref.TargetFQN = modPath
			ref.ModuleSpan = lastSegSpan
		} else {
			ref.TargetFQN = types.JoinFQN(modPath, name)
		}
		if aliasNode != nil {
			ref.Alias = nodeText(aliasNode, src)
			ref.AliasSpan = nodeSpan(aliasNode)
		}
		refs = append(refs, ref)
	}
	return refs
}

// pythonModulePath resolves a from-import module node (dotted or
// relative) to a slash-separated path from the tree root, plus the text
// and span of its final segment.
func pythonModulePath(moduleNode *sitter.Node, src []byte, relPath string) (string, string, types.Span) {
	switch moduleNode.Type() {
	case "dotted_name":
		var segments []string
		var last *sitter.Node
		for i := 0; i < int(moduleNode.NamedChildCount()); i++ {
			if c := moduleNode.NamedChild(i); c.Type() == "identifier" {
				segments = append(segments, nodeText(c, src))
				last = c
			}
		}
		if last == nil {
			return "", "", types.Span{}
		}
		return strings.Join(segments, "/"), nodeText(last, src), nodeSpan(last)
	case "relative_import":
		dots := 0
		var dotted *sitter.Node
		for i := 0; i < int(moduleNode.ChildCount()); i++ {
			c := moduleNode.Child(i)
			switch c.Type() {
			case "import_prefix":
				dots = len(nodeText(c, src))
			case "dotted_name":
				dotted = c
			}
		}
		base := moduleOf(relPath)
		for i := 1; i < dots; i++ {
			base = parentModule(base)
		}
		if dotted == nil {
			return base, "", types.Span{}
		}
		sub, lastSeg, span := pythonModulePath(dotted, src, relPath)
		return types.JoinFQN(base, sub), lastSeg, span
	default:
		return "", "", types.Span{}
	}
}

// pythonUsageFilter rejects identifier nodes that are not genuine
// usage sites: attribute members and keyword argument names.
func pythonUsageFilter(n *sitter.Node, src []byte) bool {
	parent := n.Parent()
	if parent == nil {
		return true
	}
	if parent.Type() == "attribute" {
		if attr := parent.ChildByFieldName("attribute"); attr != nil && nodeSpan(attr) == nodeSpan(n) {
			return false
		}
	}
	if parent.Type() == "keyword_argument" {
		if kw := parent.ChildByFieldName("name"); kw != nil && nodeSpan(kw) == nodeSpan(n) {
			return false
		}
	}
	return true
}

// lastIdentifier returns the final identifier child of a dotted_name.
func lastIdentifier(dotted *sitter.Node) *sitter.Node {
	var last *sitter.Node
	for i := 0; i < int(dotted.NamedChildCount()); i++ {
		if c := dotted.NamedChild(i); c.Type() == "identifier" {
			last = c
		}
	}
	if last == nil && dotted.Type() == "identifier" {
		return dotted
	}
	return last
}

// moduleOf returns the module path of a file: its directory relative to
// the tree root, "" at the root.
func moduleOf(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." {
		return ""
	}
	return dir
}

// parentModule returns the enclosing module path.
func parentModule(modulePath string) string {
	if modulePath == "" {
		return ""
	}
	dir := path.Dir(modulePath)
	if dir == "." {
		return ""
	}
	return dir
}
