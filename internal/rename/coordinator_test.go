// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package rename

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/namefix/internal/planner"
	"github.com/petar-djukic/namefix/internal/policy"
	"github.com/petar-djukic/namefix/internal/source"
	"github.com/petar-djukic/namefix/internal/table"
	"github.com/petar-djukic/namefix/pkg/types"
)

// stripSuffix is a minimal policy for coordinator tests: it removes a
// trailing suffix from names declared under a single module segment.
type stripSuffix struct {
	suffix  string
	segment string
}

func (p stripSuffix) Name() string { return "strip-" + strings.ToLower(p.suffix) }

func (p stripSuffix) AppliesTo(modulePath string) bool {
	for _, seg := range strings.Split(modulePath, "/") {
		if strings.EqualFold(seg, p.segment) {
			return true
		}
	}
	return false
}

func (p stripSuffix) TryRename(d *types.Declaration, _ policy.Context) (string, bool) {
	if !p.AppliesTo(d.ModulePath) {
		return "", false
	}
	return p.RewriteName(d.ShortName)
}

func (p stripSuffix) RewriteName(name string) (string, bool) {
	if len(name) > len(p.suffix) && strings.HasSuffix(name, p.suffix) {
		return strings.TrimSuffix(name, p.suffix), true
	}
	return "", false
}

// findSpan locates the nth occurrence of substr in content.
func findSpan(t *testing.T, content []byte, substr string, n int) types.Span {
	t.Helper()
	off := 0
	for i := 0; i < n; i++ {
		if i > 0 {
			off += len(substr)
		}
		idx := bytes.Index(content[off:], []byte(substr))
		require.GreaterOrEqual(t, idx, 0, "occurrence %d of %q not found", n, substr)
		off += idx
	}
	return types.Span{Start: off, End: off + len(substr)}
}

func newTestCoordinator(t *testing.T) (*Coordinator, *Registry, *planner.Planner, *table.DeclTable) {
	t.Helper()
	reg := NewRegistry()
	pl := planner.New(t.TempDir())
	tbl := table.New()
	return NewCoordinator(reg, pl, tbl), reg, pl, tbl
}

func TestApply_RenamesDeclarationAndPlansMove(t *testing.T) {
	content := []byte("class MoneyValue:\n    def __init__(self, amount, currency):\n        pass\n")
	d := &types.Declaration{
		ShortName:  "MoneyValue",
		ModulePath: "app/valueobject",
		Kind:       types.Class,
		FilePath:   "app/valueobject/MoneyValue.py",
		NameSpan:   findSpan(t, content, "MoneyValue", 1),
		Params:     []string{"amount", "currency"},
	}
	f := &types.SourceFile{Path: d.FilePath, Lang: "python", Content: content, Decls: []*types.Declaration{d}}

	c, reg, pl, tbl := newTestCoordinator(t)
	tbl.Add(d)

	rec, ok := c.Apply(stripSuffix{suffix: "Value", segment: "valueobject"}, d, f)
	require.True(t, ok)

	assert.Equal(t, types.RenameRecord{
		OldFQN:  "app/valueobject/MoneyValue",
		NewFQN:  "app/valueobject/Money",
		OldPath: "app/valueobject/MoneyValue.py",
		NewPath: "app/valueobject/Money.py",
	}, rec)

	assert.Equal(t, "Money", d.ShortName)
	newFQN, ok := reg.Lookup("app/valueobject/MoneyValue")
	require.True(t, ok)
	assert.Equal(t, "app/valueobject/Money", newFQN)

	_, ok = tbl.Lookup("app/valueobject/Money")
	assert.True(t, ok)
	_, ok = tbl.Lookup("app/valueobject/MoneyValue")
	assert.False(t, ok)

	require.Equal(t, 1, pl.Len())
	assert.Equal(t, planner.Move{
		OldPath: "app/valueobject/MoneyValue.py",
		NewPath: "app/valueobject/Money.py",
	}, pl.Planned()[0])

	rendered, err := source.Render(f)
	require.NoError(t, err)
	assert.Equal(t, "class Money:\n    def __init__(self, amount, currency):\n        pass\n", string(rendered))

	assert.Equal(t, 1, c.Stats().DeclsRenamed)
}

func TestApply_PolicyDeclines(t *testing.T) {
	content := []byte("class Money:\n    pass\n")
	d := &types.Declaration{
		ShortName:  "Money",
		ModulePath: "app/valueobject",
		FilePath:   "app/valueobject/Money.py",
		NameSpan:   findSpan(t, content, "Money", 1),
	}
	f := &types.SourceFile{Path: d.FilePath, Lang: "python", Content: content, Decls: []*types.Declaration{d}}

	c, reg, pl, tbl := newTestCoordinator(t)
	tbl.Add(d)

	_, ok := c.Apply(stripSuffix{suffix: "Value", segment: "valueobject"}, d, f)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, pl.Len())
	assert.False(t, f.Dirty())
}

func TestApply_OutOfScopeDeclines(t *testing.T) {
	content := []byte("class MoneyValue:\n    pass\n")
	d := &types.Declaration{
		ShortName:  "MoneyValue",
		ModulePath: "app/service",
		FilePath:   "app/service/MoneyValue.py",
		NameSpan:   findSpan(t, content, "MoneyValue", 1),
	}
	f := &types.SourceFile{Path: d.FilePath, Lang: "python", Content: content, Decls: []*types.Declaration{d}}

	c, _, _, tbl := newTestCoordinator(t)
	tbl.Add(d)

	_, ok := c.Apply(stripSuffix{suffix: "Value", segment: "valueobject"}, d, f)
	assert.False(t, ok)
	assert.Equal(t, "MoneyValue", d.ShortName)
}

func TestApply_SecondPolicyCannotRenameAgain(t *testing.T) {
	content := []byte("class MoneyValueValue:\n    pass\n")
	d := &types.Declaration{
		ShortName:  "MoneyValueValue",
		ModulePath: "app/valueobject",
		FilePath:   "app/valueobject/MoneyValueValue.py",
		NameSpan:   findSpan(t, content, "MoneyValueValue", 1),
	}
	f := &types.SourceFile{Path: d.FilePath, Lang: "python", Content: content, Decls: []*types.Declaration{d}}

	c, _, _, tbl := newTestCoordinator(t)
	tbl.Add(d)

	pol := stripSuffix{suffix: "Value", segment: "valueobject"}
	_, ok := c.Apply(pol, d, f)
	require.True(t, ok)
	assert.Equal(t, "MoneyValue", d.ShortName)

	// A later pass sees the declaration already handled this run.
	_, ok = c.Apply(pol, d, f)
	assert.False(t, ok)
	assert.Equal(t, "MoneyValue", d.ShortName)
}

func TestApply_NoMoveWhenFileDoesNotFollowConvention(t *testing.T) {
	content := []byte("class MoneyValue:\n    pass\n")
	d := &types.Declaration{
		ShortName:  "MoneyValue",
		ModulePath: "app/valueobject",
		FilePath:   "app/valueobject/values.py",
		NameSpan:   findSpan(t, content, "MoneyValue", 1),
	}
	f := &types.SourceFile{Path: d.FilePath, Lang: "python", Content: content, Decls: []*types.Declaration{d}}

	c, _, pl, tbl := newTestCoordinator(t)
	tbl.Add(d)

	rec, ok := c.Apply(stripSuffix{suffix: "Value", segment: "valueobject"}, d, f)
	require.True(t, ok)
	assert.Empty(t, rec.OldPath)
	assert.Empty(t, rec.NewPath)
	assert.Equal(t, 0, pl.Len())
}

func TestApply_EagerlyRewritesSameFileCallWithKeywordArgs(t *testing.T) {
	content := []byte("class MoneyValue:\n" +
		"    def __init__(self, amount, currency):\n" +
		"        pass\n\n" +
		"ZERO = MoneyValue(0, \"EUR\")\n")
	d := &types.Declaration{
		ShortName:  "MoneyValue",
		ModulePath: "app/valueobject",
		FilePath:   "app/valueobject/MoneyValue.py",
		NameSpan:   findSpan(t, content, "MoneyValue", 1),
		Params:     []string{"amount", "currency"},
	}
	call := &types.ReferenceSite{
		ReferencedName: "MoneyValue",
		FilePath:       d.FilePath,
		Kind:           types.RefCall,
		TargetFQN:      "app/valueobject/MoneyValue",
		NameSpan:       findSpan(t, content, "MoneyValue", 2),
		ArgSpans: []types.Span{
			findSpan(t, content, "0", 1),
			findSpan(t, content, `"EUR"`, 1),
		},
	}
	f := &types.SourceFile{
		Path:    d.FilePath,
		Lang:    "python",
		Content: content,
		Decls:   []*types.Declaration{d},
		Refs:    []*types.ReferenceSite{call},
	}

	c, _, _, tbl := newTestCoordinator(t)
	tbl.Add(d)

	_, ok := c.Apply(stripSuffix{suffix: "Value", segment: "valueobject"}, d, f)
	require.True(t, ok)

	assert.Equal(t, "app/valueobject/Money", call.TargetFQN)
	assert.Equal(t, "Money", call.ReferencedName)
	assert.Nil(t, call.ArgSpans)

	rendered, err := source.Render(f)
	require.NoError(t, err)
	assert.Equal(t, "class Money:\n"+
		"    def __init__(self, amount, currency):\n"+
		"        pass\n\n"+
		"ZERO = Money(amount=0, currency=\"EUR\")\n", string(rendered))

	stats := c.Stats()
	assert.Equal(t, 1, stats.RefsRewritten)
	assert.Equal(t, 2, stats.ArgsRecomposed)
}

func TestApply_RecomposeFailsSoftWithoutParams(t *testing.T) {
	content := []byte("class MoneyValue:\n    pass\n\nZERO = MoneyValue(0)\n")
	d := &types.Declaration{
		ShortName:  "MoneyValue",
		ModulePath: "app/valueobject",
		FilePath:   "app/valueobject/MoneyValue.py",
		NameSpan:   findSpan(t, content, "MoneyValue", 1),
	}
	call := &types.ReferenceSite{
		ReferencedName: "MoneyValue",
		FilePath:       d.FilePath,
		Kind:           types.RefCall,
		TargetFQN:      "app/valueobject/MoneyValue",
		NameSpan:       findSpan(t, content, "MoneyValue", 2),
		ArgSpans:       []types.Span{findSpan(t, content, "0", 1)},
	}
	f := &types.SourceFile{
		Path:    d.FilePath,
		Lang:    "python",
		Content: content,
		Decls:   []*types.Declaration{d},
		Refs:    []*types.ReferenceSite{call},
	}

	c, _, _, tbl := newTestCoordinator(t)
	tbl.Add(d)

	_, ok := c.Apply(stripSuffix{suffix: "Value", segment: "valueobject"}, d, f)
	require.True(t, ok)

	// Name repaired, arguments left positional.
	rendered, err := source.Render(f)
	require.NoError(t, err)
	assert.Equal(t, "class Money:\n    pass\n\nZERO = Money(0)\n", string(rendered))
	assert.Equal(t, 0, c.Stats().ArgsRecomposed)
}

func TestApply_RewritesSameFileSiblingMatchingPattern(t *testing.T) {
	// Renaming MoneyValue also repairs the import of CurrencyValue in
	// the same file: the sibling sits in the same activation scope and
	// will receive the same rename when its own declaration is visited.
	content := []byte("from app.valueobject.CurrencyValue import CurrencyValue\n\n" +
		"class MoneyValue:\n    pass\n")
	d := &types.Declaration{
		ShortName:  "MoneyValue",
		ModulePath: "app/valueobject",
		FilePath:   "app/valueobject/MoneyValue.py",
		NameSpan:   findSpan(t, content, "MoneyValue", 1),
	}
	imp := &types.ReferenceSite{
		ReferencedName: "CurrencyValue",
		FilePath:       d.FilePath,
		Kind:           types.RefImport,
		TargetFQN:      "app/valueobject/CurrencyValue",
		NameSpan:       findSpan(t, content, "CurrencyValue", 2),
		ModuleSpan:     findSpan(t, content, "CurrencyValue", 1),
	}
	f := &types.SourceFile{
		Path:    d.FilePath,
		Lang:    "python",
		Content: content,
		Decls:   []*types.Declaration{d},
		Refs:    []*types.ReferenceSite{imp},
	}

	c, _, _, tbl := newTestCoordinator(t)
	tbl.Add(d)
	tbl.Add(&types.Declaration{
		ShortName:  "CurrencyValue",
		ModulePath: "app/valueobject",
		Kind:       types.Class,
		FilePath:   "app/valueobject/CurrencyValue.py",
	})

	_, ok := c.Apply(stripSuffix{suffix: "Value", segment: "valueobject"}, d, f)
	require.True(t, ok)

	assert.Equal(t, "Currency", imp.ReferencedName)
	assert.Equal(t, "app/valueobject/Currency", imp.TargetFQN)

	rendered, err := source.Render(f)
	require.NoError(t, err)
	assert.Equal(t, "from app.valueobject.Currency import Currency\n\n"+
		"class Money:\n    pass\n", string(rendered))
}

func TestApply_OutOfScopeSiblingLeftAlone(t *testing.T) {
	content := []byte("from app.service.PaymentValue import PaymentValue\n\n" +
		"class MoneyValue:\n    pass\n")
	d := &types.Declaration{
		ShortName:  "MoneyValue",
		ModulePath: "app/valueobject",
		FilePath:   "app/valueobject/MoneyValue.py",
		NameSpan:   findSpan(t, content, "MoneyValue", 1),
	}
	imp := &types.ReferenceSite{
		ReferencedName: "PaymentValue",
		FilePath:       d.FilePath,
		Kind:           types.RefImport,
		TargetFQN:      "app/service/PaymentValue",
		NameSpan:       findSpan(t, content, "PaymentValue", 2),
		ModuleSpan:     findSpan(t, content, "PaymentValue", 1),
	}
	f := &types.SourceFile{
		Path:    d.FilePath,
		Lang:    "python",
		Content: content,
		Decls:   []*types.Declaration{d},
		Refs:    []*types.ReferenceSite{imp},
	}

	c, _, _, tbl := newTestCoordinator(t)
	tbl.Add(d)
	tbl.Add(&types.Declaration{
		ShortName:  "PaymentValue",
		ModulePath: "app/service",
		Kind:       types.Class,
		FilePath:   "app/service/PaymentValue.py",
	})

	_, ok := c.Apply(stripSuffix{suffix: "Value", segment: "valueobject"}, d, f)
	require.True(t, ok)

	assert.Equal(t, "PaymentValue", imp.ReferencedName)
	assert.Equal(t, "app/service/PaymentValue", imp.TargetFQN)
}

func TestApply_AliasedSiteKeepsLocalName(t *testing.T) {
	// A usage routed through an alias keeps its text when the target is
	// renamed: the alias still binds, only the identity moves.
	content := []byte("from app.valueobject.MoneyValue import MoneyValue as Cash\n\n" +
		"class MoneyValue:\n    pass\n\n" +
		"ZERO = Cash\n")
	d := &types.Declaration{
		ShortName:  "MoneyValue",
		ModulePath: "app/valueobject",
		FilePath:   "app/valueobject/MoneyValue.py",
		NameSpan:   findSpan(t, content, "MoneyValue", 3),
	}
	use := &types.ReferenceSite{
		ReferencedName: "Cash",
		FilePath:       d.FilePath,
		Kind:           types.RefUsage,
		TargetFQN:      "app/valueobject/MoneyValue",
		ViaAlias:       true,
		NameSpan:       findSpan(t, content, "Cash", 2),
	}
	f := &types.SourceFile{
		Path:    d.FilePath,
		Lang:    "python",
		Content: content,
		Decls:   []*types.Declaration{d},
		Refs:    []*types.ReferenceSite{use},
	}

	c, _, _, tbl := newTestCoordinator(t)
	tbl.Add(d)

	_, ok := c.Apply(stripSuffix{suffix: "Value", segment: "valueobject"}, d, f)
	require.True(t, ok)

	assert.Equal(t, "Cash", use.ReferencedName)
	assert.Equal(t, "app/valueobject/Money", use.TargetFQN)
}

func TestApply_AliasMatchingPatternRenamedWithItsUses(t *testing.T) {
	// The alias itself is subject to the convention. Renaming the host
	// file's declaration triggers the same transform on the alias and
	// every site in the file that spells it.
	content := []byte("from app.valueobject.CurrencyValue import CurrencyValue as UnitValue\n\n" +
		"class MoneyValue:\n    pass\n\n" +
		"DEFAULT = UnitValue\n")
	d := &types.Declaration{
		ShortName:  "MoneyValue",
		ModulePath: "app/valueobject",
		FilePath:   "app/valueobject/MoneyValue.py",
		NameSpan:   findSpan(t, content, "MoneyValue", 1),
	}
	imp := &types.ReferenceSite{
		ReferencedName: "CurrencyValue",
		Alias:          "UnitValue",
		FilePath:       d.FilePath,
		Kind:           types.RefImport,
		TargetFQN:      "app/valueobject/CurrencyValue",
		NameSpan:       findSpan(t, content, "CurrencyValue", 2),
		ModuleSpan:     findSpan(t, content, "CurrencyValue", 1),
		AliasSpan:      findSpan(t, content, "UnitValue", 1),
	}
	use := &types.ReferenceSite{
		ReferencedName: "UnitValue",
		FilePath:       d.FilePath,
		Kind:           types.RefUsage,
		TargetFQN:      "app/valueobject/CurrencyValue",
		ViaAlias:       true,
		NameSpan:       findSpan(t, content, "UnitValue", 2),
	}
	f := &types.SourceFile{
		Path:    d.FilePath,
		Lang:    "python",
		Content: content,
		Decls:   []*types.Declaration{d},
		Refs:    []*types.ReferenceSite{imp, use},
	}

	c, _, _, tbl := newTestCoordinator(t)
	tbl.Add(d)
	tbl.Add(&types.Declaration{
		ShortName:  "CurrencyValue",
		ModulePath: "app/valueobject",
		Kind:       types.Class,
		FilePath:   "app/valueobject/CurrencyValue.py",
	})

	_, ok := c.Apply(stripSuffix{suffix: "Value", segment: "valueobject"}, d, f)
	require.True(t, ok)

	assert.Equal(t, "Unit", imp.Alias)
	assert.Equal(t, "Unit", use.ReferencedName)

	rendered, err := source.Render(f)
	require.NoError(t, err)
	assert.Equal(t, "from app.valueobject.Currency import Currency as Unit\n\n"+
		"class Money:\n    pass\n\n"+
		"DEFAULT = Unit\n", string(rendered))
}

func TestApply_InterfaceTargetReferencesUntouched(t *testing.T) {
	// The interface names the contract and is never renamed; references
	// to it must survive a rename of the file's own declaration, or the
	// import dangles with no registry entry to repair it from.
	content := []byte("from app.repositories.OrderRepository import OrderRepository\n\n" +
		"class CustomerRepository(OrderRepository):\n    pass\n")
	d := &types.Declaration{
		ShortName:  "CustomerRepository",
		ModulePath: "app/repositories",
		Kind:       types.Class,
		FilePath:   "app/repositories/CustomerRepository.py",
		NameSpan:   findSpan(t, content, "CustomerRepository", 1),
	}
	iface := &types.Declaration{
		ShortName:  "OrderRepository",
		ModulePath: "app/repositories",
		Kind:       types.Interface,
		FilePath:   "app/repositories/OrderRepository.py",
	}
	imp := &types.ReferenceSite{
		ReferencedName: "OrderRepository",
		FilePath:       d.FilePath,
		Kind:           types.RefImport,
		TargetFQN:      "app/repositories/OrderRepository",
		NameSpan:       findSpan(t, content, "OrderRepository", 2),
		ModuleSpan:     findSpan(t, content, "OrderRepository", 1),
	}
	base := &types.ReferenceSite{
		ReferencedName: "OrderRepository",
		FilePath:       d.FilePath,
		Kind:           types.RefUsage,
		TargetFQN:      "app/repositories/OrderRepository",
		NameSpan:       findSpan(t, content, "OrderRepository", 3),
	}
	f := &types.SourceFile{
		Path:    d.FilePath,
		Lang:    "python",
		Content: content,
		Decls:   []*types.Declaration{d},
		Refs:    []*types.ReferenceSite{imp, base},
	}

	c, reg, _, tbl := newTestCoordinator(t)
	tbl.Add(d)
	tbl.Add(iface)

	pol := &policy.RepositoryPrefix{
		Scope:         []string{"repositories"},
		Prefixes:      []string{"Redis"},
		DefaultPrefix: "Eloquent",
	}
	_, ok := c.Apply(pol, d, f)
	require.True(t, ok)

	assert.Equal(t, "OrderRepository", imp.ReferencedName)
	assert.Equal(t, "app/repositories/OrderRepository", imp.TargetFQN)
	assert.Equal(t, "OrderRepository", base.ReferencedName)
	_, renamed := reg.Lookup("app/repositories/OrderRepository")
	assert.False(t, renamed)

	rendered, err := source.Render(f)
	require.NoError(t, err)
	assert.Equal(t, "from app.repositories.OrderRepository import OrderRepository\n\n"+
		"class EloquentCustomerRepository(OrderRepository):\n    pass\n", string(rendered))
}

func TestApply_NonClassTargetUnderErrorPathUntouched(t *testing.T) {
	// error-suffix fires on classes only; a reference to an interface in
	// the same module must not be rewritten when the file's own
	// declaration is.
	content := []byte("from app.errors.Failure import Failure\n\n" +
		"class OrderNotFound(Failure):\n    pass\n")
	d := &types.Declaration{
		ShortName:  "OrderNotFound",
		ModulePath: "app/errors",
		Kind:       types.Class,
		FilePath:   "app/errors/OrderNotFound.py",
		NameSpan:   findSpan(t, content, "OrderNotFound", 1),
	}
	iface := &types.Declaration{
		ShortName:  "Failure",
		ModulePath: "app/errors",
		Kind:       types.Interface,
		FilePath:   "app/errors/Failure.py",
	}
	imp := &types.ReferenceSite{
		ReferencedName: "Failure",
		FilePath:       d.FilePath,
		Kind:           types.RefImport,
		TargetFQN:      "app/errors/Failure",
		NameSpan:       findSpan(t, content, "Failure", 2),
		ModuleSpan:     findSpan(t, content, "Failure", 1),
	}
	f := &types.SourceFile{
		Path:    d.FilePath,
		Lang:    "python",
		Content: content,
		Decls:   []*types.Declaration{d},
		Refs:    []*types.ReferenceSite{imp},
	}

	c, _, _, tbl := newTestCoordinator(t)
	tbl.Add(d)
	tbl.Add(iface)

	_, ok := c.Apply(&policy.ErrorSuffix{Scope: []string{"errors"}}, d, f)
	require.True(t, ok)

	assert.Equal(t, "Failure", imp.ReferencedName)
	assert.Equal(t, "app/errors/Failure", imp.TargetFQN)

	rendered, err := source.Render(f)
	require.NoError(t, err)
	assert.Equal(t, "from app.errors.Failure import Failure\n\n"+
		"class OrderNotFoundError(Failure):\n    pass\n", string(rendered))
}
