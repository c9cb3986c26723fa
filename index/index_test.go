// Copyright © 2024 The renamebridge authors

package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesHas(t *testing.T) {
	r := RoleDefinition | RoleCall
	assert.True(t, r.Has(RoleDefinition))
	assert.True(t, r.Has(RoleCall))
	assert.False(t, r.Has(RoleReference))
	assert.False(t, Roles(0).Has(RoleDefinition))
}

func TestInMemoryOccurrencesFiltersByUSRAndRole(t *testing.T) {
	idx := NewInMemory()
	idx.Add(Occurrence{
		Symbol:   Symbol{USR: "s:foo"},
		Location: Location{Path: "a.swift", Line: 1, UTF8Column: 1},
		Roles:    RoleDefinition,
	})
	idx.Add(Occurrence{
		Symbol:   Symbol{USR: "s:foo"},
		Location: Location{Path: "b.swift", Line: 3, UTF8Column: 1},
		Roles:    RoleCall,
	})
	idx.Add(Occurrence{
		Symbol:   Symbol{USR: "s:bar"},
		Location: Location{Path: "a.swift", Line: 2, UTF8Column: 1},
		Roles:    RoleDefinition,
	})

	all := idx.Occurrences("s:foo", 0)
	require.Len(t, all, 2)

	defsOnly := idx.Occurrences("s:foo", RoleDefinition)
	require.Len(t, defsOnly, 1)
	assert.Equal(t, "a.swift", defsOnly[0].Location.Path)

	none := idx.Occurrences("s:missing", 0)
	assert.Empty(t, none)
}

func TestInMemoryOccurrencesAreSortedByLocation(t *testing.T) {
	idx := NewInMemory()
	idx.Add(Occurrence{Symbol: Symbol{USR: "s:foo"}, Location: Location{Path: "b.swift", Line: 1, UTF8Column: 1}})
	idx.Add(Occurrence{Symbol: Symbol{USR: "s:foo"}, Location: Location{Path: "a.swift", Line: 5, UTF8Column: 1}})
	idx.Add(Occurrence{Symbol: Symbol{USR: "s:foo"}, Location: Location{Path: "a.swift", Line: 2, UTF8Column: 1}})

	out := idx.Occurrences("s:foo", 0)
	require.Len(t, out, 3)
	assert.Equal(t, "a.swift", out[0].Location.Path)
	assert.Equal(t, 2, out[0].Location.Line)
	assert.Equal(t, "a.swift", out[1].Location.Path)
	assert.Equal(t, 5, out[1].Location.Line)
	assert.Equal(t, "b.swift", out[2].Location.Path)
}

func TestInMemorySymbolProvider(t *testing.T) {
	idx := NewInMemory()
	idx.SetProvider("a.swift", LanguageSwift)

	lang, ok := idx.SymbolProvider("a.swift")
	require.True(t, ok)
	assert.Equal(t, LanguageSwift, lang)

	_, ok = idx.SymbolProvider("unknown.swift")
	assert.False(t, ok)
}

func TestGroupByFilePreservesOrderWithinGroup(t *testing.T) {
	occs := []Occurrence{
		{Location: Location{Path: "a.swift", Line: 1}},
		{Location: Location{Path: "b.swift", Line: 1}},
		{Location: Location{Path: "a.swift", Line: 2}},
	}
	groups := GroupByFile(occs)
	require.Len(t, groups, 2)
	require.Len(t, groups["a.swift"], 2)
	assert.Equal(t, 1, groups["a.swift"][0].Location.Line)
	assert.Equal(t, 2, groups["a.swift"][1].Location.Line)
	require.Len(t, groups["b.swift"], 1)
}

func TestLoadSCIPMissingFile(t *testing.T) {
	_, err := LoadSCIP("/definitely/not/a/real/index.scip")
	assert.Error(t, err)
}

func TestScipRangeStart(t *testing.T) {
	line, col := scipRangeStart([]int32{4, 9, 4, 13})
	assert.Equal(t, 5, line)
	assert.Equal(t, 10, col)

	line, col = scipRangeStart(nil)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)
}

func TestScipLanguage(t *testing.T) {
	assert.Equal(t, LanguageSwift, scipLanguage("swift"))
	assert.Equal(t, LanguageObjectiveC, scipLanguage("objective-c"))
	assert.Equal(t, LanguageObjectiveC, scipLanguage("objective-c++"))
	assert.Equal(t, LanguageC, scipLanguage("c"))
	assert.Equal(t, LanguageCPP, scipLanguage("c++"))
	assert.Equal(t, LanguageUnknown, scipLanguage("rust"))
}
