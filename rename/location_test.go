// Copyright © 2024 The renamebridge authors

package rename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swiftclang/renamebridge/index"
)

func TestUsageFromRoles(t *testing.T) {
	assert.Equal(t, UsageDefinition, UsageFromRoles(index.RoleDefinition))
	assert.Equal(t, UsageDefinition, UsageFromRoles(index.RoleForwardDefinition))
	assert.Equal(t, UsageDefinition, UsageFromRoles(index.RoleDefinition|index.RoleCall))
	assert.Equal(t, UsageCall, UsageFromRoles(index.RoleCall))
	assert.Equal(t, UsageReference, UsageFromRoles(index.RoleReference))
	assert.Equal(t, UsageReference, UsageFromRoles(0))
}

func TestLocationsFromOccurrences(t *testing.T) {
	occs := []index.Occurrence{
		{Location: index.Location{Path: "a.swift", Line: 1, UTF8Column: 5}, Roles: index.RoleDefinition},
		{Location: index.Location{Path: "a.swift", Line: 2, UTF8Column: 1}, Roles: index.RoleCall},
		{Location: index.Location{Path: "a.swift", Line: 3, UTF8Column: 1}, Roles: index.RoleReference},
	}
	locs := LocationsFromOccurrences(occs)
	assert.Len(t, locs, 3)
	assert.Equal(t, UsageDefinition, locs[0].Usage)
	assert.Equal(t, UsageCall, locs[1].Usage)
	assert.Equal(t, UsageReference, locs[2].Usage)
	assert.Equal(t, 5, locs[0].UTF8Column)
}
