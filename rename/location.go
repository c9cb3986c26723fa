// Copyright © 2024 The renamebridge authors

package rename

import "github.com/swiftclang/renamebridge/index"

// Usage classifies how a RenameLocation's occurrence relates to the
// symbol being renamed (spec §3).
type Usage int

const (
	UsageReference Usage = iota
	UsageDefinition
	UsageCall
)

// RenameLocation identifies one occurrence to rename within a single
// file: a 1-based line, 1-based UTF-8 column, and its usage.
type RenameLocation struct {
	Line       int
	UTF8Column int
	Usage      Usage
}

// UsageFromRoles derives a RenameLocation's Usage from an index role
// bitmask (spec §3): Definition/Declaration roles win over Call, which
// wins over plain Reference.
func UsageFromRoles(roles index.Roles) Usage {
	if roles.Has(index.RoleDefinition) || roles.Has(index.RoleForwardDefinition) {
		return UsageDefinition
	}
	if roles.Has(index.RoleCall) {
		return UsageCall
	}
	return UsageReference
}

// LocationsFromOccurrences projects a slice of index occurrences (all
// belonging to the same file) into RenameLocations.
func LocationsFromOccurrences(occurrences []index.Occurrence) []RenameLocation {
	out := make([]RenameLocation, 0, len(occurrences))
	for _, occ := range occurrences {
		out = append(out, RenameLocation{
			Line:       occ.Location.Line,
			UTF8Column: occ.Location.UTF8Column,
			Usage:      UsageFromRoles(occ.Roles),
		})
	}
	return out
}
