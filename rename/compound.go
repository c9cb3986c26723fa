// Copyright © 2024 The renamebridge authors

// Package rename implements the cross-language symbol rename engine: a
// compound-name parser, a closed piece taxonomy, a cached name translator,
// the syntactic piece-edit composer, and the workspace rename orchestrator.
package rename

import "strings"

// Parameter is one label slot in a CompoundName. It is either a Named
// label or a Wildcard (an unnamed/"_" parameter).
type Parameter struct {
	name     string
	wildcard bool
}

// NamedParameter returns a Parameter with an explicit external label.
func NamedParameter(label string) Parameter {
	return Parameter{name: label}
}

// WildcardParameter returns an unnamed ("_") Parameter.
func WildcardParameter() Parameter {
	return Parameter{wildcard: true}
}

// IsWildcard reports whether this parameter has no external label.
func (p Parameter) IsWildcard() bool {
	return p.wildcard
}

// Label returns the parameter's external label, or "" for a wildcard.
func (p Parameter) Label() string {
	if p.wildcard {
		return ""
	}
	return p.name
}

// LabelOrUnderscore renders the label, or "_" for a wildcard. Used by the
// piece-edit composer for DeclArgumentLabel and SelectorArgumentLabel
// pieces, which always need a textual placeholder.
func (p Parameter) LabelOrUnderscore() string {
	if p.wildcard {
		return "_"
	}
	return p.name
}

// LabelOrEmpty renders the label, or "" for a wildcard. Used by the
// piece-edit composer for CallArgumentLabel pieces, where a wildcard call
// argument has no label text at all.
func (p Parameter) LabelOrEmpty() string {
	return p.Label()
}

// Equal reports whether two parameters have the same external spelling,
// treating a Wildcard and a Named("_") as distinct kinds but equal in
// practice only when both are Wildcard or both Named with equal labels.
func (p Parameter) Equal(other Parameter) bool {
	if p.wildcard != other.wildcard {
		return false
	}
	return p.wildcard || p.name == other.name
}

// CompoundName is an immutable value: a base name plus an ordered sequence
// of parameter labels, e.g. "foo(a:b:)" or "foo" (no parameters).
type CompoundName struct {
	baseName   string
	parameters []Parameter
}

// NewCompoundName constructs a CompoundName directly from a base name and
// parameter list, bypassing parsing. Used when building a name from
// pieces collected elsewhere (e.g. a translated selector).
func NewCompoundName(baseName string, parameters []Parameter) CompoundName {
	return CompoundName{baseName: baseName, parameters: append([]Parameter{}, parameters...)}
}

// BaseName returns the base name portion of the compound name.
func (n CompoundName) BaseName() string {
	return n.baseName
}

// Parameters returns the ordered parameter list.
func (n CompoundName) Parameters() []Parameter {
	return n.parameters
}

// ParameterAt returns the parameter at index i and true, or the zero
// Parameter and false if i is out of range. The piece-edit composer uses
// this to implement "out-of-range index -> skip piece without failing"
// (spec §4.5).
func (n CompoundName) ParameterAt(i int) (Parameter, bool) {
	if i < 0 || i >= len(n.parameters) {
		return Parameter{}, false
	}
	return n.parameters[i], true
}

// ParseCompoundName parses s into a CompoundName. Total: it never fails.
//
// Grammar (spec §3): if s contains no "(", the whole string is the base
// name with no parameters. Otherwise the base name is the text before the
// first "(", and the parenthesized body splits on ":" keeping empty
// leading/trailing segments except the trailing empty segment after the
// final colon. Empty or "_" labels are Wildcard; everything else is Named.
func ParseCompoundName(s string) CompoundName {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return CompoundName{baseName: s}
	}
	base := s[:open]
	body := s[open+1:]
	body = strings.TrimSuffix(body, ")")

	if body == "" {
		return CompoundName{baseName: base}
	}

	segments := strings.Split(body, ":")
	// A well formed compound name's body ends in ":", which produces one
	// trailing empty segment from strings.Split that is not a parameter.
	if len(segments) > 0 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}

	params := make([]Parameter, 0, len(segments))
	for _, seg := range segments {
		if seg == "" || seg == "_" {
			params = append(params, WildcardParameter())
		} else {
			params = append(params, NamedParameter(seg))
		}
	}
	return CompoundName{baseName: base, parameters: params}
}

// Render reconstructs the canonical textual spelling of n, such that
// ParseCompoundName(n.Render()) == n for any CompoundName produced by
// ParseCompoundName (spec §4.1 round-trip property).
func (n CompoundName) Render() string {
	if len(n.parameters) == 0 {
		return n.baseName
	}
	var b strings.Builder
	b.WriteString(n.baseName)
	b.WriteByte('(')
	for _, p := range n.parameters {
		b.WriteString(p.LabelOrUnderscore())
		b.WriteByte(':')
	}
	b.WriteByte(')')
	return b.String()
}

// WithBaseName returns a copy of n with the base name replaced, leaving
// its parameter list unchanged.
func (n CompoundName) WithBaseName(baseName string) CompoundName {
	return CompoundName{baseName: baseName, parameters: n.parameters}
}
