// Copyright © 2024 The renamebridge authors

// Package docstore provides the DocumentSnapshot abstraction the rename
// engine consumes: an immutable view of one file's text plus a line table
// able to convert between UTF-8 byte columns (the wire format used by the
// Swift and Clang backends), UTF-16 columns (the LSP position model), and
// absolute byte offsets.
package docstore

import (
	"fmt"
	"os"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Position and Range are the LSP wire types (0-based line, UTF-16
// column). The rename engine's pieces and edits are expressed in these
// types directly rather than a bespoke position type, so they can be
// handed straight to a protocol.TextEdit or protocol.WorkspaceEdit.
type Position = protocol.Position
type Range = protocol.Range

// Language identifies which backend a file belongs to.
type Language int

const (
	LanguageUnknown Language = iota
	LanguageSwift
	LanguageClang
)

func (l Language) String() string {
	switch l {
	case LanguageSwift:
		return "swift"
	case LanguageClang:
		return "clang"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of one file's text, as consumed by the
// rename engine. Open files are borrowed from a Manager; closed files are
// read once from disk into an owned Snapshot (spec §3, "Snapshot
// acquisition strategy").
type Snapshot interface {
	URI() string
	Language() Language
	Text() string

	// PositionFromUTF8 converts a 1-based UTF-8 line/column (the wire
	// format backends report pieces in) into a 0-based line, UTF-16
	// column Position. It returns false if the coordinates fall outside
	// the document.
	PositionFromUTF8(line, utf8Column int) (Position, bool)

	// OffsetFromPosition converts a Position into an absolute byte
	// offset into Text(). It returns false if the position is out of
	// range.
	OffsetFromPosition(pos Position) (int, bool)

	// TextAt returns the substring of Text() spanned by r, or false if r
	// cannot be resolved to valid offsets.
	TextAt(r Range) (string, bool)
}

// lineTable precomputes the byte offset of the start of each line so
// position conversions are O(line length) instead of O(file length).
type lineTable struct {
	text       string
	lineStarts []int // byte offset of the first byte of each line
}

func newLineTable(text string) *lineTable {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineTable{text: text, lineStarts: starts}
}

func (lt *lineTable) lineBounds(line int) (start, end int, ok bool) {
	if line < 0 || line >= len(lt.lineStarts) {
		return 0, 0, false
	}
	start = lt.lineStarts[line]
	if line+1 < len(lt.lineStarts) {
		end = lt.lineStarts[line+1]
		// Exclude the trailing newline from the line's content.
		if end > start && lt.text[end-1] == '\n' {
			end--
		}
	} else {
		end = len(lt.text)
	}
	return start, end, true
}

// positionFromUTF8 converts a 1-based line and 1-based UTF-8 byte column
// into a 0-based line / UTF-16 column Position.
func (lt *lineTable) positionFromUTF8(line1, col1 int) (Position, bool) {
	line := line1 - 1
	start, end, ok := lt.lineBounds(line)
	if !ok {
		return Position{}, false
	}
	byteOffset := start + (col1 - 1)
	if byteOffset < start || byteOffset > end {
		return Position{}, false
	}
	utf16Col := utf16Length(lt.text[start:byteOffset])
	return Position{Line: protocol.UInteger(line), Character: protocol.UInteger(utf16Col)}, true
}

// offsetFromPosition converts a 0-based line / UTF-16 column Position
// into an absolute byte offset.
func (lt *lineTable) offsetFromPosition(pos Position) (int, bool) {
	start, end, ok := lt.lineBounds(int(pos.Line))
	if !ok {
		return 0, false
	}
	offset, ok := utf16OffsetToByteOffset(lt.text[start:end], int(pos.Character))
	if !ok {
		return 0, false
	}
	return start + offset, true
}

// utf16Length returns the number of UTF-16 code units needed to encode s.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

// utf16OffsetToByteOffset walks s rune by rune, accumulating UTF-16 code
// units, and returns the byte offset at which the given UTF-16 column is
// reached. utf16Col == the line's total UTF-16 length is valid (end of
// line).
func utf16OffsetToByteOffset(s string, utf16Col int) (int, bool) {
	if utf16Col == 0 {
		return 0, true
	}
	units := 0
	for i, r := range s {
		if units == utf16Col {
			return i, true
		}
		if r == utf8.RuneError {
			return 0, false
		}
		units += len(utf16.Encode([]rune{r}))
		if units == utf16Col {
			return i + utf8.RuneLen(r), true
		}
		if units > utf16Col {
			return 0, false
		}
	}
	if units == utf16Col {
		return len(s), true
	}
	return 0, false
}

// staticSnapshot is a Snapshot with no owner beyond its own value: either
// read once from disk (closed file) or produced directly from text (used
// by tests).
type staticSnapshot struct {
	uri      string
	language Language
	lt       *lineTable
}

// NewSnapshot builds a standalone, immutable Snapshot over in-memory
// text. Used both for ephemeral on-disk reads and directly by tests.
func NewSnapshot(uri string, language Language, text string) Snapshot {
	return &staticSnapshot{uri: uri, language: language, lt: newLineTable(text)}
}

// LoadFromDisk reads uri's corresponding file path once and returns an
// owned, read-only Snapshot. Used for files that are not currently open
// in the document manager (spec §3, §4.6 step 8).
func LoadFromDisk(uri string, language Language) (Snapshot, error) {
	path := URIToPath(uri)
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s from disk: %w", path, err)
	}
	return NewSnapshot(uri, language, string(contents)), nil
}

func (s *staticSnapshot) URI() string        { return s.uri }
func (s *staticSnapshot) Language() Language { return s.language }
func (s *staticSnapshot) Text() string       { return s.lt.text }

func (s *staticSnapshot) PositionFromUTF8(line, utf8Column int) (Position, bool) {
	return s.lt.positionFromUTF8(line, utf8Column)
}

func (s *staticSnapshot) OffsetFromPosition(pos Position) (int, bool) {
	return s.lt.offsetFromPosition(pos)
}

func (s *staticSnapshot) TextAt(r Range) (string, bool) {
	start, ok := s.OffsetFromPosition(r.Start)
	if !ok {
		return "", false
	}
	end, ok := s.OffsetFromPosition(r.End)
	if !ok || end < start {
		return "", false
	}
	return s.lt.text[start:end], true
}
