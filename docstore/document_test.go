// Copyright © 2024 The renamebridge authors

package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreOpenGetClose(t *testing.T) {
	store := NewStore()
	store.Open("file:///a.swift", LanguageSwift, 1, "foo\n")

	snap, ok := store.Get("file:///a.swift")
	require.True(t, ok)
	assert.Equal(t, "foo\n", snap.Text())
	assert.Equal(t, LanguageSwift, snap.Language())

	store.Close("file:///a.swift")
	_, ok = store.Get("file:///a.swift")
	assert.False(t, ok)
}

func TestStoreChangeReplacesContent(t *testing.T) {
	store := NewStore()
	doc := store.Open("file:///a.swift", LanguageSwift, 1, "foo\n")
	assert.Equal(t, int32(1), doc.Version())

	changed := store.Change("file:///a.swift", 2, "bar\n")
	assert.Equal(t, int32(2), changed.Version())

	snap, ok := store.Get("file:///a.swift")
	require.True(t, ok)
	assert.Equal(t, "bar\n", snap.Text())
}

func TestStoreChangeOnUnopenedDocumentOpensIt(t *testing.T) {
	store := NewStore()
	doc := store.Change("file:///new.swift", 1, "hello\n")
	assert.Equal(t, "hello\n", doc.Text())

	snap, ok := store.Get("file:///new.swift")
	require.True(t, ok)
	assert.Equal(t, "hello\n", snap.Text())
}

func TestStoreAllReturnsEverythingOpen(t *testing.T) {
	store := NewStore()
	store.Open("file:///a.swift", LanguageSwift, 1, "a\n")
	store.Open("file:///b.swift", LanguageSwift, 1, "b\n")

	all := store.All()
	assert.Len(t, all, 2)
}

func TestLoadPrefersOpenDocumentOverDisk(t *testing.T) {
	store := NewStore()
	store.Open("file:///a.swift", LanguageSwift, 1, "open-content\n")

	snap, err := Load(store, "file:///a.swift", LanguageUnknown)
	require.NoError(t, err)
	assert.Equal(t, "open-content\n", snap.Text())
}

func TestLoadFallsBackToDiskWhenNotOpen(t *testing.T) {
	store := NewStore()
	_, err := Load(store, "file:///definitely/not/open/x.swift", LanguageSwift)
	assert.Error(t, err, "file not open and not on disk should surface the read error")
}

func TestLoadWithNilManagerReadsDisk(t *testing.T) {
	_, err := Load(nil, "file:///definitely/not/open/x.swift", LanguageSwift)
	assert.Error(t, err)
}
