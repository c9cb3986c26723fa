// Copyright © 2024 The renamebridge authors

package docstore

import (
	"net/url"
	"strings"
)

// URIToPath converts a file:// URI into a filesystem path. Non-file URIs
// are returned unchanged, matching the teacher's lsp/document.go
// uriToPath, which is similarly lenient about scheme-less inputs used in
// tests.
func URIToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		return strings.TrimPrefix(uri, "file://")
	}
	return u.Path
}

// PathToURI converts a filesystem path into a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String()
}
