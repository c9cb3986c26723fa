// Copyright © 2024 The renamebridge authors

package backend

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// loopbackConn establishes a pair of jsonrpc2 connections over an in-memory
// pipe: one driven by handler (standing in for the external backend
// process), the other returned for a client (NewJSONRPCSwift/NewJSONRPCClang)
// to issue requests against. This is the same Content-Length-delimited
// VSCodeObjectCodec framing cmd/serve.go dials over TCP in production.
func loopbackConn(t *testing.T, handler jsonrpc2.Handler) *jsonrpc2.Conn {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	t.Cleanup(func() {
		serverSide.Close()
		clientSide.Close()
	})

	jsonrpc2.NewConn(context.Background(),
		jsonrpc2.NewBufferedStream(serverSide, jsonrpc2.VSCodeObjectCodec{}),
		handler)

	return jsonrpc2.NewConn(context.Background(),
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
			return nil, nil
		}))
}

func TestJSONRPCSwiftTranslateNameRoundTrip(t *testing.T) {
	handler := jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		require.Equal(t, "swift/nameTranslation", req.Method)
		require.NotNil(t, req.Params)
		var params TranslateNameRequest
		require.NoError(t, json.Unmarshal(*req.Params, &params))
		require.Equal(t, "perform", params.BaseName)
		return TranslateNameResponse{SelectorPieces: []string{"performAction", "with"}}, nil
	})

	conn := loopbackConn(t, handler)
	client := NewJSONRPCSwift(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := client.TranslateName(ctx, TranslateNameRequest{BaseName: "perform"})
	require.NoError(t, err)
	require.Equal(t, []string{"performAction", "with"}, resp.SelectorPieces)
}

func TestJSONRPCClangIndexedRenameRoundTrip(t *testing.T) {
	handler := jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		require.Equal(t, "clang/indexedRename", req.Method)
		return protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				"file:///a.m": {{NewText: "newName"}},
			},
		}, nil
	})

	conn := loopbackConn(t, handler)
	client := NewJSONRPCClang(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := client.IndexedRename(ctx, IndexedRenameRequest{OldName: "foo", NewName: "bar"})
	require.NoError(t, err)
	require.Contains(t, resp.Changes, protocol.DocumentUri("file:///a.m"))
	require.Equal(t, "newName", resp.Changes["file:///a.m"][0].NewText)
}
