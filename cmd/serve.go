// Copyright © 2024 The renamebridge authors

package cmd

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/jsonrpc2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/swiftclang/renamebridge/backend"
	"github.com/swiftclang/renamebridge/index"
	"github.com/swiftclang/renamebridge/server"
)

var (
	stdio         bool
	port          int
	swiftAddr     string
	clangAddr     string
	scipIndexPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "Start the renamebridge language server",
	Long: `Start the cross-language rename language server.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Backend connections (jsonrpc2 over TCP):
  --swift-addr host:port   Swift backend (sourcekit-lsp-style) connection
  --clang-addr host:port   Clang backend (clangd-style) connection

  --scip-index path   Load a workspace symbol index from a SCIP file`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		log := logrus.New()
		level, err := logrus.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			level = logrus.InfoLevel
		}
		log.SetLevel(level)

		var opts []server.Option
		opts = append(opts, server.WithLogger(log))

		if swiftAddr != "" {
			conn, err := dialJSONRPC(swiftAddr)
			if err != nil {
				log.WithError(err).Fatal("cannot connect to Swift backend")
			}
			opts = append(opts, server.WithSwiftBackend(backend.NewJSONRPCSwift(conn)))
		}
		if clangAddr != "" {
			conn, err := dialJSONRPC(clangAddr)
			if err != nil {
				log.WithError(err).Fatal("cannot connect to Clang backend")
			}
			opts = append(opts, server.WithClangBackend(backend.NewJSONRPCClang(conn)))
		}
		if scipIndexPath != "" {
			idx, err := index.LoadSCIP(scipIndexPath)
			if err != nil {
				log.WithError(err).Fatal("cannot load SCIP index")
			}
			opts = append(opts, server.WithIndex(idx))
		}

		srv := server.New(opts...)

		if !stdio && port > 0 {
			addr := fmt.Sprintf("localhost:%d", port)
			log.Infof("renamebridge listening on %s", addr)
			if err := srv.RunTCP(addr); err != nil {
				fmt.Fprintf(os.Stderr, "server error: %v\n", err)
				os.Exit(1)
			}
			return
		}
		if err := srv.RunStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	},
}

// dialJSONRPC connects to a backend's jsonrpc2 endpoint over TCP, framing
// messages the same way an LSP server's stdio transport would
// (Content-Length headers via jsonrpc2.VSCodeObjectCodec), since both
// backends are themselves LSP-shaped services (sourcekit-lsp, clangd).
func dialJSONRPC(addr string) (*jsonrpc2.Conn, error) {
	netConn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	stream := jsonrpc2.NewBufferedStream(netConn, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(context.Background(), stream, jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, _ *jsonrpc2.Request) (any, error) {
		return nil, nil
	}))
	return conn, nil
}

func init() {
	serveCmd.Flags().BoolVar(&stdio, "stdio", false, "Use stdin/stdout for LSP communication (default behavior)")
	serveCmd.Flags().IntVar(&port, "port", 0, "TCP port for the LSP server (use instead of --stdio)")
	serveCmd.Flags().StringVar(&swiftAddr, "swift-addr", "", "host:port of the Swift backend's jsonrpc2 endpoint")
	serveCmd.Flags().StringVar(&clangAddr, "clang-addr", "", "host:port of the Clang backend's jsonrpc2 endpoint")
	serveCmd.Flags().StringVar(&scipIndexPath, "scip-index", "", "path to a SCIP index file to load as the workspace symbol index")

	rootCmd.AddCommand(serveCmd)
}
