package main

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"golden/internal/logging"
	mcpserver "golden/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing golden_show, golden_baseline and
golden_diff. The server exits when its parent process goes away.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv := mcpserver.NewServer(cfg, newLoader(cfg), version)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, 2*time.Second, cancel)

	logging.New("mcp").Info("starting golden MCP server over stdio", "repo", cfg.RepoDir, "diff_base", cfg.DiffBase())
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
