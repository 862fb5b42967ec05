// Package mcp serves read-only golden file queries over the Model Context
// Protocol, so agents can inspect baselines and candidate diffs.
package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"golden/internal/config"
	"golden/internal/golden"
	"golden/internal/logging"
)

// Server wraps the MCP SDK server around one config and baseline loader.
type Server struct {
	MCPServer *sdkmcp.Server

	cfg    *config.Config
	loader *golden.Loader
}

// NewServer registers the golden tools. loader reads baselines at the
// config's diff base.
func NewServer(cfg *config.Config, loader *golden.Loader, version string) *Server {
	s := &Server{cfg: cfg, loader: loader}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "golden", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "golden_show",
		Description: "Read the local golden file and return its pages and screenshot URLs.",
	}, s.handleShow)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "golden_baseline",
		Description: "Read the golden file as it exists at the configured diff base revision.",
	}, s.handleBaseline)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "golden_diff",
		Description: "Compare the local golden file against the baseline at the diff base. Lists added, removed and changed screenshots.",
	}, s.handleDiff)
}

// --- Tool input/output types ---

type pathInput struct {
	Path string `json:"path,omitempty" jsonschema:"golden file path relative to the repository root (default from config)"`
}

type recordsOutput struct {
	Path          string                       `json:"path"`
	Revision      string                       `json:"revision,omitempty"`
	Pages         map[string]golden.PageRecord `json:"pages"`
	PageCount     int                          `json:"page_count"`
	DiffReportURL string                       `json:"diff_report_url,omitempty"`
}

type diffOutput struct {
	Path      string          `json:"path"`
	Revision  string          `json:"revision"`
	Changes   []golden.Change `json:"changes"`
	Added     int             `json:"added"`
	Removed   int             `json:"removed"`
	Changed   int             `json:"changed"`
	Unchanged int             `json:"unchanged"`
	Identical bool            `json:"identical"`
}

// --- Tool handlers ---

func (s *Server) handleShow(_ context.Context, _ *sdkmcp.CallToolRequest, in pathInput) (*sdkmcp.CallToolResult, recordsOutput, error) {
	rel := s.goldenPath(in.Path)
	store, err := golden.ReadFile(s.localPath(rel))
	if err != nil {
		return nil, recordsOutput{}, err
	}
	return nil, toRecordsOutput(rel, "", store), nil
}

func (s *Server) handleBaseline(ctx context.Context, _ *sdkmcp.CallToolRequest, in pathInput) (*sdkmcp.CallToolResult, recordsOutput, error) {
	rel := s.goldenPath(in.Path)
	store, err := s.loader.FromBaseline(ctx, rel)
	if err != nil {
		return nil, recordsOutput{}, err
	}
	return nil, toRecordsOutput(rel, s.cfg.DiffBase(), store), nil
}

func (s *Server) handleDiff(ctx context.Context, _ *sdkmcp.CallToolRequest, in pathInput) (*sdkmcp.CallToolResult, diffOutput, error) {
	rel := s.goldenPath(in.Path)
	result, err := s.loader.Diff(ctx, rel, s.localPath(rel))
	if err != nil {
		return nil, diffOutput{}, fmt.Errorf("diff %s: %w", rel, err)
	}
	logging.New("mcp").Info("golden_diff", "path", rel, "changes", len(result.Changes))
	return nil, diffOutput{
		Path:      rel,
		Revision:  s.cfg.DiffBase(),
		Changes:   result.Changes,
		Added:     result.Count(golden.Added),
		Removed:   result.Count(golden.Removed),
		Changed:   result.Count(golden.Changed),
		Unchanged: result.Unchanged,
		Identical: result.Empty(),
	}, nil
}

func (s *Server) goldenPath(p string) string {
	if p == "" {
		return s.cfg.GoldenPath
	}
	return p
}

func (s *Server) localPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.cfg.RepoDir, rel)
}

func toRecordsOutput(path, rev string, store *golden.Store) recordsOutput {
	rs := store.Records()
	out := recordsOutput{Path: path, Revision: rev, Pages: rs.Pages, PageCount: len(rs.Pages)}
	if u, ok := store.DiffReportURL(); ok {
		out.DiffReportURL = u
	}
	return out
}
