// Package mcp exposes the ranking pipeline as a Model Context Protocol tool.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain/search/filter"
	searchuc "github.com/kailas-cloud/qbet/internal/usecase/search"
)

const (
	// ServerName is the MCP server name.
	ServerName = "qbet"
	// ToolSearch is the name of the search tool.
	ToolSearch = "search_freelancers"

	defaultLimit   = 10
	maxLimit       = 100
	maxQueryLength = 500
)

// Searcher runs the ranking pipeline.
type Searcher interface {
	Search(ctx context.Context, query string, extra filter.Expression) searchuc.Result
}

// Server wraps the MCP server with the search pipeline.
type Server struct {
	mcp    *server.MCPServer
	search Searcher
	logger *zap.Logger
}

// NewServer creates an MCP server with the search tool registered.
func NewServer(search Searcher, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mcp:    server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false)),
		search: search,
		logger: logger,
	}
	s.mcp.AddTool(searchTool(), s.handleSearch)
	return s
}

// ServeStdio serves the tool over stdin/stdout and blocks until the client disconnects.
func (s *Server) ServeStdio() error {
	if err := server.ServeStdio(s.mcp); err != nil {
		return fmt.Errorf("serve mcp stdio: %w", err)
	}
	return nil
}

func searchTool() mcp.Tool {
	return mcp.NewTool(ToolSearch,
		mcp.WithDescription("Rank freelancers for a free-text request (French or English). "+
			"Understands skills, a location, a maximum hourly budget, immediate availability and a result count."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("What the client is looking for, e.g. \"2 développeurs react à Manhattan moins de 130\""),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of freelancers to return (1-%d)", maxLimit)),
			mcp.DefaultNumber(defaultLimit),
			mcp.Min(1),
			mcp.Max(maxLimit),
		),
	)
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		return mcp.NewToolResultError(fmt.Sprintf("query must be at most %d characters", maxQueryLength)), nil
	}

	limit := request.GetInt("limit", defaultLimit)
	if limit < 1 || limit > maxLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", maxLimit)), nil
	}

	res := s.search.Search(ctx, query, filter.Expression{})
	items := res.Items
	if len(items) > limit {
		items = items[:limit]
	}

	out, err := json.MarshalIndent(newSearchOutput(res.Intent, items), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode search result: %w", err)
	}

	s.logger.Debug("MCP search served", zap.Int("items", len(items)))
	return mcp.NewToolResultText(string(out)), nil
}
