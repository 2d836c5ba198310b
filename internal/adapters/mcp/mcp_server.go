// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/hourglass/internal/domain"
	"github.com/xvierd/hourglass/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server   *server.MCPServer
	provider ports.SnapshotProvider
	now      func() time.Time
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(provider ports.SnapshotProvider) *Server {
	s := &Server{
		provider: provider,
		now:      time.Now,
	}

	s.server = server.NewMCPServer(
		"hourglass",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools. Every tool is read-only.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_snapshot",
			mcp.WithDescription("Get the current time progress report as plain text: day, year and life, plus the countdown and deadline when set"),
		),
		s.handleGetSnapshot,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_progress",
			mcp.WithDescription("Get the progress of every visible span as JSON (label, progress 0..1, remaining, done)"),
		),
		s.handleGetProgress,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_timers",
			mcp.WithDescription("Get the stored countdown and deadline timers as JSON"),
		),
		s.handleGetTimers,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// handleGetSnapshot handles the get_snapshot tool.
func (s *Server) handleGetSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return mcp.NewToolResultText(snap.Text()), nil
}

// handleGetProgress handles the get_progress tool.
func (s *Server) handleGetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	spans := make([]map[string]interface{}, 0, len(snap.Spans))
	for _, r := range snap.Spans {
		spans = append(spans, map[string]interface{}{
			"label":     r.Label,
			"progress":  r.Progress,
			"remaining": r.Remaining,
			"done":      r.Done,
		})
	}

	result := map[string]interface{}{
		"now":   snap.Now.Format(time.RFC3339),
		"spans": spans,
	}
	return jsonResult(result)
}

// handleGetTimers handles the get_timers tool.
func (s *Server) handleGetTimers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	countdown, deadline, err := s.provider.Timers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get timers: %w", err)
	}

	result := map[string]interface{}{
		"countdown": nil,
		"deadline":  nil,
	}

	if countdown.Configured {
		result["countdown"] = map[string]interface{}{
			"status":            string(countdown.Status()),
			"duration_seconds":  countdown.Duration,
			"remaining_seconds": countdown.Remaining,
			"remaining":         countdown.RemainingText(),
			"progress":          countdown.Progress(),
		}
	}

	if deadline.Configured {
		now := s.now()
		deadlineData := map[string]interface{}{
			"target": deadline.Target.Format(time.RFC3339),
			"set_at": deadline.SetAt.Format(time.RFC3339),
			"done":   deadline.Done(now),
		}
		if span, ok := deadline.Span(now); ok {
			deadlineData["progress"] = span.Progress
			deadlineData["remaining"] = span.Remaining
			if span.Done() {
				deadlineData["remaining"] = domain.DoneText
			}
		}
		result["deadline"] = deadlineData
	}

	return jsonResult(result)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
