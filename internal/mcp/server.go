package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/grcdash/fbk/internal/client"
	"github.com/grcdash/fbk/internal/models"
)

// Server exposes the feedback API as MCP tools.
type Server struct {
	api *client.Client
}

// NewServer creates the MCP server wrapper around the API facade.
func NewServer(api *client.Client) *Server {
	return &Server{api: api}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("fbk", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.listFeedbackTool())
	srv.AddTool(s.getFeedbackTool())
	srv.AddTool(s.submitFeedbackTool())
	srv.AddTool(s.voteTool())
	srv.AddTool(s.analyticsTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// fbk_list_feedback
func (s *Server) listFeedbackTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("fbk_list_feedback",
		mcp.WithDescription("List feedback items. Returns a JSON object with items and the unfiltered total. All filters are optional."),
		mcp.WithString("search", mcp.Description("Free-text search over title and description")),
		mcp.WithString("category", mcp.Description("Filter by category: feature, bug, improvement, integration, performance")),
		mcp.WithString("status", mcp.Description("Filter by status: new, under-review, planned, in-progress, completed, rejected")),
		mcp.WithString("priority", mcp.Description("Filter by priority: low, medium, high, critical")),
		mcp.WithString("sort_by", mcp.Description("Sort order: newest, oldest, most-voted, most-commented")),
	)
	return tool, s.handleListFeedback
}

func (s *Server) handleListFeedback(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filters := models.Filters{
		Search:   request.GetString("search", ""),
		Category: models.Category(request.GetString("category", "")),
		Status:   models.Status(request.GetString("status", "")),
		Priority: models.Priority(request.GetString("priority", "")),
		SortBy:   models.SortKey(request.GetString("sort_by", "")),
	}

	res, err := s.api.List(ctx, filters, 1, 50)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list feedback: %v", err)), nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal feedback: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// fbk_get_feedback
func (s *Server) getFeedbackTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("fbk_get_feedback",
		mcp.WithDescription("Get one feedback item by id, including votes and comment count."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Feedback id")),
	)
	return tool, s.handleGetFeedback
}

func (s *Server) handleGetFeedback(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	fb, err := s.api.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get feedback %s: %v", id, err)), nil
	}

	data, err := json.Marshal(fb)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal feedback: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// fbk_submit_feedback
func (s *Server) submitFeedbackTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("fbk_submit_feedback",
		mcp.WithDescription("Submit new feedback. Returns the created item with its server-assigned id."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Feedback title")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Feedback description")),
		mcp.WithString("category", mcp.Description("Category: feature, bug, improvement, integration, performance (default feature)")),
		mcp.WithString("priority", mcp.Description("Priority: low, medium, high, critical (default medium)")),
		mcp.WithString("impact_area", mcp.Description("Affected area of the dashboard, e.g. risk-register")),
	)
	return tool, s.handleSubmitFeedback
}

func (s *Server) handleSubmitFeedback(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: title"), nil
	}
	description, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: description"), nil
	}

	category := models.Category(request.GetString("category", string(models.CategoryFeature)))
	if !category.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("invalid category: %s", category)), nil
	}
	priority := models.Priority(request.GetString("priority", string(models.PriorityMedium)))
	if !priority.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("invalid priority: %s", priority)), nil
	}

	fb, err := s.api.Create(ctx, client.CreateRequest{
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		ImpactArea:  request.GetString("impact_area", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to submit feedback: %v", err)), nil
	}

	data, err := json.Marshal(fb)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal feedback: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// fbk_vote
func (s *Server) voteTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("fbk_vote",
		mcp.WithDescription("Vote on a feedback item. Returns the authoritative new vote count."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Feedback id")),
		mcp.WithString("direction", mcp.Description("Vote direction: up or down (default up)")),
	)
	return tool, s.handleVote
}

func (s *Server) handleVote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	dir := models.VoteDirection(request.GetString("direction", string(models.VoteUp)))
	if !dir.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("invalid direction: %s", dir)), nil
	}

	votes, err := s.api.Vote(ctx, id, dir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to vote on %s: %v", id, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(`{"votes":%d}`, votes)), nil
}

// fbk_analytics
func (s *Server) analyticsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("fbk_analytics",
		mcp.WithDescription("Get aggregate feedback analytics: totals by category, status, and priority."),
	)
	return tool, s.handleAnalytics
}

func (s *Server) handleAnalytics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	analytics, err := s.api.Analytics(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch analytics: %v", err)), nil
	}

	data, err := json.Marshal(analytics)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal analytics: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
