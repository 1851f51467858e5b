package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grcdash/fbk/internal/client"
	"github.com/grcdash/fbk/internal/models"
)

func serverWithAPI(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewServer(client.New(srv.URL))
}

func callToolReq(name string, args map[string]any) mcpgo.CallToolRequest {
	return mcpgo.CallToolRequest{
		Params: mcpgo.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText extracts the concatenated text from a CallToolResult.
func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	var b strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcpgo.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

func TestMCPServer_RegistersTools(t *testing.T) {
	s := serverWithAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, s.MCPServer())
}

func TestHandleListFeedback(t *testing.T) {
	s := serverWithAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bug", r.URL.Query().Get("category"))
		_ = json.NewEncoder(w).Encode(client.ListResult{
			Items: []models.Feedback{{ID: "f1", Title: "broken export"}},
			Total: 1,
		})
	})

	result, err := s.handleListFeedback(context.Background(), callToolReq("fbk_list_feedback", map[string]any{
		"category": "bug",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "broken export")
	assert.Contains(t, text, `"total":1`)
}

func TestHandleSubmitFeedback(t *testing.T) {
	s := serverWithAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var req client.CreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Feedback{ID: "f9", Title: req.Title, Status: models.StatusNew})
	})

	result, err := s.handleSubmitFeedback(context.Background(), callToolReq("fbk_submit_feedback", map[string]any{
		"title":       "SIEM integration",
		"description": "forward incidents to Splunk",
		"category":    "integration",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"id":"f9"`)
}

func TestHandleSubmitFeedback_MissingTitle(t *testing.T) {
	s := serverWithAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no API call expected")
	})

	result, err := s.handleSubmitFeedback(context.Background(), callToolReq("fbk_submit_feedback", map[string]any{
		"description": "orphan description",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleSubmitFeedback_InvalidCategory(t *testing.T) {
	s := serverWithAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no API call expected")
	})

	result, err := s.handleSubmitFeedback(context.Background(), callToolReq("fbk_submit_feedback", map[string]any{
		"title":       "x",
		"description": "y",
		"category":    "complaint",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleVote(t *testing.T) {
	s := serverWithAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feedback/f1/vote", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]int{"votes": 8})
	})

	result, err := s.handleVote(context.Background(), callToolReq("fbk_vote", map[string]any{
		"id": "f1",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, `{"votes":8}`, resultText(t, result))
}

func TestHandleVote_APIFailure(t *testing.T) {
	s := serverWithAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	result, err := s.handleVote(context.Background(), callToolReq("fbk_vote", map[string]any{
		"id": "f1",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleAnalytics(t *testing.T) {
	s := serverWithAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feedback/analytics", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.Analytics{Total: 12, TotalVotes: 99})
	})

	result, err := s.handleAnalytics(context.Background(), callToolReq("fbk_analytics", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"total":12`)
}
