package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grcdash/fbk/internal/models"
)

func TestList_SendsFilterQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feedback", r.URL.Path)
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(ListResult{
			Items: []models.Feedback{{ID: "f1", Title: "one"}},
			Total: 1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.List(context.Background(), models.Filters{
		Search:   "audit",
		Category: models.CategoryBug,
		Status:   models.StatusNew,
		Priority: models.PriorityHigh,
		SortBy:   models.SortMostVoted,
	}, 2, 25)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "f1", res.Items[0].ID)

	assert.Equal(t, "audit", gotQuery["search"][0])
	assert.Equal(t, "bug", gotQuery["category"][0])
	assert.Equal(t, "new", gotQuery["status"][0])
	assert.Equal(t, "high", gotQuery["priority"][0])
	assert.Equal(t, "most-voted", gotQuery["sortBy"][0])
	assert.Equal(t, "2", gotQuery["page"][0])
	assert.Equal(t, "25", gotQuery["pageSize"][0])
}

func TestList_AllSentinelNotSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("category"))
		_ = json.NewEncoder(w).Encode(ListResult{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.List(context.Background(), models.Filters{Category: models.FilterAll}, 1, 0)
	require.NoError(t, err)
}

func TestCreate_ReturnsServerAssignedID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req CreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "SSO support", req.Title)
		assert.Equal(t, models.CategoryIntegration, req.Category)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Feedback{
			ID:       "srv-42",
			Title:    req.Title,
			Category: req.Category,
			Priority: req.Priority,
			Status:   models.StatusNew,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	fb, err := c.Create(context.Background(), CreateRequest{
		Title:       "SSO support",
		Description: "Okta please",
		Category:    models.CategoryIntegration,
		Priority:    models.PriorityMedium,
		ImpactArea:  "access-control",
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-42", fb.ID)
	assert.Equal(t, models.StatusNew, fb.Status)
}

func TestUpdate_OmitsNilFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Contains(t, raw, "status")
		assert.NotContains(t, raw, "title")
		_ = json.NewEncoder(w).Encode(models.Feedback{ID: "f1", Status: models.StatusPlanned})
	}))
	defer srv.Close()

	c := New(srv.URL)
	status := models.StatusPlanned
	fb, err := c.Update(context.Background(), "f1", UpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlanned, fb.Status)
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/feedback/f1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).Delete(context.Background(), "f1"))
}

func TestVote_ReturnsAuthoritativeCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feedback/f1/vote", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "up", body["vote"])
		_ = json.NewEncoder(w).Encode(map[string]int{"votes": 13})
	}))
	defer srv.Close()

	votes, err := New(srv.URL).Vote(context.Background(), "f1", models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 13, votes)
}

func TestNon2xx_ReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Get(context.Background(), "f1")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "500")
}

func TestUploadAttachment_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feedback/attachments", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "evidence.pdf", header.Filename)
		_ = json.NewEncoder(w).Encode(models.Attachment{ID: "att-1", URL: "/files/att-1"})
	}))
	defer srv.Close()

	att, err := New(srv.URL).UploadAttachment(context.Background(), "evidence.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "att-1", att.ID)
	assert.Equal(t, "/files/att-1", att.URL)
}

func TestRoadmap_QuarterParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/roadmap", r.URL.Path)
		assert.Equal(t, "2024-Q3", r.URL.Query().Get("quarter"))
		_ = json.NewEncoder(w).Encode([]models.RoadmapItem{{FeedbackID: "f1", Quarter: "2024-Q3"}})
	}))
	defer srv.Close()

	items, err := New(srv.URL).Roadmap(context.Background(), "2024-Q3")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestTimeout_HungServerFails(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.Get(context.Background(), "f1")
	require.Error(t, err)
}

func TestNew_EmptyBaseURLUsesDefault(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
