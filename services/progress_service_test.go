package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressServer(t *testing.T, closed, total int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/issues", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

		q := r.URL.Query().Get("q")
		count := total
		if q == "repo:nzmksk/my-chess-tour type:issue state:closed" {
			count = closed
		}
		fmt.Fprintf(w, `{"total_count": %d}`, count)
	}))
}

func TestGetIssueProgress(t *testing.T) {
	server := progressServer(t, 47, 60)
	defer server.Close()

	svc := NewProgressServiceWithBaseURL("nzmksk/my-chess-tour", "", server.URL)

	progress, err := svc.GetIssueProgress(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 47, progress.Resolved)
	assert.Equal(t, 60, progress.Total)
	// 47/60 = 78.33%, округляется до ближайшего целого.
	assert.Equal(t, 78, progress.Percentage)
}

func TestGetIssueProgressRoundsHalfUp(t *testing.T) {
	server := progressServer(t, 1, 8)
	defer server.Close()

	svc := NewProgressServiceWithBaseURL("nzmksk/my-chess-tour", "", server.URL)

	progress, err := svc.GetIssueProgress(context.Background())
	require.NoError(t, err)
	// 1/8 = 12.5% -> 13.
	assert.Equal(t, 13, progress.Percentage)
}

func TestGetIssueProgressZeroTotal(t *testing.T) {
	server := progressServer(t, 0, 0)
	defer server.Close()

	svc := NewProgressServiceWithBaseURL("nzmksk/my-chess-tour", "", server.URL)

	progress, err := svc.GetIssueProgress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Percentage)
}

func TestGetIssueProgressUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	svc := NewProgressServiceWithBaseURL("nzmksk/my-chess-tour", "", server.URL)

	_, err := svc.GetIssueProgress(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestGetIssueProgressSendsToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"total_count": 1}`)
	}))
	defer server.Close()

	svc := NewProgressServiceWithBaseURL("nzmksk/my-chess-tour", "ghp_token", server.URL)

	_, err := svc.GetIssueProgress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer ghp_token", gotAuth)
}
