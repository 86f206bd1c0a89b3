package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

const githubEventsFixture = `[
  {
    "id": "1001",
    "type": "PullRequestEvent",
    "created_at": "2024-03-10T12:00:00Z",
    "repo": {"name": "octo/widgets"},
    "payload": {
      "action": "closed",
      "pull_request": {"number": 42, "merged": true, "html_url": "https://github.com/octo/widgets/pull/42"}
    }
  },
  {
    "id": "1002",
    "type": "PullRequestEvent",
    "created_at": "2024-03-09T12:00:00Z",
    "repo": {"name": "octo/widgets"},
    "payload": {
      "action": "opened",
      "pull_request": {"number": 43, "merged": false, "html_url": "https://github.com/octo/widgets/pull/43"}
    }
  },
  {
    "id": "1003",
    "type": "IssuesEvent",
    "created_at": "2024-03-08T08:00:00Z",
    "repo": {"name": "octo/widgets"},
    "payload": {
      "action": "opened",
      "issue": {"number": 7, "title": "Crash on startup", "html_url": "https://github.com/octo/widgets/issues/7"}
    }
  },
  {
    "id": "1004",
    "type": "PushEvent",
    "created_at": "2024-03-07T08:00:00Z",
    "repo": {"name": "octo/widgets"},
    "payload": {"size": 3}
  },
  {
    "id": "1005",
    "type": "WatchEvent",
    "created_at": "2024-03-06T08:00:00Z",
    "repo": {"name": "octo/widgets"},
    "payload": {}
  }
]`

func newGitHubAgainst(t *testing.T, handler http.HandlerFunc) *GitHub {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Sources.Github.BaseURL = server.URL
	return NewGitHub(cfg)
}

func TestGitHubFetchMapsEvents(t *testing.T) {
	g := newGitHubAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/octocat/events/public", r.URL.Path)
		require.Equal(t, "50", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(githubEventsFixture))
	})

	items, err := g.Fetch(context.Background(), "octocat")
	require.NoError(t, err)
	// WatchEvent is not a contribution and gets dropped.
	require.Len(t, items, 4)

	merged := items[0]
	require.Equal(t, "gh-1001", merged.ID)
	require.Equal(t, contribution.PlatformGitHub, merged.Platform)
	require.Equal(t, "pull_request", merged.Type)
	require.Equal(t, "merged", merged.Status)
	require.Equal(t, "Merged PR #42 in octo/widgets", merged.Description)
	require.Equal(t, "2024-03-10", merged.Date)
	require.Equal(t, "https://github.com/octo/widgets/pull/42", merged.URL)

	opened := items[1]
	require.Equal(t, "opened", opened.Status)
	require.Equal(t, "opened PR #43 in octo/widgets", opened.Description)

	issue := items[2]
	require.Equal(t, "issue", issue.Type)
	require.Equal(t, "opened Issue #7: Crash on startup", issue.Description)

	push := items[3]
	require.Equal(t, "commit", push.Type)
	require.Equal(t, "Pushed 3 commits to octo/widgets", push.Description)

	for _, item := range items {
		require.NoError(t, item.Validate())
	}
}

func TestGitHubFetchReportsUpstreamErrors(t *testing.T) {
	g := newGitHubAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
	})

	_, err := g.Fetch(context.Background(), "octocat")
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, contribution.PlatformGitHub, fetchErr.Platform)
}

func TestGitHubFetchEmptyIdentifier(t *testing.T) {
	g := newGitHubAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty identifier")
	})

	items, err := g.Fetch(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, items)
}
