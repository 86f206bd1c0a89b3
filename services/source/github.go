package source

import (
	"context"
	"fmt"
	"time"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// GitHub aggregates public pull request, issue, and push events.
type GitHub struct {
	client *resty.Client
}

func NewGitHub(cfg *config.Config) *GitHub {
	client := resty.New().
		SetBaseURL(cfg.Sources.Github.BaseURL).
		SetHeader("User-Agent", "CommunityContributionAggregator/1.0").
		SetHeader("Accept", "application/vnd.github+json")
	if cfg.Sources.Github.Token != "" {
		client.SetAuthToken(cfg.Sources.Github.Token)
	}
	return &GitHub{client: client}
}

func (g *GitHub) PlatformKey() string            { return contribution.PlatformGitHub }
func (g *GitHub) DisplayName() string            { return "GitHub" }
func (g *GitHub) Description() string            { return "Track Pull Requests, Issues, and Commits." }
func (g *GitHub) IdentifierKind() IdentifierKind { return IdentifierUsername }

type githubEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Action      string `json:"action"`
		Size        int    `json:"size"`
		PullRequest *struct {
			Number  int    `json:"number"`
			Merged  bool   `json:"merged"`
			HTMLURL string `json:"html_url"`
		} `json:"pull_request"`
		Issue *struct {
			Number  int    `json:"number"`
			Title   string `json:"title"`
			HTMLURL string `json:"html_url"`
		} `json:"issue"`
	} `json:"payload"`
}

func (g *GitHub) Fetch(ctx context.Context, identifier string) ([]contribution.Contribution, error) {
	if identifier == "" {
		return nil, nil
	}

	zap.L().Debug("fetching GitHub events", zap.String("username", identifier))

	var events []githubEvent
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("per_page", "50").
		SetResult(&events).
		Get(fmt.Sprintf("/users/%s/events/public", identifier))
	if err != nil {
		return nil, &FetchError{Platform: g.PlatformKey(), Err: err}
	}
	if resp.IsError() {
		return nil, fetchErrf(g.PlatformKey(), "unexpected status %s", resp.Status())
	}

	out := make([]contribution.Contribution, 0, len(events))
	for _, event := range events {
		c := contribution.Contribution{
			ID:       fmt.Sprintf("gh-%s", event.ID),
			Platform: contribution.PlatformGitHub,
			Date:     event.CreatedAt.Format(contribution.DateLayout),
		}

		switch event.Type {
		case "PullRequestEvent":
			pr := event.Payload.PullRequest
			if pr == nil {
				continue
			}
			c.Type = "pull_request"
			if event.Payload.Action == "closed" && pr.Merged {
				c.Status = "merged"
				c.Description = fmt.Sprintf("Merged PR #%d in %s", pr.Number, event.Repo.Name)
			} else {
				c.Status = event.Payload.Action
				c.Description = fmt.Sprintf("%s PR #%d in %s", event.Payload.Action, pr.Number, event.Repo.Name)
			}
			c.URL = pr.HTMLURL
		case "IssuesEvent":
			issue := event.Payload.Issue
			if issue == nil {
				continue
			}
			c.Type = "issue"
			c.Status = event.Payload.Action
			c.Description = fmt.Sprintf("%s Issue #%d: %s", event.Payload.Action, issue.Number, issue.Title)
			c.URL = issue.HTMLURL
		case "PushEvent":
			c.Type = "commit"
			c.Status = "committed"
			c.Description = fmt.Sprintf("Pushed %d commits to %s", event.Payload.Size, event.Repo.Name)
		default:
			continue
		}

		out = append(out, c)
	}

	return out, nil
}
