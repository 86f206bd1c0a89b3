package source

import (
	"context"
	"fmt"
	"time"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"

	"github.com/go-resty/resty/v2"
)

// Reddit lists a user's submitted posts.
type Reddit struct {
	client *resty.Client
}

func NewReddit(cfg *config.Config) *Reddit {
	return &Reddit{
		client: resty.New().
			SetBaseURL(cfg.Sources.Reddit.BaseURL).
			SetHeader("User-Agent", "CommunityContributionAggregator/1.0"),
	}
}

func (r *Reddit) PlatformKey() string            { return contribution.PlatformReddit }
func (r *Reddit) DisplayName() string            { return "Reddit" }
func (r *Reddit) Description() string            { return "Track posts and comments on community subreddits." }
func (r *Reddit) IdentifierKind() IdentifierKind { return IdentifierUsername }

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Name       string  `json:"name"`
				Title      string  `json:"title"`
				Subreddit  string  `json:"subreddit"`
				CreatedUTC float64 `json:"created_utc"`
				Permalink  string  `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (r *Reddit) Fetch(ctx context.Context, identifier string) ([]contribution.Contribution, error) {
	if identifier == "" {
		return nil, nil
	}

	var listing redditListing
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("limit", "50").
		SetResult(&listing).
		Get(fmt.Sprintf("/user/%s/submitted.json", identifier))
	if err != nil {
		return nil, &FetchError{Platform: r.PlatformKey(), Err: err}
	}
	if resp.IsError() {
		return nil, fetchErrf(r.PlatformKey(), "unexpected status %s", resp.Status())
	}

	out := make([]contribution.Contribution, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		created := time.Unix(int64(post.CreatedUTC), 0).UTC()
		out = append(out, contribution.Contribution{
			ID:          fmt.Sprintf("reddit-%s", post.Name),
			Platform:    contribution.PlatformReddit,
			Type:        "post",
			Description: fmt.Sprintf("%s in r/%s", post.Title, post.Subreddit),
			Date:        created.Format(contribution.DateLayout),
			Status:      "posted",
			URL:         fmt.Sprintf("https://reddit.com%s", post.Permalink),
		})
	}

	return out, nil
}
