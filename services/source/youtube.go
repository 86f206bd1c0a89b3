package source

import (
	"context"
	"fmt"
	"time"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"

	"github.com/go-resty/resty/v2"
)

// YouTube lists a channel's published videos, newest first.
type YouTube struct {
	client *resty.Client
	apiKey string
}

func NewYouTube(cfg *config.Config) *YouTube {
	return &YouTube{
		client: resty.New().SetBaseURL(cfg.Sources.Youtube.BaseURL),
		apiKey: cfg.Sources.Youtube.APIKey,
	}
}

func (y *YouTube) PlatformKey() string            { return contribution.PlatformYouTube }
func (y *YouTube) DisplayName() string            { return "YouTube" }
func (y *YouTube) Description() string            { return "Track published videos and streams." }
func (y *YouTube) IdentifierKind() IdentifierKind { return IdentifierPlatformID }

type youtubeSearch struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			PublishedAt time.Time `json:"publishedAt"`
			Title       string    `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

func (y *YouTube) Fetch(ctx context.Context, identifier string) ([]contribution.Contribution, error) {
	if identifier == "" {
		return nil, nil
	}
	if y.apiKey == "" {
		return nil, fetchErrf(y.PlatformKey(), "api key not configured")
	}

	var result youtubeSearch
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"channelId":  identifier,
			"order":      "date",
			"type":       "video",
			"maxResults": "50",
			"key":        y.apiKey,
		}).
		SetResult(&result).
		Get("/search")
	if err != nil {
		return nil, &FetchError{Platform: y.PlatformKey(), Err: err}
	}
	if resp.IsError() {
		return nil, fetchErrf(y.PlatformKey(), "unexpected status %s", resp.Status())
	}

	out := make([]contribution.Contribution, 0, len(result.Items))
	for _, item := range result.Items {
		out = append(out, contribution.Contribution{
			ID:          fmt.Sprintf("yt-%s", item.ID.VideoID),
			Platform:    contribution.PlatformYouTube,
			Type:        "video",
			Description: item.Snippet.Title,
			Date:        item.Snippet.PublishedAt.Format(contribution.DateLayout),
			Status:      "published",
			URL:         fmt.Sprintf("https://youtube.com/watch?v=%s", item.ID.VideoID),
		})
	}

	return out, nil
}
