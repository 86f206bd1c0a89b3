package source

import (
	"context"
	"fmt"
	"time"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"

	"github.com/go-resty/resty/v2"
)

const maxForumActions = 10

// Discourse surfaces forum posts, replies, and accepted solutions.
type Discourse struct {
	client  *resty.Client
	baseURL string
}

func NewDiscourse(cfg *config.Config) *Discourse {
	return &Discourse{
		client:  resty.New().SetBaseURL(cfg.Sources.Discourse.BaseURL),
		baseURL: cfg.Sources.Discourse.BaseURL,
	}
}

func (d *Discourse) PlatformKey() string            { return contribution.PlatformForum }
func (d *Discourse) DisplayName() string            { return "Community Forum" }
func (d *Discourse) Description() string            { return "Track Posts, Solutions, and Forum Activity." }
func (d *Discourse) IdentifierKind() IdentifierKind { return IdentifierUsername }

type discourseUser struct {
	User *struct {
		ID              int `json:"id"`
		AcceptedAnswers int `json:"accepted_answers"`
	} `json:"user"`
}

type discourseActions struct {
	UserActions []struct {
		PostID     int64  `json:"post_id"`
		ActionType int    `json:"action_type"`
		Title      string `json:"title"`
		CreatedAt  string `json:"created_at"`
		Slug       string `json:"slug"`
		TopicID    int64  `json:"topic_id"`
		PostNumber int    `json:"post_number"`
	} `json:"user_actions"`
}

func (d *Discourse) Fetch(ctx context.Context, identifier string) ([]contribution.Contribution, error) {
	if identifier == "" {
		return nil, nil
	}

	var profile discourseUser
	resp, err := d.client.R().
		SetContext(ctx).
		SetResult(&profile).
		Get(fmt.Sprintf("/u/%s.json", identifier))
	if err != nil {
		return nil, &FetchError{Platform: d.PlatformKey(), Err: err}
	}
	if resp.IsError() {
		return nil, fetchErrf(d.PlatformKey(), "fetching user profile: unexpected status %s", resp.Status())
	}
	if profile.User == nil {
		return nil, nil
	}

	var actions discourseActions
	resp, err = d.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"offset":   "0",
			"username": identifier,
			"filter":   "4,5", // posts and replies
		}).
		SetResult(&actions).
		Get("/user_actions.json")
	if err != nil {
		return nil, &FetchError{Platform: d.PlatformKey(), Err: err}
	}
	if resp.IsError() {
		return nil, fetchErrf(d.PlatformKey(), "fetching user actions: unexpected status %s", resp.Status())
	}

	var out []contribution.Contribution
	for i, action := range actions.UserActions {
		if i >= maxForumActions {
			break
		}
		kind := "post"
		if action.ActionType == 5 {
			kind = "reply"
		}
		date := action.CreatedAt
		if len(date) > len(contribution.DateLayout) {
			date = date[:len(contribution.DateLayout)]
		}
		out = append(out, contribution.Contribution{
			ID:          fmt.Sprintf("discourse-%d", action.PostID),
			Platform:    contribution.PlatformForum,
			Type:        kind,
			Description: fmt.Sprintf("Posted in %q", action.Title),
			Date:        date,
			Status:      "posted",
			URL:         fmt.Sprintf("%s/t/%s/%d/%d", d.baseURL, action.Slug, action.TopicID, action.PostNumber),
		})
	}

	if profile.User.AcceptedAnswers > 0 {
		out = append(out, contribution.Contribution{
			ID:          "discourse-solutions",
			Platform:    contribution.PlatformForum,
			Type:        "solution",
			Description: fmt.Sprintf("Provided %d Correct Solutions", profile.User.AcceptedAnswers),
			Date:        time.Now().Format(contribution.DateLayout),
			Status:      "accepted",
		})
	}

	return out, nil
}
