package badge

import (
	"github.com/SankarGaneshb/Virtuoso/services/contribution"
)

// Stats are the aggregates the rule predicates consume. Derived fresh from
// the timeline on every scoring pass, never persisted.
type Stats struct {
	TotalCount       int
	MergedPRCount    int
	IssueCount       int
	ChatCount        int
	HasChatRole      bool
	ForumPostCount   int
	PublicationCount int
}

// DeriveStats walks the timeline once and counts the predicate inputs.
func DeriveStats(timeline []contribution.Contribution) Stats {
	stats := Stats{TotalCount: len(timeline)}

	for _, c := range timeline {
		switch c.Platform {
		case contribution.PlatformGitHub:
			if c.Type == "pull_request" && c.Status == "merged" {
				stats.MergedPRCount++
			}
			if c.Type == "issue" {
				stats.IssueCount++
			}
		case contribution.PlatformDiscord:
			stats.ChatCount++
			if c.Type == "role" {
				stats.HasChatRole = true
			}
		case contribution.PlatformForum:
			stats.ForumPostCount++
		case contribution.PlatformPublication:
			stats.PublicationCount++
		}
	}

	return stats
}

// vars exposes the stats as CEL variables for expression rules.
func (s Stats) vars() map[string]any {
	return map[string]any{
		"total_count":       s.TotalCount,
		"merged_pr_count":   s.MergedPRCount,
		"issue_count":       s.IssueCount,
		"chat_count":        s.ChatCount,
		"has_chat_role":     s.HasChatRole,
		"forum_post_count":  s.ForumPostCount,
		"publication_count": s.PublicationCount,
	}
}
