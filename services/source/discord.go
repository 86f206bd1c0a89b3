package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// relevantRoles are the guild roles worth surfacing on a timeline.
var relevantRoles = []string{"Contributor", "Core Team", "Moderator", "VIP", "Booster"}

// Discord synthesizes contributions from guild membership and roles via the
// bot REST API. Without a configured bot token the source degrades to an
// empty result rather than failing the account.
type Discord struct {
	client  *resty.Client
	guildID string
	enabled bool
}

func NewDiscord(cfg *config.Config) *Discord {
	d := &Discord{
		guildID: cfg.Sources.Discord.GuildID,
		enabled: cfg.Sources.Discord.BotToken != "" && cfg.Sources.Discord.GuildID != "",
	}
	d.client = resty.New().
		SetBaseURL(cfg.Sources.Discord.BaseURL).
		SetHeader("Authorization", "Bot "+cfg.Sources.Discord.BotToken)
	if !d.enabled {
		zap.L().Info("Discord bot token or guild not configured, Discord source disabled")
	}
	return d
}

func (d *Discord) PlatformKey() string            { return contribution.PlatformDiscord }
func (d *Discord) DisplayName() string            { return "Discord" }
func (d *Discord) Description() string            { return "Track Community Roles and Member Activity." }
func (d *Discord) IdentifierKind() IdentifierKind { return IdentifierPlatformID }

type discordRole struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type discordMember struct {
	JoinedAt time.Time `json:"joined_at"`
	Roles    []string  `json:"roles"`
	User     struct {
		Username string `json:"username"`
	} `json:"user"`
}

func (d *Discord) Fetch(ctx context.Context, identifier string) ([]contribution.Contribution, error) {
	if !d.enabled || identifier == "" {
		return nil, nil
	}

	var roles []discordRole
	resp, err := d.client.R().
		SetContext(ctx).
		SetResult(&roles).
		Get(fmt.Sprintf("/guilds/%s/roles", d.guildID))
	if err != nil {
		return nil, &FetchError{Platform: d.PlatformKey(), Err: err}
	}
	if resp.IsError() {
		return nil, fetchErrf(d.PlatformKey(), "listing guild roles: unexpected status %s", resp.Status())
	}

	roleNames := make(map[string]string, len(roles))
	for _, r := range roles {
		roleNames[r.ID] = r.Name
	}

	var member discordMember
	resp, err = d.client.R().
		SetContext(ctx).
		SetResult(&member).
		Get(fmt.Sprintf("/guilds/%s/members/%s", d.guildID, identifier))
	if err != nil {
		return nil, &FetchError{Platform: d.PlatformKey(), Err: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		// Not in the guild; nothing to report.
		return nil, nil
	}
	if resp.IsError() {
		return nil, fetchErrf(d.PlatformKey(), "fetching guild member: unexpected status %s", resp.Status())
	}

	joined := member.JoinedAt.Format(contribution.DateLayout)

	var out []contribution.Contribution
	for _, roleID := range member.Roles {
		name := roleNames[roleID]
		if !isRelevantRole(name) {
			continue
		}
		out = append(out, contribution.Contribution{
			ID:          fmt.Sprintf("role-%s", name),
			Platform:    contribution.PlatformDiscord,
			Type:        "role",
			Description: fmt.Sprintf("Achieved rank: %s", name),
			Date:        joined, // join date as proxy
			Status:      "active",
		})
	}

	out = append(out, contribution.Contribution{
		ID:          "discord-join",
		Platform:    contribution.PlatformDiscord,
		Type:        "join",
		Description: "Joined the Discord Community",
		Date:        joined,
		Status:      "joined",
	})

	return out, nil
}

func isRelevantRole(name string) bool {
	for _, r := range relevantRoles {
		if r == name {
			return true
		}
	}
	return false
}
