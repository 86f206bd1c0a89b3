package account

import (
	"context"
	"strings"
	"time"

	"github.com/SankarGaneshb/Virtuoso/pkg/errutil"
	"github.com/SankarGaneshb/Virtuoso/pkg/repository"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db      *gorm.DB
	node    *snowflake.Node
	users   repository.Repository[User]
	links   repository.Repository[LinkedAccount]
	manuals repository.Repository[ManualContribution]
}

type ServiceParams struct {
	fx.In
	DB   *gorm.DB
	Node *snowflake.Node
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:      p.DB,
		node:    p.Node,
		users:   repository.ProvideStore[User](p.DB),
		links:   repository.ProvideStore[LinkedAccount](p.DB),
		manuals: repository.ProvideStore[ManualContribution](p.DB),
	}
}

// Get returns the user or (nil, nil) when unknown.
func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errutil.BadRequest("user id is required")
	}
	return s.users.FindOne(ctx, &User{ID: userID})
}

// LinkAccount attaches a platform identity to a user, overwriting any
// previous link for the same platform. Exactly one identifier must be given.
func (s *Service) LinkAccount(ctx context.Context, userID, platform, platformUserID, platformUsername string) (*LinkedAccount, error) {
	if strings.TrimSpace(platform) == "" {
		return nil, errutil.ValidationFailed("platform is required")
	}
	hasID := strings.TrimSpace(platformUserID) != ""
	hasUsername := strings.TrimSpace(platformUsername) != ""
	if hasID == hasUsername {
		return nil, errutil.ValidationFailed("exactly one of platform_user_id or platform_username must be set")
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errutil.NotFound("user not found")
	}

	link := &LinkedAccount{
		ID:               s.node.Generate().String(),
		UserID:           userID,
		Platform:         platform,
		PlatformUserID:   platformUserID,
		PlatformUsername: platformUsername,
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"platform_user_id", "platform_username", "updated_at",
		}),
	}).Create(link).Error; err != nil {
		zap.L().Error("failed to link account",
			zap.String("user_id", userID),
			zap.String("platform", platform),
			zap.Error(err),
		)
		return nil, errutil.Internal("failed to link account", errutil.WithErr(err))
	}

	return link, nil
}

// ListLinkedAccounts returns every platform link for the user in link order.
func (s *Service) ListLinkedAccounts(ctx context.Context, userID string) ([]LinkedAccount, error) {
	rows, err := s.links.Find(ctx, &LinkedAccount{UserID: userID},
		repository.WithOrder("created_at asc"))
	if err != nil {
		return nil, err
	}

	out := make([]LinkedAccount, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

// SubmitManual records a manually submitted contribution.
func (s *Service) SubmitManual(ctx context.Context, userID, title, url, description, category string) (*ManualContribution, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errutil.ValidationFailed("title is required")
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errutil.NotFound("user not found")
	}

	manual := &ManualContribution{
		ID:          s.node.Generate().String(),
		UserID:      userID,
		Title:       title,
		URL:         url,
		Description: description,
		Category:    category,
		CreatedAt:   time.Now(),
	}
	if err := s.manuals.Create(ctx, manual); err != nil {
		return nil, errutil.Internal("failed to submit contribution", errutil.WithErr(err))
	}

	return manual, nil
}

// ListManualContributions returns the user's manual records, newest first.
func (s *Service) ListManualContributions(ctx context.Context, userID string) ([]ManualContribution, error) {
	rows, err := s.manuals.Find(ctx, &ManualContribution{UserID: userID},
		repository.WithOrder("created_at desc"))
	if err != nil {
		return nil, err
	}

	out := make([]ManualContribution, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

// ListWithLinkedAccounts returns every user with their links preloaded.
// The sync engine walks this list once per cycle.
func (s *Service) ListWithLinkedAccounts(ctx context.Context) ([]*User, error) {
	return s.users.Find(ctx, &User{}, repository.WithPreload("LinkedAccounts"))
}

// TouchLastActive stamps the user's last activity time. Best effort; the
// caller only logs failures.
func (s *Service) TouchLastActive(ctx context.Context, userID string) error {
	return s.users.Update(ctx, userID, map[string]any{"last_active_at": time.Now()})
}
