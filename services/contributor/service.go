package contributor

import (
	"context"

	"github.com/SankarGaneshb/Virtuoso/pkg/errutil"
	"github.com/SankarGaneshb/Virtuoso/services/account"
	"github.com/SankarGaneshb/Virtuoso/services/aggregate"
	"github.com/SankarGaneshb/Virtuoso/services/badge"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// View is the composed contributor profile the API returns.
type View struct {
	ID             string                      `json:"id"`
	Name           string                      `json:"name"`
	Contributions  []contribution.Contribution `json:"contributions"`
	Badges         []badge.Badge               `json:"badges"`
	LinkedAccounts []account.LinkedAccount     `json:"linked_accounts"`
}

type Service struct {
	accounts *account.Service
	fetcher  *aggregate.Orchestrator
	badges   *badge.Engine
}

type ServiceParams struct {
	fx.In
	Accounts *account.Service
	Fetcher  *aggregate.Orchestrator
	Badges   *badge.Engine
}

func NewService(p ServiceParams) *Service {
	return &Service{
		accounts: p.Accounts,
		fetcher:  p.Fetcher,
		badges:   p.Badges,
	}
}

// GetContributorView aggregates live platform data with manual submissions
// into a scored timeline. A profile with every source down still renders,
// just with fewer items.
func (s *Service) GetContributorView(ctx context.Context, userID string) (*View, error) {
	span := trace.SpanFromContext(ctx)

	zapLog := zap.L().With(
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("user_id", userID),
	)

	user, err := s.accounts.Get(ctx, userID)
	if err != nil {
		zapLog.Error("failed to load user", zap.Error(err))
		return nil, errutil.Internal("failed to load user", errutil.WithErr(err))
	}
	if user == nil {
		return nil, errutil.NotFound("user not found")
	}

	linked, err := s.accounts.ListLinkedAccounts(ctx, userID)
	if err != nil {
		zapLog.Error("failed to load linked accounts", zap.Error(err))
		return nil, errutil.Internal("failed to load linked accounts", errutil.WithErr(err))
	}

	manual, err := s.accounts.ListManualContributions(ctx, userID)
	if err != nil {
		zapLog.Error("failed to load manual contributions", zap.Error(err))
		return nil, errutil.Internal("failed to load manual contributions", errutil.WithErr(err))
	}

	fetched := s.fetcher.Gather(ctx, linked)

	timeline := contribution.Merge(fetched, contribution.FromManual(manual))
	earned := s.badges.Score(timeline)

	return &View{
		ID:             user.ID,
		Name:           displayName(user, linked),
		Contributions:  timeline,
		Badges:         earned,
		LinkedAccounts: linked,
	}, nil
}

// displayName prefers the GitHub handle when one is linked.
func displayName(user *account.User, linked []account.LinkedAccount) string {
	for _, acct := range linked {
		if acct.Platform == contribution.PlatformGitHub && acct.PlatformUsername != "" {
			return acct.PlatformUsername
		}
	}
	return user.Username
}
