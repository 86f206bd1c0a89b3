package sync

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/pkg/repository"
	"github.com/SankarGaneshb/Virtuoso/services/account"
	"github.com/SankarGaneshb/Virtuoso/services/aggregate"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"
	"github.com/SankarGaneshb/Virtuoso/services/source"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engine periodically refreshes the contribution cache for every active
// user with linked accounts, independently of the request path.
type Engine struct {
	db       *gorm.DB
	cache    repository.Repository[CachedContribution]
	accounts *account.Service
	registry *source.Registry
	fetcher  *aggregate.Orchestrator
	interval time.Duration

	inCycle atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

type Params struct {
	fx.In
	Config   *config.Config
	DB       *gorm.DB
	Accounts *account.Service
	Registry *source.Registry
	Fetcher  *aggregate.Orchestrator
}

func New(p Params) *Engine {
	interval := p.Config.Sync.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	return &Engine{
		db:       p.DB,
		cache:    repository.ProvideStore[CachedContribution](p.DB),
		accounts: p.Accounts,
		registry: p.Registry,
		fetcher:  p.Fetcher,
		interval: interval,
	}
}

// Start launches the recurring sync loop: one cycle immediately, then one
// per interval. Safe to call once.
func (e *Engine) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})

	zap.L().Info("[sync] scheduler started", zap.Duration("interval", e.interval))

	go e.run(ctx)
}

// Stop cancels the loop and waits for it to exit. An in-flight cycle runs
// to completion.
func (e *Engine) Stop() {
	if e.cancel == nil {
		return
	}
	e.cancel()
	<-e.done
	zap.L().Info("[sync] scheduler stopped")
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	if err := e.RunCycle(ctx); err != nil {
		zap.L().Error("[sync] cycle failed", zap.Error(err))
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := e.RunCycle(ctx); err != nil {
				zap.L().Error("[sync] cycle failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// RunCycle walks every user once. A tick arriving while the previous cycle
// is still in flight is skipped rather than queued or overlapped. One
// user's or account's failure never blocks the rest of the cycle.
func (e *Engine) RunCycle(ctx context.Context) error {
	if !e.inCycle.CompareAndSwap(false, true) {
		zap.L().Warn("[sync] previous cycle still running, skipping this tick")
		return nil
	}
	defer e.inCycle.Store(false)

	start := time.Now()
	zap.L().Info("[sync] starting sync cycle")

	users, err := e.accounts.ListWithLinkedAccounts(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		if !user.IsActive {
			zap.L().Debug("[sync] skipping inactive user", zap.String("username", user.Username))
			continue
		}
		if len(user.LinkedAccounts) == 0 {
			continue
		}
		e.syncUser(ctx, user)
	}

	zap.L().Info("[sync] cycle complete", zap.Duration("duration", time.Since(start)))
	return nil
}

func (e *Engine) syncUser(ctx context.Context, user *account.User) {
	synced := false

	for _, acct := range user.LinkedAccounts {
		src, ok := e.registry.Find(acct.Platform)
		if !ok {
			zap.L().Warn("[sync] no source registered for platform",
				zap.String("platform", acct.Platform),
				zap.String("user_id", user.ID),
			)
			continue
		}

		items := e.fetcher.FetchOne(ctx, src, acct.Identifier())
		if len(items) == 0 {
			continue
		}

		if err := e.cacheBatch(ctx, user.ID, acct.Platform, items); err != nil {
			zap.L().Error("[sync] failed to cache contributions",
				zap.String("user_id", user.ID),
				zap.String("platform", acct.Platform),
				zap.Error(err),
			)
			continue
		}

		synced = true
	}

	if synced {
		// Fire-and-forget; a failed stamp must not abort the cycle.
		if err := e.accounts.TouchLastActive(ctx, user.ID); err != nil {
			zap.L().Warn("[sync] failed to stamp user activity",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
	}
}

// cacheBatch upserts one account's fetch result atomically. On conflict
// only description, url, and fetched_at move; the original date stays.
func (e *Engine) cacheBatch(ctx context.Context, userID, platform string, items []contribution.Contribution) error {
	now := time.Now()

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			row := CachedContribution{
				UserID:      userID,
				Platform:    platform,
				ExternalID:  item.ID,
				Date:        item.Date,
				Description: item.Description,
				URL:         item.URL,
				FetchedAt:   now,
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "user_id"}, {Name: "platform"}, {Name: "external_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"description", "url", "fetched_at",
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Register wires the engine into the application lifecycle.
func Register(lc fx.Lifecycle, e *Engine) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			e.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			e.Stop()
			return nil
		},
	})
}
