package bootstrap

import (
	"context"

	"github.com/SankarGaneshb/Virtuoso/pkg/repository"
	"github.com/SankarGaneshb/Virtuoso/services/account"
	syncsvc "github.com/SankarGaneshb/Virtuoso/services/sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service prepares the database on startup: schema migration and a seed
// user for empty installations.
type Service struct {
	db    *gorm.DB
	node  *snowflake.Node
	users repository.Repository[account.User]
}

type ServiceParams struct {
	fx.In
	DB   *gorm.DB
	Node *snowflake.Node
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:    p.DB,
		node:  p.Node,
		users: repository.ProvideStore[account.User](p.DB),
	}
}

func (s *Service) Migrate() error {
	return s.db.AutoMigrate(
		&account.User{},
		&account.LinkedAccount{},
		&account.ManualContribution{},
		&syncsvc.CachedContribution{},
	)
}

// Seed creates a test user when the users table is empty. Check and insert
// share one transaction so concurrent startups cannot double-seed.
func (s *Service) Seed(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTrx(tx)

		total, err := users.Count(ctx, &account.User{})
		if err != nil {
			return err
		}
		if total > 0 {
			return nil
		}

		zap.L().Info("[bootstrap] seeding test user")
		return users.Create(ctx, &account.User{
			ID:       s.node.Generate().String(),
			Username: "testuser",
			IsActive: true,
		})
	})
}
