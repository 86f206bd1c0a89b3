package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// QueryOption tweaks a find query before execution.
type QueryOption func(*gorm.DB) *gorm.DB

func WithOrder(order string) QueryOption {
	return func(tx *gorm.DB) *gorm.DB { return tx.Order(order) }
}

func WithLimit(limit int) QueryOption {
	return func(tx *gorm.DB) *gorm.DB { return tx.Limit(limit) }
}

func WithPreload(association string) QueryOption {
	return func(tx *gorm.DB) *gorm.DB { return tx.Preload(association) }
}

// WithFilter adds a raw condition for predicates a struct query cannot
// express, such as range comparisons.
func WithFilter(condition string, args ...any) QueryOption {
	return func(tx *gorm.DB) *gorm.DB { return tx.Where(condition, args...) }
}

// Repository is the generic persistence surface shared by the services.
// FindOne returns (nil, nil) when no row matches so callers can distinguish
// absence from infrastructure failure.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...QueryOption) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id string, values any) error
	Count(ctx context.Context, query *T) (int64, error)
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore returns a gorm-backed Repository for the given model.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (s *store[T]) WithTrx(tx *gorm.DB) Repository[T] {
	if tx == nil {
		return s
	}
	return &store[T]{db: tx}
}

func (s *store[T]) Find(ctx context.Context, query *T, opts ...QueryOption) ([]*T, error) {
	tx := s.db.WithContext(ctx).Where(query)
	for _, opt := range opts {
		tx = opt(tx)
	}

	var out []*T
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store[T]) FindOne(ctx context.Context, query *T, opts ...QueryOption) (*T, error) {
	tx := s.db.WithContext(ctx).Where(query)
	for _, opt := range opts {
		tx = opt(tx)
	}

	var out T
	if err := tx.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (s *store[T]) Create(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Create(entity).Error
}

func (s *store[T]) Update(ctx context.Context, id string, values any) error {
	var model T
	return s.db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(values).Error
}

func (s *store[T]) Count(ctx context.Context, query *T) (int64, error) {
	var model T
	var total int64
	if err := s.db.WithContext(ctx).Model(&model).Where(query).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
