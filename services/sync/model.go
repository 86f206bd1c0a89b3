package sync

import (
	"time"
)

// CachedContribution is the durable form of a fetched contribution, owned
// exclusively by the sync engine. Upserted on the natural key, never
// deleted outside full user removal.
type CachedContribution struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID      string    `gorm:"column:user_id;uniqueIndex:idx_cache_natural_key" json:"user_id"`
	Platform    string    `gorm:"column:platform;uniqueIndex:idx_cache_natural_key" json:"platform"`
	ExternalID  string    `gorm:"column:external_id;uniqueIndex:idx_cache_natural_key" json:"external_id"`
	Date        string    `gorm:"column:date" json:"date"`
	Description string    `gorm:"column:description" json:"description"`
	URL         string    `gorm:"column:url" json:"url,omitempty"`
	FetchedAt   time.Time `gorm:"column:fetched_at" json:"fetched_at"`
}

func (CachedContribution) TableName() string { return "cached_contributions" }
