package account

import (
	"time"
)

// User is a community member whose contributions get aggregated.
type User struct {
	ID           string     `gorm:"column:id;primaryKey" json:"id"`
	Username     string     `gorm:"column:username;uniqueIndex" json:"username"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"is_active"`
	LastActiveAt *time.Time `gorm:"column:last_active_at" json:"last_active_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`

	LinkedAccounts []LinkedAccount `gorm:"foreignKey:UserID" json:"linked_accounts,omitempty"`
}

func (User) TableName() string { return "users" }

// LinkedAccount ties a user to one upstream platform. Exactly one of
// PlatformUserID / PlatformUsername is populated; it is the identifier
// handed to the platform's fetcher. Re-linking overwrites.
type LinkedAccount struct {
	ID               string    `gorm:"column:id;primaryKey" json:"id"`
	UserID           string    `gorm:"column:user_id;uniqueIndex:idx_user_platform" json:"user_id"`
	Platform         string    `gorm:"column:platform;uniqueIndex:idx_user_platform" json:"platform"`
	PlatformUserID   string    `gorm:"column:platform_user_id" json:"platform_user_id,omitempty"`
	PlatformUsername string    `gorm:"column:platform_username" json:"platform_username,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (LinkedAccount) TableName() string { return "linked_accounts" }

// Identifier returns the value to pass to the platform fetcher.
func (a LinkedAccount) Identifier() string {
	if a.PlatformUsername != "" {
		return a.PlatformUsername
	}
	return a.PlatformUserID
}

// ManualContribution is a user-submitted record (publication, talk, ...)
// that never goes through a platform fetcher.
type ManualContribution struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	UserID      string    `gorm:"column:user_id;index" json:"user_id"`
	Title       string    `gorm:"column:title" json:"title"`
	URL         string    `gorm:"column:url" json:"url,omitempty"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Category    string    `gorm:"column:category" json:"category"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ManualContribution) TableName() string { return "manual_contributions" }
