package models

import "time"

// SiteSetting is the single storefront configuration row (catalog title
// and contact phone). Reads always pick the lowest id so a racing pair of
// first-time writers cannot flip which row wins.
type SiteSetting struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CatalogTitle string    `gorm:"type:text" json:"catalog_title"`
	ContactPhone string    `gorm:"type:text" json:"contact_phone"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the table name used by the storefront
func (SiteSetting) TableName() string {
	return "site_settings"
}
