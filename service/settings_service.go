package service

import (
	"catalog/models"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// SettingsService reads and writes the single storefront settings row.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService constructs a settings service
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// SettingsView is the settings response projection. Fields are null until
// a row exists; an empty table is a valid state, not an error.
type SettingsView struct {
	CatalogTitle *string `json:"catalog_title"`
	ContactPhone *string `json:"contact_phone"`
}

// Read returns the lowest-id settings row, or null fields when none exists.
func (s *SettingsService) Read() (SettingsView, error) {
	var row models.SiteSetting
	err := s.db.Order("id asc").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SettingsView{}, nil
	}
	if err != nil {
		return SettingsView{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return SettingsView{CatalogTitle: &row.CatalogTitle, ContactPhone: &row.ContactPhone}, nil
}

// Write stores the catalog title and contact phone. The first write
// inserts a row; later writes update the lowest-id row in place and stamp
// its update time. Two concurrent first-time writers can both insert;
// reads then settle on the lowest id. Accepted for a single-admin tool.
func (s *SettingsService) Write(catalogTitle, contactPhone string) error {
	catalogTitle = strings.TrimSpace(catalogTitle)
	contactPhone = strings.TrimSpace(contactPhone)
	if catalogTitle == "" || contactPhone == "" {
		return fmt.Errorf("%w: catalog_title & contact_phone required", ErrValidation)
	}

	var row models.SiteSetting
	err := s.db.Order("id asc").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.Create(&models.SiteSetting{
			CatalogTitle: catalogTitle,
			ContactPhone: contactPhone,
		}).Error; err != nil {
			return fmt.Errorf("failed to insert settings: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	row.CatalogTitle = catalogTitle
	row.ContactPhone = contactPhone
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

// SeedDefaults inserts an initial settings row from configured brand
// defaults when the table is empty and both values are present. Reads
// still report nulls when the operator configured nothing.
func (s *SettingsService) SeedDefaults(catalogTitle, contactPhone string) error {
	catalogTitle = strings.TrimSpace(catalogTitle)
	contactPhone = strings.TrimSpace(contactPhone)
	if catalogTitle == "" || contactPhone == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.SiteSetting{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count settings: %w", err)
	}
	if count > 0 {
		return nil
	}

	return s.Write(catalogTitle, contactPhone)
}
