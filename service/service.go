package service

import (
	"catalog/storage"
	"errors"

	"gorm.io/gorm"
)

// ErrValidation marks a missing or empty required field. Handlers map it
// to a 400 response.
var ErrValidation = errors.New("validation failed")

// ErrNotFound marks a store lookup that matched no row.
var ErrNotFound = errors.New("item not found")

// Services is the global service container
type Services struct {
	Item     *ItemService
	Settings *SettingsService
	Catalog  *CatalogService
	Images   storage.ImageStore
}

// GlobalServices is the global service instance
var GlobalServices *Services

// InitServices initializes all services
func InitServices(db *gorm.DB, images storage.ImageStore) {
	itemSvc := NewItemService(db)
	settingsSvc := NewSettingsService(db)
	catalogSvc := NewCatalogService(itemSvc, images)

	GlobalServices = &Services{
		Item:     itemSvc,
		Settings: settingsSvc,
		Catalog:  catalogSvc,
		Images:   images,
	}
}
