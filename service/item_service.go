package service

import (
	"catalog/models"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ItemService handles catalog item business logic
type ItemService struct {
	db *gorm.DB
}

// NewItemService constructs an item service
func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

// List returns all items ordered by creation time, newest first.
func (s *ItemService) List() ([]models.Item, error) {
	var items []models.Item
	if err := s.db.Order("created_at desc, id desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Count returns the number of stored items.
func (s *ItemService) Count() (int64, error) {
	var total int64
	if err := s.db.Model(&models.Item{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return total, nil
}

// Get fetches an item by ID
func (s *ItemService) Get(id string) (*models.Item, error) {
	var item models.Item
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// Create validates and persists a new item. Name and category are
// required; price defaults to 0 and is floored to an integer. When the
// image URL list is non-empty its first element becomes the cover.
func (s *ItemService) Create(req models.ItemCreate) (*models.Item, error) {
	req.Normalize()

	if req.Name == "" || req.Category == "" {
		return nil, fmt.Errorf("%w: name & category required", ErrValidation)
	}

	item := models.Item{
		Name:     req.Name,
		Category: req.Category,
	}

	if req.Price != nil {
		item.Price = models.FloorPrice(*req.Price)
	}
	if req.Description != "" {
		desc := req.Description
		item.Description = &desc
	}

	if len(req.ImageURLs) > 0 {
		item.SetImageURLs(req.ImageURLs)
		cover := req.ImageURLs[0]
		item.ImageURL = &cover
	} else if req.ImageURL != "" {
		url := req.ImageURL
		item.ImageURL = &url
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return &item, nil
}

// Update applies a partial patch to an existing item. Only fields present
// in the patch are touched; absent fields keep their stored values.
func (s *ItemService) Update(id string, req models.ItemUpdate) (*models.Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id required", ErrValidation)
	}

	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	req.Normalize()

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = models.FloorPrice(*req.Price)
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		// Empty descriptions are stored as absent, not as ""
		if *req.Description == "" {
			item.Description = nil
		} else {
			item.Description = req.Description
		}
	}
	if req.ImageURL != nil {
		if *req.ImageURL == "" {
			item.ImageURL = nil
		} else {
			item.ImageURL = req.ImageURL
		}
	}
	if req.ImageURLs != nil {
		urls := *req.ImageURLs
		item.SetImageURLs(urls)
		if len(urls) > 0 {
			cover := urls[0]
			item.ImageURL = &cover
		}
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}

// Delete removes an item by id. Deleting an already-absent row is not an
// error; the underlying store delete is idempotent.
func (s *ItemService) Delete(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id required", ErrValidation)
	}

	if err := s.db.Delete(&models.Item{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
