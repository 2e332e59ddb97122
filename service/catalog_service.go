package service

import (
	"catalog/models"
	"catalog/storage"
	"fmt"
)

// CatalogService composes the save flow: upload newly selected images,
// append their URLs to the retained ones, designate the first URL as the
// cover, then create or update the item record.
type CatalogService struct {
	items  *ItemService
	images storage.ImageStore
}

// NewCatalogService constructs a catalog service
func NewCatalogService(items *ItemService, images storage.ImageStore) *CatalogService {
	return &CatalogService{items: items, images: images}
}

// UploadFile is one newly selected file in a save request.
type UploadFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// SaveRequest carries one admin save: item fields, URLs retained from an
// edit session, and files still to be uploaded.
type SaveRequest struct {
	ID           string // empty means create
	Name         string
	Price        *float64
	Category     string
	Description  string
	RetainedURLs []string
	Files        []UploadFile
}

// Save runs the aggregation flow. Files upload one at a time in selection
// order; the first failure aborts the whole save before any row is
// written. Images uploaded before the failure stay in the bucket — there
// is no compensating delete.
func (s *CatalogService) Save(req SaveRequest) (*models.Item, error) {
	urls := make([]string, 0, len(req.RetainedURLs)+len(req.Files))
	urls = append(urls, req.RetainedURLs...)

	for _, f := range req.Files {
		_, publicURL, err := s.images.Save(f.Data, f.Filename, f.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload failed for %s: %w", f.Filename, err)
		}
		urls = append(urls, publicURL)
	}

	if req.ID == "" {
		create := models.ItemCreate{
			Name:        req.Name,
			Price:       req.Price,
			Category:    req.Category,
			Description: req.Description,
		}
		if len(urls) > 0 {
			create.ImageURLs = urls
			create.ImageURL = urls[0]
		}
		return s.items.Create(create)
	}

	update := models.ItemUpdate{
		Name:     &req.Name,
		Price:    req.Price,
		Category: &req.Category,
	}
	if req.Description != "" {
		update.Description = &req.Description
	}
	if len(urls) > 0 {
		update.ImageURLs = &urls
		cover := urls[0]
		update.ImageURL = &cover
	}
	return s.items.Update(req.ID, update)
}
