package models

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a catalog entry. Images are referenced by URL only; the first
// element of the image URL list is the cover, mirrored into ImageURL for
// older clients that only know the single-image field.
type Item struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Price         int64     `gorm:"not null;default:0" json:"price"`
	Category      string    `gorm:"not null" json:"category"`
	Description   *string   `json:"description"`
	ImageURL      *string   `gorm:"column:image_url" json:"image_url"`
	ImageURLsJSON string    `gorm:"column:image_urls_json;default:'[]'" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetImageURLs returns the ordered image URL list
func (i *Item) GetImageURLs() []string {
	var urls []string
	if i.ImageURLsJSON != "" {
		_ = json.Unmarshal([]byte(i.ImageURLsJSON), &urls)
	}
	return urls
}

// SetImageURLs stores the URL list as JSON
func (i *Item) SetImageURLs(urls []string) {
	data, _ := json.Marshal(urls)
	i.ImageURLsJSON = string(data)
}

// BeforeCreate GORM hook - assign a fresh id when missing
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(i.ID) == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ItemRead is the fixed projection returned by every item endpoint.
type ItemRead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	ImageURLs   []string  `json:"image_urls"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToRead converts the stored row to its response projection
func (i *Item) ToRead() ItemRead {
	return ItemRead{
		ID:          i.ID,
		Name:        i.Name,
		Price:       i.Price,
		Category:    i.Category,
		Description: i.Description,
		ImageURL:    i.ImageURL,
		ImageURLs:   i.GetImageURLs(),
		CreatedAt:   i.CreatedAt,
	}
}

// ItemCreate request payload for creating an item
type ItemCreate struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	ImageURLs   []string `json:"image_urls"`
}

// Normalize trims whitespace from input fields
func (r *ItemCreate) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.ImageURLs = normalizeURLs(r.ImageURLs)
}

// ItemUpdate request payload for patching an item.
// Nil fields are left untouched on the stored row.
type ItemUpdate struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	ImageURLs   *[]string `json:"image_urls"`
}

// Normalize trims whitespace from the fields present in the patch
func (r *ItemUpdate) Normalize() {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
	}
	if r.Category != nil {
		*r.Category = strings.TrimSpace(*r.Category)
	}
	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
	}
	if r.ImageURL != nil {
		*r.ImageURL = strings.TrimSpace(*r.ImageURL)
	}
	if r.ImageURLs != nil {
		*r.ImageURLs = normalizeURLs(*r.ImageURLs)
	}
}

func normalizeURLs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// FloorPrice truncates an arbitrary numeric price to a non-negative integer.
// Prices arrive as JSON numbers; the store column is an integer.
func FloorPrice(v float64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return int64(math.Floor(v))
}
