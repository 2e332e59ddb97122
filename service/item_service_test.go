package service

import (
	"catalog/models"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Item{}, &models.SiteSetting{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestItemCreate_RequiresNameAndCategory(t *testing.T) {
	svc := NewItemService(newTestDB(t))

	tests := []models.ItemCreate{
		{Name: "", Category: "fish"},
		{Name: "flounder", Category: ""},
		{Name: "   ", Category: "fish"},
		{Name: "flounder", Category: "  "},
	}

	for _, req := range tests {
		if _, err := svc.Create(req); !errors.Is(err, ErrValidation) {
			t.Fatalf("Create(%+v) err = %v, want ErrValidation", req, err)
		}
	}
}

func TestItemCreate_DefaultsAndFloor(t *testing.T) {
	svc := NewItemService(newTestDB(t))

	item, err := svc.Create(models.ItemCreate{Name: "활광어", Price: floatPtr(19900.7), Category: "수산물"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Price != 19900 {
		t.Fatalf("price = %d, want 19900", item.Price)
	}
	if item.Category != "수산물" {
		t.Fatalf("category = %q, want 수산물", item.Category)
	}
	if item.ImageURL != nil {
		t.Fatalf("expected nil image_url, got %v", *item.ImageURL)
	}
	if item.ID == "" {
		t.Fatalf("expected generated id")
	}
	if item.CreatedAt.IsZero() {
		t.Fatalf("expected store-assigned created_at")
	}

	// Price omitted defaults to 0
	item, err = svc.Create(models.ItemCreate{Name: "abalone", Category: "수산물"})
	if err != nil {
		t.Fatalf("Create without price: %v", err)
	}
	if item.Price != 0 {
		t.Fatalf("price = %d, want 0", item.Price)
	}
}

func TestItemCreate_CoverFollowsImageURLs(t *testing.T) {
	svc := NewItemService(newTestDB(t))

	urls := []string{"/uploads/items/a.jpg", "/uploads/items/b.jpg"}
	item, err := svc.Create(models.ItemCreate{
		Name:      "flounder",
		Category:  "fish",
		ImageURLs: urls,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ImageURL == nil || *item.ImageURL != urls[0] {
		t.Fatalf("cover = %v, want %q", item.ImageURL, urls[0])
	}
	if got := item.GetImageURLs(); len(got) != 2 || got[0] != urls[0] || got[1] != urls[1] {
		t.Fatalf("image urls = %v, want %v", got, urls)
	}
}

func TestItemUpdate_PartialPatch(t *testing.T) {
	svc := NewItemService(newTestDB(t))

	created, err := svc.Create(models.ItemCreate{
		Name:        "flounder",
		Price:       floatPtr(19900),
		Category:    "fish",
		Description: "fresh",
		ImageURL:    "/uploads/items/a.jpg",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(created.ID, models.ItemUpdate{Description: strPtr("x")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Name != "flounder" || updated.Price != 19900 || updated.Category != "fish" {
		t.Fatalf("patch touched untargeted fields: %+v", updated)
	}
	if updated.ImageURL == nil || *updated.ImageURL != "/uploads/items/a.jpg" {
		t.Fatalf("patch touched image_url: %v", updated.ImageURL)
	}
	if updated.Description == nil || *updated.Description != "x" {
		t.Fatalf("description = %v, want x", updated.Description)
	}
}

func TestItemUpdate_PriceFloorAndEmptyDescription(t *testing.T) {
	svc := NewItemService(newTestDB(t))

	created, err := svc.Create(models.ItemCreate{Name: "a", Category: "b", Description: "keep"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(created.ID, models.ItemUpdate{
		Price:       floatPtr(19.9),
		Description: strPtr("  "),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 19 {
		t.Fatalf("price = %d, want 19", updated.Price)
	}
	if updated.Description != nil {
		t.Fatalf("empty description should be stored as absent, got %v", *updated.Description)
	}
}

func TestItemUpdate_Errors(t *testing.T) {
	svc := NewItemService(newTestDB(t))

	if _, err := svc.Update("  ", models.ItemUpdate{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty id err = %v, want ErrValidation", err)
	}
	if _, err := svc.Update("missing-id", models.ItemUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing row err = %v, want ErrNotFound", err)
	}
}

func TestItemDelete_Idempotent(t *testing.T) {
	svc := NewItemService(newTestDB(t))

	created, err := svc.Create(models.ItemCreate{Name: "a", Category: "b"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("second Delete should succeed: %v", err)
	}
	if err := svc.Delete("never-existed"); err != nil {
		t.Fatalf("Delete of absent id should succeed: %v", err)
	}
	if err := svc.Delete(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty id err = %v, want ErrValidation", err)
	}
}

func TestItemList_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db)

	base := time.Now().Add(-time.Hour)
	rows := []models.Item{
		{ID: "old", Name: "old", Category: "c", CreatedAt: base},
		{ID: "mid", Name: "mid", Category: "c", CreatedAt: base.Add(time.Minute)},
		{ID: "new", Name: "new", Category: "c", CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed row: %v", err)
		}
	}

	items, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].ID != "new" || items[1].ID != "mid" || items[2].ID != "old" {
		t.Fatalf("unexpected order: %s %s %s", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestItemList_Empty(t *testing.T) {
	svc := NewItemService(newTestDB(t))

	items, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(items))
	}
}
