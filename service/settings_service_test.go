package service

import (
	"catalog/models"
	"errors"
	"testing"
	"time"
)

func TestSettingsRead_EmptyTable(t *testing.T) {
	svc := NewSettingsService(newTestDB(t))

	view, err := svc.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if view.CatalogTitle != nil || view.ContactPhone != nil {
		t.Fatalf("expected null fields on empty table, got %+v", view)
	}
}

func TestSettingsWrite_Validation(t *testing.T) {
	svc := NewSettingsService(newTestDB(t))

	if err := svc.Write("", "010-1234"); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty title err = %v, want ErrValidation", err)
	}
	if err := svc.Write("Shop", "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty phone err = %v, want ErrValidation", err)
	}
}

func TestSettingsWrite_InsertThenUpdateSameRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	if err := svc.Write("Fish Market", "010-1111"); err != nil {
		t.Fatalf("first Write: %v", err)
	}

	var first models.SiteSetting
	if err := db.Order("id asc").First(&first).Error; err != nil {
		t.Fatalf("read first row: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if err := svc.Write("Fish Market 2", "010-2222"); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	var count int64
	if err := db.Model(&models.SiteSetting{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("row count = %d, want 1", count)
	}

	var second models.SiteSetting
	if err := db.Order("id asc").First(&second).Error; err != nil {
		t.Fatalf("read updated row: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("row id changed: %d -> %d", first.ID, second.ID)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("updated_at not refreshed: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}

	view, err := svc.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if view.CatalogTitle == nil || *view.CatalogTitle != "Fish Market 2" {
		t.Fatalf("catalog_title = %v, want Fish Market 2", view.CatalogTitle)
	}
	if view.ContactPhone == nil || *view.ContactPhone != "010-2222" {
		t.Fatalf("contact_phone = %v, want 010-2222", view.ContactPhone)
	}
}

func TestSettingsSeedDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	// Either value missing: nothing seeded
	if err := svc.SeedDefaults("Shop", ""); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	if view, _ := svc.Read(); view.CatalogTitle != nil {
		t.Fatalf("expected no seed without phone")
	}

	if err := svc.SeedDefaults("Shop", "010-0000"); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	view, err := svc.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if view.CatalogTitle == nil || *view.CatalogTitle != "Shop" {
		t.Fatalf("catalog_title = %v, want Shop", view.CatalogTitle)
	}

	// Existing row wins over later seeds
	if err := svc.SeedDefaults("Other", "010-9999"); err != nil {
		t.Fatalf("SeedDefaults on populated table: %v", err)
	}
	if view, _ := svc.Read(); *view.CatalogTitle != "Shop" {
		t.Fatalf("seed overwrote existing row: %v", *view.CatalogTitle)
	}
}
