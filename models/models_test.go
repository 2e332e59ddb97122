package models

import (
	"math"
	"reflect"
	"testing"
)

func TestFloorPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{19.9, 19},
		{19900.7, 19900},
		{0, 0},
		{-5.5, 0},
		{42, 42},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := FloorPrice(tt.in); got != tt.want {
			t.Fatalf("FloorPrice(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestItemImageURLsRoundTrip(t *testing.T) {
	var item Item

	if urls := item.GetImageURLs(); len(urls) != 0 {
		t.Fatalf("expected no URLs on zero value, got %v", urls)
	}

	want := []string{"/uploads/items/a.jpg", "/uploads/items/b.png"}
	item.SetImageURLs(want)

	if got := item.GetImageURLs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("GetImageURLs = %v, want %v", got, want)
	}
}

func TestItemCreateNormalize(t *testing.T) {
	req := ItemCreate{
		Name:      "  활광어  ",
		Category:  " 수산물 ",
		ImageURL:  " /uploads/items/x.jpg ",
		ImageURLs: []string{" /a.jpg ", "", "  ", "/b.jpg"},
	}
	req.Normalize()

	if req.Name != "활광어" || req.Category != "수산물" {
		t.Fatalf("unexpected trim result: %q %q", req.Name, req.Category)
	}
	if req.ImageURL != "/uploads/items/x.jpg" {
		t.Fatalf("unexpected image URL: %q", req.ImageURL)
	}
	if want := []string{"/a.jpg", "/b.jpg"}; !reflect.DeepEqual(req.ImageURLs, want) {
		t.Fatalf("ImageURLs = %v, want %v", req.ImageURLs, want)
	}
}

func TestItemUpdateNormalize_NilFieldsUntouched(t *testing.T) {
	var req ItemUpdate
	req.Normalize()

	if req.Name != nil || req.Price != nil || req.Category != nil ||
		req.Description != nil || req.ImageURL != nil || req.ImageURLs != nil {
		t.Fatalf("expected nil fields to stay nil: %+v", req)
	}
}
