package handlers

import (
	"catalog/config"
	"catalog/models"
	"catalog/service"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var uploadsTotal uint64

// writeServiceError maps service errors to HTTP responses: validation
// failures are 400, store-reported missing rows 404, everything else 500
// with the backend message surfaced verbatim.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ListItems lists all items, newest first
func ListItems(c *gin.Context) {
	items, err := service.GlobalServices.Item.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reads := make([]models.ItemRead, 0, len(items))
	for i := range items {
		reads = append(reads, items[i].ToRead())
	}
	c.JSON(http.StatusOK, gin.H{"items": reads})
}

// CreateItem creates a catalog item
func CreateItem(c *gin.Context) {
	var req models.ItemCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := service.GlobalServices.Item.Create(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item.ToRead()})
}

// UpdateItem applies a partial patch to an item
func UpdateItem(c *gin.Context) {
	id := c.Param("id")

	var req models.ItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := service.GlobalServices.Item.Update(id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item.ToRead()})
}

// DeleteItem deletes an item; deleting an absent id still succeeds
func DeleteItem(c *gin.Context) {
	id := c.Param("id")

	if err := service.GlobalServices.Item.Delete(id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetSettings returns the storefront settings row, nulls when unset
func GetSettings(c *gin.Context) {
	view, err := service.GlobalServices.Settings.Read()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateSettings writes catalog title and contact phone
func UpdateSettings(c *gin.Context) {
	var req struct {
		CatalogTitle string `json:"catalog_title"`
		ContactPhone string `json:"contact_phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := service.GlobalServices.Settings.Write(req.CatalogTitle, req.ContactPhone); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UploadImage stores a single multipart file in the image bucket and
// returns its object path and public URL
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	maxBytes := int64(config.Settings.MaxUploadMB) << 20
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	path, publicURL, err := service.GlobalServices.Images.Save(data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	atomic.AddUint64(&uploadsTotal, 1)
	c.JSON(http.StatusOK, gin.H{"path": path, "publicUrl": publicURL})
}

// SaveItem runs the whole save flow server-side from one multipart form:
// upload new files in order, append their URLs to the retained ones, and
// create or update the item. Form fields: id (optional), name, price,
// category, description, image_urls (repeated), files (repeated).
func SaveItem(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	formValue := func(key string) string {
		if vs := form.Value[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	req := service.SaveRequest{
		ID:           strings.TrimSpace(formValue("id")),
		Name:         formValue("name"),
		Category:     formValue("category"),
		Description:  formValue("description"),
		RetainedURLs: form.Value["image_urls"],
	}

	if priceStr := strings.TrimSpace(formValue("price")); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		req.Price = &price
	}

	maxBytes := int64(config.Settings.MaxUploadMB) << 20
	for _, fh := range form.File["files"] {
		if maxBytes > 0 && fh.Size > maxBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large: " + fh.Filename})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		req.Files = append(req.Files, service.UploadFile{
			Data:        data,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}

	item, err := service.GlobalServices.Catalog.Save(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	uploaded := uint64(len(req.Files))
	if uploaded > 0 {
		atomic.AddUint64(&uploadsTotal, uploaded)
	}

	c.JSON(http.StatusOK, gin.H{"item": item.ToRead()})
}

// UploadsTotal reports successful image uploads since startup
func UploadsTotal() uint64 {
	return atomic.LoadUint64(&uploadsTotal)
}
