package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hanouti-api/internal/model"
	"hanouti-api/pkg/cache"
	"hanouti-api/pkg/logger"
	"hanouti-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const homepageCacheKey = "homepage:active"

// HomepageHandler serves the storefront homepage content blobs
type HomepageHandler struct {
	db    *gorm.DB
	cache *cache.Client
}

func NewHomepageHandler(db *gorm.DB, cache *cache.Client) *HomepageHandler {
	return &HomepageHandler{db: db, cache: cache}
}

// HomepageSectionRequest is the admin upsert payload for one section
type HomepageSectionRequest struct {
	Payload  json.RawMessage `json:"payload" validate:"required"`
	IsActive bool            `json:"is_active"`
}

// GetPublic retrieves the active homepage sections. Cached, and fails
// open to an empty list when the database is unreachable.
func (h *HomepageHandler) GetPublic(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	var sections []model.HomepageSection
	if h.cache.GetJSON(ctx, homepageCacheKey, &sections) {
		prometheus.RecordCacheRequest("homepage", "hit")
		return c.JSON(http.StatusOK, sections)
	}
	prometheus.RecordCacheRequest("homepage", "miss")

	result := h.db.Where("is_active = ?", true).Order("section ASC").Find(&sections)
	if result.Error != nil {
		if isConnectivityError(result.Error) {
			log.Warn("Database unreachable, serving empty homepage", zap.Error(result.Error))
			return c.JSON(http.StatusOK, []model.HomepageSection{})
		}
		log.Error("Failed to retrieve homepage sections", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve homepage content",
		})
	}

	h.cache.SetJSON(ctx, homepageCacheKey, sections)
	return c.JSON(http.StatusOK, sections)
}

// ListAdmin retrieves every section, inactive included
func (h *HomepageHandler) ListAdmin(c echo.Context) error {
	log := logger.FromContext(c)

	var sections []model.HomepageSection
	if err := h.db.Order("section ASC").Find(&sections).Error; err != nil {
		log.Error("Failed to retrieve homepage sections", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve homepage content",
		})
	}

	return c.JSON(http.StatusOK, sections)
}

// Upsert creates or replaces one section's payload
func (h *HomepageHandler) Upsert(c echo.Context) error {
	log := logger.FromContext(c)
	sectionKey := c.Param("section")

	if !model.KnownSection(sectionKey) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown homepage section"})
	}

	var req HomepageSectionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("section", sectionKey), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil || !json.Valid(req.Payload) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payload must be a JSON document"})
	}

	var section model.HomepageSection
	err := h.db.Where("section = ?", sectionKey).First(&section).Error
	switch {
	case err == nil:
		section.Payload = model.JSON(req.Payload)
		section.IsActive = req.IsActive
		err = h.db.Save(&section).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		section = model.HomepageSection{
			Section:  sectionKey,
			Payload:  model.JSON(req.Payload),
			IsActive: req.IsActive,
		}
		err = h.db.Create(&section).Error
	}
	if err != nil {
		log.Error("Failed to save homepage section", zap.String("section", sectionKey), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save homepage content"})
	}

	h.cache.Invalidate(c.Request().Context(), homepageCacheKey)
	log.Info("Homepage section saved",
		zap.String("section", sectionKey),
		zap.Bool("is_active", section.IsActive))
	return c.JSON(http.StatusOK, section)
}
