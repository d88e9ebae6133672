package handler

import (
	"errors"
	"net/http"
	"strconv"

	"hanouti-api/internal/model"
	"hanouti-api/pkg/cache"
	"hanouti-api/pkg/logger"
	"hanouti-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const categoriesCacheKey = "categories:active"

// CategoryHandler serves the public category tree and the admin CRUD
type CategoryHandler struct {
	db    *gorm.DB
	cache *cache.Client
}

func NewCategoryHandler(db *gorm.DB, cache *cache.Client) *CategoryHandler {
	return &CategoryHandler{db: db, cache: cache}
}

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	NameFr    string `json:"name_fr" validate:"required"`
	NameAr    string `json:"name_ar" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
	ImageURL  string `json:"image_url"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// DeletionSummary reports what a cascading category delete removed
type DeletionSummary struct {
	DeletedSubcategories int64 `json:"deleted_subcategories"`
	DeletedProducts      int64 `json:"deleted_products"`
}

// ListPublic retrieves the active category tree: root categories ordered
// by sort_order with their active children preloaded. Cached, and fails
// open to an empty list when the database is unreachable.
func (h *CategoryHandler) ListPublic(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	var categories []model.Category
	if h.cache.GetJSON(ctx, categoriesCacheKey, &categories) {
		prometheus.RecordCacheRequest("categories", "hit")
		return c.JSON(http.StatusOK, categories)
	}
	prometheus.RecordCacheRequest("categories", "miss")

	result := h.db.Where("is_active = ? AND parent_id IS NULL", true).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order ASC")
		}).
		Order("sort_order ASC").
		Find(&categories)
	if result.Error != nil {
		if isConnectivityError(result.Error) {
			log.Warn("Database unreachable, serving empty category list", zap.Error(result.Error))
			return c.JSON(http.StatusOK, []model.Category{})
		}
		log.Error("Failed to retrieve categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	h.cache.SetJSON(ctx, categoriesCacheKey, categories)
	return c.JSON(http.StatusOK, categories)
}

// GetBySlug retrieves one active category with its active children
func (h *CategoryHandler) GetBySlug(c echo.Context) error {
	log := logger.FromContext(c)
	slug := c.Param("slug")

	var category model.Category
	result := h.db.Where("slug = ? AND is_active = ?", slug, true).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order ASC")
		}).
		First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to retrieve category", zap.String("slug", slug), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve category",
		})
	}

	return c.JSON(http.StatusOK, category)
}

// ListAdmin retrieves all categories, inactive included
func (h *CategoryHandler) ListAdmin(c echo.Context) error {
	log := logger.FromContext(c)

	var categories []model.Category
	result := h.db.Preload("Children", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).
		Where("parent_id IS NULL").
		Order("sort_order ASC").
		Find(&categories)
	if result.Error != nil {
		log.Error("Failed to retrieve categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	return c.JSON(http.StatusOK, categories)
}

// Create adds a new category
func (h *CategoryHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Category request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name_fr, name_ar and slug are required"})
	}

	// Check if category with same slug exists
	var count int64
	h.db.Model(&model.Category{}).Where("slug = ?", req.Slug).Count(&count)
	if count > 0 {
		log.Warn("Category slug already exists", zap.String("slug", req.Slug))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "A category with slug '" + req.Slug + "' already exists",
		})
	}

	if req.ParentID != nil {
		var parent model.Category
		if err := h.db.First(&parent, *req.ParentID).Error; err != nil {
			log.Warn("Parent category not found", zap.Uintp("parent_id", req.ParentID))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Parent category not found"})
		}
	}

	category := model.Category{
		NameFr:    req.NameFr,
		NameAr:    req.NameAr,
		Slug:      req.Slug,
		ImageURL:  req.ImageURL,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	}

	result := h.db.Create(&category)
	if result.Error != nil {
		log.Error("Failed to create category", zap.String("slug", req.Slug), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create category"})
	}

	h.cache.Invalidate(c.Request().Context(), categoriesCacheKey)
	prometheus.RecordCategoryOperation("create")

	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("slug", category.Slug))
	return c.JSON(http.StatusCreated, category)
}

// Update updates an existing category
func (h *CategoryHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("category_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Category request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name_fr, name_ar and slug are required"})
	}

	var category model.Category
	result := h.db.First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to load category", zap.String("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update category"})
	}

	// Check if slug is changed and if the new slug already exists
	if req.Slug != category.Slug {
		var count int64
		h.db.Model(&model.Category{}).Where("slug = ? AND id != ?", req.Slug, category.ID).Count(&count)
		if count > 0 {
			log.Warn("Category slug already exists", zap.String("slug", req.Slug))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "A category with slug '" + req.Slug + "' already exists",
			})
		}
	}

	if req.ParentID != nil && *req.ParentID == category.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "A category cannot be its own parent"})
	}

	category.NameFr = req.NameFr
	category.NameAr = req.NameAr
	category.Slug = req.Slug
	category.ImageURL = req.ImageURL
	category.ParentID = req.ParentID
	category.SortOrder = req.SortOrder
	category.IsActive = req.IsActive

	result = h.db.Save(&category)
	if result.Error != nil {
		log.Error("Failed to update category", zap.String("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update category"})
	}

	h.cache.Invalidate(c.Request().Context(), categoriesCacheKey)
	prometheus.RecordCategoryOperation("update")

	log.Info("Category updated",
		zap.Uint("category_id", category.ID),
		zap.String("slug", category.Slug))
	return c.JSON(http.StatusOK, category)
}

// Delete removes a category, every descendant category, and all
// products attached anywhere in the subtree, in one transaction. The
// subtree walk is post-order so children are gone before their parent;
// the category->product cascade FK removes products row by row.
func (h *CategoryHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category id"})
	}

	var category model.Category
	result := h.db.First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to load category", zap.Uint64("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete category"})
	}

	var deletedCategories, deletedProducts int64
	err = h.db.Transaction(func(tx *gorm.DB) error {
		return deleteSubtree(tx, category.ID, &deletedCategories, &deletedProducts)
	})
	if err != nil {
		log.Error("Category subtree deletion failed",
			zap.Uint("category_id", category.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete category"})
	}

	h.cache.Invalidate(c.Request().Context(), categoriesCacheKey)
	prometheus.RecordCategoryOperation("delete")

	summary := DeletionSummary{
		// The root itself is not a subcategory
		DeletedSubcategories: deletedCategories - 1,
		DeletedProducts:      deletedProducts,
	}
	log.Info("Category subtree deleted",
		zap.Uint("category_id", category.ID),
		zap.String("slug", category.Slug),
		zap.Int64("subcategories", summary.DeletedSubcategories),
		zap.Int64("products", summary.DeletedProducts))
	return c.JSON(http.StatusOK, summary)
}

// deleteSubtree removes the category tree rooted at id leaves-first.
// Product rows go with each category via the cascade FK; they are
// counted before the delete for the caller's summary.
func deleteSubtree(tx *gorm.DB, id uint, categories, products *int64) error {
	var children []model.Category
	if err := tx.Where("parent_id = ?", id).Find(&children).Error; err != nil {
		return err
	}
	for _, child := range children {
		if err := deleteSubtree(tx, child.ID, categories, products); err != nil {
			return err
		}
	}

	var productCount int64
	if err := tx.Model(&model.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return err
	}

	if err := tx.Delete(&model.Category{}, id).Error; err != nil {
		return err
	}

	*categories++
	*products += productCount
	return nil
}
