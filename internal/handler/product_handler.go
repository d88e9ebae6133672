package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hanouti-api/internal/model"
	"hanouti-api/internal/shuffle"
	"hanouti-api/pkg/config"
	"hanouti-api/pkg/logger"
	"hanouti-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductHandler serves the public product listing and the admin CRUD
type ProductHandler struct {
	db    *gorm.DB
	store config.StoreConfig
}

func NewProductHandler(db *gorm.DB, store config.StoreConfig) *ProductHandler {
	return &ProductHandler{db: db, store: store}
}

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	NameFr      string  `json:"name_fr" validate:"required"`
	NameAr      string  `json:"name_ar" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	CategoryID  uint    `json:"category_id" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsActive    bool    `json:"is_active"`
}

// ProductListResponse carries one shuffled page plus the seed the
// client must repeat on the next page link to keep the ordering stable.
type ProductListResponse struct {
	Products []model.Product `json:"products"`
	Seed     int64           `json:"seed"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int             `json:"total"`
}

// ListPublic retrieves active products in a seed-stable shuffled order.
// Filters: category (slug, child categories included), q (substring
// search over both names), seed/page/page_size for pagination. Fails
// open to an empty list when the database is unreachable.
func (h *ProductHandler) ListPublic(c echo.Context) error {
	log := logger.FromContext(c)

	query := h.db.Where("is_active = ?", true)

	if slug := c.QueryParam("category"); slug != "" {
		var category model.Category
		err := h.db.Where("slug = ?", slug).First(&category).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) || isConnectivityError(err) {
				return c.JSON(http.StatusOK, ProductListResponse{Products: []model.Product{}})
			}
			log.Error("Failed to resolve category filter", zap.String("category", slug), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
		}

		ids := []uint{category.ID}
		var childIDs []uint
		h.db.Model(&model.Category{}).Where("parent_id = ?", category.ID).Pluck("id", &childIDs)
		ids = append(ids, childIDs...)
		query = query.Where("category_id IN ?", ids)
	}

	if q := c.QueryParam("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("name_fr ILIKE ? OR name_ar ILIKE ? OR slug ILIKE ?", like, like, like)
	}

	var products []model.Product
	result := query.Limit(h.store.ShuffleFetchLimit).Find(&products)
	if result.Error != nil {
		if isConnectivityError(result.Error) {
			log.Warn("Database unreachable, serving empty product list", zap.Error(result.Error))
			return c.JSON(http.StatusOK, ProductListResponse{Products: []model.Product{}})
		}
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	// Seed from the query when paging, fresh from the clock otherwise
	seed := time.Now().Unix()
	if s := c.QueryParam("seed"); s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			seed = parsed
		}
	}
	shuffle.Do(products, seed)

	page := queryParamInt(c, "page", 1)
	pageSize := queryParamInt(c, "page_size", h.store.PageSize)

	resp := ProductListResponse{
		Products: shuffle.Page(products, page, pageSize),
		Seed:     seed,
		Page:     page,
		PageSize: pageSize,
		Total:    len(products),
	}
	return c.JSON(http.StatusOK, resp)
}

// GetBySlug retrieves a single active product
func (h *ProductHandler) GetBySlug(c echo.Context) error {
	log := logger.FromContext(c)
	slug := c.Param("slug")

	var product model.Product
	result := h.db.Where("slug = ? AND is_active = ?", slug, true).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to retrieve product", zap.String("slug", slug), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	return c.JSON(http.StatusOK, product)
}

// ListAdmin retrieves all products with optional filtering, inactive included
func (h *ProductHandler) ListAdmin(c echo.Context) error {
	log := logger.FromContext(c)

	query := h.db.Session(&gorm.Session{})

	if isActive := c.QueryParam("is_active"); isActive != "" {
		if active, err := strconv.ParseBool(isActive); err == nil {
			query = query.Where("is_active = ?", active)
		}
	}
	if categoryID := c.QueryParam("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var products []model.Product
	result := query.Order("created_at DESC").Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, products)
}

// Create adds a new product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Product request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name_fr, name_ar, slug, a positive price and category_id are required",
		})
	}

	// Check if product with same slug exists
	var count int64
	h.db.Model(&model.Product{}).Where("slug = ?", req.Slug).Count(&count)
	if count > 0 {
		log.Warn("Product slug already exists", zap.String("slug", req.Slug))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "A product with slug '" + req.Slug + "' already exists",
		})
	}

	// The category must exist
	var category model.Category
	if err := h.db.First(&category, req.CategoryID).Error; err != nil {
		log.Warn("Category not found for product", zap.Uint("category_id", req.CategoryID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Category not found"})
	}

	product := model.Product{
		NameFr:      req.NameFr,
		NameAr:      req.NameAr,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	}

	result := h.db.Create(&product)
	if result.Error != nil {
		log.Error("Failed to create product", zap.String("slug", req.Slug), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product"})
	}

	prometheus.RecordProductOperation("create")
	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("slug", product.Slug))
	return c.JSON(http.StatusCreated, product)
}

// Update updates an existing product
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Product request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name_fr, name_ar, slug, a positive price and category_id are required",
		})
	}

	var product model.Product
	result := h.db.First(&product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to load product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	// Check if slug is changed and if the new slug already exists
	if req.Slug != product.Slug {
		var count int64
		h.db.Model(&model.Product{}).Where("slug = ? AND id != ?", req.Slug, product.ID).Count(&count)
		if count > 0 {
			log.Warn("Product slug already exists", zap.String("slug", req.Slug))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "A product with slug '" + req.Slug + "' already exists",
			})
		}
	}

	product.NameFr = req.NameFr
	product.NameAr = req.NameAr
	product.Slug = req.Slug
	product.Description = req.Description
	product.Price = req.Price
	product.ImageURL = req.ImageURL
	product.CategoryID = req.CategoryID
	product.Stock = req.Stock
	product.IsActive = req.IsActive

	result = h.db.Save(&product)
	if result.Error != nil {
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	prometheus.RecordProductOperation("update")
	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.String("slug", product.Slug))
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product. Past orders keep their snapshots.
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := h.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

func queryParamInt(c echo.Context, name string, fallback int) int {
	if raw := c.QueryParam(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
