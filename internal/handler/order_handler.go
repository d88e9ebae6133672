package handler

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"hanouti-api/internal/model"
	"hanouti-api/internal/phone"
	"hanouti-api/pkg/logger"
	"hanouti-api/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const orderNumberAttempts = 10

// OrderHandler serves checkout, the public order lookup, and the admin
// order management endpoints.
type OrderHandler struct {
	db *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

// OrderItemRequest is one checkout line. nameFr and price are accepted
// for wire compatibility with the storefront cart but the server
// re-reads both from the catalog; the client only decides identity and
// quantity.
type OrderItemRequest struct {
	ProductID uint    `json:"productId" validate:"required"`
	NameFr    string  `json:"nameFr"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderRequest defines the checkout payload
type PlaceOrderRequest struct {
	CustomerName   string             `json:"customerName" validate:"required"`
	CustomerPhone  string             `json:"customerPhone" validate:"required"`
	CustomerEmail  string             `json:"customerEmail" validate:"omitempty,email"`
	DeliveryMethod string             `json:"deliveryMethod" validate:"required,oneof=DELIVERY PICKUP"`
	Address        string             `json:"address"`
	City           string             `json:"city"`
	Notes          string             `json:"notes"`
	Items          []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// LookupRequest is the public order lookup credential pair
type LookupRequest struct {
	Phone       string `json:"phone" validate:"required"`
	OrderNumber string `json:"orderNumber" validate:"required"`
}

// UpdateOrderStatusRequest is the admin status transition payload
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// stockError names the product a placement failed on so the storefront
// can tell the customer which article ran out.
type stockError struct {
	nameFr    string
	available int
}

func (e *stockError) Error() string {
	return fmt.Sprintf("Stock insuffisant pour %s (disponible: %d)", e.nameFr, e.available)
}

// Create places an order: validates the cart, checks and decrements
// stock, and persists order plus items in one transaction. Any failure
// leaves no partial effect.
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid order payload", zap.Error(err))
		prometheus.RecordOrderPlacementError("invalid_payload")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Order payload failed validation", zap.Error(err))
		prometheus.RecordOrderPlacementError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Nom, téléphone et au moins un article sont requis",
		})
	}
	if req.DeliveryMethod == string(model.DeliveryMethodDelivery) &&
		(strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.City) == "") {
		prometheus.RecordOrderPlacementError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Adresse et ville sont requises pour la livraison",
		})
	}

	// Collapse duplicate lines so one product is checked and
	// decremented once
	quantities := make(map[uint]int, len(req.Items))
	for _, item := range req.Items {
		quantities[item.ProductID] += item.Quantity
	}
	ids := make([]uint, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}

	var products []model.Product
	if err := h.db.Where("id IN ? AND is_active = ?", ids, true).Find(&products).Error; err != nil {
		log.Error("Failed to load products for order", zap.Error(err))
		prometheus.RecordOrderPlacementError("database")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to place order"})
	}

	// A missing row means a deleted, deactivated or nonexistent product
	if len(products) != len(ids) {
		log.Warn("Order references unavailable products",
			zap.Int("requested", len(ids)),
			zap.Int("found", len(products)))
		prometheus.RecordOrderPlacementError("unavailable")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Certains produits ne sont plus disponibles",
		})
	}

	// Stock precheck before any mutation, naming the product short
	for _, p := range products {
		if p.Stock < quantities[p.ID] {
			log.Warn("Insufficient stock for order",
				zap.Uint("product_id", p.ID),
				zap.Int("stock", p.Stock),
				zap.Int("requested", quantities[p.ID]))
			prometheus.StockInsufficientCounter.Inc()
			prometheus.RecordOrderPlacementError("stock")
			stockErr := &stockError{nameFr: p.NameFr, available: p.Stock}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": stockErr.Error()})
		}
	}

	// Snapshot lines from the catalog price, not the declared one
	var total float64
	items := make([]model.OrderItem, 0, len(products))
	for _, p := range products {
		qty := quantities[p.ID]
		total += p.Price * float64(qty)
		items = append(items, model.OrderItem{
			ProductID: p.ID,
			NameFr:    p.NameFr,
			Price:     p.Price,
			Quantity:  qty,
		})
	}

	orderNumber, err := h.generateOrderNumber()
	if err != nil {
		log.Error("Failed to generate order number", zap.Error(err))
		prometheus.RecordOrderPlacementError("database")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to place order"})
	}

	order := model.Order{
		OrderNumber:    orderNumber,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerPhone:  phone.Normalize(req.CustomerPhone),
		CustomerEmail:  strings.TrimSpace(req.CustomerEmail),
		DeliveryMethod: model.DeliveryMethod(req.DeliveryMethod),
		Address:        strings.TrimSpace(req.Address),
		City:           strings.TrimSpace(req.City),
		Notes:          req.Notes,
		Status:         model.OrderStatusPending,
		Total:          total,
		Items:          items,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Conditional decrement: the stock guard is in the WHERE
		// clause, so a concurrent order for the last units makes
		// RowsAffected zero here instead of driving stock negative.
		for _, p := range products {
			qty := quantities[p.ID]
			res := tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", p.ID, qty).
				UpdateColumn("stock", gorm.Expr("stock - ?", qty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &stockError{nameFr: p.NameFr, available: p.Stock}
			}
		}
		return nil
	})
	if err != nil {
		var stockErr *stockError
		if errors.As(err, &stockErr) {
			prometheus.StockInsufficientCounter.Inc()
			prometheus.RecordOrderPlacementError("stock")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": stockErr.Error()})
		}
		log.Error("Order transaction failed", zap.Error(err))
		prometheus.RecordOrderPlacementError("database")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to place order"})
	}

	// Re-read the persisted order with its items
	var placed model.Order
	if err := h.db.Preload("Items").First(&placed, order.ID).Error; err != nil {
		log.Error("Failed to reload placed order", zap.Uint("order_id", order.ID), zap.Error(err))
		placed = order
	}

	prometheus.OrdersPlacedCounter.Inc()
	log.Info("Order placed",
		zap.String("order_number", placed.OrderNumber),
		zap.Float64("total", placed.Total),
		zap.Int("items", len(placed.Items)))
	return c.JSON(http.StatusCreated, placed)
}

// Lookup finds an order by order number and phone. The response never
// reveals which half of the credential pair was wrong.
func (h *OrderHandler) Lookup(c echo.Context) error {
	log := logger.FromContext(c)

	var req LookupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone and orderNumber are required"})
	}

	normalized := phone.Normalize(req.Phone)
	orderNumber := strings.ToUpper(strings.TrimSpace(req.OrderNumber))

	// Order numbers are unique so this is at most one row, but the
	// match is still done over the fetched set.
	var orders []model.Order
	if err := h.db.Preload("Items").Where("order_number = ?", orderNumber).Find(&orders).Error; err != nil {
		log.Error("Order lookup query failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to look up order"})
	}

	// Stored phones were normalized once at placement; comparing the
	// once-normalized input against them means a customer retyping the
	// same number always matches, stacked zeros included.
	for _, order := range orders {
		if order.CustomerPhone == normalized {
			prometheus.RecordOrderLookup("hit")
			return c.JSON(http.StatusOK, order)
		}
	}

	prometheus.RecordOrderLookup("miss")
	return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
}

// ListAdmin retrieves orders newest first, optionally filtered by status
func (h *OrderHandler) ListAdmin(c echo.Context) error {
	log := logger.FromContext(c)

	query := h.db.Session(&gorm.Session{})
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", strings.ToUpper(status))
	}

	var orders []model.Order
	if err := query.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
	}

	return c.JSON(http.StatusOK, orders)
}

// GetAdmin retrieves one order by internal id
func (h *OrderHandler) GetAdmin(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var order model.Order
	result := h.db.Preload("Items").First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		log.Error("Failed to retrieve order", zap.String("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve order"})
	}

	return c.JSON(http.StatusOK, order)
}

// UpdateStatus moves an order through the workflow. Transitions are
// checked against the allowed-transitions table; skipping ahead,
// moving backward, or leaving a terminal state is rejected.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}

	newStatus := model.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !model.ValidOrderStatus(newStatus) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown order status"})
	}

	var order model.Order
	result := h.db.First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		log.Error("Failed to load order", zap.String("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	if !model.CanTransition(order.Status, newStatus) {
		log.Warn("Rejected order status transition",
			zap.String("order_number", order.OrderNumber),
			zap.String("from", string(order.Status)),
			zap.String("to", string(newStatus)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("Cannot move order from %s to %s", order.Status, newStatus),
		})
	}

	previous := order.Status
	order.Status = newStatus
	if err := h.db.Save(&order).Error; err != nil {
		log.Error("Failed to update order status", zap.String("order_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	prometheus.OrderStatusTransitions.WithLabelValues(string(previous), string(newStatus)).Inc()
	log.Info("Order status updated",
		zap.String("order_number", order.OrderNumber),
		zap.String("from", string(previous)),
		zap.String("to", string(newStatus)))
	return c.JSON(http.StatusOK, order)
}

// generateOrderNumber builds a human-shareable unique order number of
// the form ORD-<unixMillis>-<4 digits>, re-rolling on the unlikely
// collision and falling back to a uuid suffix after ten attempts.
func (h *OrderHandler) generateOrderNumber() (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))

		var count int64
		if err := h.db.Model(&model.Order{}).Where("order_number = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8]), nil
}
