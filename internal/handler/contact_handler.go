package handler

import (
	"net/http"

	"hanouti-api/internal/model"
	"hanouti-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContactHandler stores contact form submissions and serves the admin inbox
type ContactHandler struct {
	db *gorm.DB
}

func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{db: db}
}

// ContactRequest defines the contact form payload
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// Create appends a contact message
func (h *ContactHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Nom et message sont requis"})
	}

	message := model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.db.Create(&message).Error; err != nil {
		log.Error("Failed to store contact message", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send message"})
	}

	log.Info("Contact message stored", zap.Uint("message_id", message.ID))
	return c.JSON(http.StatusCreated, message)
}

// ListAdmin retrieves the contact inbox, newest first
func (h *ContactHandler) ListAdmin(c echo.Context) error {
	log := logger.FromContext(c)

	var messages []model.ContactMessage
	if err := h.db.Order("created_at DESC").Find(&messages).Error; err != nil {
		log.Error("Failed to list contact messages", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve messages"})
	}

	return c.JSON(http.StatusOK, messages)
}
