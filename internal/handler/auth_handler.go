package handler

import (
	"net/http"
	"time"

	"hanouti-api/internal/model"
	"hanouti-api/pkg/config"
	"hanouti-api/pkg/jwtutil"
	"hanouti-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler issues and clears admin sessions
type AuthHandler struct {
	db           *gorm.DB
	jwt          *jwtutil.Util
	cookieName   string
	cookieSecure bool
	expiration   time.Duration
}

func NewAuthHandler(db *gorm.DB, jwt *jwtutil.Util, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		db:           db,
		jwt:          jwt,
		cookieName:   cfg.JWT.CookieName,
		cookieSecure: cfg.Server.Env == "production",
		expiration:   cfg.JWT.ExpirationTime,
	}
}

// LoginRequest defines the admin login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and sets the session cookie. Unknown email
// and wrong password answer the same 401.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	var user model.AdminUser
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		log.Warn("Login for unknown admin", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Login with wrong password", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error("Failed to generate session token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.expiration),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("Admin logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// SeedAdmin creates the bootstrap admin account on first start. Does
// nothing when an account exists or no bootstrap password is
// configured.
func SeedAdmin(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	if cfg.Admin.Password == "" {
		log.Warn("No ADMIN_PASSWORD configured, skipping admin bootstrap")
		return nil
	}

	var count int64
	if err := db.Model(&model.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.AdminUser{
		Email:        cfg.Admin.Email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info("Bootstrap admin account created", zap.String("email", admin.Email))
	return nil
}
