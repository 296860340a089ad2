package handler

import (
	"net/http"
	"time"

	"org-service/pkg/logger"
	"org-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login authenticates an admin by email and password and issues a session
// token bound to their organization
func Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": "email and password are required"})
	}

	ctx := c.Request().Context()

	defer prometheus.TrackDBOperation("query")(time.Now())
	admin, err := metaStore.AdminByEmail(ctx, req.Email)
	if err != nil {
		log.Warn("Login for unknown email", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "invalid credentials"})
	}

	organization, err := metaStore.OrganizationByID(ctx, admin.OrganizationID)
	if err != nil {
		log.Error("Admin's organization missing", zap.Uint("organization_id", admin.OrganizationID))
		prometheus.RecordAuthError("organization_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "invalid credentials"})
	}

	token, err := jwtUtil.GenerateToken(admin.ID, organization.ID, organization.Name)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "token error"})
	}

	prometheus.IncreaseActiveTokens()

	log.Info("Admin logged in",
		zap.String("email", admin.Email),
		zap.Uint("organization_id", organization.ID),
		zap.String("organization_name", organization.Name))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"admin": echo.Map{
			"id":    admin.ID,
			"email": admin.Email,
		},
		"organization": echo.Map{
			"id":   organization.ID,
			"name": organization.Name,
		},
	})
}
