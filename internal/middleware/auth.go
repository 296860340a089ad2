package middleware

import (
	"net/http"
	"strings"

	"org-service/internal/model"
	"org-service/internal/org"
	"org-service/pkg/jwtutil"
	"org-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys under which the resolved caller identity is stored
const (
	AdminContextKey        = "admin"
	OrganizationContextKey = "organization"
)

// AuthMiddleware validates the bearer token and resolves the calling admin.
// The admin is re-read from the store by the ID embedded in the token rather
// than trusting the token's organization name, so a rename or email change
// since issuance is picked up. Expired and invalid tokens are not
// distinguished to the caller.
func AuthMiddleware(jwtUtil *jwtutil.JWTUtil, store org.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "authorization token missing"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				log.Warn("Invalid authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "invalid authorization header format"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "invalid or expired token"})
			}

			ctx := c.Request().Context()

			admin, err := store.AdminByID(ctx, claims.AdminID)
			if err != nil {
				log.Warn("Token admin no longer exists", zap.Uint("admin_id", claims.AdminID))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "invalid token"})
			}

			organization, err := store.OrganizationByID(ctx, admin.OrganizationID)
			if err != nil {
				log.Warn("Admin's organization no longer exists",
					zap.Uint("admin_id", admin.ID),
					zap.Uint("organization_id", admin.OrganizationID))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "invalid token"})
			}

			c.Set(AdminContextKey, admin)
			c.Set(OrganizationContextKey, organization)

			log.Debug("Request authenticated",
				zap.Uint("admin_id", admin.ID),
				zap.Uint("organization_id", organization.ID))

			return next(c)
		}
	}
}

// CallerIdentity returns the authenticated identity attached by
// AuthMiddleware, or nil if the request was not authenticated
func CallerIdentity(c echo.Context) *org.Identity {
	admin, ok := c.Get(AdminContextKey).(*model.Admin)
	if !ok {
		return nil
	}
	organization, ok := c.Get(OrganizationContextKey).(*model.Organization)
	if !ok {
		return nil
	}
	return &org.Identity{Admin: admin, Organization: organization}
}
