package handler

import (
	"errors"
	"net/http"
	"time"

	"org-service/internal/middleware"
	"org-service/internal/model"
	"org-service/internal/org"
	"org-service/pkg/logger"
	"org-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CreateOrganization provisions a new organization with its partition and
// admin user
func CreateOrganization(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOrgOperation("create")

	var req struct {
		OrganizationName string `json:"organization_name"`
		Email            string `json:"email"`
		Password         string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse organization create request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	organization, admin, err := orgService.Create(c.Request().Context(), req.OrganizationName, req.Email, req.Password)
	if err != nil {
		return orgError(c, log, err)
	}

	log.Info("Organization created",
		zap.String("name", organization.Name),
		zap.Uint("id", organization.ID),
		zap.String("partition", organization.PartitionName))
	prometheus.IncreaseActiveOrganizations()

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Organization created successfully",
		"organization": organizationSummary(organization, admin),
	})
}

// GetOrganization returns an organization by display name
func GetOrganization(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOrgOperation("get")

	name := c.QueryParam("organization_name")

	defer prometheus.TrackDBOperation("query")(time.Now())
	organization, admin, err := orgService.Get(c.Request().Context(), name)
	if err != nil {
		return orgError(c, log, err)
	}

	var adminSummary interface{}
	if admin != nil {
		adminSummary = echo.Map{
			"id":    admin.ID,
			"email": admin.Email,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":             organization.ID,
		"name":           organization.Name,
		"partition_name": organization.PartitionName,
		"connection_uri": organization.ConnectionURI,
		"admin":          adminSummary,
		"created_at":     organization.CreatedAt,
		"updated_at":     organization.UpdatedAt,
	})
}

// UpdateOrganization renames an organization and updates its admin
// credentials. The current admin email and password in the body act as the
// re-authentication for this operation; no bearer token is required. This is
// the documented contract, not an oversight.
func UpdateOrganization(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOrgOperation("update")

	var req struct {
		OrganizationName    string `json:"organization_name"`
		Email               string `json:"email"`
		Password            string `json:"password"`
		NewOrganizationName string `json:"new_organization_name"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse organization update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": "invalid request"})
	}

	if req.OrganizationName == "" || req.Email == "" || req.Password == "" || req.NewOrganizationName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "validation_error",
			"message": "organization_name, new_organization_name, email, and password are required",
		})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	organization, admin, err := orgService.Update(c.Request().Context(),
		req.OrganizationName, req.Email, req.Password, req.NewOrganizationName)
	if err != nil {
		return orgError(c, log, err)
	}

	log.Info("Organization updated",
		zap.String("name", organization.Name),
		zap.Uint("id", organization.ID),
		zap.String("partition", organization.PartitionName))

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Organization updated successfully",
		"organization": organizationSummary(organization, admin),
	})
}

// DeleteOrganization tears down an organization, its partition and its
// admin. Requires a bearer token; the caller may only delete their own
// organization.
func DeleteOrganization(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOrgOperation("delete")

	var req struct {
		OrganizationName string `json:"organization_name"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse organization delete request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": "invalid request"})
	}

	caller := middleware.CallerIdentity(c)

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := orgService.Delete(c.Request().Context(), req.OrganizationName, caller); err != nil {
		return orgError(c, log, err)
	}

	log.Info("Organization deleted", zap.String("name", req.OrganizationName))
	prometheus.DecreaseActiveOrganizations()

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Organization deleted successfully",
	})
}

func organizationSummary(organization *model.Organization, admin *model.Admin) echo.Map {
	return echo.Map{
		"id":             organization.ID,
		"name":           organization.Name,
		"partition_name": organization.PartitionName,
		"admin": echo.Map{
			"id":    admin.ID,
			"email": admin.Email,
		},
	}
}

// orgError maps lifecycle errors onto the HTTP contract. Unknown errors are
// downgraded to a generic 500 without detail.
func orgError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, org.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_error", "message": err.Error()})
	case errors.Is(err, org.ErrDuplicateOrganization):
		prometheus.RecordOrgError("duplicate_organization")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duplicate_organization", "message": "organization name already exists"})
	case errors.Is(err, org.ErrDuplicateAdmin):
		prometheus.RecordOrgError("duplicate_admin")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duplicate_admin", "message": "admin email already exists"})
	case errors.Is(err, org.ErrOrganizationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": "organization not found"})
	case errors.Is(err, org.ErrAdminNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": "admin user not found"})
	case errors.Is(err, org.ErrUnauthorized):
		prometheus.RecordAuthError("unauthenticated_delete")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "authentication required"})
	case errors.Is(err, org.ErrForbidden):
		prometheus.RecordAuthError("forbidden_delete")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "message": "you are not authorized to delete this organization"})
	default:
		log.Error("Organization operation failed", zap.Error(err))
		prometheus.RecordOrgError("internal")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "server error"})
	}
}
