package org

import (
	"errors"
)

// Lifecycle errors. Handlers translate these into HTTP status codes;
// anything not in this list is treated as an internal error.
var (
	ErrValidation            = errors.New("invalid input")
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrAdminNotFound         = errors.New("admin user not found")
	ErrDuplicateOrganization = errors.New("organization name already exists")
	ErrDuplicateAdmin        = errors.New("admin email already exists")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
)
