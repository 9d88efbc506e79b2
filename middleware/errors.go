package middleware

import (
	"errors"
	"net/http"

	"github.com/nyumbani/property-dashboard/services"
	"github.com/nyumbani/property-dashboard/utils"
)

// writeError answers a request rejected by a middleware. Only the
// authentication and authorization error types are expected here; anything
// else is reported as an internal error without its message.
func writeError(w http.ResponseWriter, err error) error {
	var domainErr *services.DomainError
	if !errors.As(err, &domainErr) {
		return utils.WriteInternalServerError(w, "An internal error occurred")
	}

	switch domainErr.Type {
	case services.ErrorTypeUnauthorized:
		return utils.WriteUnauthorized(w, domainErr.Message)
	case services.ErrorTypeForbidden:
		return utils.WriteForbidden(w, domainErr.Message)
	default:
		return utils.WriteInternalServerError(w, "An internal error occurred")
	}
}
