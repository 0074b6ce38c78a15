package http

import (
	"github.com/labstack/echo/v4"

	"github.com/promanage/core/internal/domain/entities"
)

const identityKey = "identity"

// SetIdentity stores the authenticated caller on the request context.
func SetIdentity(c echo.Context, identity entities.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFromContext returns the caller set by the authentication gate.
func IdentityFromContext(c echo.Context) (entities.Identity, error) {
	identity, ok := c.Get(identityKey).(entities.Identity)
	if !ok {
		return entities.Identity{}, entities.Unauthenticated("Authentication invalid")
	}
	return identity, nil
}
