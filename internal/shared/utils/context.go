package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/constants"
	"github.com/qreserve/qreserve/internal/shared/errors"
)

// CurrentUser returns the identity stored by the auth middleware.
func CurrentUser(c *gin.Context) (uint, authorization.UserRole, error) {
	userID := c.GetUint(constants.ContextKeyUserID)
	if userID == 0 {
		return 0, "", errors.NewUnauthorizedError("user not authenticated")
	}
	role := authorization.UserRole(c.GetString(constants.ContextKeyUserRole))
	if !role.IsValid() {
		return 0, "", errors.NewUnauthorizedError("user not authenticated")
	}
	return userID, role, nil
}
