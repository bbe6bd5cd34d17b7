// internal/handlers/errors.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/cartlink/internal/catalog"
	"github.com/javajoker/cartlink/internal/i18n"
	"github.com/javajoker/cartlink/internal/services"
	"github.com/javajoker/cartlink/internal/utils"
)

// respondError maps service errors onto the API envelope. resource names the
// translation prefix used for not-found messages.
func respondError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	var ineligibleErr *services.IneligibleError
	switch {
	case errors.As(err, &ineligibleErr):
		utils.NotEligibleResponse(c, i18n.T(lang, i18n.KeyProductNotEligible, ineligibleErr.ProductID), ineligibleErr.Details())
	case errors.Is(err, services.ErrPageNotFound):
		utils.NotFoundResponse(c, "page")
	case errors.Is(err, catalog.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "user")
	case errors.Is(err, services.ErrEmptyLink):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyLinkEmpty), nil)
	case errors.Is(err, services.ErrPageRequired):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPageRequired), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrUserSuspended):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthUserSuspended))
	default:
		logrus.WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		}).WithError(err).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductInvalidID), nil)
		return 0, false
	}
	return uint(id), true
}
