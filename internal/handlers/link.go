// internal/handlers/link.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/cartlink/internal/i18n"
	"github.com/javajoker/cartlink/internal/services"
	"github.com/javajoker/cartlink/internal/utils"
)

type LinkHandler struct {
	linkService *services.LinkService
}

func NewLinkHandler(linkService *services.LinkService) *LinkHandler {
	return &LinkHandler{
		linkService: linkService,
	}
}

// POST /links
func (h *LinkHandler) BuildLink(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.BuildLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.linkService.Build(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	utils.SuccessResponseWithMeta(c, result, gin.H{
		"message": i18n.T(lang, i18n.KeyLinkGenerated),
	})
}

// GET /links/preview
func (h *LinkHandler) PreviewLink(c *gin.Context) {
	linkType := c.DefaultQuery("link_type", "add-to-cart")
	redirect := c.DefaultQuery("redirect", "none")

	utils.SuccessResponse(c, gin.H{
		"link_type":   linkType,
		"placeholder": h.linkService.PreviewTemplate(linkType, redirect),
	})
}
