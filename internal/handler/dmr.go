package handler

import (
	"DMR_Link/internal/dto"
	"DMR_Link/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDMR builds the DMR bundle of a part.
func (h *Handler) GetDMR(c *gin.Context) {
	var req dto.DMRRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "part is required"})
		return
	}

	bundle, password, err := h.dmr.GetDMR(c.Request.Context(), req.Part)
	if err != nil {
		abortWithError(c, "GetDMR", err)
		return
	}
	c.JSON(http.StatusOK, dto.DMRResponse{
		Part:     utils.NormalizePart(req.Part),
		DMR:      bundle,
		Password: password,
	})
}
