package handler

import (
	"DMR_Link/internal/dto"
	"DMR_Link/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ShowWhereUsed lists the parts referencing a document.
func (h *Handler) ShowWhereUsed(c *gin.Context) {
	var req dto.WhereUsedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "doc_type and document are required"})
		return
	}

	parts, classification, err := h.resolver.Resolve(c.Request.Context(), req.DocType, req.Document)
	if err != nil {
		abortWithError(c, "ShowWhereUsed", err)
		return
	}

	resp := dto.WhereUsedResponse{
		DocType:  strings.ToUpper(utils.NormalizeDocType(req.DocType)),
		Document: utils.NormalizeDocument(req.Document),
		Parts:    parts,
	}
	if classification != "" {
		label := string(classification)
		resp.Classification = &label
	}
	c.JSON(http.StatusOK, resp)
}
