package handler

import (
	"DMR_Link/internal/dto"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ListLinks returns the outstanding links without their passwords.
func (h *Handler) ListLinks(c *gin.Context) {
	links, err := h.tracker.Outstanding(c.Request.Context())
	if err != nil {
		abortWithError(c, "ListLinks", err)
		return
	}
	now := time.Now()
	resp := dto.LinkListResponse{Count: len(links), Links: make([]dto.LinkSummary, 0, len(links))}
	for _, l := range links {
		resp.Links = append(resp.Links, dto.LinkSummary{
			ID:        l.ID(),
			Link:      l.Link,
			ExpiresAt: l.ExpiresAt,
			Expired:   l.Expired(now),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// SweepLinks runs one sweep immediately.
func (h *Handler) SweepLinks(c *gin.Context) {
	result, err := h.tracker.Sweep(c.Request.Context())
	if err != nil {
		abortWithError(c, "SweepLinks", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RevokeLink revokes one link ahead of its expiry.
func (h *Handler) RevokeLink(c *gin.Context) {
	var req dto.RevokeLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.tracker.Revoke(c.Request.Context(), req.Link); err != nil {
		abortWithError(c, "RevokeLink", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "revoked"})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
