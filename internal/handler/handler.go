package handler

import (
	"DMR_Link/internal/service"
	"DMR_Link/internal/storage"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the lookup and link endpoints.
type Handler struct {
	resolver *service.Resolver
	dmr      *service.DMRService
	tracker  *service.Tracker
}

// NewHandler builds the HTTP handlers over the services.
func NewHandler(resolver *service.Resolver, dmr *service.DMRService, tracker *service.Tracker) *Handler {
	return &Handler{resolver: resolver, dmr: dmr, tracker: tracker}
}

// abortWithError maps service errors to status codes.
func abortWithError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDocumentType):
		c.JSON(http.StatusNotFound, gin.H{"msg": "invalid document type"})
	case errors.Is(err, service.ErrPartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "part not found"})
	case errors.Is(err, service.ErrLinkNotTracked):
		c.JSON(http.StatusNotFound, gin.H{"msg": "link not tracked"})
	case errors.Is(err, storage.ErrRemoteStore):
		log.Printf("[%s] file store failure: %v", op, err)
		c.JSON(http.StatusBadGateway, gin.H{"msg": "file store unavailable"})
	default:
		log.Printf("[%s] %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
	}
}
