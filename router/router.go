package router

import (
	"DMR_Link/config"
	"DMR_Link/internal/handler"
	"DMR_Link/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitRouter builds API routes.
func InitRouter(h *handler.Handler) *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware(config.AppConfig.CORSOrigins))

	r.GET("/show_where_used", h.ShowWhereUsed)
	r.GET("/dmr", h.GetDMR)

	links := r.Group("/links")
	{
		links.GET("", h.ListLinks)
		links.POST("/sweep", h.SweepLinks)
		links.POST("/revoke", h.RevokeLink)
	}

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
