package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Retail Ledger API v1"})
}

// registerHomeRoutes registers the root status route
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", getHome)
}
