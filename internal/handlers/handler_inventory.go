package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/dto"
	"github.com/openbooks/retail_ledger_app/internal/middleware"
)

// inventoryHandler handles HTTP requests related to inventory.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(inventoryService portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
	}
}

// registerInventoryRoutes registers inventory routes on the business group
func registerInventoryRoutes(group *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)
	inventory := group.Group("/inventory")
	inventory.GET("/low-stock", h.listLowStock)
	inventory.GET("/:productID", h.getItem)
	inventory.POST("/:productID/adjust", h.adjustStock)
}

func (h *inventoryHandler) getItem(c *gin.Context) {
	businessID := c.Param("businessID")
	productID := c.Param("productID")

	item, err := h.inventoryService.GetItemByID(c.Request.Context(), businessID, productID)
	if err != nil {
		respondServiceError(c, err, "Failed to get inventory item")
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

func (h *inventoryHandler) listLowStock(c *gin.Context) {
	businessID := c.Param("businessID")

	items, err := h.inventoryService.ListLowStockItems(c.Request.Context(), businessID)
	if err != nil {
		respondServiceError(c, err, "Failed to list low stock items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.ToInventoryItemResponses(items)})
}

func (h *inventoryHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("businessID")
	productID := c.Param("productID")

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjustStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	item, err := h.inventoryService.AdjustStock(c.Request.Context(), businessID, productID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to adjust stock")
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}
