package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/dto"
	"github.com/openbooks/retail_ledger_app/internal/middleware"
)

// ledgerHandler handles HTTP requests related to vouchers and ledger entries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ledgerService,
	}
}

// registerLedgerRoutes registers ledger routes on the business group
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)
	ledger := group.Group("/ledger")
	ledger.POST("/vouchers", h.postVoucher)
	ledger.GET("/vouchers/:voucherID", h.getVoucher)
	ledger.POST("/vouchers/:voucherID/reverse", h.reverseVoucher)
}

func (h *ledgerHandler) postVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("businessID")

	var req dto.PostVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	voucher, err := h.ledgerService.PostVoucher(c.Request.Context(), businessID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to post voucher")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher, nil))
}

func (h *ledgerHandler) getVoucher(c *gin.Context) {
	businessID := c.Param("businessID")
	voucherID := c.Param("voucherID")

	voucher, entries, err := h.ledgerService.GetVoucher(c.Request.Context(), businessID, voucherID)
	if err != nil {
		respondServiceError(c, err, "Failed to get voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher, entries))
}

func (h *ledgerHandler) reverseVoucher(c *gin.Context) {
	businessID := c.Param("businessID")
	voucherID := c.Param("voucherID")

	actorID, _ := middleware.GetActorFromContext(c)
	reversing, err := h.ledgerService.ReverseVoucher(c.Request.Context(), businessID, voucherID, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to reverse voucher")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoucherResponse(reversing, nil))
}
