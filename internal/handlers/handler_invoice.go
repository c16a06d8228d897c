package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/dto"
	"github.com/openbooks/retail_ledger_app/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(invoiceService portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: invoiceService,
	}
}

// registerInvoiceRoutes registers invoice routes on the business group
func registerInvoiceRoutes(group *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)
	invoices := group.Group("/invoices")
	invoices.POST("", h.createInvoice)
	invoices.GET("", h.listInvoices)
	invoices.GET("/:invoiceID", h.getInvoice)
	invoices.POST("/:invoiceID/payments", h.recordPayment)
	invoices.GET("/:invoiceID/payments", h.listPayments)
	invoices.POST("/:invoiceID/cancel", h.cancelInvoice)
}

func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("businessID")

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), businessID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) getInvoice(c *gin.Context) {
	businessID := c.Param("businessID")
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), businessID, invoiceID)
	if err != nil {
		respondServiceError(c, err, "Failed to get invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("businessID")

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), businessID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *invoiceHandler) listPayments(c *gin.Context) {
	businessID := c.Param("businessID")
	invoiceID := c.Param("invoiceID")

	payments, err := h.invoiceService.ListInvoicePayments(c.Request.Context(), businessID, invoiceID)
	if err != nil {
		respondServiceError(c, err, "Failed to list invoice payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(invoiceID, payments))
}

func (h *invoiceHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("businessID")
	invoiceID := c.Param("invoiceID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), businessID, invoiceID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) cancelInvoice(c *gin.Context) {
	businessID := c.Param("businessID")
	invoiceID := c.Param("invoiceID")

	actorID, _ := middleware.GetActorFromContext(c)
	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), businessID, invoiceID, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
