package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nanotasks/internal/auth"
	"nanotasks/internal/models"
	"nanotasks/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// RecordCharge records a successful external charge and credits the coins.
// POST /api/payments
func (h *PaymentHandler) RecordCharge(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentService.RecordCharge(c.Request.Context(), principal.Email, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// ListMine returns the authenticated buyer's payment history.
// GET /api/payments
func (h *PaymentHandler) ListMine(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	payments, err := h.paymentService.ListByBuyer(c.Request.Context(), principal.Email)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// CoinPackages returns the purchasable coin bundles.
// GET /api/payments/packages
func (h *PaymentHandler) CoinPackages(c *gin.Context) {
	c.JSON(http.StatusOK, h.paymentService.CoinPackages())
}
