package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/handler/middleware"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/service"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billing   *service.BillingService
	collector *metrics.Collector
}

func NewBillingHandler(billing *service.BillingService, collector *metrics.Collector) *BillingHandler {
	return &BillingHandler{billing: billing, collector: collector}
}

func (h *BillingHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/bills", h.list)
	rg.GET("/bills/:id", h.get)
	rg.POST("/bills/:id/payment", h.markPaid)
}

func (h *BillingHandler) list(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	bills, err := h.billing.ListBills(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, bills)
}

func (h *BillingHandler) get(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.billing.GetBill(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, b)
}

func (h *BillingHandler) markPaid(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.billing.MarkPaid(c.Request.Context(), actor, id, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.BillsPaidTotal.Inc()
	respondOK(c, b)
}
