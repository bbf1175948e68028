package v1

import (
	"net/http"
	"time"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/consultation"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/handler/middleware"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/service"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	scheduling *service.SchedulingService
	collector  *metrics.Collector
}

func NewAppointmentHandler(scheduling *service.SchedulingService, collector *metrics.Collector) *AppointmentHandler {
	return &AppointmentHandler{scheduling: scheduling, collector: collector}
}

func (h *AppointmentHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/appointments", h.create)
	rg.GET("/appointments", h.list)
	rg.GET("/appointments/:id", h.get)
	rg.PATCH("/appointments/:id/status", h.setStatus)
	rg.POST("/appointments/:id/reschedule", h.proposeReschedule)
	rg.POST("/appointments/:id/reschedule/response", h.respondToReschedule)
	rg.POST("/appointments/:id/consultation", h.completeConsultation)
	rg.DELETE("/appointments/:id", h.delete)
}

type createAppointmentRequest struct {
	PetID       uuid.UUID `json:"pet_id" binding:"required"`
	DoctorID    uuid.UUID `json:"doctor_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Description string    `json:"description"`
}

func (h *AppointmentHandler) create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.scheduling.CreateAppointment(c.Request.Context(), actor, &appointment.CreateAppointmentCommand{
		PetID:       req.PetID,
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
		Description: req.Description,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	respondCreated(c, a)
}

func (h *AppointmentHandler) list(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	q := &appointment.ListAppointmentsQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
	}

	if raw := c.Query("status"); raw != "" {
		status := appointment.Status(raw)
		if !status.IsValid() {
			respondError(c, http.StatusBadRequest, "invalid status filter")
			return
		}
		q.Status = &status
	}
	if raw := c.Query("pet_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid pet_id filter")
			return
		}
		q.PetID = &id
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid from filter: must be RFC 3339")
			return
		}
		q.DateFrom = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid to filter: must be RFC 3339")
			return
		}
		q.DateTo = &t
	}

	page, err := h.scheduling.ListAppointments(c.Request.Context(), actor, q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        page.Appointments,
		"total_count": page.TotalCount,
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total_pages": page.TotalPages,
	})
}

func (h *AppointmentHandler) get(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.scheduling.GetAppointment(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

type setStatusRequest struct {
	Status appointment.Status `json:"status" binding:"required"`
}

func (h *AppointmentHandler) setStatus(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req setStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.scheduling.AdminSetStatus(c.Request.Context(), actor, id, req.Status, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	respondOK(c, a)
}

type proposeRescheduleRequest struct {
	NewTime time.Time `json:"new_time" binding:"required"`
}

func (h *AppointmentHandler) proposeReschedule(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req proposeRescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.scheduling.ProposeReschedule(c.Request.Context(), actor, id, req.NewTime, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	respondOK(c, a)
}

type rescheduleResponseRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

func (h *AppointmentHandler) respondToReschedule(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req rescheduleResponseRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.scheduling.RespondToReschedule(c.Request.Context(), actor, id, *req.Accept, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	respondOK(c, a)
}

type completeConsultationRequest struct {
	Diagnosis   string  `json:"diagnosis" binding:"required"`
	Treatment   string  `json:"treatment"`
	Notes       string  `json:"notes"`
	ServiceCost float64 `json:"service_cost"`
}

func (h *AppointmentHandler) completeConsultation(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req completeConsultationRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.scheduling.CompleteConsultation(c.Request.Context(), actor, &consultation.CompleteConsultationCommand{
		AppointmentID: id,
		Diagnosis:     req.Diagnosis,
		Treatment:     req.Treatment,
		Notes:         req.Notes,
		ServiceCost:   req.ServiceCost,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.ConsultationsCompletedTotal.Inc()
	h.collector.AppointmentsTotal.WithLabelValues(string(result.Appointment.Status)).Inc()
	respondCreated(c, result)
}

func (h *AppointmentHandler) delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.scheduling.DeleteAppointment(c.Request.Context(), actor, id, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
