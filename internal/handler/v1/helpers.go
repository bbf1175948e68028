package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/billing"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/consultation"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	var forbiddenErr *service.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "access denied",
			Details: map[string]string{
				"reason": forbiddenErr.Reason,
			},
		})
		return
	}

	switch {
	case errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, pet.ErrPetNotFound),
		errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, consultation.ErrConsultationNotFound),
		errors.Is(err, billing.ErrBillNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrInvalidTransition),
		errors.Is(err, appointment.ErrAlreadyCompleted),
		errors.Is(err, billing.ErrAlreadyPaid),
		errors.Is(err, doctor.ErrProfileAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrVersionConflict),
		errors.Is(err, billing.ErrVersionConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "the record was modified concurrently, retry with fresh data",
			Code:  "CONCURRENT_MODIFICATION",
		})

	case errors.Is(err, appointment.ErrScheduledInPast),
		errors.Is(err, appointment.ErrInvalidStatus),
		errors.Is(err, pet.ErrNameRequired),
		errors.Is(err, pet.ErrSpeciesRequired),
		errors.Is(err, consultation.ErrDiagnosisRequired),
		errors.Is(err, consultation.ErrNegativeCost),
		errors.Is(err, doctor.ErrSpecializationMissing):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})

	case errors.Is(err, service.ErrAccountInactive):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "account is inactive",
			Code:  "ACCOUNT_INACTIVE",
		})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})

	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}

	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}
