package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/handler/middleware"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DoctorHandler struct {
	doctors *service.DoctorService
}

func NewDoctorHandler(doctors *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctors: doctors}
}

// RegisterPublic mounts the directory reads the booking form depends on.
func (h *DoctorHandler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/doctors", h.list)
	rg.GET("/doctors/:id", h.get)
}

func (h *DoctorHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/doctors", h.create)
}

type createDoctorRequest struct {
	AccountID         uuid.UUID `json:"account_id" binding:"required"`
	Specialization    string    `json:"specialization" binding:"required"`
	Bio               string    `json:"bio"`
	ProfilePictureURL string    `json:"profile_picture_url"`
}

func (h *DoctorHandler) create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.doctors.CreateProfile(c.Request.Context(), actor, &doctor.CreateProfileCommand{
		AccountID:         req.AccountID,
		Specialization:    req.Specialization,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

func (h *DoctorHandler) list(c *gin.Context) {
	profiles, err := h.doctors.ListProfiles(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, profiles)
}

func (h *DoctorHandler) get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.doctors.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}
