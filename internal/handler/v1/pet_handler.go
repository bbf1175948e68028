package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/handler/middleware"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/service"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PetHandler struct {
	pets      *service.PetService
	collector *metrics.Collector
}

func NewPetHandler(pets *service.PetService, collector *metrics.Collector) *PetHandler {
	return &PetHandler{pets: pets, collector: collector}
}

func (h *PetHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/pets", h.create)
	rg.GET("/pets", h.listMine)
	rg.GET("/pets/:id", h.get)
	rg.PATCH("/pets/:id", h.update)
}

type createPetRequest struct {
	OwnerID  uuid.UUID `json:"owner_id"` // honored for admins only
	Name     string    `json:"name" binding:"required"`
	Species  string    `json:"species" binding:"required"`
	Breed    string    `json:"breed"`
	AgeYears int       `json:"age_years"`
	WeightKg float64   `json:"weight_kg"`
	ImageURL string    `json:"image_url"`
}

func (h *PetHandler) create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createPetRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.pets.CreatePet(c.Request.Context(), actor, &pet.CreatePetCommand{
		OwnerID:  req.OwnerID,
		Name:     req.Name,
		Species:  req.Species,
		Breed:    req.Breed,
		AgeYears: req.AgeYears,
		WeightKg: req.WeightKg,
		ImageURL: req.ImageURL,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.PetsRegisteredTotal.Inc()
	respondCreated(c, p)
}

func (h *PetHandler) listMine(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	pets, err := h.pets.ListMyPets(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, pets)
}

func (h *PetHandler) get(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.pets.GetPet(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

type updatePetRequest struct {
	Name     *string  `json:"name"`
	Breed    *string  `json:"breed"`
	AgeYears *int     `json:"age_years"`
	WeightKg *float64 `json:"weight_kg"`
	ImageURL *string  `json:"image_url"`
}

func (h *PetHandler) update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePetRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.pets.UpdatePet(c.Request.Context(), actor, id, &pet.UpdatePetCommand{
		Name:     req.Name,
		Breed:    req.Breed,
		AgeYears: req.AgeYears,
		WeightKg: req.WeightKg,
		ImageURL: req.ImageURL,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}
