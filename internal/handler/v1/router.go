package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/config"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/handler/middleware"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/service"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Config     *config.Config
	Log        *zap.Logger
	JWTManager *auth.JWTManager
	Collector  *metrics.Collector

	Auth       *service.AuthService
	Scheduling *service.SchedulingService
	Billing    *service.BillingService
	Pets       *service.PetService
	Doctors    *service.DoctorService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(deps.Collector))
	r.Use(middleware.RequestLogger(deps.Log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": deps.Config.App.Version,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")

	// Public surface: login and the doctor directory for the booking form.
	NewAuthHandler(deps.Auth).Register(api)
	doctorHandler := NewDoctorHandler(deps.Doctors)
	doctorHandler.RegisterPublic(api)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(deps.JWTManager))

	NewAppointmentHandler(deps.Scheduling, deps.Collector).Register(authed)
	NewBillingHandler(deps.Billing, deps.Collector).Register(authed)
	NewPetHandler(deps.Pets, deps.Collector).Register(authed)
	doctorHandler.Register(authed)

	return r
}
