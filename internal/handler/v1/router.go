package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/config"
	"github.com/dmehra2102/prod-golang-projects/carebook/pkg/metrics"
)

type RouterDeps struct {
	Config       *config.Config
	Log          *zap.Logger
	Metrics      *metrics.Collector
	Appointments *AppointmentHandler
	Patients     *PatientHandler
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(deps.Log))
	if deps.Metrics != nil {
		r.Use(Metrics(deps.Metrics))
	}
	r.Use(Trace(deps.Config.Tracing.ServiceName))
	r.Use(CORS(deps.Config.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": deps.Config.App.Version,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")
	{
		api.POST("/patients", deps.Patients.Register)
		api.GET("/patients/:id", deps.Patients.Get)

		api.POST("/appointments", deps.Appointments.Create)
		api.GET("/appointments/recent", deps.Appointments.ListRecent)
		api.GET("/appointments/:id", deps.Appointments.Get)
		api.PATCH("/appointments/:id", deps.Appointments.Update)
	}

	return r
}
