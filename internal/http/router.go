package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/webcomtel/webcom-backend/internal/http/handlers"
	httpMW "github.com/webcomtel/webcom-backend/internal/http/middleware"
	"github.com/webcomtel/webcom-backend/internal/observability"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	CustomerHandler *httpH.CustomerHandler
	EmployeeHandler *httpH.EmployeeHandler
	CatalogHandler  *httpH.CatalogHandler
	ContractHandler *httpH.ContractHandler
	BillingHandler  *httpH.BillingHandler
	FleetHandler    *httpH.FleetHandler
	StaffHandler    *httpH.StaffHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("webcom"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api/v1")
	{
		// Customers
		if cfg.CustomerHandler != nil {
			api.POST("/customers", cfg.CustomerHandler.Create)
			api.GET("/customers", cfg.CustomerHandler.List)
			api.GET("/customers/:id", cfg.CustomerHandler.Get)
			api.PUT("/customers/:id", cfg.CustomerHandler.Save)
			api.DELETE("/customers/:id", cfg.CustomerHandler.Delete)
			api.GET("/customers/:id/fields/:name", cfg.CustomerHandler.Field)
			api.PUT("/customers/:id/contract", cfg.CustomerHandler.SetContract)
		}

		// Technical employees
		if cfg.EmployeeHandler != nil {
			api.POST("/employees", cfg.EmployeeHandler.Create)
			api.GET("/employees", cfg.EmployeeHandler.List)
			api.GET("/employees/:id", cfg.EmployeeHandler.Get)
			api.PUT("/employees/:id", cfg.EmployeeHandler.Save)
			api.PUT("/employees/:id/type", cfg.EmployeeHandler.SwitchType)
			api.DELETE("/employees/:id", cfg.EmployeeHandler.Delete)
			api.GET("/employees/:id/bonus", cfg.EmployeeHandler.Bonus)
		}

		// Service catalog
		if cfg.CatalogHandler != nil {
			api.POST("/services", cfg.CatalogHandler.Create)
			api.GET("/services", cfg.CatalogHandler.List)
			api.GET("/services/:id", cfg.CatalogHandler.Get)
			api.PUT("/services/:id", cfg.CatalogHandler.Save)
			api.DELETE("/services/:id", cfg.CatalogHandler.Delete)
			api.GET("/services/:id/total-price", cfg.CatalogHandler.TotalPrice)
			api.PUT("/services/:id/inclusions", cfg.CatalogHandler.SetInclusions)
			api.POST("/services/:id/validate", cfg.CatalogHandler.Validate)
		}

		// Contracts and addenda
		if cfg.ContractHandler != nil {
			api.POST("/addenda", cfg.ContractHandler.CreateAddendum)
			api.POST("/addenda/:id/attach", cfg.ContractHandler.AttachAddendum)
			api.GET("/contracts/:kind/:id/current-addendum", cfg.ContractHandler.CurrentAddendum)
		}

		// Accounts and payments
		if cfg.BillingHandler != nil {
			api.POST("/accounts/:id/pay", cfg.BillingHandler.Pay)
			api.GET("/accounts/:id", cfg.BillingHandler.Get)
			api.GET("/accounts/:id/payments", cfg.BillingHandler.Payments)
			api.DELETE("/accounts/:id", cfg.BillingHandler.Delete)
		}

		// Device fleet
		if cfg.FleetHandler != nil {
			api.POST("/devices/:kind", cfg.FleetHandler.CreateDevice)
			api.GET("/devices/:kind", cfg.FleetHandler.ListDevices)
			api.POST("/devices/:kind/:id/repairs", cfg.FleetHandler.RecordRepair)
			api.GET("/devices/:kind/:id/repairs", cfg.FleetHandler.ListRepairs)
		}

		// Fixed-role staff
		if cfg.StaffHandler != nil {
			api.POST("/staff/client-managers", cfg.StaffHandler.CreateClientManager)
			api.GET("/staff/client-managers", cfg.StaffHandler.ListClientManagers)
			api.DELETE("/staff/client-managers/:id", cfg.StaffHandler.DeleteClientManager)
			api.POST("/staff/accountants", cfg.StaffHandler.CreateAccountant)
			api.GET("/staff/accountants", cfg.StaffHandler.ListAccountants)
			api.DELETE("/staff/accountants/:id", cfg.StaffHandler.DeleteAccountant)
		}
	}

	return r
}
