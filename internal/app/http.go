package app

import (
	"github.com/gin-gonic/gin"

	"github.com/webcomtel/webcom-backend/internal/http"
	httpH "github.com/webcomtel/webcom-backend/internal/http/handlers"
	"github.com/webcomtel/webcom-backend/internal/observability"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Customer *httpH.CustomerHandler
	Employee *httpH.EmployeeHandler
	Catalog  *httpH.CatalogHandler
	Contract *httpH.ContractHandler
	Billing  *httpH.BillingHandler
	Fleet    *httpH.FleetHandler
	Staff    *httpH.StaffHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Customer: httpH.NewCustomerHandler(log, services.Customer),
		Employee: httpH.NewEmployeeHandler(log, services.Employee),
		Catalog:  httpH.NewCatalogHandler(log, services.Catalog),
		Contract: httpH.NewContractHandler(log, services.Contract),
		Billing:  httpH.NewBillingHandler(log, services.Billing),
		Fleet:    httpH.NewFleetHandler(log, services.Fleet),
		Staff:    httpH.NewStaffHandler(log, services.Staff),
	}
}

func wireRouter(log *logger.Logger, metrics *observability.Metrics, handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:     log,
		Metrics: metrics,

		CustomerHandler: handlers.Customer,
		EmployeeHandler: handlers.Employee,
		CatalogHandler:  handlers.Catalog,
		ContractHandler: handlers.Contract,
		BillingHandler:  handlers.Billing,
		FleetHandler:    handlers.Fleet,
		StaffHandler:    handlers.Staff,

		HealthHandler: handlers.Health,
	})
}
