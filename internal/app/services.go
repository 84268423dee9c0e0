package app

import (
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
	"github.com/webcomtel/webcom-backend/internal/services"
)

type Services struct {
	Customer services.CustomerService
	Employee services.EmployeeService
	Catalog  services.CatalogService
	Contract services.ContractService
	Billing  services.BillingService
	Staff    services.StaffService
	Fleet    services.FleetService
}

func wireServices(log *logger.Logger, aggs Aggregates, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Customer: services.NewCustomerService(log, aggs.Customer, r.Customer, r.RegularProfile, r.BusinessProfile, r.Account, r.RegularContract, r.BusinessContract),
		Employee: services.NewEmployeeService(log, aggs.Employee, r.Employee, r.Technician, r.SysAdmin),
		Catalog:  services.NewCatalogService(log, aggs.Catalog, r.Service, r.ServiceInclusion),
		Contract: services.NewContractService(log, aggs.Contract, r.Addendum, r.AddendumService),
		Billing:  services.NewBillingService(log, aggs.Billing, r.Account, r.Payment),
		Staff:    services.NewStaffService(log, r.ClientManager, r.Accountant),
		Fleet:    services.NewFleetService(log, r.Laptop, r.Server, r.Router, r.LaptopRepair, r.ServerRepair, r.RouterRepair, r.Technician),
	}
}
