package app

import (
	"gorm.io/gorm"

	"github.com/webcomtel/webcom-backend/internal/data/aggregates"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/observability"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type Aggregates struct {
	Customer domainagg.CustomerAggregate
	Employee domainagg.EmployeeAggregate
	Catalog  domainagg.CatalogAggregate
	Contract domainagg.ContractAggregate
	Billing  domainagg.BillingAggregate
}

func wireAggregates(db *gorm.DB, log *logger.Logger, r Repos, metrics *observability.Metrics) Aggregates {
	log.Info("Wiring aggregates...")
	base := aggregates.BaseDeps{
		DB:    db,
		Log:   log,
		Hooks: aggregates.NewObservabilityHooks(metrics),
	}
	return Aggregates{
		Customer: aggregates.NewCustomerAggregate(aggregates.CustomerAggregateDeps{
			Base:              base,
			Customers:         r.Customer,
			RegularProfiles:   r.RegularProfile,
			BusinessProfiles:  r.BusinessProfile,
			Accounts:          r.Account,
			Payments:          r.Payment,
			RegularContracts:  r.RegularContract,
			BusinessContracts: r.BusinessContract,
			Addenda:           r.Addendum,
			AddendumServices:  r.AddendumService,
		}),
		Employee: aggregates.NewEmployeeAggregate(aggregates.EmployeeAggregateDeps{
			Base:        base,
			Employees:   r.Employee,
			Technicians: r.Technician,
			SysAdmins:   r.SysAdmin,
		}),
		Catalog: aggregates.NewCatalogAggregate(aggregates.CatalogAggregateDeps{
			Base:             base,
			Services:         r.Service,
			Inclusions:       r.ServiceInclusion,
			AddendumServices: r.AddendumService,
		}),
		Contract: aggregates.NewContractAggregate(aggregates.ContractAggregateDeps{
			Base:              base,
			Addenda:           r.Addendum,
			AddendumServices:  r.AddendumService,
			Services:          r.Service,
			RegularContracts:  r.RegularContract,
			BusinessContracts: r.BusinessContract,
		}),
		Billing: aggregates.NewBillingAggregate(aggregates.BillingAggregateDeps{
			Base:              base,
			Accounts:          r.Account,
			Payments:          r.Payment,
			Customers:         r.Customer,
			RegularContracts:  r.RegularContract,
			BusinessContracts: r.BusinessContract,
			Addenda:           r.Addendum,
			AddendumServices:  r.AddendumService,
			Services:          r.Service,
			Inclusions:        r.ServiceInclusion,
		}),
	}
}
