package app

import (
	"gorm.io/gorm"

	"github.com/webcomtel/webcom-backend/internal/data/repos"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type Repos struct {
	Address         repos.AddressRepo
	Customer        repos.CustomerRepo
	RegularProfile  repos.RegularCustomerProfileRepo
	BusinessProfile repos.BusinessCustomerProfileRepo

	Account repos.AccountRepo
	Payment repos.PaymentRepo

	RegularContract  repos.RegularContractRepo
	BusinessContract repos.BusinessContractRepo
	Addendum         repos.AddendumRepo
	AddendumService  repos.AddendumServiceRepo

	Service          repos.ServiceRepo
	ServiceInclusion repos.ServiceInclusionRepo

	Employee      repos.TechnicalEmployeeRepo
	Technician    repos.TechnicianRepo
	SysAdmin      repos.SysAdminRepo
	ClientManager repos.ClientManagerRepo
	Accountant    repos.AccountantRepo

	Laptop       repos.LaptopRepo
	Server       repos.ServerRepo
	Router       repos.RouterRepo
	LaptopRepair repos.LaptopRepairRepo
	ServerRepair repos.ServerRepairRepo
	RouterRepair repos.RouterRepairRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Address:         repos.NewAddressRepo(db, log),
		Customer:        repos.NewCustomerRepo(db, log),
		RegularProfile:  repos.NewRegularCustomerProfileRepo(db, log),
		BusinessProfile: repos.NewBusinessCustomerProfileRepo(db, log),

		Account: repos.NewAccountRepo(db, log),
		Payment: repos.NewPaymentRepo(db, log),

		RegularContract:  repos.NewRegularContractRepo(db, log),
		BusinessContract: repos.NewBusinessContractRepo(db, log),
		Addendum:         repos.NewAddendumRepo(db, log),
		AddendumService:  repos.NewAddendumServiceRepo(db, log),

		Service:          repos.NewServiceRepo(db, log),
		ServiceInclusion: repos.NewServiceInclusionRepo(db, log),

		Employee:      repos.NewTechnicalEmployeeRepo(db, log),
		Technician:    repos.NewTechnicianRepo(db, log),
		SysAdmin:      repos.NewSysAdminRepo(db, log),
		ClientManager: repos.NewClientManagerRepo(db, log),
		Accountant:    repos.NewAccountantRepo(db, log),

		Laptop:       repos.NewLaptopRepo(db, log),
		Server:       repos.NewServerRepo(db, log),
		Router:       repos.NewRouterRepo(db, log),
		LaptopRepair: repos.NewLaptopRepairRepo(db, log),
		ServerRepair: repos.NewServerRepairRepo(db, log),
		RouterRepair: repos.NewRouterRepairRepo(db, log),
	}
}
