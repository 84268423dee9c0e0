package repos

import (
	"gorm.io/gorm"

	"github.com/webcomtel/webcom-backend/internal/data/repos/billing"
	"github.com/webcomtel/webcom-backend/internal/data/repos/catalog"
	"github.com/webcomtel/webcom-backend/internal/data/repos/contracts"
	"github.com/webcomtel/webcom-backend/internal/data/repos/fleet"
	"github.com/webcomtel/webcom-backend/internal/data/repos/parties"
	"github.com/webcomtel/webcom-backend/internal/data/repos/workforce"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type AddressRepo = parties.AddressRepo
type CustomerRepo = parties.CustomerRepo
type RegularCustomerProfileRepo = parties.RegularCustomerProfileRepo
type BusinessCustomerProfileRepo = parties.BusinessCustomerProfileRepo

type AccountRepo = billing.AccountRepo
type PaymentRepo = billing.PaymentRepo

type RegularContractRepo = contracts.RegularContractRepo
type BusinessContractRepo = contracts.BusinessContractRepo
type AddendumRepo = contracts.AddendumRepo
type AddendumServiceRepo = contracts.AddendumServiceRepo

type ServiceRepo = catalog.ServiceRepo
type ServiceInclusionRepo = catalog.ServiceInclusionRepo

type TechnicalEmployeeRepo = workforce.TechnicalEmployeeRepo
type TechnicianRepo = workforce.TechnicianRepo
type SysAdminRepo = workforce.SysAdminRepo
type ClientManagerRepo = workforce.ClientManagerRepo
type AccountantRepo = workforce.AccountantRepo

type LaptopRepo = fleet.LaptopRepo
type ServerRepo = fleet.ServerRepo
type RouterRepo = fleet.RouterRepo
type LaptopRepairRepo = fleet.LaptopRepairRepo
type ServerRepairRepo = fleet.ServerRepairRepo
type RouterRepairRepo = fleet.RouterRepairRepo

func NewAddressRepo(db *gorm.DB, baseLog *logger.Logger) AddressRepo {
	return parties.NewAddressRepo(db, baseLog)
}
func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	return parties.NewCustomerRepo(db, baseLog)
}
func NewRegularCustomerProfileRepo(db *gorm.DB, baseLog *logger.Logger) RegularCustomerProfileRepo {
	return parties.NewRegularCustomerProfileRepo(db, baseLog)
}
func NewBusinessCustomerProfileRepo(db *gorm.DB, baseLog *logger.Logger) BusinessCustomerProfileRepo {
	return parties.NewBusinessCustomerProfileRepo(db, baseLog)
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	return billing.NewAccountRepo(db, baseLog)
}
func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
	return billing.NewPaymentRepo(db, baseLog)
}

func NewRegularContractRepo(db *gorm.DB, baseLog *logger.Logger) RegularContractRepo {
	return contracts.NewRegularContractRepo(db, baseLog)
}
func NewBusinessContractRepo(db *gorm.DB, baseLog *logger.Logger) BusinessContractRepo {
	return contracts.NewBusinessContractRepo(db, baseLog)
}
func NewAddendumRepo(db *gorm.DB, baseLog *logger.Logger) AddendumRepo {
	return contracts.NewAddendumRepo(db, baseLog)
}
func NewAddendumServiceRepo(db *gorm.DB, baseLog *logger.Logger) AddendumServiceRepo {
	return contracts.NewAddendumServiceRepo(db, baseLog)
}

func NewServiceRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRepo {
	return catalog.NewServiceRepo(db, baseLog)
}
func NewServiceInclusionRepo(db *gorm.DB, baseLog *logger.Logger) ServiceInclusionRepo {
	return catalog.NewServiceInclusionRepo(db, baseLog)
}

func NewTechnicalEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) TechnicalEmployeeRepo {
	return workforce.NewTechnicalEmployeeRepo(db, baseLog)
}
func NewTechnicianRepo(db *gorm.DB, baseLog *logger.Logger) TechnicianRepo {
	return workforce.NewTechnicianRepo(db, baseLog)
}
func NewSysAdminRepo(db *gorm.DB, baseLog *logger.Logger) SysAdminRepo {
	return workforce.NewSysAdminRepo(db, baseLog)
}
func NewClientManagerRepo(db *gorm.DB, baseLog *logger.Logger) ClientManagerRepo {
	return workforce.NewClientManagerRepo(db, baseLog)
}
func NewAccountantRepo(db *gorm.DB, baseLog *logger.Logger) AccountantRepo {
	return workforce.NewAccountantRepo(db, baseLog)
}

func NewLaptopRepo(db *gorm.DB, baseLog *logger.Logger) LaptopRepo {
	return fleet.NewLaptopRepo(db, baseLog)
}
func NewServerRepo(db *gorm.DB, baseLog *logger.Logger) ServerRepo {
	return fleet.NewServerRepo(db, baseLog)
}
func NewRouterRepo(db *gorm.DB, baseLog *logger.Logger) RouterRepo {
	return fleet.NewRouterRepo(db, baseLog)
}
func NewLaptopRepairRepo(db *gorm.DB, baseLog *logger.Logger) LaptopRepairRepo {
	return fleet.NewLaptopRepairRepo(db, baseLog)
}
func NewServerRepairRepo(db *gorm.DB, baseLog *logger.Logger) ServerRepairRepo {
	return fleet.NewServerRepairRepo(db, baseLog)
}
func NewRouterRepairRepo(db *gorm.DB, baseLog *logger.Logger) RouterRepairRepo {
	return fleet.NewRouterRepairRepo(db, baseLog)
}
