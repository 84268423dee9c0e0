// Package domain re-exports every persisted model under one import so
// the data and service layers can refer to them as types.X without
// caring which area package a model lives in.
package domain

import (
	"github.com/webcomtel/webcom-backend/internal/domain/billing"
	"github.com/webcomtel/webcom-backend/internal/domain/catalog"
	"github.com/webcomtel/webcom-backend/internal/domain/contracts"
	"github.com/webcomtel/webcom-backend/internal/domain/fleet"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/domain/parties"
	"github.com/webcomtel/webcom-backend/internal/domain/workforce"
)

const (
	CustomerTypeRegular  = parties.CustomerTypeRegular
	CustomerTypeBusiness = parties.CustomerTypeBusiness

	EmployeeTypeTechnician = workforce.EmployeeTypeTechnician
	EmployeeTypeSysAdmin   = workforce.EmployeeTypeSysAdmin

	ContractKindRegular  = contracts.KindRegular
	ContractKindBusiness = contracts.KindBusiness

	ContractStatusActive    = contracts.StatusActive
	ContractStatusSuspended = contracts.StatusSuspended

	ContractDurationExpirable    = contracts.DurationExpirable
	ContractDurationNonexpirable = contracts.DurationNonexpirable

	DeviceKindLaptop = fleet.DeviceKindLaptop
	DeviceKindServer = fleet.DeviceKindServer
	DeviceKindRouter = fleet.DeviceKindRouter
)

type Money = money.Money

type Address = parties.Address
type Customer = parties.Customer
type RegularCustomerProfile = parties.RegularCustomerProfile
type BusinessCustomerProfile = parties.BusinessCustomerProfile

type Account = billing.Account
type Payment = billing.Payment

type RegularContract = contracts.RegularContract
type BusinessContract = contracts.BusinessContract
type Addendum = contracts.Addendum
type AddendumService = contracts.AddendumService

type Service = catalog.Service
type ServiceInclusion = catalog.ServiceInclusion

type TechnicalEmployee = workforce.TechnicalEmployee
type Technician = workforce.Technician
type SysAdmin = workforce.SysAdmin
type ClientManager = workforce.ClientManager
type Accountant = workforce.Accountant

type Laptop = fleet.Laptop
type Server = fleet.Server
type Router = fleet.Router
type LaptopRepair = fleet.LaptopRepair
type ServerRepair = fleet.ServerRepair
type RouterRepair = fleet.RouterRepair
