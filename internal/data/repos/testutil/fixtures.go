package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"gorm.io/gorm"
)

func SeedAddress(tb testing.TB, ctx context.Context, tx *gorm.DB, street string) *types.Address {
	tb.Helper()
	a := &types.Address{
		ID:         uuid.New(),
		Street:     street,
		City:       "Springfield",
		PostalCode: "10001",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed address: %v", err)
	}
	return a
}

func SeedCustomer(tb testing.TB, ctx context.Context, tx *gorm.DB, email, customerType string) *types.Customer {
	tb.Helper()
	c := &types.Customer{
		ID:    uuid.New(),
		Email: email,
		Phone: "+15550100200",
		Type:  customerType,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed customer: %v", err)
	}
	return c
}

func SeedRegularProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, customerID uuid.UUID) *types.RegularCustomerProfile {
	tb.Helper()
	p := &types.RegularCustomerProfile{
		ID:              uuid.New(),
		CustomerID:      customerID,
		FirstName:       "Ada",
		LastName:        "Barton",
		ApartmentNumber: "4b",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed regular profile: %v", err)
	}
	return p
}

func SeedBusinessProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, customerID uuid.UUID, companyID string) *types.BusinessCustomerProfile {
	tb.Helper()
	p := &types.BusinessCustomerProfile{
		ID:          uuid.New(),
		CustomerID:  customerID,
		CompanyName: "Acme Net",
		CompanyID:   companyID,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed business profile: %v", err)
	}
	return p
}

func SeedAccount(tb testing.TB, ctx context.Context, tx *gorm.DB, customerID uuid.UUID, number string) *types.Account {
	tb.Helper()
	a := &types.Account{
		ID:         uuid.New(),
		CustomerID: customerID,
		Number:     number,
		Balance:    money.Zero(money.DefaultCurrency),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed account: %v", err)
	}
	return a
}

func SeedRegularContract(tb testing.TB, ctx context.Context, tx *gorm.DB, customerID uuid.UUID) *types.RegularContract {
	tb.Helper()
	c := &types.RegularContract{
		ID:                   uuid.New(),
		CustomerID:           customerID,
		ApprovalDate:         time.Now().UTC().AddDate(0, 0, -30),
		TerminationDelayDays: 14,
		PayTermDays:          30,
		Status:               types.ContractStatusActive,
		DurationType:         types.ContractDurationExpirable,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed regular contract: %v", err)
	}
	return c
}

func SeedBusinessContract(tb testing.TB, ctx context.Context, tx *gorm.DB, customerID uuid.UUID) *types.BusinessContract {
	tb.Helper()
	c := &types.BusinessContract{
		ID:                   uuid.New(),
		CustomerID:           customerID,
		ApprovalDate:         time.Now().UTC().AddDate(0, 0, -30),
		TerminationDelayDays: 30,
		PayTermDays:          60,
		Status:               types.ContractStatusActive,
		DurationType:         types.ContractDurationExpirable,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed business contract: %v", err)
	}
	return c
}

func SeedService(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, price float64) *types.Service {
	tb.Helper()
	s := &types.Service{
		ID:    uuid.New(),
		Name:  name,
		Price: money.FromFloat(price, money.DefaultCurrency),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed service: %v", err)
	}
	return s
}

func SeedAddendum(tb testing.TB, ctx context.Context, tx *gorm.DB, regularContractID *uuid.UUID, serviceIDs ...uuid.UUID) *types.Addendum {
	tb.Helper()
	a := &types.Addendum{
		ID:                uuid.New(),
		RegularContractID: regularContractID,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed addendum: %v", err)
	}
	for _, sid := range serviceIDs {
		link := &types.AddendumService{
			ID:         uuid.New(),
			AddendumID: a.ID,
			ServiceID:  sid,
		}
		if err := tx.WithContext(ctx).Create(link).Error; err != nil {
			tb.Fatalf("seed addendum service: %v", err)
		}
	}
	return a
}

func SeedEmployee(tb testing.TB, ctx context.Context, tx *gorm.DB, email, employeeType string) *types.TechnicalEmployee {
	tb.Helper()
	e := &types.TechnicalEmployee{
		ID:              uuid.New(),
		Email:           email,
		Phone:           "+15550100300",
		FirstName:       "Nia",
		LastName:        "Okafor",
		ApartmentNumber: "12",
		Salary:          money.FromFloat(2500, money.DefaultCurrency),
		Seniority:       3,
		EmployeeType:    employeeType,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed employee: %v", err)
	}
	return e
}

func SeedTechnician(tb testing.TB, ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) *types.Technician {
	tb.Helper()
	t := &types.Technician{
		ID:         uuid.New(),
		EmployeeID: employeeID,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed technician: %v", err)
	}
	return t
}

func SeedLaptop(tb testing.TB, ctx context.Context, tx *gorm.DB, model string) *types.Laptop {
	tb.Helper()
	l := &types.Laptop{
		ID:           uuid.New(),
		Model:        model,
		Manufacturer: "Lenovo",
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed laptop: %v", err)
	}
	return l
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
