package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/data/repos"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/parties"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

// CustomerService fronts the customer aggregate for the HTTP layer and
// adds the read side: assembled views, typed listings and the explicit
// field projection.
type CustomerService interface {
	Create(ctx context.Context, in domainagg.CreateCustomerInput) (domainagg.CreateCustomerResult, error)
	Save(ctx context.Context, in domainagg.SaveCustomerInput) (domainagg.SaveCustomerResult, error)
	Delete(ctx context.Context, customerID uuid.UUID) (domainagg.DeleteCustomerResult, error)
	SetContract(ctx context.Context, in domainagg.SetContractInput) (domainagg.SetContractResult, error)

	Get(ctx context.Context, customerID uuid.UUID) (*CustomerView, error)
	ListByType(ctx context.Context, customerType string, limit int) ([]*types.Customer, error)
	Field(ctx context.Context, customerID uuid.UUID, field string) (string, error)
}

// CustomerView is the assembled read model: the base row plus whichever
// variant parts exist. Reads never fail on a missing part; only the
// typed accessors (Field) turn absence into an error.
type CustomerView struct {
	Customer         types.Customer                 `json:"customer"`
	RegularProfile   *types.RegularCustomerProfile  `json:"regular_profile,omitempty"`
	BusinessProfile  *types.BusinessCustomerProfile `json:"business_profile,omitempty"`
	Account          *types.Account                 `json:"account,omitempty"`
	RegularContract  *types.RegularContract         `json:"regular_contract,omitempty"`
	BusinessContract *types.BusinessContract        `json:"business_contract,omitempty"`
}

type customerService struct {
	log *logger.Logger
	agg domainagg.CustomerAggregate

	customers        repos.CustomerRepo
	regularProfiles  repos.RegularCustomerProfileRepo
	businessProfiles repos.BusinessCustomerProfileRepo
	accounts         repos.AccountRepo
	regularContracts repos.RegularContractRepo
	businessContract repos.BusinessContractRepo
}

func NewCustomerService(
	baseLog *logger.Logger,
	agg domainagg.CustomerAggregate,
	customers repos.CustomerRepo,
	regularProfiles repos.RegularCustomerProfileRepo,
	businessProfiles repos.BusinessCustomerProfileRepo,
	accounts repos.AccountRepo,
	regularContracts repos.RegularContractRepo,
	businessContracts repos.BusinessContractRepo,
) CustomerService {
	return &customerService{
		log:              baseLog.With("service", "CustomerService"),
		agg:              agg,
		customers:        customers,
		regularProfiles:  regularProfiles,
		businessProfiles: businessProfiles,
		accounts:         accounts,
		regularContracts: regularContracts,
		businessContract: businessContracts,
	}
}

func (s *customerService) Create(ctx context.Context, in domainagg.CreateCustomerInput) (domainagg.CreateCustomerResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.CreateCustomerResult{}, fmt.Errorf("customer service not configured")
	}
	return s.agg.CreateCustomer(ctx, in)
}

func (s *customerService) Save(ctx context.Context, in domainagg.SaveCustomerInput) (domainagg.SaveCustomerResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.SaveCustomerResult{}, fmt.Errorf("customer service not configured")
	}
	return s.agg.SaveCustomer(ctx, in)
}

func (s *customerService) Delete(ctx context.Context, customerID uuid.UUID) (domainagg.DeleteCustomerResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.DeleteCustomerResult{}, fmt.Errorf("customer service not configured")
	}
	return s.agg.DeleteCustomer(ctx, domainagg.DeleteCustomerInput{CustomerID: customerID})
}

func (s *customerService) SetContract(ctx context.Context, in domainagg.SetContractInput) (domainagg.SetContractResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.SetContractResult{}, fmt.Errorf("customer service not configured")
	}
	return s.agg.SetContract(ctx, in)
}

func (s *customerService) Get(ctx context.Context, customerID uuid.UUID) (*CustomerView, error) {
	const op = "CustomerService.Get"
	if s == nil || s.customers == nil {
		return nil, fmt.Errorf("customer service not configured")
	}
	if customerID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing customer id", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	customer, err := s.customers.GetByID(dbc, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("customer not found: %s", customerID.String()), nil)
	}

	view := &CustomerView{Customer: *customer}
	view.Account, err = s.accounts.GetByCustomerID(dbc, customerID)
	if err != nil {
		return nil, err
	}
	switch customer.Type {
	case types.CustomerTypeRegular:
		if view.RegularProfile, err = s.regularProfiles.GetByCustomerID(dbc, customerID); err != nil {
			return nil, err
		}
		if view.RegularContract, err = s.regularContracts.GetByCustomerID(dbc, customerID); err != nil {
			return nil, err
		}
	case types.CustomerTypeBusiness:
		if view.BusinessProfile, err = s.businessProfiles.GetByCustomerID(dbc, customerID); err != nil {
			return nil, err
		}
		if view.BusinessContract, err = s.businessContract.GetByCustomerID(dbc, customerID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *customerService) ListByType(ctx context.Context, customerType string, limit int) ([]*types.Customer, error) {
	const op = "CustomerService.ListByType"
	if s == nil || s.customers == nil {
		return nil, fmt.Errorf("customer service not configured")
	}
	customerType = strings.ToLower(strings.TrimSpace(customerType))
	switch customerType {
	case "", types.CustomerTypeRegular, types.CustomerTypeBusiness:
	default:
		return nil, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown customer type %q", customerType), nil)
	}
	return s.customers.ListByType(dbctx.Context{Ctx: ctx}, customerType, limit)
}

// Field resolves one named field against the aggregate: base fields on
// any customer, profile fields only on the matching variant.
func (s *customerService) Field(ctx context.Context, customerID uuid.UUID, field string) (string, error) {
	const op = "CustomerService.Field"
	if s == nil || s.customers == nil {
		return "", fmt.Errorf("customer service not configured")
	}
	if customerID == uuid.Nil {
		return "", domainagg.NewError(domainagg.CodeValidation, op, "missing customer id", nil)
	}
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		return "", domainagg.NewError(domainagg.CodeValidation, op, "missing field name", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	customer, err := s.customers.GetByID(dbc, customerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("customer not found: %s", customerID.String()), nil)
	}

	var (
		regular  *types.RegularCustomerProfile
		business *types.BusinessCustomerProfile
	)
	switch customer.Type {
	case types.CustomerTypeRegular:
		if regular, err = s.regularProfiles.GetByCustomerID(dbc, customerID); err != nil {
			return "", err
		}
	case types.CustomerTypeBusiness:
		if business, err = s.businessProfiles.GetByCustomerID(dbc, customerID); err != nil {
			return "", err
		}
	}

	value, err := parties.CustomerField(*customer, regular, business, field)
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, parties.ErrNoSuchField):
		return "", domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonNoSuchField, op, err.Error())
	case errors.Is(err, parties.ErrProfileMissing):
		return "", domainagg.NewRuleError(domainagg.CodeInvariantViolation, domainagg.ReasonTypeNotSet, op, err.Error())
	default:
		return "", err
	}
}
