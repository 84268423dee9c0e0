package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/billing"
	"github.com/webcomtel/webcom-backend/internal/domain/contracts"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/domain/parties"
)

var CustomerAggregateContract = Contract{
	Name:             "Parties.CustomerAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic base/profile/account/contract consistency for customer lifecycle writes.",
}

// CustomerAggregate owns the customer base record together with its
// profile, account and contract. The storage layer persists one row at
// a time, so every lifecycle write here runs the full cascade inside
// one transaction: base, account, contract, profile for save; account,
// contract, profile, base for delete, gated by the debt check.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation, CodeRetryable, CodeInternal.
type CustomerAggregate interface {
	Aggregate

	// CreateCustomer builds and persists a fresh aggregate. Exactly one
	// contract and one profile must be supplied and both must match
	// Type (ReasonTypeMismatch otherwise).
	CreateCustomer(ctx context.Context, in CreateCustomerInput) (CreateCustomerResult, error)

	// SaveCustomer persists base, account, contract and profile in that
	// order; any failing step aborts the whole cascade.
	SaveCustomer(ctx context.Context, in SaveCustomerInput) (SaveCustomerResult, error)

	// DeleteCustomer removes account, contract, profile and base in
	// that order. A negative balance fails with ReasonOutstandingDebt
	// before anything is touched.
	DeleteCustomer(ctx context.Context, in DeleteCustomerInput) (DeleteCustomerResult, error)

	// SetContract attaches or replaces the customer's contract of the
	// matching kind. An existing contract row keeps its identity (and
	// its addenda); only its terms are overwritten.
	SetContract(ctx context.Context, in SetContractInput) (SetContractResult, error)
}

type AccountInput struct {
	Number         string
	OpeningBalance money.Money
}

type CreateCustomerInput struct {
	Type    string // regular|business
	Email   string
	Phone   string
	Account AccountInput

	// Exactly one of each pair, matching Type.
	RegularContract  *contracts.RegularContract
	BusinessContract *contracts.BusinessContract
	RegularProfile   *parties.RegularCustomerProfile
	BusinessProfile  *parties.BusinessCustomerProfile
}

type CreateCustomerResult struct {
	CustomerID uuid.UUID
	AccountID  uuid.UUID
	ContractID uuid.UUID
	ProfileID  uuid.UUID
	CreatedAt  time.Time
}

type SaveCustomerInput struct {
	Customer parties.Customer
	Account  billing.Account

	RegularContract  *contracts.RegularContract
	BusinessContract *contracts.BusinessContract
	RegularProfile   *parties.RegularCustomerProfile
	BusinessProfile  *parties.BusinessCustomerProfile
}

type SaveCustomerResult struct {
	CustomerID uuid.UUID
	Version    int
	SavedAt    time.Time
}

type DeleteCustomerInput struct {
	CustomerID uuid.UUID
}

type DeleteCustomerResult struct {
	CustomerID uuid.UUID
	DeletedAt  time.Time
}

type SetContractInput struct {
	CustomerID uuid.UUID

	// Exactly one of the pair; its kind must match the customer type.
	RegularContract  *contracts.RegularContract
	BusinessContract *contracts.BusinessContract
}

type SetContractResult struct {
	CustomerID uuid.UUID
	ContractID uuid.UUID
	Kind       string
	Replaced   bool
}
