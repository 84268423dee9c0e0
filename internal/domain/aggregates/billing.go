package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/money"
)

var BillingAggregateContract = Contract{
	Name:             "Billing.AccountAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic balance debits against the contract's current addendum, with the account row locked.",
}

// BillingAggregate owns account balance writes. Pay resolves the
// owning customer's contract, takes its current addendum, sums the
// total price of every addendum service and debits the balance, all in
// one transaction with the account row locked against concurrent
// debits. There is no partial debit: any failure rolls the whole
// operation back.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation, CodeRetryable, CodeInternal.
type BillingAggregate interface {
	Aggregate

	// Pay debits the billing amount and records a Payment row with the
	// per-service breakdown. A contract without addenda fails with
	// ReasonNoAddendum.
	Pay(ctx context.Context, in PayInput) (PayResult, error)

	// DeleteAccount removes the account unless the balance is negative
	// (ReasonOutstandingDebt).
	DeleteAccount(ctx context.Context, in DeleteAccountInput) (DeleteAccountResult, error)
}

type PayInput struct {
	AccountID uuid.UUID
}

type PayResult struct {
	AccountID  uuid.UUID
	PaymentID  uuid.UUID
	AddendumID uuid.UUID
	Amount     money.Money
	Balance    money.Money
	PaidAt     time.Time
}

type DeleteAccountInput struct {
	AccountID uuid.UUID
}

type DeleteAccountResult struct {
	AccountID uuid.UUID
	DeletedAt time.Time
}
