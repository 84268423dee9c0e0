package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var ContractAggregateContract = Contract{
	Name:             "Contracts.AddendumAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic addendum creation and exclusive addendum-to-contract binding.",
}

// ContractAggregate owns addendum writes: creating an addendum with
// its service set and binding it to exactly one contract.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation, CodeRetryable, CodeInternal.
type ContractAggregate interface {
	Aggregate

	// CreateAddendum persists the addendum and its service join rows in
	// one transaction. A contract binding may be supplied up front and
	// follows the AttachAddendum rules.
	CreateAddendum(ctx context.Context, in CreateAddendumInput) (CreateAddendumResult, error)

	// AttachAddendum binds an unassigned addendum exclusively to one
	// contract. An addendum that already references a contract fails
	// with ReasonAlreadyAssigned; naming both kinds at once fails with
	// ReasonDualAssignment.
	AttachAddendum(ctx context.Context, in AttachAddendumInput) (AttachAddendumResult, error)
}

type CreateAddendumInput struct {
	ServiceIDs []uuid.UUID
	// CreatedAt stamps the addendum; zero means now. CurrentAddendum
	// selection orders by this value.
	CreatedAt time.Time

	// Optional initial binding; at most one may be set.
	RegularContractID  *uuid.UUID
	BusinessContractID *uuid.UUID
}

type CreateAddendumResult struct {
	AddendumID uuid.UUID
	CreatedAt  time.Time
}

type AttachAddendumInput struct {
	AddendumID uuid.UUID

	// Exactly one of the pair names the target contract.
	RegularContractID  *uuid.UUID
	BusinessContractID *uuid.UUID
}

type AttachAddendumResult struct {
	AddendumID   uuid.UUID
	ContractID   uuid.UUID
	ContractKind string
	AttachedAt   time.Time
}
