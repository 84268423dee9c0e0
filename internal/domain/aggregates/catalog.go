package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/money"
)

var CatalogAggregateContract = Contract{
	Name:             "Catalog.ServiceAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic service and inclusion-edge writes; the bundle rules are checked against an in-transaction snapshot before any edge is persisted.",
}

// CatalogAggregate owns writes to the service catalogue. Inclusion
// edits are validated against the bundle rules (no self inclusion, at
// most three inclusions, no nested bundles) over a snapshot read in
// the same transaction that persists them.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation, CodeRetryable, CodeInternal.
type CatalogAggregate interface {
	Aggregate

	// CreateService persists a new catalogue entry. A duplicate name
	// fails with CodeConflict.
	CreateService(ctx context.Context, in CreateServiceInput) (CreateServiceResult, error)

	// SaveService overwrites the name and price of an existing entry.
	SaveService(ctx context.Context, in SaveServiceInput) (SaveServiceResult, error)

	// SetServiceInclusions replaces the service's inclusion set with
	// IncludeIDs. The proposed graph is validated first; on any rule
	// failure nothing is written.
	SetServiceInclusions(ctx context.Context, in SetServiceInclusionsInput) (SetServiceInclusionsResult, error)

	// DeleteService removes the entry together with every inclusion
	// edge it participates in, on either side, and its addendum links.
	// Other services are never deleted through an edge.
	DeleteService(ctx context.Context, in DeleteServiceInput) (DeleteServiceResult, error)
}

type CreateServiceInput struct {
	Name  string
	Price money.Money
}

type CreateServiceResult struct {
	ServiceID uuid.UUID
	CreatedAt time.Time
}

type SaveServiceInput struct {
	ServiceID uuid.UUID
	Name      string
	Price     money.Money
}

type SaveServiceResult struct {
	ServiceID uuid.UUID
	SavedAt   time.Time
}

type SetServiceInclusionsInput struct {
	ServiceID  uuid.UUID
	IncludeIDs []uuid.UUID
}

type SetServiceInclusionsResult struct {
	ServiceID  uuid.UUID
	IncludeIDs []uuid.UUID
	UpdatedAt  time.Time
}

type DeleteServiceInput struct {
	ServiceID uuid.UUID
}

type DeleteServiceResult struct {
	ServiceID uuid.UUID
	DeletedAt time.Time
}
