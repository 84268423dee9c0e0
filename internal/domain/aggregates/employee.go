package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/workforce"
)

var EmployeeAggregateContract = Contract{
	Name:             "Workforce.EmployeeAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic base/role-row consistency for technical employee lifecycle and type switches.",
}

// EmployeeAggregate owns a technical employee base record plus its
// single active role row (technician or sysadmin). Switching the
// employee type always deletes the old role row before the fresh one
// is created; no state has two role rows at once.
//
// Write method failures should return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation, CodeRetryable, CodeInternal.
type EmployeeAggregate interface {
	Aggregate

	// CreateEmployee persists the base record and a fresh, empty role
	// row of the requested kind.
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (CreateEmployeeResult, error)

	// SaveEmployee persists the base record and confirms the active
	// role row exists (ReasonTypeNotSet when it does not).
	SaveEmployee(ctx context.Context, in SaveEmployeeInput) (SaveEmployeeResult, error)

	// DeleteEmployee removes the active role row first, then the base.
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) (DeleteEmployeeResult, error)

	// SwitchEmployeeType changes the active variant. When NewType
	// equals the current type nothing is written. Otherwise the old
	// role row is deleted, a fresh one of the new kind is created and
	// the base tag is updated, all under an optimistic version check
	// on the base row.
	SwitchEmployeeType(ctx context.Context, in SwitchEmployeeTypeInput) (SwitchEmployeeTypeResult, error)
}

type CreateEmployeeInput struct {
	Employee workforce.TechnicalEmployee
}

type CreateEmployeeResult struct {
	EmployeeID uuid.UUID
	RoleRowID  uuid.UUID
	CreatedAt  time.Time
}

type SaveEmployeeInput struct {
	Employee workforce.TechnicalEmployee
}

type SaveEmployeeResult struct {
	EmployeeID uuid.UUID
	Version    int
	SavedAt    time.Time
}

type DeleteEmployeeInput struct {
	EmployeeID uuid.UUID
}

type DeleteEmployeeResult struct {
	EmployeeID uuid.UUID
	DeletedAt  time.Time
}

type SwitchEmployeeTypeInput struct {
	EmployeeID uuid.UUID
	NewType    string // technician|sysadmin

	// ExpectedVersion, when set, must match the stored base version or
	// the switch fails with CodeConflict.
	ExpectedVersion *int
}

type SwitchEmployeeTypeResult struct {
	EmployeeID   uuid.UUID
	EmployeeType string
	// Switched is false when NewType already matched and nothing was
	// written.
	Switched   bool
	Version    int
	SwitchedAt time.Time
}
