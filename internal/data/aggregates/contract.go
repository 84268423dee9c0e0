package aggregates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/webcomtel/webcom-backend/internal/data/repos"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
)

type ContractAggregateDeps struct {
	Base BaseDeps

	Addenda           repos.AddendumRepo
	AddendumServices  repos.AddendumServiceRepo
	Services          repos.ServiceRepo
	RegularContracts  repos.RegularContractRepo
	BusinessContracts repos.BusinessContractRepo
}

type contractAggregate struct {
	deps ContractAggregateDeps
}

func NewContractAggregate(deps ContractAggregateDeps) domainagg.ContractAggregate {
	deps.Base = deps.Base.withDefaults()
	return &contractAggregate{deps: deps}
}

func (a *contractAggregate) Contract() domainagg.Contract {
	return domainagg.ContractAggregateContract
}

func (a *contractAggregate) CreateAddendum(ctx context.Context, in domainagg.CreateAddendumInput) (domainagg.CreateAddendumResult, error) {
	const op = "Contracts.Addendum.Create"
	var out domainagg.CreateAddendumResult

	if in.RegularContractID != nil && in.BusinessContractID != nil {
		return out, domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonDualAssignment, op, "addendum cannot bind to both contract kinds")
	}
	serviceIDs := make([]uuid.UUID, 0, len(in.ServiceIDs))
	seen := make(map[uuid.UUID]struct{}, len(in.ServiceIDs))
	for _, id := range in.ServiceIDs {
		if id == uuid.Nil {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "missing service id", nil)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		serviceIDs = append(serviceIDs, id)
	}
	if a.deps.Addenda == nil || a.deps.AddendumServices == nil || a.deps.Services == nil ||
		a.deps.RegularContracts == nil || a.deps.BusinessContracts == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "contract aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if len(serviceIDs) > 0 {
			found, err := a.deps.Services.GetByIDs(dbc, serviceIDs)
			if err != nil {
				return err
			}
			if len(found) != len(serviceIDs) {
				known := make(map[uuid.UUID]struct{}, len(found))
				for _, svc := range found {
					known[svc.ID] = struct{}{}
				}
				for _, id := range serviceIDs {
					if _, ok := known[id]; !ok {
						return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("service not found: %s", id.String()), nil)
					}
				}
			}
		}

		if err := a.requireContract(dbc, op, in.RegularContractID, in.BusinessContractID); err != nil {
			return err
		}

		addendum := &types.Addendum{
			ID:                 uuid.New(),
			RegularContractID:  in.RegularContractID,
			BusinessContractID: in.BusinessContractID,
			CreatedAt:          createdAt,
			UpdatedAt:          now,
		}
		if _, err := a.deps.Addenda.Create(dbc, []*types.Addendum{addendum}); err != nil {
			return err
		}

		if len(serviceIDs) > 0 {
			joins := make([]*types.AddendumService, 0, len(serviceIDs))
			for _, id := range serviceIDs {
				joins = append(joins, &types.AddendumService{
					ID:         uuid.New(),
					AddendumID: addendum.ID,
					ServiceID:  id,
					CreatedAt:  now,
				})
			}
			if _, err := a.deps.AddendumServices.Create(dbc, joins); err != nil {
				return err
			}
		}

		out = domainagg.CreateAddendumResult{AddendumID: addendum.ID, CreatedAt: createdAt}
		return nil
	})
	return out, err
}

func (a *contractAggregate) AttachAddendum(ctx context.Context, in domainagg.AttachAddendumInput) (domainagg.AttachAddendumResult, error) {
	const op = "Contracts.Addendum.Attach"
	var out domainagg.AttachAddendumResult

	if in.AddendumID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing addendum id", nil)
	}
	if in.RegularContractID == nil && in.BusinessContractID == nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing contract reference", nil)
	}
	if in.RegularContractID != nil && in.BusinessContractID != nil {
		return out, domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonDualAssignment, op, "addendum cannot bind to both contract kinds")
	}
	if a.deps.Addenda == nil || a.deps.RegularContracts == nil || a.deps.BusinessContracts == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "contract aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Addenda.LockByID(dbc, in.AddendumID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("addendum not found: %s", in.AddendumID.String()), nil)
		}
		if stored.Assigned() {
			return domainagg.NewRuleError(domainagg.CodeConflict, domainagg.ReasonAlreadyAssigned, op, "addendum is already bound to a contract")
		}

		if err := a.requireContract(dbc, op, in.RegularContractID, in.BusinessContractID); err != nil {
			return err
		}

		var (
			contractID uuid.UUID
			kind       string
			updates    map[string]interface{}
		)
		if in.RegularContractID != nil {
			contractID = *in.RegularContractID
			kind = types.ContractKindRegular
			updates = map[string]interface{}{"regular_contract_id": contractID, "updated_at": now}
		} else {
			contractID = *in.BusinessContractID
			kind = types.ContractKindBusiness
			updates = map[string]interface{}{"business_contract_id": contractID, "updated_at": now}
		}
		if err := a.deps.Addenda.UpdateFields(dbc, stored.ID, updates); err != nil {
			return err
		}

		out = domainagg.AttachAddendumResult{
			AddendumID:   stored.ID,
			ContractID:   contractID,
			ContractKind: kind,
			AttachedAt:   now,
		}
		return nil
	})
	return out, err
}

func (a *contractAggregate) requireContract(dbc dbctx.Context, op string, regularID, businessID *uuid.UUID) error {
	switch {
	case regularID != nil:
		contract, err := a.deps.RegularContracts.GetByID(dbc, *regularID)
		if err != nil {
			return err
		}
		if contract == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("regular contract not found: %s", regularID.String()), nil)
		}
	case businessID != nil:
		contract, err := a.deps.BusinessContracts.GetByID(dbc, *businessID)
		if err != nil {
			return err
		}
		if contract == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("business contract not found: %s", businessID.String()), nil)
		}
	}
	return nil
}
