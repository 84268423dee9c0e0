package aggregates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/webcomtel/webcom-backend/internal/data/repos"
	catalogrepos "github.com/webcomtel/webcom-backend/internal/data/repos/catalog"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	domaincatalog "github.com/webcomtel/webcom-backend/internal/domain/catalog"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
)

type CatalogAggregateDeps struct {
	Base BaseDeps

	Services         repos.ServiceRepo
	Inclusions       repos.ServiceInclusionRepo
	AddendumServices repos.AddendumServiceRepo
}

type catalogAggregate struct {
	deps CatalogAggregateDeps
}

func NewCatalogAggregate(deps CatalogAggregateDeps) domainagg.CatalogAggregate {
	deps.Base = deps.Base.withDefaults()
	return &catalogAggregate{deps: deps}
}

func (a *catalogAggregate) Contract() domainagg.Contract {
	return domainagg.CatalogAggregateContract
}

func (a *catalogAggregate) CreateService(ctx context.Context, in domainagg.CreateServiceInput) (domainagg.CreateServiceResult, error) {
	const op = "Catalog.Service.Create"
	var out domainagg.CreateServiceResult

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing service name", nil)
	}
	if in.Price.IsNegative() {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "price cannot be negative", nil)
	}
	if a.deps.Services == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		exists, err := a.deps.Services.NameExists(dbc, name)
		if err != nil {
			return err
		}
		if exists {
			return domainagg.NewError(domainagg.CodeConflict, op, fmt.Sprintf("service name already taken: %s", name), nil)
		}

		service := &types.Service{
			ID:        uuid.New(),
			Name:      name,
			Price:     money.New(in.Price.Amount, in.Price.Currency),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := a.deps.Services.Create(dbc, []*types.Service{service}); err != nil {
			return err
		}

		out = domainagg.CreateServiceResult{ServiceID: service.ID, CreatedAt: now}
		return nil
	})
	return out, err
}

func (a *catalogAggregate) SaveService(ctx context.Context, in domainagg.SaveServiceInput) (domainagg.SaveServiceResult, error) {
	const op = "Catalog.Service.Save"
	var out domainagg.SaveServiceResult

	if in.ServiceID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing service id", nil)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing service name", nil)
	}
	if in.Price.IsNegative() {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "price cannot be negative", nil)
	}
	if a.deps.Services == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Services.GetByID(dbc, in.ServiceID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("service not found: %s", in.ServiceID.String()), nil)
		}
		if name != stored.Name {
			exists, err := a.deps.Services.NameExists(dbc, name)
			if err != nil {
				return err
			}
			if exists {
				return domainagg.NewError(domainagg.CodeConflict, op, fmt.Sprintf("service name already taken: %s", name), nil)
			}
		}

		price := money.New(in.Price.Amount, in.Price.Currency)
		if err := a.deps.Services.UpdateFields(dbc, stored.ID, map[string]interface{}{
			"name":           name,
			"price_amount":   price.Amount,
			"price_currency": price.Currency,
			"updated_at":     now,
		}); err != nil {
			return err
		}

		out = domainagg.SaveServiceResult{ServiceID: stored.ID, SavedAt: now}
		return nil
	})
	return out, err
}

func (a *catalogAggregate) SetServiceInclusions(ctx context.Context, in domainagg.SetServiceInclusionsInput) (domainagg.SetServiceInclusionsResult, error) {
	const op = "Catalog.Service.SetInclusions"
	var out domainagg.SetServiceInclusionsResult

	if in.ServiceID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing service id", nil)
	}
	includeIDs := make([]uuid.UUID, 0, len(in.IncludeIDs))
	seen := make(map[uuid.UUID]struct{}, len(in.IncludeIDs))
	for _, id := range in.IncludeIDs {
		if id == uuid.Nil {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "missing included service id", nil)
		}
		if id == in.ServiceID {
			return out, domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonSelfInclusion, op, "service cannot include itself")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		includeIDs = append(includeIDs, id)
	}
	if len(includeIDs) > domaincatalog.MaxInclusions {
		return out, domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonTooManyInclusions, op,
			fmt.Sprintf("%d inclusions exceed the limit of %d", len(includeIDs), domaincatalog.MaxInclusions))
	}
	if a.deps.Services == nil || a.deps.Inclusions == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		snapshot, err := catalogrepos.LoadSnapshot(dbc, a.deps.Services, a.deps.Inclusions)
		if err != nil {
			return err
		}
		if !snapshot.Has(in.ServiceID) {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("service not found: %s", in.ServiceID.String()), nil)
		}
		for _, id := range includeIDs {
			if !snapshot.Has(id) {
				return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("included service not found: %s", id.String()), nil)
			}
		}

		// Validate the edit against the whole graph before writing: the
		// edited service itself, then every bundle that includes it, since
		// a leaf gaining children turns its parents into nested bundles.
		snapshot.ReplaceInclusions(in.ServiceID, includeIDs)
		if err := snapshot.Validate(in.ServiceID); err != nil {
			return mapInclusionRuleError(op, err)
		}
		for _, parent := range snapshot.Parents(in.ServiceID) {
			if err := snapshot.Validate(parent); err != nil {
				return mapInclusionRuleError(op, err)
			}
		}

		if err := a.deps.Inclusions.DeleteByParentIDs(dbc, []uuid.UUID{in.ServiceID}); err != nil {
			return err
		}
		if len(includeIDs) > 0 {
			edges := make([]*types.ServiceInclusion, 0, len(includeIDs))
			for _, id := range includeIDs {
				edges = append(edges, &types.ServiceInclusion{
					ID:              uuid.New(),
					ParentServiceID: in.ServiceID,
					ChildServiceID:  id,
					CreatedAt:       now,
				})
			}
			if _, err := a.deps.Inclusions.Create(dbc, edges); err != nil {
				return err
			}
		}
		if err := a.deps.Services.UpdateFields(dbc, in.ServiceID, map[string]interface{}{
			"updated_at": now,
		}); err != nil {
			return err
		}

		out = domainagg.SetServiceInclusionsResult{
			ServiceID:  in.ServiceID,
			IncludeIDs: includeIDs,
			UpdatedAt:  now,
		}
		return nil
	})
	return out, err
}

func (a *catalogAggregate) DeleteService(ctx context.Context, in domainagg.DeleteServiceInput) (domainagg.DeleteServiceResult, error) {
	const op = "Catalog.Service.Delete"
	var out domainagg.DeleteServiceResult

	if in.ServiceID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing service id", nil)
	}
	if a.deps.Services == nil || a.deps.Inclusions == nil || a.deps.AddendumServices == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "catalog aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Services.GetByID(dbc, in.ServiceID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("service not found: %s", in.ServiceID.String()), nil)
		}

		ids := []uuid.UUID{stored.ID}
		if err := a.deps.AddendumServices.DeleteByServiceIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Inclusions.DeleteByServiceIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Services.DeleteByIDs(dbc, ids); err != nil {
			return err
		}

		out = domainagg.DeleteServiceResult{ServiceID: stored.ID, DeletedAt: now}
		return nil
	})
	return out, err
}

func mapInclusionRuleError(op string, err error) error {
	switch {
	case errors.Is(err, domaincatalog.ErrSelfInclusion):
		return domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonSelfInclusion, op, err.Error())
	case errors.Is(err, domaincatalog.ErrTooManyInclusions):
		return domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonTooManyInclusions, op, err.Error())
	case errors.Is(err, domaincatalog.ErrNestedBundle):
		return domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonNestedBundle, op, err.Error())
	case errors.Is(err, domaincatalog.ErrUnknownService):
		return domainagg.NewError(domainagg.CodeNotFound, op, err.Error(), err)
	default:
		return err
	}
}
