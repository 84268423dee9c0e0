package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/data/repos"
	catalogrepos "github.com/webcomtel/webcom-backend/internal/data/repos/catalog"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	domaincatalog "github.com/webcomtel/webcom-backend/internal/domain/catalog"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

// CatalogService fronts the service aggregate and the composition
// reads: total price and rule validation over a fresh snapshot.
type CatalogService interface {
	Create(ctx context.Context, in domainagg.CreateServiceInput) (domainagg.CreateServiceResult, error)
	Save(ctx context.Context, in domainagg.SaveServiceInput) (domainagg.SaveServiceResult, error)
	SetInclusions(ctx context.Context, in domainagg.SetServiceInclusionsInput) (domainagg.SetServiceInclusionsResult, error)
	Delete(ctx context.Context, serviceID uuid.UUID) (domainagg.DeleteServiceResult, error)

	Get(ctx context.Context, serviceID uuid.UUID) (*ServiceView, error)
	List(ctx context.Context, limit int) ([]*types.Service, error)
	TotalPrice(ctx context.Context, serviceID uuid.UUID) (money.Money, error)
	Validate(ctx context.Context, serviceID uuid.UUID) error
}

type ServiceView struct {
	Service    types.Service `json:"service"`
	IncludeIDs []uuid.UUID   `json:"include_ids"`
}

type catalogService struct {
	log *logger.Logger
	agg domainagg.CatalogAggregate

	services   repos.ServiceRepo
	inclusions repos.ServiceInclusionRepo
}

func NewCatalogService(
	baseLog *logger.Logger,
	agg domainagg.CatalogAggregate,
	services repos.ServiceRepo,
	inclusions repos.ServiceInclusionRepo,
) CatalogService {
	return &catalogService{
		log:        baseLog.With("service", "CatalogService"),
		agg:        agg,
		services:   services,
		inclusions: inclusions,
	}
}

func (s *catalogService) Create(ctx context.Context, in domainagg.CreateServiceInput) (domainagg.CreateServiceResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.CreateServiceResult{}, fmt.Errorf("catalog service not configured")
	}
	return s.agg.CreateService(ctx, in)
}

func (s *catalogService) Save(ctx context.Context, in domainagg.SaveServiceInput) (domainagg.SaveServiceResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.SaveServiceResult{}, fmt.Errorf("catalog service not configured")
	}
	return s.agg.SaveService(ctx, in)
}

func (s *catalogService) SetInclusions(ctx context.Context, in domainagg.SetServiceInclusionsInput) (domainagg.SetServiceInclusionsResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.SetServiceInclusionsResult{}, fmt.Errorf("catalog service not configured")
	}
	return s.agg.SetServiceInclusions(ctx, in)
}

func (s *catalogService) Delete(ctx context.Context, serviceID uuid.UUID) (domainagg.DeleteServiceResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.DeleteServiceResult{}, fmt.Errorf("catalog service not configured")
	}
	return s.agg.DeleteService(ctx, domainagg.DeleteServiceInput{ServiceID: serviceID})
}

func (s *catalogService) Get(ctx context.Context, serviceID uuid.UUID) (*ServiceView, error) {
	const op = "CatalogService.Get"
	if s == nil || s.services == nil || s.inclusions == nil {
		return nil, fmt.Errorf("catalog service not configured")
	}
	if serviceID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing service id", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	svc, err := s.services.GetByID(dbc, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("service not found: %s", serviceID.String()), nil)
	}
	edges, err := s.inclusions.ListByParentIDs(dbc, []uuid.UUID{serviceID})
	if err != nil {
		return nil, err
	}
	includeIDs := make([]uuid.UUID, 0, len(edges))
	for _, edge := range edges {
		includeIDs = append(includeIDs, edge.ChildServiceID)
	}
	return &ServiceView{Service: *svc, IncludeIDs: includeIDs}, nil
}

func (s *catalogService) List(ctx context.Context, limit int) ([]*types.Service, error) {
	if s == nil || s.services == nil {
		return nil, fmt.Errorf("catalog service not configured")
	}
	return s.services.List(dbctx.Context{Ctx: ctx}, limit)
}

// TotalPrice recomputes the recursive price from a fresh snapshot on
// every call; the value is never stored on the service row.
func (s *catalogService) TotalPrice(ctx context.Context, serviceID uuid.UUID) (money.Money, error) {
	const op = "CatalogService.TotalPrice"
	if s == nil || s.services == nil || s.inclusions == nil {
		return money.Money{}, fmt.Errorf("catalog service not configured")
	}
	if serviceID == uuid.Nil {
		return money.Money{}, domainagg.NewError(domainagg.CodeValidation, op, "missing service id", nil)
	}

	snapshot, err := catalogrepos.LoadSnapshot(dbctx.Context{Ctx: ctx}, s.services, s.inclusions)
	if err != nil {
		return money.Money{}, err
	}
	price, err := snapshot.TotalPrice(serviceID)
	if err != nil {
		return money.Money{}, mapCompositionError(op, err)
	}
	return price, nil
}

// Validate checks the stored inclusion set of one service against the
// bundle rules without changing anything.
func (s *catalogService) Validate(ctx context.Context, serviceID uuid.UUID) error {
	const op = "CatalogService.Validate"
	if s == nil || s.services == nil || s.inclusions == nil {
		return fmt.Errorf("catalog service not configured")
	}
	if serviceID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing service id", nil)
	}

	snapshot, err := catalogrepos.LoadSnapshot(dbctx.Context{Ctx: ctx}, s.services, s.inclusions)
	if err != nil {
		return err
	}
	if err := snapshot.Validate(serviceID); err != nil {
		return mapCompositionError(op, err)
	}
	return nil
}

func mapCompositionError(op string, err error) error {
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
