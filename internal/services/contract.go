package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/data/repos"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

// ContractService fronts the addendum aggregate and the current-
// addendum read used by billing and the API.
type ContractService interface {
	CreateAddendum(ctx context.Context, in domainagg.CreateAddendumInput) (domainagg.CreateAddendumResult, error)
	AttachAddendum(ctx context.Context, in domainagg.AttachAddendumInput) (domainagg.AttachAddendumResult, error)

	CurrentAddendum(ctx context.Context, contractKind string, contractID uuid.UUID) (*AddendumView, error)
}

type AddendumView struct {
	Addendum   types.Addendum `json:"addendum"`
	ServiceIDs []uuid.UUID    `json:"service_ids"`
}

type contractService struct {
	log *logger.Logger
	agg domainagg.ContractAggregate

	addenda          repos.AddendumRepo
	addendumServices repos.AddendumServiceRepo
}

func NewContractService(
	baseLog *logger.Logger,
	agg domainagg.ContractAggregate,
	addenda repos.AddendumRepo,
	addendumServices repos.AddendumServiceRepo,
) ContractService {
	return &contractService{
		log:              baseLog.With("service", "ContractService"),
		agg:              agg,
		addenda:          addenda,
		addendumServices: addendumServices,
	}
}

func (s *contractService) CreateAddendum(ctx context.Context, in domainagg.CreateAddendumInput) (domainagg.CreateAddendumResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.CreateAddendumResult{}, fmt.Errorf("contract service not configured")
	}
	return s.agg.CreateAddendum(ctx, in)
}

func (s *contractService) AttachAddendum(ctx context.Context, in domainagg.AttachAddendumInput) (domainagg.AttachAddendumResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.AttachAddendumResult{}, fmt.Errorf("contract service not configured")
	}
	return s.agg.AttachAddendum(ctx, in)
}

// CurrentAddendum returns the newest addendum of the contract, ties
// broken by id, together with its service set.
func (s *contractService) CurrentAddendum(ctx context.Context, contractKind string, contractID uuid.UUID) (*AddendumView, error) {
	const op = "ContractService.CurrentAddendum"
	if s == nil || s.addenda == nil || s.addendumServices == nil {
		return nil, fmt.Errorf("contract service not configured")
	}
	contractKind = strings.ToLower(strings.TrimSpace(contractKind))
	switch contractKind {
	case types.ContractKindRegular, types.ContractKindBusiness:
	default:
		return nil, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown contract kind %q", contractKind), nil)
	}
	if contractID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing contract id", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	addendum, err := s.addenda.CurrentForContract(dbc, contractKind, contractID)
	if err != nil {
		return nil, err
	}
	if addendum == nil {
		return nil, domainagg.NewRuleError(domainagg.CodeNotFound, domainagg.ReasonNoAddendum, op, "contract has no addendum")
	}
	serviceIDs, err := s.addendumServices.ServiceIDsForAddendum(dbc, addendum.ID)
	if err != nil {
		return nil, err
	}
	return &AddendumView{Addendum: *addendum, ServiceIDs: serviceIDs}, nil
}
