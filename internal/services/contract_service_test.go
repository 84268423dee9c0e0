package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

func TestContractServiceCreateAddendumDelegatesToAggregate(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	fakeAgg := &fakeContractAggregate{}
	svc := NewContractService(log, fakeAgg, nil, nil)

	serviceID := uuid.New()
	if _, err := svc.CreateAddendum(context.Background(), domainagg.CreateAddendumInput{ServiceIDs: []uuid.UUID{serviceID}}); err != nil {
		t.Fatalf("CreateAddendum: %v", err)
	}
	if fakeAgg.createCalls != 1 {
		t.Fatalf("create call count: want=1 got=%d", fakeAgg.createCalls)
	}
	if len(fakeAgg.lastCreate.ServiceIDs) != 1 || fakeAgg.lastCreate.ServiceIDs[0] != serviceID {
		t.Fatalf("create service ids mismatch: got=%v", fakeAgg.lastCreate.ServiceIDs)
	}
}

func TestContractServiceCurrentAddendumAssemblesView(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	contractID := uuid.New()
	addendumID := uuid.New()
	phoneID := uuid.New()
	tvID := uuid.New()
	addenda := &fakeAddendumRepo{current: &types.Addendum{ID: addendumID, RegularContractID: &contractID}}
	links := &fakeAddendumServiceRepo{byAddendum: map[uuid.UUID][]uuid.UUID{
		addendumID: {phoneID, tvID},
	}}
	svc := NewContractService(log, nil, addenda, links)

	view, err := svc.CurrentAddendum(context.Background(), types.ContractKindRegular, contractID)
	if err != nil {
		t.Fatalf("CurrentAddendum: %v", err)
	}
	if view.Addendum.ID != addendumID {
		t.Fatalf("addendum id: want=%s got=%s", addendumID, view.Addendum.ID)
	}
	if len(view.ServiceIDs) != 2 {
		t.Fatalf("service ids: want=2 got=%d", len(view.ServiceIDs))
	}
	if addenda.lastKind != types.ContractKindRegular {
		t.Fatalf("kind passed to repo: want=%q got=%q", types.ContractKindRegular, addenda.lastKind)
	}
	if addenda.lastContractID != contractID {
		t.Fatalf("contract id passed to repo: want=%s got=%s", contractID, addenda.lastContractID)
	}
}

func TestContractServiceCurrentAddendumUnknownKind(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	addenda := &fakeAddendumRepo{}
	svc := NewContractService(log, nil, addenda, &fakeAddendumServiceRepo{})

	_, err = svc.CurrentAddendum(context.Background(), "monthly", uuid.New())
	if err == nil {
		t.Fatalf("CurrentAddendum: expected error for unknown kind")
	}
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("CurrentAddendum: want code=%s got=%s (%v)", domainagg.CodeValidation, domainagg.CodeOf(err), err)
	}
	if addenda.currentCalls != 0 {
		t.Fatalf("CurrentAddendum: repo called %d times for invalid kind", addenda.currentCalls)
	}
}

func TestContractServiceCurrentAddendumNoneRecorded(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	svc := NewContractService(log, nil, &fakeAddendumRepo{}, &fakeAddendumServiceRepo{})

	_, err = svc.CurrentAddendum(context.Background(), types.ContractKindBusiness, uuid.New())
	if err == nil {
		t.Fatalf("CurrentAddendum: expected error when contract has no addendum")
	}
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("CurrentAddendum: want code=%s got=%s (%v)", domainagg.CodeNotFound, domainagg.CodeOf(err), err)
	}
	if domainagg.ReasonOf(err) != domainagg.ReasonNoAddendum {
		t.Fatalf("CurrentAddendum: want reason=%s got=%s", domainagg.ReasonNoAddendum, domainagg.ReasonOf(err))
	}
}

type fakeContractAggregate struct {
	createCalls int
	lastCreate  domainagg.CreateAddendumInput
}

func (f *fakeContractAggregate) Contract() domainagg.Contract {
	return domainagg.ContractAggregateContract
}

func (f *fakeContractAggregate) CreateAddendum(_ context.Context, in domainagg.CreateAddendumInput) (domainagg.CreateAddendumResult, error) {
	f.createCalls++
	f.lastCreate = in
	return domainagg.CreateAddendumResult{AddendumID: uuid.New()}, nil
}

func (f *fakeContractAggregate) AttachAddendum(_ context.Context, in domainagg.AttachAddendumInput) (domainagg.AttachAddendumResult, error) {
	return domainagg.AttachAddendumResult{AddendumID: in.AddendumID}, nil
}

type fakeAddendumRepo struct {
	current *types.Addendum

	currentCalls   int
	lastKind       string
	lastContractID uuid.UUID
}

func (f *fakeAddendumRepo) Create(_ dbctx.Context, rows []*types.Addendum) ([]*types.Addendum, error) {
	return rows, nil
}

func (f *fakeAddendumRepo) GetByIDs(_ dbctx.Context, _ []uuid.UUID) ([]*types.Addendum, error) {
	return nil, nil
}

func (f *fakeAddendumRepo) GetByID(_ dbctx.Context, _ uuid.UUID) (*types.Addendum, error) {
	return nil, nil
}

func (f *fakeAddendumRepo) LockByID(_ dbctx.Context, _ uuid.UUID) (*types.Addendum, error) {
	return nil, nil
}

func (f *fakeAddendumRepo) CurrentForContract(_ dbctx.Context, kind string, contractID uuid.UUID) (*types.Addendum, error) {
	f.currentCalls++
	f.lastKind = kind
	f.lastContractID = contractID
	return f.current, nil
}

func (f *fakeAddendumRepo) ListByContract(_ dbctx.Context, _ string, _ uuid.UUID, _ int) ([]*types.Addendum, error) {
	return nil, nil
}

func (f *fakeAddendumRepo) IDsForContract(_ dbctx.Context, _ string, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeAddendumRepo) UpdateFields(_ dbctx.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}

func (f *fakeAddendumRepo) DeleteByContractIDs(_ dbctx.Context, _ string, _ []uuid.UUID) error {
	return nil
}

func (f *fakeAddendumRepo) DeleteByIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

type fakeAddendumServiceRepo struct {
	byAddendum map[uuid.UUID][]uuid.UUID
}

func (f *fakeAddendumServiceRepo) Create(_ dbctx.Context, rows []*types.AddendumService) ([]*types.AddendumService, error) {
	return rows, nil
}

func (f *fakeAddendumServiceRepo) ListByAddendumIDs(_ dbctx.Context, _ []uuid.UUID) ([]*types.AddendumService, error) {
	return nil, nil
}

func (f *fakeAddendumServiceRepo) ServiceIDsForAddendum(_ dbctx.Context, addendumID uuid.UUID) ([]uuid.UUID, error) {
	return f.byAddendum[addendumID], nil
}

func (f *fakeAddendumServiceRepo) DeleteByAddendumIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

func (f *fakeAddendumServiceRepo) DeleteByServiceIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}
