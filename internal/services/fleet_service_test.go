package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

func newFleetServiceForTest(t *testing.T, laptops *fakeLaptopRepo, repairs *fakeLaptopRepairRepo, technicians *fakeTechnicianRepo) FleetService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewFleetService(log, laptops, &fakeServerRepo{}, &fakeRouterRepo{}, repairs, &fakeServerRepairRepo{}, &fakeRouterRepairRepo{}, technicians)
}

func TestFleetServiceCreateDeviceUnknownKind(t *testing.T) {
	svc := newFleetServiceForTest(t, &fakeLaptopRepo{}, &fakeLaptopRepairRepo{}, &fakeTechnicianRepo{})

	_, err := svc.CreateDevice(context.Background(), CreateDeviceInput{Kind: "switch", Model: "X", Manufacturer: "Y"})
	if err == nil {
		t.Fatalf("CreateDevice: expected error for unknown kind")
	}
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("CreateDevice: want code=%s got=%s (%v)", domainagg.CodeValidation, domainagg.CodeOf(err), err)
	}
}

func TestFleetServiceCreateDeviceStoresLaptop(t *testing.T) {
	laptops := &fakeLaptopRepo{}
	svc := newFleetServiceForTest(t, laptops, &fakeLaptopRepairRepo{}, &fakeTechnicianRepo{})

	view, err := svc.CreateDevice(context.Background(), CreateDeviceInput{Kind: "Laptop", Model: " ThinkPad X1 ", Manufacturer: "Lenovo"})
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}
	if view.Kind != types.DeviceKindLaptop {
		t.Fatalf("view kind: want=%q got=%q", types.DeviceKindLaptop, view.Kind)
	}
	if view.Model != "ThinkPad X1" {
		t.Fatalf("view model: want=%q got=%q", "ThinkPad X1", view.Model)
	}
	if laptops.createCalls != 1 {
		t.Fatalf("create call count: want=1 got=%d", laptops.createCalls)
	}
	if laptops.lastCreated == nil || laptops.lastCreated.ID != view.ID {
		t.Fatalf("stored row mismatch: view=%s row=%+v", view.ID, laptops.lastCreated)
	}
}

func TestFleetServiceRecordRepairUnknownTechnician(t *testing.T) {
	laptopID := uuid.New()
	laptops := &fakeLaptopRepo{rows: map[uuid.UUID]*types.Laptop{
		laptopID: {ID: laptopID, Model: "X1", Manufacturer: "Lenovo"},
	}}
	svc := newFleetServiceForTest(t, laptops, &fakeLaptopRepairRepo{}, &fakeTechnicianRepo{})

	_, err := svc.RecordRepair(context.Background(), RecordRepairInput{
		Kind:         types.DeviceKindLaptop,
		DeviceID:     laptopID,
		TechnicianID: uuid.New(),
	})
	if err == nil {
		t.Fatalf("RecordRepair: expected error for unknown technician")
	}
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("RecordRepair: want code=%s got=%s (%v)", domainagg.CodeNotFound, domainagg.CodeOf(err), err)
	}
}

func TestFleetServiceRecordRepairUnknownDevice(t *testing.T) {
	employeeID := uuid.New()
	technicianID := uuid.New()
	technicians := &fakeTechnicianRepo{byEmployee: map[uuid.UUID]*types.Technician{
		employeeID: {ID: technicianID, EmployeeID: employeeID},
	}}
	svc := newFleetServiceForTest(t, &fakeLaptopRepo{}, &fakeLaptopRepairRepo{}, technicians)

	_, err := svc.RecordRepair(context.Background(), RecordRepairInput{
		Kind:         types.DeviceKindLaptop,
		DeviceID:     uuid.New(),
		TechnicianID: technicianID,
	})
	if err == nil {
		t.Fatalf("RecordRepair: expected error for unknown device")
	}
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("RecordRepair: want code=%s got=%s (%v)", domainagg.CodeNotFound, domainagg.CodeOf(err), err)
	}
}

func TestFleetServiceRecordRepairStampsNow(t *testing.T) {
	laptopID := uuid.New()
	employeeID := uuid.New()
	technicianID := uuid.New()
	laptops := &fakeLaptopRepo{rows: map[uuid.UUID]*types.Laptop{
		laptopID: {ID: laptopID, Model: "X1", Manufacturer: "Lenovo"},
	}}
	repairs := &fakeLaptopRepairRepo{}
	technicians := &fakeTechnicianRepo{byEmployee: map[uuid.UUID]*types.Technician{
		employeeID: {ID: technicianID, EmployeeID: employeeID},
	}}
	svc := newFleetServiceForTest(t, laptops, repairs, technicians)

	before := time.Now().UTC()
	view, err := svc.RecordRepair(context.Background(), RecordRepairInput{
		Kind:         types.DeviceKindLaptop,
		DeviceID:     laptopID,
		TechnicianID: technicianID,
		Notes:        "fan swap",
	})
	if err != nil {
		t.Fatalf("RecordRepair: %v", err)
	}
	if view.RepairedAt.Before(before) {
		t.Fatalf("repaired at not stamped: %v < %v", view.RepairedAt, before)
	}
	if repairs.createCalls != 1 {
		t.Fatalf("create call count: want=1 got=%d", repairs.createCalls)
	}
	if repairs.lastCreated == nil || repairs.lastCreated.LaptopID != laptopID {
		t.Fatalf("stored repair mismatch: %+v", repairs.lastCreated)
	}
	if repairs.lastCreated.TechnicianID != technicianID {
		t.Fatalf("repair technician: want=%s got=%s", technicianID, repairs.lastCreated.TechnicianID)
	}
}

func TestFleetServiceListRepairsMapsRows(t *testing.T) {
	laptopID := uuid.New()
	technicianID := uuid.New()
	repairedAt := time.Now().UTC().Add(-24 * time.Hour)
	repairs := &fakeLaptopRepairRepo{listRows: []*types.LaptopRepair{
		{ID: uuid.New(), LaptopID: laptopID, TechnicianID: technicianID, RepairedAt: repairedAt, Notes: "screen"},
	}}
	svc := newFleetServiceForTest(t, &fakeLaptopRepo{}, repairs, &fakeTechnicianRepo{})

	views, err := svc.ListRepairs(context.Background(), types.DeviceKindLaptop, laptopID, 50)
	if err != nil {
		t.Fatalf("ListRepairs: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("repair count: want=1 got=%d", len(views))
	}
	if views[0].DeviceID != laptopID {
		t.Fatalf("repair device id: want=%s got=%s", laptopID, views[0].DeviceID)
	}
	if views[0].Kind != types.DeviceKindLaptop {
		t.Fatalf("repair kind: want=%q got=%q", types.DeviceKindLaptop, views[0].Kind)
	}
	if views[0].Notes != "screen" {
		t.Fatalf("repair notes: want=%q got=%q", "screen", views[0].Notes)
	}
}

type fakeLaptopRepo struct {
	rows map[uuid.UUID]*types.Laptop

	createCalls int
	lastCreated *types.Laptop
}

func (f *fakeLaptopRepo) Create(_ dbctx.Context, rows []*types.Laptop) ([]*types.Laptop, error) {
	f.createCalls++
	if len(rows) > 0 {
		f.lastCreated = rows[0]
	}
	return rows, nil
}

func (f *fakeLaptopRepo) GetByIDs(_ dbctx.Context, ids []uuid.UUID) ([]*types.Laptop, error) {
	var out []*types.Laptop
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeLaptopRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Laptop, error) {
	return f.rows[id], nil
}

func (f *fakeLaptopRepo) List(_ dbctx.Context, _ int) ([]*types.Laptop, error) {
	var out []*types.Laptop
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeLaptopRepo) UpdateFields(_ dbctx.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}

func (f *fakeLaptopRepo) DeleteByIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

type fakeServerRepo struct{}

func (f *fakeServerRepo) Create(_ dbctx.Context, rows []*types.Server) ([]*types.Server, error) {
	return rows, nil
}

func (f *fakeServerRepo) GetByIDs(_ dbctx.Context, _ []uuid.UUID) ([]*types.Server, error) {
	return nil, nil
}

func (f *fakeServerRepo) GetByID(_ dbctx.Context, _ uuid.UUID) (*types.Server, error) {
	return nil, nil
}

func (f *fakeServerRepo) List(_ dbctx.Context, _ int) ([]*types.Server, error) {
	return nil, nil
}

func (f *fakeServerRepo) UpdateFields(_ dbctx.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}

func (f *fakeServerRepo) DeleteByIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

type fakeRouterRepo struct{}

func (f *fakeRouterRepo) Create(_ dbctx.Context, rows []*types.Router) ([]*types.Router, error) {
	return rows, nil
}

func (f *fakeRouterRepo) GetByIDs(_ dbctx.Context, _ []uuid.UUID) ([]*types.Router, error) {
	return nil, nil
}

func (f *fakeRouterRepo) GetByID(_ dbctx.Context, _ uuid.UUID) (*types.Router, error) {
	return nil, nil
}

func (f *fakeRouterRepo) List(_ dbctx.Context, _ int) ([]*types.Router, error) {
	return nil, nil
}

func (f *fakeRouterRepo) UpdateFields(_ dbctx.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}

func (f *fakeRouterRepo) DeleteByIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

type fakeLaptopRepairRepo struct {
	listRows []*types.LaptopRepair

	createCalls int
	lastCreated *types.LaptopRepair
}

func (f *fakeLaptopRepairRepo) Create(_ dbctx.Context, rows []*types.LaptopRepair) ([]*types.LaptopRepair, error) {
	f.createCalls++
	if len(rows) > 0 {
		f.lastCreated = rows[0]
	}
	return rows, nil
}

func (f *fakeLaptopRepairRepo) ListByDevice(_ dbctx.Context, _ uuid.UUID, _ int) ([]*types.LaptopRepair, error) {
	return f.listRows, nil
}

func (f *fakeLaptopRepairRepo) DeleteByDeviceIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

type fakeServerRepairRepo struct{}

func (f *fakeServerRepairRepo) Create(_ dbctx.Context, rows []*types.ServerRepair) ([]*types.ServerRepair, error) {
	return rows, nil
}

func (f *fakeServerRepairRepo) ListByDevice(_ dbctx.Context, _ uuid.UUID, _ int) ([]*types.ServerRepair, error) {
	return nil, nil
}

func (f *fakeServerRepairRepo) DeleteByDeviceIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

type fakeRouterRepairRepo struct{}

func (f *fakeRouterRepairRepo) Create(_ dbctx.Context, rows []*types.RouterRepair) ([]*types.RouterRepair, error) {
	return rows, nil
}

func (f *fakeRouterRepairRepo) ListByDevice(_ dbctx.Context, _ uuid.UUID, _ int) ([]*types.RouterRepair, error) {
	return nil, nil
}

func (f *fakeRouterRepairRepo) DeleteByDeviceIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}
