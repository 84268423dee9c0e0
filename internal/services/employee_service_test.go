package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

func TestEmployeeServiceSwitchTypeDelegatesToAggregate(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	fakeAgg := &fakeEmployeeAggregate{}
	svc := NewEmployeeService(log, fakeAgg, nil, nil, nil)

	employeeID := uuid.New()
	if _, err := svc.SwitchType(context.Background(), domainagg.SwitchEmployeeTypeInput{EmployeeID: employeeID, NewType: types.EmployeeTypeSysAdmin}); err != nil {
		t.Fatalf("SwitchType: %v", err)
	}
	if fakeAgg.switchCalls != 1 {
		t.Fatalf("switch call count: want=1 got=%d", fakeAgg.switchCalls)
	}
	if fakeAgg.lastSwitch.EmployeeID != employeeID {
		t.Fatalf("switch employee id: want=%s got=%s", employeeID, fakeAgg.lastSwitch.EmployeeID)
	}
	if fakeAgg.lastSwitch.NewType != types.EmployeeTypeSysAdmin {
		t.Fatalf("switch new type: want=%q got=%q", types.EmployeeTypeSysAdmin, fakeAgg.lastSwitch.NewType)
	}
}

func TestEmployeeServiceSwitchTypeRequiresAggregate(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	svc := NewEmployeeService(log, nil, nil, nil, nil)

	_, err = svc.SwitchType(context.Background(), domainagg.SwitchEmployeeTypeInput{EmployeeID: uuid.New(), NewType: types.EmployeeTypeSysAdmin})
	if err == nil {
		t.Fatalf("SwitchType: expected error when aggregate missing")
	}
	if err.Error() != "employee service not configured" {
		t.Fatalf("SwitchType: unexpected error: %v", err)
	}
}

func TestEmployeeServiceBonusTechnicianIsZero(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	employeeID := uuid.New()
	employees := &fakeEmployeeRepo{rows: map[uuid.UUID]*types.TechnicalEmployee{
		employeeID: {ID: employeeID, EmployeeType: types.EmployeeTypeTechnician, Salary: money.FromFloat(2500, money.DefaultCurrency)},
	}}
	technicians := &fakeTechnicianRepo{byEmployee: map[uuid.UUID]*types.Technician{
		employeeID: {ID: uuid.New(), EmployeeID: employeeID},
	}}
	svc := NewEmployeeService(log, nil, employees, technicians, &fakeSysAdminRepo{})

	bonus, err := svc.Bonus(context.Background(), employeeID)
	if err != nil {
		t.Fatalf("Bonus: %v", err)
	}
	if !bonus.IsZero() {
		t.Fatalf("technician bonus: want zero got %s", bonus)
	}
	if bonus.Currency != money.DefaultCurrency {
		t.Fatalf("bonus currency: want=%q got=%q", money.DefaultCurrency, bonus.Currency)
	}
}

func TestEmployeeServiceBonusSysAdminTenthOfSalary(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	employeeID := uuid.New()
	employees := &fakeEmployeeRepo{rows: map[uuid.UUID]*types.TechnicalEmployee{
		employeeID: {ID: employeeID, EmployeeType: types.EmployeeTypeSysAdmin, Salary: money.FromFloat(5000, money.DefaultCurrency)},
	}}
	sysadmins := &fakeSysAdminRepo{byEmployee: map[uuid.UUID]*types.SysAdmin{
		employeeID: {ID: uuid.New(), EmployeeID: employeeID},
	}}
	svc := NewEmployeeService(log, nil, employees, &fakeTechnicianRepo{}, sysadmins)

	bonus, err := svc.Bonus(context.Background(), employeeID)
	if err != nil {
		t.Fatalf("Bonus: %v", err)
	}
	want := money.FromFloat(500, money.DefaultCurrency)
	if !bonus.Equal(want) {
		t.Fatalf("sysadmin bonus: want=%s got=%s", want, bonus)
	}
}

func TestEmployeeServiceBonusMissingRoleRow(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	employeeID := uuid.New()
	employees := &fakeEmployeeRepo{rows: map[uuid.UUID]*types.TechnicalEmployee{
		employeeID: {ID: employeeID, EmployeeType: types.EmployeeTypeTechnician, Salary: money.FromFloat(2500, money.DefaultCurrency)},
	}}
	svc := NewEmployeeService(log, nil, employees, &fakeTechnicianRepo{}, &fakeSysAdminRepo{})

	_, err = svc.Bonus(context.Background(), employeeID)
	if err == nil {
		t.Fatalf("Bonus: expected error when role row missing")
	}
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("Bonus: want code=%s got=%s (%v)", domainagg.CodeInvariantViolation, domainagg.CodeOf(err), err)
	}
	if domainagg.ReasonOf(err) != domainagg.ReasonTypeNotSet {
		t.Fatalf("Bonus: want reason=%s got=%s", domainagg.ReasonTypeNotSet, domainagg.ReasonOf(err))
	}
}

func TestEmployeeServiceBonusUnknownEmployee(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	svc := NewEmployeeService(log, nil, &fakeEmployeeRepo{}, &fakeTechnicianRepo{}, &fakeSysAdminRepo{})

	_, err = svc.Bonus(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("Bonus: expected error for unknown employee")
	}
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("Bonus: want code=%s got=%s (%v)", domainagg.CodeNotFound, domainagg.CodeOf(err), err)
	}
}

func TestEmployeeServiceGetLoadsActiveRoleRow(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	employeeID := uuid.New()
	roleRowID := uuid.New()
	employees := &fakeEmployeeRepo{rows: map[uuid.UUID]*types.TechnicalEmployee{
		employeeID: {ID: employeeID, EmployeeType: types.EmployeeTypeTechnician},
	}}
	technicians := &fakeTechnicianRepo{byEmployee: map[uuid.UUID]*types.Technician{
		employeeID: {ID: roleRowID, EmployeeID: employeeID},
	}}
	svc := NewEmployeeService(log, nil, employees, technicians, &fakeSysAdminRepo{})

	view, err := svc.Get(context.Background(), employeeID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view.Technician == nil || view.Technician.ID != roleRowID {
		t.Fatalf("view technician: want id=%s got=%+v", roleRowID, view.Technician)
	}
	if view.SysAdmin != nil {
		t.Fatalf("view sysadmin: want nil got=%+v", view.SysAdmin)
	}
}

type fakeEmployeeAggregate struct {
	switchCalls int
	lastSwitch  domainagg.SwitchEmployeeTypeInput
}

func (f *fakeEmployeeAggregate) Contract() domainagg.Contract {
	return domainagg.EmployeeAggregateContract
}

func (f *fakeEmployeeAggregate) CreateEmployee(_ context.Context, in domainagg.CreateEmployeeInput) (domainagg.CreateEmployeeResult, error) {
	return domainagg.CreateEmployeeResult{EmployeeID: in.Employee.ID}, nil
}

func (f *fakeEmployeeAggregate) SaveEmployee(_ context.Context, in domainagg.SaveEmployeeInput) (domainagg.SaveEmployeeResult, error) {
	return domainagg.SaveEmployeeResult{EmployeeID: in.Employee.ID}, nil
}

func (f *fakeEmployeeAggregate) DeleteEmployee(_ context.Context, in domainagg.DeleteEmployeeInput) (domainagg.DeleteEmployeeResult, error) {
	return domainagg.DeleteEmployeeResult{EmployeeID: in.EmployeeID}, nil
}

func (f *fakeEmployeeAggregate) SwitchEmployeeType(_ context.Context, in domainagg.SwitchEmployeeTypeInput) (domainagg.SwitchEmployeeTypeResult, error) {
	f.switchCalls++
	f.lastSwitch = in
	return domainagg.SwitchEmployeeTypeResult{EmployeeID: in.EmployeeID, EmployeeType: in.NewType, Switched: true}, nil
}

type fakeEmployeeRepo struct {
	rows map[uuid.UUID]*types.TechnicalEmployee
}

func (f *fakeEmployeeRepo) Create(_ dbctx.Context, rows []*types.TechnicalEmployee) ([]*types.TechnicalEmployee, error) {
	return rows, nil
}

func (f *fakeEmployeeRepo) GetByIDs(_ dbctx.Context, ids []uuid.UUID) ([]*types.TechnicalEmployee, error) {
	var out []*types.TechnicalEmployee
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.TechnicalEmployee, error) {
	return f.rows[id], nil
}

func (f *fakeEmployeeRepo) EmailExists(_ dbctx.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakeEmployeeRepo) List(_ dbctx.Context, _ int) ([]*types.TechnicalEmployee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) LockByID(_ dbctx.Context, id uuid.UUID) (*types.TechnicalEmployee, error) {
	return f.rows[id], nil
}

func (f *fakeEmployeeRepo) UpdateFields(_ dbctx.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}

func (f *fakeEmployeeRepo) DeleteByIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

type fakeTechnicianRepo struct {
	byEmployee map[uuid.UUID]*types.Technician
}

func (f *fakeTechnicianRepo) Create(_ dbctx.Context, rows []*types.Technician) ([]*types.Technician, error) {
	return rows, nil
}

func (f *fakeTechnicianRepo) GetByIDs(_ dbctx.Context, ids []uuid.UUID) ([]*types.Technician, error) {
	var out []*types.Technician
	for _, row := range f.byEmployee {
		for _, id := range ids {
			if row.ID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (f *fakeTechnicianRepo) GetByEmployeeID(_ dbctx.Context, employeeID uuid.UUID) (*types.Technician, error) {
	return f.byEmployee[employeeID], nil
}

func (f *fakeTechnicianRepo) DeleteByEmployeeIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

type fakeSysAdminRepo struct {
	byEmployee map[uuid.UUID]*types.SysAdmin
}

func (f *fakeSysAdminRepo) Create(_ dbctx.Context, rows []*types.SysAdmin) ([]*types.SysAdmin, error) {
	return rows, nil
}

func (f *fakeSysAdminRepo) GetByEmployeeID(_ dbctx.Context, employeeID uuid.UUID) (*types.SysAdmin, error) {
	return f.byEmployee[employeeID], nil
}

func (f *fakeSysAdminRepo) DeleteByEmployeeIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}
