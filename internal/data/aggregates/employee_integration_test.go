package aggregates

import (
	"context"
	"sync"
	"testing"

	repotest "github.com/webcomtel/webcom-backend/internal/data/repos/testutil"
	workforcerepos "github.com/webcomtel/webcom-backend/internal/data/repos/workforce"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

func newEmployeeAggregateForTest(t *testing.T, tx *gorm.DB) (domainagg.EmployeeAggregate, EmployeeAggregateDeps) {
	t.Helper()
	log := repotest.Logger(t)
	deps := EmployeeAggregateDeps{
		Base: BaseDeps{
			DB:       tx,
			Runner:   NewGormTxRunner(tx),
			CASGuard: NewCASGuard(tx),
		},
		Employees:   workforcerepos.NewTechnicalEmployeeRepo(tx, log),
		Technicians: workforcerepos.NewTechnicianRepo(tx, log),
		SysAdmins:   workforcerepos.NewSysAdminRepo(tx, log),
	}
	return NewEmployeeAggregate(deps), deps
}

func TestEmployeeAggregateCreateTechnicianWithRoleRow(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg, deps := newEmployeeAggregateForTest(t, tx)

	ctx := context.Background()
	res, err := agg.CreateEmployee(ctx, domainagg.CreateEmployeeInput{
		Employee: types.TechnicalEmployee{
			Email:           "tech.hire@example.com",
			Phone:           "+15550105001",
			FirstName:       "Iva",
			LastName:        "Marsh",
			ApartmentNumber: "3",
			Salary:          money.FromFloat(2500, money.DefaultCurrency),
			Seniority:       2,
			EmployeeType:    types.EmployeeTypeTechnician,
		},
	})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	stored, err := deps.Employees.GetByID(dbc, res.EmployeeID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored == nil || stored.EmployeeType != types.EmployeeTypeTechnician || stored.Version != 0 {
		t.Fatalf("base row: %+v", stored)
	}
	role, err := deps.Technicians.GetByEmployeeID(dbc, res.EmployeeID)
	if err != nil {
		t.Fatalf("GetByEmployeeID: %v", err)
	}
	if role == nil || role.ID != res.RoleRowID {
		t.Fatalf("technician row: got=%v want id=%s", role, res.RoleRowID)
	}
}

func TestEmployeeAggregateSwitchTypeReplacesRoleRow(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg, deps := newEmployeeAggregateForTest(t, tx)

	ctx := context.Background()
	employee := repotest.SeedEmployee(t, ctx, tx, "switch.me@example.com", types.EmployeeTypeTechnician)
	repotest.SeedTechnician(t, ctx, tx, employee.ID)

	res, err := agg.SwitchEmployeeType(ctx, domainagg.SwitchEmployeeTypeInput{
		EmployeeID: employee.ID,
		NewType:    types.EmployeeTypeSysAdmin,
	})
	if err != nil {
		t.Fatalf("SwitchEmployeeType: %v", err)
	}
	if !res.Switched {
		t.Fatalf("expected Switched=true")
	}
	if res.EmployeeType != types.EmployeeTypeSysAdmin {
		t.Fatalf("employee type: got %q", res.EmployeeType)
	}
	if res.Version != 1 {
		t.Fatalf("version after switch: want=1 got=%d", res.Version)
	}

	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	oldRole, err := deps.Technicians.GetByEmployeeID(dbc, employee.ID)
	if err != nil {
		t.Fatalf("GetByEmployeeID technician: %v", err)
	}
	if oldRole != nil {
		t.Fatalf("technician row should be gone after switch")
	}
	newRole, err := deps.SysAdmins.GetByEmployeeID(dbc, employee.ID)
	if err != nil {
		t.Fatalf("GetByEmployeeID sysadmin: %v", err)
	}
	if newRole == nil {
		t.Fatalf("sysadmin row missing after switch")
	}
	stored, err := deps.Employees.GetByID(dbc, employee.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.EmployeeType != types.EmployeeTypeSysAdmin || stored.Version != 1 {
		t.Fatalf("base row after switch: type=%q version=%d", stored.EmployeeType, stored.Version)
	}
}

func TestEmployeeAggregateSwitchTypeSameTypeIsNoOp(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg, deps := newEmployeeAggregateForTest(t, tx)

	ctx := context.Background()
	employee := repotest.SeedEmployee(t, ctx, tx, "noop.switch@example.com", types.EmployeeTypeTechnician)
	role := repotest.SeedTechnician(t, ctx, tx, employee.ID)

	res, err := agg.SwitchEmployeeType(ctx, domainagg.SwitchEmployeeTypeInput{
		EmployeeID: employee.ID,
		NewType:    types.EmployeeTypeTechnician,
	})
	if err != nil {
		t.Fatalf("SwitchEmployeeType: %v", err)
	}
	if res.Switched {
		t.Fatalf("expected Switched=false for same type")
	}
	if res.Version != 0 {
		t.Fatalf("version must not move on a no-op, got %d", res.Version)
	}

	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	kept, err := deps.Technicians.GetByEmployeeID(dbc, employee.ID)
	if err != nil {
		t.Fatalf("GetByEmployeeID: %v", err)
	}
	if kept == nil || kept.ID != role.ID {
		t.Fatalf("role row identity must survive a no-op switch: got=%v want id=%s", kept, role.ID)
	}
}

func TestEmployeeAggregateSaveRequiresRoleRow(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg, _ := newEmployeeAggregateForTest(t, tx)

	ctx := context.Background()
	employee := repotest.SeedEmployee(t, ctx, tx, "orphan.base@example.com", types.EmployeeTypeTechnician)
	// No technician row seeded: the base row is orphaned on purpose.

	_, err := agg.SaveEmployee(ctx, domainagg.SaveEmployeeInput{
		Employee: types.TechnicalEmployee{
			ID:        employee.ID,
			Email:     "orphan.base@example.com",
			Phone:     "+15550105002",
			FirstName: "Nia",
			LastName:  "Okafor",
			Salary:    money.FromFloat(2500, money.DefaultCurrency),
			Seniority: 3,
		},
	})
	if err == nil {
		t.Fatalf("expected type_not_set error")
	}
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("expected invariant violation code, got %v", err)
	}
	if !domainagg.IsReason(err, domainagg.ReasonTypeNotSet) {
		t.Fatalf("expected type_not_set reason, got %v", err)
	}
}

func TestEmployeeAggregateDeleteRemovesRoleAndBase(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg, deps := newEmployeeAggregateForTest(t, tx)

	ctx := context.Background()
	employee := repotest.SeedEmployee(t, ctx, tx, "leaver@example.com", types.EmployeeTypeTechnician)
	repotest.SeedTechnician(t, ctx, tx, employee.ID)

	if _, err := agg.DeleteEmployee(ctx, domainagg.DeleteEmployeeInput{EmployeeID: employee.ID}); err != nil {
		t.Fatalf("DeleteEmployee: %v", err)
	}

	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	if got, err := deps.Employees.GetByID(dbc, employee.ID); err != nil || got != nil {
		t.Fatalf("base row after delete: got=%v err=%v", got, err)
	}
	if got, err := deps.Technicians.GetByEmployeeID(dbc, employee.ID); err != nil || got != nil {
		t.Fatalf("role row after delete: got=%v err=%v", got, err)
	}
}

func TestEmployeeAggregateSwitchTypeConcurrentConflict(t *testing.T) {
	db := repotest.DB(t)
	log := repotest.Logger(t)

	agg := NewEmployeeAggregate(EmployeeAggregateDeps{
		Base: BaseDeps{
			DB:       db,
			Runner:   NewGormTxRunner(db),
			CASGuard: NewCASGuard(db),
		},
		Employees:   workforcerepos.NewTechnicalEmployeeRepo(db, log),
		Technicians: workforcerepos.NewTechnicianRepo(db, log),
		SysAdmins:   workforcerepos.NewSysAdminRepo(db, log),
	})

	ctx := context.Background()
	employee := repotest.SeedEmployee(t, ctx, db, "race.switch@example.com", types.EmployeeTypeTechnician)
	repotest.SeedTechnician(t, ctx, db, employee.ID)
	t.Cleanup(func() {
		_ = db.WithContext(ctx).Where("employee_id = ?", employee.ID).Delete(&types.Technician{}).Error
		_ = db.WithContext(ctx).Where("employee_id = ?", employee.ID).Delete(&types.SysAdmin{}).Error
		_ = db.WithContext(ctx).Where("id = ?", employee.ID).Delete(&types.TechnicalEmployee{}).Error
	})

	expected := 0
	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)

	switchTo := func(newType string) {
		defer wg.Done()
		<-start
		_, err := agg.SwitchEmployeeType(ctx, domainagg.SwitchEmployeeTypeInput{
			EmployeeID:      employee.ID,
			NewType:         newType,
			ExpectedVersion: &expected,
		})
		errs <- err
	}
	go switchTo(types.EmployeeTypeSysAdmin)
	go switchTo(types.EmployeeTypeSysAdmin)

	close(start)
	wg.Wait()
	close(errs)

	var successCount, conflictCount int
	for err := range errs {
		if err == nil {
			successCount++
			continue
		}
		if domainagg.IsCode(err, domainagg.CodeConflict) {
			conflictCount++
			continue
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if successCount != 1 {
		t.Fatalf("success count: want=1 got=%d", successCount)
	}
	if conflictCount != 1 {
		t.Fatalf("conflict count: want=1 got=%d", conflictCount)
	}
}
