package workforce

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

// Role rows are one-per-employee extensions. The aggregate layer keeps
// each employee on exactly one of them; these repos just move rows.

type TechnicianRepo interface {
	Create(dbc dbctx.Context, rows []*types.Technician) ([]*types.Technician, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Technician, error)
	GetByEmployeeID(dbc dbctx.Context, employeeID uuid.UUID) (*types.Technician, error)
	DeleteByEmployeeIDs(dbc dbctx.Context, employeeIDs []uuid.UUID) error
}

type technicianRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTechnicianRepo(db *gorm.DB, log *logger.Logger) TechnicianRepo {
	return &technicianRepo{db: db, log: log.With("repo", "TechnicianRepo")}
}

func (r *technicianRepo) Create(dbc dbctx.Context, rows []*types.Technician) ([]*types.Technician, error) {
	if len(rows) == 0 {
		return []*types.Technician{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *technicianRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Technician, error) {
	if len(ids) == 0 {
		return []*types.Technician{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Technician
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *technicianRepo) GetByEmployeeID(dbc dbctx.Context, employeeID uuid.UUID) (*types.Technician, error) {
	if employeeID == uuid.Nil {
		return nil, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Technician
	if err := txx.WithContext(dbc.Ctx).
		Where("employee_id = ?", employeeID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *technicianRepo) DeleteByEmployeeIDs(dbc dbctx.Context, employeeIDs []uuid.UUID) error {
	if len(employeeIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("employee_id IN ?", employeeIDs).
		Delete(&types.Technician{}).Error
}

type SysAdminRepo interface {
	Create(dbc dbctx.Context, rows []*types.SysAdmin) ([]*types.SysAdmin, error)
	GetByEmployeeID(dbc dbctx.Context, employeeID uuid.UUID) (*types.SysAdmin, error)
	DeleteByEmployeeIDs(dbc dbctx.Context, employeeIDs []uuid.UUID) error
}

type sysAdminRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSysAdminRepo(db *gorm.DB, log *logger.Logger) SysAdminRepo {
	return &sysAdminRepo{db: db, log: log.With("repo", "SysAdminRepo")}
}

func (r *sysAdminRepo) Create(dbc dbctx.Context, rows []*types.SysAdmin) ([]*types.SysAdmin, error) {
	if len(rows) == 0 {
		return []*types.SysAdmin{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sysAdminRepo) GetByEmployeeID(dbc dbctx.Context, employeeID uuid.UUID) (*types.SysAdmin, error) {
	if employeeID == uuid.Nil {
		return nil, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.SysAdmin
	if err := txx.WithContext(dbc.Ctx).
		Where("employee_id = ?", employeeID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *sysAdminRepo) DeleteByEmployeeIDs(dbc dbctx.Context, employeeIDs []uuid.UUID) error {
	if len(employeeIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("employee_id IN ?", employeeIDs).
		Delete(&types.SysAdmin{}).Error
}
