package workforce

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type TechnicalEmployeeRepo interface {
	Create(dbc dbctx.Context, rows []*types.TechnicalEmployee) ([]*types.TechnicalEmployee, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.TechnicalEmployee, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.TechnicalEmployee, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	List(dbc dbctx.Context, limit int) ([]*types.TechnicalEmployee, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.TechnicalEmployee, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type technicalEmployeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTechnicalEmployeeRepo(db *gorm.DB, log *logger.Logger) TechnicalEmployeeRepo {
	return &technicalEmployeeRepo{db: db, log: log.With("repo", "TechnicalEmployeeRepo")}
}

func (r *technicalEmployeeRepo) Create(dbc dbctx.Context, rows []*types.TechnicalEmployee) ([]*types.TechnicalEmployee, error) {
	if len(rows) == 0 {
		return []*types.TechnicalEmployee{}, nil
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

func (r *technicalEmployeeRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.TechnicalEmployee, error) {
	if len(ids) == 0 {
		return []*types.TechnicalEmployee{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.TechnicalEmployee
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *technicalEmployeeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.TechnicalEmployee, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *technicalEmployeeRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.TechnicalEmployee{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *technicalEmployeeRepo) List(dbc dbctx.Context, limit int) ([]*types.TechnicalEmployee, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.TechnicalEmployee
	if err := txx.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *technicalEmployeeRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.TechnicalEmployee, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	var out []*types.TechnicalEmployee
	if err := dbc.Tx.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *technicalEmployeeRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&types.TechnicalEmployee{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *technicalEmployeeRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.TechnicalEmployee{}).Error
}
