package parties

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

type CustomerRepo interface {
	Create(dbc dbctx.Context, rows []*types.Customer) ([]*types.Customer, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Customer, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Customer, error)
	GetByEmails(dbc dbctx.Context, emails []string) ([]*types.Customer, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	List(dbc dbctx.Context, limit int) ([]*types.Customer, error)
	ListByType(dbc dbctx.Context, customerType string, limit int) ([]*types.Customer, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Customer, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type customerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerRepo(db *gorm.DB, log *logger.Logger) CustomerRepo {
	return &customerRepo{db: db, log: log.With("repo", "CustomerRepo")}
}

func (r *customerRepo) Create(dbc dbctx.Context, rows []*types.Customer) ([]*types.Customer, error) {
	if len(rows) == 0 {
		return []*types.Customer{}, nil
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

func (r *customerRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Customer, error) {
	if len(ids) == 0 {
		return []*types.Customer{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Customer
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *customerRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Customer, error) {
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

func (r *customerRepo) GetByEmails(dbc dbctx.Context, emails []string) ([]*types.Customer, error) {
	if len(emails) == 0 {
		return []*types.Customer{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Customer
	if err := txx.WithContext(dbc.Ctx).
		Where("email IN ?", emails).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *customerRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
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
		Model(&types.Customer{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *customerRepo) List(dbc dbctx.Context, limit int) ([]*types.Customer, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Customer
	if err := txx.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *customerRepo) ListByType(dbc dbctx.Context, customerType string, limit int) ([]*types.Customer, error) {
	customerType = strings.ToLower(strings.TrimSpace(customerType))
	if customerType == "" {
		return r.List(dbc, limit)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Customer
	if err := txx.WithContext(dbc.Ctx).
		Where("type = ?", customerType).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *customerRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Customer, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	var out []*types.Customer
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

func (r *customerRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Customer{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *customerRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.Customer{}).Error
}
