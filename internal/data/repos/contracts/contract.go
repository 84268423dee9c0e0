package contracts

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type RegularContractRepo interface {
	Create(dbc dbctx.Context, rows []*types.RegularContract) ([]*types.RegularContract, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.RegularContract, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.RegularContract, error)
	GetByCustomerID(dbc dbctx.Context, customerID uuid.UUID) (*types.RegularContract, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type regularContractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRegularContractRepo(db *gorm.DB, log *logger.Logger) RegularContractRepo {
	return &regularContractRepo{db: db, log: log.With("repo", "RegularContractRepo")}
}

func (r *regularContractRepo) Create(dbc dbctx.Context, rows []*types.RegularContract) ([]*types.RegularContract, error) {
	if len(rows) == 0 {
		return []*types.RegularContract{}, nil
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

func (r *regularContractRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.RegularContract, error) {
	if len(ids) == 0 {
		return []*types.RegularContract{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.RegularContract
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *regularContractRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.RegularContract, error) {
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

func (r *regularContractRepo) GetByCustomerID(dbc dbctx.Context, customerID uuid.UUID) (*types.RegularContract, error) {
	if customerID == uuid.Nil {
		return nil, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.RegularContract
	if err := txx.WithContext(dbc.Ctx).
		Where("customer_id = ?", customerID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *regularContractRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.RegularContract{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *regularContractRepo) DeleteByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) error {
	if len(customerIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("customer_id IN ?", customerIDs).
		Delete(&types.RegularContract{}).Error
}

func (r *regularContractRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.RegularContract{}).Error
}

type BusinessContractRepo interface {
	Create(dbc dbctx.Context, rows []*types.BusinessContract) ([]*types.BusinessContract, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.BusinessContract, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.BusinessContract, error)
	GetByCustomerID(dbc dbctx.Context, customerID uuid.UUID) (*types.BusinessContract, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type businessContractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusinessContractRepo(db *gorm.DB, log *logger.Logger) BusinessContractRepo {
	return &businessContractRepo{db: db, log: log.With("repo", "BusinessContractRepo")}
}

func (r *businessContractRepo) Create(dbc dbctx.Context, rows []*types.BusinessContract) ([]*types.BusinessContract, error) {
	if len(rows) == 0 {
		return []*types.BusinessContract{}, nil
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

func (r *businessContractRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.BusinessContract, error) {
	if len(ids) == 0 {
		return []*types.BusinessContract{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.BusinessContract
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *businessContractRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.BusinessContract, error) {
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

func (r *businessContractRepo) GetByCustomerID(dbc dbctx.Context, customerID uuid.UUID) (*types.BusinessContract, error) {
	if customerID == uuid.Nil {
		return nil, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.BusinessContract
	if err := txx.WithContext(dbc.Ctx).
		Where("customer_id = ?", customerID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *businessContractRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.BusinessContract{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *businessContractRepo) DeleteByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) error {
	if len(customerIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("customer_id IN ?", customerIDs).
		Delete(&types.BusinessContract{}).Error
}

func (r *businessContractRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.BusinessContract{}).Error
}
