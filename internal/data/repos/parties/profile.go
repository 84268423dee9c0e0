package parties

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type RegularCustomerProfileRepo interface {
	Create(dbc dbctx.Context, rows []*types.RegularCustomerProfile) ([]*types.RegularCustomerProfile, error)
	GetByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) ([]*types.RegularCustomerProfile, error)
	GetByCustomerID(dbc dbctx.Context, customerID uuid.UUID) (*types.RegularCustomerProfile, error)
	UpdateFieldsByCustomerID(dbc dbctx.Context, customerID uuid.UUID, updates map[string]interface{}) error
	DeleteByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) error
}

type regularCustomerProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRegularCustomerProfileRepo(db *gorm.DB, log *logger.Logger) RegularCustomerProfileRepo {
	return &regularCustomerProfileRepo{db: db, log: log.With("repo", "RegularCustomerProfileRepo")}
}

func (r *regularCustomerProfileRepo) Create(dbc dbctx.Context, rows []*types.RegularCustomerProfile) ([]*types.RegularCustomerProfile, error) {
	if len(rows) == 0 {
		return []*types.RegularCustomerProfile{}, nil
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

func (r *regularCustomerProfileRepo) GetByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) ([]*types.RegularCustomerProfile, error) {
	if len(customerIDs) == 0 {
		return []*types.RegularCustomerProfile{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.RegularCustomerProfile
	if err := txx.WithContext(dbc.Ctx).
		Where("customer_id IN ?", customerIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *regularCustomerProfileRepo) GetByCustomerID(dbc dbctx.Context, customerID uuid.UUID) (*types.RegularCustomerProfile, error) {
	if customerID == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByCustomerIDs(dbc, []uuid.UUID{customerID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *regularCustomerProfileRepo) UpdateFieldsByCustomerID(dbc dbctx.Context, customerID uuid.UUID, updates map[string]interface{}) error {
	if customerID == uuid.Nil {
		return fmt.Errorf("missing customer_id")
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
		Model(&types.RegularCustomerProfile{}).
		Where("customer_id = ?", customerID).
		Updates(updates).Error
}

func (r *regularCustomerProfileRepo) DeleteByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) error {
	if len(customerIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("customer_id IN ?", customerIDs).
		Delete(&types.RegularCustomerProfile{}).Error
}

type BusinessCustomerProfileRepo interface {
	Create(dbc dbctx.Context, rows []*types.BusinessCustomerProfile) ([]*types.BusinessCustomerProfile, error)
	GetByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) ([]*types.BusinessCustomerProfile, error)
	GetByCustomerID(dbc dbctx.Context, customerID uuid.UUID) (*types.BusinessCustomerProfile, error)
	CompanyIDExists(dbc dbctx.Context, companyID string) (bool, error)
	UpdateFieldsByCustomerID(dbc dbctx.Context, customerID uuid.UUID, updates map[string]interface{}) error
	DeleteByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) error
}

type businessCustomerProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusinessCustomerProfileRepo(db *gorm.DB, log *logger.Logger) BusinessCustomerProfileRepo {
	return &businessCustomerProfileRepo{db: db, log: log.With("repo", "BusinessCustomerProfileRepo")}
}

func (r *businessCustomerProfileRepo) Create(dbc dbctx.Context, rows []*types.BusinessCustomerProfile) ([]*types.BusinessCustomerProfile, error) {
	if len(rows) == 0 {
		return []*types.BusinessCustomerProfile{}, nil
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

func (r *businessCustomerProfileRepo) GetByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) ([]*types.BusinessCustomerProfile, error) {
	if len(customerIDs) == 0 {
		return []*types.BusinessCustomerProfile{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.BusinessCustomerProfile
	if err := txx.WithContext(dbc.Ctx).
		Where("customer_id IN ?", customerIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *businessCustomerProfileRepo) GetByCustomerID(dbc dbctx.Context, customerID uuid.UUID) (*types.BusinessCustomerProfile, error) {
	if customerID == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByCustomerIDs(dbc, []uuid.UUID{customerID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *businessCustomerProfileRepo) CompanyIDExists(dbc dbctx.Context, companyID string) (bool, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return false, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.BusinessCustomerProfile{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *businessCustomerProfileRepo) UpdateFieldsByCustomerID(dbc dbctx.Context, customerID uuid.UUID, updates map[string]interface{}) error {
	if customerID == uuid.Nil {
		return fmt.Errorf("missing customer_id")
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
		Model(&types.BusinessCustomerProfile{}).
		Where("customer_id = ?", customerID).
		Updates(updates).Error
}

func (r *businessCustomerProfileRepo) DeleteByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) error {
	if len(customerIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("customer_id IN ?", customerIDs).
		Delete(&types.BusinessCustomerProfile{}).Error
}
