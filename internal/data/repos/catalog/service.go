package catalog

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

type ServiceRepo interface {
	Create(dbc dbctx.Context, rows []*types.Service) ([]*types.Service, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Service, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Service, error)
	NameExists(dbc dbctx.Context, name string) (bool, error)
	List(dbc dbctx.Context, limit int) ([]*types.Service, error)
	ListAll(dbc dbctx.Context) ([]*types.Service, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type serviceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceRepo(db *gorm.DB, log *logger.Logger) ServiceRepo {
	return &serviceRepo{db: db, log: log.With("repo", "ServiceRepo")}
}

func (r *serviceRepo) Create(dbc dbctx.Context, rows []*types.Service) ([]*types.Service, error) {
	if len(rows) == 0 {
		return []*types.Service{}, nil
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

func (r *serviceRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Service, error) {
	if len(ids) == 0 {
		return []*types.Service{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Service
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serviceRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Service, error) {
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

func (r *serviceRepo) NameExists(dbc dbctx.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.Service{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *serviceRepo) List(dbc dbctx.Context, limit int) ([]*types.Service, error) {
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Service
	if err := txx.WithContext(dbc.Ctx).
		Order("name ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll feeds snapshot builds, which need every service so
// inclusion targets resolve.
func (r *serviceRepo) ListAll(dbc dbctx.Context) ([]*types.Service, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Service
	if err := txx.WithContext(dbc.Ctx).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serviceRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Service{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *serviceRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.Service{}).Error
}

type ServiceInclusionRepo interface {
	Create(dbc dbctx.Context, rows []*types.ServiceInclusion) ([]*types.ServiceInclusion, error)
	ListAll(dbc dbctx.Context) ([]*types.ServiceInclusion, error)
	ListByParentIDs(dbc dbctx.Context, parentIDs []uuid.UUID) ([]*types.ServiceInclusion, error)
	DeleteByParentIDs(dbc dbctx.Context, parentIDs []uuid.UUID) error
	DeleteByServiceIDs(dbc dbctx.Context, serviceIDs []uuid.UUID) error
}

type serviceInclusionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceInclusionRepo(db *gorm.DB, log *logger.Logger) ServiceInclusionRepo {
	return &serviceInclusionRepo{db: db, log: log.With("repo", "ServiceInclusionRepo")}
}

func (r *serviceInclusionRepo) Create(dbc dbctx.Context, rows []*types.ServiceInclusion) ([]*types.ServiceInclusion, error) {
	if len(rows) == 0 {
		return []*types.ServiceInclusion{}, nil
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

// ListAll loads the whole inclusion graph. The catalogue is small by
// construction, so composition checks and price walks read it in one go.
func (r *serviceInclusionRepo) ListAll(dbc dbctx.Context) ([]*types.ServiceInclusion, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ServiceInclusion
	if err := txx.WithContext(dbc.Ctx).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serviceInclusionRepo) ListByParentIDs(dbc dbctx.Context, parentIDs []uuid.UUID) ([]*types.ServiceInclusion, error) {
	if len(parentIDs) == 0 {
		return []*types.ServiceInclusion{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ServiceInclusion
	if err := txx.WithContext(dbc.Ctx).
		Where("parent_service_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serviceInclusionRepo) DeleteByParentIDs(dbc dbctx.Context, parentIDs []uuid.UUID) error {
	if len(parentIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("parent_service_id IN ?", parentIDs).
		Delete(&types.ServiceInclusion{}).Error
}

func (r *serviceInclusionRepo) DeleteByServiceIDs(dbc dbctx.Context, serviceIDs []uuid.UUID) error {
	if len(serviceIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("parent_service_id IN ? OR child_service_id IN ?", serviceIDs, serviceIDs).
		Delete(&types.ServiceInclusion{}).Error
}
