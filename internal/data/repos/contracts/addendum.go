package contracts

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type AddendumRepo interface {
	Create(dbc dbctx.Context, rows []*types.Addendum) ([]*types.Addendum, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Addendum, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Addendum, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Addendum, error)
	CurrentForContract(dbc dbctx.Context, kind string, contractID uuid.UUID) (*types.Addendum, error)
	ListByContract(dbc dbctx.Context, kind string, contractID uuid.UUID, limit int) ([]*types.Addendum, error)
	IDsForContract(dbc dbctx.Context, kind string, contractID uuid.UUID) ([]uuid.UUID, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByContractIDs(dbc dbctx.Context, kind string, contractIDs []uuid.UUID) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type addendumRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddendumRepo(db *gorm.DB, log *logger.Logger) AddendumRepo {
	return &addendumRepo{db: db, log: log.With("repo", "AddendumRepo")}
}

func contractColumn(kind string) (string, error) {
	switch kind {
	case types.ContractKindRegular:
		return "regular_contract_id", nil
	case types.ContractKindBusiness:
		return "business_contract_id", nil
	default:
		return "", fmt.Errorf("unknown contract kind %q", kind)
	}
}

func (r *addendumRepo) Create(dbc dbctx.Context, rows []*types.Addendum) ([]*types.Addendum, error) {
	if len(rows) == 0 {
		return []*types.Addendum{}, nil
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

func (r *addendumRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Addendum, error) {
	if len(ids) == 0 {
		return []*types.Addendum{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Addendum
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *addendumRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Addendum, error) {
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

func (r *addendumRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Addendum, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	var out []*types.Addendum
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

// CurrentForContract returns the contract's newest addendum, ties on
// created_at broken by id so the answer is stable. Nil when the
// contract has no addendum yet.
func (r *addendumRepo) CurrentForContract(dbc dbctx.Context, kind string, contractID uuid.UUID) (*types.Addendum, error) {
	if contractID == uuid.Nil {
		return nil, fmt.Errorf("missing contract id")
	}
	col, err := contractColumn(kind)
	if err != nil {
		return nil, err
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Addendum
	if err := txx.WithContext(dbc.Ctx).
		Where(col+" = ?", contractID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *addendumRepo) ListByContract(dbc dbctx.Context, kind string, contractID uuid.UUID, limit int) ([]*types.Addendum, error) {
	if contractID == uuid.Nil {
		return nil, fmt.Errorf("missing contract id")
	}
	col, err := contractColumn(kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Addendum
	if err := txx.WithContext(dbc.Ctx).
		Where(col+" = ?", contractID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// IDsForContract returns every addendum id bound to the contract, for
// join-row cleanup ahead of a contract delete.
func (r *addendumRepo) IDsForContract(dbc dbctx.Context, kind string, contractID uuid.UUID) ([]uuid.UUID, error) {
	if contractID == uuid.Nil {
		return []uuid.UUID{}, nil
	}
	col, err := contractColumn(kind)
	if err != nil {
		return nil, err
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []uuid.UUID
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.Addendum{}).
		Where(col+" = ?", contractID).
		Pluck("id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *addendumRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Addendum{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *addendumRepo) DeleteByContractIDs(dbc dbctx.Context, kind string, contractIDs []uuid.UUID) error {
	if len(contractIDs) == 0 {
		return nil
	}
	col, err := contractColumn(kind)
	if err != nil {
		return err
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where(col+" IN ?", contractIDs).
		Delete(&types.Addendum{}).Error
}

func (r *addendumRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.Addendum{}).Error
}

type AddendumServiceRepo interface {
	Create(dbc dbctx.Context, rows []*types.AddendumService) ([]*types.AddendumService, error)
	ListByAddendumIDs(dbc dbctx.Context, addendumIDs []uuid.UUID) ([]*types.AddendumService, error)
	ServiceIDsForAddendum(dbc dbctx.Context, addendumID uuid.UUID) ([]uuid.UUID, error)
	DeleteByAddendumIDs(dbc dbctx.Context, addendumIDs []uuid.UUID) error
	DeleteByServiceIDs(dbc dbctx.Context, serviceIDs []uuid.UUID) error
}

type addendumServiceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddendumServiceRepo(db *gorm.DB, log *logger.Logger) AddendumServiceRepo {
	return &addendumServiceRepo{db: db, log: log.With("repo", "AddendumServiceRepo")}
}

func (r *addendumServiceRepo) Create(dbc dbctx.Context, rows []*types.AddendumService) ([]*types.AddendumService, error) {
	if len(rows) == 0 {
		return []*types.AddendumService{}, nil
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

func (r *addendumServiceRepo) ListByAddendumIDs(dbc dbctx.Context, addendumIDs []uuid.UUID) ([]*types.AddendumService, error) {
	if len(addendumIDs) == 0 {
		return []*types.AddendumService{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.AddendumService
	if err := txx.WithContext(dbc.Ctx).
		Where("addendum_id IN ?", addendumIDs).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *addendumServiceRepo) ServiceIDsForAddendum(dbc dbctx.Context, addendumID uuid.UUID) ([]uuid.UUID, error) {
	if addendumID == uuid.Nil {
		return []uuid.UUID{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []uuid.UUID
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.AddendumService{}).
		Where("addendum_id = ?", addendumID).
		Order("created_at ASC").
		Pluck("service_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *addendumServiceRepo) DeleteByAddendumIDs(dbc dbctx.Context, addendumIDs []uuid.UUID) error {
	if len(addendumIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("addendum_id IN ?", addendumIDs).
		Delete(&types.AddendumService{}).Error
}

func (r *addendumServiceRepo) DeleteByServiceIDs(dbc dbctx.Context, serviceIDs []uuid.UUID) error {
	if len(serviceIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("service_id IN ?", serviceIDs).
		Delete(&types.AddendumService{}).Error
}
