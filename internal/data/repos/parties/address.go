package parties

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type AddressRepo interface {
	Create(dbc dbctx.Context, rows []*types.Address) ([]*types.Address, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Address, error)
	FindByLine(dbc dbctx.Context, street, city, postalCode string) (*types.Address, error)
	GetOrCreate(dbc dbctx.Context, street, city, postalCode string) (*types.Address, error)
}

type addressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddressRepo(db *gorm.DB, log *logger.Logger) AddressRepo {
	return &addressRepo{db: db, log: log.With("repo", "AddressRepo")}
}

func (r *addressRepo) Create(dbc dbctx.Context, rows []*types.Address) ([]*types.Address, error) {
	if len(rows) == 0 {
		return []*types.Address{}, nil
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

func (r *addressRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Address, error) {
	if len(ids) == 0 {
		return []*types.Address{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Address
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *addressRepo) FindByLine(dbc dbctx.Context, street, city, postalCode string) (*types.Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	postalCode = strings.TrimSpace(postalCode)
	if street == "" || city == "" || postalCode == "" {
		return nil, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Address
	if err := txx.WithContext(dbc.Ctx).
		Where("street = ? AND city = ? AND postal_code = ?", street, city, postalCode).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// GetOrCreate resolves an address line to its shared row, inserting it
// on first sight. Concurrent first sights race on the unique line
// index; the losing insert is a no-op and the winner's row is returned.
func (r *addressRepo) GetOrCreate(dbc dbctx.Context, street, city, postalCode string) (*types.Address, error) {
	existing, err := r.FindByLine(dbc, street, city, postalCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	row := &types.Address{
		ID:         uuid.New(),
		Street:     strings.TrimSpace(street),
		City:       strings.TrimSpace(city),
		PostalCode: strings.TrimSpace(postalCode),
	}
	if err := txx.WithContext(dbc.Ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "street"}, {Name: "city"}, {Name: "postal_code"}},
		DoNothing: true,
	}).Create(row).Error; err != nil {
		return nil, err
	}
	return r.FindByLine(dbc, street, city, postalCode)
}
