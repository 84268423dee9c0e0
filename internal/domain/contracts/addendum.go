package contracts

import (
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/catalog"
)

// Addendum is a dated snapshot of billable services. It belongs to at
// most one contract, regular or business but never both; the exclusive
// binding is checked at attach time, not by the schema. Billing reads
// the contract's addendum with the latest CreatedAt.
type Addendum struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	RegularContractID  *uuid.UUID        `gorm:"type:uuid;column:regular_contract_id;index" json:"regular_contract_id,omitempty"`
	RegularContract    *RegularContract  `gorm:"constraint:OnDelete:CASCADE;foreignKey:RegularContractID;references:ID" json:"regular_contract,omitempty"`
	BusinessContractID *uuid.UUID        `gorm:"type:uuid;column:business_contract_id;index" json:"business_contract_id,omitempty"`
	BusinessContract   *BusinessContract `gorm:"constraint:OnDelete:CASCADE;foreignKey:BusinessContractID;references:ID" json:"business_contract,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Addendum) TableName() string { return "addendum" }

// Assigned reports whether the addendum is already bound to a
// contract of either kind.
func (a Addendum) Assigned() bool {
	return a.RegularContractID != nil || a.BusinessContractID != nil
}

type AddendumService struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AddendumID uuid.UUID        `gorm:"type:uuid;not null;index:idx_addendum_service,unique,priority:1" json:"addendum_id"`
	Addendum   *Addendum        `gorm:"constraint:OnDelete:CASCADE;foreignKey:AddendumID;references:ID" json:"addendum,omitempty"`
	ServiceID  uuid.UUID        `gorm:"type:uuid;not null;index:idx_addendum_service,unique,priority:2" json:"service_id"`
	Service    *catalog.Service `gorm:"constraint:OnDelete:CASCADE;foreignKey:ServiceID;references:ID" json:"service,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (AddendumService) TableName() string { return "addendum_service" }
