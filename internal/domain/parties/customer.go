package parties

import (
	"time"

	"github.com/google/uuid"
)

const (
	CustomerTypeRegular  = "regular"
	CustomerTypeBusiness = "business"
)

// Customer is the base record of the customer aggregate. Exactly one
// profile row of the kind named by Type, one account and one contract
// of the matching kind hang off it; the aggregate layer keeps them
// consistent. Type is immutable once the profile and contract exist.
type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email   string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Phone   string    `gorm:"column:phone;not null" json:"phone"`
	Type    string    `gorm:"column:type;not null;index" json:"type"` // regular|business
	Version int       `gorm:"column:version;not null;default:0" json:"version"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Customer) TableName() string { return "customer" }

type RegularCustomerProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnDelete:CASCADE;foreignKey:CustomerID;references:ID" json:"customer,omitempty"`

	FirstName       string     `gorm:"column:first_name;not null" json:"first_name"`
	LastName        string     `gorm:"column:last_name;not null" json:"last_name"`
	ApartmentNumber string     `gorm:"column:apartment_number;not null" json:"apartment_number"`
	AddressID       *uuid.UUID `gorm:"type:uuid;column:address_id;index" json:"address_id,omitempty"`
	Address         *Address   `gorm:"constraint:OnDelete:RESTRICT;foreignKey:AddressID;references:ID" json:"address,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (RegularCustomerProfile) TableName() string { return "regular_customer_profile" }

type BusinessCustomerProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnDelete:CASCADE;foreignKey:CustomerID;references:ID" json:"customer,omitempty"`

	CompanyName string `gorm:"column:company_name;not null" json:"company_name"`
	// CompanyID is the external business registry number, unique across
	// all business customers.
	CompanyID string `gorm:"column:company_id;uniqueIndex;not null" json:"company_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (BusinessCustomerProfile) TableName() string { return "business_customer_profile" }
