package workforce

import (
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/domain/parties"
)

// ClientManager and Accountant are fixed-role staff records. They sit
// outside the variant-switch mechanism and earn no bonus.

type ClientManager struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Phone string    `gorm:"column:phone;not null" json:"phone"`

	FirstName       string           `gorm:"column:first_name;not null" json:"first_name"`
	LastName        string           `gorm:"column:last_name;not null" json:"last_name"`
	ApartmentNumber string           `gorm:"column:apartment_number;not null" json:"apartment_number"`
	AddressID       *uuid.UUID       `gorm:"type:uuid;column:address_id;index" json:"address_id,omitempty"`
	Address         *parties.Address `gorm:"constraint:OnDelete:RESTRICT;foreignKey:AddressID;references:ID" json:"address,omitempty"`

	Salary         money.Money `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	Seniority      int         `gorm:"column:seniority;not null" json:"seniority"`
	WorkExperience string      `gorm:"column:work_experience;not null" json:"work_experience"`
	SoftSkills     string      `gorm:"column:soft_skills" json:"soft_skills,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ClientManager) TableName() string { return "client_manager" }

func (ClientManager) Bonus() money.Money { return money.Zero(money.DefaultCurrency) }

type Accountant struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Phone string    `gorm:"column:phone;not null" json:"phone"`

	FirstName       string           `gorm:"column:first_name;not null" json:"first_name"`
	LastName        string           `gorm:"column:last_name;not null" json:"last_name"`
	ApartmentNumber string           `gorm:"column:apartment_number;not null" json:"apartment_number"`
	AddressID       *uuid.UUID       `gorm:"type:uuid;column:address_id;index" json:"address_id,omitempty"`
	Address         *parties.Address `gorm:"constraint:OnDelete:RESTRICT;foreignKey:AddressID;references:ID" json:"address,omitempty"`

	Salary         money.Money `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	Seniority      int         `gorm:"column:seniority;not null" json:"seniority"`
	WorkExperience string      `gorm:"column:work_experience;not null" json:"work_experience"`
	SoftSkills     string      `gorm:"column:soft_skills" json:"soft_skills,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Accountant) TableName() string { return "accountant" }

func (Accountant) Bonus() money.Money { return money.Zero(money.DefaultCurrency) }
