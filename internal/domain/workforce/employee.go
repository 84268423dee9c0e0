package workforce

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/domain/parties"
)

const (
	EmployeeTypeTechnician = "technician"
	EmployeeTypeSysAdmin   = "sysadmin"
)

// TechnicalEmployee is the base record of the employee aggregate.
// Exactly one role row of the kind named by EmployeeType hangs off it;
// switching the type tears the old role row down and creates a fresh
// one of the new kind.
type TechnicalEmployee struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Phone string    `gorm:"column:phone;not null" json:"phone"`

	FirstName       string           `gorm:"column:first_name;not null" json:"first_name"`
	LastName        string           `gorm:"column:last_name;not null" json:"last_name"`
	ApartmentNumber string           `gorm:"column:apartment_number;not null" json:"apartment_number"`
	AddressID       *uuid.UUID       `gorm:"type:uuid;column:address_id;index" json:"address_id,omitempty"`
	Address         *parties.Address `gorm:"constraint:OnDelete:RESTRICT;foreignKey:AddressID;references:ID" json:"address,omitempty"`

	Salary       money.Money `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	Seniority    int         `gorm:"column:seniority;not null" json:"seniority"`
	EmployeeType string      `gorm:"column:employee_type;not null;index" json:"employee_type"` // technician|sysadmin
	Version      int         `gorm:"column:version;not null;default:0" json:"version"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (TechnicalEmployee) TableName() string { return "technical_employee" }

type Technician struct {
	ID         uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployeeID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"employee_id"`
	Employee   *TechnicalEmployee `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Technician) TableName() string { return "technician" }

type SysAdmin struct {
	ID         uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployeeID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"employee_id"`
	Employee   *TechnicalEmployee `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SysAdmin) TableName() string { return "sysadmin" }

// BonusFor applies the role bonus rule: technicians accrue none,
// sysadmins get a tenth of salary.
func BonusFor(employeeType string, salary money.Money) (money.Money, error) {
	switch employeeType {
	case EmployeeTypeTechnician:
		return money.Zero(salary.Currency), nil
	case EmployeeTypeSysAdmin:
		return salary.MulFloat(0.1), nil
	default:
		return money.Money{}, fmt.Errorf("unknown employee type %q", employeeType)
	}
}
