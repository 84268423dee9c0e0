package parties

import (
	"time"

	"github.com/google/uuid"
)

// Address rows are shared reference data: customer profiles and
// employees point at them and the foreign keys are RESTRICT, so an
// address cannot be deleted while anything still lives there.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Street     string    `gorm:"column:street;not null;index:idx_address_line,unique,priority:1" json:"street"`
	City       string    `gorm:"column:city;not null;index:idx_address_line,unique,priority:2" json:"city"`
	PostalCode string    `gorm:"column:postal_code;not null;index:idx_address_line,unique,priority:3" json:"postal_code"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Address) TableName() string { return "address" }
