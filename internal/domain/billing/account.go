package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/domain/parties"
)

// Account is the customer's ledger head: one per customer, created with
// it and deleted with it. Deletion is refused while the balance is
// negative.
type Account struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"customer_id"`
	Customer   *parties.Customer `gorm:"constraint:OnDelete:CASCADE;foreignKey:CustomerID;references:ID" json:"customer,omitempty"`

	Number  string      `gorm:"column:number;uniqueIndex;not null" json:"number"`
	Balance money.Money `gorm:"embedded;embeddedPrefix:balance_" json:"balance"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Account) TableName() string { return "account" }

// Payment is the append-only record of one billing debit: the amount
// taken from the account and the per-service totals it was computed
// from at that moment.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	Account   *Account  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AccountID;references:ID" json:"account,omitempty"`

	AddendumID *uuid.UUID  `gorm:"type:uuid;column:addendum_id;index" json:"addendum_id,omitempty"`
	Amount     money.Money `gorm:"embedded;embeddedPrefix:amount_" json:"amount"`
	// Breakdown lists each billed service name with its total price at
	// billing time.
	Breakdown datatypes.JSON `gorm:"column:breakdown;type:jsonb" json:"breakdown"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Payment) TableName() string { return "payment" }
