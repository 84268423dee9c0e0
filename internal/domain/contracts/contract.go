package contracts

import (
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/parties"
)

const (
	KindRegular  = "regular"
	KindBusiness = "business"

	StatusActive    = "active"
	StatusSuspended = "suspended"

	DurationExpirable    = "expirable"
	DurationNonexpirable = "nonexpirable"
)

// DefaultDurationDays is the rolling horizon assumed for contracts
// without a termination date.
const DefaultDurationDays = 100

const (
	MinRegularTerminationDelayDays  = 10
	MinBusinessTerminationDelayDays = 30

	DefaultRegularPayTermDays  = 30
	DefaultBusinessPayTermDays = 60
)

// MinTerminationDelay returns the contractual minimum notice period in
// days for the given contract kind.
func MinTerminationDelay(kind string) int {
	if kind == KindBusiness {
		return MinBusinessTerminationDelayDays
	}
	return MinRegularTerminationDelayDays
}

// DefaultPayTerm returns the default payment term in days for the
// given contract kind.
func DefaultPayTerm(kind string) int {
	if kind == KindBusiness {
		return DefaultBusinessPayTermDays
	}
	return DefaultRegularPayTermDays
}

type RegularContract struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"customer_id"`
	Customer   *parties.Customer `gorm:"constraint:OnDelete:CASCADE;foreignKey:CustomerID;references:ID" json:"customer,omitempty"`

	ApprovalDate         time.Time  `gorm:"column:approval_date;not null" json:"approval_date"`
	TerminationDate      *time.Time `gorm:"column:termination_date" json:"termination_date,omitempty"`
	TerminationDelayDays int        `gorm:"column:termination_delay_days;not null" json:"termination_delay_days"`
	PayTermDays          int        `gorm:"column:pay_term_days;not null;default:30" json:"pay_term_days"`
	Status               string     `gorm:"column:status;not null;default:'active'" json:"status"`                  // active|suspended
	DurationType         string     `gorm:"column:duration_type;not null;default:'expirable'" json:"duration_type"` // expirable|nonexpirable

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (RegularContract) TableName() string { return "regular_contract" }

func (RegularContract) Kind() string { return KindRegular }

// Duration reports how long the contract runs: termination minus
// approval once a termination date is set, otherwise the default
// horizon measured from now.
func (c RegularContract) Duration(now time.Time) time.Duration {
	return contractDuration(c.ApprovalDate, c.TerminationDate, now)
}

type BusinessContract struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"customer_id"`
	Customer   *parties.Customer `gorm:"constraint:OnDelete:CASCADE;foreignKey:CustomerID;references:ID" json:"customer,omitempty"`

	ApprovalDate         time.Time  `gorm:"column:approval_date;not null" json:"approval_date"`
	TerminationDate      *time.Time `gorm:"column:termination_date" json:"termination_date,omitempty"`
	TerminationDelayDays int        `gorm:"column:termination_delay_days;not null" json:"termination_delay_days"`
	PayTermDays          int        `gorm:"column:pay_term_days;not null;default:60" json:"pay_term_days"`
	Status               string     `gorm:"column:status;not null;default:'active'" json:"status"`                  // active|suspended
	DurationType         string     `gorm:"column:duration_type;not null;default:'expirable'" json:"duration_type"` // expirable|nonexpirable

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (BusinessContract) TableName() string { return "business_contract" }

func (BusinessContract) Kind() string { return KindBusiness }

func (c BusinessContract) Duration(now time.Time) time.Duration {
	return contractDuration(c.ApprovalDate, c.TerminationDate, now)
}

func contractDuration(approval time.Time, termination *time.Time, now time.Time) time.Duration {
	end := now.AddDate(0, 0, DefaultDurationDays)
	if termination != nil {
		end = *termination
	}
	return end.Sub(approval)
}
