package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/money"
)

// Service is a billable catalog entry. A service may include other
// services (a bundle); the inclusion edges live in service_inclusion
// and are validated against the bundle rules before they are
// persisted. Services are shared reference data and are never deleted
// through an inclusion edge.
type Service struct {
	ID    uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name  string      `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Price money.Money `gorm:"embedded;embeddedPrefix:price_" json:"price"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Service) TableName() string { return "service" }

// ServiceInclusion is one directed edge of the inclusion graph: parent
// bundles child. Deleting either endpoint removes the edge, never the
// other service.
type ServiceInclusion struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ParentServiceID uuid.UUID `gorm:"type:uuid;not null;index:idx_service_inclusion,unique,priority:1" json:"parent_service_id"`
	ParentService   *Service  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentServiceID;references:ID" json:"parent_service,omitempty"`
	ChildServiceID  uuid.UUID `gorm:"type:uuid;not null;index:idx_service_inclusion,unique,priority:2" json:"child_service_id"`
	ChildService    *Service  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChildServiceID;references:ID" json:"child_service,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ServiceInclusion) TableName() string { return "service_inclusion" }
