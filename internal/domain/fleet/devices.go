package fleet

import (
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/workforce"
)

const (
	DeviceKindLaptop = "laptop"
	DeviceKindServer = "server"
	DeviceKindRouter = "router"
)

type Laptop struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Model        string    `gorm:"column:model;not null" json:"model"`
	Manufacturer string    `gorm:"column:manufacturer;not null" json:"manufacturer"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Laptop) TableName() string { return "laptop" }

type Server struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Model        string    `gorm:"column:model;not null" json:"model"`
	Manufacturer string    `gorm:"column:manufacturer;not null" json:"manufacturer"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Server) TableName() string { return "server" }

type Router struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Model        string    `gorm:"column:model;not null" json:"model"`
	Manufacturer string    `gorm:"column:manufacturer;not null" json:"manufacturer"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Router) TableName() string { return "router" }

// Repair history joins a device with the technician who serviced it.
// Each device kind keeps its own table so the device foreign key stays
// real.

type LaptopRepair struct {
	ID           uuid.UUID             `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LaptopID     uuid.UUID             `gorm:"type:uuid;not null;index" json:"laptop_id"`
	Laptop       *Laptop               `gorm:"constraint:OnDelete:CASCADE;foreignKey:LaptopID;references:ID" json:"laptop,omitempty"`
	TechnicianID uuid.UUID             `gorm:"type:uuid;not null;index" json:"technician_id"`
	Technician   *workforce.Technician `gorm:"constraint:OnDelete:CASCADE;foreignKey:TechnicianID;references:ID" json:"technician,omitempty"`
	RepairedAt   time.Time             `gorm:"column:repaired_at;not null;index" json:"repaired_at"`
	Notes        string                `gorm:"column:notes" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (LaptopRepair) TableName() string { return "laptop_repair" }

type ServerRepair struct {
	ID           uuid.UUID             `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ServerID     uuid.UUID             `gorm:"type:uuid;not null;index" json:"server_id"`
	Server       *Server               `gorm:"constraint:OnDelete:CASCADE;foreignKey:ServerID;references:ID" json:"server,omitempty"`
	TechnicianID uuid.UUID             `gorm:"type:uuid;not null;index" json:"technician_id"`
	Technician   *workforce.Technician `gorm:"constraint:OnDelete:CASCADE;foreignKey:TechnicianID;references:ID" json:"technician,omitempty"`
	RepairedAt   time.Time             `gorm:"column:repaired_at;not null;index" json:"repaired_at"`
	Notes        string                `gorm:"column:notes" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ServerRepair) TableName() string { return "server_repair" }

type RouterRepair struct {
	ID           uuid.UUID             `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RouterID     uuid.UUID             `gorm:"type:uuid;not null;index" json:"router_id"`
	Router       *Router               `gorm:"constraint:OnDelete:CASCADE;foreignKey:RouterID;references:ID" json:"router,omitempty"`
	TechnicianID uuid.UUID             `gorm:"type:uuid;not null;index" json:"technician_id"`
	Technician   *workforce.Technician `gorm:"constraint:OnDelete:CASCADE;foreignKey:TechnicianID;references:ID" json:"technician,omitempty"`
	RepairedAt   time.Time             `gorm:"column:repaired_at;not null;index" json:"repaired_at"`
	Notes        string                `gorm:"column:notes" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (RouterRepair) TableName() string { return "router_repair" }
