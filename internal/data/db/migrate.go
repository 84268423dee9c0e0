package db

import (
	"fmt"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Parties
		// =========================
		&types.Address{},
		&types.Customer{},
		&types.RegularCustomerProfile{},
		&types.BusinessCustomerProfile{},

		// =========================
		// Billing
		// =========================
		&types.Account{},
		&types.Payment{},

		// =========================
		// Contracts + addenda
		// =========================
		&types.RegularContract{},
		&types.BusinessContract{},
		&types.Addendum{},
		&types.AddendumService{},

		// =========================
		// Service catalog
		// =========================
		&types.Service{},
		&types.ServiceInclusion{},

		// =========================
		// Workforce
		// =========================
		&types.TechnicalEmployee{},
		&types.Technician{},
		&types.SysAdmin{},
		&types.ClientManager{},
		&types.Accountant{},

		// =========================
		// Device fleet + repairs
		// =========================
		&types.Laptop{},
		&types.Server{},
		&types.Router{},
		&types.LaptopRepair{},
		&types.ServerRepair{},
		&types.RouterRepair{},
	)
}

func EnsureContractIndexes(db *gorm.DB) error {
	// uuid-ossp is already enabled in NewPostgresService, but safe to re-run
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}
	// Current-addendum resolution scans newest-first per contract; id breaks
	// creation-time ties deterministically.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_addendum_regular_contract_recency
		ON addendum (regular_contract_id, created_at DESC, id DESC)
		WHERE regular_contract_id IS NOT NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_addendum_regular_contract_recency: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_addendum_business_contract_recency
		ON addendum (business_contract_id, created_at DESC, id DESC)
		WHERE business_contract_id IS NOT NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_addendum_business_contract_recency: %w", err)
	}
	return nil
}

func EnsureBillingIndexes(db *gorm.DB) error {
	// Payment history is listed newest-first per account.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_payment_account_recency
		ON payment (account_id, created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_payment_account_recency: %w", err)
	}
	return nil
}

func EnsureFleetIndexes(db *gorm.DB) error {
	// Repair logs are listed newest-first per device.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_laptop_repair_device_recency
		ON laptop_repair (laptop_id, repaired_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_laptop_repair_device_recency: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_server_repair_device_recency
		ON server_repair (server_id, repaired_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_server_repair_device_recency: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_router_repair_device_recency
		ON router_repair (router_id, repaired_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_router_repair_device_recency: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureContractIndexes(s.db); err != nil {
		s.log.Error("Contract index migration failed", "error", err)
		return err
	}
	if err := EnsureBillingIndexes(s.db); err != nil {
		s.log.Error("Billing index migration failed", "error", err)
		return err
	}
	if err := EnsureFleetIndexes(s.db); err != nil {
		s.log.Error("Fleet index migration failed", "error", err)
		return err
	}

	return nil
}
