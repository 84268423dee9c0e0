package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type integrityCheck struct {
	relation string
	count    func(ctx context.Context, db *gorm.DB) (int64, error)
}

type integrityAlertState struct {
	mu   sync.Mutex
	last map[string]time.Time
}

var integrityAlerts integrityAlertState

// StartIntegrityCollector sweeps for rows that violate cross-table invariants
// the schema cannot enforce: a customer's profile row must match its type,
// every customer owns an account, and an employee carries exactly one role row.
func (m *Metrics) StartIntegrityCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := integrityInterval()
	checks := integrityChecks()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				breaches := map[string]int64{}
				for _, check := range checks {
					n, err := check.count(ctx, db)
					if err != nil {
						if log != nil {
							log.Warn("metrics: integrity check failed", "relation", check.relation, "error", err)
						}
						continue
					}
					m.integrityOrphans.Set(float64(n), check.relation)
					if n > 0 {
						breaches[check.relation] = n
					}
				}
				if len(breaches) > 0 {
					if log != nil {
						log.Warn("integrity breach detected", "breaches", breaches)
					}
					sendIntegrityAlert(breaches, log)
				}
			}
		}
	}()
}

func integrityChecks() []integrityCheck {
	return []integrityCheck{
		{
			relation: "customer_missing_regular_profile",
			count: func(ctx context.Context, db *gorm.DB) (int64, error) {
				var n int64
				err := db.WithContext(ctx).
					Table("customer c").
					Joins("LEFT JOIN regular_customer_profile p ON p.customer_id = c.id").
					Where("c.type = ? AND p.id IS NULL", types.CustomerTypeRegular).
					Count(&n).Error
				return n, err
			},
		},
		{
			relation: "customer_missing_business_profile",
			count: func(ctx context.Context, db *gorm.DB) (int64, error) {
				var n int64
				err := db.WithContext(ctx).
					Table("customer c").
					Joins("LEFT JOIN business_customer_profile p ON p.customer_id = c.id").
					Where("c.type = ? AND p.id IS NULL", types.CustomerTypeBusiness).
					Count(&n).Error
				return n, err
			},
		},
		{
			relation: "customer_missing_account",
			count: func(ctx context.Context, db *gorm.DB) (int64, error) {
				var n int64
				err := db.WithContext(ctx).
					Table("customer c").
					Joins("LEFT JOIN account a ON a.customer_id = c.id").
					Where("a.id IS NULL").
					Count(&n).Error
				return n, err
			},
		},
		{
			relation: "employee_missing_technician_row",
			count: func(ctx context.Context, db *gorm.DB) (int64, error) {
				var n int64
				err := db.WithContext(ctx).
					Table("technical_employee e").
					Joins("LEFT JOIN technician t ON t.employee_id = e.id").
					Where("e.employee_type = ? AND t.id IS NULL", types.EmployeeTypeTechnician).
					Count(&n).Error
				return n, err
			},
		},
		{
			relation: "employee_missing_sysadmin_row",
			count: func(ctx context.Context, db *gorm.DB) (int64, error) {
				var n int64
				err := db.WithContext(ctx).
					Table("technical_employee e").
					Joins("LEFT JOIN sysadmin s ON s.employee_id = e.id").
					Where("e.employee_type = ? AND s.id IS NULL", types.EmployeeTypeSysAdmin).
					Count(&n).Error
				return n, err
			},
		},
		{
			relation: "employee_with_both_role_rows",
			count: func(ctx context.Context, db *gorm.DB) (int64, error) {
				var n int64
				err := db.WithContext(ctx).
					Table("technical_employee e").
					Joins("JOIN technician t ON t.employee_id = e.id").
					Joins("JOIN sysadmin s ON s.employee_id = e.id").
					Count(&n).Error
				return n, err
			},
		},
	}
}

func integrityInterval() time.Duration {
	raw := strings.TrimSpace(os.Getenv("INTEGRITY_SCRAPE_INTERVAL_SECONDS"))
	if raw == "" {
		return 5 * time.Minute
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(n) * time.Second
}

func integrityAlertsEnabled() bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv("INTEGRITY_ALERTS_ENABLED")))
	if v == "" {
		return false
	}
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func integrityAlertWebhook() string {
	val := strings.TrimSpace(os.Getenv("INTEGRITY_ALERT_WEBHOOK_URL"))
	if val != "" {
		return val
	}
	return strings.TrimSpace(os.Getenv("SLO_ALERT_WEBHOOK_URL"))
}

func integrityAlertMinInterval() time.Duration {
	raw := strings.TrimSpace(os.Getenv("INTEGRITY_ALERT_MIN_INTERVAL_SECONDS"))
	if raw == "" {
		return 10 * time.Minute
	}
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(seconds) * time.Second
}

func sendIntegrityAlert(breaches map[string]int64, log *logger.Logger) {
	if !integrityAlertsEnabled() {
		return
	}
	webhook := integrityAlertWebhook()
	if webhook == "" || len(breaches) == 0 {
		return
	}
	key := "integrity"
	integrityAlerts.mu.Lock()
	if integrityAlerts.last == nil {
		integrityAlerts.last = map[string]time.Time{}
	}
	last := integrityAlerts.last[key]
	minInterval := integrityAlertMinInterval()
	if !last.IsZero() && time.Since(last) < minInterval {
		integrityAlerts.mu.Unlock()
		return
	}
	integrityAlerts.last[key] = time.Now()
	integrityAlerts.mu.Unlock()

	payload := map[string]any{
		"title":     "Referential integrity breach",
		"breaches":  breaches,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, webhook, bytes.NewReader(body))
	if err != nil {
		if log != nil {
			log.Warn("integrity alert request build failed", "error", err)
		}
		return
	}
	req.Header.Set("Content-Type", "application/json")
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		if log != nil {
			log.Warn("integrity alert post failed", "error", err)
		}
		return
	}
	_ = resp.Body.Close()
	if log != nil {
		log.Info("integrity alert sent", "status", resp.StatusCode)
	}
}
