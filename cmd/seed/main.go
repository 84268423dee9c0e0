package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/webcomtel/webcom-backend/internal/app"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/catalog"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/services"
)

var (
	firstNames = []string{"Ada", "Grace", "Linus", "Dennis", "Barbara", "Ken", "Margaret", "Donald", "Radia", "Vint"}
	lastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Ritchie", "Liskov", "Thompson", "Hamilton", "Knuth", "Perlman", "Cerf"}
	streets    = []string{"Main St", "Oak Ave", "Elm Rd", "Maple Dr", "Cedar Ln", "Birch Blvd", "Willow Way", "Spruce Ct"}
	cities     = []string{"Springfield", "Riverton", "Fairview", "Kingsport", "Milltown", "Lakewood"}
	companies  = []string{"Acme Logistics", "Bluebird Media", "Cascade Foods", "Dynamo Retail", "Evergreen Labs", "Foxtrot Freight", "Gretel Hosting", "Harbor Clinics"}

	serviceNames = []string{"Fiber 100", "Fiber 300", "Fiber 1000", "Static IP", "Managed WiFi", "IPTV Basic", "IPTV Plus", "Voice Line", "Cloud Backup", "Business VPN"}

	manufacturers = []string{"Cisco", "Juniper", "Dell", "Lenovo", "HP", "MikroTik"}
	deviceModels  = map[string][]string{
		types.DeviceKindLaptop: {"Latitude 5440", "ThinkPad T14", "EliteBook 840"},
		types.DeviceKindServer: {"PowerEdge R660", "ProLiant DL380", "ThinkSystem SR650"},
		types.DeviceKindRouter: {"ISR 4331", "MX204", "CCR2004"},
	}

	workExperiences = []string{
		"5 years field installation",
		"3 years NOC support",
		"7 years enterprise accounts",
		"2 years billing operations",
	}
	softSkills  = []string{"mentoring", "customer communication", "conflict resolution", ""}
	repairNotes = []string{"replaced PSU", "reseated RAM", "flashed firmware", "swapped fan", "cleaned heatsink"}

	salaries = []int{1000, 2500, 4500, 5000}
)

// gen is one family's random source. Each seeding family gets its own
// so families can run in parallel and a fixed -seed reproduces a run.
type gen struct {
	r *rand.Rand
}

func newGen(seed int64) *gen {
	return &gen{r: rand.New(rand.NewSource(seed))}
}

func (g *gen) pick(list []string) string { return list[g.r.Intn(len(list))] }

func (g *gen) digits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + g.r.Intn(10)))
	}
	return b.String()
}

func (g *gen) email(first, last string) string {
	return fmt.Sprintf("%s.%s.%d@webcom.test", strings.ToLower(first), strings.ToLower(last), g.r.Intn(1000000))
}

func (g *gen) phone() string { return "555" + g.digits(7) }

func (g *gen) apartment() string { return strconv.Itoa(100 + g.r.Intn(900)) }

func (g *gen) regularContract(now time.Time) *types.RegularContract {
	c := &types.RegularContract{
		ApprovalDate:         now,
		TerminationDelayDays: []int{14, 30}[g.r.Intn(2)],
	}
	if g.r.Intn(2) == 0 {
		t := now.AddDate(0, 0, 100+g.r.Intn(621))
		c.TerminationDate = &t
	} else {
		c.DurationType = types.ContractDurationNonexpirable
	}
	return c
}

func (g *gen) businessContract(now time.Time) *types.BusinessContract {
	c := &types.BusinessContract{
		ApprovalDate:         now,
		TerminationDelayDays: []int{30, 100}[g.r.Intn(2)],
	}
	if g.r.Intn(2) == 0 {
		t := now.AddDate(0, 0, 100+g.r.Intn(621))
		c.TerminationDate = &t
	} else {
		c.DurationType = types.ContractDurationNonexpirable
	}
	return c
}

type seeder struct {
	app *app.App
}

func (s *seeder) address(ctx context.Context, g *gen) *uuid.UUID {
	street := fmt.Sprintf("%d %s", 1+g.r.Intn(200), g.pick(streets))
	row, err := s.app.Repos.Address.GetOrCreate(dbctx.Context{Ctx: ctx}, street, g.pick(cities), g.digits(5))
	if err != nil || row == nil {
		return nil
	}
	id := row.ID
	return &id
}

func (s *seeder) seedCatalog(ctx context.Context, g *gen, n int) ([]uuid.UUID, error) {
	if n <= 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, n)
	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %s", g.pick(serviceNames), g.digits(4))
		for seen[name] {
			name = fmt.Sprintf("%s %s", g.pick(serviceNames), g.digits(4))
		}
		seen[name] = true
		price := money.FromFloat(float64(5+g.r.Intn(96)), money.DefaultCurrency)
		res, err := s.app.Services.Catalog.Create(ctx, domainagg.CreateServiceInput{Name: name, Price: price})
		if err != nil {
			return nil, fmt.Errorf("create service %q: %w", name, err)
		}
		ids = append(ids, res.ServiceID)
	}

	// Bundles draw inclusions from the standalone pool only; inclusion
	// graphs stay one level deep.
	standalone := ids[:len(ids)-len(ids)/3]
	for _, bundleID := range ids[len(standalone):] {
		includeIDs := pickIDs(g, standalone, 1+g.r.Intn(catalog.MaxInclusions))
		if _, err := s.app.Services.Catalog.SetInclusions(ctx, domainagg.SetServiceInclusionsInput{
			ServiceID:  bundleID,
			IncludeIDs: includeIDs,
		}); err != nil {
			return nil, fmt.Errorf("set inclusions for %s: %w", bundleID, err)
		}
	}

	for _, id := range ids {
		if err := s.app.Services.Catalog.Validate(ctx, id); err != nil {
			return nil, fmt.Errorf("validate service %s: %w", id, err)
		}
	}
	return ids, nil
}

type customerSeed struct {
	contractID uuid.UUID
	business   bool
}

func (s *seeder) seedCustomers(ctx context.Context, g *gen, perType int) ([]customerSeed, error) {
	if perType <= 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	out := make([]customerSeed, 0, perType*2)

	for i := 0; i < perType; i++ {
		first, last := g.pick(firstNames), g.pick(lastNames)
		res, err := s.app.Services.Customer.Create(ctx, domainagg.CreateCustomerInput{
			Type:  types.CustomerTypeRegular,
			Email: g.email(first, last),
			Phone: g.phone(),
			Account: domainagg.AccountInput{
				Number:         g.digits(16),
				OpeningBalance: money.FromFloat(float64(g.r.Intn(1001)), money.DefaultCurrency),
			},
			RegularContract: g.regularContract(now),
			RegularProfile: &types.RegularCustomerProfile{
				FirstName:       first,
				LastName:        last,
				ApartmentNumber: g.apartment(),
				AddressID:       s.address(ctx, g),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("create regular customer: %w", err)
		}
		out = append(out, customerSeed{contractID: res.ContractID})
	}

	for i := 0; i < perType; i++ {
		company := g.pick(companies)
		res, err := s.app.Services.Customer.Create(ctx, domainagg.CreateCustomerInput{
			Type:  types.CustomerTypeBusiness,
			Email: fmt.Sprintf("billing.%d@%s.test", g.r.Intn(1000000), strings.ReplaceAll(strings.ToLower(company), " ", "-")),
			Phone: g.phone(),
			Account: domainagg.AccountInput{
				Number:         g.digits(16),
				OpeningBalance: money.FromFloat(float64(g.r.Intn(1001)), money.DefaultCurrency),
			},
			BusinessContract: g.businessContract(now),
			BusinessProfile: &types.BusinessCustomerProfile{
				CompanyName: company,
				CompanyID:   g.digits(13),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("create business customer: %w", err)
		}
		out = append(out, customerSeed{contractID: res.ContractID, business: true})
	}
	return out, nil
}

func (s *seeder) seedEmployees(ctx context.Context, g *gen, n int) ([]uuid.UUID, error) {
	if n <= 0 {
		return nil, nil
	}
	technicianIDs := []uuid.UUID{}
	for i := 0; i < n; i++ {
		first, last := g.pick(firstNames), g.pick(lastNames)
		employeeType := types.EmployeeTypeTechnician
		if g.r.Intn(2) == 0 {
			employeeType = types.EmployeeTypeSysAdmin
		}
		res, err := s.app.Services.Employee.Create(ctx, domainagg.CreateEmployeeInput{
			Employee: types.TechnicalEmployee{
				Email:           g.email(first, last),
				Phone:           g.phone(),
				FirstName:       first,
				LastName:        last,
				ApartmentNumber: g.apartment(),
				AddressID:       s.address(ctx, g),
				Salary:          money.FromFloat(float64(salaries[g.r.Intn(len(salaries))]), money.DefaultCurrency),
				Seniority:       1 + g.r.Intn(10),
				EmployeeType:    employeeType,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("create employee: %w", err)
		}
		if employeeType == types.EmployeeTypeTechnician {
			technicianIDs = append(technicianIDs, res.RoleRowID)
		}
	}
	return technicianIDs, nil
}

func (s *seeder) seedStaff(ctx context.Context, g *gen, perRole int) error {
	for i := 0; i < perRole; i++ {
		first, last := g.pick(firstNames), g.pick(lastNames)
		if _, err := s.app.Services.Staff.CreateClientManager(ctx, types.ClientManager{
			Email:           g.email(first, last),
			Phone:           g.phone(),
			FirstName:       first,
			LastName:        last,
			ApartmentNumber: g.apartment(),
			AddressID:       s.address(ctx, g),
			Salary:          money.FromFloat(float64(salaries[g.r.Intn(len(salaries))]), money.DefaultCurrency),
			Seniority:       1 + g.r.Intn(10),
			WorkExperience:  g.pick(workExperiences),
			SoftSkills:      g.pick(softSkills),
		}); err != nil {
			return fmt.Errorf("create client manager: %w", err)
		}
	}
	for i := 0; i < perRole; i++ {
		first, last := g.pick(firstNames), g.pick(lastNames)
		if _, err := s.app.Services.Staff.CreateAccountant(ctx, types.Accountant{
			Email:           g.email(first, last),
			Phone:           g.phone(),
			FirstName:       first,
			LastName:        last,
			ApartmentNumber: g.apartment(),
			AddressID:       s.address(ctx, g),
			Salary:          money.FromFloat(float64(salaries[g.r.Intn(len(salaries))]), money.DefaultCurrency),
			Seniority:       1 + g.r.Intn(10),
			WorkExperience:  g.pick(workExperiences),
			SoftSkills:      g.pick(softSkills),
		}); err != nil {
			return fmt.Errorf("create accountant: %w", err)
		}
	}
	return nil
}

type deviceSeed struct {
	kind string
	id   uuid.UUID
}

func (s *seeder) seedDevices(ctx context.Context, g *gen, perKind int) ([]deviceSeed, error) {
	if perKind <= 0 {
		return nil, nil
	}
	out := []deviceSeed{}
	for _, kind := range []string{types.DeviceKindLaptop, types.DeviceKindServer, types.DeviceKindRouter} {
		models := deviceModels[kind]
		for i := 0; i < perKind; i++ {
			view, err := s.app.Services.Fleet.CreateDevice(ctx, services.CreateDeviceInput{
				Kind:         kind,
				Model:        models[g.r.Intn(len(models))],
				Manufacturer: g.pick(manufacturers),
			})
			if err != nil {
				return nil, fmt.Errorf("create %s: %w", kind, err)
			}
			out = append(out, deviceSeed{kind: kind, id: view.ID})
		}
	}
	return out, nil
}

func (s *seeder) seedAddenda(ctx context.Context, g *gen, customers []customerSeed, serviceIDs []uuid.UUID) error {
	if len(customers) == 0 || len(serviceIDs) == 0 {
		return nil
	}
	for _, c := range customers {
		in := domainagg.CreateAddendumInput{
			ServiceIDs: pickIDs(g, serviceIDs, 1+g.r.Intn(3)),
		}
		contractID := c.contractID
		if c.business {
			in.BusinessContractID = &contractID
		} else {
			in.RegularContractID = &contractID
		}
		if _, err := s.app.Services.Contract.CreateAddendum(ctx, in); err != nil {
			return fmt.Errorf("create addendum for contract %s: %w", contractID, err)
		}
	}
	return nil
}

func (s *seeder) seedRepairs(ctx context.Context, g *gen, devices []deviceSeed, technicianIDs []uuid.UUID) error {
	if len(devices) == 0 || len(technicianIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, d := range devices {
		repairs := g.r.Intn(3)
		for i := 0; i < repairs; i++ {
			repairedAt := now.Add(-time.Duration(g.r.Intn(365*24)) * time.Hour)
			if _, err := s.app.Services.Fleet.RecordRepair(ctx, services.RecordRepairInput{
				Kind:         d.kind,
				DeviceID:     d.id,
				TechnicianID: technicianIDs[g.r.Intn(len(technicianIDs))],
				RepairedAt:   &repairedAt,
				Notes:        g.pick(repairNotes),
			}); err != nil {
				return fmt.Errorf("record %s repair: %w", d.kind, err)
			}
		}
	}
	return nil
}

func pickIDs(g *gen, pool []uuid.UUID, n int) []uuid.UUID {
	if n > len(pool) {
		n = len(pool)
	}
	idx := g.r.Perm(len(pool))[:n]
	out := make([]uuid.UUID, 0, n)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

func main() {
	var (
		customers  int
		employees  int
		servicesN  int
		devices    int
		staffCount int
		seed       int64
	)
	flag.IntVar(&customers, "customers", 25, "customers to create per type")
	flag.IntVar(&employees, "employees", 10, "technical employees to create")
	flag.IntVar(&servicesN, "services", 12, "catalog services to create")
	flag.IntVar(&devices, "devices", 4, "devices to create per kind")
	flag.IntVar(&staffCount, "staff", 3, "client managers and accountants to create per role")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	s := &seeder{app: application}

	var (
		serviceIDs    []uuid.UUID
		customerSeeds []customerSeed
		technicianIDs []uuid.UUID
		deviceSeeds   []deviceSeed
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		serviceIDs, err = s.seedCatalog(gctx, newGen(seed), servicesN)
		return err
	})
	g.Go(func() error {
		var err error
		customerSeeds, err = s.seedCustomers(gctx, newGen(seed+1), customers)
		return err
	})
	g.Go(func() error {
		var err error
		technicianIDs, err = s.seedEmployees(gctx, newGen(seed+2), employees)
		return err
	})
	g.Go(func() error {
		return s.seedStaff(gctx, newGen(seed+3), staffCount)
	})
	g.Go(func() error {
		var err error
		deviceSeeds, err = s.seedDevices(gctx, newGen(seed+4), devices)
		return err
	})
	if err := g.Wait(); err != nil {
		fmt.Printf("seed: %v\n", err)
		os.Exit(1)
	}

	g2, gctx2 := errgroup.WithContext(ctx)
	g2.Go(func() error { return s.seedAddenda(gctx2, newGen(seed+5), customerSeeds, serviceIDs) })
	g2.Go(func() error { return s.seedRepairs(gctx2, newGen(seed+6), deviceSeeds, technicianIDs) })
	if err := g2.Wait(); err != nil {
		fmt.Printf("seed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeded %d services, %d customers per type, %d employees, %d staff per role, %d devices per kind\n",
		servicesN, customers, employees, staffCount, devices)
}
