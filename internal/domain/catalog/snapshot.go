package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/money"
)

// MaxInclusions is the widest bundle allowed: a service may include at
// most this many other services.
const MaxInclusions = 3

var (
	ErrSelfInclusion     = errors.New("service includes itself")
	ErrTooManyInclusions = errors.New("service includes too many services")
	ErrNestedBundle      = errors.New("included service has inclusions of its own")
	ErrUnknownService    = errors.New("service not in snapshot")
)

// Snapshot is a point-in-time, in-memory copy of part of the service
// inclusion graph. Validation and pricing are defined over a snapshot
// rather than live rows so a multi-step edit can be assembled freely
// and checked once before it is committed, and so TotalPrice never
// reads the database mid-recursion.
type Snapshot struct {
	services map[uuid.UUID]*snapshotService
}

type snapshotService struct {
	name     string
	price    money.Money
	includes []uuid.UUID
}

func NewSnapshot() *Snapshot {
	return &Snapshot{services: make(map[uuid.UUID]*snapshotService)}
}

// AddService registers a service node. Re-adding an id replaces its
// name and price and keeps its edges.
func (s *Snapshot) AddService(id uuid.UUID, name string, price money.Money) {
	if svc, ok := s.services[id]; ok {
		svc.name = name
		svc.price = price
		return
	}
	s.services[id] = &snapshotService{name: name, price: price}
}

// AddInclusion records a parent→child edge. Unknown ids are allowed at
// this point; Validate and TotalPrice report them.
func (s *Snapshot) AddInclusion(parent, child uuid.UUID) {
	svc, ok := s.services[parent]
	if !ok {
		svc = &snapshotService{}
		s.services[parent] = svc
	}
	for _, existing := range svc.includes {
		if existing == child {
			return
		}
	}
	svc.includes = append(svc.includes, child)
}

// ReplaceInclusions overwrites the inclusion set of id with children,
// deduplicated. It is how a proposed edit is applied to a snapshot
// before Validate.
func (s *Snapshot) ReplaceInclusions(id uuid.UUID, children []uuid.UUID) {
	svc, ok := s.services[id]
	if !ok {
		svc = &snapshotService{}
		s.services[id] = svc
	}
	svc.includes = nil
	seen := make(map[uuid.UUID]struct{}, len(children))
	for _, child := range children {
		if _, dup := seen[child]; dup {
			continue
		}
		seen[child] = struct{}{}
		svc.includes = append(svc.includes, child)
	}
}

// Has reports whether id was loaded into the snapshot.
func (s *Snapshot) Has(id uuid.UUID) bool {
	_, ok := s.services[id]
	return ok
}

// Inclusions returns the direct inclusion ids of id in a stable order.
func (s *Snapshot) Inclusions(id uuid.UUID) []uuid.UUID {
	svc, ok := s.services[id]
	if !ok {
		return nil
	}
	out := make([]uuid.UUID, len(svc.includes))
	copy(out, svc.includes)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Name returns the service name recorded for id, or "" when unknown.
func (s *Snapshot) Name(id uuid.UUID) string {
	if svc, ok := s.services[id]; ok {
		return svc.name
	}
	return ""
}

// Parents returns the ids of every service that directly includes id,
// in a stable order.
func (s *Snapshot) Parents(id uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for parentID, svc := range s.services {
		for _, child := range svc.includes {
			if child == id {
				out = append(out, parentID)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Validate checks the bundle rules for id: a service must not include
// itself, may include at most MaxInclusions services, and none of its
// inclusions may have inclusions of their own. Bundles are therefore
// one level deep: a service is a leaf or a bundle of leaves.
func (s *Snapshot) Validate(id uuid.UUID) error {
	svc, ok := s.services[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownService, id)
	}
	for _, child := range svc.includes {
		if child == id {
			return fmt.Errorf("%w: %s", ErrSelfInclusion, s.describe(id))
		}
	}
	if len(svc.includes) > MaxInclusions {
		return fmt.Errorf("%w: %s includes %d", ErrTooManyInclusions, s.describe(id), len(svc.includes))
	}
	for _, child := range svc.includes {
		childSvc, ok := s.services[child]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownService, child)
		}
		if len(childSvc.includes) > 0 {
			return fmt.Errorf("%w: %s includes %s", ErrNestedBundle, s.describe(id), s.describe(child))
		}
	}
	return nil
}

// TotalPrice is the service's own price plus the total price of every
// directly included service, recursively. The recursion carries no
// cycle guard: termination is guaranteed only for graphs that passed
// Validate, which is the caller's obligation.
func (s *Snapshot) TotalPrice(id uuid.UUID) (money.Money, error) {
	svc, ok := s.services[id]
	if !ok {
		return money.Money{}, fmt.Errorf("%w: %s", ErrUnknownService, id)
	}
	total := svc.price
	for _, child := range svc.includes {
		childTotal, err := s.TotalPrice(child)
		if err != nil {
			return money.Money{}, err
		}
		sum, err := total.Add(childTotal)
		if err != nil {
			return money.Money{}, err
		}
		total = sum
	}
	return total, nil
}

func (s *Snapshot) describe(id uuid.UUID) string {
	if svc, ok := s.services[id]; ok && svc.name != "" {
		return svc.name
	}
	return id.String()
}
