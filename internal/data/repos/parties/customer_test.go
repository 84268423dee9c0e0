package parties

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/webcomtel/webcom-backend/internal/data/repos/testutil"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
)

func TestCustomerRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCustomerRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	created, err := repo.Create(dbc, []*types.Customer{
		{
			ID:    uuid.New(),
			Email: "customerrepo@example.com",
			Phone: "+15550100201",
			Type:  types.CustomerTypeRegular,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 customer, got %d", len(created))
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Email != created[0].Email {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	exists, err := repo.EmailExists(dbc, created[0].Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true")
	}

	exists, err = repo.EmailExists(dbc, "nobody@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (missing): expected false")
	}

	if err := repo.UpdateFields(dbc, created[0].ID, map[string]interface{}{
		"phone": "+15550100299",
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, err = repo.GetByID(dbc, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.Phone != "+15550100299" {
		t.Fatalf("phone: want=+15550100299 got=%s", got.Phone)
	}

	if err := repo.DeleteByIDs(dbc, []uuid.UUID{created[0].ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	got, err = repo.GetByID(dbc, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("expected customer row gone, got %+v", got)
	}
}

func TestAddressRepoGetOrCreateDedupes(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAddressRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	first, err := repo.GetOrCreate(dbc, "1 Main St", "Springfield", "10001")
	if err != nil {
		t.Fatalf("GetOrCreate first: %v", err)
	}
	if first == nil {
		t.Fatalf("GetOrCreate first: expected row")
	}

	second, err := repo.GetOrCreate(dbc, "1 Main St", "Springfield", "10001")
	if err != nil {
		t.Fatalf("GetOrCreate second: %v", err)
	}
	if second == nil || second.ID != first.ID {
		t.Fatalf("GetOrCreate should return the same row: first=%v second=%v", first.ID, second)
	}

	other, err := repo.GetOrCreate(dbc, "2 Main St", "Springfield", "10001")
	if err != nil {
		t.Fatalf("GetOrCreate other: %v", err)
	}
	if other == nil || other.ID == first.ID {
		t.Fatalf("distinct line should create a distinct row")
	}
}
