package catalog

import (
	domaincatalog "github.com/webcomtel/webcom-backend/internal/domain/catalog"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
)

// LoadSnapshot reads the whole catalogue into an in-memory snapshot in
// two queries, services then edges. Composition checks and price walks
// run against the snapshot so the recursion never touches the database.
func LoadSnapshot(dbc dbctx.Context, services ServiceRepo, inclusions ServiceInclusionRepo) (*domaincatalog.Snapshot, error) {
	rows, err := services.ListAll(dbc)
	if err != nil {
		return nil, err
	}
	edges, err := inclusions.ListAll(dbc)
	if err != nil {
		return nil, err
	}
	snap := domaincatalog.NewSnapshot()
	for _, svc := range rows {
		snap.AddService(svc.ID, svc.Name, svc.Price)
	}
	for _, edge := range edges {
		snap.AddInclusion(edge.ParentServiceID, edge.ChildServiceID)
	}
	return snap, nil
}
