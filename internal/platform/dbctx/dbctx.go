package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional open GORM
// transaction. Repositories use Tx when set and fall back to their own
// handle otherwise, so the same repository methods serve both plain
// reads and steps inside an aggregate transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}
