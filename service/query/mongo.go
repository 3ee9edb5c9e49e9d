// Package query provides the interface for querying mongo. It is a thin wrap
// of https://github.com/mongodb/mongo-go-driver; see the driver docs for the
// semantics of each operation.
package query

import (
	"fmt"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating a unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")
)

type patchOp struct {
	patchMany bool
}

// PatchOp is an alias for functional argument
type PatchOp func(*patchOp)

// WithPatchMany makes Patch update all entries matching the selector.
func WithPatchMany(patchMany bool) PatchOp {
	return func(o *patchOp) {
		o.patchMany = patchMany
	}
}

// Mongo abstracts the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne gets one document from the table
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count returns the count of matched entries in the table
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Upsert updates the entry matching the selector, inserting it when absent
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search sorts order by the `sort` argument (ex "timestamp" ascending,
	// "-timestamp" descending). An empty sort leaves the order unspecified.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove removes one entry from the table.
	// Returns ErrNotFound if the selector does not match any document.
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// RemoveAll removes all entries matching the selector from the table
	RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) (removedCnt int64, err error)

	// Patch patches an entry via $set. To patch all entries selected, pass
	// WithPatchMany(true). Returns ErrNotFound when nothing matches.
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error
}
