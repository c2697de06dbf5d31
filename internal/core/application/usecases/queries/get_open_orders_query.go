// Package queries holds read-side operations. Handlers read tables
// directly with SQL and never load aggregates.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const maxOpenOrdersLimit = 500

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery lists orders that are neither complete nor canceled,
// oldest first.
//
// Example:
//
//	query, err := NewGetOpenOrdersQuery(100)
//	if err != nil {
//	    return err
//	}
//	orders, err := NewGetOpenOrdersQueryHandler(db).Handle(ctx, query)
type GetOpenOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewGetOpenOrdersQuery(limit int) (GetOpenOrdersQuery, error) {
	if limit < 1 || limit > maxOpenOrdersLimit {
		return GetOpenOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxOpenOrdersLimit)
	}
	return GetOpenOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

func (q GetOpenOrdersQuery) Limit() int { return q.limit }

type GetOpenOrdersQueryResponse struct {
	ID         kernel.UUID
	Number     string
	State      order.State
	GrandTotal kernel.Money
	CreatedAt  time.Time
}
