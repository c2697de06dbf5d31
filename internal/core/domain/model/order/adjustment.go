package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Scope tells whether an adjustment belongs to the order or to one line item.
type Scope int

const (
	ScopeUnknown Scope = iota
	ScopeOrder
	ScopeLineItem
)

func (s Scope) String() string {
	switch s {
	case ScopeOrder:
		return "order"
	case ScopeLineItem:
		return "line_item"
	default:
		return "unknown"
	}
}

func ParseScope(s string) (Scope, error) {
	switch s {
	case "order":
		return ScopeOrder, nil
	case "line_item":
		return ScopeLineItem, nil
	}
	return ScopeUnknown, errs.NewValueIsInvalidErrorWithCause("adjustment scope", fmt.Errorf("%q is not a valid scope", s))
}

// Adjustment is a signed money entry. Promotion adjustments carry the id of
// the promotion that produced them; tax and fee entries do not.
type Adjustment struct {
	id          kernel.UUID
	scope       Scope
	lineItemID  *kernel.UUID
	promotionID *kernel.UUID
	amount      int64
	description string
}

// RestoreAdjustment rebuilds an adjustment. A line-scoped adjustment needs
// lineItemID; an order-scoped one must not have it.
func RestoreAdjustment(
	id kernel.UUID,
	scope Scope,
	lineItemID *kernel.UUID,
	promotionID *kernel.UUID,
	amount int64,
	description string,
) (Adjustment, error) {
	var scopeErr, promotionErr error
	switch scope {
	case ScopeOrder:
		if lineItemID != nil {
			scopeErr = errs.NewValueIsInvalidErrorWithCause("adjustment line item", errors.New("order-scoped adjustment cannot target a line item"))
		}
	case ScopeLineItem:
		if lineItemID == nil {
			scopeErr = errs.NewValueIsRequiredError("adjustment line item")
		} else {
			scopeErr = lineItemID.Validate()
		}
	default:
		scopeErr = errs.NewValueIsInvalidError("adjustment scope")
	}
	if promotionID != nil {
		promotionErr = promotionID.Validate()
	}

	if err := errors.Join(id.Validate(), scopeErr, promotionErr); err != nil {
		return Adjustment{}, err
	}

	return Adjustment{
		id:          id,
		scope:       scope,
		lineItemID:  lineItemID,
		promotionID: promotionID,
		amount:      amount,
		description: description,
	}, nil
}

func newAdjustment(amount int64, description string, lineItemID, promotionID *kernel.UUID) Adjustment {
	scope := ScopeOrder
	if lineItemID != nil {
		scope = ScopeLineItem
		id := *lineItemID
		lineItemID = &id
	}
	if promotionID != nil {
		id := *promotionID
		promotionID = &id
	}
	return Adjustment{
		id:          kernel.NewUUID(),
		scope:       scope,
		lineItemID:  lineItemID,
		promotionID: promotionID,
		amount:      amount,
		description: description,
	}
}

func (a Adjustment) ID() kernel.UUID           { return a.id }
func (a Adjustment) Scope() Scope              { return a.scope }
func (a Adjustment) LineItemID() *kernel.UUID  { return a.lineItemID }
func (a Adjustment) PromotionID() *kernel.UUID { return a.promotionID }
func (a Adjustment) Amount() int64             { return a.amount }
func (a Adjustment) Description() string       { return a.description }

func (a Adjustment) IsPromotion() bool {
	return a.promotionID != nil
}
