package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrApplyPromotionCommandIsNotConstructed = errors.New(
		"ApplyPromotionCommand must be created via NewApplyPromotionCommand constructor",
	)
	ErrRemovePromotionCommandIsNotConstructed = errors.New(
		"RemovePromotionCommand must be created via NewRemovePromotionCommand constructor",
	)
)

// ApplyPromotionCommand applies a promotion chosen either by id (automatic
// promotions) or by the code a customer typed. With both set, the id picks
// the promotion and the code is checked against it.
type ApplyPromotionCommand struct {
	orderID     kernel.UUID
	promotionID *kernel.UUID
	code        string

	guard guard.ConstructorGuard
}

func NewApplyPromotionCommand(orderID kernel.UUID, promotionID *kernel.UUID, code string) (ApplyPromotionCommand, error) {
	code = strings.TrimSpace(code)

	var promotionErr error
	switch {
	case promotionID != nil:
		promotionErr = promotionID.Validate()
	case code == "":
		promotionErr = errs.NewValueIsRequiredError("promotion id or code")
	}
	if err := errors.Join(orderID.Validate(), promotionErr); err != nil {
		return ApplyPromotionCommand{}, err
	}

	var id *kernel.UUID
	if promotionID != nil {
		copied := *promotionID
		id = &copied
	}
	return ApplyPromotionCommand{
		orderID:     orderID,
		promotionID: id,
		code:        code,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyPromotionCommand) Validate() error {
	return c.guard.Validate(ErrApplyPromotionCommandIsNotConstructed)
}

func (c ApplyPromotionCommand) OrderID() kernel.UUID      { return c.orderID }
func (c ApplyPromotionCommand) PromotionID() *kernel.UUID { return c.promotionID }
func (c ApplyPromotionCommand) Code() string              { return c.code }

type RemovePromotionCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemovePromotionCommand(orderID kernel.UUID) (RemovePromotionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RemovePromotionCommand{}, err
	}
	return RemovePromotionCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemovePromotionCommand) Validate() error {
	return c.guard.Validate(ErrRemovePromotionCommandIsNotConstructed)
}

func (c RemovePromotionCommand) OrderID() kernel.UUID { return c.orderID }
