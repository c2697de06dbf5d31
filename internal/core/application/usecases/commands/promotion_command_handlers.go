package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

type ApplyPromotionCommandHandler struct {
	uowFactory OrderUoWFactory
	promotions ports.PromotionRepository
}

func NewApplyPromotionCommandHandler(uowFactory OrderUoWFactory, promotions ports.PromotionRepository) ApplyPromotionCommandHandler {
	return ApplyPromotionCommandHandler{
		uowFactory: uowFactory,
		promotions: promotions,
	}
}

func (h *ApplyPromotionCommandHandler) Handle(ctx context.Context, cmd ApplyPromotionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var (
		promotion ports.Promotion
		err       error
	)
	if id := cmd.PromotionID(); id != nil {
		promotion, err = h.promotions.GetPromotion(ctx, *id)
	} else {
		promotion, err = h.promotions.GetPromotionByCode(ctx, cmd.Code())
	}
	if err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.ApplyPromotion(promotion, cmd.Code(), promotion.Calculator())
	})
}

type RemovePromotionCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRemovePromotionCommandHandler(uowFactory OrderUoWFactory) RemovePromotionCommandHandler {
	return RemovePromotionCommandHandler{uowFactory: uowFactory}
}

func (h *RemovePromotionCommandHandler) Handle(ctx context.Context, cmd RemovePromotionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.RemovePromotion()
	})
}
