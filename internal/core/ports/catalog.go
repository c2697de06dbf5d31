package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

type VariantRepository interface {
	GetVariant(ctx context.Context, id kernel.UUID) (order.Variant, error)
}

// Promotion is a catalog promotion bundled with the calculator that prices it.
type Promotion interface {
	order.Promotion
	Calculator() order.PromotionCalculator
}

type PromotionRepository interface {
	GetPromotion(ctx context.Context, id kernel.UUID) (Promotion, error)
	GetPromotionByCode(ctx context.Context, code string) (Promotion, error)
}

type ShippingMethodRepository interface {
	GetShippingMethod(ctx context.Context, id kernel.UUID) (order.ShippingMethod, error)
}
