package catalog

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

const (
	kindFlatOrder          = "flat_order"
	kindPercentageOrder    = "percentage_order"
	kindPercentageLineItem = "percentage_line_item"
)

// Promotion is a catalog promotion bound to the calculator its kind names.
type Promotion struct {
	id         kernel.UUID
	name       string
	code       string
	calculator order.PromotionCalculator
}

func (p *Promotion) ID() kernel.UUID                       { return p.id }
func (p *Promotion) Name() string                          { return p.name }
func (p *Promotion) Code() string                          { return p.code }
func (p *Promotion) RequiresCode() bool                    { return p.code != "" }
func (p *Promotion) Calculator() order.PromotionCalculator { return p.calculator }
