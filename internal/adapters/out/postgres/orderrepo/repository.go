package orderrepo

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its owned collections at version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrap(err, "insert order")
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order only if the stored version still matches the
// aggregate's. Owned collections are replaced wholesale.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{ID: dto.ID}).
			Where("version = ?", expected).
			Select("*").
			Omit("ID", "CreatedAt", clause.Associations).
			Updates(&dto)
		if result.Error != nil {
			return errors.Wrap(result.Error, "update order")
		}
		if result.RowsAffected == 0 {
			return r.missingOrStale(tx, aggregate.ID())
		}

		return replaceChildren(tx, dto)
	})
	if err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, id.String(), "id = ?", id.Raw())
}

func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	return r.first(ctx, number, "number = ?", number)
}

func (r *GormOrderRepository) first(ctx context.Context, key string, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	err := preloadChildren(r.db.WithContext(ctx)).
		Where(query, args...).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", key)
		}
		return nil, errors.Wrap(err, "select order")
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) missingOrStale(tx *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := tx.Model(&OrderDTO{}).Where("id = ?", id.Raw()).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count order")
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewVersionIsInvalidError("order")
}

func preloadChildren(db *gorm.DB) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("position") }
	return db.
		Preload("LineItems", byPosition).
		Preload("Adjustments", byPosition).
		Preload("Shipments", byPosition).
		Preload("Payments", byPosition)
}

func replaceChildren(tx *gorm.DB, dto OrderDTO) error {
	for _, model := range []any{&AdjustmentDTO{}, &LineItemDTO{}, &ShipmentDTO{}, &PaymentDTO{}} {
		if err := tx.Where("order_id = ?", dto.ID).Delete(model).Error; err != nil {
			return errors.Wrap(err, "delete order children")
		}
	}

	if len(dto.LineItems) > 0 {
		if err := tx.Create(&dto.LineItems).Error; err != nil {
			return errors.Wrap(err, "insert line items")
		}
	}
	if len(dto.Adjustments) > 0 {
		if err := tx.Create(&dto.Adjustments).Error; err != nil {
			return errors.Wrap(err, "insert adjustments")
		}
	}
	if len(dto.Shipments) > 0 {
		if err := tx.Create(&dto.Shipments).Error; err != nil {
			return errors.Wrap(err, "insert shipments")
		}
	}
	if len(dto.Payments) > 0 {
		if err := tx.Create(&dto.Payments).Error; err != nil {
			return errors.Wrap(err, "insert payments")
		}
	}
	return nil
}
