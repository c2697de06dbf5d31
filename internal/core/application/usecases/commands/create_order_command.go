package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand opens a new cart for a store.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, storeID, "usd", nil, "buyer@example.com")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, numbers)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	storeID    kernel.UUID
	currency   kernel.Currency
	customerID *kernel.UUID
	email      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand normalizes the currency code. customerID and email
// are optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	storeID kernel.UUID,
	currency string,
	customerID *kernel.UUID,
	email string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		email: strings.TrimSpace(email),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStoreID(storeID),
		cmd.setCurrency(currency),
		cmd.setCustomerID(customerID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c CreateOrderCommand) StoreID() kernel.UUID      { return c.storeID }
func (c CreateOrderCommand) Currency() kernel.Currency { return c.currency }
func (c CreateOrderCommand) CustomerID() *kernel.UUID  { return c.customerID }
func (c CreateOrderCommand) Email() string             { return c.email }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setCurrency(code string) error {
	currency, err := kernel.NewCurrency(code)
	if err != nil {
		return err
	}

	c.currency = currency
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}

	id := *customerID
	c.customerID = &id
	return nil
}
