package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// State is the checkout step an order is in.
//
//	Cart ──> Address ──> Delivery ──> Payment ──> Confirm ──> Complete
//	  │         │           │            │           │
//	  └─────────┴───────────┴────────────┴───────────┴──> Canceled
//
// Complete and Canceled are terminal.
type State int

const (
	// Unknown catches uninitialized values.
	Unknown State = iota
	Cart
	Address
	Delivery
	Payment
	Confirm
	Complete
	Canceled
)

var stateNames = map[State]string{
	Unknown:  "unknown",
	Cart:     "cart",
	Address:  "address",
	Delivery: "delivery",
	Payment:  "payment",
	Confirm:  "confirm",
	Complete: "complete",
	Canceled: "canceled",
}

// ParseState is the inverse of String.
func ParseState(s string) (State, error) {
	for state, name := range stateNames {
		if name == s && state != Unknown {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", s))
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return stateNames[Unknown]
}

// MarshalText renders the state by name in event payloads. Only states
// UnmarshalText accepts are written.
func (s State) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(data []byte) error {
	parsed, err := ParseState(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s State) Validate() error {
	if s < Cart || s > Canceled {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// IsTerminal reports whether no transition leaves s.
func (s State) IsTerminal() bool {
	return s == Complete || s == Canceled
}

// Next returns the forward successor of s. Guards live on Order.Next;
// this only encodes the shape of the machine.
func (s State) Next() (State, error) {
	if s < Cart || s >= Complete {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%w: %s", ErrInvalidStateTransition, s))
	}
	return s + 1, nil
}

// Cancel returns Canceled for every state but Complete. Canceling a
// canceled order is allowed and yields Canceled again.
func (s State) Cancel() (State, error) {
	if s == Complete {
		return Unknown, errs.NewConflictErrorWithCause("state", ErrOrderIsCompleted)
	}
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	return Canceled, nil
}
