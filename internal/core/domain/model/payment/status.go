package payment

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status is the settlement state of a payment.
type Status int

const (
	Unknown Status = iota
	Pending
	Settled
	Failed
	Voided
)

var statusNames = map[Status]string{
	Unknown: "Unknown",
	Pending: "Pending",
	Settled: "Settled",
	Failed:  "Failed",
	Voided:  "Voided",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if s <= Unknown || s > Voided {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}
