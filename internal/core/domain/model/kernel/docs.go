// Package kernel holds the value objects shared by every aggregate of the
// ordering domain: identifiers (UUID), ISO-4217 currency codes (Currency)
// and integer minor-unit amounts (Money).
//
// All values are immutable. Zero values are invalid and are rejected by
// Validate, so an identifier or amount that was never constructed cannot
// slip into an aggregate.
package kernel
