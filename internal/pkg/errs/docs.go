// Package errs provides standardized error types for the ordering service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used by the domain model and its adapters.
//
// The package includes one error type per failure class:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or violates a business rule
//   - ValueIsOutOfRangeError: a value lies outside its allowed bounds
//   - ObjectNotFoundError: a referenced object does not exist
//   - ConflictError: the operation collides with the object's current state
//   - VersionIsInvalidError: an optimistic-concurrency stamp is stale
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() returning both the sentinel and the cause
//
// CodeOf classifies any error into a machine-checkable Code so that callers
// can decide whether to surface a failure to an end user or retry it.
package errs
