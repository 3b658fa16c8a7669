// Package errs provides the standardized error types used across the order
// API. It implements a consistent pattern for error creation, formatting,
// and unwrapping.
//
// The taxonomy mirrors how failures surface to API callers:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed or missing input
//   - ObjectNotFoundError: an order, profile, or purchasable entity that
//     cannot be resolved
//   - ConflictError: stale expected state, unavailable transitions, or a
//     busy assembly lock (retryable)
//   - IntegrityFaultError: corrupt upstream data, such as a purchasable
//     entity with no store assignment (not a user error)
//   - AccessDeniedError: a caller lacking a required capability
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Handlers map these classes onto HTTP statuses in one place, so the rest of
// the code never deals with status codes directly.
package errs
