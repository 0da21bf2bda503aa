// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package maps the service error taxonomy onto concrete types:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: an order or settlement id did not resolve
//   - UnauthorizedError: a printer webhook presented a wrong or missing secret
//   - TransitionIsInvalidError: a lifecycle transition outside the transition table
//   - PersistenceError: storage could not commit or read
//   - NotificationError: an outbound notification failed (logged, never surfaced)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
