// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier value object used by orders and settlements
//   - Email: a validated mailbox address for customers, admins and the printer
//
// Zero values of these types are invalid and are rejected by their Validate methods,
// so aggregates can check inputs without extra bookkeeping.
package kernel
