// Package services provides domain services that span the order and settlement aggregates.
//
// The package includes:
//   - PayableCalculator: the single formula for what the printer is owed per order,
//     used both when a settlement is created and when unbatched totals are displayed
package services
