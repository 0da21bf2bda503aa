// Package order provides the Order aggregate of the fulfillment domain: a paid customer
// purchase that the printer produces, ships and later gets paid for.
//
// The package includes:
//   - Order: the aggregate root holding lifecycle status, shipment details, money totals
//     and the frozen item cost snapshots
//   - Status: the production/shipping lifecycle with an explicit transition table
//   - PayableStatus: the printer-payable lifecycle (Unbatched -> Batched -> Settled)
//   - Item: an immutable line item snapshot
//
// Key business rules:
//   - Orders enter the subsystem in Paid status and are never deleted here
//   - Status moves only along Paid -> LabelPurchased -> ReceivedByPrinter -> Shipped -> Delivered,
//     or to Cancelled from any non-terminal status
//   - PayableStatus only advances and never regresses
//   - Item costs are captured at order time so catalog price changes cannot alter settlement math
package order
