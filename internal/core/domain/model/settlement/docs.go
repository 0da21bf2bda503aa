// Package settlement provides the Settlement aggregate: a batch of per-order printer
// payables sent to the printer for agreement and payment.
//
// The package includes:
//   - Settlement: aggregate root with frozen financial fields and its order links
//   - Status: Sent -> {Agreed, AdjustRequested} -> Paid, plus AdjustRequested -> Sent on resend
//   - Action: the printer/admin actions that drive Status, each recorded as a PrinterAction
//   - Link and Breakdown: the per-order amount and the calculation detail frozen at creation
//
// Key business rules:
//   - TotalCents equals the sum of link amounts at creation and is never recomputed
//   - Paid is terminal
//   - Every applied action yields exactly one append-only PrinterAction
package settlement
