package order

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewPaidOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewPaidOrder constructor")

	// ErrOrderHasNoItems is returned when an order arrives without line items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("items")
)

// Totals holds the customer-facing money amounts of an order in integer cents.
type Totals struct {
	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
	TotalCents    int64
}

// Shipment carries the optional tracking details a status update may supply.
// Empty fields leave the stored values unchanged.
type Shipment struct {
	TrackingNumber string
	Carrier        string
}

// Order is a single customer purchase as seen by fulfillment and printer settlement.
//
// Order follows these invariants:
//   - Must have a valid identifier and customer email
//   - Has at least one item
//   - Status changes only through TransitionTo, which consults the transition table
//   - PayableStatus changes only through MarkBatched and MarkSettled and never regresses
type Order struct {
	id                  kernel.UUID
	status              Status
	email               kernel.Email
	trackingNumber      *string
	carrier             *string
	basePrinterFeeCents *int64
	payableStatus       PayableStatus
	totals              Totals
	items               []Item
	createdAt           time.Time
	updatedAt           time.Time

	isConstructed bool
}

// NewPaidOrder records an order produced upstream by checkout. The order starts in Paid
// status with Unbatched payable state. basePrinterFeeCents may be nil, in which case the
// settlement calculator applies its fallback fee.
func NewPaidOrder(
	id kernel.UUID,
	email kernel.Email,
	totals Totals,
	basePrinterFeeCents *int64,
	items []Item,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:              Paid,
		payableStatus:       Unbatched,
		totals:              totals,
		basePrinterFeeCents: copyInt64(basePrinterFeeCents),
		createdAt:           now,
		updatedAt:           now,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setEmail(email),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. It validates enum values but not
// business history, since stored rows are trusted to have gone through the state machines.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	email kernel.Email,
	trackingNumber, carrier *string,
	basePrinterFeeCents *int64,
	payableStatus PayableStatus,
	totals Totals,
	items []Item,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		trackingNumber:      copyString(trackingNumber),
		carrier:             copyString(carrier),
		basePrinterFeeCents: copyInt64(basePrinterFeeCents),
		totals:              totals,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setEmail(email),
		status.Validate(),
		payableStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.payableStatus = payableStatus
	o.items = append([]Item(nil), items...)
	return o, nil
}

// Validate ensures the Order was built by one of the constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Email() kernel.Email {
	return o.email
}

// TrackingNumber returns nil when no tracking number has been recorded.
func (o *Order) TrackingNumber() *string {
	return copyString(o.trackingNumber)
}

// Carrier returns nil when no carrier has been recorded.
func (o *Order) Carrier() *string {
	return copyString(o.carrier)
}

// BasePrinterFeeCents returns nil when the order carries no explicit fee.
func (o *Order) BasePrinterFeeCents() *int64 {
	return copyInt64(o.basePrinterFeeCents)
}

func (o *Order) PayableStatus() PayableStatus {
	return o.payableStatus
}

func (o *Order) Totals() Totals {
	return o.totals
}

// Items returns a copy of the line item snapshots.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order to target and records shipment details.
//
// A call whose target equals the current status is an idempotent repeat: the status is
// left as-is, shipment details are still applied, and changed is false so callers do not
// re-notify. Any other move must be in the transition table.
func (o *Order) TransitionTo(target Status, shipment Shipment, now time.Time) (changed bool, err error) {
	if err = target.Validate(); err != nil {
		return false, err
	}

	if target != o.status {
		next, transitionErr := o.status.TransitionTo(target)
		if transitionErr != nil {
			return false, transitionErr
		}
		o.status = next
		changed = true
	}

	if number := strings.TrimSpace(shipment.TrackingNumber); number != "" {
		o.trackingNumber = &number
	}
	if carrier := strings.TrimSpace(shipment.Carrier); carrier != "" {
		o.carrier = &carrier
	}
	o.updatedAt = now

	return changed, nil
}

// MarkBatched records that the order's payable was put into a settlement.
func (o *Order) MarkBatched(now time.Time) error {
	next, err := o.payableStatus.Batch()
	if err != nil {
		return err
	}
	o.payableStatus = next
	o.updatedAt = now
	return nil
}

// MarkSettled records that the settlement containing the order was paid.
func (o *Order) MarkSettled(now time.Time) error {
	next, err := o.payableStatus.Settle()
	if err != nil {
		return err
	}
	o.payableStatus = next
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	o.email = email
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyInt64(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
