package settlement

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrSettlementIsNotConstructed is returned when a Settlement bypassed its constructors.
	ErrSettlementIsNotConstructed = errors.New("Settlement must be created via NewSettlement constructor")

	// ErrSettlementHasNoLinks is returned when a batch contains no orders.
	ErrSettlementHasNoLinks = errs.NewValueIsRequiredError("orderIds")
)

// Settlement is a batch of printer payables.
//
// Settlement follows these invariants:
//   - SubtotalCents and TotalCents equal the sum of link amounts at creation
//   - Financial fields and links never change after creation
//   - Status changes only through Apply, which consults the transition table
//   - An order appears in at most one link
type Settlement struct {
	id            kernel.UUID
	status        Status
	printerEmail  kernel.Email
	subtotalCents int64
	totalCents    int64
	notes         string
	links         []Link
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewSettlement creates a Sent settlement whose totals are the sum of the link amounts.
func NewSettlement(
	id kernel.UUID,
	printerEmail kernel.Email,
	notes string,
	links []Link,
	now time.Time,
) (*Settlement, error) {
	s := &Settlement{
		status:        Sent,
		notes:         strings.TrimSpace(notes),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setPrinterEmail(printerEmail),
		s.setLinks(links),
	); err != nil {
		return nil, err
	}

	var sum int64
	for _, l := range s.links {
		sum += l.AmountCents()
	}
	s.subtotalCents = sum
	s.totalCents = sum

	return s, nil
}

// RestoreSettlement rebuilds a settlement from persistence with its stored totals.
// Totals are taken as stored, never recomputed from links.
func RestoreSettlement(
	id kernel.UUID,
	status Status,
	printerEmail kernel.Email,
	subtotalCents, totalCents int64,
	notes string,
	links []Link,
	createdAt, updatedAt time.Time,
) (*Settlement, error) {
	s := &Settlement{
		subtotalCents: subtotalCents,
		totalCents:    totalCents,
		notes:         notes,
		links:         append([]Link(nil), links...),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setPrinterEmail(printerEmail),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	s.status = status

	return s, nil
}

func (s *Settlement) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSettlementIsNotConstructed
	}
	return nil
}

func (s *Settlement) ID() kernel.UUID {
	return s.id
}

func (s *Settlement) Status() Status {
	return s.status
}

func (s *Settlement) PrinterEmail() kernel.Email {
	return s.printerEmail
}

func (s *Settlement) SubtotalCents() int64 {
	return s.subtotalCents
}

func (s *Settlement) TotalCents() int64 {
	return s.totalCents
}

func (s *Settlement) Notes() string {
	return s.notes
}

func (s *Settlement) Links() []Link {
	return append([]Link(nil), s.links...)
}

// OrderIDs lists the linked orders in link order.
func (s *Settlement) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(s.links))
	for _, l := range s.links {
		ids = append(ids, l.OrderID())
	}
	return ids
}

func (s *Settlement) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Settlement) UpdatedAt() time.Time {
	return s.updatedAt
}

// Apply moves the settlement according to action and returns the audit entry to persist.
// Cascading to linked orders is the caller's job; ShouldSettleOrders tells it when.
func (s *Settlement) Apply(action Action, actionID kernel.UUID, now time.Time) (PrinterAction, error) {
	target, err := action.Target()
	if err != nil {
		return PrinterAction{}, err
	}
	if !s.status.CanTransitionTo(target) {
		return PrinterAction{}, errs.NewTransitionIsInvalidError("settlement", s.status.String(), target.String())
	}

	audit, err := NewPrinterAction(actionID, s.id, action, now)
	if err != nil {
		return PrinterAction{}, err
	}

	s.status = target
	s.updatedAt = now
	return audit, nil
}

// ShouldSettleOrders reports whether linked orders must be marked Settled.
func (s *Settlement) ShouldSettleOrders() bool {
	return s.status == Paid
}

func (s *Settlement) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Settlement) setPrinterEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	s.printerEmail = email
	return nil
}

func (s *Settlement) setLinks(links []Link) error {
	if len(links) == 0 {
		return ErrSettlementHasNoLinks
	}

	seen := make(map[string]struct{}, len(links))
	for _, l := range links {
		if err := l.OrderID().Validate(); err != nil {
			return err
		}
		key := l.OrderID().String()
		if _, dup := seen[key]; dup {
			return errs.NewValueIsInvalidErrorWithCause("orderIds", errors.New("duplicate order "+key))
		}
		seen[key] = struct{}{}
	}

	s.links = append([]Link(nil), links...)
	return nil
}
