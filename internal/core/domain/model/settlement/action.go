package settlement

import (
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Action is a settlement lifecycle command and the audit label it is recorded under.
type Action string

const (
	ActionAgreed       Action = "AGREED"
	ActionNeedsUpdated Action = "NEEDS_UPDATED"
	ActionPaidInFull   Action = "PAID_IN_FULL"
	ActionResent       Action = "RESENT"
)

var actionTargets = map[Action]Status{
	ActionAgreed:       Agreed,
	ActionNeedsUpdated: AdjustRequested,
	ActionPaidInFull:   Paid,
	ActionResent:       Sent,
}

// ParseLinkAction maps the printer link path segment (agree, needs-updated, paid) to an Action.
func ParseLinkAction(segment string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(segment)) {
	case "agree":
		return ActionAgreed, nil
	case "needs-updated":
		return ActionNeedsUpdated, nil
	case "paid":
		return ActionPaidInFull, nil
	}
	return "", errs.NewValueIsInvalidError("settlement action " + segment)
}

// Target returns the status the action moves a settlement to.
func (a Action) Target() (Status, error) {
	target, ok := actionTargets[a]
	if !ok {
		return Unknown, errs.NewValueIsInvalidError("settlement action " + string(a))
	}
	return target, nil
}

// LinkFlag is the value used in the dashboard redirect query (status=<flag>).
func (a Action) LinkFlag() string {
	switch a {
	case ActionAgreed:
		return "agreed"
	case ActionNeedsUpdated:
		return "needs-updated"
	case ActionPaidInFull:
		return "paid"
	case ActionResent:
		return "resent"
	}
	return "unknown"
}

// PrinterAction is an append-only audit entry for a settlement action.
type PrinterAction struct {
	id           kernel.UUID
	settlementID kernel.UUID
	action       Action
	createdAt    time.Time
}

func NewPrinterAction(id, settlementID kernel.UUID, action Action, createdAt time.Time) (PrinterAction, error) {
	if err := id.Validate(); err != nil {
		return PrinterAction{}, err
	}
	if err := settlementID.Validate(); err != nil {
		return PrinterAction{}, err
	}
	if _, err := action.Target(); err != nil {
		return PrinterAction{}, err
	}
	return PrinterAction{id: id, settlementID: settlementID, action: action, createdAt: createdAt}, nil
}

func (p PrinterAction) ID() kernel.UUID {
	return p.id
}

func (p PrinterAction) SettlementID() kernel.UUID {
	return p.settlementID
}

func (p PrinterAction) Action() Action {
	return p.action
}

func (p PrinterAction) CreatedAt() time.Time {
	return p.createdAt
}
