// Package notifications turns order and settlement state changes into outbound emails.
// Every message carries a dedupe key so a repeated webhook or a retried batch
// produces the same key and is stored only once.
package notifications

import (
	"fmt"
	"net/url"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/money"
)

// Config holds the addresses and links baked into outgoing messages.
type Config struct {
	// PublicBaseURL is the externally reachable origin, e.g. https://shop.example.com.
	PublicBaseURL string
	AdminEmail    kernel.Email
	PrinterEmail  kernel.Email
	// PrinterToken is appended to settlement action links. Empty when the webhook guard is open.
	PrinterToken string
}

type Composer struct {
	cfg Config
}

func NewComposer(cfg Config) Composer {
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return Composer{cfg: cfg}
}

// PrinterEmail is where settlements are addressed.
func (c Composer) PrinterEmail() kernel.Email {
	return c.cfg.PrinterEmail
}

// OrderKey is the dedupe key of an order notification.
func OrderKey(orderID kernel.UUID, status order.Status, recipient ports.RecipientKind) string {
	return fmt.Sprintf("order:%s:%s:%s", orderID, status, recipient)
}

func SettlementCreatedKey(settlementID kernel.UUID) string {
	return fmt.Sprintf("settlement:%s:created", settlementID)
}

func SettlementResentKey(settlementID kernel.UUID, n int) string {
	return fmt.Sprintf("settlement:%s:resent:%d", settlementID, n)
}

// OrderStatusChanged returns the messages owed for the order's current status.
// Only SHIPPED, DELIVERED and CANCELLED notify anyone.
func (c Composer) OrderStatusChanged(o *order.Order) []ports.Notification {
	var customerSubject, customerBody, adminSubject string
	admin := &strings.Builder{}
	fmt.Fprintf(admin, "Order %s (%s) is now %s.\n", o.ID(), o.Email(), o.Status())

	switch o.Status() {
	case order.Shipped:
		customerSubject = "Your order is on its way"
		tracking := trackingLine(o.TrackingNumber(), o.Carrier())
		if tracking == "" {
			customerBody = "Good news! Your order has shipped and is on its way to you."
		} else {
			customerBody = "Good news! Your order has shipped.\n\n" + tracking
			admin.WriteString(tracking + "\n")
		}
		adminSubject = "Order shipped"
	case order.Delivered:
		customerSubject = "Your order was delivered"
		customerBody = "Your order has been delivered. We hope you enjoy it!"
		adminSubject = "Order delivered"
	case order.Cancelled:
		customerSubject = "Your order was cancelled"
		customerBody = "Your order has been cancelled. If you did not expect this, reply to this email."
		adminSubject = "Order cancelled"
	default:
		return nil
	}

	customerBody += fmt.Sprintf("\n\nOrder reference: %s", o.ID())

	return []ports.Notification{
		{
			DedupeKey: OrderKey(o.ID(), o.Status(), ports.RecipientCustomer),
			Recipient: ports.RecipientCustomer,
			To:        o.Email().String(),
			Subject:   customerSubject,
			Body:      customerBody,
		},
		{
			DedupeKey: OrderKey(o.ID(), o.Status(), ports.RecipientAdmin),
			Recipient: ports.RecipientAdmin,
			To:        c.cfg.AdminEmail.String(),
			Subject:   fmt.Sprintf("%s: %s", adminSubject, o.ID()),
			Body:      admin.String(),
		},
	}
}

// SettlementCreated is the printer's copy of a fresh settlement.
func (c Composer) SettlementCreated(s *settlement.Settlement) ports.Notification {
	return ports.Notification{
		DedupeKey: SettlementCreatedKey(s.ID()),
		Recipient: ports.RecipientPrinter,
		To:        s.PrinterEmail().String(),
		Subject:   fmt.Sprintf("New settlement %s: %s", s.ID(), money.FormatCents(s.TotalCents())),
		Body:      c.settlementBody(s, "A new settlement is ready for your review."),
	}
}

// SettlementResent re-sends a settlement after an adjustment request. n counts resends.
func (c Composer) SettlementResent(s *settlement.Settlement, n int) ports.Notification {
	return ports.Notification{
		DedupeKey: SettlementResentKey(s.ID(), n),
		Recipient: ports.RecipientPrinter,
		To:        s.PrinterEmail().String(),
		Subject:   fmt.Sprintf("Updated settlement %s: %s", s.ID(), money.FormatCents(s.TotalCents())),
		Body:      c.settlementBody(s, "We reviewed your adjustment request. Please take another look."),
	}
}

// ActionLink builds the clickable link for a printer settlement action.
func (c Composer) ActionLink(settlementID kernel.UUID, segment string) string {
	link := fmt.Sprintf("%s/api/printer/settlements/%s/%s", c.cfg.PublicBaseURL, settlementID, segment)
	if c.cfg.PrinterToken != "" {
		link += "?token=" + url.QueryEscape(c.cfg.PrinterToken)
	}
	return link
}

func (c Composer) settlementBody(s *settlement.Settlement, intro string) string {
	b := &strings.Builder{}
	b.WriteString(intro + "\n\n")
	fmt.Fprintf(b, "Settlement: %s\n", s.ID())
	fmt.Fprintf(b, "Orders: %d\n", len(s.Links()))
	fmt.Fprintf(b, "Total: %s\n", money.FormatCents(s.TotalCents()))
	if s.Notes() != "" {
		fmt.Fprintf(b, "Notes: %s\n", s.Notes())
	}

	b.WriteString("\nBreakdown:\n")
	for _, l := range s.Links() {
		bd := l.Breakdown()
		fee := money.FormatCents(bd.BaseFeeCents)
		if bd.BaseFeeDefaulted {
			fee += " (default)"
		}
		fmt.Fprintf(b, "- Order %s: %s (base fee %s)\n", l.OrderID(), money.FormatCents(l.AmountCents()), fee)
		for _, line := range bd.Lines {
			fmt.Fprintf(b, "    %d x %s: %s\n", line.Qty, line.Description, money.FormatCents(line.LineCents))
		}
	}

	b.WriteString("\nRespond with one click:\n")
	fmt.Fprintf(b, "Agree: %s\n", c.ActionLink(s.ID(), "agree"))
	fmt.Fprintf(b, "Needs updates: %s\n", c.ActionLink(s.ID(), "needs-updated"))
	fmt.Fprintf(b, "Paid in full: %s\n", c.ActionLink(s.ID(), "paid"))
	return b.String()
}

// TrackingURL returns a carrier tracking page for the number, or "" for unknown carriers.
func TrackingURL(carrier, number string) string {
	n := url.QueryEscape(number)
	switch strings.ToLower(strings.TrimSpace(carrier)) {
	case "usps":
		return "https://tools.usps.com/go/TrackConfirmAction?tLabels=" + n
	case "ups":
		return "https://www.ups.com/track?tracknum=" + n
	case "fedex":
		return "https://www.fedex.com/fedextrack/?trknbr=" + n
	case "dhl":
		return "https://www.dhl.com/global-en/home/tracking.html?tracking-id=" + n
	default:
		return ""
	}
}

func trackingLine(number, carrier *string) string {
	if number == nil {
		return ""
	}
	c := ""
	if carrier != nil {
		c = *carrier
	}
	if link := TrackingURL(c, *number); link != "" {
		return fmt.Sprintf("Track your package (%s %s): %s", strings.ToUpper(c), *number, link)
	}
	if c != "" {
		return fmt.Sprintf("Tracking number (%s): %s", c, *number)
	}
	return "Tracking number: " + *number
}
