package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"

	"github.com/stretchr/testify/require"
)

var fixtureTime = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func mustEmail(t testing.TB, address string) kernel.Email {
	t.Helper()
	e, err := kernel.NewEmail(address)
	require.NoError(t, err)
	return e
}

func testComposer(t testing.TB) notifications.Composer {
	t.Helper()
	return notifications.NewComposer(notifications.Config{
		PublicBaseURL: "https://shop.example.com",
		AdminEmail:    mustEmail(t, "ops@example.com"),
		PrinterEmail:  mustEmail(t, "printer@example.com"),
		PrinterToken:  "tok",
	})
}

// restoredOrder builds an order with one 2 x (300 + 200) item and no explicit fee,
// so its payable is 1500 cents with the default fee.
func restoredOrder(t testing.TB, status order.Status, payable order.PayableStatus) *order.Order {
	t.Helper()
	item, err := order.NewItem("Tee", 2, 300, 200)
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), status, mustEmail(t, "buyer@example.com"),
		nil, nil, nil, payable,
		order.Totals{SubtotalCents: 4000, ShippingCents: 500, TaxCents: 300, TotalCents: 4800},
		[]order.Item{item}, fixtureTime, fixtureTime,
	)
	require.NoError(t, err)
	return o
}

func restoredSettlement(t testing.TB, status settlement.Status, orders ...*order.Order) *settlement.Settlement {
	t.Helper()
	links := make([]settlement.Link, 0, len(orders))
	var total int64
	for _, o := range orders {
		l, err := settlement.NewLink(o.ID(), 1500, settlement.Breakdown{AmountCents: 1500})
		require.NoError(t, err)
		links = append(links, l)
		total += 1500
	}

	s, err := settlement.RestoreSettlement(kernel.NewUUID(), status, mustEmail(t, "printer@example.com"),
		total, total, "", links, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return s
}
