package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newItem(t *testing.T, qty int, blank, print int64) order.Item {
	t.Helper()
	item, err := order.NewItem("tee", qty, blank, print)
	require.NoError(t, err)
	return item
}

func newPaidOrder(t *testing.T) *order.Order {
	t.Helper()
	email, err := kernel.NewEmail("buyer@example.com")
	require.NoError(t, err)
	o, err := order.NewPaidOrder(kernel.NewUUID(), email, order.Totals{TotalCents: 2500}, nil,
		[]order.Item{newItem(t, 2, 300, 200)}, now)
	require.NoError(t, err)
	return o
}

func TestNewPaidOrder(t *testing.T) {
	email, _ := kernel.NewEmail("buyer@example.com")

	t.Run("should start paid and unbatched", func(t *testing.T) {
		fee := int64(650)
		o, err := order.NewPaidOrder(kernel.NewUUID(), email, order.Totals{SubtotalCents: 2000, TotalCents: 2400},
			&fee, []order.Item{newItem(t, 1, 100, 100)}, now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, order.Unbatched, o.PayableStatus())
		assert.Nil(t, o.TrackingNumber())
		assert.Nil(t, o.Carrier())
		assert.Equal(t, int64(650), *o.BasePrinterFeeCents())
		assert.Equal(t, int64(2400), o.Totals().TotalCents)
		assert.Len(t, o.Items(), 1)
	})

	t.Run("should join every validation failure", func(t *testing.T) {
		o, err := order.NewPaidOrder(kernel.UUID{}, kernel.Email{}, order.Totals{}, nil, nil, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should not alias the caller's fee pointer", func(t *testing.T) {
		fee := int64(100)
		o, err := order.NewPaidOrder(kernel.NewUUID(), email, order.Totals{}, &fee,
			[]order.Item{newItem(t, 1, 1, 1)}, now)
		require.NoError(t, err)

		fee = 999

		assert.Equal(t, int64(100), *o.BasePrinterFeeCents())
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())

	var zero order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("should apply a forward transition with shipment details", func(t *testing.T) {
		o := newPaidOrder(t)
		later := now.Add(time.Hour)

		for _, s := range []order.Status{order.LabelPurchased, order.ReceivedByPrinter} {
			changed, err := o.TransitionTo(s, order.Shipment{}, later)
			require.NoError(t, err)
			assert.True(t, changed)
		}

		changed, err := o.TransitionTo(order.Shipped, order.Shipment{TrackingNumber: " 1Z999 ", Carrier: "UPS"}, later)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, "1Z999", *o.TrackingNumber())
		assert.Equal(t, "UPS", *o.Carrier())
		assert.Equal(t, later, o.UpdatedAt())
	})

	t.Run("should treat a repeat of the current status as a no-op", func(t *testing.T) {
		o := newPaidOrder(t)
		_, err := o.TransitionTo(order.LabelPurchased, order.Shipment{}, now)
		require.NoError(t, err)

		changed, err := o.TransitionTo(order.LabelPurchased, order.Shipment{TrackingNumber: "T1"}, now)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, order.LabelPurchased, o.Status())
		assert.Equal(t, "T1", *o.TrackingNumber())
	})

	t.Run("should reject skipping ahead and leave state untouched", func(t *testing.T) {
		o := newPaidOrder(t)

		changed, err := o.TransitionTo(order.Shipped, order.Shipment{TrackingNumber: "T2"}, now)

		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		assert.False(t, changed)
		assert.Equal(t, order.Paid, o.Status())
		assert.Nil(t, o.TrackingNumber())
	})

	t.Run("should reject unknown targets", func(t *testing.T) {
		o := newPaidOrder(t)

		_, err := o.TransitionTo(order.Unknown, order.Shipment{}, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should cancel from paid and stay cancelled", func(t *testing.T) {
		o := newPaidOrder(t)

		_, err := o.TransitionTo(order.Cancelled, order.Shipment{}, now)
		require.NoError(t, err)

		_, err = o.TransitionTo(order.LabelPurchased, order.Shipment{}, now)
		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
	})
}

func TestOrder_PayableLifecycle(t *testing.T) {
	o := newPaidOrder(t)

	require.ErrorIs(t, o.MarkSettled(now), errs.ErrTransitionIsInvalid)
	require.NoError(t, o.MarkBatched(now))
	assert.Equal(t, order.Batched, o.PayableStatus())
	require.ErrorIs(t, o.MarkBatched(now), errs.ErrTransitionIsInvalid)
	require.NoError(t, o.MarkSettled(now))
	assert.Equal(t, order.Settled, o.PayableStatus())
}

func TestRestoreOrder(t *testing.T) {
	email, _ := kernel.NewEmail("buyer@example.com")
	tracking := "1Z"

	t.Run("should rebuild persisted state", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), order.Shipped, email, &tracking, nil, nil,
			order.Batched, order.Totals{TotalCents: 10}, []order.Item{newItem(t, 1, 1, 1)}, now, now)

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, order.Batched, o.PayableStatus())
		assert.Equal(t, "1Z", *o.TrackingNumber())
	})

	t.Run("should reject unknown enum values", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), order.Unknown, email, nil, nil, nil,
			order.PayableUnknown, order.Totals{}, nil, now, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status")
		assert.Contains(t, err.Error(), "printer payable status")
	})
}

func TestNewItem(t *testing.T) {
	t.Run("should compute unit and line costs", func(t *testing.T) {
		item := newItem(t, 3, 250, 175)

		assert.Equal(t, int64(425), item.UnitCostCents())
		assert.Equal(t, int64(1275), item.LineCostCents())
	})

	t.Run("should accept zero and negative costs as-is", func(t *testing.T) {
		item := newItem(t, 2, 0, -50)

		assert.Equal(t, int64(-100), item.LineCostCents())
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		_, err := order.NewItem("tee", 0, 1, 1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
