package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItems() []commands.PaidOrderItem {
	return []commands.PaidOrderItem{{Description: "Tee", Qty: 2, BlankCostCents: 300, PrintCostCents: 200}}
}

func TestNewRegisterPaidOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	fee := int64(650)

	cmd, err := commands.NewRegisterPaidOrderCommand(id, " Buyer@Example.com ", order.Totals{TotalCents: 100}, &fee, validItems())

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "buyer@example.com", cmd.Email().String())
	assert.Equal(t, int64(100), cmd.Totals().TotalCents)
	require.NotNil(t, cmd.BasePrinterFeeCents())
	assert.Equal(t, int64(650), *cmd.BasePrinterFeeCents())
	require.Len(t, cmd.Items(), 1)
	assert.Equal(t, int64(1000), cmd.Items()[0].LineCostCents())
}

func TestNewRegisterPaidOrderCommand_NilFeeStaysNil(t *testing.T) {
	cmd, err := commands.NewRegisterPaidOrderCommand(kernel.NewUUID(), "a@b.co", order.Totals{}, nil, validItems())

	require.NoError(t, err)
	assert.Nil(t, cmd.BasePrinterFeeCents())
}

func TestNewRegisterPaidOrderCommand_InvalidInput(t *testing.T) {
	negative := int64(-1)

	cases := []struct {
		name    string
		id      kernel.UUID
		email   string
		fee     *int64
		items   []commands.PaidOrderItem
		wantErr error
	}{
		{"zero id", kernel.UUID{}, "a@b.co", nil, validItems(), kernel.ErrUUIDIsNotConstructed},
		{"missing email", kernel.NewUUID(), "", nil, validItems(), errs.ErrValueIsRequired},
		{"malformed email", kernel.NewUUID(), "nope", nil, validItems(), errs.ErrValueIsInvalid},
		{"negative fee", kernel.NewUUID(), "a@b.co", &negative, validItems(), commands.ErrBasePrinterFeeIsNegative},
		{"no items", kernel.NewUUID(), "a@b.co", nil, nil, order.ErrOrderHasNoItems},
		{"zero qty", kernel.NewUUID(), "a@b.co", nil, []commands.PaidOrderItem{{Description: "x"}}, errs.ErrValueIsOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewRegisterPaidOrderCommand(tc.id, tc.email, order.Totals{}, tc.fee, tc.items)

			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
