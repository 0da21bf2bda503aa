package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResendSettlementCommandHandler_Handle_ReturnsToSent(t *testing.T) {
	// Arrange
	ctx := t.Context()
	s := restoredSettlement(t, settlement.AdjustRequested, restoredOrder(t, order.Shipped, order.Batched))
	cmd, err := commands.NewResendSettlementCommand(s.ID())
	require.NoError(t, err)

	earlier, err := settlement.NewPrinterAction(kernel.NewUUID(), s.ID(), settlement.ActionResent, fixtureTime)
	require.NoError(t, err)
	asked, err := settlement.NewPrinterAction(kernel.NewUUID(), s.ID(), settlement.ActionNeedsUpdated, fixtureTime)
	require.NoError(t, err)

	settlements := new(MockSettlementRepository)
	actions := new(MockPrinterActionRepository)
	outbox := new(MockNotificationOutbox)
	flusher := new(MockFlusher)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	var notice ports.Notification
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SettlementRepository").Return(settlements).Once()
	settlements.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
	settlements.On("UpdateStatus", ctx, s).Return(nil).Once()
	uow.On("PrinterActionRepository").Return(actions).Once()
	actions.On("ListBySettlement", ctx, s.ID()).Return([]settlement.PrinterAction{earlier, asked}, nil).Once()
	actions.On("Append", ctx, mock.MatchedBy(func(a settlement.PrinterAction) bool {
		return a.Action() == settlement.ActionResent
	})).Return(nil).Once()
	uow.On("NotificationOutbox").Return(outbox).Once()
	outbox.On("Enqueue", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		notice = n
		return true
	})).Return(true, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	flusher.On("Flush", ctx, mock.Anything).Return(nil).Once()

	handler := commands.NewResendSettlementCommandHandler(factory, testComposer(t), flusher, discardLogger())

	// Act
	got, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, settlement.Sent, got.Status())
	assert.Equal(t, int64(1500), got.TotalCents())
	assert.Equal(t, "settlement:"+s.ID().String()+":resent:2", notice.DedupeKey)
	uow.AssertExpectations(t)
	actions.AssertExpectations(t)
	flusher.AssertExpectations(t)
}

func TestResendSettlementCommandHandler_Handle_OnlyFromAdjustRequested(t *testing.T) {
	for _, status := range []settlement.Status{settlement.Sent, settlement.Agreed, settlement.Paid} {
		t.Run(status.String(), func(t *testing.T) {
			ctx := t.Context()
			s := restoredSettlement(t, status, restoredOrder(t, order.Shipped, order.Batched))
			cmd, err := commands.NewResendSettlementCommand(s.ID())
			require.NoError(t, err)

			settlements := new(MockSettlementRepository)
			uow := new(MockUoW)
			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("SettlementRepository").Return(settlements).Once()
			settlements.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			handler := commands.NewResendSettlementCommandHandler(factory, testComposer(t), nil, discardLogger())
			_, err = handler.Handle(ctx, cmd)

			require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
			assert.Equal(t, status, s.Status())
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestNewResendSettlementCommand_RejectsZeroID(t *testing.T) {
	_, err := commands.NewResendSettlementCommand(kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
