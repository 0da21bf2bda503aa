package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transitionFixture struct {
	repo    *MockOrderRepository
	outbox  *MockNotificationOutbox
	uow     *MockUoW
	factory *MockUoWFactory
	flusher *MockFlusher
	handler commands.TransitionOrderStatusCommandHandler
}

func newTransitionFixture(t *testing.T) *transitionFixture {
	f := &transitionFixture{
		repo:    new(MockOrderRepository),
		outbox:  new(MockNotificationOutbox),
		uow:     new(MockUoW),
		factory: new(MockUoWFactory),
		flusher: new(MockFlusher),
	}
	f.handler = commands.NewTransitionOrderStatusCommandHandler(f.factory, testComposer(t), f.flusher, discardLogger())
	return f
}

func (f *transitionFixture) assertExpectations(t *testing.T) {
	f.factory.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.repo.AssertExpectations(t)
	f.outbox.AssertExpectations(t)
	f.flusher.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_ShippedNotifiesAfterCommit(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newTransitionFixture(t)
	o := restoredOrder(t, order.ReceivedByPrinter, order.Unbatched)
	cmd, err := commands.NewTransitionOrderStatusCommand(o.ID(), order.Shipped, order.Shipment{TrackingNumber: "1Z9", Carrier: "UPS"})
	require.NoError(t, err)

	var enqueued []ports.Notification
	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.repo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("NotificationOutbox").Return(f.outbox).Once(),
		f.outbox.On("Enqueue", ctx, mock.MatchedBy(func(n ports.Notification) bool {
			enqueued = append(enqueued, n)
			return true
		})).Return(true, nil).Twice(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.flusher.On("Flush", ctx, []string{
			"order:" + o.ID().String() + ":SHIPPED:customer",
			"order:" + o.ID().String() + ":SHIPPED:admin",
		}).Return(nil).Once(),
	)
	f.uow.On("Rollback", ctx).Return(nil).Once()

	// Act
	got, err := f.handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Shipped, got.Status())
	require.NotNil(t, got.TrackingNumber())
	assert.Equal(t, "1Z9", *got.TrackingNumber())
	require.Len(t, enqueued, 2)
	assert.Equal(t, "buyer@example.com", enqueued[0].To)
	assert.Contains(t, enqueued[0].Body, "ups.com")
	f.assertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_NotificationFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	o := restoredOrder(t, order.Shipped, order.Batched)
	cmd, err := commands.NewTransitionOrderStatusCommand(o.ID(), order.Delivered, order.Shipment{})
	require.NoError(t, err)

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.repo.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("NotificationOutbox").Return(f.outbox).Once()
	f.outbox.On("Enqueue", ctx, mock.Anything).Return(true, nil).Twice()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.flusher.On("Flush", ctx, mock.Anything).
		Return(errs.NewNotificationError("order:x:DELIVERED:customer", errors.New("smtp 421"))).Once()

	got, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, got.Status())
	f.assertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_RepeatIsNoOp(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	o := restoredOrder(t, order.Shipped, order.Unbatched)
	cmd, err := commands.NewTransitionOrderStatusCommand(o.ID(), order.Shipped, order.Shipment{TrackingNumber: "LATE1"})
	require.NoError(t, err)

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.repo.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	got, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Shipped, got.Status())
	assert.Equal(t, "LATE1", *got.TrackingNumber())
	f.uow.AssertNotCalled(t, "NotificationOutbox")
	f.flusher.AssertNotCalled(t, "Flush", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_AlreadyQueuedIsNotFlushed(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	o := restoredOrder(t, order.Shipped, order.Unbatched)
	cmd, err := commands.NewTransitionOrderStatusCommand(o.ID(), order.Cancelled, order.Shipment{})
	require.NoError(t, err)

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.repo.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("NotificationOutbox").Return(f.outbox).Once()
	f.outbox.On("Enqueue", ctx, mock.Anything).Return(false, nil).Twice()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	f.flusher.AssertNotCalled(t, "Flush", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_SilentStatuses(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	o := restoredOrder(t, order.Paid, order.Unbatched)
	cmd, err := commands.NewTransitionOrderStatusCommand(o.ID(), order.LabelPurchased, order.Shipment{})
	require.NoError(t, err)

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.repo.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("NotificationOutbox").Return(f.outbox).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	got, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.LabelPurchased, got.Status())
	f.outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	f.flusher.AssertNotCalled(t, "Flush", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_Failures(t *testing.T) {
	t.Run("illegal transition leaves the order untouched", func(t *testing.T) {
		ctx := t.Context()
		f := newTransitionFixture(t)
		o := restoredOrder(t, order.Delivered, order.Unbatched)
		cmd, err := commands.NewTransitionOrderStatusCommand(o.ID(), order.Shipped, order.Shipment{})
		require.NoError(t, err)

		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.uow.On("OrderRepository").Return(f.repo).Once()
		f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()

		_, err = f.handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		assert.Equal(t, order.Delivered, o.Status())
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		ctx := t.Context()
		f := newTransitionFixture(t)
		o := restoredOrder(t, order.Paid, order.Unbatched)
		cmd, err := commands.NewTransitionOrderStatusCommand(o.ID(), order.LabelPurchased, order.Shipment{})
		require.NoError(t, err)

		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.uow.On("OrderRepository").Return(f.repo).Once()
		f.repo.On("GetForUpdate", ctx, o.ID()).
			Return((*order.Order)(nil), errs.NewObjectNotFoundError("order", o.ID().String())).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()

		_, err = f.handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		f.assertExpectations(t)
	})

	t.Run("persistence failure aborts before any notification", func(t *testing.T) {
		ctx := t.Context()
		f := newTransitionFixture(t)
		o := restoredOrder(t, order.ReceivedByPrinter, order.Unbatched)
		cmd, err := commands.NewTransitionOrderStatusCommand(o.ID(), order.Shipped, order.Shipment{})
		require.NoError(t, err)

		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.uow.On("OrderRepository").Return(f.repo).Once()
		f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		f.repo.On("Update", ctx, o).Return(errs.NewPersistenceError("update order", errors.New("disk full"))).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()

		_, err = f.handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPersistence)
		f.uow.AssertNotCalled(t, "NotificationOutbox")
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.flusher.AssertNotCalled(t, "Flush", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})
}
