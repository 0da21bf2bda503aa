package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetManyForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListUnbatchedBillable(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockSettlementRepository struct{ mock.Mock }

func (m *MockSettlementRepository) Add(ctx context.Context, s *settlement.Settlement) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettlementRepository) UpdateStatus(ctx context.Context, s *settlement.Settlement) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettlementRepository) Get(ctx context.Context, id kernel.UUID) (*settlement.Settlement, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*settlement.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*settlement.Settlement, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*settlement.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) List(ctx context.Context, f ports.SettlementFilter) ([]*settlement.Settlement, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*settlement.Settlement), args.Error(1)
}

type MockPrinterActionRepository struct{ mock.Mock }

func (m *MockPrinterActionRepository) Append(ctx context.Context, a settlement.PrinterAction) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockPrinterActionRepository) ListBySettlement(
	ctx context.Context,
	id kernel.UUID,
) ([]settlement.PrinterAction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]settlement.PrinterAction), args.Error(1)
}

type MockNotificationOutbox struct{ mock.Mock }

func (m *MockNotificationOutbox) Enqueue(ctx context.Context, n ports.Notification) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationOutbox) ClaimDue(
	ctx context.Context,
	now time.Time,
	limit int,
	keys []string,
) ([]ports.OutboxEntry, error) {
	args := m.Called(ctx, now, limit, keys)
	return args.Get(0).([]ports.OutboxEntry), args.Error(1)
}

func (m *MockNotificationOutbox) MarkSent(ctx context.Context, id kernel.UUID, sentAt time.Time) error {
	args := m.Called(ctx, id, sentAt)
	return args.Error(0)
}

func (m *MockNotificationOutbox) MarkFailed(
	ctx context.Context,
	id kernel.UUID,
	lastError string,
	nextAttemptAt *time.Time,
) error {
	args := m.Called(ctx, id, lastError, nextAttemptAt)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockFlusher struct{ mock.Mock }

func (m *MockFlusher) Flush(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) ObserveNotification(recipient, outcome string) {
	m.Called(recipient, outcome)
}

// MockUoW satisfies every unit of work family in the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) SettlementRepository() ports.SettlementRepository {
	args := m.Called()
	return args.Get(0).(ports.SettlementRepository)
}

func (m *MockUoW) PrinterActionRepository() ports.PrinterActionRepository {
	args := m.Called()
	return args.Get(0).(ports.PrinterActionRepository)
}

func (m *MockUoW) NotificationOutbox() ports.NotificationOutbox {
	args := m.Called()
	return args.Get(0).(ports.NotificationOutbox)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}
