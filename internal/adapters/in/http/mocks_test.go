package http_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"

	"github.com/stretchr/testify/mock"
)

type MockOrderRegistrar struct{ mock.Mock }

func (m *MockOrderRegistrar) Handle(ctx context.Context, cmd commands.RegisterPaidOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderTransitioner struct{ mock.Mock }

func (m *MockOrderTransitioner) Handle(ctx context.Context, cmd commands.TransitionOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockSettlementCreator struct{ mock.Mock }

func (m *MockSettlementCreator) Handle(
	ctx context.Context,
	cmd commands.CreateSettlementCommand,
) (commands.CreateSettlementResult, error) {
	args := m.Called(ctx, cmd)
	r, _ := args.Get(0).(commands.CreateSettlementResult)
	return r, args.Error(1)
}

type MockSettlementActionApplier struct{ mock.Mock }

func (m *MockSettlementActionApplier) Handle(
	ctx context.Context,
	cmd commands.ApplySettlementActionCommand,
) (*settlement.Settlement, error) {
	args := m.Called(ctx, cmd)
	s, _ := args.Get(0).(*settlement.Settlement)
	return s, args.Error(1)
}

type MockSettlementResender struct{ mock.Mock }

func (m *MockSettlementResender) Handle(
	ctx context.Context,
	cmd commands.ResendSettlementCommand,
) (*settlement.Settlement, error) {
	args := m.Called(ctx, cmd)
	s, _ := args.Get(0).(*settlement.Settlement)
	return s, args.Error(1)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(queries.GetOrderQueryResponse)
	return r, args.Error(1)
}

type MockSettlementLister struct{ mock.Mock }

func (m *MockSettlementLister) Handle(
	ctx context.Context,
	query queries.ListSettlementsQuery,
) ([]queries.SettlementSummaryView, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).([]queries.SettlementSummaryView)
	return r, args.Error(1)
}

type MockSettlementReader struct{ mock.Mock }

func (m *MockSettlementReader) Handle(
	ctx context.Context,
	query queries.GetSettlementQuery,
) (queries.GetSettlementQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(queries.GetSettlementQueryResponse)
	return r, args.Error(1)
}

type MockUnbatchedPayablesReader struct{ mock.Mock }

func (m *MockUnbatchedPayablesReader) Handle(
	ctx context.Context,
	query queries.GetUnbatchedPayablesQuery,
) (queries.GetUnbatchedPayablesQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(queries.GetUnbatchedPayablesQueryResponse)
	return r, args.Error(1)
}
