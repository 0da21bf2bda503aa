package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsItemsAndTotals() {
	ctx := context.Background()
	fee := int64(700)
	o := suite.newOrder(&fee, time.Now().UTC())

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(got.ID().IsEqual(o.ID()))
	suite.Equal(order.Paid, got.Status())
	suite.Equal(order.Unbatched, got.PayableStatus())
	suite.Equal("buyer@example.com", got.Email().String())
	suite.Equal(o.Totals(), got.Totals())
	suite.Require().NotNil(got.BasePrinterFeeCents())
	suite.Equal(int64(700), *got.BasePrinterFeeCents())
	suite.Nil(got.TrackingNumber())

	items := got.Items()
	suite.Require().Len(items, 2)
	suite.Equal("Tee", items[0].Description())
	suite.Equal(2, items[0].Qty())
	suite.Equal("Hoodie", items[1].Description())
	suite.Equal(int64(900), items[1].PrintCostCentsSnapshot())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsAlreadyExists() {
	ctx := context.Background()
	o := suite.newOrder(nil, time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.repository.Add(ctx, o)

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder_IsRejected() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesStatusShipmentAndPayable() {
	ctx := context.Background()
	now := time.Now().UTC()
	o := suite.newOrder(nil, now)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err := o.TransitionTo(order.LabelPurchased, order.Shipment{TrackingNumber: "1Z999", Carrier: "ups"}, now)
	suite.Require().NoError(err)
	suite.Require().NoError(o.MarkBatched(now))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.LabelPurchased, got.Status())
	suite.Equal(order.Batched, got.PayableStatus())
	suite.Require().NotNil(got.TrackingNumber())
	suite.Equal("1Z999", *got.TrackingNumber())
	suite.Equal("ups", *got.Carrier())
	suite.Len(got.Items(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder(nil, time.Now().UTC()))

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetManyForUpdate_ReturnsRequestOrder() {
	ctx := context.Background()
	now := time.Now().UTC()
	first := suite.newOrder(nil, now)
	second := suite.newOrder(nil, now)
	third := suite.newOrder(nil, now)
	for _, o := range []*order.Order{first, second, third} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		repo := orderrepo.NewGormOrderRepository(tx, nil)
		got, getErr := repo.GetManyForUpdate(ctx, []kernel.UUID{third.ID(), first.ID(), second.ID()})
		suite.Require().NoError(getErr)
		suite.Require().Len(got, 3)
		suite.True(got[0].ID().IsEqual(third.ID()))
		suite.True(got[1].ID().IsEqual(first.ID()))
		suite.True(got[2].ID().IsEqual(second.ID()))
		suite.Len(got[0].Items(), 2)
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetManyForUpdate_MissingOrder_ReturnsNotFound() {
	ctx := context.Background()
	o := suite.newOrder(nil, time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err := suite.repository.GetManyForUpdate(ctx, []kernel.UUID{o.ID(), kernel.NewUUID()})

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListUnbatchedBillable_FiltersAndOrders() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	paidOnly := suite.newOrder(nil, base)
	older := suite.newOrderWithStatus(order.Shipped, base.Add(time.Minute))
	newer := suite.newOrderWithStatus(order.LabelPurchased, base.Add(2*time.Minute))
	cancelled := suite.newOrderWithStatus(order.Cancelled, base.Add(3*time.Minute))
	batched := suite.newOrderWithStatus(order.Delivered, base.Add(4*time.Minute))
	suite.Require().NoError(batched.MarkBatched(base))

	for _, o := range []*order.Order{paidOnly, newer, older, cancelled, batched} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	got, err := suite.repository.ListUnbatchedBillable(ctx, 0)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.True(got[0].ID().IsEqual(older.ID()))
	suite.True(got[1].ID().IsEqual(newer.ID()))

	limited, err := suite.repository.ListUnbatchedBillable(ctx, 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(fee *int64, now time.Time) *order.Order {
	tee, err := order.NewItem("Tee", 2, 300, 200)
	suite.Require().NoError(err)
	hoodie, err := order.NewItem("Hoodie", 1, 1200, 900)
	suite.Require().NoError(err)
	email, err := kernel.NewEmail("buyer@example.com")
	suite.Require().NoError(err)

	o, err := order.NewPaidOrder(kernel.NewUUID(), email, order.Totals{
		SubtotalCents: 4000,
		ShippingCents: 500,
		TaxCents:      320,
		TotalCents:    4820,
	}, fee, []order.Item{tee, hoodie}, now)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrderWithStatus(status order.Status, createdAt time.Time) *order.Order {
	o := suite.newOrder(nil, createdAt)
	restored, err := order.RestoreOrder(o.ID(), status, o.Email(), nil, nil, nil, order.Unbatched,
		o.Totals(), o.Items(), createdAt, createdAt)
	suite.Require().NoError(err)
	return restored
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
