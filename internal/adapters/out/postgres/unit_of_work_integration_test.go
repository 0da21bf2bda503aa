package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/migrations"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a PostgreSQL schema built by
// the goose migrations.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(migrations.Up(ctx, sqlDB))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE notification_outbox, printer_actions, settlement_order_links, settlements, order_items, orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.SettlementRepository())
	suite.NotNil(uow1.PrinterActionRepository())
	suite.NotNil(uow1.NotificationOutbox())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction, "Rollback after commit is reported")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_BatchCommitsAtomically() {
	ctx := context.Background()
	now := time.Now().UTC()
	orders := suite.seedOrders(order.Shipped, 2)

	uow := suite.factory.CreateGorm()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.OrderRepository().GetManyForUpdate(ctx, ids(orders))
	suite.Require().NoError(err)
	s := suite.newSettlement(locked, now)
	suite.Require().NoError(uow.SettlementRepository().Add(ctx, s))
	for _, o := range locked {
		suite.Require().NoError(o.MarkBatched(now))
		suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	}
	inserted, err := uow.NotificationOutbox().Enqueue(ctx, ports.Notification{
		DedupeKey: "settlement:" + s.ID().String() + ":created",
		Recipient: ports.RecipientPrinter,
		To:        "printer@example.com",
		Subject:   "Settlement",
		Body:      "body",
	})
	suite.Require().NoError(err)
	suite.True(inserted)

	suite.Require().NoError(uow.Commit(ctx))
	suite.Len(uow.TrackedIDs(), 3)

	reader := suite.factory.Create()
	got, err := reader.SettlementRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Len(got.Links(), 2)
	for _, o := range orders {
		stored, getErr := reader.OrderRepository().Get(ctx, o.ID())
		suite.Require().NoError(getErr)
		suite.Equal(order.Batched, stored.PayableStatus())
	}
	suite.assertCount("notification_outbox", 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := context.Background()
	now := time.Now().UTC()
	orders := suite.seedOrders(order.Delivered, 3)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	s := suite.newSettlement(orders, now)
	suite.Require().NoError(uow.SettlementRepository().Add(ctx, s))
	suite.Require().NoError(orders[0].MarkBatched(now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, orders[0]))

	_, err := uow.SettlementRepository().Get(ctx, s.ID())
	suite.Require().NoError(err, "visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.SettlementRepository().Get(ctx, s.ID())
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)

	stored, err := reader.OrderRepository().Get(ctx, orders[0].ID())
	suite.Require().NoError(err)
	suite.Equal(order.Unbatched, stored.PayableStatus())
	suite.assertCount("settlement_order_links", 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderCannotJoinTwoSettlements() {
	ctx := context.Background()
	now := time.Now().UTC()
	orders := suite.seedOrders(order.Shipped, 1)

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(first.SettlementRepository().Add(ctx, suite.newSettlement(orders, now)))
	suite.Require().NoError(first.Commit(ctx))

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	err := second.SettlementRepository().Add(ctx, suite.newSettlement(orders, now))
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	suite.Require().NoError(second.Rollback(ctx))

	suite.assertCount("settlements", 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PaidCascadeWithAudit() {
	ctx := context.Background()
	now := time.Now().UTC()
	orders := suite.seedOrders(order.Delivered, 2)
	s := suite.newSettlement(orders, now)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.SettlementRepository().Add(ctx, s))
	for _, o := range orders {
		suite.Require().NoError(o.MarkBatched(now))
		suite.Require().NoError(setup.OrderRepository().Update(ctx, o))
	}
	suite.Require().NoError(setup.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.SettlementRepository().GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)
	audit, err := locked.Apply(settlement.ActionPaidInFull, kernel.NewUUID(), now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.SettlementRepository().UpdateStatus(ctx, locked))
	suite.Require().NoError(uow.PrinterActionRepository().Append(ctx, audit))
	linked, err := uow.OrderRepository().GetManyForUpdate(ctx, locked.OrderIDs())
	suite.Require().NoError(err)
	for _, o := range linked {
		suite.Require().NoError(o.MarkSettled(now))
		suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	}
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	got, err := reader.SettlementRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(settlement.Paid, got.Status())
	for _, o := range orders {
		stored, getErr := reader.OrderRepository().Get(ctx, o.ID())
		suite.Require().NoError(getErr)
		suite.Equal(order.Settled, stored.PayableStatus())
	}
	actions, err := reader.PrinterActionRepository().ListBySettlement(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().Len(actions, 1)
	suite.Equal(settlement.ActionPaidInFull, actions[0].Action())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	orders := suite.seedOrders(order.Paid, 1)

	uow := suite.factory.Create()
	got, err := uow.OrderRepository().Get(ctx, orders[0].ID())

	suite.Require().NoError(err)
	suite.Equal(order.Paid, got.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) seedOrders(status order.Status, n int) []*order.Order {
	ctx := context.Background()
	email, err := kernel.NewEmail("buyer@example.com")
	suite.Require().NoError(err)
	item, err := order.NewItem("Tee", 2, 300, 200)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	orders := make([]*order.Order, 0, n)
	now := time.Now().UTC()
	for range n {
		o, restoreErr := order.RestoreOrder(kernel.NewUUID(), status, email, nil, nil, nil, order.Unbatched,
			order.Totals{SubtotalCents: 2500, TotalCents: 2500}, []order.Item{item}, now, now)
		suite.Require().NoError(restoreErr)
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
		orders = append(orders, o)
	}
	suite.Require().NoError(uow.Commit(ctx))
	return orders
}

func (suite *UnitOfWorkIntegrationTestSuite) newSettlement(orders []*order.Order, now time.Time) *settlement.Settlement {
	email, err := kernel.NewEmail("printer@example.com")
	suite.Require().NoError(err)

	links := make([]settlement.Link, 0, len(orders))
	for _, o := range orders {
		l, linkErr := settlement.NewLink(o.ID(), 1500, settlement.Breakdown{BaseFeeCents: 500, AmountCents: 1500})
		suite.Require().NoError(linkErr)
		links = append(links, l)
	}
	s, err := settlement.NewSettlement(kernel.NewUUID(), email, "", links, now)
	suite.Require().NoError(err)
	return s
}

func (suite *UnitOfWorkIntegrationTestSuite) assertCount(table string, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	suite.Equal(expected, count)
}

func ids(orders []*order.Order) []kernel.UUID {
	result := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		result = append(result, o.ID())
	}
	return result
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
