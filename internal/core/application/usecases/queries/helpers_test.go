package queries_test

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repositories' aggregate tracker without
// recording anything. Query tests only need the rows written.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// startPostgres boots a disposable database and returns the container plus
// an open connection.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
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
	if err != nil {
		return nil, nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	return container, db, nil
}

// newTestOrder builds an imported order with a single shippable line.
func newTestOrder(shopOrderID, name string) (*order.Order, error) {
	weight, err := kernel.NewWeightGrams(250)
	if err != nil {
		return nil, err
	}

	line, err := order.NewLine("MUG-11", "Mug", 2, 10, weight, true)
	if err != nil {
		return nil, err
	}

	return order.NewOrder(
		kernel.NewUUID(),
		shopOrderID,
		name,
		order.CustomerInfo{Name: "Sam Lee", Email: "sam@example.com"},
		[]order.Line{line},
	)
}
