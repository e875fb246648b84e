package postgres

import (
	"fulfillment/internal/adapters/out/postgres/boxrepo"
	"fulfillment/internal/adapters/out/postgres/customerrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/printjobrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/salerepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date for every persisted aggregate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&boxrepo.BoxDTO{},
		&shipmentrepo.ShipmentDTO{},
		&printjobrepo.PrintJobDTO{},
		&customerrepo.CustomerDTO{},
		&salerepo.SaleRecordDTO{},
		&productrepo.ProductDTO{},
	)
}
