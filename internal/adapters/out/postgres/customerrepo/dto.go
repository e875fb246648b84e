// Package customerrepo persists customer records upserted during
// post-fulfillment bookkeeping.
package customerrepo

import (
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure for persisting customers.
// NormalizedEmail stores the lowercased trimmed form used for lookups so
// matching stays case-insensitive without per-query LOWER scans.
type CustomerDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ExternalID      string     `gorm:"index"`
	Name            string     ``
	Email           string     ``
	NormalizedEmail string     `gorm:"index"`
	Phone           string     ``
	Address         AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

// AddressDTO represents the embedded mailing address within the customer row.
type AddressDTO struct {
	Line1   string
	Line2   string
	City    string
	State   string
	Zip     string
	Country string
}

func fromDomain(c *customer.Customer) CustomerDTO {
	addr := c.Address()
	return CustomerDTO{
		ID:              c.ID().Bytes(),
		ExternalID:      c.ExternalID(),
		Name:            c.Name(),
		Email:           c.Email(),
		NormalizedEmail: c.NormalizedEmail(),
		Phone:           c.Phone(),
		Address: AddressDTO{
			Line1:   addr.Line1,
			Line2:   addr.Line2,
			City:    addr.City,
			State:   addr.State,
			Zip:     addr.Zip,
			Country: addr.Country,
		},
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(
		id,
		dto.ExternalID,
		dto.Name,
		dto.Email,
		dto.Phone,
		kernel.Address{
			Line1:   dto.Address.Line1,
			Line2:   dto.Address.Line2,
			City:    dto.Address.City,
			State:   dto.Address.State,
			Zip:     dto.Address.Zip,
			Country: dto.Address.Country,
		},
	)
}
