package customer

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through the NewCustomer or RestoreCustomer factory functions.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// NormalizeEmail lowercases and trims an email for matching. Customers
// without a shop external ID are matched by this normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Customer is the durable customer record built up from order payloads.
// It is keyed by the shop's external customer ID when present, otherwise
// by normalized email. Later orders refresh the record but never blank
// out fields the payload omitted.
type Customer struct {
	id         kernel.UUID
	externalID string
	name       string
	email      string
	phone      string
	address    kernel.Address

	isConstructed bool
}

// NewCustomer creates a customer record. At least one of externalID and
// email is required so the record stays matchable.
func NewCustomer(
	id kernel.UUID,
	externalID string,
	name string,
	email string,
	phone string,
	address kernel.Address,
) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(externalID) == "" && NormalizeEmail(email) == "" {
		return nil, errs.NewValueIsRequiredError("externalID or email")
	}

	return &Customer{
		id:            id,
		externalID:    externalID,
		name:          name,
		email:         email,
		phone:         phone,
		address:       address,
		isConstructed: true,
	}, nil
}

// RestoreCustomer reconstructs a Customer from persistence.
// Used only by repository implementations.
func RestoreCustomer(
	id kernel.UUID,
	externalID string,
	name string,
	email string,
	phone string,
	address kernel.Address,
) (*Customer, error) {
	return NewCustomer(id, externalID, name, email, phone, address)
}

// Validate ensures the Customer was constructed through a factory function.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}

	return nil
}

// ID returns the unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// ExternalID returns the shop-assigned customer ID, possibly empty.
func (c *Customer) ExternalID() string {
	return c.externalID
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Email returns the stored email as received.
func (c *Customer) Email() string {
	return c.email
}

// NormalizedEmail returns the email form used for matching.
func (c *Customer) NormalizedEmail() string {
	return NormalizeEmail(c.email)
}

// Phone returns the customer's phone number, possibly empty.
func (c *Customer) Phone() string {
	return c.phone
}

// Address returns the last known shipping address.
func (c *Customer) Address() kernel.Address {
	return c.address
}

// Merge refreshes the record from a newer order payload. Non-empty values
// overwrite; empty values keep what the record already holds, so a
// payload that omits a phone number never erases a known one.
func (c *Customer) Merge(externalID, name, email, phone string, address kernel.Address) {
	if strings.TrimSpace(externalID) != "" {
		c.externalID = externalID
	}
	if strings.TrimSpace(name) != "" {
		c.name = name
	}
	if NormalizeEmail(email) != "" {
		c.email = email
	}
	if strings.TrimSpace(phone) != "" {
		c.phone = phone
	}
	if !address.IsZero() {
		c.address = address
	}
}
