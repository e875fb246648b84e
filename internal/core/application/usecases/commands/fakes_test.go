package commands_test

import (
	"context"
	"sort"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// store is an in-memory backing for the fake repositories. Handlers that
// run multi-phase pipelines create several units of work per call, so the
// fakes share state through the store the way real repositories share a
// database.
type store struct {
	orders    map[string]*order.Order
	boxes     map[string]*box.Box
	shipments map[string]*shipment.Shipment
	printJobs map[string]*printjob.PrintJob
	customers map[string]*customer.Customer
	sales     map[string]*sale.SaleRecord
	products  map[string]*product.Product

	deductions map[string]int

	commits   int
	rollbacks int
}

func newStore() *store {
	return &store{
		orders:     map[string]*order.Order{},
		boxes:      map[string]*box.Box{},
		shipments:  map[string]*shipment.Shipment{},
		printJobs:  map[string]*printjob.PrintJob{},
		customers:  map[string]*customer.Customer{},
		sales:      map[string]*sale.SaleRecord{},
		products:   map[string]*product.Product{},
		deductions: map[string]int{},
	}
}

type fakeUoW struct{ s *store }

func (u *fakeUoW) Begin(context.Context) error    { return nil }
func (u *fakeUoW) Commit(context.Context) error   { u.s.commits++; return nil }
func (u *fakeUoW) Rollback(context.Context) error { u.s.rollbacks++; return nil }

func (u *fakeUoW) OrderRepository() ports.OrderRepository       { return &fakeOrderRepo{u.s} }
func (u *fakeUoW) BoxRepository() ports.BoxRepository           { return &fakeBoxRepo{u.s} }
func (u *fakeUoW) ShipmentRepository() ports.ShipmentRepository { return &fakeShipmentRepo{u.s} }
func (u *fakeUoW) PrintJobRepository() ports.PrintJobRepository { return &fakePrintJobRepo{u.s} }
func (u *fakeUoW) CustomerRepository() ports.CustomerRepository { return &fakeCustomerRepo{u.s} }
func (u *fakeUoW) SaleRepository() ports.SaleRepository         { return &fakeSaleRepo{u.s} }
func (u *fakeUoW) ProductRepository() ports.ProductRepository   { return &fakeProductRepo{u.s} }

// Typed factories over the same store; one per composite the handlers need.
type orderUoWFactory struct{ s *store }

func (f orderUoWFactory) Create() commands.OrderUoW { return &fakeUoW{f.s} }

type printQueueUoWFactory struct{ s *store }

func (f printQueueUoWFactory) Create() commands.PrintQueueUoW { return &fakeUoW{f.s} }

type fulfillmentUoWFactory struct{ s *store }

func (f fulfillmentUoWFactory) Create() commands.FulfillmentUoW { return &fakeUoW{f.s} }

type completionUoWFactory struct{ s *store }

func (f completionUoWFactory) Create() commands.CompletionUoW { return &fakeUoW{f.s} }

type fakeOrderRepo struct{ s *store }

func (r *fakeOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.s.orders[o.ID().String()] = o
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.s.orders[o.ID().String()] = o
	return nil
}

func (r *fakeOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return o, nil
}

func (r *fakeOrderRepo) GetByShopOrderID(_ context.Context, shopOrderID string) (*order.Order, error) {
	for _, o := range r.s.orders {
		if o.ShopOrderID() == shopOrderID {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shopOrderID", shopOrderID)
}

func (r *fakeOrderRepo) GetAllInImportedStatus(context.Context) ([]*order.Order, error) {
	var result []*order.Order
	for _, o := range r.s.orders {
		if o.Status() == order.Imported {
			result = append(result, o)
		}
	}
	return result, nil
}

type fakeBoxRepo struct{ s *store }

func (r *fakeBoxRepo) Add(_ context.Context, b *box.Box) error {
	r.s.boxes[b.ID().String()] = b
	return nil
}

func (r *fakeBoxRepo) Update(_ context.Context, b *box.Box) error {
	r.s.boxes[b.ID().String()] = b
	return nil
}

func (r *fakeBoxRepo) Get(_ context.Context, id kernel.UUID) (*box.Box, error) {
	b, ok := r.s.boxes[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("boxID", id)
	}
	return b, nil
}

func (r *fakeBoxRepo) GetAllActive(context.Context) ([]*box.Box, error) {
	var result []*box.Box
	for _, b := range r.s.boxes {
		if b.Active() {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Priority() < result[j].Priority() })
	return result, nil
}

type fakeShipmentRepo struct{ s *store }

func (r *fakeShipmentRepo) Add(_ context.Context, sh *shipment.Shipment) error {
	r.s.shipments[sh.ID().String()] = sh
	return nil
}

func (r *fakeShipmentRepo) Update(_ context.Context, sh *shipment.Shipment) error {
	r.s.shipments[sh.ID().String()] = sh
	return nil
}

func (r *fakeShipmentRepo) Get(_ context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	sh, ok := r.s.shipments[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipmentID", id)
	}
	return sh, nil
}

type fakePrintJobRepo struct{ s *store }

func (r *fakePrintJobRepo) Add(_ context.Context, j *printjob.PrintJob) error {
	r.s.printJobs[j.ID().String()] = j
	return nil
}

func (r *fakePrintJobRepo) Update(_ context.Context, j *printjob.PrintJob) error {
	r.s.printJobs[j.ID().String()] = j
	return nil
}

func (r *fakePrintJobRepo) Get(_ context.Context, id kernel.UUID) (*printjob.PrintJob, error) {
	j, ok := r.s.printJobs[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("printJobID", id)
	}
	return j, nil
}

func (r *fakePrintJobRepo) GetByShipmentID(_ context.Context, shipmentID kernel.UUID) (*printjob.PrintJob, error) {
	for _, j := range r.s.printJobs {
		if j.ShipmentID().IsEqual(shipmentID) {
			return j, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shipmentID", shipmentID)
}

func (r *fakePrintJobRepo) ClaimQueued(
	_ context.Context,
	agent string,
	limit int,
	lease time.Duration,
	now time.Time,
) ([]*printjob.PrintJob, error) {
	all := make([]*printjob.PrintJob, 0, len(r.s.printJobs))
	for _, j := range r.s.printJobs {
		all = append(all, j)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt().Before(all[j].CreatedAt()) })

	var claimed []*printjob.PrintJob
	for _, j := range all {
		if len(claimed) >= limit {
			break
		}
		if j.State() == printjob.StateQueued || j.ClaimExpired(now, lease) {
			if err := j.Claim(agent, now, lease); err != nil {
				return nil, err
			}
			claimed = append(claimed, j)
		}
	}
	return claimed, nil
}

func (r *fakePrintJobRepo) GetExpiredClaims(
	_ context.Context,
	lease time.Duration,
	now time.Time,
) ([]*printjob.PrintJob, error) {
	var expired []*printjob.PrintJob
	for _, j := range r.s.printJobs {
		if j.ClaimExpired(now, lease) {
			expired = append(expired, j)
		}
	}
	return expired, nil
}

type fakeCustomerRepo struct{ s *store }

func (r *fakeCustomerRepo) Add(_ context.Context, c *customer.Customer) error {
	r.s.customers[c.ID().String()] = c
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	r.s.customers[c.ID().String()] = c
	return nil
}

func (r *fakeCustomerRepo) Get(_ context.Context, id kernel.UUID) (*customer.Customer, error) {
	c, ok := r.s.customers[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("customerID", id)
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetByExternalID(_ context.Context, externalID string) (*customer.Customer, error) {
	for _, c := range r.s.customers {
		if c.ExternalID() == externalID {
			return c, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("externalID", externalID)
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*customer.Customer, error) {
	for _, c := range r.s.customers {
		if c.NormalizedEmail() == customer.NormalizeEmail(email) {
			return c, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("email", email)
}

type fakeSaleRepo struct{ s *store }

func (r *fakeSaleRepo) Add(_ context.Context, sr *sale.SaleRecord) error {
	r.s.sales[sr.ID().String()] = sr
	return nil
}

func (r *fakeSaleRepo) Get(_ context.Context, id kernel.UUID) (*sale.SaleRecord, error) {
	sr, ok := r.s.sales[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("saleRecordID", id)
	}
	return sr, nil
}

type fakeProductRepo struct{ s *store }

func (r *fakeProductRepo) Add(_ context.Context, p *product.Product) error {
	r.s.products[p.ID().String()] = p
	return nil
}

func (r *fakeProductRepo) Get(_ context.Context, id kernel.UUID) (*product.Product, error) {
	p, ok := r.s.products[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("productID", id)
	}
	return p, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*product.Product, error) {
	for _, p := range r.s.products {
		if p.SKU() == sku {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("sku", sku)
}

func (r *fakeProductRepo) DeductStock(_ context.Context, id kernel.UUID, quantity int) error {
	p, ok := r.s.products[id.String()]
	if !ok {
		return errs.NewObjectNotFoundError("productID", id)
	}
	if err := p.DeductStock(quantity); err != nil {
		return err
	}
	r.s.deductions[p.SKU()] += quantity
	return nil
}

// fakeRateProvider returns a fixed quote or a fixed error.
type fakeRateProvider struct {
	rates []shipment.Rate
	err   error

	requests []ports.RateRequest
}

func (f *fakeRateProvider) GetRates(_ context.Context, req ports.RateRequest) ([]shipment.Rate, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

// fakeLabelRenderer returns a fixed label or a fixed error.
type fakeLabelRenderer struct {
	label shipment.Label
	err   error

	purchased []shipment.Rate
}

func (f *fakeLabelRenderer) PurchaseLabel(_ context.Context, rate shipment.Rate) (shipment.Label, error) {
	f.purchased = append(f.purchased, rate)
	if f.err != nil {
		return shipment.Label{}, f.err
	}
	return f.label, nil
}
