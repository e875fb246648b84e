package cmd

import (
	"strings"
	"time"

	inhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/shippo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"

	"log/slog"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config       Config
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	shippoClient *shippo.Client
	logger       *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	shippoClient, err := shippo.NewClient(shippo.Config{
		BaseURL: config.ShippoBaseURL,
		APIKey:  config.ShippoAPIKey,
		Sender: shippo.SenderAddress{
			Name:  config.SenderName,
			Phone: config.SenderPhone,
			Email: config.SenderEmail,
			Address: kernel.Address{
				Line1:   config.SenderLine1,
				Line2:   config.SenderLine2,
				City:    config.SenderCity,
				State:   config.SenderState,
				Zip:     config.SenderZip,
				Country: config.SenderCountry,
			},
		},
		Logger: logger,
	})
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:       config,
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		shippoClient: shippoClient,
		logger:       logger,
	}, nil
}

func (c *CompositionRoot) claimLease() time.Duration {
	return time.Duration(c.config.ClaimLeaseSeconds) * time.Second
}

func (c *CompositionRoot) excludedServices() []services.ExcludedService {
	var excluded []services.ExcludedService
	for _, entry := range strings.Split(c.config.ExcludedServices, ",") {
		carrier, service, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok {
			continue
		}
		excluded = append(excluded, services.ExcludedService{
			Carrier: strings.TrimSpace(carrier),
			Service: strings.TrimSpace(service),
		})
	}
	return excluded
}

func (c *CompositionRoot) CreateImportOrderCommandHandler() commands.ImportOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateFulfillOrderCommandHandler() commands.FulfillOrderCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFulfillOrderCommandHandler(
		f,
		c.shippoClient,
		c.shippoClient,
		services.NewBoxSelector(),
		services.NewRateShopper(c.excludedServices()),
	)
}

func (c *CompositionRoot) CreateClaimPrintJobsCommandHandler() commands.ClaimPrintJobsCommandHandler {
	var f commands.PrintQueueUoWFactory = FuncPrintQueueUoWFactory(func() commands.PrintQueueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimPrintJobsCommandHandler(f, c.claimLease())
}

func (c *CompositionRoot) CreateCompletePrintJobCommandHandler() commands.CompletePrintJobCommandHandler {
	var f commands.CompletionUoWFactory = FuncCompletionUoWFactory(func() commands.CompletionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompletePrintJobCommandHandler(f, c.config.PrintMaxAttempts)
}

func (c *CompositionRoot) CreateRetryPrintJobCommandHandler() commands.RetryPrintJobCommandHandler {
	var f commands.PrintQueueUoWFactory = FuncPrintQueueUoWFactory(func() commands.PrintQueueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRetryPrintJobCommandHandler(f)
}

func (c *CompositionRoot) CreateReleaseStaleClaimsCommandHandler() commands.ReleaseStaleClaimsCommandHandler {
	var f commands.PrintQueueUoWFactory = FuncPrintQueueUoWFactory(func() commands.PrintQueueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseStaleClaimsCommandHandler(f, c.claimLease(), c.config.PrintMaxAttempts)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkOrderShippedCommandHandler() commands.MarkOrderShippedCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderShippedCommandHandler(f)
}

func (c *CompositionRoot) CreateGetFailedOrdersQueryHandler() queries.GetFailedOrdersQueryHandler {
	return queries.NewGetFailedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetImportedOrdersQueryHandler() queries.GetImportedOrdersQueryHandler {
	return queries.NewGetImportedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPrintJobsQueryHandler() queries.GetPrintJobsQueryHandler {
	return queries.NewGetPrintJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *inhttp.Server {
	return inhttp.NewServer(
		c.CreateImportOrderCommandHandler(),
		c.CreateFulfillOrderCommandHandler(),
		c.CreateClaimPrintJobsCommandHandler(),
		c.CreateCompletePrintJobCommandHandler(),
		c.CreateRetryPrintJobCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateMarkOrderShippedCommandHandler(),
		c.CreateGetFailedOrdersQueryHandler(),
		c.CreateGetImportedOrdersQueryHandler(),
		c.CreateGetPrintJobsQueryHandler(),
		c.config.AgentAPIKey,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetImportedOrdersQueryHandler(),
		c.CreateFulfillOrderCommandHandler(),
		c.CreateReleaseStaleClaimsCommandHandler(),
		c.config.AutoFulfill,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPrintQueueUoWFactory func() commands.PrintQueueUoW

func (f FuncPrintQueueUoWFactory) Create() commands.PrintQueueUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncCompletionUoWFactory func() commands.CompletionUoW

func (f FuncCompletionUoWFactory) Create() commands.CompletionUoW {
	return f()
}
