package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/printjobrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/printjob"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type GetPrintJobsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetPrintJobsQueryHandler
	repo      *printjobrepo.GormPrintJobRepository
}

func (suite *GetPrintJobsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, db, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&printjobrepo.PrintJobDTO{}))

	suite.handler = queries.NewGetPrintJobsQueryHandler(db)
	suite.repo = printjobrepo.NewGormPrintJobRepository(db, noopTracker{})
}

func (suite *GetPrintJobsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE print_jobs").Error)
}

func (suite *GetPrintJobsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedJob persists a job restored directly into the given state.
func (suite *GetPrintJobsQueryHandlerTestSuite) seedJob(
	state printjob.State,
	claimedBy string,
	attempts int,
	errorDetail string,
	createdAt time.Time,
) *printjob.PrintJob {
	var claimedAt *time.Time
	if claimedBy != "" {
		claimedAt = &createdAt
	}

	job, err := printjob.RestorePrintJob(printjob.RestorePrintJobParams{
		ID:          kernel.NewUUID(),
		OrderID:     kernel.NewUUID(),
		ShipmentID:  kernel.NewUUID(),
		State:       state,
		ClaimedBy:   claimedBy,
		ClaimedAt:   claimedAt,
		Attempts:    attempts,
		ErrorDetail: errorDetail,
		CreatedAt:   createdAt,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), job))
	return job
}

func (suite *GetPrintJobsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	ctx := context.Background()

	query, err := queries.NewGetPrintJobsQuery(printjob.StateUnknown)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetPrintJobsQueryHandlerTestSuite) TestHandle_ReturnsAllJobsNewestFirst() {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	oldest := suite.seedJob(printjob.StateQueued, "", 0, "", base)
	newest := suite.seedJob(printjob.StateClaimed, "agent-1", 1, "", base.Add(2*time.Minute))
	middle := suite.seedJob(printjob.StateFailed, "", 3, "printer jammed", base.Add(time.Minute))

	query, err := queries.NewGetPrintJobsQuery(printjob.StateUnknown)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(newest.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)
	suite.Equal(oldest.ID(), result[2].ID)

	suite.Equal("Claimed", result[0].State)
	suite.Equal("agent-1", result[0].ClaimedBy)
	suite.Equal(1, result[0].Attempts)

	suite.Equal("Failed", result[1].State)
	suite.Equal("printer jammed", result[1].ErrorDetail)
	suite.Equal(3, result[1].Attempts)
}

func (suite *GetPrintJobsQueryHandlerTestSuite) TestHandle_FiltersByState() {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	suite.seedJob(printjob.StateQueued, "", 0, "", base)
	failed := suite.seedJob(printjob.StateFailed, "", 3, "out of labels", base.Add(time.Minute))

	query, err := queries.NewGetPrintJobsQuery(printjob.StateFailed)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(failed.ID(), result[0].ID)
	suite.Equal(failed.OrderID(), result[0].OrderID)
}

func (suite *GetPrintJobsQueryHandlerTestSuite) TestHandle_NotConstructedQuery_ReturnsError() {
	ctx := context.Background()

	var query queries.GetPrintJobsQuery
	_, err := suite.handler.Handle(ctx, query)

	suite.Require().ErrorIs(err, queries.ErrGetPrintJobsQueryIsNotConstructed)
}

func TestGetPrintJobsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetPrintJobsQueryHandlerTestSuite))
}
