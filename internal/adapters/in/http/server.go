// Package http exposes the application over REST: the shop webhook, the
// operator API, and the poll/report endpoints the print agent calls.
package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultPollLimit = 5

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	importOrderHandler      commands.ImportOrderCommandHandler
	fulfillOrderHandler     commands.FulfillOrderCommandHandler
	claimPrintJobsHandler   commands.ClaimPrintJobsCommandHandler
	completePrintJobHandler commands.CompletePrintJobCommandHandler
	retryPrintJobHandler    commands.RetryPrintJobCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	markOrderShippedHandler commands.MarkOrderShippedCommandHandler

	getFailedOrdersHandler   queries.GetFailedOrdersQueryHandler
	getImportedOrdersHandler queries.GetImportedOrdersQueryHandler
	getPrintJobsHandler      queries.GetPrintJobsQueryHandler

	agentKey string
}

// NewServer creates the HTTP server. agentKey is the shared bearer token
// the print agent authenticates with.
func NewServer(
	importOrderHandler commands.ImportOrderCommandHandler,
	fulfillOrderHandler commands.FulfillOrderCommandHandler,
	claimPrintJobsHandler commands.ClaimPrintJobsCommandHandler,
	completePrintJobHandler commands.CompletePrintJobCommandHandler,
	retryPrintJobHandler commands.RetryPrintJobCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	markOrderShippedHandler commands.MarkOrderShippedCommandHandler,
	getFailedOrdersHandler queries.GetFailedOrdersQueryHandler,
	getImportedOrdersHandler queries.GetImportedOrdersQueryHandler,
	getPrintJobsHandler queries.GetPrintJobsQueryHandler,
	agentKey string,
) *Server {
	return &Server{
		importOrderHandler:       importOrderHandler,
		fulfillOrderHandler:      fulfillOrderHandler,
		claimPrintJobsHandler:    claimPrintJobsHandler,
		completePrintJobHandler:  completePrintJobHandler,
		retryPrintJobHandler:     retryPrintJobHandler,
		cancelOrderHandler:       cancelOrderHandler,
		markOrderShippedHandler:  markOrderShippedHandler,
		getFailedOrdersHandler:   getFailedOrdersHandler,
		getImportedOrdersHandler: getImportedOrdersHandler,
		getPrintJobsHandler:      getPrintJobsHandler,
		agentKey:                 agentKey,
	}
}

// RegisterRoutes wires every endpoint into the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/shopify/webhook/order", s.ImportOrder)

	api := e.Group("/api/v1")
	api.POST("/orders/:id/fulfill", s.FulfillOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/shipped", s.MarkOrderShipped)
	api.POST("/print-jobs/:id/retry", s.RetryPrintJob)
	api.GET("/orders/failed", s.GetFailedOrders)
	api.GET("/orders/imported", s.GetImportedOrders)
	api.GET("/print-jobs", s.GetPrintJobs)

	agent := e.Group("/print-agent", s.agentAuth)
	agent.GET("/poll", s.AgentPoll)
	agent.POST("/complete", s.AgentComplete)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ImportOrder handles POST /shopify/webhook/order. The shop order ID is
// the idempotency key; re-delivered webhooks update the stored order.
func (s *Server) ImportOrder(ctx echo.Context) error {
	var payload WebhookOrder
	if err := ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewImportOrderCommand(
		payload.ID,
		payload.Name,
		parseCustomer(payload),
		parseLines(payload.LineItems),
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.importOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ImportOrderResponse{OrderID: orderID.String()})
}

// FulfillOrder handles POST /api/v1/orders/:id/fulfill.
func (s *Server) FulfillOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewFulfillOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.fulfillOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkOrderShipped handles POST /api/v1/orders/:id/shipped.
func (s *Server) MarkOrderShipped(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewMarkOrderShippedCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.markOrderShippedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RetryPrintJob handles POST /api/v1/print-jobs/:id/retry.
func (s *Server) RetryPrintJob(ctx echo.Context) error {
	jobID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid print job id")
	}

	cmd, err := commands.NewRetryPrintJobCommand(jobID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.retryPrintJobHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetFailedOrders handles GET /api/v1/orders/failed.
func (s *Server) GetFailedOrders(ctx echo.Context) error {
	result, err := s.getFailedOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetFailedOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]FailedOrder, len(result))
	for i, row := range result {
		response[i] = FailedOrder{
			ID:            row.ID.String(),
			ShopOrderID:   row.ShopOrderID,
			Name:          row.Name,
			FailureKind:   row.FailureKind,
			FailureDetail: row.FailureDetail,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetImportedOrders handles GET /api/v1/orders/imported.
func (s *Server) GetImportedOrders(ctx echo.Context) error {
	result, err := s.getImportedOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetImportedOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ImportedOrder, len(result))
	for i, row := range result {
		response[i] = ImportedOrder{
			ID:          row.ID.String(),
			ShopOrderID: row.ShopOrderID,
			Name:        row.Name,
			LineCount:   row.LineCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPrintJobs handles GET /api/v1/print-jobs. An optional state query
// parameter (queued, claimed, done, failed) narrows the listing.
func (s *Server) GetPrintJobs(ctx echo.Context) error {
	state, err := parseStateFilter(ctx.QueryParam("state"))
	if err != nil {
		return badRequest(ctx, "invalid state filter")
	}

	query, err := queries.NewGetPrintJobsQuery(state)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getPrintJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]PrintJobView, len(result))
	for i, row := range result {
		response[i] = PrintJobView{
			ID:          row.ID.String(),
			OrderID:     row.OrderID.String(),
			State:       row.State,
			ClaimedBy:   row.ClaimedBy,
			Attempts:    row.Attempts,
			ErrorDetail: row.ErrorDetail,
			CreatedAt:   row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AgentPoll handles GET /print-agent/poll. The agent identifies itself via
// the X-Agent-ID header and receives up to limit claimed jobs with their
// label payloads.
func (s *Server) AgentPoll(ctx echo.Context) error {
	agent := ctx.Request().Header.Get("X-Agent-ID")

	limit := defaultPollLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "invalid limit")
		}
		limit = parsed
	}

	cmd, err := commands.NewClaimPrintJobsCommand(agent, limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	claimed, err := s.claimPrintJobsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	jobs := make([]AgentJob, len(claimed))
	for i, job := range claimed {
		jobs[i] = AgentJob{
			JobID:       job.JobID.String(),
			OrderID:     job.OrderID.String(),
			LabelData:   job.LabelData,
			LabelFormat: string(job.LabelFormat),
			Attempt:     job.Attempt,
		}
	}

	return ctx.JSON(http.StatusOK, AgentPollResponse{Jobs: jobs})
}

// AgentComplete handles POST /print-agent/complete.
func (s *Server) AgentComplete(ctx echo.Context) error {
	agent := ctx.Request().Header.Get("X-Agent-ID")

	var req AgentCompleteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	jobID, err := kernel.UUIDFromString(req.JobID)
	if err != nil {
		return badRequest(ctx, "invalid job id")
	}

	cmd, err := commands.NewCompletePrintJobCommand(jobID, agent, req.Success, req.Error)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.completePrintJobHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// agentAuth verifies the print agent's bearer token.
func (s *Server) agentAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.agentKey)) != 1 {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "invalid agent credentials",
			})
		}
		return next(ctx)
	}
}

// parseCustomer flattens the webhook's customer and address blocks into
// the order's customer snapshot. Contact fields fall back from the
// customer block to the order, then to the address.
func parseCustomer(payload WebhookOrder) order.CustomerInfo {
	info := order.CustomerInfo{
		Email: payload.Email,
		Phone: payload.Phone,
	}

	if c := payload.Customer; c != nil {
		info.ExternalID = c.ID
		info.Name = strings.TrimSpace(c.FirstName + " " + c.LastName)
		if c.Email != "" {
			info.Email = c.Email
		}
		if c.Phone != "" {
			info.Phone = c.Phone
		}
	}

	if a := payload.ShippingAddress; a != nil {
		if info.Name == "" {
			info.Name = a.Name
		}
		if info.Phone == "" {
			info.Phone = a.Phone
		}
		info.Address = kernel.Address{
			Line1:   a.Address1,
			Line2:   a.Address2,
			City:    a.City,
			State:   a.Province,
			Zip:     a.Zip,
			Country: a.Country,
		}
	}

	return info
}

// parseLines converts webhook line items to order lines. A malformed unit
// price parses as zero, and a line that fails validation outright is
// skipped rather than rejecting the whole order.
func parseLines(items []WebhookLineItem) []order.Line {
	lines := make([]order.Line, 0, len(items))
	for _, item := range items {
		unitPrice, err := strconv.ParseFloat(item.Price, 64)
		if err != nil {
			unitPrice = 0
		}

		weight, err := kernel.NewWeightGrams(item.Grams)
		if err != nil {
			weight = kernel.Weight{}
		}

		line, err := order.NewLine(
			item.SKU,
			item.Title,
			item.Quantity,
			unitPrice,
			weight,
			item.RequiresShipping,
		)
		if err != nil {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

func parseStateFilter(raw string) (printjob.State, error) {
	switch strings.ToLower(raw) {
	case "":
		return printjob.StateUnknown, nil
	case "queued":
		return printjob.StateQueued, nil
	case "claimed":
		return printjob.StateClaimed, nil
	case "done":
		return printjob.StateDone, nil
	case "failed":
		return printjob.StateFailed, nil
	default:
		return printjob.StateUnknown, errs.NewValueIsInvalidError("state")
	}
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP statuses: missing objects
// to 404, validation and state transition failures to 422, everything
// else to 500.
func writeError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	if errors.As(err, &invalid) || errors.As(err, &required) ||
		errors.Is(err, printjob.ErrNotClaimHolder) || errors.Is(err, printjob.ErrAlreadyCompleted) {
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	})
}
