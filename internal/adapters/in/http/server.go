// Package http exposes the order API over REST. Request handling stays
// thin: parse, build a command, delegate to the use case, render the
// normalized order document.
package http

import (
	"errors"
	"net/http"

	"github.com/solody/commerce-order-api/internal/core/application/normalizer"
	"github.com/solody/commerce-order-api/internal/core/application/usecases/commands"
	"github.com/solody/commerce-order-api/internal/core/application/usecases/queries"
	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// customerHeader carries the caller's customer id. Authentication itself is
// the host system's concern; by the time a request reaches this API the
// gateway has verified the identity.
const customerHeader = "X-Customer-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assembleOrderHandler     commands.AssembleOrderCommandHandler
	applyTransitionHandler   commands.ApplyOrderTransitionCommandHandler
	setBillingProfileHandler commands.SetOrderBillingProfileCommandHandler

	// Query handlers
	getOrderHandler queries.GetOrderQueryHandler

	builder    normalizer.OrderGraphBuilder
	normalizer normalizer.Normalizer
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The graph builder renders command results without a re-fetch.
func NewServer(
	assembleOrderHandler commands.AssembleOrderCommandHandler,
	applyTransitionHandler commands.ApplyOrderTransitionCommandHandler,
	setBillingProfileHandler commands.SetOrderBillingProfileCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	builder normalizer.OrderGraphBuilder,
) *Server {
	return &Server{
		assembleOrderHandler:     assembleOrderHandler,
		applyTransitionHandler:   applyTransitionHandler,
		setBillingProfileHandler: setBillingProfileHandler,
		getOrderHandler:          getOrderHandler,
		builder:                  builder,
		normalizer:               normalizer.NewNormalizer(),
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/rest/commerce-order")
	api.POST("/none-cart-order", s.CreateNoneCartOrder)
	api.POST("/apply-order-transition", s.ApplyOrderTransition)
	api.POST("/set-order-billing-profile", s.SetOrderBillingProfile)
	api.GET("/orders/:id", s.GetOrder)

	e.GET("/health", s.Health)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type purchasedItemRequest struct {
	PurchasedEntityID string `json:"purchased_entity_id"`
	Quantity          int    `json:"quantity"`
}

type createNoneCartOrderRequest struct {
	PurchasedEntityType string                 `json:"purchased_entity_type"`
	PurchasedItems      []purchasedItemRequest `json:"purchased_items"`
}

// CreateNoneCartOrder handles POST /api/rest/commerce-order/none-cart-order.
// It assembles, places and returns a new order from the requested items.
func (s *Server) CreateNoneCartOrder(ctx echo.Context) error {
	customerID, err := callerID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req createNoneCartOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]commands.AssembleOrderItem, 0, len(req.PurchasedItems))
	for _, item := range req.PurchasedItems {
		entityID, parseErr := kernel.UUIDFromString(item.PurchasedEntityID)
		if parseErr != nil {
			return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{
				Code:    http.StatusUnprocessableEntity,
				Message: "Invalid purchased entity id: " + item.PurchasedEntityID,
			})
		}
		items = append(items, commands.AssembleOrderItem{
			EntityID: entityID,
			Quantity: item.Quantity,
		})
	}

	cmd, err := commands.NewAssembleOrderCommand(customerID, req.PurchasedEntityType, items)
	if err != nil {
		return writeError(ctx, err)
	}

	aggregate, err := s.assembleOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return s.writeOrder(ctx, http.StatusOK, aggregate)
}

type applyOrderTransitionRequest struct {
	OrderID    string `json:"order_id"`
	FromState  string `json:"from_state"`
	Transition string `json:"transition"`
}

// ApplyOrderTransition handles POST /api/rest/commerce-order/apply-order-transition.
func (s *Server) ApplyOrderTransition(ctx echo.Context) error {
	customerID, err := callerID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req applyOrderTransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	cmd, err := commands.NewApplyOrderTransitionCommand(
		customerID, orderID, workflow.State(req.FromState), req.Transition)
	if err != nil {
		return writeError(ctx, err)
	}

	aggregate, err := s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return s.writeOrder(ctx, http.StatusOK, aggregate)
}

type setOrderBillingProfileRequest struct {
	OrderID          string  `json:"order_id"`
	BillingProfileID *string `json:"billing_profile_id"`
}

// SetOrderBillingProfile handles POST /api/rest/commerce-order/set-order-billing-profile.
// An omitted billing_profile_id asks for the customer's default profile.
func (s *Server) SetOrderBillingProfile(ctx echo.Context) error {
	customerID, err := callerID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req setOrderBillingProfileRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	var profileID *kernel.UUID
	if req.BillingProfileID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.BillingProfileID)
		if parseErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("billingProfile", parseErr))
		}
		profileID = &parsed
	}

	cmd, err := commands.NewSetOrderBillingProfileCommand(customerID, orderID, profileID)
	if err != nil {
		return writeError(ctx, err)
	}

	aggregate, err := s.setBillingProfileHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return s.writeOrder(ctx, http.StatusOK, aggregate)
}

// GetOrder handles GET /api/rest/commerce-order/orders/:id - returns the
// normalized order document with billing profile and line items inlined.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	doc, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, doc)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeOrder(ctx echo.Context, status int, aggregate *order.Order) error {
	node, err := s.builder.BuildOrder(aggregate)
	if err != nil {
		return writeError(ctx, err)
	}

	doc, err := s.normalizer.Normalize(ctx.Request().Context(), node)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(status, doc)
}

func callerID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(customerHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewAccessDeniedError("missing " + customerHeader + " header")
	}

	customerID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewAccessDeniedError("invalid " + customerHeader + " header")
	}
	return customerID, nil
}

// writeError maps domain error kinds to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrIntegrityFault),
		errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
