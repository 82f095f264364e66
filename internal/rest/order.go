package rest

import (
	"context"
	"net/http"
	"plantnet/business/order"
	"plantnet/domain"
	"plantnet/pkg/logger"
	"plantnet/pkg/metrics"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrderHandler struct {
		validate     *validator.Validate
		orderService OrderService
		timeout      time.Duration
	}

	OrderService interface {
		PlaceOrder(ctx context.Context, customerEmail string, in order.CheckoutInput) (domain.Order, error)
		OrdersForCustomer(ctx context.Context, email string) ([]domain.EnrichedOrder, error)
		OrdersForSeller(ctx context.Context, email string) ([]domain.EnrichedOrder, error)
		SetOrderStatus(ctx context.Context, actorEmail string, orderID uint, status string) (domain.Order, error)
		CancelOrder(ctx context.Context, actorEmail string, orderID uint) error
	}

	CreateOrderRequest struct {
		PlantID  uint   `json:"plant_id" validate:"required"`
		Quantity int    `json:"quantity" validate:"required,gt=0"`
		Address  string `json:"address"`
	}

	SetStatusRequest struct {
		Status string `json:"status" validate:"required"`
	}
)

func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{
		validate:     validator.New(),
		orderService: orderService,
		timeout:      10 * time.Second,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	customerEmail := c.Get("email").(string)

	var request CreateOrderRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	placed, err := h.orderService.PlaceOrder(ctx, customerEmail, order.CheckoutInput{
		PlantID:  request.PlantID,
		Quantity: request.Quantity,
		Address:  request.Address,
	})
	if err != nil {
		logger.Error("Failed to place order", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	metrics.OrdersPlaced.Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(placed))
}

// CustomerOrders returns the caller's orders enriched with plant fields.
func (h *OrderHandler) CustomerOrders(c echo.Context) error {
	email := c.Get("email").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.orderService.OrdersForCustomer(ctx, email)
	if err != nil {
		logger.Error("Failed to get customer orders", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

// SellerOrders returns incoming orders for the seller dashboard.
func (h *OrderHandler) SellerOrders(c echo.Context) error {
	email := c.Get("email").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.orderService.OrdersForSeller(ctx, email)
	if err != nil {
		logger.Error("Failed to get seller orders", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

func (h *OrderHandler) SetOrderStatus(c echo.Context) error {
	actorEmail := c.Get("email").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	var request SetStatusRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate status request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.orderService.SetOrderStatus(ctx, actorEmail, uint(id), request.Status)
	if err != nil {
		logger.Error("Failed to set order status", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	actorEmail := c.Get("email").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.orderService.CancelOrder(ctx, actorEmail, uint(id)); err != nil {
		logger.Error("Failed to cancel order", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	metrics.OrdersCancelled.Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Order cancelled successfully"))
}
