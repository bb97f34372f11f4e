package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodbao/admin-api/internal/api/metrics"
	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// OrderHandler handles order listing and status management.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderItemRequest struct {
	MenuItemID string  `json:"menu_item_id" validate:"required"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" validate:"gte=0"`
}

type orderRequest struct {
	ClientID      string             `json:"client_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Items         []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total         float64            `json:"total" validate:"gte=0"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListOrders returns the orders visible to the caller.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Filter by client (staff only)"
// @Success      200        {array}   domain.Order
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("orders", "list").Inc()

	orders, err := h.service.ListOrders(c.Request().Context(), actor, c.QueryParam("client_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("orders", "get").Inc()

	order, err := h.service.GetOrder(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// CreateOrder registers an order on behalf of a client.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      orderRequest  true  "Order details"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	metrics.ProxyRequestsTotal.WithLabelValues("orders", "create").Inc()

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}

	created, err := h.service.CreateOrder(c.Request().Context(), actor, &domain.Order{
		ClientID:      req.ClientID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
		Total:         req.Total,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateStatus advances an order through its lifecycle. Invalid transitions
// are rejected with 422.
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order ID"
// @Param        body  body      orderStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Order
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	metrics.ProxyRequestsTotal.WithLabelValues("orders", "update_status").Inc()

	order, err := h.service.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order. ADMIN only.
//
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        id  path  string  true  "Order ID"
// @Success      204
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("orders", "delete").Inc()

	if err := h.service.DeleteOrder(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
