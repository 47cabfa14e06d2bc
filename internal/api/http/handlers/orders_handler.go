package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lifecycle-service/internal/api/dto"
	"github.com/spec-kit/lifecycle-service/internal/auth"
	"github.com/spec-kit/lifecycle-service/internal/domain"
	"github.com/spec-kit/lifecycle-service/internal/lifecycle"
	"github.com/spec-kit/lifecycle-service/internal/repository"
	"github.com/spec-kit/lifecycle-service/internal/service"
)

// OrdersHandler exposes order endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Create handles POST /orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	order, err := h.orders.CreateOrder(c.UserContext(), service.OrderCreateInput{
		CampaignID:            req.CampaignID,
		ProviderID:            req.ProviderID,
		Description:           req.Description,
		Amount:                req.Amount,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
		Conditions:            req.Conditions,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// List handles GET /orders. Listing runs the automatic advancement pass,
// including overdue detection.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if campaignID := c.Query("campaign_id"); campaignID != "" {
		filter.CampaignID = &campaignID
	}
	if providerID := c.Query("provider_id"); providerID != "" {
		filter.ProviderID = &providerID
	}
	if states := c.Query("state"); states != "" {
		for _, state := range strings.Split(states, ",") {
			filter.States = append(filter.States, domain.OrderState(state))
		}
	}
	if from := c.Query("created_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := c.Query("created_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &t
		}
	}

	orders, _, err := h.orders.ListOrders(c.UserContext(), filter)
	if err != nil {
		return err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, dto.NewOrderResponse(&orders[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /orders/:id. Keys prefixed ORD- resolve by external key.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	var (
		order *domain.Order
		err   error
	)
	if strings.HasPrefix(id, "ORD-") {
		order, err = h.orders.GetOrderByKey(c.UserContext(), id)
	} else {
		order, err = h.orders.GetOrder(c.UserContext(), id)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Update handles PATCH /orders/:id.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	order, err := h.orders.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if req.ProviderID != nil {
		order.ProviderID = req.ProviderID
	}
	if req.Description != nil {
		order.Description = *req.Description
	}
	if req.Amount != nil {
		order.Amount = req.Amount
	}
	if req.EstimatedDeliveryDate != nil {
		order.EstimatedDeliveryDate = req.EstimatedDeliveryDate
	}
	if req.Conditions != nil {
		order.Conditions = req.Conditions
	}
	if err := h.orders.UpdateOrder(c.UserContext(), order); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// ChangeState handles POST /orders/:id/state.
func (h *OrdersHandler) ChangeState(c *fiber.Ctx) error {
	var req dto.ChangeStateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	principal, _ := auth.PrincipalFromContext(c)
	var actor *domain.User
	if principal != nil {
		actor = principal.User
	}
	order, err := h.orders.ChangeState(c.UserContext(), actor, c.Params("id"), domain.OrderState(req.State), req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// History handles GET /orders/:id/history.
func (h *OrdersHandler) History(c *fiber.Ctx) error {
	records, err := h.orders.History(c.UserContext(), c.Params("id"), c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStateChangeResponses(records)})
}

// States handles GET /orders/states.
func (h *OrdersHandler) States(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": stateDefinitions(lifecycle.OrderStates)})
}
