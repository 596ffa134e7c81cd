package handler

import (
	"errors"
	"log"
	"time"

	"kds_manager/constants"
	"kds_manager/helper"
	"kds_manager/model"
	"kds_manager/square"
	"kds_manager/storage"
	"kds_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateOrder persists the ticket, mirrors it to Square, then hands it to
// the hub. The Square mirror is best effort; a failure there never fails
// the order.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateOrder").(model.CreateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA ORDER TO LOCALS FAIL"))
	}

	menuItems := make([]model.MenuItem, 0, len(input.Items))
	squareLines := make([]square.OrderLine, 0, len(input.Items))
	for _, line := range input.Items {
		item, err := h.Store.MenuItemByID(line.Id)
		if err != nil {
			if errors.Is(err, storage.ErrMenuItemNotFound) {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MENU_ITEM_NOT_FOUND, err)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		menuItems = append(menuItems, *item)
		squareLines = append(squareLines, square.OrderLine{
			Name:       item.Name,
			Qty:        line.Qty,
			PriceCents: item.PriceCents,
		})
	}

	now := time.Now()
	timerEnd := helper.ComputeTimerEnd(menuItems, now)
	order := model.Order{
		ID:       uuid.NewString(),
		Floor:    input.Floor,
		Bay:      input.Bay,
		Status:   constants.STATUS_NEW,
		TimerEnd: &timerEnd,
	}

	if err := h.Store.CreateOrder(&order, input.Items); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	if ref, err := h.Square.CreateOrder(squareLines); err != nil {
		log.Printf("Square order mirror failed for %s: %v", order.ID, err)
	} else if err := h.Store.SetExternalRef(order.ID, ref); err != nil {
		log.Printf("saving Square ref for %s failed: %v", order.ID, err)
	}

	h.Hub.OrderCreated(order.ID)

	view, err := h.Store.OrderWithItems(order.ID)
	if err != nil {
		// The order exists; fall back to the bare record.
		return utils.SuccessResponse(c, fiber.StatusCreated, order)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, view)
}

// SetOrderStatus applies a status transition and notifies the rooms the
// new status is visible to. A failed transition never broadcasts.
func (h *Handler) SetOrderStatus(c *fiber.Ctx) error {
	orderId := c.Params("id")
	input, ok := c.Locals("inputSetOrderStatus").(model.SetOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA STATUS TO LOCALS FAIL"))
	}

	order, err := h.Store.UpdateOrderStatus(orderId, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidStatus):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_ORDER_STATUS, err)
		case errors.Is(err, storage.ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
		}
	}

	h.Hub.OrderStatusUpdated(order.ID)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetActiveOrders lists non-terminal orders with items, for dashboards.
func (h *Handler) GetActiveOrders(c *fiber.Ctx) error {
	orders, err := h.Store.ActiveOrders()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}
