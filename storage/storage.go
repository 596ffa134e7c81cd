package storage

import (
	"errors"

	"kds_manager/model"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrEmptyOrder       = errors.New("order must have at least one line")
)

// OrderStore is the durable record of menu items, orders and order lines.
// The websocket hub only ever reads through it after a mutation has
// committed, so broadcasts can never precede persistence.
type OrderStore interface {
	ActiveMenuItems() ([]model.MenuItem, error)
	MenuItemByID(id uint) (*model.MenuItem, error)

	// CreateOrder persists the order and its lines in one transaction.
	// Rejects an order with zero lines.
	CreateOrder(order *model.Order, lines []model.OrderLineInput) error

	OrderWithItems(id string) (*model.OrderWithItems, error)

	// ActiveOrders returns every order whose status is not terminal,
	// newest first, with items resolved.
	ActiveOrders() ([]model.OrderWithItems, error)

	// UpdateOrderStatus validates the target against the status set and
	// persists it. Any member of the set is reachable from any
	// non-terminal state; station UIs compute "next status" as a display
	// hint only. Never touches timer_end.
	UpdateOrderStatus(id, status string) (*model.Order, error)

	SetExternalRef(id, ref string) error
	OrderIDByExternalRef(ref string) (string, error)
}
