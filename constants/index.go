package constants

// Order statuses
const (
	STATUS_NEW       = "NEW"
	STATUS_COOKING   = "COOKING"
	STATUS_PLATING   = "PLATING"
	STATUS_READY     = "READY"
	STATUS_PICKED_UP = "PICKED_UP"
	STATUS_CANCELLED = "CANCELLED"
)

// Stations a menu item can be prepared at
const (
	STATION_KITCHEN = "Kitchen"
	STATION_BAR     = "Bar"
)

// Websocket rooms
const (
	ROOM_KITCHEN = "kitchen"
	ROOM_BAR     = "bar"
	ROOM_EXPO    = "expo"
	ROOM_SERVERS = "servers"
)

const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_MANAGER = "MANAGER"
)

// Response messages
const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_CREATE               = "Create failed"
	ERROR_UPDATE               = "Update failed"
	ERROR_PARSE_DATA_TO_LOCALS = "Cannot read validated input"
	MISSING_LOGIN_INPUT        = "Missing username or password"
	INVALID_USERNAME           = "Username does not exist"
	INVALID_PASSWORD           = "Wrong password"
	ACCOUNT_NOT_ACTIVE         = "Account is disabled"
	DATA_INPUT_IS_NOT_NUMBER   = "Input is not a number"
	ORDER_NOT_FOUND            = "Order not found"
	INVALID_ORDER_STATUS       = "Invalid order status"
	MENU_ITEM_NOT_FOUND        = "Menu item not found"
)

var OrderStatuses = []string{
	STATUS_NEW,
	STATUS_COOKING,
	STATUS_PLATING,
	STATUS_READY,
	STATUS_PICKED_UP,
	STATUS_CANCELLED,
}

func IsOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Terminal orders no longer appear on any station display.
func IsTerminalStatus(s string) bool {
	return s == STATUS_PICKED_UP || s == STATUS_CANCELLED
}

func IsStation(s string) bool {
	return s == STATION_KITCHEN || s == STATION_BAR
}
