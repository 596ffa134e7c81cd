package model

import "time"

type Order struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	Floor       int         `gorm:"not null" json:"floor"`
	Bay         int         `gorm:"not null" json:"bay"`
	Status      string      `gorm:"not null;default:'NEW'" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	TimerEnd    *time.Time  `json:"timer_end,omitempty"`
	ExternalRef string      `gorm:"index" json:"external_ref,omitempty"`
	Lines       []OrderLine `gorm:"foreignKey:OrderId" json:"-"`
}

type OrderLine struct {
	ID         uint     `gorm:"primaryKey" json:"-"`
	OrderId    string   `gorm:"size:36;index" json:"order_id"`
	MenuItemId uint     `gorm:"not null" json:"menu_item_id"`
	Qty        int      `gorm:"not null" json:"qty"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemId" json:"-"`
}

// OrderItemView is a line joined with its menu item, the shape the
// station displays consume.
type OrderItemView struct {
	MenuItemId       uint       `json:"menu_item_id"`
	Name             string     `json:"name"`
	Category         string     `json:"category"`
	Station          string     `json:"station"`
	CookSeconds      int        `json:"cook_seconds"`
	PriceCents       int        `json:"price_cents"`
	Qty              int        `json:"qty"`
	TotalCookSeconds int        `json:"total_cook_seconds"` // cook_seconds * qty, display only
	Modifiers        []Modifier `json:"modifiers,omitempty"`
}

type OrderWithItems struct {
	Order
	Items []OrderItemView `json:"items"`
}

type CreateOrderInput struct {
	Floor int              `json:"floor" validate:"required,min=1,max=3"`
	Bay   int              `json:"bay" validate:"required,min=1,max=25"`
	Items []OrderLineInput `json:"items" validate:"required,min=1,dive"`
}

type OrderLineInput struct {
	Id  uint `json:"id" validate:"required"`
	Qty int  `json:"qty" validate:"required,min=1"`
}

type SetOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}
