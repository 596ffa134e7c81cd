package model

type MenuItem struct {
	DTO
	SquareId    string     `gorm:"uniqueIndex;size:64" json:"square_id,omitempty"`
	Slug        string     `gorm:"uniqueIndex;size:80" json:"slug"`
	Name        string     `gorm:"not null" json:"name"`
	Category    string     `gorm:"not null" json:"category"`
	Station     string     `gorm:"not null" json:"station"` // Kitchen | Bar
	CookSeconds int        `gorm:"not null" json:"cook_seconds"`
	PriceCents  int        `gorm:"not null" json:"price_cents"`
	ImageUrl    string     `json:"image_url,omitempty"`
	Active      *bool      `gorm:"default:true" json:"active"`
	Modifiers   []Modifier `gorm:"foreignKey:MenuItemId" json:"modifiers,omitempty"`
}

// Modifier belongs to a named group on one menu item, e.g. "Sauce" or
// "Temperature", with an optional price delta.
type Modifier struct {
	DTO
	MenuItemId      uint   `gorm:"index" json:"menu_item_id"`
	GroupName       string `gorm:"not null" json:"group_name"`
	Name            string `gorm:"not null" json:"name"`
	PriceDeltaCents int    `json:"price_delta_cents"`
}

type CreateMenuItemInput struct {
	Name        string                `json:"name" validate:"required"`
	Category    string                `json:"category" validate:"required"`
	Station     string                `json:"station" validate:"required,oneof=Kitchen Bar"`
	CookSeconds int                   `json:"cook_seconds" validate:"required,min=1"`
	PriceCents  int                   `json:"price_cents" validate:"required,min=0"`
	ImageUrl    string                `json:"image_url" validate:"omitempty,url"`
	Modifiers   []CreateModifierInput `json:"modifiers" validate:"omitempty,dive"`
}

type CreateModifierInput struct {
	GroupName       string `json:"group_name" validate:"required"`
	Name            string `json:"name" validate:"required"`
	PriceDeltaCents int    `json:"price_delta_cents"`
}

type EditMenuItemInput struct {
	Name        *string `json:"name" validate:"omitempty"`
	Category    *string `json:"category" validate:"omitempty"`
	Station     *string `json:"station" validate:"omitempty,oneof=Kitchen Bar"`
	CookSeconds *int    `json:"cook_seconds" validate:"omitempty,min=1"`
	PriceCents  *int    `json:"price_cents" validate:"omitempty,min=0"`
	ImageUrl    *string `json:"image_url" validate:"omitempty,url"`
	Active      *bool   `json:"active" validate:"omitempty"`
}
