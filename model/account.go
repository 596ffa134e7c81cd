package model

type Account struct {
	DTO
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;default:'MANAGER'" json:"role"`
	Active   bool   `gorm:"default:true" json:"active"`
}
