package storage

import (
	"errors"

	"kds_manager/constants"
	"kds_manager/model"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ActiveMenuItems() ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := s.db.
		Preload("Modifiers").
		Where("active = ?", true).
		Order("category asc, name asc").
		Find(&items).Error
	return items, err
}

func (s *GormStore) MenuItemByID(id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := s.db.Preload("Modifiers").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *GormStore) CreateOrder(order *model.Order, lines []model.OrderLineInput) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		orderLines := make([]model.OrderLine, 0, len(lines))
		for _, line := range lines {
			orderLines = append(orderLines, model.OrderLine{
				OrderId:    order.ID,
				MenuItemId: line.Id,
				Qty:        line.Qty,
			})
		}
		return tx.Create(&orderLines).Error
	})
}

func (s *GormStore) OrderWithItems(id string) (*model.OrderWithItems, error) {
	var order model.Order
	if err := s.db.
		Preload("Lines").
		Preload("Lines.MenuItem").
		Preload("Lines.MenuItem.Modifiers").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	view := buildOrderView(order)
	return &view, nil
}

func (s *GormStore) ActiveOrders() ([]model.OrderWithItems, error) {
	var orders []model.Order
	if err := s.db.
		Preload("Lines").
		Preload("Lines.MenuItem").
		Preload("Lines.MenuItem.Modifiers").
		Where("status NOT IN ?", []string{constants.STATUS_PICKED_UP, constants.STATUS_CANCELLED}).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	views := make([]model.OrderWithItems, 0, len(orders))
	for _, order := range orders {
		views = append(views, buildOrderView(order))
	}
	return views, nil
}

func (s *GormStore) UpdateOrderStatus(id, status string) (*model.Order, error) {
	if !constants.IsOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	var order model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *GormStore) SetExternalRef(id, ref string) error {
	return s.db.Model(&model.Order{}).Where("id = ?", id).Update("external_ref", ref).Error
}

func (s *GormStore) OrderIDByExternalRef(ref string) (string, error) {
	var order model.Order
	if err := s.db.Select("id").First(&order, "external_ref = ?", ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	return order.ID, nil
}

func buildOrderView(order model.Order) model.OrderWithItems {
	items := make([]model.OrderItemView, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, model.OrderItemView{
			MenuItemId:       line.MenuItemId,
			Name:             line.MenuItem.Name,
			Category:         line.MenuItem.Category,
			Station:          line.MenuItem.Station,
			CookSeconds:      line.MenuItem.CookSeconds,
			PriceCents:       line.MenuItem.PriceCents,
			Qty:              line.Qty,
			TotalCookSeconds: line.MenuItem.CookSeconds * line.Qty,
			Modifiers:        line.MenuItem.Modifiers,
		})
	}
	return model.OrderWithItems{Order: order, Items: items}
}
