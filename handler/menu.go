package handler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"kds_manager/constants"
	"kds_manager/database"
	"kds_manager/helper"
	"kds_manager/model"
	"kds_manager/storage"
	"kds_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

const menuCacheKey = "menu:active"
const menuCacheTTL = 60 * time.Second

// GetMenu returns active items grouped by category, cached in Redis for
// a minute when a cache is configured.
func (h *Handler) GetMenu(c *fiber.Ctx) error {
	if h.Cache != nil {
		if cached, err := h.Cache.Get(context.Background(), menuCacheKey).Result(); err == nil {
			c.Set("Content-Type", "application/json")
			return c.SendString(cached)
		}
	}

	items, err := h.Store.ActiveMenuItems()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	byCategory := map[string][]model.MenuItem{}
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	body := fiber.Map{"status": "success", "data": byCategory}
	if h.Cache != nil {
		if raw, err := json.Marshal(body); err == nil {
			h.Cache.Set(context.Background(), menuCacheKey, raw, menuCacheTTL)
		}
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func (h *Handler) GetMenuItemById(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE MENU ITEM ID TO LOCALS FAIL"))
	}
	item, err := h.Store.MenuItemByID(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrMenuItemNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func (h *Handler) CreateMenuItem(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateMenuItem").(model.CreateMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA MENU ITEM TO LOCALS FAIL"))
	}

	db := database.DB
	newItem := new(model.MenuItem)
	copier.Copy(&newItem, input)

	if newItem.Active == nil {
		newItem.Active = utils.Ptr(true)
	}
	newItem.Slug = helper.GenerateUniqueMenuItemSlug(db, input.Name)

	modifiers := make([]model.Modifier, 0, len(input.Modifiers))
	for _, mod := range input.Modifiers {
		modifiers = append(modifiers, model.Modifier{
			GroupName:       mod.GroupName,
			Name:            mod.Name,
			PriceDeltaCents: mod.PriceDeltaCents,
		})
	}
	newItem.Modifiers = modifiers

	if err := db.Create(&newItem).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	h.invalidateMenuCache()
	return utils.SuccessResponse(c, fiber.StatusCreated, newItem)
}

func (h *Handler) EditMenuItem(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE MENU ITEM ID TO LOCALS FAIL"))
	}
	input, ok := c.Locals("inputEditMenuItem").(model.EditMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA MENU ITEM TO LOCALS FAIL"))
	}

	db := database.DB
	var item model.MenuItem
	if err := db.First(&item, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, err)
	}

	copier.CopyWithOption(&item, input, copier.Option{IgnoreEmpty: true})
	if input.Name != nil && *input.Name != "" {
		item.Slug = helper.GenerateUniqueMenuItemSlug(db, *input.Name)
	}

	if err := db.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	h.invalidateMenuCache()
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// DeactivateMenuItem hides an item from the menu without deleting it;
// existing order lines keep referencing it.
func (h *Handler) DeactivateMenuItem(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE MENU ITEM ID TO LOCALS FAIL"))
	}

	db := database.DB
	result := db.Model(&model.MenuItem{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, nil)
	}

	h.invalidateMenuCache()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": id, "active": false})
}

func (h *Handler) invalidateMenuCache() {
	if h.Cache != nil {
		h.Cache.Del(context.Background(), menuCacheKey)
	}
}
