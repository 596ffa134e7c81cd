package handler

import (
	"fmt"
	"strconv"

	"kds_manager/config"
	"kds_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// BayQRCode renders the QR code posted at a bay; guests scan it to open
// the ordering page pre-filled with their floor and bay.
func (h *Handler) BayQRCode(c *fiber.Ctx) error {
	floor, err := strconv.Atoi(c.Params("floor"))
	if err != nil || floor < 1 || floor > 3 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid floor", err)
	}
	bay, err := strconv.Atoi(c.Params("bay"))
	if err != nil || bay < 1 || bay > 25 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid bay", err)
	}

	appURL := config.Config("APP_URL")
	content := fmt.Sprintf("%s/order?floor=%d&bay=%d", appURL, floor, bay)

	qrBytes, err := utils.GenerateQRCode(content, 400)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "QR generation failed", err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(qrBytes)
}
