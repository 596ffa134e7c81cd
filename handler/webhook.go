package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log"

	"kds_manager/config"
	"kds_manager/constants"
	"kds_manager/storage"
	"kds_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// SquareWebhook handles payment.created events. Payment confirmation is
// just a status transition into COOKING, through the same path as any
// other status update.
func (h *Handler) SquareWebhook(c *fiber.Ctx) error {
	if key := config.Config("SQUARE_WEBHOOK_KEY"); key != "" {
		signature := c.Get("x-square-hmacsha256-signature")
		if !verifyWebhookSignature(key, c.Body(), signature) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid signature", errors.New("webhook signature mismatch"))
		}
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				Payment struct {
					OrderId string `json:"order_id"`
				} `json:"payment"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := c.BodyParser(&event); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid webhook payload", err)
	}

	if event.Type != "payment.created" || event.Data.Object.Payment.OrderId == "" {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"handled": false})
	}

	orderId, err := h.Store.OrderIDByExternalRef(event.Data.Object.Payment.OrderId)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			log.Printf("webhook for unknown Square order %s", event.Data.Object.Payment.OrderId)
			return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"handled": false})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if _, err := h.Store.UpdateOrderStatus(orderId, constants.STATUS_COOKING); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}
	h.Hub.OrderStatusUpdated(orderId)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"handled": true})
}

func verifyWebhookSignature(key string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
