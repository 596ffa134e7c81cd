package router

import (
	"kds_manager/handler"
	"kds_manager/middleware"
	"kds_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)

	// Guest-facing
	api.Get("/menu", h.GetMenu)
	api.Post("/orders", validate.CreateOrder(), h.CreateOrder)
	api.Get("/orders/active", h.GetActiveOrders)
	api.Patch("/orders/:id/status", validate.SetOrderStatus(), h.SetOrderStatus)
	api.Get("/bays/:floor/:bay/qr", h.BayQRCode)

	// Menu administration
	menu := v1.Group("/menu", logger.New())
	menu.Get("/:menuItemId", middleware.Protected(), validate.GetById("menuItemId"), h.GetMenuItemById)
	menu.Post("/", middleware.Protected(), validate.CreateMenuItem(), h.CreateMenuItem)
	menu.Put("/:menuItemId", middleware.Protected(), validate.EditMenuItem("menuItemId"), h.EditMenuItem)
	menu.Patch("/:menuItemId/deactivate", middleware.Protected(), validate.GetById("menuItemId"), h.DeactivateMenuItem)
	menu.Post("/:menuItemId/image", middleware.Protected(), validate.GetById("menuItemId"), h.UploadMenuItemImage)
	v1.Post("/cloudinary-signature", middleware.Protected(), h.GenerateSignature)

	// Server-to-server
	app.Post("/square/webhook", h.SquareWebhook)

	// Station displays
	app.Get("/ws/:room", websocket.New(h.StationWebsocket))
}
