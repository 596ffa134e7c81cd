package main

import (
	"log"

	"kds_manager/config"
	"kds_manager/database"
	"kds_manager/handler"
	"kds_manager/helper"
	"kds_manager/router"
	"kds_manager/square"
	"kds_manager/storage"
	"kds_manager/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	database.ConnectDB()

	var rdb *redis.Client
	if addr := config.Config("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}

	store := storage.NewGormStore(database.DB)
	hub := ws.NewHub(store, rdb)
	sq := square.NewClient()
	h := handler.New(store, hub, sq, rdb)

	helper.StartCatalogSyncScheduler(sq)
	defer helper.StopCatalogSyncScheduler()
	helper.StartOrderSweeper()
	defer helper.StopOrderSweeper()

	router.SetupRoutes(app, h)
	log.Fatal(app.Listen(":8002"))
}
