package handler

import (
	"kds_manager/square"
	"kds_manager/storage"
	"kds_manager/ws"

	"github.com/redis/go-redis/v9"
)

// Handler carries the collaborators the HTTP layer needs: the order
// store, the station hub, the Square capability and an optional Redis
// cache. Constructed once in main and passed by handle.
type Handler struct {
	Store  storage.OrderStore
	Hub    *ws.Hub
	Square square.Client
	Cache  *redis.Client
}

func New(store storage.OrderStore, hub *ws.Hub, sq square.Client, cache *redis.Client) *Handler {
	return &Handler{Store: store, Hub: hub, Square: sq, Cache: cache}
}
