package handler

import (
	"encoding/json"
	"log"

	"kds_manager/ws"

	"github.com/gofiber/contrib/websocket"
)

// StationWebsocket serves GET /ws/:room. An unknown room closes the
// socket immediately, no error frame. A registered connection gets the
// room's snapshot first, then live broadcasts until the transport drops.
func (h *Handler) StationWebsocket(c *websocket.Conn) {
	room := c.Params("room")

	if err := h.Hub.Register(c, room); err != nil {
		log.Printf("rejected websocket connection to /%s: %v", room, err)
		c.Close()
		return
	}
	log.Printf("New WebSocket connection to /%s", room)

	defer func() {
		h.Hub.Unregister(c)
		c.Close()
		log.Printf("WebSocket disconnected from /%s", room)
	}()

	h.Hub.SendSnapshot(c, room)

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}
		// Stations only consume. A malformed frame is dropped; the
		// connection stays open.
		var msg ws.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("dropped malformed message on /%s: %v", room, err)
		}
	}
}
