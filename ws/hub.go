package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"kds_manager/constants"
	"kds_manager/model"
	"kds_manager/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrInvalidRoom = errors.New("invalid room")

var Rooms = []string{
	constants.ROOM_KITCHEN,
	constants.ROOM_BAR,
	constants.ROOM_EXPO,
	constants.ROOM_SERVERS,
}

const relayChannel = "stations"

// Conn is the slice of a websocket connection the hub needs. The fiber
// websocket.Conn satisfies it; tests inject fakes.
type Conn interface {
	WriteJSON(v interface{}) error
}

// Hub owns the room → connection sets and fans order lifecycle events out
// to the stations that care. One instance per process, passed by handle.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[Conn]bool

	store storage.OrderStore

	// Optional cross-instance relay. When set, every broadcast is also
	// published to Redis and remote instances replay it locally.
	rdb        *redis.Client
	instanceId string
}

func NewHub(store storage.OrderStore, rdb *redis.Client) *Hub {
	h := &Hub{
		rooms:      make(map[string]map[Conn]bool, len(Rooms)),
		store:      store,
		rdb:        rdb,
		instanceId: uuid.NewString(),
	}
	for _, room := range Rooms {
		h.rooms[room] = make(map[Conn]bool)
	}
	if rdb != nil {
		go h.relay()
	}
	return h
}

func ValidRoom(room string) bool {
	for _, r := range Rooms {
		if room == r {
			return true
		}
	}
	return false
}

func (h *Hub) Register(c Conn, room string) error {
	if !ValidRoom(room) {
		return ErrInvalidRoom
	}
	h.mu.Lock()
	h.rooms[room][c] = true
	h.mu.Unlock()
	return nil
}

// Unregister is idempotent; unknown connections are a no-op.
func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	for _, conns := range h.rooms {
		delete(conns, c)
	}
	h.mu.Unlock()
}

// SendSnapshot pushes the room's filtered view of active orders to one
// connection. A store failure degrades to an empty snapshot; the
// connection stays registered and keeps receiving live broadcasts.
func (h *Hub) SendSnapshot(c Conn, room string) {
	orders, err := h.store.ActiveOrders()
	if err != nil {
		log.Printf("snapshot for %s failed, sending empty list: %v", room, err)
		orders = nil
	}

	filtered := make([]model.OrderWithItems, 0, len(orders))
	for _, order := range orders {
		if !roomSeesStatus(room, order.Status) {
			continue
		}
		projected, ok := ProjectForRoom(order, room)
		if !ok {
			continue
		}
		filtered = append(filtered, projected)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := c.WriteJSON(InitOrders(filtered)); err != nil {
		log.Printf("init-orders push to %s failed: %v", room, err)
	}
}

// OrderCreated fans a freshly persisted order out as new-ticket events,
// one per station room that has matching lines.
func (h *Hub) OrderCreated(orderId string) {
	order, err := h.store.OrderWithItems(orderId)
	if err != nil {
		log.Printf("fetch after create failed for %s, no broadcast: %v", orderId, err)
		return
	}
	for _, room := range []string{constants.ROOM_KITCHEN, constants.ROOM_BAR} {
		if projected, ok := ProjectForRoom(*order, room); ok {
			h.Broadcast(room, NewTicket(projected))
		}
	}
}

// OrderStatusUpdated notifies every room whose visibility includes the
// new status. A pickup instead fans a removal signal out to all rooms,
// regardless of which stations the order ever touched.
func (h *Hub) OrderStatusUpdated(orderId string) {
	order, err := h.store.OrderWithItems(orderId)
	if err != nil {
		log.Printf("fetch after status update failed for %s, no broadcast: %v", orderId, err)
		return
	}

	if order.Status == constants.STATUS_PICKED_UP {
		for _, room := range Rooms {
			h.Broadcast(room, PickedUp(*order))
		}
		return
	}

	for _, room := range VisibleRooms(order.Status) {
		projected, ok := ProjectForRoom(*order, room)
		if !ok {
			continue
		}
		h.Broadcast(room, StatusUpdate(projected))
	}
}

// Broadcast pushes a message to every live connection in the room.
// Write failures are skipped, not force-closed: closure is driven by the
// connection's own read loop.
func (h *Hub) Broadcast(room string, msg Message) {
	h.broadcastLocal(room, msg)
	if h.rdb != nil {
		h.publish(room, msg)
	}
}

func (h *Hub) broadcastLocal(room string, msg any) {
	h.mu.Lock()
	conns := make([]Conn, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		conns = append(conns, c)
	}
	for _, c := range conns {
		if err := c.WriteJSON(msg); err != nil {
			log.Printf("broadcast to %s skipped a connection: %v", room, err)
		}
	}
	h.mu.Unlock()
}

// VisibleRooms maps an order status to the rooms that display it.
func VisibleRooms(status string) []string {
	switch status {
	case constants.STATUS_NEW, constants.STATUS_COOKING:
		return []string{constants.ROOM_KITCHEN, constants.ROOM_BAR}
	case constants.STATUS_PLATING, constants.STATUS_READY:
		return []string{constants.ROOM_EXPO}
	default:
		// PICKED_UP is a removal signal handled separately; CANCELLED is
		// shown nowhere.
		return nil
	}
}

// ProjectForRoom narrows an order to the lines a station room prepares.
// Kitchen and bar see only their own station's lines and drop the order
// entirely when none match; expo and servers see the full ticket.
func ProjectForRoom(order model.OrderWithItems, room string) (model.OrderWithItems, bool) {
	var station string
	switch room {
	case constants.ROOM_KITCHEN:
		station = constants.STATION_KITCHEN
	case constants.ROOM_BAR:
		station = constants.STATION_BAR
	default:
		return order, true
	}

	items := make([]model.OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		if item.Station == station {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return model.OrderWithItems{}, false
	}
	projected := order
	projected.Items = items
	return projected, true
}

func roomSeesStatus(room, status string) bool {
	for _, r := range VisibleRooms(status) {
		if r == room {
			return true
		}
	}
	return false
}

// relayEnvelope wraps a broadcast on the Redis channel so instances can
// drop their own echoes.
type relayEnvelope struct {
	Src  string          `json:"src"`
	Room string          `json:"room"`
	Msg  json.RawMessage `json:"msg"`
}

func (h *Hub) publish(room string, msg Message) {
	raw, err := json.Marshal(msg)
	if err != nil {
		log.Printf("relay marshal failed: %v", err)
		return
	}
	env, err := json.Marshal(relayEnvelope{Src: h.instanceId, Room: room, Msg: raw})
	if err != nil {
		return
	}
	if err := h.rdb.Publish(context.Background(), relayChannel, env).Err(); err != nil {
		log.Printf("relay publish failed: %v", err)
	}
}

func (h *Hub) relay() {
	pubsub := h.rdb.Subscribe(context.Background(), relayChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var env relayEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Printf("relay payload dropped: %v", err)
			continue
		}
		if env.Src == h.instanceId || !ValidRoom(env.Room) {
			continue
		}
		h.broadcastLocal(env.Room, env.Msg)
	}
}
