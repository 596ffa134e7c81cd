package ws

import (
	"errors"
	"testing"

	"kds_manager/constants"
	"kds_manager/model"
	"kds_manager/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	wrote     []any
	failWrite bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.failWrite {
		return errors.New("connection gone")
	}
	f.wrote = append(f.wrote, v)
	return nil
}

func (f *fakeConn) messages(t *testing.T) []Message {
	t.Helper()
	msgs := make([]Message, 0, len(f.wrote))
	for _, w := range f.wrote {
		msg, ok := w.(Message)
		require.True(t, ok, "expected ws.Message, got %T", w)
		msgs = append(msgs, msg)
	}
	return msgs
}

type fakeStore struct {
	active    []model.OrderWithItems
	orders    map[string]model.OrderWithItems
	activeErr error
	fetchErr  error
}

func (s *fakeStore) ActiveMenuItems() ([]model.MenuItem, error) { return nil, nil }
func (s *fakeStore) MenuItemByID(id uint) (*model.MenuItem, error) {
	return nil, storage.ErrMenuItemNotFound
}
func (s *fakeStore) CreateOrder(order *model.Order, lines []model.OrderLineInput) error { return nil }
func (s *fakeStore) SetExternalRef(id, ref string) error                               { return nil }
func (s *fakeStore) OrderIDByExternalRef(ref string) (string, error) {
	return "", storage.ErrOrderNotFound
}
func (s *fakeStore) UpdateOrderStatus(id, status string) (*model.Order, error) {
	return nil, storage.ErrOrderNotFound
}

func (s *fakeStore) OrderWithItems(id string) (*model.OrderWithItems, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	order, ok := s.orders[id]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	return &order, nil
}

func (s *fakeStore) ActiveOrders() ([]model.OrderWithItems, error) {
	if s.activeErr != nil {
		return nil, s.activeErr
	}
	return s.active, nil
}

func kitchenItem(cookSeconds int) model.OrderItemView {
	return model.OrderItemView{Name: "Smash Burger", Station: constants.STATION_KITCHEN, CookSeconds: cookSeconds, Qty: 1, TotalCookSeconds: cookSeconds}
}

func barItem(cookSeconds int) model.OrderItemView {
	return model.OrderItemView{Name: "House Lager", Station: constants.STATION_BAR, CookSeconds: cookSeconds, Qty: 1, TotalCookSeconds: cookSeconds}
}

func order(id, status string, items ...model.OrderItemView) model.OrderWithItems {
	return model.OrderWithItems{
		Order: model.Order{ID: id, Floor: 2, Bay: 5, Status: status},
		Items: items,
	}
}

func TestRegisterRejectsInvalidRoom(t *testing.T) {
	hub := NewHub(&fakeStore{}, nil)

	err := hub.Register(&fakeConn{}, "lobby")

	assert.ErrorIs(t, err, ErrInvalidRoom)
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub(&fakeStore{}, nil)
	c1 := &fakeConn{}
	c2 := &fakeConn{}
	require.NoError(t, hub.Register(c1, constants.ROOM_KITCHEN))
	require.NoError(t, hub.Register(c2, constants.ROOM_KITCHEN))

	hub.Unregister(c1)
	hub.Unregister(c1)
	hub.Unregister(&fakeConn{}) // never registered

	hub.Broadcast(constants.ROOM_KITCHEN, NewTicket(order("o1", constants.STATUS_NEW, kitchenItem(300))))

	assert.Empty(t, c1.wrote)
	assert.Len(t, c2.wrote, 1)
}

func TestSnapshotProjectsPerRoom(t *testing.T) {
	mixed := order("o1", constants.STATUS_NEW, kitchenItem(600), barItem(60))
	barOnly := order("o2", constants.STATUS_COOKING, barItem(120))
	plating := order("o3", constants.STATUS_READY, kitchenItem(300), barItem(60))
	store := &fakeStore{active: []model.OrderWithItems{mixed, barOnly, plating}}
	hub := NewHub(store, nil)

	kitchen := &fakeConn{}
	hub.SendSnapshot(kitchen, constants.ROOM_KITCHEN)
	msgs := kitchen.messages(t)
	require.Len(t, msgs, 1)
	assert.Equal(t, MsgInitOrders, msgs[0].Type)
	data := msgs[0].Data.(InitOrdersData)
	// o2 has no kitchen lines, o3 is not kitchen-visible.
	require.Len(t, data.Orders, 1)
	assert.Equal(t, "o1", data.Orders[0].ID)
	require.Len(t, data.Orders[0].Items, 1)
	assert.Equal(t, constants.STATION_KITCHEN, data.Orders[0].Items[0].Station)

	bar := &fakeConn{}
	hub.SendSnapshot(bar, constants.ROOM_BAR)
	barData := bar.messages(t)[0].Data.(InitOrdersData)
	require.Len(t, barData.Orders, 2)
	for _, o := range barData.Orders {
		for _, item := range o.Items {
			assert.Equal(t, constants.STATION_BAR, item.Station)
		}
	}

	expo := &fakeConn{}
	hub.SendSnapshot(expo, constants.ROOM_EXPO)
	expoData := expo.messages(t)[0].Data.(InitOrdersData)
	require.Len(t, expoData.Orders, 1)
	assert.Equal(t, "o3", expoData.Orders[0].ID)
	// expo sees the full, unprojected ticket
	assert.Len(t, expoData.Orders[0].Items, 2)

	servers := &fakeConn{}
	hub.SendSnapshot(servers, constants.ROOM_SERVERS)
	serverData := servers.messages(t)[0].Data.(InitOrdersData)
	assert.Empty(t, serverData.Orders)
}

func TestSnapshotStoreFailureDegradesToEmpty(t *testing.T) {
	store := &fakeStore{activeErr: errors.New("db down")}
	hub := NewHub(store, nil)
	c := &fakeConn{}
	require.NoError(t, hub.Register(c, constants.ROOM_KITCHEN))

	hub.SendSnapshot(c, constants.ROOM_KITCHEN)

	msgs := c.messages(t)
	require.Len(t, msgs, 1)
	assert.Equal(t, MsgInitOrders, msgs[0].Type)
	assert.Empty(t, msgs[0].Data.(InitOrdersData).Orders)

	// still registered, still receives live broadcasts
	hub.Broadcast(constants.ROOM_KITCHEN, NewTicket(order("o1", constants.STATUS_NEW, kitchenItem(300))))
	assert.Len(t, c.wrote, 2)
}

func TestOrderCreatedFansOutPerStation(t *testing.T) {
	mixed := order("o1", constants.STATUS_NEW, kitchenItem(600), barItem(60))
	store := &fakeStore{orders: map[string]model.OrderWithItems{"o1": mixed}}
	hub := NewHub(store, nil)

	kitchen := &fakeConn{}
	bar := &fakeConn{}
	expo := &fakeConn{}
	servers := &fakeConn{}
	require.NoError(t, hub.Register(kitchen, constants.ROOM_KITCHEN))
	require.NoError(t, hub.Register(bar, constants.ROOM_BAR))
	require.NoError(t, hub.Register(expo, constants.ROOM_EXPO))
	require.NoError(t, hub.Register(servers, constants.ROOM_SERVERS))

	hub.OrderCreated("o1")

	kitchenMsgs := kitchen.messages(t)
	require.Len(t, kitchenMsgs, 1)
	assert.Equal(t, MsgNewTicket, kitchenMsgs[0].Type)
	kitchenOrder := kitchenMsgs[0].Data.(OrderData).Order
	require.Len(t, kitchenOrder.Items, 1)
	assert.Equal(t, constants.STATION_KITCHEN, kitchenOrder.Items[0].Station)

	barMsgs := bar.messages(t)
	require.Len(t, barMsgs, 1)
	barOrder := barMsgs[0].Data.(OrderData).Order
	require.Len(t, barOrder.Items, 1)
	assert.Equal(t, constants.STATION_BAR, barOrder.Items[0].Station)

	assert.Empty(t, expo.wrote)
	assert.Empty(t, servers.wrote)
}

func TestOrderCreatedSkipsRoomWithoutMatchingLines(t *testing.T) {
	kitchenOnly := order("o1", constants.STATUS_NEW, kitchenItem(600))
	store := &fakeStore{orders: map[string]model.OrderWithItems{"o1": kitchenOnly}}
	hub := NewHub(store, nil)

	bar := &fakeConn{}
	require.NoError(t, hub.Register(bar, constants.ROOM_BAR))

	hub.OrderCreated("o1")

	assert.Empty(t, bar.wrote)
}

func TestNoBroadcastWhenFetchAfterMutationFails(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("read replica down")}
	hub := NewHub(store, nil)

	conns := make([]*fakeConn, 0, len(Rooms))
	for _, room := range Rooms {
		c := &fakeConn{}
		require.NoError(t, hub.Register(c, room))
		conns = append(conns, c)
	}

	hub.OrderCreated("o1")
	hub.OrderStatusUpdated("o1")

	for _, c := range conns {
		assert.Empty(t, c.wrote)
	}
}

func TestStatusUpdateFollowsVisibilityTable(t *testing.T) {
	ready := order("o1", constants.STATUS_READY, kitchenItem(600), barItem(60))
	store := &fakeStore{orders: map[string]model.OrderWithItems{"o1": ready}}
	hub := NewHub(store, nil)

	kitchen := &fakeConn{}
	expo := &fakeConn{}
	servers := &fakeConn{}
	require.NoError(t, hub.Register(kitchen, constants.ROOM_KITCHEN))
	require.NoError(t, hub.Register(expo, constants.ROOM_EXPO))
	require.NoError(t, hub.Register(servers, constants.ROOM_SERVERS))

	// NEW → READY skipped the middle states; the state machine allows it
	// and only the visibility table decides who hears about it.
	hub.OrderStatusUpdated("o1")

	expoMsgs := expo.messages(t)
	require.Len(t, expoMsgs, 1)
	assert.Equal(t, MsgStatusUpdate, expoMsgs[0].Type)
	assert.Len(t, expoMsgs[0].Data.(OrderData).Order.Items, 2)

	assert.Empty(t, kitchen.wrote)
	assert.Empty(t, servers.wrote)
}

func TestCancelledIsVisibleNowhere(t *testing.T) {
	cancelled := order("o1", constants.STATUS_CANCELLED, kitchenItem(600))
	store := &fakeStore{orders: map[string]model.OrderWithItems{"o1": cancelled}}
	hub := NewHub(store, nil)

	for _, room := range Rooms {
		c := &fakeConn{}
		require.NoError(t, hub.Register(c, room))
		defer func(c *fakeConn) { assert.Empty(t, c.wrote) }(c)
	}

	hub.OrderStatusUpdated("o1")
}

func TestPickupFansOutToAllRooms(t *testing.T) {
	pickedUp := order("o1", constants.STATUS_PICKED_UP, barItem(60))
	store := &fakeStore{orders: map[string]model.OrderWithItems{"o1": pickedUp}}
	hub := NewHub(store, nil)

	conns := map[string]*fakeConn{}
	for _, room := range Rooms {
		c := &fakeConn{}
		require.NoError(t, hub.Register(c, room))
		conns[room] = c
	}

	hub.OrderStatusUpdated("o1")

	for room, c := range conns {
		msgs := c.messages(t)
		require.Len(t, msgs, 1, "room %s", room)
		assert.Equal(t, MsgPickedUp, msgs[0].Type)
		assert.Equal(t, "o1", msgs[0].Data.(OrderData).Order.ID)
	}
}

func TestBroadcastSkipsFailingConnections(t *testing.T) {
	hub := NewHub(&fakeStore{}, nil)
	dead := &fakeConn{failWrite: true}
	live := &fakeConn{}
	require.NoError(t, hub.Register(dead, constants.ROOM_EXPO))
	require.NoError(t, hub.Register(live, constants.ROOM_EXPO))

	hub.Broadcast(constants.ROOM_EXPO, StatusUpdate(order("o1", constants.STATUS_READY, kitchenItem(300))))

	assert.Len(t, live.wrote, 1)
}
