package storage

import (
	"testing"
	"time"

	"kds_manager/constants"
	"kds_manager/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&model.MenuItem{}, &model.Modifier{}, &model.Order{}, &model.OrderLine{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedMenu(t *testing.T, db *gorm.DB) (model.MenuItem, model.MenuItem) {
	t.Helper()
	burger := model.MenuItem{
		Slug: "smash-burger", Name: "Smash Burger", Category: "Mains",
		Station: constants.STATION_KITCHEN, CookSeconds: 600, PriceCents: 1450,
		Modifiers: []model.Modifier{{GroupName: "Sauce", Name: "House Aioli", PriceDeltaCents: 50}},
	}
	lager := model.MenuItem{
		Slug: "house-lager", Name: "House Lager", Category: "Beer",
		Station: constants.STATION_BAR, CookSeconds: 60, PriceCents: 700,
	}
	require.NoError(t, db.Create(&burger).Error)
	require.NoError(t, db.Create(&lager).Error)
	return burger, lager
}

func newOrder(status string) *model.Order {
	timerEnd := time.Now().Add(900 * time.Second)
	return &model.Order{
		ID:       uuid.NewString(),
		Floor:    2,
		Bay:      5,
		Status:   status,
		TimerEnd: &timerEnd,
	}
}

func TestCreateOrderRejectsZeroLines(t *testing.T) {
	store := NewGormStore(setupTestDB(t))

	err := store.CreateOrder(newOrder(constants.STATUS_NEW), nil)

	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCreateOrderPersistsLinesInOneTransaction(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormStore(db)
	burger, lager := seedMenu(t, db)

	order := newOrder(constants.STATUS_NEW)
	err := store.CreateOrder(order, []model.OrderLineInput{
		{Id: burger.ID, Qty: 2},
		{Id: lager.ID, Qty: 1},
	})
	require.NoError(t, err)

	view, err := store.OrderWithItems(order.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	assert.Equal(t, order.ID, view.ID)
	assert.Equal(t, constants.STATUS_NEW, view.Status)

	byName := map[string]model.OrderItemView{}
	for _, item := range view.Items {
		byName[item.Name] = item
	}
	assert.Equal(t, 2, byName["Smash Burger"].Qty)
	assert.Equal(t, 1200, byName["Smash Burger"].TotalCookSeconds)
	require.Len(t, byName["Smash Burger"].Modifiers, 1)
	assert.Equal(t, "Sauce", byName["Smash Burger"].Modifiers[0].GroupName)
	assert.Equal(t, 60, byName["House Lager"].TotalCookSeconds)
}

func TestOrderWithItemsNotFound(t *testing.T) {
	store := NewGormStore(setupTestDB(t))

	_, err := store.OrderWithItems(uuid.NewString())

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestActiveOrdersExcludesTerminalStatuses(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormStore(db)
	burger, _ := seedMenu(t, db)

	statuses := []string{
		constants.STATUS_NEW,
		constants.STATUS_COOKING,
		constants.STATUS_READY,
		constants.STATUS_PICKED_UP,
		constants.STATUS_CANCELLED,
	}
	for _, status := range statuses {
		order := newOrder(status)
		require.NoError(t, store.CreateOrder(order, []model.OrderLineInput{{Id: burger.ID, Qty: 1}}))
	}

	active, err := store.ActiveOrders()
	require.NoError(t, err)

	require.Len(t, active, 3)
	for _, order := range active {
		assert.False(t, constants.IsTerminalStatus(order.Status), "status %s should not be active", order.Status)
	}
}

func TestUpdateOrderStatusValidatesMembershipOnly(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormStore(db)
	burger, _ := seedMenu(t, db)

	order := newOrder(constants.STATUS_NEW)
	require.NoError(t, store.CreateOrder(order, []model.OrderLineInput{{Id: burger.ID, Qty: 1}}))

	// Non-adjacent jump is allowed; only set membership is enforced.
	updated, err := store.UpdateOrderStatus(order.ID, constants.STATUS_READY)
	require.NoError(t, err)
	assert.Equal(t, constants.STATUS_READY, updated.Status)

	_, err = store.UpdateOrderStatus(order.ID, "BURNED")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = store.UpdateOrderStatus(uuid.NewString(), constants.STATUS_COOKING)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrderStatusNeverTouchesTimer(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormStore(db)
	burger, _ := seedMenu(t, db)

	order := newOrder(constants.STATUS_NEW)
	require.NoError(t, store.CreateOrder(order, []model.OrderLineInput{{Id: burger.ID, Qty: 1}}))
	originalEnd := *order.TimerEnd

	_, err := store.UpdateOrderStatus(order.ID, constants.STATUS_COOKING)
	require.NoError(t, err)

	view, err := store.OrderWithItems(order.ID)
	require.NoError(t, err)
	require.NotNil(t, view.TimerEnd)
	assert.WithinDuration(t, originalEnd, *view.TimerEnd, time.Second)
}

func TestExternalRefLookup(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormStore(db)
	burger, _ := seedMenu(t, db)

	order := newOrder(constants.STATUS_NEW)
	require.NoError(t, store.CreateOrder(order, []model.OrderLineInput{{Id: burger.ID, Qty: 1}}))
	require.NoError(t, store.SetExternalRef(order.ID, "SQ_123"))

	id, err := store.OrderIDByExternalRef("SQ_123")
	require.NoError(t, err)
	assert.Equal(t, order.ID, id)

	_, err = store.OrderIDByExternalRef("SQ_UNKNOWN")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestActiveMenuItemsFiltersInactive(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormStore(db)
	seedMenu(t, db)

	inactive := model.MenuItem{
		Slug: "off-menu", Name: "Off Menu", Category: "Mains",
		Station: constants.STATION_KITCHEN, CookSeconds: 120, PriceCents: 500,
	}
	require.NoError(t, db.Create(&inactive).Error)
	require.NoError(t, db.Model(&inactive).Update("active", false).Error)

	items, err := store.ActiveMenuItems()
	require.NoError(t, err)

	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEqual(t, "Off Menu", item.Name)
	}
}
