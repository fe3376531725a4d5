package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingOrderPublisher struct {
	orders []uint
	err    error
}

func (p *recordingOrderPublisher) PublishOrderPlaced(_ context.Context, order *model.Order) error {
	p.orders = append(p.orders, order.ID)
	return p.err
}

type recordingJSONPublisher struct {
	queue string
	msg   interface{}
}

func (p *recordingJSONPublisher) PublishJSON(_ context.Context, queue string, v interface{}) error {
	p.queue = queue
	p.msg = v
	return nil
}

func setupOrderServiceTest(t *testing.T, events OrderEventPublisher) (OrderService, CartService, *gorm.DB) {
	testDB := setupServiceTestDB(t)
	cartRepo := repository.NewCartRepository(testDB)
	orderService := NewOrderService(repository.NewOrderRepository(testDB), cartRepo, testDB, events)
	cartService := NewCartService(cartRepo, repository.NewProductRepository(testDB), testDB)
	return orderService, cartService, testDB
}

func TestOrderService_Checkout(t *testing.T) {
	events := &recordingOrderPublisher{}
	orderService, cartService, testDB := setupOrderServiceTest(t, events)
	user := createUser(t, testDB, "alice")
	tote := createProduct(t, testDB, "Tote", "Bags", 19.99)
	belt := createProduct(t, testDB, "Belt", "Accessories", 0.1)

	_, _, err := cartService.AddToCart(user.ID, tote.ID, 3)
	require.NoError(t, err)
	_, _, err = cartService.AddToCart(user.ID, belt.ID, 3)
	require.NoError(t, err)

	order, err := orderService.Checkout(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 60.27, order.TotalPrice)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 59.97, order.Items[0].Price)
	assert.Equal(t, 0.3, order.Items[1].Price)
	assert.Equal(t, "Tote", order.Items[0].Product.Name)

	cart, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	assert.Equal(t, []uint{order.ID}, events.orders)
}

func TestOrderService_Checkout_UsesCurrentPrice(t *testing.T) {
	orderService, cartService, testDB := setupOrderServiceTest(t, nil)
	user := createUser(t, testDB, "bob")
	watch := createProduct(t, testDB, "Watch", "Watches", 150)

	_, _, err := cartService.AddToCart(user.ID, watch.ID, 2)
	require.NoError(t, err)

	require.NoError(t, testDB.Model(watch).Update("price", 175).Error)

	order, err := orderService.Checkout(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, order.TotalPrice)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	events := &recordingOrderPublisher{}
	orderService, cartService, testDB := setupOrderServiceTest(t, events)
	user := createUser(t, testDB, "carol")
	tote := createProduct(t, testDB, "Tote", "Bags", 120)

	// no cart at all
	_, err := orderService.Checkout(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	// cart exists but has no lines
	_, _, err = cartService.AddToCart(user.ID, tote.ID, 1)
	require.NoError(t, err)
	require.NoError(t, cartService.RemoveItem(user.ID, tote.ID))

	_, err = orderService.Checkout(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var orders int64
	require.NoError(t, testDB.Model(&model.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
	assert.Empty(t, events.orders)
}

func TestOrderService_Checkout_OnlyDeletedProducts(t *testing.T) {
	orderService, cartService, testDB := setupOrderServiceTest(t, nil)
	user := createUser(t, testDB, "dave")
	tote := createProduct(t, testDB, "Tote", "Bags", 120)

	_, _, err := cartService.AddToCart(user.ID, tote.ID, 1)
	require.NoError(t, err)
	require.NoError(t, testDB.Delete(&model.Product{}, tote.ID).Error)

	_, err = orderService.Checkout(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	// the orphaned line is untouched by the rolled back checkout
	var lines int64
	require.NoError(t, testDB.Model(&model.CartItem{}).Count(&lines).Error)
	assert.EqualValues(t, 1, lines)
}

func TestOrderService_Checkout_PublishFailureIsNotFatal(t *testing.T) {
	events := &recordingOrderPublisher{err: errors.New("broker unavailable")}
	orderService, cartService, testDB := setupOrderServiceTest(t, events)
	user := createUser(t, testDB, "erin")
	tote := createProduct(t, testDB, "Tote", "Bags", 120)

	_, _, err := cartService.AddToCart(user.ID, tote.ID, 1)
	require.NoError(t, err)

	order, err := orderService.Checkout(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Len(t, events.orders, 1)
}

func TestOrderService_History(t *testing.T) {
	orderService, cartService, testDB := setupOrderServiceTest(t, nil)
	user := createUser(t, testDB, "frank")
	other := createUser(t, testDB, "grace")
	tote := createProduct(t, testDB, "Tote", "Bags", 120)

	for _, u := range []uint{user.ID, user.ID, other.ID} {
		_, _, err := cartService.AddToCart(u, tote.ID, 1)
		require.NoError(t, err)
		_, err = orderService.Checkout(context.Background(), u)
		require.NoError(t, err)
	}

	orders, err := orderService.History(user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Greater(t, orders[0].ID, orders[1].ID)
}

func TestQueueOrderEventPublisher(t *testing.T) {
	json := &recordingJSONPublisher{}
	publisher := NewQueueOrderEventPublisher(json, "orders.placed")

	order := &model.Order{
		ID:         4,
		UserID:     2,
		TotalPrice: 240,
		Items:      []model.OrderItem{{ProductID: 1, Quantity: 2, Price: 240}},
	}
	require.NoError(t, publisher.PublishOrderPlaced(context.Background(), order))

	assert.Equal(t, "orders.placed", json.queue)
	event, ok := json.msg.(OrderPlacedEvent)
	require.True(t, ok)
	assert.Equal(t, uint(4), event.OrderID)
	require.Len(t, event.Items, 1)
	assert.Equal(t, 240.0, event.Items[0].Price)
}
