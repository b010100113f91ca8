package service_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"checkout-service/internal/migrate"
	"checkout-service/internal/models"
	"checkout-service/internal/ordernum"
	"checkout-service/internal/repository"
	"checkout-service/internal/service"
	"checkout-service/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chanNotifier struct {
	ch  chan service.OrderPlacedEvent
	err error
}

func (n *chanNotifier) SendOrderConfirmation(_ context.Context, e service.OrderPlacedEvent) error {
	n.ch <- e
	return n.err
}

type env struct {
	repo     *repository.Repository
	catalog  service.CatalogService
	cart     service.CartService
	checkout service.CheckoutService
	orders   service.OrderService
	refunds  service.RefundService
	notifier *chanNotifier
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateCheckoutDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := repository.New(db)
	n := &chanNotifier{ch: make(chan service.OrderPlacedEvent, 64)}
	return &env{
		repo:    repo,
		catalog: service.NewCatalogService(repo, nil, nil, nil),
		cart:    service.NewCartService(repo, nil),
		checkout: service.NewCheckoutService(service.CheckoutDeps{
			Repo:     repo,
			Numbers:  ordernum.New(),
			Notifier: n,
		}, service.CheckoutOptions{Timeout: 30 * time.Second}),
		orders:   service.NewOrderService(repo, nil, nil, nil),
		refunds:  service.NewRefundService(repo, nil, nil),
		notifier: n,
	}
}

func adminCtx() context.Context {
	return service.WithPrincipal(context.Background(), uuid.New(), service.RoleAdmin, "")
}

func seedProduct(t *testing.T, repo *repository.Repository, name, price, tax string, stock int32) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:       name,
		Slug:       service.Slugify(name) + "-" + uuid.NewString()[:8],
		Price:      decimal.RequireFromString(price),
		TaxPercent: decimal.RequireFromString(tax),
		Stock:      stock,
		IsActive:   true,
	}
	require.NoError(t, repo.Products.Create(context.Background(), p))
	return p
}

func stockOf(t *testing.T, repo *repository.Repository, id uuid.UUID) int32 {
	t.Helper()
	p, err := repo.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func countOrders(t *testing.T, repo *repository.Repository) int64 {
	t.Helper()
	var n int64
	require.NoError(t, repo.DB.Model(&models.Order{}).Count(&n).Error)
	return n
}

var shipping = service.ShippingInfo{Address: "221B Baker St", City: "Toronto", PostalCode: "M5V 2T6", Phone: "+1 416 555 0100"}

func TestCheckout_FreezesTotalsAndClearsCart(t *testing.T) {
	e := setupEnv(t)
	ctx := customerCtx()

	a := seedProduct(t, e.repo, "Tea Pot", "10.00", "10", 5)
	b := seedProduct(t, e.repo, "Spoon", "5.00", "0", 5)

	cartBefore, err := e.cart.GetOrCreate(ctx)
	require.NoError(t, err)
	_, err = e.cart.AddItem(ctx, a.ID, 2)
	require.NoError(t, err)
	_, err = e.cart.AddItem(ctx, b.ID, 1)
	require.NoError(t, err)

	ord, err := e.checkout.PlaceOrder(ctx, shipping)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, ord.Status)
	assert.True(t, ordernum.Valid(ord.OrderNumber), ord.OrderNumber)
	assert.Equal(t, "25.00", ord.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", ord.TaxAmount.StringFixed(2))
	assert.Equal(t, "27.00", ord.TotalAmount.StringFixed(2))
	assert.Equal(t, "Canada", ord.Country)
	assert.Equal(t, "221B Baker St", ord.ShippingAddress)
	require.Len(t, ord.Items, 2)

	assert.Equal(t, int32(3), stockOf(t, e.repo, a.ID))
	assert.Equal(t, int32(4), stockOf(t, e.repo, b.ID))

	view, err := e.cart.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Cart.Items)
	assert.Equal(t, cartBefore.ID, view.Cart.ID)

	cartAfter, err := e.cart.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.Equal(t, cartBefore.ID, cartAfter.ID)

	select {
	case ev := <-e.notifier.ch:
		assert.Equal(t, ord.OrderNumber, ev.OrderNumber)
		assert.Equal(t, "buyer@example.com", ev.Email)
		assert.Equal(t, "27.00", ev.Total)
	case <-time.After(5 * time.Second):
		t.Fatal("confirmation was not sent")
	}
}

func TestCheckout_InsufficientStockRollsBackEverything(t *testing.T) {
	e := setupEnv(t)
	ctx := customerCtx()

	plenty := seedProduct(t, e.repo, "Plenty", "3.00", "5", 10)
	scarce := seedProduct(t, e.repo, "Scarce", "7.50", "5", 1)

	_, err := e.cart.AddItem(ctx, plenty.ID, 2)
	require.NoError(t, err)
	_, err = e.cart.AddItem(ctx, scarce.ID, 3)
	require.NoError(t, err)

	_, err = e.checkout.PlaceOrder(ctx, shipping)
	var ise *service.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, scarce.ID, ise.ProductID)
	assert.Equal(t, int32(3), ise.Requested)
	assert.Equal(t, int32(1), ise.Available)

	assert.Zero(t, countOrders(t, e.repo))
	var items int64
	require.NoError(t, e.repo.DB.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)
	assert.Equal(t, int32(10), stockOf(t, e.repo, plenty.ID))
	assert.Equal(t, int32(1), stockOf(t, e.repo, scarce.ID))

	view, err := e.cart.GetCart(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Cart.Items, 2)
}

func TestCheckout_NoOversellUnderConcurrency(t *testing.T) {
	e := setupEnv(t)

	const (
		stock   = 7
		qty     = 2
		buyers  = 12
		success = stock / qty
	)
	p := seedProduct(t, e.repo, "Limited", "20.00", "0", stock)

	ctxs := make([]context.Context, buyers)
	for i := range ctxs {
		ctxs[i] = customerCtx()
		_, err := e.cart.AddItem(ctxs[i], p.ID, qty)
		require.NoError(t, err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)
	start := make(chan struct{})
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(ctx context.Context) {
			defer wg.Done()
			<-start
			_, err := e.checkout.PlaceOrder(ctx, shipping)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			failures = append(failures, err)
		}(ctxs[i])
	}
	close(start)
	wg.Wait()

	assert.Equal(t, success, succeeded)
	for _, err := range failures {
		assert.ErrorIs(t, err, service.ErrInsufficientStock)
	}
	assert.Equal(t, int32(stock-qty*success), stockOf(t, e.repo, p.ID))
	assert.Equal(t, int64(success), countOrders(t, e.repo))
}

func TestCheckout_DoubleSubmitPlacesOneOrder(t *testing.T) {
	e := setupEnv(t)
	ctx := customerCtx()
	p := seedProduct(t, e.repo, "Double", "9.00", "0", 10)

	_, err := e.cart.AddItem(ctx, p.ID, 3)
	require.NoError(t, err)

	const submits = 4
	var wg sync.WaitGroup
	errs := make(chan error, submits)
	start := make(chan struct{})
	for i := 0; i < submits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := e.checkout.PlaceOrder(ctx, shipping)
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	placed := 0
	for err := range errs {
		if err == nil {
			placed++
			continue
		}
		assert.ErrorIs(t, err, service.ErrEmptyCart)
	}
	assert.Equal(t, 1, placed)
	assert.Equal(t, int64(1), countOrders(t, e.repo))
	assert.Equal(t, int32(7), stockOf(t, e.repo, p.ID))
}

// scriptedNumbers отдаёт заданные номера по очереди, потом случайные.
type scriptedNumbers struct {
	mu     sync.Mutex
	script []string
	calls  int
	next   ordernum.Generator
}

func (g *scriptedNumbers) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if len(g.script) > 0 {
		n := g.script[0]
		g.script = g.script[1:]
		return n, nil
	}
	return g.next.Next()
}

func TestCheckout_OrderNumberCollisionRetries(t *testing.T) {
	e := setupEnv(t)
	p := seedProduct(t, e.repo, "Collide", "2.00", "0", 10)

	first := customerCtx()
	_, err := e.cart.AddItem(first, p.ID, 1)
	require.NoError(t, err)
	taken, err := e.checkout.PlaceOrder(first, shipping)
	require.NoError(t, err)

	gen := &scriptedNumbers{script: []string{taken.OrderNumber}, next: ordernum.New()}
	checkout := service.NewCheckoutService(service.CheckoutDeps{Repo: e.repo, Numbers: gen},
		service.CheckoutOptions{Timeout: 30 * time.Second, NumberAttempts: 3})

	second := customerCtx()
	_, err = e.cart.AddItem(second, p.ID, 2)
	require.NoError(t, err)
	ord, err := checkout.PlaceOrder(second, shipping)
	require.NoError(t, err)

	assert.NotEqual(t, taken.OrderNumber, ord.OrderNumber)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, int64(2), countOrders(t, e.repo))
	assert.Equal(t, int32(7), stockOf(t, e.repo, p.ID))
}

func TestCheckout_OrderNumberCollisionGivesUp(t *testing.T) {
	e := setupEnv(t)
	p := seedProduct(t, e.repo, "Unlucky", "2.00", "0", 10)

	first := customerCtx()
	_, err := e.cart.AddItem(first, p.ID, 1)
	require.NoError(t, err)
	taken, err := e.checkout.PlaceOrder(first, shipping)
	require.NoError(t, err)

	gen := &scriptedNumbers{
		script: []string{taken.OrderNumber, taken.OrderNumber, taken.OrderNumber},
		next:   ordernum.New(),
	}
	checkout := service.NewCheckoutService(service.CheckoutDeps{Repo: e.repo, Numbers: gen},
		service.CheckoutOptions{Timeout: 30 * time.Second, NumberAttempts: 3})

	second := customerCtx()
	_, err = e.cart.AddItem(second, p.ID, 2)
	require.NoError(t, err)
	_, err = checkout.PlaceOrder(second, shipping)

	var aborted *service.TransactionAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.ErrorIs(t, err, service.ErrTransactionAborted)
	assert.True(t, repository.IsUniqueViolation(aborted.Cause, "idx_orders_order_number"))
	assert.Equal(t, 3, gen.calls)

	assert.Equal(t, int64(1), countOrders(t, e.repo))
	assert.Equal(t, int32(9), stockOf(t, e.repo, p.ID))
	view, err := e.cart.GetCart(second)
	require.NoError(t, err)
	assert.Len(t, view.Cart.Items, 1)
}

func TestCheckout_TimeoutAbortsWithoutPartialState(t *testing.T) {
	e := setupEnv(t)
	ctx := customerCtx()
	free := seedProduct(t, e.repo, "Free", "1.00", "0", 10)
	held := seedProduct(t, e.repo, "Held", "1.00", "0", 10)

	_, err := e.cart.AddItem(ctx, free.ID, 1)
	require.NoError(t, err)
	_, err = e.cart.AddItem(ctx, held.ID, 1)
	require.NoError(t, err)

	// чужая транзакция держит строку товара, checkout упирается в таймаут
	holder := e.repo.DB.Begin()
	require.NoError(t, holder.Error)
	var locked models.Product
	require.NoError(t, holder.Raw("SELECT * FROM products WHERE id = ? FOR UPDATE", held.ID).Scan(&locked).Error)

	checkout := service.NewCheckoutService(service.CheckoutDeps{Repo: e.repo},
		service.CheckoutOptions{Timeout: 500 * time.Millisecond})
	_, err = checkout.PlaceOrder(ctx, shipping)
	require.NoError(t, holder.Rollback().Error)

	var aborted *service.TransactionAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.ErrorIs(t, err, service.ErrTransactionAborted)

	assert.Zero(t, countOrders(t, e.repo))
	var items int64
	require.NoError(t, e.repo.DB.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)
	assert.Equal(t, int32(10), stockOf(t, e.repo, free.ID))
	assert.Equal(t, int32(10), stockOf(t, e.repo, held.ID))

	view, err := e.cart.GetCart(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Cart.Items, 2)
}

func TestCheckout_OpposingCartOrderDoesNotDeadlock(t *testing.T) {
	e := setupEnv(t)
	a := seedProduct(t, e.repo, "Left", "1.00", "0", 100)
	b := seedProduct(t, e.repo, "Right", "1.00", "0", 100)

	const buyers = 10
	ctxs := make([]context.Context, buyers)
	for i := range ctxs {
		ctxs[i] = customerCtx()
		first, second := a, b
		if i%2 == 1 {
			first, second = b, a
		}
		_, err := e.cart.AddItem(ctxs[i], first.ID, 1)
		require.NoError(t, err)
		_, err = e.cart.AddItem(ctxs[i], second.ID, 1)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for _, ctx := range ctxs {
		wg.Add(1)
		go func(ctx context.Context) {
			defer wg.Done()
			_, err := e.checkout.PlaceOrder(ctx, shipping)
			errs <- err
		}(ctx)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(100-buyers), stockOf(t, e.repo, a.ID))
	assert.Equal(t, int32(100-buyers), stockOf(t, e.repo, b.ID))
}

func TestCheckout_SnapshotSurvivesCatalogChanges(t *testing.T) {
	e := setupEnv(t)
	ctx := customerCtx()
	p := seedProduct(t, e.repo, "Lamp", "15.00", "13", 10)

	_, err := e.cart.AddItem(ctx, p.ID, 3)
	require.NoError(t, err)
	ord, err := e.checkout.PlaceOrder(ctx, shipping)
	require.NoError(t, err)

	_, err = e.orders.MarkAsPaid(adminCtx(), ord.ID, "stripe", "pi_123")
	require.NoError(t, err)

	require.NoError(t, e.repo.Products.UpdateFields(context.Background(), p.ID, map[string]any{
		"price":       decimal.RequireFromString("99.00"),
		"tax_percent": decimal.RequireFromString("25"),
	}))

	got, err := e.orders.GetOrder(ctx, ord.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	it := got.Items[0]
	assert.Equal(t, "15.00", it.UnitPrice.StringFixed(2))
	assert.Equal(t, "5.85", it.TaxAmount.StringFixed(2))
	assert.Equal(t, "50.85", it.LineTotal.StringFixed(2))
	assert.Equal(t, "Lamp", it.ProductName)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
	assert.NotNil(t, got.PaidAt)
	assert.Equal(t, "pi_123", got.PaymentReference)

	it.Quantity = 1
	err = e.repo.OrderItems.Save(context.Background(), &it)
	require.ErrorIs(t, err, service.ErrImmutableOrder)

	_, err = e.orders.RecalculateTotals(adminCtx(), ord.ID)
	require.ErrorIs(t, err, service.ErrImmutableOrder)

	_, err = e.orders.MarkAsPaid(adminCtx(), ord.ID, "stripe", "pi_123")
	require.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestCheckout_NotificationFailureKeepsOrder(t *testing.T) {
	e := setupEnv(t)
	e.notifier.err = errors.New("smtp down")
	ctx := customerCtx()
	p := seedProduct(t, e.repo, "Kettle", "40.00", "0", 2)

	_, err := e.cart.AddItem(ctx, p.ID, 1)
	require.NoError(t, err)
	ord, err := e.checkout.PlaceOrder(ctx, shipping)
	require.NoError(t, err)

	select {
	case <-e.notifier.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("notifier not called")
	}

	got, err := e.orders.GetOrder(ctx, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestCart_AddTwiceMergesLine(t *testing.T) {
	e := setupEnv(t)
	ctx := customerCtx()
	p := seedProduct(t, e.repo, "Pen", "1.20", "0", 100)

	first, err := e.cart.AddItem(ctx, p.ID, 2)
	require.NoError(t, err)
	second, err := e.cart.AddItem(ctx, p.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int32(5), second.Quantity)

	view, err := e.cart.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, view.Cart.Items, 1)
	assert.Equal(t, int32(5), view.Cart.Items[0].Quantity)
}

func TestCart_UpdateItemDelta(t *testing.T) {
	e := setupEnv(t)
	ctx := customerCtx()
	p := seedProduct(t, e.repo, "Cup", "4.00", "0", 3)

	item, err := e.cart.AddItem(ctx, p.ID, 2)
	require.NoError(t, err)

	up, removed, err := e.cart.UpdateItem(ctx, item.ID, +1)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, int32(3), up.Quantity)

	_, _, err = e.cart.UpdateItem(ctx, item.ID, +1)
	require.ErrorIs(t, err, service.ErrInsufficientStock)

	_, removed, err = e.cart.UpdateItem(ctx, item.ID, -5)
	require.NoError(t, err)
	assert.True(t, removed)

	_, _, err = e.cart.UpdateItem(ctx, item.ID, -1)
	require.ErrorIs(t, err, service.ErrCartItemNotFound)
	require.ErrorIs(t, e.cart.RemoveItem(ctx, item.ID), service.ErrCartItemNotFound)
}

func TestCart_InactiveProductRejected(t *testing.T) {
	e := setupEnv(t)
	p := seedProduct(t, e.repo, "Retired", "1.00", "0", 10)
	require.NoError(t, e.repo.Products.UpdateFields(context.Background(), p.ID, map[string]any{"is_active": false}))

	_, err := e.cart.AddItem(customerCtx(), p.ID, 1)
	require.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestOrders_BulkCancelRestoresStock(t *testing.T) {
	e := setupEnv(t)
	p := seedProduct(t, e.repo, "Chair", "50.00", "0", 10)

	place := func() *models.Order {
		ctx := customerCtx()
		_, err := e.cart.AddItem(ctx, p.ID, 2)
		require.NoError(t, err)
		ord, err := e.checkout.PlaceOrder(ctx, shipping)
		require.NoError(t, err)
		return ord
	}
	pending := place()
	paid := place()
	_, err := e.orders.MarkAsPaid(adminCtx(), paid.ID, "manual", "cash")
	require.NoError(t, err)
	assert.Equal(t, int32(6), stockOf(t, e.repo, p.ID))

	missing := uuid.New()
	res, err := e.orders.BulkCancel(adminCtx(), []uuid.UUID{pending.ID, paid.ID, missing, pending.ID}, "customer request")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{pending.ID}, res.Cancelled)
	assert.Len(t, res.Skipped, 2)

	got, err := e.orders.GetOrder(adminCtx(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)
	require.NotNil(t, got.CancelReason)
	assert.Equal(t, "customer request", *got.CancelReason)
	assert.Equal(t, int32(8), stockOf(t, e.repo, p.ID))

	_, err = e.orders.BulkCancel(customerCtx(), []uuid.UUID{paid.ID}, "")
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestOrders_BulkCancelReportsFailedOrderAndContinues(t *testing.T) {
	e := setupEnv(t)
	ok := seedProduct(t, e.repo, "Sofa", "300.00", "0", 10)
	overflow := seedProduct(t, e.repo, "Cushion", "5.00", "0", 10)

	place := func(p *models.Product) *models.Order {
		ctx := customerCtx()
		_, err := e.cart.AddItem(ctx, p.ID, 2)
		require.NoError(t, err)
		ord, err := e.checkout.PlaceOrder(ctx, shipping)
		require.NoError(t, err)
		return ord
	}
	good := place(ok)
	bad := place(overflow)

	// возврат остатка переполнит int4, транзакция этого заказа упадёт
	require.NoError(t, e.repo.Products.UpdateFields(context.Background(), overflow.ID, map[string]any{"stock": int32(math.MaxInt32)}))

	res, err := e.orders.BulkCancel(adminCtx(), []uuid.UUID{bad.ID, good.ID}, "warehouse closed")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{good.ID}, res.Cancelled)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, bad.ID, res.Skipped[0].OrderID)
	assert.Equal(t, "cancel failed: internal error", res.Skipped[0].Reason)

	got, err := e.orders.GetOrder(adminCtx(), good.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)
	assert.Equal(t, int32(10), stockOf(t, e.repo, ok.ID))

	still, err := e.orders.GetOrder(adminCtx(), bad.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, still.Status)
	assert.Nil(t, still.CancelReason)
}

func TestOrders_AdvanceAlongLifecycle(t *testing.T) {
	e := setupEnv(t)
	ctx := customerCtx()
	p := seedProduct(t, e.repo, "Desk", "120.00", "0", 1)
	_, err := e.cart.AddItem(ctx, p.ID, 1)
	require.NoError(t, err)
	ord, err := e.checkout.PlaceOrder(ctx, shipping)
	require.NoError(t, err)

	_, err = e.orders.AdvanceStatus(adminCtx(), ord.ID, models.OrderStatusShipped)
	require.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = e.orders.MarkAsPaid(adminCtx(), ord.ID, "stripe", "pi_9")
	require.NoError(t, err)
	for _, st := range []models.OrderStatus{models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCompleted} {
		got, err := e.orders.AdvanceStatus(adminCtx(), ord.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}

	// other customers cannot see the order
	_, err = e.orders.GetOrder(customerCtx(), ord.ID)
	require.ErrorIs(t, err, service.ErrOrderNotFound)
	byNumber, err := e.orders.GetOrderByNumber(ctx, ord.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, ord.ID, byNumber.ID)

	list, total, err := e.orders.ListOrders(ctx, service.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
}

func TestRefunds_LimitsAndCompletion(t *testing.T) {
	e := setupEnv(t)
	ctx := customerCtx()
	p := seedProduct(t, e.repo, "Headphones", "100.00", "10", 5)
	_, err := e.cart.AddItem(ctx, p.ID, 2)
	require.NoError(t, err)
	ord, err := e.checkout.PlaceOrder(ctx, shipping)
	require.NoError(t, err)
	itemID := ord.Items[0].ID

	_, err = e.refunds.RequestRefund(adminCtx(), ord.ID, service.RefundInput{Items: []service.RefundItemInput{{OrderItemID: itemID, Quantity: 1}}})
	require.ErrorIs(t, err, service.ErrRefundNotAllowed)

	_, err = e.orders.MarkAsPaid(adminCtx(), ord.ID, "stripe", "pi_r")
	require.NoError(t, err)

	first, err := e.refunds.RequestRefund(adminCtx(), ord.ID, service.RefundInput{
		Reason: "one was broken",
		Items:  []service.RefundItemInput{{OrderItemID: itemID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RefundStatusRequested, first.Status)
	assert.Equal(t, "110.00", first.Amount.StringFixed(2))

	_, err = e.refunds.RequestRefund(adminCtx(), ord.ID, service.RefundInput{
		Items: []service.RefundItemInput{{OrderItemID: itemID, Quantity: 2}},
	})
	require.ErrorIs(t, err, service.ErrRefundQuantity)

	second, err := e.refunds.RequestRefund(adminCtx(), ord.ID, service.RefundInput{
		Items: []service.RefundItemInput{{OrderItemID: itemID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = e.refunds.MarkRefundProcessing(adminCtx(), first.ID)
	require.NoError(t, err)
	done, err := e.refunds.CompleteRefund(adminCtx(), first.ID, "stripe", "re_1")
	require.NoError(t, err)
	assert.Equal(t, models.RefundStatusCompleted, done.Status)
	assert.NotNil(t, done.ProcessedAt)

	_, err = e.refunds.FailRefund(adminCtx(), first.ID, "late")
	require.ErrorIs(t, err, service.ErrRefundTransition)

	mid, err := e.orders.GetOrder(adminCtx(), ord.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, mid.Status)

	_, err = e.refunds.CompleteRefund(adminCtx(), second.ID, "stripe", "re_2")
	require.NoError(t, err)

	final, err := e.orders.GetOrder(adminCtx(), ord.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusRefunded, final.Status)
	assert.Equal(t, "100.00", final.Items[0].UnitPrice.StringFixed(2))

	list, err := e.refunds.ListRefunds(ctx, ord.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = e.refunds.ListRefunds(customerCtx(), ord.ID)
	require.ErrorIs(t, err, service.ErrOrderNotFound)
}

func TestRefunds_UnitByUnitReachesRefunded(t *testing.T) {
	e := setupEnv(t)
	ctx := customerCtx()
	p := seedProduct(t, e.repo, "Socks", "1.00", "7.5", 5)
	_, err := e.cart.AddItem(ctx, p.ID, 3)
	require.NoError(t, err)
	ord, err := e.checkout.PlaceOrder(ctx, shipping)
	require.NoError(t, err)
	require.Equal(t, "3.23", ord.TotalAmount.StringFixed(2))
	_, err = e.orders.MarkAsPaid(adminCtx(), ord.ID, "stripe", "pi_s")
	require.NoError(t, err)

	itemID := ord.Items[0].ID
	var amounts []string
	for i := 0; i < 3; i++ {
		rf, err := e.refunds.RequestRefund(adminCtx(), ord.ID, service.RefundInput{
			Items: []service.RefundItemInput{{OrderItemID: itemID, Quantity: 1}},
		})
		require.NoError(t, err)
		amounts = append(amounts, rf.Amount.StringFixed(2))
		_, err = e.refunds.CompleteRefund(adminCtx(), rf.ID, "stripe", "re_s")
		require.NoError(t, err)

		got, err := e.orders.GetOrder(adminCtx(), ord.ID)
		require.NoError(t, err)
		if i < 2 {
			assert.Equal(t, models.OrderStatusPaid, got.Status)
		} else {
			assert.Equal(t, models.OrderStatusRefunded, got.Status)
		}
	}
	assert.Equal(t, []string{"1.08", "1.07", "1.08"}, amounts)
}

func TestCatalog_SlugsAndSKU(t *testing.T) {
	e := setupEnv(t)
	admin := adminCtx()

	cat, err := e.catalog.CreateCategory(admin, "Kitchen Ware")
	require.NoError(t, err)
	assert.Equal(t, "kitchen-ware", cat.Slug)
	_, err = e.catalog.CreateCategory(admin, "Kitchen Ware")
	require.ErrorIs(t, err, service.ErrCategoryExists)

	in := service.ProductInput{CategoryID: &cat.ID, Name: "Blue Mug", SKU: "MUG-1", Price: decimal.RequireFromString("8.00"), Stock: 3, IsActive: true}
	p1, err := e.catalog.CreateProduct(admin, in)
	require.NoError(t, err)
	assert.Equal(t, "blue-mug", p1.Slug)

	_, err = e.catalog.CreateProduct(admin, in)
	require.ErrorIs(t, err, service.ErrSKUAlreadyExists)

	in.SKU = "MUG-2"
	p2, err := e.catalog.CreateProduct(admin, in)
	require.NoError(t, err)
	assert.Equal(t, "blue-mug-1", p2.Slug)

	list, total, err := e.catalog.ListProducts(context.Background(), service.ProductListFilter{CategorySlug: "kitchen-ware"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	restocked, err := e.catalog.Restock(admin, p1.ID, -3)
	require.NoError(t, err)
	assert.Zero(t, restocked.Stock)
	_, err = e.catalog.Restock(admin, p1.ID, -1)
	require.ErrorIs(t, err, service.ErrInvalidProduct)

	// referenced by an order item: deletion is rejected
	_, err = e.catalog.Restock(admin, p2.ID, 1)
	require.NoError(t, err)
	ctx := customerCtx()
	_, err = e.cart.AddItem(ctx, p2.ID, 1)
	require.NoError(t, err)
	_, err = e.checkout.PlaceOrder(ctx, shipping)
	require.NoError(t, err)
	require.ErrorIs(t, e.catalog.DeleteProduct(admin, p2.ID), service.ErrProductInUse)
	require.NoError(t, e.catalog.DeleteProduct(admin, p1.ID))
	_, err = e.catalog.GetProduct(context.Background(), p1.ID)
	require.ErrorIs(t, err, service.ErrProductNotFound)
}
