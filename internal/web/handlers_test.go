package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/filizakkol1/pizzeria/internal/cart"
	"github.com/filizakkol1/pizzeria/internal/catalog"
	"github.com/filizakkol1/pizzeria/internal/checkout"
	"github.com/filizakkol1/pizzeria/internal/orders"
	"github.com/filizakkol1/pizzeria/internal/store"
)

type testApp struct {
	router   http.Handler
	engine   *cart.Engine
	orderLog *orders.Log
	store    *store.MemoryStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	st := store.NewMemoryStore()
	logger := zap.NewNop()
	engine := cart.NewEngine(context.Background(), st, logger)
	orderLog := orders.NewLog(st, logger)
	checkoutSvc := checkout.NewService(engine, orderLog, logger)

	renderer, err := NewRenderer()
	require.NoError(t, err)

	handler := NewHandler(catalog.New(), engine, checkoutSvc, renderer, logger)
	return &testApp{
		router:   NewRouter(handler),
		engine:   engine,
		orderLog: orderLog,
		store:    st,
	}
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, request)
	return recorder
}

func addToCart(t *testing.T, app *testApp, productID, size string) {
	t.Helper()
	recorder := app.postForm("/cart/items", url.Values{
		"product_id": {productID},
		"size":       {size},
	})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
}

func validOrderForm() url.Values {
	return url.Values{
		"name":    {"Анна"},
		"phone":   {"+7 (912) 345-67-89"},
		"address": {"ул. Ленина, 1"},
	}
}

func TestStorefront_EmptyCart(t *testing.T) {
	app := newTestApp(t)

	recorder := app.get("/")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, "Маргарита")
	assert.Contains(t, body, `<span class="cart-count">0</span>`)
	assert.Contains(t, body, "Корзина пуста")
}

func TestAddItem_ShowsUpInCartAndBadge(t *testing.T) {
	app := newTestApp(t)

	addToCart(t, app, "1", "30")
	addToCart(t, app, "1", "30")

	body := app.get("/").Body.String()
	assert.Contains(t, body, `<span class="cart-count">2</span>`)
	assert.Contains(t, body, `data-id="1" data-size="30"`)
	assert.Contains(t, body, "649 ₽ × 2")
	assert.Contains(t, body, `<span class="cart__total-price">1298 ₽</span>`)
	assert.NotContains(t, body, "Корзина пуста")
}

func TestAddItem_UnknownProduct(t *testing.T) {
	app := newTestApp(t)

	recorder := app.postForm("/cart/items", url.Values{
		"product_id": {"99"},
		"size":       {"30"},
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, app.engine.Items())
}

func TestAddItem_UnknownSize(t *testing.T) {
	app := newTestApp(t)

	recorder := app.postForm("/cart/items", url.Values{
		"product_id": {"1"},
		"size":       {"40"},
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, app.engine.Items())
}

func TestDecreaseItem_RemovesLastUnit(t *testing.T) {
	app := newTestApp(t)
	addToCart(t, app, "1", "30")

	recorder := app.postForm("/cart/items/decrease", url.Values{
		"product_id": {"1"},
		"size":       {"30"},
	})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Empty(t, app.engine.Items())
}

func TestRemoveItem_StaleKeyIsSilentNoop(t *testing.T) {
	app := newTestApp(t)
	addToCart(t, app, "1", "30")

	recorder := app.postForm("/cart/items/remove", url.Values{
		"product_id": {"1"},
		"size":       {"25"},
	})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Len(t, app.engine.Items(), 1)
}

func TestOrderPage_EmptyCartRedirects(t *testing.T) {
	app := newTestApp(t)

	recorder := app.get("/order")
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))
	assert.NotContains(t, recorder.Body.String(), "orderItems")
}

func TestOrderPage_ShowsSummary(t *testing.T) {
	app := newTestApp(t)
	addToCart(t, app, "1", "30") // 649, below the free-delivery threshold

	recorder := app.get("/order")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, "Маргарита (30 см)")
	assert.Contains(t, body, `<dd id="items-price">649 ₽</dd>`)
	assert.Contains(t, body, `<dd id="delivery-price">200 ₽</dd>`)
	assert.Contains(t, body, `<dd id="total-price">849 ₽</dd>`)
}

func TestOrderPage_FreeDelivery(t *testing.T) {
	app := newTestApp(t)
	addToCart(t, app, "6", "35") // 989
	addToCart(t, app, "6", "35") // 1978 total

	body := app.get("/order").Body.String()
	assert.Contains(t, body, `<dd id="delivery-price">Бесплатно</dd>`)
	assert.Contains(t, body, `<dd id="total-price">1978 ₽</dd>`)
}

func TestSubmitOrder_Success(t *testing.T) {
	app := newTestApp(t)
	addToCart(t, app, "1", "30")
	addToCart(t, app, "2", "25")

	recorder := app.postForm("/order", validOrderForm())
	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, "Заказ оформлен")
	assert.Contains(t, body, "Спасибо, Анна!")
	assert.Contains(t, body, "ул. Ленина, 1")

	// The cart is gone, the order is recorded.
	assert.Empty(t, app.engine.Items())
	ctx := context.Background()
	recorded := app.orderLog.List(ctx)
	require.Len(t, recorded, 1)
	assert.Len(t, recorded[0].Items, 2)

	_, err := app.store.Get(ctx, "cart")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestSubmitOrder_MasksRawPhoneInput(t *testing.T) {
	app := newTestApp(t)
	addToCart(t, app, "1", "30")

	form := validOrderForm()
	form.Set("phone", "89123456789")

	recorder := app.postForm("/order", form)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorded := app.orderLog.List(context.Background())
	require.Len(t, recorded, 1)
	assert.Equal(t, "+7 (912) 345-67-89", recorded[0].Customer.Phone)
}

func TestSubmitOrder_IncompletePhone(t *testing.T) {
	app := newTestApp(t)
	addToCart(t, app, "1", "30")

	form := validOrderForm()
	form.Set("phone", "891234")

	recorder := app.postForm("/order", form)
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Введите корректный номер телефона")

	// Nothing recorded, cart untouched.
	assert.Empty(t, app.orderLog.List(context.Background()))
	assert.Len(t, app.engine.Items(), 1)
}

func TestSubmitOrder_MissingName(t *testing.T) {
	app := newTestApp(t)
	addToCart(t, app, "1", "30")

	form := validOrderForm()
	form.Set("name", "   ")

	recorder := app.postForm("/order", form)
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, "Заполните обязательные поля")
	// The other fields keep their submitted values.
	assert.Contains(t, body, `value="+7 (912) 345-67-89"`)
	assert.Contains(t, body, `value="ул. Ленина, 1"`)
}

func TestSubmitOrder_EmptyCartRedirects(t *testing.T) {
	app := newTestApp(t)

	recorder := app.postForm("/order", validOrderForm())
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))
	assert.Empty(t, app.orderLog.List(context.Background()))
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	recorder := app.get("/health")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
}
