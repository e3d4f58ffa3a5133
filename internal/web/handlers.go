package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/filizakkol1/pizzeria/internal/cart"
	"github.com/filizakkol1/pizzeria/internal/catalog"
	"github.com/filizakkol1/pizzeria/internal/checkout"
	"github.com/filizakkol1/pizzeria/internal/domain"
)

// Handler serves the storefront pages and the cart/checkout endpoints.
// Mutation endpoints identify lines by the (product id, size) pair carried
// in the form data, never by list position.
type Handler struct {
	catalog  *catalog.Catalog
	engine   *cart.Engine
	checkout *checkout.Service
	renderer *Renderer
	log      *zap.Logger
}

func NewHandler(cat *catalog.Catalog, engine *cart.Engine, co *checkout.Service, renderer *Renderer, log *zap.Logger) *Handler {
	return &Handler{
		catalog:  cat,
		engine:   engine,
		checkout: co,
		renderer: renderer,
		log:      log,
	}
}

// NewRouter wires the handler into a chi router with the usual middleware.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", h.Storefront)
	r.Route("/cart/items", func(r chi.Router) {
		r.Post("/", h.AddItem)
		r.Post("/increase", h.IncreaseItem)
		r.Post("/decrease", h.DecreaseItem)
		r.Post("/remove", h.RemoveItem)
	})
	r.Get("/order", h.OrderPage)
	r.Post("/order", h.SubmitOrder)

	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir("images"))))

	return r
}

func (h *Handler) Storefront(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Storefront(w, http.StatusOK, storefrontData{
		Products: h.catalog.Products(),
		Cart:     h.cartView(),
	}); err != nil {
		h.log.Error("failed to render storefront", zap.Error(err))
	}
}

// AddItem resolves the chosen product and size against the catalog and adds
// it to the cart, then sends the customer back to the storefront.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	productID := r.PostFormValue("product_id")
	size := r.PostFormValue("size")

	product, err := h.catalog.Find(productID)
	if err != nil {
		http.Error(w, "unknown product", http.StatusBadRequest)
		return
	}
	price, ok := product.PriceFor(size)
	if !ok {
		http.Error(w, "unknown size", http.StatusBadRequest)
		return
	}

	if err := h.engine.AddItem(r.Context(), cart.Product{
		ProductID: product.ID,
		Name:      product.Name,
		Size:      size,
		UnitPrice: price,
	}); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.engine.IncreaseQuantity)
}

func (h *Handler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.engine.DecreaseQuantity)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.engine.RemoveItem)
}

// mutate runs one of the per-line engine operations against the identity
// key in the form. A stale key is a silent no-op inside the engine, so the
// customer just lands back on the current cart.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, key domain.ItemKey) error) {
	key := domain.ItemKey{
		ProductID: r.PostFormValue("product_id"),
		Size:      r.PostFormValue("size"),
	}

	if err := op(r.Context(), key); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// OrderPage renders the checkout summary and form. An empty cart redirects
// straight back to the storefront: checkout requires a non-empty cart.
func (h *Handler) OrderPage(w http.ResponseWriter, r *http.Request) {
	summary := h.checkout.Summary()
	if len(summary.Items) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.renderer.OrderPage(w, http.StatusOK, orderPageData{
		Summary: summary,
		Count:   h.engine.Count(),
	}); err != nil {
		h.log.Error("failed to render order page", zap.Error(err))
	}
}

// SubmitOrder validates the form and commits the order. The phone field is
// run through the input mask first, mirroring what the storefront's phone
// field did as the customer typed.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	form := orderFormData{
		Name:    r.PostFormValue("name"),
		Phone:   checkout.FormatPhone(r.PostFormValue("phone")),
		Address: r.PostFormValue("address"),
	}

	order, err := h.checkout.Submit(r.Context(), checkout.Input{
		Name:    form.Name,
		Phone:   form.Phone,
		Address: form.Address,
	})
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, checkout.ErrMissingFields):
		h.rerenderOrderPage(w, form, "Заполните обязательные поля")
		return
	case errors.Is(err, checkout.ErrInvalidPhone):
		h.rerenderOrderPage(w, form, "Введите корректный номер телефона")
		return
	case err != nil:
		h.log.Error("failed to submit order", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.renderer.Confirmation(w, http.StatusOK, confirmationData{Order: *order}); err != nil {
		h.log.Error("failed to render confirmation", zap.Error(err))
	}
}

func (h *Handler) rerenderOrderPage(w http.ResponseWriter, form orderFormData, message string) {
	if err := h.renderer.OrderPage(w, http.StatusUnprocessableEntity, orderPageData{
		Summary: h.checkout.Summary(),
		Count:   h.engine.Count(),
		Form:    form,
		Message: message,
	}); err != nil {
		h.log.Error("failed to render order page", zap.Error(err))
	}
}

func (h *Handler) cartView() cartView {
	items := h.engine.Items()

	view := cartView{
		Empty:        len(items) == 0,
		Count:        h.engine.Count(),
		TotalDisplay: domain.FormatPrice(h.engine.Total()),
	}
	for _, item := range items {
		view.Items = append(view.Items, cartItemView{
			LineItem: item,
			Image:    h.catalog.ImageName(item.ProductID),
		})
	}
	return view
}
