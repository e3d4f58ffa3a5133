package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/filizakkol1/pizzeria/internal/catalog"
	"github.com/filizakkol1/pizzeria/internal/checkout"
	"github.com/filizakkol1/pizzeria/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer projects application state into HTML pages. Rendering is a pure
// function of the data passed in: the templates hold no state and each row
// carries the (product id, size) identity of its line item, so controls
// always resolve to the right line no matter how the list is reordered.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"price": domain.FormatPrice,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// cartItemView is one rendered cart row: the line item plus its photo name.
type cartItemView struct {
	domain.LineItem
	Image string
}

type cartView struct {
	Items        []cartItemView
	Empty        bool
	Count        int
	TotalDisplay string
}

type storefrontData struct {
	Products []catalog.Product
	Cart     cartView
}

type orderFormData struct {
	Name    string
	Phone   string
	Address string
}

type orderPageData struct {
	Summary checkout.Summary
	Count   int
	Form    orderFormData
	Message string
}

type confirmationData struct {
	Order domain.Order
}

func (r *Renderer) Storefront(w http.ResponseWriter, status int, data storefrontData) error {
	return r.render(w, status, "storefront.tmpl", data)
}

func (r *Renderer) OrderPage(w http.ResponseWriter, status int, data orderPageData) error {
	return r.render(w, status, "order.tmpl", data)
}

func (r *Renderer) Confirmation(w http.ResponseWriter, status int, data confirmationData) error {
	return r.render(w, status, "confirmation.tmpl", data)
}

// render executes into a buffer first so a template failure can still
// produce a clean error response instead of a half-written page.
func (r *Renderer) render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
