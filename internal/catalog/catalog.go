package catalog

import "errors"

// ErrProductNotFound is returned when a product id is not on the menu.
var ErrProductNotFound = errors.New("product not found")

// SizePrice is one size variant of a pizza: the diameter in centimeters
// and its price in roubles.
type SizePrice struct {
	Size  string
	Price int
}

// Product is one menu entry. Image is the base name of the storefront
// photo, images/pizza-<image>.jpg.
type Product struct {
	ID     string
	Name   string
	Image  string
	Prices []SizePrice
}

// PriceFor returns the price of the given size variant.
func (p Product) PriceFor(size string) (int, bool) {
	for _, sp := range p.Prices {
		if sp.Size == size {
			return sp.Price, true
		}
	}
	return 0, false
}

// Catalog is the fixed menu the storefront sells. Six pizzas, three
// diameters each.
type Catalog struct {
	products []Product
}

func New() *Catalog {
	return &Catalog{products: []Product{
		{ID: "1", Name: "Маргарита", Image: "margherita", Prices: []SizePrice{
			{Size: "25", Price: 489}, {Size: "30", Price: 649}, {Size: "35", Price: 789},
		}},
		{ID: "2", Name: "Пепперони", Image: "pepperoni", Prices: []SizePrice{
			{Size: "25", Price: 549}, {Size: "30", Price: 719}, {Size: "35", Price: 869},
		}},
		{ID: "3", Name: "Четыре сыра", Image: "quattro-formaggi", Prices: []SizePrice{
			{Size: "25", Price: 599}, {Size: "30", Price: 769}, {Size: "35", Price: 929},
		}},
		{ID: "4", Name: "Ветчина и грибы", Image: "ham-mushrooms", Prices: []SizePrice{
			{Size: "25", Price: 569}, {Size: "30", Price: 739}, {Size: "35", Price: 899},
		}},
		{ID: "5", Name: "Вегетарианская", Image: "vegetarian", Prices: []SizePrice{
			{Size: "25", Price: 519}, {Size: "30", Price: 679}, {Size: "35", Price: 829},
		}},
		{ID: "6", Name: "Мясная", Image: "meat", Prices: []SizePrice{
			{Size: "25", Price: 649}, {Size: "30", Price: 819}, {Size: "35", Price: 989},
		}},
	}}
}

// Products returns the menu in display order.
func (c *Catalog) Products() []Product {
	return c.products
}

// Find returns the product with the given id.
func (c *Catalog) Find(id string) (Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// ImageName maps a product id to its photo base name, falling back to the
// placeholder for unknown ids.
func (c *Catalog) ImageName(id string) string {
	p, err := c.Find(id)
	if err != nil {
		return "default"
	}
	return p.Image
}
