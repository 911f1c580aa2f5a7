package domain

// CartItem — продукт в корзине с обязательным количеством (не меньше 1).
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// NewCartItem поднимает продукт в позицию корзины.
// Количество меньше 1 заменяется на 1.
func NewCartItem(product Product, quantity int) CartItem {
	if quantity < 1 {
		quantity = 1
	}

	p := product.Clone()
	p.Quantity = nil

	return CartItem{Product: p, Quantity: quantity}
}

func (c CartItem) Clone() CartItem {
	return CartItem{Product: c.Product.Clone(), Quantity: c.Quantity}
}
