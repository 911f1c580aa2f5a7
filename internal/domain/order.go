package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContactInfo — контактные данные покупателя, собранные формой оформления заказа.
type ContactInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Totals — производные суммы корзины.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Order описывает заказ, переданный во внешний мессенджер. Нигде не сохраняется.
type Order struct {
	ID        string      `json:"id"`
	Contact   ContactInfo `json:"contact"`
	Items     []CartItem  `json:"items"`
	Totals    Totals      `json:"totals"`
	Message   string      `json:"message"`
	Link      string      `json:"link"`
	CreatedAt time.Time   `json:"createdAt"`
}
