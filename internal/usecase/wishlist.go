package usecase

import (
	"fmt"
	"slices"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// Wishlist — упорядоченное множество продуктов без повторов.
type Wishlist struct {
	mu       sync.Mutex
	items    []domain.Product
	notifier Notifier
}

func NewWishlist(notifier Notifier) *Wishlist {
	if notifier == nil {
		panic("usecase.NewWishlist: nil notifier")
	}

	return &Wishlist{notifier: notifier}
}

// Add добавляет продукт, если его ещё нет. Повторное добавление ничего не делает.
func (w *Wishlist) Add(p domain.Product) {
	w.mu.Lock()
	if w.index(p.ID) >= 0 {
		w.mu.Unlock()
		return
	}
	w.items = append(w.items, p.Clone())
	w.mu.Unlock()

	w.notifier.Notify(NotifySuccess, fmt.Sprintf("Added %s to wishlist", p.Name))
}

// Remove удаляет продукт, если он есть. Уведомление отправляется всегда.
func (w *Wishlist) Remove(productID int64) {
	w.mu.Lock()
	if idx := w.index(productID); idx >= 0 {
		w.items = slices.Delete(w.items, idx, idx+1)
	}
	w.mu.Unlock()

	w.notifier.Notify(NotifyInfo, msgItemRemovedFromWishlist)
}

func (w *Wishlist) Contains(productID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.index(productID) >= 0
}

func (w *Wishlist) Items() []domain.Product {
	w.mu.Lock()
	defer w.mu.Unlock()

	return domain.CloneProducts(emptyIfNil(w.items))
}

func (w *Wishlist) index(productID int64) int {
	return slices.IndexFunc(w.items, func(p domain.Product) bool { return p.ID == productID })
}
