package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// SessionHandler обслуживает корзину, список желаний, фильтр и оформление заказа одной сессии.
type SessionHandler struct {
	sessionUsecase  usecase.SessionUC
	catalogUsecase  usecase.CatalogUC
	checkoutUsecase usecase.CheckoutUC
	logger          logger.Logger
}

func NewSessionHandler(
	sessionUsecase usecase.SessionUC,
	catalogUsecase usecase.CatalogUC,
	checkoutUsecase usecase.CheckoutUC,
	logger logger.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUsecase:  sessionUsecase,
		catalogUsecase:  catalogUsecase,
		checkoutUsecase: checkoutUsecase,
		logger:          logger,
	}
}

// createSession
//
//	@Summary	Новая сессия покупателя
//	@Tags		sessions
//	@Produce	json
//	@Success	201	{object}	SessionRes
//	@Router		/sessions [post]
func (h *SessionHandler) createSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessionUsecase.Create()
	WriteSuccess(w, http.StatusCreated, SessionRes{SessionID: s.ID})
}

// session достаёт сессию из пути; при ошибке ответ уже записан.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*usecase.Session, bool) {
	s, err := h.sessionUsecase.Get(chi.URLParam(r, "sid"))
	if err != nil {
		respondError(h.logger, w, r, err)
		return nil, false
	}
	return s, true
}

// getCart
//
//	@Summary	Содержимое корзины
//	@Tags		cart
//	@Produce	json
//	@Param		sid	path		string	true	"Идентификатор сессии"
//	@Success	200	{object}	CartRes
//	@Failure	404	{object}	ErrorResponse
//	@Router		/sessions/{sid}/cart [get]
func (h *SessionHandler) getCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, http.StatusOK, NewCartRes(s))
}

// addToCart
//
//	@Summary		Добавить продукт в корзину
//	@Description	Если продукт уже в корзине, количество суммируется
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			sid		path		string		true	"Идентификатор сессии"
//	@Param			item	body		CartItemReq	true	"Продукт и количество"
//	@Success		200		{object}	CartRes
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/sessions/{sid}/cart/items [post]
func (h *SessionHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req CartItemReq
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	if req.Quantity < 0 {
		respondError(h.logger, w, r, e.ErrInvalidQuantity)
		return
	}

	product, err := findProduct(h.catalogUsecase.GetProducts(r.Context()), req.ProductID)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	s.Cart.Add(domain.NewCartItem(product, req.Quantity))
	WriteSuccess(w, http.StatusOK, NewCartRes(s))
}

// removeFromCart
//
//	@Summary	Удалить позицию из корзины
//	@Tags		cart
//	@Produce	json
//	@Param		sid	path		string	true	"Идентификатор сессии"
//	@Param		pid	path		int		true	"Идентификатор продукта"
//	@Success	200	{object}	CartRes
//	@Failure	404	{object}	ErrorResponse
//	@Router		/sessions/{sid}/cart/items/{pid} [delete]
func (h *SessionHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	pid, err := parseIDParam(r, "pid")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	s.Cart.Remove(pid)
	WriteSuccess(w, http.StatusOK, NewCartRes(s))
}

// increaseQuantity
//
//	@Summary	Увеличить количество
//	@Tags		cart
//	@Produce	json
//	@Param		sid		path		string	true	"Идентификатор сессии"
//	@Param		pid		path		int		true	"Идентификатор продукта"
//	@Param		amount	query		int		false	"На сколько увеличить (по умолчанию 1)"
//	@Success	200		{object}	CartRes
//	@Failure	400		{object}	ErrorResponse
//	@Router		/sessions/{sid}/cart/items/{pid}/increase [post]
func (h *SessionHandler) increaseQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	pid, err := parseIDParam(r, "pid")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	amount := 1
	if raw := r.URL.Query().Get("amount"); raw != "" {
		amount, err = strconv.Atoi(raw)
		if err != nil || amount < 1 {
			respondError(h.logger, w, r, e.Wrap("amount="+raw, e.ErrInvalidQuantity))
			return
		}
	}

	s.Cart.Increase(pid, amount)
	WriteSuccess(w, http.StatusOK, NewCartRes(s))
}

// decreaseQuantity
//
//	@Summary		Уменьшить количество
//	@Description	Позиция с количеством 1 удаляется
//	@Tags			cart
//	@Produce		json
//	@Param			sid	path		string	true	"Идентификатор сессии"
//	@Param			pid	path		int		true	"Идентификатор продукта"
//	@Success		200	{object}	CartRes
//	@Router			/sessions/{sid}/cart/items/{pid}/decrease [post]
func (h *SessionHandler) decreaseQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	pid, err := parseIDParam(r, "pid")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	s.Cart.Decrease(pid)
	WriteSuccess(w, http.StatusOK, NewCartRes(s))
}

// clearCart
//
//	@Summary	Очистить корзину
//	@Tags		cart
//	@Produce	json
//	@Param		sid	path		string	true	"Идентификатор сессии"
//	@Success	200	{object}	CartRes
//	@Router		/sessions/{sid}/cart [delete]
func (h *SessionHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	s.Cart.Clear()
	WriteSuccess(w, http.StatusOK, NewCartRes(s))
}

// getWishlist
//
//	@Summary	Список желаний
//	@Tags		wishlist
//	@Produce	json
//	@Param		sid	path		string	true	"Идентификатор сессии"
//	@Success	200	{object}	WishlistRes
//	@Router		/sessions/{sid}/wishlist [get]
func (h *SessionHandler) getWishlist(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, http.StatusOK, NewWishlistRes(s))
}

// addToWishlist
//
//	@Summary	Добавить продукт в список желаний
//	@Tags		wishlist
//	@Accept		json
//	@Produce	json
//	@Param		sid		path		string		true	"Идентификатор сессии"
//	@Param		item	body		WishlistReq	true	"Продукт"
//	@Success	200		{object}	WishlistRes
//	@Failure	404		{object}	ErrorResponse
//	@Router		/sessions/{sid}/wishlist [post]
func (h *SessionHandler) addToWishlist(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req WishlistReq
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	product, err := findProduct(h.catalogUsecase.GetProducts(r.Context()), req.ProductID)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	s.Wishlist.Add(product)
	WriteSuccess(w, http.StatusOK, NewWishlistRes(s))
}

// removeFromWishlist
//
//	@Summary	Удалить продукт из списка желаний
//	@Tags		wishlist
//	@Produce	json
//	@Param		sid	path		string	true	"Идентификатор сессии"
//	@Param		pid	path		int		true	"Идентификатор продукта"
//	@Success	200	{object}	WishlistRes
//	@Router		/sessions/{sid}/wishlist/{pid} [delete]
func (h *SessionHandler) removeFromWishlist(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	pid, err := parseIDParam(r, "pid")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	s.Wishlist.Remove(pid)
	WriteSuccess(w, http.StatusOK, NewWishlistRes(s))
}

// getFilter
//
//	@Summary	Текущий фильтр
//	@Tags		filter
//	@Produce	json
//	@Param		sid	path		string	true	"Идентификатор сессии"
//	@Success	200	{object}	FilterRes
//	@Router		/sessions/{sid}/filter [get]
func (h *SessionHandler) getFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, http.StatusOK, NewFilterRes(s))
}

// updateFilter
//
//	@Summary		Изменить фильтр
//	@Description	Отсутствующие поля не меняются
//	@Tags			filter
//	@Accept			json
//	@Produce		json
//	@Param			sid		path		string		true	"Идентификатор сессии"
//	@Param			filter	body		FilterReq	true	"Изменения фильтра"
//	@Success		200		{object}	FilterRes
//	@Failure		400		{object}	ErrorResponse
//	@Router			/sessions/{sid}/filter [put]
func (h *SessionHandler) updateFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req FilterReq
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	filter, err := applyFilterReq(s.Filter.Snapshot(), &req)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	s.Filter.Set(filter)
	WriteSuccess(w, http.StatusOK, NewFilterRes(s))
}

// listSessionProducts
//
//	@Summary	Продукты по фильтру сессии
//	@Tags		filter
//	@Produce	json
//	@Param		sid	path		string	true	"Идентификатор сессии"
//	@Success	200	{object}	ProductsRes
//	@Router		/sessions/{sid}/products [get]
func (h *SessionHandler) listSessionProducts(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	products := usecase.FilterProducts(h.catalogUsecase.GetProducts(r.Context()), s.Filter.Snapshot())
	WriteSuccess(w, http.StatusOK, NewProductsRes(products))
}

// checkout
//
//	@Summary		Оформить заказ
//	@Description	Формирует сообщение заказа и ссылку мессенджера; корзина очищается после передачи
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			sid		path		string		true	"Идентификатор сессии"
//	@Param			contact	body		CheckoutReq	true	"Контактные данные"
//	@Success		201		{object}	CheckoutRes
//	@Failure		400		{object}	ErrorResponse	"Не заполнены поля или пустая корзина"
//	@Failure		502		{object}	ErrorResponse	"Не удалось передать заказ"
//	@Router			/sessions/{sid}/checkout [post]
func (h *SessionHandler) checkout(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req CheckoutReq
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	contact := domain.ContactInfo{Name: req.Name, Phone: req.Phone, Address: req.Address}
	order, err := h.checkoutUsecase.PlaceOrder(r.Context(), s.Cart, contact)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, CheckoutRes{
		Order:         order,
		Notifications: s.Notifications.Drain(),
	})
}
