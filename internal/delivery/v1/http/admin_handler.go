package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// AdminHandler — административная панель каталога.
type AdminHandler struct {
	adminUsecase usecase.CatalogAdminUC
	logger       logger.Logger
}

func NewAdminHandler(adminUsecase usecase.CatalogAdminUC, logger logger.Logger) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Продукты (админ)
//	@Description	Сбрасывает кэш и перечитывает продукты из хранилища
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	ProductsRes
//	@Router			/admin/products [get]
func (h *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, NewProductsRes(h.adminUsecase.Products(r.Context())))
}

// addProduct
//
//	@Summary		Добавить продукт
//	@Description	Идентификатор назначается как max(id)+1, рейтинг и отзывы обнуляются
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			product	body		ProductReq	true	"Продукт"
//	@Success		201		{object}	domain.Product
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse	"Категория не найдена"
//	@Router			/admin/products [post]
func (h *AdminHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductReq
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	product, err := req.toDomain(0)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	added, err := h.adminUsecase.AddProduct(r.Context(), product)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, added)
}

// updateProduct
//
//	@Summary	Изменить продукт
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int			true	"Идентификатор продукта"
//	@Param		product	body		ProductReq	true	"Продукт"
//	@Success	200		{object}	domain.Product
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/admin/products/{id} [put]
func (h *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	var req ProductReq
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	product, err := req.toDomain(id)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	updated, err := h.adminUsecase.UpdateProduct(r.Context(), product)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, updated)
}

// deleteProduct
//
//	@Summary	Удалить продукт
//	@Tags		admin
//	@Param		id	path	int	true	"Идентификатор продукта"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/products/{id} [delete]
func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	if err := h.adminUsecase.DeleteProduct(r.Context(), id); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listCategories
//
//	@Summary	Категории (админ)
//	@Tags		admin
//	@Produce	json
//	@Success	200	{array}	domain.Category
//	@Router		/admin/categories [get]
func (h *AdminHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.adminUsecase.Categories(r.Context()))
}

// addCategory
//
//	@Summary	Добавить категорию
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		category	body		CategoryReq	true	"Категория"
//	@Success	201			{object}	domain.Category
//	@Failure	400			{object}	ErrorResponse
//	@Failure	409			{object}	ErrorResponse	"Категория уже существует"
//	@Router		/admin/categories [post]
func (h *AdminHandler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryReq
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	added, err := h.adminUsecase.AddCategory(r.Context(), domain.Category{ID: req.ID, Name: req.Name})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, added)
}

// updateCategory
//
//	@Summary		Изменить категорию
//	@Description	При смене идентификатора продукты категории переводятся на новый
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string		true	"Текущий идентификатор"
//	@Param			category	body		CategoryReq	true	"Категория"
//	@Success		200			{object}	domain.Category
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Router			/admin/categories/{id} [put]
func (h *AdminHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryReq
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	updated, err := h.adminUsecase.UpdateCategory(r.Context(), chi.URLParam(r, "id"), domain.Category{ID: req.ID, Name: req.Name})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, updated)
}

// deleteCategory
//
//	@Summary		Удалить категорию
//	@Description	Отказ с 409, пока на категорию ссылаются продукты
//	@Tags			admin
//	@Param			id	path	string	true	"Идентификатор категории"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/admin/categories/{id} [delete]
func (h *AdminHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.adminUsecase.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// stats
//
//	@Summary	Сводка по каталогу
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	usecase.CatalogStats
//	@Router		/admin/stats [get]
func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.adminUsecase.Stats(r.Context()))
}

// storage
//
//	@Summary	Доступность хранилища
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	StorageRes
//	@Router		/admin/storage [get]
func (h *AdminHandler) storage(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, StorageRes{Available: h.adminUsecase.StorageAvailable(r.Context())})
}

// clearCache
//
//	@Summary	Сбросить кэш каталога
//	@Tags		admin
//	@Success	204
//	@Router		/admin/cache/clear [post]
func (h *AdminHandler) clearCache(w http.ResponseWriter, r *http.Request) {
	h.adminUsecase.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

// resetCatalog
//
//	@Summary	Вернуть каталог по умолчанию
//	@Tags		admin
//	@Success	204
//	@Failure	500	{object}	ErrorResponse
//	@Router		/admin/catalog/reset [post]
func (h *AdminHandler) resetCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.adminUsecase.ResetCatalog(r.Context()); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
