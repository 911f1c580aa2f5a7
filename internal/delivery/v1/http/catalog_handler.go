package http

import (
	"net/http"
	"slices"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список продуктов
//	@Description	Возвращает продукты каталога, отфильтрованные по строке поиска, категории и диапазону цен
//	@Tags			catalog
//	@Produce		json
//	@Param			search		query		string	false	"Подстрока имени или описания"
//	@Param			category	query		string	false	"Категория или all"
//	@Param			minPrice	query		string	false	"Минимальная цена (включительно)"
//	@Param			maxPrice	query		string	false	"Максимальная цена (включительно)"
//	@Success		200			{object}	ProductsRes
//	@Failure		400			{object}	ErrorResponse	"Некорректный диапазон цен"
//	@Router			/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	products := usecase.FilterProducts(h.catalogUsecase.GetProducts(r.Context()), filter)
	WriteSuccess(w, http.StatusOK, NewProductsRes(products))
}

// getProduct
//
//	@Summary	Продукт по идентификатору
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		int	true	"Идентификатор продукта"
//	@Success	200	{object}	domain.Product
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	product, err := findProduct(h.catalogUsecase.GetProducts(r.Context()), id)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, product)
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}	domain.Category
//	@Router		/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.catalogUsecase.GetCategories(r.Context()))
}

func findProduct(products []domain.Product, id int64) (domain.Product, error) {
	idx := slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == id })
	if idx < 0 {
		return domain.Product{}, e.ErrProductNotFound
	}
	return products[idx], nil
}

// filterFromQuery строит фильтр из параметров запроса поверх значений по умолчанию.
func filterFromQuery(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	filter := domain.DefaultFilter()

	filter.SearchQuery = q.Get("search")
	if category := q.Get("category"); category != "" {
		filter.Category = domain.NormalizeCategoryID(category)
	}

	req := FilterReq{}
	if raw := q.Get("minPrice"); raw != "" {
		d, err := parsePrice(raw)
		if err != nil {
			return domain.Filter{}, e.Wrap("minPrice", e.ErrInvalidPriceRange)
		}
		req.MinPrice = &d
	}
	if raw := q.Get("maxPrice"); raw != "" {
		d, err := parsePrice(raw)
		if err != nil {
			return domain.Filter{}, e.Wrap("maxPrice", e.ErrInvalidPriceRange)
		}
		req.MaxPrice = &d
	}

	return applyFilterReq(filter, &req)
}

// applyFilterReq накладывает частичное обновление на текущий фильтр.
func applyFilterReq(current domain.Filter, req *FilterReq) (domain.Filter, error) {
	if req.SearchQuery != nil {
		current.SearchQuery = *req.SearchQuery
	}
	if req.Category != nil {
		current.Category = domain.NormalizeCategoryID(*req.Category)
		if current.Category == "" {
			current.Category = domain.AllCategories
		}
	}
	if req.MinPrice != nil {
		current.PriceRange.Min = *req.MinPrice
	}
	if req.MaxPrice != nil {
		current.PriceRange.Max = *req.MaxPrice
	}

	if current.PriceRange.Min.IsNegative() || current.PriceRange.Min.GreaterThan(current.PriceRange.Max) {
		return domain.Filter{}, e.ErrInvalidPriceRange
	}
	return current, nil
}
