package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки хранилища
	ErrStorageKeyNotFound    = fmt.Errorf("storage key not found")
	ErrIncorrectEnvVariable  = fmt.Errorf("incorrect environment variable")
	ErrUnknownStorageBackend = fmt.Errorf("unknown storage backend")

	// 400 Bad Request
	ErrStatusBadRequest  = fmt.Errorf("bad request")
	ErrMissingFields     = fmt.Errorf("missing required fields")
	ErrInvalidPrice      = fmt.Errorf("invalid price")
	ErrPricePrecision    = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidID         = fmt.Errorf("invalid identifier")
	ErrInvalidQuantity   = fmt.Errorf("quantity must be positive")
	ErrInvalidPriceRange = fmt.Errorf("invalid price range")
	ErrCartEmpty         = fmt.Errorf("cart is empty")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrSessionNotFound  = fmt.Errorf("session not found")

	// 409 Conflict
	ErrCategoryExists = fmt.Errorf("category already exists")
	ErrCategoryInUse  = fmt.Errorf("category is used by products")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
	ErrHandoffFailed       = fmt.Errorf("order hand-off failed")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
