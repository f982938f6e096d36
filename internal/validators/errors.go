package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidClientID   = errors.New("invalid client id")
	ErrNameTooShort      = errors.New("name must be at least 3 characters long")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidPhone      = errors.New("phone must be formatted as (99) 99999-9999")
	ErrEmptyAssetCode    = errors.New("asset code is required")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrAmountOutOfRange  = errors.New("amount must not exceed 10^15 or carry more than 8 decimal places")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
)
