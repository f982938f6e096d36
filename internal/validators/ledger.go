package validators

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/allocation-ledger/models"
)

// Field names accepted by [LedgerValidator.Validate]. Passing no field
// validates every field the value carries.
const (
	FieldID           = "id"
	FieldClientID     = "client_id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldAssetCode    = "asset_code"
	FieldAmount       = "amount"
	FieldUpdateFields = "update_fields"
)

const minNameLength = 3

// Amounts are capped at 10^15 with at most 8 decimal places. Exponent and
// digit count are checked first so that inputs like 1e2000000 are rejected
// before any arithmetic expands them.
const (
	maxAmountScale    = 8
	maxAmountExponent = 64
	maxAmountDigits   = 64
)

var maxAmount = decimal.New(1, 15)

var phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)

// LedgerValidator checks clients and allocations before they reach storage.
type LedgerValidator struct{}

func NewLedgerValidator() Validator {
	return &LedgerValidator{}
}

func (v *LedgerValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case int64:
		return v.validateID(value)

	case models.Client:
		return v.validateClient(value, fields...)
	case *models.Client:
		return v.validateClient(*value, fields...)

	case models.ClientUpdate:
		return v.validateClientUpdate(value, fields...)
	case *models.ClientUpdate:
		return v.validateClientUpdate(*value, fields...)

	case models.Allocation:
		return v.validateAllocation(value, fields...)
	case *models.Allocation:
		return v.validateAllocation(*value, fields...)

	case models.AllocationUpdate:
		return v.validateAllocationUpdate(value, fields...)
	case *models.AllocationUpdate:
		return v.validateAllocationUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *LedgerValidator) validateID(id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return nil
}

func (v *LedgerValidator) validateClient(client models.Client, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPhone}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if client.ID <= 0 {
				return ErrInvalidID
			}
		case FieldName:
			if err := checkName(client.Name); err != nil {
				return err
			}
		case FieldEmail:
			if err := checkEmail(client.Email); err != nil {
				return err
			}
		case FieldPhone:
			if err := checkPhone(client.Phone); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerValidator) validateClientUpdate(update models.ClientUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldUpdateFields, FieldName, FieldEmail, FieldPhone}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if update.ID <= 0 {
				return ErrInvalidID
			}
		case FieldUpdateFields:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if update.Name != nil {
				if err := checkName(*update.Name); err != nil {
					return err
				}
			}
		case FieldEmail:
			if update.Email != nil {
				if err := checkEmail(*update.Email); err != nil {
					return err
				}
			}
		case FieldPhone:
			if err := checkPhone(update.Phone); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateAllocation checks an allocation about to be recorded: the amount
// added to a holding must be strictly positive.
func (v *LedgerValidator) validateAllocation(allocation models.Allocation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClientID, FieldAssetCode, FieldAmount}
	}

	for _, f := range fields {
		switch f {
		case FieldClientID:
			if allocation.ClientID <= 0 {
				return ErrInvalidClientID
			}
		case FieldAssetCode:
			if strings.TrimSpace(allocation.AssetCode) == "" {
				return ErrEmptyAssetCode
			}
		case FieldAmount:
			if !allocation.Amount.IsPositive() {
				return ErrAmountNotPositive
			}
			if err := checkAmountRange(allocation.Amount); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateAllocationUpdate checks an edit. An edit replaces the amount, so
// zero is accepted.
func (v *LedgerValidator) validateAllocationUpdate(update models.AllocationUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldUpdateFields, FieldAssetCode, FieldAmount}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if update.ID <= 0 {
				return ErrInvalidID
			}
		case FieldUpdateFields:
			if update.AssetCode == nil && update.Amount == nil {
				return ErrNoFieldsToUpdate
			}
		case FieldAssetCode:
			if update.AssetCode != nil && strings.TrimSpace(*update.AssetCode) == "" {
				return ErrEmptyAssetCode
			}
		case FieldAmount:
			if update.Amount == nil {
				continue
			}
			if update.Amount.IsNegative() {
				return ErrNegativeAmount
			}
			if err := checkAmountRange(*update.Amount); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func checkName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLength {
		return ErrNameTooShort
	}
	return nil
}

// checkEmail accepts a bare address only; display names are rejected.
func checkEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrInvalidEmail
	}
	return nil
}

func checkPhone(phone *string) error {
	if phone == nil || *phone == "" {
		return nil
	}
	if !phonePattern.MatchString(*phone) {
		return ErrInvalidPhone
	}
	return nil
}

func checkAmountRange(amount decimal.Decimal) error {
	exp := amount.Exponent()
	if exp > maxAmountExponent || exp < -maxAmountExponent || amount.NumDigits() > maxAmountDigits {
		return ErrAmountOutOfRange
	}
	if amount.Abs().Cmp(maxAmount) > 0 || !amount.Equal(amount.Truncate(maxAmountScale)) {
		return ErrAmountOutOfRange
	}
	return nil
}
