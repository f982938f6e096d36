package models

import "github.com/shopspring/decimal"

// Asset is an entry of the static asset catalog.
type Asset struct {
	Code  string          `json:"codigo"`
	Name  string          `json:"nome"`
	Type  string          `json:"tipo"`
	Price decimal.Decimal `json:"valor"`
}
