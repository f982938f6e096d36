package models

// Pagination defaults applied to [ClientFilter].
const (
	DefaultPage  uint64 = 1
	DefaultLimit uint64 = 10
	MaxLimit     uint64 = 100
	MaxPage      uint64 = 1_000_000
)

// ClientFilter selects clients for listing and search. Nil criteria are
// ignored; Name and Email match as substrings.
type ClientFilter struct {
	Name   *string
	Email  *string
	Status *bool

	// Page is 1-based. Zero Page and Limit disable pagination.
	Page  uint64
	Limit uint64
}

// Normalized returns a copy with the pagination defaults applied, the page
// capped at [MaxPage] and the limit capped at [MaxLimit].
func (f ClientFilter) Normalized() ClientFilter {
	if f.Page == 0 {
		f.Page = DefaultPage
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}

	return f
}

// Offset is the number of rows skipped before the current page. Page and
// limit are clamped first so the result always fits a signed 64-bit column.
func (f ClientFilter) Offset() uint64 {
	if f.Page == 0 {
		return 0
	}
	return (min(f.Page, MaxPage) - 1) * min(f.Limit, MaxLimit)
}
