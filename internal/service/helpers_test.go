package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

// decimalEq matches a decimal.Decimal by value, ignoring its exponent.
type decimalEq struct {
	want decimal.Decimal
}

func eqDecimal(s string) gomock.Matcher {
	return decimalEq{want: decimal.RequireFromString(s)}
}

func (m decimalEq) Matches(x any) bool {
	got, ok := x.(decimal.Decimal)
	return ok && got.Equal(m.want)
}

func (m decimalEq) String() string {
	return fmt.Sprintf("is decimal %s", m.want)
}

func ptr[T any](v T) *T { return &v }

func defaultMergeConfig() config.Merge {
	return config.Merge{MaxRetries: 3, RetryBaseDelay: time.Millisecond}
}
