// Package ptr builds pointers for the optional fields of patch payloads.
package ptr

import (
	"github.com/shopspring/decimal"
)

func Bool(v bool) *bool { return &v }

func Decimal(v decimal.Decimal) *decimal.Decimal { return &v }
