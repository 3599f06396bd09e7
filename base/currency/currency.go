package currency

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketengine/domain"
)

// Converter converts between display amounts and the integer unit used on-chain
type Converter interface {
	Supported(c domain.Currency) bool
	Decimals(c domain.Currency) (int32, error)
	ToBaseUnits(c domain.Currency, amount decimal.Decimal) (*big.Int, error)
	FromBaseUnits(c domain.Currency, value *big.Int) (decimal.Decimal, error)
}

type impl struct {
	decimals map[domain.Currency]int32
}

// New takes currency symbol to token decimals, e.g. {"ETH": 18}
func New(decimals map[domain.Currency]int32) Converter {
	m := make(map[domain.Currency]int32, len(decimals))
	for c, d := range decimals {
		m[c.Normalize()] = d
	}
	return &impl{decimals: m}
}

// FromConfig reads the `currencies` section, e.g. {"eth": {"decimals": 18}}
func FromConfig(section map[string]interface{}) Converter {
	m := map[domain.Currency]int32{}
	for symbol, raw := range section {
		sub, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		switch d := sub["decimals"].(type) {
		case int:
			m[domain.Currency(strings.ToUpper(symbol))] = int32(d)
		case int64:
			m[domain.Currency(strings.ToUpper(symbol))] = int32(d)
		case float64:
			m[domain.Currency(strings.ToUpper(symbol))] = int32(d)
		}
	}
	return New(m)
}

func (im *impl) Supported(c domain.Currency) bool {
	_, err := im.Decimals(c)
	return err == nil
}

func (im *impl) Decimals(c domain.Currency) (int32, error) {
	d, ok := im.decimals[c.Normalize()]
	if !ok {
		return 0, xerrors.Errorf("currency %s: %w", c, domain.ErrInvalidCurrency)
	}
	return d, nil
}

func (im *impl) ToBaseUnits(c domain.Currency, amount decimal.Decimal) (*big.Int, error) {
	d, err := im.Decimals(c)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, xerrors.Errorf("negative amount %s: %w", amount, domain.ErrInvalidPrice)
	}
	shifted := amount.Shift(d)
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, xerrors.Errorf("amount %s has more than %d decimals: %w", amount, d, domain.ErrInvalidPrice)
	}
	return shifted.BigInt(), nil
}

func (im *impl) FromBaseUnits(c domain.Currency, value *big.Int) (decimal.Decimal, error) {
	d, err := im.Decimals(c)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(value, -d), nil
}
