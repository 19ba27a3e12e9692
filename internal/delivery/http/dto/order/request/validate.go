package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	maxItemNameLength = 255
	pricePlaces       = 2

	// лимиты на разбор цены до округления
	maxPriceInputLength = 32
	minPriceExponent    = -pricePlaces - 10
	maxPriceExponent    = 5
)

// NUMERIC(7,2): at most five digits before the point
var maxPrice = decimal.NewFromInt(100000)

func ValidateTableNumber(n int) error {
	if n < 1 {
		return errors.New("Ensure this value is greater than or equal to 1.")
	}
	return nil
}

// ParseTableNumber is used by form fields where the raw value is text.
func ParseTableNumber(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("This field is required.")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("A valid integer is required.")
	}
	return n, ValidateTableNumber(n)
}

func ValidateItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("This field may not be blank.")
	}
	if utf8.RuneCountInString(name) > maxItemNameLength {
		return fmt.Errorf("Ensure this field has no more than %d characters.", maxItemNameLength)
	}
	return nil
}

// ParsePrice accepts a plain decimal string and returns it with exactly two
// fractional digits.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, errors.New("This field is required.")
	}
	if len(raw) > maxPriceInputLength {
		return decimal.Zero, errors.New("A valid number is required.")
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New("A valid number is required.")
	}
	// Round rescales through big.Int, so the exponent is bounded first.
	if exp := price.Exponent(); exp < minPriceExponent || exp > maxPriceExponent {
		return decimal.Zero, errors.New("A valid number is required.")
	}
	if price.IsNegative() {
		return decimal.Zero, errors.New("Ensure this value is greater than or equal to 0.")
	}
	if !price.Equal(price.Round(pricePlaces)) {
		return decimal.Zero, fmt.Errorf("Ensure that there are no more than %d decimal places.", pricePlaces)
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, errors.New("Ensure that there are no more than 5 digits before the decimal point.")
	}
	return price.Round(pricePlaces), nil
}

// ParseItemID parses an optional form or query id. Empty input yields nil.
func ParseItemID(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, errors.New("A valid positive integer is required.")
	}
	id := uint(n)
	return &id, nil
}
