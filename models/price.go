package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price accepts either a JSON number or a numeric string ("10", "10.50").
// It is stored as a double.
type Price float64

// maxPrice keeps MinorUnits within int64.
const maxPrice = float64(math.MaxInt64) / 100

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= maxPrice {
		return fmt.Errorf("invalid price %q", s)
	}
	*p = Price(f)
	return nil
}

// MinorUnits converts the price to the smallest currency unit (cents).
func (p Price) MinorUnits() int64 {
	return int64(math.Round(float64(p) * 100))
}
