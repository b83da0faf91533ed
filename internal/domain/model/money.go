package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in minor units (pence). The backend sends decimal major units (e.g. 120.50),
// which are converted exactly without going through float64.
type Money int64

// maxWholePounds keeps w*100+99 inside int64.
const maxWholePounds = (math.MaxInt64 - 99) / 100

// Pounds builds a Money value from whole pounds.
func Pounds(p int64) Money { return Money(p * 100) }

// ParseMoney parses a decimal string such as "120", "120.5" or "£1,120.50".
func ParseMoney(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "£")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	whole, frac, hasFrac := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (frac == "" || len(frac) > 2) {
		return 0, fmt.Errorf("invalid amount %q: at most two decimal places", s)
	}
	if !isDigits(whole) || (hasFrac && !isDigits(frac)) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > maxWholePounds {
		return 0, fmt.Errorf("invalid amount %q: too large", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	m := Money(w*100 + f)
	if neg {
		m = -m
	}
	return m, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Decimal renders the amount as a plain decimal, e.g. "120.50".
func (m Money) Decimal() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// String renders the amount with a pound sign, e.g. "£120.00".
func (m Money) String() string {
	if m < 0 {
		return "-£" + (-m).Decimal()
	}
	return "£" + m.Decimal()
}

// MarshalJSON encodes the amount as a JSON number in major units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string in major units.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	var text string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("money: %w", err)
		}
		text = n.String()
	}
	v, err := parseJSONAmount(text)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// parseJSONAmount tolerates more than two decimals from the backend by rounding half away from zero.
func parseJSONAmount(text string) (Money, error) {
	whole, frac, ok := strings.Cut(text, ".")
	if !ok || len(frac) <= 2 {
		return ParseMoney(text)
	}
	if !isDigits(frac[2:]) {
		return 0, fmt.Errorf("invalid amount %q", text)
	}
	base, err := ParseMoney(whole + "." + frac[:2])
	if err != nil {
		return 0, err
	}
	if frac[2] >= '5' {
		if strings.HasPrefix(text, "-") {
			base--
		} else {
			base++
		}
	}
	return base, nil
}
