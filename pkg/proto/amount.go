package proto

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a currency-free monetary amount held in minor units (pence).
// Amounts render with two decimal places, e.g. 5000 -> "50.00".
type Amount int64

// ParseAmount parses a decimal string such as "50", "50.5", or "50.00" into
// an Amount. At most two decimal places are allowed.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	// Signs are rejected outright. "-0.50" would otherwise slip past a
	// units < 0 check since ParseInt("-0") is zero.
	if strings.ContainsAny(s, "+-") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	whole, frac, _ := strings.Cut(s, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	pence := units * 100
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q: at most two decimal places", s)
		}
		for len(frac) < 2 {
			frac += "0"
		}
		p, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		pence += p
	}

	return Amount(pence), nil
}

// String implements fmt.Stringer.
func (a Amount) String() string {
	return fmt.Sprintf("%d.%02d", a/100, a%100)
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler. Both `"50.00"` and `50` are
// accepted.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}

	*a = v
	return nil
}
