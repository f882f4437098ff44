// Package normalize converts loosely structured statement records into
// canonical transactions.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadAmount indicates an amount string that could not be parsed as a
// decimal number.
var ErrBadAmount = errors.New("invalid amount")

// ParseAmount parses a statement amount string into a signed float64.
//
// Two source formats are accepted: dot-as-thousands with comma-as-decimal
// ("1.234,56") and plain decimal point with no thousands separator
// ("1234.56"). The presence of a comma is the discriminator between the two;
// dot count is not, so "62.52" parses as sixty-two and change. A minus sign
// may appear as a prefix or as a trailing marker and is relocated to the
// front before numeric parsing.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrBadAmount)
	}

	negative := strings.Contains(s, "-")
	if negative {
		s = strings.ReplaceAll(s, "-", "")
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	if negative {
		s = "-" + s
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, raw)
	}
	return value, nil
}
