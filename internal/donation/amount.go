package donation

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"reliefdesk/internal/domain"
)

// ResolveAmount picks the amount a draft would submit. A non-empty custom
// amount wins over the preset and is read with leading-integer semantics:
// "12abc" is 12, "12.9" is 12, "abc" and " " are invalid.
func ResolveAmount(d domain.Draft) (int64, error) {
	amount := d.Preset
	if d.CustomAmount != "" {
		parsed, ok := parseLeadingInt(d.CustomAmount)
		if !ok {
			return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, d.CustomAmount)
		}
		amount = parsed
	}
	if amount < domain.MinimumAmount {
		return 0, fmt.Errorf("%w: %d is below minimum %d", domain.ErrInvalidAmount, amount, domain.MinimumAmount)
	}
	return amount, nil
}

func parseLeadingInt(raw string) (int64, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	var (
		value  int64
		digits int
	)
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		d := int64(r - '0')
		if value > (math.MaxInt64-d)/10 {
			return 0, false
		}
		value = value*10 + d
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		value = -value
	}
	return value, true
}
