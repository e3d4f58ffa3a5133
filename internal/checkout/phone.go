package checkout

import (
	"regexp"
	"strings"
)

// phonePattern is the only accepted phone form, the exact output of the
// input mask: +7 (XXX) XXX-XX-XX.
var phonePattern = regexp.MustCompile(`^\+7 \(\d{3}\) \d{3}-\d{2}-\d{2}$`)

// ValidPhone reports whether the phone matches the masked form exactly.
// Raw digit strings and differently spaced variants are rejected.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// FormatPhone applies the storefront's phone input mask to whatever the
// customer typed. Non-digits are stripped and the remaining digits are laid
// out progressively; from the fourth digit on, the first digit is taken as
// the country code and dropped from the grouping. Digits past the eleventh
// are discarded.
func FormatPhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch n := len(d); {
	case n == 0:
		return ""
	case n <= 3:
		return "+7 (" + d
	case n <= 6:
		return "+7 (" + d[1:4] + ") " + d[4:]
	case n <= 8:
		return "+7 (" + d[1:4] + ") " + d[4:7] + "-" + d[7:]
	default:
		end := min(n, 11)
		return "+7 (" + d[1:4] + ") " + d[4:7] + "-" + d[7:9] + "-" + d[9:end]
	}
}
