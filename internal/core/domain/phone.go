package domain

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^010-\d{4}-\d{4}$`)

// FormatPhoneNumber keeps the digits of value and groups them as
// 010-1234-5678. Shorter input is grouped as far as it goes and digits past
// the eleventh are dropped.
func FormatPhoneNumber(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 7:
		return digits[:3] + "-" + digits[3:]
	case len(digits) > 11:
		digits = digits[:11]
	}
	return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
}

func ValidatePhoneNumber(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhoneNumber
	}
	return nil
}
