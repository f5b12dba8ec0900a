package finance

import "unicode"

// Password strength labels.
const (
	StrengthWeak   = "Debole"
	StrengthMedium = "Media"
	StrengthStrong = "Forte"
)

// PasswordStrength scores a password from 0 to 5, one point per satisfied
// criterion: length of at least 8, a lowercase letter, an uppercase letter,
// a digit and a symbol.
func PasswordStrength(password string) int {
	score := 0
	if len(password) >= 8 {
		score++
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			score++
		}
	}
	return score
}

// PasswordStrengthLabel maps a strength score to its label.
func PasswordStrengthLabel(score int) string {
	switch {
	case score <= 2:
		return StrengthWeak
	case score <= 4:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}
