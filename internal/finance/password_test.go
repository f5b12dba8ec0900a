package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		score    int
		label    string
	}{
		{"", 0, StrengthWeak},
		{"abc", 1, StrengthWeak},
		{"abcdefgh", 2, StrengthWeak},
		{"Abcdefgh", 3, StrengthMedium},
		{"Abcdefg1", 4, StrengthMedium},
		{"Abcdef1!", 5, StrengthStrong},
		{"Ab1!", 4, StrengthMedium},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			score := PasswordStrength(tt.password)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.label, PasswordStrengthLabel(score))
		})
	}
}
