package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthNames(t *testing.T) {
	assert.Equal(t, "Gen", MonthShort(1))
	assert.Equal(t, "Dic", MonthShort(12))
	assert.Equal(t, "Gennaio", MonthName(1))
	assert.Equal(t, "Agosto", MonthName(8))

	assert.Equal(t, "", MonthShort(0))
	assert.Equal(t, "", MonthName(13))
}
