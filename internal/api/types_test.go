package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthListDecodesBothWireForms(t *testing.T) {
	// Older servers return the list double-encoded as a string.
	var fromArray, fromString Budget
	require.NoError(t, json.Unmarshal(
		[]byte(`{"category":"Spesa","amount":"100","applicable_months":[1,2,3]}`), &fromArray))
	require.NoError(t, json.Unmarshal(
		[]byte(`{"category":"Spesa","amount":"100","applicable_months":"[1,2,3]"}`), &fromString))

	assert.Equal(t, MonthList{1, 2, 3}, fromArray.ApplicableMonths)
	assert.Equal(t, MonthList{1, 2, 3}, fromString.ApplicableMonths)
}

func TestMonthListNilCoversAllMonths(t *testing.T) {
	var b Budget
	require.NoError(t, json.Unmarshal([]byte(`{"category":"Spesa","amount":"100"}`), &b))

	assert.Nil(t, b.ApplicableMonths)
	assert.True(t, b.ApplicableMonths.Contains(7))
	assert.False(t, MonthList{1, 2}.Contains(7))
}

func TestDateWireFormat(t *testing.T) {
	d := NewDate(2025, 3, 15)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-15"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d.Time, back.Time)

	// Optional dates arrive as empty strings from some endpoints.
	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.True(t, empty.IsZero())
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Mario Rossi", User{Username: "mrossi", FirstName: "Mario", LastName: "Rossi"}.DisplayName())
	assert.Equal(t, "Mario", User{Username: "mrossi", FirstName: "Mario"}.DisplayName())
	assert.Equal(t, "mrossi", User{Username: "mrossi"}.DisplayName())
}
