package enums

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountStatusIsValid(t *testing.T) {
	for _, status := range AmountStatuses() {
		assert.True(t, status.IsValid(), "status %d", status)
	}
	for _, raw := range []int{-25, 10, 30, 99, 101, 125} {
		assert.False(t, AmountStatus(raw).IsValid(), "status %d", raw)
	}
}

func TestAmountStatusString(t *testing.T) {
	assert.Equal(t, "0%", AmountStatusZero.String())
	assert.Equal(t, "75%", AmountStatusSeventyFive.String())
	assert.Equal(t, 100, AmountStatusFull.Percent())
}

func TestParseAmountStatus(t *testing.T) {
	cases := map[string]AmountStatus{
		"0":      AmountStatusZero,
		"25":     AmountStatusTwentyFive,
		"50%":    AmountStatusFifty,
		" 75 % ": AmountStatusSeventyFive,
		"100":    AmountStatusFull,
	}
	for raw, want := range cases {
		got, err := ParseAmountStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "half", "60", "-25"} {
		_, err := ParseAmountStatus(raw)
		assert.Error(t, err, raw)
	}
}

func TestMutationOutcomeApplied(t *testing.T) {
	assert.True(t, MutationOutcomeApplied.Applied())
	assert.False(t, MutationOutcomeNotFound.Applied())
	assert.False(t, MutationOutcomeNotOwner.Applied())
	assert.False(t, MutationOutcomeProtected.Applied())
	assert.Equal(t, "protected", MutationOutcomeProtected.String())
}

func TestAmountStatusUnmarshalJSON(t *testing.T) {
	var payload struct {
		Amount *AmountStatus `json:"amount_left"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount_left": 50}`), &payload))
	require.NotNil(t, payload.Amount)
	assert.Equal(t, AmountStatusFifty, *payload.Amount)

	payload.Amount = nil
	require.NoError(t, json.Unmarshal([]byte(`{"amount_left": "25%"}`), &payload))
	assert.Equal(t, AmountStatusTwentyFive, *payload.Amount)

	payload.Amount = nil
	require.NoError(t, json.Unmarshal([]byte(`{"amount_left": 30}`), &payload))
	assert.False(t, payload.Amount.IsValid())

	payload.Amount = nil
	require.NoError(t, json.Unmarshal([]byte(`{"amount_left": null}`), &payload))
	assert.Nil(t, payload.Amount)

	assert.Error(t, json.Unmarshal([]byte(`{"amount_left": "half"}`), &payload))
	assert.Error(t, json.Unmarshal([]byte(`{"amount_left": 12.5}`), &payload))
}

func TestAmountStatusMarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(map[string]AmountStatus{"amount_left": AmountStatusSeventyFive})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount_left": 75}`, string(data))
}
