package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFields(t *testing.T) {
	assert.Equal(t, []string{"Bio", "Cells", "Chapter 1", "25"}, splitFields(" Bio ; Cells;Chapter 1 ; 25"))
	assert.Equal(t, []string{"Bio"}, splitFields("Bio"))
	assert.Nil(t, splitFields("   "))
}

func TestParseIDAndQuality(t *testing.T) {
	id, q, ok := parseIDAndQuality(" abc  4 ")
	require.True(t, ok)
	assert.Equal(t, "abc", id)
	assert.Equal(t, 4, q)

	for _, in := range []string{"", "abc", "abc x", "abc 4 5"} {
		_, _, ok := parseIDAndQuality(in)
		assert.False(t, ok, in)
	}
}

func TestParseOptionalInt(t *testing.T) {
	n, ok, err := parseOptionalInt("")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, n)

	n, ok, err = parseOptionalInt(" 7 ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, _, err = parseOptionalInt("seven")
	assert.Error(t, err)
}

func TestCallbackData(t *testing.T) {
	data := buildReviewCallback("card-1", 5)
	assert.Equal(t, "review:card-1:5", data)

	cd := decodeCallback(data)
	assert.Equal(t, actionReview, cd.Action)
	id, q, hasQ, ok := cd.idAndQuality()
	assert.True(t, ok)
	assert.True(t, hasQ)
	assert.Equal(t, "card-1", id)
	assert.Equal(t, 5, q)

	id, _, hasQ, ok = decodeCallback(buildDoneCallback("s-1")).idAndQuality()
	assert.True(t, ok)
	assert.False(t, hasQ)
	assert.Equal(t, "s-1", id)

	_, _, _, ok = decodeCallback("done:s-1:x").idAndQuality()
	assert.False(t, ok)

	assert.Equal(t, "plan:save", buildPlanSaveCallback())
	assert.Equal(t, actionReset, decodeCallback(buildResetConfirmCallback()).Action)
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	uuid := "123e4567-e89b-12d3-a456-426614174000"

	assert.LessOrEqual(t, len(buildReviewCallback(uuid, 5)), 64)
	assert.LessOrEqual(t, len(buildDoneCallback(uuid, 5)), 64)
}
