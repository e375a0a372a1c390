package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/snackbot/internal/orders"
)

func TestDecodeItemPayload(t *testing.T) {
	id, err := decodeItemPayload(" energy ")
	require.NoError(t, err)
	assert.Equal(t, "energy", id)

	_, err = decodeItemPayload("   ")
	assert.ErrorIs(t, err, ErrMalformedAction)
}

func TestDecodeAdminPayload(t *testing.T) {
	orderID, status, err := decodeAdminPayload("17|ON_THE_WAY")
	require.NoError(t, err)
	assert.Equal(t, int64(17), orderID)
	assert.Equal(t, orders.StatusOnTheWay, status)
}

func TestDecodeAdminPayloadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no separator", "17"},
		{"empty", ""},
		{"non-numeric id", "abc|ACCEPTED"},
		{"zero id", "0|ACCEPTED"},
		{"negative id", "-3|ACCEPTED"},
		{"unknown status", "17|SHIPPED"},
		{"empty status", "17|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeAdminPayload(tt.payload)
			assert.ErrorIs(t, err, ErrMalformedAction)
		})
	}
}

func TestAdminPayloadRoundTrip(t *testing.T) {
	for _, status := range orders.TargetStatuses {
		payload := encodeAdminPayload(42, status)
		orderID, got, err := decodeAdminPayload(payload)
		require.NoError(t, err)
		assert.Equal(t, int64(42), orderID)
		assert.Equal(t, status, got)
	}
}
