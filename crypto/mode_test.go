package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHashMode(t *testing.T) {
	tests := []struct {
		in   string
		want HashMode
	}{
		{"sha256", SHA256Mode},
		{"SHA256", SHA256Mode},
		{"cahash", CAHashMode},
		{"AC_HASH", CAHashMode},
		{" ca ", CAHashMode},
	}
	for _, tt := range tests {
		got, err := ParseHashMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseHashMode("md5")
	assert.ErrorIs(t, err, ErrUnknownHashMode)
}

func TestHashModeString(t *testing.T) {
	assert.Equal(t, "sha256", SHA256Mode.String())
	assert.Equal(t, "cahash", CAHashMode.String())
	assert.Equal(t, "HashMode(9)", HashMode(9).String())
}

func TestHashModeDispatch(t *testing.T) {
	data := []byte("abc")
	assert.Equal(t, Sum256Hex(data), SHA256Mode.Hash(data))
	assert.Equal(t, CAHashHex(data, CARule, CASteps), CAHashMode.Hash(data))
	assert.Len(t, SHA256Mode.Hash(data), 64)
	assert.Len(t, CAHashMode.Hash(data), 64)
}

func TestHashModeUnknownPanics(t *testing.T) {
	assert.PanicsWithValue(t, "crypto: unknown hash mode: HashMode(7)", func() {
		HashMode(7).Hash([]byte("abc"))
	})
}
