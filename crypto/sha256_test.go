package crypto

import (
	stdsha256 "crypto/sha256"
	"encoding/hex"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum256Vectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{
			"two blocks",
			"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
			"248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1",
		},
		{
			"million a",
			strings.Repeat("a", 1000000),
			"cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sum256Hex([]byte(tt.input)))
		})
	}
}

func TestSum256MatchesStandardLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	// Cover every residue around the 56-byte padding boundary.
	for size := 0; size <= 200; size++ {
		data := make([]byte, size)
		rng.Read(data)
		want := stdsha256.Sum256(data)
		require.Equal(t, want, Sum256(data), "size %d", size)
	}
}

func TestStreamingWrites(t *testing.T) {
	data := []byte(strings.Repeat("streaming digest ", 40))
	want := Sum256(data)

	for _, chunk := range []int{1, 3, 63, 64, 65, 200} {
		h := New()
		for i := 0; i < len(data); i += chunk {
			end := i + chunk
			if end > len(data) {
				end = len(data)
			}
			n, err := h.Write(data[i:end])
			require.NoError(t, err)
			require.Equal(t, end-i, n)
		}
		assert.Equal(t, want[:], h.Sum(nil), "chunk %d", chunk)
	}
}

func TestSumDoesNotChangeState(t *testing.T) {
	h := New()
	h.Write([]byte("ab"))
	first := h.Sum(nil)
	assert.Equal(t, first, h.Sum(nil))

	h.Write([]byte("c"))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(h.Sum(nil)))

	h.Reset()
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(h.Sum(nil)))
	assert.Equal(t, DigestSize, h.Size())
	assert.Equal(t, BlockSize, h.BlockSize())
}
