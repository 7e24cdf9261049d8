package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PackRoundTrip(t *testing.T) {
	cases := []struct {
		size      int64
		allocated bool
	}{
		{0, true},
		{MinBlockSize, false},
		{MinBlockSize, true},
		{4096, false},
		{1 << 40, true},
	}
	for _, c := range cases {
		w := Pack(c.size, c.allocated)
		assert.Equal(t, c.size, SizeOf(w), "size for %+v", c)
		assert.Equal(t, c.allocated, IsAllocated(w), "flag for %+v", c)
		// Bits 1-3 stay zero.
		assert.Zero(t, w&FlagsMask&^uint64(AllocatedFlag), "reserved bits for %+v", c)
	}
}

func Test_Align(t *testing.T) {
	assert.Equal(t, int64(16), Align(1))
	assert.Equal(t, int64(16), Align(16))
	assert.Equal(t, int64(32), Align(17))
	assert.Equal(t, int64(0), Align(0))
}

func Test_EvenWords(t *testing.T) {
	assert.Equal(t, int64(0), EvenWords(0))
	assert.Equal(t, int64(2), EvenWords(1))
	assert.Equal(t, int64(2), EvenWords(2))
	assert.Equal(t, int64(512), EvenWords(511))
}

func Test_AdjustRequest(t *testing.T) {
	cases := []struct {
		request int64
		want    int64
	}{
		{1, MinBlockSize},
		{16, MinBlockSize},  // fits the minimum payload exactly
		{17, 48},            // 17 + 16 overhead, rounded to 48
		{32, 48},            // 32 + 16 = 48, already aligned
		{100, 128},          // 100 + 16 = 116, rounded to 128
		{4096, 4096 + 16},   // large requests keep exact overhead
	}
	for _, c := range cases {
		got := AdjustRequest(c.request)
		require.Equal(t, c.want, got, "request %d", c.request)
		require.Zero(t, got%Alignment, "request %d not aligned", c.request)
		require.GreaterOrEqual(t, got-Overhead, c.request, "request %d payload too small", c.request)
	}
}

func Test_WordEncoding(t *testing.T) {
	buf := make([]byte, 32)
	PutU64(buf, 8, 0xDEADBEEFCAFE)
	assert.Equal(t, uint64(0xDEADBEEFCAFE), ReadU64(buf, 8))
	// Little endian: low byte first.
	assert.Equal(t, byte(0xFE), buf[8])
	// Neighboring words untouched.
	assert.Equal(t, uint64(0), ReadU64(buf, 0))
	assert.Equal(t, uint64(0), ReadU64(buf, 16))
}
