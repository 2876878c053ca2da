package bitpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiv-cac/cac/internal/cacerr"
)

func TestWidth(t *testing.T) {
	tests := []struct {
		maxID    int
		expected int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{7, 3},
		{8, 4},
		{255, 8},
		{256, 9},
		{65535, 16},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Width(tt.maxID), "Width(%d)", tt.maxID)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		ids      []int
		payload  []byte
		bitWidth int
	}{
		{"single one", []int{1}, []byte{0x80}, 1},
		{"two ids width 2", []int{1, 2}, []byte{0x60}, 2},
		{"repeated full width", []int{3, 3, 3}, []byte{0xFC}, 2},
		{"exact byte", []int{255}, []byte{0xFF}, 8},
		{"spills into second byte", []int{256}, []byte{0x80, 0x00}, 9},
		{"multi byte stream", []int{5, 1, 7}, []byte{0xA7, 0x80}, 3},
		{"all zero still width 1", []int{0, 0}, []byte{0x00}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, width, err := Encode(tt.ids)
			require.NoError(t, err)
			assert.Equal(t, tt.payload, payload)
			assert.Equal(t, tt.bitWidth, width)
		})
	}
}

func TestEncodeEmpty(t *testing.T) {
	payload, width, err := Encode(nil)
	require.NoError(t, err)
	assert.Empty(t, payload)
	assert.Equal(t, 0, width)
}

func TestEncodeRejectsNegative(t *testing.T) {
	payload, width, err := Encode([]int{3, -1, 4})
	require.Error(t, err)
	assert.True(t, cacerr.IsInvalidIdentifier(err))
	assert.Equal(t, "-1", cacerr.InputOf(err))
	assert.Nil(t, payload)
	assert.Equal(t, 0, width)
}

func TestEncodeRejectsOversized(t *testing.T) {
	_, _, err := Encode([]int{int(MaxIdentifier) + 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, cacerr.ErrInvalidIdentifier)
}

func TestEncodeAcceptsMaxIdentifier(t *testing.T) {
	ids := []int{int(MaxIdentifier), 1}
	payload, width, err := Encode(ids)
	require.NoError(t, err)
	assert.Equal(t, MaxWidth, width)
	assert.Equal(t, ids, Decode(payload, width))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		payload  []byte
		bitWidth int
		expected []int
	}{
		{"padding dropped", []byte{0x60}, 2, []int{1, 2}},
		{"width 1", []byte{0x80}, 1, []int{1}},
		{"short tail discarded", []byte{0x80, 0x00}, 9, []int{256}},
		{"zero groups suppressed", []byte{0x14}, 3, []int{5}},
		{"empty payload", []byte{}, 4, []int{}},
		{"zero width", []byte{0xFF}, 0, []int{}},
		{"negative width", []byte{0xFF}, -3, []int{}},
		{"oversized width", []byte{0xFF}, MaxWidth + 1, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.payload, tt.bitWidth))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
	}{
		{"single", []int{1}},
		{"repeated", []int{2, 2, 2, 2, 2}},
		{"full width 2^k-1", []int{1, 15, 3}},
		{"full width 255", []int{255, 1, 128}},
		{"width 9", []int{256, 1, 300, 511}},
		{"long list", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 36}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, width, err := Encode(tt.ids)
			require.NoError(t, err)
			assert.Equal(t, tt.ids, Decode(payload, width))
		})
	}
}

// Zero is reserved as padding: it encodes, but never decodes back.
func TestZeroSuppression(t *testing.T) {
	payload, width, err := Encode([]int{0, 5})
	require.NoError(t, err)
	assert.Equal(t, 3, width)
	assert.Equal(t, []int{5}, Decode(payload, width))

	payload, width, err = Encode([]int{4, 0, 0, 4})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4}, Decode(payload, width))
}
