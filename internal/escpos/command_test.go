package escpos

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x40, 0x1B, 0x74, 0x10}, Init())
}

func TestAlign(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x61, 0x00}, Align(AlignLeft))
	assert.Equal(t, []byte{0x1B, 0x61, 0x01}, Align(AlignCenter))
	assert.Equal(t, []byte{0x1B, 0x61, 0x02}, Align(AlignRight))
}

func TestAlign_UnknownFallsBackToLeft(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x61, 0x00}, Align(Alignment(7)))
}

func TestTextSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          byte
	}{
		{"normal", 1, 1, 0x00},
		{"double", 2, 2, 0x11},
		{"triple", 3, 3, 0x22},
		{"tall", 1, 2, 0x01},
		{"wide", 2, 1, 0x10},
		{"max", 8, 8, 0x77},
		{"clamped low", 0, -3, 0x00},
		{"clamped high", 12, 9, 0x77},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []byte{0x1D, 0x21, tt.want}, TextSize(tt.width, tt.height))
		})
	}
}

func TestEmphasisAndInverse(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x45, 0x01}, Emphasis(true))
	assert.Equal(t, []byte{0x1B, 0x45, 0x00}, Emphasis(false))
	assert.Equal(t, []byte{0x1D, 0x42, 0x01}, Inverse(true))
	assert.Equal(t, []byte{0x1D, 0x42, 0x00}, Inverse(false))
}

func TestFeed(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x64, 0x04}, Feed(4))
	assert.Equal(t, []byte{0x1B, 0x64, 0x00}, Feed(-1))
	assert.Equal(t, []byte{0x1B, 0x64, 0xFF}, Feed(1000))
}

func TestCut(t *testing.T) {
	assert.Equal(t, []byte{0x1D, 0x56, 0x42, 0x00}, Cut())
}

func TestCut_ReturnsFreshSlice(t *testing.T) {
	c := Cut()
	c[0] = 0x00
	assert.Equal(t, byte(0x1D), Cut()[0])
}

func TestHR(t *testing.T) {
	assert.Equal(t, []byte(strings.Repeat("-", 32)+"\n"), HR('-', PaperColumns))
	assert.Equal(t, []byte("\n"), HR('=', 0))
	assert.Equal(t, []byte("\n"), HR('=', -5))
}

func TestQRCode_Sequence(t *testing.T) {
	got := QRCode("donotick:1", 8)

	want := []byte{
		0x1D, 0x28, 0x6B, 0x03, 0x00, 0x31, 0x45, 0x30, // error correction M
		0x1D, 0x28, 0x6B, 0x03, 0x00, 0x31, 0x43, 0x08, // module size
		0x1D, 0x28, 0x6B, 0x0D, 0x00, 0x31, 0x50, 0x30, // store, len = 10 + 3
	}
	want = append(want, []byte("donotick:1")...)
	want = append(want, 0x1D, 0x28, 0x6B, 0x03, 0x00, 0x31, 0x51, 0x30)

	assert.Equal(t, want, got)
}

func TestQRCode_ModuleSizeClamped(t *testing.T) {
	sizeByte := func(b []byte) byte { return b[15] }

	assert.Equal(t, byte(1), sizeByte(QRCode("x", 0)))
	assert.Equal(t, byte(16), sizeByte(QRCode("x", 40)))
	assert.Equal(t, byte(10), sizeByte(QRCode("x", 10)))
}

func TestQRCode_LengthBytesLittleEndian(t *testing.T) {
	data := strings.Repeat("a", 300)
	got := QRCode(data, 4)

	storeHeader := []byte{0x1D, 0x28, 0x6B}
	idx := bytes.Index(got[16:], storeHeader)
	require.Equal(t, 0, idx)

	n := 300 + 3
	assert.Equal(t, byte(n&0xFF), got[19])
	assert.Equal(t, byte(n>>8), got[20])
}
