// internal/escpos/command.go
package escpos

import "strings"

// PaperColumns is the character width of a line at normal text size on
// 58mm thermal paper. Every layout derives its wrap budget from it.
const PaperColumns = 32

// Alignment selects the ESC a justification mode
type Alignment byte

const (
	AlignLeft   Alignment = 0x00
	AlignCenter Alignment = 0x01
	AlignRight  Alignment = 0x02
)

// QR module size bounds accepted by GS ( k function 167
const (
	qrMinModuleSize = 1
	qrMaxModuleSize = 16
)

// ESC_POS_COMMANDS contains the fixed ESC/POS sequences used by the ticket builders
var ESC_POS_COMMANDS = struct {
	// Basic commands
	INITIALIZE          []byte
	SELECT_CODEPAGE_WPC []byte

	// Text formatting
	TEXT_SIZE    []byte // + size byte
	EMPHASIS     []byte // + on/off byte
	INVERSE      []byte // + on/off byte
	ALIGN        []byte // + alignment byte
	LINE_FEED    []byte
	FEED_LINES   []byte // + line count byte
	CUT_FULL     []byte
	QR_FUNCTION  []byte // GS ( k
	QR_MODEL_ECC []byte
	QR_PRINT     []byte
}{
	// Basic commands
	INITIALIZE:          []byte{0x1B, 0x40},       // ESC @
	SELECT_CODEPAGE_WPC: []byte{0x1B, 0x74, 0x10}, // ESC t 16 (WPC1252)

	// Text formatting
	TEXT_SIZE:  []byte{0x1D, 0x21}, // GS ! n
	EMPHASIS:   []byte{0x1B, 0x45}, // ESC E n
	INVERSE:    []byte{0x1D, 0x42}, // GS B n
	ALIGN:      []byte{0x1B, 0x61}, // ESC a n
	LINE_FEED:  []byte{0x0A},       // LF
	FEED_LINES: []byte{0x1B, 0x64}, // ESC d n

	// Cutting
	CUT_FULL: []byte{0x1D, 0x56, 0x42, 0x00}, // GS V 66 0

	// QR code
	QR_FUNCTION:  []byte{0x1D, 0x28, 0x6B},                               // GS ( k
	QR_MODEL_ECC: []byte{0x1D, 0x28, 0x6B, 0x03, 0x00, 0x31, 0x45, 0x30}, // fn 169, level M
	QR_PRINT:     []byte{0x1D, 0x28, 0x6B, 0x03, 0x00, 0x31, 0x51, 0x30}, // fn 181
}

// Init resets the printer and selects the Western-European code page.
func Init() []byte {
	return concat(ESC_POS_COMMANDS.INITIALIZE, ESC_POS_COMMANDS.SELECT_CODEPAGE_WPC)
}

// Align sets line justification
func Align(mode Alignment) []byte {
	switch mode {
	case AlignCenter, AlignRight:
	default:
		mode = AlignLeft
	}
	return concat(ESC_POS_COMMANDS.ALIGN, []byte{byte(mode)})
}

// TextSize sets the character scale. Both axes are clamped to [1,8] and
// packed zero-based into one byte: width in the high nibble, height low.
func TextSize(width, height int) []byte {
	w := clamp(width, 1, 8) - 1
	h := clamp(height, 1, 8) - 1
	return concat(ESC_POS_COMMANDS.TEXT_SIZE, []byte{byte(w<<4 | h)})
}

// Emphasis toggles bold printing
func Emphasis(on bool) []byte {
	return concat(ESC_POS_COMMANDS.EMPHASIS, []byte{boolByte(on)})
}

// Inverse toggles white-on-black printing
func Inverse(on bool) []byte {
	return concat(ESC_POS_COMMANDS.INVERSE, []byte{boolByte(on)})
}

// Feed prints the buffer and advances the paper by n lines (clamped to [0,255]).
func Feed(lines int) []byte {
	return concat(ESC_POS_COMMANDS.FEED_LINES, []byte{byte(clamp(lines, 0, 255))})
}

// Cut performs a full cut after feeding to the cutter position.
func Cut() []byte {
	return concat(ESC_POS_COMMANDS.CUT_FULL)
}

// HR returns a horizontal rule of length copies of char followed by a
// newline. It is plain text, not a device command.
func HR(char rune, length int) []byte {
	if length < 0 {
		length = 0
	}
	return []byte(strings.Repeat(string(char), length) + "\n")
}

// QRCode stores data as a QR symbol and prints it. The sequence is four
// GS ( k calls: error correction, module size, store data, print.
func QRCode(data string, size int) []byte {
	payload := asciiBytes(data)
	n := len(payload) + 3

	store := concat(
		ESC_POS_COMMANDS.QR_FUNCTION,
		[]byte{byte(n & 0xFF), byte(n >> 8 & 0xFF), 0x31, 0x50, 0x30},
		payload,
	)
	moduleSize := concat(
		ESC_POS_COMMANDS.QR_FUNCTION,
		[]byte{0x03, 0x00, 0x31, 0x43, byte(clamp(size, qrMinModuleSize, qrMaxModuleSize))},
	)

	return concat(ESC_POS_COMMANDS.QR_MODEL_ECC, moduleSize, store, ESC_POS_COMMANDS.QR_PRINT)
}

// asciiBytes keeps the low byte of every rune. QR payloads are expected
// to be ASCII already.
func asciiBytes(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, byte(r))
	}
	return out
}

func concat(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func boolByte(on bool) byte {
	if on {
		return 0x01
	}
	return 0x00
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
