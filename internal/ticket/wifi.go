// internal/ticket/wifi.go
package ticket

import (
	"strings"

	"ticket-service/internal/escpos"
	"ticket-service/internal/model"
)

const (
	wifiBanner       = " WLAN "
	wifiInstruction  = "Scannen zum Verbinden"
	wifiQRModuleSize = 10
	wifiSSIDSize     = 2
)

var wifiEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
	`"`, `\"`,
)

// WifiParams are the credentials encoded on a WiFi ticket
type WifiParams struct {
	SSID     string
	Password string
	Type     model.WifiSecurity
	Hidden   bool
}

// EscapeWifi backslash-escapes the characters reserved by the WIFI: URI scheme
func EscapeWifi(s string) string {
	return wifiEscaper.Replace(s)
}

// WifiURI builds the WIFI:T:..;S:..;P:..;H:true;; string phones scan to join a network
func WifiURI(p WifiParams) string {
	security := p.Type
	if security == "" {
		security = model.WifiWPA
	}

	var b strings.Builder
	b.WriteString("WIFI:T:")
	b.WriteString(string(security))
	b.WriteString(";S:")
	b.WriteString(EscapeWifi(p.SSID))
	b.WriteString(";")
	if security != model.WifiNoPass && p.Password != "" {
		b.WriteString("P:")
		b.WriteString(EscapeWifi(p.Password))
		b.WriteString(";")
	}
	if p.Hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String()
}

// BuildWifi renders a WiFi credential ticket with a join QR code
func BuildWifi(p WifiParams) ([]byte, error) {
	if strings.TrimSpace(p.SSID) == "" {
		return nil, model.NewValidationError("ssid", "is required")
	}

	c := newCommands()

	c.add(escpos.Align(escpos.AlignCenter), escpos.Inverse(true), escpos.Emphasis(true), escpos.TextSize(2, 2))
	c.line(wifiBanner)
	c.add(escpos.Inverse(false), escpos.ESC_POS_COMMANDS.LINE_FEED)

	c.add(escpos.TextSize(wifiSSIDSize, wifiSSIDSize))
	for _, l := range wrapOrBlank(escpos.CleanTitle(p.SSID), escpos.PaperColumns/wifiSSIDSize) {
		c.line(l)
	}
	c.add(escpos.Emphasis(false), escpos.TextSize(1, 1), escpos.ESC_POS_COMMANDS.LINE_FEED)

	c.add(escpos.QRCode(WifiURI(p), wifiQRModuleSize))
	c.add(escpos.ESC_POS_COMMANDS.LINE_FEED)
	c.line(wifiInstruction)
	c.add(escpos.Align(escpos.AlignLeft))
	c.trailer()

	return c.bytes(), nil
}
