package entity

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// DefaultQRDataURL is the placeholder payment QR shown until one is uploaded
var DefaultQRDataURL = "data:image/svg+xml;utf8," + url.PathEscape(
	"<svg xmlns='http://www.w3.org/2000/svg' width='512' height='512'>"+
		"<rect width='100%' height='100%' fill='white'/>"+
		"<rect x='32' y='32' width='448' height='448' fill='black'/>"+
		"<rect x='64' y='64' width='384' height='384' fill='white'/>"+
		"<text x='50%' y='50%' dominant-baseline='middle' text-anchor='middle' font-size='36' font-family='Arial'>QR</text>"+
		"</svg>")

// Settings is the storefront singleton
type Settings struct {
	QRSrc string `json:"qrSrc"`
}

// DefaultSettings returns the settings written on first start
func DefaultSettings() Settings {
	return Settings{QRSrc: DefaultQRDataURL}
}

// QRImage returns the configured QR or the default one
func (s Settings) QRImage() string {
	if s.QRSrc == "" {
		return DefaultQRDataURL
	}
	return s.QRSrc
}

// Draft holds the checkout inputs the cashier is filling in before the
// sale is built. They are used whenever checkout does not override them.
type Draft struct {
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	Discount      decimal.NullDecimal `json:"discount"`
}
