package qr

import (
	qrcode "github.com/skip2/go-qrcode"
)

// GeneratePNG membuat gambar QR code berformat PNG dari payload string.
func GeneratePNG(payload string) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, 256)
}
