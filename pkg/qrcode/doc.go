// Package qrcode renders QR codes as PNG images.
//
//	png, err := qrcode.Generate("https://portal.example.com/", qrcode.WithSize(256))
//
// Generate rejects blank content with ErrEmptyContent; encoder failures are
// joined with ErrFailedToGenerate.
package qrcode
