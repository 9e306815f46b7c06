package portal

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/cgmportal/handler"
	"github.com/dmitrymomot/cgmportal/pkg/qrcode"
)

const qrSize = 256

// portalURL is the address encoded in the phone QR code: PUBLIC_URL when
// set, otherwise derived from the request.
func (p *Portal) portalURL(r *http.Request) string {
	if p.cfg.PublicURL != "" {
		return p.cfg.PublicURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

// qrCode serves a PNG QR code that opens the portal on a phone, where
// most CGM vendor apps keep their exports.
func (p *Portal) qrCode(ctx handler.Context, _ struct{}) handler.Response {
	png, err := qrcode.Generate(p.portalURL(ctx.Request()), qrcode.WithSize(qrSize))
	if err != nil {
		return handler.Error(fmt.Errorf("encode qr code: %w", err))
	}
	return handler.Blob("image/png", "private, max-age=3600", png)
}
