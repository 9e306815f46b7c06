package portal

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/cgmportal/handler"
	"github.com/dmitrymomot/cgmportal/internal/store"
	"github.com/dmitrymomot/cgmportal/pkg/dexa"
	"github.com/dmitrymomot/cgmportal/pkg/targets"
)

// datastarScript is the client runtime matching the datastar-go SDK.
const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// DOM ids patched by the handlers.
const (
	modalRootID     = "modal-root"
	uploadSummaryID = "upload-summary"
	dexaSectionID   = "dexa-section"
)

// markup adapts a builder function to templ.Component.
func markup(fn func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fn(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func esc(s string) string { return templ.EscapeString(s) }

type pageData struct {
	AppName string
	Uploads []store.Upload
	Fields  []dexa.Field
}

// pageView is the full document. Opening /events on load connects the
// page to its session's notification stream.
func pageView(p pageData) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>` + esc(p.AppName) + `</title>`)
		b.WriteString(`<script type="module" src="` + datastarScript + `"></script>`)
		b.WriteString(`</head><body data-init="@get('/events')">`)

		b.WriteString(`<header class="portal-header"><h1>` + esc(p.AppName) + `</h1><nav>`)
		b.WriteString(`<button type="button" data-on:click="@post('/modals/upload-help')">How to export</button>`)
		b.WriteString(`<button type="button" data-on:click="@post('/modals/targets')">Targets</button>`)
		b.WriteString(`<button type="button" data-on:click="@post('/modals/dexa')">DEXA labs</button>`)
		b.WriteString(`</nav></header><main>`)

		b.WriteString(`<section class="upload"><h2>Upload CGM export</h2>`)
		b.WriteString(`<form id="upload-form" enctype="multipart/form-data" data-on:submit="@post('/uploads', {contentType: 'form'})">`)
		b.WriteString(`<input type="file" name="file" required><button type="submit">Upload</button></form>`)
		writeUploadSummary(b, p.Uploads)
		b.WriteString(`</section>`)

		b.WriteString(`<section class="dexa"><h2>DEXA labs</h2>`)
		writeDexaForm(b, p.Fields)
		b.WriteString(`</section>`)

		b.WriteString(`</main><div id="` + modalRootID + `"></div></body></html>`)
	})
}

func uploadSummaryView(uploads []store.Upload) templ.Component {
	return markup(func(b *strings.Builder) { writeUploadSummary(b, uploads) })
}

func writeUploadSummary(b *strings.Builder, uploads []store.Upload) {
	b.WriteString(`<div id="` + uploadSummaryID + `">`)
	if len(uploads) == 0 {
		b.WriteString(`<p class="empty">No uploads yet.</p></div>`)
		return
	}
	b.WriteString(`<ul class="uploads">`)
	for _, u := range uploads {
		b.WriteString(`<li><span class="filename">` + esc(u.Filename) + `</span> `)
		b.WriteString(`<span class="size">` + formatSize(u.Size) + `</span> `)
		b.WriteString(`<time datetime="` + u.CreatedAt.UTC().Format(time.RFC3339) + `">`)
		b.WriteString(u.CreatedAt.UTC().Format("2006-01-02 15:04") + `</time></li>`)
	}
	b.WriteString(`</ul></div>`)
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return strconv.FormatFloat(float64(n)/(1<<20), 'f', 1, 64) + " MB"
	case n >= 1<<10:
		return strconv.FormatFloat(float64(n)/(1<<10), 'f', 1, 64) + " KB"
	default:
		return strconv.FormatInt(n, 10) + " B"
	}
}

func dexaFormView(fields []dexa.Field) templ.Component {
	return markup(func(b *strings.Builder) { writeDexaForm(b, fields) })
}

func writeDexaForm(b *strings.Builder, fields []dexa.Field) {
	b.WriteString(`<form id="` + dexaSectionID + `" class="dexa-form" data-on:submit="@post('/dexa', {contentType: 'form'})">`)
	for _, f := range fields {
		id := "dexa-" + f.Name
		b.WriteString(`<div class="field`)
		if f.Error != "" {
			b.WriteString(` field-error`)
		}
		b.WriteString(`"><label for="` + id + `">` + esc(f.Label))
		if f.Unit != "" {
			b.WriteString(` (` + esc(f.Unit) + `)`)
		}
		b.WriteString(`</label><input id="` + id + `" name="` + esc(f.Name) + `" type="` + esc(f.Type) + `"`)
		for _, attr := range [][2]string{{"min", f.Min}, {"max", f.Max}, {"step", f.Step}, {"value", f.Value}} {
			if attr[1] != "" {
				b.WriteString(` ` + attr[0] + `="` + esc(attr[1]) + `"`)
			}
		}
		b.WriteString(`>`)
		if f.Error != "" {
			b.WriteString(`<p class="error">` + esc(f.Error) + `</p>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`<button type="submit">Save labs</button></form>`)
}

// modalRootView renders the modal container, empty when content is nil.
func modalRootView(content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="`+modalRootID+`">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// modalView wraps body in the modal frame. Closing goes through the server
// so the session knows no modal is open.
func modalView(name, title string, body func(b *strings.Builder)) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div class="modal" role="dialog" aria-modal="true" data-modal="` + esc(name) + `">`)
		b.WriteString(`<div class="modal-content"><header><h2>` + esc(title) + `</h2>`)
		b.WriteString(`<button type="button" class="modal-close" aria-label="Close" data-on:click="@post('/modals/close')">&times;</button>`)
		b.WriteString(`</header>`)
		body(b)
		b.WriteString(`</div></div>`)
	})
}

func uploadHelpBody(exts []string) func(b *strings.Builder) {
	return func(b *strings.Builder) {
		b.WriteString(`<p>Export your readings from the CGM vendor app and upload the file here.</p>`)
		b.WriteString(`<p>Accepted formats: ` + esc(strings.Join(exts, ", ")) + `</p>`)
		b.WriteString(`<figure class="qr"><img src="/qr.png" width="192" height="192" alt="QR code linking to this portal">`)
		b.WriteString(`<figcaption>Scan to open the portal on your phone.</figcaption></figure>`)
	}
}

func targetsBody(table *targets.Table) func(b *strings.Builder) {
	return func(b *strings.Builder) {
		b.WriteString(`<table class="targets"><thead><tr><th>Metric</th>`)
		for _, tier := range targets.Bands {
			b.WriteString(`<th>` + esc(string(tier)) + `</th>`)
		}
		b.WriteString(`</tr></thead><tbody>`)
		for _, t := range table.Targets() {
			b.WriteString(`<tr><th scope="row">` + esc(t.DisplayName()))
			if t.Unit != "" {
				b.WriteString(` (` + esc(t.Unit) + `)`)
			}
			b.WriteString(`</th>`)
			for _, tier := range targets.Bands {
				r, _ := t.Band(tier)
				b.WriteString(`<td>` + esc(r.String()) + `</td>`)
			}
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody></table><p class="note">Values outside every band are rated poor.</p>`)
	}
}

// dexaBody explains the lab inputs and their accepted ranges.
func dexaBody(fields []dexa.Field) func(b *strings.Builder) {
	return func(b *strings.Builder) {
		b.WriteString(`<p>Enter the values from your latest DEXA scan report and the HbA1c draw closest to it.</p>`)
		b.WriteString(`<dl class="dexa-ranges">`)
		for _, f := range fields {
			b.WriteString(`<dt>` + esc(f.Label) + `</dt><dd>`)
			switch {
			case f.Type == "date":
				b.WriteString(`not after today`)
			default:
				b.WriteString(esc(f.Min) + ` to ` + esc(f.Max))
				if f.Unit != "" {
					b.WriteString(` ` + esc(f.Unit))
				}
			}
			b.WriteString(`</dd>`)
		}
		b.WriteString(`</dl>`)
	}
}

// errorPageView renders the full page shown for failed regular requests.
func errorPageView(p handler.ErrorPageParams) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Error</title></head><body>`)
		b.WriteString(`<main class="error-page"><h1>` + strconv.Itoa(p.StatusCode) + `</h1>`)
		b.WriteString(`<p>` + esc(p.Error) + `</p>`)
		if p.RequestID != "" {
			b.WriteString(`<p class="request-id">Request ID: <code>` + esc(p.RequestID) + `</code></p>`)
		}
		b.WriteString(`<a href="/">Back to the portal</a></main></body></html>`)
	})
}
