package toast

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// StyleID is the fixed identifier of the shared notification stylesheet.
const StyleID = "notification-styles"

// DefaultDismissAction removes the notification element on the client only.
const DefaultDismissAction = "el.closest('.notification').remove()"

// Stylesheet is injected once per document and shared by every notification.
const Stylesheet = `.notification {
  position: fixed;
  top: 20px;
  right: 20px;
  z-index: 10000;
  display: flex;
  align-items: center;
  gap: 12px;
  max-width: 420px;
  padding: 14px 18px;
  border-radius: 8px;
  color: #fff;
  font-size: 14px;
  box-shadow: 0 4px 12px rgba(0, 0, 0, 0.15);
  animation: notification-slide-in 0.3s ease-out;
}
.notification-info { background: #3b82f6; }
.notification-success { background: #10b981; }
.notification-error { background: #ef4444; }
.notification-message { flex: 1; word-break: break-word; }
.notification-close {
  background: none;
  border: none;
  color: inherit;
  font-size: 20px;
  line-height: 1;
  cursor: pointer;
  opacity: 0.8;
}
.notification-close:hover { opacity: 1; }
@keyframes notification-slide-in {
  from { transform: translateX(100%); opacity: 0; }
  to { transform: translateX(0); opacity: 1; }
}`

// DismissActionFunc returns the datastar expression bound to the close control.
type DismissActionFunc func(n Notification) string

// Component renders a notification. The message is always HTML-escaped.
// The close control is wired with a datastar click binding; an empty
// action falls back to DefaultDismissAction.
func Component(n Notification, action string) templ.Component {
	if action == "" {
		action = DefaultDismissAction
	}
	severity := n.Severity.Normalize()

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="`)
		b.WriteString(templ.EscapeString(ElementID(n.ID)))
		b.WriteString(`" class="notification notification-`)
		b.WriteString(string(severity))
		b.WriteString(`" role="`)
		b.WriteString(severity.Role())
		b.WriteString(`"><span class="notification-message">`)
		b.WriteString(templ.EscapeString(n.Message))
		b.WriteString(`</span><button type="button" class="notification-close" aria-label="Dismiss" data-on:click="`)
		b.WriteString(templ.EscapeString(action))
		b.WriteString(`">&times;</button></div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// StyleElement renders the shared stylesheet as a <style> element.
func StyleElement(id, css string) string {
	return `<style id="` + templ.EscapeString(id) + `">` + css + `</style>`
}

// RenderFunc turns a notification into markup.
type RenderFunc func(ctx context.Context, n Notification) (string, error)

// HTMLRenderer returns a RenderFunc backed by Component.
// A nil action uses DefaultDismissAction.
func HTMLRenderer(action DismissActionFunc) RenderFunc {
	return func(ctx context.Context, n Notification) (string, error) {
		var expr string
		if action != nil {
			expr = action(n)
		}
		var buf bytes.Buffer
		if err := Component(n, expr).Render(ctx, &buf); err != nil {
			return "", errors.Join(ErrRenderFailed, err)
		}
		return buf.String(), nil
	}
}
