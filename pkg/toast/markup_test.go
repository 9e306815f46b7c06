package toast_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cgmportal/pkg/toast"
)

func TestComponent(t *testing.T) {
	t.Run("renders severity class, role and close control", func(t *testing.T) {
		var buf bytes.Buffer
		n := toast.Notification{ID: "abc", Message: "Saved", Severity: toast.SeverityError}
		require.NoError(t, toast.Component(n, "@post('/toasts/abc/dismiss')").Render(context.Background(), &buf))

		html := buf.String()
		assert.Contains(t, html, `id="notification-abc"`)
		assert.Contains(t, html, `class="notification notification-error"`)
		assert.Contains(t, html, `role="alert"`)
		assert.Contains(t, html, `data-on:click="@post(&#39;/toasts/abc/dismiss&#39;)"`)
		assert.NotContains(t, html, "onclick")
	})

	t.Run("empty action removes own node client-side", func(t *testing.T) {
		var buf bytes.Buffer
		n := toast.Notification{ID: "x", Message: "hi", Severity: toast.SeverityInfo}
		require.NoError(t, toast.Component(n, "").Render(context.Background(), &buf))

		assert.Contains(t, buf.String(), `el.closest(&#39;.notification&#39;).remove()`)
		assert.Contains(t, buf.String(), `role="status"`)
	})

	t.Run("empty message renders empty text", func(t *testing.T) {
		var buf bytes.Buffer
		n := toast.Notification{ID: "e", Severity: toast.SeveritySuccess}
		require.NoError(t, toast.Component(n, "").Render(context.Background(), &buf))

		assert.Contains(t, buf.String(), `<span class="notification-message"></span>`)
	})
}

func TestHTMLRenderer_UsesAction(t *testing.T) {
	render := toast.HTMLRenderer(func(n toast.Notification) string {
		return "@post('/toasts/" + n.ID + "/dismiss')"
	})

	html, err := render(context.Background(), toast.Notification{ID: "q1", Message: "m"})
	require.NoError(t, err)
	assert.Contains(t, html, "/toasts/q1/dismiss")
	assert.Contains(t, html, "notification-info", "zero severity renders as info")
}

func TestStyleElement(t *testing.T) {
	assert.Equal(t, `<style id="notification-styles">a{}</style>`, toast.StyleElement(toast.StyleID, "a{}"))
}
