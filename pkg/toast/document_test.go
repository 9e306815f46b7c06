package toast_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cgmportal/pkg/toast"
)

func TestDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("render and remove", func(t *testing.T) {
		doc := toast.NewDocument(nil)

		h, err := doc.Render(ctx, toast.Notification{ID: "a", Message: "m"})
		require.NoError(t, err)
		assert.Equal(t, toast.Handle("notification-a"), h)

		node, ok := doc.Node(h)
		require.True(t, ok)
		assert.Equal(t, "m", node.Notification.Message)

		assert.True(t, doc.Remove(h))
		assert.False(t, doc.Remove(h))
		assert.NoError(t, doc.Dismiss(ctx, h), "dismissing an absent node is a no-op")
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		doc := toast.NewDocument(nil)

		_, err := doc.Render(ctx, toast.Notification{})
		assert.ErrorIs(t, err, toast.ErrEmptyNotificationID)
		assert.ErrorIs(t, doc.InsertStyle(ctx, "", "css"), toast.ErrEmptyStyleID)
	})

	t.Run("render errors propagate", func(t *testing.T) {
		boom := errors.New("boom")
		doc := toast.NewDocument(func(context.Context, toast.Notification) (string, error) {
			return "", boom
		})

		_, err := doc.Render(ctx, toast.Notification{ID: "a"})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, doc.Nodes())
	})

	t.Run("reset clears nodes and styles", func(t *testing.T) {
		doc := toast.NewDocument(nil)
		require.NoError(t, doc.InsertStyle(ctx, toast.StyleID, "css"))
		_, err := doc.Render(ctx, toast.Notification{ID: "a"})
		require.NoError(t, err)

		doc.Reset()
		assert.Empty(t, doc.Nodes())
		assert.False(t, doc.HasStyle(toast.StyleID))
	})
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, toast.SeverityInfo, toast.Severity("").Normalize())
	assert.Equal(t, toast.SeverityInfo, toast.Severity("warn").Normalize())
	assert.Equal(t, toast.SeverityError, toast.SeverityError.Normalize())
	assert.Equal(t, toast.ErrorDismissAfter, toast.SeverityError.DismissAfter())
	assert.Equal(t, toast.DefaultDismissAfter, toast.SeveritySuccess.DismissAfter())
	assert.Equal(t, "alert", toast.SeverityError.Role())
	assert.Equal(t, "status", toast.Severity("bogus").Role())
}
