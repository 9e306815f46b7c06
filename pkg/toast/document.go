package toast

import (
	"context"
	"slices"
	"sync"
)

// Node is a notification element present in a Document.
type Node struct {
	Handle       Handle
	Notification Notification
	HTML         string
}

// Style is a stylesheet definition present in a Document.
type Style struct {
	ID  string
	CSS string
}

// Document is an in-memory model of the host page.
// Nodes are kept in insertion order, as if appended to the end of <body>.
// All methods are safe for concurrent use.
type Document struct {
	render RenderFunc
	nodes  []Node
	styles []Style
	mu     sync.Mutex
}

// NewDocument creates an empty document.
// A nil render function uses HTMLRenderer with the client-side dismiss action.
func NewDocument(render RenderFunc) *Document {
	if render == nil {
		render = HTMLRenderer(nil)
	}
	return &Document{render: render}
}

// HasStyle reports whether a stylesheet with the given id was inserted.
func (d *Document) HasStyle(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.ContainsFunc(d.styles, func(s Style) bool { return s.ID == id })
}

// InsertStyle appends a stylesheet definition.
// It does not deduplicate: guarding against repeated insertion is the caller's job.
func (d *Document) InsertStyle(ctx context.Context, id, css string) error {
	if id == "" {
		return ErrEmptyStyleID
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.styles = append(d.styles, Style{ID: id, CSS: css})
	return nil
}

// Render appends the rendered notification to the document.
func (d *Document) Render(ctx context.Context, n Notification) (Handle, error) {
	if n.ID == "" {
		return "", ErrEmptyNotificationID
	}

	html, err := d.render(ctx, n)
	if err != nil {
		return "", err
	}

	h := HandleFor(n)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.nodes = append(d.nodes, Node{Handle: h, Notification: n, HTML: html})
	return h, nil
}

// Dismiss removes the node. Removing an absent node is a no-op.
func (d *Document) Dismiss(ctx context.Context, h Handle) error {
	d.Remove(h)
	return nil
}

// Remove deletes the node directly, the way a client-side close control does,
// and reports whether it was present.
func (d *Document) Remove(h Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := slices.IndexFunc(d.nodes, func(n Node) bool { return n.Handle == h })
	if i < 0 {
		return false
	}
	d.nodes = slices.Delete(d.nodes, i, i+1)
	return true
}

// Node returns the node with the given handle.
func (d *Document) Node(h Handle) (Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, n := range d.nodes {
		if n.Handle == h {
			return n, true
		}
	}
	return Node{}, false
}

// Nodes returns a copy of the nodes in insertion order.
func (d *Document) Nodes() []Node {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.Clone(d.nodes)
}

// Styles returns a copy of the inserted stylesheet definitions.
func (d *Document) Styles() []Style {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.Clone(d.styles)
}

// Reset empties the document, as when the browser loads a fresh page.
func (d *Document) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nodes = nil
	d.styles = nil
}
