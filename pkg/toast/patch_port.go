package toast

import (
	"context"
	"sync"
)

const (
	bodySelector = "body"
	headSelector = "head"
)

// PatchPort is a Port for a browser driven over Server-Sent Events.
// It keeps a Document mirror of the page to answer presence checks and
// publishes every change to a Stream.
type PatchPort struct {
	doc    *Document
	stream *Stream
	mu     sync.Mutex
}

// NewPatchPort creates a port that mirrors into doc and publishes to stream.
func NewPatchPort(doc *Document, stream *Stream) *PatchPort {
	return &PatchPort{doc: doc, stream: stream}
}

// Document returns the mirror of the browser page.
func (p *PatchPort) Document() *Document {
	return p.doc
}

func (p *PatchPort) HasStyle(id string) bool {
	return p.doc.HasStyle(id)
}

func (p *PatchPort) InsertStyle(ctx context.Context, id, css string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.doc.InsertStyle(ctx, id, css); err != nil {
		return err
	}
	p.stream.Publish(Patch{Selector: headSelector, Mode: ModeAppend, Elements: StyleElement(id, css)})
	return nil
}

func (p *PatchPort) Render(ctx context.Context, n Notification) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	h, err := p.doc.Render(ctx, n)
	if err != nil {
		return "", err
	}
	node, ok := p.doc.Node(h)
	if !ok {
		return "", ErrNodeNotFound
	}
	p.stream.Publish(Patch{Selector: bodySelector, Mode: ModeAppend, Elements: node.HTML})
	return h, nil
}

// Dismiss removes the node from the mirror and the browser.
// Nothing is published when the node is already gone.
func (p *PatchPort) Dismiss(ctx context.Context, h Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.doc.Remove(h) {
		return nil
	}
	p.stream.Publish(Patch{Selector: "#" + string(h), Mode: ModeRemove})
	return nil
}

// Attach subscribes to the stream and returns the patches that rebuild the
// current page state. No change can slip between the snapshot and the
// subscription.
func (p *PatchPort) Attach(ctx context.Context) (*Subscription, []Patch) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := p.stream.Subscribe(ctx)

	styles := p.doc.Styles()
	nodes := p.doc.Nodes()
	snapshot := make([]Patch, 0, len(styles)+len(nodes))
	for _, s := range styles {
		snapshot = append(snapshot, Patch{Selector: headSelector, Mode: ModeAppend, Elements: StyleElement(s.ID, s.CSS)})
	}
	for _, n := range nodes {
		snapshot = append(snapshot, Patch{Selector: bodySelector, Mode: ModeAppend, Elements: n.HTML})
	}
	return sub, snapshot
}

// Reset clears the mirror after the browser replaced its document.
func (p *PatchPort) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.doc.Reset()
}
