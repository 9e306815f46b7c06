package handler

import "github.com/starfederation/datastar-go/datastar"

// StreamContext is the Context of an SSE handler. Every method writes one
// event to the open stream.
type StreamContext interface {
	Context

	// SendComponent patches a rendered component into the page.
	SendComponent(component TemplComponent, opts ...TemplOption) error

	// SendElements patches already rendered markup.
	SendElements(elements string, opts ...TemplOption) error

	// RemoveElements removes every element matching selector.
	RemoveElements(selector string) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendElements(elements string, opts ...TemplOption) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElements(elements, opts...)
}

func (c *streamContext) RemoveElements(selector string) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElements("", WithTarget(selector), WithPatchMode(PatchRemove))
}
