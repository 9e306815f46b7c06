package handler

import (
	"net/http"
)

// SSEHandler is a function that handles Server-Sent Events streaming.
// It receives a StreamContext with methods for sending components and signals.
//
// The handler should run for the lifetime of the SSE connection, typically
// using a loop that listens for events and sends updates. The connection
// will be closed when the handler returns or the client disconnects.
//
// Example:
//
//	handler.SSE(func(stream handler.StreamContext) error {
//		sub, snapshot := port.Attach(stream)
//		defer sub.Close()
//
//		for {
//			select {
//			case <-stream.Done():
//				return nil
//			case p, ok := <-sub.Patches():
//				if !ok {
//					return nil
//				}
//				if err := stream.SendElements(p.Elements, handler.WithTarget(p.Selector)); err != nil {
//					return err
//				}
//			}
//		}
//	})
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

// Render validates DataStar connection and executes the SSE handler.
func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "sse_requires_datastar")
	}

	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}

	ctx := &streamContext{
		Context: base,
		sse:     sse,
	}
	return s.handler(ctx)
}

// SSE creates a new SSE response that runs the given handler.
// The handler receives a StreamContext with methods for sending
// components, raw elements and signals through the SSE connection.
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
