package portal

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/cgmportal/internal/store"
	"github.com/dmitrymomot/cgmportal/pkg/dexa"
	"github.com/dmitrymomot/cgmportal/pkg/toast"
)

// State is the server-side model of one browser session.
type State struct {
	ID     string
	Toasts *toast.Manager

	port   *toast.PatchPort
	stream *toast.Stream

	mu         sync.Mutex
	openModal  string
	labs       dexa.Inputs
	labsLoaded bool
	lastUpload *store.Upload
}

// StateOptions configures new session states.
type StateOptions struct {
	EventsBuffer int
	Clock        toast.Clock
	Logger       *slog.Logger
}

// NewState creates the state of session id with an empty document.
func NewState(id string, opts StateOptions) *State {
	stream := toast.NewStream(opts.EventsBuffer)
	port := toast.NewPatchPort(toast.NewDocument(toast.HTMLRenderer(dismissAction)), stream)

	toastOpts := []toast.Option{toast.WithLogger(opts.Logger)}
	if opts.Clock != nil {
		toastOpts = append(toastOpts, toast.WithClock(opts.Clock))
	}

	return &State{
		ID:     id,
		Toasts: toast.NewManager(port, toastOpts...),
		port:   port,
		stream: stream,
	}
}

// dismissAction asks the server to dismiss n, which cancels its timer and
// removes the node through the event stream.
func dismissAction(n toast.Notification) string {
	return "@post('/toasts/" + n.ID + "/dismiss')"
}

// Notify shows message in the session's page.
func (s *State) Notify(ctx context.Context, message string, severity toast.Severity) {
	s.Toasts.Notify(ctx, message, severity)
}

// Document returns the server mirror of the session's page.
func (s *State) Document() *toast.Document {
	return s.port.Document()
}

// Attach subscribes to page patches and returns the patches rebuilding the
// current page state.
func (s *State) Attach(ctx context.Context) (*toast.Subscription, []toast.Patch) {
	return s.port.Attach(ctx)
}

// ResetDocument records that the browser loaded a fresh page: it shows no
// notification, no stylesheet and no modal. The visible notification, if
// any, is dismissed first so other tabs of the session drop it too.
func (s *State) ResetDocument(ctx context.Context) {
	s.Toasts.ResetPort(ctx, s.port.Reset)

	s.mu.Lock()
	s.openModal = ""
	s.mu.Unlock()
}

func (s *State) OpenModal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openModal
}

func (s *State) SetModal(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openModal = name
}

// Labs returns the lab values held for the session and whether they were
// loaded or entered.
func (s *State) Labs() (dexa.Inputs, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.labs, s.labsLoaded
}

func (s *State) SetLabs(in dexa.Inputs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labs = in
	s.labsLoaded = true
}

func (s *State) LastUpload() (store.Upload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastUpload == nil {
		return store.Upload{}, false
	}
	return *s.lastUpload, true
}

func (s *State) SetLastUpload(u store.Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpload = &u
}

// Close stops pending timers and ends every attached event stream.
func (s *State) Close() {
	s.Toasts.Close()
	s.stream.Close()
}
