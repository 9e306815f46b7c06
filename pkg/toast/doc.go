// Package toast implements the portal's transient on-screen notifications.
//
// A Manager shows at most one notification at a time. Every Notify call evicts
// the previous notification, makes sure the shared stylesheet is present,
// renders the new one through a Port and schedules its automatic removal.
// Errors are never returned to the caller: notifications are best-effort
// feedback and are themselves the channel other components use to report
// failures.
//
// # Ports
//
// The Manager never touches a concrete UI. It talks to a Port:
//
//   - Document is an in-memory model of the host page. It is used in tests and
//     as the server-side mirror of what the browser shows.
//   - PatchPort mirrors into a Document and publishes DOM patches to a Stream,
//     which the HTTP layer forwards to the browser over Server-Sent Events.
//
// # Basic Usage
//
//	doc := toast.NewDocument(nil)
//	m := toast.NewManager(doc)
//	defer m.Close()
//
//	m.Notify(ctx, "Upload complete", toast.SeveritySuccess)
//	m.Notify(ctx, "Parse failed: bad header", toast.SeverityError)
//
// # Timers
//
// Removal is scheduled with Clock.AfterFunc: 3s for info and success, 5s for
// errors. Superseded and manually dismissed notifications have their timers
// stopped. A timer that already fired is still inert because expiry only acts
// on the notification it was scheduled for.
package toast
