// Package portal is the CGM Portal web application.
//
// The server owns the page: each browser session has a State holding its
// notification manager, the open modal, the DEXA lab values and the last
// upload. Browser actions are DataStar requests; their visible outcome is
// pushed back over the session's /events stream as DOM patches.
//
// Routes:
//
//	GET  /                     page shell, resets the session document
//	GET  /events               SSE stream of notification patches
//	POST /uploads              store a CGM export
//	POST /toasts/{id}/dismiss  dismiss the visible notification
//	POST /modals/{name}        open a modal (upload-help, targets, dexa)
//	POST /modals/close         close the open modal
//	GET  /dexa                 DEXA lab form
//	POST /dexa                 validate and save lab values
//	GET  /api/targets          target range table as JSON
//	GET  /api/targets/classify classify one metric value
//	GET  /api/uploads          recent uploads of the session
//	GET  /healthz              readiness probe
package portal
