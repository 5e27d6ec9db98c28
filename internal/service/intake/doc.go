// Package intake runs the form-submission pipeline shared by every public
// form endpoint:
//
//	validate → resolve tenant → persist (best effort) → notify → respond
//
// Validation failures stop the pipeline with a *validate.Errors. Store
// failures are logged and swallowed so a storage outage never blocks an
// operator notification. Notification failures are returned wrapped in
// ErrNotification; the notification is part of what the endpoint delivers.
//
// The service holds no per-request state and is safe for concurrent use.
package intake
