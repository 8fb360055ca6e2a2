// Package gmail wraps the Gmail API for the operations draftpatch exposes:
// inspecting message attachments and editing drafts in place.
//
// The Client is bound to one account and performs a single API round trip
// per operation. Failures coming back from the Gmail service are wrapped in
// *ServiceError so callers can distinguish them from local validation
// errors and decide how to surface them; the CLI reports service failures
// as data (a JSON error field or a printed line) while configuration
// mistakes abort the process.
//
// Outgoing drafts are assembled client-side as RFC 2822 payloads with
// github.com/emersion/go-message and submitted base64url-encoded, the way
// the Gmail API expects raw messages. Replies carry In-Reply-To and
// References headers plus the original thread id so Gmail keeps the
// conversation together.
package gmail
