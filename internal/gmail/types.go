package gmail

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// AttachmentDescriptor identifies one attachment of a message or draft.
// The ID is the opaque token the Gmail API issues for retrieving the
// attachment's content; it is only valid together with the message id.
type AttachmentDescriptor struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

// AttachmentList is the result of listing a message's attachments.
type AttachmentList struct {
	Attachments []AttachmentDescriptor `json:"attachments"`
}

// ServiceError is a failure reported by the Gmail service, as opposed to a
// local validation or I/O error. Callers typically report these as data
// rather than aborting: a single-shot invocation has nothing to retry.
type ServiceError struct {
	// Op is the API operation that failed, e.g. "drafts.update".
	Op string
	// StatusCode is the HTTP status from the API, 0 if unknown.
	StatusCode int
	// Err is the underlying error.
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("gmail %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// AsServiceError reports whether err (or anything it wraps) is a Gmail
// service failure, and returns it if so.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// wrapAPIError wraps an error returned by a Gmail API call into a
// *ServiceError, capturing the HTTP status when the client library exposes
// one. A nil err passes through.
func wrapAPIError(op string, err error) error {
	if err == nil {
		return nil
	}
	svcErr := &ServiceError{Op: op, Err: err}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		svcErr.StatusCode = apiErr.Code
	}
	return svcErr
}
