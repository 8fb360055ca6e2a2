package gmail

import (
	"encoding/base64"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// GetMessage retrieves a full Gmail message.
func (c *Client) GetMessage(messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, wrapAPIError("messages.get", fmt.Errorf("failed to get message %s: %w", messageID, err))
	}
	return msg, nil
}

// GetMessageOrDraft retrieves a message by id, falling back to the drafts
// collection when the id does not resolve as a message. Draft ids and
// message ids live in separate namespaces, and callers often only hold one
// of the two without knowing which.
func (c *Client) GetMessageOrDraft(id string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", id).Format("full").Do()
	if err == nil {
		return msg, nil
	}

	draft, draftErr := c.svc.Drafts.Get("me", id).Format("full").Do()
	if draftErr != nil {
		// Report the original failure; the draft lookup was a fallback.
		return nil, wrapAPIError("messages.get", fmt.Errorf("failed to fetch %s as message or draft: %w", id, err))
	}
	return draft.Message, nil
}

// HeaderValue returns the value of a header from the message payload, or ""
// if the header is absent. Header names are matched case-insensitively.
func HeaderValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// GetMessageBody extracts the text or HTML body from a message.
func (c *Client) GetMessageBody(messageID string, format string) (string, error) {
	if format == "" {
		format = "text"
	}

	var targetMimeType string
	switch format {
	case "text":
		targetMimeType = "text/plain"
	case "html":
		targetMimeType = "text/html"
	default:
		return "", fmt.Errorf("invalid format %s, must be 'text' or 'html'", format)
	}

	msg, err := c.GetMessage(messageID)
	if err != nil {
		return "", err
	}

	var body string
	if msg.Payload != nil {
		if msg.Payload.MimeType == targetMimeType && msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
			body = msg.Payload.Body.Data
		} else {
			walkParts(msg.Payload, func(part *gmail.MessagePart) {
				if body == "" && part.MimeType == targetMimeType && part.Body != nil && part.Body.Data != "" {
					body = part.Body.Data
				}
			})
		}
	}

	if body == "" {
		return "", fmt.Errorf("no %s body found in message", format)
	}

	decoded, err := decodeBase64(body)
	if err != nil {
		return "", fmt.Errorf("failed to decode message body: %w", err)
	}
	return string(decoded), nil
}

// walkParts recursively walks through message parts.
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}

// decodeBase64 decodes Gmail body data. The API uses RFC 4648 base64url
// encoding, but some payloads show up in standard base64.
func decodeBase64(data string) ([]byte, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(data)
}
