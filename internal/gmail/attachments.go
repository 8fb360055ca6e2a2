package gmail

import (
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

const (
	// MaxAttachmentSize defines the maximum attachment size in bytes (25MB)
	MaxAttachmentSize = 25 * 1024 * 1024
)

// ListAttachments returns attachment descriptors for a message or draft.
//
// Only the top-level parts of the payload are inspected; parts nested inside
// multipart/alternative and friends are never file attachments the way Gmail
// lays messages out. A message without a payload yields an empty list.
func (c *Client) ListAttachments(id string) (*AttachmentList, error) {
	msg, err := c.GetMessageOrDraft(id)
	if err != nil {
		return nil, err
	}
	return TopLevelAttachments(msg), nil
}

// TopLevelAttachments extracts attachment descriptors from a fetched message.
// A part is an attachment only when it carries both a non-empty filename and
// a body attachment id; anything else is skipped silently.
func TopLevelAttachments(msg *gmail.Message) *AttachmentList {
	list := &AttachmentList{Attachments: []AttachmentDescriptor{}}
	if msg == nil || msg.Payload == nil {
		return list
	}
	for _, part := range msg.Payload.Parts {
		if part == nil || part.Body == nil {
			continue
		}
		if part.Filename == "" || part.Body.AttachmentId == "" {
			continue
		}
		list.Attachments = append(list.Attachments, AttachmentDescriptor{
			ID:       part.Body.AttachmentId,
			Filename: part.Filename,
		})
	}
	return list
}

// GetAttachment retrieves the content of an attachment.
func (c *Client) GetAttachment(messageID, attachmentID string) ([]byte, error) {
	if messageID == "" {
		return nil, fmt.Errorf("messageID is required")
	}
	if attachmentID == "" {
		return nil, fmt.Errorf("attachmentID is required")
	}

	attachment, err := c.svc.Messages.Attachments.Get("me", messageID, attachmentID).Do()
	if err != nil {
		return nil, wrapAPIError("messages.attachments.get", fmt.Errorf("failed to get attachment %s: %w", attachmentID, err))
	}

	if attachment.Size > MaxAttachmentSize {
		return nil, fmt.Errorf("attachment size %d exceeds maximum size %d", attachment.Size, MaxAttachmentSize)
	}

	data, err := decodeBase64(attachment.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attachment data: %w", err)
	}
	return data, nil
}

// GetAttachmentAsString retrieves attachment content as string (for text files).
func (c *Client) GetAttachmentAsString(messageID, attachmentID string) (string, error) {
	data, err := c.GetAttachment(messageID, attachmentID)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SanitizeFilename sanitizes a filename to prevent path traversal attacks.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "..", "_")
	return filename
}
