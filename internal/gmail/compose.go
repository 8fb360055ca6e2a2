package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	netmail "net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	gmail "google.golang.org/api/gmail/v1"
)

// OutgoingMessage describes a draft payload to be built client-side.
type OutgoingMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string

	// Attachments are local file paths to attach.
	Attachments []string

	// ReplyToMessageID is the Gmail id of the message being replied to.
	// When set, the built message carries the original's threading headers
	// and thread id.
	ReplyToMessageID string

	// ReplyAll additionally folds the original message's sender and
	// recipients into the new recipient lists. Only meaningful together
	// with ReplyToMessageID.
	ReplyAll bool
}

// threadContext carries what a reply needs from the original message.
type threadContext struct {
	threadID   string
	messageID  string // RFC 5322 Message-ID header
	references string
	from       string
	to         []string
	cc         []string
}

// BuildDraftMessage assembles the RFC 2822 payload for msg and returns a
// gmail.Message ready for the drafts collection. When msg is a reply the
// original message is fetched to extract threading headers and, for
// reply-all, the recipients to fold in.
func (c *Client) BuildDraftMessage(msg *OutgoingMessage) (*gmail.Message, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if msg.Body == "" {
		return nil, fmt.Errorf("body is required")
	}

	var thread *threadContext
	if msg.ReplyToMessageID != "" {
		orig, err := c.GetMessage(msg.ReplyToMessageID)
		if err != nil {
			return nil, fmt.Errorf("failed to get message being replied to: %w", err)
		}
		thread = threadContextFromMessage(orig)
	}

	raw, err := buildMIME(msg, thread)
	if err != nil {
		return nil, err
	}

	gm := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}
	if thread != nil {
		gm.ThreadId = thread.threadID
	}
	return gm, nil
}

// threadContextFromMessage extracts threading metadata from the message
// being replied to. References grows by the original's Message-ID, per
// RFC 5322 threading rules.
func threadContextFromMessage(orig *gmail.Message) *threadContext {
	tc := &threadContext{
		threadID:  orig.ThreadId,
		messageID: HeaderValue(orig, "Message-ID"),
		from:      HeaderValue(orig, "From"),
		to:        splitAddressList(HeaderValue(orig, "To")),
		cc:        splitAddressList(HeaderValue(orig, "Cc")),
	}

	refs := HeaderValue(orig, "References")
	switch {
	case refs != "" && tc.messageID != "":
		tc.references = refs + " " + tc.messageID
	case tc.messageID != "":
		tc.references = tc.messageID
	default:
		tc.references = refs
	}
	return tc
}

// recipients resolves the final To/Cc lists. For a reply-all the original
// sender and To recipients join the To list and the original Cc joins the
// Cc list, deduplicated case-insensitively.
func recipients(msg *OutgoingMessage, thread *threadContext) (to, cc []string) {
	to = append(to, msg.To...)
	cc = append(cc, msg.Cc...)

	if thread != nil && msg.ReplyAll {
		if thread.from != "" {
			to = append(to, thread.from)
		}
		to = append(to, thread.to...)
		cc = append(cc, thread.cc...)
	}

	return dedupeAddresses(to), dedupeAddresses(cc)
}

// buildMIME renders the message to RFC 2822 bytes. Messages without
// attachments stay single-part; with attachments the body becomes the
// inline part of a multipart/mixed message.
func buildMIME(msg *OutgoingMessage, thread *threadContext) ([]byte, error) {
	to, cc := recipients(msg, thread)

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("To", toAddressList(to))
	if len(cc) > 0 {
		h.SetAddressList("Cc", toAddressList(cc))
	}
	if len(msg.Bcc) > 0 {
		h.SetAddressList("Bcc", toAddressList(msg.Bcc))
	}
	subject := msg.Subject
	if thread != nil && !strings.HasPrefix(strings.ToLower(subject), "re:") {
		subject = "Re: " + subject
	}
	h.SetSubject(subject)

	if thread != nil {
		if thread.messageID != "" {
			h.Set("In-Reply-To", thread.messageID)
		}
		if thread.references != "" {
			h.Set("References", thread.references)
		}
	}

	var buf bytes.Buffer

	if len(msg.Attachments) == 0 {
		h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
		w, err := mail.CreateSingleInlineWriter(&buf, h)
		if err != nil {
			return nil, fmt.Errorf("failed to create message writer: %w", err)
		}
		if _, err := io.WriteString(w, msg.Body); err != nil {
			return nil, fmt.Errorf("failed to write message body: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("failed to finalize message: %w", err)
		}
		return buf.Bytes(), nil
	}

	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create message writer: %w", err)
	}

	tw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("failed to create inline part: %w", err)
	}
	var ih mail.InlineHeader
	ih.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	pw, err := tw.CreatePart(ih)
	if err != nil {
		return nil, fmt.Errorf("failed to create body part: %w", err)
	}
	if _, err := io.WriteString(pw, msg.Body); err != nil {
		return nil, fmt.Errorf("failed to write message body: %w", err)
	}
	if err := pw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize body part: %w", err)
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize inline part: %w", err)
	}

	for _, path := range msg.Attachments {
		if err := attachFile(mw, path); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize message: %w", err)
	}
	return buf.Bytes(), nil
}

// attachFile streams one local file into the message as an attachment part.
func attachFile(mw *mail.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open attachment %s: %w", path, err)
	}
	defer f.Close()

	ctype := mime.TypeByExtension(filepath.Ext(path))
	if ctype == "" {
		ctype = "application/octet-stream"
	}

	var ah mail.AttachmentHeader
	ah.SetFilename(filepath.Base(path))
	ah.Set("Content-Type", ctype)

	aw, err := mw.CreateAttachment(ah)
	if err != nil {
		return fmt.Errorf("failed to create attachment part for %s: %w", path, err)
	}
	if _, err := io.Copy(aw, f); err != nil {
		return fmt.Errorf("failed to write attachment %s: %w", path, err)
	}
	return aw.Close()
}

// toAddressList converts address strings into mail addresses. Entries that
// parse as RFC 5322 addresses keep their display name; anything else is
// passed through as a bare address and left to Gmail to validate.
func toAddressList(addrs []string) []*mail.Address {
	out := make([]*mail.Address, 0, len(addrs))
	for _, a := range addrs {
		if parsed, err := netmail.ParseAddress(a); err == nil {
			out = append(out, &mail.Address{Name: parsed.Name, Address: parsed.Address})
			continue
		}
		out = append(out, &mail.Address{Address: a})
	}
	return out
}

// splitAddressList splits an address header value into individual entries.
// RFC 5322 parsing keeps display names intact, including quoted names that
// contain commas. Headers that fail to parse fall back to a plain comma
// split so a malformed entry does not drop the whole recipient list.
func splitAddressList(value string) []string {
	if value == "" {
		return nil
	}

	if parsed, err := netmail.ParseAddressList(value); err == nil {
		out := make([]string, 0, len(parsed))
		for _, addr := range parsed {
			if addr.Name == "" {
				out = append(out, addr.Address)
				continue
			}
			out = append(out, addr.String())
		}
		return out
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// dedupeAddresses removes duplicate addresses, keeping first occurrence
// order. Entries are compared by their bare address when they parse, so
// "Alice <a@x>" and "a@x" count as the same recipient.
func dedupeAddresses(addrs []string) []string {
	seen := make(map[string]bool, len(addrs))
	out := addrs[:0]
	for _, a := range addrs {
		key := strings.ToLower(a)
		if parsed, err := netmail.ParseAddress(a); err == nil {
			key = strings.ToLower(parsed.Address)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}
