package gmail

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/emersion/go-message/mail"
	gmail "google.golang.org/api/gmail/v1"
)

func TestThreadContextFromMessage(t *testing.T) {
	tests := []struct {
		name    string
		headers []*gmail.MessagePartHeader
		want    threadContext
	}{
		{
			name: "first reply in thread",
			headers: []*gmail.MessagePartHeader{
				{Name: "Message-ID", Value: "<m1@mail.example.com>"},
				{Name: "From", Value: "alice@example.com"},
				{Name: "To", Value: "bob@example.com, carol@example.com"},
				{Name: "Cc", Value: "dave@example.com"},
			},
			want: threadContext{
				threadID:   "t1",
				messageID:  "<m1@mail.example.com>",
				references: "<m1@mail.example.com>",
				from:       "alice@example.com",
				to:         []string{"bob@example.com", "carol@example.com"},
				cc:         []string{"dave@example.com"},
			},
		},
		{
			name: "existing references chain grows",
			headers: []*gmail.MessagePartHeader{
				{Name: "Message-ID", Value: "<m2@mail.example.com>"},
				{Name: "References", Value: "<m0@mail.example.com> <m1@mail.example.com>"},
				{Name: "From", Value: "alice@example.com"},
			},
			want: threadContext{
				threadID:   "t1",
				messageID:  "<m2@mail.example.com>",
				references: "<m0@mail.example.com> <m1@mail.example.com> <m2@mail.example.com>",
				from:       "alice@example.com",
			},
		},
		{
			name: "no message id keeps references as-is",
			headers: []*gmail.MessagePartHeader{
				{Name: "References", Value: "<m0@mail.example.com>"},
			},
			want: threadContext{
				threadID:   "t1",
				references: "<m0@mail.example.com>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := &gmail.Message{
				ThreadId: "t1",
				Payload:  &gmail.MessagePart{Headers: tt.headers},
			}
			got := threadContextFromMessage(orig)
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("threadContextFromMessage() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestRecipients(t *testing.T) {
	tests := []struct {
		name   string
		msg    *OutgoingMessage
		thread *threadContext
		wantTo []string
		wantCc []string
	}{
		{
			name:   "plain message keeps lists",
			msg:    &OutgoingMessage{To: []string{"a@x.com"}, Cc: []string{"b@x.com"}},
			wantTo: []string{"a@x.com"},
			wantCc: []string{"b@x.com"},
		},
		{
			name: "reply without reply-all ignores thread recipients",
			msg:  &OutgoingMessage{To: []string{"a@x.com"}},
			thread: &threadContext{
				from: "sender@x.com",
				to:   []string{"other@x.com"},
			},
			wantTo: []string{"a@x.com"},
		},
		{
			name: "reply-all folds in sender and recipients",
			msg:  &OutgoingMessage{To: []string{"a@x.com"}, ReplyAll: true},
			thread: &threadContext{
				from: "sender@x.com",
				to:   []string{"a@x.com", "other@x.com"},
				cc:   []string{"cc@x.com"},
			},
			wantTo: []string{"a@x.com", "sender@x.com", "other@x.com"},
			wantCc: []string{"cc@x.com"},
		},
		{
			name: "reply-all dedupes across display names",
			msg:  &OutgoingMessage{To: []string{"a@x.com"}, ReplyAll: true},
			thread: &threadContext{
				from: "Alice <a@x.com>",
				to:   []string{"Bob <b@x.com>"},
			},
			wantTo: []string{"a@x.com", "Bob <b@x.com>"},
		},
		{
			name: "reply-all keeps a comma inside a quoted display name",
			msg:  &OutgoingMessage{To: []string{"a@x.com"}, ReplyAll: true},
			thread: &threadContext{
				from: `"Smith, John" <john@example.com>`,
				to:   splitAddressList(`"Smith, John" <john@example.com>, amy@example.com`),
			},
			wantTo: []string{"a@x.com", `"Smith, John" <john@example.com>`, "amy@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			to, cc := recipients(tt.msg, tt.thread)
			if !reflect.DeepEqual(to, tt.wantTo) {
				t.Errorf("to = %v, want %v", to, tt.wantTo)
			}
			if !reflect.DeepEqual(cc, tt.wantCc) && !(len(cc) == 0 && len(tt.wantCc) == 0) {
				t.Errorf("cc = %v, want %v", cc, tt.wantCc)
			}
		})
	}
}

func TestSplitAddressList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "empty value",
			value: "",
			want:  nil,
		},
		{
			name:  "single address",
			value: "a@x.com",
			want:  []string{"a@x.com"},
		},
		{
			name:  "spaces and blank entries dropped",
			value: "a@x.com, , b@x.com,",
			want:  []string{"a@x.com", "b@x.com"},
		},
		{
			name:  "display names kept",
			value: "Alice <a@x.com>, b@x.com",
			want:  []string{"Alice <a@x.com>", "b@x.com"},
		},
		{
			name:  "quoted display name with comma stays one entry",
			value: `"Smith, John" <john@example.com>, amy@example.com`,
			want:  []string{`"Smith, John" <john@example.com>`, "amy@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitAddressList(tt.value); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitAddressList(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestDedupeAddresses(t *testing.T) {
	got := dedupeAddresses([]string{
		"a@x.com",
		"A@X.COM",
		"Alice <a@x.com>",
		"b@x.com",
	})
	want := []string{"a@x.com", "b@x.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupeAddresses() = %v, want %v", got, want)
	}
}

func TestBuildMIMEPlain(t *testing.T) {
	msg := &OutgoingMessage{
		To:      []string{"bob@example.com"},
		Cc:      []string{"carol@example.com"},
		Subject: "Meeting notes",
		Body:    "See you Thursday.",
	}
	thread := &threadContext{
		messageID:  "<orig@mail.example.com>",
		references: "<root@mail.example.com> <orig@mail.example.com>",
	}

	raw, err := buildMIME(msg, thread)
	if err != nil {
		t.Fatalf("buildMIME() error = %v", err)
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("CreateReader() error = %v", err)
	}

	subject, err := mr.Header.Subject()
	if err != nil || subject != "Re: Meeting notes" {
		t.Errorf("Subject = %q (err %v), want %q", subject, err, "Re: Meeting notes")
	}
	if got := mr.Header.Get("In-Reply-To"); got != "<orig@mail.example.com>" {
		t.Errorf("In-Reply-To = %q", got)
	}
	if got := mr.Header.Get("References"); got != "<root@mail.example.com> <orig@mail.example.com>" {
		t.Errorf("References = %q", got)
	}
	toList, err := mr.Header.AddressList("To")
	if err != nil || len(toList) != 1 || toList[0].Address != "bob@example.com" {
		t.Errorf("To = %v (err %v)", toList, err)
	}

	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("NextPart() error = %v", err)
	}
	body, err := io.ReadAll(part.Body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(body) != "See you Thursday." {
		t.Errorf("body = %q", body)
	}
}

func TestBuildMIMEReplySubject(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		thread  *threadContext
		want    string
	}{
		{
			name:    "reply gains prefix",
			subject: "Original Subject",
			thread:  &threadContext{messageID: "<m@x>"},
			want:    "Re: Original Subject",
		},
		{
			name:    "existing prefix kept",
			subject: "Re: Original Subject",
			thread:  &threadContext{messageID: "<m@x>"},
			want:    "Re: Original Subject",
		},
		{
			name:    "case insensitive prefix check",
			subject: "RE: Original Subject",
			thread:  &threadContext{messageID: "<m@x>"},
			want:    "RE: Original Subject",
		},
		{
			name:    "no thread leaves subject alone",
			subject: "Original Subject",
			want:    "Original Subject",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := buildMIME(&OutgoingMessage{
				To:      []string{"bob@example.com"},
				Subject: tt.subject,
				Body:    "hi",
			}, tt.thread)
			if err != nil {
				t.Fatalf("buildMIME() error = %v", err)
			}

			mr, err := mail.CreateReader(bytes.NewReader(raw))
			if err != nil {
				t.Fatalf("CreateReader() error = %v", err)
			}
			subject, err := mr.Header.Subject()
			if err != nil {
				t.Fatalf("Subject() error = %v", err)
			}
			if subject != tt.want {
				t.Errorf("Subject = %q, want %q", subject, tt.want)
			}
		})
	}
}

func TestBuildMIMEWithAttachment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(path, []byte("quarterly numbers"), 0o644); err != nil {
		t.Fatal(err)
	}

	msg := &OutgoingMessage{
		To:          []string{"bob@example.com"},
		Subject:     "Report attached",
		Body:        "Numbers inside.",
		Attachments: []string{path},
	}

	raw, err := buildMIME(msg, nil)
	if err != nil {
		t.Fatalf("buildMIME() error = %v", err)
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("CreateReader() error = %v", err)
	}

	var gotBody, gotAttachment bool
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart() error = %v", err)
		}
		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			body, err := io.ReadAll(part.Body)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(body) != "Numbers inside." {
				t.Errorf("inline body = %q", body)
			}
			gotBody = true
		case *mail.AttachmentHeader:
			filename, err := h.Filename()
			if err != nil || filename != "report.txt" {
				t.Errorf("attachment filename = %q (err %v)", filename, err)
			}
			content, err := io.ReadAll(part.Body)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(content) != "quarterly numbers" {
				t.Errorf("attachment content = %q", content)
			}
			gotAttachment = true
		}
	}

	if !gotBody || !gotAttachment {
		t.Errorf("parsed body=%v attachment=%v, want both", gotBody, gotAttachment)
	}

	if !strings.Contains(string(raw), "multipart/mixed") {
		t.Error("expected multipart/mixed content type")
	}
}
