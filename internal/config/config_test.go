package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoadListAttachments(t *testing.T) {
	t.Run("reads email id and account", func(t *testing.T) {
		t.Setenv("EMAIL_ID", "m123")
		t.Setenv("GMAIL_ACCOUNT", "work@example.com")

		cfg, err := LoadListAttachments()
		if err != nil {
			t.Fatalf("LoadListAttachments() error = %v", err)
		}
		if cfg.EmailID != "m123" {
			t.Errorf("EmailID = %q, want m123", cfg.EmailID)
		}
		if cfg.Account != "work@example.com" {
			t.Errorf("Account = %q", cfg.Account)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("missing email id fails validation", func(t *testing.T) {
		t.Setenv("EMAIL_ID", "")

		cfg, err := LoadListAttachments()
		if err != nil {
			t.Fatalf("LoadListAttachments() error = %v", err)
		}
		err = cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error")
		}
		if !strings.Contains(err.Error(), "EMAIL_ID") {
			t.Errorf("Validate() error = %v, want mention of EMAIL_ID", err)
		}
	})
}

func TestLoadUpdateDraft(t *testing.T) {
	t.Setenv("DRAFT_ID", "d1")
	t.Setenv("TO_EMAILS", "a@x.com, b@x.com")
	t.Setenv("CC_EMAILS", "")
	t.Setenv("SUBJECT", "Hello")
	t.Setenv("MESSAGE", "World")
	t.Setenv("ATTACHMENTS", "a.pdf, ,b.pdf")
	t.Setenv("REPLY_TO_EMAIL_ID", "m9")
	t.Setenv("REPLY_ALL", "true")

	cfg, err := LoadUpdateDraft()
	if err != nil {
		t.Fatalf("LoadUpdateDraft() error = %v", err)
	}
	if err := cfg.Validate(true); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if got, want := cfg.To(), []string{"a@x.com", "b@x.com"}; !reflect.DeepEqual(got, want) {
		t.Errorf("To() = %v, want %v", got, want)
	}
	if got := cfg.Cc(); got != nil {
		t.Errorf("Cc() = %v, want nil", got)
	}
	if got, want := cfg.AttachmentPaths(), []string{"a.pdf", "b.pdf"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AttachmentPaths() = %v, want %v", got, want)
	}
	if !cfg.IsReplyAll() {
		t.Error("IsReplyAll() = false, want true")
	}
	if cfg.ReplyToEmailID != "m9" {
		t.Errorf("ReplyToEmailID = %q", cfg.ReplyToEmailID)
	}
}

func TestUpdateDraftValidateCollectsAllMissing(t *testing.T) {
	cfg := &UpdateDraftConfig{}
	err := cfg.Validate(true)
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, name := range []string{"DRAFT_ID", "TO_EMAILS", "SUBJECT", "MESSAGE"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Validate() error %q missing %s", err, name)
		}
	}
}

func TestUpdateDraftValidateWithoutDraftID(t *testing.T) {
	cfg := &UpdateDraftConfig{ToEmails: "a@x.com", Subject: "s", Message: "m"}
	if err := cfg.Validate(false); err != nil {
		t.Errorf("Validate(false) error = %v", err)
	}
	if err := cfg.Validate(true); err == nil {
		t.Error("Validate(true) expected error for missing DRAFT_ID")
	}
}

func TestIsReplyAllStrict(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"True", false},
		{"TRUE", false},
		{"1", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			cfg := &UpdateDraftConfig{ReplyAll: tt.value}
			if got := cfg.IsReplyAll(); got != tt.want {
				t.Errorf("IsReplyAll(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
