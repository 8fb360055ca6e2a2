package google

import gmail "google.golang.org/api/gmail/v1"

// DefaultOAuthScopes are the Google OAuth scopes the application requests.
//
// Full Gmail access covers reading messages and drafts, fetching attachment
// content, and updating drafts in place. The compose scope alone is not
// enough because listing attachments needs message read access.
var DefaultOAuthScopes = []string{
	gmail.MailGoogleComScope,
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.compose",
}
