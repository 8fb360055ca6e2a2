package gmail

import (
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
)

// GetDraft retrieves a draft with its full message payload.
func (c *Client) GetDraft(draftID string) (*gmail.Draft, error) {
	if draftID == "" {
		return nil, fmt.Errorf("draftID is required")
	}
	draft, err := c.svc.Drafts.Get("me", draftID).Format("full").Do()
	if err != nil {
		return nil, wrapAPIError("drafts.get", fmt.Errorf("failed to get draft %s: %w", draftID, err))
	}
	return draft, nil
}

// ListDrafts lists drafts matching the query, up to maxResults, paging
// through the API as needed.
func (c *Client) ListDrafts(q string, maxResults int64) ([]*gmail.Draft, error) {
	var allDrafts []*gmail.Draft
	pageToken := ""

	for {
		remaining := maxResults - int64(len(allDrafts))
		if remaining <= 0 {
			break
		}

		// The drafts collection caps page size at 100
		pageSize := remaining
		if pageSize > 100 {
			pageSize = 100
		}

		req := c.svc.Drafts.List("me").Q(q).MaxResults(pageSize)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, wrapAPIError("drafts.list", fmt.Errorf("failed to list drafts: %w", err))
		}

		allDrafts = append(allDrafts, res.Drafts...)

		if res.NextPageToken == "" || int64(len(allDrafts)) >= maxResults {
			break
		}
		pageToken = res.NextPageToken
	}

	if int64(len(allDrafts)) > maxResults {
		allDrafts = allDrafts[:maxResults]
	}
	return allDrafts, nil
}

// UpdateDraft replaces the content of an existing draft with a freshly
// built message. The draft keeps its id; the previous payload is discarded
// by the service. A single attempt, no retry.
func (c *Client) UpdateDraft(draftID string, msg *OutgoingMessage) (*gmail.Draft, error) {
	if draftID == "" {
		return nil, fmt.Errorf("draftID is required")
	}

	gm, err := c.BuildDraftMessage(msg)
	if err != nil {
		return nil, err
	}

	draft := &gmail.Draft{
		Id:      draftID,
		Message: gm,
	}

	updated, err := c.svc.Drafts.Update("me", draftID, draft).Do()
	if err != nil {
		return nil, wrapAPIError("drafts.update", fmt.Errorf("failed to update draft %s: %w", draftID, err))
	}
	return updated, nil
}

// CreateDraft creates a new draft from the outgoing message.
func (c *Client) CreateDraft(msg *OutgoingMessage) (*gmail.Draft, error) {
	gm, err := c.BuildDraftMessage(msg)
	if err != nil {
		return nil, err
	}

	created, err := c.svc.Drafts.Create("me", &gmail.Draft{Message: gm}).Do()
	if err != nil {
		return nil, wrapAPIError("drafts.create", fmt.Errorf("failed to create draft: %w", err))
	}
	return created, nil
}

// SendDraft sends an existing draft as-is and returns the sent message id.
func (c *Client) SendDraft(draftID string) (string, error) {
	if draftID == "" {
		return "", fmt.Errorf("draftID is required")
	}

	sent, err := c.svc.Drafts.Send("me", &gmail.Draft{Id: draftID}).Do()
	if err != nil {
		return "", wrapAPIError("drafts.send", fmt.Errorf("failed to send draft %s: %w", draftID, err))
	}
	return sent.Id, nil
}
