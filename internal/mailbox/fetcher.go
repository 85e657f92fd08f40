package mailbox

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jyelen1110/alfies-server/internal/ingest"
)

// Fetcher retrieves unread messages and their attachments from the mail
// provider's REST API. The http.Client is expected to carry OAuth2
// credentials (client_credentials flow).
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	mailbox    string
}

// NewFetcher creates a mail API fetcher for one mailbox
func NewFetcher(httpClient *http.Client, baseURL, mailbox string) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		mailbox:    mailbox,
	}
}

type messageListResponse struct {
	Value []messagePayload `json:"value"`
}

type messagePayload struct {
	ID               string `json:"id"`
	InternetMsgID    string `json:"internetMessageId"`
	Subject          string `json:"subject"`
	ReceivedDateTime string `json:"receivedDateTime"`
	HasAttachments   bool   `json:"hasAttachments"`
	From             struct {
		EmailAddress struct {
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"from"`
}

type attachmentListResponse struct {
	Value []attachmentPayload `json:"value"`
}

type attachmentPayload struct {
	ODataType    string `json:"@odata.type"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	ContentBytes string `json:"contentBytes"`
}

// FetchUnread lists unread messages in the mailbox inbox, oldest first,
// with their attachments decoded. ProviderID (needed for MarkRead) is the
// map key; values are pipeline-ready messages.
func (f *Fetcher) FetchUnread(ctx context.Context, tenantID string, limit int) (map[string]ingest.InboundMessage, error) {
	listURL := fmt.Sprintf("%s/users/%s/mailFolders/inbox/messages?%s",
		f.baseURL, url.PathEscape(f.mailbox),
		url.Values{
			"$filter":  {"isRead eq false"},
			"$orderby": {"receivedDateTime asc"},
			"$top":     {fmt.Sprintf("%d", limit)},
			"$select":  {"id,internetMessageId,subject,from,receivedDateTime,hasAttachments"},
		}.Encode())

	var list messageListResponse
	if err := f.getJSON(ctx, listURL, &list); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	out := make(map[string]ingest.InboundMessage, len(list.Value))
	for _, m := range list.Value {
		msg := ingest.InboundMessage{
			MessageID: m.InternetMsgID,
			Sender:    m.From.EmailAddress.Address,
			Subject:   m.Subject,
			TenantID:  tenantID,
		}
		if msg.MessageID == "" {
			// Some messages lack an internet message id; fall back to
			// the provider id so idempotency still holds
			msg.MessageID = m.ID
		}
		if t, err := time.Parse(time.RFC3339, m.ReceivedDateTime); err == nil {
			msg.ReceivedAt = t
		} else {
			msg.ReceivedAt = time.Now().UTC()
		}

		if m.HasAttachments {
			atts, err := f.fetchAttachments(ctx, m.ID)
			if err != nil {
				return nil, fmt.Errorf("fetch attachments for %s: %w", m.ID, err)
			}
			msg.Attachments = atts
		}

		out[m.ID] = msg
	}
	return out, nil
}

// fetchAttachments downloads the file attachments of one message. Inline
// items and non-file attachment types are skipped.
func (f *Fetcher) fetchAttachments(ctx context.Context, providerID string) ([]ingest.Attachment, error) {
	attURL := fmt.Sprintf("%s/users/%s/messages/%s/attachments",
		f.baseURL, url.PathEscape(f.mailbox), url.PathEscape(providerID))

	var list attachmentListResponse
	if err := f.getJSON(ctx, attURL, &list); err != nil {
		return nil, err
	}

	var atts []ingest.Attachment
	for _, a := range list.Value {
		if !strings.HasSuffix(a.ODataType, "fileAttachment") || a.ContentBytes == "" {
			continue
		}
		content, err := base64.StdEncoding.DecodeString(a.ContentBytes)
		if err != nil {
			return nil, fmt.Errorf("decode attachment %s: %w", a.Name, err)
		}
		atts = append(atts, ingest.Attachment{
			Filename: a.Name,
			MimeType: a.ContentType,
			Content:  content,
		})
	}
	return atts, nil
}

// MarkRead flags a processed message so the next poll cycle skips it
func (f *Fetcher) MarkRead(ctx context.Context, providerID string) error {
	patchURL := fmt.Sprintf("%s/users/%s/messages/%s",
		f.baseURL, url.PathEscape(f.mailbox), url.PathEscape(providerID))

	body := strings.NewReader(`{"isRead": true}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, patchURL, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("mail API returned HTTP %d marking %s read", resp.StatusCode, providerID)
	}
	return nil
}

func (f *Fetcher) getJSON(ctx context.Context, rawURL string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mail API returned HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
